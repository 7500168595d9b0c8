// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"github.com/MovGP0/UnitSystem-sub000/config"
)

// Context is the execution context for evaluation.
// The only implementation is in ../exec, but the interface
// is declared here to break dependency cycles.
type Context interface {
	Config() *config.Config

	// Lookup returns the value bound to the name. An empty namespace
	// searches the global scope, then the built-in namespaces, then
	// the namespaces themselves by name.
	Lookup(namespace, name string) (Value, bool)

	// Assign binds the name in the namespace, creating the namespace
	// if needed.
	Assign(namespace, name string, val Value)

	// Names returns the variables, functions and sequences declared
	// in the namespace, sorted.
	Names(namespace string) []string

	// Delete removes the binding and returns the value it held.
	Delete(namespace, name string) (Value, bool)

	// Frame returns the innermost call frame.
	Frame() *Frame

	// Define records a declared function, replacing any earlier one
	// with the same name and parameters.
	Define(fn *Function)

	// Functions returns every function declared under the name.
	Functions(namespace, name string) []*Function

	// Resolve selects the overload for a call with nargs arguments,
	// of which those in named were passed by name. It panics with
	// FunctionNotFoundError or AmbiguousOverloadError.
	Resolve(namespace, name string, nargs int, named []string) *Function

	// Call invokes the function with the arguments in call order.
	// Named arguments are placed by the context.
	Call(fn *Function, args []Parameter) Value

	// Sequence returns the sequence declared under the name.
	Sequence(namespace, name string) (Sequence, bool)

	// DeclareSequence adds an element formula to a sequence.
	DeclareSequence(decl *SequenceDecl)

	// Construct creates an object of the registered native type.
	Construct(typeName string, args []Value) Value

	// Compile compiles text as an expression whose free occurrences of
	// params are parameter references.
	Compile(text string, params []string) (Expr, error)

	// EvalUnary evaluates a unary operator.
	EvalUnary(op string, right Value) Value

	// EvalBinary evaluates a binary operator.
	EvalBinary(left Value, op string, right Value) Value
}

// Frame holds the state of one function or sequence invocation.
type Frame struct {
	Name   string
	Params []Parameter
	Loops  []*Loop
}

// Loop is the state of an active for loop.
type Loop struct {
	Name  string
	Value Value
	Count int
}

// Parameter is an evaluated argument. When the argument named something
// with no variable binding, Value is nil and Raw holds its source text,
// which a callee may interpret as a function name.
type Parameter struct {
	Name  string
	Value Value
	Raw   string
}

// Evaluated reports whether the argument produced a value.
func (p Parameter) Evaluated() bool {
	return p.Value != nil
}

// Values returns the values of the parameters. Arguments without a
// value are looked up as function names.
func Values(c Context, params []Parameter) []Value {
	vals := make([]Value, len(params))
	for i, p := range params {
		vals[i] = p.resolve(c)
	}
	return vals
}

func (p Parameter) resolve(c Context) Value {
	if p.Evaluated() {
		return p.Value
	}
	return FunctionByName(c, p.Raw)
}

// FunctionByName returns the single function declared under the
// possibly qualified name. It panics with VariableNotFoundError if
// there is none.
func FunctionByName(c Context, name string) Value {
	ns, base := SplitName(name)
	fns := c.Functions(ns, base)
	switch len(fns) {
	case 0:
		panic(&VariableNotFoundError{Namespace: ns, Name: base})
	case 1:
		return FunctionValue{fns[0]}
	}
	candidates := make([]string, len(fns))
	for i, fn := range fns {
		candidates[i] = fn.Signature()
	}
	panic(&AmbiguousOverloadError{Name: name, Candidates: candidates})
}

// Reduction is an operation over a range of sequence elements.
type Reduction int

const (
	Collect Reduction = iota
	Sum
	Product
	Mean
	StdDeviation
)

var reductionOps = [...]string{
	Collect:      "..",
	Sum:          "++",
	Product:      "**",
	Mean:         "!!",
	StdDeviation: "!%",
}

func (r Reduction) String() string {
	return reductionOps[r]
}

// ReductionOp returns the reduction written with the operator op.
func ReductionOp(op string) (Reduction, bool) {
	for r, s := range reductionOps {
		if s == op {
			return Reduction(r), true
		}
	}
	return 0, false
}

// Sequence is a named integer-indexed family of values.
type Sequence interface {
	Name() string
	// Element returns element i. A parametrized sequence returns a
	// function, which is called with args if there are any.
	Element(c Context, i int, args []Parameter) Value
	// Reduce applies r to the elements from..to inclusive; from may
	// exceed to.
	Reduce(c Context, r Reduction, from, to int, args []Parameter) Value
}

// SequenceDecl is one element formula of a sequence declaration.
type SequenceDecl struct {
	Namespace string
	Name      string
	// IndexVar is the name of the index in a general formula. It is
	// empty for a formula fixing a single element.
	IndexVar string
	// Index is the element a fixed formula defines.
	Index  int
	Params []string
	Source string
}
