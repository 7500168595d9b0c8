// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MovGP0/UnitSystem-sub000/config"
	"github.com/MovGP0/UnitSystem-sub000/scan"
)

// PassMode says how a native function receives an argument.
type PassMode int

const (
	// ByValue passes the evaluated argument.
	ByValue PassMode = iota
	// Raw passes the argument's source text as Text.
	Raw
	// FunctionHandle passes a function, looking up the argument's
	// source text by name if it did not evaluate.
	FunctionHandle
)

// Param is a declared parameter.
type Param struct {
	Name string
	Mode PassMode
}

// NativeFunc implements a built-in function.
type NativeFunc func(c Context, args []Value) Value

// Function is a declared function. User functions have a Source body
// that is compiled on first use; built-ins have a Native implementation.
type Function struct {
	Name      string
	Namespace string
	Params    []Param
	// Variadic native functions accept any number of arguments beyond
	// their last declared parameter.
	Variadic bool
	ReadOnly bool
	Native   NativeFunc
	Source   string
	// SourceParams are the parameter names used by Source when they
	// differ from the names in Params.
	SourceParams []string

	body     Expr
	composed bool
}

// NewFunction returns a user function with the given body source.
func NewFunction(namespace, name string, params []string, source string) *Function {
	fn := &Function{
		Name:      name,
		Namespace: namespace,
		Source:    source,
	}
	for _, p := range params {
		fn.Params = append(fn.Params, Param{Name: p})
	}
	return fn
}

// NewNative returns a built-in function.
func NewNative(namespace, name string, impl NativeFunc, params ...Param) *Function {
	return &Function{
		Name:      name,
		Namespace: namespace,
		Params:    params,
		ReadOnly:  true,
		Native:    impl,
	}
}

// Arity returns the number of declared parameters.
func (fn *Function) Arity() int {
	return len(fn.Params)
}

// Accepts reports whether the function can be called with n arguments.
func (fn *Function) Accepts(n int) bool {
	if fn.Variadic {
		return n >= len(fn.Params)-1
	}
	return n == len(fn.Params)
}

// ParamIndex returns the position of the named parameter, or -1.
func (fn *Function) ParamIndex(name string) int {
	for i, p := range fn.Params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// ParamNames returns the declared parameter names.
func (fn *Function) ParamNames() []string {
	names := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		names[i] = p.Name
	}
	return names
}

func (fn *Function) sourceParams() []string {
	if fn.SourceParams != nil {
		return fn.SourceParams
	}
	return fn.ParamNames()
}

// Signature returns the name and parameter list, as in f(x, y).
func (fn *Function) Signature() string {
	names := fn.ParamNames()
	if fn.Variadic {
		names = append(names, "...")
	}
	return fmt.Sprintf("%s(%s)", Qualify(fn.Namespace, fn.Name), strings.Join(names, ", "))
}

// Key identifies the function within the registry: the qualified name
// and the parameter names in order.
func (fn *Function) Key() string {
	return fn.Signature()
}

// Body returns the compiled body, compiling it on first use.
func (fn *Function) Body(c Context) Expr {
	if fn.body == nil {
		if fn.Native != nil {
			Errorf("%s is built in", fn.Name)
		}
		body, err := c.Compile(fn.Source, fn.sourceParams())
		if err != nil {
			panic(err)
		}
		fn.body = body
	}
	return fn.body
}

// display returns the body source written with the declared
// parameter names.
func (fn *Function) display() string {
	if fn.SourceParams == nil || fn.composed {
		return fn.Source
	}
	names := make(map[string]string)
	for i, p := range fn.SourceParams {
		names[p] = fn.Params[i].Name
	}
	s, err := scan.Rename(fn.Source, names)
	if err != nil {
		return fn.Source
	}
	return s
}

// symbolic converts the function to a symbolic expression by calling
// it with each parameter bound to the symbol of the same name.
func (fn *Function) symbolic(c Context) Symbolic {
	args := make([]Parameter, len(fn.Params))
	for i, p := range fn.Params {
		args[i] = Parameter{Value: NewSymbol(p.Name), Raw: p.Name}
	}
	result := deref(c, c.Call(fn, args))
	switch result.(type) {
	case Symbolic, Number, Rational:
		return symbolicOf(c, result)
	}
	Errorf("%s does not have a symbolic form", fn.Signature())
	panic("not reached")
}

// FunctionValue is a function used as a value.
type FunctionValue struct {
	fn *Function
}

// NewFunctionValue wraps fn as a value.
func NewFunctionValue(fn *Function) FunctionValue {
	return FunctionValue{fn}
}

// Function returns the wrapped function.
func (f FunctionValue) Function() *Function {
	return f.fn
}

func (f FunctionValue) String() string {
	return "(" + f.Sprint(nil) + ")"
}

func (f FunctionValue) Sprint(*config.Config) string {
	if f.fn.Native != nil {
		return f.fn.Signature() + " = <built in>"
	}
	name := f.fn.Name
	if name == "" {
		name = "fn"
	}
	return fmt.Sprintf("%s(%s) = %s", Qualify(f.fn.Namespace, name), strings.Join(f.fn.ParamNames(), ", "), f.fn.display())
}

func (f FunctionValue) ProgString() string {
	if f.fn.Name == "" {
		return "<fn>"
	}
	return "@" + Qualify(f.fn.Namespace, f.fn.Name)
}

func (f FunctionValue) Eval(Context) Value {
	return f
}

func (f FunctionValue) Kind() Kind {
	return FunctionKind
}

// Call invokes the function with values in declared order.
func (f FunctionValue) Call(c Context, args ...Value) Value {
	params := make([]Parameter, len(args))
	for i, a := range args {
		params[i] = Parameter{Value: a}
	}
	return c.Call(f.fn, params)
}

// sameFunction reports whether two functions have the same parameters
// and bodies that compile to the same program.
func sameFunction(c Context, f, g *Function) (same bool) {
	if f == g {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := AsError(r); !ok {
				panic(r)
			}
			same = false
		}
	}()
	if f.Native != nil || g.Native != nil || len(f.Params) != len(g.Params) {
		return false
	}
	return f.Body(c).ProgString() == g.Body(c).ProgString()
}

// combine builds the function computing u op v, where at least one
// operand is a function. Parameters are unified by name and renamed to
// fresh names before the bodies are joined, so a free name in one body
// is never captured by a parameter of the other.
func combine(c Context, op string, u, v Value) Value {
	f, fok := u.(FunctionValue)
	g, gok := v.(FunctionValue)
	var params []string
	index := make(map[string]int)
	for _, fv := range []FunctionValue{f, g} {
		if fv.fn == nil {
			continue
		}
		for _, p := range fv.fn.ParamNames() {
			if _, ok := index[p]; !ok {
				index[p] = len(params)
				params = append(params, p)
			}
		}
	}
	fresh := make([]string, len(params))
	for i := range params {
		fresh[i] = fmt.Sprintf("_p%d", i)
	}
	operand := func(fv FunctionValue, ok bool, x Value) (string, bool) {
		if !ok {
			return x.ProgString(), true
		}
		if fv.fn.Native != nil || fv.fn.composed {
			return "", false
		}
		names := make(map[string]string)
		for i, p := range fv.fn.sourceParams() {
			names[p] = fresh[index[fv.fn.Params[i].Name]]
		}
		s, err := scan.Rename(fv.fn.Source, names)
		return s, err == nil
	}
	result := &Function{SourceParams: fresh}
	for _, p := range params {
		result.Params = append(result.Params, Param{Name: p})
	}
	left, lok := operand(f, fok, u)
	right, rok := operand(g, gok, v)
	if lok && rok {
		result.Source = "(" + left + ")" + op + "(" + right + ")"
		body, err := c.Compile(result.Source, fresh)
		if err == nil {
			result.body = body
			return FunctionValue{result}
		}
		// Text that is incomplete or otherwise not valid on its own,
		// such as an anonymous function operand, falls back below.
		var serr *SyntaxError
		if !errors.As(err, &serr) {
			panic(err)
		}
	}
	// The joined text did not compile; compose the calls instead.
	compose := &composeExpr{op: op}
	compose.left = composeOperand(f, fok, u, index)
	compose.right = composeOperand(g, gok, v, index)
	result.body = compose
	result.Source = compose.ProgString()
	result.composed = true
	return FunctionValue{result}
}

func composeOperand(fv FunctionValue, ok bool, x Value, index map[string]int) Expr {
	if !ok {
		return x
	}
	call := &composedCall{fn: fv.fn}
	for _, p := range fv.fn.Params {
		call.args = append(call.args, index[p.Name])
	}
	return call
}

// composeExpr is a function body applying op to two composed operands.
type composeExpr struct {
	op          string
	left, right Expr
}

func (e *composeExpr) ProgString() string {
	return fmt.Sprintf("(%s %s %s)", e.left.ProgString(), e.op, e.right.ProgString())
}

func (e *composeExpr) Eval(c Context) Value {
	return c.EvalBinary(e.left.Eval(c), e.op, e.right.Eval(c))
}

// composedCall calls a function with some of the enclosing frame's
// parameters.
type composedCall struct {
	fn   *Function
	args []int
}

func (e *composedCall) ProgString() string {
	args := make([]string, len(e.args))
	for i, a := range e.args {
		args[i] = fmt.Sprintf("#%d", a)
	}
	return fmt.Sprintf("%s(%s)", Qualify(e.fn.Namespace, e.fn.Name), strings.Join(args, ", "))
}

func (e *composedCall) Eval(c Context) Value {
	frame := c.Frame()
	params := make([]Parameter, len(e.args))
	for i, a := range e.args {
		params[i] = frame.Params[a]
		params[i].Name = ""
	}
	return c.Call(e.fn, params)
}
