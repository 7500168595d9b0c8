// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec // import "github.com/MovGP0/UnitSystem-sub000/exec"

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/MovGP0/UnitSystem-sub000/config"
	"github.com/MovGP0/UnitSystem-sub000/value"
)

// Symtab is a symbol table, a map of names to values.
type Symtab map[string]value.Value

// Compiler turns source text into expressions. It is implemented by
// ../parse, which depends on this package's callers, not on it.
type Compiler interface {
	Compile(text string, params []string) (value.Expr, error)
}

// namespace is a named scope of variables.
type namespace struct {
	name     string
	vars     Symtab
	readOnly bool
}

// Context holds execution context: the variables, functions, sequences
// and native types, plus the call stack.
// It is the only implementation of ../value/Context, but since it references the value
// package, there would be a cycle if that package depended on this type definition.
type Context struct {
	// config is the configuration state used for evaluation, printing, etc.
	// Accessed through the value.Context Config method.
	config *config.Config

	compiler Compiler

	// namespaces maps names to scopes; the global scope is "".
	namespaces map[string]*namespace
	// imports are the namespaces whose members are visible unqualified,
	// searched in order after the global scope.
	imports []string

	// functions maps qualified names to their overloads, in
	// declaration order.
	functions map[string][]*value.Function
	sequences map[string]*Sequence
	types     map[string]Constructor

	// Stack is a stack of call frames, one entry per function or
	// sequence element being evaluated, plus the 0th one at the base.
	Stack []*value.Frame

	// trace holds the frames unwound by the last error, innermost first.
	trace []string
}

// NewContext returns a new execution context with the built-in
// namespace installed. A compiler must be set before any function
// body or sequence formula is evaluated.
func NewContext(conf *config.Config) *Context {
	c := &Context{
		config:     conf,
		namespaces: map[string]*namespace{"": {vars: Symtab{}}},
		functions:  make(map[string][]*value.Function),
		sequences:  make(map[string]*Sequence),
		types:      make(map[string]Constructor),
		Stack:      []*value.Frame{{Name: "<top>"}},
	}
	c.installBuiltins()
	return c
}

// SetCompiler installs the compiler used for function bodies and
// sequence formulas.
func (c *Context) SetCompiler(compiler Compiler) {
	c.compiler = compiler
}

func (c *Context) Config() *config.Config {
	return c.config
}

func (c *Context) logger() *slog.Logger {
	return c.config.Logger()
}

// Compile compiles text with the installed compiler.
func (c *Context) Compile(text string, params []string) (value.Expr, error) {
	if c.compiler == nil {
		return nil, value.Error("no compiler installed")
	}
	return c.compiler.Compile(text, params)
}

func (c *Context) scope(name string, create bool) *namespace {
	ns := c.namespaces[name]
	if ns == nil && create {
		ns = &namespace{name: name, vars: Symtab{}}
		c.namespaces[name] = ns
	}
	return ns
}

// Lookup returns the value of a variable. Unqualified names are
// searched in the global scope, then in the imported namespaces, and
// finally taken as the name of a namespace.
func (c *Context) Lookup(ns, name string) (value.Value, bool) {
	if ns != "" {
		scope := c.scope(ns, false)
		if scope == nil {
			return nil, false
		}
		v, ok := scope.vars[name]
		return v, ok
	}
	if v, ok := c.namespaces[""].vars[name]; ok {
		return v, true
	}
	for _, imp := range c.imports {
		if v, ok := c.namespaces[imp].vars[name]; ok {
			return v, true
		}
	}
	if name != "" && c.namespaces[name] != nil {
		return value.NewNamespace(name), true
	}
	return nil, false
}

// Assign binds the variable in the namespace, creating the namespace if
// it does not exist. Read-only namespaces cannot be assigned to.
func (c *Context) Assign(ns, name string, val value.Value) {
	scope := c.scope(ns, true)
	if scope.readOnly {
		value.Errorf("cannot assign to %s: namespace %s is read-only", value.Qualify(ns, name), ns)
	}
	if c.config.Debug("types") {
		c.logger().Debug("assign", "name", value.Qualify(ns, name), "kind", val.Kind().String())
	}
	scope.vars[name] = val
}

// Delete removes a variable, or failing that a sequence or the
// functions of that name, and reports what it removed.
func (c *Context) Delete(ns, name string) (value.Value, bool) {
	if scope := c.scope(ns, false); scope != nil {
		if v, ok := scope.vars[name]; ok {
			if scope.readOnly {
				value.Errorf("cannot delete %s: namespace %s is read-only", value.Qualify(ns, name), ns)
			}
			delete(scope.vars, name)
			return v, true
		}
	}
	key := value.Qualify(ns, name)
	if _, ok := c.sequences[key]; ok {
		delete(c.sequences, key)
		return value.Text(key), true
	}
	if fns := c.functions[key]; len(fns) > 0 {
		for _, fn := range fns {
			if fn.ReadOnly {
				value.Errorf("cannot delete built-in function %s", fn.Signature())
			}
		}
		delete(c.functions, key)
		return value.NewFunctionValue(fns[0]), true
	}
	return nil, false
}

// Frame returns the innermost call frame.
func (c *Context) Frame() *value.Frame {
	return c.Stack[len(c.Stack)-1]
}

// push pushes a new frame onto the context stack.
func (c *Context) push(frame *value.Frame) {
	c.Stack = append(c.Stack, frame)
}

// pop pops the top frame from the stack.
func (c *Context) pop() {
	c.Stack = c.Stack[:len(c.Stack)-1]
}

// Reset discards the state of an evaluation that failed: frames above
// the base and loops left open in it.
func (c *Context) Reset() {
	c.Stack = c.Stack[:1]
	c.Stack[0].Loops = nil
	c.trace = nil
}

// EvalUnary evaluates a unary operator.
func (c *Context) EvalUnary(op string, right value.Value) value.Value {
	return value.Unary(c, op, right)
}

// EvalBinary evaluates a binary operator.
func (c *Context) EvalBinary(left value.Value, op string, right value.Value) value.Value {
	return value.Binary(c, left, op, right)
}

// Names returns the names declared in the namespace, sorted.
func (c *Context) Names(ns string) []string {
	seen := make(map[string]bool)
	if scope := c.scope(ns, false); scope != nil {
		for name := range scope.vars {
			seen[name] = true
		}
	}
	for key := range c.functions {
		if n, base := value.SplitName(key); n == ns {
			seen[base] = true
		}
	}
	for key := range c.sequences {
		if n, base := value.SplitName(key); n == ns {
			seen[base] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Namespaces returns the names of the namespaces, sorted.
func (c *Context) Namespaces() []string {
	var names []string
	for name := range c.namespaces {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (c *Context) String() string {
	return fmt.Sprintf("context{%d namespaces, %d functions, %d sequences}", len(c.namespaces), len(c.functions), len(c.sequences))
}
