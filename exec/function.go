// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"fmt"
	"strings"

	"github.com/MovGP0/UnitSystem-sub000/value"
)

// Define installs the function. A function with the same name and
// parameter names replaces the earlier one; other overloads remain.
func (c *Context) Define(fn *value.Function) {
	key := value.Qualify(fn.Namespace, fn.Name)
	if fn.Namespace != "" {
		if scope := c.scope(fn.Namespace, true); scope.readOnly {
			value.Errorf("cannot define %s: namespace %s is read-only", fn.Signature(), fn.Namespace)
		}
	}
	seen := make(map[string]bool)
	for _, p := range fn.Params {
		if seen[p.Name] {
			panic(&value.SyntaxError{Msg: fmt.Sprintf("duplicate parameter %s in %s", p.Name, fn.Signature())})
		}
		seen[p.Name] = true
	}
	fns := c.functions[key]
	for i, old := range fns {
		if old.Key() == fn.Key() {
			if old.ReadOnly {
				value.Errorf("cannot redefine built-in function %s", old.Signature())
			}
			fns[i] = fn
			c.logDefine(fn, "redefine")
			return
		}
	}
	c.functions[key] = append(fns, fn)
	c.logDefine(fn, "define")
}

func (c *Context) logDefine(fn *value.Function, what string) {
	if c.config.Debug("parse") {
		c.logger().Debug(what, "function", fn.Signature(), "source", fn.Source)
	}
}

// Functions returns the overloads declared under the name. Unqualified
// names are searched in the global scope, then the imported namespaces;
// the first scope declaring the name hides the later ones.
func (c *Context) Functions(ns, name string) []*value.Function {
	if ns != "" {
		return c.functions[value.Qualify(ns, name)]
	}
	if fns := c.functions[name]; len(fns) > 0 {
		return fns
	}
	for _, imp := range c.imports {
		if fns := c.functions[value.Qualify(imp, name)]; len(fns) > 0 {
			return fns
		}
	}
	return nil
}

// Resolve selects the overload for a call. Without named arguments it
// matches on argument count, preferring an exact arity to a variadic
// function. With named arguments every name must be a parameter of the
// candidate and none may fall on a position already filled positionally.
func (c *Context) Resolve(ns, name string, nargs int, named []string) *value.Function {
	cands := c.Functions(ns, name)
	var match []*value.Function
	positional := nargs - len(named)
	for _, fn := range cands {
		if !fn.Accepts(nargs) {
			continue
		}
		ok := true
		for _, n := range named {
			if i := fn.ParamIndex(n); i < positional {
				ok = false
				break
			}
		}
		if ok {
			match = append(match, fn)
		}
	}
	if len(match) > 1 && len(named) == 0 {
		// An exact arity beats a variadic signature.
		var exact []*value.Function
		for _, fn := range match {
			if !fn.Variadic {
				exact = append(exact, fn)
			}
		}
		if len(exact) > 0 {
			match = exact
		}
	}
	switch len(match) {
	case 0:
		panic(&value.FunctionNotFoundError{Namespace: ns, Name: name, Arity: nargs, Named: named})
	case 1:
		return match[0]
	}
	sigs := make([]string, len(match))
	for i, fn := range match {
		sigs[i] = fn.Signature()
	}
	panic(&value.AmbiguousOverloadError{Name: value.Qualify(ns, name), Candidates: sigs})
}

// arrange puts arguments into declared parameter order. Positional
// arguments come first, then named ones fill their parameters.
func arrange(fn *value.Function, args []value.Parameter) []value.Parameter {
	named := false
	for _, a := range args {
		if a.Name != "" {
			named = true
			break
		}
	}
	if !named {
		return args
	}
	out := make([]value.Parameter, len(args))
	filled := make([]bool, len(args))
	for i, a := range args {
		if a.Name == "" {
			out[i] = a
			filled[i] = true
			continue
		}
		j := fn.ParamIndex(a.Name)
		if j < 0 || j >= len(out) {
			panic(&value.FunctionNotFoundError{Namespace: fn.Namespace, Name: fn.Name, Arity: len(args), Named: []string{a.Name}})
		}
		if filled[j] {
			value.Errorf("argument %s of %s given twice", a.Name, fn.Signature())
		}
		out[j] = a
		out[j].Name = ""
		filled[j] = true
	}
	return out
}

// Call invokes the function. User functions run in a new frame holding
// the arguments; built-ins receive values according to each
// parameter's passing mode.
func (c *Context) Call(fn *value.Function, args []value.Parameter) value.Value {
	if !fn.Accepts(len(args)) {
		panic(&value.FunctionNotFoundError{Namespace: fn.Namespace, Name: fn.Name, Arity: len(args)})
	}
	args = arrange(fn, args)
	if c.config.Debug("calls") {
		c.logger().Debug("call", "function", fn.Signature(), "args", c.argString(args), "depth", len(c.Stack))
	}
	frame := &value.Frame{Name: value.Qualify(fn.Namespace, fn.Name), Params: args}
	result := c.enter(frame, func() value.Value {
		if fn.Native != nil {
			return fn.Native(c, c.bind(fn, args))
		}
		return fn.Body(c).Eval(c)
	})
	if c.config.Debug("calls") {
		c.logger().Debug("return", "function", fn.Signature(), "value", result.Sprint(c.config))
	}
	return result
}

// enter runs body in a new frame. If body panics, the frame is
// recorded for the stack trace and popped as the panic passes through;
// the panic itself is recovered only once, by the caller of the
// outermost evaluation.
func (c *Context) enter(frame *value.Frame, body func() value.Value) value.Value {
	if uint(len(c.Stack)) >= c.config.MaxDepth() {
		value.Errorf("stack overflow in %s", frame.Name)
	}
	c.push(frame)
	done := false
	defer func() {
		if !done {
			c.unwind()
			return
		}
		c.pop()
	}()
	result := body()
	done = true
	return result
}

// bind converts arguments for a built-in according to its parameters'
// passing modes.
func (c *Context) bind(fn *value.Function, args []value.Parameter) []value.Value {
	vals := make([]value.Value, len(args))
	for i, a := range args {
		mode := value.ByValue
		if i < len(fn.Params) {
			mode = fn.Params[i].Mode
		} else if len(fn.Params) > 0 {
			mode = fn.Params[len(fn.Params)-1].Mode
		}
		switch mode {
		case value.Raw:
			vals[i] = value.Text(a.Raw)
		case value.FunctionHandle:
			v, ok := value.Deref(c, value.Values(c, args[i:i+1])[0]).(value.FunctionValue)
			if !ok {
				value.Errorf("argument %d of %s must be a function", i+1, fn.Signature())
			}
			vals[i] = v
		default:
			vals[i] = value.Deref(c, value.Values(c, args[i:i+1])[0])
		}
	}
	return vals
}

func (c *Context) argString(args []value.Parameter) string {
	s := make([]string, len(args))
	for i, a := range args {
		if !a.Evaluated() {
			s[i] = a.Raw
		} else {
			s[i] = short(a.Value.Sprint(c.config))
		}
	}
	return strings.Join(s, ", ")
}

// unwind records and pops the top frame while an error propagates.
func (c *Context) unwind() {
	f := c.Frame()
	c.trace = append(c.trace, fmt.Sprintf("%s(%s)", f.Name, c.argString(f.Params)))
	c.pop()
}

// StackTrace returns the calls an error unwound, outermost first,
// and forgets them.
func (c *Context) StackTrace() []string {
	const max = 25
	trace := c.trace
	c.trace = nil
	if len(trace) > max {
		trace = trace[:max]
	}
	lines := make([]string, len(trace))
	for i, t := range trace {
		lines[len(trace)-1-i] = t
	}
	return lines
}

// short returns its argument, truncating if it's too long.
func short(s string) string {
	if len(s) > 50 {
		s = s[:50] + "..."
	}
	return s
}
