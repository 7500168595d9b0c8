// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"github.com/MovGP0/UnitSystem-sub000/config"
)

// Namespace is a named scope used as a value. Its members are reached
// with ns::name, ns!name or ns->name(args).
type Namespace struct {
	name string
}

// NewNamespace returns the value naming the namespace.
func NewNamespace(name string) Namespace {
	return Namespace{name}
}

// Name returns the namespace name.
func (ns Namespace) Name() string {
	return ns.name
}

func (ns Namespace) String() string {
	return "(" + ns.Sprint(nil) + ")"
}

func (ns Namespace) Sprint(*config.Config) string {
	return "<namespace " + ns.name + ">"
}

func (ns Namespace) ProgString() string {
	return ns.name
}

func (ns Namespace) Eval(Context) Value {
	return ns
}

func (ns Namespace) Kind() Kind {
	return NamespaceKind
}

// member returns the variable or, with arguments, calls the function
// of that name in the namespace.
func (ns Namespace) member(c Context, name string, args []Value, call bool) Value {
	if !call {
		if v, ok := c.Lookup(ns.name, name); ok {
			return v
		}
		if fns := c.Functions(ns.name, name); len(fns) > 0 {
			return FunctionByName(c, Qualify(ns.name, name))
		}
		if name == "names" {
			names := c.Names(ns.name)
			t := make(Tuple, len(names))
			for i, n := range names {
				t[i] = Text(n)
			}
			return t
		}
		panic(&VariableNotFoundError{Namespace: ns.name, Name: name})
	}
	fn := c.Resolve(ns.name, name, len(args), nil)
	params := make([]Parameter, len(args))
	for i, a := range args {
		params[i] = Parameter{Value: a}
	}
	return c.Call(fn, params)
}
