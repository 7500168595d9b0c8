// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"math"
	"math/big"
	"strings"

	"github.com/MovGP0/UnitSystem-sub000/value"
)

// BuiltinNamespace holds the built-in constants and functions. Its
// members are visible without qualification.
const BuiltinNamespace = "Math"

// integrationSteps is the number of Simpson intervals integrate uses
// unless told otherwise.
const integrationSteps = 1000

func param(name string) value.Param {
	return value.Param{Name: name}
}

func (c *Context) installBuiltins() {
	ns := &namespace{name: BuiltinNamespace, vars: Symtab{}}
	ns.vars["pi"] = value.Number(math.Pi)
	ns.vars["e"] = value.Number(math.E)
	c.namespaces[BuiltinNamespace] = ns
	c.imports = append(c.imports, BuiltinNamespace)

	for _, op := range []string{
		"sqrt", "exp", "ln", "log", "sin", "cos", "tan", "asin", "acos", "atan",
		"abs", "floor", "ceil", "round", "conj",
	} {
		op := op
		c.builtin(op, func(c value.Context, args []value.Value) value.Value {
			return value.Unary(c, op, args[0])
		}, param("x"))
	}
	for _, name := range []string{"det", "inverse", "transpose", "adjoint", "cofactors"} {
		name := name
		c.builtin(name, func(c value.Context, args []value.Value) value.Value {
			if _, ok := args[0].(*value.Matrix); !ok {
				panic(&value.UnsupportedOperationError{Op: name, Right: args[0].Kind(), Unary: true})
			}
			return value.Execute(c, args[0], name, []value.Value{})
		}, param("m"))
	}
	c.builtin("norm", func(c value.Context, args []value.Value) value.Value {
		return value.Norm(c, args[0])
	}, param("x"))
	c.builtin("identity", func(c value.Context, args []value.Value) value.Value {
		n := value.ToInt(c, args[0])
		if n < 0 {
			value.Errorf("identity: negative size %d", n)
		}
		return value.Identity(n)
	}, param("n"))
	c.builtin("size", builtinSize, param("x"))
	c.builtin("complex", func(c value.Context, args []value.Value) value.Value {
		return value.Complex(complex(value.ToFloat(c, args[0]), value.ToFloat(c, args[1])))
	}, param("re"), param("im"))
	c.builtin("quaternion", func(c value.Context, args []value.Value) value.Value {
		var q value.Quaternion
		for i := range q {
			q[i] = value.ToFloat(c, args[i])
		}
		return q
	}, param("w"), param("x"), param("y"), param("z"))
	c.builtin("rational", func(c value.Context, args []value.Value) value.Value {
		switch x := args[0].(type) {
		case value.Rational:
			return x
		case value.Number:
			r := new(big.Rat)
			if r.SetFloat64(float64(x)) == nil {
				value.Errorf("rational: cannot convert %s", x.Sprint(c.Config()))
			}
			return value.NewRational(r.Num(), r.Denom())
		}
		panic(&value.UnsupportedOperationError{Op: "rational", Right: args[0].Kind(), Unary: true})
	}, param("x"))
	c.builtin("rational", func(c value.Context, args []value.Value) value.Value {
		num, den := value.ToInt(c, args[0]), value.ToInt(c, args[1])
		if den == 0 {
			value.Errorf("rational: zero denominator")
		}
		return value.NewRational(big.NewInt(int64(num)), big.NewInt(int64(den)))
	}, param("num"), param("den"))
	c.variadic("D", func(c value.Context, args []value.Value) value.Value {
		return value.NewDerivative(symbolNames("D", args)...)
	}, param("symbols"))
	c.variadic("grad", func(c value.Context, args []value.Value) value.Value {
		return value.NewGradient(symbolNames("grad", args)...)
	}, param("symbols"))
	c.builtin("map", func(c value.Context, args []value.Value) value.Value {
		f := args[0].(value.FunctionValue)
		return value.Map(args[1], func(x value.Value) value.Value {
			return f.Call(c, x)
		})
	}, value.Param{Name: "f", Mode: value.FunctionHandle}, param("x"))
	c.variadic("apply", func(c value.Context, args []value.Value) value.Value {
		return args[0].(value.FunctionValue).Call(c, args[1:]...)
	}, value.Param{Name: "f", Mode: value.FunctionHandle}, param("args"))
	c.builtin("integrate", func(c value.Context, args []value.Value) value.Value {
		return integrate(c, args[0].(value.FunctionValue), args[1], args[2], integrationSteps)
	}, value.Param{Name: "f", Mode: value.FunctionHandle}, param("from"), param("to"))
	c.builtin("integrate", func(c value.Context, args []value.Value) value.Value {
		return integrate(c, args[0].(value.FunctionValue), args[1], args[2], value.ToInt(c, args[3]))
	}, value.Param{Name: "f", Mode: value.FunctionHandle}, param("from"), param("to"), param("steps"))
	c.variadic("sum", reduceArgs(value.Sum), param("values"))
	c.variadic("mean", reduceArgs(value.Mean), param("values"))
	c.builtin("set", c.builtinSet, value.Param{Name: "name", Mode: value.Raw}, param("value"))
	c.builtin("nameof", func(c value.Context, args []value.Value) value.Value {
		return args[0]
	}, value.Param{Name: "x", Mode: value.Raw})

	c.RegisterType("Random", newRandom)
	c.RegisterType("Stats", newStats)

	ns.readOnly = true
}

func (c *Context) builtin(name string, impl value.NativeFunc, params ...value.Param) {
	c.Define(value.NewNative(BuiltinNamespace, name, impl, params...))
}

// variadic defines a built-in whose last parameter takes any number of
// arguments, including none.
func (c *Context) variadic(name string, impl value.NativeFunc, params ...value.Param) {
	fn := value.NewNative(BuiltinNamespace, name, impl, params...)
	fn.Variadic = true
	c.Define(fn)
}

func builtinSize(c value.Context, args []value.Value) value.Value {
	switch x := args[0].(type) {
	case *value.Vector:
		return value.Number(x.Len())
	case *value.Matrix:
		rows, cols := x.Dims()
		if rows == cols {
			return value.Number(rows)
		}
		return value.NewVector([]value.Value{value.Number(rows), value.Number(cols)})
	case *value.Tensor, value.Tuple, value.Text:
		return value.Number(len(value.Elements(c, x)))
	}
	if args[0].Kind().Scalar() {
		return value.Number(1)
	}
	panic(&value.UnsupportedOperationError{Op: "size", Right: args[0].Kind(), Unary: true})
}

func symbolNames(fn string, args []value.Value) []string {
	if len(args) == 0 {
		value.Errorf("%s needs at least one symbol", fn)
	}
	names := make([]string, len(args))
	for i, a := range args {
		switch x := a.(type) {
		case value.Symbolic:
			if name, ok := x.Symbol(); ok {
				names[i] = name
				continue
			}
		case value.Text:
			names[i] = string(x)
			continue
		}
		value.Errorf("%s: argument %d is not a symbol", fn, i+1)
	}
	return names
}

// reduceArgs reduces its arguments, or the elements of its single
// container argument.
func reduceArgs(r value.Reduction) value.NativeFunc {
	return func(c value.Context, args []value.Value) value.Value {
		if len(args) == 1 && args[0].Kind().Container() {
			args = value.Elements(c, args[0])
		}
		return value.Reduce(c, r, args)
	}
}

// integrate applies Simpson's rule to f over [from, to].
func integrate(c value.Context, f value.FunctionValue, from, to value.Value, steps int) value.Value {
	if f.Function().Arity() != 1 && !f.Function().Variadic {
		value.Errorf("integrate: %s must take one argument", f.Function().Signature())
	}
	if steps < 2 {
		value.Errorf("integrate: need at least 2 steps, have %d", steps)
	}
	if steps%2 == 1 {
		steps++
	}
	a, b := value.ToFloat(c, from), value.ToFloat(c, to)
	h := (b - a) / float64(steps)
	at := func(x float64) float64 {
		return value.ToFloat(c, value.Deref(c, f.Call(c, value.Number(x))))
	}
	sum := at(a) + at(b)
	for i := 1; i < steps; i++ {
		w := 4.0
		if i%2 == 0 {
			w = 2
		}
		sum += w * at(a+float64(i)*h)
	}
	return value.Number(sum * h / 3)
}

// builtinSet assigns to the variable named by the first argument's
// text. If the variable holds a reference, the referenced variable is
// assigned instead.
func (c *Context) builtinSet(_ value.Context, args []value.Value) value.Value {
	ns, name := value.SplitName(strings.TrimPrefix(string(args[0].(value.Text)), "&"))
	seen := make(map[value.Reference]bool)
	for {
		cur, ok := c.Lookup(ns, name)
		if !ok {
			break
		}
		r, ok := cur.(value.Reference)
		if !ok {
			break
		}
		if seen[r] {
			value.Errorf("set: reference cycle through %s", r.ProgString())
		}
		seen[r] = true
		ns, name = r.Namespace, r.Name
	}
	c.Assign(ns, name, args[1])
	return args[1]
}
