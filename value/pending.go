// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"strings"

	"github.com/MovGP0/UnitSystem-sub000/config"
)

// Pending is an operator waiting for its operand, such as D($x).
// Multiplying it by a value applies the operator; multiplying two
// pending operators composes them.
type Pending struct {
	ops []pendingOp
}

type pendingOp struct {
	name    string // "D" or "grad"
	symbols []string
}

// NewDerivative returns the operator differentiating by the symbols in turn.
func NewDerivative(symbols ...string) Pending {
	var p Pending
	for i := len(symbols) - 1; i >= 0; i-- {
		p.ops = append(p.ops, pendingOp{name: "D", symbols: symbols[i : i+1]})
	}
	return p
}

// NewGradient returns the operator forming the vector of partial
// derivatives by the symbols.
func NewGradient(symbols ...string) Pending {
	return Pending{[]pendingOp{{name: "grad", symbols: symbols}}}
}

func (p Pending) String() string {
	return "(" + p.Sprint(nil) + ")"
}

func (p Pending) Sprint(*config.Config) string {
	parts := make([]string, len(p.ops))
	for i, op := range p.ops {
		parts[i] = op.name + "($" + strings.Join(op.symbols, ", $") + ")"
	}
	return strings.Join(parts, "*")
}

func (p Pending) ProgString() string {
	return "(" + p.Sprint(nil) + ")"
}

func (p Pending) Eval(Context) Value {
	return p
}

func (p Pending) Kind() Kind {
	return PendingKind
}

// apply applies the operators to v, innermost (rightmost) first.
func (p Pending) apply(c Context, v Value) Value {
	if q, ok := v.(Pending); ok {
		return Pending{append(append([]pendingOp(nil), p.ops...), q.ops...)}
	}
	for i := len(p.ops) - 1; i >= 0; i-- {
		op := p.ops[i]
		switch op.name {
		case "D":
			v = Differentiate(c, v, op.symbols[0])
		case "grad":
			elems := make([]Value, len(op.symbols))
			for j, s := range op.symbols {
				elems[j] = Differentiate(c, v, s)
			}
			v = NewVector(elems)
		}
	}
	return v
}

// Differentiate returns the derivative of v with respect to the symbol.
// Functions yield functions, containers are differentiated elementwise
// and constants yield zero.
func Differentiate(c Context, v Value, symbol string) Value {
	switch v := deref(c, v).(type) {
	case Number, Rational:
		return zero
	case Symbolic:
		return v.Derivative(symbol)
	case FunctionValue:
		d := v.fn.symbolic(c).Derivative(symbol)
		return symbolicFunction(c, d, v.fn.ParamNames())
	case *Vector, *Matrix, *Tensor:
		return mapElements(v, func(e Value) Value { return Differentiate(c, e, symbol) })
	case Pending:
		return v.apply(c, NewDerivative(symbol))
	}
	Errorf("cannot differentiate %s", v.Kind())
	panic("not reached")
}

// symbolicFunction compiles the symbolic expression as the body of a
// function with the given parameters.
func symbolicFunction(c Context, s Symbolic, params []string) FunctionValue {
	fn := NewFunction("", "", params, s.n.render(false))
	fn.Body(c)
	return FunctionValue{fn}
}
