// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math"
	"math/big"
	"math/cmplx"
)

// elementary are the real functions that extend to complex arguments.
var elementary = map[string]struct {
	real    func(float64) float64
	complex func(complex128) complex128
	// domain reports whether a real argument stays real.
	domain func(float64) bool
}{
	"sqrt": {math.Sqrt, cmplx.Sqrt, func(x float64) bool { return x >= 0 }},
	"exp":  {math.Exp, cmplx.Exp, nil},
	"ln":   {math.Log, cmplx.Log, func(x float64) bool { return x > 0 }},
	"log":  {math.Log10, cmplx.Log10, func(x float64) bool { return x > 0 }},
	"sin":  {math.Sin, cmplx.Sin, nil},
	"cos":  {math.Cos, cmplx.Cos, nil},
	"tan":  {math.Tan, cmplx.Tan, nil},
	"asin": {math.Asin, cmplx.Asin, func(x float64) bool { return x >= -1 && x <= 1 }},
	"acos": {math.Acos, cmplx.Acos, func(x float64) bool { return x >= -1 && x <= 1 }},
	"atan": {math.Atan, cmplx.Atan, nil},
}

// Unary evaluates the unary operator or elementary function op.
// Containers are mapped element by element.
func Unary(c Context, op string, v Value) Value {
	v = deref(c, v)
	switch x := v.(type) {
	case *Vector, *Matrix, *Tensor:
		return mapElements(x, func(e Value) Value { return Unary(c, op, e) })
	case FunctionValue:
		return unaryFunction(c, op, x)
	}
	switch op {
	case "neg":
		return Binary(c, Number(-1), "*", v)
	case "!":
		return factorial(c, v)
	case "%":
		return Binary(c, v, "/", Number(100))
	case "abs":
		return abs(c, v)
	case "conj":
		return conjugate(c, v)
	case "floor", "ceil", "round":
		return rounding(c, op, v)
	}
	e, ok := elementary[op]
	if !ok {
		unsupportedUnary(op, v)
	}
	switch x := v.(type) {
	case Number, Rational:
		f := ToFloat(c, x)
		if e.domain != nil && !e.domain(f) {
			Errorf("%s(%g) is not real", op, f)
		}
		return Number(e.real(f))
	case Complex:
		return Complex(e.complex(complex128(x)))
	case Symbolic:
		return SymbolicCall(op, x)
	}
	unsupportedUnary(op, v)
	panic("not reached")
}

// unaryFunction composes a unary operator with a function.
func unaryFunction(c Context, op string, f FunctionValue) Value {
	fn := &Function{Params: f.fn.Params}
	fn.body = &composeUnary{op: op, arg: composeOperand(f, true, f, paramIndex(f.fn))}
	fn.Source = fn.body.ProgString()
	fn.composed = true
	return FunctionValue{fn}
}

func paramIndex(fn *Function) map[string]int {
	index := make(map[string]int)
	for i, p := range fn.Params {
		index[p.Name] = i
	}
	return index
}

type composeUnary struct {
	op  string
	arg Expr
}

func (e *composeUnary) ProgString() string {
	return e.op + "(" + e.arg.ProgString() + ")"
}

func (e *composeUnary) Eval(c Context) Value {
	return c.EvalUnary(e.op, e.arg.Eval(c))
}

func abs(c Context, v Value) Value {
	switch x := v.(type) {
	case Number:
		return Number(math.Abs(float64(x)))
	case Rational:
		return Rational{new(big.Rat).Abs(x.r)}
	case Complex:
		return Number(cmplx.Abs(complex128(x)))
	case Quaternion:
		return Number(math.Sqrt(x.norm2()))
	}
	unsupportedUnary("abs", v)
	panic("not reached")
}

func conjugate(c Context, v Value) Value {
	switch x := v.(type) {
	case Number, Rational:
		return x
	case Complex:
		return Complex(cmplx.Conj(complex128(x)))
	case Quaternion:
		return x.conj()
	case *Vector, *Matrix, *Tensor:
		return mapElements(x, func(e Value) Value { return conjugate(c, e) })
	}
	unsupportedUnary("conj", v)
	panic("not reached")
}

func rounding(c Context, op string, v Value) Value {
	f := map[string]func(float64) float64{
		"floor": math.Floor,
		"ceil":  math.Ceil,
		"round": math.Round,
	}[op]
	switch x := v.(type) {
	case Number:
		return Number(f(float64(x)))
	case Rational:
		return numberToRational(Number(f(x.float())))
	case Complex:
		return Complex(complex(f(real(x)), f(imag(x))))
	}
	unsupportedUnary(op, v)
	panic("not reached")
}

// Norm returns the Euclidean norm of a vector, the Frobenius norm of a
// matrix, or the absolute value of a scalar.
func Norm(c Context, v Value) Value {
	switch x := deref(c, v).(type) {
	case *Vector:
		return x.norm(c)
	case *Matrix:
		return NewVector(x.data).norm(c)
	}
	return abs(c, deref(c, v))
}
