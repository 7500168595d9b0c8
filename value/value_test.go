// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value_test

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MovGP0/UnitSystem-sub000/config"
	"github.com/MovGP0/UnitSystem-sub000/exec"
	"github.com/MovGP0/UnitSystem-sub000/parse"
	. "github.com/MovGP0/UnitSystem-sub000/value"
)

func newContext() *exec.Context {
	conf := new(config.Config)
	c := exec.NewContext(conf)
	c.SetCompiler(parse.NewCompiler(conf))
	return c
}

// raised runs f and returns the calculator error it raises, if any.
func raised(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			var ok bool
			err, ok = AsError(r)
			if !ok {
				panic(r)
			}
		}
	}()
	f()
	return nil
}

func nums(fs ...float64) []Value {
	v := make([]Value, len(fs))
	for i, f := range fs {
		v[i] = Number(f)
	}
	return v
}

func rat(a, b int64) Rational {
	return NewRational(big.NewInt(a), big.NewInt(b))
}

func TestPromotion(t *testing.T) {
	c := newContext()
	conf := c.Config()
	tests := []struct {
		u    Value
		op   string
		v    Value
		kind Kind
		want string
	}{
		{Number(2), "+", Number(3), NumberKind, "5"},
		{Number(2), "*", rat(1, 3), RationalKind, "2/3"},
		{rat(1, 3), "+", rat(1, 6), RationalKind, "1/2"},
		{Number(2), "+", Complex(complex(1, 1)), ComplexKind, "3+1i"},
		{rat(1, 2), "*", Complex(complex(0, 2)), ComplexKind, "0+1i"},
		{Number(1), "+", Quaternion{0, 0, 2, 0}, QuaternionKind, "1+0i+2j+0k"},
		{Quaternion{0, 0, 2, 0}, "*", Quaternion{0, 0, 0, 3}, QuaternionKind, "0+6i+0j+0k"},
		{NewSymbol("x"), "*", Number(2), SymbolicKind, "2*x"},
		{Number(2), "^", Number(-2), NumberKind, "0.25"},
	}
	for _, test := range tests {
		got := Binary(c, test.u, test.op, test.v)
		assert.Equal(t, test.kind, got.Kind(), "%s %s %s", test.u, test.op, test.v)
		assert.Equal(t, test.want, got.Sprint(conf), "%s %s %s", test.u, test.op, test.v)
	}
}

func TestIncompatibleKinds(t *testing.T) {
	c := newContext()
	err := raised(func() { Binary(c, Complex(1), "+", Quaternion{1, 0, 0, 0}) })
	var unsupported *UnsupportedOperationError
	require.True(t, errors.As(err, &unsupported), "%v", err)
	assert.Equal(t, ComplexKind, unsupported.Left)
	assert.Equal(t, QuaternionKind, unsupported.Right)

	err = raised(func() { Binary(c, NewSymbol("x"), "+", Complex(1)) })
	assert.True(t, errors.As(err, &unsupported), "%v", err)
}

func TestDimensionMismatch(t *testing.T) {
	c := newContext()
	err := raised(func() { Binary(c, NewVector(nums(1, 2)), "+", NewVector(nums(1, 2, 3))) })
	var mismatch *DimensionMismatchError
	require.True(t, errors.As(err, &mismatch), "%v", err)
	assert.Equal(t, "dimension mismatch for +: vector[2] and vector[3]", err.Error())
}

func TestEqual(t *testing.T) {
	c := newContext()
	assert.True(t, Equal(c, rat(1, 2), Number(0.5)))
	assert.True(t, Equal(c, Number(3), Complex(3)))
	assert.False(t, Equal(c, Complex(1), Quaternion{1, 0, 0, 0}))
	assert.False(t, Equal(c, Text("1"), Number(1)))
	assert.True(t, Equal(c, NewVector(nums(1, 2)), NewVector(nums(1, 2))))
	assert.False(t, Equal(c, NewVector(nums(1, 2)), NewVector(nums(1, 2, 3))))
}

func TestClose(t *testing.T) {
	c := newContext()
	assert.True(t, Close(c, Number(1), Number(1+1e-14)))
	assert.False(t, Close(c, Number(1), Number(1.001)))
	assert.True(t, Close(c, Number(1e20), Number(1e20+1e7)))
}

func TestMatrixInverse(t *testing.T) {
	c := newContext()
	conf := c.Config()
	m := NewMatrix([][]Value{nums(1, 2), nums(3, 4)})
	assert.Equal(t, "-2", m.Det(c).Sprint(conf))
	inv := m.Inverse(c)
	assert.Equal(t, "[[-2, 1], [1.5, -0.5]]", inv.Sprint(conf))
	assert.True(t, Close(c, Binary(c, m, "*", inv), Identity(2)))

	m = NewMatrix([][]Value{nums(2, 0, 1), nums(1, 3, 2), nums(1, 1, 2)})
	assert.Equal(t, "6", m.Det(c).Sprint(conf))
	assert.True(t, Close(c, Binary(c, m, "*", m.Inverse(c)), Identity(3)))
	assert.True(t, Close(c, Binary(c, m.Inverse(c), "*", m), Identity(3)))
}

func TestSingularMatrix(t *testing.T) {
	c := newContext()
	m := NewMatrix([][]Value{nums(1, 2), nums(2, 4)})
	err := raised(func() { m.Inverse(c) })
	assert.EqualError(t, err, "matrix is singular")

	// Singular up to rounding.
	m = NewMatrix([][]Value{nums(0.1, 0.2), nums(0.3, 0.6000000000000001)})
	err = raised(func() { m.Inverse(c) })
	assert.EqualError(t, err, "matrix is singular")
}

func TestRationalMatrixIsExact(t *testing.T) {
	c := newContext()
	m := NewMatrix([][]Value{{rat(1, 1), rat(1, 2)}, {rat(1, 3), rat(1, 4)}})
	inv := m.Inverse(c)
	assert.True(t, Equal(c, Binary(c, m, "*", inv), Identity(2)))
}

func TestDerivative(t *testing.T) {
	c := newContext()
	x := NewSymbol("x")
	tests := []struct {
		expr Value
		want string
	}{
		{Binary(c, x, "^", Number(2)), "2*x"},
		{Binary(c, x, "^", Number(3)), "3*x^2"},
		{Binary(c, Binary(c, x, "*", Number(5)), "+", Number(1)), "5"},
		{SymbolicCall("sin", x), "cos(x)"},
		{Number(7), "0"},
	}
	for _, test := range tests {
		got := Differentiate(c, test.expr, "x")
		assert.Equal(t, test.want, got.Sprint(c.Config()), "d/dx %s", test.expr)
	}
}

func TestSubstitute(t *testing.T) {
	c := newContext()
	e := Binary(c, Binary(c, NewSymbol("x"), "^", Number(2)), "+", NewSymbol("y"))
	got := Execute(c, e, "subs", []Value{NewSymbol("x"), Number(3)})
	assert.Equal(t, "9+y", got.Sprint(c.Config()))
	got = Execute(c, got, "subs", []Value{NewSymbol("y"), Number(1)})
	assert.Equal(t, "10", Execute(c, got, "eval", nil).Sprint(c.Config()))
}

func TestCollect(t *testing.T) {
	v := CollectValues(nums(1, 2, 3), false)
	assert.Equal(t, VectorKind, v.Kind())

	m := CollectValues([]Value{NewVector(nums(1, 2)), NewVector(nums(3, 4))}, false)
	require.Equal(t, MatrixKind, m.Kind())
	assert.Equal(t, "matrix[2,2]", Shape(m))

	tensor := CollectValues([]Value{m, m}, false)
	assert.Equal(t, TensorKind, tensor.Kind())

	err := raised(func() { CollectValues([]Value{tensor, tensor}, false) })
	assert.Error(t, err)
	assert.Equal(t, TensorKind, CollectValues([]Value{tensor, tensor}, true).Kind())

	err = raised(func() { CollectValues([]Value{NewVector(nums(1)), NewVector(nums(1, 2))}, false) })
	var mismatch *DimensionMismatchError
	assert.True(t, errors.As(err, &mismatch), "%v", err)
}

func TestReduce(t *testing.T) {
	c := newContext()
	values := nums(1, 2, 3)
	assert.Equal(t, Number(6), Reduce(c, Sum, values))
	assert.Equal(t, Number(6), Reduce(c, Product, values))
	assert.Equal(t, Number(2), Reduce(c, Mean, values))
	sd := ToFloat(c, Reduce(c, StdDeviation, values))
	assert.InDelta(t, math.Sqrt(2.0/3.0), sd, 1e-12)

	assert.Equal(t, Number(0), Reduce(c, Sum, nil))
	assert.Equal(t, Number(1), Reduce(c, Product, nil))
	assert.EqualError(t, raised(func() { Reduce(c, Mean, nil) }), "mean of empty range")
}

func TestElements(t *testing.T) {
	c := newContext()
	got := Elements(c, Number(3))
	if diff := cmp.Diff(nums(0, 1, 2), got); diff != "" {
		t.Errorf("Elements(3) mismatch (-want +got):\n%s", diff)
	}
	got = Elements(c, Text("ab"))
	assert.Equal(t, []Value{Text("a"), Text("b")}, got)
	assert.Equal(t, "[3, 2, 1]", Range(c, Number(3), Number(1)).Sprint(c.Config()))
}

func TestPosition(t *testing.T) {
	c := newContext()
	v := NewVector(nums(10, 20, 30))
	assert.Equal(t, Number(10), Position(c, v, 0))
	assert.Equal(t, Number(30), Position(c, v, -1))
	assert.Error(t, raised(func() { Position(c, v, 3) }))
}

func TestSetIndex(t *testing.T) {
	c := newContext()
	v := NewVector(nums(1, 2, 3))
	w := SetIndex(c, v, []Value{Number(1)}, Number(9))
	assert.Equal(t, "[1, 9, 3]", w.Sprint(c.Config()))
	assert.Equal(t, "[1, 2, 3]", v.Sprint(c.Config()), "original changed")

	m := NewMatrix([][]Value{nums(1, 2), nums(3, 4)})
	m2 := SetIndex(c, m, []Value{Number(1), Number(0)}, Number(7))
	assert.Equal(t, "[[1, 2], [7, 4]]", m2.Sprint(c.Config()))
}

func TestNumberFormat(t *testing.T) {
	var conf config.Config
	assert.Equal(t, "0", Number(math.Copysign(0, -1)).Sprint(&conf))
	assert.Equal(t, "0.333333333333", Number(1.0/3).Sprint(&conf))
	conf.SetFormat("%.3f")
	assert.Equal(t, "0.333", Number(1.0/3).Sprint(&conf))
	assert.Equal(t, "1/3", rat(2, 6).Sprint(&conf))
	assert.Equal(t, "-2", rat(-4, 2).Sprint(&conf))
}

func TestTruth(t *testing.T) {
	c := newContext()
	assert.True(t, Truth(c, Number(2)))
	assert.False(t, Truth(c, Number(0)))
	assert.False(t, Truth(c, rat(0, 1)))
	assert.Error(t, raised(func() { Truth(c, Text("yes")) }))
}

func TestParameterFallback(t *testing.T) {
	c := newContext()
	p := Parameter{Value: Number(2), Raw: "2"}
	assert.True(t, p.Evaluated())
	assert.Equal(t, []Value{Number(2)}, Values(c, []Parameter{p}))

	// An argument naming no variable is taken as a function name.
	p = Parameter{Raw: "sqrt"}
	assert.False(t, p.Evaluated())
	f := Values(c, []Parameter{p})[0]
	assert.Equal(t, FunctionKind, f.Kind())

	var notFound *VariableNotFoundError
	err := raised(func() { Values(c, []Parameter{{Raw: "nothing"}}) })
	assert.True(t, errors.As(err, &notFound), "%v", err)
}
