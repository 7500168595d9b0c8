// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"strings"

	"github.com/MovGP0/UnitSystem-sub000/config"
)

// Vector is an ordered list of scalars.
type Vector struct {
	elems []Value
}

// NewVector returns a vector holding elems, which it does not copy.
func NewVector(elems []Value) *Vector {
	return &Vector{elems}
}

// Len returns the number of elements.
func (v *Vector) Len() int {
	return len(v.elems)
}

// At returns element i, counting from zero.
func (v *Vector) At(i int) Value {
	return v.elems[i]
}

// Elems returns a copy of the elements.
func (v *Vector) Elems() []Value {
	return append([]Value(nil), v.elems...)
}

func (v *Vector) String() string {
	return "(" + v.Sprint(nil) + ")"
}

func (v *Vector) Sprint(conf *config.Config) string {
	return sprintList(conf, v.elems, Value.Sprint)
}

func (v *Vector) ProgString() string {
	return sprintList(nil, v.elems, func(x Value, _ *config.Config) string { return x.ProgString() })
}

func sprintList(conf *config.Config, elems []Value, format func(Value, *config.Config) string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(format(e, conf))
	}
	b.WriteByte(']')
	return b.String()
}

func (v *Vector) Eval(Context) Value {
	return v
}

func (v *Vector) Kind() Kind {
	return VectorKind
}

func (v *Vector) index(i int) int {
	if i < 0 || i >= len(v.elems) {
		Errorf("index %d out of range for vector of length %d", i, len(v.elems))
	}
	return i
}

// rotate returns the vector rotated left by n positions.
func (v *Vector) rotate(n int) *Vector {
	l := len(v.elems)
	if l == 0 {
		return v
	}
	n = ((n % l) + l) % l
	elems := make([]Value, 0, l)
	elems = append(elems, v.elems[n:]...)
	elems = append(elems, v.elems[:n]...)
	return NewVector(elems)
}

// Range returns the vector from..to inclusive in steps of one,
// counting down if from > to.
func Range(c Context, u, v Value) Value {
	from, to := ToFloat(c, u), ToFloat(c, v)
	step := 1.0
	if from > to {
		step = -1
	}
	n := int((to-from)*step) + 1
	if n > 1<<24 {
		Errorf("range %g..%g too long", from, to)
	}
	elems := make([]Value, n)
	for i := range elems {
		elems[i] = Number(from + float64(i)*step)
	}
	return NewVector(elems)
}

func vectorDot(c Context, u, v *Vector) Value {
	if len(u.elems) != len(v.elems) {
		mismatch(".", u, v)
	}
	if len(u.elems) == 0 {
		return zero
	}
	var sum Value
	for i := range u.elems {
		p := Binary(c, u.elems[i], "*", v.elems[i])
		if sum == nil {
			sum = p
		} else {
			sum = Binary(c, sum, "+", p)
		}
	}
	return sum
}

func vectorCross(c Context, u, v *Vector) Value {
	if len(u.elems) != 3 || len(v.elems) != 3 {
		panic(&DimensionMismatchError{Op: "x", Left: Shape(u), Right: Shape(v)})
	}
	a, b := u.elems, v.elems
	term := func(i, j int) Value {
		return Binary(c, Binary(c, a[i], "*", b[j]), "-", Binary(c, a[j], "*", b[i]))
	}
	return NewVector([]Value{term(1, 2), term(2, 0), term(0, 1)})
}

// vectorOuter returns the matrix of products u[i]*v[j].
func vectorOuter(c Context, u, v *Vector) Value {
	m := newMatrix(len(u.elems), len(v.elems))
	for i, x := range u.elems {
		for j, y := range v.elems {
			m.set(i, j, Binary(c, x, "*", y))
		}
	}
	return m
}

func vectorBinary(c Context, op string, u, v Value) Value {
	x, xok := u.(*Vector)
	y, yok := v.(*Vector)
	switch op {
	case ".":
		if xok && yok {
			return vectorDot(c, x, y)
		}
	case "x":
		if xok && yok {
			return vectorCross(c, x, y)
		}
	case "(*)":
		if xok && yok {
			return vectorOuter(c, x, y)
		}
		return elementwise(c, "*", u, v)
	case "<<", ">>":
		if xok && !yok {
			n := ToInt(c, v)
			if op == ">>" {
				n = -n
			}
			return x.rotate(n)
		}
	case "+", "-", "*", "/", "%", "^", "^.":
		return elementwise(c, op, u, v)
	}
	unsupported(op, u, v)
	panic("not reached")
}

// norm returns the Euclidean length.
func (v *Vector) norm(c Context) Value {
	return Unary(c, "sqrt", vectorDot(c, v, conjugate(c, v).(*Vector)))
}

func (v *Vector) shape() string {
	return fmt.Sprintf("vector[%d]", len(v.elems))
}
