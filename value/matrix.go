// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"strings"

	"github.com/MovGP0/UnitSystem-sub000/config"
)

// Matrix is a rectangular array of scalars, stored by rows.
type Matrix struct {
	rows, cols int
	data       []Value
}

func newMatrix(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]Value, rows*cols)}
}

// NewMatrix returns a matrix with the given rows, which must all have
// the same length.
func NewMatrix(rows [][]Value) *Matrix {
	m := newMatrix(len(rows), 0)
	if len(rows) > 0 {
		m.cols = len(rows[0])
	}
	m.data = make([]Value, 0, m.rows*m.cols)
	for _, r := range rows {
		if len(r) != m.cols {
			Errorf("ragged matrix")
		}
		m.data = append(m.data, r...)
	}
	return m
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Matrix {
	if n < 1 {
		Errorf("identity matrix of size %d", n)
	}
	m := newMatrix(n, n)
	for i := range m.data {
		m.data[i] = zero
	}
	for i := 0; i < n; i++ {
		m.set(i, i, one)
	}
	return m
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) Value {
	return m.data[i*m.cols+j]
}

func (m *Matrix) set(i, j int, v Value) {
	m.data[i*m.cols+j] = v
}

// Row returns row i as a vector.
func (m *Matrix) Row(i int) *Vector {
	return NewVector(append([]Value(nil), m.data[i*m.cols:(i+1)*m.cols]...))
}

func (m *Matrix) rowVectors() []Value {
	rows := make([]Value, m.rows)
	for i := range rows {
		rows[i] = m.Row(i)
	}
	return rows
}

func (m *Matrix) String() string {
	return "(" + m.Sprint(nil) + ")"
}

func (m *Matrix) Sprint(conf *config.Config) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.Row(i).Sprint(conf))
	}
	b.WriteByte(']')
	return b.String()
}

func (m *Matrix) ProgString() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.Row(i).ProgString())
	}
	b.WriteByte(']')
	return b.String()
}

func (m *Matrix) Eval(Context) Value {
	return m
}

func (m *Matrix) Kind() Kind {
	return MatrixKind
}

func (m *Matrix) shape() string {
	return fmt.Sprintf("matrix[%d,%d]", m.rows, m.cols)
}

func (m *Matrix) square(op string) {
	if m.rows != m.cols {
		panic(&DimensionMismatchError{Op: op, Left: m.shape(), Right: "square matrix"})
	}
}

// Transpose returns the transposed matrix.
func (m *Matrix) Transpose() *Matrix {
	t := newMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.set(j, i, m.At(i, j))
		}
	}
	return t
}

// minor returns the matrix without row r and column col.
func (m *Matrix) minor(r, col int) *Matrix {
	n := newMatrix(m.rows-1, m.cols-1)
	n.data = n.data[:0]
	for i := 0; i < m.rows; i++ {
		if i == r {
			continue
		}
		for j := 0; j < m.cols; j++ {
			if j != col {
				n.data = append(n.data, m.At(i, j))
			}
		}
	}
	return n
}

// Det returns the determinant: closed forms up to 3×3, cofactor
// expansion along the first row above.
func (m *Matrix) Det(c Context) Value {
	m.square("det")
	mul := func(u, v Value) Value { return Binary(c, u, "*", v) }
	add := func(u, v Value) Value { return Binary(c, u, "+", v) }
	sub := func(u, v Value) Value { return Binary(c, u, "-", v) }
	a := m.At
	switch m.rows {
	case 0:
		return one
	case 1:
		return a(0, 0)
	case 2:
		return sub(mul(a(0, 0), a(1, 1)), mul(a(0, 1), a(1, 0)))
	case 3:
		pos := add(add(
			mul(mul(a(0, 0), a(1, 1)), a(2, 2)),
			mul(mul(a(0, 1), a(1, 2)), a(2, 0))),
			mul(mul(a(0, 2), a(1, 0)), a(2, 1)))
		neg := add(add(
			mul(mul(a(0, 2), a(1, 1)), a(2, 0)),
			mul(mul(a(0, 0), a(1, 2)), a(2, 1))),
			mul(mul(a(0, 1), a(1, 0)), a(2, 2)))
		return sub(pos, neg)
	}
	var det Value
	for j := 0; j < m.cols; j++ {
		term := mul(a(0, j), m.minor(0, j).Det(c))
		switch {
		case det == nil:
			det = term
		case j%2 == 0:
			det = add(det, term)
		default:
			det = sub(det, term)
		}
	}
	return det
}

// Cofactors returns the matrix of cofactors.
func (m *Matrix) Cofactors(c Context) *Matrix {
	m.square("cofactors")
	cof := newMatrix(m.rows, m.cols)
	if m.rows == 1 {
		cof.data[0] = one
		return cof
	}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			d := m.minor(i, j).Det(c)
			if (i+j)%2 != 0 {
				d = Binary(c, Number(-1), "*", d)
			}
			cof.set(i, j, d)
		}
	}
	return cof
}

// Adjoint returns the transposed cofactor matrix.
func (m *Matrix) Adjoint(c Context) *Matrix {
	return m.Cofactors(c).Transpose()
}

// Inverse returns the adjoint divided by the determinant.
func (m *Matrix) Inverse(c Context) Value {
	m.square("inverse")
	det := m.Det(c)
	if isZero(det) || Close(c, det, zero) {
		Errorf("matrix is singular")
	}
	return Binary(c, m.Adjoint(c), "/", det)
}

func isZero(v Value) bool {
	switch v := v.(type) {
	case Number:
		return v == 0
	case Rational:
		return v.r.Sign() == 0
	case Complex:
		return v == 0
	case Quaternion:
		return v.norm2() == 0
	}
	return false
}

// matrixProduct returns the matrix product. Vector operands act as a row
// vector on the left and a column vector on the right, and yield vectors.
func matrixProduct(c Context, u, v Value) Value {
	var a, b *Matrix
	leftVec, rightVec := false, false
	switch x := u.(type) {
	case *Matrix:
		a = x
	case *Vector:
		a = NewMatrix([][]Value{x.elems})
		leftVec = true
	}
	switch y := v.(type) {
	case *Matrix:
		b = y
	case *Vector:
		b = newMatrix(len(y.elems), 1)
		copy(b.data, y.elems)
		rightVec = true
	}
	if a.cols != b.rows {
		mismatch("*", u, v)
	}
	p := newMatrix(a.rows, b.cols)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < b.cols; j++ {
			var sum Value = zero
			for k := 0; k < a.cols; k++ {
				t := Binary(c, a.At(i, k), "*", b.At(k, j))
				if k == 0 {
					sum = t
				} else {
					sum = Binary(c, sum, "+", t)
				}
			}
			p.set(i, j, sum)
		}
	}
	if leftVec || rightVec {
		return NewVector(p.data)
	}
	return p
}

// power raises a square matrix to an integer power; negative
// powers use the inverse.
func (m *Matrix) power(c Context, n int) Value {
	m.square("^")
	if n < 0 {
		inv := m.Inverse(c)
		return inv.(*Matrix).power(c, -n)
	}
	var result Value = Identity(m.rows)
	var base Value = m
	for ; n > 0; n >>= 1 {
		if n&1 != 0 {
			result = matrixProduct(c, result, base)
		}
		if n > 1 {
			base = matrixProduct(c, base, base)
		}
	}
	return result
}

// kronecker returns the Kronecker product.
func kronecker(c Context, a, b *Matrix) *Matrix {
	k := newMatrix(a.rows*b.rows, a.cols*b.cols)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			for p := 0; p < b.rows; p++ {
				for q := 0; q < b.cols; q++ {
					k.set(i*b.rows+p, j*b.cols+q, Binary(c, a.At(i, j), "*", b.At(p, q)))
				}
			}
		}
	}
	return k
}

func (m *Matrix) rotate(n int) *Matrix {
	rows := NewVector(m.rowVectors()).rotate(n)
	r := newMatrix(m.rows, m.cols)
	r.data = r.data[:0]
	for _, row := range rows.elems {
		r.data = append(r.data, row.(*Vector).elems...)
	}
	return r
}

func matrixBinary(c Context, op string, u, v Value) Value {
	x, xok := u.(*Matrix)
	y, yok := v.(*Matrix)
	_, uvec := u.(*Vector)
	_, vvec := v.(*Vector)
	uscalar, vscalar := u.Kind().Scalar(), v.Kind().Scalar()
	switch op {
	case "*":
		if uscalar || vscalar {
			return elementwise(c, op, u, v)
		}
		return matrixProduct(c, u, v)
	case "/":
		switch {
		case xok && vscalar:
			return elementwise(c, op, u, v)
		case uscalar && yok:
			return Binary(c, u, "*", y.Inverse(c))
		case xok && yok:
			return matrixProduct(c, x, y.Inverse(c))
		}
	case "^":
		if xok && vscalar {
			return x.power(c, ToInt(c, v))
		}
	case "^x":
		if xok && vscalar {
			n := ToInt(c, v)
			if n < 1 {
				Errorf("kronecker power %d", n)
			}
			k := x
			for i := 1; i < n; i++ {
				k = kronecker(c, k, x)
			}
			return k
		}
	case ".":
		if xok && yok {
			return elementwise(c, "*", u, v)
		}
	case "(*)":
		switch {
		case xok && yok:
			return kronecker(c, x, y)
		case uscalar || vscalar:
			return elementwise(c, "*", u, v)
		}
	case "<<", ">>":
		if xok && vscalar {
			n := ToInt(c, v)
			if op == ">>" {
				n = -n
			}
			return x.rotate(n)
		}
	case "+", "-", "%", "^.":
		if !uvec && !vvec {
			return elementwise(c, op, u, v)
		}
	}
	unsupported(op, u, v)
	panic("not reached")
}
