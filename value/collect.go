// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"strings"
)

// CollectValues assembles values into the container one rank higher: scalars
// into a vector, vectors of one length into a matrix, matrices of one
// shape into a rank 3 tensor. Tensors are collected into a tensor of
// the next rank only if allowTensor is set.
func CollectValues(values []Value, allowTensor bool) Value {
	if len(values) == 0 {
		return NewVector(nil)
	}
	first := values[0]
	for _, v := range values[1:] {
		if v.Kind().Scalar() != first.Kind().Scalar() || (!v.Kind().Scalar() && v.Kind() != first.Kind()) {
			panic(&DimensionMismatchError{Op: "collect", Left: Shape(first), Right: Shape(v)})
		}
	}
	switch f := first.(type) {
	case *Vector:
		rows := make([][]Value, len(values))
		for i, v := range values {
			rows[i] = v.(*Vector).elems
			if len(rows[i]) != len(f.elems) {
				panic(&DimensionMismatchError{Op: "collect", Left: Shape(first), Right: Shape(v)})
			}
		}
		return NewMatrix(rows)
	case *Matrix:
		for _, v := range values {
			m := v.(*Matrix)
			if m.rows != f.rows || m.cols != f.cols {
				panic(&DimensionMismatchError{Op: "collect", Left: Shape(first), Right: Shape(v)})
			}
		}
		return &Tensor{rank: 3, faces: values}
	case *Tensor:
		if !allowTensor {
			panic(&UnsupportedOperationError{Op: "collect", Right: TensorKind, Unary: true})
		}
		for _, v := range values {
			if Shape(v) != Shape(first) {
				panic(&DimensionMismatchError{Op: "collect", Left: Shape(first), Right: Shape(v)})
			}
		}
		return &Tensor{rank: f.rank + 1, faces: values}
	}
	if !first.Kind().Scalar() {
		panic(&UnsupportedOperationError{Op: "collect", Right: first.Kind(), Unary: true})
	}
	return NewVector(values)
}

// Shape describes the dimensions of v for error messages.
func Shape(v Value) string {
	switch v := v.(type) {
	case *Vector:
		return v.shape()
	case *Matrix:
		return v.shape()
	case *Tensor:
		return v.shape()
	}
	return v.Kind().String()
}

// elementwise applies op to corresponding elements of two containers
// of the same shape, or between each element and a scalar.
func elementwise(c Context, op string, u, v Value) Value {
	us, vs := u.Kind().Scalar(), v.Kind().Scalar()
	switch {
	case us && vs:
		return Binary(c, u, op, v)
	case vs:
		return mapElements(u, func(e Value) Value { return Binary(c, e, op, v) })
	case us:
		return mapElements(v, func(e Value) Value { return Binary(c, u, op, e) })
	}
	if Shape(u) != Shape(v) {
		mismatch(op, u, v)
	}
	switch x := u.(type) {
	case *Vector:
		y := v.(*Vector)
		elems := make([]Value, len(x.elems))
		for i := range elems {
			elems[i] = Binary(c, x.elems[i], op, y.elems[i])
		}
		return NewVector(elems)
	case *Matrix:
		y := v.(*Matrix)
		m := newMatrix(x.rows, x.cols)
		for i := range m.data {
			m.data[i] = Binary(c, x.data[i], op, y.data[i])
		}
		return m
	case *Tensor:
		return tensorBinary(c, op, u, v)
	}
	unsupported(op, u, v)
	panic("not reached")
}

// mapElements applies fn to every scalar of a container.
func mapElements(v Value, fn func(Value) Value) Value {
	switch x := v.(type) {
	case *Vector:
		elems := make([]Value, len(x.elems))
		for i, e := range x.elems {
			elems[i] = fn(e)
		}
		return NewVector(elems)
	case *Matrix:
		m := newMatrix(x.rows, x.cols)
		for i, e := range x.data {
			m.data[i] = fn(e)
		}
		return m
	case *Tensor:
		faces := make([]Value, len(x.faces))
		for i, f := range x.faces {
			faces[i] = mapElements(f, fn)
		}
		return &Tensor{x.rank, faces}
	}
	return fn(v)
}

// Map applies fn to every scalar of v, or to v itself if it is a scalar.
func Map(v Value, fn func(Value) Value) Value {
	return mapElements(v, fn)
}

// Elements returns the items a for loop or a reduction visits: vector
// elements, matrix rows, tensor faces, tuple items or the characters
// of a text.
func Elements(c Context, v Value) []Value {
	switch v := deref(c, v).(type) {
	case *Vector:
		return v.Elems()
	case *Matrix:
		return v.rowVectors()
	case *Tensor:
		return v.Faces()
	case Tuple:
		return append([]Value(nil), v...)
	case Text:
		var elems []Value
		for _, r := range string(v) {
			elems = append(elems, Text(string(r)))
		}
		return elems
	case Number, Rational:
		n := ToInt(c, v)
		elems := make([]Value, 0, n)
		for i := 0; i < n; i++ {
			elems = append(elems, Number(i))
		}
		return elems
	}
	Errorf("cannot iterate over %s", v.Kind())
	panic("not reached")
}

// Reduce folds values with the reduction. Sum and Product of symbolic
// or function values are built by joining their source text, so the
// result is one compiled function rather than a chain of combinations.
func Reduce(c Context, r Reduction, values []Value) Value {
	if r == Collect {
		return CollectValues(values, false)
	}
	if len(values) == 0 {
		switch r {
		case Sum:
			return zero
		case Product:
			return one
		}
		Errorf("%s of empty range", reductionNames[r])
	}
	if r == Sum || r == Product || r == Mean {
		if fn, ok := reduceFunctions(c, r, values); ok {
			return fn
		}
	}
	op := "+"
	if r == Product {
		op = "*"
	}
	acc := values[0]
	for _, v := range values[1:] {
		acc = Binary(c, acc, op, v)
	}
	n := Number(len(values))
	switch r {
	case Mean:
		return Binary(c, acc, "/", n)
	case StdDeviation:
		for _, v := range values {
			switch deref(c, v).Kind() {
			case SymbolicKind, FunctionKind:
				panic(&UnsupportedOperationError{Op: "standard deviation", Right: v.Kind(), Unary: true})
			}
		}
		// Population deviation: the mean of the squared differences.
		mean := Binary(c, acc, "/", n)
		var sq Value
		for _, v := range values {
			d := Binary(c, v, "-", mean)
			d = Binary(c, d, "*", d)
			if sq == nil {
				sq = d
			} else {
				sq = Binary(c, sq, "+", d)
			}
		}
		return Unary(c, "sqrt", Binary(c, sq, "/", n))
	}
	return acc
}

var reductionNames = [...]string{
	Collect:      "collection",
	Sum:          "sum",
	Product:      "product",
	Mean:         "mean",
	StdDeviation: "standard deviation",
}

// reduceFunctions handles a reduction over function values: the
// bodies are joined as text and compiled once.
func reduceFunctions(c Context, r Reduction, values []Value) (Value, bool) {
	var first *Function
	for _, v := range values {
		fv, ok := deref(c, v).(FunctionValue)
		if !ok || fv.fn.Native != nil || fv.fn.composed {
			return nil, false
		}
		if first == nil {
			first = fv.fn
		} else if strings.Join(fv.fn.sourceParams(), ",") != strings.Join(first.sourceParams(), ",") {
			return nil, false
		}
	}
	op := "+"
	if r == Product {
		op = "*"
	}
	terms := make([]string, len(values))
	for i, v := range values {
		terms[i] = "(" + deref(c, v).(FunctionValue).fn.Source + ")"
	}
	src := strings.Join(terms, op)
	if r == Mean {
		src = "(" + src + ")/" + Number(len(values)).ProgString()
	}
	fn := &Function{Params: first.Params, Source: src, SourceParams: first.SourceParams}
	fn.Body(c)
	return FunctionValue{fn}, true
}
