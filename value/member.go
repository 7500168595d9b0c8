// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math"
	"math/big"
	"sort"
)

// method is a named operation on values of one kind.
type method func(c Context, recv Value, args []Value) Value

// methods are the named operations reached with x!name and x->name(args).
var methods map[Kind]map[string]method

func init() {
	methods = map[Kind]map[string]method{
		NumberKind: {
			"sqrt":  unaryMethod("sqrt"),
			"abs":   unaryMethod("abs"),
			"floor": unaryMethod("floor"),
			"ceil":  unaryMethod("ceil"),
			"round": unaryMethod("round"),
		},
		RationalKind: {
			"num": func(c Context, recv Value, args []Value) Value {
				return Rational{new(big.Rat).SetInt(recv.(Rational).r.Num())}
			},
			"den": func(c Context, recv Value, args []Value) Value {
				return Rational{new(big.Rat).SetInt(recv.(Rational).r.Denom())}
			},
			"float": func(c Context, recv Value, args []Value) Value {
				return Number(recv.(Rational).float())
			},
		},
		ComplexKind: {
			"re":   func(_ Context, recv Value, _ []Value) Value { return Number(real(recv.(Complex))) },
			"im":   func(_ Context, recv Value, _ []Value) Value { return Number(imag(recv.(Complex))) },
			"abs":  unaryMethod("abs"),
			"conj": unaryMethod("conj"),
			"arg": func(_ Context, recv Value, _ []Value) Value {
				z := recv.(Complex)
				return Number(math.Atan2(imag(z), real(z)))
			},
		},
		QuaternionKind: {
			"w":    quaternionPart(0),
			"x":    quaternionPart(1),
			"y":    quaternionPart(2),
			"z":    quaternionPart(3),
			"abs":  unaryMethod("abs"),
			"conj": unaryMethod("conj"),
		},
		SymbolicKind: {
			"symbols": func(_ Context, recv Value, _ []Value) Value {
				names := recv.(Symbolic).Symbols()
				elems := make([]Value, len(names))
				for i, n := range names {
					elems[i] = NewSymbol(n)
				}
				return Tuple(elems)
			},
			"subs": func(c Context, recv Value, args []Value) Value {
				wantArgs("subs", args, 2)
				name := symbolArg(args[0])
				return recv.(Symbolic).Substitute(c, name, args[1])
			},
			"eval": func(c Context, recv Value, args []Value) Value {
				s := recv.(Symbolic)
				if f, ok := s.Constant(); ok {
					return Number(f)
				}
				Errorf("expression %s has free symbols", s.Sprint(c.Config()))
				panic("not reached")
			},
			"function": func(c Context, recv Value, args []Value) Value {
				s := recv.(Symbolic)
				params := s.Symbols()
				if len(args) > 0 {
					params = params[:0]
					for _, a := range args {
						params = append(params, symbolArg(a))
					}
				}
				return symbolicFunction(c, s, params)
			},
		},
		FunctionKind: {
			"name": func(_ Context, recv Value, _ []Value) Value { return Text(recv.(FunctionValue).fn.Name) },
			"arity": func(_ Context, recv Value, _ []Value) Value {
				return Number(recv.(FunctionValue).fn.Arity())
			},
			"params": func(_ Context, recv Value, _ []Value) Value {
				names := recv.(FunctionValue).fn.ParamNames()
				elems := make([]Value, len(names))
				for i, n := range names {
					elems[i] = Text(n)
				}
				return Tuple(elems)
			},
			"symbolic": func(c Context, recv Value, _ []Value) Value { return recv.(FunctionValue).fn.symbolic(c) },
			"call": func(c Context, recv Value, args []Value) Value {
				return recv.(FunctionValue).Call(c, args...)
			},
		},
		VectorKind: {
			"length":  func(_ Context, recv Value, _ []Value) Value { return Number(recv.(*Vector).Len()) },
			"norm":    func(c Context, recv Value, _ []Value) Value { return Norm(c, recv) },
			"sum":     reduceMethod(Sum),
			"mean":    reduceMethod(Mean),
			"stddev":  reduceMethod(StdDeviation),
			"product": reduceMethod(Product),
			"reverse": func(_ Context, recv Value, _ []Value) Value {
				v := recv.(*Vector)
				elems := make([]Value, v.Len())
				for i, e := range v.elems {
					elems[len(elems)-1-i] = e
				}
				return NewVector(elems)
			},
			"sort": func(c Context, recv Value, _ []Value) Value {
				elems := recv.(*Vector).Elems()
				sort.SliceStable(elems, func(i, j int) bool {
					return Truth(c, Binary(c, elems[i], "<", elems[j]))
				})
				return NewVector(elems)
			},
		},
		MatrixKind: {
			"rows":      func(_ Context, recv Value, _ []Value) Value { return Number(recv.(*Matrix).rows) },
			"cols":      func(_ Context, recv Value, _ []Value) Value { return Number(recv.(*Matrix).cols) },
			"det":       func(c Context, recv Value, _ []Value) Value { return recv.(*Matrix).Det(c) },
			"inverse":   func(c Context, recv Value, _ []Value) Value { return recv.(*Matrix).Inverse(c) },
			"transpose": func(_ Context, recv Value, _ []Value) Value { return recv.(*Matrix).Transpose() },
			"adjoint":   func(c Context, recv Value, _ []Value) Value { return recv.(*Matrix).Adjoint(c) },
			"cofactors": func(c Context, recv Value, _ []Value) Value { return recv.(*Matrix).Cofactors(c) },
			"trace": func(c Context, recv Value, _ []Value) Value {
				m := recv.(*Matrix)
				m.square("trace")
				var t Value = zero
				for i := 0; i < m.rows; i++ {
					t = Binary(c, t, "+", m.At(i, i))
				}
				return t
			},
			"norm": func(c Context, recv Value, _ []Value) Value { return Norm(c, recv) },
			"row": func(c Context, recv Value, args []Value) Value {
				wantArgs("row", args, 1)
				return Index(c, recv, args)
			},
			"col": func(c Context, recv Value, args []Value) Value {
				wantArgs("col", args, 1)
				return Index(c, recv.(*Matrix).Transpose(), args)
			},
		},
		TensorKind: {
			"rank":  func(_ Context, recv Value, _ []Value) Value { return Number(recv.(*Tensor).rank) },
			"faces": func(_ Context, recv Value, _ []Value) Value { return Number(len(recv.(*Tensor).faces)) },
		},
		TextKind: {
			"length": func(_ Context, recv Value, _ []Value) Value { return Number(len([]rune(string(recv.(Text))))) },
		},
		TupleKind: {
			"length": func(_ Context, recv Value, _ []Value) Value { return Number(len(recv.(Tuple))) },
		},
	}
}

func unaryMethod(op string) method {
	return func(c Context, recv Value, args []Value) Value {
		wantArgs(op, args, 0)
		return Unary(c, op, recv)
	}
}

func reduceMethod(r Reduction) method {
	return func(c Context, recv Value, args []Value) Value {
		return Reduce(c, r, Elements(c, recv))
	}
}

func quaternionPart(i int) method {
	return func(_ Context, recv Value, _ []Value) Value {
		return Number(recv.(Quaternion)[i])
	}
}

func wantArgs(name string, args []Value, n int) {
	if len(args) != n {
		Errorf("%s takes %d arguments, not %d", name, n, len(args))
	}
}

func symbolArg(v Value) string {
	if s, ok := v.(Symbolic); ok {
		if name, ok := s.Symbol(); ok {
			return name
		}
	}
	if t, ok := v.(Text); ok {
		return string(t)
	}
	Errorf("expected symbol, found %s", v.Kind())
	panic("not reached")
}

// Execute runs the named member operation on recv: a method of its
// kind, a member of a namespace, or a method of a native object.
func Execute(c Context, recv Value, name string, args []Value) Value {
	recv = deref(c, recv)
	switch x := recv.(type) {
	case Object:
		return x.impl.Execute(c, name, args)
	case Namespace:
		return x.member(c, name, args, args != nil)
	}
	if name == "kind" {
		return Text(recv.Kind().String())
	}
	m := methods[recv.Kind()][name]
	if m == nil {
		panic(&UnsupportedOperationError{Op: "member " + name, Right: recv.Kind(), Unary: true})
	}
	return m(c, recv, args)
}

// Members returns the method names of the kind, sorted.
func Members(k Kind) []string {
	var names []string
	for name := range methods[k] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Position returns the element at position i of an ordered value,
// counting from zero. Negative positions count from the end.
func Position(c Context, v Value, i int) Value {
	v = deref(c, v)
	n := len(Elements(c, v))
	if i < 0 {
		i += n
	}
	switch v.(type) {
	case *Vector, *Matrix, *Tensor, Tuple, Text:
		return Index(c, v, []Value{Number(i)})
	}
	unsupported(":", v, Number(i))
	panic("not reached")
}

// Index returns v[idx...]. A matrix accepts one index for a row or two
// for an element; a tensor one index per dimension it descends.
func Index(c Context, v Value, idx []Value) Value {
	v = deref(c, v)
	if len(idx) == 0 {
		Errorf("missing index")
	}
	i := ToInt(c, idx[0])
	var elem Value
	switch x := v.(type) {
	case *Vector:
		elem = x.elems[x.index(i)]
	case *Matrix:
		if i < 0 || i >= x.rows {
			Errorf("row %d out of range for %s", i, x.shape())
		}
		elem = x.Row(i)
	case *Tensor:
		if i < 0 || i >= len(x.faces) {
			Errorf("face %d out of range for %s", i, x.shape())
		}
		elem = x.faces[i]
	case Tuple:
		if i < 0 || i >= len(x) {
			Errorf("index %d out of range for tuple of length %d", i, len(x))
		}
		elem = x[i]
	case Text:
		elem = x.index(i)
	default:
		Errorf("cannot index %s", v.Kind())
	}
	if len(idx) > 1 {
		return Index(c, elem, idx[1:])
	}
	return elem
}

// SetIndex returns a copy of v with v[idx...] replaced by x.
func SetIndex(c Context, v Value, idx []Value, x Value) Value {
	v = deref(c, v)
	if len(idx) == 0 {
		return x
	}
	i := ToInt(c, idx[0])
	switch y := v.(type) {
	case *Vector:
		if len(idx) == 1 && !x.Kind().Scalar() {
			Errorf("vector element must be a scalar, not %s", x.Kind())
		}
		elems := y.Elems()
		j := y.index(i)
		elems[j] = SetIndex(c, elems[j], idx[1:], x)
		return NewVector(elems)
	case *Matrix:
		if i < 0 || i >= y.rows {
			Errorf("row %d out of range for %s", i, y.shape())
		}
		row := SetIndex(c, y.Row(i), idx[1:], x)
		r, ok := row.(*Vector)
		if !ok || r.Len() != y.cols {
			panic(&DimensionMismatchError{Op: "[]=", Left: y.shape(), Right: Shape(row)})
		}
		m := newMatrix(y.rows, y.cols)
		copy(m.data, y.data)
		copy(m.data[i*y.cols:], r.elems)
		return m
	case *Tensor:
		if i < 0 || i >= len(y.faces) {
			Errorf("face %d out of range for %s", i, y.shape())
		}
		faces := y.Faces()
		face := SetIndex(c, faces[i], idx[1:], x)
		if Shape(face) != Shape(faces[i]) {
			panic(&DimensionMismatchError{Op: "[]=", Left: Shape(faces[i]), Right: Shape(face)})
		}
		faces[i] = face
		return &Tensor{y.rank, faces}
	case Tuple:
		if i < 0 || i >= len(y) {
			Errorf("index %d out of range for tuple of length %d", i, len(y))
		}
		t := append(Tuple(nil), y...)
		t[i] = SetIndex(c, t[i], idx[1:], x)
		return t
	}
	Errorf("cannot assign to an element of %s", v.Kind())
	panic("not reached")
}
