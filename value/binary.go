// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math"
	"math/big"
)

// binaryFn computes op on two operands already converted to the
// operation's kind, or on a container and its partner.
type binaryFn func(c Context, op string, u, v Value) Value

// Binary operators act on one kind per implementation: scalars are
// promoted to the larger kind of the pair first. The table is indexed
// by that kind.
var binaryFns [numKind]binaryFn

func init() {
	binaryFns = [numKind]binaryFn{
		NumberKind:     func(_ Context, op string, u, v Value) Value { return numberBinary(op, u, v) },
		RationalKind:   func(_ Context, op string, u, v Value) Value { return rationalBinary(op, u, v) },
		ComplexKind:    func(_ Context, op string, u, v Value) Value { return complexBinary(op, u, v) },
		QuaternionKind: func(_ Context, op string, u, v Value) Value { return quaternionBinary(op, u, v) },
		SymbolicKind:   func(_ Context, op string, u, v Value) Value { return symbolicBinary(op, u, v) },
		FunctionKind:   combine,
		VectorKind:     vectorBinary,
		MatrixKind:     matrixBinary,
		TensorKind:     tensorBinary,
		TextKind:       textBinary,
	}
}

// arithmeticOps are the operators dispatched through binaryFns.
var arithmeticOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"^": true, "^.": true, "^x": true,
	".": true, "x": true, "(*)": true,
	"<<": true, ">>": true,
	"<": true, "<=": true, ">": true, ">=": true,
}

// functionOps are the operators that combine functions into functions.
var functionOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "^": true,
}

const invalid Kind = -1

// scalarPromotion gives the kind in which two scalars are combined.
// Complex and quaternion values do not mix, and neither mixes with
// symbolic expressions.
var scalarPromotion = [PendingKind][PendingKind]Kind{
	NumberKind: {
		NumberKind:     NumberKind,
		RationalKind:   RationalKind,
		ComplexKind:    ComplexKind,
		QuaternionKind: QuaternionKind,
		SymbolicKind:   SymbolicKind,
		FunctionKind:   FunctionKind,
	},
	RationalKind: {
		NumberKind:     RationalKind,
		RationalKind:   RationalKind,
		ComplexKind:    ComplexKind,
		QuaternionKind: QuaternionKind,
		SymbolicKind:   SymbolicKind,
		FunctionKind:   FunctionKind,
	},
	ComplexKind: {
		NumberKind:     ComplexKind,
		RationalKind:   ComplexKind,
		ComplexKind:    ComplexKind,
		QuaternionKind: invalid,
		SymbolicKind:   invalid,
		FunctionKind:   FunctionKind,
	},
	QuaternionKind: {
		NumberKind:     QuaternionKind,
		RationalKind:   QuaternionKind,
		ComplexKind:    invalid,
		QuaternionKind: QuaternionKind,
		SymbolicKind:   invalid,
		FunctionKind:   FunctionKind,
	},
	SymbolicKind: {
		NumberKind:     SymbolicKind,
		RationalKind:   SymbolicKind,
		ComplexKind:    invalid,
		QuaternionKind: invalid,
		SymbolicKind:   SymbolicKind,
		FunctionKind:   SymbolicKind,
	},
	FunctionKind: {
		NumberKind:     FunctionKind,
		RationalKind:   FunctionKind,
		ComplexKind:    FunctionKind,
		QuaternionKind: FunctionKind,
		SymbolicKind:   SymbolicKind,
		FunctionKind:   FunctionKind,
	},
}

// whichKind returns the kind in which op is evaluated for operands of
// kinds a and b.
func whichKind(op string, a, b Kind) Kind {
	switch {
	case a < PendingKind && b < PendingKind:
		k := scalarPromotion[a][b]
		if k == FunctionKind && !functionOps[op] {
			return invalid
		}
		return k
	case a == TextKind || b == TextKind:
		return TextKind
	case a == TensorKind || b == TensorKind:
		return TensorKind
	case a == MatrixKind || b == MatrixKind:
		return MatrixKind
	case a == VectorKind || b == VectorKind:
		return VectorKind
	}
	return invalid
}

// Binary evaluates u op v.
func Binary(c Context, u Value, op string, v Value) Value {
	u, v = deref(c, u), deref(c, v)
	if p, ok := u.(Pending); ok && op == "*" {
		return p.apply(c, v)
	}
	switch op {
	case "==":
		return Bool(Equal(c, u, v))
	case "!=":
		return Bool(!Equal(c, u, v))
	case "and":
		return Bool(Truth(c, u) && Truth(c, v))
	case "or":
		return Bool(Truth(c, u) || Truth(c, v))
	case "..":
		return Range(c, u, v)
	case "|":
		if sym, ok := v.(Symbolic); ok {
			if name, ok := sym.Symbol(); ok {
				return Differentiate(c, u, name)
			}
		}
		Errorf("right operand of | must be a symbol")
	case "!", "->":
		name, ok := v.(Text)
		if !ok {
			unsupported(op, u, v)
		}
		return Execute(c, u, string(name), nil)
	case ":":
		return Position(c, u, ToInt(c, v))
	}
	if !arithmeticOps[op] {
		panic(&SyntaxError{Msg: "unknown operator " + op, Operator: op})
	}
	k := whichKind(op, u.Kind(), v.Kind())
	if k == invalid || binaryFns[k] == nil {
		unsupported(op, u, v)
	}
	if k.Scalar() && k != FunctionKind {
		u, v = promote(c, u, k), promote(c, v, k)
	}
	return binaryFns[k](c, op, u, v)
}

// promote converts a scalar to the given kind.
func promote(c Context, v Value, k Kind) Value {
	if v.Kind() == k {
		return v
	}
	switch k {
	case RationalKind:
		return numberToRational(v.(Number))
	case ComplexKind:
		return Complex(complex(ToFloat(c, v), 0))
	case QuaternionKind:
		return Quaternion{ToFloat(c, v), 0, 0, 0}
	case SymbolicKind:
		return symbolicOf(c, v)
	}
	Errorf("cannot convert %s to %s", v.Kind(), k)
	panic("not reached")
}

// Equal reports whether u and v are the same value. It never fails:
// values of unrelated kinds are unequal.
func Equal(c Context, u, v Value) bool {
	u, v = deref(c, u), deref(c, v)
	a, b := u.Kind(), v.Kind()
	if a < PendingKind && b < PendingKind && a != b {
		k := scalarPromotion[a][b]
		if k == invalid || k == FunctionKind || k == SymbolicKind {
			return false
		}
		u, v = promote(c, u, k), promote(c, v, k)
	}
	switch x := u.(type) {
	case Number:
		y, ok := v.(Number)
		return ok && x == y
	case Rational:
		y, ok := v.(Rational)
		return ok && x.r.Cmp(y.r) == 0
	case Complex:
		y, ok := v.(Complex)
		return ok && x == y
	case Quaternion:
		y, ok := v.(Quaternion)
		return ok && x == y
	case Symbolic:
		y, ok := v.(Symbolic)
		return ok && x.n.equal(y.n)
	case FunctionValue:
		y, ok := v.(FunctionValue)
		return ok && sameFunction(c, x.fn, y.fn)
	case Pending:
		y, ok := v.(Pending)
		return ok && x.Sprint(nil) == y.Sprint(nil)
	case Text:
		y, ok := v.(Text)
		return ok && x == y
	case *Vector:
		y, ok := v.(*Vector)
		return ok && equalLists(c, x.elems, y.elems)
	case *Matrix:
		y, ok := v.(*Matrix)
		return ok && x.rows == y.rows && x.cols == y.cols && equalLists(c, x.data, y.data)
	case *Tensor:
		y, ok := v.(*Tensor)
		return ok && x.rank == y.rank && equalLists(c, x.faces, y.faces)
	case Tuple:
		y, ok := v.(Tuple)
		return ok && equalLists(c, x, y)
	case Object:
		y, ok := v.(Object)
		return ok && x.impl == y.impl
	case Namespace:
		y, ok := v.(Namespace)
		return ok && x.name == y.name
	}
	return false
}

func equalLists(c Context, x, y []Value) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !Equal(c, x[i], y[i]) {
			return false
		}
	}
	return true
}

// Close reports whether two numeric values are equal within the
// configured tolerance, relative to their magnitude.
func Close(c Context, u, v Value) bool {
	u, v = deref(c, u), deref(c, v)
	switch u.Kind() {
	case VectorKind, MatrixKind, TensorKind:
		if Shape(u) != Shape(v) {
			return false
		}
		var x, y []Value
		switch u := u.(type) {
		case *Vector:
			x, y = u.elems, v.(*Vector).elems
		case *Matrix:
			x, y = u.data, v.(*Matrix).data
		case *Tensor:
			x, y = u.faces, v.(*Tensor).faces
		}
		for i := range x {
			if !Close(c, x[i], y[i]) {
				return false
			}
		}
		return true
	}
	d, ok := distance(c, u, v)
	if !ok {
		return Equal(c, u, v)
	}
	tol := c.Config().Tolerance()
	scale := math.Max(1, math.Max(magnitude(c, u), magnitude(c, v)))
	return d <= tol*scale
}

func distance(c Context, u, v Value) (float64, bool) {
	a, b := u.Kind(), v.Kind()
	if a > QuaternionKind || b > QuaternionKind {
		return 0, false
	}
	k := scalarPromotion[a][b]
	if k == invalid {
		return 0, false
	}
	d := Binary(c, u, "-", v)
	return magnitude(c, d), true
}

func magnitude(c Context, v Value) float64 {
	switch v := v.(type) {
	case Number:
		return math.Abs(float64(v))
	case Rational:
		f, _ := new(big.Rat).Abs(v.r).Float64()
		return f
	case Complex:
		return math.Hypot(real(v), imag(v))
	case Quaternion:
		return math.Sqrt(v.norm2())
	}
	return 0
}
