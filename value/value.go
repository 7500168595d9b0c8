// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package value implements the values of the calculator and the
// computation nodes that produce them.
package value

import (
	"github.com/MovGP0/UnitSystem-sub000/config"
)

// Kind identifies the variant of a Value.
type Kind int

// The scalar kinds come first and are ordered by promotion; a binary
// operation on two scalars is usually evaluated in the larger kind.
const (
	NumberKind Kind = iota
	RationalKind
	ComplexKind
	QuaternionKind
	SymbolicKind
	FunctionKind
	PendingKind
	VectorKind
	MatrixKind
	TensorKind
	TextKind
	TupleKind
	ObjectKind
	ReferenceKind
	NamespaceKind
	numKind
)

var kindNames = [...]string{
	NumberKind:     "number",
	RationalKind:   "rational",
	ComplexKind:    "complex",
	QuaternionKind: "quaternion",
	SymbolicKind:   "symbolic",
	FunctionKind:   "function",
	PendingKind:    "operator",
	VectorKind:     "vector",
	MatrixKind:     "matrix",
	TensorKind:     "tensor",
	TextKind:       "text",
	TupleKind:      "tuple",
	ObjectKind:     "object",
	ReferenceKind:  "reference",
	NamespaceKind:  "namespace",
}

func (k Kind) String() string {
	if k < 0 || k >= numKind {
		return "unknown"
	}
	return kindNames[k]
}

// Scalar reports whether the kind is one of the scalar kinds.
func (k Kind) Scalar() bool {
	return k <= PendingKind
}

// Container reports whether the kind is a vector, matrix or tensor.
func (k Kind) Container() bool {
	return k == VectorKind || k == MatrixKind || k == TensorKind
}

// Value is the result of every evaluation.
type Value interface {
	// String is for internal debugging only. It uses default configuration
	// and puts parentheses around every value so it's clear when it is used.
	// All user output should call Sprint instead.
	String() string
	Sprint(*config.Config) string
	ProgString() string
	Eval(Context) Value
	Kind() Kind
}

// Declaration is implemented by statements whose value is not printed.
type Declaration interface {
	Expr
	declaration()
}

// Truth returns the boolean interpretation of v. Booleans are the
// numbers 1 and 0.
func Truth(c Context, v Value) bool {
	switch v := deref(c, v).(type) {
	case Number:
		return v != 0
	case Rational:
		return v.r.Sign() != 0
	}
	Errorf("condition must be a number, not %s", v.Kind())
	panic("not reached")
}

// Bool returns the number 1 or 0.
func Bool(b bool) Value {
	if b {
		return one
	}
	return zero
}

var (
	zero = Number(0)
	one  = Number(1)
)

// deref follows a reference to the value it names.
func deref(c Context, v Value) Value {
	if r, ok := v.(Reference); ok {
		return r.Deref(c)
	}
	return v
}

// Deref follows a reference to the value it names. Other values are
// returned unchanged.
func Deref(c Context, v Value) Value {
	return deref(c, v)
}
