// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"strings"

	"github.com/MovGP0/UnitSystem-sub000/config"
)

// Tensor is an array of rank three or more. A rank 3 tensor is a list
// of matrices of the same shape; a higher rank tensor is a list of
// tensors one rank lower. Operators act face by face.
type Tensor struct {
	rank  int
	faces []Value
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return t.rank
}

// Faces returns the sub-arrays one rank lower.
func (t *Tensor) Faces() []Value {
	return append([]Value(nil), t.faces...)
}

func (t *Tensor) String() string {
	return "(" + t.Sprint(nil) + ")"
}

func (t *Tensor) Sprint(conf *config.Config) string {
	return sprintList(conf, t.faces, Value.Sprint)
}

func (t *Tensor) ProgString() string {
	return sprintList(nil, t.faces, func(x Value, _ *config.Config) string { return x.ProgString() })
}

func (t *Tensor) Eval(Context) Value {
	return t
}

func (t *Tensor) Kind() Kind {
	return TensorKind
}

func (t *Tensor) shape() string {
	inner := strings.TrimPrefix(Shape(t.faces[0]), "matrix")
	inner = strings.TrimPrefix(inner, "tensor")
	return fmt.Sprintf("tensor[%d,%s]", len(t.faces), strings.Trim(inner, "[]"))
}

// tensorBinary applies the operator face by face, pairing the faces of
// two tensors or broadcasting a scalar.
func tensorBinary(c Context, op string, u, v Value) Value {
	x, xok := u.(*Tensor)
	y, yok := v.(*Tensor)
	switch {
	case xok && yok:
		if x.rank != y.rank || len(x.faces) != len(y.faces) {
			mismatch(op, u, v)
		}
		faces := make([]Value, len(x.faces))
		for i := range faces {
			faces[i] = Binary(c, x.faces[i], op, y.faces[i])
		}
		return &Tensor{x.rank, faces}
	case xok && v.Kind().Scalar():
		faces := make([]Value, len(x.faces))
		for i := range faces {
			faces[i] = Binary(c, x.faces[i], op, v)
		}
		return &Tensor{x.rank, faces}
	case yok && u.Kind().Scalar():
		faces := make([]Value, len(y.faces))
		for i := range faces {
			faces[i] = Binary(c, u, op, y.faces[i])
		}
		return &Tensor{y.rank, faces}
	}
	unsupported(op, u, v)
	panic("not reached")
}
