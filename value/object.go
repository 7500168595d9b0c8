// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"io"

	"github.com/MovGP0/UnitSystem-sub000/config"
)

// Native is implemented by the host types that new T(args) creates.
type Native interface {
	TypeName() string
	// Execute runs the named method.
	Execute(c Context, method string, args []Value) Value
}

// Object is an instance of a native type. Deleting the variable that
// holds it closes it if it implements io.Closer.
type Object struct {
	impl Native
}

// NewObject wraps a native instance.
func NewObject(impl Native) Object {
	return Object{impl}
}

// Native returns the wrapped instance.
func (o Object) Native() Native {
	return o.impl
}

// Close releases the instance's resources, if it holds any.
func (o Object) Close() error {
	if c, ok := o.impl.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (o Object) String() string {
	return "(" + o.Sprint(nil) + ")"
}

func (o Object) Sprint(*config.Config) string {
	return "<" + o.impl.TypeName() + ">"
}

func (o Object) ProgString() string {
	return o.Sprint(nil)
}

func (o Object) Eval(Context) Value {
	return o
}

func (o Object) Kind() Kind {
	return ObjectKind
}
