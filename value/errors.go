// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"strings"
)

// Errors are raised by panicking with one of the types below and are
// recovered where an evaluation is started. The caller can inspect them
// with errors.As.

// Error is an execution error without further structure,
// such as division by zero.
type Error string

func (err Error) Error() string {
	return string(err)
}

func (Error) calcError() {}

// Errorf panics with the formatted string, with type Error.
func Errorf(format string, args ...interface{}) {
	panic(Error(fmt.Sprintf(format, args...)))
}

// SyntaxError reports malformed input.
type SyntaxError struct {
	Msg string
	// Incomplete is set when the input ended where more was expected,
	// for example after a dangling operator.
	Incomplete bool
	// Operator is set when the input used an operator the compiler
	// does not know in that position.
	Operator string
}

func (e *SyntaxError) Error() string {
	return "syntax error: " + e.Msg
}

func (*SyntaxError) calcError() {}

// VariableNotFoundError reports a name with no binding.
type VariableNotFoundError struct {
	Namespace string
	Name      string
}

func (e *VariableNotFoundError) Error() string {
	return fmt.Sprintf("variable %s not found", Qualify(e.Namespace, e.Name))
}

func (*VariableNotFoundError) calcError() {}

// FunctionNotFoundError reports a call no declared function can satisfy.
type FunctionNotFoundError struct {
	Namespace string
	Name      string
	Arity     int
	Named     []string
}

func (e *FunctionNotFoundError) Error() string {
	name := Qualify(e.Namespace, e.Name)
	if len(e.Named) > 0 {
		return fmt.Sprintf("no function %s with %d arguments named %s", name, e.Arity, strings.Join(e.Named, ", "))
	}
	return fmt.Sprintf("no function %s with %d arguments", name, e.Arity)
}

func (*FunctionNotFoundError) calcError() {}

// AmbiguousOverloadError reports a call that more than one declared
// function can satisfy.
type AmbiguousOverloadError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousOverloadError) Error() string {
	return fmt.Sprintf("ambiguous call to %s: candidates %s", e.Name, strings.Join(e.Candidates, ", "))
}

func (*AmbiguousOverloadError) calcError() {}

// UnsupportedOperationError reports an operator applied to kinds it
// has no meaning for.
type UnsupportedOperationError struct {
	Op    string
	Left  Kind
	Right Kind
	// Unary is set for operations with a single operand, held in Right.
	Unary bool
}

func (e *UnsupportedOperationError) Error() string {
	if e.Unary {
		return fmt.Sprintf("operation %s not supported for %s", e.Op, e.Right)
	}
	return fmt.Sprintf("operation %s not supported between %s and %s", e.Op, e.Left, e.Right)
}

func (*UnsupportedOperationError) calcError() {}

// DimensionMismatchError reports operands whose shapes do not fit.
type DimensionMismatchError struct {
	Op    string
	Left  string
	Right string
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch for %s: %s and %s", e.Op, e.Left, e.Right)
}

func (*DimensionMismatchError) calcError() {}

type calcError interface {
	error
	calcError()
}

// AsError reports whether the recovered panic value r is a calculator
// error, and returns it if so.
func AsError(r interface{}) (error, bool) {
	err, ok := r.(calcError)
	return err, ok
}

func unsupported(op string, u, v Value) {
	panic(&UnsupportedOperationError{Op: op, Left: u.Kind(), Right: v.Kind()})
}

func unsupportedUnary(op string, v Value) {
	panic(&UnsupportedOperationError{Op: op, Right: v.Kind(), Unary: true})
}

func mismatch(op string, u, v Value) {
	panic(&DimensionMismatchError{Op: op, Left: Shape(u), Right: Shape(v)})
}

// Qualify joins a namespace and a name.
func Qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "::" + name
}

// SplitName splits a possibly qualified name.
func SplitName(name string) (namespace, base string) {
	if i := strings.LastIndex(name, "::"); i >= 0 {
		return name[:i], name[i+2:]
	}
	return "", name
}
