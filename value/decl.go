// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"strings"
)

// The statements below change the scope when evaluated. Their values
// are not printed.

// AssignExpr is name = expr.
type AssignExpr struct {
	Namespace string
	Name      string
	Value     Expr
}

func (e *AssignExpr) ProgString() string {
	return fmt.Sprintf("%s = %s", Qualify(e.Namespace, e.Name), e.Value.ProgString())
}

func (e *AssignExpr) Eval(c Context) Value {
	v := e.Value.Eval(c)
	c.Assign(e.Namespace, e.Name, v)
	return v
}

func (*AssignExpr) declaration() {}

// FuncDeclExpr is f(params) = body. The body is compiled on first call.
type FuncDeclExpr struct {
	Func *Function
}

func (e *FuncDeclExpr) ProgString() string {
	return fmt.Sprintf("%s = %s", e.Func.Signature(), e.Func.Source)
}

func (e *FuncDeclExpr) Eval(c Context) Value {
	fn := *e.Func
	c.Define(&fn)
	return FunctionValue{&fn}
}

func (*FuncDeclExpr) declaration() {}

// IndexedDeclExpr is name[index] = body, optionally with a parameter
// list after the index. If name is a variable, the element is replaced.
// Otherwise it declares a sequence element formula: a general one when
// the index is a name, or a single element when it is an integer.
type IndexedDeclExpr struct {
	Namespace string
	Name      string
	Index     []Expr
	Value     Expr
	Decl      *SequenceDecl
}

func (e *IndexedDeclExpr) ProgString() string {
	s := Qualify(e.Namespace, e.Name) + indexProgString(e.Index)
	if e.Decl != nil && e.Decl.Params != nil {
		s += "(" + strings.Join(e.Decl.Params, ", ") + ")"
	}
	return s + " = " + e.Value.ProgString()
}

func (e *IndexedDeclExpr) Eval(c Context) Value {
	if e.Decl == nil || e.Decl.Params == nil {
		if cur, ok := c.Lookup(e.Namespace, e.Name); ok {
			if _, isSeq := c.Sequence(e.Namespace, e.Name); !isSeq {
				return e.setElement(c, cur)
			}
		}
	}
	if e.Decl == nil {
		Errorf("%s is not a variable and %s is not a sequence index", e.Name, indexProgString(e.Index))
	}
	c.DeclareSequence(e.Decl)
	return Text(e.ProgString())
}

func (e *IndexedDeclExpr) setElement(c Context, cur Value) Value {
	v := deref(c, e.Value.Eval(c))
	ns, name := e.Namespace, e.Name
	// Assigning through a reference updates the variable it names.
	for {
		r, ok := cur.(Reference)
		if !ok {
			break
		}
		ns, name = r.Namespace, r.Name
		cur, ok = c.Lookup(ns, name)
		if !ok {
			panic(&VariableNotFoundError{Namespace: ns, Name: name})
		}
	}
	c.Assign(ns, name, SetIndex(c, cur, evalList(c, e.Index), v))
	return v
}

func (*IndexedDeclExpr) declaration() {}

// DeleteExpr is "delete name". Deleting a native object closes it.
type DeleteExpr struct {
	Namespace string
	Name      string
}

func (e *DeleteExpr) ProgString() string {
	return "delete " + Qualify(e.Namespace, e.Name)
}

func (e *DeleteExpr) Eval(c Context) Value {
	v, ok := c.Delete(e.Namespace, e.Name)
	if !ok {
		panic(&VariableNotFoundError{Namespace: e.Namespace, Name: e.Name})
	}
	if o, ok := v.(Object); ok {
		if err := o.Close(); err != nil {
			Errorf("delete %s: %v", e.Name, err)
		}
	}
	return v
}

func (*DeleteExpr) declaration() {}
