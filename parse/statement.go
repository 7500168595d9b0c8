// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

// Code for statements: declarations, assignments and delete. A statement
// with a top-level = is a declaration; anything else is an expression.

import (
	"strconv"

	"github.com/MovGP0/UnitSystem-sub000/scan"
	"github.com/MovGP0/UnitSystem-sub000/value"
)

// Names bound in every sequence formula besides its index.
var rangeNames = []string{"start", "end"}

func (c *compilation) statement(toks []scan.Token) value.Expr {
	if isKeyword(toks[0], "delete") {
		return c.delete(toks)
	}
	for i, t := range toks {
		if t.Type == scan.Assign {
			return c.declaration(toks[:i], toks[i+1:])
		}
	}
	return c.expr(toks)
}

// delete compiles "delete name".
func (c *compilation) delete(toks []scan.Token) value.Expr {
	if len(toks) < 2 {
		c.incomplete("missing name after delete")
	}
	if len(toks) > 2 || toks[1].Type != scan.Identifier && toks[1].Type != scan.Qualified {
		c.errorf("delete takes a single name")
	}
	ns, name := value.SplitName(toks[1].Text)
	return &value.DeleteExpr{Namespace: ns, Name: name}
}

// declaration compiles lhs = rhs, where lhs is one of
//
//	name
//	name(params)
//	name[index]
//	name[index](params)
func (c *compilation) declaration(lhs, rhs []scan.Token) value.Expr {
	if len(lhs) == 0 {
		c.errorf("missing name before =")
	}
	if len(rhs) == 0 {
		c.incomplete("missing value after =")
	}
	t := lhs[0]
	if t.Type != scan.Identifier && t.Type != scan.Qualified {
		c.errorf("cannot assign to %s", c.text(lhs))
	}
	ns, name := value.SplitName(t.Text)
	source := c.text(rhs)
	switch {
	case len(lhs) == 1:
		return &value.AssignExpr{Namespace: ns, Name: name, Value: c.expr(rhs)}
	case len(lhs) == 2 && lhs[1].Type == scan.Paren:
		params := c.paramList(lhs[1])
		c.check(source, params)
		return &value.FuncDeclExpr{Func: value.NewFunction(ns, name, params, source)}
	case lhs[1].Type == scan.Bracket && (len(lhs) == 2 || len(lhs) == 3 && lhs[2].Type == scan.Paren):
		return c.indexed(ns, name, lhs, rhs)
	}
	c.errorf("cannot assign to %s", c.text(lhs))
	panic("not reached")
}

// indexed compiles an assignment to name[index]: an element of a
// variable, or a sequence formula. Which one is decided when it runs.
func (c *compilation) indexed(ns, name string, lhs, rhs []scan.Token) value.Expr {
	bracket := lhs[1]
	e := &value.IndexedDeclExpr{
		Namespace: ns,
		Name:      name,
		Index:     c.list(bracket, false),
		Value:     c.expr(rhs),
	}
	if len(e.Index) == 0 {
		c.errorf("missing index for %s", name)
	}
	decl := &value.SequenceDecl{Namespace: ns, Name: name, Source: c.text(rhs)}
	sub := bracket.Sub
	switch {
	case len(sub) == 1 && sub[0].Type == scan.Identifier && !c.local(sub[0].Text):
		decl.IndexVar = sub[0].Text
	case len(sub) == 1 && sub[0].Type == scan.Number:
		decl.Index = c.integer(sub[0].Text)
	case len(sub) == 2 && sub[0].Type == scan.Operator && sub[0].Text == "-" && sub[1].Type == scan.Number:
		decl.Index = -c.integer(sub[1].Text)
	default:
		decl = nil
	}
	if len(lhs) == 3 {
		if decl == nil {
			c.errorf("sequence index must be a name or an integer, not %s", bracket.Text)
		}
		decl.Params = c.paramList(lhs[2])
	}
	if decl != nil {
		params := append([]string{decl.IndexVar}, rangeNames...)
		c.check(decl.Source, append(params, decl.Params...))
	}
	e.Decl = decl
	return e
}

func (c *compilation) integer(text string) int {
	i, err := strconv.Atoi(text)
	if err != nil {
		c.errorf("sequence index %s is not an integer", text)
	}
	return i
}

// paramList returns the parameter names of a declaration. An empty
// list is not nil.
func (c *compilation) paramList(t scan.Token) []string {
	params := []string{}
	if len(t.Sub) == 0 {
		return params
	}
	seen := make(map[string]bool)
	for _, piece := range scan.Split(t.Sub, scan.Comma) {
		if len(piece) != 1 || piece[0].Type != scan.Identifier {
			c.errorf("bad parameter %q in %s", c.text(piece), t.Text)
		}
		p := piece[0].Text
		if seen[p] {
			c.errorf("duplicate parameter %s in %s", p, t.Text)
		}
		seen[p] = true
		params = append(params, p)
	}
	return params
}

// check compiles a declared body so syntax errors are reported at the
// declaration rather than at first use.
func (c *compilation) check(source string, params []string) {
	sub := &compilation{conf: c.conf, src: source, params: params}
	toks, err := scan.Tokenize(c.conf, "<body>", source)
	if err != nil {
		c.errorf("%v", err)
	}
	sub.expr(toks)
}
