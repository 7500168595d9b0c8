// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"github.com/MovGP0/UnitSystem-sub000/value"
)

// priorities lists the operator groups from the tightest binding to
// the loosest. Operators in a group fold left to right, except ^.
var priorities = []map[string]bool{
	{hiMul: true},
	{"^": true, "^.": true, "^x": true, "..": true, "->": true, "!": true, ":": true},
	{"|": true},
	{"x": true},
	{"*": true, ".": true, "(*)": true, "/": true, "%": true},
	{"+": true, "-": true},
	{"<<": true, ">>": true},
	{"<": true, "<=": true, ">": true, ">=": true},
	{"==": true, "!=": true},
	{"and": true},
	{"or": true},
	{"when": true, "otherwise": true},
}

// fold reduces the chain to a single expression.
func (c *compilation) fold(links []*link) value.Expr {
	for _, group := range priorities {
		for i := 0; i < len(links)-1; {
			if group[links[i].op] {
				// The folded link stays at i and may fold again.
				links = c.foldAt(links, i)
				continue
			}
			i++
		}
	}
	if len(links) != 1 || links[0].op != "" {
		c.errorf("unexpected operator %s", links[0].op)
	}
	return links[0].expr
}

// foldAt combines link i with its right neighbor using link i's
// operator and splices the neighbor out.
func (c *compilation) foldAt(links []*link, i int) []*link {
	l := links[i]
	switch l.op {
	case "when":
		return c.foldWhen(links, i)
	case "otherwise":
		c.errorf("otherwise without when")
	case "^":
		// Right associative: 2^3^2 is 2^(3^2).
		if i+1 < len(links)-1 && links[i+1].op == "^" {
			links = c.foldAt(links, i+1)
		}
	}
	r := links[i+1]
	l.expr = combine(l.op, l.expr, r.expr)
	l.op = r.op
	return append(links[:i+1], links[i+2:]...)
}

// foldWhen folds "value when cond otherwise other". An otherwise
// branch that is itself a when expression is folded first.
func (c *compilation) foldWhen(links []*link, i int) []*link {
	if i+2 >= len(links) || links[i+1].op != "otherwise" {
		if i+2 >= len(links) {
			c.incomplete("when without otherwise")
		}
		c.errorf("when without otherwise")
	}
	if links[i+2].op == "when" {
		links = c.foldWhen(links, i+2)
	}
	l, cond, other := links[i], links[i+1], links[i+2]
	l.expr = &value.WhenExpr{Value: l.expr, Cond: cond.expr, Else: other.expr}
	l.op = other.op
	return append(links[:i+1], links[i+3:]...)
}

// combine builds the expression for left op right.
func combine(op string, left, right value.Expr) value.Expr {
	switch op {
	case hiMul:
		// A negated literal is a constant.
		if l, ok := left.(value.Number); ok {
			if r, ok := right.(value.Number); ok {
				return l * r
			}
		}
		return &value.BinaryExpr{Op: "*", Left: left, Right: right}
	case "and", "or":
		return &value.LogicalExpr{Op: op, Left: left, Right: right}
	}
	return &value.BinaryExpr{Op: op, Left: left, Right: right}
}
