// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/MovGP0/UnitSystem-sub000/scan"
	"github.com/MovGP0/UnitSystem-sub000/value"
)

// A link is one operand of an expression chain and the operator that
// follows it. The operator of the last link is empty.
type link struct {
	expr value.Expr
	op   string
}

// hiMul is the operator placed after the -1 standing for a leading
// minus sign. It binds tighter than anything, so 5^-3 is 5^(-1 hiMul 3).
const hiMul = "_h*"

// binaryOps are the operators accepted between two operands.
var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"^": true, "^.": true, "^x": true,
	".": true, "x": true, "(*)": true, "|": true,
	"<<": true, ">>": true, "..": true,
	"<": true, "<=": true, ">": true, ">=": true, "==": true, "!=": true,
	"and": true, "or": true, "when": true, "otherwise": true,
	"->": true, "!": true, ":": true,
}

// expr compiles a list of tokens holding one expression.
func (c *compilation) expr(toks []scan.Token) value.Expr {
	return c.fold(c.chain(toks))
}

// chain assembles the tokens into links.
func (c *compilation) chain(toks []scan.Token) []*link {
	if len(toks) == 0 {
		c.incomplete("missing expression")
	}
	var links []*link
	i := 0
	for {
		// Leading signs.
		for i < len(toks) && isSign(toks[i]) {
			if toks[i].Text == "-" {
				links = append(links, &link{expr: value.Number(-1), op: hiMul})
			}
			i++
		}
		if i == len(toks) {
			c.incomplete("missing operand after %q", toks[i-1].Text)
		}
		if isKeyword(toks[i], "for") {
			// The loop body extends to the end of the expression.
			return append(links, &link{expr: c.loop(toks[i:])})
		}
		expr, n := c.term(toks[i:])
		i += n
		expr, n = c.postfix(expr, toks[i:], toks[i-1].End())
		i += n
		l := &link{expr: expr}
		links = append(links, l)
		if i == len(toks) {
			return links
		}
		l.op, n = c.operator(toks[i:])
		i += n
		if i == len(toks) {
			c.incomplete("missing operand after %q", l.op)
		}
	}
}

func isSign(t scan.Token) bool {
	return t.Type == scan.Operator && (t.Text == "-" || t.Text == "+")
}

func isKeyword(t scan.Token, word string) bool {
	return t.Type == scan.Keyword && t.Text == word
}

// startsTerm reports whether the token can begin an operand.
func startsTerm(t scan.Token) bool {
	switch t.Type {
	case scan.Number, scan.Imaginary, scan.Rational, scan.Bool, scan.String,
		scan.Identifier, scan.Qualified, scan.Symbol, scan.FuncRef, scan.Reference,
		scan.Paren, scan.Bracket:
		return true
	case scan.Keyword:
		return t.Text == "new" || t.Text == "for"
	}
	return false
}

// term compiles the operand at the start of toks and reports how many
// tokens it used.
func (c *compilation) term(toks []scan.Token) (value.Expr, int) {
	t := toks[0]
	switch t.Type {
	case scan.Number:
		return c.number(t.Text), 1
	case scan.Imaginary:
		f := c.number(t.Text[:len(t.Text)-1])
		switch t.Text[len(t.Text)-1] {
		case 'i':
			return value.Complex(complex(0, float64(f))), 1
		case 'j':
			return value.Quaternion{0, 0, float64(f), 0}, 1
		}
		return value.Quaternion{0, 0, 0, float64(f)}, 1
	case scan.Rational:
		i := strings.IndexByte(t.Text, '\\')
		num, ok1 := new(big.Int).SetString(t.Text[:i], 10)
		den, ok2 := new(big.Int).SetString(t.Text[i+1:], 10)
		if !ok1 || !ok2 {
			c.errorf("bad rational %s", t.Text)
		}
		if den.Sign() == 0 {
			c.errorf("zero denominator in %s", t.Text)
		}
		return value.NewRational(num, den), 1
	case scan.Bool:
		return value.Bool(t.Text == "true"), 1
	case scan.String:
		s, err := strconv.Unquote(t.Text)
		if err != nil {
			c.errorf("bad string %s", t.Text)
		}
		return value.Text(s), 1
	case scan.Symbol:
		return value.NewSymbol(t.Text[1:]), 1
	case scan.FuncRef:
		ns, name := value.SplitName(t.Text[1:])
		return &value.FuncRefExpr{Namespace: ns, Name: name}, 1
	case scan.Reference:
		ns, name := value.SplitName(t.Text[1:])
		return &value.RefExpr{Namespace: ns, Name: name}, 1
	case scan.Paren:
		return c.group(t), 1
	case scan.Bracket:
		return value.VectorExpr(c.list(t, false)), 1
	case scan.Identifier, scan.Qualified:
		return c.name(toks)
	case scan.Keyword:
		if t.Text == "new" {
			return c.construct(toks)
		}
	case scan.Operator:
		panic(&value.SyntaxError{Msg: "missing operand before " + t.Text, Operator: t.Text})
	}
	c.errorf("unexpected %q", t.Text)
	panic("not reached")
}

func (c *compilation) number(text string) value.Number {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		c.errorf("bad number %s", text)
	}
	return value.Number(f)
}

// group compiles a parenthesized expression, or a tuple if the group
// holds a comma: (a, b) or (a,).
func (c *compilation) group(t scan.Token) value.Expr {
	pieces := scan.Split(t.Sub, scan.Comma)
	if len(pieces) == 1 {
		if len(t.Sub) == 0 {
			return value.TupleExpr{}
		}
		return c.expr(t.Sub)
	}
	return value.TupleExpr(c.list(t, true))
}

// list compiles the comma-separated expressions of a group. A trailing
// comma is allowed if trailing is set.
func (c *compilation) list(t scan.Token, trailing bool) []value.Expr {
	exprs := []value.Expr{}
	if len(t.Sub) == 0 {
		return exprs
	}
	pieces := scan.Split(t.Sub, scan.Comma)
	for i, piece := range pieces {
		if len(piece) == 0 {
			if trailing && i == len(pieces)-1 && i > 0 {
				break
			}
			c.errorf("empty element in %s", t.Text)
		}
		exprs = append(exprs, c.expr(piece))
	}
	return exprs
}

// name compiles an operand starting with a name: a parameter, a loop
// variable, a call, a sequence or variable index, or a variable.
func (c *compilation) name(toks []scan.Token) (value.Expr, int) {
	t := toks[0]
	ns, name := "", t.Text
	if t.Type == scan.Qualified {
		ns, name = value.SplitName(t.Text)
	}
	var next scan.Token
	if len(toks) > 1 {
		next = toks[1]
	}
	if ns == "" {
		if i := c.param(name); i >= 0 {
			if next.Type == scan.Paren {
				// The parameter holds the function to call.
				return &value.DeferredCallExpr{Param: i, Name: name, Args: c.args(next)}, 2
			}
			return &value.ParamExpr{Index: i, Name: name}, 1
		}
		if loop, ok := c.loopVar(name); ok {
			if next.Type == scan.Paren {
				return &value.ValueCallExpr{Target: loop, Args: c.args(next)}, 2
			}
			return loop, 1
		}
	}
	switch next.Type {
	case scan.Paren:
		return &value.CallExpr{Namespace: ns, Name: name, Args: c.args(next)}, 2
	case scan.Bracket:
		n := 2
		var args []*value.ArgExpr
		if len(toks) > 2 && toks[2].Type == scan.Paren {
			args = c.args(toks[2])
			n++
		}
		if r, from, to, ok := c.reduction(next); ok {
			return &value.ReduceExpr{Namespace: ns, Name: name, Reduction: r, From: from, To: to, Args: args}, n
		}
		index := c.list(next, false)
		if len(index) == 0 {
			c.errorf("missing index for %s", t.Text)
		}
		return &value.NameIndexExpr{Namespace: ns, Name: name, Index: index, Args: args}, n
	}
	return &value.VarExpr{Namespace: ns, Name: name}, 1
}

// reduction recognizes the range forms a..b, a++b, a**b, a!!b and a!%b
// inside brackets.
func (c *compilation) reduction(t scan.Token) (value.Reduction, value.Expr, value.Expr, bool) {
	for i, x := range t.Sub {
		if x.Type != scan.Operator {
			continue
		}
		r, ok := value.ReductionOp(x.Text)
		if !ok {
			continue
		}
		if i == 0 {
			c.errorf("missing start of range in %s", t.Text)
		}
		if i == len(t.Sub)-1 {
			c.incomplete("missing end of range in %s", t.Text)
		}
		return r, c.expr(t.Sub[:i]), c.expr(t.Sub[i+1:]), true
	}
	return 0, nil, nil, false
}

// args compiles the arguments of a call. Named arguments, written
// name := value, must follow the positional ones.
func (c *compilation) args(t scan.Token) []*value.ArgExpr {
	args := []*value.ArgExpr{}
	if len(t.Sub) == 0 {
		return args
	}
	named := make(map[string]bool)
	for _, piece := range scan.Split(t.Sub, scan.Comma) {
		if len(piece) == 0 {
			c.errorf("empty argument in %s", t.Text)
		}
		a := new(value.ArgExpr)
		if len(piece) >= 2 && piece[0].Type == scan.Identifier && piece[1].Type == scan.NamedAssign {
			a.Name = piece[0].Text
			if named[a.Name] {
				c.errorf("argument %s given twice", a.Name)
			}
			named[a.Name] = true
			piece = piece[2:]
			if len(piece) == 0 {
				c.incomplete("missing value for argument %s", a.Name)
			}
		} else if len(named) > 0 {
			c.errorf("positional argument after named arguments in %s", t.Text)
		}
		a.Expr = c.expr(piece)
		a.Raw = c.text(piece)
		args = append(args, a)
	}
	return args
}

// construct compiles new T(args).
func (c *compilation) construct(toks []scan.Token) (value.Expr, int) {
	if len(toks) < 2 || toks[1].Type != scan.Identifier {
		c.incomplete("missing type name after new")
	}
	e := &value.NewExpr{Type: toks[1].Text}
	if len(toks) < 3 || toks[2].Type != scan.Paren {
		c.incomplete("missing arguments for new %s", e.Type)
	}
	e.Args = c.list(toks[2], false)
	return e, 3
}

// loop compiles "for v in collection do body".
func (c *compilation) loop(toks []scan.Token) value.Expr {
	if len(toks) < 2 {
		c.incomplete("missing loop variable")
	}
	if toks[1].Type != scan.Identifier {
		c.errorf("bad loop variable %q", toks[1].Text)
	}
	if len(toks) < 3 || !isKeyword(toks[2], "in") {
		c.incomplete("missing in after for %s", toks[1].Text)
	}
	do := -1
	for i := 3; i < len(toks); i++ {
		if isKeyword(toks[i], "do") {
			do = i
			break
		}
	}
	if do < 0 {
		c.incomplete("missing do in for loop")
	}
	e := &value.LoopExpr{Var: toks[1].Text, Collection: c.expr(toks[3:do])}
	c.loops = append(c.loops, e.Var)
	defer func() { c.loops = c.loops[:len(c.loops)-1] }()
	e.Body = c.expr(toks[do+1:])
	return e
}

// postfix applies the indexers, member calls and postfix operators
// that follow an operand ending at offset end, and reports how many
// tokens it used. A percent sign is postfix only when it touches the
// operand, so 50% - 2 takes a percentage and 7 % -2 is a remainder.
func (c *compilation) postfix(expr value.Expr, toks []scan.Token, end int) (value.Expr, int) {
	i := 0
	for i < len(toks) {
		t := toks[i]
		if i > 0 {
			end = toks[i-1].End()
		}
		var next scan.Token
		if i+1 < len(toks) {
			next = toks[i+1]
		}
		switch {
		case t.Type == scan.Bracket:
			expr = &value.IndexExpr{Left: expr, Index: c.list(t, false)}
			i++
		case t.Type == scan.Paren:
			expr = &value.ValueCallExpr{Target: expr, Args: c.args(t)}
			i++
		case t.Type != scan.Operator:
			return expr, i
		case t.Text == "->" && next.Type == scan.Identifier:
			var n int
			expr, n = c.member(expr, toks[i+1:])
			i += 1 + n
		case t.Text == "!" && (next.Type == scan.Identifier || next.Type == scan.Qualified || next.Type == scan.String):
			var n int
			expr, n = c.member(expr, toks[i+1:])
			i += 1 + n
		case t.Text == ":" && (next.Type == scan.Identifier && !c.local(next.Text) || next.Type == scan.String):
			var n int
			expr, n = c.member(expr, toks[i+1:])
			i += 1 + n
		case (t.Text == "!" || t.Text == "%" && t.Offset == end) && (next.Type == scan.EOF || next.Type == scan.Operator):
			expr = &value.UnaryExpr{Op: t.Text, Right: expr}
			i++
		default:
			return expr, i
		}
	}
	return expr, i
}

// member compiles the name and optional arguments of a member call.
func (c *compilation) member(target value.Expr, toks []scan.Token) (value.Expr, int) {
	e := &value.MemberExpr{Target: target, Name: toks[0].Text}
	if toks[0].Type == scan.String {
		s, err := strconv.Unquote(toks[0].Text)
		if err != nil {
			c.errorf("bad member name %s", toks[0].Text)
		}
		e.Name = s
	}
	if len(toks) > 1 && toks[1].Type == scan.Paren {
		e.Args = c.args(toks[1])
		return e, 2
	}
	return e, 1
}

// operator reads the binary operator at the start of toks.
func (c *compilation) operator(toks []scan.Token) (string, int) {
	t := toks[0]
	switch t.Type {
	case scan.Operator:
		if t.Text == "^" && len(toks) > 2 && toks[1].Type == scan.Identifier && toks[1].Text == "x" && startsTerm(toks[2]) {
			return "^x", 2
		}
		if !binaryOps[t.Text] {
			panic(&value.SyntaxError{Msg: "unexpected operator " + t.Text, Operator: t.Text})
		}
		return t.Text, 1
	case scan.Identifier:
		if t.Text == "x" {
			return "x", 1
		}
	}
	if startsTerm(t) {
		c.errorf("missing operator before %q", t.Text)
	}
	c.errorf("unexpected %q", t.Text)
	panic("not reached")
}
