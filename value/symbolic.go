// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/MovGP0/UnitSystem-sub000/config"
)

// Symbolic is an expression over named symbols, such as $x^2+1.
// Trees are immutable and kept simplified.
type Symbolic struct {
	n *node
}

// node is a symbolic expression tree.
// op is "num", "sym", "neg", "call", or a binary operator.
type node struct {
	op   string
	num  float64
	name string
	args []*node
}

// NewSymbol returns the symbol with the given name.
func NewSymbol(name string) Symbolic {
	return Symbolic{&node{op: "sym", name: name}}
}

func numNode(f float64) *node {
	return &node{op: "num", num: f}
}

func (s Symbolic) String() string {
	return "(" + s.Sprint(nil) + ")"
}

func (s Symbolic) Sprint(*config.Config) string {
	return s.n.render(false)
}

func (s Symbolic) ProgString() string {
	return "(" + s.n.render(true) + ")"
}

func (s Symbolic) Eval(Context) Value {
	return s
}

func (s Symbolic) Kind() Kind {
	return SymbolicKind
}

// Symbol returns the name if s is a bare symbol.
func (s Symbolic) Symbol() (string, bool) {
	if s.n.op == "sym" {
		return s.n.name, true
	}
	return "", false
}

// Symbols returns the free symbols of s, sorted.
func (s Symbolic) Symbols() []string {
	set := map[string]bool{}
	s.n.symbols(set)
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (n *node) symbols(set map[string]bool) {
	if n.op == "sym" {
		set[n.name] = true
	}
	for _, a := range n.args {
		a.symbols(set)
	}
}

func (n *node) has(name string) bool {
	if n.op == "sym" {
		return n.name == name
	}
	for _, a := range n.args {
		if a.has(name) {
			return true
		}
	}
	return false
}

func (n *node) isNum(f float64) bool {
	return n.op == "num" && n.num == f
}

func (n *node) equal(m *node) bool {
	if n.op != m.op || n.num != m.num || n.name != m.name || len(n.args) != len(m.args) {
		return false
	}
	for i := range n.args {
		if !n.args[i].equal(m.args[i]) {
			return false
		}
	}
	return true
}

// symbolicOf converts a number or rational to a constant tree.
func symbolicOf(c Context, v Value) Symbolic {
	switch v := v.(type) {
	case Symbolic:
		return v
	case Number:
		return Symbolic{numNode(float64(v))}
	case Rational:
		return Symbolic{numNode(v.float())}
	case FunctionValue:
		return v.fn.symbolic(c)
	}
	Errorf("cannot convert %s to symbolic", v.Kind())
	panic("not reached")
}

func symBinary(op string, a, b *node) *node {
	switch op {
	case "+":
		return symAdd(a, b)
	case "-":
		return symSub(a, b)
	case "*":
		return symMul(a, b)
	case "/":
		return symDiv(a, b)
	case "^":
		return symPow(a, b)
	}
	return &node{op: op, args: []*node{a, b}}
}

func symAdd(a, b *node) *node {
	switch {
	case a.op == "num" && b.op == "num":
		return numNode(a.num + b.num)
	case a.isNum(0):
		return b
	case b.isNum(0):
		return a
	case a.equal(b):
		return symMul(numNode(2), a)
	case b.op == "neg":
		return symSub(a, b.args[0])
	}
	return &node{op: "+", args: []*node{a, b}}
}

func symSub(a, b *node) *node {
	switch {
	case a.op == "num" && b.op == "num":
		return numNode(a.num - b.num)
	case b.isNum(0):
		return a
	case a.isNum(0):
		return symNeg(b)
	case a.equal(b):
		return numNode(0)
	}
	return &node{op: "-", args: []*node{a, b}}
}

func symMul(a, b *node) *node {
	switch {
	case a.op == "num" && b.op == "num":
		return numNode(a.num * b.num)
	case a.isNum(0), b.isNum(0):
		return numNode(0)
	case a.isNum(1):
		return b
	case b.isNum(1):
		return a
	case a.isNum(-1):
		return symNeg(b)
	case b.isNum(-1):
		return symNeg(a)
	case b.op == "num":
		// Constants go first.
		return symMul(b, a)
	case a.op == "num" && b.op == "*" && b.args[0].op == "num":
		return symMul(numNode(a.num*b.args[0].num), b.args[1])
	case a.equal(b):
		return symPow(a, numNode(2))
	}
	return &node{op: "*", args: []*node{a, b}}
}

func symDiv(a, b *node) *node {
	switch {
	case b.isNum(0):
		Errorf("division by zero")
	case a.op == "num" && b.op == "num":
		return numNode(a.num / b.num)
	case a.isNum(0):
		return numNode(0)
	case b.isNum(1):
		return a
	case a.equal(b):
		return numNode(1)
	}
	return &node{op: "/", args: []*node{a, b}}
}

func symPow(a, b *node) *node {
	switch {
	case a.op == "num" && b.op == "num":
		return numNode(math.Pow(a.num, b.num))
	case b.isNum(0):
		return numNode(1)
	case b.isNum(1):
		return a
	case a.isNum(1):
		return numNode(1)
	}
	return &node{op: "^", args: []*node{a, b}}
}

func symNeg(a *node) *node {
	switch a.op {
	case "num":
		return numNode(-a.num)
	case "neg":
		return a.args[0]
	}
	return &node{op: "neg", args: []*node{a}}
}

// symFuncs are the elementary functions a tree may apply.
var symFuncs = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"exp":  math.Exp,
	"ln":   math.Log,
	"sqrt": math.Sqrt,
}

func symCall(name string, a *node) *node {
	if a.op == "num" {
		return numNode(symFuncs[name](a.num))
	}
	return &node{op: "call", name: name, args: []*node{a}}
}

// SymbolicCall applies the elementary function to s.
func SymbolicCall(name string, s Symbolic) Symbolic {
	if symFuncs[name] == nil {
		Errorf("no symbolic form of %s", name)
	}
	return Symbolic{symCall(name, s.n)}
}

// derivative returns d n / d x.
func (n *node) derivative(x string) *node {
	switch n.op {
	case "num":
		return numNode(0)
	case "sym":
		if n.name == x {
			return numNode(1)
		}
		return numNode(0)
	case "neg":
		return symNeg(n.args[0].derivative(x))
	case "call":
		a := n.args[0]
		da := a.derivative(x)
		var outer *node
		switch n.name {
		case "sin":
			outer = symCall("cos", a)
		case "cos":
			outer = symNeg(symCall("sin", a))
		case "tan":
			outer = symDiv(numNode(1), symPow(symCall("cos", a), numNode(2)))
		case "exp":
			outer = n
		case "ln":
			outer = symDiv(numNode(1), a)
		case "sqrt":
			outer = symDiv(numNode(1), symMul(numNode(2), n))
		}
		return symMul(outer, da)
	}
	a, b := n.args[0], n.args[1]
	da, db := a.derivative(x), b.derivative(x)
	switch n.op {
	case "+":
		return symAdd(da, db)
	case "-":
		return symSub(da, db)
	case "*":
		return symAdd(symMul(da, b), symMul(a, db))
	case "/":
		return symDiv(symSub(symMul(da, b), symMul(a, db)), symPow(b, numNode(2)))
	case "^":
		switch {
		case !b.has(x):
			return symMul(symMul(b, symPow(a, symSub(b, numNode(1)))), da)
		case !a.has(x):
			return symMul(symMul(n, symCall("ln", a)), db)
		}
		return symMul(n, symAdd(symMul(db, symCall("ln", a)), symDiv(symMul(b, da), a)))
	}
	Errorf("cannot differentiate %s", n.op)
	panic("not reached")
}

// Derivative returns the derivative of s with respect to the symbol.
func (s Symbolic) Derivative(symbol string) Symbolic {
	return Symbolic{s.n.derivative(symbol)}
}

// substitute replaces the symbol by r and simplifies.
func (n *node) substitute(name string, r *node) *node {
	switch n.op {
	case "num":
		return n
	case "sym":
		if n.name == name {
			return r
		}
		return n
	case "neg":
		return symNeg(n.args[0].substitute(name, r))
	case "call":
		return symCall(n.name, n.args[0].substitute(name, r))
	}
	return symBinary(n.op, n.args[0].substitute(name, r), n.args[1].substitute(name, r))
}

// Substitute replaces the symbol by the value, which must be a number
// or symbolic. The result has no free symbols only if all were replaced.
func (s Symbolic) Substitute(c Context, symbol string, v Value) Symbolic {
	return Symbolic{s.n.substitute(symbol, symbolicOf(c, deref(c, v)).n)}
}

// Constant returns the value of a tree with no free symbols.
func (s Symbolic) Constant() (float64, bool) {
	if s.n.op == "num" {
		return s.n.num, true
	}
	return 0, false
}

const (
	precSum = iota + 1
	precProduct
	precUnary
	precPower
	precAtom
)

func (n *node) prec() int {
	switch n.op {
	case "+", "-":
		return precSum
	case "*", "/":
		return precProduct
	case "neg":
		return precUnary
	case "^":
		return precPower
	case "num":
		if n.num < 0 {
			return precUnary
		}
	}
	return precAtom
}

// render prints the tree with the fewest parentheses that keep its
// structure. With prog set, symbols are written with their $ prefix.
func (n *node) render(prog bool) string {
	var b strings.Builder
	n.write(&b, prog)
	return b.String()
}

func (n *node) write(b *strings.Builder, prog bool) {
	switch n.op {
	case "num":
		b.WriteString(strconv.FormatFloat(n.num, 'g', 12, 64))
		return
	case "sym":
		if prog {
			b.WriteByte('$')
		}
		b.WriteString(n.name)
		return
	case "neg":
		b.WriteByte('-')
		n.args[0].writeOperand(b, prog, precAtom)
		return
	case "call":
		b.WriteString(n.name)
		b.WriteByte('(')
		n.args[0].write(b, prog)
		b.WriteByte(')')
		return
	}
	p := n.prec()
	left, right := p, p+1
	if n.op == "^" {
		left, right = p+1, p
	}
	n.args[0].writeOperand(b, prog, left)
	b.WriteString(n.op)
	n.args[1].writeOperand(b, prog, right)
}

func (n *node) writeOperand(b *strings.Builder, prog bool, min int) {
	if n.prec() < min {
		b.WriteByte('(')
		n.write(b, prog)
		b.WriteByte(')')
		return
	}
	n.write(b, prog)
}

func symbolicBinary(op string, u, v Value) Value {
	a, b := u.(Symbolic).n, v.(Symbolic).n
	switch op {
	case "+", "-", "*", "/", "^":
		return Symbolic{symBinary(op, a, b)}
	case "^.":
		return Symbolic{symPow(a, b)}
	case "(*)":
		return Symbolic{symMul(a, b)}
	}
	unsupported(op, u, v)
	panic("not reached")
}
