// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse compiles calculator source into expressions. An
// expression is compiled in two passes: the tokens are first assembled
// into a flat chain of operands joined by operators, and the chain is
// then folded by operator priority into a single expression tree.
package parse // import "github.com/MovGP0/UnitSystem-sub000/parse"

import (
	"fmt"
	"strings"

	"github.com/MovGP0/UnitSystem-sub000/config"
	"github.com/MovGP0/UnitSystem-sub000/scan"
	"github.com/MovGP0/UnitSystem-sub000/value"
)

// Compiler compiles statements and expressions. It holds no state
// between calls, so one Compiler serves any number of evaluations.
type Compiler struct {
	conf *config.Config
}

// NewCompiler returns a compiler using the configuration for its
// debug switches.
func NewCompiler(conf *config.Config) *Compiler {
	return &Compiler{conf: conf}
}

// compilation is the state of compiling one piece of source text.
type compilation struct {
	conf *config.Config
	// src is the text being compiled. Token offsets index it.
	src string
	// params are the names bound to the parameters of the function
	// or sequence formula being compiled.
	params []string
	// loops are the variables of the enclosing for loops, outermost
	// first.
	loops []string
}

// Compile compiles text as a single expression. Free occurrences of the
// names in params refer to the parameters of the enclosing function.
func (p *Compiler) Compile(text string, params []string) (expr value.Expr, err error) {
	defer catch(&err)
	c, toks := p.start(text, params)
	for _, t := range toks {
		switch t.Type {
		case scan.Semicolon, scan.Assign:
			c.errorf("unexpected %q in expression", t.Text)
		}
	}
	expr = c.expr(toks)
	if p.conf.Debug("parse") {
		p.conf.Logger().Debug("compile", "source", text, "params", strings.Join(params, ","), "expr", expr.ProgString())
	}
	return expr, nil
}

// Statements compiles text as a list of statements separated by
// semicolons. Empty statements are skipped.
func (p *Compiler) Statements(text string) (exprs []value.Expr, err error) {
	defer catch(&err)
	c, toks := p.start(text, nil)
	for _, stmt := range scan.Split(toks, scan.Semicolon) {
		if len(stmt) == 0 {
			continue
		}
		expr := c.statement(stmt)
		if p.conf.Debug("parse") {
			p.conf.Logger().Debug("statement", "source", c.text(stmt), "expr", expr.ProgString())
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func (p *Compiler) start(text string, params []string) (*compilation, []scan.Token) {
	c := &compilation{conf: p.conf, src: text, params: params}
	toks, err := scan.Tokenize(p.conf, "<input>", text)
	if err != nil {
		serr := &value.SyntaxError{Msg: err.Error()}
		if e, ok := err.(*scan.SyntaxError); ok {
			serr.Incomplete = strings.HasPrefix(e.Msg, "unclosed") || strings.HasPrefix(e.Msg, "unterminated")
		}
		panic(serr)
	}
	return c, toks
}

// catch turns a syntax error raised during compilation into a returned
// error. Other panics continue.
func catch(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(*value.SyntaxError); ok {
		*err = e
		return
	}
	panic(r)
}

func (c *compilation) errorf(format string, args ...interface{}) {
	panic(&value.SyntaxError{Msg: fmt.Sprintf(format, args...)})
}

// incomplete reports input that ended where more was needed.
func (c *compilation) incomplete(format string, args ...interface{}) {
	panic(&value.SyntaxError{Msg: fmt.Sprintf(format, args...), Incomplete: true})
}

// text returns the source text the tokens span.
func (c *compilation) text(toks []scan.Token) string {
	if len(toks) == 0 {
		return ""
	}
	return c.src[toks[0].Offset:toks[len(toks)-1].End()]
}

// param returns the index of the named parameter, or -1.
func (c *compilation) param(name string) int {
	for i, p := range c.params {
		if p == name {
			return i
		}
	}
	return -1
}

// loopVar returns the expression for a loop variable or its counter
// alias _name, searching from the innermost loop out.
func (c *compilation) loopVar(name string) (*value.LoopVarExpr, bool) {
	for i := len(c.loops) - 1; i >= 0; i-- {
		switch name {
		case c.loops[i]:
			return &value.LoopVarExpr{Depth: i, Name: name}, true
		case "_" + c.loops[i]:
			return &value.LoopVarExpr{Depth: i, Name: name, Counter: true}, true
		}
	}
	return nil, false
}

// local reports whether the unqualified name is a parameter or loop
// variable, which shadow everything in scope.
func (c *compilation) local(name string) bool {
	_, ok := c.loopVar(name)
	return ok || c.param(name) >= 0
}
