// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MovGP0/UnitSystem-sub000/config"
	"github.com/MovGP0/UnitSystem-sub000/parse"
	"github.com/MovGP0/UnitSystem-sub000/value"
)

func newCompiler() *parse.Compiler {
	return parse.NewCompiler(new(config.Config))
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2+3*4", "(2 + (3 * 4))"},
		{"(2+3)*4", "((2 + 3) * 4)"},
		{"10-4-3", "((10 - 4) - 3)"},
		{"2^3^2", "(2 ^ (3 ^ 2))"},
		{"5^-2", "(5 ^ (-2))"},
		{"-a^2", "(((-1) * a) ^ 2)"},
		{"2 - -3", "(2 - (-3))"},
		{"a < b and c or d", "(((a < b) and c) or d)"},
		{"a == b + 1", "(a == (b + 1))"},
		{"1 << 2 + 1", "(1 << (2 + 1))"},
		{"1 when a otherwise 2", "(1 when a otherwise 2)"},
		{"1 when a otherwise 2 when b otherwise 3", "(1 when a otherwise (2 when b otherwise 3))"},
		{"5!", "(5)!"},
		{"5! + 1", "((5)! + 1)"},
		{"50% * 2", "((50)% * 2)"},
		{"50% - 2", "((50)% - 2)"},
		{"7 % -2", "(7 % (-2))"},
		{"7 % 3", "(7 % 3)"},
		{"1..5", "(1 .. 5)"},
		{"[1, 2] x [3, 4] * 2", "(([1, 2] x [3, 4]) * 2)"},
		{"$y^2 | $y", "((($y) ^ 2) | ($y))"},
		{"m->det", "m->det"},
		{"m->row(0) + 1", "(m->row(0) + 1)"},
		{"v!kind", "v->kind"},
		{"f(1, y := 2)", "f(1, y := 2)"},
		{"S[1++3]", "S[1++3]"},
		{"P[2..4](1)", "P[2..4](1)"},
		{"@f + &g", "(@f + &g)"},
		{"(1, 2)", "(1, 2)"},
		{"for v in [1, 2] do v * _v", "(for v in [1, 2] do ($0 * _$0))"},
	}
	p := newCompiler()
	for _, test := range tests {
		expr, err := p.Compile(test.in, nil)
		if !assert.NoError(t, err, test.in) {
			continue
		}
		assert.Equal(t, test.want, expr.ProgString(), test.in)
	}
}

func TestParameters(t *testing.T) {
	p := newCompiler()
	expr, err := p.Compile("x * y + f(x)", []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, "((#0 * #1) + f(#0))", expr.ProgString())

	// A parameter followed by arguments calls whatever it holds.
	expr, err = p.Compile("g(g(2))", []string{"g"})
	require.NoError(t, err)
	assert.Equal(t, "#0(#0(2))", expr.ProgString())
}

func TestStatements(t *testing.T) {
	p := newCompiler()
	exprs, err := p.Statements("x = 1; ; f(a, b) = a + b; S[n] = n * 2; S[3] = 0; P[n](x) = x^n; delete x; x")
	require.NoError(t, err)
	require.Len(t, exprs, 7)

	assert.IsType(t, &value.AssignExpr{}, exprs[0])
	assert.Equal(t, "x = 1", exprs[0].ProgString())

	decl, ok := exprs[1].(*value.FuncDeclExpr)
	require.True(t, ok, "%T", exprs[1])
	assert.Equal(t, "f", decl.Func.Name)
	assert.Equal(t, "a + b", decl.Func.Source)

	seq, ok := exprs[2].(*value.IndexedDeclExpr)
	require.True(t, ok, "%T", exprs[2])
	require.NotNil(t, seq.Decl)
	assert.Equal(t, "n", seq.Decl.IndexVar)
	assert.Equal(t, "n * 2", seq.Decl.Source)

	fixed := exprs[3].(*value.IndexedDeclExpr)
	require.NotNil(t, fixed.Decl)
	assert.Equal(t, "", fixed.Decl.IndexVar)
	assert.Equal(t, 3, fixed.Decl.Index)

	param := exprs[4].(*value.IndexedDeclExpr)
	require.NotNil(t, param.Decl)
	if diff := cmp.Diff([]string{"x"}, param.Decl.Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "delete x", exprs[5].ProgString())
	assert.IsType(t, &value.VarExpr{}, exprs[6])
}

func TestNegativeSequenceIndex(t *testing.T) {
	exprs, err := newCompiler().Statements("S[-2] = 1")
	require.NoError(t, err)
	decl := exprs[0].(*value.IndexedDeclExpr).Decl
	require.NotNil(t, decl)
	assert.Equal(t, -2, decl.Index)
}

func TestElementAssignment(t *testing.T) {
	// An index that is not a plain name or integer can only be an
	// element of a variable.
	exprs, err := newCompiler().Statements("v[1 + 1] = 7")
	require.NoError(t, err)
	e := exprs[0].(*value.IndexedDeclExpr)
	assert.Nil(t, e.Decl)
	assert.Equal(t, "v[(1 + 1)] = 7", e.ProgString())
}

func syntaxError(t *testing.T, err error) *value.SyntaxError {
	t.Helper()
	var serr *value.SyntaxError
	require.True(t, errors.As(err, &serr), "%v", err)
	return serr
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		in         string
		incomplete bool
	}{
		{"1 +", true},
		{"(1", true},
		{"[1, 2", true},
		{`"abc`, true},
		{"f(x) =", true},
		{"1 when 2", true},
		{"S[1..", true},
		{"for v in", true},
		{"new", true},
		{"1 )", false},
		{"1 2", false},
		{"3 = 4", false},
	}
	p := newCompiler()
	for _, test := range tests {
		_, err := p.Statements(test.in)
		require.Error(t, err, test.in)
		serr := syntaxError(t, err)
		assert.Equal(t, test.incomplete, serr.Incomplete, "%s: %v", test.in, err)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1 2", `missing operator before "2"`},
		{"= 3", "missing name before ="},
		{"3 = 4", "cannot assign to 3"},
		{"f(x, x) = 1", "duplicate parameter x in (x, x)"},
		{"f(a := 1, 2)", "positional argument after named arguments in (a := 1, 2)"},
		{"f(a := 1, a := 2)", "argument a given twice"},
		{"1 otherwise 2", "otherwise without when"},
		{"[1, , 2]", "empty element in [1, , 2]"},
		{"delete x y", "delete takes a single name"},
		{"1\\0", `zero denominator in 1\0`},
	}
	p := newCompiler()
	for _, test := range tests {
		_, err := p.Statements(test.in)
		require.Error(t, err, test.in)
		assert.Equal(t, test.want, syntaxError(t, err).Msg, test.in)
	}
}

func TestUnexpectedOperator(t *testing.T) {
	_, err := newCompiler().Statements("2 !! 3")
	serr := syntaxError(t, err)
	assert.Equal(t, "!!", serr.Operator)
	assert.Equal(t, "syntax error: unexpected operator !!", err.Error())
}

func TestBodyCheckedAtDeclaration(t *testing.T) {
	_, err := newCompiler().Statements("f(x) = x 3")
	serr := syntaxError(t, err)
	assert.Equal(t, `missing operator before "3"`, serr.Msg)
}

func TestCompileRejectsStatements(t *testing.T) {
	p := newCompiler()
	_, err := p.Compile("x = 1", nil)
	assert.EqualError(t, err, `syntax error: unexpected "=" in expression`)
	_, err = p.Compile("1; 2", nil)
	assert.EqualError(t, err, `syntax error: unexpected ";" in expression`)
}

func TestParseLogging(t *testing.T) {
	var buf bytes.Buffer
	conf := new(config.Config)
	conf.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	conf.SetDebug("parse", true)
	_, err := parse.NewCompiler(conf).Statements("1 + 2")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "msg=statement")
	assert.Contains(t, buf.String(), `expr="(1 + 2)"`)
}
