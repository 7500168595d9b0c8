// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package run

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MovGP0/UnitSystem-sub000/config"
	"github.com/MovGP0/UnitSystem-sub000/value"
)

func newEvaluator() (*Evaluator, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	conf := new(config.Config)
	conf.SetOutput(stdout)
	conf.SetErrOutput(stderr)
	return New(conf), stdout, stderr
}

func TestEvalPersists(t *testing.T) {
	e, _, _ := newEvaluator()
	_, err := e.Eval("f(x) = x * 10")
	require.NoError(t, err)
	_, err = e.Eval("k = 2")
	require.NoError(t, err)
	v, err := e.Eval("f(k) + 1")
	require.NoError(t, err)
	assert.Equal(t, "21", v.Sprint(e.Config()))
}

func TestEvalLastValue(t *testing.T) {
	e, _, _ := newEvaluator()
	v, err := e.Eval("1; 2; x = 3")
	require.NoError(t, err)
	assert.Equal(t, "3", v.Sprint(e.Config()))

	_, err = e.Eval("")
	assert.EqualError(t, err, "no statement to evaluate")
}

func TestEvalError(t *testing.T) {
	e, _, _ := newEvaluator()
	_, err := e.Eval("f(x) = g(x) + 1; g(y) = q; f(2)")
	require.Error(t, err)

	var notFound *value.VariableNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "q", notFound.Name)

	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, []string{"f(2)", "g(2)"}, rerr.Trace)

	// The failed call leaves nothing behind.
	assert.Len(t, e.Context().Stack, 1)
	v, err := e.Eval("g(y) = y; f(2)")
	require.NoError(t, err)
	assert.Equal(t, "3", v.Sprint(e.Config()))
}

func TestEvalSyntaxError(t *testing.T) {
	e, _, _ := newEvaluator()
	_, err := e.Eval("2 +")
	var serr *value.SyntaxError
	require.True(t, errors.As(err, &serr), "%v", err)
	assert.True(t, serr.Incomplete)
}

func TestComplete(t *testing.T) {
	e, _, _ := newEvaluator()
	tests := []struct {
		text string
		want bool
	}{
		{"1 + 2", true},
		{"1 +", false},
		{"f(1,", false},
		{"[[1, 2],", false},
		{"x = ", false},
		{"1 when true", false},
		{"3 ? 4", true},
		{"1 +)", true},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, e.Complete(test.text), test.text)
	}
}

func TestRunContinuation(t *testing.T) {
	e, stdout, stderr := newEvaluator()
	ok := e.Run(strings.NewReader("[1,\n 2]\nx = 4\nx; x + 1\n"), false)
	require.True(t, ok, stderr.String())
	assert.Equal(t, "[1, 2]\n4 5\n", stdout.String())
}

func TestRunReportsAndContinues(t *testing.T) {
	e, stdout, stderr := newEvaluator()
	ok := e.Run(strings.NewReader("q\n2\n"), false)
	assert.False(t, ok)
	assert.Equal(t, "2\n", stdout.String())
	assert.Equal(t, "1: variable q not found\n", stderr.String())
}

func TestRunPartialLine(t *testing.T) {
	// Values computed before the failing statement are still printed.
	e, stdout, stderr := newEvaluator()
	ok := e.Run(strings.NewReader("1; 2; 1/0; 4\n"), false)
	assert.False(t, ok)
	assert.Equal(t, "1 2\n", stdout.String())
	assert.Contains(t, stderr.String(), "division by zero")
}

func TestRunPendingAtEOF(t *testing.T) {
	e, _, stderr := newEvaluator()
	ok := e.Run(strings.NewReader("1 +"), false)
	assert.False(t, ok)
	assert.Equal(t, "1: syntax error: missing operand after \"+\"\n", stderr.String())
}

func TestRunTrace(t *testing.T) {
	e, _, stderr := newEvaluator()
	e.Run(strings.NewReader("f(x) = g(x)\ng(x) = x / 0\nf(1)\n"), false)
	assert.Equal(t, "3: division by zero\n\tat f(1)\n\tat g(1)\n", stderr.String())
}

func TestRunPrompt(t *testing.T) {
	e, stdout, _ := newEvaluator()
	e.Config().SetPrompt("> ")
	e.Run(strings.NewReader("(1 +\n2)\n"), true)
	assert.Equal(t, ">   3\n> ", stdout.String())
}

func TestUnderscore(t *testing.T) {
	e, stdout, _ := newEvaluator()
	require.True(t, e.Line("6 * 7"))
	require.True(t, e.Line("_ + 1"))
	assert.Equal(t, "42\n43\n", stdout.String())
}

func TestDebugTypes(t *testing.T) {
	e, stdout, _ := newEvaluator()
	e.Config().SetDebug("types", true)
	require.True(t, e.Line(`1; 1\2; [1]; "a"`))
	assert.Equal(t, "number,rational,vector,text\n1 1/2 [1] a\n", stdout.String())
}

func TestErrorStyle(t *testing.T) {
	e, _, stderr := newEvaluator()
	e.ErrorStyle = func(format string, args ...interface{}) string {
		return "<" + fmt.Sprintf(format, args...) + ">"
	}
	assert.False(t, e.Line("nope"))
	assert.Equal(t, "<variable nope not found>\n", stderr.String())
}

func TestCPUUsage(t *testing.T) {
	u := cpuUsage{user: 3000000, sys: 1000000}
	d := u.sub(cpuUsage{user: 1000000})
	assert.Equal(t, "2ms user, 1ms sys", d.String())
}
