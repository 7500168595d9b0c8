// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scan

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tok struct {
	Type Type
	Text string
}

func flatten(t *testing.T, input string) []tok {
	t.Helper()
	toks, err := Flat(nil, "test", input)
	require.NoError(t, err, input)
	out := make([]tok, len(toks))
	for i, x := range toks {
		out[i] = tok{x.Type, x.Text}
	}
	return out
}

func TestFlat(t *testing.T) {
	var tests = []struct {
		input string
		want  []tok
	}{
		{"2+3*4", []tok{{Number, "2"}, {Operator, "+"}, {Number, "3"}, {Operator, "*"}, {Number, "4"}}},
		{"5^-2", []tok{{Number, "5"}, {Operator, "^"}, {Operator, "-"}, {Number, "2"}}},
		{"1.5e3 .25 2i 3j 4k 3\\4", []tok{{Number, "1.5e3"}, {Number, ".25"}, {Imaginary, "2i"}, {Imaginary, "3j"}, {Imaginary, "4k"}, {Rational, "3\\4"}}},
		{"S[0..5]", []tok{{Identifier, "S"}, {LeftBrack, "["}, {Number, "0"}, {Operator, ".."}, {Number, "5"}, {RightBrack, "]"}}},
		{"S[a++b] S[a**b] S[a!!b] S[a!%b]", []tok{
			{Identifier, "S"}, {LeftBrack, "["}, {Identifier, "a"}, {Operator, "++"}, {Identifier, "b"}, {RightBrack, "]"},
			{Identifier, "S"}, {LeftBrack, "["}, {Identifier, "a"}, {Operator, "**"}, {Identifier, "b"}, {RightBrack, "]"},
			{Identifier, "S"}, {LeftBrack, "["}, {Identifier, "a"}, {Operator, "!!"}, {Identifier, "b"}, {RightBrack, "]"},
			{Identifier, "S"}, {LeftBrack, "["}, {Identifier, "a"}, {Operator, "!%"}, {Identifier, "b"}, {RightBrack, "]"},
		}},
		{"f(y:=4, x := 3)", []tok{{Identifier, "f"}, {LeftParen, "("}, {Identifier, "y"}, {NamedAssign, ":="}, {Number, "4"}, {Comma, ","}, {Identifier, "x"}, {NamedAssign, ":="}, {Number, "3"}, {RightParen, ")"}}},
		{"a (*) b", []tok{{Identifier, "a"}, {Operator, "(*)"}, {Identifier, "b"}}},
		{"Math::pi @sq @Math::sqrt &x $t", []tok{{Qualified, "Math::pi"}, {FuncRef, "@sq"}, {FuncRef, "@Math::sqrt"}, {Reference, "&x"}, {Symbol, "$t"}}},
		{"1 when true otherwise 0", []tok{{Number, "1"}, {Operator, "when"}, {Bool, "true"}, {Operator, "otherwise"}, {Number, "0"}}},
		{"x == y != z <= w", []tok{{Identifier, "x"}, {Operator, "=="}, {Identifier, "y"}, {Operator, "!="}, {Identifier, "z"}, {Operator, "<="}, {Identifier, "w"}}},
		{"v = \"a \\\"b\\\"\" # comment", []tok{{Identifier, "v"}, {Assign, "="}, {String, `"a \"b\""`}}},
		{"for i in v do i", []tok{{Keyword, "for"}, {Identifier, "i"}, {Keyword, "in"}, {Identifier, "v"}, {Keyword, "do"}, {Identifier, "i"}}},
		{"m->det() ^. ^x", []tok{{Identifier, "m"}, {Operator, "->"}, {Identifier, "det"}, {LeftParen, "("}, {RightParen, ")"}, {Operator, "^."}, {Operator, "^"}, {Identifier, "x"}}},
	}
	for _, test := range tests {
		got := flatten(t, test.input)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%q: mismatch (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestFlatErrors(t *testing.T) {
	for _, input := range []string{
		`"unterminated`,
		"12abc",
		"2.5\\3",
		"a ~ b",
		"$",
		"ns::",
	} {
		_, err := Flat(nil, "test", input)
		assert.Error(t, err, input)
	}
}

func TestTokenize(t *testing.T) {
	toks, err := Tokenize(nil, "test", "f(1, [2, 3])[0]")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, Identifier, toks[0].Type)
	assert.Equal(t, Paren, toks[1].Type)
	assert.Equal(t, "(1, [2, 3])", toks[1].Text)
	require.Len(t, toks[1].Sub, 3)
	assert.Equal(t, Bracket, toks[1].Sub[2].Type)
	assert.Len(t, toks[1].Sub[2].Sub, 3)
	assert.Equal(t, Bracket, toks[2].Type)
	assert.Equal(t, 12, toks[2].Offset)
	assert.Equal(t, 15, toks[2].End())

	for _, input := range []string{"(1", "1)", "[1)", "(]"} {
		_, err := Tokenize(nil, "test", input)
		assert.Error(t, err, input)
	}
}

func TestGroupingErrors(t *testing.T) {
	tests := []struct {
		input  string
		offset int
		msg    string
	}{
		{"1 + (2", 4, `unclosed "("`},
		{"[1, 2))", 6, `unbalanced ")"`},
		{`x = "abc`, 4, "unterminated quoted string"},
	}
	for _, test := range tests {
		_, err := Tokenize(nil, "test", test.input)
		var serr *SyntaxError
		require.True(t, errors.As(err, &serr), "%s: %v", test.input, err)
		assert.Equal(t, test.offset, serr.Offset, test.input)
		assert.Equal(t, test.msg, serr.Msg, test.input)
	}
}

func TestSplit(t *testing.T) {
	toks, err := Tokenize(nil, "test", "a = 1; f(1, 2); ")
	require.NoError(t, err)
	parts := Split(toks, Semicolon)
	require.Len(t, parts, 3)
	assert.Len(t, parts[0], 3)
	assert.Len(t, parts[1], 2)
	assert.Len(t, parts[2], 0)
	args := Split(parts[1][1].Sub, Comma)
	assert.Len(t, args, 2)
}

func TestRename(t *testing.T) {
	got, err := Rename("x^2 + y*x + Math::x + $x + \"x\"", map[string]string{"x": "_p0", "y": "(3)"})
	require.NoError(t, err)
	assert.Equal(t, "_p0^2 + (3)*_p0 + Math::x + $x + \"x\"", got)
}

func TestMentions(t *testing.T) {
	assert.True(t, Mentions("n + start", "start", "end"))
	assert.False(t, Mentions("n + starting", "start", "end"))
	assert.False(t, Mentions("\"end\"", "end"))
}
