// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scan

import (
	"fmt"
	"strings"

	"github.com/MovGP0/UnitSystem-sub000/config"
)

// SyntaxError is a scanning or grouping error at a byte offset of the input.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d: %s", e.Offset, e.Msg)
}

// Flat scans the whole input and returns its tokens without grouping.
// The EOF token is not included.
func Flat(conf *config.Config, name, input string) ([]Token, error) {
	l := New(conf, name, input)
	var toks []Token
	for {
		tok := l.Next()
		switch tok.Type {
		case EOF:
			return toks, nil
		case Error:
			return nil, &SyntaxError{Offset: tok.Offset, Msg: tok.Text}
		}
		toks = append(toks, tok)
	}
}

// Tokenize scans the input and returns its token tree: parentheses and
// brackets become Paren and Bracket tokens whose Sub holds the contents.
func Tokenize(conf *config.Config, name, input string) ([]Token, error) {
	flat, err := Flat(conf, name, input)
	if err != nil {
		return nil, err
	}
	type open struct {
		tok  Token
		toks []Token
	}
	var stack []open
	var toks []Token
	for _, tok := range flat {
		switch tok.Type {
		case LeftParen, LeftBrack:
			stack = append(stack, open{tok, toks})
			toks = nil
		case RightParen, RightBrack:
			want := LeftParen
			if tok.Type == RightBrack {
				want = LeftBrack
			}
			if len(stack) == 0 || stack[len(stack)-1].tok.Type != want {
				return nil, &SyntaxError{Offset: tok.Offset, Msg: fmt.Sprintf("unbalanced %q", tok.Text)}
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			group := Token{
				Type:   Paren,
				Offset: top.tok.Offset,
				Text:   input[top.tok.Offset:tok.End()],
				Sub:    toks,
			}
			if want == LeftBrack {
				group.Type = Bracket
			}
			toks = append(top.toks, group)
		default:
			toks = append(toks, tok)
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1].tok
		return nil, &SyntaxError{Offset: top.Offset, Msg: fmt.Sprintf("unclosed %q", top.Text)}
	}
	return toks, nil
}

// Split divides a token list at the top-level tokens of the given type,
// typically Comma or Semicolon. Empty pieces are kept.
func Split(toks []Token, sep Type) [][]Token {
	var out [][]Token
	start := 0
	for i, tok := range toks {
		if tok.Type == sep {
			out = append(out, toks[start:i])
			start = i + 1
		}
	}
	return append(out, toks[start:])
}

// Rename returns src with every identifier found in names replaced by its
// mapping. Qualified names, symbols and strings are left alone.
func Rename(src string, names map[string]string) (string, error) {
	toks, err := Flat(nil, "<rename>", src)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	last := 0
	for _, tok := range toks {
		if tok.Type != Identifier {
			continue
		}
		repl, ok := names[tok.Text]
		if !ok {
			continue
		}
		b.WriteString(src[last:tok.Offset])
		b.WriteString(repl)
		last = tok.End()
	}
	b.WriteString(src[last:])
	return b.String(), nil
}

// Mentions reports whether src uses any of the names as an identifier.
func Mentions(src string, names ...string) bool {
	toks, err := Flat(nil, "<mentions>", src)
	if err != nil {
		return false
	}
	for _, tok := range toks {
		if tok.Type != Identifier {
			continue
		}
		for _, name := range names {
			if tok.Text == name {
				return true
			}
		}
	}
	return false
}
