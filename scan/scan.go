// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scan turns calculator source text into a tree of typed tokens.
// It knows nothing about values or operators beyond their spelling.
package scan // import "github.com/MovGP0/UnitSystem-sub000/scan"

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MovGP0/UnitSystem-sub000/config"
)

// Token represents a token or text string returned from the scanner.
// Group tokens (Paren and Bracket) hold their contents in Sub and
// the full bracketed source in Text.
type Token struct {
	Type   Type    // The type of this item.
	Offset int     // Byte offset of the item in the input.
	Text   string  // The text of this item.
	Sub    []Token // The contents of a group.
}

// End returns the offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// Type identifies the type of lex items.
type Type int

const (
	EOF         Type = iota // zero value so an empty token is EOF
	Error                   // error occurred; value is text of error
	Number                  // 12, 1.5, 2e-3
	Imaginary               // 3i (complex), 2j 4k (quaternion)
	Rational                // 3\4
	Bool                    // true, false
	String                  // quoted string (includes quotes)
	Identifier              // alphanumeric identifier
	Qualified               // namespace::name
	Symbol                  // $x, a symbolic variable
	FuncRef                 // @f, a function value reference
	Reference               // &x, a reference to a variable
	Keyword                 // for in do new delete
	Operator                // known operator, including and or when otherwise
	Comma                   // ','
	Semicolon               // ';'
	Assign                  // '='
	NamedAssign             // ':='
	LeftParen               // '('
	RightParen              // ')'
	LeftBrack               // '['
	RightBrack              // ']'
	Paren                   // ( ... ) group
	Bracket                 // [ ... ] group
)

var typeNames = [...]string{
	EOF:         "EOF",
	Error:       "Error",
	Number:      "Number",
	Imaginary:   "Imaginary",
	Rational:    "Rational",
	Bool:        "Bool",
	String:      "String",
	Identifier:  "Identifier",
	Qualified:   "Qualified",
	Symbol:      "Symbol",
	FuncRef:     "FuncRef",
	Reference:   "Reference",
	Keyword:     "Keyword",
	Operator:    "Operator",
	Comma:       "Comma",
	Semicolon:   "Semicolon",
	Assign:      "Assign",
	NamedAssign: "NamedAssign",
	LeftParen:   "LeftParen",
	RightParen:  "RightParen",
	LeftBrack:   "LeftBrack",
	RightBrack:  "RightBrack",
	Paren:       "Paren",
	Bracket:     "Bracket",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

func (i Token) String() string {
	switch {
	case i.Type == EOF:
		return "EOF"
	case i.Type == Error:
		return "error: " + i.Text
	case len(i.Text) > 10:
		return fmt.Sprintf("%s: %.10q...", i.Type, i.Text)
	}
	return fmt.Sprintf("%s: %q", i.Type, i.Text)
}

// operators lists the multi-character operators, longest first where
// one is a prefix of another. Single-character operators are in opChars.
var operators = []string{
	"(*)",
	"->", "^.", "..", "++", "**", "!!", "!%", "!=", "==", "<=", ">=", "<<", ">>",
}

const opChars = "+-*/%^.!:|<>"

var words = map[string]Type{
	"true":      Bool,
	"false":     Bool,
	"and":       Operator,
	"or":        Operator,
	"when":      Operator,
	"otherwise": Operator,
	"for":       Keyword,
	"in":        Keyword,
	"do":        Keyword,
	"new":       Keyword,
	"delete":    Keyword,
}

const eof = -1

// stateFn represents the state of the scanner as a function that returns the next state.
type stateFn func(*Scanner) stateFn

// Scanner holds the state of the scanner.
type Scanner struct {
	conf      *config.Config
	name      string // the name of the input; used only for error reports
	input     string // the text being scanned
	lastRune  rune   // most recent return from next()
	lastWidth int    // size of that rune
	pos       int    // current position in the input
	start     int    // start position of this item
	token     Token
}

// New creates and returns a new scanner.
func New(conf *config.Config, name, input string) *Scanner {
	return &Scanner{
		conf:  conf,
		name:  name,
		input: input,
	}
}

// next returns the next rune in the input.
func (l *Scanner) next() rune {
	if l.pos >= len(l.input) {
		l.lastRune, l.lastWidth = eof, 0
		return eof
	}
	l.lastRune, l.lastWidth = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.lastWidth
	return l.lastRune
}

// peek returns but does not consume the next rune in the input.
func (l *Scanner) peek() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

// peek2 returns the next two runes ahead, but does not consume anything.
func (l *Scanner) peek2() (rune, rune) {
	pos, last, width := l.pos, l.lastRune, l.lastWidth
	r1 := l.next()
	r2 := l.next()
	l.pos, l.lastRune, l.lastWidth = pos, last, width
	return r1, r2
}

// backup steps back one rune. Should only be called once per call of next.
func (l *Scanner) backup() {
	if l.lastRune == eof {
		return
	}
	l.pos -= l.lastWidth
}

// emit passes an item back to the client.
func (l *Scanner) emit(t Type) stateFn {
	text := l.input[l.start:l.pos]
	l.token = Token{Type: t, Offset: l.start, Text: text}
	if l.conf.Debug("tokens") {
		fmt.Fprintf(l.conf.Output(), "%s:%d: emit %s\n", l.name, l.start, l.token)
	}
	l.start = l.pos
	return nil
}

// accept consumes the next rune if it's from the valid set.
func (l *Scanner) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

// acceptRun consumes a run of runes from the valid set.
func (l *Scanner) acceptRun(valid string) {
	for strings.ContainsRune(valid, l.next()) {
	}
	l.backup()
}

// errorf returns an error token and abandons the rest of the input.
func (l *Scanner) errorf(format string, args ...interface{}) stateFn {
	l.token = Token{Type: Error, Offset: l.start, Text: fmt.Sprintf(format, args...)}
	l.start = len(l.input)
	l.pos = len(l.input)
	return nil
}

// Next returns the next token.
func (l *Scanner) Next() Token {
	l.lastRune = eof
	l.lastWidth = 0
	l.token = Token{Type: EOF, Offset: l.pos, Text: "EOF"}
	state := lexAny
	for {
		state = state(l)
		if state == nil {
			return l.token
		}
	}
}

// state functions

// lexComment scans a comment. The comment marker has been consumed.
func lexComment(l *Scanner) stateFn {
	for {
		r := l.next()
		if r == eof || r == '\n' {
			break
		}
	}
	l.start = l.pos
	return lexAny
}

// lexAny scans non-space items.
func lexAny(l *Scanner) stateFn {
	switch r := l.next(); {
	case r == eof:
		return nil
	case isSpace(r):
		return lexSpace
	case r == '#':
		return lexComment
	case r == ';':
		return l.emit(Semicolon)
	case r == ',':
		return l.emit(Comma)
	case r == '"':
		return lexQuote
	case r == '$':
		return lexPrefixed(l, Symbol, false)
	case r == '@':
		return lexPrefixed(l, FuncRef, true)
	case r == '&':
		return lexPrefixed(l, Reference, true)
	case r == '(':
		if strings.HasPrefix(l.input[l.pos:], "*)") {
			l.pos += 2
			return l.emit(Operator)
		}
		return l.emit(LeftParen)
	case r == ')':
		return l.emit(RightParen)
	case r == '[':
		return l.emit(LeftBrack)
	case r == ']':
		return l.emit(RightBrack)
	case isDigit(r):
		l.backup()
		return lexNumber
	case r == '.' && isDigit(l.peek()):
		l.backup()
		return lexNumber
	case isAlphaNumeric(r):
		l.backup()
		return lexIdentifier
	case r == ':' && l.peek() == '=':
		l.next()
		return l.emit(NamedAssign)
	case r == '=' && l.peek() != '=':
		return l.emit(Assign)
	case r == '=' || strings.ContainsRune(opChars, r):
		l.backup()
		return lexOperator
	default:
		return l.errorf("unrecognized character: %#U", r)
	}
}

// lexSpace scans a run of space characters.
// One space has already been seen.
func lexSpace(l *Scanner) stateFn {
	for isSpace(l.peek()) {
		l.next()
	}
	// Skips over the pending input.
	l.start = l.pos
	return lexAny
}

// lexOperator scans an operator, preferring the longest match.
func lexOperator(l *Scanner) stateFn {
	rest := l.input[l.pos:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			l.pos += len(op)
			return l.emit(Operator)
		}
	}
	r := l.next()
	if !strings.ContainsRune(opChars, r) {
		return l.errorf("unrecognized operator %q", r)
	}
	return l.emit(Operator)
}

// lexIdentifier scans an alphanumeric, possibly namespace qualified.
func lexIdentifier(l *Scanner) stateFn {
	l.scanName()
	if strings.HasPrefix(l.input[l.pos:], "::") {
		l.pos += 2
		if !isAlphaNumeric(l.peek()) || isDigit(l.peek()) {
			return l.errorf("bad qualified name %q", l.input[l.start:l.pos])
		}
		l.scanName()
		return l.emit(Qualified)
	}
	if t, ok := words[l.input[l.start:l.pos]]; ok {
		return l.emit(t)
	}
	return l.emit(Identifier)
}

// lexPrefixed scans a sigil followed by a name. The sigil has been consumed.
func lexPrefixed(l *Scanner, t Type, qualified bool) stateFn {
	if r := l.peek(); !isAlphaNumeric(r) || isDigit(r) {
		return l.errorf("expected name after %q", l.input[l.start:l.pos])
	}
	l.scanName()
	if qualified && strings.HasPrefix(l.input[l.pos:], "::") {
		l.pos += 2
		l.scanName()
	}
	return l.emit(t)
}

func (l *Scanner) scanName() {
	for isAlphaNumeric(l.peek()) {
		l.next()
	}
}

// lexQuote scans a quoted string. The initial quote has been consumed.
func lexQuote(l *Scanner) stateFn {
Loop:
	for {
		switch l.next() {
		case '\\':
			if r := l.next(); r != eof && r != '\n' {
				break
			}
			fallthrough
		case eof, '\n':
			return l.errorf("unterminated quoted string")
		case '"':
			break Loop
		}
	}
	return l.emit(String)
}

// lexNumber scans a number: decimal or float, optionally followed by
// a rational denominator or an imaginary suffix.
func lexNumber(l *Scanner) stateFn {
	const digits = "0123456789"
	l.acceptRun(digits)
	isInt := true
	if r1, r2 := l.peek2(); r1 == '.' && isDigit(r2) {
		l.next()
		l.acceptRun(digits)
		isInt = false
	}
	if r1, r2 := l.peek2(); r1 == 'e' || r1 == 'E' {
		if isDigit(r2) || r2 == '+' || r2 == '-' {
			l.next()
			l.accept("+-")
			if !isDigit(l.peek()) {
				return l.errorf("bad number syntax: %s", l.input[l.start:l.pos])
			}
			l.acceptRun(digits)
			isInt = false
		}
	}
	typ := Number
	switch r1, r2 := l.peek2(); {
	case r1 == '\\' && isDigit(r2):
		if !isInt {
			return l.errorf("bad rational syntax: %s", l.input[l.start:l.pos])
		}
		l.next()
		l.acceptRun(digits)
		typ = Rational
	case (r1 == 'i' || r1 == 'j' || r1 == 'k') && !isAlphaNumeric(r2):
		l.next()
		typ = Imaginary
	}
	if isAlphaNumeric(l.peek()) {
		return l.errorf("bad number syntax: %s", l.input[l.start:l.pos+1])
	}
	return l.emit(typ)
}

// isSpace reports whether r is a space character.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// isAlphaNumeric reports whether r is an alphabetic, digit, or underscore.
func isAlphaNumeric(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
