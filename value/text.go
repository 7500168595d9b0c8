// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/MovGP0/UnitSystem-sub000/config"
)

// Text is a string value.
type Text string

func (t Text) String() string {
	return "(" + strconv.Quote(string(t)) + ")"
}

func (t Text) Sprint(*config.Config) string {
	return string(t)
}

func (t Text) ProgString() string {
	return strconv.Quote(string(t))
}

func (t Text) Eval(Context) Value {
	return t
}

func (t Text) Kind() Kind {
	return TextKind
}

func textBinary(c Context, op string, u, v Value) Value {
	x, xok := u.(Text)
	y, yok := v.(Text)
	switch {
	case xok && yok:
		switch op {
		case "+":
			return x + y
		case "<":
			return Bool(x < y)
		case "<=":
			return Bool(x <= y)
		case ">":
			return Bool(x > y)
		case ">=":
			return Bool(x >= y)
		}
	case xok:
		switch op {
		case "+":
			return x + Text(v.Sprint(c.Config()))
		case "*":
			n := ToInt(c, v)
			if n < 0 {
				Errorf("negative repeat count %d", n)
			}
			return Text(strings.Repeat(string(x), n))
		case "<<", ">>":
			n := ToInt(c, v)
			if op == ">>" {
				n = -n
			}
			runes := []rune(string(x))
			if len(runes) == 0 {
				return x
			}
			n = ((n % len(runes)) + len(runes)) % len(runes)
			return Text(string(runes[n:]) + string(runes[:n]))
		}
	case yok && op == "+":
		return Text(u.Sprint(c.Config())) + y
	}
	unsupported(op, u, v)
	panic("not reached")
}

func (t Text) index(i int) Value {
	n := utf8.RuneCountInString(string(t))
	if i < 0 || i >= n {
		Errorf("index %d out of range for text of length %d", i, n)
	}
	return Text(string([]rune(string(t))[i]))
}
