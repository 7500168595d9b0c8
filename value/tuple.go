// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"strings"

	"github.com/MovGP0/UnitSystem-sub000/config"
)

// Tuple is a fixed list of values of any kinds, written (a, b, c).
type Tuple []Value

func (t Tuple) String() string {
	return "(" + t.Sprint(nil) + ")"
}

func (t Tuple) Sprint(conf *config.Config) string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = v.Sprint(conf)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t Tuple) ProgString() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = v.ProgString()
	}
	if len(t) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t Tuple) Eval(Context) Value {
	return t
}

func (t Tuple) Kind() Kind {
	return TupleKind
}
