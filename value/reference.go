// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"github.com/MovGP0/UnitSystem-sub000/config"
)

// Reference names a variable, written &x. It is dereferenced each time
// it is used, so it sees later assignments to the variable.
type Reference struct {
	Namespace string
	Name      string
}

func (r Reference) String() string {
	return "(" + r.ProgString() + ")"
}

func (r Reference) Sprint(*config.Config) string {
	return r.ProgString()
}

func (r Reference) ProgString() string {
	return "&" + Qualify(r.Namespace, r.Name)
}

func (r Reference) Eval(Context) Value {
	return r
}

func (r Reference) Kind() Kind {
	return ReferenceKind
}

// Deref returns the current value of the variable. References to
// references are followed.
func (r Reference) Deref(c Context) Value {
	seen := map[Reference]bool{}
	var v Value = r
	for {
		ref, ok := v.(Reference)
		if !ok {
			return v
		}
		if seen[ref] {
			Errorf("reference cycle through %s", ref.ProgString())
		}
		seen[ref] = true
		v, ok = c.Lookup(ref.Namespace, ref.Name)
		if !ok {
			panic(&VariableNotFoundError{Namespace: ref.Namespace, Name: ref.Name})
		}
	}
}
