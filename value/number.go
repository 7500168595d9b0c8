// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"math"
	"strconv"

	"github.com/MovGP0/UnitSystem-sub000/config"
)

// Number is a real number in floating point.
type Number float64

func (n Number) String() string {
	return "(" + n.Sprint(nil) + ")"
}

func (n Number) Sprint(conf *config.Config) string {
	f := float64(n)
	if f == 0 {
		f = 0 // No negative zero.
	}
	return fmt.Sprintf(conf.Format(), f)
}

func (n Number) ProgString() string {
	f := float64(n)
	switch {
	case math.IsInf(f, 1):
		return "(1e308*10)"
	case math.IsInf(f, -1):
		return "(-1e308*10)"
	case f < 0:
		return "(" + strconv.FormatFloat(f, 'g', -1, 64) + ")"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (n Number) Eval(Context) Value {
	return n
}

func (n Number) Kind() Kind {
	return NumberKind
}

// isInt reports whether n is an integer small enough to index with.
func (n Number) isInt() bool {
	f := float64(n)
	return f == math.Trunc(f) && math.Abs(f) < 1<<53
}

// ToFloat returns the real value of a number or rational.
func ToFloat(c Context, v Value) float64 {
	switch v := deref(c, v).(type) {
	case Number:
		return float64(v)
	case Rational:
		f, _ := v.r.Float64()
		return f
	}
	Errorf("expected number, found %s", v.Kind())
	panic("not reached")
}

// ToInt returns the integer value of a number or rational.
func ToInt(c Context, v Value) int {
	f := ToFloat(c, v)
	if f != math.Trunc(f) || math.Abs(f) >= 1<<53 {
		Errorf("expected integer, found %s", v.Sprint(c.Config()))
	}
	return int(f)
}

func numberBinary(op string, u, v Value) Value {
	x, y := float64(u.(Number)), float64(v.(Number))
	switch op {
	case "+":
		return Number(x + y)
	case "-":
		return Number(x - y)
	case "*":
		return Number(x * y)
	case "/":
		if y == 0 {
			Errorf("division by zero")
		}
		return Number(x / y)
	case "%":
		if y == 0 {
			Errorf("modulo by zero")
		}
		return Number(math.Mod(x, y))
	case "^", "^.":
		if x < 0 && y != math.Trunc(y) {
			Errorf("negative base %g with fractional exponent %g", x, y)
		}
		if x == 0 && y < 0 {
			Errorf("division by zero")
		}
		return Number(math.Pow(x, y))
	case "(*)":
		return Number(x * y)
	case "<":
		return Bool(x < y)
	case "<=":
		return Bool(x <= y)
	case ">":
		return Bool(x > y)
	case ">=":
		return Bool(x >= y)
	}
	unsupported(op, u, v)
	panic("not reached")
}

func factorial(c Context, v Value) Value {
	n := ToFloat(c, v)
	if n < 0 || n != math.Trunc(n) {
		Errorf("factorial of %g", n)
	}
	if r, ok := v.(Rational); ok {
		return r.factorial()
	}
	if n > 170 {
		return Number(math.Inf(1))
	}
	f := 1.0
	for i := 2.0; i <= n; i++ {
		f *= i
	}
	return Number(f)
}
