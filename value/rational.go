// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"math"
	"math/big"

	"github.com/MovGP0/UnitSystem-sub000/config"
)

// Rational is an exact fraction. Arithmetic between rationals stays
// exact; a rational never turns into a Number by itself except for
// powers with fractional exponents.
type Rational struct {
	r *big.Rat
}

// NewRational returns the rational num/den. It panics if den is zero.
func NewRational(num, den *big.Int) Rational {
	if den.Sign() == 0 {
		Errorf("zero denominator in rational")
	}
	return Rational{new(big.Rat).SetFrac(num, den)}
}

func (r Rational) String() string {
	return "(" + r.Sprint(nil) + ")"
}

func (r Rational) Sprint(*config.Config) string {
	if r.r.IsInt() {
		return r.r.Num().String()
	}
	return r.r.Num().String() + "/" + r.r.Denom().String()
}

func (r Rational) ProgString() string {
	s := r.r.Num().String() + `\` + r.r.Denom().String()
	if r.r.Sign() < 0 {
		return "(" + s + ")"
	}
	return s
}

func (r Rational) Eval(Context) Value {
	return r
}

func (r Rational) Kind() Kind {
	return RationalKind
}

func (r Rational) float() float64 {
	f, _ := r.r.Float64()
	return f
}

// numberToRational converts an integral Number exactly; others become
// the closest fraction.
func numberToRational(n Number) Rational {
	f := float64(n)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		Errorf("cannot convert %g to rational", f)
	}
	return Rational{new(big.Rat).SetFloat64(f)}
}

func rationalBinary(op string, u, v Value) Value {
	x, y := u.(Rational).r, v.(Rational).r
	z := new(big.Rat)
	switch op {
	case "+":
		return Rational{z.Add(x, y)}
	case "-":
		return Rational{z.Sub(x, y)}
	case "*", "(*)":
		return Rational{z.Mul(x, y)}
	case "/":
		if y.Sign() == 0 {
			Errorf("division by zero")
		}
		return Rational{z.Quo(x, y)}
	case "%":
		if y.Sign() == 0 {
			Errorf("modulo by zero")
		}
		// x - y*trunc(x/y), matching math.Mod.
		q := new(big.Rat).Quo(x, y)
		t := new(big.Int).Quo(q.Num(), q.Denom())
		return Rational{z.Sub(x, new(big.Rat).Mul(y, new(big.Rat).SetInt(t)))}
	case "^", "^.":
		return rationalPower(u.(Rational), v.(Rational))
	case "<":
		return Bool(x.Cmp(y) < 0)
	case "<=":
		return Bool(x.Cmp(y) <= 0)
	case ">":
		return Bool(x.Cmp(y) > 0)
	case ">=":
		return Bool(x.Cmp(y) >= 0)
	}
	unsupported(op, u, v)
	panic("not reached")
}

func rationalPower(u, v Rational) Value {
	if !v.r.IsInt() || !v.r.Num().IsInt64() || math.Abs(float64(v.r.Num().Int64())) > 1<<16 {
		return numberBinary("^", Number(u.float()), Number(v.float()))
	}
	exp := v.r.Num().Int64()
	if exp < 0 {
		if u.r.Sign() == 0 {
			Errorf("division by zero")
		}
		exp = -exp
		u = Rational{new(big.Rat).Inv(u.r)}
	}
	e := big.NewInt(exp)
	num := new(big.Int).Exp(u.r.Num(), e, nil)
	den := new(big.Int).Exp(u.r.Denom(), e, nil)
	return Rational{new(big.Rat).SetFrac(num, den)}
}

func (r Rational) factorial() Value {
	n := r.r.Num().Int64()
	f := big.NewInt(1)
	f.MulRange(1, n)
	if n == 0 {
		f.SetInt64(1)
	}
	return Rational{new(big.Rat).SetInt(f)}
}
