// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"math/cmplx"
	"strconv"

	"github.com/MovGP0/UnitSystem-sub000/config"
)

// Complex is a complex number. It stays complex even when the
// imaginary part is zero.
type Complex complex128

func (z Complex) String() string {
	return "(" + z.Sprint(nil) + ")"
}

func (z Complex) Sprint(conf *config.Config) string {
	re, im := real(z), imag(z)
	if re == 0 {
		re = 0
	}
	sign := "+"
	if im < 0 {
		sign = "-"
		im = -im
	}
	format := conf.Format()
	return fmt.Sprintf(format+"%s"+format+"i", re, sign, im)
}

func (z Complex) ProgString() string {
	im, sign := imag(z), "+"
	if im < 0 {
		im, sign = -im, "-"
	}
	return fmt.Sprintf("(%s%s%si)", Number(real(z)).ProgString(), sign, strconv.FormatFloat(im, 'g', -1, 64))
}

func (z Complex) Eval(Context) Value {
	return z
}

func (z Complex) Kind() Kind {
	return ComplexKind
}

func complexBinary(op string, u, v Value) Value {
	x, y := complex128(u.(Complex)), complex128(v.(Complex))
	switch op {
	case "+":
		return Complex(x + y)
	case "-":
		return Complex(x - y)
	case "*", "(*)":
		return Complex(x * y)
	case "/":
		if y == 0 {
			Errorf("division by zero")
		}
		return Complex(x / y)
	case "^", "^.":
		if x == 0 && real(y) < 0 {
			Errorf("division by zero")
		}
		return Complex(cmplx.Pow(x, y))
	}
	unsupported(op, u, v)
	panic("not reached")
}
