// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"math"

	"github.com/MovGP0/UnitSystem-sub000/config"
)

// Quaternion is w + xi + yj + zk.
type Quaternion [4]float64

func (q Quaternion) String() string {
	return "(" + q.Sprint(nil) + ")"
}

func (q Quaternion) Sprint(conf *config.Config) string {
	format := conf.Format()
	s := fmt.Sprintf(format, q[0]+0)
	for i, unit := range []string{"i", "j", "k"} {
		c := q[i+1]
		sign := "+"
		if c < 0 {
			sign = "-"
			c = -c
		}
		s += sign + fmt.Sprintf(format, c) + unit
	}
	return s
}

func (q Quaternion) ProgString() string {
	return fmt.Sprintf("quaternion(%s, %s, %s, %s)",
		Number(q[0]).ProgString(), Number(q[1]).ProgString(), Number(q[2]).ProgString(), Number(q[3]).ProgString())
}

func (q Quaternion) Eval(Context) Value {
	return q
}

func (q Quaternion) Kind() Kind {
	return QuaternionKind
}

func (q Quaternion) mul(r Quaternion) Quaternion {
	return Quaternion{
		q[0]*r[0] - q[1]*r[1] - q[2]*r[2] - q[3]*r[3],
		q[0]*r[1] + q[1]*r[0] + q[2]*r[3] - q[3]*r[2],
		q[0]*r[2] - q[1]*r[3] + q[2]*r[0] + q[3]*r[1],
		q[0]*r[3] + q[1]*r[2] - q[2]*r[1] + q[3]*r[0],
	}
}

func (q Quaternion) norm2() float64 {
	return q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]
}

func (q Quaternion) conj() Quaternion {
	return Quaternion{q[0], -q[1], -q[2], -q[3]}
}

func (q Quaternion) inverse() Quaternion {
	n := q.norm2()
	if n == 0 {
		Errorf("division by zero")
	}
	c := q.conj()
	return Quaternion{c[0] / n, c[1] / n, c[2] / n, c[3] / n}
}

func quaternionBinary(op string, u, v Value) Value {
	x, y := u.(Quaternion), v.(Quaternion)
	switch op {
	case "+":
		return Quaternion{x[0] + y[0], x[1] + y[1], x[2] + y[2], x[3] + y[3]}
	case "-":
		return Quaternion{x[0] - y[0], x[1] - y[1], x[2] - y[2], x[3] - y[3]}
	case "*", "(*)":
		return x.mul(y)
	case "/":
		return x.mul(y.inverse())
	case "^", "^.":
		// Only integer real exponents.
		e := y[0]
		if y[1] != 0 || y[2] != 0 || y[3] != 0 || e != math.Trunc(e) {
			unsupported(op, u, v)
		}
		n := int(e)
		if n < 0 {
			x = x.inverse()
			n = -n
		}
		z := Quaternion{1, 0, 0, 0}
		for ; n > 0; n >>= 1 {
			if n&1 != 0 {
				z = z.mul(x)
			}
			x = x.mul(x)
		}
		return z
	}
	unsupported(op, u, v)
	panic("not reached")
}
