// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"math"
	"math/rand"
	"sort"

	"github.com/MovGP0/UnitSystem-sub000/value"
)

// Constructor creates an instance of a native type from the arguments
// of new T(args).
type Constructor func(c value.Context, args []value.Value) value.Native

// RegisterType makes a native type available to new.
func (c *Context) RegisterType(name string, ctor Constructor) {
	c.types[name] = ctor
}

// Types returns the registered native type names, sorted.
func (c *Context) Types() []string {
	names := make([]string, 0, len(c.types))
	for name := range c.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Construct creates an object of the registered type.
func (c *Context) Construct(typeName string, args []value.Value) value.Value {
	ctor, ok := c.types[typeName]
	if !ok {
		value.Errorf("unknown type %s", typeName)
	}
	if c.config.Debug("types") {
		c.logger().Debug("new", "type", typeName, "args", len(args))
	}
	return value.NewObject(ctor(c, args))
}

// random is the Random type: a seeded pseudo-random source.
type random struct {
	rng *rand.Rand
}

func newRandom(c value.Context, args []value.Value) value.Native {
	var seed int64 = 1
	switch len(args) {
	case 0:
	case 1:
		seed = int64(value.ToInt(c, args[0]))
	default:
		value.Errorf("new Random takes at most one argument")
	}
	return &random{rand.New(rand.NewSource(seed))}
}

func (r *random) TypeName() string { return "Random" }

func (r *random) Execute(c value.Context, method string, args []value.Value) value.Value {
	switch method {
	case "next":
		wantNoArgs(method, args)
		return value.Number(r.rng.Float64())
	case "int":
		if len(args) != 1 {
			value.Errorf("Random int takes one argument")
		}
		n := value.ToInt(c, args[0])
		if n <= 0 {
			value.Errorf("Random int: bound %d must be positive", n)
		}
		return value.Number(r.rng.Intn(n))
	case "normal":
		wantNoArgs(method, args)
		return value.Number(r.rng.NormFloat64())
	}
	panic(&value.UnsupportedOperationError{Op: "member " + method, Right: value.ObjectKind, Unary: true})
}

// stats is the Stats type: a running accumulator of numbers. Closing it
// logs what it saw.
type stats struct {
	ctx        *Context
	n          int
	sum, sumSq float64
	min, max   float64
}

func newStats(c value.Context, args []value.Value) value.Native {
	s := &stats{ctx: c.(*Context)}
	s.add(c, args)
	return s
}

func (s *stats) TypeName() string { return "Stats" }

func (s *stats) add(c value.Context, args []value.Value) {
	for _, a := range args {
		for _, v := range flatten(c, a) {
			x := value.ToFloat(c, v)
			if s.n == 0 || x < s.min {
				s.min = x
			}
			if s.n == 0 || x > s.max {
				s.max = x
			}
			s.n++
			s.sum += x
			s.sumSq += x * x
		}
	}
}

func flatten(c value.Context, v value.Value) []value.Value {
	v = value.Deref(c, v)
	if !v.Kind().Container() {
		return []value.Value{v}
	}
	var out []value.Value
	for _, e := range value.Elements(c, v) {
		out = append(out, flatten(c, e)...)
	}
	return out
}

func (s *stats) Execute(c value.Context, method string, args []value.Value) value.Value {
	switch method {
	case "add":
		s.add(c, args)
		return value.Number(s.n)
	case "count":
		return value.Number(s.n)
	case "sum":
		return value.Number(s.sum)
	case "min", "max", "mean", "stddev":
		wantNoArgs(method, args)
		if s.n == 0 {
			value.Errorf("Stats %s: no values", method)
		}
		switch method {
		case "min":
			return value.Number(s.min)
		case "max":
			return value.Number(s.max)
		case "mean":
			return value.Number(s.sum / float64(s.n))
		}
		// Population deviation, as for the !% reduction.
		mean := s.sum / float64(s.n)
		return value.Number(math.Sqrt(math.Max(0, s.sumSq/float64(s.n)-mean*mean)))
	case "reset":
		*s = stats{ctx: s.ctx}
		return value.Number(0)
	}
	panic(&value.UnsupportedOperationError{Op: "member " + method, Right: value.ObjectKind, Unary: true})
}

func (s *stats) Close() error {
	if s.ctx.config.Debug("types") {
		s.ctx.logger().Debug("close", "type", "Stats", "count", s.n)
	}
	return nil
}

func wantNoArgs(method string, args []value.Value) {
	if len(args) != 0 {
		value.Errorf("%s takes no arguments", method)
	}
}
