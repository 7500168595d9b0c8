// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MovGP0/UnitSystem-sub000/config"
	"github.com/MovGP0/UnitSystem-sub000/parse"
	"github.com/MovGP0/UnitSystem-sub000/value"
)

func newTestContext() *Context {
	conf := new(config.Config)
	c := NewContext(conf)
	c.SetCompiler(parse.NewCompiler(conf))
	return c
}

// run evaluates the statements of text and returns the last value, or
// the calculator error one of them raised.
func run(c *Context, text string) (result value.Value, err error) {
	exprs, err := parse.NewCompiler(c.Config()).Statements(text)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			var ok bool
			if err, ok = value.AsError(r); !ok {
				panic(r)
			}
			c.Reset()
		}
	}()
	for _, expr := range exprs {
		result = expr.Eval(c)
	}
	return result, nil
}

func mustRun(t *testing.T, c *Context, text string) string {
	t.Helper()
	v, err := run(c, text)
	require.NoError(t, err, text)
	if v == nil {
		return ""
	}
	return v.Sprint(c.Config())
}

func errorContains(t *testing.T, err error, want string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), want)
	}
}

func TestResolve(t *testing.T) {
	c := newTestContext()
	mustRun(t, c, "g(a, b) = a + b; g(a, c) = a * c; g(x) = -x")

	fn := c.Resolve("", "g", 1, nil)
	assert.Equal(t, []string{"x"}, fn.ParamNames())

	fn = c.Resolve("", "g", 2, []string{"b"})
	assert.Equal(t, []string{"a", "b"}, fn.ParamNames())

	fn = c.Resolve("", "g", 2, []string{"c"})
	assert.Equal(t, []string{"a", "c"}, fn.ParamNames())

	_, err := run(c, "g(1, 2)")
	var ambiguous *value.AmbiguousOverloadError
	require.True(t, errors.As(err, &ambiguous), "%v", err)
	assert.Equal(t, "g", ambiguous.Name)
	assert.Len(t, ambiguous.Candidates, 2)

	_, err = run(c, "g(1, 2, 3)")
	var notFound *value.FunctionNotFoundError
	require.True(t, errors.As(err, &notFound), "%v", err)
	assert.Equal(t, 3, notFound.Arity)

	// A name already filled positionally does not select an overload.
	_, err = run(c, "g(1, a := 2)")
	assert.True(t, errors.As(err, &notFound), "%v", err)
}

func TestNamedArguments(t *testing.T) {
	c := newTestContext()
	mustRun(t, c, "f(x, y) = x - y")
	assert.Equal(t, "1", mustRun(t, c, "f(3, 2)"))
	assert.Equal(t, "-1", mustRun(t, c, "f(y := 3, x := 2)"))
	assert.Equal(t, "1", mustRun(t, c, "f(3, y := 2)"))
}

func TestRedefine(t *testing.T) {
	c := newTestContext()
	mustRun(t, c, "f(x) = x + 1; f(y) = y + 2; f(x) = x + 3")
	assert.Len(t, c.Functions("", "f"), 2)
	assert.Equal(t, "4", mustRun(t, c, "f(x := 1)"))
	assert.Equal(t, "3", mustRun(t, c, "f(y := 1)"))
}

func TestBuiltinsReadOnly(t *testing.T) {
	c := newTestContext()
	_, err := run(c, "sqrt(x) = x")
	assert.NoError(t, err, "a global sqrt hides the built-in")
	assert.Equal(t, "9", mustRun(t, c, "sqrt(9)"))
	assert.Equal(t, "3", mustRun(t, c, "Math::sqrt(9)"))

	_, err = run(c, "Math::sqrt(x) = x")
	errorContains(t, err, "read-only")
	_, err = run(c, "Math::e = 3")
	errorContains(t, err, "read-only")
	_, err = run(c, "delete Math::pi")
	errorContains(t, err, "read-only")
}

func TestLookupOrder(t *testing.T) {
	c := newTestContext()
	assert.Equal(t, "3.14159265359", mustRun(t, c, "pi"))
	mustRun(t, c, "pi = 3")
	assert.Equal(t, "3", mustRun(t, c, "pi"))
	assert.Equal(t, "3.14159265359", mustRun(t, c, "Math::pi"))
	mustRun(t, c, "delete pi")
	assert.Equal(t, "3.14159265359", mustRun(t, c, "pi"))
}

func TestNames(t *testing.T) {
	c := newTestContext()
	mustRun(t, c, "Geo::r = 2; Geo::area(x) = x^2; Geo::S[n] = n")
	want := []string{"S", "area", "r"}
	if diff := cmp.Diff(want, c.Names("Geo")); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Geo", "Math"}, c.Namespaces())
	assert.Equal(t, "12", mustRun(t, c, "Geo::area(Geo::r) * 3"))
	assert.Equal(t, "(S, area, r)", mustRun(t, c, "Geo!names"))
}

func TestSequenceGoverning(t *testing.T) {
	c := newTestContext()
	mustRun(t, c, "S[n] = n; S[5] = 100 + n; S[-3] = -100 + n")
	tests := []struct {
		index int
		want  string
	}{
		{0, "0"},
		{4, "4"},
		{5, "105"},
		{9, "109"},
		{-2, "-2"},
		{-3, "-103"},
		{-8, "-108"},
	}
	for _, test := range tests {
		s, ok := c.Sequence("", "S")
		require.True(t, ok)
		got := s.Element(c, test.index, nil)
		assert.Equal(t, test.want, got.Sprint(c.Config()), "S[%d]", test.index)
	}
	seq := c.sequence("", "S")
	assert.Equal(t, []int{-3, 0, 5}, seq.Indexes())
}

func TestSequenceNeedsElementZero(t *testing.T) {
	c := newTestContext()
	_, err := run(c, "T[2] = 1")
	assert.EqualError(t, err, "sequence T must declare element 0 before element 2")
	_, ok := c.Sequence("", "T")
	assert.False(t, ok)
}

func TestSequenceCache(t *testing.T) {
	c := newTestContext()
	mustRun(t, c, "k = 1; S[n] = n * k")
	assert.Equal(t, "3", mustRun(t, c, "S[3]"))
	mustRun(t, c, "k = 2")
	// Variables are not dependencies of the cache.
	assert.Equal(t, "3", mustRun(t, c, "S[3]"))
	// Any declaration purges every sequence.
	mustRun(t, c, "T[n] = 0")
	assert.Equal(t, "6", mustRun(t, c, "S[3]"))
}

func TestSequenceCacheSize(t *testing.T) {
	conf := new(config.Config)
	conf.SetCacheSize(2)
	c := NewContext(conf)
	c.SetCompiler(parse.NewCompiler(conf))
	mustRun(t, c, "fib[n] = 0; fib[1] = 1; fib[2] = fib[n - 1] + fib[n - 2]")
	assert.Equal(t, "6765", mustRun(t, c, "fib[20]"))
	assert.LessOrEqual(t, c.sequence("", "fib").cache.Len(), 2)
}

func TestSequenceRange(t *testing.T) {
	c := newTestContext()
	mustRun(t, c, "W[i] = i / (end - start)")
	assert.Equal(t, "[0.5, 1, 1.5]", mustRun(t, c, "W[1..3]"))
	assert.Equal(t, "4.5", mustRun(t, c, "W[2++4]"))
	// Range-dependent elements are not memoized.
	assert.Equal(t, 0, c.sequence("", "W").cache.Len())
}

func TestParametrizedSequence(t *testing.T) {
	c := newTestContext()
	mustRun(t, c, "P[n](x) = x^n")
	assert.Equal(t, "8", mustRun(t, c, "P[3](2)"))
	assert.Equal(t, "14", mustRun(t, c, "P[1++3](2)"))
	assert.Equal(t, "P[3](x) = x^(3)", mustRun(t, c, "P[3]"))

	_, err := run(c, "P[2](y) = y")
	errorContains(t, err, "sequence P has parameters (x)")
}

func TestSequenceVariableClash(t *testing.T) {
	c := newTestContext()
	mustRun(t, c, "v = [1, 2, 3]")
	// An element of a variable is assigned, not declared.
	mustRun(t, c, "v[0] = 9")
	assert.Equal(t, "[9, 2, 3]", mustRun(t, c, "v"))
	_, err := run(c, "v[n] = n")
	assert.Error(t, err)
}

func TestStackOverflow(t *testing.T) {
	conf := new(config.Config)
	conf.SetMaxDepth(50)
	c := NewContext(conf)
	c.SetCompiler(parse.NewCompiler(conf))
	_, err := run(c, "f(x) = f(x + 1); f(0)")
	assert.EqualError(t, err, "stack overflow in f")
	assert.Len(t, c.Stack, 1)
	trace := c.StackTrace()
	assert.Empty(t, trace, "Reset forgets the trace")
}

func TestStackTrace(t *testing.T) {
	c := newTestContext()
	exprs, err := parse.NewCompiler(c.Config()).Statements("f(x) = g(x * 2); g(y) = y / 0; f(1)")
	require.NoError(t, err)
	func() {
		defer func() {
			r := recover()
			_, ok := value.AsError(r)
			require.True(t, ok, "%v", r)
		}()
		for _, expr := range exprs {
			expr.Eval(c)
		}
	}()
	// The frames are popped as the error passes through them.
	assert.Len(t, c.Stack, 1)
	assert.Equal(t, []string{"f(1)", "g(2)"}, c.StackTrace())
	c.Reset()
}

func TestDeepErrorUnwinds(t *testing.T) {
	conf := new(config.Config)
	conf.SetMaxDepth(5000)
	c := NewContext(conf)
	c.SetCompiler(parse.NewCompiler(conf))
	mustRun(t, c, "f(x) = f(x + 1) when x < 4000 otherwise 1 / 0")
	start := time.Now()
	_, err := run(c, "f(0)")
	assert.EqualError(t, err, "division by zero")
	assert.Less(t, int64(time.Since(start)), int64(2*time.Second))
	assert.Len(t, c.Stack, 1)

	// The context is usable again afterwards.
	assert.Equal(t, "3", mustRun(t, c, "1 + 2"))
}

func TestFunctionArguments(t *testing.T) {
	c := newTestContext()
	mustRun(t, c, "twice(f, x) = f(f(x)); sq(y) = y^2")
	assert.Equal(t, "81", mustRun(t, c, "twice(sq, 3)"))
	assert.Equal(t, "2", mustRun(t, c, "twice(sqrt, 16)"))
	assert.Equal(t, "[1, 4, 9]", mustRun(t, c, "map(sq, [1, 2, 3])"))
	assert.Equal(t, "7", mustRun(t, c, "apply(sq, 2) + 3"))
}

func TestFunctionReferenceArguments(t *testing.T) {
	c := newTestContext()
	mustRun(t, c, "g(x) = x * 2; fv = @g")
	assert.Equal(t, "[2, 4]", mustRun(t, c, "map(&fv, [1, 2])"))
	assert.Equal(t, "6", mustRun(t, c, "apply(&fv, 3)"))
	v, err := run(c, "integrate(&fv, 0, 1)")
	require.NoError(t, err)
	assert.InDelta(t, 1, value.ToFloat(c, v), 1e-9)

	mustRun(t, c, "n = 3")
	_, err = run(c, "map(&n, [1, 2])")
	errorContains(t, err, "must be a function")
}

func TestBuiltins(t *testing.T) {
	c := newTestContext()
	tests := []struct {
		expr string
		want string
	}{
		{"sqrt(16)", "4"},
		{"abs(-3)", "3"},
		{"abs(3+4i)", "5"},
		{"conj(3+4i)", "3-4i"},
		{"identity(3)", "[[1, 0, 0], [0, 1, 0], [0, 0, 1]]"},
		{"size([[1, 2, 3], [4, 5, 6]])", "[2, 3]"},
		{"complex(1, 2)", "1+2i"},
		{"quaternion(1, 2, 3, 4)", "1+2i+3j+4k"},
		{"rational(0.25)", "1/4"},
		{"rational(2, 6)", "1/3"},
		{"norm([3, 4])", "5"},
		{"sum([1, 2, 3, 4])", "10"},
		{"mean([1, 2, 3, 4])", "2.5"},
		{"det([[2, 0], [0, 3]])", "6"},
		{"transpose([[1, 2]])", "[[1], [2]]"},
		{"nameof(anything)", "anything"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, mustRun(t, c, test.expr), test.expr)
	}
}

func TestIntegrate(t *testing.T) {
	c := newTestContext()
	mustRun(t, c, "sq(x) = x^2")
	v, err := run(c, "integrate(sq, 0, 3)")
	require.NoError(t, err)
	assert.InDelta(t, 9, value.ToFloat(c, v), 1e-9)
	v, err = run(c, "integrate(sin, 0, pi, 200)")
	require.NoError(t, err)
	assert.InDelta(t, 2, value.ToFloat(c, v), 1e-6)
}

func TestSet(t *testing.T) {
	c := newTestContext()
	mustRun(t, c, "x = 1; r = &x")
	mustRun(t, c, "set(r, 5)")
	assert.Equal(t, "5", mustRun(t, c, "x"))
}

func TestConstruct(t *testing.T) {
	c := newTestContext()
	assert.Equal(t, []string{"Random", "Stats"}, c.Types())

	mustRun(t, c, "s = new Stats(1, 2, 3)")
	assert.Equal(t, "3", mustRun(t, c, "s->count"))
	assert.Equal(t, "3", mustRun(t, c, "s->max"))
	assert.Equal(t, "5", mustRun(t, c, "s->add([4, 5])"))
	assert.Equal(t, "3", mustRun(t, c, "s->mean"))
	assert.Equal(t, "0", mustRun(t, c, "s->reset"))
	_, err := run(c, "s->mean")
	assert.EqualError(t, err, "Stats mean: no values")

	a := mustRun(t, c, "r = new Random(7); r->int(1000)")
	b := mustRun(t, c, "r = new Random(7); r->int(1000)")
	assert.Equal(t, a, b, "same seed, same sequence")

	_, err = run(c, "new Nothing()")
	assert.EqualError(t, err, "unknown type Nothing")
	_, err = run(c, "r->fly")
	var unsupported *value.UnsupportedOperationError
	assert.True(t, errors.As(err, &unsupported), "%v", err)
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	conf := new(config.Config)
	conf.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	conf.SetDebug("calls", true)
	conf.SetDebug("sequence", true)
	c := NewContext(conf)
	c.SetCompiler(parse.NewCompiler(conf))
	mustRun(t, c, "f(x) = x + 1; f(2)")
	mustRun(t, c, "S[n] = n; S[1++3]")
	out := buf.String()
	assert.Contains(t, out, "msg=return")
	assert.Contains(t, out, "function=f(x)")
	assert.Contains(t, out, "msg=declare")
	assert.Contains(t, out, "msg=reduce")
}
