// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/MovGP0/UnitSystem-sub000/scan"
	"github.com/MovGP0/UnitSystem-sub000/value"
)

// Names visible to element formulas while a reduction is running.
const (
	startName = "start"
	endName   = "end"
)

// element is the formula declared at one index of a sequence.
type element struct {
	source   string
	indexVar string
	body     value.Expr
	// usesRange is set when the formula mentions start or end, so its
	// value depends on the reduction in progress and is not memoized.
	usesRange bool
}

// span is the index range of an active reduction.
type span struct {
	from, to int
}

// Sequence is a sparse integer-indexed family of formulas. Looking up an
// index with no formula of its own walks toward 0 and uses the first
// formula found, so a formula at index k governs every index from k
// outward until the next declared one.
type Sequence struct {
	ctx       *Context
	namespace string
	name      string
	// params are the free parameters of a parametrized sequence, whose
	// elements are functions. It is nil for a plain sequence.
	params   []string
	elems    map[int]*element
	min, max int
	cache    *lru.ARCCache
	// active is the innermost reduction over this sequence, if any.
	active *span
}

func (c *Context) newSequence(ns, name string, params []string) *Sequence {
	s := &Sequence{
		ctx:       c,
		namespace: ns,
		name:      name,
		params:    params,
		elems:     make(map[int]*element),
	}
	cache, err := lru.NewARC(c.config.CacheSize())
	if err != nil {
		value.Errorf("sequence %s: %v", s.Name(), err)
	}
	s.cache = cache
	return s
}

// Name returns the qualified name of the sequence.
func (s *Sequence) Name() string {
	return value.Qualify(s.namespace, s.name)
}

// Indexes returns the declared indexes in increasing order.
func (s *Sequence) Indexes() []int {
	idx := make([]int, 0, len(s.elems))
	for i := range s.elems {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// Sequence returns the sequence declared under the name. Unqualified
// names are searched globally, then in the imported namespaces.
func (c *Context) Sequence(ns, name string) (value.Sequence, bool) {
	if s := c.sequence(ns, name); s != nil {
		return s, true
	}
	return nil, false
}

func (c *Context) sequence(ns, name string) *Sequence {
	if s := c.sequences[value.Qualify(ns, name)]; s != nil || ns != "" {
		return s
	}
	for _, imp := range c.imports {
		if s := c.sequences[value.Qualify(imp, name)]; s != nil {
			return s
		}
	}
	return nil
}

// DeclareSequence adds a formula to a sequence. A formula with an index
// variable is the general one and goes at index 0, creating the
// sequence if need be; a formula for a specific index needs the
// sequence to exist already. Every declaration empties the memo caches
// of all sequences, since any of them may refer to this one.
func (c *Context) DeclareSequence(decl *value.SequenceDecl) {
	key := value.Qualify(decl.Namespace, decl.Name)
	s := c.sequences[key]
	index := decl.Index
	if decl.IndexVar != "" {
		index = 0
	}
	if s == nil {
		if index != 0 {
			value.Errorf("sequence %s must declare element 0 before element %d", key, index)
		}
		if decl.Namespace != "" {
			if scope := c.scope(decl.Namespace, true); scope.readOnly {
				value.Errorf("cannot declare %s: namespace %s is read-only", key, decl.Namespace)
			}
		}
		if _, ok := c.Lookup(decl.Namespace, decl.Name); ok {
			value.Errorf("%s is a variable", key)
		}
		s = c.newSequence(decl.Namespace, decl.Name, decl.Params)
		c.sequences[key] = s
	}
	if decl.Params != nil && strings.Join(decl.Params, ",") != strings.Join(s.params, ",") {
		value.Errorf("sequence %s has parameters (%s)", key, strings.Join(s.params, ", "))
	}
	// A formula for a specific index sees the index variable of the
	// general formula, if there is one yet.
	indexVar := decl.IndexVar
	if indexVar == "" && s.elems[0] != nil {
		indexVar = s.elems[0].indexVar
	}
	if s.params != nil {
		for _, p := range s.params {
			if p == indexVar {
				panic(&value.SyntaxError{Msg: fmt.Sprintf("index %s of %s is also a parameter", p, key)})
			}
		}
	}
	s.elems[index] = &element{
		source:    decl.Source,
		indexVar:  indexVar,
		usesRange: scan.Mentions(decl.Source, startName, endName),
	}
	if len(s.elems) == 1 || index < s.min {
		s.min = index
	}
	if len(s.elems) == 1 || index > s.max {
		s.max = index
	}
	c.purgeSequences()
	if c.config.Debug("sequence") {
		c.logger().Debug("declare", "sequence", key, "index", index, "formula", decl.Source)
	}
}

// purgeSequences empties every memo cache.
func (c *Context) purgeSequences() {
	for key, s := range c.sequences {
		if s.cache.Len() == 0 {
			continue
		}
		if c.config.Debug("sequence") {
			c.logger().Debug("purge", "sequence", key, "entries", s.cache.Len())
		}
		s.cache.Purge()
	}
}

// governing returns the index whose formula defines element i.
func (s *Sequence) governing(i int) int {
	switch {
	case i >= s.max:
		return s.max
	case i <= s.min:
		return s.min
	}
	step := -1
	if i < 0 {
		step = 1
	}
	for ; ; i += step {
		if _, ok := s.elems[i]; ok {
			return i
		}
		if i == 0 {
			// Element 0 is declared first and never removed.
			panic(fmt.Sprintf("sequence %s has no element 0", s.Name()))
		}
	}
}

// Element returns element i. The element of a parametrized sequence is
// a function, which is called if there are arguments.
func (s *Sequence) Element(c value.Context, i int, args []value.Parameter) value.Value {
	v := s.element(i)
	if args == nil {
		return v
	}
	f, ok := v.(value.FunctionValue)
	if !ok {
		value.Errorf("%s[%d] is not a function", s.Name(), i)
	}
	return s.ctx.Call(f.Function(), args)
}

func (s *Sequence) element(i int) value.Value {
	k := s.governing(i)
	e := s.elems[k]
	if !e.usesRange {
		if v, ok := s.cache.Get(i); ok {
			return v.(value.Value)
		}
	}
	var v value.Value
	if s.params != nil {
		v = s.function(e, i)
	} else {
		v = s.evaluate(e, i)
	}
	if !e.usesRange {
		s.cache.Add(i, v)
	}
	return v
}

// evaluate computes element i of a plain sequence from formula e. The
// formula runs in a frame binding the index variable, and start and end
// when a reduction is active.
func (s *Sequence) evaluate(e *element, i int) value.Value {
	c := s.ctx
	if e.body == nil {
		body, err := c.Compile(e.source, []string{e.indexVar, startName, endName})
		if err != nil {
			panic(err)
		}
		e.body = body
	}
	params := []value.Parameter{
		{Name: e.indexVar, Value: value.Number(i), Raw: fmt.Sprint(i)},
		{Name: startName, Raw: startName},
		{Name: endName, Raw: endName},
	}
	if s.active != nil {
		params[1].Value = value.Number(s.active.from)
		params[2].Value = value.Number(s.active.to)
	}
	frame := &value.Frame{Name: fmt.Sprintf("%s[%d]", s.Name(), i), Params: params}
	return value.Deref(c, c.enter(frame, func() value.Value {
		return e.body.Eval(c)
	}))
}

// function builds element i of a parametrized sequence: the formula
// with the index, and the active range bounds, written in as literals.
func (s *Sequence) function(e *element, i int) value.Value {
	names := map[string]string{e.indexVar: literal(i)}
	if s.active != nil {
		names[startName] = literal(s.active.from)
		names[endName] = literal(s.active.to)
	}
	src, err := scan.Rename(e.source, names)
	if err != nil {
		panic(&value.SyntaxError{Msg: err.Error()})
	}
	fn := value.NewFunction(s.namespace, fmt.Sprintf("%s[%d]", s.name, i), s.params, src)
	fn.Body(s.ctx)
	return value.NewFunctionValue(fn)
}

func literal(i int) string {
	return "(" + fmt.Sprint(i) + ")"
}

// Reduce applies r to elements from through to, in that order. For a
// parametrized sequence the result is a function, called with args if
// there are any.
func (s *Sequence) Reduce(c value.Context, r value.Reduction, from, to int, args []value.Parameter) value.Value {
	prev := s.active
	s.active = &span{from, to}
	defer func() { s.active = prev }()
	if s.ctx.config.Debug("sequence") {
		s.ctx.logger().Debug("reduce", "sequence", s.Name(), "op", r.String(), "from", from, "to", to)
	}
	step := 1
	if from > to {
		step = -1
	}
	var vals []value.Value
	for i := from; ; i += step {
		vals = append(vals, s.element(i))
		if i == to {
			break
		}
	}
	result := value.Reduce(s.ctx, r, vals)
	if args == nil {
		return result
	}
	f, ok := result.(value.FunctionValue)
	if !ok {
		value.Errorf("%s of %s is not a function", r, s.Name())
	}
	return s.ctx.Call(f.Function(), args)
}

// String describes the sequence's formulas, one per declared index.
func (s *Sequence) String() string {
	var b strings.Builder
	for _, i := range s.Indexes() {
		e := s.elems[i]
		fmt.Fprintf(&b, "%s[%d] (%s) = %s\n", s.Name(), i, e.indexVar, e.source)
	}
	return b.String()
}
