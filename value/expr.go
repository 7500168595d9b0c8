// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"strings"

	"github.com/MovGP0/UnitSystem-sub000/scan"
)

// Expr is the interface for a compiled expression.
// Also implemented by Value.
type Expr interface {
	// ProgString returns the unambiguous representation of the
	// expression. Parameters print as #i, so two bodies that differ
	// only in parameter names print the same.
	ProgString() string

	Eval(Context) Value
}

// VarExpr identifies a variable to be looked up in the scope.
type VarExpr struct {
	Namespace string
	Name      string
}

func (e *VarExpr) ProgString() string {
	return Qualify(e.Namespace, e.Name)
}

func (e *VarExpr) Eval(c Context) Value {
	v, ok := c.Lookup(e.Namespace, e.Name)
	if !ok {
		panic(&VariableNotFoundError{Namespace: e.Namespace, Name: e.Name})
	}
	return deref(c, v)
}

// ParamExpr refers to a parameter of the enclosing function or sequence.
type ParamExpr struct {
	Index int
	Name  string
}

func (e *ParamExpr) ProgString() string {
	return fmt.Sprintf("#%d", e.Index)
}

func (e *ParamExpr) Eval(c Context) Value {
	return c.Frame().Params[e.Index].resolve(c)
}

// LoopVarExpr refers to the element, or with Counter set the iteration
// count, of an enclosing for loop.
type LoopVarExpr struct {
	Depth   int
	Name    string
	Counter bool
}

func (e *LoopVarExpr) ProgString() string {
	if e.Counter {
		return fmt.Sprintf("_$%d", e.Depth)
	}
	return fmt.Sprintf("$%d", e.Depth)
}

func (e *LoopVarExpr) Eval(c Context) Value {
	loop := c.Frame().Loops[e.Depth]
	if e.Counter {
		return Number(loop.Count)
	}
	return loop.Value
}

// UnaryExpr applies a postfix operator such as ! or %.
type UnaryExpr struct {
	Op    string
	Right Expr
}

func (e *UnaryExpr) ProgString() string {
	return fmt.Sprintf("(%s)%s", e.Right.ProgString(), e.Op)
}

func (e *UnaryExpr) Eval(c Context) Value {
	return c.EvalUnary(e.Op, e.Right.Eval(c))
}

// BinaryExpr applies a binary operator.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (e *BinaryExpr) ProgString() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.ProgString(), e.Op, e.Right.ProgString())
}

func (e *BinaryExpr) Eval(c Context) Value {
	left := e.Left.Eval(c)
	return c.EvalBinary(left, e.Op, e.Right.Eval(c))
}

// LogicalExpr is "and" or "or", which evaluate their right operand
// only when needed.
type LogicalExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (e *LogicalExpr) ProgString() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.ProgString(), e.Op, e.Right.ProgString())
}

func (e *LogicalExpr) Eval(c Context) Value {
	left := Truth(c, e.Left.Eval(c))
	if e.Op == "and" && !left || e.Op == "or" && left {
		return Bool(left)
	}
	return Bool(Truth(c, e.Right.Eval(c)))
}

// WhenExpr is "value when cond otherwise other".
type WhenExpr struct {
	Value Expr
	Cond  Expr
	Else  Expr
}

func (e *WhenExpr) ProgString() string {
	return fmt.Sprintf("(%s when %s otherwise %s)", e.Value.ProgString(), e.Cond.ProgString(), e.Else.ProgString())
}

func (e *WhenExpr) Eval(c Context) Value {
	if Truth(c, e.Cond.Eval(c)) {
		return e.Value.Eval(c)
	}
	return e.Else.Eval(c)
}

// ArgExpr is one argument of a call, possibly passed by name.
type ArgExpr struct {
	Name string
	Expr Expr
	// Raw is the argument's source text.
	Raw string
}

func (a *ArgExpr) ProgString() string {
	if a.Name != "" {
		return a.Name + " := " + a.Expr.ProgString()
	}
	return a.Expr.ProgString()
}

// evaluate evaluates the argument. If it fails only because one of the
// names it mentions is unbound, the result has no value and keeps the
// raw text instead, which the callee may take as a function name.
func (a *ArgExpr) evaluate(c Context) (p Parameter) {
	p = Parameter{Name: a.Name, Raw: a.Raw}
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(*VariableNotFoundError)
			if !ok || !scan.Mentions(a.Raw, err.Name) && a.Raw != Qualify(err.Namespace, err.Name) {
				panic(r)
			}
			p.Value = nil
		}
	}()
	p.Value = a.Expr.Eval(c)
	return p
}

// EvalArgs evaluates a call's arguments in order.
func EvalArgs(c Context, args []*ArgExpr) []Parameter {
	params := make([]Parameter, len(args))
	for i, a := range args {
		params[i] = a.evaluate(c)
	}
	return params
}

func argNames(args []*ArgExpr) []string {
	var names []string
	for _, a := range args {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}

func argsProgString(args []*ArgExpr) string {
	s := make([]string, len(args))
	for i, a := range args {
		s[i] = a.ProgString()
	}
	return "(" + strings.Join(s, ", ") + ")"
}

// CallExpr calls a function by name. The overload is chosen when the
// call is evaluated, from the argument count and names.
type CallExpr struct {
	Namespace string
	Name      string
	Args      []*ArgExpr
}

func (e *CallExpr) ProgString() string {
	return Qualify(e.Namespace, e.Name) + argsProgString(e.Args)
}

func (e *CallExpr) Eval(c Context) Value {
	params := EvalArgs(c, e.Args)
	if len(c.Functions(e.Namespace, e.Name)) == 0 {
		// A variable holding a function value may be called too.
		if v, ok := c.Lookup(e.Namespace, e.Name); ok {
			if f, ok := deref(c, v).(FunctionValue); ok {
				return c.Call(f.fn, params)
			}
		}
	}
	fn := c.Resolve(e.Namespace, e.Name, len(params), argNames(e.Args))
	return c.Call(fn, params)
}

// DeferredCallExpr calls through a parameter of the enclosing function:
// the function is whatever the parameter names at run time.
type DeferredCallExpr struct {
	Param int
	Name  string
	Args  []*ArgExpr
}

func (e *DeferredCallExpr) ProgString() string {
	return fmt.Sprintf("#%d%s", e.Param, argsProgString(e.Args))
}

func (e *DeferredCallExpr) Eval(c Context) Value {
	p := c.Frame().Params[e.Param]
	params := EvalArgs(c, e.Args)
	if f, ok := deref(c, p.resolve(c)).(FunctionValue); ok {
		if !f.fn.Accepts(len(params)) {
			panic(&FunctionNotFoundError{Namespace: f.fn.Namespace, Name: f.fn.Name, Arity: len(params)})
		}
		return c.Call(f.fn, params)
	}
	Errorf("%s is not a function", e.Name)
	panic("not reached")
}

// MemberExpr calls a named member: x->name(args) or x!name(args).
// Args is nil when there is no argument list.
type MemberExpr struct {
	Target Expr
	Name   string
	Args   []*ArgExpr
}

func (e *MemberExpr) ProgString() string {
	if e.Args == nil {
		return fmt.Sprintf("%s->%s", e.Target.ProgString(), e.Name)
	}
	return fmt.Sprintf("%s->%s%s", e.Target.ProgString(), e.Name, argsProgString(e.Args))
}

func (e *MemberExpr) Eval(c Context) Value {
	target := e.Target.Eval(c)
	if e.Args == nil {
		return Execute(c, target, e.Name, nil)
	}
	args := Values(c, EvalArgs(c, e.Args))
	if args == nil {
		args = []Value{}
	}
	return Execute(c, target, e.Name, args)
}

// ValueCallExpr calls the function a computed value holds, as in
// (f + g)(x) or a loop variable bound to a function.
type ValueCallExpr struct {
	Target Expr
	Args   []*ArgExpr
}

func (e *ValueCallExpr) ProgString() string {
	return "(" + e.Target.ProgString() + ")" + argsProgString(e.Args)
}

func (e *ValueCallExpr) Eval(c Context) Value {
	target := e.Target.Eval(c)
	return callValue(c, target, EvalArgs(c, e.Args))
}

// IndexExpr indexes a computed value: expr[i, j].
type IndexExpr struct {
	Left  Expr
	Index []Expr
}

func (e *IndexExpr) ProgString() string {
	return e.Left.ProgString() + indexProgString(e.Index)
}

func indexProgString(index []Expr) string {
	s := make([]string, len(index))
	for i, x := range index {
		s[i] = x.ProgString()
	}
	return "[" + strings.Join(s, ", ") + "]"
}

func (e *IndexExpr) Eval(c Context) Value {
	left := e.Left.Eval(c)
	return Index(c, left, evalList(c, e.Index))
}

func evalList(c Context, exprs []Expr) []Value {
	vals := make([]Value, len(exprs))
	for i, x := range exprs {
		vals[i] = x.Eval(c)
	}
	return vals
}

// NameIndexExpr is name[i] where name may be a sequence or a variable.
// Args, if present, are passed to a parametrized sequence's element.
type NameIndexExpr struct {
	Namespace string
	Name      string
	Index     []Expr
	Args      []*ArgExpr
}

func (e *NameIndexExpr) ProgString() string {
	s := Qualify(e.Namespace, e.Name) + indexProgString(e.Index)
	if e.Args != nil {
		s += argsProgString(e.Args)
	}
	return s
}

func (e *NameIndexExpr) Eval(c Context) Value {
	if seq, ok := c.Sequence(e.Namespace, e.Name); ok {
		if len(e.Index) != 1 {
			Errorf("sequence %s takes one index", e.Name)
		}
		i := ToInt(c, e.Index[0].Eval(c))
		var args []Parameter
		if e.Args != nil {
			args = EvalArgs(c, e.Args)
		}
		return seq.Element(c, i, args)
	}
	v := (&VarExpr{Namespace: e.Namespace, Name: e.Name}).Eval(c)
	v = Index(c, v, evalList(c, e.Index))
	if e.Args != nil {
		return callValue(c, v, EvalArgs(c, e.Args))
	}
	return v
}

func callValue(c Context, v Value, args []Parameter) Value {
	f, ok := deref(c, v).(FunctionValue)
	if !ok {
		Errorf("cannot call %s", v.Kind())
	}
	return c.Call(f.fn, args)
}

// ReduceExpr is name[from op to]: a reduction over a range of sequence
// elements, or over a slice of an indexable variable.
type ReduceExpr struct {
	Namespace string
	Name      string
	Reduction Reduction
	From, To  Expr
	Args      []*ArgExpr
}

func (e *ReduceExpr) ProgString() string {
	s := fmt.Sprintf("%s[%s%s%s]", Qualify(e.Namespace, e.Name), e.From.ProgString(), e.Reduction, e.To.ProgString())
	if e.Args != nil {
		s += argsProgString(e.Args)
	}
	return s
}

func (e *ReduceExpr) Eval(c Context) Value {
	from := ToInt(c, e.From.Eval(c))
	to := ToInt(c, e.To.Eval(c))
	var args []Parameter
	if e.Args != nil {
		args = EvalArgs(c, e.Args)
	}
	if seq, ok := c.Sequence(e.Namespace, e.Name); ok {
		return seq.Reduce(c, e.Reduction, from, to, args)
	}
	v := (&VarExpr{Namespace: e.Namespace, Name: e.Name}).Eval(c)
	elems := Elements(c, v)
	var picked []Value
	step := 1
	if from > to {
		step = -1
	}
	for i := from; ; i += step {
		if i < 0 || i >= len(elems) {
			Errorf("index %d out of range for %s", i, Shape(v))
		}
		picked = append(picked, elems[i])
		if i == to {
			break
		}
	}
	result := Reduce(c, e.Reduction, picked)
	if args != nil {
		return callValue(c, result, args)
	}
	return result
}

// VectorExpr is a bracketed list: [a, b, c].
type VectorExpr []Expr

func (e VectorExpr) ProgString() string {
	return indexProgString(e)
}

func (e VectorExpr) Eval(c Context) Value {
	vals := evalList(c, e)
	for i, v := range vals {
		vals[i] = deref(c, v)
	}
	return CollectValues(vals, true)
}

// TupleExpr is a parenthesized list: (a, b).
type TupleExpr []Expr

func (e TupleExpr) ProgString() string {
	s := make([]string, len(e))
	for i, x := range e {
		s[i] = x.ProgString()
	}
	return "(" + strings.Join(s, ", ") + ")"
}

func (e TupleExpr) Eval(c Context) Value {
	return Tuple(evalList(c, e))
}

// FuncRefExpr is @name: the function declared under the name.
type FuncRefExpr struct {
	Namespace string
	Name      string
}

func (e *FuncRefExpr) ProgString() string {
	return "@" + Qualify(e.Namespace, e.Name)
}

func (e *FuncRefExpr) Eval(c Context) Value {
	return FunctionByName(c, Qualify(e.Namespace, e.Name))
}

// RefExpr is &name.
type RefExpr struct {
	Namespace string
	Name      string
}

func (e *RefExpr) ProgString() string {
	return "&" + Qualify(e.Namespace, e.Name)
}

func (e *RefExpr) Eval(c Context) Value {
	return Reference{Namespace: e.Namespace, Name: e.Name}
}

// NewExpr is new T(args).
type NewExpr struct {
	Type string
	Args []Expr
}

func (e *NewExpr) ProgString() string {
	s := make([]string, len(e.Args))
	for i, x := range e.Args {
		s[i] = x.ProgString()
	}
	return fmt.Sprintf("new %s(%s)", e.Type, strings.Join(s, ", "))
}

func (e *NewExpr) Eval(c Context) Value {
	vals := evalList(c, e.Args)
	for i, v := range vals {
		vals[i] = deref(c, v)
	}
	return c.Construct(e.Type, vals)
}

// LoopExpr is "for v in collection do body". Its value collects the
// body's values.
type LoopExpr struct {
	Var        string
	Collection Expr
	Body       Expr
}

func (e *LoopExpr) ProgString() string {
	return fmt.Sprintf("(for %s in %s do %s)", e.Var, e.Collection.ProgString(), e.Body.ProgString())
}

func (e *LoopExpr) Eval(c Context) Value {
	items := Elements(c, e.Collection.Eval(c))
	frame := c.Frame()
	loop := &Loop{Name: e.Var}
	frame.Loops = append(frame.Loops, loop)
	defer func() {
		frame.Loops = frame.Loops[:len(frame.Loops)-1]
	}()
	results := make([]Value, len(items))
	for i, item := range items {
		loop.Value = item
		loop.Count = i
		results[i] = deref(c, e.Body.Eval(c))
	}
	for _, r := range results {
		if !r.Kind().Scalar() && !r.Kind().Container() {
			return Tuple(results)
		}
	}
	return CollectValues(results, true)
}
