// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package run provides the execution control for the calculator.
// It is factored out of main so it can be used for tests.
package run // import "github.com/MovGP0/UnitSystem-sub000/run"

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MovGP0/UnitSystem-sub000/config"
	"github.com/MovGP0/UnitSystem-sub000/exec"
	"github.com/MovGP0/UnitSystem-sub000/parse"
	"github.com/MovGP0/UnitSystem-sub000/value"
)

// Evaluator compiles and evaluates text against a persistent context.
// Declarations made by one call are visible to the next, and a failed
// statement does not undo the statements before it.
type Evaluator struct {
	conf     *config.Config
	context  *exec.Context
	compiler *parse.Compiler

	// ErrorStyle, if set, decorates error messages before they are
	// printed.
	ErrorStyle func(format string, args ...interface{}) string
}

// New returns an evaluator with a fresh context.
func New(conf *config.Config) *Evaluator {
	if conf == nil {
		conf = new(config.Config)
	}
	e := &Evaluator{
		conf:     conf,
		context:  exec.NewContext(conf),
		compiler: parse.NewCompiler(conf),
	}
	e.context.SetCompiler(e.compiler)
	return e
}

// Context returns the execution context.
func (e *Evaluator) Context() *exec.Context {
	return e.context
}

// Config returns the configuration.
func (e *Evaluator) Config() *config.Config {
	return e.conf
}

// Eval evaluates the statements of text in order and returns the value
// of the last one. Declarations yield their bound value.
func (e *Evaluator) Eval(text string) (value.Value, error) {
	exprs, err := e.compiler.Statements(text)
	if err != nil {
		return nil, err
	}
	var result value.Value
	for _, expr := range exprs {
		v, err := e.eval(expr)
		if err != nil {
			return nil, err
		}
		result = v
	}
	if result == nil {
		return nil, errors.New("no statement to evaluate")
	}
	return result, nil
}

// Complete reports whether text can be evaluated as it stands, rather
// than needing more input such as a closing bracket.
func (e *Evaluator) Complete(text string) bool {
	_, err := e.compiler.Statements(text)
	var serr *value.SyntaxError
	return !errors.As(err, &serr) || !serr.Incomplete
}

// eval evaluates one statement, turning a raised calculator error into
// a returned one.
func (e *Evaluator) eval(expr value.Expr) (result value.Value, err error) {
	defer func() {
		if e.conf.Debug("panic") {
			return
		}
		r := recover()
		if r == nil {
			return
		}
		calcErr, ok := value.AsError(r)
		if !ok {
			panic(r)
		}
		err = &Error{Err: calcErr, Trace: e.context.StackTrace()}
		e.context.Reset()
	}()
	return expr.Eval(e.context), nil
}

// Error is an evaluation error with the calls it unwound, outermost
// first.
type Error struct {
	Err   error
	Trace []string
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Run reads statements from r a line at a time and evaluates them until
// EOF. A line whose input is unfinished is joined with the next one.
// Results are printed to the configured output and errors to the error
// output. The return value reports whether every statement succeeded.
func (e *Evaluator) Run(r io.Reader, interactive bool) (success bool) {
	success = true
	conf := e.conf
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	var pending strings.Builder
	lineNum, first := 0, 0
	for {
		if interactive {
			prompt := conf.Prompt()
			if pending.Len() > 0 {
				prompt = strings.Repeat(" ", len(prompt))
			}
			fmt.Fprint(conf.Output(), prompt)
		}
		if !scanner.Scan() {
			break
		}
		lineNum++
		if pending.Len() == 0 {
			first = lineNum
		} else {
			pending.WriteByte('\n')
		}
		pending.WriteString(scanner.Text())
		text := pending.String()
		if !e.Complete(text) {
			continue
		}
		pending.Reset()
		if !e.runLine(fmt.Sprintf("%d", first), text, interactive) {
			success = false
		}
	}
	if err := scanner.Err(); err != nil {
		e.report("", err)
		return false
	}
	if pending.Len() > 0 {
		if !e.runLine(fmt.Sprintf("%d", first), pending.String(), interactive) {
			success = false
		}
	}
	return success
}

// Line evaluates one complete line of interactive input, printing its
// values and any error. It reports whether the line succeeded.
func (e *Evaluator) Line(text string) bool {
	return e.runLine("", text, true)
}

// runLine evaluates the statements of one logical line and prints their
// values on a single output line.
func (e *Evaluator) runLine(loc, text string, timed bool) bool {
	exprs, err := e.compiler.Statements(text)
	if err != nil {
		e.report(loc, err)
		return false
	}
	var start cpuUsage
	timing := timed && e.conf.Debug("cpu")
	if timing {
		start = cpuClock()
	}
	var values []value.Value
	for _, expr := range exprs {
		v, err := e.eval(expr)
		if err != nil {
			printValues(e.conf, e.conf.Output(), values)
			e.report(loc, err)
			return false
		}
		if _, ok := expr.(value.Declaration); !ok {
			values = append(values, v)
		}
	}
	if printValues(e.conf, e.conf.Output(), values) {
		e.context.Assign("", "_", values[len(values)-1])
	}
	if timing {
		if used := cpuClock().sub(start); used != (cpuUsage{}) {
			fmt.Fprintf(e.conf.Output(), "(%s)\n", used)
		}
	}
	return true
}

// report prints an error, and the calls it unwound, to the error output.
func (e *Evaluator) report(loc string, err error) {
	w := e.conf.ErrOutput()
	msg := err.Error()
	if loc != "" {
		msg = loc + ": " + msg
	}
	if e.ErrorStyle != nil {
		msg = e.ErrorStyle("%s", msg)
	}
	fmt.Fprintln(w, msg)
	var rerr *Error
	if errors.As(err, &rerr) {
		for _, call := range rerr.Trace {
			fmt.Fprintf(w, "\tat %s\n", call)
		}
	}
}

// printValues neatly prints the values returned from execution, followed by a newline.
// It also handles the types debug output.
// The return value reports whether it printed anything.
func printValues(conf *config.Config, writer io.Writer, values []value.Value) bool {
	if len(values) == 0 {
		return false
	}
	if conf.Debug("types") {
		for i, v := range values {
			if i > 0 {
				fmt.Fprint(writer, ",")
			}
			fmt.Fprintf(writer, "%s", v.Kind())
		}
		fmt.Fprintln(writer)
	}
	for i, v := range values {
		if i > 0 {
			fmt.Fprint(writer, " ")
		}
		fmt.Fprint(writer, v.Sprint(conf))
	}
	fmt.Fprintln(writer)
	return true
}

// cpuUsage is the processor time consumed by the process.
type cpuUsage struct {
	user, sys time.Duration
}

func (u cpuUsage) sub(v cpuUsage) cpuUsage {
	return cpuUsage{user: u.user - v.user, sys: u.sys - v.sys}
}

func (u cpuUsage) String() string {
	return fmt.Sprintf("%s user, %s sys", u.user.Round(time.Microsecond), u.sys.Round(time.Microsecond))
}

// cpuClock reports the processor time used so far. It is replaced on
// systems that can measure it.
var cpuClock = func() cpuUsage {
	return cpuUsage{}
}
