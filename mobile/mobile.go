// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The mobile package provides a very narrow interface to the
// calculator, suitable for wrapping in a UI for mobile applications.
// It is designed to work well with the gomobile tool by exposing
// only primitive types. It's also handy for testing.
//
// The package holds one session, so only one execution stream (Eval or
// Demo) can be active at a time.
package mobile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/MovGP0/UnitSystem-sub000/config"
	"github.com/MovGP0/UnitSystem-sub000/run"
)

var (
	mu        sync.Mutex
	conf      *config.Config
	evaluator *run.Evaluator
)

func init() {
	Reset()
}

// Eval evaluates the input string and returns its output.
// If execution caused errors, they will be returned concatenated
// together in the error value returned. Evaluation continues past a
// failed line, as it does for a file.
func Eval(expr string) (result string, errors error) {
	mu.Lock()
	defer mu.Unlock()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	conf.SetOutput(stdout)
	conf.SetErrOutput(stderr)

	evaluator.Run(strings.NewReader(expr), false)
	var err error
	if stderr.Len() > 0 {
		err = fmt.Errorf("%s", stderr)
	}
	return stdout.String(), err
}

// Demo represents a running line-by-line demonstration.
type Demo struct {
	scanner *bufio.Scanner
}

// NewDemo returns a new Demo that will scan the input text line by line.
// It starts from a fresh session.
func NewDemo(input string) *Demo {
	Reset()
	return &Demo{
		scanner: bufio.NewScanner(strings.NewReader(input)),
	}
}

// Next returns the result (and error) produced by the next line of
// input. It returns ("", io.EOF) at EOF.
func (d *Demo) Next() (result string, err error) {
	if !d.scanner.Scan() {
		if err := d.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return Eval(d.scanner.Text())
}

// Reset discards every declaration and restores the default settings.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	conf = new(config.Config)
	conf.SetPrompt("")
	evaluator = run.New(conf)
}

// SetFormat sets the fmt verb used to print numbers. An empty string
// restores the default.
func SetFormat(format string) {
	mu.Lock()
	defer mu.Unlock()
	conf.SetFormat(format)
}
