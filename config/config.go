// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the configuration state shared by the scanner,
// compiler and evaluator.
package config // import "github.com/MovGP0/UnitSystem-sub000/config"

import (
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

const (
	defaultFormat    = "%.12g"
	defaultMaxDepth  = 10000
	defaultCacheSize = 4096
	defaultTolerance = 1e-9
)

// A Config holds information about the configuration of the system.
// The zero value of a Config, or a nil Config pointer, is ready to use.
type Config struct {
	prompt    string
	format    string
	tolerance float64
	maxDepth  uint
	cacheSize int
	debug     map[string]bool
	output    io.Writer
	errOutput io.Writer
	logger    *slog.Logger
}

// DebugFlags lists the names of the debug switches.
var DebugFlags = []string{
	"calls",
	"cpu",
	"panic",
	"parse",
	"sequence",
	"tokens",
	"types",
}

func (c *Config) init() {
	if c.output == nil {
		c.output = os.Stdout
		c.errOutput = os.Stderr
	}
}

// Format returns the formatting string used to print numbers.
// If empty, the default is used.
func (c *Config) Format() string {
	if c == nil || c.format == "" {
		return defaultFormat
	}
	return c.format
}

// SetFormat sets the formatting string used to print numbers.
func (c *Config) SetFormat(s string) {
	c.format = s
}

// Tolerance returns the absolute tolerance used when comparing
// floating-point results for approximate equality.
func (c *Config) Tolerance() float64 {
	if c == nil || c.tolerance <= 0 {
		return defaultTolerance
	}
	return c.tolerance
}

// SetTolerance sets the comparison tolerance.
func (c *Config) SetTolerance(t float64) {
	c.tolerance = t
}

// MaxDepth returns the maximum depth of the call stack.
func (c *Config) MaxDepth() uint {
	if c == nil || c.maxDepth == 0 {
		return defaultMaxDepth
	}
	return c.maxDepth
}

// SetMaxDepth sets the maximum depth of the call stack.
func (c *Config) SetMaxDepth(d uint) {
	c.maxDepth = d
}

// CacheSize returns the number of elements each sequence memoizes.
func (c *Config) CacheSize() int {
	if c == nil || c.cacheSize <= 0 {
		return defaultCacheSize
	}
	return c.cacheSize
}

// SetCacheSize sets the number of elements each sequence memoizes.
func (c *Config) SetCacheSize(n int) {
	c.cacheSize = n
}

// Debug reports whether the named debug switch is on.
func (c *Config) Debug(flag string) bool {
	if c == nil {
		return false
	}
	return c.debug[flag]
}

// SetDebug sets the named debug switch. It reports whether the
// flag is known.
func (c *Config) SetDebug(flag string, state bool) bool {
	i := sort.SearchStrings(DebugFlags, flag)
	if i >= len(DebugFlags) || DebugFlags[i] != flag {
		return false
	}
	if c.debug == nil {
		c.debug = make(map[string]bool)
	}
	c.debug[flag] = state
	return true
}

// Prompt returns the interactive prompt.
func (c *Config) Prompt() string {
	if c == nil {
		return ""
	}
	return c.prompt
}

// SetPrompt sets the interactive prompt.
func (c *Config) SetPrompt(prompt string) {
	c.prompt = prompt
}

// Output returns the writer to be used for program output.
func (c *Config) Output() io.Writer {
	c.init()
	return c.output
}

// SetOutput sets the writer to which program output is printed.
func (c *Config) SetOutput(output io.Writer) {
	c.init()
	c.output = output
}

// ErrOutput returns the writer to be used for error output.
func (c *Config) ErrOutput() io.Writer {
	c.init()
	return c.errOutput
}

// SetErrOutput sets the writer to which error output is printed.
func (c *Config) SetErrOutput(output io.Writer) {
	c.init()
	c.errOutput = output
}

// Logger returns the structured logger for debug tracing.
// Unless set, it discards everything.
func (c *Config) Logger() *slog.Logger {
	if c == nil || c.logger == nil {
		return discard
	}
	return c.logger
}

// SetLogger sets the structured logger.
func (c *Config) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// EnableTracing installs a text logger on the error output at debug
// level, so the debug switches that log have somewhere to go.
func (c *Config) EnableTracing() {
	c.logger = slog.New(slog.NewTextHandler(c.ErrOutput(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// DebugString returns the names of the debug switches that are on,
// sorted and space separated.
func (c *Config) DebugString() string {
	var on []string
	for _, f := range DebugFlags {
		if c.Debug(f) {
			on = append(on, f)
		}
	}
	return strings.Join(on, " ")
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))
