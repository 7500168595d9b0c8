// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/MovGP0/UnitSystem-sub000/config"
	"github.com/MovGP0/UnitSystem-sub000/run"
)

const (
	defaultPrompt = "calc> "
	historyFile   = ".calc_history"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config, c",
		Usage: "YAML configuration `FILE`",
	}
	formatFlag = cli.StringFlag{
		Name:  "format",
		Usage: "fmt verb for printing numbers, such as %.6g",
	}
	promptFlag = cli.StringFlag{
		Name:  "prompt",
		Usage: "interactive prompt",
	}
	debugFlag = cli.StringSliceFlag{
		Name:  "debug",
		Usage: "turn on a debug switch: " + strings.Join(config.DebugFlags, ", "),
	}
	traceFlag = cli.BoolFlag{
		Name:  "trace",
		Usage: "log the debug switches that are on to standard error",
	}
	maxDepthFlag = cli.IntFlag{
		Name:  "maxdepth",
		Usage: "maximum depth of the call stack",
	}
	cacheSizeFlag = cli.IntFlag{
		Name:  "cachesize",
		Usage: "number of elements memoized per sequence",
	}
	exprFlag = cli.StringFlag{
		Name:  "e",
		Usage: "evaluate the `STATEMENTS` and exit",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "calc"
	app.Usage = "evaluate expressions over numbers, vectors, matrices and symbols"
	app.ArgsUsage = "[file ...]"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		configFlag,
		formatFlag,
		promptFlag,
		debugFlag,
		traceFlag,
		maxDepthFlag,
		cacheSizeFlag,
		exprFlag,
	}
	app.Action = calc
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "calc:", err)
		os.Exit(2)
	}
}

// calc is the only command. With no files it reads standard input,
// interactively if it is a terminal.
func calc(ctx *cli.Context) error {
	conf := new(config.Config)
	if err := configure(ctx, conf); err != nil {
		return err
	}
	eval := run.New(conf)
	eval.ErrorStyle = color.New(color.FgRed).SprintfFunc()

	if ctx.IsSet(exprFlag.Name) {
		if !eval.Run(strings.NewReader(ctx.String(exprFlag.Name)), false) {
			return cli.NewExitError("", 1)
		}
		return nil
	}
	if ctx.NArg() > 0 {
		ok := true
		for _, name := range ctx.Args() {
			if err := runFile(eval, name); err != nil {
				fmt.Fprintln(os.Stderr, color.RedString("calc: %v", err))
				ok = false
			}
		}
		if !ok {
			return cli.NewExitError("", 1)
		}
		return nil
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		return repl(eval)
	}
	if !eval.Run(os.Stdin, false) {
		return cli.NewExitError("", 1)
	}
	return nil
}

// configure applies the configuration file, then the flags, to conf.
func configure(ctx *cli.Context, conf *config.Config) error {
	if file := ctx.String("config"); file != "" {
		if err := conf.LoadFile(file); err != nil {
			return err
		}
	}
	if ctx.IsSet(formatFlag.Name) {
		conf.SetFormat(ctx.String(formatFlag.Name))
	}
	if ctx.IsSet(promptFlag.Name) {
		conf.SetPrompt(ctx.String(promptFlag.Name))
	}
	for _, flag := range ctx.StringSlice("debug") {
		if !conf.SetDebug(flag, true) {
			return fmt.Errorf("unknown debug switch %q; have %s", flag, strings.Join(config.DebugFlags, ", "))
		}
	}
	if n := ctx.Int(maxDepthFlag.Name); n > 0 {
		conf.SetMaxDepth(uint(n))
	}
	if n := ctx.Int(cacheSizeFlag.Name); n > 0 {
		conf.SetCacheSize(n)
	}
	if ctx.Bool(traceFlag.Name) {
		conf.EnableTracing()
	}
	return nil
}

// runFile evaluates the named file. Errors in its statements are
// reported as they happen and evaluation continues.
func runFile(eval *run.Evaluator, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if !eval.Run(f, false) {
		return fmt.Errorf("%s: evaluation failed", name)
	}
	return nil
}

// repl reads statements with line editing and history until EOF.
func repl(eval *run.Evaluator) error {
	prompt := eval.Config().Prompt()
	if prompt == "" {
		prompt = defaultPrompt
	}
	cont := ". "
	if len(prompt) > len(cont) {
		cont = strings.Repeat(" ", len(prompt)-len(cont)) + cont
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
	}
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		text, ok := readStatement(ln, eval, prompt, cont)
		if !ok {
			fmt.Println()
			return nil
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(text, "\n", " "))
		eval.Line(text)
	}
}

// readStatement reads lines until they form input that can be
// evaluated. Interrupting the prompt discards what was typed.
func readStatement(ln *liner.State, eval *run.Evaluator, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		switch {
		case errors.Is(err, io.EOF):
			return "", false
		case errors.Is(err, liner.ErrPromptAborted):
			return "", true
		case err != nil:
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if eval.Complete(b.String()) {
			return b.String(), true
		}
	}
}
