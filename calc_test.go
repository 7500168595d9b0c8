// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MovGP0/UnitSystem-sub000/config"
	"github.com/MovGP0/UnitSystem-sub000/run"
)

// TestAll runs the examples in testdata/*.calc. An example is a block
// of input lines followed by the tab-indented output they produce. In
// files named *_fail.calc every example must fail, and the indented
// lines are fragments of the error it reports.
func TestAll(t *testing.T) {
	names, err := filepath.Glob(filepath.Join("testdata", "*.calc"))
	require.NoError(t, err)
	require.NotEmpty(t, names)
	for _, path := range names {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			lines := strings.Split(string(data), "\n")
			// Will have a trailing empty string.
			if len(lines) > 0 && lines[len(lines)-1] == "" {
				lines = lines[:len(lines)-1]
			}
			lineNum := 1
			for len(lines) > 0 {
				input, output, length := getText(lines)
				if input == nil {
					break
				}
				runTest(t, path, lineNum+leadingComments(lines), input, output)
				lines = lines[length:]
				lineNum += length
			}
		})
	}
}

func leadingComments(lines []string) int {
	n := 0
	for _, line := range lines {
		if len(line) > 0 && !strings.HasPrefix(line, "#") {
			break
		}
		n++
	}
	return n
}

func runTest(t *testing.T, name string, lineNum int, input, output []string) {
	t.Helper()
	shouldFail := strings.HasSuffix(name, "_fail.calc")
	in := strings.Join(input, "\n")
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	conf := new(config.Config)
	conf.SetOutput(stdout)
	conf.SetErrOutput(stderr)
	// Deep enough for every example; keeps the overflow cases quick.
	conf.SetMaxDepth(1000)
	ok := run.New(conf).Run(strings.NewReader(in), false)
	if shouldFail {
		require.False(t, ok, "expected execution failure at %s:%d:\n%s", name, lineNum, in)
		require.NotZero(t, stderr.Len(), "no error reported at %s:%d:\n%s", name, lineNum, in)
		for _, want := range output {
			assert.Contains(t, stderr.String(), want, "%s:%d:\n%s", name, lineNum, in)
		}
		return
	}
	require.True(t, ok, "execution failure (%s) at %s:%d:\n%s", stderr, name, lineNum, in)
	require.Zero(t, stderr.Len(), "unexpected error output at %s:%d", name, lineNum)
	got := trim(strings.Split(stdout.String(), "\n"))
	if diff := cmp.Diff(trim(output), got); diff != "" {
		t.Errorf("%s:%d:\n\t%s\n(-want +got):\n%s", name, lineNum, strings.Join(input, "\n\t"), diff)
	}
}

// trim drops the trailing empty line Split leaves and surrounding space
// on every line.
func trim(lines []string) []string {
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	out := make([]string, len(lines))
	for i, s := range lines {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func getText(lines []string) (input, output []string, length int) {
	// Skip blank and initial comment lines.
	length = leadingComments(lines)

	// Input ends at tab-indented line.
	for _, line := range lines[length:] {
		line = strings.TrimRight(line, " \t")
		if strings.HasPrefix(line, "\t") {
			break
		}
		input = append(input, line)
		length++
	}

	// Output ends at non-blank, non-tab-indented line.
	// Indented "#" is expected blank line in output.
	for _, line := range lines[length:] {
		line = strings.TrimRight(line, " \t")
		if line != "" && !strings.HasPrefix(line, "\t") {
			break
		}
		output = append(output, strings.TrimPrefix(line, "\t"))
		length++
	}
	for len(output) > 0 && output[len(output)-1] == "" {
		output = output[:len(output)-1]
	}
	for i, line := range output {
		if line == "#" {
			output[i] = ""
		}
	}

	return // Will return nil if no more tests exist.
}
