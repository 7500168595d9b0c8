// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var c *Config
	assert.Equal(t, "%.12g", c.Format())
	assert.Equal(t, uint(10000), c.MaxDepth())
	assert.Equal(t, 4096, c.CacheSize())
	assert.False(t, c.Debug("parse"))
	assert.NotNil(t, c.Logger())
}

func TestSetDebug(t *testing.T) {
	var c Config
	assert.True(t, c.SetDebug("parse", true))
	assert.True(t, c.SetDebug("calls", true))
	assert.False(t, c.SetDebug("bogus", true))
	assert.Equal(t, "calls parse", c.DebugString())
}

func TestLoad(t *testing.T) {
	var c Config
	src := `
format: "%.4g"
tolerance: 1e-6
max_depth: 50
cache_size: 8
prompt: "> "
debug: [sequence]
`
	require.NoError(t, c.Load(strings.NewReader(src)))
	assert.Equal(t, "%.4g", c.Format())
	assert.Equal(t, 1e-6, c.Tolerance())
	assert.Equal(t, uint(50), c.MaxDepth())
	assert.Equal(t, 8, c.CacheSize())
	assert.Equal(t, "> ", c.Prompt())
	assert.True(t, c.Debug("sequence"))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"colour: red\n", "field colour not found"},
		{"debug: [loud]\n", `unknown debug flag "loud"`},
		{"tolerance: -1\n", "negative tolerance"},
		{"cache_size: -2\n", "negative cache_size"},
	}
	for _, test := range tests {
		var c Config
		err := c.Load(strings.NewReader(test.src))
		require.Error(t, err, test.src)
		assert.Contains(t, err.Error(), test.want)
	}
}

func TestLoadEmpty(t *testing.T) {
	var c Config
	require.NoError(t, c.Load(strings.NewReader("")))
	assert.Equal(t, "%.12g", c.Format())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: 7\n"), 0o644))
	var c Config
	require.NoError(t, c.LoadFile(path))
	assert.Equal(t, uint(7), c.MaxDepth())

	err := c.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
