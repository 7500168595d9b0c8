// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// configFile is the on-disk form of a Config.
//
//	format: "%.6g"
//	tolerance: 1e-12
//	max_depth: 2000
//	cache_size: 1024
//	prompt: "> "
//	debug: [parse, calls]
type configFile struct {
	Format    string   `yaml:"format"`
	Tolerance float64  `yaml:"tolerance"`
	MaxDepth  uint     `yaml:"max_depth"`
	CacheSize int      `yaml:"cache_size"`
	Prompt    string   `yaml:"prompt"`
	Debug     []string `yaml:"debug"`
}

// Load reads YAML settings from r and applies them to c.
// Unknown keys and debug switches are errors.
func (c *Config) Load(r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("config: parse: %w", err)
	}
	if raw.Tolerance < 0 {
		return fmt.Errorf("config: negative tolerance %g", raw.Tolerance)
	}
	if raw.CacheSize < 0 {
		return fmt.Errorf("config: negative cache_size %d", raw.CacheSize)
	}
	for _, flag := range raw.Debug {
		if !c.SetDebug(flag, true) {
			return fmt.Errorf("config: unknown debug flag %q", flag)
		}
	}
	if raw.Format != "" {
		c.SetFormat(raw.Format)
	}
	if raw.Tolerance != 0 {
		c.SetTolerance(raw.Tolerance)
	}
	if raw.MaxDepth != 0 {
		c.SetMaxDepth(raw.MaxDepth)
	}
	if raw.CacheSize != 0 {
		c.SetCacheSize(raw.CacheSize)
	}
	if raw.Prompt != "" {
		c.SetPrompt(raw.Prompt)
	}
	return nil
}

// LoadFile reads YAML settings from the named file.
func (c *Config) LoadFile(path string) error {
	if path == "" {
		return fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()
	if err := c.Load(file); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
