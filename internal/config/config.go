// Package config loads logseek's optional YAML configuration file
// (SPEC_FULL.md §10.3), which supplies defaults that command-line flags
// then override. Grounded on the teacher's flag-heavy cmd/root.go: the
// same settings exist as flags there; this package only adds a file-based
// way to set their defaults once instead of retyping them on every
// invocation.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of a logseek config file.
type Config struct {
	// BlockSize overrides block.DefaultBlockSz.
	BlockSize uint64 `yaml:"block_size"`
	// Timezone names the *time.Location used for timestamps whose pattern
	// carries no timezone of its own (e.g. "America/New_York", "UTC").
	Timezone string `yaml:"timezone"`
	// Verbose turns on zerolog debug-level logging by default.
	Verbose bool `yaml:"verbose"`
	// DebugAssert enables the package-level invariant checks described in
	// SPEC_FULL.md §10.2 (equivalent to setting LOGSEEK_DEBUG_ASSERT=1).
	DebugAssert bool `yaml:"debug_assert"`
}

// Load reads and parses a YAML config file at path. A missing file is not
// an error — callers get a zero-value Config and proceed with built-in
// defaults, mirroring how an absent --flag simply keeps cobra's default.
func Load(path string) (Config, error) {
	var c Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return c, nil
}

// Location resolves c.Timezone to a *time.Location, defaulting to UTC when
// unset or unrecognized (the caller is expected to log the fallback).
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC, fmt.Errorf("config: unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
