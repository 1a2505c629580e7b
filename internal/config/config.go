// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package config loads the commgen TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the configuration file read when no path is given.
const DefaultPath = "commgen.toml"

// Config is the resolved configuration. Paths are absolute or relative to
// the working directory.
type Config struct {
	// InputDir holds the *-openrpc.json documents.
	InputDir string

	Formatter Formatter

	// Targets is keyed by generator name.
	Targets map[string]Target
}

// Formatter names the external formatter and the target it is applied to.
type Formatter struct {
	Command string
	Args    []string
	Target  string
}

// Target configures one generator.
type Target struct {
	// Dir receives the generated file.
	Dir string

	// Required makes a missing Dir a precondition failure. Otherwise the
	// directory is created.
	Required bool

	// Options are passed to the generator.
	Options map[string]string
}

// Default returns the built-in configuration, relative to the working
// directory.
func Default() Config {
	return Config{
		InputDir: "comms",
		Formatter: Formatter{
			Command: "rustfmt",
			Args:    []string{"--edition", "2021"},
			Target:  "rust",
		},
		Targets: map[string]Target{
			"typescript": {Dir: filepath.Join("out", "typescript")},
			"rust":       {Dir: filepath.Join("out", "rust"), Required: true},
			"python":     {Dir: filepath.Join("out", "python")},
		},
	}
}

// TargetNames returns the configured target names, sorted.
func (c Config) TargetNames() []string {
	names := make([]string, 0, len(c.Targets))
	for name := range c.Targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type fileConfig struct {
	InputDir  string                `toml:"input_dir"`
	Formatter fileFormatter         `toml:"formatter"`
	Targets   map[string]fileTarget `toml:"targets"`
}

type fileFormatter struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	Target  string   `toml:"target"`
}

type fileTarget struct {
	Dir      string            `toml:"dir"`
	Required bool              `toml:"required"`
	Disabled bool              `toml:"disabled"`
	Options  map[string]string `toml:"options"`
}

// Load reads the configuration at path over the defaults. An empty path
// means DefaultPath, which may be absent. An explicit path must exist.
//
// Targets merge key by key with [Default]; "disabled = true" drops one.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	base := filepath.Dir(path)

	if meta.IsDefined("input_dir") {
		cfg.InputDir = resolve(base, raw.InputDir)
	}

	if meta.IsDefined("formatter", "command") {
		cfg.Formatter.Command = strings.TrimSpace(raw.Formatter.Command)
	}
	if meta.IsDefined("formatter", "args") {
		cfg.Formatter.Args = raw.Formatter.Args
	}
	if meta.IsDefined("formatter", "target") {
		cfg.Formatter.Target = strings.TrimSpace(raw.Formatter.Target)
	}

	// Each [targets.<name>] table overrides the keys it sets on the
	// default target of that name.
	for _, name := range slices.Sorted(maps.Keys(raw.Targets)) {
		t := raw.Targets[name]
		if t.Disabled {
			delete(cfg.Targets, name)
			continue
		}
		target, known := cfg.Targets[name]
		switch {
		case meta.IsDefined("targets", name, "dir"):
			if strings.TrimSpace(t.Dir) == "" {
				return Config{}, fmt.Errorf("load config %s: targets.%s: dir is empty", path, name)
			}
			target.Dir = resolve(base, t.Dir)
		case !known:
			return Config{}, fmt.Errorf("load config %s: targets.%s: dir is required", path, name)
		}
		if meta.IsDefined("targets", name, "required") {
			target.Required = t.Required
		}
		if meta.IsDefined("targets", name, "options") {
			target.Options = t.Options
		}
		cfg.Targets[name] = target
	}

	if cfg.Formatter.Command != "" && cfg.Formatter.Target != "" {
		if _, ok := cfg.Targets[cfg.Formatter.Target]; !ok {
			return Config{}, fmt.Errorf("load config %s: formatter target %q is not configured", path, cfg.Formatter.Target)
		}
	}

	return cfg, nil
}

func resolve(base, path string) string {
	path = strings.TrimSpace(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
