// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package pipeline drives code generation for every Comm in an input
// directory.
//
// A run checks its preconditions, then processes Comms one at a time in
// name order: load, plan, render every target in memory, write the files,
// then run the formatter on the file of the formatted target. The first
// failure stops the run. Files written for earlier Comms are kept.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/albertocavalcante/commgen/generator"
	"github.com/albertocavalcante/commgen/internal/config"
	"github.com/albertocavalcante/commgen/internal/discover"
	"github.com/albertocavalcante/commgen/internal/format"
	"github.com/albertocavalcante/commgen/model"
)

// Config describes one run.
type Config struct {
	InputDir string

	// Targets are processed in slice order.
	Targets []Target

	Formatter format.Formatter

	// FormatTarget names the target whose files are formatted.
	FormatTarget string
}

// Target binds a generator to its output directory.
type Target struct {
	Name      string
	Generator generator.Generator
	Dir       string
	Required  bool
	Options   map[string]string
}

// FromConfig resolves the configured targets against the generator
// registry. Targets are ordered by name.
func FromConfig(c config.Config) (Config, error) {
	cfg := Config{
		InputDir:     c.InputDir,
		Formatter:    format.Formatter{Command: c.Formatter.Command, Args: c.Formatter.Args},
		FormatTarget: c.Formatter.Target,
	}
	for _, name := range c.TargetNames() {
		g, ok := generator.Get(name)
		if !ok {
			return Config{}, fmt.Errorf("unknown target %q (available: %s)", name, strings.Join(generator.List(), ", "))
		}
		t := c.Targets[name]
		cfg.Targets = append(cfg.Targets, Target{
			Name:      name,
			Generator: g,
			Dir:       t.Dir,
			Required:  t.Required,
			Options:   t.Options,
		})
	}
	return cfg, nil
}

// File is one generated file as it ended up on disk.
type File struct {
	Comm    string
	Target  string
	Path    string
	Content []byte
}

// Report summarizes a run.
type Report struct {
	// Processed lists the Comms whose files were all written and formatted.
	Processed []string

	Files []File
}

// Run generates bindings for every Comm found in cfg.InputDir.
//
// The returned Report is never nil and covers the Comms completed before
// any failure. Errors are *PreconditionError, *IOError or
// *model.SchemaError, possibly wrapping context cancellation.
func Run(ctx context.Context, cfg Config, logger zerolog.Logger) (*Report, error) {
	report := &Report{}

	if err := preflight(cfg); err != nil {
		return report, err
	}

	pairs, err := discover.Discover(cfg.InputDir)
	if err != nil {
		return report, &IOError{Op: "discover", Path: cfg.InputDir, Err: err}
	}
	if len(pairs) == 0 {
		logger.Warn().Str("dir", cfg.InputDir).Msg("no contract documents found")
	}

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		log := logger.With().Str("comm", pair.Name).Logger()
		log.Info().Msg("processing comm")

		files, err := process(ctx, cfg, pair, log)
		if err != nil {
			log.Error().Err(err).Msg("comm failed")
			return report, err
		}

		report.Processed = append(report.Processed, pair.Name)
		report.Files = append(report.Files, files...)
	}

	logger.Info().Int("comms", len(report.Processed)).Int("files", len(report.Files)).Msg("generation complete")
	return report, nil
}

func preflight(cfg Config) error {
	for _, t := range cfg.Targets {
		info, err := os.Stat(t.Dir)
		switch {
		case err == nil && !info.IsDir():
			return &PreconditionError{Reason: fmt.Sprintf("%s output %s is not a directory", t.Name, t.Dir)}
		case errors.Is(err, fs.ErrNotExist):
			if t.Required {
				return &PreconditionError{Reason: fmt.Sprintf("%s output directory %s does not exist", t.Name, t.Dir), Err: err}
			}
		case err != nil:
			return &PreconditionError{Reason: fmt.Sprintf("%s output directory %s", t.Name, t.Dir), Err: err}
		}
	}

	if cfg.Formatter.Enabled() {
		if cfg.FormatTarget != "" && !slices.ContainsFunc(cfg.Targets, func(t Target) bool { return t.Name == cfg.FormatTarget }) {
			return &PreconditionError{Reason: fmt.Sprintf("formatter target %q is not configured", cfg.FormatTarget)}
		}
		if err := cfg.Formatter.Check(); err != nil {
			return &PreconditionError{Reason: "formatter is not invocable", Err: err}
		}
	}
	return nil
}

type rendered struct {
	target Target
	path   string
	data   []byte
}

// process runs one Comm. Nothing is written until every target rendered
// and formatted, and a failed write leaves the outputs as they were.
func process(ctx context.Context, cfg Config, pair discover.Pair, log zerolog.Logger) ([]File, error) {
	comm, err := discover.Load(pair)
	if err != nil {
		var se *model.SchemaError
		if errors.As(err, &se) {
			return nil, err
		}
		return nil, &IOError{Comm: pair.Name, Op: "read", Err: err}
	}

	plan, err := generator.NewPlan(comm)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Int("objects", len(plan.Objects)).
		Int("enums", len(plan.Enums)).
		Int("methods", len(plan.Methods())).
		Msg("planned comm")

	var outputs []rendered
	for _, t := range cfg.Targets {
		out, err := t.Generator.Generate(ctx, plan, generator.Config{Source: plan.Source(), Options: t.Options})
		if err != nil {
			return nil, schemaError(pair.Name, t.Name, err)
		}
		for _, name := range out.Names() {
			outputs = append(outputs, rendered{target: t, path: filepath.Join(t.Dir, name), data: out.Files[name]})
		}
	}

	for i := range outputs {
		r := &outputs[i]
		if !r.target.Required {
			if err := os.MkdirAll(r.target.Dir, 0o755); err != nil {
				return nil, &IOError{Comm: pair.Name, Op: "write", Path: r.target.Dir, Err: err}
			}
		}
		if cfg.Formatter.Enabled() && r.target.Name == cfg.FormatTarget {
			log.Debug().Str("target", r.target.Name).Str("path", r.path).Stringer("formatter", cfg.Formatter).Msg("formatting file")
			if r.data, err = formatStaged(ctx, cfg.Formatter, r.path, r.data); err != nil {
				return nil, &IOError{Comm: pair.Name, Op: "format", Path: r.path, Err: err}
			}
		}
	}

	var tx transaction
	files := make([]File, 0, len(outputs))
	for _, r := range outputs {
		if err := tx.write(r.path, r.data); err != nil {
			if rerr := tx.rollback(); rerr != nil {
				log.Error().Err(rerr).Msg("rollback failed")
			}
			return nil, &IOError{Comm: pair.Name, Op: "write", Path: r.path, Err: err}
		}
		log.Info().Str("target", r.target.Name).Str("path", r.path).Msg("wrote file")
		files = append(files, File{Comm: pair.Name, Target: r.target.Name, Path: r.path, Content: r.data})
	}
	return files, nil
}

// schemaError attributes a render failure to its Comm and target. Errors
// that are not schema problems (e.g., cancellation) pass through.
func schemaError(comm, target string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var se *model.SchemaError
	if errors.As(err, &se) {
		if se.Comm == "" {
			se.Comm = comm
		}
		return fmt.Errorf("%s: %w", target, err)
	}
	return &model.SchemaError{Comm: comm, Path: target, Err: err}
}
