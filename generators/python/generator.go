// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package python

import (
	"context"

	"github.com/albertocavalcante/commgen/generator"
)

// Generator implements [generator.Generator] for Python code generation.
type Generator struct{}

// NewGenerator creates a new Python generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Metadata returns information about this generator.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:           "python",
		Version:        "1.0.0",
		Description:    "Generate Python dataclasses and a comm client",
		FileExtensions: []string{".py"},
		URL:            "https://github.com/albertocavalcante/commgen",
	}
}

// Generate produces the Python binding file for one Comm.
func (g *Generator) Generate(ctx context.Context, p *generator.Plan, cfg generator.Config) (*generator.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	internalCfg := Config{
		RuntimeModule: cfg.Option("runtime_module", DefaultRuntimeModule),
		Source:        cfg.Source,
	}

	out, err := New(p, internalCfg).Generate()
	if err != nil {
		return nil, err
	}
	return generator.Single(FileName(p.Name), out), nil
}
