// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package rust

import (
	"context"

	"github.com/albertocavalcante/commgen/generator"
)

// Generator implements [generator.Generator] for Rust code generation.
type Generator struct{}

// NewGenerator creates a new Rust generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Metadata returns information about this generator.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:           "rust",
		Version:        "1.0.0",
		Description:    "Generate serde types and a comm client for Rust",
		FileExtensions: []string{".rs"},
		URL:            "https://github.com/albertocavalcante/commgen",
	}
}

// Generate produces the Rust binding file for one Comm.
func (g *Generator) Generate(ctx context.Context, p *generator.Plan, cfg generator.Config) (*generator.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	internalCfg := Config{
		TransportPath: cfg.Option("transport_path", DefaultTransportPath),
		Source:        cfg.Source,
	}

	out, err := New(p, internalCfg).Generate()
	if err != nil {
		return nil, err
	}
	return generator.Single(FileName(p.Name), out), nil
}
