// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package generator defines the interface for Comm binding generators and
// the target-independent pass they share.
//
// [NewPlan] resolves references, derives types, walks the contracts for
// object and enum declarations and validates documentation once per Comm.
// Each target then renders the resulting [Plan] with its own [TypeTable].
package generator

import "context"

// Generator is the interface that all code generators must implement.
type Generator interface {
	// Metadata returns information about this generator.
	Metadata() Metadata

	// Generate renders the bindings for one Comm.
	Generate(ctx context.Context, p *Plan, cfg Config) (*Output, error)
}

// Metadata describes a generator.
type Metadata struct {
	// Name is the short identifier (e.g., "typescript", "rust").
	Name string

	// Version is the generator version (semver).
	Version string

	// Description is a human-readable description.
	Description string

	// FileExtensions lists typical output extensions (e.g., [".ts"]).
	FileExtensions []string

	// URL is the homepage/documentation URL (optional).
	URL string
}
