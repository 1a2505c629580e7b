// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package discover finds Comm contract documents on disk and loads them.
package discover

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/albertocavalcante/commgen/model"
)

const (
	// FrontendSuffix names the document of events the frontend receives.
	FrontendSuffix = "-frontend-openrpc.json"

	// BackendSuffix names the document of methods the backend exposes.
	BackendSuffix = "-backend-openrpc.json"
)

// Pair locates the documents of one Comm. Either path may be empty, but
// not both.
type Pair struct {
	Name         string
	FrontendPath string
	BackendPath  string
}

// Discover scans dir for contract documents and groups them by Comm name.
// Pairs are sorted by name. Subdirectories are not scanned.
func Discover(dir string) ([]Pair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	byName := make(map[string]*Pair)
	pair := func(name string) *Pair {
		p, ok := byName[name]
		if !ok {
			p = &Pair{Name: name}
			byName[name] = p
		}
		return p
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		file := e.Name()
		if name, ok := strings.CutSuffix(file, FrontendSuffix); ok && name != "" {
			pair(name).FrontendPath = filepath.Join(dir, file)
			continue
		}
		if name, ok := strings.CutSuffix(file, BackendSuffix); ok && name != "" {
			pair(name).BackendPath = filepath.Join(dir, file)
		}
	}

	pairs := make([]Pair, 0, len(byName))
	for _, p := range byName {
		pairs = append(pairs, *p)
	}
	slices.SortFunc(pairs, func(a, b Pair) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return pairs, nil
}

// Load reads and parses the documents of p. Read failures are returned
// wrapped as-is; parse failures are *model.SchemaError values naming the
// Comm.
func Load(p Pair) (*model.Comm, error) {
	c := &model.Comm{Name: p.Name}

	var err error
	if p.BackendPath != "" {
		if c.Backend, err = loadContract(p.Name, p.BackendPath, model.Backend); err != nil {
			return nil, err
		}
	}
	if p.FrontendPath != "" {
		if c.Frontend, err = loadContract(p.Name, p.FrontendPath, model.Frontend); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func loadContract(comm, path string, dir model.Direction) (*model.Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s document: %w", dir, err)
	}

	ct, err := model.Parse(data, dir, filepath.Base(path))
	if err != nil {
		var se *model.SchemaError
		if errors.As(err, &se) {
			se.Comm = comm
		}
		return nil, err
	}
	return ct, nil
}
