// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse decodes one contract document.
//
// source is the document base name. It is recorded on the contract and used
// as the path of any returned *SchemaError.
func Parse(data []byte, dir Direction, source string) (*Contract, error) {
	var c Contract
	if err := json.Unmarshal(data, &c); err != nil {
		if !errors.Is(err, ErrInvalidSchema) {
			err = fmt.Errorf("%w: %v", ErrInvalidSchema, err)
		}
		return nil, &SchemaError{Path: source, Err: err}
	}
	if err := json.Unmarshal(data, &c.raw); err != nil {
		return nil, &SchemaError{Path: source, Err: fmt.Errorf("%w: %v", ErrInvalidSchema, err)}
	}
	c.Direction = dir
	c.Source = source

	if err := c.validate(); err != nil {
		return nil, &SchemaError{Path: source, Err: err}
	}
	return &c, nil
}

func (c *Contract) validate() error {
	seen := make(map[string]bool, len(c.Methods))
	for i, m := range c.Methods {
		if m == nil || m.Name == "" {
			return fmt.Errorf("method %d: %w: method has no name", i, ErrInvalidSchema)
		}
		if seen[m.Name] {
			return fmt.Errorf("method %s: %w", m.Name, ErrDuplicateName)
		}
		seen[m.Name] = true

		for j, p := range m.Params {
			if p == nil || p.Name == "" {
				return fmt.Errorf("method %s: param %d: %w: param has no name", m.Name, j, ErrInvalidSchema)
			}
			if p.Schema == nil {
				return fmt.Errorf("method %s: param %s: %w", m.Name, p.Name, ErrMissingSchema)
			}
		}
		if m.Result != nil && m.Result.Schema == nil {
			return fmt.Errorf("method %s: result: %w", m.Name, ErrMissingSchema)
		}
	}
	return nil
}

// Lookup walks a sequence of pointer segments through the raw document.
//
// It returns the identifier candidate for the target node: the node's "name"
// member when present, otherwise the last segment. ok is false when any
// segment is missing or the target is not a JSON object.
func (c *Contract) Lookup(segments []string) (name string, ok bool) {
	if len(segments) == 0 {
		return "", false
	}

	var cur any = c.raw
	for _, seg := range segments {
		switch node := cur.(type) {
		case map[string]any:
			next, found := node[seg]
			if !found {
				return "", false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return "", false
			}
			cur = node[i]
		default:
			return "", false
		}
	}

	target, isObj := cur.(map[string]any)
	if !isObj {
		return "", false
	}
	if n, isStr := target["name"].(string); isStr && n != "" {
		return n, true
	}
	return segments[len(segments)-1], true
}

// SplitRef splits a "#/a/b/c" pointer into unescaped segments.
func SplitRef(ref string) ([]string, error) {
	rest, ok := strings.CutPrefix(ref, "#/")
	if !ok || rest == "" {
		return nil, fmt.Errorf("%w: %q is not a local pointer", ErrUnresolvedRef, ref)
	}
	segs := strings.Split(rest, "/")
	for i, s := range segs {
		segs[i] = strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
	}
	return segs, nil
}
