// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"fmt"

	"github.com/albertocavalcante/commgen/internal/commbase"
	"github.com/albertocavalcante/commgen/model"
)

// Resolver maps "$ref" pointers to type identifiers across the contracts of
// one Comm. The backend contract is searched before the frontend contract,
// so backend declarations win when both define the same path.
type Resolver struct {
	contracts []*model.Contract
	cache     map[string]string
}

// NewResolver creates a Resolver over the contracts of c.
func NewResolver(c *model.Comm) *Resolver {
	return &Resolver{
		contracts: c.Contracts(),
		cache:     make(map[string]string),
	}
}

// Resolve returns the Pascal-cased identifier of the node ref points at.
// The identifier is taken from the target's "name" member, or from the
// last pointer segment when the target is unnamed.
func (r *Resolver) Resolve(ref string) (string, error) {
	if id, ok := r.cache[ref]; ok {
		return id, nil
	}

	segs, err := model.SplitRef(ref)
	if err != nil {
		return "", err
	}
	for _, c := range r.contracts {
		if name, ok := c.Lookup(segs); ok {
			id := commbase.ToPascal(name)
			r.cache[ref] = id
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %s", model.ErrUnresolvedRef, ref)
}
