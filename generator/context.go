// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"slices"
	"strings"
)

// Context is the stack of enclosing names of a schema node, innermost
// first. It names nodes that carry no explicit name.
type Context []string

// Push returns a new context with name as the innermost entry.
func (c Context) Push(name string) Context {
	out := make(Context, 0, len(c)+1)
	out = append(out, name)
	return append(out, c...)
}

// Key returns the innermost entry, or "" for an empty context.
func (c Context) Key() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// Owner returns the entry enclosing the innermost one, or "".
func (c Context) Owner() string {
	if len(c) < 2 {
		return ""
	}
	return c[1]
}

// String renders the context outermost first, for diagnostics.
func (c Context) String() string {
	out := slices.Clone(c)
	slices.Reverse(out)
	return strings.Join(out, ".")
}
