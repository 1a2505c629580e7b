// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"iter"

	"github.com/albertocavalcante/commgen/model"
)

// Node is a schema discovered by a visitor.
type Node struct {
	// Ctx is the naming context of the node.
	Ctx Context

	Schema *model.Schema

	// Inherited is the description of the enclosing param or result.
	Inherited string
}

// Description returns the node's own description, falling back to the
// inherited one.
func (n Node) Description() string {
	if n.Schema.Description != "" {
		return n.Schema.Description
	}
	return n.Inherited
}

// Objects yields every object node of c, depth first. An object is yielded
// before the objects nested in its properties.
func Objects(c *model.Contract) iter.Seq[Node] {
	return walk(c, model.KindObject)
}

// Enums yields every enum node of c in the same order as [Objects].
func Enums(c *model.Contract) iter.Seq[Node] {
	return walk(c, model.KindEnum)
}

func walk(c *model.Contract, kind model.Kind) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		w := walker{kind: kind, yield: yield}
		for _, m := range c.Methods {
			for _, p := range m.Params {
				if !w.visit(Context{p.Name, m.Name}, p.Schema, p.Description) {
					return
				}
			}
			if m.Result != nil {
				if !w.visit(Context{m.Name}, m.Result.Schema, m.Result.Description) {
					return
				}
			}
		}
		for _, s := range c.Components.Schemas {
			if !w.visit(Context{s.Name}, s.Schema, "") {
				return
			}
		}
	}
}

type walker struct {
	kind  model.Kind
	yield func(Node) bool
}

// visit reports false once the consumer stops iterating.
func (w *walker) visit(ctx Context, s *model.Schema, inherited string) bool {
	switch s.Kind {
	case model.KindArray:
		return w.visit(ctx, s.Items, inherited)

	case model.KindEnum:
		if w.kind == model.KindEnum {
			return w.yield(Node{Ctx: ctx, Schema: s, Inherited: inherited})
		}

	case model.KindObject:
		if w.kind == model.KindObject && !w.yield(Node{Ctx: ctx, Schema: s, Inherited: inherited}) {
			return false
		}
		inner := innerContext(ctx, s)
		for _, p := range s.Properties {
			if !w.visit(inner.Push(p.Name), p.Schema, "") {
				return false
			}
		}
	}
	return true
}

// innerContext is the context properties of s are named relative to: the
// object's explicit name when it has one.
func innerContext(ctx Context, s *model.Schema) Context {
	if s.Name != "" {
		return ctx.Push(s.Name)
	}
	return ctx
}
