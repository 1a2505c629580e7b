// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package python generates Python bindings for a Comm.
//
// Objects, parameter records, requests, replies and events become
// keyword-only dataclasses. Enums subclass str so members compare equal to
// their wire strings.
package python

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/albertocavalcante/commgen/generator"
	"github.com/albertocavalcante/commgen/internal/commbase"
)

const indent = "    "

// Codegen generates Python source from a Plan.
type Codegen struct {
	plan   *generator.Plan
	config Config
	types  *generator.Deriver
	name   string
}

// New creates a new Python Codegen.
func New(p *generator.Plan, cfg Config) *Codegen {
	return &Codegen{
		plan:   p,
		config: cfg,
		types:  p.Deriver(Types),
		name:   commName(p.Name),
	}
}

// Generate renders the binding file.
func (g *Codegen) Generate() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(g.fileHeader())
	buf.WriteString("# flake8: noqa\n\n")
	buf.WriteString("from __future__ import annotations\n\n")
	buf.WriteString("import enum\n")
	buf.WriteString("from dataclasses import dataclass, field\n")
	buf.WriteString("from typing import Any, Callable, Dict, List, Literal, Optional, TypeAlias, Union\n\n")
	fmt.Fprintf(&buf, "from %s import BaseComm\n", g.config.RuntimeModule)

	for _, a := range g.plan.Aliases {
		buf.WriteString("\n\n")
		writeComment(&buf, a.Description)
		fmt.Fprintf(&buf, "%s: TypeAlias = %s\n", a.Name, quote(g.types.Type(a.Ctx, a.Schema)))
	}

	for _, o := range g.plan.Objects {
		buf.WriteString("\n\n")
		if o.IsAny() {
			writeComment(&buf, o.Description)
			fmt.Fprintf(&buf, "%s: TypeAlias = %s\n", o.Name, quote(Types.Any))
			continue
		}
		g.writeDataclass(&buf, o.Name, o.Description, o.Fields)
	}

	for _, e := range g.plan.Enums {
		buf.WriteString("\n\n")
		writeEnum(&buf, e)
	}

	for _, m := range g.plan.ParamRecords() {
		buf.WriteString("\n\n")
		g.writeDataclass(&buf, m.ParamsType(),
			fmt.Sprintf("Parameters for the %s method.", commbase.ToPascal(m.Name)), m.Params)
	}

	if g.plan.HasBackend() {
		g.writeMessages(&buf, "Request", "params", g.plan.Backend,
			g.name+"BackendRequest", fmt.Sprintf("Requests the frontend can send to the %s backend.", g.plan.Name))
		if replies := g.plan.Replies(); len(replies) > 0 {
			g.writeMessages(&buf, "Reply", "result", replies,
				g.name+"BackendReply", fmt.Sprintf("Replies the %s backend can send.", g.plan.Name))
		}
	}
	if g.plan.HasFrontend() {
		g.writeMessages(&buf, "Event", "params", g.plan.Frontend,
			g.name+"FrontendEvent", fmt.Sprintf("Events the %s backend can send to the frontend.", g.plan.Name))
	}

	buf.WriteString("\n\n")
	g.writeClient(&buf)

	if err := g.types.Err(); err != nil {
		return nil, fmt.Errorf("python: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Codegen) fileHeader() string {
	lines := []string{"# Code generated by commgen. DO NOT EDIT."}
	if g.config.Source != "" {
		lines = append(lines, "# Source: "+g.config.Source)
	}
	return strings.Join(lines, "\n") + "\n\n"
}

func (g *Codegen) writeDataclass(buf *bytes.Buffer, name, doc string, fields []generator.Field) {
	buf.WriteString("@dataclass(kw_only=True)\n")
	fmt.Fprintf(buf, "class %s:\n", name)
	writeDocstring(buf, indent, doc)
	if len(fields) > 0 {
		buf.WriteString("\n")
	}
	for _, f := range fields {
		typ := g.types.Field(f)
		id := identifier(f.Name)
		meta := fmt.Sprintf("%s: %s", quote("description"), quote(f.Description))
		if id != f.Name {
			// The attribute is escaped; the wire name travels in metadata.
			meta = fmt.Sprintf("%s: %s, %s", quote("name"), quote(f.Name), meta)
		}
		if f.Required {
			fmt.Fprintf(buf, "%s%s: %s = field(metadata={%s})\n", indent, id, typ, meta)
		} else {
			fmt.Fprintf(buf, "%s%s: Optional[%s] = field(default=None, metadata={%s})\n", indent, id, typ, meta)
		}
	}
}

func writeEnum(buf *bytes.Buffer, e *generator.Enum) {
	buf.WriteString("@enum.unique\n")
	fmt.Fprintf(buf, "class %s(str, enum.Enum):\n", e.Name)
	writeDocstring(buf, indent, e.Description)
	buf.WriteString("\n")
	for _, v := range e.Values {
		fmt.Fprintf(buf, "%s%s = %s\n", indent, memberName(v), quote(v))
	}
}

// writeMessages renders one dataclass per method carrying its wire name and
// payload, followed by the union of those classes.
func (g *Codegen) writeMessages(buf *bytes.Buffer, suffix, payload string, methods []*generator.Method, union, doc string) {
	var variants []string
	for _, m := range methods {
		name := commbase.ToPascal(m.Name) + suffix
		variants = append(variants, name)

		buf.WriteString("\n\n")
		buf.WriteString("@dataclass(kw_only=True)\n")
		fmt.Fprintf(buf, "class %s:\n", name)
		if suffix == "Reply" {
			writeDocstring(buf, indent, fmt.Sprintf("Reply for the %s method.", m.Name))
		} else {
			writeDocstring(buf, indent, m.Doc())
		}
		buf.WriteString("\n")
		fmt.Fprintf(buf, "%smethod: Literal[%s] = %s\n", indent, quote(m.Name), quote(m.Name))
		switch {
		case suffix == "Reply":
			fmt.Fprintf(buf, "%s%s: %s\n", indent, payload, g.types.Field(*m.Result))
		case len(m.Params) > 0:
			fmt.Fprintf(buf, "%s%s: %s\n", indent, payload, m.ParamsType())
		}
	}

	buf.WriteString("\n\n")
	writeComment(buf, doc)
	if len(variants) == 0 {
		fmt.Fprintf(buf, "%s: TypeAlias = None\n", union)
		return
	}
	fmt.Fprintf(buf, "%s: TypeAlias = Union[%s]\n", union, strings.Join(variants, ", "))
}

func (g *Codegen) writeClient(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "class %sComm:\n", g.name)
	writeDocstring(buf, indent, fmt.Sprintf("Client for the %s comm.", g.plan.Name))
	buf.WriteString("\n")
	fmt.Fprintf(buf, "%sdef __init__(self, comm: BaseComm) -> None:\n", indent)
	fmt.Fprintf(buf, "%s%sself._comm = comm\n", indent, indent)

	for _, m := range g.plan.Backend {
		buf.WriteString("\n")
		g.writeCall(buf, m)
	}

	for _, m := range g.plan.Frontend {
		buf.WriteString("\n")
		payload, payloadType := "", "None"
		if len(m.Params) > 0 {
			payload, payloadType = m.ParamsType(), m.ParamsType()
		}
		fmt.Fprintf(buf, "%sdef on_%s(self, handler: Callable[[%s], None]) -> None:\n", indent, m.Name, payload)
		writeDocstring(buf, indent+indent, m.Doc())
		fmt.Fprintf(buf, "%s%sself._comm.subscribe(%s, %s, handler)\n", indent, indent, quote(m.Name), payloadType)
	}
}

func (g *Codegen) writeCall(buf *bytes.Buffer, m *generator.Method) {
	params := []string{"self"}
	var entries []string
	for i, p := range m.Params {
		id := identifier(p.Name)
		typ := g.types.Field(p)
		switch {
		case p.Required:
			params = append(params, id+": "+typ)
		case trailingOptional(m.Params[i:]):
			params = append(params, id+": Optional["+typ+"] = None")
		default:
			params = append(params, id+": Optional["+typ+"]")
		}
		entries = append(entries, quote(p.Name)+": "+id)
	}

	result, decode := "None", "None"
	if m.Result != nil {
		result = g.types.Field(*m.Result)
		decode = result
	}

	fmt.Fprintf(buf, "%sdef %s(%s) -> %s:\n", indent, identifier(m.Name), strings.Join(params, ", "), result)
	writeDocstring(buf, indent+indent, m.Doc())
	fmt.Fprintf(buf, "%s%sreturn self._comm.perform_rpc(%s, {%s}, %s)\n",
		indent, indent, quote(m.Name), strings.Join(entries, ", "), decode)
}

// trailingOptional reports whether every field is optional.
func trailingOptional(fields []generator.Field) bool {
	for _, f := range fields {
		if f.Required {
			return false
		}
	}
	return true
}

// writeDocstring writes a triple-quoted docstring. Empty docs are skipped.
func writeDocstring(buf *bytes.Buffer, prefix, doc string) {
	if doc == "" {
		return
	}
	fmt.Fprintf(buf, "%s\"\"\"\n", prefix)
	for line := range strings.SplitSeq(doc, "\n") {
		if line == "" {
			buf.WriteString("\n")
			continue
		}
		fmt.Fprintf(buf, "%s%s\n", prefix, line)
	}
	fmt.Fprintf(buf, "%s\"\"\"\n", prefix)
}

// writeComment writes a # comment. Empty docs are skipped.
func writeComment(buf *bytes.Buffer, doc string) {
	if doc == "" {
		return
	}
	for line := range strings.SplitSeq(doc, "\n") {
		if line == "" {
			buf.WriteString("#\n")
			continue
		}
		fmt.Fprintf(buf, "# %s\n", line)
	}
}
