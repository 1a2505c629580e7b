// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package rust generates Rust bindings for a Comm.
//
// The generated code uses serde for (de)serialization:
//   - structs deriving Serialize and Deserialize for objects and parameters
//   - unit enums renamed to their wire strings
//   - adjacently tagged enums for requests, replies and events
//   - a client generic over the runtime's CommTransport trait
//
// The output is meant to be run through rustfmt afterwards.
package rust

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/albertocavalcante/commgen/generator"
	"github.com/albertocavalcante/commgen/internal/commbase"
)

const (
	indent       = "    "
	structDerive = "#[derive(Debug, Serialize, Deserialize, PartialEq, Clone)]"
	enumDerive   = "#[derive(Copy, Clone, Debug, Serialize, Deserialize, PartialEq, Eq, Hash)]"
)

// Codegen generates Rust source from a Plan.
type Codegen struct {
	plan   *generator.Plan
	config Config
	types  *generator.Deriver
	name   string
}

// New creates a new Rust Codegen.
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
	buf.WriteString("use serde::Deserialize;\n")
	buf.WriteString("use serde::Serialize;\n\n")
	fmt.Fprintf(&buf, "use %s;\n", g.config.TransportPath)

	for _, a := range g.plan.Aliases {
		buf.WriteString("\n")
		writeDoc(&buf, "", a.Description)
		fmt.Fprintf(&buf, "pub type %s = %s;\n", a.Name, g.types.Type(a.Ctx, a.Schema))
	}

	for _, o := range g.plan.Objects {
		buf.WriteString("\n")
		writeDoc(&buf, "", o.Description)
		if o.IsAny() {
			fmt.Fprintf(&buf, "pub type %s = %s;\n", o.Name, Types.Any)
			continue
		}
		g.writeStruct(&buf, o.Name, o.Fields)
	}

	for _, e := range g.plan.Enums {
		buf.WriteString("\n")
		writeEnum(&buf, e)
	}

	for _, m := range g.plan.ParamRecords() {
		buf.WriteString("\n")
		writeDoc(&buf, "", fmt.Sprintf("Parameters for the %s method.", commbase.ToPascal(m.Name)))
		g.writeStruct(&buf, m.ParamsType(), m.Params)
	}

	if g.plan.HasBackend() {
		buf.WriteString("\n")
		g.writeUnion(&buf, g.name+"BackendRequest", "params",
			fmt.Sprintf("Requests the frontend can send to the %s backend.", g.plan.Name), g.plan.Backend, false)
		writeWireName(&buf, g.name+"BackendRequest", "method_name", "The wire name of the method.", g.plan.Backend)

		if replies := g.plan.Replies(); len(replies) > 0 {
			buf.WriteString("\n")
			g.writeUnion(&buf, g.name+"BackendReply", "result",
				fmt.Sprintf("Replies the %s backend can send.", g.plan.Name), replies, true)
		}
	}
	if g.plan.HasFrontend() {
		buf.WriteString("\n")
		g.writeUnion(&buf, g.name+"FrontendEvent", "params",
			fmt.Sprintf("Events the %s backend can send to the frontend.", g.plan.Name), g.plan.Frontend, false)
		writeWireName(&buf, g.name+"FrontendEvent", "event_type", "The wire name of the event.", g.plan.Frontend)
	}

	buf.WriteString("\n")
	g.writeClient(&buf)

	if err := g.types.Err(); err != nil {
		return nil, fmt.Errorf("rust: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Codegen) fileHeader() string {
	lines := []string{"// Code generated by commgen. DO NOT EDIT."}
	if g.config.Source != "" {
		lines = append(lines, "// Source: "+g.config.Source)
	}
	return strings.Join(lines, "\n") + "\n\n"
}

func (g *Codegen) writeStruct(buf *bytes.Buffer, name string, fields []generator.Field) {
	buf.WriteString(structDerive + "\n")
	fmt.Fprintf(buf, "pub struct %s {\n", name)
	for i, f := range fields {
		if i > 0 {
			buf.WriteString("\n")
		}
		writeDoc(buf, indent, f.Description)

		ident := fieldName(f.Name)
		if needsRename(ident, f.Name) {
			fmt.Fprintf(buf, "%s#[serde(rename = %s)]\n", indent, quote(f.Name))
		}
		typ := g.types.Field(f)
		if !f.Required {
			fmt.Fprintf(buf, "%s#[serde(default, skip_serializing_if = \"Option::is_none\")]\n", indent)
			typ = "Option<" + typ + ">"
		}
		fmt.Fprintf(buf, "%spub %s: %s,\n", indent, ident, typ)
	}
	buf.WriteString("}\n")
}

func writeEnum(buf *bytes.Buffer, e *generator.Enum) {
	writeDoc(buf, "", e.Description)
	buf.WriteString(enumDerive + "\n")
	fmt.Fprintf(buf, "pub enum %s {\n", e.Name)
	for _, v := range e.Values {
		fmt.Fprintf(buf, "%s#[serde(rename = %s)]\n", indent, quote(v))
		fmt.Fprintf(buf, "%s%s,\n", indent, variantName(v))
	}
	buf.WriteString("}\n")
}

// writeUnion renders an adjacently tagged enum with one variant per method.
// Reply variants carry the result type; the others carry the params record.
func (g *Codegen) writeUnion(buf *bytes.Buffer, name, content, doc string, methods []*generator.Method, reply bool) {
	writeDoc(buf, "", doc)
	buf.WriteString(structDerive + "\n")
	fmt.Fprintf(buf, "#[serde(tag = \"method\", content = %s)]\n", quote(content))
	fmt.Fprintf(buf, "pub enum %s {\n", name)
	for i, m := range methods {
		if i > 0 {
			buf.WriteString("\n")
		}
		variant := variantName(m.Name)
		if reply {
			writeDoc(buf, indent, fmt.Sprintf("Reply for the %s method.", m.Name))
		} else {
			writeDoc(buf, indent, m.Doc())
		}
		fmt.Fprintf(buf, "%s#[serde(rename = %s)]\n", indent, quote(m.Name))
		switch {
		case reply:
			fmt.Fprintf(buf, "%s%sReply(%s),\n", indent, variant, g.types.Field(*m.Result))
		case len(m.Params) > 0:
			fmt.Fprintf(buf, "%s%s(%s),\n", indent, variant, m.ParamsType())
		default:
			fmt.Fprintf(buf, "%s%s,\n", indent, variant)
		}
	}
	buf.WriteString("}\n")
}

// writeWireName renders an accessor returning the wire name of each variant
// of a request or event union.
func writeWireName(buf *bytes.Buffer, union, fn, doc string, methods []*generator.Method) {
	if len(methods) == 0 {
		return
	}
	buf.WriteString("\n")
	fmt.Fprintf(buf, "impl %s {\n", union)
	writeDoc(buf, indent, doc)
	fmt.Fprintf(buf, "%spub fn %s(&self) -> &'static str {\n", indent, fn)
	fmt.Fprintf(buf, "%s%smatch self {\n", indent, indent)
	for _, m := range methods {
		pattern := "Self::" + variantName(m.Name)
		if len(m.Params) > 0 {
			pattern += "(_)"
		}
		fmt.Fprintf(buf, "%s%s => %s,\n", strings.Repeat(indent, 3), pattern, quote(m.Name))
	}
	fmt.Fprintf(buf, "%s%s}\n", indent, indent)
	fmt.Fprintf(buf, "%s}\n", indent)
	buf.WriteString("}\n")
}

func (g *Codegen) writeClient(buf *bytes.Buffer) {
	client := g.name + "Client"
	writeDoc(buf, "", fmt.Sprintf("Client for the %s comm.", g.plan.Name))
	fmt.Fprintf(buf, "pub struct %s<T> {\n", client)
	fmt.Fprintf(buf, "%stransport: T,\n", indent)
	buf.WriteString("}\n\n")

	fmt.Fprintf(buf, "impl<T: %s> %s<T> {\n", traitName(g.config.TransportPath), client)
	fmt.Fprintf(buf, "%spub fn new(transport: T) -> Self {\n", indent)
	fmt.Fprintf(buf, "%s%sSelf { transport }\n", indent, indent)
	fmt.Fprintf(buf, "%s}\n", indent)

	for _, m := range g.plan.Backend {
		buf.WriteString("\n")
		g.writeCall(buf, m)
	}
	for _, m := range g.plan.Frontend {
		buf.WriteString("\n")
		writeDoc(buf, indent, m.Doc())
		payload := "()"
		if len(m.Params) > 0 {
			payload = m.ParamsType()
		}
		fmt.Fprintf(buf, "%spub fn on_%s(&self, handler: impl Fn(%s) + Send + 'static) {\n",
			indent, strings.TrimPrefix(fieldName(m.Name), "r#"), payload)
		fmt.Fprintf(buf, "%s%sself.transport.subscribe(%s, handler)\n", indent, indent, quote(m.Name))
		fmt.Fprintf(buf, "%s}\n", indent)
	}
	buf.WriteString("}\n")
}

func (g *Codegen) writeCall(buf *bytes.Buffer, m *generator.Method) {
	writeDoc(buf, indent, m.Doc())

	params := []string{"&self"}
	var idents []string
	for _, p := range m.Params {
		ident := fieldName(p.Name)
		typ := g.types.Field(p)
		if !p.Required {
			typ = "Option<" + typ + ">"
		}
		params = append(params, ident+": "+typ)
		idents = append(idents, ident)
	}

	result := "()"
	if m.Result != nil {
		result = g.types.Field(*m.Result)
	}

	args := "()"
	if len(idents) > 0 {
		args = fmt.Sprintf("%s { %s }", m.ParamsType(), strings.Join(idents, ", "))
	}

	fmt.Fprintf(buf, "%spub fn %s(%s) -> Result<%s, T::Error> {\n",
		indent, methodName(m.Name), strings.Join(params, ", "), result)
	fmt.Fprintf(buf, "%s%sself.transport.perform_rpc(%s, %s)\n", indent, indent, quote(m.Name), args)
	fmt.Fprintf(buf, "%s}\n", indent)
}

// quote renders s as a Rust string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

// writeDoc writes a /// doc comment. Empty docs are skipped.
func writeDoc(buf *bytes.Buffer, prefix, doc string) {
	if doc == "" {
		return
	}
	for line := range strings.SplitSeq(doc, "\n") {
		if line == "" {
			fmt.Fprintf(buf, "%s///\n", prefix)
			continue
		}
		fmt.Fprintf(buf, "%s/// %s\n", prefix, line)
	}
}
