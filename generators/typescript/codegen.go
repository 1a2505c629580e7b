// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package typescript generates TypeScript bindings for a Comm.
//
// The generated file contains:
//   - export interface declarations for objects and parameter records
//   - export enum declarations with string values
//   - request, reply and event interfaces joined in union types
//   - a client class extending the runtime BaseComm
package typescript

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/albertocavalcante/commgen/generator"
	"github.com/albertocavalcante/commgen/internal/commbase"
)

// Codegen generates TypeScript source from a Plan.
type Codegen struct {
	plan   *generator.Plan
	config Config
	types  *generator.Deriver
	name   string
}

// New creates a new TypeScript Codegen.
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
	g.writeImports(&buf)

	for _, a := range g.plan.Aliases {
		buf.WriteString("\n")
		writeDoc(&buf, "", a.Description)
		fmt.Fprintf(&buf, "export type %s = %s;\n", a.Name, g.types.Type(a.Ctx, a.Schema))
	}

	for _, o := range g.plan.Objects {
		buf.WriteString("\n")
		g.writeObject(&buf, o)
	}

	for _, e := range g.plan.Enums {
		buf.WriteString("\n")
		writeEnum(&buf, e)
	}

	for _, m := range g.plan.ParamRecords() {
		buf.WriteString("\n")
		writeDoc(&buf, "", fmt.Sprintf("Parameters for the %s method.", commbase.ToPascal(m.Name)))
		fmt.Fprintf(&buf, "export interface %s {\n", m.ParamsType())
		g.writeFields(&buf, m.Params)
		buf.WriteString("}\n")
	}

	if g.plan.HasBackend() {
		g.writeRequests(&buf)
		g.writeReplies(&buf)
	}
	if g.plan.HasFrontend() {
		g.writeEvents(&buf)
	}

	buf.WriteString("\n")
	g.writeClient(&buf)

	if err := g.types.Err(); err != nil {
		return nil, fmt.Errorf("typescript: %w", err)
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

func (g *Codegen) writeImports(buf *bytes.Buffer) {
	names := []string{"BaseComm"}
	if g.plan.HasFrontend() {
		names = append(names, "Event")
	}
	names = append(names, "IRuntimeClientInstance")
	fmt.Fprintf(buf, "import { %s } from %s;\n", strings.Join(names, ", "), quote(g.config.RuntimeModule))
}

func (g *Codegen) writeObject(buf *bytes.Buffer, o *generator.Object) {
	writeDoc(buf, "", o.Description)
	if o.IsAny() {
		fmt.Fprintf(buf, "export type %s = %s;\n", o.Name, Types.Any)
		return
	}
	fmt.Fprintf(buf, "export interface %s {\n", o.Name)
	g.writeFields(buf, o.Fields)
	buf.WriteString("}\n")
}

func (g *Codegen) writeFields(buf *bytes.Buffer, fields []generator.Field) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteString("\n")
		}
		writeDoc(buf, "\t", f.Description)
		optional := ""
		if !f.Required {
			optional = "?"
		}
		fmt.Fprintf(buf, "\t%s%s: %s;\n", propertyName(f.Name), optional, g.types.Field(f))
	}
}

func writeEnum(buf *bytes.Buffer, e *generator.Enum) {
	writeDoc(buf, "", e.Description)
	fmt.Fprintf(buf, "export enum %s {\n", e.Name)
	for i, v := range e.Values {
		sep := ","
		if i == len(e.Values)-1 {
			sep = ""
		}
		fmt.Fprintf(buf, "\t%s = %s%s\n", memberName(v), quote(v), sep)
	}
	buf.WriteString("}\n")
}

func (g *Codegen) writeRequests(buf *bytes.Buffer) {
	var variants []string
	for _, m := range g.plan.Backend {
		name := commbase.ToPascal(m.Name) + "Request"
		variants = append(variants, name)

		buf.WriteString("\n")
		writeDoc(buf, "", m.Doc())
		fmt.Fprintf(buf, "export interface %s {\n", name)
		fmt.Fprintf(buf, "\tmethod: %s;\n", quote(m.Name))
		if len(m.Params) > 0 {
			fmt.Fprintf(buf, "\tparams: %s;\n", m.ParamsType())
		}
		buf.WriteString("}\n")
	}

	buf.WriteString("\n")
	writeDoc(buf, "", fmt.Sprintf("Requests the frontend can send to the %s backend.", g.plan.Name))
	fmt.Fprintf(buf, "export type %sBackendRequest = %s;\n", g.name, union(variants))
}

func (g *Codegen) writeReplies(buf *bytes.Buffer) {
	replies := g.plan.Replies()
	if len(replies) == 0 {
		return
	}

	var variants []string
	for _, m := range replies {
		name := commbase.ToPascal(m.Name) + "Reply"
		variants = append(variants, name)

		buf.WriteString("\n")
		writeDoc(buf, "", fmt.Sprintf("Reply for the %s method.", m.Name))
		fmt.Fprintf(buf, "export interface %s {\n", name)
		fmt.Fprintf(buf, "\tmethod: %s;\n", quote(m.Name))
		fmt.Fprintf(buf, "\tresult: %s;\n", g.types.Field(*m.Result))
		buf.WriteString("}\n")
	}

	buf.WriteString("\n")
	writeDoc(buf, "", fmt.Sprintf("Replies the %s backend can send.", g.plan.Name))
	fmt.Fprintf(buf, "export type %sBackendReply = %s;\n", g.name, union(variants))
}

func (g *Codegen) writeEvents(buf *bytes.Buffer) {
	var variants []string
	for _, m := range g.plan.Frontend {
		name := commbase.ToPascal(m.Name) + "Event"
		variants = append(variants, name)

		buf.WriteString("\n")
		writeDoc(buf, "", m.Doc())
		fmt.Fprintf(buf, "export interface %s {\n", name)
		fmt.Fprintf(buf, "\tmethod: %s;\n", quote(m.Name))
		if len(m.Params) > 0 {
			fmt.Fprintf(buf, "\tparams: %s;\n", m.ParamsType())
		}
		buf.WriteString("}\n")
	}

	buf.WriteString("\n")
	writeDoc(buf, "", fmt.Sprintf("Events the %s backend can send to the frontend.", g.plan.Name))
	fmt.Fprintf(buf, "export type %sFrontendEvent = %s;\n", g.name, union(variants))
}

func (g *Codegen) writeClient(buf *bytes.Buffer) {
	writeDoc(buf, "", fmt.Sprintf("Client for the %s comm.", g.plan.Name))
	fmt.Fprintf(buf, "export class %sComm extends BaseComm {\n", g.name)

	for _, m := range g.plan.Frontend {
		writeDoc(buf, "\t", m.Doc())
		fmt.Fprintf(buf, "\t%s: Event<%s>;\n\n", eventName(m), eventPayload(m))
	}

	buf.WriteString("\tconstructor(instance: IRuntimeClientInstance<any, any>) {\n")
	buf.WriteString("\t\tsuper(instance);\n")
	for _, m := range g.plan.Frontend {
		fmt.Fprintf(buf, "\t\tthis.%s = super.createEventEmitter(%s, [%s]);\n",
			eventName(m), quote(m.Name), wireNames(m.Params))
	}
	buf.WriteString("\t}\n")

	for _, m := range g.plan.Backend {
		buf.WriteString("\n")
		g.writeCall(buf, m)
	}
	buf.WriteString("}\n")
}

func (g *Codegen) writeCall(buf *bytes.Buffer, m *generator.Method) {
	writeDoc(buf, "\t", callDoc(m))

	var params, values []string
	for i, p := range m.Params {
		typ := g.types.Field(p)
		id := paramName(p.Name)
		values = append(values, id)
		switch {
		case p.Required:
			params = append(params, id+": "+typ)
		case trailingOptional(m.Params[i:]):
			params = append(params, id+"?: "+typ)
		default:
			params = append(params, id+": "+typ+" | undefined")
		}
	}

	result := "void"
	if m.Result != nil {
		result = g.types.Field(*m.Result)
	}

	fmt.Fprintf(buf, "\t%s(%s): Promise<%s> {\n", commbase.ToCamel(m.Name), strings.Join(params, ", "), result)
	fmt.Fprintf(buf, "\t\treturn super.performRpc(%s, [%s], [%s]);\n", quote(m.Name), wireNames(m.Params), strings.Join(values, ", "))
	buf.WriteString("\t}\n")
}

// callDoc documents a client call with its parameters and result.
func callDoc(m *generator.Method) string {
	var b strings.Builder
	b.WriteString(m.Doc())
	if len(m.Params) > 0 {
		b.WriteString("\n")
		for _, p := range m.Params {
			fmt.Fprintf(&b, "\n@param %s %s", paramName(p.Name), p.Description)
		}
	}
	if m.Result != nil && m.Result.Description != "" {
		b.WriteString("\n\n@returns " + m.Result.Description)
	}
	return b.String()
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

func eventName(m *generator.Method) string {
	return "onDid" + commbase.ToPascal(m.Name)
}

func eventPayload(m *generator.Method) string {
	if len(m.Params) == 0 {
		return "void"
	}
	return m.ParamsType()
}

func wireNames(fields []generator.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = quote(f.Name)
	}
	return strings.Join(names, ", ")
}

func union(variants []string) string {
	if len(variants) == 0 {
		return "never"
	}
	return strings.Join(variants, " | ")
}

// writeDoc writes a JSDoc comment. Empty docs are skipped.
func writeDoc(buf *bytes.Buffer, indent, doc string) {
	if doc == "" {
		return
	}
	fmt.Fprintf(buf, "%s/**\n", indent)
	for line := range strings.SplitSeq(doc, "\n") {
		if line == "" {
			fmt.Fprintf(buf, "%s *\n", indent)
			continue
		}
		fmt.Fprintf(buf, "%s * %s\n", indent, line)
	}
	fmt.Fprintf(buf, "%s */\n", indent)
}
