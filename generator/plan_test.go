// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/albertocavalcante/commgen/model"
)

func TestNewPlanPing(t *testing.T) {
	p, err := NewPlan(mustComm(t, "ping", pingBackend, ""))
	if err != nil {
		t.Fatalf("NewPlan() error = %v", err)
	}

	if p.HasFrontend() || !p.HasBackend() {
		t.Errorf("HasBackend/HasFrontend = %v/%v", p.HasBackend(), p.HasFrontend())
	}
	if len(p.Objects) != 1 || p.Objects[0].Name != "PingReply" {
		t.Fatalf("Objects = %+v, want [PingReply]", p.Objects)
	}
	reply := p.Objects[0]
	if len(reply.Fields) != 1 || reply.Fields[0].Name != "message" || !reply.Fields[0].Required {
		t.Errorf("PingReply fields = %+v, want one required message", reply.Fields)
	}

	records := p.ParamRecords()
	if len(records) != 1 || records[0].ParamsType() != "DoPingParams" {
		t.Fatalf("ParamRecords = %+v, want [DoPingParams]", records)
	}
	if f := records[0].Params[0]; f.Name != "value" || !f.Required {
		t.Errorf("param = %+v, want required value", f)
	}

	replies := p.Replies()
	if len(replies) != 1 {
		t.Fatalf("Replies = %d, want 1", len(replies))
	}
	d := p.Deriver(rustLike)
	if got := d.Field(*replies[0].Result); got != "PingReply" {
		t.Errorf("result type = %q, want PingReply", got)
	}
	if len(p.Frontend) != 0 || len(p.Enums) != 0 {
		t.Errorf("unexpected frontend methods or enums: %+v %+v", p.Frontend, p.Enums)
	}
}

func TestNewPlanEnum(t *testing.T) {
	p, err := NewPlan(mustComm(t, "mode", modeBackend, ""))
	if err != nil {
		t.Fatalf("NewPlan() error = %v", err)
	}

	want := []*Enum{{
		Name:        "SetModeMode",
		Description: "Possible values for Mode in SetMode",
		Values:      []string{"a", "b"},
	}}
	if diff := cmp.Diff(want, p.Enums); diff != "" {
		t.Errorf("Enums mismatch (-want +got):\n%s", diff)
	}
	if got := p.Deriver(rustLike).Field(p.Backend[0].Params[0]); got != "SetModeMode" {
		t.Errorf("param type = %q, want SetModeMode", got)
	}
}

func TestNewPlanAliasesAndOrder(t *testing.T) {
	backend := `{
		"methods": [],
		"components": {"schemas": {
			"row_index": {"type": "integer", "description": "A row"},
			"labels": {"type": "array", "items": {"type": "string"}},
			"point": {"type": "object", "description": "Point", "properties": {"x": {"type": "number", "description": "X"}}}
		}}
	}`
	frontend := `{
		"methods": [
			{"name": "moved", "summary": "Moved", "params": [
				{"name": "to", "description": "Target", "schema": {"$ref": "#/components/schemas/point"}}
			]}
		],
		"components": {"schemas": {
			"point": {"type": "object", "description": "Point again", "properties": {"x": {"type": "number", "description": "X"}}},
			"extra": {"type": "object", "description": "Extra", "properties": {}}
		}}
	}`

	p, err := NewPlan(mustComm(t, "geo", backend, frontend))
	if err != nil {
		t.Fatalf("NewPlan() error = %v", err)
	}

	var aliases, objects []string
	for _, a := range p.Aliases {
		aliases = append(aliases, a.Name)
	}
	for _, o := range p.Objects {
		objects = append(objects, o.Name)
	}
	if diff := cmp.Diff([]string{"RowIndex", "Labels"}, aliases); diff != "" {
		t.Errorf("Aliases mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Point", "Extra"}, objects); diff != "" {
		t.Errorf("Objects mismatch (-want +got):\n%s", diff)
	}
	if p.Objects[0].Description != "Point" {
		t.Errorf("Point description = %q, backend declaration should win", p.Objects[0].Description)
	}
	if !p.Objects[1].IsAny() {
		t.Error("Extra should be the any type")
	}
	if len(p.Frontend) != 1 || p.Frontend[0].Direction != model.Frontend {
		t.Errorf("Frontend = %+v", p.Frontend)
	}
	if got := p.Deriver(rustLike).Field(p.Frontend[0].Params[0]); got != "Point" {
		t.Errorf("param type = %q, want Point", got)
	}
}

func TestNewPlanErrors(t *testing.T) {
	tests := []struct {
		name     string
		backend  string
		want     error
		wantPath string
	}{
		{
			name:     "method without summary",
			backend:  `{"methods": [{"name": "a", "summary": ""}]}`,
			want:     model.ErrMissingDescription,
			wantPath: "method a",
		},
		{
			name:     "param without description",
			backend:  `{"methods": [{"name": "a", "summary": "s", "params": [{"name": "p", "schema": {"type": "string"}}]}]}`,
			want:     model.ErrMissingDescription,
			wantPath: "param p",
		},
		{
			name:     "object without description",
			backend:  `{"methods": [{"name": "a", "summary": "s", "result": {"schema": {"type": "object", "properties": {}}}}]}`,
			want:     model.ErrMissingDescription,
			wantPath: "object a",
		},
		{
			name:     "property without description",
			backend:  `{"methods": [{"name": "a", "summary": "s", "result": {"description": "r", "schema": {"type": "object", "properties": {"x": {"type": "string"}}}}}]}`,
			want:     model.ErrMissingDescription,
			wantPath: "property x",
		},
		{
			name:     "unresolved ref",
			backend:  `{"methods": [{"name": "a", "summary": "s", "params": [{"name": "p", "description": "d", "schema": {"$ref": "#/components/schemas/nope"}}]}]}`,
			want:     model.ErrUnresolvedRef,
			wantPath: "param p",
		},
		{
			name:     "unknown type",
			backend:  `{"methods": [{"name": "a", "summary": "s", "params": [{"name": "p", "description": "d", "schema": {"type": "date"}}]}]}`,
			want:     model.ErrUnknownType,
			wantPath: "param p",
		},
		{
			name: "name collision with different shape",
			backend: `{"methods": [
				{"name": "a", "summary": "s", "result": {"description": "r", "schema": {"type": "object", "name": "thing", "properties": {"x": {"type": "string", "description": "x"}}}}},
				{"name": "b", "summary": "s", "result": {"description": "r", "schema": {"type": "object", "name": "thing", "properties": {"y": {"type": "string", "description": "y"}}}}}
			]}`,
			want:     model.ErrDuplicateName,
			wantPath: "object b",
		},
		{
			name: "params record collision",
			backend: `{"methods": [
				{"name": "a", "summary": "s", "params": [{"name": "p", "description": "d", "schema": {"type": "string"}}],
				 "result": {"description": "r", "schema": {"type": "object", "name": "a_params", "properties": {}}}}
			]}`,
			want:     model.ErrDuplicateName,
			wantPath: "method a",
		},
		{
			name:     "enum members collide",
			backend:  `{"methods": [{"name": "a", "summary": "s", "params": [{"name": "p", "description": "d", "schema": {"type": "string", "enum": ["ends-with", "ends_with"]}}]}]}`,
			want:     model.ErrDuplicateName,
			wantPath: "enum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlan(mustComm(t, "bad", tt.backend, ""))
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewPlan() error = %v, want %v", err, tt.want)
			}
			var se *model.SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("NewPlan() error = %T, want *model.SchemaError", err)
			}
			if se.Comm != "bad" {
				t.Errorf("SchemaError.Comm = %q, want bad", se.Comm)
			}
			if !strings.Contains(se.Path, tt.wantPath) {
				t.Errorf("SchemaError.Path = %q, want it to contain %q", se.Path, tt.wantPath)
			}
		})
	}
}

func TestNewPlanSameShapeDeduplicates(t *testing.T) {
	backend := `{"methods": [
		{"name": "a", "summary": "s", "result": {"description": "first", "schema": {"type": "object", "name": "thing", "properties": {"x": {"type": "string", "description": "x"}}}}},
		{"name": "b", "summary": "s", "result": {"description": "second", "schema": {"type": "object", "name": "thing", "properties": {"x": {"type": "string", "description": "x"}}}}}
	]}`

	p, err := NewPlan(mustComm(t, "dup", backend, ""))
	if err != nil {
		t.Fatalf("NewPlan() error = %v", err)
	}
	if len(p.Objects) != 1 || p.Objects[0].Description != "first" {
		t.Errorf("Objects = %+v, want one Thing described as first", p.Objects)
	}
}

func TestNewPlanNoContracts(t *testing.T) {
	_, err := NewPlan(&model.Comm{Name: "empty"})
	if !errors.Is(err, model.ErrMissingSchema) {
		t.Errorf("NewPlan() error = %v, want ErrMissingSchema", err)
	}
}

func TestMethodDoc(t *testing.T) {
	m := &Method{Summary: "Short"}
	if got := m.Doc(); got != "Short" {
		t.Errorf("Doc() = %q", got)
	}
	m.Description = "Longer text"
	if got := m.Doc(); got != "Short\n\nLonger text" {
		t.Errorf("Doc() = %q", got)
	}
}
