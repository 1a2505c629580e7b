// SPDX-License-Identifier: MIT

package testutil

import (
	"context"
	"testing"

	"github.com/albertocavalcante/commgen/generator"
	"github.com/albertocavalcante/commgen/model"
)

// DemoBackend exercises enums, optional parameters, aliases, nested arrays,
// the any type, paramless methods and a camelCase wire name.
const DemoBackend = `{
  "openrpc": "1.3.0",
  "info": {"title": "Demo Backend", "version": "1.0.0"},
  "methods": [
    {
      "name": "set_mode",
      "summary": "Set the mode",
      "params": [
        {"name": "mode", "description": "The new mode", "required": true, "schema": {"type": "string", "enum": ["a", "b"]}},
        {"name": "reason", "description": "Why the mode changed", "schema": {"type": "string"}}
      ]
    },
    {
      "name": "get_table",
      "summary": "Get the table",
      "description": "Returns every row.",
      "params": [
        {"name": "row_index", "description": "First row", "schema": {"$ref": "#/components/schemas/row_index"}},
        {"name": "columns", "description": "Columns to fetch", "required": true, "schema": {"type": "array", "items": {"$ref": "#/components/schemas/column_schema"}}}
      ],
      "result": {"description": "The table", "schema": {"$ref": "#/components/schemas/table_data"}}
    },
    {
      "name": "reset",
      "summary": "Reset the state"
    }
  ],
  "components": {
    "schemas": {
      "row_index": {"type": "integer", "description": "A row index"},
      "column_schema": {
        "type": "object",
        "description": "A column",
        "required": ["name", "type"],
        "properties": {
          "name": {"type": "string", "description": "Column name"},
          "type": {"type": "string", "description": "Column type", "enum": ["number", "string", "true"]},
          "displayName": {"type": "string", "description": "Display name"}
        }
      },
      "table_data": {
        "type": "object",
        "description": "Table data",
        "required": ["values"],
        "properties": {
          "values": {"type": "array", "description": "Cell values", "items": {"type": "array", "items": {"type": "string"}}},
          "extra": {"type": "object", "description": "Extra metadata"}
        }
      }
    }
  }
}`

// DemoFrontend has a paramless event and an event whose parameter refers
// to a schema declared in DemoBackend.
const DemoFrontend = `{
  "openrpc": "1.3.0",
  "info": {"title": "Demo Frontend", "version": "1.0.0"},
  "methods": [
    {"name": "updated", "summary": "The table was updated"},
    {
      "name": "selection_changed",
      "summary": "The selection changed",
      "params": [
        {"name": "row_index", "description": "The selected row", "required": true, "schema": {"$ref": "#/components/schemas/row_index"}}
      ]
    }
  ]
}`

// MustComm parses the documents into a Comm. Empty documents are left nil.
func MustComm(t testing.TB, name, backend, frontend string) *model.Comm {
	t.Helper()
	c := &model.Comm{Name: name}
	if backend != "" {
		ct, err := model.Parse([]byte(backend), model.Backend, name+"-backend-openrpc.json")
		if err != nil {
			t.Fatalf("parse backend: %v", err)
		}
		c.Backend = ct
	}
	if frontend != "" {
		ct, err := model.Parse([]byte(frontend), model.Frontend, name+"-frontend-openrpc.json")
		if err != nil {
			t.Fatalf("parse frontend: %v", err)
		}
		c.Frontend = ct
	}
	return c
}

// MustPlan parses the documents and builds their Plan.
func MustPlan(t testing.TB, name, backend, frontend string) *generator.Plan {
	t.Helper()
	p, err := generator.NewPlan(MustComm(t, name, backend, frontend))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	return p
}

// Generate runs g over comm with the documents as the header source.
func Generate(g generator.Generator, comm *model.Comm, options map[string]string) (map[string][]byte, error) {
	p, err := generator.NewPlan(comm)
	if err != nil {
		return nil, err
	}
	out, err := g.Generate(context.Background(), p, generator.Config{Source: p.Source(), Options: options})
	if err != nil {
		return nil, err
	}
	return out.Files, nil
}
