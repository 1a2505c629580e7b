// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package model defines the data structures for parsing Comm contract
// documents.
//
// A Comm is described by up to two OpenRPC documents: one listing the
// methods the backend kernel exposes to the frontend, and one listing the
// events and requests the frontend exposes to the backend. Schema nodes are
// classified into a closed set of kinds while decoding so that later passes
// never inspect raw JSON keys.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/albertocavalcante/commgen/internal/commbase"
)

// Direction identifies which side of a Comm a contract describes.
type Direction string

const (
	// Frontend contracts describe methods initiated by the backend and
	// handled by the frontend (events).
	Frontend Direction = "frontend"

	// Backend contracts describe methods the frontend calls on the backend.
	Backend Direction = "backend"
)

// Comm pairs the frontend and backend contracts that share a name.
// At least one of the two is non-nil.
type Comm struct {
	// Name is the logical Comm name (e.g., "ping", "data_explorer").
	Name string

	Frontend *Contract
	Backend  *Contract
}

// Contracts returns the loaded contracts, backend first.
func (c *Comm) Contracts() []*Contract {
	var out []*Contract
	if c.Backend != nil {
		out = append(out, c.Backend)
	}
	if c.Frontend != nil {
		out = append(out, c.Frontend)
	}
	return out
}

// Sources returns the document names of the loaded contracts, backend first.
func (c *Comm) Sources() []string {
	var out []string
	for _, ct := range c.Contracts() {
		out = append(out, ct.Source)
	}
	return out
}

// Contract is one parsed interface-direction document.
type Contract struct {
	// OpenRPC is the declared OpenRPC version.
	OpenRPC string `json:"openrpc,omitempty"`

	// Info carries the document title and version.
	Info Info `json:"info"`

	// Methods lists the methods in declaration order.
	Methods []*Method `json:"methods"`

	// Components holds shared named schemas.
	Components Components `json:"components"`

	// Direction is derived from the document file name, not its content.
	Direction Direction `json:"-"`

	// Source is the document base name (for headers and diagnostics).
	Source string `json:"-"`

	// raw is the untyped document, used to walk $ref pointers.
	raw map[string]any
}

// Info is the OpenRPC info object.
type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// Components holds shared schema definitions.
type Components struct {
	// Schemas maps names to schemas, in declaration order.
	Schemas Properties `json:"schemas,omitempty"`
}

// Method is one RPC method or event.
type Method struct {
	// Name is the snake_case wire name, unique within its contract.
	Name string `json:"name"`

	// Summary is the required one-line description.
	Summary string `json:"summary"`

	// Description is an optional longer description.
	Description string `json:"description,omitempty"`

	// Params lists the parameters in declaration order.
	Params []*Param `json:"params"`

	// Result is nil for methods that return nothing.
	Result *Result `json:"result,omitempty"`
}

// Param is one method parameter (an OpenRPC content descriptor).
type Param struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Required    bool    `json:"required,omitempty"`
	Schema      *Schema `json:"schema"`
}

// Result describes a method's return value.
type Result struct {
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Schema      *Schema `json:"schema"`
}

// Kind classifies a schema node.
type Kind int

const (
	KindPrimitive Kind = iota
	KindArray
	KindObject
	KindEnum
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindEnum:
		return "enum"
	case KindRef:
		return "ref"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Schema is a classified schema node.
//
// The Kind field determines which other fields are relevant:
//   - KindPrimitive: Type holds the primitive name (possibly unrecognized)
//   - KindArray: Items holds the element schema
//   - KindObject: Name, Properties, Required and AdditionalProperties
//   - KindEnum: Values holds the allowed strings in declaration order
//   - KindRef: Ref holds the "#/..." pointer
//
// Description may be set on any kind.
type Schema struct {
	Kind                 Kind
	Type                 string
	Name                 string
	Description          string
	Items                *Schema
	Properties           Properties
	Required             []string
	AdditionalProperties bool
	Values               []string
	Ref                  string
}

// IsRequired reports whether the named property is listed in Required.
func (s *Schema) IsRequired(name string) bool {
	return slices.Contains(s.Required, name)
}

// IsAny reports whether the schema is the unconstrained object: no declared
// properties and open additional properties.
func (s *Schema) IsAny() bool {
	return s.Kind == KindObject && len(s.Properties) == 0 && s.AdditionalProperties
}

// UnmarshalJSON decodes and classifies a schema node.
// Classification order: $ref, enum, array, object, primitive.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var raw struct {
		Ref                  string          `json:"$ref"`
		Type                 any             `json:"type"`
		Name                 string          `json:"name"`
		Description          string          `json:"description"`
		Enum                 []any           `json:"enum"`
		Items                *Schema         `json:"items"`
		Properties           Properties      `json:"properties"`
		Required             []string        `json:"required"`
		AdditionalProperties json.RawMessage `json:"additionalProperties"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	typ, ok := raw.Type.(string)
	if raw.Type != nil && !ok {
		return fmt.Errorf("%w: type must be a string, got %v", ErrInvalidSchema, raw.Type)
	}

	*s = Schema{
		Name:        raw.Name,
		Description: raw.Description,
		Type:        typ,
	}

	switch {
	case raw.Ref != "":
		s.Kind = KindRef
		s.Ref = raw.Ref

	case raw.Enum != nil:
		s.Kind = KindEnum
		for _, v := range raw.Enum {
			str, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w: enum value %v is not a string", ErrInvalidSchema, v)
			}
			s.Values = append(s.Values, str)
		}

	case typ == commbase.TypeArray:
		if raw.Items == nil {
			return fmt.Errorf("%w: array schema has no items", ErrInvalidSchema)
		}
		s.Kind = KindArray
		s.Items = raw.Items

	case typ == commbase.TypeObject:
		s.Kind = KindObject
		s.Properties = raw.Properties
		s.Required = raw.Required
		open, err := additionalPropertiesOpen(raw.AdditionalProperties)
		if err != nil {
			return err
		}
		s.AdditionalProperties = open

	default:
		s.Kind = KindPrimitive
	}

	return nil
}

// additionalPropertiesOpen interprets "additionalProperties". Absent, true
// and schema-valued forms are open; only an explicit false closes the object.
func additionalPropertiesOpen(data json.RawMessage) (bool, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return true, nil
	}
	if data[0] == '{' {
		return true, nil
	}
	var open bool
	if err := json.Unmarshal(data, &open); err != nil {
		return false, fmt.Errorf("%w: additionalProperties: %v", ErrInvalidSchema, err)
	}
	return open, nil
}

// Property is a named schema in declaration order.
type Property struct {
	Name   string
	Schema *Schema
}

// Properties is an ordered name-to-schema mapping.
type Properties []Property

// Get returns the schema for name, or nil.
func (p Properties) Get(name string) *Schema {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Schema
		}
	}
	return nil
}

// UnmarshalJSON decodes a JSON object of schemas, keeping key order.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: expected an object of schemas", ErrInvalidSchema)
	}

	var out Properties
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: unexpected token %v", ErrInvalidSchema, tok)
		}
		if seen[key] {
			return fmt.Errorf("%w: duplicate key %q", ErrInvalidSchema, key)
		}
		seen[key] = true

		var s Schema
		if err := dec.Decode(&s); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, Property{Name: key, Schema: &s})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*p = out
	return nil
}
