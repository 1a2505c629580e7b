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

// TypeTable holds the literal type tokens of one target language.
type TypeTable struct {
	Boolean string
	Integer string
	Number  string
	String  string
	Null    string

	// ArrayOpen and ArrayClose wrap the element type of an array.
	ArrayOpen  string
	ArrayClose string

	// Any is the native arbitrary JSON value type.
	Any string
}

// primitive returns the token for a name accepted by [commbase.IsPrimitive].
func (t TypeTable) primitive(kind string) string {
	switch kind {
	case commbase.TypeBoolean:
		return t.Boolean
	case commbase.TypeInteger:
		return t.Integer
	case commbase.TypeNumber:
		return t.Number
	case commbase.TypeNull:
		return t.Null
	}
	return t.String
}

// checkTable is used by [NewPlan] to surface derivation errors before any
// target renders.
var checkTable = TypeTable{
	Boolean:    commbase.TypeBoolean,
	Integer:    commbase.TypeInteger,
	Number:     commbase.TypeNumber,
	String:     commbase.TypeString,
	Null:       commbase.TypeNull,
	ArrayOpen:  "[",
	ArrayClose: "]",
	Any:        "any",
}

// DeriveType maps a schema to a type expression of the target described by
// table. ctx is the naming context of s.
func DeriveType(r *Resolver, table TypeTable, ctx Context, s *model.Schema) (string, error) {
	switch s.Kind {
	case model.KindArray:
		inner, err := DeriveType(r, table, ctx, s.Items)
		if err != nil {
			return "", err
		}
		return table.ArrayOpen + inner + table.ArrayClose, nil
	case model.KindRef:
		return r.Resolve(s.Ref)
	case model.KindObject:
		return ObjectName(ctx, s), nil
	case model.KindEnum:
		return EnumName(ctx, s), nil
	default:
		if !commbase.IsPrimitive(s.Type) {
			return "", fmt.Errorf("%w: %q", model.ErrUnknownType, s.Type)
		}
		return table.primitive(s.Type), nil
	}
}

// ObjectName returns the identifier of an object node: its explicit name,
// or the innermost context entry.
func ObjectName(ctx Context, s *model.Schema) string {
	if s.Name != "" {
		return commbase.ToPascal(s.Name)
	}
	return commbase.ToPascal(ctx.Key())
}

// EnumName returns the identifier of an enum node: its explicit name, or
// the owner followed by the field name (e.g., SetMode + Mode).
func EnumName(ctx Context, s *model.Schema) string {
	if s.Name != "" {
		return commbase.ToPascal(s.Name)
	}
	return commbase.ToPascal(ctx.Owner()) + commbase.ToPascal(ctx.Key())
}

// Deriver renders type expressions for one target. The first error is
// kept and reported by Err; later calls return "".
type Deriver struct {
	res   *Resolver
	table TypeTable
	err   error
}

// Type derives the type expression of s in ctx.
func (d *Deriver) Type(ctx Context, s *model.Schema) string {
	if d.err != nil {
		return ""
	}
	t, err := DeriveType(d.res, d.table, ctx, s)
	if err != nil {
		d.err = fmt.Errorf("%s: %w", ctx, err)
		return ""
	}
	return t
}

// Field derives the type expression of f.
func (d *Deriver) Field(f Field) string {
	return d.Type(f.Ctx, f.Schema)
}

// Table returns the target type table.
func (d *Deriver) Table() TypeTable { return d.table }

// Err returns the first derivation error.
func (d *Deriver) Err() error { return d.err }
