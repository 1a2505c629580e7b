// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package commbase provides the primitive type vocabulary and the name
// transformations shared by every commgen target.
package commbase

// Primitive schema type names.
const (
	TypeBoolean = "boolean"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeString  = "string"
	TypeNull    = "null"
)

// Structural schema type names.
const (
	TypeArray  = "array"
	TypeObject = "object"
)

// primitives is the set of all recognized primitive type names.
var primitives = map[string]bool{
	TypeBoolean: true,
	TypeInteger: true,
	TypeNumber:  true,
	TypeString:  true,
	TypeNull:    true,
}

// IsPrimitive reports whether name is a recognized primitive type.
func IsPrimitive(name string) bool {
	return primitives[name]
}
