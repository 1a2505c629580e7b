// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package typescript

import "github.com/albertocavalcante/commgen/generator"

// DefaultRuntimeModule is the module the generated file imports BaseComm,
// Event and IRuntimeClientInstance from.
const DefaultRuntimeModule = "./comm"

// Config holds configuration for TypeScript generation.
type Config struct {
	// RuntimeModule is the import path of the comm runtime.
	RuntimeModule string

	// Source names the contract documents (for the header comment).
	Source string
}

// Types maps the primitive vocabulary to TypeScript.
var Types = generator.TypeTable{
	Boolean:    "boolean",
	Integer:    "number",
	Number:     "number",
	String:     "string",
	Null:       "null",
	ArrayOpen:  "Array<",
	ArrayClose: ">",
	Any:        "any",
}
