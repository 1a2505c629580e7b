// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package python

import "github.com/albertocavalcante/commgen/generator"

// DefaultRuntimeModule is the module BaseComm is imported from.
const DefaultRuntimeModule = ".base_comm"

// Config holds configuration for Python generation.
type Config struct {
	// RuntimeModule is the module path of the comm runtime.
	RuntimeModule string

	// Source names the contract documents (for the header comment).
	Source string
}

// Types maps the primitive vocabulary to Python type hints.
var Types = generator.TypeTable{
	Boolean:    "bool",
	Integer:    "int",
	Number:     "float",
	String:     "str",
	Null:       "None",
	ArrayOpen:  "List[",
	ArrayClose: "]",
	Any:        "Dict[str, Any]",
}
