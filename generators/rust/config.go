// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package rust

import "github.com/albertocavalcante/commgen/generator"

// DefaultTransportPath is the path of the trait the generated client is
// generic over.
const DefaultTransportPath = "crate::comm::CommTransport"

// Config holds configuration for Rust generation.
type Config struct {
	// TransportPath is the use path of the CommTransport trait.
	TransportPath string

	// Source names the contract documents (for the header comment).
	Source string
}

// Types maps the primitive vocabulary to Rust.
var Types = generator.TypeTable{
	Boolean:    "bool",
	Integer:    "i64",
	Number:     "f64",
	String:     "String",
	Null:       "()",
	ArrayOpen:  "Vec<",
	ArrayClose: ">",
	Any:        "serde_json::Value",
}
