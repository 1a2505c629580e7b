// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package rust

import (
	"path"
	"strings"

	"github.com/albertocavalcante/commgen/internal/commbase"
)

// FileName returns the output file name for a Comm ("data-explorer" ->
// "data_explorer_comm.rs").
func FileName(comm string) string {
	return commbase.FileStem(comm) + "_comm.rs"
}

func commName(comm string) string {
	return commbase.ToPascal(commbase.FileStem(comm))
}

// keywords can be used as raw identifiers (r#type).
var keywords = map[string]bool{
	"abstract": true, "as": true, "async": true, "await": true, "become": true,
	"box": true, "break": true, "const": true, "continue": true, "do": true,
	"dyn": true, "else": true, "enum": true, "extern": true, "false": true,
	"final": true, "fn": true, "for": true, "if": true, "impl": true,
	"in": true, "let": true, "loop": true, "macro": true, "match": true,
	"mod": true, "move": true, "mut": true, "override": true, "priv": true,
	"pub": true, "ref": true, "return": true, "static": true, "struct": true,
	"trait": true, "true": true, "try": true, "type": true, "typeof": true,
	"unsafe": true, "unsized": true, "use": true, "virtual": true,
	"where": true, "while": true, "yield": true,
}

// pathKeywords cannot be raw identifiers.
var pathKeywords = map[string]bool{
	"self": true, "Self": true, "super": true, "crate": true,
}

// fieldName converts a wire name to a snake_case field identifier.
func fieldName(name string) string {
	id := commbase.CamelToSnake(name)
	switch {
	case pathKeywords[id]:
		return id + "_"
	case keywords[id]:
		return "r#" + id
	}
	return id
}

// needsRename reports whether serde must be told the wire name of a field.
func needsRename(ident, wire string) bool {
	return strings.TrimPrefix(ident, "r#") != wire
}

// methodName returns the client method for a backend method. The
// constructor owns "new".
func methodName(name string) string {
	if id := fieldName(name); id != "new" {
		return id
	}
	return "new_"
}

// variantName converts an enum value or method name to a variant name.
func variantName(name string) string {
	id := commbase.MemberName(name)
	if pathKeywords[id] {
		return id + "_"
	}
	return id
}

// traitName returns the last segment of a use path.
func traitName(usePath string) string {
	return path.Base(strings.ReplaceAll(usePath, "::", "/"))
}
