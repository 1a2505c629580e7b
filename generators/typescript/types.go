// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package typescript

import (
	"strings"

	"github.com/albertocavalcante/commgen/internal/commbase"
)

// FileName returns the output file name for a Comm ("data_explorer" ->
// "dataExplorerComm.ts").
func FileName(comm string) string {
	return commbase.ToCamel(commbase.FileStem(comm)) + "Comm.ts"
}

// commName returns the PascalCase prefix of the Comm's declarations.
func commName(comm string) string {
	return commbase.ToPascal(commbase.FileStem(comm))
}

// reserved lists the words that cannot name a parameter.
var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "let": true, "static": true, "yield": true,
	"await": true,
}

// paramName converts a wire parameter name to a TypeScript identifier.
func paramName(name string) string {
	id := commbase.ToCamel(name)
	if reserved[id] {
		return id + "_"
	}
	return id
}

// memberName converts an enum value to an enum member name.
func memberName(value string) string {
	return commbase.MemberName(value)
}

// quote renders s as a single-quoted string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}

// propertyName renders a wire name as an interface property key.
func propertyName(name string) string {
	if isIdentifier(name) {
		return name
	}
	return quote(name)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
