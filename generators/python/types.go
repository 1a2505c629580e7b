// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package python

import (
	"strings"

	"github.com/albertocavalcante/commgen/internal/commbase"
)

// FileName returns the output file name for a Comm ("data-explorer" ->
// "data_explorer_comm.py").
func FileName(comm string) string {
	return commbase.FileStem(comm) + "_comm.py"
}

func commName(comm string) string {
	return commbase.ToPascal(commbase.FileStem(comm))
}

var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true, "elif": true,
	"else": true, "except": true, "finally": true, "for": true, "from": true,
	"global": true, "if": true, "import": true, "in": true, "is": true,
	"lambda": true, "nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true, "with": true,
	"yield": true,
}

// identifier escapes Python keywords with a trailing underscore.
func identifier(name string) string {
	if keywords[name] {
		return name + "_"
	}
	return name
}

// memberName converts an enum value to an enum member name.
func memberName(value string) string {
	return identifier(commbase.MemberName(value))
}

// quote renders s as a double-quoted Python string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}
