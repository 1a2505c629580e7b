// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package commbase

import (
	"strings"
	"unicode"
)

// comparisons spells out operator characters that may appear in enum
// values so that they survive identifier synthesis.
var comparisons = strings.NewReplacer(
	"=", "Eq",
	"!", "Not",
	"<", "Lt",
	">", "Gt",
)

// ToCamel converts a snake_case name to camelCase.
// Comparison characters are replaced first (e.g., "!=" -> "NotEq").
func ToCamel(name string) string {
	name = comparisons.Replace(name)

	var result strings.Builder
	result.Grow(len(name))
	upperNext := false
	for _, r := range name {
		if r == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			result.WriteRune(unicode.ToUpper(r))
			upperNext = false
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ToPascal converts a snake_case name to PascalCase.
//
// ToPascal(x) always equals Capitalize(ToCamel(x)).
func ToPascal(name string) string {
	return Capitalize(ToCamel(name))
}

// Capitalize returns name with the first letter uppercased.
// Returns empty string for empty input.
func Capitalize(name string) string {
	if name == "" {
		return ""
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// CamelToSnake converts a camelCase name to snake_case.
// Names that are already snake_case are returned unchanged and fully
// uppercase names (like "URI") are lowered as a single word.
func CamelToSnake(name string) string {
	allUpper := true
	for _, r := range name {
		if !unicode.IsUpper(r) && unicode.IsLetter(r) {
			allUpper = false
			break
		}
	}
	if allUpper {
		return strings.ToLower(name)
	}

	var result strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 && !strings.HasSuffix(result.String(), "_") {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// FileStem turns a Comm name into a snake_case file stem
// ("data-explorer" -> "data_explorer").
func FileStem(name string) string {
	return strings.ReplaceAll(CamelToSnake(name), "-", "_")
}

// MemberName turns an enum value into a PascalCase identifier. Comparison
// characters are spelled out, other runes that cannot appear in an
// identifier split words, and a leading digit gets a "V" prefix
// ("1d" -> "V1d", "ends-with" -> "EndsWith", "<=" -> "LtEq").
func MemberName(value string) string {
	words := strings.FieldsFunc(comparisons.Replace(value), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, w := range words {
		b.WriteString(Capitalize(w))
	}
	name := b.String()
	switch {
	case name == "":
		return "Empty"
	case unicode.IsDigit([]rune(name)[0]):
		return "V" + name
	}
	return name
}
