// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import (
	"errors"
	"strings"
)

// Sentinel causes carried by SchemaError.
var (
	ErrInvalidSchema      = errors.New("invalid schema")
	ErrMissingSchema      = errors.New("missing schema")
	ErrMissingDescription = errors.New("missing description")
	ErrUnresolvedRef      = errors.New("unresolved reference")
	ErrUnknownType        = errors.New("unknown type")
	ErrDuplicateName      = errors.New("duplicate name")
)

// SchemaError reports a contract that cannot be turned into bindings.
type SchemaError struct {
	// Comm is the Comm name, when known.
	Comm string

	// Path locates the offending node (e.g., "ping-backend-openrpc.json",
	// "method do_ping", "param value").
	Path string

	Err error
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	if e.Comm != "" {
		b.WriteString(e.Comm)
		b.WriteString(": ")
	}
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *SchemaError) Unwrap() error { return e.Err }
