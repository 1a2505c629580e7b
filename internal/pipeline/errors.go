// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package pipeline

import "fmt"

// PreconditionError reports an environment problem found before any Comm
// was processed: a required output directory or the formatter is missing.
type PreconditionError struct {
	Reason string
	Err    error
}

func (e *PreconditionError) Error() string {
	if e.Err == nil {
		return "precondition failed: " + e.Reason
	}
	return fmt.Sprintf("precondition failed: %s: %v", e.Reason, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// IOError reports a document that could not be read, an output that could
// not be written, or a formatter run that failed.
type IOError struct {
	Comm string
	Op   string // "discover", "read", "write" or "format"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	msg := e.Op
	if e.Comm != "" {
		msg = e.Comm + ": " + msg
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	return msg + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }
