// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package format runs an external source formatter over generated files.
package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotFound is returned by Check when the formatter is not on PATH.
var ErrNotFound = errors.New("formatter not found")

// Formatter rewrites a file in place by running Command with Args followed
// by the file path. A zero Formatter formats nothing.
type Formatter struct {
	Command string
	Args    []string
}

// Enabled reports whether a command is configured.
func (f Formatter) Enabled() bool {
	return f.Command != ""
}

// Check verifies that the formatter is invocable.
func (f Formatter) Check() error {
	if !f.Enabled() {
		return nil
	}
	if _, err := exec.LookPath(f.Command); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotFound, f.Command, err)
	}
	return nil
}

// Format runs the formatter on path and waits for it to exit. The file is
// either fully rewritten by the formatter or left as it was.
func (f Formatter) Format(ctx context.Context, path string) error {
	if !f.Enabled() {
		return nil
	}

	args := append(append([]string(nil), f.Args...), path)
	cmd := exec.CommandContext(ctx, f.Command, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s %s: %w: %s", f.Command, path, err, msg)
		}
		return fmt.Errorf("%s %s: %w", f.Command, path, err)
	}
	return nil
}

func (f Formatter) String() string {
	return strings.Join(append([]string{f.Command}, f.Args...), " ")
}
