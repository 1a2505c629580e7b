// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/albertocavalcante/commgen/internal/format"
)

// formatStaged runs f over data in a temporary file next to path and
// returns the formatted content. path itself is not touched.
func formatStaged(ctx context.Context, f format.Formatter, path string, data []byte) ([]byte, error) {
	tmp, err := writeTemp(path, ".commgen-*-"+filepath.Base(path), data)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp)

	if err := f.Format(ctx, tmp); err != nil {
		return nil, err
	}
	return os.ReadFile(tmp)
}

// writeTemp writes data to a new file in the directory of path. The name
// follows pattern as in [os.CreateTemp].
func writeTemp(path, pattern string, data []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), pattern)
	if err != nil {
		return "", err
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// replaceFile atomically replaces path with data.
func replaceFile(path string, data []byte) error {
	tmp, err := writeTemp(path, "."+filepath.Base(path)+".tmp-*", data)
	if err != nil {
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// transaction records the files written for one Comm so that a failure
// can put every path back the way it was.
type transaction struct {
	done []undo
}

type undo struct {
	path    string
	old     []byte
	existed bool
}

func (tx *transaction) write(path string, data []byte) error {
	old, err := os.ReadFile(path)
	existed := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := replaceFile(path, data); err != nil {
		return err
	}
	tx.done = append(tx.done, undo{path: path, old: old, existed: existed})
	return nil
}

// rollback undoes every write, newest first.
func (tx *transaction) rollback() error {
	var errs []error
	for i := len(tx.done) - 1; i >= 0; i-- {
		u := tx.done[i]
		if u.existed {
			errs = append(errs, replaceFile(u.path, u.old))
		} else {
			errs = append(errs, os.Remove(u.path))
		}
	}
	tx.done = nil
	return errors.Join(errs...)
}
