// SPDX-License-Identifier: MIT

// Package testutil provides golden-file testing utilities for commgen.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"github.com/albertocavalcante/commgen/model"
)

// Archive member names for the two contract documents.
const (
	BackendFile  = "backend.json"
	FrontendFile = "frontend.json"
)

// Case represents a parsed test case from a txtar archive.
type Case struct {
	// Name is the test case name and the Comm name.
	Name string

	// Description is the first comment block before any files.
	Description string

	// Flags contains any flags parsed from the "Flags: ..." line in the
	// description.
	Flags []string

	// Backend and Frontend hold the contract documents. Either may be nil.
	Backend  []byte
	Frontend []byte

	// Want maps relative paths (e.g., "pingComm.ts") to expected content.
	Want map[string][]byte
}

// ParseCase parses a txtar archive into a test Case.
// The archive should contain:
//   - A description comment (text before first file)
//   - A "backend.json" and/or "frontend.json" contract document
//   - One or more "want/<filename>" files with expected output
//
// The description may contain a "Flags: key=value, ..." line whose entries
// become generator options.
func ParseCase(name string, ar *txtar.Archive) (*Case, error) {
	c := &Case{
		Name:        name,
		Description: string(ar.Comment),
		Want:        make(map[string][]byte),
	}

	c.parseFlags()

	for _, f := range ar.Files {
		switch {
		case f.Name == BackendFile:
			c.Backend = f.Data
		case f.Name == FrontendFile:
			c.Frontend = f.Data
		case strings.HasPrefix(f.Name, "want/"):
			relPath := strings.TrimPrefix(f.Name, "want/")
			c.Want[relPath] = f.Data
		default:
			return nil, fmt.Errorf("unexpected file in archive: %q (expected %s, %s or want/*)", f.Name, BackendFile, FrontendFile)
		}
	}

	if c.Backend == nil && c.Frontend == nil {
		return nil, fmt.Errorf("missing %s or %s in archive", BackendFile, FrontendFile)
	}

	if len(c.Want) == 0 {
		return nil, fmt.Errorf("missing want/* files in archive")
	}

	return c, nil
}

// parseFlags extracts flags from "Flags: ..." line in the description.
func (c *Case) parseFlags() {
	for line := range strings.SplitSeq(c.Description, "\n") {
		line = strings.TrimSpace(line)
		flagStr, ok := strings.CutPrefix(line, "Flags:")
		if !ok {
			continue
		}
		for f := range strings.SplitSeq(flagStr, ",") {
			if f = strings.TrimSpace(f); f != "" {
				c.Flags = append(c.Flags, f)
			}
		}
		break
	}
}

// Options turns "key=value" flags into generator options.
func (c *Case) Options() map[string]string {
	opts := make(map[string]string, len(c.Flags))
	for _, f := range c.Flags {
		k, v, _ := strings.Cut(f, "=")
		opts[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return opts
}

// Comm parses the case documents into a Comm named after the case.
func (c *Case) Comm() (*model.Comm, error) {
	comm := &model.Comm{Name: c.Name}
	if c.Backend != nil {
		ct, err := model.Parse(c.Backend, model.Backend, c.Name+"-backend-openrpc.json")
		if err != nil {
			return nil, err
		}
		comm.Backend = ct
	}
	if c.Frontend != nil {
		ct, err := model.Parse(c.Frontend, model.Frontend, c.Name+"-frontend-openrpc.json")
		if err != nil {
			return nil, err
		}
		comm.Frontend = ct
	}
	return comm, nil
}

// GenerateFunc generates output for a Comm.
// It returns a map of filename to content.
type GenerateFunc func(comm *model.Comm, options map[string]string) (map[string][]byte, error)

// Run executes the test case using the provided generate function.
// It compares generated output against expected output and reports differences.
func (c *Case) Run(t *testing.T, generate GenerateFunc) {
	t.Helper()

	got, err := c.generate(generate)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	for wantFile := range c.Want {
		if _, ok := got[wantFile]; !ok {
			t.Errorf("missing output file: %q", wantFile)
		}
	}

	for gotFile := range got {
		if _, ok := c.Want[gotFile]; !ok {
			t.Errorf("unexpected output file: %q", gotFile)
		}
	}

	for wantFile, wantContent := range c.Want {
		gotContent, ok := got[wantFile]
		if !ok {
			continue // Already reported as missing
		}

		if diff := cmp.Diff(normalizeContent(wantContent), normalizeContent(gotContent)); diff != "" {
			t.Errorf("file %q mismatch (-want +got):\n%s", wantFile, diff)
		}
	}
}

func (c *Case) generate(generate GenerateFunc) (map[string][]byte, error) {
	comm, err := c.Comm()
	if err != nil {
		return nil, err
	}
	return generate(comm, c.Options())
}

// normalizeContent normalizes content for comparison:
// - Trims trailing whitespace from each line
// - Ensures consistent line endings
// - Trims trailing newlines
func normalizeContent(content []byte) string {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	result := strings.Join(lines, "\n")
	return strings.TrimRight(result, "\n")
}

// UpdateArchive updates a txtar archive with new generated content.
// Used for golden file updates with -update flag.
func UpdateArchive(ar *txtar.Archive, got map[string][]byte) *txtar.Archive {
	result := &txtar.Archive{
		Comment: ar.Comment,
	}

	for _, f := range ar.Files {
		if f.Name == BackendFile || f.Name == FrontendFile {
			result.Files = append(result.Files, f)
		}
	}

	var wantFiles []string
	for name := range got {
		wantFiles = append(wantFiles, name)
	}
	sort.Strings(wantFiles)

	for _, name := range wantFiles {
		content := got[name]
		if len(content) > 0 && content[len(content)-1] != '\n' {
			content = append(content, '\n')
		}
		result.Files = append(result.Files, txtar.File{
			Name: "want/" + name,
			Data: content,
		})
	}

	return result
}

// LoadTestCases loads all txtar test cases from a directory.
func LoadTestCases(t *testing.T, dir string) []*Case {
	t.Helper()

	pattern := filepath.Join(dir, "*.txtar")
	files, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob %q: %v", pattern, err)
	}

	if len(files) == 0 {
		t.Fatalf("no txtar files found in %q", dir)
	}

	var cases []*Case
	for _, file := range files {
		ar, err := txtar.ParseFile(file)
		if err != nil {
			t.Fatalf("parse %q: %v", file, err)
		}

		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		c, err := ParseCase(name, ar)
		if err != nil {
			t.Fatalf("parse case %q: %v", name, err)
		}

		cases = append(cases, c)
	}

	sort.Slice(cases, func(i, j int) bool {
		return cases[i].Name < cases[j].Name
	})

	return cases
}

// RunGolden runs every txtar case in dir against generate. With update set,
// the archives are rewritten from the generated output instead.
func RunGolden(t *testing.T, dir string, update bool, generate GenerateFunc) {
	t.Helper()

	pattern := filepath.Join(dir, "*.txtar")
	files, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob %q: %v", pattern, err)
	}
	if len(files) == 0 {
		t.Fatalf("no txtar files found in %q", dir)
	}

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatalf("parse txtar: %v", err)
			}

			tc, err := ParseCase(name, ar)
			if err != nil {
				t.Fatalf("parse case: %v", err)
			}

			if !update {
				tc.Run(t, generate)
				return
			}

			got, err := tc.generate(generate)
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			content := txtar.Format(UpdateArchive(ar, got))
			if err := os.WriteFile(file, content, 0o644); err != nil {
				t.Fatalf("write updated file: %v", err)
			}
			t.Logf("updated %s", file)
		})
	}
}
