// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commgen.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
input_dir = "comms"

[formatter]
command = "true"
target = "rust"

[targets.rust]
dir = "../crate/src/comm"
required = true

[targets.rust.options]
transport_path = "crate::runtime::Transport"

[targets.python]
dir = "/abs/python"
`)
	base := filepath.Dir(path)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Config{
		InputDir: filepath.Join(base, "comms"),
		Formatter: Formatter{
			Command: "true",
			Args:    []string{"--edition", "2021"},
			Target:  "rust",
		},
		Targets: map[string]Target{
			"rust": {
				Dir:      filepath.Join(base, "..", "crate", "src", "comm"),
				Required: true,
				Options:  map[string]string{"transport_path": "crate::runtime::Transport"},
			},
			"python":     {Dir: "/abs/python"},
			"typescript": {Dir: filepath.Join("out", "typescript")},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"python", "rust", "typescript"}, got.TargetNames()); diff != "" {
		t.Errorf("TargetNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefaultMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefaultPresent(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(DefaultPath, []byte(`input_dir = "contracts"`), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.InputDir != "contracts" {
		t.Errorf("InputDir = %q, want contracts", got.InputDir)
	}
	if len(got.Targets) != 3 {
		t.Errorf("Targets = %v, want defaults", got.Targets)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "syntax", content: `input_dir = `, want: "load config"},
		{name: "unknown key", content: `inptu_dir = "x"`, want: "unknown keys: inptu_dir"},
		{name: "new target without dir", content: "[targets.go]\nrequired = true", want: "targets.go: dir is required"},
		{name: "empty dir", content: "[targets.rust]\ndir = \" \"", want: "targets.rust: dir is empty"},
		{
			name:    "formatter target disabled",
			content: "[targets.rust]\ndisabled = true",
			want:    `formatter target "rust" is not configured`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadMergesTargets(t *testing.T) {
	path := writeConfig(t, `
[targets.rust]
dir = "crate/src"

[targets.typescript]
disabled = true

[targets.go]
dir = "go"
`)
	base := filepath.Dir(path)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := map[string]Target{
		"go":     {Dir: filepath.Join(base, "go")},
		"python": {Dir: filepath.Join("out", "python")},
		"rust":   {Dir: filepath.Join(base, "crate", "src"), Required: true},
	}
	if diff := cmp.Diff(want, got.Targets); diff != "" {
		t.Errorf("Targets mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRequiredOverride(t *testing.T) {
	got, err := Load(writeConfig(t, "[targets.rust]\nrequired = false"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Target{Dir: filepath.Join("out", "rust")}
	if diff := cmp.Diff(want, got.Targets["rust"]); diff != "" {
		t.Errorf("rust target mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load() error = nil, want error for missing explicit file")
	}
}
