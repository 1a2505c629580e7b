// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/albertocavalcante/commgen/generator"
	"github.com/albertocavalcante/commgen/generators/python"
	"github.com/albertocavalcante/commgen/generators/rust"
	"github.com/albertocavalcante/commgen/generators/typescript"
	"github.com/albertocavalcante/commgen/internal/config"
	"github.com/albertocavalcante/commgen/internal/format"
	"github.com/albertocavalcante/commgen/internal/testutil"
	"github.com/albertocavalcante/commgen/model"
)

const pingBackend = `{
  "openrpc": "1.3.0",
  "info": {"title": "Ping", "version": "1.0.0"},
  "methods": [
    {
      "name": "ping",
      "summary": "Ping the backend",
      "params": [{"name": "value", "description": "Echoed value", "required": true, "schema": {"type": "string"}}],
      "result": {"schema": {"type": "string"}}
    }
  ]
}`

// undocumented fails planning: the method has no summary.
const undocumented = `{"methods": [{"name": "poke"}]}`

type fixture struct {
	input string
	out   string
	cfg   Config
}

// newFixture lays out an input directory with the given documents and
// three output directories. The rust directory is required and exists.
func newFixture(t *testing.T, docs map[string]string) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{input: filepath.Join(root, "comms"), out: filepath.Join(root, "out")}

	if err := os.MkdirAll(f.input, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range docs {
		if err := os.WriteFile(filepath.Join(f.input, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(f.out, "rust"), 0o755); err != nil {
		t.Fatal(err)
	}

	f.cfg = Config{
		InputDir: f.input,
		Targets: []Target{
			{Name: "python", Generator: python.NewGenerator(), Dir: filepath.Join(f.out, "python")},
			{Name: "rust", Generator: rust.NewGenerator(), Dir: filepath.Join(f.out, "rust"), Required: true},
			{Name: "typescript", Generator: typescript.NewGenerator(), Dir: filepath.Join(f.out, "typescript")},
		},
	}
	return f
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skipf("sh not available: %v", err)
	}
}

// appendFormatter stands in for rustfmt by appending a marker line.
var appendFormatter = format.Formatter{Command: "sh", Args: []string{"-c", `printf '// formatted\n' >> "$0"`}}

func TestRun(t *testing.T) {
	requireShell(t)

	f := newFixture(t, map[string]string{
		"ping-backend-openrpc.json":  pingBackend,
		"demo-backend-openrpc.json":  testutil.DemoBackend,
		"demo-frontend-openrpc.json": testutil.DemoFrontend,
		"notes.txt":                  "ignored",
	})
	f.cfg.Formatter = appendFormatter
	f.cfg.FormatTarget = "rust"

	report, err := Run(context.Background(), f.cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if diff := cmp.Diff([]string{"demo", "ping"}, report.Processed); diff != "" {
		t.Errorf("Processed mismatch (-want +got):\n%s", diff)
	}

	var paths []string
	for _, file := range report.Files {
		rel, err := filepath.Rel(f.out, file.Path)
		if err != nil {
			t.Fatal(err)
		}
		paths = append(paths, filepath.ToSlash(rel))

		onDisk, err := os.ReadFile(file.Path)
		if err != nil {
			t.Fatalf("read %s: %v", file.Path, err)
		}
		if string(onDisk) != string(file.Content) {
			t.Errorf("%s: report content differs from disk", rel)
		}

		formatted := strings.HasSuffix(string(onDisk), "// formatted\n")
		if formatted != (file.Target == "rust") {
			t.Errorf("%s: formatted = %v", rel, formatted)
		}
	}
	want := []string{
		"python/demo_comm.py",
		"rust/demo_comm.rs",
		"typescript/demoComm.ts",
		"python/ping_comm.py",
		"rust/ping_comm.rs",
		"typescript/pingComm.ts",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	f := newFixture(t, map[string]string{
		"demo-backend-openrpc.json":  testutil.DemoBackend,
		"demo-frontend-openrpc.json": testutil.DemoFrontend,
	})

	first, err := Run(context.Background(), f.cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	second, err := Run(context.Background(), f.cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("runs differ (-first +second):\n%s", diff)
	}
}

func TestRunPreconditions(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, f *fixture)
	}{
		{
			name:  "required directory missing",
			setup: func(t *testing.T, f *fixture) { f.cfg.Targets[1].Dir = filepath.Join(f.out, "missing") },
		},
		{
			name: "formatter missing",
			setup: func(t *testing.T, f *fixture) {
				f.cfg.Formatter = format.Formatter{Command: "commgen-no-such-formatter"}
				f.cfg.FormatTarget = "rust"
			},
		},
		{
			name: "formatter target unknown",
			setup: func(t *testing.T, f *fixture) {
				f.cfg.Formatter = format.Formatter{Command: "sh"}
				f.cfg.FormatTarget = "go"
			},
		},
		{
			name: "output is a file",
			setup: func(t *testing.T, f *fixture) {
				path := filepath.Join(f.out, "python")
				if err := os.WriteFile(path, nil, 0o644); err != nil {
					t.Fatal(err)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, map[string]string{"ping-backend-openrpc.json": pingBackend})
			tt.setup(t, f)

			report, err := Run(context.Background(), f.cfg, zerolog.Nop())
			var pe *PreconditionError
			if !errors.As(err, &pe) {
				t.Fatalf("Run() error = %v, want *PreconditionError", err)
			}
			if len(report.Processed) != 0 {
				t.Errorf("Processed = %v, want none", report.Processed)
			}
			if _, err := os.Stat(filepath.Join(f.out, "rust", "ping_comm.rs")); !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("output written despite failed precondition: %v", err)
			}
		})
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	f := newFixture(t, map[string]string{
		"alpha-backend-openrpc.json": pingBackend,
		"beta-backend-openrpc.json":  undocumented,
		"gamma-backend-openrpc.json": pingBackend,
	})

	report, err := Run(context.Background(), f.cfg, zerolog.Nop())

	var se *model.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("Run() error = %v, want *model.SchemaError", err)
	}
	if se.Comm != "beta" {
		t.Errorf("SchemaError.Comm = %q, want beta", se.Comm)
	}
	if !errors.Is(err, model.ErrMissingDescription) {
		t.Errorf("Run() error = %v, want ErrMissingDescription", err)
	}

	if diff := cmp.Diff([]string{"alpha"}, report.Processed); diff != "" {
		t.Errorf("Processed mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(f.out, "rust", "alpha_comm.rs")); err != nil {
		t.Errorf("earlier Comm output removed: %v", err)
	}
	for _, name := range []string{"beta_comm.rs", "gamma_comm.rs"} {
		if _, err := os.Stat(filepath.Join(f.out, "rust", name)); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("%s written after failure: %v", name, err)
		}
	}
}

func TestRunMalformedDocument(t *testing.T) {
	f := newFixture(t, map[string]string{"bad-frontend-openrpc.json": `{"methods": `})

	_, err := Run(context.Background(), f.cfg, zerolog.Nop())
	if !errors.Is(err, model.ErrInvalidSchema) {
		t.Fatalf("Run() error = %v, want ErrInvalidSchema", err)
	}
}

func TestRunMissingInput(t *testing.T) {
	f := newFixture(t, nil)
	f.cfg.InputDir = filepath.Join(f.input, "missing")

	_, err := Run(context.Background(), f.cfg, zerolog.Nop())
	var ioe *IOError
	if !errors.As(err, &ioe) || ioe.Op != "discover" {
		t.Fatalf("Run() error = %v, want discover *IOError", err)
	}
}

func TestRunFormatterFailure(t *testing.T) {
	requireShell(t)

	f := newFixture(t, map[string]string{"ping-backend-openrpc.json": pingBackend})
	f.cfg.Formatter = format.Formatter{Command: "sh", Args: []string{"-c", "exit 1"}}
	f.cfg.FormatTarget = "rust"

	report, err := Run(context.Background(), f.cfg, zerolog.Nop())
	var ioe *IOError
	if !errors.As(err, &ioe) {
		t.Fatalf("Run() error = %v, want *IOError", err)
	}
	if ioe.Op != "format" || ioe.Comm != "ping" {
		t.Errorf("IOError = %+v", ioe)
	}
	if len(report.Processed) != 0 {
		t.Errorf("Processed = %v, want none", report.Processed)
	}
	if got := outputFiles(t, f); len(got) != 0 {
		t.Errorf("files left after format failure: %v", got)
	}
}

func TestRunWriteFailureRollsBack(t *testing.T) {
	requireShell(t)

	f := newFixture(t, map[string]string{"ping-backend-openrpc.json": pingBackend})
	f.cfg.Formatter = appendFormatter
	f.cfg.FormatTarget = "rust"

	previous := filepath.Join(f.out, "python", "ping_comm.py")
	if err := os.MkdirAll(filepath.Dir(previous), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(previous, []byte("# previous\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A non-empty directory where the TypeScript file belongs makes the
	// last write of the Comm fail.
	blocker := filepath.Join(f.out, "typescript", "pingComm.ts", "keep")
	if err := os.MkdirAll(blocker, 0o755); err != nil {
		t.Fatal(err)
	}

	report, err := Run(context.Background(), f.cfg, zerolog.Nop())
	var ioe *IOError
	if !errors.As(err, &ioe) {
		t.Fatalf("Run() error = %v, want *IOError", err)
	}
	if ioe.Op != "write" || ioe.Comm != "ping" {
		t.Errorf("IOError = %+v", ioe)
	}
	if len(report.Processed) != 0 {
		t.Errorf("Processed = %v, want none", report.Processed)
	}

	got, err := os.ReadFile(previous)
	if err != nil {
		t.Fatalf("previous python output removed: %v", err)
	}
	if string(got) != "# previous\n" {
		t.Errorf("python output = %q, want previous content restored", got)
	}
	want := []string{"python/ping_comm.py", "typescript/pingComm.ts/keep"}
	if diff := cmp.Diff(want, outputFiles(t, f)); diff != "" {
		t.Errorf("output tree mismatch (-want +got):\n%s", diff)
	}
}

// outputFiles lists the files under the output root, plus empty
// directories, as slash-separated relative paths.
func outputFiles(t *testing.T, f *fixture) []string {
	t.Helper()
	var paths []string
	err := filepath.WalkDir(f.out, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			entries, err := os.ReadDir(path)
			if err != nil || len(entries) > 0 || path == f.out {
				return err
			}
			if filepath.Dir(path) == f.out {
				return nil
			}
		}
		rel, err := filepath.Rel(f.out, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return paths
}

func TestRunCanceled(t *testing.T) {
	f := newFixture(t, map[string]string{"ping-backend-openrpc.json": pingBackend})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, f.cfg, zerolog.Nop())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

func TestFromConfig(t *testing.T) {
	generator.Reset()
	t.Cleanup(generator.Reset)
	generator.Register(typescript.NewGenerator())
	generator.Register(rust.NewGenerator())

	c := config.Config{
		InputDir:  "comms",
		Formatter: config.Formatter{Command: "rustfmt", Args: []string{"--edition", "2021"}, Target: "rust"},
		Targets: map[string]config.Target{
			"typescript": {Dir: "ts"},
			"rust":       {Dir: "rs", Required: true, Options: map[string]string{"transport_path": "crate::T"}},
		},
	}

	got, err := FromConfig(c)
	if err != nil {
		t.Fatalf("FromConfig() error = %v", err)
	}
	var names []string
	for _, target := range got.Targets {
		names = append(names, target.Name)
	}
	if diff := cmp.Diff([]string{"rust", "typescript"}, names); diff != "" {
		t.Errorf("target order mismatch (-want +got):\n%s", diff)
	}
	if !got.Targets[0].Required || got.Targets[0].Options["transport_path"] != "crate::T" {
		t.Errorf("rust target = %+v", got.Targets[0])
	}
	if got.FormatTarget != "rust" || got.Formatter.Command != "rustfmt" {
		t.Errorf("formatter = %+v, target %q", got.Formatter, got.FormatTarget)
	}

	c.Targets["python"] = config.Target{Dir: "py"}
	if _, err := FromConfig(c); err == nil || !strings.Contains(err.Error(), `unknown target "python"`) {
		t.Errorf("FromConfig() error = %v, want unknown target", err)
	}
}
