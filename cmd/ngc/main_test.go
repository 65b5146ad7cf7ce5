package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const greeting = `
component: GreetingCmp
template:
  - element: div
    children: [{text: "x", parts: ["Hello ", "!"], exprs: [name]}]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func noEnv(string) string { return "" }

func TestRun(t *testing.T) {
	t.Run("should compile descriptors into the output directory", func(t *testing.T) {
		dir := t.TempDir()
		in := writeFile(t, dir, "greeting.yaml", greeting)
		out := filepath.Join(dir, "dist")

		var stdout, stderr bytes.Buffer
		if err := run(context.Background(), []string{"compile", "-out", out, in}, &stdout, &stderr, noEnv); err != nil {
			t.Fatalf("unexpected error: %v\n%s", err, stderr.String())
		}

		source, err := os.ReadFile(filepath.Join(out, "GreetingCmp.js"))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(source), "function GreetingCmp_Template(rf,ctx)") {
			t.Errorf("expected a template function, got:\n%s", source)
		}

		data, err := os.ReadFile(filepath.Join(out, ManifestFileName))
		if err != nil {
			t.Fatal(err)
		}
		var manifest Manifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			t.Fatal(err)
		}
		want := Manifest{Mode: "full", Outputs: []ManifestOutput{{
			Component: "GreetingCmp",
			Source:    in,
			Output:    "GreetingCmp.js",
			Decls:     2,
			Vars:      1,
		}}}
		if diff := cmp.Diff(want, manifest, cmpopts.IgnoreFields(ManifestOutput{}, "Digest", "BuildID")); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should report every failing file", func(t *testing.T) {
		dir := t.TempDir()
		bad := writeFile(t, dir, "bad.yaml", "component: Bad\ntemplate:\n  - bogus: x\n")
		missing := filepath.Join(dir, "missing.yaml")

		var stdout, stderr bytes.Buffer
		if err := run(context.Background(), []string{"compile", "-out", filepath.Join(dir, "dist"), bad, missing}, &stdout, &stderr, noEnv); err == nil {
			t.Fatal("expected an error")
		}
		lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected two diagnostics, got %q", lines)
		}
		for i, path := range []string{bad, missing} {
			if !strings.HasPrefix(lines[i], "error: "+path+": ") {
				t.Errorf("diagnostic %d = %q", i, lines[i])
			}
		}
	})

	t.Run("should let flags override the project file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "ngc.toml", "mode = \"dom-only\"\noutput_dir = \"build\"\n")
		in := writeFile(t, dir, "greeting.yaml", greeting)

		f, inputs, err := parseFlags("compile", []string{"-j", "2", in})
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := resolveConfig(f, inputs)
		if err != nil {
			t.Fatal(err)
		}
		got := []interface{}{string(cfg.Mode), cfg.OutputDir, cfg.Parallelism}
		if diff := cmp.Diff([]interface{}{"dom-only", "build", 2}, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should print compiled sources", func(t *testing.T) {
		dir := t.TempDir()
		in := writeFile(t, dir, "greeting.yaml", greeting)

		var stdout, stderr bytes.Buffer
		if err := run(context.Background(), []string{"print", in}, &stdout, &stderr, noEnv); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(stdout.String(), "// GreetingCmp\n") {
			t.Errorf("unexpected output:\n%s", stdout.String())
		}
	})

	t.Run("should reject unknown commands", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		if err := run(context.Background(), []string{"explode"}, &stdout, &stderr, noEnv); err == nil {
			t.Fatal("expected an error")
		}
		if !strings.Contains(stderr.String(), `error: unknown command "explode"`) {
			t.Errorf("unexpected stderr:\n%s", stderr.String())
		}
	})
}

func TestBuildID(t *testing.T) {
	t.Run("should be stable for the same inputs", func(t *testing.T) {
		if buildID("ngc", "a.yaml", "d1") != buildID("ngc", "a.yaml", "d1") {
			t.Error("expected equal ids")
		}
		if buildID("ngc", "a.yaml", "d1") == buildID("ngc", "a.yaml", "d2") {
			t.Error("expected ids to differ by digest")
		}
	})
}
