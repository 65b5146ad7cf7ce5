package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-pipeline/packages/compiler/src/config"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewCompilerConfig(t *testing.T) {
	t.Run("should start from the defaults", func(t *testing.T) {
		got := config.NewCompilerConfig()
		want := config.Defaults()
		if diff := cmp.Diff(&want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should apply options in order", func(t *testing.T) {
		got := config.NewCompilerConfig(
			config.WithMode(config.ModeDomOnly),
			config.WithParallelism(2),
			config.WithParallelism(8),
			config.WithOutputDir("out"),
			config.WithColor(false),
			config.WithVerbose(true),
			config.WithBuildSeed("seed"),
		)
		want := &config.CompilerConfig{
			Mode:        config.ModeDomOnly,
			Parallelism: 8,
			OutputDir:   "out",
			Color:       false,
			Verbose:     true,
			BuildSeed:   "seed",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should not modify the receiver on apply", func(t *testing.T) {
		base := config.Defaults()
		got := base.Apply(config.WithOutputDir("elsewhere"))
		if base.OutputDir != "dist" || got.OutputDir != "elsewhere" {
			t.Errorf("expected dist and elsewhere, got %s and %s", base.OutputDir, got.OutputDir)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    []config.CompilerConfigOption
		wantErr string
	}{
		{name: "should accept the defaults"},
		{name: "should reject unknown modes", opts: []config.CompilerConfigOption{config.WithMode("fast")}, wantErr: "unknown mode"},
		{name: "should reject zero parallelism", opts: []config.CompilerConfigOption{config.WithParallelism(0)}, wantErr: "parallelism"},
		{name: "should reject an empty output dir", opts: []config.CompilerConfigOption{config.WithOutputDir("")}, wantErr: "output directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.NewCompilerConfig(tt.opts...).Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("should return the defaults for a missing file", func(t *testing.T) {
		got, err := config.Load(filepath.Join(t.TempDir(), config.FileName))
		if err != nil {
			t.Fatal(err)
		}
		want := config.Defaults()
		if diff := cmp.Diff(&want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should overlay the file on the defaults", func(t *testing.T) {
		path := writeFile(t, "mode = \"dom-only\"\nparallelism = 2\n")
		got, err := config.Load(path)
		if err != nil {
			t.Fatal(err)
		}
		want := config.Defaults()
		want.Mode = config.ModeDomOnly
		want.Parallelism = 2
		if diff := cmp.Diff(&want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should wrap parse errors", func(t *testing.T) {
		_, err := config.Load(writeFile(t, "mode = "))
		if err == nil || !strings.HasPrefix(err.Error(), "failed to parse config") {
			t.Errorf("expected a parse error, got %v", err)
		}
	})

	t.Run("should wrap validation errors", func(t *testing.T) {
		_, err := config.Load(writeFile(t, "parallelism = -1\n"))
		if err == nil || !strings.HasPrefix(err.Error(), "invalid config") {
			t.Errorf("expected a validation error, got %v", err)
		}
	})
}
