package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ngc-pipeline/packages/compiler/src/config"
	"ngc-pipeline/packages/compiler/src/template/loader"
	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src"
	"ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// ManifestFileName is written next to the compiled components
const ManifestFileName = "manifest.json"

// Compiler compiles descriptor files with the settings of one run
type Compiler struct {
	config *config.CompilerConfig
	logger *log.Logger
	cache  *loader.Cache
}

func NewCompiler(cfg *config.CompilerConfig, logger *log.Logger, cache *loader.Cache) *Compiler {
	return &Compiler{config: cfg, logger: logger, cache: cache}
}

// Result is one compiled descriptor
type Result struct {
	Path      string
	Digest    string
	Component string
	BuildID   uuid.UUID
	Source    string
	Compiled  *pipeline.CompiledComponent
}

// Manifest lists the outputs of a run
type Manifest struct {
	Mode    string           `json:"mode"`
	Outputs []ManifestOutput `json:"outputs"`
}

type ManifestOutput struct {
	Component string `json:"component"`
	Source    string `json:"source"`
	Output    string `json:"output"`
	Digest    string `json:"digest"`
	BuildID   string `json:"build_id"`
	Decls     int    `json:"decls"`
	Vars      int    `json:"vars"`
	HostVars  int    `json:"host_vars,omitempty"`
}

func (c *Compiler) mode() compilation.TemplateCompilationMode {
	if c.config.Mode == config.ModeDomOnly {
		return compilation.TemplateCompilationModeDomOnly
	}
	return compilation.TemplateCompilationModeFull
}

// CompileFiles compiles every path with at most Parallelism files in flight. Results keep the
// order of paths. Every failing file contributes to the returned error.
func (c *Compiler) CompileFiles(ctx context.Context, paths []string) ([]*Result, error) {
	results := make([]*Result, len(paths))
	errs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.Parallelism)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i], errs[i] = c.compileFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var failed []error
	for i, err := range errs {
		if err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", paths[i], err))
		}
	}
	if len(failed) > 0 {
		return nil, errors.Join(failed...)
	}
	return results, nil
}

func (c *Compiler) compileFile(path string) (*Result, error) {
	descriptor, err := loader.Load(path, c.cache)
	if err != nil {
		return nil, err
	}

	var opts pipeline.Options
	if c.config.Verbose {
		opts.Logger = c.logger
	}
	compiled, err := pipeline.CompileComponent(descriptor.Metadata(c.mode()), opts)
	if err != nil {
		return nil, err
	}

	return &Result{
		Path:      path,
		Digest:    descriptor.Digest,
		Component: descriptor.Component,
		BuildID:   buildID(c.config.BuildSeed, path, descriptor.Digest),
		Source:    compiled.Print(),
		Compiled:  compiled,
	}, nil
}

// buildID is stable for the same seed, path and content
func buildID(seed, path, digest string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed+path+digest))
}

// WriteOutputs writes <component>.js for each result and the manifest into the output directory
func (c *Compiler) WriteOutputs(results []*Result) (*Manifest, error) {
	if err := os.MkdirAll(c.config.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	manifest := &Manifest{Mode: string(c.config.Mode)}
	seen := make(map[string]string, len(results))
	for _, result := range results {
		if previous, ok := seen[result.Component]; ok {
			return nil, fmt.Errorf("component %s is declared by both %s and %s", result.Component, previous, result.Path)
		}
		seen[result.Component] = result.Path

		name := result.Component + ".js"
		if err := os.WriteFile(filepath.Join(c.config.OutputDir, name), []byte(result.Source), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
		manifest.Outputs = append(manifest.Outputs, ManifestOutput{
			Component: result.Component,
			Source:    result.Path,
			Output:    name,
			Digest:    result.Digest,
			BuildID:   result.BuildID.String(),
			Decls:     result.Compiled.Decls,
			Vars:      result.Compiled.Vars,
			HostVars:  result.Compiled.HostVars,
		})
		if c.config.Verbose {
			c.logger.Printf("wrote %s for %s", name, result.Path)
		}
	}
	sort.Slice(manifest.Outputs, func(i, j int) bool {
		return manifest.Outputs[i].Component < manifest.Outputs[j].Component
	})

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.config.OutputDir, ManifestFileName), append(data, '\n'), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	return manifest, nil
}
