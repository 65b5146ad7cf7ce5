package config

import (
	"fmt"
)

// Mode is the instruction set a template compiles to
type Mode string

const (
	// ModeFull supports the full instruction set, including directives
	ModeFull Mode = "full"
	// ModeDomOnly emits DOM-only instructions for templates without directives
	ModeDomOnly Mode = "dom-only"
)

// CompilerConfig represents the compiler configuration
type CompilerConfig struct {
	Mode        Mode   `toml:"mode"`
	Parallelism int    `toml:"parallelism"`
	OutputDir   string `toml:"output_dir"`
	Color       bool   `toml:"color"`
	Verbose     bool   `toml:"verbose"`
	// BuildSeed is mixed into every build id, so that ids differ between projects.
	BuildSeed string `toml:"build_seed"`
}

// Defaults returns the configuration used when neither a project file nor flags say otherwise
func Defaults() CompilerConfig {
	return CompilerConfig{
		Mode:        ModeFull,
		Parallelism: 4,
		OutputDir:   "dist",
		Color:       true,
		BuildSeed:   "ngc",
	}
}

// NewCompilerConfig creates a new CompilerConfig with optional parameters
func NewCompilerConfig(opts ...CompilerConfigOption) *CompilerConfig {
	config := Defaults()
	for _, opt := range opts {
		opt(&config)
	}
	return &config
}

// CompilerConfigOption is a function that modifies CompilerConfig
type CompilerConfigOption func(*CompilerConfig)

// WithMode sets the template compilation mode
func WithMode(mode Mode) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.Mode = mode
	}
}

// WithParallelism sets how many files are compiled at once
func WithParallelism(n int) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.Parallelism = n
	}
}

// WithOutputDir sets the directory compiled files are written to
func WithOutputDir(dir string) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.OutputDir = dir
	}
}

// WithColor sets whether diagnostics may be colored
func WithColor(color bool) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.Color = color
	}
}

// WithVerbose sets whether phase timings are logged
func WithVerbose(verbose bool) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.Verbose = verbose
	}
}

// WithBuildSeed sets the seed of the build ids
func WithBuildSeed(seed string) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.BuildSeed = seed
	}
}

// Apply returns a copy of the config with the options applied on top
func (c CompilerConfig) Apply(opts ...CompilerConfigOption) *CompilerConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// Validate checks that the configuration can be used
func (c *CompilerConfig) Validate() error {
	switch c.Mode {
	case ModeFull, ModeDomOnly:
	default:
		return fmt.Errorf("unknown mode %q, expected %q or %q", c.Mode, ModeFull, ModeDomOnly)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	return nil
}
