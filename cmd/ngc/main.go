package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"ngc-pipeline/packages/compiler/src/config"
)

const version = "0.1.0"

func usage(w io.Writer) {
	fmt.Fprintln(w, `ngc - template compiler back end
Usage: ngc <command> [args]

Commands:
  compile [-config ngc.toml] [-out dir] [-mode full|dom-only] [-j N] [-v] <file.yaml>...
                   Compile descriptors to <component>.js plus manifest.json
  print <file.yaml>
                   Print the compiled JS to stdout
  version          Show the version
  help             Show help`)
}

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.Getenv); err != nil {
		os.Exit(1)
	}
}

// run is the entry point of the CLI. Diagnostics are written to stderr before an error is returned.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	if len(args) == 0 {
		usage(stderr)
		return errors.New("no command")
	}
	switch args[0] {
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	case "version":
		fmt.Fprintf(stdout, "ngc %s\n", version)
		return nil
	case "compile":
		return runCompile(ctx, args[1:], stdout, stderr, getenv)
	case "print":
		return runPrint(ctx, args[1:], stdout, stderr, getenv)
	default:
		usage(stderr)
		return report(stderr, getenv, true, fmt.Errorf("unknown command %q", args[0]))
	}
}

type compileFlags struct {
	configPath  string
	outputDir   string
	mode        string
	parallelism int
	verbose     bool
}

func parseFlags(name string, args []string) (*compileFlags, []string, error) {
	f := &compileFlags{}
	flags := flag.NewFlagSet("ngc "+name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.StringVar(&f.configPath, "config", "", "project file, "+config.FileName+" next to the first input by default")
	flags.StringVar(&f.outputDir, "out", "", "output directory")
	flags.StringVar(&f.mode, "mode", "", "compilation mode: full or dom-only")
	flags.IntVar(&f.parallelism, "j", 0, "number of files compiled at once")
	flags.BoolVar(&f.verbose, "v", false, "log phase timings")
	if err := flags.Parse(args); err != nil {
		return nil, nil, err
	}
	if flags.NArg() == 0 {
		return nil, nil, errors.New("no input files")
	}
	return f, flags.Args(), nil
}

// resolveConfig loads the project file and lays the flags over it
func resolveConfig(f *compileFlags, inputs []string) (*config.CompilerConfig, error) {
	path := f.configPath
	if path == "" {
		path = filepath.Join(filepath.Dir(inputs[0]), config.FileName)
	}
	base, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	var opts []config.CompilerConfigOption
	if f.outputDir != "" {
		opts = append(opts, config.WithOutputDir(f.outputDir))
	}
	if f.mode != "" {
		opts = append(opts, config.WithMode(config.Mode(f.mode)))
	}
	if f.parallelism != 0 {
		opts = append(opts, config.WithParallelism(f.parallelism))
	}
	if f.verbose {
		opts = append(opts, config.WithVerbose(true))
	}
	cfg := base.Apply(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runCompile(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	f, inputs, err := parseFlags("compile", args)
	if errors.Is(err, flag.ErrHelp) {
		usage(stdout)
		return nil
	}
	if err != nil {
		return report(stderr, getenv, true, err)
	}
	cfg, err := resolveConfig(f, inputs)
	if err != nil {
		return report(stderr, getenv, true, err)
	}

	injector := newInjector(cfg, stderr)
	compiler := mustCompiler(injector)
	results, err := compiler.CompileFiles(ctx, inputs)
	if err != nil {
		return report(stderr, getenv, cfg.Color, err)
	}
	manifest, err := compiler.WriteOutputs(results)
	if err != nil {
		return report(stderr, getenv, cfg.Color, err)
	}
	fmt.Fprintf(stdout, "compiled %d component(s) into %s\n", len(manifest.Outputs), cfg.OutputDir)
	return nil
}

func runPrint(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	f, inputs, err := parseFlags("print", args)
	if errors.Is(err, flag.ErrHelp) {
		usage(stdout)
		return nil
	}
	if err != nil {
		return report(stderr, getenv, true, err)
	}
	cfg, err := resolveConfig(f, inputs)
	if err != nil {
		return report(stderr, getenv, true, err)
	}

	compiler := mustCompiler(newInjector(cfg, stderr))
	results, err := compiler.CompileFiles(ctx, inputs)
	if err != nil {
		return report(stderr, getenv, cfg.Color, err)
	}
	for _, result := range results {
		fmt.Fprintf(stdout, "// %s\n%s\n", result.Component, result.Source)
	}
	return nil
}
