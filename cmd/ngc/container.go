package main

import (
	"io"
	"log"

	"github.com/samber/do"

	"ngc-pipeline/packages/compiler/src/config"
	"ngc-pipeline/packages/compiler/src/template/loader"
)

// newInjector registers the services of one CLI run
func newInjector(cfg *config.CompilerConfig, stderr io.Writer) *do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)

	do.Provide(injector, func(i *do.Injector) (*log.Logger, error) {
		return log.New(stderr, "ngc: ", 0), nil
	})

	// One cache per run; it is dropped with the injector.
	do.Provide(injector, func(i *do.Injector) (*loader.Cache, error) {
		return loader.NewCache(), nil
	})

	do.Provide(injector, func(i *do.Injector) (*Compiler, error) {
		return NewCompiler(
			do.MustInvoke[*config.CompilerConfig](i),
			do.MustInvoke[*log.Logger](i),
			do.MustInvoke[*loader.Cache](i),
		), nil
	})

	return injector
}

func mustCompiler(injector *do.Injector) *Compiler {
	return do.MustInvoke[*Compiler](injector)
}
