package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src"
)

const (
	colorRed   = "\x1b[31m"
	colorBold  = "\x1b[1m"
	colorReset = "\x1b[0m"
)

// useColor reports whether diagnostics written to w may be colored
func useColor(w io.Writer, getenv func(string) string, enabled bool) bool {
	if !enabled || getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// report prints one diagnostic line per failure in err and returns err
func report(w io.Writer, getenv func(string) string, color bool, err error) error {
	colored := useColor(w, getenv, color)
	for _, e := range leaves(err) {
		label := "error"
		var internal *pipeline.InternalError
		if errors.As(e, &internal) {
			label = "internal error"
		}
		if colored {
			fmt.Fprintf(w, "%s%s:%s %s%s%s\n", colorRed, label, colorReset, colorBold, e, colorReset)
		} else {
			fmt.Fprintf(w, "%s: %s\n", label, e)
		}
	}
	return err
}

// leaves flattens joined errors
func leaves(err error) []error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var out []error
	for _, e := range joined.Unwrap() {
		out = append(out, leaves(e)...)
	}
	return out
}
