package pipeline_test

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-pipeline/packages/compiler/src/template/loader"
	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src"
	"ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

func compile(t *testing.T, source string) *pipeline.CompiledComponent {
	t.Helper()
	d, err := loader.Parse([]byte(source))
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	compiled, err := pipeline.CompileComponent(d.Metadata(compilation.TemplateCompilationModeFull), pipeline.Options{})
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	return compiled
}

func assertContains(t *testing.T, source string, snippets ...string) {
	t.Helper()
	for _, snippet := range snippets {
		if !strings.Contains(source, snippet) {
			t.Errorf("expected output to contain %q, got:\n%s", snippet, source)
		}
	}
}

func TestCompileComponent(t *testing.T) {
	t.Run("should compile text interpolation", func(t *testing.T) {
		compiled := compile(t, `
component: GreetingCmp
template:
  - element: div
    children: [{text: "x", parts: ["Hello ", "!"], exprs: [name]}]
`)
		if diff := cmp.Diff([]int{2, 1}, []int{compiled.Decls, compiled.Vars}); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		assertContains(t, compiled.Print(),
			"const decls = 2;",
			"const vars = 1;",
			"function GreetingCmp_Template(rf,ctx)",
			"if (rf & 1) {",
			"i0.ɵɵelementStart(0,'div')",
			"i0.ɵɵelementEnd()",
			"if (rf & 2) {",
			"i0.ɵɵtextInterpolate1('Hello ',ctx.name,'!')",
		)
	})

	t.Run("should extract one track function per distinct loop", func(t *testing.T) {
		compiled := compile(t, `
component: ListsCmp
template:
  - for: {item: todo, of: todos, track: {read: id, of: todo}}
    children: [{text: "x", parts: ["", ""], exprs: [{read: title, of: todo}]}]
  - for: {item: user, of: users, track: {read: name, of: user}}
    children: [{text: "x", parts: ["", ""], exprs: [{read: name, of: user}]}]
`)
		source := compiled.Print()
		assertContains(t, source, "const _forTrack0 = ", "const _forTrack1 = ",
			"i0.ɵɵrepeater(ctx.todos)", "i0.ɵɵrepeater(ctx.users)")
		if strings.Contains(source, "_forTrack2") {
			t.Errorf("expected two track functions, got:\n%s", source)
		}
	})

	t.Run("should reuse the track function of equivalent loops", func(t *testing.T) {
		compiled := compile(t, `
component: TwinCmp
template:
  - for: {item: a, of: items, track: {read: id, of: a}}
    children: ["x"]
  - for: {item: b, of: others, track: {read: id, of: b}}
    children: ["y"]
`)
		source := compiled.Print()
		assertContains(t, source, "const _forTrack0 = ")
		if strings.Contains(source, "_forTrack1") {
			t.Errorf("expected a shared track function, got:\n%s", source)
		}
	})

	t.Run("should use builtin track functions for identity and index", func(t *testing.T) {
		compiled := compile(t, `
component: BuiltinCmp
template:
  - for: {item: a, of: items, track: a}
    children: ["x"]
  - for: {item: b, of: others, track: $index}
    children: ["y"]
`)
		assertContains(t, compiled.Print(), "i0.ɵɵrepeaterTrackByIdentity", "i0.ɵɵrepeaterTrackByIndex")
	})

	t.Run("should split chains longer than the maximum length", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("component: WideCmp\ntemplate:\n")
		for range 257 {
			b.WriteString("  - element: br\n")
		}
		compiled := compile(t, b.String())
		source := compiled.Print()
		if diff := cmp.Diff(2, strings.Count(source, "i0.ɵɵelement(")); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(257, compiled.Decls); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		assertContains(t, source, fmt.Sprintf("i0.ɵɵelement(%d,'br');", 256))
	})

	t.Run("should compile host bindings", func(t *testing.T) {
		compiled := compile(t, `
component: HostCmp
template: []
host:
  properties: [{name: id, value: {prop: hostId}}]
  attributes: {role: list}
  listeners: [{name: click, handler: {call: onHostClick, args: [$event]}}]
`)
		if compiled.HostBindingsFn == nil {
			t.Fatal("expected a host binding function")
		}
		if diff := cmp.Diff(1, compiled.HostVars); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		assertContains(t, compiled.Print(),
			"const hostVars = 1;",
			"function HostCmp_HostBindings(rf,ctx)",
			"HostCmp_click_HostBindingHandler($event)",
			"ctx.onHostClick($event)",
			"i0.ɵɵdomProperty('id',ctx.hostId)",
			"const hostAttrs = ['role','list'];",
		)
	})

	t.Run("should leave the host function out without host bindings", func(t *testing.T) {
		compiled := compile(t, "component: PlainCmp\ntemplate: [\"x\"]\n")
		if compiled.HostBindingsFn != nil {
			t.Error("expected no host binding function")
		}
		if strings.Contains(compiled.Print(), "hostBindings") {
			t.Errorf("unexpected host fields:\n%s", compiled.Print())
		}
	})

	t.Run("should compute ng-content selectors", func(t *testing.T) {
		compiled := compile(t, `
component: CardCmp
template:
  - content: header
  - content: ""
`)
		assertContains(t, compiled.Print(), "const ngContentSelectors = ", "'header'", "'*'", "i0.ɵɵprojectionDef(", "i0.ɵɵprojection(0)", "i0.ɵɵprojection(1,1)")
	})

	t.Run("should keep only the last style map of an element", func(t *testing.T) {
		compiled := compile(t, `
component: StyledCmp
template:
  - element: div
    inputs:
      - {name: style, value: a}
      - {name: style, value: b}
      - {name: style, value: c}
      - {name: class, value: d}
`)
		source := compiled.Print()
		assertContains(t, source, "i0.ɵɵstyleMap(ctx.c)", "i0.ɵɵclassMap(ctx.d)")
		if diff := cmp.Diff(1, strings.Count(source, "ɵɵstyleMap(")); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if strings.Contains(source, "'style'") || strings.Contains(source, "'class'") {
			t.Errorf("expected no style or class property, got:\n%s", source)
		}
	})

	t.Run("should collapse a singleton attribute interpolation", func(t *testing.T) {
		compiled := compile(t, `
component: TitledCmp
template:
  - element: div
    inputs: [{name: title, kind: attribute, value: {interpolate: {parts: ["", ""], exprs: [x]}}}]
`)
		source := compiled.Print()
		assertContains(t, source, "i0.ɵɵattribute('title',ctx.x)")
		if strings.Contains(source, "Interpolate") {
			t.Errorf("expected no interpolation instruction, got:\n%s", source)
		}
	})

	t.Run("should bind interpolated text inside an i18n block", func(t *testing.T) {
		compiled := compile(t, `
component: TranslatedCmp
template:
  - element: p
    i18n: {message: "Hi {$name}", placeholders: [name]}
    children: [{text: "x", parts: ["Hi ", ""], exprs: [name]}]
`)
		source := compiled.Print()
		assertContains(t, source, "i0.ɵɵi18nStart(1,", "i0.ɵɵi18nExp(ctx.name)", "i0.ɵɵi18nApply(1)")
		if strings.Contains(source, "textInterpolate") || strings.Contains(source, "ɵɵtext(") {
			t.Errorf("expected the text to be carried by the message, got:\n%s", source)
		}
		if diff := cmp.Diff(1, compiled.Vars); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should report invariant violations as internal errors", func(t *testing.T) {
		d, err := loader.Parse([]byte(`
component: BrokenCmp
template:
  - element: input
    inputs: [{name: value, kind: two-way, value: {interpolate: {parts: ["", ""], exprs: [x]}}}]
`))
		if err != nil {
			t.Fatal(err)
		}
		_, err = pipeline.CompileComponent(d.Metadata(compilation.TemplateCompilationModeFull), pipeline.Options{})
		var internal *pipeline.InternalError
		if !errors.As(err, &internal) {
			t.Fatalf("expected an internal error, got %v", err)
		}
		if diff := cmp.Diff("BrokenCmp", internal.Component); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestPhases(t *testing.T) {
	t.Run("should skip host phases for template jobs", func(t *testing.T) {
		tmpl := pipeline.Phases(compilation.CompilationJobKindTmpl)
		host := pipeline.Phases(compilation.CompilationJobKindHost)
		if diff := cmp.Diff("PropagateI18nBlocks", tmpl[0]); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff("Chain", tmpl[len(tmpl)-1]); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		for _, name := range host {
			if name == "AllocateSlots" || name == "OptimizeTrackFns" {
				t.Errorf("unexpected host phase %s", name)
			}
		}
		if len(host) >= len(tmpl) {
			t.Errorf("expected fewer host phases, got %d and %d", len(host), len(tmpl))
		}
	})
}

func TestCompileComponentLogging(t *testing.T) {
	t.Run("should log phase timings and a summary", func(t *testing.T) {
		d, err := loader.Parse([]byte(`
component: LoggedCmp
template:
  - element: div
`))
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		opts := pipeline.Options{Logger: log.New(&buf, "", 0)}
		if _, err := pipeline.CompileComponent(d.Metadata(compilation.TemplateCompilationModeFull), opts); err != nil {
			t.Fatal(err)
		}
		assertContains(t, buf.String(), "LoggedCmp Chain: ", "LoggedCmp: 1 views, decls=1 vars=0")
	})
}
