package loader_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-pipeline/packages/compiler/src/core"
	"ngc-pipeline/packages/compiler/src/expression_parser"
	"ngc-pipeline/packages/compiler/src/i18n"
	"ngc-pipeline/packages/compiler/src/render3"
	"ngc-pipeline/packages/compiler/src/template/loader"
	"ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

func implicit(name string) *expression_parser.PropertyRead {
	return expression_parser.NewPropertyRead(expression_parser.NewImplicitReceiver(), name)
}

func parse(t *testing.T, source string) *loader.Descriptor {
	t.Helper()
	d, err := loader.Parse([]byte(source))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return d
}

func TestParse(t *testing.T) {
	t.Run("should decode elements with attributes, inputs and outputs", func(t *testing.T) {
		d := parse(t, `
component: TestCmp
template:
  - element: a
    attrs: {class: link, title: Hi}
    inputs: [{name: href, value: url}]
    outputs: [{name: click, handler: {call: go, args: [$event]}}]
    refs: {anchor: ""}
    children: ["hello"]
`)
		want := []render3.Node{&render3.Element{
			Name: "a",
			Attributes: []*render3.TextAttribute{
				render3.NewTextAttribute("class", "link", nil),
				render3.NewTextAttribute("title", "Hi", nil),
			},
			Inputs: []*render3.BoundAttribute{
				render3.NewBoundAttribute("href", render3.BindingTypeProperty, core.SecurityContextURL, implicit("url"), nil, nil),
			},
			Outputs: []*render3.BoundEvent{
				render3.NewBoundEvent("click", render3.ParsedEventTypeRegular, expression_parser.NewCall(implicit("go"), []expression_parser.AST{implicit("$event")}), nil, nil),
			},
			Children:   []render3.Node{render3.NewText("hello")},
			References: []*render3.Reference{render3.NewReference("anchor", "")},
		}}
		if diff := cmp.Diff(want, d.Template); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should decode for loops with every implicit variable", func(t *testing.T) {
		d := parse(t, `
component: ListCmp
template:
  - for: {item: todo, of: todos, track: {read: id, of: todo}, let: {i: $index}}
    children: [{text: "x", parts: ["", ""], exprs: [{read: title, of: todo}]}]
    empty: ["none"]
`)
		loop, ok := d.Template[0].(*render3.ForLoopBlock)
		if !ok {
			t.Fatalf("expected a for loop, got %T", d.Template[0])
		}
		var names []string
		for _, v := range loop.ContextVariables {
			names = append(names, v.Name+"="+v.Value)
		}
		want := []string{"$index=$index", "$first=$first", "$last=$last", "$even=$even", "$odd=$odd", "$count=$count", "i=$index"}
		if diff := cmp.Diff(want, names); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(render3.NewVariable("todo", "$implicit"), loop.Item); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		wantTrack := expression_parser.NewPropertyRead(implicit("todo"), "id")
		if diff := cmp.Diff(expression_parser.AST(wantTrack), loop.TrackBy); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if loop.Empty == nil || len(loop.Empty.Children) != 1 {
			t.Errorf("expected one empty child, got %+v", loop.Empty)
		}
		if _, ok := loop.Children[0].(*render3.BoundText); !ok {
			t.Errorf("expected bound text, got %T", loop.Children[0])
		}
	})

	t.Run("should decode literals and operators", func(t *testing.T) {
		d := parse(t, `
component: C
template:
  - element: div
    inputs:
      - {name: a, value: 1}
      - {name: b, value: "quoted"}
      - {name: c, value: {binary: {op: "+", left: x, right: {lit: 2.5}}}}
      - {name: d, value: {cond: {if: {not: ok}, then: null, else: true}}}
      - {name: e, value: {pipe: {name: upper, input: name, args: [{lit: en}]}}}
      - {name: f, value: {map: {k: v, "a-b": {array: [1]}}}}
`)
		inputs := d.Template[0].(*render3.Element).Inputs
		got := make([]expression_parser.AST, len(inputs))
		for i, input := range inputs {
			got[i] = input.Value
		}
		want := []expression_parser.AST{
			expression_parser.NewLiteralPrimitive(1),
			expression_parser.NewLiteralPrimitive("quoted"),
			expression_parser.NewBinary("+", implicit("x"), expression_parser.NewLiteralPrimitive(2.5)),
			expression_parser.NewConditional(
				expression_parser.NewPrefixNot(implicit("ok")),
				expression_parser.NewLiteralPrimitive(nil),
				expression_parser.NewLiteralPrimitive(true),
			),
			expression_parser.NewBindingPipe(implicit("name"), "upper", []expression_parser.AST{expression_parser.NewLiteralPrimitive("en")}),
			expression_parser.NewLiteralMap(
				[]expression_parser.LiteralMapKey{{Key: "k"}, {Key: "a-b", Quoted: true}},
				[]expression_parser.AST{implicit("v"), expression_parser.NewLiteralArray([]expression_parser.AST{expression_parser.NewLiteralPrimitive(1)})},
			),
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should decode i18n messages and placeholders", func(t *testing.T) {
		d := parse(t, `
component: C
template:
  - element: div
    i18n: {message: "Hello {$START_TAG_SPAN}", meaning: greeting}
    children:
      - template: span
        structural: [{name: ngIf, value: show}]
        i18n: {start: START_TAG_SPAN, close: CLOSE_TAG_SPAN}
`)
		div := d.Template[0].(*render3.Element)
		msg, ok := div.I18n.(*i18n.Message)
		if !ok || msg.Meaning != "greeting" {
			t.Fatalf("expected a message with a meaning, got %#v", div.I18n)
		}
		tmpl := div.Children[0].(*render3.Template)
		want := i18n.NewTagPlaceholder("span", "START_TAG_SPAN", "CLOSE_TAG_SPAN")
		if diff := cmp.Diff(render3.I18nMeta(want), tmpl.I18n); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if !tmpl.IsStructural() || tmpl.TagName == nil || *tmpl.TagName != "span" {
			t.Errorf("expected a structural span template, got %+v", tmpl)
		}
	})

	t.Run("should decode host bindings", func(t *testing.T) {
		d := parse(t, `
component: C
mode: dom-only
host:
  properties: [{name: id, value: {prop: hostId}}]
  attributes: {role: list}
  listeners: [{name: click, handler: onClick}]
`)
		if len(d.Host.Properties) != 1 || len(d.Host.Attributes) != 1 || len(d.Host.Listeners) != 1 {
			t.Fatalf("unexpected host %+v", d.Host)
		}
		meta := d.Metadata(compilation.TemplateCompilationModeFull)
		if meta.Mode != compilation.TemplateCompilationModeDomOnly {
			t.Errorf("expected the file's mode to win")
		}
	})

	t.Run("should report positions of errors", func(t *testing.T) {
		tests := []struct {
			name   string
			source string
			want   loader.Error
		}{
			{
				name:   "unknown node",
				source: "component: C\ntemplate:\n  - blink: x\n",
				want:   loader.Error{Line: 3, Column: 5, Message: "unknown node kind, expected one of [element template content text if switch for]"},
			},
			{
				name:   "unknown key",
				source: "component: C\ntemplate:\n  - element: div\n    colour: red\n",
				want:   loader.Error{Line: 4, Column: 5, Message: `unknown key "colour" in element`},
			},
			{
				name:   "string expression",
				source: "component: C\ntemplate:\n  - element: div\n    inputs: [{name: a, value: not an id}]\n",
				want:   loader.Error{Line: 4, Column: 31, Message: `"not an id" is not an identifier, use lit for string literals`},
			},
		}
		for _, tt := range tests {
			t.Run("should report "+tt.name, func(t *testing.T) {
				_, err := loader.Parse([]byte(tt.source))
				var got *loader.Error
				if !errors.As(err, &got) {
					t.Fatalf("expected a *loader.Error, got %v", err)
				}
				if diff := cmp.Diff(tt.want, *got); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			})
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("should memoize by path and digest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cmp.yaml")
		if err := os.WriteFile(path, []byte("component: A\n"), 0644); err != nil {
			t.Fatal(err)
		}
		cache := loader.NewCache()
		first, err := loader.Load(path, cache)
		if err != nil {
			t.Fatal(err)
		}
		second, err := loader.Load(path, cache)
		if err != nil {
			t.Fatal(err)
		}
		if first != second || cache.Len() != 1 {
			t.Errorf("expected one cached descriptor, got %d", cache.Len())
		}

		if err := os.WriteFile(path, []byte("component: B\n"), 0644); err != nil {
			t.Fatal(err)
		}
		third, err := loader.Load(path, cache)
		if err != nil {
			t.Fatal(err)
		}
		if third.Component != "B" || third.Digest == first.Digest || cache.Len() != 2 {
			t.Errorf("expected a fresh decode after the file changed")
		}
	})

	t.Run("should wrap read errors", func(t *testing.T) {
		_, err := loader.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected a not-exist error, got %v", err)
		}
	})
}
