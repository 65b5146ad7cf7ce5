package css_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-pipeline/packages/compiler/src/css"
)

func TestParseCssSelector(t *testing.T) {
	t.Run("should parse elements, classes, ids and attributes", func(t *testing.T) {
		selectors, err := css.ParseCssSelector(`div.Foo#main[title="Hi"]`)
		if err != nil {
			t.Fatal(err)
		}
		if len(selectors) != 1 {
			t.Fatalf("expected one selector, got %d", len(selectors))
		}
		if diff := cmp.Diff("div.foo[id=main][title=hi]", selectors[0].String()); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should split selector lists", func(t *testing.T) {
		selectors, err := css.ParseCssSelector("a, [b]")
		if err != nil {
			t.Fatal(err)
		}
		var got []string
		for _, s := range selectors {
			got = append(got, s.String())
		}
		if diff := cmp.Diff([]string{"a", "[b]"}, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should default :not selectors to the wildcard element", func(t *testing.T) {
		selectors, err := css.ParseCssSelector(":not(.hidden)")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff("*:not(.hidden)", selectors[0].String()); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should reject nested :not", func(t *testing.T) {
		if _, err := css.ParseCssSelector(":not(:not(a))"); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("should reject unescaped dollar signs in attributes", func(t *testing.T) {
		if _, err := css.ParseCssSelector("[a$b]"); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestParseSelectorToR3Selector(t *testing.T) {
	t.Run("should produce the runtime array form", func(t *testing.T) {
		got, err := css.ParseSelectorToR3Selector("span.a[b=c]:not(.d)")
		if err != nil {
			t.Fatal(err)
		}
		want := []css.R3Selector{{
			"span", "b", "c", int(css.SelectorFlagsClass), "a",
			int(css.SelectorFlagsNot | css.SelectorFlagsClass), "d",
		}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should drop the wildcard element", func(t *testing.T) {
		got, err := css.ParseSelectorToR3Selector("[foo]")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]css.R3Selector{{"", "foo", ""}}, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should return nothing for an empty selector", func(t *testing.T) {
		got, err := css.ParseSelectorToR3Selector("")
		if err != nil || got != nil {
			t.Errorf("expected nil, nil; got %v, %v", got, err)
		}
	})
}
