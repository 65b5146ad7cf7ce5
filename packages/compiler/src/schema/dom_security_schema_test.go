package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-pipeline/packages/compiler/src/core"
	"ngc-pipeline/packages/compiler/src/schema"
)

func TestSecurityContext(t *testing.T) {
	tests := []struct {
		name        string
		tag         string
		prop        string
		isAttribute bool
		want        core.SecurityContext
	}{
		{name: "should find tag specific contexts", tag: "a", prop: "href", want: core.SecurityContextURL},
		{name: "should find resource urls", tag: "iframe", prop: "src", want: core.SecurityContextRESOURCE_URL},
		{name: "should fall back to the wildcard tag", tag: "div", prop: "innerHTML", want: core.SecurityContextHTML},
		{name: "should ignore case", tag: "IMG", prop: "SRC", want: core.SecurityContextURL},
		{name: "should map attribute names to properties", tag: "div", prop: "innerhtml", isAttribute: true, want: core.SecurityContextHTML},
		{name: "should default to none", tag: "div", prop: "title", want: core.SecurityContextNONE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, schema.SecurityContext(tt.tag, tt.prop, tt.isAttribute)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHostSecurityContexts(t *testing.T) {
	t.Run("should collect every context a property may need", func(t *testing.T) {
		want := []core.SecurityContext{core.SecurityContextURL, core.SecurityContextRESOURCE_URL}
		if diff := cmp.Diff(want, schema.HostSecurityContexts("src")); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should default to none", func(t *testing.T) {
		if diff := cmp.Diff([]core.SecurityContext{core.SecurityContextNONE}, schema.HostSecurityContexts("id")); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestAttributeHelpers(t *testing.T) {
	t.Run("should recognize aria attributes", func(t *testing.T) {
		got := []bool{schema.IsAriaAttribute("aria-label"), schema.IsAriaAttribute("aria-"), schema.IsAriaAttribute("role")}
		if diff := cmp.Diff([]bool{true, false, false}, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should recognize iframe sensitive attributes in any case", func(t *testing.T) {
		got := []bool{schema.IsIframeSecuritySensitiveAttr("SANDBOX"), schema.IsIframeSecuritySensitiveAttr("src")}
		if diff := cmp.Diff([]bool{true, false}, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}
