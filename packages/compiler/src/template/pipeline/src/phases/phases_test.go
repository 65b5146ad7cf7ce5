package phases_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-pipeline/packages/compiler/src/core"
	"ngc-pipeline/packages/compiler/src/output"
	constant_pool "ngc-pipeline/packages/compiler/src/pool"
	r3_identifiers "ngc-pipeline/packages/compiler/src/render3/r3_identifiers"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_shared "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"
	"ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
	"ngc-pipeline/packages/compiler/src/template/pipeline/src/phases"
)

func newJob(mode compilation.TemplateCompilationMode) *compilation.ComponentCompilationJob {
	return compilation.NewComponentCompilationJob("TestCmp", constant_pool.NewConstantPool(), mode)
}

// element pushes an element start and end onto the root view and returns its xref
func element(job *compilation.ComponentCompilationJob, tag string) ir_operation.XrefId {
	xref := job.AllocateXrefId()
	job.RootView().Create.Push(ops_create.NewElementStartOp(tag, xref, nil))
	job.RootView().Create.Push(ops_create.NewElementEndOp(xref))
	return xref
}

func binding(target ir_operation.XrefId, kind ir.BindingKind, name string, unit *string) *ops_update.BindingOp {
	return ops_update.NewBindingOp(target, kind, name, output.NewReadVarExpr("v"), nil, unit,
		[]core.SecurityContext{core.SecurityContextNONE}, false, false, nil, nil)
}

func kinds(list *ir_operation.OpList) []ir.OpKind {
	var out []ir.OpKind
	for op := range list.All() {
		out = append(out, op.GetKind())
	}
	return out
}

func TestSpecializeBindings(t *testing.T) {
	t.Run("should specialize each binding kind", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		xref := element(job, "svg")
		px := "px"
		update := job.RootView().Update
		update.Push(binding(xref, ir.BindingKindAttribute, ":xlink:href", nil))
		update.Push(binding(xref, ir.BindingKindProperty, "title", nil))
		update.Push(binding(xref, ir.BindingKindClassName, "active", nil))
		update.Push(binding(xref, ir.BindingKindStyleProperty, "width", &px))
		update.Push(binding(xref, ir.BindingKindAttribute, "ngNonBindable", nil))

		phases.SpecializeBindings(job)

		want := []ir.OpKind{ir.OpKindAttribute, ir.OpKindProperty, ir.OpKindClassProp, ir.OpKindStyleProp}
		if diff := cmp.Diff(want, kinds(update)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		attr := update.Get(0).(*ops_update.AttributeOp)
		if attr.Namespace == nil || *attr.Namespace != "xlink" || attr.Name != "href" {
			t.Errorf("expected the namespace to be split, got %v %q", attr.Namespace, attr.Name)
		}
		style := update.Get(3).(*ops_update.StylePropOp)
		if style.Unit == nil || *style.Unit != "px" {
			t.Errorf("expected the unit to be kept, got %v", style.Unit)
		}
		start := job.RootView().Create.Get(0).(*ops_create.ElementStartOp)
		if !start.NonBindable {
			t.Error("expected ngNonBindable to mark the element")
		}
	})

	t.Run("should turn aria properties into attributes in dom-only mode", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeDomOnly)
		xref := element(job, "div")
		job.RootView().Update.Push(binding(xref, ir.BindingKindProperty, "aria-label", nil))

		phases.SpecializeBindings(job)

		if diff := cmp.Diff([]ir.OpKind{ir.OpKindAttribute}, kinds(job.RootView().Update)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should panic when an attribute has no element", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		job.RootView().Update.Push(binding(job.AllocateXrefId(), ir.BindingKindAttribute, "ngNonBindable", nil))
		defer func() {
			if recover() == nil {
				t.Error("expected a panic")
			}
		}()
		phases.SpecializeBindings(job)
	})
}

func TestSpecializeStyleBindings(t *testing.T) {
	t.Run("should turn style and class properties into maps", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		xref := element(job, "div")
		update := job.RootView().Update
		update.Push(binding(xref, ir.BindingKindProperty, "style", nil))
		update.Push(binding(xref, ir.BindingKindProperty, "class", nil))
		update.Push(binding(xref, ir.BindingKindStyleProperty, "style", nil))
		update.Push(binding(xref, ir.BindingKindProperty, "title", nil))

		phases.SpecializeStyleBindings(job)

		want := []ir.OpKind{ir.OpKindStyleMap, ir.OpKindClassMap, ir.OpKindBinding, ir.OpKindBinding}
		if diff := cmp.Diff(want, kinds(update)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		styleMap := update.Get(0).(*ops_update.StyleMapOp)
		if styleMap.Target != xref {
			t.Errorf("expected the map to keep its target, got %d", styleMap.Target)
		}
	})

	t.Run("should specialize host bindings", func(t *testing.T) {
		job := compilation.NewHostBindingCompilationJob("TestDir", constant_pool.NewConstantPool(), compilation.TemplateCompilationModeFull)
		update := job.HostUnit().Update
		update.Push(binding(job.HostUnit().Xref, ir.BindingKindProperty, "class", nil))

		phases.SpecializeStyleBindings(job)

		if diff := cmp.Diff([]ir.OpKind{ir.OpKindClassMap}, kinds(update)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestCollapseSingletonInterpolations(t *testing.T) {
	t.Run("should collapse singleton attribute interpolations but not properties", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		xref := element(job, "div")
		x := output.NewReadVarExpr("x")
		singleton := func() *ops_update.Interpolation {
			return ops_update.NewInterpolation([]string{"", ""}, []output.OutputExpression{x}, nil)
		}
		attr := ops_update.NewAttributeOp(xref, nil, "title", nil, singleton(), nil, false, false, nil, nil)
		prefixed := ops_update.NewAttributeOp(xref, nil, "alt", nil,
			ops_update.NewInterpolation([]string{"a", ""}, []output.OutputExpression{x}, nil), nil, false, false, nil, nil)
		prop := ops_update.NewPropertyOp(xref, "id", nil, singleton(), false, nil, false, nil, nil)
		update := job.RootView().Update
		update.Push(attr)
		update.Push(prefixed)
		update.Push(prop)

		phases.CollapseSingletonInterpolations(job)

		if attr.Interpolation != nil || attr.Expression != output.OutputExpression(x) {
			t.Error("expected the attribute to be collapsed")
		}
		if prefixed.Interpolation == nil {
			t.Error("expected a prefixed interpolation to be kept")
		}
		if prop.Interpolation == nil {
			t.Error("expected the property interpolation to be kept")
		}
	})
}

func TestOrderOps(t *testing.T) {
	t.Run("should order bindings of one element and keep the last map", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		xref := element(job, "div")
		v := output.NewReadVarExpr("v")
		update := job.RootView().Update
		update.Push(ops_update.NewAttributeOp(xref, nil, "role", v, nil, nil, false, false, nil, nil))
		update.Push(ops_update.NewPropertyOp(xref, "title", v, nil, false, nil, false, nil, nil))
		update.Push(ops_update.NewClassPropOp(xref, "on", v))
		first := ops_update.NewStyleMapOp(xref, v, nil)
		update.Push(first)
		update.Push(ops_update.NewStylePropOp(xref, "width", v, nil, nil))
		second := ops_update.NewStyleMapOp(xref, v, nil)
		update.Push(second)
		last := ops_update.NewStyleMapOp(xref, v, nil)
		update.Push(last)

		phases.OrderOps(job)

		want := []ir.OpKind{ir.OpKindStyleMap, ir.OpKindStyleProp, ir.OpKindClassProp, ir.OpKindProperty, ir.OpKindAttribute}
		if diff := cmp.Diff(want, kinds(update)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if update.Get(0) != ir_operation.Op(last) {
			t.Error("expected the last style map to be kept")
		}
		if first.GetDebugListId() != nil || second.GetDebugListId() != nil {
			t.Error("expected the earlier style maps to be removed")
		}
	})

	t.Run("should not reorder across an advance", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		xref := element(job, "div")
		v := output.NewReadVarExpr("v")
		update := job.RootView().Update
		update.Push(ops_update.NewPropertyOp(xref, "title", v, nil, false, nil, false, nil, nil))
		update.Push(ops_update.NewAdvanceOp(1))
		update.Push(ops_update.NewClassPropOp(xref, "on", v))

		phases.OrderOps(job)

		want := []ir.OpKind{ir.OpKindProperty, ir.OpKindAdvance, ir.OpKindClassProp}
		if diff := cmp.Diff(want, kinds(update)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestResolveSanitizers(t *testing.T) {
	property := func(job *compilation.ComponentCompilationJob, target ir_operation.XrefId, name string, contexts ...core.SecurityContext) *ops_update.PropertyOp {
		op := ops_update.NewPropertyOp(target, name, output.NewReadVarExpr("v"), nil, false, contexts, false, nil, nil)
		job.RootView().Update.Push(op)
		return op
	}
	sanitizerOf := func(op *ops_update.PropertyOp) string {
		if op.Sanitizer == nil {
			return ""
		}
		return output.EmitExpression(op.Sanitizer)
	}

	t.Run("should pick a sanitizer by security context", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		a := element(job, "a")
		frame := element(job, "iframe")
		url := property(job, a, "href", core.SecurityContextURL)
		either := property(job, a, "src", core.SecurityContextURL, core.SecurityContextRESOURCE_URL)
		html := property(job, a, "innerHTML", core.SecurityContextHTML)
		plain := property(job, a, "title", core.SecurityContextNONE)
		sandbox := property(job, frame, "sandbox", core.SecurityContextNONE)

		phases.ResolveSanitizers(job)

		got := []string{sanitizerOf(url), sanitizerOf(either), sanitizerOf(html), sanitizerOf(plain), sanitizerOf(sandbox)}
		want := []string{
			"i0." + r3_identifiers.SanitizeUrl.Name,
			"i0." + r3_identifiers.SanitizeUrlOrResourceUrl.Name,
			"i0.ɵɵsanitizeHtml",
			"",
			"i0." + r3_identifiers.ValidateIframeAttribute.Name,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should panic on ambiguous security contexts", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		property(job, element(job, "div"), "x", core.SecurityContextHTML, core.SecurityContextURL)
		defer func() {
			if r := recover(); r != "AssertionError: Ambiguous security context" {
				t.Errorf("unexpected panic %v", r)
			}
		}()
		phases.ResolveSanitizers(job)
	})
}

func TestChain(t *testing.T) {
	call := func(ref output.ExternalReference, args ...output.OutputExpression) ir_operation.Op {
		return ops_shared.NewStatementOp(output.NewExpressionStatement(
			output.NewInvokeFunctionExpr(output.NewExternalExpr(ref), args, false)))
	}
	lit := func(v interface{}) output.OutputExpression { return output.NewLiteralExpr(v) }

	t.Run("should chain runs of the same instruction", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		create := job.RootView().Create
		create.Push(call(r3_identifiers.ElementStart, lit(0), lit("div")))
		create.Push(call(r3_identifiers.ElementStart, lit(1), lit("span")))
		create.Push(call(r3_identifiers.Text, lit(2)))
		create.Push(call(r3_identifiers.ElementEnd))
		create.Push(call(r3_identifiers.ElementEnd))

		phases.Chain(job)

		var got []string
		for op := range create.All() {
			got = append(got, output.EmitStatements([]output.OutputStatement{op.(*ops_shared.StatementOp).Statement}))
		}
		want := []string{
			"i0.ɵɵelementStart(0,'div')(1,'span');",
			"i0.ɵɵtext(2);",
			"i0.ɵɵelementEnd()();",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should start a new chain at the maximum length", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		for i := range phases.MaxChainLength + 1 {
			job.RootView().Create.Push(call(r3_identifiers.Element, lit(i), lit("br")))
		}

		phases.Chain(job)

		if diff := cmp.Diff(2, job.RootView().Create.Len()); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}
