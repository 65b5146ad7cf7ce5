package phases_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-pipeline/packages/compiler/src/i18n"
	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"
	"ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
	"ngc-pipeline/packages/compiler/src/template/pipeline/src/phases"
)

// i18nTemplate pushes an ng-template acting as a message placeholder into host and returns its view
func i18nTemplate(job *compilation.ComponentCompilationJob, host *compilation.ViewCompilationUnit) *compilation.ViewCompilationUnit {
	view := job.AllocateView(host.Xref)
	tag := "ng-template"
	placeholder := i18n.NewTagPlaceholder(tag, "START_TAG_NG_TEMPLATE", "CLOSE_TAG_NG_TEMPLATE")
	host.Create.Push(ops_create.NewTemplateOp(view.Xref, ir.TemplateKindNgTemplate, &tag, tag, placeholder))
	return view
}

func i18nBlock(job *compilation.ComponentCompilationJob, view *compilation.ViewCompilationUnit, fill func()) *ops_create.I18nStartOp {
	xref := job.AllocateXrefId()
	start := ops_create.NewI18nStartOp(xref, i18n.NewMessage("msg", "", "", "", nil), nil)
	view.Create.Push(start)
	fill()
	view.Create.Push(ops_create.NewI18nEndOp(xref))
	return start
}

// subTemplateIndices lists the index of the block opening each view, -1 for a root block and -2 for none
func subTemplateIndices(views ...*compilation.ViewCompilationUnit) []int {
	var out []int
	for _, view := range views {
		start, ok := view.Create.First().(*ops_create.I18nStartOp)
		if !ok {
			out = append(out, -2)
			continue
		}
		if start.SubTemplateIndex == nil {
			out = append(out, -1)
			continue
		}
		out = append(out, *start.SubTemplateIndex)
	}
	return out
}

func countI18nStarts(views ...*compilation.ViewCompilationUnit) int {
	count := 0
	for _, view := range views {
		for op := range view.Create.All() {
			if _, ok := op.(*ops_create.I18nStartOp); ok {
				count++
			}
		}
	}
	return count
}

func TestPropagateI18nBlocks(t *testing.T) {
	t.Run("should number nested placeholder templates in order", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		root := job.RootView()
		var child, grandchild *compilation.ViewCompilationUnit
		start := i18nBlock(job, root, func() {
			child = i18nTemplate(job, root)
			grandchild = i18nTemplate(job, child)
		})

		phases.PropagateI18nBlocks(job)

		if diff := cmp.Diff([]int{-1, 1, 2}, subTemplateIndices(root, child, grandchild)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		wrapper := child.Create.First().(*ops_create.I18nStartOp)
		if diff := cmp.Diff(start.Xref, wrapper.Root); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should restart numbering for each root block", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		root := job.RootView()
		var first, second *compilation.ViewCompilationUnit
		i18nBlock(job, root, func() { first = i18nTemplate(job, root) })
		i18nBlock(job, root, func() { second = i18nTemplate(job, root) })

		phases.PropagateI18nBlocks(job)

		if diff := cmp.Diff([]int{1, 1}, subTemplateIndices(first, second)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should not wrap a view twice", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		root := job.RootView()
		var child, grandchild *compilation.ViewCompilationUnit
		i18nBlock(job, root, func() {
			child = i18nTemplate(job, root)
			grandchild = i18nTemplate(job, child)
		})

		phases.PropagateI18nBlocks(job)
		phases.PropagateI18nBlocks(job)

		if diff := cmp.Diff(3, countI18nStarts(root, child, grandchild)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]int{-1, 1, 2}, subTemplateIndices(root, child, grandchild)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should panic on a placeholder template outside a block", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		i18nTemplate(job, job.RootView())
		defer func() {
			if recover() == nil {
				t.Error("expected a panic")
			}
		}()
		phases.PropagateI18nBlocks(job)
	})
}

func TestConvertI18nText(t *testing.T) {
	t.Run("should bind interpolated text into the block and apply once", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		root := job.RootView()
		text := job.AllocateXrefId()
		start := i18nBlock(job, root, func() { root.Create.Push(ops_create.NewTextOp(text, "")) })
		outside := job.AllocateXrefId()
		root.Create.Push(ops_create.NewTextOp(outside, ""))
		exprs := []output.OutputExpression{output.NewReadVarExpr("a"), output.NewReadVarExpr("b")}
		root.Update.Push(ops_update.NewInterpolateTextOp(text, ops_update.NewInterpolation([]string{"", " ", ""}, exprs, nil)))
		root.Update.Push(ops_update.NewInterpolateTextOp(outside, ops_update.NewInterpolation([]string{"", ""}, exprs[:1], nil)))

		phases.ConvertI18nText(job)
		phases.ApplyI18nExpressions(job)

		if diff := cmp.Diff([]ir.OpKind{ir.OpKindI18nStart, ir.OpKindI18nEnd, ir.OpKindText}, kinds(root.Create)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		want := []ir.OpKind{ir.OpKindI18nExpression, ir.OpKindI18nExpression, ir.OpKindI18nApply, ir.OpKindInterpolateText}
		if diff := cmp.Diff(want, kinds(root.Update)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		exprOp := root.Update.Get(1).(*ops_update.I18nExpressionOp)
		if exprOp.Target != start.Xref || exprOp.Text != text || exprOp.Handle != start.Handle {
			t.Error("expected the expression to be bound to the enclosing block")
		}
		apply := root.Update.Get(2).(*ops_update.I18nApplyOp)
		if apply.Owner != start.Xref || apply.Handle != start.Handle {
			t.Error("expected the apply to target the enclosing block")
		}
	})
}
