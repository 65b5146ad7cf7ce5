package phases

import (
	"ngc-pipeline/packages/compiler/src/i18n"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// PropagateI18nBlocks propagates i18n blocks down through child templates that act as placeholders in the root i18n
// message. Specifically, perform an in-order traversal of all the views, and add i18nStart/i18nEnd
// op pairs into descending views. Also, assign an increasing sub-template index to each
// descending view.
func PropagateI18nBlocks(job *pipeline.ComponentCompilationJob) {
	propagateI18nBlocksToTemplates(job, job.RootView(), 0)
}

// propagateI18nBlocksToTemplates propagates i18n ops in the given view through to any child views recursively.
func propagateI18nBlocksToTemplates(
	job *pipeline.ComponentCompilationJob,
	unit *pipeline.ViewCompilationUnit,
	subTemplateIndex int,
) int {
	var i18nBlock *ops_create.I18nStartOp
	for op := range unit.Create.All() {
		switch o := op.(type) {
		case *ops_create.I18nStartOp:
			if subTemplateIndex == 0 {
				o.SubTemplateIndex = nil
			} else {
				index := subTemplateIndex
				o.SubTemplateIndex = &index
			}
			i18nBlock = o
		case *ops_create.I18nEndOp:
			// When we exit a root-level i18n block, reset the sub-template index counter.
			if i18nBlock != nil && i18nBlock.SubTemplateIndex == nil {
				subTemplateIndex = 0
			}
			i18nBlock = nil
		case ops_create.EmbeddedViewOp:
			subTemplateIndex = propagateI18nBlocksForView(
				job,
				job.MustView(o.GetXref()),
				i18nBlock,
				o.GetEmbeddedViewBase().I18nPlaceholder,
				subTemplateIndex,
			)
		case *ops_create.RepeaterCreateOp:
			// Propagate i18n blocks to the @for template.
			subTemplateIndex = propagateI18nBlocksForView(
				job,
				job.MustView(o.Xref),
				i18nBlock,
				o.I18nPlaceholder,
				subTemplateIndex,
			)
			// Then if there's an @empty template, propagate the i18n blocks for it as well.
			if o.EmptyView != nil {
				subTemplateIndex = propagateI18nBlocksForView(
					job,
					job.MustView(*o.EmptyView),
					i18nBlock,
					o.EmptyI18nPlaceholder,
					subTemplateIndex,
				)
			}
		case *ops_create.ProjectionOp:
			if o.FallbackView != nil {
				subTemplateIndex = propagateI18nBlocksForView(
					job,
					job.MustView(*o.FallbackView),
					i18nBlock,
					o.FallbackViewI18nPlaceholder,
					subTemplateIndex,
				)
			}
		}
	}
	return subTemplateIndex
}

func propagateI18nBlocksForView(
	job *pipeline.ComponentCompilationJob,
	view *pipeline.ViewCompilationUnit,
	i18nBlock *ops_create.I18nStartOp,
	i18nPlaceholder i18n.Placeholder,
	subTemplateIndex int,
) int {
	// We found an <ng-template> inside an i18n block; increment the sub-template counter and
	// wrap the template's view in a child i18n block.
	if i18nPlaceholder != nil {
		if i18nBlock == nil {
			panic("Expected template with i18n placeholder to be in an i18n block.")
		}
		subTemplateIndex++
		WrapTemplateWithI18n(job, view, i18nBlock)
	}

	// Continue traversing inside the template's view.
	return propagateI18nBlocksToTemplates(job, view, subTemplateIndex)
}

// WrapTemplateWithI18n wraps a template view with i18n start and end ops sharing the root of parentI18n.
// Views that already open with an i18n block are left untouched.
func WrapTemplateWithI18n(
	job *pipeline.ComponentCompilationJob,
	unit *pipeline.ViewCompilationUnit,
	parentI18n *ops_create.I18nStartOp,
) {
	if _, ok := unit.Create.First().(*ops_create.I18nStartOp); ok {
		return
	}
	id := job.AllocateXrefId()
	root := parentI18n.Root
	unit.Create.InsertAfter(ops_create.NewI18nStartOp(id, parentI18n.Message, &root), unit.Create.Head())
	unit.Create.InsertBefore(ops_create.NewI18nEndOp(id), unit.Create.Tail())
}
