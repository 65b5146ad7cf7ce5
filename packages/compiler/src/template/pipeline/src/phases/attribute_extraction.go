package phases

import (
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"
	ir_traits "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/traits"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
	pipeline_util "ngc-pipeline/packages/compiler/src/template/pipeline/src/util"
)

// ExtractAttributes finds all extractable attribute and binding ops, and creates ExtractedAttributeOps
// for them. Static attributes are moved out of the update list; the names of property and listener
// bindings are recorded so the runtime can match directives against them.
func ExtractAttributes(job pipeline.Job) {
	base := job.Base()
	recordBindings := base.Mode == pipeline.TemplateCompilationModeFull && base.Kind != pipeline.CompilationJobKindHost

	for _, unit := range job.Units() {
		elements := pipeline_util.CreateOpXrefMap(unit)

		for op := range pipeline.UnitOps(unit) {
			switch o := op.(type) {
			case *ops_update.AttributeOp:
				extractAttributeOp(job, unit, o, elements)
			case *ops_update.PropertyOp:
				if !recordBindings || o.IsLegacyAnimationTrigger {
					continue
				}
				bindingKind := ir.BindingKindProperty
				if o.I18nMessage != nil && o.TemplateKind != nil && *o.TemplateKind == ir.TemplateKindStructural {
					bindingKind = ir.BindingKindI18n
				} else if o.IsStructuralTemplate {
					bindingKind = ir.BindingKindTemplate
				}
				extracted := ops_create.NewExtractedAttributeOp(o.Target, bindingKind, nil, o.Name, nil, o.SecurityContext)
				unit.GetCreate().InsertBefore(extracted, lookupElementExtract(elements, o.Target))
			case *ops_update.TwoWayPropertyOp:
				if !recordBindings {
					continue
				}
				extracted := ops_create.NewExtractedAttributeOp(o.Target, ir.BindingKindTwoWayProperty, nil, o.Name, nil, o.SecurityContext)
				unit.GetCreate().InsertBefore(extracted, lookupElementExtract(elements, o.Target))
			case *ops_create.ListenerOp:
				if !recordBindings || o.IsLegacyAnimationListener {
					continue
				}
				extracted := ops_create.NewExtractedAttributeOp(o.Target, ir.BindingKindProperty, nil, o.Name, nil, nil)
				unit.GetCreate().InsertBefore(extracted, lookupElementExtract(elements, o.Target))
			case *ops_create.TwoWayListenerOp:
				if !recordBindings {
					continue
				}
				extracted := ops_create.NewExtractedAttributeOp(o.Target, ir.BindingKindProperty, nil, o.Name, nil, nil)
				unit.GetCreate().InsertBefore(extracted, lookupElementExtract(elements, o.Target))
			}
		}
	}
}

// extractAttributeOp moves a static or constant attribute binding into the create list
func extractAttributeOp(
	job pipeline.Job,
	unit pipeline.CompilationUnit,
	op *ops_update.AttributeOp,
	elements map[ir_operation.XrefId]ir_traits.ConsumesSlotOp,
) {
	if op.Interpolation != nil {
		return
	}
	if !op.IsTextAttribute && !op.Expression.IsConstant() {
		return
	}

	bindingKind := ir.BindingKindAttribute
	if op.IsStructuralTemplateAttribute {
		bindingKind = ir.BindingKindTemplate
	}
	extracted := ops_create.NewExtractedAttributeOp(
		op.Target,
		bindingKind,
		op.Namespace,
		op.Name,
		op.Expression,
		op.SecurityContext,
	)
	extracted.I18nMessage = op.I18nMessage

	if job.Base().Kind == pipeline.CompilationJobKindHost {
		// This attribute will apply to the enclosing host binding compilation unit, so order doesn't matter.
		unit.GetCreate().Push(extracted)
	} else {
		unit.GetCreate().InsertBefore(extracted, lookupElementExtract(elements, op.Target))
	}
	unit.GetUpdate().Remove(op)
}

func lookupElementExtract(
	elements map[ir_operation.XrefId]ir_traits.ConsumesSlotOp,
	xref ir_operation.XrefId,
) ir_traits.ConsumesSlotOp {
	el, ok := elements[xref]
	if !ok {
		panic("All attributes should have an element-like target.")
	}
	return el
}
