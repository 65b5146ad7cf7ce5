package phases

import (
	"fmt"
	"strings"

	"ngc-pipeline/packages/compiler/src/schema"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_host "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/host"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
	pipeline_util "ngc-pipeline/packages/compiler/src/template/pipeline/src/util"
)

// SpecializeBindings specializes binding operations into more specific operations types.
func SpecializeBindings(job pipeline.Job) {
	elements := pipeline_util.ElementOrContainerMap(job)
	for _, unit := range job.Units() {
		for op := range unit.GetUpdate().All() {
			if bindingOp, ok := op.(*ops_update.BindingOp); ok {
				specializeBindingOp(job, unit.GetUpdate(), bindingOp, elements)
			}
		}
	}
}

// specializeBindingOp specializes a single binding operation
func specializeBindingOp(
	job pipeline.Job,
	list *ir_operation.OpList,
	bindingOp *ops_update.BindingOp,
	elements map[ir_operation.XrefId]ops_create.ElementOrContainerOp,
) {
	base := job.Base()

	switch bindingOp.BindingKind {
	case ir.BindingKindAttribute:
		if bindingOp.Name == "ngNonBindable" {
			target := lookupElementBinding(elements, bindingOp.Target)
			target.GetElementOrContainerBase().NonBindable = true
			list.Remove(bindingOp)
		} else if strings.HasPrefix(bindingOp.Name, "animate.") {
			list.Replace(bindingOp, newAnimationBindingOp(bindingOp, ir.AnimationBindingKindString))
		} else {
			namespace, name := splitNsName(bindingOp.Name)
			attrOp := ops_update.NewAttributeOp(
				bindingOp.Target,
				namespace,
				name,
				bindingOp.Expression,
				bindingOp.Interpolation,
				bindingOp.SecurityContext,
				bindingOp.IsTextAttribute,
				bindingOp.IsStructuralTemplateAttribute,
				bindingOp.TemplateKind,
				bindingOp.I18nMessage,
			)
			list.Replace(bindingOp, attrOp)
		}
	case ir.BindingKindAnimation:
		list.Replace(bindingOp, newAnimationBindingOp(bindingOp, ir.AnimationBindingKindValue))
	case ir.BindingKindProperty, ir.BindingKindLegacyAnimation:
		// Convert a property binding targeting an ARIA attribute (e.g. [aria-label]) into an
		// attribute binding when we know it can't also target an input. Note that a `Host` job is
		// always `DomOnly`, so this condition must be checked first.
		if base.Mode == pipeline.TemplateCompilationModeDomOnly && schema.IsAriaAttribute(bindingOp.Name) {
			attrOp := ops_update.NewAttributeOp(
				bindingOp.Target,
				nil,
				bindingOp.Name,
				bindingOp.Expression,
				bindingOp.Interpolation,
				bindingOp.SecurityContext,
				false,
				bindingOp.IsStructuralTemplateAttribute,
				bindingOp.TemplateKind,
				bindingOp.I18nMessage,
			)
			list.Replace(bindingOp, attrOp)
		} else if base.Kind == pipeline.CompilationJobKindHost {
			domPropOp := ops_host.NewDomPropertyOp(
				bindingOp.Name,
				bindingOp.Expression,
				bindingOp.Interpolation,
				bindingOp.BindingKind,
				bindingOp.SecurityContext,
			)
			list.Replace(bindingOp, domPropOp)
		} else if bindingOp.Name == "field" && bindingOp.Interpolation == nil {
			controlOp := ops_update.NewControlOp(
				bindingOp.Target,
				bindingOp.Name,
				bindingOp.Expression,
				bindingOp.SecurityContext,
			)
			list.Replace(bindingOp, controlOp)
		} else {
			propOp := ops_update.NewPropertyOp(
				bindingOp.Target,
				bindingOp.Name,
				bindingOp.Expression,
				bindingOp.Interpolation,
				bindingOp.BindingKind == ir.BindingKindLegacyAnimation,
				bindingOp.SecurityContext,
				bindingOp.IsStructuralTemplateAttribute,
				bindingOp.TemplateKind,
				bindingOp.I18nMessage,
			)
			list.Replace(bindingOp, propOp)
		}
	case ir.BindingKindTwoWayProperty:
		if bindingOp.Interpolation != nil || bindingOp.Expression == nil {
			panic(fmt.Sprintf("Expected value of two-way property binding \"%s\" to be an expression", bindingOp.Name))
		}
		twoWayOp := ops_update.NewTwoWayPropertyOp(
			bindingOp.Target,
			bindingOp.Name,
			bindingOp.Expression,
			bindingOp.SecurityContext,
			bindingOp.TemplateKind,
			bindingOp.I18nMessage,
		)
		list.Replace(bindingOp, twoWayOp)
	case ir.BindingKindClassName:
		if bindingOp.Interpolation != nil {
			panic(fmt.Sprintf("AssertionError: class binding \"%s\" cannot be interpolated", bindingOp.Name))
		}
		list.Replace(bindingOp, ops_update.NewClassPropOp(bindingOp.Target, bindingOp.Name, bindingOp.Expression))
	case ir.BindingKindStyleProperty:
		styleOp := ops_update.NewStylePropOp(
			bindingOp.Target,
			bindingOp.Name,
			bindingOp.Expression,
			bindingOp.Interpolation,
			bindingOp.Unit,
		)
		list.Replace(bindingOp, styleOp)
	case ir.BindingKindTemplate, ir.BindingKindI18n:
		// Only used for directive matching; extracted as attributes later.
	}
}

func newAnimationBindingOp(bindingOp *ops_update.BindingOp, kind ir.AnimationBindingKind) *ops_update.AnimationBindingOp {
	animationKind := ir.AnimationKindLeave
	if bindingOp.Name == "animate.enter" {
		animationKind = ir.AnimationKindEnter
	}
	return ops_update.NewAnimationBindingOp(
		bindingOp.Target,
		bindingOp.Name,
		animationKind,
		kind,
		bindingOp.Expression,
	)
}

// splitNsName splits `:ns:name` into its namespace and local name
func splitNsName(elementName string) (*string, string) {
	if !strings.HasPrefix(elementName, ":") {
		return nil, elementName
	}
	colonIndex := strings.Index(elementName[1:], ":")
	if colonIndex == -1 {
		panic(fmt.Sprintf("Unsupported format \"%s\" expecting \":namespace:name\"", elementName))
	}
	namespace := elementName[1 : colonIndex+1]
	return &namespace, elementName[colonIndex+2:]
}

// lookupElementBinding looks up an element in the given map by xref ID.
func lookupElementBinding(
	elements map[ir_operation.XrefId]ops_create.ElementOrContainerOp,
	xref ir_operation.XrefId,
) ops_create.ElementOrContainerOp {
	el, exists := elements[xref]
	if !exists {
		panic("All attributes should have an element-like target")
	}
	return el
}
