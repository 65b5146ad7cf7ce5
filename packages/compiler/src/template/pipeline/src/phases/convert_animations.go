package phases

import (
	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_shared "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"
	ir_traits "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/traits"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
	pipeline_util "ngc-pipeline/packages/compiler/src/template/pipeline/src/util"
)

// ConvertAnimations converts animation binding operations to animation creation operations.
func ConvertAnimations(job pipeline.Job) {
	elements := pipeline_util.ElementOrContainerMap(job)
	isHost := job.Base().Kind == pipeline.CompilationJobKindHost

	for _, unit := range job.Units() {
		for op := range unit.GetUpdate().All() {
			animBindingOp, ok := op.(*ops_update.AnimationBindingOp)
			if !ok {
				continue
			}
			if isHost {
				unit.GetCreate().Push(getAnimationOp(animBindingOp, nil))
			} else {
				elementOp := lookupElementConvert(elements, animBindingOp.Target)
				createAnimationOp := getAnimationOp(animBindingOp, elementOp.GetConsumesSlotTrait().Handle)
				unit.GetCreate().InsertAfter(createAnimationOp, elementOp)
			}
			unit.GetUpdate().Remove(op)
		}
	}
}

// lookupElementConvert looks up an element in the given map by xref ID.
func lookupElementConvert(
	elements map[ir_operation.XrefId]ops_create.ElementOrContainerOp,
	xref ir_operation.XrefId,
) ops_create.ElementOrContainerOp {
	el, exists := elements[xref]
	if !exists {
		panic("All attributes should have an element-like target.")
	}
	return el
}

func getAnimationOp(op *ops_update.AnimationBindingOp, targetSlot *ir_traits.SlotHandle) *ops_create.AnimationOp {
	handlerOps := ir_operation.NewOpList()
	if op.BindingKind == ir.AnimationBindingKindString {
		// this is a simple string case
		return ops_create.NewAnimationOp(
			op.Target,
			targetSlot,
			op.Name,
			op.AnimationKind,
			op.BindingKind,
			op.Expression,
			handlerOps,
		)
	}
	handlerOps.Push(ops_shared.NewStatementOp(output.NewReturnStatement(op.Expression)))
	return ops_create.NewAnimationOp(
		op.Target,
		targetSlot,
		op.Name,
		op.AnimationKind,
		op.BindingKind,
		nil,
		handlerOps,
	)
}
