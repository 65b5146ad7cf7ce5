package phases

import (
	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ir_traits "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/traits"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// CreatePipes generates pipe creation instructions. We do this based on the pipe bindings found in
// the update block, in the order we see them. Each pipe is created right after the element whose
// binding uses it.
func CreatePipes(job *pipeline.ComponentCompilationJob) {
	for _, unit := range job.Views() {
		processPipeBindingsInView(unit)
	}
}

func processPipeBindingsInView(unit *pipeline.ViewCompilationUnit) {
	for op := range unit.Update.All() {
		expression.VisitExpressionsInOp(op, func(expr output.OutputExpression, flags expression.VisitorContextFlag) {
			pipeBinding, ok := expr.(*expression.PipeBindingExpr)
			if !ok {
				return
			}
			if flags&expression.VisitorContextFlagInChildOperation != 0 {
				panic("AssertionError: pipe bindings should not appear in child expressions")
			}

			dependsOn, ok := op.(ir_traits.DependsOnSlotContextOp)
			if !ok {
				panic("AssertionError: expected slot handle to be assigned for pipe creation")
			}
			addPipeToCreationBlock(unit, dependsOn.GetDependsOnSlotContextTrait().Target, pipeBinding)
		})
	}
}

func addPipeToCreationBlock(
	unit *pipeline.ViewCompilationUnit,
	afterTargetXref ir_operation.XrefId,
	binding *expression.PipeBindingExpr,
) {
	// Find the appropriate point to insert the Pipe creation operations.
	// We're looking for `afterTargetXref` (and also want to insert after any other pipe operations
	// which might be beyond it).
	for op := range unit.Create.All() {
		slotOp, ok := op.(ir_traits.ConsumesSlotOp)
		if !ok || slotOp.GetXref() != afterTargetXref {
			continue
		}

		// We've found a tentative insertion point; however, we also want to skip past any _other_ pipe
		// operations present.
		var after ir_operation.Op = op
		for after.GetNext() != nil && after.GetNext().GetKind() == ir.OpKindPipe {
			after = after.GetNext()
		}

		pipe := ops_create.NewPipeOp(binding.Target, binding.TargetSlot, binding.Name)
		unit.Create.InsertAfter(pipe, after)
		return
	}

	// At this point, we've failed to add the pipe to the creation block.
	panic("AssertionError: unable to find insertion point for pipe " + binding.Name)
}
