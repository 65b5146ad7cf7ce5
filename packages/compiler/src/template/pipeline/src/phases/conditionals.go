package phases

import (
	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// GenerateConditionalExpressions collapses the various conditions of conditional ops (if, switch) into a single test expression.
func GenerateConditionalExpressions(job *pipeline.ComponentCompilationJob) {
	for _, unit := range job.Views() {
		for op := range unit.Update.All() {
			conditionalOp, ok := op.(*ops_update.ConditionalOp)
			if !ok {
				continue
			}
			generateConditionalExpression(job, conditionalOp)
		}
	}
}

func generateConditionalExpression(job *pipeline.ComponentCompilationJob, op *ops_update.ConditionalOp) {
	var test output.OutputExpression

	// Any case with a nil condition is `default`. If one exists, default to it instead.
	conditions := make([]*ops_update.ConditionalCase, 0, len(op.Conditions))
	for _, cond := range op.Conditions {
		if cond.Expr == nil && test == nil {
			test = expression.NewSlotLiteralExpr(cond.TargetSlot, cond.Target)
			continue
		}
		conditions = append(conditions, cond)
	}
	if test == nil {
		// By default, a switch evaluates to `-1`, causing no template to be displayed.
		test = output.NewLiteralExpr(-1)
	}

	// Switch expressions assign their main test to a temporary, to avoid re-executing it.
	var tmp *expression.AssignTemporaryExpr
	if op.Test != nil {
		tmp = expression.NewAssignTemporaryExpr(op.Test, job.AllocateXrefId())
	}
	var caseExpressionTemporaryXref *ir_operation.XrefId

	// For each remaining condition, test whether the temporary satisfies the check. (If no temp is
	// present, just check each expression directly.)
	for i := len(conditions) - 1; i >= 0; i-- {
		cond := conditions[i]
		if cond.Expr == nil {
			continue
		}

		if tmp != nil {
			var useTmp output.OutputExpression = expression.NewReadTemporaryExpr(tmp.Xref)
			if i == 0 {
				useTmp = tmp
			}
			cond.Expr = output.NewBinaryOperatorExpr(output.BinaryOperatorIdentical, useTmp, cond.Expr)
		} else if cond.Alias != nil {
			// Since we can only pass one variable into the conditional instruction,
			// reuse the same variable to store the result of the expressions.
			if caseExpressionTemporaryXref == nil {
				xref := job.AllocateXrefId()
				caseExpressionTemporaryXref = &xref
			}
			xref := *caseExpressionTemporaryXref
			cond.Expr = expression.NewAssignTemporaryExpr(cond.Expr, xref)
			op.ContextValue = expression.NewReadTemporaryExpr(xref)
		}

		test = output.NewConditionalExpr(cond.Expr, expression.NewSlotLiteralExpr(cond.TargetSlot, cond.Target), test)
	}

	// Save the resulting aggregate expression.
	op.Processed = test

	// Clear the original conditions, since we no longer need them and they should not affect
	// subsequent phases (e.g. pipe creation).
	op.Conditions = nil
}
