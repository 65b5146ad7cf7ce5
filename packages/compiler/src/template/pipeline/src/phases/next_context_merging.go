package phases

import (
	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_shared "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// MergeNextContextExpressions merges logically sequential `NextContextExpr` operations.
//
// `NextContextExpr` can be referenced repeatedly, "popping" the runtime's context stack each time.
// When two such expressions appear back-to-back, it's possible to merge them together into a single
// `NextContextExpr` that steps multiple contexts. This merging is possible if all conditions are met:
//
//   - The result of the `NextContextExpr` that's folded into the subsequent one is not stored (that
//     is, the call is purely side-effectful).
//   - No operations in between them uses the implicit context.
func MergeNextContextExpressions(job *pipeline.ComponentCompilationJob) {
	for _, unit := range job.Views() {
		for op := range unit.Create.All() {
			if handler, ok := op.(ops_create.HandlerOp); ok {
				mergeNextContextsInOps(handler.GetHandlerOps())
			}
		}
		mergeNextContextsInOps(unit.Update)
	}
}

func mergeNextContextsInOps(opsList *ir_operation.OpList) {
	for op := range opsList.All() {
		// Look for a candidate operations to maybe merge.
		stmtOp, ok := op.(*ops_shared.StatementOp)
		if !ok {
			continue
		}
		exprStmt, ok := stmtOp.Statement.(*output.ExpressionStatement)
		if !ok {
			continue
		}
		nextCtxExpr, ok := exprStmt.Expr.(*expression.NextContextExpr)
		if !ok {
			continue
		}
		mergeSteps := nextCtxExpr.Steps

		// Try to merge this `NextContextExpr`.
		tryToMerge := true
		merged := false
		for _, candidate := range opsAfter(op) {
			if !tryToMerge {
				break
			}
			expression.VisitExpressionsInOp(candidate, func(expr output.OutputExpression, flags expression.VisitorContextFlag) {
				if !tryToMerge || !expression.IsIrExpression(expr) {
					// Either we've already merged, or failed to merge.
					return
				}
				if flags&expression.VisitorContextFlagInChildOperation != 0 {
					// We cannot merge into child operations.
					return
				}
				switch e := expr.(type) {
				case *expression.NextContextExpr:
					// Merge the previous `NextContextExpr` into this one.
					e.Steps += mergeSteps
					merged = true
					tryToMerge = false
				case *expression.GetCurrentViewExpr, *expression.ReferenceExpr:
					// Can't merge past a dependency on the context.
					tryToMerge = false
				}
			})
		}
		if merged {
			opsList.Remove(op)
		}
	}
}

// opsAfter collects the ops following op in its list.
func opsAfter(op ir_operation.Op) []ir_operation.Op {
	var after []ir_operation.Op
	for next := op.GetNext(); next != nil; next = next.GetNext() {
		if _, end := next.(*ir_operation.ListEndOp); end {
			break
		}
		after = append(after, next)
	}
	return after
}
