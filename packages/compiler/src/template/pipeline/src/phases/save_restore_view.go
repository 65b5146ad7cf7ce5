package phases

import (
	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_shared "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"
	ir_variable "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/variable"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// SaveAndRestoreView eagerly generates all save view variables; they will be optimized away later.
// When inside of a listener, we may need access to one or more enclosing views. Therefore, each
// view should save the current view, and each listener must have the ability to restore the
// appropriate view.
func SaveAndRestoreView(job *pipeline.ComponentCompilationJob) {
	for _, unit := range job.Views() {
		unit.Create.Prepend([]ir_operation.Op{ops_shared.NewVariableOp(
			job.AllocateXrefId(),
			ir_variable.NewSavedViewVariable(unit.Xref),
			expression.NewGetCurrentViewExpr(),
			ir.VariableFlagsNone,
		)})

		for op := range unit.Create.All() {
			handler, ok := op.(ops_create.HandlerOp)
			if !ok {
				continue
			}

			// Embedded views always need the save/restore view operations.
			needsRestoreView := unit != job.RootView()
			if !needsRestoreView {
				for handlerOp := range handler.GetHandlerOps().All() {
					expression.VisitExpressionsInOp(handlerOp, func(expr output.OutputExpression, flags expression.VisitorContextFlag) {
						if _, ok := expr.(*expression.ReferenceExpr); ok {
							// Listeners that reference() a local ref need the save/restore view operation.
							needsRestoreView = true
						}
					})
				}
			}

			if needsRestoreView {
				addSaveRestoreViewOperationToListener(job, unit, handler)
			}
		}
	}
}

func addSaveRestoreViewOperationToListener(
	job *pipeline.ComponentCompilationJob,
	unit *pipeline.ViewCompilationUnit,
	op ops_create.HandlerOp,
) {
	handlerOps := op.GetHandlerOps()
	handlerOps.Prepend([]ir_operation.Op{ops_shared.NewVariableOp(
		job.AllocateXrefId(),
		ir_variable.NewContextVariable(unit.Xref),
		expression.NewRestoreViewExpr(unit.Xref),
		ir.VariableFlagsNone,
	)})

	// The "restore view" operations in listeners requires a call to `resetView` to reset the
	// context prior to returning from the listener operations. Find any `return` statements in
	// the listener body and wrap them in a call to reset the view.
	for handlerOp := range handlerOps.All() {
		stmtOp, ok := handlerOp.(*ops_shared.StatementOp)
		if !ok {
			continue
		}
		if returnStmt, ok := stmtOp.Statement.(*output.ReturnStatement); ok {
			returnStmt.Value = expression.NewResetViewExpr(returnStmt.Value)
		}
	}
}
