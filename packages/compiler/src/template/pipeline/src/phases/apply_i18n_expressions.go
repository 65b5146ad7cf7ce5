package phases

import (
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// ApplyI18nExpressions adds an apply operation after the last of each run of i18n expressions
// bound into the same block.
func ApplyI18nExpressions(job *pipeline.ComponentCompilationJob) {
	for _, unit := range job.Views() {
		for op := range unit.Update.All() {
			exprOp, ok := op.(*ops_update.I18nExpressionOp)
			if !ok || !needsApplication(exprOp) {
				continue
			}
			unit.Update.InsertAfter(ops_update.NewI18nApplyOp(exprOp.Target, exprOp.Handle), op)
		}
	}
}

// needsApplication reports whether op is not followed by another expression of the same block.
func needsApplication(op *ops_update.I18nExpressionOp) bool {
	nextExpr, ok := op.GetNext().(*ops_update.I18nExpressionOp)
	return !ok || nextExpr.Target != op.Target
}
