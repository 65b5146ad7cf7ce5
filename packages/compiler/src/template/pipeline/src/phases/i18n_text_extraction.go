package phases

import (
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// ConvertI18nText removes text nodes within i18n blocks since they are already hardcoded into the
// i18n message. Interpolations into those text nodes become one i18n expression per dynamic part,
// applied later.
func ConvertI18nText(job *pipeline.ComponentCompilationJob) {
	for _, unit := range job.Views() {
		textBlocks := make(map[ir_operation.XrefId]*ops_create.I18nStartOp)
		var current *ops_create.I18nStartOp
		for op := range unit.Create.All() {
			switch o := op.(type) {
			case *ops_create.I18nStartOp:
				current = o
			case *ops_create.I18nEndOp:
				current = nil
			case *ops_create.TextOp:
				if current != nil {
					textBlocks[o.Xref] = current
					unit.Create.Remove(op)
				}
			}
		}
		if len(textBlocks) == 0 {
			continue
		}

		for op := range unit.Update.All() {
			interpolate, ok := op.(*ops_update.InterpolateTextOp)
			if !ok {
				continue
			}
			block, ok := textBlocks[interpolate.Target]
			if !ok {
				continue
			}
			exprOps := make([]ir_operation.Op, len(interpolate.Interpolation.Expressions))
			for i, expr := range interpolate.Interpolation.Expressions {
				exprOps[i] = ops_update.NewI18nExpressionOp(block.Xref, interpolate.Target, block.Handle, expr)
			}
			unit.Update.ReplaceWithMany(op, exprOps)
		}
	}
}
