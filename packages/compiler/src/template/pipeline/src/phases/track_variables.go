package phases

import (
	"slices"

	"ngc-pipeline/packages/compiler/src/output"
	ir_expression "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// GenerateTrackVariables finds variable usages inside the `track` expression on a `for` repeater,
// where the `$index` and `$item` variables are ambiently available, and replaces them with the
// appropriate output read.
func GenerateTrackVariables(job *pipeline.ComponentCompilationJob) {
	for _, unit := range job.Views() {
		for op := range unit.Create.All() {
			repeaterOp, ok := op.(*ops_create.RepeaterCreateOp)
			if !ok {
				continue
			}

			repeaterOp.Track = ir_expression.TransformExpressionsInExpression(
				repeaterOp.Track,
				func(expr output.OutputExpression, flags ir_expression.VisitorContextFlag) output.OutputExpression {
					lexicalRead, ok := expr.(*ir_expression.LexicalReadExpr)
					if !ok {
						return expr
					}
					if slices.Contains(repeaterOp.VarNames.DollarIndex, lexicalRead.Name) {
						return output.NewReadVarExpr("$index")
					}
					if lexicalRead.Name == repeaterOp.VarNames.DollarImplicit {
						return output.NewReadVarExpr("$item")
					}
					return expr
				},
				ir_expression.VisitorContextFlagNone,
			)
		}
	}
}
