package phases

import (
	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// ResolveDollarEvent transforms any variable inside a listener with the name `$event` into a output
// lexical read immediately, and does not participate in any of the normal logic for handling variables.
func ResolveDollarEvent(job pipeline.Job) {
	for _, unit := range job.Units() {
		transformDollarEvent(unit.GetCreate())
		transformDollarEvent(unit.GetUpdate())
	}
}

func transformDollarEvent(list *ir_operation.OpList) {
	for op := range list.All() {
		var consumes *bool
		switch o := op.(type) {
		case *ops_create.ListenerOp:
			consumes = &o.ConsumesDollarEvent
		case *ops_create.AnimationListenerOp:
			consumes = &o.ConsumesDollarEvent
		case *ops_create.TwoWayListenerOp:
			// Two-way listeners always consume `$event` so they omit this field.
		default:
			continue
		}
		expression.TransformExpressionsInOp(op, func(expr output.OutputExpression, flags expression.VisitorContextFlag) output.OutputExpression {
			read, ok := expr.(*expression.LexicalReadExpr)
			if !ok || read.Name != "$event" {
				return expr
			}
			if consumes != nil {
				*consumes = true
			}
			return output.NewReadVarExpr(read.Name)
		}, expression.VisitorContextFlagInChildOperation)
	}
}
