package phases

import (
	"fmt"

	"ngc-pipeline/packages/compiler/src/output"
	ir_expression "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
	pipeline_instruction "ngc-pipeline/packages/compiler/src/template/pipeline/src/instruction"
)

// TransformTwoWayBindingSet transforms a `TwoWayBindingSet` expression into an expression that either
// sets a value through the `twoWayBindingSet` instruction or falls back to setting
// the value directly. E.g. the expression `TwoWayBindingSet(target, value)` becomes:
// `ng.twoWayBindingSet(target, value) || (target = value)`.
func TransformTwoWayBindingSet(job *pipeline.ComponentCompilationJob) {
	for _, unit := range job.Views() {
		for op := range unit.Create.All() {
			if _, ok := op.(*ops_create.TwoWayListenerOp); !ok {
				continue
			}

			ir_expression.TransformExpressionsInOp(
				op,
				func(expr output.OutputExpression, flags ir_expression.VisitorContextFlag) output.OutputExpression {
					twoWayBindingSet, ok := expr.(*ir_expression.TwoWayBindingSetExpr)
					if !ok {
						return expr
					}
					value := twoWayBindingSet.Value

					switch target := twoWayBindingSet.Target.(type) {
					case *output.ReadPropExpr:
						return or(pipeline_instruction.TwoWayBindingSet(target, value), target.Set(value))
					case *output.ReadKeyExpr:
						return or(pipeline_instruction.TwoWayBindingSet(target, value), target.Set(value))
					case *ir_expression.ReadVariableExpr:
						// A local template variable cannot be assigned, so only the instruction
						// is emitted. Invalid usages are flagged by template type checking.
						return pipeline_instruction.TwoWayBindingSet(target, value)
					}
					panic(fmt.Sprintf("Unsupported expression in two-way action binding: %T", twoWayBindingSet.Target))
				},
				ir_expression.VisitorContextFlagInChildOperation,
			)
		}
	}
}

// or creates a binary OR expression: `lhs || rhs`
func or(lhs, rhs output.OutputExpression) output.OutputExpression {
	return output.NewBinaryOperatorExpr(output.BinaryOperatorOr, lhs, rhs)
}
