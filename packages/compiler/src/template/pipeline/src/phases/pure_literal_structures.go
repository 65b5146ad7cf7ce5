package phases

import (
	"ngc-pipeline/packages/compiler/src/output"
	constant "ngc-pipeline/packages/compiler/src/pool"
	ir_expression "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// GeneratePureLiteralStructures transforms literal arrays and maps in update expressions into pure
// function expressions, so that they keep their identity between change detection runs. Literals
// that are fully constant are shared through the constant pool instead.
func GeneratePureLiteralStructures(job pipeline.Job) {
	pool := job.Base().Pool
	for _, unit := range job.Units() {
		for op := range unit.GetUpdate().All() {
			ir_expression.TransformExpressionsInOp(
				op,
				func(expr output.OutputExpression, flags ir_expression.VisitorContextFlag) output.OutputExpression {
					if flags&ir_expression.VisitorContextFlagInChildOperation != 0 {
						return expr
					}

					switch literal := expr.(type) {
					case *output.LiteralArrayExpr:
						return transformLiteralArray(pool, literal)
					case *output.LiteralMapExpr:
						return transformLiteralMap(pool, literal)
					}
					return expr
				},
				ir_expression.VisitorContextFlagNone,
			)
		}
	}
}

func transformLiteralArray(pool *constant.ConstantPool, expr *output.LiteralArrayExpr) output.OutputExpression {
	if expr.IsConstant() {
		return pool.GetConstLiteral(expr, true)
	}
	derivedEntries := make([]output.OutputExpression, 0, len(expr.Entries))
	var nonConstantArgs []output.OutputExpression
	for _, entry := range expr.Entries {
		if entry.IsConstant() {
			derivedEntries = append(derivedEntries, entry)
			continue
		}
		idx := len(nonConstantArgs)
		nonConstantArgs = append(nonConstantArgs, entry)
		derivedEntries = append(derivedEntries, ir_expression.NewPureFunctionParameterExpr(idx))
	}
	return ir_expression.NewPureFunctionExpr(output.NewLiteralArrayExpr(derivedEntries), nonConstantArgs)
}

func transformLiteralMap(pool *constant.ConstantPool, expr *output.LiteralMapExpr) output.OutputExpression {
	if expr.IsConstant() {
		return pool.GetConstLiteral(expr, true)
	}
	derivedEntries := make([]*output.LiteralMapEntry, 0, len(expr.Entries))
	var nonConstantArgs []output.OutputExpression
	for _, entry := range expr.Entries {
		if entry.Value.IsConstant() {
			derivedEntries = append(derivedEntries, entry)
			continue
		}
		idx := len(nonConstantArgs)
		nonConstantArgs = append(nonConstantArgs, entry.Value)
		derivedEntries = append(derivedEntries, output.NewLiteralMapEntry(
			entry.Key,
			ir_expression.NewPureFunctionParameterExpr(idx),
			entry.Quoted,
		))
	}
	return ir_expression.NewPureFunctionExpr(output.NewLiteralMapExpr(derivedEntries), nonConstantArgs)
}
