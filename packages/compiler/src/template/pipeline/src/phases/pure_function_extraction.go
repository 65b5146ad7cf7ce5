package phases

import (
	"fmt"
	"strconv"
	"strings"

	"ngc-pipeline/packages/compiler/src/output"
	constant_pool "ngc-pipeline/packages/compiler/src/pool"
	ir_expression "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// ExtractPureFunctions extracts pure function bodies into shared constants of the pool.
func ExtractPureFunctions(job pipeline.Job) {
	pool := job.Base().Pool
	for op := range pipeline.AllOps(job) {
		ir_expression.VisitExpressionsInOp(op, func(expr output.OutputExpression, flags ir_expression.VisitorContextFlag) {
			pureFuncExpr, ok := expr.(*ir_expression.PureFunctionExpr)
			if !ok || pureFuncExpr.Body == nil {
				return
			}
			constantDef := &PureFunctionConstant{numArgs: len(pureFuncExpr.Args)}
			pureFuncExpr.Fn = pool.GetSharedConstant(constantDef, pureFuncExpr.Body)
			pureFuncExpr.Body = nil
		})
	}
}

// PureFunctionConstant is a shared constant definition for pure functions
type PureFunctionConstant struct {
	numArgs int
}

var _ constant_pool.SharedConstantDefinition = (*PureFunctionConstant)(nil)

// KeyOf generates a key for a pure function body
func (p *PureFunctionConstant) KeyOf(expr output.OutputExpression) string {
	switch e := expr.(type) {
	case *ir_expression.PureFunctionParameterExpr:
		return fmt.Sprintf("param(%d)", e.Index)
	case *output.LiteralArrayExpr:
		entries := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			entries[i] = p.KeyOf(entry)
		}
		return "[" + strings.Join(entries, ",") + "]"
	case *output.LiteralMapExpr:
		entries := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			key := entry.Key
			if entry.Quoted {
				key = strconv.Quote(key)
			}
			entries[i] = key + ":" + p.KeyOf(entry.Value)
		}
		return "{" + strings.Join(entries, ",") + "}"
	}
	return constant_pool.GenericKeyFnInstance.KeyOf(expr)
}

// ToSharedConstantDeclaration creates a declaration statement for the shared constant
func (p *PureFunctionConstant) ToSharedConstantDeclaration(declName string, keyExpr output.OutputExpression) output.OutputStatement {
	fnParams := make([]*output.FnParam, p.numArgs)
	for idx := range p.numArgs {
		fnParams[idx] = output.NewFnParam(fmt.Sprintf("a%d", idx))
	}

	returnExpr := ir_expression.TransformExpressionsInExpression(
		keyExpr,
		func(expr output.OutputExpression, flags ir_expression.VisitorContextFlag) output.OutputExpression {
			if paramExpr, ok := expr.(*ir_expression.PureFunctionParameterExpr); ok {
				return output.NewReadVarExpr(fmt.Sprintf("a%d", paramExpr.Index))
			}
			return expr
		},
		ir_expression.VisitorContextFlagNone,
	)

	return output.NewDeclareVarStmt(declName, output.NewArrowFunctionExpr(fnParams, returnExpr), output.StmtModifierFinal)
}
