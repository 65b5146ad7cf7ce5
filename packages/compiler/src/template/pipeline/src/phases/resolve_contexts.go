package phases

import (
	"fmt"
	"maps"

	"ngc-pipeline/packages/compiler/src/output"
	ir_expression "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_shared "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"
	ir_variable "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/variable"

	pipeline_compilation "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// ResolveContexts resolves `ir.ContextExpr` expressions (which represent embedded view or component contexts) to
// either the `ctx` parameter to component functions (for the current view context) or to variables
// that store those contexts (for contexts accessed via the `nextContext()` instruction).
func ResolveContexts(job pipeline_compilation.Job) {
	for _, unit := range job.Units() {
		processLexicalScope(unit, unit.GetCreate(), nil)
		processLexicalScope(unit, unit.GetUpdate(), nil)
	}
}

func processLexicalScope(
	view pipeline_compilation.CompilationUnit,
	opsList *ir_operation.OpList,
	parent map[ir_operation.XrefId]output.OutputExpression,
) {
	// Track the expressions used to access all available contexts within the current view, by the
	// view `ir.XrefId`.
	scope := make(map[ir_operation.XrefId]output.OutputExpression)
	maps.Copy(scope, parent)

	// The current view's context is accessible via the `ctx` parameter.
	scope[view.GetXref()] = output.NewReadVarExpr("ctx")

	for op := range opsList.All() {
		if varOp, ok := op.(*ops_shared.VariableOp); ok {
			if contextVar, ok := varOp.Variable.(*ir_variable.ContextVariable); ok {
				scope[contextVar.View] = ir_expression.NewReadVariableExpr(varOp.Xref)
			}
		}
	}

	// Prefer `ctx` of the view to any variables which happen to contain the same context.
	scope[view.GetXref()] = output.NewReadVarExpr("ctx")

	for op := range opsList.All() {
		switch o := op.(type) {
		case ops_create.HandlerOp:
			processLexicalScope(view, o.GetHandlerOps(), scope)
		case *ops_create.RepeaterCreateOp:
			if o.TrackByOps != nil {
				processLexicalScope(view, o.TrackByOps, scope)
			}
		}
	}

	for op := range opsList.All() {
		ir_expression.TransformExpressionsInOp(
			op,
			func(expr output.OutputExpression, flags ir_expression.VisitorContextFlag) output.OutputExpression {
				contextExpr, ok := expr.(*ir_expression.ContextExpr)
				if !ok {
					return expr
				}
				if ctxExpr, exists := scope[contextExpr.View]; exists {
					return ctxExpr
				}
				panic(fmt.Sprintf("No context found for reference to view %d from view %d", contextExpr.View, view.GetXref()))
			},
			ir_expression.VisitorContextFlagNone,
		)
	}
}
