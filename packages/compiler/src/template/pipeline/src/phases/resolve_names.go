package phases

import (
	"fmt"

	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operations "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_shared "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"
	ir_variable "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/variable"

	pipeline_compilation "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// SavedView represents information about a SavedView variable
type SavedView struct {
	View     ir_operations.XrefId
	Variable ir_operations.XrefId
}

// ResolveNames resolves lexical references in views (`ir.LexicalReadExpr`) to either a target variable or to
// property reads on the top-level component context.
//
// Also matches `ir.RestoreViewExpr` expressions with the variables of their corresponding saved
// views.
func ResolveNames(job pipeline_compilation.Job) {
	root := job.Root().GetXref()
	for _, unit := range job.Units() {
		processLexicalScopeResolveName(root, unit, unit.GetCreate(), nil)
		processLexicalScopeResolveName(root, unit, unit.GetUpdate(), nil)
	}
}

func processLexicalScopeResolveName(
	root ir_operations.XrefId,
	unit pipeline_compilation.CompilationUnit,
	opsList *ir_operations.OpList,
	savedView *SavedView,
) {
	// Maps names defined in the lexical scope of this template to the `ir.XrefId`s of the variable
	// declarations which represent those values.
	//
	// Since variables are generated in each view for the entire lexical scope (including any
	// identifiers from parent templates) only local variables need be considered here.
	scope := make(map[string]ir_operations.XrefId)

	// Symbols defined within the current scope. They take precedence over ones defined outside.
	localDefinitions := make(map[string]ir_operations.XrefId)

	// First, step through the operations list and:
	// 1) build up the `scope` mapping
	// 2) recurse into any listener functions
	for op := range opsList.All() {
		switch o := op.(type) {
		case *ops_shared.VariableOp:
			processVariableForResolveNames(o, scope, localDefinitions, &savedView)
		case ops_create.HandlerOp:
			// Listener functions have separate variable declarations, so process them as a separate
			// lexical scope.
			processLexicalScopeResolveName(root, unit, o.GetHandlerOps(), savedView)
		case *ops_create.RepeaterCreateOp:
			if o.TrackByOps != nil {
				processLexicalScopeResolveName(root, unit, o.TrackByOps, savedView)
			}
		}
	}

	resolve := func(expr output.OutputExpression, flags expression.VisitorContextFlag) output.OutputExpression {
		switch e := expr.(type) {
		case *expression.LexicalReadExpr:
			// Either the name is defined within the current view, or it represents a property from
			// the main component context.
			if xref, exists := localDefinitions[e.Name]; exists {
				return expression.NewReadVariableExpr(xref)
			}
			if xref, exists := scope[e.Name]; exists {
				return expression.NewReadVariableExpr(xref)
			}
			return output.NewReadPropExpr(expression.NewContextExpr(root), e.Name)
		case *expression.RestoreViewExpr:
			// `ir.RestoreViewExpr` happens in listener functions and restores a saved view from the
			// parent creation list. We expect to find that we captured the `savedView` previously, and
			// that it matches the expected view to be restored.
			if e.Resolved != nil {
				return e
			}
			if savedView == nil || savedView.View != e.View {
				panic(fmt.Sprintf("AssertionError: no saved view %d from view %d", e.View, unit.GetXref()))
			}
			e.Resolved = expression.NewReadVariableExpr(savedView.Variable)
			return e
		}
		return expr
	}

	// Next, use the `scope` mapping to match `ir.LexicalReadExpr` with defined names in the lexical
	// scope. Handler bodies were already resolved above with their own scopes.
	for op := range opsList.All() {
		switch o := op.(type) {
		case *ops_create.AnimationOp:
			if o.Expression != nil {
				o.Expression = expression.TransformExpressionsInExpression(o.Expression, resolve, expression.VisitorContextFlagNone)
			}
		case ops_create.HandlerOp:
		default:
			expression.TransformExpressionsInOp(op, resolve, expression.VisitorContextFlagNone)
		}
	}

	for op := range opsList.All() {
		expression.VisitExpressionsInOp(op, func(expr output.OutputExpression, flags expression.VisitorContextFlag) {
			if lexicalRead, ok := expr.(*expression.LexicalReadExpr); ok {
				panic(fmt.Sprintf("AssertionError: no lexical reads should remain, but found read of %s", lexicalRead.Name))
			}
		})
	}
}

func processVariableForResolveNames(
	varOp *ops_shared.VariableOp,
	scope map[string]ir_operations.XrefId,
	localDefinitions map[string]ir_operations.XrefId,
	savedView **SavedView,
) {
	switch variable := varOp.Variable.(type) {
	case *ir_variable.IdentifierVariable:
		if variable.Local {
			if _, exists := localDefinitions[variable.Identifier]; exists {
				return
			}
			localDefinitions[variable.Identifier] = varOp.Xref
		} else if _, exists := scope[variable.Identifier]; exists {
			return
		}
		scope[variable.Identifier] = varOp.Xref
	case *ir_variable.AliasVariable:
		// This variable represents some kind of identifier which can be used in the template.
		if _, exists := scope[variable.Identifier]; exists {
			return
		}
		scope[variable.Identifier] = varOp.Xref
	case *ir_variable.SavedViewVariable:
		// This variable represents a snapshot of the current view context, and can be used to
		// restore that context within listener functions.
		*savedView = &SavedView{
			View:     variable.View,
			Variable: varOp.Xref,
		}
	}
}
