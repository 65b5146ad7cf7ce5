package phases

import (
	"fmt"

	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_host "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/host"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"
	ir_traits "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/traits"

	pipeline_compilation "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// CountVariables counts the number of variable slots used within each view, and stores that on the view itself, as
// well as propagates it to the `TemplateOp` for embedded views.
func CountVariables(job pipeline_compilation.Job) {
	// First, count the vars used in each view, and update the view-level counter.
	for _, unit := range job.Units() {
		varCount := 0

		// Count variables on top-level ops first. Don't explore nested expressions just yet.
		for op := range unit.GetCreate().All() {
			varCount += varsUsedByOp(op)
		}
		for op := range unit.GetUpdate().All() {
			varCount += varsUsedByOp(op)
		}

		// Count variables on expressions inside ops. We do this later because some of these expressions
		// might be conditional (e.g. `pipeBinding` inside of a ternary), and we don't want to interfere
		// with indices for top-level binding slots (e.g. `property`).
		countExpressionVars := func(expr output.OutputExpression, flags expression.VisitorContextFlag) {
			if !expression.IsIrExpression(expr) {
				return
			}
			// Some expressions require knowledge of the number of variable slots consumed.
			if usesVarOffset, ok := expr.(ir_traits.UsesVarOffsetTrait); ok {
				usesVarOffset.SetVarOffset(varCount)
			}
			if ir_traits.HasConsumesVarsTrait(expr) {
				varCount += varsUsedByIrExpression(expr)
			}
		}
		for op := range unit.GetCreate().All() {
			expression.VisitExpressionsInOp(op, countExpressionVars)
		}
		for op := range unit.GetUpdate().All() {
			expression.VisitExpressionsInOp(op, countExpressionVars)
		}

		unit.SetVars(varCount)
	}

	componentJob, ok := job.(*pipeline_compilation.ComponentCompilationJob)
	if !ok {
		return
	}

	// Add var counts for each view to the op which declares that view (if the view is an embedded view).
	for _, unit := range componentJob.Views() {
		for op := range unit.Create.All() {
			switch o := op.(type) {
			case *ops_create.RepeaterCreateOp:
				o.Vars = componentJob.MustView(o.Xref).Vars
				if o.EmptyView != nil {
					o.EmptyVars = componentJob.MustView(*o.EmptyView).Vars
				}
			case ops_create.EmbeddedViewOp:
				o.GetEmbeddedViewBase().Vars = componentJob.MustView(o.GetXref()).Vars
			}
		}
	}
}

// varsUsedByOp counts the variables used by any particular `op`.
// Different operations use different numbers of variables.
func varsUsedByOp(op ir_operation.Op) int {
	switch o := op.(type) {
	case *ops_update.AttributeOp:
		// Attribute bindings use 1 variable slot, plus 1 slot for every interpolated expression,
		// unless the interpolation is a singleton.
		slots := 1
		if o.Interpolation != nil && !o.Interpolation.IsSingleton() {
			slots += len(o.Interpolation.Expressions)
		}
		return slots
	case *ops_update.PropertyOp:
		// We need to assign a slot even for singleton interpolations, because the
		// runtime needs to store both the raw value and the stringified one.
		return 1 + interpolationVars(o.Interpolation)
	case *ops_host.DomPropertyOp:
		return 1 + interpolationVars(o.Interpolation)
	case *ops_update.ControlOp:
		// 1 for the [field] binding itself.
		// 1 for the control bindings object containing bound field states properties.
		return 2
	case *ops_update.TwoWayPropertyOp:
		// Two-way properties can only have expressions so they only need one variable slot.
		return 1
	case *ops_update.StylePropOp:
		// Style & class bindings use 2 variable slots, plus 1 slot for every interpolated expression,
		// if any.
		return 2 + interpolationVars(o.Interpolation)
	case *ops_update.StyleMapOp:
		return 2 + interpolationVars(o.Interpolation)
	case *ops_update.ClassMapOp:
		return 2 + interpolationVars(o.Interpolation)
	case *ops_update.ClassPropOp:
		return 2
	case *ops_update.InterpolateTextOp:
		// `InterpolateTextOp`s use a variable slot for each dynamic expression.
		return len(o.Interpolation.Expressions)
	case *ops_update.I18nExpressionOp:
		return 1
	case *ops_update.ConditionalOp:
		return 1
	case *ops_create.RepeaterCreateOp:
		// Repeaters need an extra variable binding slot for the empty block tracking, if they have an
		// empty view.
		if o.EmptyView != nil {
			return 1
		}
		return 0
	}
	if ir_traits.HasConsumesVarsTrait(op) {
		if _, ok := op.(*ops_update.RepeaterOp); ok {
			return 0
		}
		panic(fmt.Sprintf("Unhandled op: %T", op))
	}
	return 0
}

func interpolationVars(interpolation *ops_update.Interpolation) int {
	if interpolation == nil {
		return 0
	}
	return len(interpolation.Expressions)
}

// VarsUsedByIrExpression counts the variables used by an IR expression
func VarsUsedByIrExpression(expr output.OutputExpression) int {
	return varsUsedByIrExpression(expr)
}

func varsUsedByIrExpression(expr output.OutputExpression) int {
	switch e := expr.(type) {
	case *expression.PureFunctionExpr:
		return 1 + len(e.Args)
	case *expression.PipeBindingExpr:
		return 1 + len(e.Args)
	}
	panic(fmt.Sprintf("AssertionError: unhandled ConsumesVarsTrait expression %T", expr))
}
