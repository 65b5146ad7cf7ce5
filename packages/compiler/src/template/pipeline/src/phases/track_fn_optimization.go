package phases

import (
	"ngc-pipeline/packages/compiler/src/output"
	r3_identifiers "ngc-pipeline/packages/compiler/src/render3/r3_identifiers"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_shared "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// OptimizeTrackFns optimizes `track` functions in `for` repeaters. They can sometimes be "optimized,"
// i.e. transformed into inline expressions, in lieu of an external function call. For example,
// tracking by `$index` can be optimized into an inline `trackByIndex` reference. This phase checks
// track expressions for optimizable cases.
func OptimizeTrackFns(job *pipeline.ComponentCompilationJob) {
	root := job.RootView().Xref
	for _, unit := range job.Views() {
		for op := range unit.Create.All() {
			repeaterOp, ok := op.(*ops_create.RepeaterCreateOp)
			if !ok {
				continue
			}

			if isReadOf(repeaterOp.Track, "$index") {
				// Top-level access of `$index` uses the built in `repeaterTrackByIndex`.
				repeaterOp.TrackByFn = output.NewExternalExpr(r3_identifiers.RepeaterTrackByIndex)
			} else if isReadOf(repeaterOp.Track, "$item") {
				// Top-level access of the item uses the built in `repeaterTrackByIdentity`.
				repeaterOp.TrackByFn = output.NewExternalExpr(r3_identifiers.RepeaterTrackByIdentity)
			} else if method, ok := trackByMethod(root, repeaterOp.Track); ok {
				// Mark the function as using the component instance to play it safe
				// since the method might be using `this` internally.
				repeaterOp.UsesComponentInstance = true

				if method.Receiver.(*expression.ContextExpr).View == unit.Xref {
					// Top-level method calls in the form of `fn($index, item)` can be passed in directly.
					repeaterOp.TrackByFn = method
				} else {
					// The method lives on the component, which is not this view's context. The
					// instance is fetched instead, and the track expression is replaced so that
					// no context is resolved for it later.
					componentInstance := output.NewInvokeFunctionExpr(output.NewExternalExpr(r3_identifiers.ComponentInstance), nil, false)
					repeaterOp.TrackByFn = output.NewReadPropExpr(componentInstance, method.Name)
					repeaterOp.Track = repeaterOp.TrackByFn
				}
			} else {
				// The track function could not be optimized.
				// Replace context reads with a special IR expression, since context reads in a track
				// function are emitted specially.
				repeaterOp.Track = expression.TransformExpressionsInExpression(
					repeaterOp.Track,
					func(expr output.OutputExpression, flags expression.VisitorContextFlag) output.OutputExpression {
						switch e := expr.(type) {
						case *expression.PipeBindingExpr:
							panic("Illegal State: Pipes are not allowed in this context")
						case *expression.ContextExpr:
							repeaterOp.UsesComponentInstance = true
							return expression.NewTrackContextExpr(e.View)
						}
						return expr
					},
					expression.VisitorContextFlagNone,
				)

				// The tracking expression gets its own op list since it may need additional ops,
				// e.g. temporary variables, when generating the final code.
				trackOpList := ir_operation.NewOpList()
				trackOpList.Push(ops_shared.NewStatementOp(output.NewReturnStatement(repeaterOp.Track)))
				repeaterOp.TrackByOps = trackOpList
			}
		}
	}
}

func isReadOf(expr output.OutputExpression, name string) bool {
	read, ok := expr.(*output.ReadVarExpr)
	return ok && read.Name == name
}

// trackByMethod matches a track expression of the form `fn($index)` or `fn($index, $item)`, where
// `fn` is a method on the component context, and returns the method reference.
func trackByMethod(root ir_operation.XrefId, expr output.OutputExpression) (*output.ReadPropExpr, bool) {
	invokeExpr, ok := expr.(*output.InvokeFunctionExpr)
	if !ok || len(invokeExpr.Args) == 0 || len(invokeExpr.Args) > 2 {
		return nil, false
	}
	readProp, ok := invokeExpr.Fn.(*output.ReadPropExpr)
	if !ok {
		return nil, false
	}
	if contextExpr, ok := readProp.Receiver.(*expression.ContextExpr); !ok || contextExpr.View != root {
		return nil, false
	}
	if !isReadOf(invokeExpr.Args[0], "$index") {
		return nil, false
	}
	if len(invokeExpr.Args) == 2 && !isReadOf(invokeExpr.Args[1], "$item") {
		return nil, false
	}
	return readProp, true
}
