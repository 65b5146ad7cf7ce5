package phases

import (
	"ngc-pipeline/packages/compiler/src/output"
	ir_expression "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// ExpandSafeReads finds all unresolved safe read expressions, and converts them into the appropriate output AST
// reads, guarded by null checks. We generate temporaries as needed, to avoid re-evaluating the same
// sub-expression multiple times.
// Safe read expressions such as `a?.b` have different semantics in Angular templates as
// compared to JavaScript. In particular, they default to `null` instead of `undefined`.
func ExpandSafeReads(job pipeline.Job) {
	base := job.Base()
	safe := func(expr output.OutputExpression, flags ir_expression.VisitorContextFlag) output.OutputExpression {
		return safeTransform(expr, base)
	}
	for _, unit := range job.Units() {
		for _, list := range []*ir_operation.OpList{unit.GetCreate(), unit.GetUpdate()} {
			for op := range list.All() {
				ir_expression.TransformExpressionsInOp(op, safe, ir_expression.VisitorContextFlagNone)
				ir_expression.TransformExpressionsInOp(op, ternaryTransform, ir_expression.VisitorContextFlagNone)
			}
		}
	}
}

// needsTemporaryInSafeAccess checks if an expression requires a temporary variable to be generated.
func needsTemporaryInSafeAccess(e output.OutputExpression) bool {
	switch expr := e.(type) {
	case *output.UnaryOperatorExpr:
		return needsTemporaryInSafeAccess(expr.Expr)
	case *output.BinaryOperatorExpr:
		return needsTemporaryInSafeAccess(expr.Lhs) || needsTemporaryInSafeAccess(expr.Rhs)
	case *output.ConditionalExpr:
		if expr.FalseCase != nil && needsTemporaryInSafeAccess(expr.FalseCase) {
			return true
		}
		return needsTemporaryInSafeAccess(expr.Condition) || needsTemporaryInSafeAccess(expr.TrueCase)
	case *output.NotExpr:
		return needsTemporaryInSafeAccess(expr.Condition)
	case *ir_expression.AssignTemporaryExpr:
		return needsTemporaryInSafeAccess(expr.Expr)
	case *output.ReadPropExpr:
		return needsTemporaryInSafeAccess(expr.Receiver)
	case *output.ReadKeyExpr:
		return needsTemporaryInSafeAccess(expr.Receiver) || needsTemporaryInSafeAccess(expr.Index)
	case *output.InvokeFunctionExpr, *output.LiteralArrayExpr, *output.LiteralMapExpr,
		*ir_expression.SafeInvokeFunctionExpr, *ir_expression.PipeBindingExpr:
		return true
	default:
		return false
	}
}

// temporariesIn finds all temporary assignments in an expression
func temporariesIn(e output.OutputExpression) map[ir_operation.XrefId]bool {
	temporaries := make(map[ir_operation.XrefId]bool)
	ir_expression.VisitExpressionsInExpression(
		e,
		func(expr output.OutputExpression, flags ir_expression.VisitorContextFlag) {
			if assignTmp, ok := expr.(*ir_expression.AssignTemporaryExpr); ok {
				temporaries[assignTmp.Xref] = true
			}
		},
		ir_expression.VisitorContextFlagNone,
	)
	return temporaries
}

// eliminateTemporaryAssignments turns assignments of the given temporaries into reads
func eliminateTemporaryAssignments(e output.OutputExpression, tmps map[ir_operation.XrefId]bool) output.OutputExpression {
	return ir_expression.TransformExpressionsInExpression(
		e,
		func(expr output.OutputExpression, flags ir_expression.VisitorContextFlag) output.OutputExpression {
			if assignTmp, ok := expr.(*ir_expression.AssignTemporaryExpr); ok && tmps[assignTmp.Xref] {
				return ir_expression.NewReadTemporaryExpr(assignTmp.Xref)
			}
			return expr
		},
		ir_expression.VisitorContextFlagNone,
	)
}

// safeTernaryWithTemporary creates a safe ternary guarded by the input expression, and with a body generated by the provided
// callback on the input expression. Generates a temporary variable assignment if needed, and
// deduplicates nested temporary assignments if needed.
func safeTernaryWithTemporary(
	guard output.OutputExpression,
	body func(output.OutputExpression) output.OutputExpression,
	job *pipeline.CompilationJob,
) *ir_expression.SafeTernaryExpr {
	if needsTemporaryInSafeAccess(guard) {
		xref := job.AllocateXrefId()
		return ir_expression.NewSafeTernaryExpr(
			ir_expression.NewAssignTemporaryExpr(guard, xref),
			body(ir_expression.NewReadTemporaryExpr(xref)),
		)
	}
	// Consider an expression like `a?.[b?.c()]?.d`. The `b?.c()` will be transformed first,
	// introducing a temporary assignment into the key. Then, as part of expanding the `?.d`. That
	// assignment will be duplicated into both the guard and expression sides. We de-duplicate it,
	// by transforming it from an assignment into a read on the expression side.
	read := eliminateTemporaryAssignments(guard.Clone(), temporariesIn(guard))
	return ir_expression.NewSafeTernaryExpr(guard, body(read))
}

// accessReceiver returns the receiver of a safe or unsafe access expression
func accessReceiver(e output.OutputExpression) (output.OutputExpression, bool) {
	switch expr := e.(type) {
	case *ir_expression.SafePropertyReadExpr:
		return expr.Receiver, true
	case *ir_expression.SafeKeyedReadExpr:
		return expr.Receiver, true
	case *ir_expression.SafeInvokeFunctionExpr:
		return expr.Receiver, true
	case *output.ReadPropExpr:
		return expr.Receiver, true
	case *output.ReadKeyExpr:
		return expr.Receiver, true
	case *output.InvokeFunctionExpr:
		return expr.Fn, true
	}
	return nil, false
}

// deepestSafeTernary finds the deepest SafeTernaryExpr in an access expression
func deepestSafeTernary(e output.OutputExpression) *ir_expression.SafeTernaryExpr {
	receiver, ok := accessReceiver(e)
	if !ok {
		return nil
	}
	st, ok := receiver.(*ir_expression.SafeTernaryExpr)
	if !ok {
		return nil
	}
	for {
		next, ok := st.Expr.(*ir_expression.SafeTernaryExpr)
		if !ok {
			return st
		}
		st = next
	}
}

// safeTransform transforms safe access expressions into safe ternary expressions. An access on
// top of an already expanded ternary is pushed into the ternary's body.
func safeTransform(e output.OutputExpression, job *pipeline.CompilationJob) output.OutputExpression {
	receiver, ok := accessReceiver(e)
	if !ok {
		return e
	}

	if dst := deepestSafeTernary(e); dst != nil {
		switch expr := e.(type) {
		case *output.InvokeFunctionExpr:
			dst.Expr = output.NewInvokeFunctionExpr(dst.Expr, expr.Args, false)
		case *output.ReadPropExpr:
			dst.Expr = output.NewReadPropExpr(dst.Expr, expr.Name)
		case *output.ReadKeyExpr:
			dst.Expr = output.NewReadKeyExpr(dst.Expr, expr.Index)
		case *ir_expression.SafeInvokeFunctionExpr:
			dst.Expr = safeTernaryWithTemporary(dst.Expr, func(r output.OutputExpression) output.OutputExpression {
				return output.NewInvokeFunctionExpr(r, expr.Args, false)
			}, job)
		case *ir_expression.SafePropertyReadExpr:
			dst.Expr = safeTernaryWithTemporary(dst.Expr, func(r output.OutputExpression) output.OutputExpression {
				return output.NewReadPropExpr(r, expr.Name)
			}, job)
		case *ir_expression.SafeKeyedReadExpr:
			dst.Expr = safeTernaryWithTemporary(dst.Expr, func(r output.OutputExpression) output.OutputExpression {
				return output.NewReadKeyExpr(r, expr.Index)
			}, job)
		}
		return receiver
	}

	switch expr := e.(type) {
	case *ir_expression.SafeInvokeFunctionExpr:
		return safeTernaryWithTemporary(expr.Receiver, func(r output.OutputExpression) output.OutputExpression {
			return output.NewInvokeFunctionExpr(r, expr.Args, false)
		}, job)
	case *ir_expression.SafePropertyReadExpr:
		return safeTernaryWithTemporary(expr.Receiver, func(r output.OutputExpression) output.OutputExpression {
			return output.NewReadPropExpr(r, expr.Name)
		}, job)
	case *ir_expression.SafeKeyedReadExpr:
		return safeTernaryWithTemporary(expr.Receiver, func(r output.OutputExpression) output.OutputExpression {
			return output.NewReadKeyExpr(r, expr.Index)
		}, job)
	}
	return e
}

// ternaryTransform transforms SafeTernaryExpr into a ConditionalExpr
func ternaryTransform(e output.OutputExpression, flags ir_expression.VisitorContextFlag) output.OutputExpression {
	safeTernary, ok := e.(*ir_expression.SafeTernaryExpr)
	if !ok {
		return e
	}
	return output.NewConditionalExpr(
		output.NewBinaryOperatorExpr(output.BinaryOperatorEquals, safeTernary.Guard, output.NullExpr),
		output.NullExpr,
		safeTernary.Expr,
	)
}
