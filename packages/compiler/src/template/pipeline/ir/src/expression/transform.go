package expression

import (
	"fmt"

	"ngc-pipeline/packages/compiler/src/output"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_host "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/host"
	ops "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"
)

// TransformExpressionsInExpression transforms all `Expression`s in the AST of `expr` with the
// `transform` function. Children are transformed before their parent.
func TransformExpressionsInExpression(
	expr output.OutputExpression,
	transform ExpressionTransform,
	flags VisitorContextFlag,
) output.OutputExpression {
	switch e := expr.(type) {
	case IrExpression:
		e.TransformInternalExpressions(transform, flags)
	case *output.BinaryOperatorExpr:
		e.Lhs = TransformExpressionsInExpression(e.Lhs, transform, flags)
		e.Rhs = TransformExpressionsInExpression(e.Rhs, transform, flags)
	case *output.UnaryOperatorExpr:
		e.Expr = TransformExpressionsInExpression(e.Expr, transform, flags)
	case *output.ReadPropExpr:
		e.Receiver = TransformExpressionsInExpression(e.Receiver, transform, flags)
	case *output.ReadKeyExpr:
		e.Receiver = TransformExpressionsInExpression(e.Receiver, transform, flags)
		e.Index = TransformExpressionsInExpression(e.Index, transform, flags)
	case *output.InvokeFunctionExpr:
		e.Fn = TransformExpressionsInExpression(e.Fn, transform, flags)
		for i := range e.Args {
			e.Args[i] = TransformExpressionsInExpression(e.Args[i], transform, flags)
		}
	case *output.LiteralArrayExpr:
		for i := range e.Entries {
			e.Entries[i] = TransformExpressionsInExpression(e.Entries[i], transform, flags)
		}
	case *output.LiteralMapExpr:
		for _, entry := range e.Entries {
			entry.Value = TransformExpressionsInExpression(entry.Value, transform, flags)
		}
	case *output.ConditionalExpr:
		e.Condition = TransformExpressionsInExpression(e.Condition, transform, flags)
		e.TrueCase = TransformExpressionsInExpression(e.TrueCase, transform, flags)
		if e.FalseCase != nil {
			e.FalseCase = TransformExpressionsInExpression(e.FalseCase, transform, flags)
		}
	case *output.TypeofExpr:
		e.Expr = TransformExpressionsInExpression(e.Expr, transform, flags)
	case *output.NotExpr:
		e.Condition = TransformExpressionsInExpression(e.Condition, transform, flags)
	case *output.ArrowFunctionExpr:
		if e.Body != nil {
			e.Body = TransformExpressionsInExpression(e.Body, transform, flags)
		}
		for _, stmt := range e.Statements {
			TransformExpressionsInStatement(stmt, transform, flags)
		}
	}
	// ReadVarExpr, ExternalExpr, LiteralExpr, FunctionExpr, TaggedTemplateExpr and pooled constants have no
	// transformable children.
	return transform(expr, flags)
}

// TransformExpressionsInStatement transforms all expressions in a statement
func TransformExpressionsInStatement(
	stmt output.OutputStatement,
	transform ExpressionTransform,
	flags VisitorContextFlag,
) {
	switch s := stmt.(type) {
	case *output.ExpressionStatement:
		s.Expr = TransformExpressionsInExpression(s.Expr, transform, flags)
	case *output.ReturnStatement:
		s.Value = TransformExpressionsInExpression(s.Value, transform, flags)
	case *output.DeclareVarStmt:
		if s.Value != nil {
			s.Value = TransformExpressionsInExpression(s.Value, transform, flags)
		}
	case *output.IfStmt:
		s.Condition = TransformExpressionsInExpression(s.Condition, transform, flags)
		for _, inner := range s.TrueCase {
			TransformExpressionsInStatement(inner, transform, flags)
		}
		for _, inner := range s.FalseCase {
			TransformExpressionsInStatement(inner, transform, flags)
		}
	case *output.DeclareFunctionStmt:
		// Declared functions are fully lowered already.
	default:
		panic(fmt.Sprintf("AssertionError: unhandled statement kind %T", stmt))
	}
}

func transformExpressionsInInterpolation(interpolation *ops_update.Interpolation, transform ExpressionTransform, flags VisitorContextFlag) {
	for i := range interpolation.Expressions {
		interpolation.Expressions[i] = TransformExpressionsInExpression(interpolation.Expressions[i], transform, flags)
	}
}

// transformBinding transforms whichever of expression and interpolation is set
func transformBinding(
	expr output.OutputExpression,
	interpolation *ops_update.Interpolation,
	transform ExpressionTransform,
	flags VisitorContextFlag,
) output.OutputExpression {
	if interpolation != nil {
		transformExpressionsInInterpolation(interpolation, transform, flags)
	}
	if expr != nil {
		return TransformExpressionsInExpression(expr, transform, flags)
	}
	return nil
}

func transformOptional(expr output.OutputExpression, transform ExpressionTransform, flags VisitorContextFlag) output.OutputExpression {
	if expr == nil {
		return nil
	}
	return TransformExpressionsInExpression(expr, transform, flags)
}

func transformOpList(list *ir_operation.OpList, transform ExpressionTransform, flags VisitorContextFlag) {
	if list == nil {
		return
	}
	for op := range list.All() {
		TransformExpressionsInOp(op, transform, flags|VisitorContextFlagInChildOperation)
	}
}

// TransformExpressionsInOp transforms all expressions in an operation, including
// the ops of handler bodies and track functions, which are visited with
// VisitorContextFlagInChildOperation set.
func TransformExpressionsInOp(
	op ir_operation.Op,
	transform ExpressionTransform,
	flags VisitorContextFlag,
) {
	switch o := op.(type) {
	case *ops.StatementOp:
		TransformExpressionsInStatement(o.Statement, transform, flags)
	case *ops.VariableOp:
		o.Initializer = TransformExpressionsInExpression(o.Initializer, transform, flags)
	case *ops_update.BindingOp:
		o.Expression = transformBinding(o.Expression, o.Interpolation, transform, flags)
	case *ops_update.PropertyOp:
		o.Expression = transformBinding(o.Expression, o.Interpolation, transform, flags)
		o.Sanitizer = transformOptional(o.Sanitizer, transform, flags)
	case *ops_update.TwoWayPropertyOp:
		o.Expression = TransformExpressionsInExpression(o.Expression, transform, flags)
		o.Sanitizer = transformOptional(o.Sanitizer, transform, flags)
	case *ops_update.AttributeOp:
		o.Expression = transformBinding(o.Expression, o.Interpolation, transform, flags)
		o.Sanitizer = transformOptional(o.Sanitizer, transform, flags)
	case *ops_update.StylePropOp:
		o.Expression = transformBinding(o.Expression, o.Interpolation, transform, flags)
	case *ops_update.ClassPropOp:
		o.Expression = TransformExpressionsInExpression(o.Expression, transform, flags)
	case *ops_update.StyleMapOp:
		o.Expression = transformBinding(o.Expression, o.Interpolation, transform, flags)
	case *ops_update.ClassMapOp:
		o.Expression = transformBinding(o.Expression, o.Interpolation, transform, flags)
	case *ops_update.InterpolateTextOp:
		transformExpressionsInInterpolation(o.Interpolation, transform, flags)
	case *ops_update.I18nExpressionOp:
		o.Expression = TransformExpressionsInExpression(o.Expression, transform, flags)
	case *ops_update.ConditionalOp:
		o.Test = transformOptional(o.Test, transform, flags)
		for _, condition := range o.Conditions {
			condition.Expr = transformOptional(condition.Expr, transform, flags)
		}
		o.Processed = transformOptional(o.Processed, transform, flags)
		o.ContextValue = transformOptional(o.ContextValue, transform, flags)
	case *ops_update.RepeaterOp:
		o.Collection = TransformExpressionsInExpression(o.Collection, transform, flags)
	case *ops_update.AnimationBindingOp:
		o.Expression = TransformExpressionsInExpression(o.Expression, transform, flags)
	case *ops_update.ControlOp:
		o.Expression = TransformExpressionsInExpression(o.Expression, transform, flags)
		o.Sanitizer = transformOptional(o.Sanitizer, transform, flags)
	case *ops_host.DomPropertyOp:
		o.Expression = transformBinding(o.Expression, o.Interpolation, transform, flags)
		o.Sanitizer = transformOptional(o.Sanitizer, transform, flags)
	case *ops_create.ListenerOp:
		transformOpList(o.HandlerOps, transform, flags)
	case *ops_create.TwoWayListenerOp:
		transformOpList(o.HandlerOps, transform, flags)
	case *ops_create.AnimationListenerOp:
		transformOpList(o.HandlerOps, transform, flags)
	case *ops_create.AnimationOp:
		o.Expression = transformOptional(o.Expression, transform, flags)
		transformOpList(o.HandlerOps, transform, flags)
	case *ops_create.ExtractedAttributeOp:
		o.Expression = transformOptional(o.Expression, transform, flags)
		o.TrustedValueFn = transformOptional(o.TrustedValueFn, transform, flags)
	case *ops_create.RepeaterCreateOp:
		if o.TrackByOps == nil {
			o.Track = TransformExpressionsInExpression(o.Track, transform, flags)
		} else {
			transformOpList(o.TrackByOps, transform, flags)
		}
		o.TrackByFn = transformOptional(o.TrackByFn, transform, flags)
	case *ops_update.AdvanceOp, *ops_update.I18nApplyOp,
		*ops_create.ElementStartOp, *ops_create.ElementOp, *ops_create.ElementEndOp,
		*ops_create.ContainerStartOp, *ops_create.ContainerOp, *ops_create.ContainerEndOp,
		*ops_create.TemplateOp, *ops_create.ConditionalCreateOp, *ops_create.ConditionalBranchCreateOp,
		*ops_create.TextOp, *ops_create.PipeOp, *ops_create.ProjectionDefOp, *ops_create.ProjectionOp,
		*ops_create.I18nStartOp, *ops_create.I18nEndOp,
		*ops_create.DisableBindingsOp, *ops_create.EnableBindingsOp:
		// These operations contain no expressions.
	default:
		panic(fmt.Sprintf("AssertionError: unhandled op kind %s", op.GetKind()))
	}
}

// VisitExpressionsInOp visits all expressions in an operation
func VisitExpressionsInOp(
	op ir_operation.Op,
	visitor func(expr output.OutputExpression, flags VisitorContextFlag),
) {
	TransformExpressionsInOp(
		op,
		func(expr output.OutputExpression, flags VisitorContextFlag) output.OutputExpression {
			visitor(expr, flags)
			return expr
		},
		VisitorContextFlagNone,
	)
}

// VisitExpressionsInExpression visits expr and every expression nested in it
func VisitExpressionsInExpression(
	expr output.OutputExpression,
	visitor func(expr output.OutputExpression, flags VisitorContextFlag),
	flags VisitorContextFlag,
) {
	TransformExpressionsInExpression(
		expr,
		func(expr output.OutputExpression, flags VisitorContextFlag) output.OutputExpression {
			visitor(expr, flags)
			return expr
		},
		flags,
	)
}

// IsStringLiteral checks whether the given expression is a string literal
func IsStringLiteral(expr output.OutputExpression) bool {
	if literal, ok := expr.(*output.LiteralExpr); ok {
		_, ok := literal.Value.(string)
		return ok
	}
	return false
}
