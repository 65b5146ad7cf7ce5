package phases

import (
	"fmt"

	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_host "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/host"
	ops_shared "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
	pipeline_instruction "ngc-pipeline/packages/compiler/src/template/pipeline/src/instruction"
)

// DOM properties that need to be remapped on the compiler side.
// Note: this mapping has to be kept in sync with the equally named mapping in the runtime.
var domPropertyRemapping = map[string]string{
	"class":      "className",
	"for":        "htmlFor",
	"formaction": "formAction",
	"innerHtml":  "innerHTML",
	"readonly":   "readOnly",
	"tabindex":   "tabIndex",
}

// Reify compiles semantic operations across all views and generates output statements
// with actual runtime calls in their place.
//
// Reification replaces semantic operations with selected runtime instructions and other generated code
// structures. After reification, the create/update operation lists of all views should only contain
// `StatementOp`s (which wrap generated `output.OutputStatement`s).
func Reify(job pipeline.Job) {
	r := &reifier{job: job, domOnly: job.Base().Mode == pipeline.TemplateCompilationModeDomOnly}
	for _, unit := range job.Units() {
		r.reifyCreateOperations(unit.GetCreate())
		r.reifyUpdateOperations(unit.GetUpdate())
	}
}

type reifier struct {
	job     pipeline.Job
	domOnly bool
}

func (r *reifier) componentJob() *pipeline.ComponentCompilationJob {
	job, ok := r.job.(*pipeline.ComponentCompilationJob)
	if !ok {
		panic("AssertionError: must be compiling a component")
	}
	return job
}

// childView returns a view declared by an op of the current unit, which must have been named and counted.
func (r *reifier) childView(xref ir_operation.XrefId) *pipeline.ViewCompilationUnit {
	view := r.componentJob().MustView(xref)
	if view.FnName == nil {
		panic(fmt.Sprintf("AssertionError: expected view %d to have been named", xref))
	}
	if view.Decls == nil || view.Vars == nil {
		panic(fmt.Sprintf("AssertionError: expected view %d to have been counted", xref))
	}
	return view
}

func (r *reifier) reifyCreateOperations(list *ir_operation.OpList) {
	for op := range list.All() {
		expression.TransformExpressionsInOp(op, reifyIrExpression, expression.VisitorContextFlagNone)

		switch o := op.(type) {
		case *ops_create.TextOp:
			list.Replace(op, pipeline_instruction.Text(mustSlot(o.Handle), o.InitialValue))
		case *ops_create.ElementStartOp:
			slot := mustSlot(o.Handle)
			if r.domOnly {
				list.Replace(op, pipeline_instruction.DomElementStart(slot, o.Tag, o.Attributes, o.LocalRefsIndex))
			} else {
				list.Replace(op, pipeline_instruction.ElementStart(slot, o.Tag, o.Attributes, o.LocalRefsIndex))
			}
		case *ops_create.ElementOp:
			slot := mustSlot(o.Handle)
			if r.domOnly {
				list.Replace(op, pipeline_instruction.DomElement(slot, o.Tag, o.Attributes, o.LocalRefsIndex))
			} else {
				list.Replace(op, pipeline_instruction.Element(slot, o.Tag, o.Attributes, o.LocalRefsIndex))
			}
		case *ops_create.ElementEndOp:
			if r.domOnly {
				list.Replace(op, pipeline_instruction.DomElementEnd())
			} else {
				list.Replace(op, pipeline_instruction.ElementEnd())
			}
		case *ops_create.ContainerStartOp:
			slot := mustSlot(o.Handle)
			if r.domOnly {
				list.Replace(op, pipeline_instruction.DomElementContainerStart(slot, o.Attributes, o.LocalRefsIndex))
			} else {
				list.Replace(op, pipeline_instruction.ElementContainerStart(slot, o.Attributes, o.LocalRefsIndex))
			}
		case *ops_create.ContainerOp:
			slot := mustSlot(o.Handle)
			if r.domOnly {
				list.Replace(op, pipeline_instruction.DomElementContainer(slot, o.Attributes, o.LocalRefsIndex))
			} else {
				list.Replace(op, pipeline_instruction.ElementContainer(slot, o.Attributes, o.LocalRefsIndex))
			}
		case *ops_create.ContainerEndOp:
			if r.domOnly {
				list.Replace(op, pipeline_instruction.DomElementContainerEnd())
			} else {
				list.Replace(op, pipeline_instruction.ElementContainerEnd())
			}
		case *ops_create.I18nStartOp:
			if o.MessageIndex == nil {
				panic("AssertionError: i18n message should have been collected into a constant")
			}
			list.Replace(op, pipeline_instruction.I18nStart(mustSlot(o.Handle), *o.MessageIndex, o.SubTemplateIndex))
		case *ops_create.I18nEndOp:
			list.Replace(op, pipeline_instruction.I18nEnd())
		case *ops_create.TemplateOp:
			view := r.childView(o.Xref)
			build := pipeline_instruction.Template
			// Block templates can't have directives so we can always generate them as DOM-only.
			if o.TemplateKind == ir.TemplateKindBlock || r.domOnly {
				build = pipeline_instruction.DomTemplate
			}
			list.Replace(op, build(
				mustSlot(o.Handle),
				output.NewReadVarExpr(*view.FnName),
				*view.Decls,
				*view.Vars,
				o.Tag,
				o.Attributes,
				o.LocalRefsIndex,
			))
		case *ops_create.ConditionalCreateOp:
			view := r.childView(o.Xref)
			list.Replace(op, pipeline_instruction.ConditionalCreate(
				mustSlot(o.Handle),
				output.NewReadVarExpr(*view.FnName),
				*view.Decls,
				*view.Vars,
				o.Tag,
				o.Attributes,
				o.LocalRefsIndex,
			))
		case *ops_create.ConditionalBranchCreateOp:
			view := r.childView(o.Xref)
			list.Replace(op, pipeline_instruction.ConditionalBranchCreate(
				mustSlot(o.Handle),
				output.NewReadVarExpr(*view.FnName),
				*view.Decls,
				*view.Vars,
				o.Tag,
				o.Attributes,
				o.LocalRefsIndex,
			))
		case *ops_create.RepeaterCreateOp:
			r.reifyRepeaterCreate(list, o)
		case *ops_create.DisableBindingsOp:
			list.Replace(op, pipeline_instruction.DisableBindings())
		case *ops_create.EnableBindingsOp:
			list.Replace(op, pipeline_instruction.EnableBindings())
		case *ops_create.PipeOp:
			list.Replace(op, pipeline_instruction.Pipe(mustSlot(o.Handle), o.Name))
		case *ops_create.AnimationOp:
			if o.BindingKind == ir.AnimationBindingKindString {
				list.Replace(op, pipeline_instruction.AnimationString(o.AnimationKind, o.Expression))
				continue
			}
			fn := r.reifyListenerHandler(mustName(o.HandlerFnName), o.HandlerOps, false)
			list.Replace(op, pipeline_instruction.Animation(o.AnimationKind, fn))
		case *ops_create.AnimationListenerOp:
			fn := r.reifyListenerHandler(mustName(o.HandlerFnName), o.HandlerOps, o.ConsumesDollarEvent)
			list.Replace(op, pipeline_instruction.AnimationListener(o.AnimationKind, fn, nil))
		case *ops_create.ListenerOp:
			fn := r.reifyListenerHandler(mustName(o.HandlerFnName), o.HandlerOps, o.ConsumesDollarEvent)
			var eventTargetResolver *output.ExternalReference
			if o.EventTarget != nil {
				resolver, ok := pipeline_instruction.EventTargetResolver(*o.EventTarget)
				if !ok {
					panic(fmt.Sprintf(
						"Unexpected global target '%s' defined for '%s' event. Supported list of global targets: window,document,body.",
						*o.EventTarget,
						o.Name,
					))
				}
				eventTargetResolver = &resolver
			}
			if r.domOnly && !o.HostListener && !o.IsLegacyAnimationListener {
				list.Replace(op, pipeline_instruction.DomListener(o.Name, fn, eventTargetResolver))
			} else {
				list.Replace(op, pipeline_instruction.Listener(o.Name, fn, eventTargetResolver, o.HostListener && o.IsLegacyAnimationListener))
			}
		case *ops_create.TwoWayListenerOp:
			fn := r.reifyListenerHandler(mustName(o.HandlerFnName), o.HandlerOps, true)
			list.Replace(op, pipeline_instruction.TwoWayListener(o.Name, fn))
		case *ops_shared.VariableOp:
			list.Replace(op, reifyVariable(o))
		case *ops_create.ProjectionDefOp:
			list.Replace(op, pipeline_instruction.ProjectionDef(o.Def))
		case *ops_create.ProjectionOp:
			var fallbackFnName *string
			var fallbackDecls, fallbackVars *int
			if o.FallbackView != nil {
				view := r.childView(*o.FallbackView)
				fallbackFnName, fallbackDecls, fallbackVars = view.FnName, view.Decls, view.Vars
			}
			list.Replace(op, pipeline_instruction.Projection(
				mustSlot(o.Handle),
				o.ProjectionSlotIndex,
				o.Attributes,
				fallbackFnName,
				fallbackDecls,
				fallbackVars,
			))
		case *ops_shared.StatementOp:
			// Pass statement operations directly through.
		default:
			panic(fmt.Sprintf("AssertionError: Unsupported reification of create op %T", op))
		}
	}
}

func (r *reifier) reifyRepeaterCreate(list *ir_operation.OpList, op *ops_create.RepeaterCreateOp) {
	view := r.childView(op.Xref)
	if op.Decls == nil || op.Vars == nil {
		panic("AssertionError: expected repeater decls and vars to be set")
	}

	var emptyViewFnName *string
	var emptyDecls, emptyVars *int
	if op.EmptyView != nil {
		emptyView := r.childView(*op.EmptyView)
		emptyViewFnName, emptyDecls, emptyVars = emptyView.FnName, emptyView.Decls, emptyView.Vars
	}

	list.Replace(op, pipeline_instruction.RepeaterCreate(
		mustSlot(op.Handle),
		*view.FnName,
		*op.Decls,
		*op.Vars,
		op.Tag,
		op.Attributes,
		r.reifyTrackBy(op),
		op.UsesComponentInstance,
		emptyViewFnName,
		emptyDecls,
		emptyVars,
		op.EmptyTag,
		op.EmptyAttributes,
	))
}

func (r *reifier) reifyUpdateOperations(list *ir_operation.OpList) {
	for op := range list.All() {
		expression.TransformExpressionsInOp(op, reifyIrExpression, expression.VisitorContextFlagNone)

		switch o := op.(type) {
		case *ops_update.AdvanceOp:
			list.Replace(op, pipeline_instruction.Advance(o.Delta))
		case *ops_update.PropertyOp:
			if r.domOnly && !o.IsLegacyAnimationTrigger {
				list.Replace(op, pipeline_instruction.DomProperty(remapDomProperty(o.Name), o.Expression, o.Interpolation, o.Sanitizer))
			} else {
				list.Replace(op, pipeline_instruction.Property(o.Name, o.Expression, o.Interpolation, o.Sanitizer))
			}
		case *ops_update.ControlOp:
			list.Replace(op, pipeline_instruction.Control(o.Expression, o.Sanitizer))
		case *ops_update.TwoWayPropertyOp:
			list.Replace(op, pipeline_instruction.TwoWayProperty(o.Name, o.Expression, o.Sanitizer))
		case *ops_update.StylePropOp:
			list.Replace(op, pipeline_instruction.StyleProp(o.Name, o.Expression, o.Interpolation, o.Unit))
		case *ops_update.ClassPropOp:
			list.Replace(op, pipeline_instruction.ClassProp(o.Name, o.Expression))
		case *ops_update.StyleMapOp:
			list.Replace(op, pipeline_instruction.StyleMap(o.Expression, o.Interpolation))
		case *ops_update.ClassMapOp:
			list.Replace(op, pipeline_instruction.ClassMap(o.Expression, o.Interpolation))
		case *ops_update.InterpolateTextOp:
			list.Replace(op, pipeline_instruction.TextInterpolate(o.Interpolation.Strings, o.Interpolation.Expressions))
		case *ops_update.I18nExpressionOp:
			list.Replace(op, pipeline_instruction.I18nExp(o.Expression))
		case *ops_update.I18nApplyOp:
			list.Replace(op, pipeline_instruction.I18nApply(mustSlot(o.Handle)))
		case *ops_update.AttributeOp:
			list.Replace(op, pipeline_instruction.Attribute(o.Name, o.Expression, o.Interpolation, o.Sanitizer, o.Namespace))
		case *ops_host.DomPropertyOp:
			if o.BindingKind == ir.BindingKindLegacyAnimation || o.BindingKind == ir.BindingKindAnimation {
				if o.Interpolation != nil {
					panic("AssertionError: synthetic host properties cannot be interpolated")
				}
				list.Replace(op, pipeline_instruction.SyntheticHostProperty(o.Name, o.Expression))
			} else {
				list.Replace(op, pipeline_instruction.DomProperty(remapDomProperty(o.Name), o.Expression, o.Interpolation, o.Sanitizer))
			}
		case *ops_shared.VariableOp:
			list.Replace(op, reifyVariable(o))
		case *ops_update.ConditionalOp:
			if o.Processed == nil {
				panic("Conditional test was not set.")
			}
			list.Replace(op, pipeline_instruction.Conditional(o.Processed, o.ContextValue))
		case *ops_update.RepeaterOp:
			list.Replace(op, pipeline_instruction.Repeater(o.Collection))
		case *ops_shared.StatementOp:
			// Pass statement operations directly through.
		default:
			panic(fmt.Sprintf("AssertionError: Unsupported reification of update op %T", op))
		}
	}
}

func reifyVariable(op *ops_shared.VariableOp) ir_operation.Op {
	name := op.Variable.GetName()
	if name == nil {
		panic(fmt.Sprintf("AssertionError: unnamed variable %d", op.Xref))
	}
	return ops_shared.NewStatementOp(output.NewDeclareVarStmt(*name, op.Initializer, output.StmtModifierFinal))
}

func remapDomProperty(name string) string {
	if remapped, ok := domPropertyRemapping[name]; ok {
		return remapped
	}
	return name
}

func mustName(name *string) string {
	if name == nil {
		panic("AssertionError: expected handlerFnName to be set")
	}
	return *name
}

func reifyIrExpression(expr output.OutputExpression, flags expression.VisitorContextFlag) output.OutputExpression {
	if !expression.IsIrExpression(expr) {
		return expr
	}

	switch e := expr.(type) {
	case *expression.NextContextExpr:
		return pipeline_instruction.NextContext(e.Steps)
	case *expression.ReferenceExpr:
		return pipeline_instruction.Reference(mustSlot(e.TargetSlot) + 1 + e.Offset)
	case *expression.LexicalReadExpr:
		panic(fmt.Sprintf("AssertionError: unresolved LexicalRead of %s", e.Name))
	case *expression.ContextExpr:
		panic(fmt.Sprintf("AssertionError: unresolved context of view %d", e.View))
	case *expression.TwoWayBindingSetExpr:
		panic("AssertionError: unresolved TwoWayBindingSet")
	case *expression.RestoreViewExpr:
		if e.Resolved == nil {
			panic("AssertionError: unresolved RestoreView")
		}
		return pipeline_instruction.RestoreView(e.Resolved)
	case *expression.ResetViewExpr:
		return pipeline_instruction.ResetView(e.Expr)
	case *expression.GetCurrentViewExpr:
		return pipeline_instruction.GetCurrentView()
	case *expression.ReadVariableExpr:
		if e.Name == nil {
			panic(fmt.Sprintf("Read of unnamed variable %d", e.Xref))
		}
		return output.NewReadVarExpr(*e.Name)
	case *expression.ReadTemporaryExpr:
		if e.Name == nil {
			panic(fmt.Sprintf("Read of unnamed temporary %d", e.Xref))
		}
		return output.NewReadVarExpr(*e.Name)
	case *expression.AssignTemporaryExpr:
		if e.Name == nil {
			panic(fmt.Sprintf("Assign of unnamed temporary %d", e.Xref))
		}
		return output.NewReadVarExpr(*e.Name).Set(e.Expr)
	case *expression.PureFunctionExpr:
		if e.Fn == nil {
			panic("AssertionError: expected PureFunctions to have been extracted")
		}
		if e.VarOffset == nil {
			panic("AssertionError: expected varOffset to be set")
		}
		return pipeline_instruction.PureFunction(*e.VarOffset, e.Fn, e.Args)
	case *expression.PureFunctionParameterExpr:
		panic("AssertionError: expected PureFunctionParameterExpr to have been extracted")
	case *expression.PipeBindingExpr:
		if e.VarOffset == nil {
			panic("AssertionError: expected varOffset to be set")
		}
		return pipeline_instruction.PipeBind(mustSlot(e.TargetSlot), *e.VarOffset, e.Args)
	case *expression.SlotLiteralExpr:
		return output.NewLiteralExpr(mustSlot(e.Slot))
	case *expression.TrackContextExpr:
		return output.NewReadVarExpr("this")
	default:
		panic(fmt.Sprintf("AssertionError: Unsupported reification of ir.Expression kind: %T", expr))
	}
}

// reifyListenerHandler turns listeners into a function expression, which may or may not have the `$event`
// parameter defined.
func (r *reifier) reifyListenerHandler(
	name string,
	handlerOps *ir_operation.OpList,
	consumesDollarEvent bool,
) output.OutputExpression {
	// First, reify all instruction calls within handlerOps.
	r.reifyUpdateOperations(handlerOps)

	// If `$event` is referenced, we need to generate it as a parameter.
	params := []*output.FnParam{}
	if consumesDollarEvent {
		params = append(params, output.NewFnParam("$event"))
	}
	return output.NewFunctionExpr(params, reifiedStatements(handlerOps), &name)
}

// reifiedStatements extracts the statements of a reified list. We can expect that at this point,
// all operations have been converted to statements.
func reifiedStatements(list *ir_operation.OpList) []output.OutputStatement {
	statements := []output.OutputStatement{}
	for op := range list.All() {
		stmtOp, ok := op.(*ops_shared.StatementOp)
		if !ok {
			panic(fmt.Sprintf("AssertionError: expected reified statements, but found op %T", op))
		}
		statements = append(statements, stmtOp.Statement)
	}
	return statements
}

// reifyTrackBy reifies the tracking expression of a RepeaterCreateOp.
func (r *reifier) reifyTrackBy(op *ops_create.RepeaterCreateOp) output.OutputExpression {
	// If the tracking function was created already, there's nothing left to do.
	if op.TrackByFn != nil {
		return op.TrackByFn
	}

	params := []*output.FnParam{output.NewFnParam("$index"), output.NewFnParam("$item")}
	var fn output.OutputExpression
	if op.TrackByOps == nil {
		// If there are no additional ops related to the tracking function, we just need
		// to turn it into a function that returns the result of the expression.
		if op.UsesComponentInstance {
			fn = output.NewFunctionExpr(params, []output.OutputStatement{output.NewReturnStatement(op.Track)}, nil)
		} else {
			fn = output.NewArrowFunctionExpr(params, op.Track)
		}
	} else {
		// Otherwise first we need to reify the track-related ops.
		r.reifyUpdateOperations(op.TrackByOps)
		statements := reifiedStatements(op.TrackByOps)

		// Afterwards we can create the function from those ops.
		returnStmt, isReturn := statements[0].(*output.ReturnStatement)
		if op.UsesComponentInstance || len(statements) != 1 || !isReturn {
			fn = output.NewFunctionExpr(params, statements, nil)
		} else {
			fn = output.NewArrowFunctionExpr(params, returnStmt.Value)
		}
	}

	op.TrackByFn = r.job.Base().Pool.GetSharedFunctionReference(fn, "_forTrack", true)
	return op.TrackByFn
}
