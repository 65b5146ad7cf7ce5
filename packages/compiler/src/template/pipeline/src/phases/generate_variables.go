package phases

import (
	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_shared "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"
	ir_traits "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/traits"
	ir_variable "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/variable"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// GenerateVariables generates a preamble sequence for each view creation block and listener function which declares
// any variables that be referenced in other operations in the block.
// Variables generated include:
//   - the context of the restored view within event listener handlers.
//   - context variables from the current view as well as all parent views (including the root
//     context if needed).
//   - local references from elements within the current view and any lexical parents.
//
// Variables are generated here unconditionally, and may optimized away in future operations if it
// turns out their values (and any side effects) are unused.
func GenerateVariables(job *pipeline.ComponentCompilationJob) {
	recursivelyProcessView(job, job.RootView(), nil)
}

// Scope is the lexical scope of a view, including a reference to its parent view's scope, if any.
type Scope struct {
	// XrefId of the view to which this scope corresponds.
	View ir_operation.XrefId

	ViewContextVariable *ir_variable.ContextVariable

	ContextVariables map[string]*ir_variable.IdentifierVariable

	Aliases []*ir_variable.AliasVariable

	// Local references collected from elements within the view.
	References []Reference

	// Scope of the parent view, if any.
	Parent *Scope
}

// Reference is information needed about a local reference collected from an element within a view.
type Reference struct {
	// Name given to the local reference variable within the template.
	// This is not the name which will be used for the variable declaration in the generated
	// template code.
	Name string

	// XrefId of the element-like node which this reference targets.
	// The reference may be either to the element (or template) itself, or to a directive on it.
	TargetId ir_operation.XrefId

	TargetSlot *ir_traits.SlotHandle

	// A generated offset of this reference among all the references on a specific element.
	Offset int

	Variable *ir_variable.IdentifierVariable
}

// recursivelyProcessView processes the given view and generates preambles for it and any listeners that it
// declares. parentScope captures any variables which should be inherited by this view, and is nil
// for the root view.
func recursivelyProcessView(job *pipeline.ComponentCompilationJob, view *pipeline.ViewCompilationUnit, parentScope *Scope) {
	// Extract a `Scope` from this view.
	scope := getScopeForView(job, view, parentScope)

	for op := range view.Create.All() {
		switch o := op.(type) {
		case *ops_create.TemplateOp, *ops_create.ConditionalCreateOp, *ops_create.ConditionalBranchCreateOp:
			// Descend into child embedded views.
			recursivelyProcessView(job, job.MustView(o.(ir_operation.CreateOp).GetXref()), scope)
		case *ops_create.ProjectionOp:
			if o.FallbackView != nil {
				recursivelyProcessView(job, job.MustView(*o.FallbackView), scope)
			}
		case *ops_create.RepeaterCreateOp:
			recursivelyProcessView(job, job.MustView(o.Xref), scope)
			if o.EmptyView != nil {
				recursivelyProcessView(job, job.MustView(*o.EmptyView), scope)
			}
			if o.TrackByOps != nil {
				o.TrackByOps.Prepend(generateVariablesInScopeForView(job, view, scope))
			}
		case ops_create.HandlerOp:
			// Prepend variables to listener handler functions.
			o.GetHandlerOps().Prepend(generateVariablesInScopeForView(job, view, scope))
		}
	}

	view.Update.Prepend(generateVariablesInScopeForView(job, view, scope))
}

// getScopeForView processes a view and generates a `Scope` representing the variables available for reference within
// that view.
func getScopeForView(job *pipeline.ComponentCompilationJob, view *pipeline.ViewCompilationUnit, parent *Scope) *Scope {
	scope := &Scope{
		View:                view.Xref,
		ViewContextVariable: ir_variable.NewContextVariable(view.Xref),
		ContextVariables:    make(map[string]*ir_variable.IdentifierVariable),
		Aliases:             view.Aliases,
		Parent:              parent,
	}

	for _, contextVariable := range view.ContextVariables {
		scope.ContextVariables[contextVariable.Identifier] = ir_variable.NewIdentifierVariable(contextVariable.Identifier, false)
	}

	for op := range view.Create.All() {
		element, ok := op.(ops_create.ElementOrContainerOp)
		if !ok {
			continue
		}
		// Record available local references from this element.
		for offset, ref := range element.GetElementOrContainerBase().LocalRefs {
			scope.References = append(scope.References, Reference{
				Name:       ref.Name,
				TargetId:   element.GetXref(),
				TargetSlot: element.GetConsumesSlotTrait().Handle,
				Offset:     offset,
				Variable:   ir_variable.NewIdentifierVariable(ref.Name, false),
			})
		}
	}

	return scope
}

// generateVariablesInScopeForView generates declarations for all variables that are in scope for a given view.
// This is a recursive process, as views inherit variables available from their parent view, which
// itself may have inherited variables, etc.
func generateVariablesInScopeForView(
	job *pipeline.ComponentCompilationJob,
	view *pipeline.ViewCompilationUnit,
	scope *Scope,
) []ir_operation.Op {
	var newOps []ir_operation.Op

	if scope.View != view.Xref {
		// Before generating variables for a parent view, we need to switch to the context of the parent
		// view with a `nextContext` expression. This context switching operations itself declares a
		// variable, because the context of the view may be referenced directly.
		newOps = append(newOps, ops_shared.NewVariableOp(
			job.AllocateXrefId(),
			scope.ViewContextVariable,
			expression.NewNextContextExpr(),
			ir.VariableFlagsNone,
		))
	}

	// Add variables for all context variables available in this scope's view.
	scopeView := job.MustView(scope.View)
	for _, contextVariable := range scopeView.ContextVariables {
		context := expression.NewContextExpr(scope.View)
		// We either read the context, or, if the variable is CTX_REF, use the context directly.
		var variable output.OutputExpression = context
		if contextVariable.Value != ir_variable.CTX_REF {
			variable = output.NewReadPropExpr(context, contextVariable.Value)
		}
		newOps = append(newOps, ops_shared.NewVariableOp(
			job.AllocateXrefId(),
			scope.ContextVariables[contextVariable.Identifier],
			variable,
			ir.VariableFlagsNone,
		))
	}

	for _, alias := range scope.Aliases {
		newOps = append(newOps, ops_shared.NewVariableOp(
			job.AllocateXrefId(),
			alias,
			alias.Expression.Clone(),
			ir.VariableFlagsAlwaysInline,
		))
	}

	// Add variables for all local references declared for elements in this scope.
	for _, ref := range scope.References {
		newOps = append(newOps, ops_shared.NewVariableOp(
			job.AllocateXrefId(),
			ref.Variable,
			expression.NewReferenceExpr(ref.TargetId, ref.TargetSlot, ref.Offset),
			ir.VariableFlagsNone,
		))
	}

	if scope.Parent != nil {
		// Recursively add variables from the parent scope.
		newOps = append(newOps, generateVariablesInScopeForView(job, view, scope.Parent)...)
	}
	return newOps
}
