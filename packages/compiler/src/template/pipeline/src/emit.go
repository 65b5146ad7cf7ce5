package pipeline

import (
	"fmt"
	"log"
	"time"

	"ngc-pipeline/packages/compiler/src/output"
	constant_pool "ngc-pipeline/packages/compiler/src/pool"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_shared "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"

	"ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
	"ngc-pipeline/packages/compiler/src/template/pipeline/src/phases"
)

// Phase represents a compilation phase
type Phase struct {
	Kind compilation.CompilationJobKind
	Name string
	Fn   interface{} // func(compilation.Job) | func(*compilation.ComponentCompilationJob)
}

var phasesList = []Phase{
	{compilation.CompilationJobKindTmpl, "PropagateI18nBlocks", phases.PropagateI18nBlocks},
	{compilation.CompilationJobKindBoth, "SpecializeStyleBindings", phases.SpecializeStyleBindings},
	{compilation.CompilationJobKindBoth, "SpecializeBindings", phases.SpecializeBindings},
	{compilation.CompilationJobKindBoth, "ConvertAnimations", phases.ConvertAnimations},
	{compilation.CompilationJobKindBoth, "ExtractAttributes", phases.ExtractAttributes},
	{compilation.CompilationJobKindBoth, "CollapseSingletonInterpolations", phases.CollapseSingletonInterpolations},
	{compilation.CompilationJobKindBoth, "OrderOps", phases.OrderOps},
	{compilation.CompilationJobKindTmpl, "GenerateConditionalExpressions", phases.GenerateConditionalExpressions},
	{compilation.CompilationJobKindTmpl, "CreatePipes", phases.CreatePipes},
	{compilation.CompilationJobKindBoth, "GeneratePureLiteralStructures", phases.GeneratePureLiteralStructures},
	{compilation.CompilationJobKindTmpl, "GenerateProjectionDefs", phases.GenerateProjectionDefs},
	{compilation.CompilationJobKindTmpl, "GenerateVariables", phases.GenerateVariables},
	{compilation.CompilationJobKindTmpl, "SaveAndRestoreView", phases.SaveAndRestoreView},
	{compilation.CompilationJobKindBoth, "ResolveDollarEvent", phases.ResolveDollarEvent},
	{compilation.CompilationJobKindTmpl, "GenerateTrackVariables", phases.GenerateTrackVariables},
	{compilation.CompilationJobKindBoth, "ResolveNames", phases.ResolveNames},
	{compilation.CompilationJobKindTmpl, "TransformTwoWayBindingSet", phases.TransformTwoWayBindingSet},
	{compilation.CompilationJobKindTmpl, "OptimizeTrackFns", phases.OptimizeTrackFns},
	{compilation.CompilationJobKindBoth, "ResolveContexts", phases.ResolveContexts},
	{compilation.CompilationJobKindBoth, "ResolveSanitizers", phases.ResolveSanitizers},
	{compilation.CompilationJobKindTmpl, "LiftLocalRefs", phases.LiftLocalRefs},
	{compilation.CompilationJobKindBoth, "ExpandSafeReads", phases.ExpandSafeReads},
	{compilation.CompilationJobKindBoth, "GenerateTemporaryVariables", phases.GenerateTemporaryVariables},
	{compilation.CompilationJobKindBoth, "OptimizeVariables", phases.OptimizeVariables},
	{compilation.CompilationJobKindTmpl, "ConvertI18nText", phases.ConvertI18nText},
	{compilation.CompilationJobKindTmpl, "ApplyI18nExpressions", phases.ApplyI18nExpressions},
	{compilation.CompilationJobKindTmpl, "AllocateSlots", phases.AllocateSlots},
	{compilation.CompilationJobKindTmpl, "CollectI18nConsts", phases.CollectI18nConsts},
	{compilation.CompilationJobKindBoth, "CollectElementConsts", phases.CollectElementConsts},
	{compilation.CompilationJobKindBoth, "CountVariables", phases.CountVariables},
	{compilation.CompilationJobKindTmpl, "GenerateAdvance", phases.GenerateAdvance},
	{compilation.CompilationJobKindBoth, "NameFunctionsAndVariables", phases.NameFunctionsAndVariables},
	{compilation.CompilationJobKindTmpl, "MergeNextContextExpressions", phases.MergeNextContextExpressions},
	{compilation.CompilationJobKindTmpl, "CollapseEmptyInstructions", phases.CollapseEmptyInstructions},
	{compilation.CompilationJobKindTmpl, "DisableBindings", phases.DisableBindings},
	{compilation.CompilationJobKindBoth, "ExtractPureFunctions", phases.ExtractPureFunctions},
	{compilation.CompilationJobKindBoth, "Reify", phases.Reify},
	{compilation.CompilationJobKindBoth, "Chain", phases.Chain},
}

// Phases returns the names of the phases run for a job kind, in order
func Phases(kind compilation.CompilationJobKind) []string {
	var names []string
	for _, phase := range phasesList {
		if phase.Kind == kind || phase.Kind == compilation.CompilationJobKindBoth {
			names = append(names, phase.Name)
		}
	}
	return names
}

// Transform runs all transformation phases in the correct order against a compilation job.
// After this processing, the compilation should be in a state where it can be emitted.
func Transform(job compilation.Job) {
	transform(job, nil)
}

func transform(job compilation.Job, logger *log.Logger) {
	kind := job.Base().Kind
	for _, phase := range phasesList {
		if phase.Kind != kind && phase.Kind != compilation.CompilationJobKindBoth {
			continue
		}
		start := time.Now()
		switch fn := phase.Fn.(type) {
		case func(compilation.Job):
			fn(job)
		case func(*compilation.ComponentCompilationJob):
			componentJob, ok := job.(*compilation.ComponentCompilationJob)
			if !ok {
				panic(fmt.Sprintf("AssertionError: phase %s needs a template job, got %T", phase.Name, job))
			}
			fn(componentJob)
		default:
			panic(fmt.Sprintf("AssertionError: phase %s has unexpected signature %T", phase.Name, phase.Fn))
		}
		if logger != nil {
			logger.Printf("%s %s: %s", job.Base().ComponentName, phase.Name, time.Since(start))
		}
	}
}

// EmitTemplateFn compiles all views in the given ComponentCompilationJob into the final template function,
// which may reference constants defined in a ConstantPool.
func EmitTemplateFn(job *compilation.ComponentCompilationJob, pool *constant_pool.ConstantPool) *output.FunctionExpr {
	rootFn := emitView(job.RootView())
	emitChildViews(job, job.RootView(), pool)
	return rootFn
}

func emitChildViews(job *compilation.ComponentCompilationJob, parent *compilation.ViewCompilationUnit, pool *constant_pool.ConstantPool) {
	for _, unit := range job.Views() {
		if unit.Parent == nil || *unit.Parent != parent.Xref {
			continue
		}

		// Child views are emitted depth-first.
		emitChildViews(job, unit, pool)

		viewFn := emitView(unit)
		pool.AddStatement(viewFn.ToDeclStmt(*viewFn.Name, output.StmtModifierNone))
	}
}

// emitView emits a template function for an individual ViewCompilationUnit
// (which may be either the root view or an embedded view).
func emitView(view *compilation.ViewCompilationUnit) *output.FunctionExpr {
	if view.FnName == nil {
		panic(fmt.Sprintf("AssertionError: view %d is unnamed", view.Xref))
	}
	createStatements := collectStatements(view.Create, "create")
	updateStatements := collectStatements(view.Update, "update")

	return output.NewFunctionExpr(
		[]*output.FnParam{output.NewFnParam("rf"), output.NewFnParam("ctx")},
		append(maybeGenerateRfBlock(1, createStatements), maybeGenerateRfBlock(2, updateStatements)...),
		view.FnName,
	)
}

func collectStatements(ops *ir_operation.OpList, list string) []output.OutputStatement {
	var statements []output.OutputStatement
	for op := range ops.All() {
		stmtOp, ok := op.(*ops_shared.StatementOp)
		if !ok {
			panic(fmt.Sprintf(
				"AssertionError: expected all %s ops to have been compiled, but got %v",
				list,
				op.GetKind(),
			))
		}
		statements = append(statements, stmtOp.Statement)
	}
	return statements
}

func maybeGenerateRfBlock(flag int, statements []output.OutputStatement) []output.OutputStatement {
	if len(statements) == 0 {
		return nil
	}
	condition := output.NewBinaryOperatorExpr(
		output.BinaryOperatorBitwiseAnd,
		output.NewReadVarExpr("rf"),
		output.NewLiteralExpr(flag),
	)
	return []output.OutputStatement{output.NewIfStmt(condition, statements, nil)}
}

// EmitHostBindingFunction emits a host binding function, or nil when the host has nothing to do
func EmitHostBindingFunction(job *compilation.HostBindingCompilationJob) *output.FunctionExpr {
	unit := job.HostUnit()
	if unit.FnName == nil {
		panic("AssertionError: host binding function is unnamed")
	}

	createStatements := collectStatements(unit.Create, "create")
	updateStatements := collectStatements(unit.Update, "update")
	if len(createStatements) == 0 && len(updateStatements) == 0 {
		return nil
	}

	return output.NewFunctionExpr(
		[]*output.FnParam{output.NewFnParam("rf"), output.NewFnParam("ctx")},
		append(maybeGenerateRfBlock(1, createStatements), maybeGenerateRfBlock(2, updateStatements)...),
		unit.FnName,
	)
}
