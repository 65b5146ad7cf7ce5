package phases

import (
	"fmt"

	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_shared "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"
	ir_variable "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/variable"

	pipeline_compilation "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// OptimizeVariables optimizes variables declared and used in the IR.
//
// Variables are eagerly generated by pipeline stages for all possible values that could be
// referenced. This stage processes the list of declared variables and all variable usages,
// and optimizes where possible. It performs 3 main optimizations:
//
//   - It transforms variable declarations to side effectful expressions when the
//     variable is not used, but its initializer has global effects which other
//     operations rely upon.
//   - It removes variable declarations if those variables are not referenced and
//     either they do not have global effects, or nothing relies on them.
//   - It inlines variable declarations when those variables are only used once
//     and the inlining is semantically safe.
func OptimizeVariables(job pipeline_compilation.Job) {
	for _, unit := range job.Units() {
		inlineAlwaysInlineVariables(unit.GetCreate())
		inlineAlwaysInlineVariables(unit.GetUpdate())
		for _, list := range childOpLists(unit) {
			inlineAlwaysInlineVariables(list)
		}

		optimizeVariablesInOpList(unit.GetCreate())
		optimizeVariablesInOpList(unit.GetUpdate())
		for _, list := range childOpLists(unit) {
			optimizeVariablesInOpList(list)
		}
	}
}

// childOpLists returns the handler bodies and track functions declared in a unit's create list.
func childOpLists(unit pipeline_compilation.CompilationUnit) []*ir_operation.OpList {
	var lists []*ir_operation.OpList
	for op := range unit.GetCreate().All() {
		switch o := op.(type) {
		case ops_create.HandlerOp:
			lists = append(lists, o.GetHandlerOps())
		case *ops_create.RepeaterCreateOp:
			if o.TrackByOps != nil {
				lists = append(lists, o.TrackByOps)
			}
		}
	}
	return lists
}

// Fence is a bit set describing what global state an expression reads or writes. Operations may
// not be reordered across fences they conflict with.
type Fence int

const (
	FenceNone Fence = 0
	// FenceViewContextRead is set by expressions that read from the current view context, such
	// as `reference()`.
	FenceViewContextRead Fence = 1 << 0
	// FenceViewContextWrite is set by expressions that change the current view context, such as
	// `nextContext()`.
	FenceViewContextWrite Fence = 1 << 1
	// FenceSideEffectful is set by expressions that must run even when their result is unused.
	FenceSideEffectful Fence = 1 << 2
)

// opInfo summarizes the variable reads and fences of one operation.
type opInfo struct {
	variablesUsed map[ir_operation.XrefId]int
	fences        Fence
}

func inlineAlwaysInlineVariables(list *ir_operation.OpList) {
	vars := make(map[ir_operation.XrefId]*ops_shared.VariableOp)
	var order []*ops_shared.VariableOp
	for op := range list.All() {
		if varOp, ok := op.(*ops_shared.VariableOp); ok && varOp.Flags&ir.VariableFlagsAlwaysInline != 0 {
			expression.VisitExpressionsInOp(varOp, func(expr output.OutputExpression, flags expression.VisitorContextFlag) {
				if fencesForIrExpression(expr) != FenceNone {
					panic("AssertionError: A context-sensitive variable was marked AlwaysInline")
				}
			})
			vars[varOp.Xref] = varOp
			order = append(order, varOp)
		}
		expression.TransformExpressionsInOp(op, func(expr output.OutputExpression, flags expression.VisitorContextFlag) output.OutputExpression {
			if read, ok := expr.(*expression.ReadVariableExpr); ok {
				if varOp, ok := vars[read.Xref]; ok {
					return varOp.Initializer.Clone()
				}
			}
			return expr
		}, expression.VisitorContextFlagNone)
	}
	for _, varOp := range order {
		list.Remove(varOp)
	}
}

func optimizeVariablesInOpList(list *ir_operation.OpList) {
	varDecls := make(map[ir_operation.XrefId]*ops_shared.VariableOp)
	varUsages := make(map[ir_operation.XrefId]int)
	varRemoteUsages := make(map[ir_operation.XrefId]bool)
	opMap := make(map[ir_operation.Op]*opInfo)
	var declOrder []ir_operation.XrefId

	// First, extract information about variables declared or used within the whole list.
	for op := range list.All() {
		if varOp, ok := op.(*ops_shared.VariableOp); ok {
			if _, exists := varDecls[varOp.Xref]; exists {
				panic(fmt.Sprintf("Should not see two declarations of the same variable: %d", varOp.Xref))
			}
			varDecls[varOp.Xref] = varOp
			varUsages[varOp.Xref] = 0
			declOrder = append(declOrder, varOp.Xref)
		}
		opMap[op] = collectOpInfo(op)
		countVariableUsages(op, varUsages, varRemoteUsages)
	}

	// Next, remove any variable declarations for variables that aren't used. The initializers may
	// be side-effectful, so they may need to be retained as expression statements.
	//
	// Whether an operation which reads from the view context has been seen yet decides whether a
	// write to the view context in a variable initializer can be observed. The list is walked in
	// reverse so that all reads of a variable are processed before its declaration.
	contextIsUsed := false
	for op := range list.Backward() {
		info := opMap[op]

		if varOp, ok := op.(*ops_shared.VariableOp); ok && varUsages[varOp.Xref] == 0 {
			if (contextIsUsed && info.fences&FenceViewContextWrite != 0) || info.fences&FenceSideEffectful != 0 {
				// The initializer must still run, either because a later operation depends on its
				// context write or because it is inherently side-effectful.
				stmtOp := ops_shared.NewStatementOp(output.NewExpressionStatement(varOp.Initializer))
				opMap[stmtOp] = info
				list.Replace(varOp, stmtOp)
			} else {
				// Nothing depends on this declaration. Removing it may leave other variables unused,
				// and those are reached later in the reverse walk.
				uncountVariableUsages(varOp, varUsages)
				list.Remove(varOp)
			}

			delete(opMap, varOp)
			delete(varDecls, varOp.Xref)
			delete(varUsages, varOp.Xref)
			continue
		}

		if info.fences&FenceViewContextRead != 0 {
			contextIsUsed = true
		}
	}

	// Next, inline any remaining variables with exactly one usage that is not across an operation
	// boundary.
	var toInline []ir_operation.XrefId
	for _, id := range declOrder {
		count, ok := varUsages[id]
		if !ok || count != 1 || varRemoteUsages[id] {
			continue
		}
		if varDecls[id].Flags&ir.VariableFlagsAlwaysInline != 0 {
			continue
		}
		toInline = append(toInline, id)
	}

	for len(toInline) > 0 {
		candidate := toInline[len(toInline)-1]
		toInline = toInline[:len(toInline)-1]

		decl := varDecls[candidate]
		varInfo := opMap[decl]

		// Scan operations following the declaration for the single usage. If inlining fails there,
		// no later operation makes it legal.
		for targetOp := decl.GetNext(); targetOp != nil && targetOp.GetKind() != ir.OpKindListEnd; targetOp = targetOp.GetNext() {
			info := opMap[targetOp]

			if _, used := info.variablesUsed[candidate]; used {
				if !allowConservativeInlining(decl, targetOp) {
					break
				}
				if tryInlineVariableInitializer(candidate, decl.Initializer, targetOp, varInfo.fences) {
					delete(info.variablesUsed, candidate)
					for id := range varInfo.variablesUsed {
						info.variablesUsed[id] = 0
					}
					info.fences |= varInfo.fences

					delete(varDecls, candidate)
					delete(varUsages, candidate)
					delete(opMap, decl)
					list.Remove(decl)
				}
				break
			}

			// The variable would be inlined across this operation.
			if !safeToInlinePastFences(info.fences, varInfo.fences) {
				break
			}
		}
	}
}

// fencesForIrExpression returns the fences of a single IR expression, ignoring its children.
func fencesForIrExpression(expr output.OutputExpression) Fence {
	switch expr.(type) {
	case *expression.NextContextExpr:
		return FenceViewContextRead | FenceViewContextWrite
	case *expression.RestoreViewExpr:
		return FenceViewContextRead | FenceViewContextWrite | FenceSideEffectful
	case *expression.ReferenceExpr:
		return FenceViewContextRead
	default:
		return FenceNone
	}
}

func collectOpInfo(op ir_operation.Op) *opInfo {
	info := &opInfo{variablesUsed: make(map[ir_operation.XrefId]int)}
	expression.VisitExpressionsInOp(op, func(expr output.OutputExpression, flags expression.VisitorContextFlag) {
		if read, ok := expr.(*expression.ReadVariableExpr); ok {
			info.variablesUsed[read.Xref]++
			return
		}
		info.fences |= fencesForIrExpression(expr)
	})
	return info
}

// countVariableUsages counts the reads of variables declared in the current list. Reads from
// inside a child operation are also recorded as remote.
func countVariableUsages(op ir_operation.Op, varUsages map[ir_operation.XrefId]int, varRemoteUsages map[ir_operation.XrefId]bool) {
	expression.VisitExpressionsInOp(op, func(expr output.OutputExpression, flags expression.VisitorContextFlag) {
		read, ok := expr.(*expression.ReadVariableExpr)
		if !ok {
			return
		}
		count, ok := varUsages[read.Xref]
		if !ok {
			// Declared outside the list being optimized.
			return
		}
		varUsages[read.Xref] = count + 1
		if flags&expression.VisitorContextFlagInChildOperation != 0 {
			varRemoteUsages[read.Xref] = true
		}
	})
}

func uncountVariableUsages(op ir_operation.Op, varUsages map[ir_operation.XrefId]int) {
	expression.VisitExpressionsInOp(op, func(expr output.OutputExpression, flags expression.VisitorContextFlag) {
		read, ok := expr.(*expression.ReadVariableExpr)
		if !ok {
			return
		}
		count, ok := varUsages[read.Xref]
		if !ok {
			return
		}
		if count == 0 {
			panic(fmt.Sprintf("Inaccurate variable count: %d - found another read but count is already 0", read.Xref))
		}
		varUsages[read.Xref] = count - 1
	})
}

// safeToInlinePastFences reports whether an initializer with declFences may move past an
// operation with fences.
func safeToInlinePastFences(fences, declFences Fence) bool {
	if fences&FenceViewContextWrite != 0 {
		// Context reads may not move across context writes.
		return declFences&FenceViewContextRead == 0
	}
	if fences&FenceViewContextRead != 0 {
		// Context writes may not move across context reads.
		return declFences&FenceViewContextWrite == 0
	}
	return true
}

// tryInlineVariableInitializer replaces the read of variable id in target with its initializer.
// It reports false when a fence in target comes before the read.
func tryInlineVariableInitializer(id ir_operation.XrefId, initializer output.OutputExpression, target ir_operation.Op, declFences Fence) bool {
	inlined := false
	inliningAllowed := true

	expression.TransformExpressionsInOp(target, func(expr output.OutputExpression, flags expression.VisitorContextFlag) output.OutputExpression {
		if _, ok := expr.(expression.IrExpression); !ok {
			return expr
		}
		if inlined || !inliningAllowed {
			return expr
		}
		if flags&expression.VisitorContextFlagInChildOperation != 0 && declFences&FenceViewContextRead != 0 {
			// Context-sensitive initializers cannot move into an operation boundary.
			return expr
		}
		if read, ok := expr.(*expression.ReadVariableExpr); ok {
			if read.Xref == id {
				inlined = true
				return initializer
			}
			return expr
		}
		inliningAllowed = inliningAllowed && safeToInlinePastFences(fencesForIrExpression(expr), declFences)
		return expr
	}, expression.VisitorContextFlagNone)
	return inlined
}

// allowConservativeInlining restricts which single-use variables are inlined. Identifiers are
// only inlined when they alias the view context itself, and contexts only into other variables.
func allowConservativeInlining(decl *ops_shared.VariableOp, target ir_operation.Op) bool {
	switch decl.Variable.(type) {
	case *ir_variable.IdentifierVariable:
		read, ok := decl.Initializer.(*output.ReadVarExpr)
		return ok && read.Name == "ctx"
	case *ir_variable.ContextVariable:
		_, ok := target.(*ops_shared.VariableOp)
		return ok
	default:
		return true
	}
}
