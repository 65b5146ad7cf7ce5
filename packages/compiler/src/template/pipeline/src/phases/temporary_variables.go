package phases

import (
	"fmt"

	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_shared "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// GenerateTemporaryVariables finds all assignments and usages of temporary variables, which are linked to each other with cross
// references. Generate names for each cross-reference, and add a `DeclareVarStmt` to initialize
// them at the beginning of the update block.
func GenerateTemporaryVariables(job pipeline.Job) {
	for _, unit := range job.Units() {
		declareTemporaries(unit.GetCreate())
		declareTemporaries(unit.GetUpdate())
	}
}

func declareTemporaries(list *ir_operation.OpList) {
	list.Prepend(generateTemporaries(list))
}

func generateTemporaries(opsList *ir_operation.OpList) []ir_operation.Op {
	opCount := 0
	var generatedStatements []ir_operation.Op

	// For each op, search for any variables that are assigned or read. For each variable, generate a
	// name and produce a `DeclareVarStmt` to the beginning of the block.
	for op := range opsList.All() {
		// Identify the final time each temp var is read.
		finalReads := make(map[ir_operation.XrefId]*expression.ReadTemporaryExpr)
		expression.VisitExpressionsInOp(op, func(expr output.OutputExpression, flags expression.VisitorContextFlag) {
			if flags&expression.VisitorContextFlagInChildOperation != 0 {
				return
			}
			if readTemp, ok := expr.(*expression.ReadTemporaryExpr); ok {
				finalReads[readTemp.Xref] = readTemp
			}
		})

		// Name the temp vars, accounting for the fact that a name can be reused after it has been
		// read for the final time.
		count := 0
		assigned := make(map[ir_operation.XrefId]bool)
		defs := make(map[ir_operation.XrefId]string)
		var names []string

		expression.VisitExpressionsInOp(op, func(expr output.OutputExpression, flags expression.VisitorContextFlag) {
			if flags&expression.VisitorContextFlagInChildOperation != 0 {
				return
			}
			switch e := expr.(type) {
			case *expression.AssignTemporaryExpr:
				if !assigned[e.Xref] {
					assigned[e.Xref] = true
					defs[e.Xref] = fmt.Sprintf("tmp_%d_%d", opCount, count)
					names = append(names, defs[e.Xref])
					count++
				}
				e.Name = nameOf(defs, e.Xref)
			case *expression.ReadTemporaryExpr:
				if finalReads[e.Xref] == e {
					count--
				}
				e.Name = nameOf(defs, e.Xref)
			}
		})

		// Add declarations for the temp vars.
		declared := make(map[string]bool)
		for _, name := range names {
			if declared[name] {
				continue
			}
			declared[name] = true
			stmt := output.NewDeclareVarStmt(name, nil, output.StmtModifierNone)
			generatedStatements = append(generatedStatements, ops_shared.NewStatementOp(stmt))
		}
		opCount++

		// Handler functions and track functions are separate naming scopes.
		switch o := op.(type) {
		case ops_create.HandlerOp:
			declareTemporaries(o.GetHandlerOps())
		case *ops_create.RepeaterCreateOp:
			if o.TrackByOps != nil {
				declareTemporaries(o.TrackByOps)
			}
		}
	}

	return generatedStatements
}

// nameOf returns the name assigned to the temporary variable xref.
func nameOf(names map[ir_operation.XrefId]string, xref ir_operation.XrefId) *string {
	name, exists := names[xref]
	if !exists {
		panic(fmt.Sprintf("Found xref with unassigned name: %d", xref))
	}
	return &name
}
