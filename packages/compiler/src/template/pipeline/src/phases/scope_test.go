package phases_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-pipeline/packages/compiler/src/output"
	r3_identifiers "ngc-pipeline/packages/compiler/src/render3/r3_identifiers"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_shared "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"
	ir_variable "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/variable"
	"ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
	"ngc-pipeline/packages/compiler/src/template/pipeline/src/phases"
)

func statement(expr output.OutputExpression) *ops_shared.StatementOp {
	return ops_shared.NewStatementOp(output.NewExpressionStatement(expr))
}

func plus(lhs, rhs output.OutputExpression) output.OutputExpression {
	return output.NewBinaryOperatorExpr(output.BinaryOperatorPlus, lhs, rhs)
}

func TestGenerateTemporaryVariables(t *testing.T) {
	t.Run("should reuse a name after its final read and split live ones", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		update := job.RootView().Update
		a, b, c, d := job.AllocateXrefId(), job.AllocateXrefId(), job.AllocateXrefId(), job.AllocateXrefId()

		assignA := expression.NewAssignTemporaryExpr(output.NewReadVarExpr("x"), a)
		readA := expression.NewReadTemporaryExpr(a)
		assignB := expression.NewAssignTemporaryExpr(output.NewReadVarExpr("y"), b)
		readB := expression.NewReadTemporaryExpr(b)
		update.Push(statement(plus(plus(assignA, readA), plus(assignB, readB))))

		assignC := expression.NewAssignTemporaryExpr(output.NewReadVarExpr("x"), c)
		assignD := expression.NewAssignTemporaryExpr(output.NewReadVarExpr("y"), d)
		readC := expression.NewReadTemporaryExpr(c)
		readD := expression.NewReadTemporaryExpr(d)
		update.Push(statement(plus(assignC, plus(assignD, plus(readC, readD)))))

		phases.GenerateTemporaryVariables(job)

		names := []string{
			*assignA.Name, *readA.Name, *assignB.Name, *readB.Name,
			*assignC.Name, *readC.Name, *assignD.Name, *readD.Name,
		}
		want := []string{
			"tmp_0_0", "tmp_0_0", "tmp_0_0", "tmp_0_0",
			"tmp_1_0", "tmp_1_0", "tmp_1_1", "tmp_1_1",
		}
		if diff := cmp.Diff(want, names); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}

		var declared []string
		for op := range update.All() {
			if stmt, ok := op.(*ops_shared.StatementOp); ok {
				if decl, ok := stmt.Statement.(*output.DeclareVarStmt); ok {
					declared = append(declared, decl.Name)
				}
			}
		}
		if diff := cmp.Diff([]string{"tmp_0_0", "tmp_1_0", "tmp_1_1"}, declared); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should panic on a read with no assignment", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		job.RootView().Update.Push(statement(expression.NewReadTemporaryExpr(job.AllocateXrefId())))
		defer func() {
			if recover() == nil {
				t.Error("expected a panic")
			}
		}()
		phases.GenerateTemporaryVariables(job)
	})
}

func TestOptimizeTrackFns(t *testing.T) {
	repeater := func(job *compilation.ComponentCompilationJob, host *compilation.ViewCompilationUnit, track output.OutputExpression) *ops_create.RepeaterCreateOp {
		body := job.AllocateView(host.Xref)
		op := ops_create.NewRepeaterCreateOp(body.Xref, nil, nil, track,
			ops_create.RepeaterVarNames{DollarImplicit: "item"}, nil, nil, nil)
		host.Create.Push(op)
		return op
	}
	method := func(root ir_operation.XrefId, args ...string) output.OutputExpression {
		var argExprs []output.OutputExpression
		for _, arg := range args {
			argExprs = append(argExprs, output.NewReadVarExpr(arg))
		}
		fn := output.NewReadPropExpr(expression.NewContextExpr(root), "trackFn")
		return output.NewInvokeFunctionExpr(fn, argExprs, false)
	}

	t.Run("should use the built in functions for $index and $item", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		byIndex := repeater(job, job.RootView(), output.NewReadVarExpr("$index"))
		byItem := repeater(job, job.RootView(), output.NewReadVarExpr("$item"))

		phases.OptimizeTrackFns(job)

		got := []string{output.EmitExpression(byIndex.TrackByFn), output.EmitExpression(byItem.TrackByFn)}
		want := []string{
			"i0." + r3_identifiers.RepeaterTrackByIndex.Name,
			"i0." + r3_identifiers.RepeaterTrackByIdentity.Name,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if byIndex.TrackByOps != nil || byIndex.UsesComponentInstance {
			t.Error("expected no track function body for $index")
		}
	})

	t.Run("should pass a component method directly from the root view", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		root := job.RootView().Xref
		op := repeater(job, job.RootView(), method(root, "$index", "$item"))

		phases.OptimizeTrackFns(job)

		readProp, ok := op.TrackByFn.(*output.ReadPropExpr)
		if !ok || readProp.Name != "trackFn" {
			t.Fatalf("expected the method to be passed directly, got %T", op.TrackByFn)
		}
		if _, ok := readProp.Receiver.(*expression.ContextExpr); !ok {
			t.Errorf("expected the root context as receiver, got %T", readProp.Receiver)
		}
		if !op.UsesComponentInstance {
			t.Error("expected the component instance to be marked as used")
		}
	})

	t.Run("should read a component method through the instance from a child view", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		root := job.RootView().Xref
		child := job.AllocateView(root)
		op := repeater(job, child, method(root, "$index"))

		phases.OptimizeTrackFns(job)

		want := "i0." + r3_identifiers.ComponentInstance.Name + "().trackFn"
		if diff := cmp.Diff(want, output.EmitExpression(op.TrackByFn)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(want, output.EmitExpression(op.Track)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if op.TrackByOps != nil {
			t.Error("expected no track function body")
		}
	})

	t.Run("should extract other expressions with only track context reads", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		root := job.RootView().Xref
		track := plus(
			output.NewReadPropExpr(expression.NewContextExpr(root), "prefix"),
			output.NewReadPropExpr(output.NewReadVarExpr("$item"), "id"),
		)
		op := repeater(job, job.RootView(), track)

		phases.OptimizeTrackFns(job)

		if op.TrackByOps == nil || op.TrackByOps.Len() != 1 {
			t.Fatal("expected a single statement track function body")
		}
		contexts, trackContexts := 0, 0
		for bodyOp := range op.TrackByOps.All() {
			expression.VisitExpressionsInOp(bodyOp, func(expr output.OutputExpression, _ expression.VisitorContextFlag) {
				switch expr.(type) {
				case *expression.ContextExpr:
					contexts++
				case *expression.TrackContextExpr:
					trackContexts++
				}
			})
		}
		if diff := cmp.Diff([]int{0, 1}, []int{contexts, trackContexts}); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if !op.UsesComponentInstance {
			t.Error("expected the component instance to be marked as used")
		}
	})
}

func TestResolveContexts(t *testing.T) {
	exprOf := func(op *ops_shared.StatementOp) output.OutputExpression {
		return op.Statement.(*output.ExpressionStatement).Expr
	}

	t.Run("should prefer ctx over a variable holding the same context", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		root := job.RootView()
		child := job.AllocateView(root.Xref)
		own := job.AllocateXrefId()
		parent := job.AllocateXrefId()
		child.Update.Push(ops_shared.NewVariableOp(own, ir_variable.NewContextVariable(child.Xref),
			expression.NewContextExpr(child.Xref), ir.VariableFlagsNone))
		child.Update.Push(ops_shared.NewVariableOp(parent, ir_variable.NewContextVariable(root.Xref),
			output.NewReadVarExpr("next"), ir.VariableFlagsNone))
		self := statement(expression.NewContextExpr(child.Xref))
		outer := statement(expression.NewContextExpr(root.Xref))
		child.Update.Push(self)
		child.Update.Push(outer)

		phases.ResolveContexts(job)

		if read, ok := exprOf(self).(*output.ReadVarExpr); !ok || read.Name != "ctx" {
			t.Errorf("expected ctx, got %T", exprOf(self))
		}
		read, ok := exprOf(outer).(*expression.ReadVariableExpr)
		if !ok {
			t.Fatalf("expected a variable read, got %T", exprOf(outer))
		}
		if diff := cmp.Diff(parent, read.Xref); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should panic when no context is available for a view", func(t *testing.T) {
		job := newJob(compilation.TemplateCompilationModeFull)
		job.RootView().Update.Push(statement(expression.NewContextExpr(job.AllocateXrefId())))
		defer func() {
			if recover() == nil {
				t.Error("expected a panic")
			}
		}()
		phases.ResolveContexts(job)
	})
}
