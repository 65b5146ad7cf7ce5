package ir_operation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-pipeline/packages/compiler/src/output"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_shared "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"
)

func stmt(name string) *ops_shared.StatementOp {
	return ops_shared.NewStatementOp(output.NewExpressionStatement(output.NewReadVarExpr(name)))
}

func names(list *ir_operation.OpList) []string {
	var out []string
	for op := range list.All() {
		out = append(out, op.(*ops_shared.StatementOp).Statement.(*output.ExpressionStatement).Expr.(*output.ReadVarExpr).Name)
	}
	return out
}

func listOf(ops ...string) *ir_operation.OpList {
	list := ir_operation.NewOpList()
	for _, name := range ops {
		list.Push(stmt(name))
	}
	return list
}

func expectPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	fn()
}

func TestOpList(t *testing.T) {
	t.Run("should push and prepend in order", func(t *testing.T) {
		list := listOf("c", "d")
		list.Prepend([]ir_operation.Op{stmt("a"), stmt("b")})
		if diff := cmp.Diff([]string{"a", "b", "c", "d"}, names(list)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(4, list.Len()); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should support positional mutation", func(t *testing.T) {
		list := listOf("a", "b", "c")
		list.InsertAt(1, stmt("x"))
		list.InsertAt(4, stmt("end"))
		removed := list.RemoveAt(0)
		replaced := list.ReplaceAt(1, stmt("y"))
		list.ReplaceAtWithMany(2, []ir_operation.Op{stmt("p"), stmt("q")})
		if diff := cmp.Diff([]string{"x", "y", "p", "q", "end"}, names(list)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if removed.GetDebugListId() != nil || replaced.GetDebugListId() != nil {
			t.Error("expected removed ops to be unowned")
		}
	})

	t.Run("should support node relative mutation", func(t *testing.T) {
		list := ir_operation.NewOpList()
		b := stmt("b")
		list.Push(b)
		list.InsertBefore(stmt("a"), b)
		list.InsertAfter(stmt("c"), b)
		list.InsertBefore(stmt("z"), list.Tail())
		list.InsertAfter(stmt("start"), list.Head())
		list.ReplaceWithMany(b, nil)
		if diff := cmp.Diff([]string{"start", "a", "c", "z"}, names(list)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should allow removing the current op while iterating", func(t *testing.T) {
		list := listOf("a", "drop", "b", "drop")
		var seen []string
		for op := range list.All() {
			name := op.(*ops_shared.StatementOp).Statement.(*output.ExpressionStatement).Expr.(*output.ReadVarExpr).Name
			seen = append(seen, name)
			if name == "drop" {
				list.Remove(op)
			}
		}
		if diff := cmp.Diff([]string{"a", "drop", "b", "drop"}, seen); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"a", "b"}, names(list)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should iterate backward", func(t *testing.T) {
		list := listOf("a", "b", "c")
		var seen []string
		for op := range list.Backward() {
			seen = append(seen, op.(*ops_shared.StatementOp).Statement.(*output.ExpressionStatement).Expr.(*output.ReadVarExpr).Name)
		}
		if diff := cmp.Diff([]string{"c", "b", "a"}, seen); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should reject ops owned by another list", func(t *testing.T) {
		first, second := ir_operation.NewOpList(), ir_operation.NewOpList()
		op := stmt("a")
		first.Push(op)
		expectPanic(t, func() { second.Push(op) })
		expectPanic(t, func() { second.Remove(op) })
	})

	t.Run("should reject out of range positions", func(t *testing.T) {
		list := listOf("a")
		expectPanic(t, func() { list.Get(1) })
		expectPanic(t, func() { list.RemoveAt(-1) })
	})

	t.Run("should report first and last", func(t *testing.T) {
		list := ir_operation.NewOpList()
		if list.First() != nil || list.Last() != nil {
			t.Error("expected an empty list to have no first or last op")
		}
		list = listOf("a", "b")
		if list.First() != list.Get(0) || list.Last() != list.Get(1) {
			t.Error("unexpected first or last op")
		}
	})
}
