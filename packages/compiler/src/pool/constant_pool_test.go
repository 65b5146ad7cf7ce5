package constant_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-pipeline/packages/compiler/src/output"
	constant "ngc-pipeline/packages/compiler/src/pool"
)

func literalArray(values ...interface{}) *output.LiteralArrayExpr {
	entries := make([]output.OutputExpression, len(values))
	for i, v := range values {
		entries[i] = output.NewLiteralExpr(v)
	}
	return output.NewLiteralArrayExpr(entries)
}

func TestGetConstLiteral(t *testing.T) {
	t.Run("should return simple literals unchanged", func(t *testing.T) {
		pool := constant.NewConstantPool()
		for _, lit := range []*output.LiteralExpr{
			output.NewLiteralExpr(1),
			output.NewLiteralExpr(true),
			output.NewLiteralExpr(nil),
			output.NewLiteralExpr("short"),
		} {
			if got := pool.GetConstLiteral(lit, true); got != lit {
				t.Errorf("Expected %v to be returned unchanged, got %T", lit.Value, got)
			}
		}
		if len(pool.Statements()) != 0 {
			t.Errorf("Expected no declarations, got %d", len(pool.Statements()))
		}
	})

	t.Run("should pool long strings", func(t *testing.T) {
		pool := constant.NewConstantPool()
		long := output.NewLiteralExpr(strings.Repeat("x", constant.PoolInclusionLengthThresholdForStrings))
		ref := pool.GetConstLiteral(long, true)
		if got := output.EmitExpression(ref); got != "_c0" {
			t.Errorf("Expected %q, got %q", "_c0", got)
		}
	})

	t.Run("should keep the first request inline and share on the second", func(t *testing.T) {
		pool := constant.NewConstantPool()
		first := pool.GetConstLiteral(literalArray("a", "b"), false)
		if got := output.EmitExpression(first); got != "['a','b']" {
			t.Errorf("Expected the first use to print inline, got %q", got)
		}
		if len(pool.Statements()) != 0 {
			t.Fatalf("Expected no declarations after the first request, got %d", len(pool.Statements()))
		}

		second := pool.GetConstLiteral(literalArray("a", "b"), false)
		want := []string{"_c0", "_c0"}
		got := []string{output.EmitExpression(first), output.EmitExpression(second)}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("references mismatch (-want +got):\n%s", diff)
		}
		if got := output.EmitStatements(pool.Statements()); got != "const _c0 = ['a','b'];" {
			t.Errorf("Expected a single declaration, got %q", got)
		}

		pool.GetConstLiteral(literalArray("a", "b"), false)
		if len(pool.Statements()) != 1 {
			t.Errorf("Expected the third request to reuse the declaration, got %d declarations", len(pool.Statements()))
		}
	})

	t.Run("should never collide structurally different literals", func(t *testing.T) {
		pool := constant.NewConstantPool()
		a := pool.GetConstLiteral(literalArray(`a","b`), true)
		b := pool.GetConstLiteral(literalArray("a", "b"), true)
		if output.EmitExpression(a) == output.EmitExpression(b) {
			t.Errorf("Expected distinct declarations, both printed as %q", output.EmitExpression(a))
		}
		if len(pool.Statements()) != 2 {
			t.Errorf("Expected 2 declarations, got %d", len(pool.Statements()))
		}
	})

	t.Run("should number declarations monotonically", func(t *testing.T) {
		pool := constant.NewConstantPool()
		var names []string
		for i := 0; i < 3; i++ {
			names = append(names, output.EmitExpression(pool.GetConstLiteral(literalArray(i), true)))
		}
		if diff := cmp.Diff([]string{"_c0", "_c1", "_c2"}, names); diff != "" {
			t.Errorf("names mismatch (-want +got):\n%s", diff)
		}
	})
}

type arrayDef struct{}

func (arrayDef) KeyOf(expr output.OutputExpression) string {
	return "def:" + constant.GenericKeyFnInstance.KeyOf(expr)
}

func (arrayDef) ToSharedConstantDeclaration(name string, expr output.OutputExpression) output.OutputStatement {
	return output.NewDeclareVarStmt(name, expr, output.StmtModifierFinal)
}

func TestGetSharedConstant(t *testing.T) {
	t.Run("should declare once per key", func(t *testing.T) {
		pool := constant.NewConstantPool()
		a := pool.GetSharedConstant(arrayDef{}, literalArray(1, 2))
		b := pool.GetSharedConstant(arrayDef{}, literalArray(1, 2))
		c := pool.GetSharedConstant(arrayDef{}, literalArray(2, 1))
		if !a.IsEquivalent(b) {
			t.Errorf("Expected equal keys to share a declaration")
		}
		if a.IsEquivalent(c) {
			t.Errorf("Expected different keys to get different declarations")
		}
		if len(pool.Statements()) != 2 {
			t.Errorf("Expected 2 declarations, got %d", len(pool.Statements()))
		}
	})
}

func TestGetSharedFunctionReference(t *testing.T) {
	trackFn := func(prop string) *output.FunctionExpr {
		return output.NewFunctionExpr(
			[]*output.FnParam{output.NewFnParam("$index"), output.NewFnParam("$item")},
			[]output.OutputStatement{
				output.NewReturnStatement(output.NewReadPropExpr(output.NewReadVarExpr("$item"), prop)),
			},
			nil,
		)
	}

	t.Run("should reuse structurally equivalent functions", func(t *testing.T) {
		pool := constant.NewConstantPool()
		a := pool.GetSharedFunctionReference(trackFn("id"), "_forTrack", true)
		b := pool.GetSharedFunctionReference(trackFn("id"), "_forTrack", true)
		if got := output.EmitExpression(a); got != "_forTrack0" {
			t.Errorf("Expected %q, got %q", "_forTrack0", got)
		}
		if got := output.EmitExpression(b); got != "_forTrack0" {
			t.Errorf("Expected reuse of %q, got %q", "_forTrack0", got)
		}
	})

	t.Run("should compare function bodies", func(t *testing.T) {
		pool := constant.NewConstantPool()
		pool.GetSharedFunctionReference(trackFn("id"), "_forTrack", true)
		b := pool.GetSharedFunctionReference(trackFn("name"), "_forTrack", true)
		if got := output.EmitExpression(b); got != "_forTrack1" {
			t.Errorf("Expected %q, got %q", "_forTrack1", got)
		}
		want := "function _forTrack0($index,$item) {\n  return $item.id;\n}\nfunction _forTrack1($index,$item) {\n  return $item.name;\n}"
		if diff := cmp.Diff(want, output.EmitStatements(pool.Statements())); diff != "" {
			t.Errorf("declarations mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should use the bare prefix first without unique names", func(t *testing.T) {
		pool := constant.NewConstantPool()
		a := pool.GetSharedFunctionReference(trackFn("id"), "helper", false)
		b := pool.GetSharedFunctionReference(trackFn("name"), "helper", false)
		got := []string{output.EmitExpression(a), output.EmitExpression(b)}
		if diff := cmp.Diff([]string{"helper", "helper1"}, got); diff != "" {
			t.Errorf("names mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestGetLiteralFactory(t *testing.T) {
	t.Run("should build a pure factory over the dynamic entries", func(t *testing.T) {
		pool := constant.NewConstantPool()
		literal := output.NewLiteralArrayExpr([]output.OutputExpression{
			output.NewLiteralExpr("a"),
			output.NewReadVarExpr("b"),
		})
		factory, args := pool.GetLiteralFactory(literal)
		if got := output.EmitExpression(factory); got != "_c0" {
			t.Errorf("Expected %q, got %q", "_c0", got)
		}
		if len(args) != 1 || output.EmitExpression(args[0]) != "b" {
			t.Errorf("Expected the single dynamic argument b, got %d args", len(args))
		}
		if got := output.EmitStatements(pool.Statements()); got != "const _c0 = (a1) => ['a',a1];" {
			t.Errorf("Expected the factory declaration, got %q", got)
		}

		again, _ := pool.GetLiteralFactory(literal.Clone())
		if output.EmitExpression(again) != "_c0" {
			t.Errorf("Expected the factory to be reused")
		}
	})
}
