package output_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-pipeline/packages/compiler/src/output"
)

func name(s string) *string { return &s }

func TestEmitExpression(t *testing.T) {
	a, b := output.NewReadVarExpr("a"), output.NewReadVarExpr("b")

	tests := []struct {
		name string
		expr output.OutputExpression
		want string
	}{
		{
			name: "should parenthesize nested binary operators",
			expr: output.NewBinaryOperatorExpr(output.BinaryOperatorPlus, output.NewLiteralExpr(1),
				output.NewBinaryOperatorExpr(output.BinaryOperatorMultiply, a, b)),
			want: "(1 + (a * b))",
		},
		{
			name: "should quote and escape strings",
			expr: output.NewLiteralExpr("it's\n"),
			want: `'it\'s\n'`,
		},
		{
			name: "should print null for nil literals",
			expr: output.NewLiteralExpr(nil),
			want: "null",
		},
		{
			name: "should print runtime references through the import alias",
			expr: output.NewInvokeFunctionExpr(
				output.NewExternalExpr(output.ExternalReference{ModuleName: "@angular/core", Name: "ɵɵtext"}),
				[]output.OutputExpression{output.NewLiteralExpr(0)},
				false,
			),
			want: "i0.ɵɵtext(0)",
		},
		{
			name: "should wrap object literal arrow bodies in parentheses",
			expr: output.NewArrowFunctionExpr(
				[]*output.FnParam{output.NewFnParam("a0")},
				output.NewLiteralMapExpr([]*output.LiteralMapEntry{output.NewLiteralMapEntry("x", output.NewReadVarExpr("a0"), false)}),
			),
			want: "(a0) => ({x:a0})",
		},
		{
			name: "should escape tagged template text",
			expr: output.NewTaggedTemplateExpr(output.NewReadVarExpr("tag"), "a`${b}"),
			want: "tag`a\\`\\${b}`",
		},
		{
			name: "should print conditionals with a null else branch",
			expr: output.NewConditionalExpr(a, b, nil),
			want: "(a ? b : null)",
		},
		{
			name: "should print keyed and property reads",
			expr: output.NewReadKeyExpr(output.NewReadPropExpr(a, "items"), output.NewLiteralExpr(0)),
			want: "a.items[0]",
		},
		{
			name: "should print typeof and not",
			expr: output.NewNotExpr(output.NewTypeofExpr(a)),
			want: "!typeof a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, output.EmitExpression(tt.expr)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEmitStatements(t *testing.T) {
	t.Run("should print a template function with creation and update blocks", func(t *testing.T) {
		rf := output.NewReadVarExpr("rf")
		call := func(fn string) output.OutputStatement {
			return output.NewExpressionStatement(output.NewInvokeFunctionExpr(output.NewReadVarExpr(fn), nil, false))
		}
		fn := output.NewFunctionExpr(
			[]*output.FnParam{output.NewFnParam("rf"), output.NewFnParam("ctx")},
			[]output.OutputStatement{
				output.NewIfStmt(output.NewBinaryOperatorExpr(output.BinaryOperatorBitwiseAnd, rf, output.NewLiteralExpr(1)),
					[]output.OutputStatement{call("create")}, nil),
				output.NewIfStmt(output.NewBinaryOperatorExpr(output.BinaryOperatorBitwiseAnd, rf, output.NewLiteralExpr(2)),
					[]output.OutputStatement{call("first"), call("second")}, nil),
			},
			name("Cmp_Template"),
		)
		got := output.EmitStatements([]output.OutputStatement{
			output.NewDeclareVarStmt("_c0", output.NewLiteralArrayExpr([]output.OutputExpression{output.NewLiteralExpr("a")}), output.StmtModifierFinal),
			fn.ToDeclStmt("Cmp_Template", output.StmtModifierNone),
		})
		want := `const _c0 = ['a'];
function Cmp_Template(rf,ctx) {
  if (rf & 1) { create(); }
  if (rf & 2) {
    first();
    second();
  }
}`
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should print let for non-final declarations", func(t *testing.T) {
		got := output.EmitStatements([]output.OutputStatement{output.NewDeclareVarStmt("tmp_0_0", nil, output.StmtModifierNone)})
		if diff := cmp.Diff("let tmp_0_0;", got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestIsEquivalent(t *testing.T) {
	t.Run("should compare functions by params and body", func(t *testing.T) {
		body := func(prop string) *output.ArrowFunctionExpr {
			return output.NewArrowFunctionExpr(
				[]*output.FnParam{output.NewFnParam("$index"), output.NewFnParam("$item")},
				output.NewReadPropExpr(output.NewReadVarExpr("$item"), prop),
			)
		}
		if !body("id").IsEquivalent(body("id")) {
			t.Error("expected equal bodies to be equivalent")
		}
		if body("id").IsEquivalent(body("name")) {
			t.Error("expected different bodies to differ")
		}
	})
}
