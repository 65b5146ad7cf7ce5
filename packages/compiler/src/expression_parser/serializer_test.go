package expression_parser_test

import (
	"testing"

	"ngc-pipeline/packages/compiler/src/expression_parser"
)

func read(name string) expression_parser.AST {
	return expression_parser.NewPropertyRead(expression_parser.NewImplicitReceiver(), name)
}

func TestSerializer(t *testing.T) {
	t.Run("serialize", func(t *testing.T) {
		cases := []struct {
			name string
			ast  expression_parser.AST
			want string
		}{
			{
				name: "should serialize unary negative",
				ast:  expression_parser.NewUnary("-", expression_parser.NewLiteralPrimitive(1234)),
				want: "-1234",
			},
			{
				name: "should serialize binary operations",
				ast: expression_parser.NewBinary("+",
					expression_parser.NewLiteralPrimitive(1234), expression_parser.NewLiteralPrimitive(4321)),
				want: "1234 + 4321",
			},
			{
				name: "should serialize conditionals",
				ast: expression_parser.NewConditional(read("cond"),
					expression_parser.NewLiteralPrimitive(1234), expression_parser.NewLiteralPrimitive(4321)),
				want: "cond ? 1234 : 4321",
			},
			{
				name: "should serialize `this`",
				ast:  expression_parser.NewThisReceiver(),
				want: "this",
			},
			{
				name: "should serialize keyed reads",
				ast:  expression_parser.NewKeyedRead(read("foo"), expression_parser.NewLiteralPrimitive("bar")),
				want: "foo['bar']",
			},
			{
				name: "should serialize safe reads and calls",
				ast: expression_parser.NewSafeCall(
					expression_parser.NewSafePropertyRead(read("foo"), "bar"),
					[]expression_parser.AST{read("baz")}),
				want: "foo?.bar?.(baz)",
			},
			{
				name: "should serialize pipes with arguments",
				ast: expression_parser.NewBindingPipe(read("value"), "date",
					[]expression_parser.AST{expression_parser.NewLiteralPrimitive("short")}),
				want: "value | date:'short'",
			},
			{
				name: "should serialize literal maps",
				ast: expression_parser.NewLiteralMap(
					[]expression_parser.LiteralMapKey{{Key: "a"}, {Key: "b-c", Quoted: true}},
					[]expression_parser.AST{expression_parser.NewLiteralPrimitive(true), expression_parser.NewLiteralPrimitive(nil)},
				),
				want: "{a: true, 'b-c': null}",
			},
			{
				name: "should serialize interpolations",
				ast: expression_parser.NewInterpolation([]string{"Hello ", "!"},
					[]expression_parser.AST{read("name")}),
				want: "Hello {{ name }}!",
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if got := expression_parser.Serialize(tc.ast); got != tc.want {
					t.Errorf("Expected %q, got %q", tc.want, got)
				}
			})
		}
	})
}
