package pipeline_convension

import (
	"ngc-pipeline/packages/compiler/src/output"
)

// BinaryOperators maps binary operator strings to their corresponding output.BinaryOperator values
var BinaryOperators = map[string]output.BinaryOperator{
	"&&":  output.BinaryOperatorAnd,
	">":   output.BinaryOperatorBigger,
	">=":  output.BinaryOperatorBiggerEquals,
	"|":   output.BinaryOperatorBitwiseOr,
	"&":   output.BinaryOperatorBitwiseAnd,
	"/":   output.BinaryOperatorDivide,
	"=":   output.BinaryOperatorAssign,
	"==":  output.BinaryOperatorEquals,
	"===": output.BinaryOperatorIdentical,
	"<":   output.BinaryOperatorLower,
	"<=":  output.BinaryOperatorLowerEquals,
	"-":   output.BinaryOperatorMinus,
	"%":   output.BinaryOperatorModulo,
	"*":   output.BinaryOperatorMultiply,
	"!=":  output.BinaryOperatorNotEquals,
	"!==": output.BinaryOperatorNotIdentical,
	"??":  output.BinaryOperatorNullishCoalesce,
	"||":  output.BinaryOperatorOr,
	"+":   output.BinaryOperatorPlus,
}

// LiteralType represents a literal value type
type LiteralType interface{}

// LiteralOrArrayLiteral converts a literal value or nested slices of literals to an output expression
func LiteralOrArrayLiteral(value LiteralType) output.OutputExpression {
	switch v := value.(type) {
	case []interface{}:
		entries := make([]output.OutputExpression, len(v))
		for i, item := range v {
			entries[i] = LiteralOrArrayLiteral(item)
		}
		return output.NewLiteralArrayExpr(entries)
	case []string:
		entries := make([]output.OutputExpression, len(v))
		for i, item := range v {
			entries[i] = output.NewLiteralExpr(item)
		}
		return output.NewLiteralArrayExpr(entries)
	case output.OutputExpression:
		return v
	default:
		return output.NewLiteralExpr(v)
	}
}
