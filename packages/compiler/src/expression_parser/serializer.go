package expression_parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Serialize serializes the given AST into a normalized string format
func Serialize(expression AST) string {
	visitor := NewSerializeExpressionVisitor()
	return expression.Visit(visitor, nil).(string)
}

// SerializeExpressionVisitor is a visitor that serializes AST to string
type SerializeExpressionVisitor struct{}

// NewSerializeExpressionVisitor creates a new SerializeExpressionVisitor
func NewSerializeExpressionVisitor() *SerializeExpressionVisitor {
	return &SerializeExpressionVisitor{}
}

func (s *SerializeExpressionVisitor) visitAll(asts []AST, context interface{}) []string {
	parts := make([]string, len(asts))
	for i, ast := range asts {
		parts[i] = ast.Visit(s, context).(string)
	}
	return parts
}

// VisitUnary visits a unary expression
func (s *SerializeExpressionVisitor) VisitUnary(ast *Unary, context interface{}) interface{} {
	return fmt.Sprintf("%s%s", ast.Operator, ast.Expr.Visit(s, context).(string))
}

// VisitBinary visits a binary expression
func (s *SerializeExpressionVisitor) VisitBinary(ast *Binary, context interface{}) interface{} {
	return fmt.Sprintf("%s %s %s",
		ast.Left.Visit(s, context).(string),
		ast.Operation,
		ast.Right.Visit(s, context).(string))
}

// VisitConditional visits a conditional expression
func (s *SerializeExpressionVisitor) VisitConditional(ast *Conditional, context interface{}) interface{} {
	return fmt.Sprintf("%s ? %s : %s",
		ast.Condition.Visit(s, context).(string),
		ast.TrueExp.Visit(s, context).(string),
		ast.FalseExp.Visit(s, context).(string))
}

// VisitThisReceiver visits a this receiver
func (s *SerializeExpressionVisitor) VisitThisReceiver(ast *ThisReceiver, context interface{}) interface{} {
	return "this"
}

// VisitImplicitReceiver visits an implicit receiver
func (s *SerializeExpressionVisitor) VisitImplicitReceiver(ast *ImplicitReceiver, context interface{}) interface{} {
	return ""
}

// VisitInterpolation visits an interpolation
func (s *SerializeExpressionVisitor) VisitInterpolation(ast *Interpolation, context interface{}) interface{} {
	var b strings.Builder
	for i, str := range ast.Strings {
		b.WriteString(str)
		if i < len(ast.Expressions) {
			b.WriteString("{{ ")
			b.WriteString(ast.Expressions[i].Visit(s, context).(string))
			b.WriteString(" }}")
		}
	}
	return b.String()
}

// VisitKeyedRead visits a keyed read
func (s *SerializeExpressionVisitor) VisitKeyedRead(ast *KeyedRead, context interface{}) interface{} {
	return fmt.Sprintf("%s[%s]",
		ast.Receiver.Visit(s, context).(string),
		ast.Key.Visit(s, context).(string))
}

// VisitLiteralArray visits a literal array
func (s *SerializeExpressionVisitor) VisitLiteralArray(ast *LiteralArray, context interface{}) interface{} {
	return fmt.Sprintf("[%s]", strings.Join(s.visitAll(ast.Expressions, context), ", "))
}

// VisitLiteralMap visits a literal map
func (s *SerializeExpressionVisitor) VisitLiteralMap(ast *LiteralMap, context interface{}) interface{} {
	pairs := make([]string, len(ast.Keys))
	for i, key := range ast.Keys {
		name := key.Key
		if key.Quoted {
			name = fmt.Sprintf("'%s'", key.Key)
		}
		pairs[i] = fmt.Sprintf("%s: %s", name, ast.Values[i].Visit(s, context).(string))
	}
	return fmt.Sprintf("{%s}", strings.Join(pairs, ", "))
}

// VisitLiteralPrimitive visits a literal primitive
func (s *SerializeExpressionVisitor) VisitLiteralPrimitive(ast *LiteralPrimitive, context interface{}) interface{} {
	switch v := ast.Value.(type) {
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return fmt.Sprintf("'%s'", strings.ReplaceAll(v, "'", "\\'"))
	default:
		panic(fmt.Sprintf("Unsupported primitive type: %T", ast.Value))
	}
}

// VisitPipe visits a pipe expression
func (s *SerializeExpressionVisitor) VisitPipe(ast *BindingPipe, context interface{}) interface{} {
	result := fmt.Sprintf("%s | %s", ast.Exp.Visit(s, context).(string), ast.Name)
	for _, arg := range s.visitAll(ast.Args, context) {
		result += ":" + arg
	}
	return result
}

// VisitPrefixNot visits a prefix not
func (s *SerializeExpressionVisitor) VisitPrefixNot(ast *PrefixNot, context interface{}) interface{} {
	return fmt.Sprintf("!%s", ast.Expression.Visit(s, context).(string))
}

// VisitTypeofExpression visits a typeof expression
func (s *SerializeExpressionVisitor) VisitTypeofExpression(ast *TypeofExpression, context interface{}) interface{} {
	return fmt.Sprintf("typeof %s", ast.Expression.Visit(s, context).(string))
}

// VisitPropertyRead visits a property read
func (s *SerializeExpressionVisitor) VisitPropertyRead(ast *PropertyRead, context interface{}) interface{} {
	if _, ok := ast.Receiver.(*ImplicitReceiver); ok {
		return ast.Name
	}
	return fmt.Sprintf("%s.%s", ast.Receiver.Visit(s, context).(string), ast.Name)
}

// VisitSafePropertyRead visits a safe property read
func (s *SerializeExpressionVisitor) VisitSafePropertyRead(ast *SafePropertyRead, context interface{}) interface{} {
	return fmt.Sprintf("%s?.%s", ast.Receiver.Visit(s, context).(string), ast.Name)
}

// VisitSafeKeyedRead visits a safe keyed read
func (s *SerializeExpressionVisitor) VisitSafeKeyedRead(ast *SafeKeyedRead, context interface{}) interface{} {
	return fmt.Sprintf("%s?.[%s]",
		ast.Receiver.Visit(s, context).(string),
		ast.Key.Visit(s, context).(string))
}

// VisitCall visits a call
func (s *SerializeExpressionVisitor) VisitCall(ast *Call, context interface{}) interface{} {
	return fmt.Sprintf("%s(%s)",
		ast.Receiver.Visit(s, context).(string),
		strings.Join(s.visitAll(ast.Args, context), ", "))
}

// VisitSafeCall visits a safe call
func (s *SerializeExpressionVisitor) VisitSafeCall(ast *SafeCall, context interface{}) interface{} {
	return fmt.Sprintf("%s?.(%s)",
		ast.Receiver.Visit(s, context).(string),
		strings.Join(s.visitAll(ast.Args, context), ", "))
}
