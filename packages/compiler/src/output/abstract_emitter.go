package output

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	singleQuoteEscapeStringRe = regexp.MustCompile(`'|\\|\n|\r|\$`)
	legalIdentifierRe         = regexp.MustCompile(`(?i)^[$A-Z_][0-9A-Z_$]*$`)
	indentWith                = "  "
)

// RuntimeImportAlias is the namespace alias every external reference prints with.
const RuntimeImportAlias = "i0"

var binaryOperators = map[BinaryOperator]string{
	BinaryOperatorAnd:             "&&",
	BinaryOperatorBigger:          ">",
	BinaryOperatorBiggerEquals:    ">=",
	BinaryOperatorBitwiseOr:       "|",
	BinaryOperatorBitwiseAnd:      "&",
	BinaryOperatorDivide:          "/",
	BinaryOperatorAssign:          "=",
	BinaryOperatorEquals:          "==",
	BinaryOperatorIdentical:       "===",
	BinaryOperatorLower:           "<",
	BinaryOperatorLowerEquals:     "<=",
	BinaryOperatorMinus:           "-",
	BinaryOperatorModulo:          "%",
	BinaryOperatorMultiply:        "*",
	BinaryOperatorNotEquals:       "!=",
	BinaryOperatorNotIdentical:    "!==",
	BinaryOperatorNullishCoalesce: "??",
	BinaryOperatorOr:              "||",
	BinaryOperatorPlus:            "+",
}

// EmittedLine represents a line being emitted
type EmittedLine struct {
	PartsLength int
	Parts       []string
	Indent      int
}

// NewEmittedLine creates a new EmittedLine
func NewEmittedLine(indent int) *EmittedLine {
	return &EmittedLine{Indent: indent}
}

// EmitterVisitorContext accumulates emitted source lines
type EmitterVisitorContext struct {
	lines  []*EmittedLine
	indent int
}

// CreateRootEmitterVisitorContext creates an EmitterVisitorContext without indentation
func CreateRootEmitterVisitorContext() *EmitterVisitorContext {
	return NewEmitterVisitorContext(0)
}

// NewEmitterVisitorContext creates a new EmitterVisitorContext
func NewEmitterVisitorContext(indent int) *EmitterVisitorContext {
	return &EmitterVisitorContext{
		lines:  []*EmittedLine{NewEmittedLine(indent)},
		indent: indent,
	}
}

func (ctx *EmitterVisitorContext) currentLine() *EmittedLine {
	return ctx.lines[len(ctx.lines)-1]
}

// Println prints lastPart and ends the line
func (ctx *EmitterVisitorContext) Println(lastPart string) {
	ctx.Print(lastPart, true)
}

// LineIsEmpty checks if the current line is empty
func (ctx *EmitterVisitorContext) LineIsEmpty() bool {
	return len(ctx.currentLine().Parts) == 0
}

// LineLength returns the length of the current line
func (ctx *EmitterVisitorContext) LineLength() int {
	line := ctx.currentLine()
	return line.Indent*len(indentWith) + line.PartsLength
}

// Print appends part to the current line, optionally starting a new one
func (ctx *EmitterVisitorContext) Print(part string, newLine bool) {
	if len(part) > 0 {
		line := ctx.currentLine()
		line.Parts = append(line.Parts, part)
		line.PartsLength += len(part)
	}
	if newLine {
		ctx.lines = append(ctx.lines, NewEmittedLine(ctx.indent))
	}
}

// RemoveEmptyLastLine removes the empty last line
func (ctx *EmitterVisitorContext) RemoveEmptyLastLine() {
	if ctx.LineIsEmpty() {
		ctx.lines = ctx.lines[:len(ctx.lines)-1]
	}
}

// IncIndent increases the indent
func (ctx *EmitterVisitorContext) IncIndent() {
	ctx.indent++
	if ctx.LineIsEmpty() {
		ctx.currentLine().Indent = ctx.indent
	}
}

// DecIndent decreases the indent
func (ctx *EmitterVisitorContext) DecIndent() {
	ctx.indent--
	if ctx.LineIsEmpty() {
		ctx.currentLine().Indent = ctx.indent
	}
}

// ToSource joins the emitted lines
func (ctx *EmitterVisitorContext) ToSource() string {
	lines := ctx.lines
	if len(lines) > 0 && len(lines[len(lines)-1].Parts) == 0 {
		lines = lines[:len(lines)-1]
	}
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if len(line.Parts) > 0 {
			result = append(result, strings.Repeat(indentWith, line.Indent)+strings.Join(line.Parts, ""))
		} else {
			result = append(result, "")
		}
	}
	return strings.Join(result, "\n")
}

// JsEmitterVisitor prints output AST nodes as JavaScript
type JsEmitterVisitor struct {
	lastIfCondition       OutputExpression
	escapeDollarInStrings bool
}

// NewJsEmitterVisitor creates a new JsEmitterVisitor
func NewJsEmitterVisitor(escapeDollarInStrings bool) *JsEmitterVisitor {
	return &JsEmitterVisitor{escapeDollarInStrings: escapeDollarInStrings}
}

func (v *JsEmitterVisitor) getContext(context interface{}) *EmitterVisitorContext {
	if ctx, ok := context.(*EmitterVisitorContext); ok {
		return ctx
	}
	panic("context must be *EmitterVisitorContext")
}

// EmitStatements prints a list of statements as a JavaScript module body
func EmitStatements(statements []OutputStatement) string {
	ctx := CreateRootEmitterVisitorContext()
	NewJsEmitterVisitor(false).VisitAllStatements(statements, ctx)
	return ctx.ToSource()
}

// EmitExpression prints a single expression
func EmitExpression(expr OutputExpression) string {
	ctx := CreateRootEmitterVisitorContext()
	expr.VisitExpression(NewJsEmitterVisitor(false), ctx)
	return ctx.ToSource()
}

func (v *JsEmitterVisitor) VisitExpressionStmt(stmt *ExpressionStatement, context interface{}) interface{} {
	ctx := v.getContext(context)
	stmt.Expr.VisitExpression(v, ctx)
	ctx.Println(";")
	return nil
}

func (v *JsEmitterVisitor) VisitReturnStmt(stmt *ReturnStatement, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("return ", false)
	stmt.Value.VisitExpression(v, ctx)
	ctx.Println(";")
	return nil
}

func (v *JsEmitterVisitor) VisitIfStmt(stmt *IfStmt, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("if (", false)
	v.lastIfCondition = stmt.Condition
	stmt.Condition.VisitExpression(v, ctx)
	v.lastIfCondition = nil
	ctx.Print(") {", false)

	hasElseCase := len(stmt.FalseCase) > 0
	if len(stmt.TrueCase) <= 1 && !hasElseCase {
		ctx.Print(" ", false)
		v.VisitAllStatements(stmt.TrueCase, ctx)
		ctx.RemoveEmptyLastLine()
		ctx.Print(" ", false)
	} else {
		ctx.Println("")
		ctx.IncIndent()
		v.VisitAllStatements(stmt.TrueCase, ctx)
		ctx.DecIndent()
		if hasElseCase {
			ctx.Println("} else {")
			ctx.IncIndent()
			v.VisitAllStatements(stmt.FalseCase, ctx)
			ctx.DecIndent()
		}
	}
	ctx.Println("}")
	return nil
}

func (v *JsEmitterVisitor) VisitDeclareVarStmt(stmt *DeclareVarStmt, context interface{}) interface{} {
	ctx := v.getContext(context)
	if stmt.HasModifier(StmtModifierExported) {
		ctx.Print("export ", false)
	}
	keyword := "let"
	if stmt.HasModifier(StmtModifierFinal) {
		keyword = "const"
	}
	ctx.Print(keyword+" "+stmt.Name, false)
	if stmt.Value != nil {
		ctx.Print(" = ", false)
		stmt.Value.VisitExpression(v, ctx)
	}
	ctx.Println(";")
	return nil
}

func (v *JsEmitterVisitor) VisitDeclareFunctionStmt(stmt *DeclareFunctionStmt, context interface{}) interface{} {
	ctx := v.getContext(context)
	if stmt.HasModifier(StmtModifierExported) {
		ctx.Print("export ", false)
	}
	ctx.Print("function "+stmt.Name+"(", false)
	v.visitParams(stmt.Params, ctx)
	ctx.Println(") {")
	ctx.IncIndent()
	v.VisitAllStatements(stmt.Statements, ctx)
	ctx.DecIndent()
	ctx.Println("}")
	return nil
}

func (v *JsEmitterVisitor) VisitInvokeFunctionExpr(expr *InvokeFunctionExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	_, shouldParenthesize := expr.Fn.(*ArrowFunctionExpr)
	if shouldParenthesize {
		ctx.Print("(", false)
	}
	expr.Fn.VisitExpression(v, ctx)
	if shouldParenthesize {
		ctx.Print(")", false)
	}
	ctx.Print("(", false)
	v.VisitAllExpressions(expr.Args, ctx, ",")
	ctx.Print(")", false)
	return nil
}

func (v *JsEmitterVisitor) VisitTypeofExpr(expr *TypeofExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("typeof ", false)
	expr.Expr.VisitExpression(v, ctx)
	return nil
}

func (v *JsEmitterVisitor) VisitTaggedTemplateExpr(expr *TaggedTemplateExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	expr.Tag.VisitExpression(v, ctx)
	ctx.Print("`"+templateEscaper.Replace(expr.Text)+"`", false)
	return nil
}

var templateEscaper = strings.NewReplacer("\\", "\\\\", "`", "\\`", "${", "\\${")

func (v *JsEmitterVisitor) VisitReadVarExpr(ast *ReadVarExpr, context interface{}) interface{} {
	v.getContext(context).Print(ast.Name, false)
	return nil
}

func (v *JsEmitterVisitor) VisitLiteralExpr(ast *LiteralExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	switch val := ast.Value.(type) {
	case nil:
		ctx.Print("null", false)
	case string:
		ctx.Print(EscapeIdentifier(val, v.escapeDollarInStrings, true), false)
	case float64:
		ctx.Print(strconv.FormatFloat(val, 'g', -1, 64), false)
	default:
		ctx.Print(fmt.Sprintf("%v", val), false)
	}
	return nil
}

func (v *JsEmitterVisitor) VisitConditionalExpr(ast *ConditionalExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("(", false)
	ast.Condition.VisitExpression(v, ctx)
	ctx.Print(" ? ", false)
	ast.TrueCase.VisitExpression(v, ctx)
	ctx.Print(" : ", false)
	if ast.FalseCase != nil {
		ast.FalseCase.VisitExpression(v, ctx)
	} else {
		ctx.Print("null", false)
	}
	ctx.Print(")", false)
	return nil
}

func (v *JsEmitterVisitor) VisitNotExpr(ast *NotExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("!", false)
	ast.Condition.VisitExpression(v, ctx)
	return nil
}

func (v *JsEmitterVisitor) VisitUnaryOperatorExpr(ast *UnaryOperatorExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	var opStr string
	switch ast.Operator {
	case UnaryOperatorPlus:
		opStr = "+"
	case UnaryOperatorMinus:
		opStr = "-"
	default:
		panic(fmt.Sprintf("Unknown operator %d", ast.Operator))
	}

	parens := ast != v.lastIfCondition
	if parens {
		ctx.Print("(", false)
	}
	ctx.Print(opStr, false)
	ast.Expr.VisitExpression(v, ctx)
	if parens {
		ctx.Print(")", false)
	}
	return nil
}

func (v *JsEmitterVisitor) VisitBinaryOperatorExpr(ast *BinaryOperatorExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	operator, ok := binaryOperators[ast.Operator]
	if !ok {
		panic(fmt.Sprintf("Unknown operator %d", ast.Operator))
	}

	parens := ast != v.lastIfCondition
	if parens {
		ctx.Print("(", false)
	}
	ast.Lhs.VisitExpression(v, ctx)
	ctx.Print(" "+operator+" ", false)
	ast.Rhs.VisitExpression(v, ctx)
	if parens {
		ctx.Print(")", false)
	}
	return nil
}

func (v *JsEmitterVisitor) VisitReadPropExpr(ast *ReadPropExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	ast.Receiver.VisitExpression(v, ctx)
	ctx.Print(".", false)
	ctx.Print(ast.Name, false)
	return nil
}

func (v *JsEmitterVisitor) VisitReadKeyExpr(ast *ReadKeyExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	ast.Receiver.VisitExpression(v, ctx)
	ctx.Print("[", false)
	ast.Index.VisitExpression(v, ctx)
	ctx.Print("]", false)
	return nil
}

func (v *JsEmitterVisitor) VisitLiteralArrayExpr(ast *LiteralArrayExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("[", false)
	v.VisitAllExpressions(ast.Entries, ctx, ",")
	ctx.Print("]", false)
	return nil
}

func (v *JsEmitterVisitor) VisitLiteralMapExpr(ast *LiteralMapExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("{", false)
	visitAllObjects(ast.Entries, ctx, ",", func(entry *LiteralMapEntry) {
		ctx.Print(EscapeIdentifier(entry.Key, v.escapeDollarInStrings, entry.Quoted)+":", false)
		entry.Value.VisitExpression(v, ctx)
	})
	ctx.Print("}", false)
	return nil
}

func (v *JsEmitterVisitor) VisitExternalExpr(ast *ExternalExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	if ast.Value.ModuleName != "" {
		ctx.Print(RuntimeImportAlias+".", false)
	}
	ctx.Print(ast.Value.Name, false)
	return nil
}

func (v *JsEmitterVisitor) VisitFunctionExpr(ast *FunctionExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("function", false)
	if ast.Name != nil {
		ctx.Print(" "+*ast.Name, false)
	}
	ctx.Print("(", false)
	v.visitParams(ast.Params, ctx)
	ctx.Println(") {")
	ctx.IncIndent()
	v.VisitAllStatements(ast.Statements, ctx)
	ctx.DecIndent()
	ctx.Print("}", false)
	return nil
}

func (v *JsEmitterVisitor) VisitArrowFunctionExpr(ast *ArrowFunctionExpr, context interface{}) interface{} {
	ctx := v.getContext(context)
	ctx.Print("(", false)
	v.visitParams(ast.Params, ctx)
	ctx.Print(") =>", false)
	if ast.Body != nil {
		ctx.Print(" ", false)
		_, isMap := ast.Body.(*LiteralMapExpr)
		if isMap {
			ctx.Print("(", false)
		}
		ast.Body.VisitExpression(v, ctx)
		if isMap {
			ctx.Print(")", false)
		}
		return nil
	}
	ctx.Println(" {")
	ctx.IncIndent()
	v.VisitAllStatements(ast.Statements, ctx)
	ctx.DecIndent()
	ctx.Print("}", false)
	return nil
}

func (v *JsEmitterVisitor) visitParams(params []*FnParam, ctx *EmitterVisitorContext) {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	ctx.Print(strings.Join(names, ","), false)
}

// VisitAllExpressions visits expressions, wrapping long lines at separators
func (v *JsEmitterVisitor) VisitAllExpressions(expressions []OutputExpression, ctx *EmitterVisitorContext, separator string) {
	visitAllObjects(expressions, ctx, separator, func(expr OutputExpression) {
		expr.VisitExpression(v, ctx)
	})
}

func visitAllObjects[T any](items []T, ctx *EmitterVisitorContext, separator string, handler func(T)) {
	incrementedIndent := false
	for i, item := range items {
		if i > 0 {
			if ctx.LineLength() > 80 {
				ctx.Print(separator, true)
				if !incrementedIndent {
					ctx.IncIndent()
					ctx.IncIndent()
					incrementedIndent = true
				}
			} else {
				ctx.Print(separator, false)
			}
		}
		handler(item)
	}
	if incrementedIndent {
		ctx.DecIndent()
		ctx.DecIndent()
	}
}

// VisitAllStatements visits all statements
func (v *JsEmitterVisitor) VisitAllStatements(statements []OutputStatement, ctx *EmitterVisitorContext) {
	for _, stmt := range statements {
		stmt.VisitStatement(v, ctx)
	}
}

// EscapeIdentifier quotes and escapes input as a JavaScript string or identifier
func EscapeIdentifier(input string, escapeDollar bool, alwaysQuote bool) string {
	if input == "" && !alwaysQuote {
		return ""
	}

	body := singleQuoteEscapeStringRe.ReplaceAllStringFunc(input, func(match string) string {
		switch match {
		case "$":
			if escapeDollar {
				return "\\$"
			}
			return "$"
		case "\n":
			return "\\n"
		case "\r":
			return "\\r"
		default:
			return "\\" + match
		}
	})

	requiresQuotes := alwaysQuote || !legalIdentifierRe.MatchString(body)
	if requiresQuotes {
		return "'" + body + "'"
	}
	return body
}
