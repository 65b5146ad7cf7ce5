package output

// UnaryOperator represents unary operators
type UnaryOperator int

const (
	UnaryOperatorMinus UnaryOperator = iota
	UnaryOperatorPlus
)

// BinaryOperator represents binary operators
type BinaryOperator int

const (
	BinaryOperatorEquals BinaryOperator = iota
	BinaryOperatorNotEquals
	BinaryOperatorAssign
	BinaryOperatorIdentical
	BinaryOperatorNotIdentical
	BinaryOperatorMinus
	BinaryOperatorPlus
	BinaryOperatorDivide
	BinaryOperatorMultiply
	BinaryOperatorModulo
	BinaryOperatorAnd
	BinaryOperatorOr
	BinaryOperatorBitwiseOr
	BinaryOperatorBitwiseAnd
	BinaryOperatorLower
	BinaryOperatorLowerEquals
	BinaryOperatorBigger
	BinaryOperatorBiggerEquals
	BinaryOperatorNullishCoalesce
)

// OutputExpression represents an expression in the output AST
type OutputExpression interface {
	VisitExpression(visitor ExpressionVisitor, context interface{}) interface{}
	IsEquivalent(e OutputExpression) bool
	IsConstant() bool
	Clone() OutputExpression
}

// ExpressionVisitor is the interface for visiting expressions
type ExpressionVisitor interface {
	VisitReadVarExpr(ast *ReadVarExpr, context interface{}) interface{}
	VisitInvokeFunctionExpr(ast *InvokeFunctionExpr, context interface{}) interface{}
	VisitLiteralExpr(ast *LiteralExpr, context interface{}) interface{}
	VisitExternalExpr(ast *ExternalExpr, context interface{}) interface{}
	VisitConditionalExpr(ast *ConditionalExpr, context interface{}) interface{}
	VisitNotExpr(ast *NotExpr, context interface{}) interface{}
	VisitFunctionExpr(ast *FunctionExpr, context interface{}) interface{}
	VisitUnaryOperatorExpr(ast *UnaryOperatorExpr, context interface{}) interface{}
	VisitBinaryOperatorExpr(ast *BinaryOperatorExpr, context interface{}) interface{}
	VisitReadPropExpr(ast *ReadPropExpr, context interface{}) interface{}
	VisitReadKeyExpr(ast *ReadKeyExpr, context interface{}) interface{}
	VisitLiteralArrayExpr(ast *LiteralArrayExpr, context interface{}) interface{}
	VisitLiteralMapExpr(ast *LiteralMapExpr, context interface{}) interface{}
	VisitTypeofExpr(ast *TypeofExpr, context interface{}) interface{}
	VisitArrowFunctionExpr(ast *ArrowFunctionExpr, context interface{}) interface{}
	VisitTaggedTemplateExpr(ast *TaggedTemplateExpr, context interface{}) interface{}
}

// ReadVarExpr represents a variable read expression
type ReadVarExpr struct {
	Name string
}

// NewReadVarExpr creates a new ReadVarExpr
func NewReadVarExpr(name string) *ReadVarExpr {
	return &ReadVarExpr{Name: name}
}

func (r *ReadVarExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitReadVarExpr(r, context)
}

func (r *ReadVarExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*ReadVarExpr); ok {
		return r.Name == other.Name
	}
	return false
}

func (r *ReadVarExpr) IsConstant() bool {
	return false
}

func (r *ReadVarExpr) Clone() OutputExpression {
	return NewReadVarExpr(r.Name)
}

// Set creates an assignment expression
func (r *ReadVarExpr) Set(value OutputExpression) *BinaryOperatorExpr {
	return NewBinaryOperatorExpr(BinaryOperatorAssign, r, value)
}

// LiteralExpr represents a literal expression
type LiteralExpr struct {
	Value interface{} // int | float64 | string | bool | nil
}

// NewLiteralExpr creates a new LiteralExpr
func NewLiteralExpr(value interface{}) *LiteralExpr {
	return &LiteralExpr{Value: value}
}

func (l *LiteralExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralExpr(l, context)
}

func (l *LiteralExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*LiteralExpr); ok {
		return l.Value == other.Value
	}
	return false
}

func (l *LiteralExpr) IsConstant() bool {
	return true
}

func (l *LiteralExpr) Clone() OutputExpression {
	return NewLiteralExpr(l.Value)
}

// BinaryOperatorExpr represents a binary operator expression
type BinaryOperatorExpr struct {
	Operator BinaryOperator
	Lhs      OutputExpression
	Rhs      OutputExpression
}

// NewBinaryOperatorExpr creates a new BinaryOperatorExpr
func NewBinaryOperatorExpr(operator BinaryOperator, lhs, rhs OutputExpression) *BinaryOperatorExpr {
	return &BinaryOperatorExpr{Operator: operator, Lhs: lhs, Rhs: rhs}
}

func (b *BinaryOperatorExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitBinaryOperatorExpr(b, context)
}

func (b *BinaryOperatorExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*BinaryOperatorExpr); ok {
		return b.Operator == other.Operator &&
			b.Lhs.IsEquivalent(other.Lhs) &&
			b.Rhs.IsEquivalent(other.Rhs)
	}
	return false
}

func (b *BinaryOperatorExpr) IsConstant() bool {
	return false
}

func (b *BinaryOperatorExpr) Clone() OutputExpression {
	return NewBinaryOperatorExpr(b.Operator, b.Lhs.Clone(), b.Rhs.Clone())
}

// IsAssignment reports whether the expression writes to its left-hand side
func (b *BinaryOperatorExpr) IsAssignment() bool {
	return b.Operator == BinaryOperatorAssign
}

// NullSafeIsEquivalent compares two possibly-nil expressions
func NullSafeIsEquivalent(base, other OutputExpression) bool {
	if base == nil || other == nil {
		return base == other
	}
	return base.IsEquivalent(other)
}

// AreAllEquivalent compares two expression lists element by element
func AreAllEquivalent(base, other []OutputExpression) bool {
	if len(base) != len(other) {
		return false
	}
	for i := range base {
		if !NullSafeIsEquivalent(base[i], other[i]) {
			return false
		}
	}
	return true
}

// AreAllStatementsEquivalent compares two statement lists element by element
func AreAllStatementsEquivalent(base, other []OutputStatement) bool {
	if len(base) != len(other) {
		return false
	}
	for i := range base {
		if !base[i].IsEquivalent(other[i]) {
			return false
		}
	}
	return true
}

// InvokeFunctionExpr represents a function call
type InvokeFunctionExpr struct {
	Fn   OutputExpression
	Args []OutputExpression
	Pure bool
}

// NewInvokeFunctionExpr creates a new InvokeFunctionExpr
func NewInvokeFunctionExpr(fn OutputExpression, args []OutputExpression, pure bool) *InvokeFunctionExpr {
	return &InvokeFunctionExpr{Fn: fn, Args: args, Pure: pure}
}

func (i *InvokeFunctionExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitInvokeFunctionExpr(i, context)
}

func (i *InvokeFunctionExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*InvokeFunctionExpr); ok {
		return i.Fn.IsEquivalent(other.Fn) && AreAllEquivalent(i.Args, other.Args) && i.Pure == other.Pure
	}
	return false
}

func (i *InvokeFunctionExpr) IsConstant() bool {
	return false
}

func (i *InvokeFunctionExpr) Clone() OutputExpression {
	return NewInvokeFunctionExpr(i.Fn.Clone(), cloneAll(i.Args), i.Pure)
}

// ExternalReference names a symbol exported by the runtime
type ExternalReference struct {
	ModuleName string
	Name       string
}

// ExternalExpr represents a reference to an external symbol
type ExternalExpr struct {
	Value ExternalReference
}

// NewExternalExpr creates a new ExternalExpr
func NewExternalExpr(value ExternalReference) *ExternalExpr {
	return &ExternalExpr{Value: value}
}

func (e *ExternalExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitExternalExpr(e, context)
}

func (e *ExternalExpr) IsEquivalent(other OutputExpression) bool {
	if o, ok := other.(*ExternalExpr); ok {
		return e.Value == o.Value
	}
	return false
}

func (e *ExternalExpr) IsConstant() bool {
	return false
}

func (e *ExternalExpr) Clone() OutputExpression {
	return NewExternalExpr(e.Value)
}

// ConditionalExpr represents `condition ? trueCase : falseCase`
type ConditionalExpr struct {
	Condition OutputExpression
	TrueCase  OutputExpression
	FalseCase OutputExpression
}

// NewConditionalExpr creates a new ConditionalExpr
func NewConditionalExpr(condition, trueCase, falseCase OutputExpression) *ConditionalExpr {
	return &ConditionalExpr{Condition: condition, TrueCase: trueCase, FalseCase: falseCase}
}

func (c *ConditionalExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitConditionalExpr(c, context)
}

func (c *ConditionalExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*ConditionalExpr); ok {
		return c.Condition.IsEquivalent(other.Condition) &&
			c.TrueCase.IsEquivalent(other.TrueCase) &&
			NullSafeIsEquivalent(c.FalseCase, other.FalseCase)
	}
	return false
}

func (c *ConditionalExpr) IsConstant() bool {
	return false
}

func (c *ConditionalExpr) Clone() OutputExpression {
	var falseCase OutputExpression
	if c.FalseCase != nil {
		falseCase = c.FalseCase.Clone()
	}
	return NewConditionalExpr(c.Condition.Clone(), c.TrueCase.Clone(), falseCase)
}

// NotExpr represents logical negation
type NotExpr struct {
	Condition OutputExpression
}

// NewNotExpr creates a new NotExpr
func NewNotExpr(condition OutputExpression) *NotExpr {
	return &NotExpr{Condition: condition}
}

func (n *NotExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitNotExpr(n, context)
}

func (n *NotExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*NotExpr); ok {
		return n.Condition.IsEquivalent(other.Condition)
	}
	return false
}

func (n *NotExpr) IsConstant() bool {
	return false
}

func (n *NotExpr) Clone() OutputExpression {
	return NewNotExpr(n.Condition.Clone())
}

// FnParam is a single function parameter
type FnParam struct {
	Name string
}

// NewFnParam creates a new FnParam
func NewFnParam(name string) *FnParam {
	return &FnParam{Name: name}
}

func areAllParamsEquivalent(base, other []*FnParam) bool {
	if len(base) != len(other) {
		return false
	}
	for i := range base {
		if base[i].Name != other[i].Name {
			return false
		}
	}
	return true
}

// FunctionExpr represents a `function name(params) { statements }` expression
type FunctionExpr struct {
	Params     []*FnParam
	Statements []OutputStatement
	Name       *string
}

// NewFunctionExpr creates a new FunctionExpr
func NewFunctionExpr(params []*FnParam, statements []OutputStatement, name *string) *FunctionExpr {
	return &FunctionExpr{Params: params, Statements: statements, Name: name}
}

func (f *FunctionExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitFunctionExpr(f, context)
}

func (f *FunctionExpr) IsEquivalent(e OutputExpression) bool {
	if fn, ok := e.(*FunctionExpr); ok {
		return areAllParamsEquivalent(f.Params, fn.Params) &&
			AreAllStatementsEquivalent(f.Statements, fn.Statements)
	}
	return false
}

// IsEquivalentToStmt checks if this FunctionExpr declares the same function as stmt
func (f *FunctionExpr) IsEquivalentToStmt(stmt *DeclareFunctionStmt) bool {
	return areAllParamsEquivalent(f.Params, stmt.Params) &&
		AreAllStatementsEquivalent(f.Statements, stmt.Statements)
}

func (f *FunctionExpr) IsConstant() bool {
	return false
}

func (f *FunctionExpr) Clone() OutputExpression {
	params := make([]*FnParam, len(f.Params))
	for i, p := range f.Params {
		params[i] = NewFnParam(p.Name)
	}
	return NewFunctionExpr(params, f.Statements, f.Name)
}

// ToDeclStmt converts a FunctionExpr to a DeclareFunctionStmt
func (f *FunctionExpr) ToDeclStmt(name string, modifiers StmtModifier) *DeclareFunctionStmt {
	return NewDeclareFunctionStmt(name, f.Params, f.Statements, modifiers)
}

// ArrowFunctionExpr represents `(params) => body`. Exactly one of Body and
// Statements is set.
type ArrowFunctionExpr struct {
	Params     []*FnParam
	Body       OutputExpression
	Statements []OutputStatement
}

// NewArrowFunctionExpr creates an arrow function with an expression body
func NewArrowFunctionExpr(params []*FnParam, body OutputExpression) *ArrowFunctionExpr {
	return &ArrowFunctionExpr{Params: params, Body: body}
}

func (a *ArrowFunctionExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitArrowFunctionExpr(a, context)
}

func (a *ArrowFunctionExpr) IsEquivalent(e OutputExpression) bool {
	other, ok := e.(*ArrowFunctionExpr)
	if !ok || !areAllParamsEquivalent(a.Params, other.Params) {
		return false
	}
	if a.Body != nil || other.Body != nil {
		return NullSafeIsEquivalent(a.Body, other.Body)
	}
	return AreAllStatementsEquivalent(a.Statements, other.Statements)
}

func (a *ArrowFunctionExpr) IsConstant() bool {
	return false
}

func (a *ArrowFunctionExpr) Clone() OutputExpression {
	params := make([]*FnParam, len(a.Params))
	for i, p := range a.Params {
		params[i] = NewFnParam(p.Name)
	}
	clone := &ArrowFunctionExpr{Params: params, Statements: a.Statements}
	if a.Body != nil {
		clone.Body = a.Body.Clone()
	}
	return clone
}

// UnaryOperatorExpr represents `-expr` or `+expr`
type UnaryOperatorExpr struct {
	Operator UnaryOperator
	Expr     OutputExpression
}

// NewUnaryOperatorExpr creates a new UnaryOperatorExpr
func NewUnaryOperatorExpr(operator UnaryOperator, expr OutputExpression) *UnaryOperatorExpr {
	return &UnaryOperatorExpr{Operator: operator, Expr: expr}
}

func (u *UnaryOperatorExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitUnaryOperatorExpr(u, context)
}

func (u *UnaryOperatorExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*UnaryOperatorExpr); ok {
		return u.Operator == other.Operator && u.Expr.IsEquivalent(other.Expr)
	}
	return false
}

func (u *UnaryOperatorExpr) IsConstant() bool {
	return false
}

func (u *UnaryOperatorExpr) Clone() OutputExpression {
	return NewUnaryOperatorExpr(u.Operator, u.Expr.Clone())
}

// ReadPropExpr represents `receiver.name`
type ReadPropExpr struct {
	Receiver OutputExpression
	Name     string
}

// NewReadPropExpr creates a new ReadPropExpr
func NewReadPropExpr(receiver OutputExpression, name string) *ReadPropExpr {
	return &ReadPropExpr{Receiver: receiver, Name: name}
}

func (r *ReadPropExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitReadPropExpr(r, context)
}

func (r *ReadPropExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*ReadPropExpr); ok {
		return r.Name == other.Name && r.Receiver.IsEquivalent(other.Receiver)
	}
	return false
}

func (r *ReadPropExpr) IsConstant() bool {
	return false
}

func (r *ReadPropExpr) Clone() OutputExpression {
	return NewReadPropExpr(r.Receiver.Clone(), r.Name)
}

// Set creates an assignment to this property
func (r *ReadPropExpr) Set(value OutputExpression) *BinaryOperatorExpr {
	return NewBinaryOperatorExpr(BinaryOperatorAssign, r, value)
}

// ReadKeyExpr represents `receiver[index]`
type ReadKeyExpr struct {
	Receiver OutputExpression
	Index    OutputExpression
}

// NewReadKeyExpr creates a new ReadKeyExpr
func NewReadKeyExpr(receiver, index OutputExpression) *ReadKeyExpr {
	return &ReadKeyExpr{Receiver: receiver, Index: index}
}

func (r *ReadKeyExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitReadKeyExpr(r, context)
}

func (r *ReadKeyExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*ReadKeyExpr); ok {
		return r.Receiver.IsEquivalent(other.Receiver) && r.Index.IsEquivalent(other.Index)
	}
	return false
}

func (r *ReadKeyExpr) IsConstant() bool {
	return false
}

func (r *ReadKeyExpr) Clone() OutputExpression {
	return NewReadKeyExpr(r.Receiver.Clone(), r.Index.Clone())
}

// Set creates an assignment to this key
func (r *ReadKeyExpr) Set(value OutputExpression) *BinaryOperatorExpr {
	return NewBinaryOperatorExpr(BinaryOperatorAssign, r, value)
}

// LiteralArrayExpr represents `[a, b, c]`
type LiteralArrayExpr struct {
	Entries []OutputExpression
}

// NewLiteralArrayExpr creates a new LiteralArrayExpr
func NewLiteralArrayExpr(entries []OutputExpression) *LiteralArrayExpr {
	return &LiteralArrayExpr{Entries: entries}
}

func (l *LiteralArrayExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralArrayExpr(l, context)
}

func (l *LiteralArrayExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*LiteralArrayExpr); ok {
		return AreAllEquivalent(l.Entries, other.Entries)
	}
	return false
}

func (l *LiteralArrayExpr) IsConstant() bool {
	for _, entry := range l.Entries {
		if !entry.IsConstant() {
			return false
		}
	}
	return true
}

func (l *LiteralArrayExpr) Clone() OutputExpression {
	return NewLiteralArrayExpr(cloneAll(l.Entries))
}

// LiteralMapEntry is a single `key: value` pair of a LiteralMapExpr
type LiteralMapEntry struct {
	Key    string
	Value  OutputExpression
	Quoted bool
}

// NewLiteralMapEntry creates a new LiteralMapEntry
func NewLiteralMapEntry(key string, value OutputExpression, quoted bool) *LiteralMapEntry {
	return &LiteralMapEntry{Key: key, Value: value, Quoted: quoted}
}

// IsEquivalent compares two entries
func (l *LiteralMapEntry) IsEquivalent(e *LiteralMapEntry) bool {
	return l.Key == e.Key && l.Value.IsEquivalent(e.Value)
}

// LiteralMapExpr represents `{key: value, ...}`
type LiteralMapExpr struct {
	Entries []*LiteralMapEntry
}

// NewLiteralMapExpr creates a new LiteralMapExpr
func NewLiteralMapExpr(entries []*LiteralMapEntry) *LiteralMapExpr {
	return &LiteralMapExpr{Entries: entries}
}

func (l *LiteralMapExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralMapExpr(l, context)
}

func (l *LiteralMapExpr) IsEquivalent(e OutputExpression) bool {
	other, ok := e.(*LiteralMapExpr)
	if !ok || len(l.Entries) != len(other.Entries) {
		return false
	}
	for i := range l.Entries {
		if !l.Entries[i].IsEquivalent(other.Entries[i]) {
			return false
		}
	}
	return true
}

func (l *LiteralMapExpr) IsConstant() bool {
	for _, entry := range l.Entries {
		if !entry.Value.IsConstant() {
			return false
		}
	}
	return true
}

func (l *LiteralMapExpr) Clone() OutputExpression {
	entries := make([]*LiteralMapEntry, len(l.Entries))
	for i, entry := range l.Entries {
		entries[i] = NewLiteralMapEntry(entry.Key, entry.Value.Clone(), entry.Quoted)
	}
	return NewLiteralMapExpr(entries)
}

// TypeofExpr represents `typeof expr`
type TypeofExpr struct {
	Expr OutputExpression
}

// NewTypeofExpr creates a new TypeofExpr
func NewTypeofExpr(expr OutputExpression) *TypeofExpr {
	return &TypeofExpr{Expr: expr}
}

func (t *TypeofExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitTypeofExpr(t, context)
}

func (t *TypeofExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*TypeofExpr); ok {
		return t.Expr.IsEquivalent(other.Expr)
	}
	return false
}

func (t *TypeofExpr) IsConstant() bool {
	return t.Expr.IsConstant()
}

func (t *TypeofExpr) Clone() OutputExpression {
	return NewTypeofExpr(t.Expr.Clone())
}

// TaggedTemplateExpr represents tag`text`, a tagged template literal without interpolations
type TaggedTemplateExpr struct {
	Tag  OutputExpression
	Text string
}

// NewTaggedTemplateExpr creates a new TaggedTemplateExpr
func NewTaggedTemplateExpr(tag OutputExpression, text string) *TaggedTemplateExpr {
	return &TaggedTemplateExpr{Tag: tag, Text: text}
}

func (t *TaggedTemplateExpr) VisitExpression(visitor ExpressionVisitor, context interface{}) interface{} {
	return visitor.VisitTaggedTemplateExpr(t, context)
}

func (t *TaggedTemplateExpr) IsEquivalent(e OutputExpression) bool {
	if other, ok := e.(*TaggedTemplateExpr); ok {
		return t.Text == other.Text && t.Tag.IsEquivalent(other.Tag)
	}
	return false
}

func (t *TaggedTemplateExpr) IsConstant() bool {
	return false
}

func (t *TaggedTemplateExpr) Clone() OutputExpression {
	return NewTaggedTemplateExpr(t.Tag.Clone(), t.Text)
}

func cloneAll(exprs []OutputExpression) []OutputExpression {
	out := make([]OutputExpression, len(exprs))
	for i, e := range exprs {
		out[i] = e.Clone()
	}
	return out
}

// Variable is shorthand for NewReadVarExpr
func Variable(name string) *ReadVarExpr {
	return NewReadVarExpr(name)
}

// ImportExpr is shorthand for NewExternalExpr
func ImportExpr(ref ExternalReference) *ExternalExpr {
	return NewExternalExpr(ref)
}

// Literal is shorthand for NewLiteralExpr
func Literal(value interface{}) *LiteralExpr {
	return NewLiteralExpr(value)
}

// NullExpr is the `null` literal
var NullExpr = NewLiteralExpr(nil)

// StmtModifier is a bit set of statement modifiers
type StmtModifier int

const (
	StmtModifierNone     StmtModifier = 0
	StmtModifierFinal    StmtModifier = 1 << 0
	StmtModifierExported StmtModifier = 1 << 2
)

// StatementVisitor is the interface for visiting statements
type StatementVisitor interface {
	VisitDeclareVarStmt(stmt *DeclareVarStmt, context interface{}) interface{}
	VisitDeclareFunctionStmt(stmt *DeclareFunctionStmt, context interface{}) interface{}
	VisitExpressionStmt(stmt *ExpressionStatement, context interface{}) interface{}
	VisitReturnStmt(stmt *ReturnStatement, context interface{}) interface{}
	VisitIfStmt(stmt *IfStmt, context interface{}) interface{}
}

// OutputStatement represents a statement in the output AST
type OutputStatement interface {
	GetModifiers() StmtModifier
	VisitStatement(visitor StatementVisitor, context interface{}) interface{}
	IsEquivalent(stmt OutputStatement) bool
}

// StatementBase is the base struct for all statements
type StatementBase struct {
	Modifiers StmtModifier
}

// GetModifiers returns the modifiers
func (s *StatementBase) GetModifiers() StmtModifier {
	return s.Modifiers
}

// HasModifier reports whether the given modifier is set
func (s *StatementBase) HasModifier(modifier StmtModifier) bool {
	return s.Modifiers&modifier != 0
}

// DeclareVarStmt represents `let name = value;` or `const name = value;`
type DeclareVarStmt struct {
	StatementBase
	Name  string
	Value OutputExpression
}

// NewDeclareVarStmt creates a new DeclareVarStmt; value may be nil
func NewDeclareVarStmt(name string, value OutputExpression, modifiers StmtModifier) *DeclareVarStmt {
	return &DeclareVarStmt{
		StatementBase: StatementBase{Modifiers: modifiers},
		Name:          name,
		Value:         value,
	}
}

func (d *DeclareVarStmt) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitDeclareVarStmt(d, context)
}

func (d *DeclareVarStmt) IsEquivalent(stmt OutputStatement) bool {
	if other, ok := stmt.(*DeclareVarStmt); ok {
		return d.Name == other.Name && NullSafeIsEquivalent(d.Value, other.Value)
	}
	return false
}

// DeclareFunctionStmt represents `function name(params) { statements }`
type DeclareFunctionStmt struct {
	StatementBase
	Name       string
	Params     []*FnParam
	Statements []OutputStatement
}

// NewDeclareFunctionStmt creates a new DeclareFunctionStmt
func NewDeclareFunctionStmt(name string, params []*FnParam, statements []OutputStatement, modifiers StmtModifier) *DeclareFunctionStmt {
	return &DeclareFunctionStmt{
		StatementBase: StatementBase{Modifiers: modifiers},
		Name:          name,
		Params:        params,
		Statements:    statements,
	}
}

func (d *DeclareFunctionStmt) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitDeclareFunctionStmt(d, context)
}

func (d *DeclareFunctionStmt) IsEquivalent(stmt OutputStatement) bool {
	if other, ok := stmt.(*DeclareFunctionStmt); ok {
		return areAllParamsEquivalent(d.Params, other.Params) &&
			AreAllStatementsEquivalent(d.Statements, other.Statements)
	}
	return false
}

// ExpressionStatement represents `expr;`
type ExpressionStatement struct {
	StatementBase
	Expr OutputExpression
}

// NewExpressionStatement creates a new ExpressionStatement
func NewExpressionStatement(expr OutputExpression) *ExpressionStatement {
	return &ExpressionStatement{Expr: expr}
}

func (e *ExpressionStatement) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitExpressionStmt(e, context)
}

func (e *ExpressionStatement) IsEquivalent(stmt OutputStatement) bool {
	if other, ok := stmt.(*ExpressionStatement); ok {
		return e.Expr.IsEquivalent(other.Expr)
	}
	return false
}

// ReturnStatement represents `return value;`
type ReturnStatement struct {
	StatementBase
	Value OutputExpression
}

// NewReturnStatement creates a new ReturnStatement
func NewReturnStatement(value OutputExpression) *ReturnStatement {
	return &ReturnStatement{Value: value}
}

func (r *ReturnStatement) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitReturnStmt(r, context)
}

func (r *ReturnStatement) IsEquivalent(stmt OutputStatement) bool {
	if other, ok := stmt.(*ReturnStatement); ok {
		return r.Value.IsEquivalent(other.Value)
	}
	return false
}

// IfStmt represents `if (condition) { trueCase } else { falseCase }`
type IfStmt struct {
	StatementBase
	Condition OutputExpression
	TrueCase  []OutputStatement
	FalseCase []OutputStatement
}

// NewIfStmt creates a new IfStmt
func NewIfStmt(condition OutputExpression, trueCase, falseCase []OutputStatement) *IfStmt {
	return &IfStmt{Condition: condition, TrueCase: trueCase, FalseCase: falseCase}
}

func (i *IfStmt) VisitStatement(visitor StatementVisitor, context interface{}) interface{} {
	return visitor.VisitIfStmt(i, context)
}

func (i *IfStmt) IsEquivalent(stmt OutputStatement) bool {
	if other, ok := stmt.(*IfStmt); ok {
		return i.Condition.IsEquivalent(other.Condition) &&
			AreAllStatementsEquivalent(i.TrueCase, other.TrueCase) &&
			AreAllStatementsEquivalent(i.FalseCase, other.FalseCase)
	}
	return false
}
