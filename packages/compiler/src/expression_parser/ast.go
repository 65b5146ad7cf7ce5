package expression_parser

// AST is the base interface for all expression AST nodes
type AST interface {
	Visit(visitor AstVisitor, context interface{}) interface{}
}

// ImplicitReceiver is the receiver of a bare identifier, the component context
type ImplicitReceiver struct{}

// NewImplicitReceiver creates a new ImplicitReceiver
func NewImplicitReceiver() *ImplicitReceiver {
	return &ImplicitReceiver{}
}

// Visit implements the AST interface
func (i *ImplicitReceiver) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitImplicitReceiver(i, context)
}

// ThisReceiver represents a receiver when something is accessed through `this`
type ThisReceiver struct{}

// NewThisReceiver creates a new ThisReceiver
func NewThisReceiver() *ThisReceiver {
	return &ThisReceiver{}
}

// Visit implements the AST interface
func (t *ThisReceiver) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitThisReceiver(t, context)
}

// PropertyRead is `receiver.name`
type PropertyRead struct {
	Receiver AST
	Name     string
}

// NewPropertyRead creates a new PropertyRead
func NewPropertyRead(receiver AST, name string) *PropertyRead {
	return &PropertyRead{Receiver: receiver, Name: name}
}

// Visit implements the AST interface
func (p *PropertyRead) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitPropertyRead(p, context)
}

// SafePropertyRead is `receiver?.name`
type SafePropertyRead struct {
	Receiver AST
	Name     string
}

// NewSafePropertyRead creates a new SafePropertyRead
func NewSafePropertyRead(receiver AST, name string) *SafePropertyRead {
	return &SafePropertyRead{Receiver: receiver, Name: name}
}

// Visit implements the AST interface
func (s *SafePropertyRead) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitSafePropertyRead(s, context)
}

// KeyedRead is `receiver[key]`
type KeyedRead struct {
	Receiver AST
	Key      AST
}

// NewKeyedRead creates a new KeyedRead
func NewKeyedRead(receiver, key AST) *KeyedRead {
	return &KeyedRead{Receiver: receiver, Key: key}
}

// Visit implements the AST interface
func (k *KeyedRead) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitKeyedRead(k, context)
}

// SafeKeyedRead is `receiver?.[key]`
type SafeKeyedRead struct {
	Receiver AST
	Key      AST
}

// NewSafeKeyedRead creates a new SafeKeyedRead
func NewSafeKeyedRead(receiver, key AST) *SafeKeyedRead {
	return &SafeKeyedRead{Receiver: receiver, Key: key}
}

// Visit implements the AST interface
func (s *SafeKeyedRead) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitSafeKeyedRead(s, context)
}

// Call is `receiver(args)`
type Call struct {
	Receiver AST
	Args     []AST
}

// NewCall creates a new Call
func NewCall(receiver AST, args []AST) *Call {
	return &Call{Receiver: receiver, Args: args}
}

// Visit implements the AST interface
func (c *Call) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitCall(c, context)
}

// SafeCall is `receiver?.(args)`
type SafeCall struct {
	Receiver AST
	Args     []AST
}

// NewSafeCall creates a new SafeCall
func NewSafeCall(receiver AST, args []AST) *SafeCall {
	return &SafeCall{Receiver: receiver, Args: args}
}

// Visit implements the AST interface
func (s *SafeCall) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitSafeCall(s, context)
}

// LiteralPrimitive is a string, number, boolean, null or undefined literal
type LiteralPrimitive struct {
	Value interface{}
}

// NewLiteralPrimitive creates a new LiteralPrimitive
func NewLiteralPrimitive(value interface{}) *LiteralPrimitive {
	return &LiteralPrimitive{Value: value}
}

// Visit implements the AST interface
func (l *LiteralPrimitive) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralPrimitive(l, context)
}

// LiteralArray is `[a, b]`
type LiteralArray struct {
	Expressions []AST
}

// NewLiteralArray creates a new LiteralArray
func NewLiteralArray(expressions []AST) *LiteralArray {
	return &LiteralArray{Expressions: expressions}
}

// Visit implements the AST interface
func (l *LiteralArray) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralArray(l, context)
}

// LiteralMapKey is the key of a literal map entry
type LiteralMapKey struct {
	Key    string
	Quoted bool
}

// LiteralMap is `{a: b}`. Keys and Values are parallel.
type LiteralMap struct {
	Keys   []LiteralMapKey
	Values []AST
}

// NewLiteralMap creates a new LiteralMap
func NewLiteralMap(keys []LiteralMapKey, values []AST) *LiteralMap {
	return &LiteralMap{Keys: keys, Values: values}
}

// Visit implements the AST interface
func (l *LiteralMap) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralMap(l, context)
}

// Interpolation is `a{{b}}c`. There is one more string than expressions.
type Interpolation struct {
	Strings     []string
	Expressions []AST
}

// NewInterpolation creates a new Interpolation
func NewInterpolation(strings []string, expressions []AST) *Interpolation {
	return &Interpolation{Strings: strings, Expressions: expressions}
}

// Visit implements the AST interface
func (i *Interpolation) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitInterpolation(i, context)
}

// Binary represents a binary operation, including assignments
type Binary struct {
	Operation string
	Left      AST
	Right     AST
}

// NewBinary creates a new Binary
func NewBinary(operation string, left, right AST) *Binary {
	return &Binary{Operation: operation, Left: left, Right: right}
}

// Visit implements the AST interface
func (b *Binary) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitBinary(b, context)
}

// IsAssignmentOperation checks if an operator is an assignment operation
func IsAssignmentOperation(op string) bool {
	return op == "="
}

// Unary is `-expr` or `+expr`
type Unary struct {
	Operator string
	Expr     AST
}

// NewUnary creates a new Unary
func NewUnary(operator string, expr AST) *Unary {
	return &Unary{Operator: operator, Expr: expr}
}

// Visit implements the AST interface
func (u *Unary) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitUnary(u, context)
}

// PrefixNot is `!expr`
type PrefixNot struct {
	Expression AST
}

// NewPrefixNot creates a new PrefixNot
func NewPrefixNot(expression AST) *PrefixNot {
	return &PrefixNot{Expression: expression}
}

// Visit implements the AST interface
func (p *PrefixNot) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitPrefixNot(p, context)
}

// TypeofExpression is `typeof expr`
type TypeofExpression struct {
	Expression AST
}

// NewTypeofExpression creates a new TypeofExpression
func NewTypeofExpression(expression AST) *TypeofExpression {
	return &TypeofExpression{Expression: expression}
}

// Visit implements the AST interface
func (t *TypeofExpression) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitTypeofExpression(t, context)
}

// Conditional is `condition ? trueExp : falseExp`
type Conditional struct {
	Condition AST
	TrueExp   AST
	FalseExp  AST
}

// NewConditional creates a new Conditional
func NewConditional(condition, trueExp, falseExp AST) *Conditional {
	return &Conditional{Condition: condition, TrueExp: trueExp, FalseExp: falseExp}
}

// Visit implements the AST interface
func (c *Conditional) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitConditional(c, context)
}

// BindingPipe is `exp | name:arg1:arg2`
type BindingPipe struct {
	Exp  AST
	Name string
	Args []AST
}

// NewBindingPipe creates a new BindingPipe
func NewBindingPipe(exp AST, name string, args []AST) *BindingPipe {
	return &BindingPipe{Exp: exp, Name: name, Args: args}
}

// Visit implements the AST interface
func (b *BindingPipe) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitPipe(b, context)
}

// AstVisitor is the interface for visiting AST nodes
type AstVisitor interface {
	VisitUnary(ast *Unary, context interface{}) interface{}
	VisitBinary(ast *Binary, context interface{}) interface{}
	VisitConditional(ast *Conditional, context interface{}) interface{}
	VisitThisReceiver(ast *ThisReceiver, context interface{}) interface{}
	VisitImplicitReceiver(ast *ImplicitReceiver, context interface{}) interface{}
	VisitInterpolation(ast *Interpolation, context interface{}) interface{}
	VisitKeyedRead(ast *KeyedRead, context interface{}) interface{}
	VisitLiteralArray(ast *LiteralArray, context interface{}) interface{}
	VisitLiteralMap(ast *LiteralMap, context interface{}) interface{}
	VisitLiteralPrimitive(ast *LiteralPrimitive, context interface{}) interface{}
	VisitPipe(ast *BindingPipe, context interface{}) interface{}
	VisitPrefixNot(ast *PrefixNot, context interface{}) interface{}
	VisitTypeofExpression(ast *TypeofExpression, context interface{}) interface{}
	VisitPropertyRead(ast *PropertyRead, context interface{}) interface{}
	VisitSafePropertyRead(ast *SafePropertyRead, context interface{}) interface{}
	VisitSafeKeyedRead(ast *SafeKeyedRead, context interface{}) interface{}
	VisitCall(ast *Call, context interface{}) interface{}
	VisitSafeCall(ast *SafeCall, context interface{}) interface{}
}
