package expression

import (
	"fmt"

	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ir_traits "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/traits"
)

// ExpressionTransform is a transformer type which converts expressions into general `output.OutputExpression`s
type ExpressionTransform func(expr output.OutputExpression, flags VisitorContextFlag) output.OutputExpression

// VisitorContextFlag represents flags for visitor context
type VisitorContextFlag int

const (
	// VisitorContextFlagNone - No flags
	VisitorContextFlagNone VisitorContextFlag = 0
	// VisitorContextFlagInChildOperation - Inside a handler body, track function or pure function body
	VisitorContextFlagInChildOperation VisitorContextFlag = 0b0001
)

// IrExpression is an interface for IR expressions that can transform their internal expressions
type IrExpression interface {
	output.OutputExpression
	GetExpressionKind() ir.ExpressionKind
	TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag)
}

// ExpressionBase is the base type used for all logical IR expressions
type ExpressionBase struct {
	Kind ir.ExpressionKind
}

// GetExpressionKind returns the expression kind
func (e *ExpressionBase) GetExpressionKind() ir.ExpressionKind {
	return e.Kind
}

// VisitExpression fails: IR expressions must be reified before they are printed
func (e *ExpressionBase) VisitExpression(visitor output.ExpressionVisitor, context interface{}) interface{} {
	panic(fmt.Sprintf("AssertionError: IR expression of kind %d was not reified", e.Kind))
}

// IsConstant returns false, IR expressions are never compile-time constants
func (e *ExpressionBase) IsConstant() bool {
	return false
}

// IsIrExpression checks whether a given `output.OutputExpression` is a logical IR expression type
func IsIrExpression(expr output.OutputExpression) bool {
	_, ok := expr.(IrExpression)
	return ok
}

// LexicalReadExpr represents a lexical read of a variable name
type LexicalReadExpr struct {
	ExpressionBase
	Name string
}

// NewLexicalReadExpr creates a new LexicalReadExpr
func NewLexicalReadExpr(name string) *LexicalReadExpr {
	return &LexicalReadExpr{ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindLexicalRead}, Name: name}
}

func (l *LexicalReadExpr) IsEquivalent(other output.OutputExpression) bool {
	if o, ok := other.(*LexicalReadExpr); ok {
		return l.Name == o.Name
	}
	return false
}

func (l *LexicalReadExpr) Clone() output.OutputExpression {
	return NewLexicalReadExpr(l.Name)
}

func (l *LexicalReadExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {}

// ReferenceExpr retrieves the value of a local reference
type ReferenceExpr struct {
	ExpressionBase
	Target     ir_operation.XrefId
	TargetSlot *ir_traits.SlotHandle
	Offset     int
}

// NewReferenceExpr creates a new ReferenceExpr
func NewReferenceExpr(target ir_operation.XrefId, targetSlot *ir_traits.SlotHandle, offset int) *ReferenceExpr {
	return &ReferenceExpr{
		ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindReference},
		Target:         target,
		TargetSlot:     targetSlot,
		Offset:         offset,
	}
}

func (r *ReferenceExpr) IsEquivalent(other output.OutputExpression) bool {
	if o, ok := other.(*ReferenceExpr); ok {
		return r.Target == o.Target && r.Offset == o.Offset
	}
	return false
}

func (r *ReferenceExpr) Clone() output.OutputExpression {
	return NewReferenceExpr(r.Target, r.TargetSlot, r.Offset)
}

func (r *ReferenceExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {}

// ContextExpr is a reference to the current view context (usually the `ctx` variable in a template function)
type ContextExpr struct {
	ExpressionBase
	View ir_operation.XrefId
}

// NewContextExpr creates a new ContextExpr
func NewContextExpr(view ir_operation.XrefId) *ContextExpr {
	return &ContextExpr{ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindContext}, View: view}
}

func (c *ContextExpr) IsEquivalent(other output.OutputExpression) bool {
	if o, ok := other.(*ContextExpr); ok {
		return c.View == o.View
	}
	return false
}

func (c *ContextExpr) Clone() output.OutputExpression {
	return NewContextExpr(c.View)
}

func (c *ContextExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {}

// TrackContextExpr is a reference to the current view context inside a track function
type TrackContextExpr struct {
	ExpressionBase
	View ir_operation.XrefId
}

// NewTrackContextExpr creates a new TrackContextExpr
func NewTrackContextExpr(view ir_operation.XrefId) *TrackContextExpr {
	return &TrackContextExpr{ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindTrackContext}, View: view}
}

func (t *TrackContextExpr) IsEquivalent(other output.OutputExpression) bool {
	if o, ok := other.(*TrackContextExpr); ok {
		return t.View == o.View
	}
	return false
}

func (t *TrackContextExpr) Clone() output.OutputExpression {
	return NewTrackContextExpr(t.View)
}

func (t *TrackContextExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {}

// NextContextExpr navigates to the next view context in the view hierarchy
type NextContextExpr struct {
	ExpressionBase
	Steps int
}

// NewNextContextExpr creates a new NextContextExpr of one step
func NewNextContextExpr() *NextContextExpr {
	return &NextContextExpr{ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindNextContext}, Steps: 1}
}

func (n *NextContextExpr) IsEquivalent(other output.OutputExpression) bool {
	if o, ok := other.(*NextContextExpr); ok {
		return n.Steps == o.Steps
	}
	return false
}

func (n *NextContextExpr) Clone() output.OutputExpression {
	expr := NewNextContextExpr()
	expr.Steps = n.Steps
	return expr
}

func (n *NextContextExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {}

// GetCurrentViewExpr snapshots the current view context so it can be restored in a listener
type GetCurrentViewExpr struct {
	ExpressionBase
}

// NewGetCurrentViewExpr creates a new GetCurrentViewExpr
func NewGetCurrentViewExpr() *GetCurrentViewExpr {
	return &GetCurrentViewExpr{ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindGetCurrentView}}
}

func (g *GetCurrentViewExpr) IsEquivalent(other output.OutputExpression) bool {
	_, ok := other.(*GetCurrentViewExpr)
	return ok
}

func (g *GetCurrentViewExpr) Clone() output.OutputExpression {
	return NewGetCurrentViewExpr()
}

func (g *GetCurrentViewExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {}

// RestoreViewExpr restores a snapshotted view. It names the view until the variable
// holding the snapshot is resolved into Resolved.
type RestoreViewExpr struct {
	ExpressionBase
	View     ir_operation.XrefId
	Resolved output.OutputExpression
}

// NewRestoreViewExpr creates a new RestoreViewExpr
func NewRestoreViewExpr(view ir_operation.XrefId) *RestoreViewExpr {
	return &RestoreViewExpr{ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindRestoreView}, View: view}
}

func (r *RestoreViewExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*RestoreViewExpr)
	if !ok || r.View != o.View {
		return false
	}
	return output.NullSafeIsEquivalent(r.Resolved, o.Resolved)
}

func (r *RestoreViewExpr) Clone() output.OutputExpression {
	expr := NewRestoreViewExpr(r.View)
	if r.Resolved != nil {
		expr.Resolved = r.Resolved.Clone()
	}
	return expr
}

func (r *RestoreViewExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	if r.Resolved != nil {
		r.Resolved = TransformExpressionsInExpression(r.Resolved, transform, flags)
	}
}

// ResetViewExpr resets the current view context after `RestoreView`
type ResetViewExpr struct {
	ExpressionBase
	Expr output.OutputExpression
}

// NewResetViewExpr creates a new ResetViewExpr
func NewResetViewExpr(expr output.OutputExpression) *ResetViewExpr {
	return &ResetViewExpr{ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindResetView}, Expr: expr}
}

func (r *ResetViewExpr) IsEquivalent(other output.OutputExpression) bool {
	if o, ok := other.(*ResetViewExpr); ok {
		return r.Expr.IsEquivalent(o.Expr)
	}
	return false
}

func (r *ResetViewExpr) Clone() output.OutputExpression {
	return NewResetViewExpr(r.Expr.Clone())
}

func (r *ResetViewExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	r.Expr = TransformExpressionsInExpression(r.Expr, transform, flags)
}

// ReadVariableExpr is a read of a variable declared as an `ops.VariableOp`
type ReadVariableExpr struct {
	ExpressionBase
	Xref ir_operation.XrefId
	Name *string
}

// NewReadVariableExpr creates a new ReadVariableExpr
func NewReadVariableExpr(xref ir_operation.XrefId) *ReadVariableExpr {
	return &ReadVariableExpr{ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindReadVariable}, Xref: xref}
}

func (r *ReadVariableExpr) IsEquivalent(other output.OutputExpression) bool {
	if o, ok := other.(*ReadVariableExpr); ok {
		return r.Xref == o.Xref
	}
	return false
}

func (r *ReadVariableExpr) Clone() output.OutputExpression {
	expr := NewReadVariableExpr(r.Xref)
	expr.Name = r.Name
	return expr
}

func (r *ReadVariableExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {}

// PureFunctionExpr defines and calls a function with change-detected arguments.
// Body refers to the arguments through PureFunctionParameterExpr until it is
// extracted into a shared constant and replaced by Fn.
type PureFunctionExpr struct {
	ExpressionBase
	VarOffset *int
	Body      output.OutputExpression
	Args      []output.OutputExpression
	Fn        output.OutputExpression
}

// NewPureFunctionExpr creates a new PureFunctionExpr
func NewPureFunctionExpr(body output.OutputExpression, args []output.OutputExpression) *PureFunctionExpr {
	return &PureFunctionExpr{
		ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindPureFunctionExpr},
		Body:           body,
		Args:           args,
	}
}

// HasConsumesVarsTrait implements ConsumesVarsTrait
func (p *PureFunctionExpr) HasConsumesVarsTrait() bool {
	return true
}

// GetVarOffset implements UsesVarOffsetTrait
func (p *PureFunctionExpr) GetVarOffset() *int {
	return p.VarOffset
}

// SetVarOffset implements UsesVarOffsetTrait
func (p *PureFunctionExpr) SetVarOffset(offset int) {
	p.VarOffset = &offset
}

func (p *PureFunctionExpr) IsEquivalent(other output.OutputExpression) bool {
	o, ok := other.(*PureFunctionExpr)
	if !ok || p.Body == nil || o.Body == nil {
		return false
	}
	return p.Body.IsEquivalent(o.Body) && output.AreAllEquivalent(p.Args, o.Args)
}

func (p *PureFunctionExpr) Clone() output.OutputExpression {
	var body output.OutputExpression
	if p.Body != nil {
		body = p.Body.Clone()
	}
	args := make([]output.OutputExpression, len(p.Args))
	for i, arg := range p.Args {
		args[i] = arg.Clone()
	}
	expr := NewPureFunctionExpr(body, args)
	if p.Fn != nil {
		expr.Fn = p.Fn.Clone()
	}
	expr.VarOffset = p.VarOffset
	return expr
}

func (p *PureFunctionExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	if p.Body != nil {
		p.Body = TransformExpressionsInExpression(p.Body, transform, flags|VisitorContextFlagInChildOperation)
	} else if p.Fn != nil {
		p.Fn = TransformExpressionsInExpression(p.Fn, transform, flags)
	}
	for i := range p.Args {
		p.Args[i] = TransformExpressionsInExpression(p.Args[i], transform, flags)
	}
}

// PureFunctionParameterExpr indicates a positional parameter to a pure function definition
type PureFunctionParameterExpr struct {
	ExpressionBase
	Index int
}

// NewPureFunctionParameterExpr creates a new PureFunctionParameterExpr
func NewPureFunctionParameterExpr(index int) *PureFunctionParameterExpr {
	return &PureFunctionParameterExpr{
		ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindPureFunctionParameterExpr},
		Index:          index,
	}
}

func (p *PureFunctionParameterExpr) IsEquivalent(other output.OutputExpression) bool {
	if o, ok := other.(*PureFunctionParameterExpr); ok {
		return p.Index == o.Index
	}
	return false
}

func (p *PureFunctionParameterExpr) Clone() output.OutputExpression {
	return NewPureFunctionParameterExpr(p.Index)
}

func (p *PureFunctionParameterExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
}

// PipeBindingExpr is a binding to a pipe transformation
type PipeBindingExpr struct {
	ExpressionBase
	Target     ir_operation.XrefId
	TargetSlot *ir_traits.SlotHandle
	Name       string
	Args       []output.OutputExpression
	VarOffset  *int
}

// NewPipeBindingExpr creates a new PipeBindingExpr
func NewPipeBindingExpr(target ir_operation.XrefId, targetSlot *ir_traits.SlotHandle, name string, args []output.OutputExpression) *PipeBindingExpr {
	return &PipeBindingExpr{
		ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindPipeBinding},
		Target:         target,
		TargetSlot:     targetSlot,
		Name:           name,
		Args:           args,
	}
}

// HasConsumesVarsTrait implements ConsumesVarsTrait
func (p *PipeBindingExpr) HasConsumesVarsTrait() bool {
	return true
}

// GetVarOffset implements UsesVarOffsetTrait
func (p *PipeBindingExpr) GetVarOffset() *int {
	return p.VarOffset
}

// SetVarOffset implements UsesVarOffsetTrait
func (p *PipeBindingExpr) SetVarOffset(offset int) {
	p.VarOffset = &offset
}

func (p *PipeBindingExpr) IsEquivalent(other output.OutputExpression) bool {
	return false
}

func (p *PipeBindingExpr) Clone() output.OutputExpression {
	args := make([]output.OutputExpression, len(p.Args))
	for i, arg := range p.Args {
		args[i] = arg.Clone()
	}
	expr := NewPipeBindingExpr(p.Target, p.TargetSlot, p.Name, args)
	expr.VarOffset = p.VarOffset
	return expr
}

func (p *PipeBindingExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	for i := range p.Args {
		p.Args[i] = TransformExpressionsInExpression(p.Args[i], transform, flags)
	}
}

// SafePropertyReadExpr is `receiver?.name`, expanded into a null check later
type SafePropertyReadExpr struct {
	ExpressionBase
	Receiver output.OutputExpression
	Name     string
}

// NewSafePropertyReadExpr creates a new SafePropertyReadExpr
func NewSafePropertyReadExpr(receiver output.OutputExpression, name string) *SafePropertyReadExpr {
	return &SafePropertyReadExpr{
		ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindSafePropertyRead},
		Receiver:       receiver,
		Name:           name,
	}
}

func (s *SafePropertyReadExpr) IsEquivalent(other output.OutputExpression) bool {
	return false
}

func (s *SafePropertyReadExpr) Clone() output.OutputExpression {
	return NewSafePropertyReadExpr(s.Receiver.Clone(), s.Name)
}

func (s *SafePropertyReadExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	s.Receiver = TransformExpressionsInExpression(s.Receiver, transform, flags)
}

// SafeKeyedReadExpr is `receiver?.[index]`, expanded into a null check later
type SafeKeyedReadExpr struct {
	ExpressionBase
	Receiver output.OutputExpression
	Index    output.OutputExpression
}

// NewSafeKeyedReadExpr creates a new SafeKeyedReadExpr
func NewSafeKeyedReadExpr(receiver, index output.OutputExpression) *SafeKeyedReadExpr {
	return &SafeKeyedReadExpr{
		ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindSafeKeyedRead},
		Receiver:       receiver,
		Index:          index,
	}
}

func (s *SafeKeyedReadExpr) IsEquivalent(other output.OutputExpression) bool {
	return false
}

func (s *SafeKeyedReadExpr) Clone() output.OutputExpression {
	return NewSafeKeyedReadExpr(s.Receiver.Clone(), s.Index.Clone())
}

func (s *SafeKeyedReadExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	s.Receiver = TransformExpressionsInExpression(s.Receiver, transform, flags)
	s.Index = TransformExpressionsInExpression(s.Index, transform, flags)
}

// SafeInvokeFunctionExpr is `receiver?.(args)`, expanded into a null check later
type SafeInvokeFunctionExpr struct {
	ExpressionBase
	Receiver output.OutputExpression
	Args     []output.OutputExpression
}

// NewSafeInvokeFunctionExpr creates a new SafeInvokeFunctionExpr
func NewSafeInvokeFunctionExpr(receiver output.OutputExpression, args []output.OutputExpression) *SafeInvokeFunctionExpr {
	return &SafeInvokeFunctionExpr{
		ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindSafeInvokeFunction},
		Receiver:       receiver,
		Args:           args,
	}
}

func (s *SafeInvokeFunctionExpr) IsEquivalent(other output.OutputExpression) bool {
	return false
}

func (s *SafeInvokeFunctionExpr) Clone() output.OutputExpression {
	args := make([]output.OutputExpression, len(s.Args))
	for i, arg := range s.Args {
		args[i] = arg.Clone()
	}
	return NewSafeInvokeFunctionExpr(s.Receiver.Clone(), args)
}

func (s *SafeInvokeFunctionExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	s.Receiver = TransformExpressionsInExpression(s.Receiver, transform, flags)
	for i := range s.Args {
		s.Args[i] = TransformExpressionsInExpression(s.Args[i], transform, flags)
	}
}

// SafeTernaryExpr is the intermediate form of an expanded safe access: `guard == null ? null : expr`
type SafeTernaryExpr struct {
	ExpressionBase
	Guard output.OutputExpression
	Expr  output.OutputExpression
}

// NewSafeTernaryExpr creates a new SafeTernaryExpr
func NewSafeTernaryExpr(guard, expr output.OutputExpression) *SafeTernaryExpr {
	return &SafeTernaryExpr{
		ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindSafeTernaryExpr},
		Guard:          guard,
		Expr:           expr,
	}
}

func (s *SafeTernaryExpr) IsEquivalent(other output.OutputExpression) bool {
	return false
}

func (s *SafeTernaryExpr) Clone() output.OutputExpression {
	return NewSafeTernaryExpr(s.Guard.Clone(), s.Expr.Clone())
}

func (s *SafeTernaryExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	s.Guard = TransformExpressionsInExpression(s.Guard, transform, flags)
	s.Expr = TransformExpressionsInExpression(s.Expr, transform, flags)
}

// AssignTemporaryExpr assigns a value to a temporary variable
type AssignTemporaryExpr struct {
	ExpressionBase
	Expr output.OutputExpression
	Xref ir_operation.XrefId
	Name *string
}

// NewAssignTemporaryExpr creates a new AssignTemporaryExpr
func NewAssignTemporaryExpr(expr output.OutputExpression, xref ir_operation.XrefId) *AssignTemporaryExpr {
	return &AssignTemporaryExpr{
		ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindAssignTemporaryExpr},
		Expr:           expr,
		Xref:           xref,
	}
}

func (a *AssignTemporaryExpr) IsEquivalent(other output.OutputExpression) bool {
	return false
}

func (a *AssignTemporaryExpr) Clone() output.OutputExpression {
	expr := NewAssignTemporaryExpr(a.Expr.Clone(), a.Xref)
	expr.Name = a.Name
	return expr
}

func (a *AssignTemporaryExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	a.Expr = TransformExpressionsInExpression(a.Expr, transform, flags)
}

// ReadTemporaryExpr reads a temporary variable
type ReadTemporaryExpr struct {
	ExpressionBase
	Xref ir_operation.XrefId
	Name *string
}

// NewReadTemporaryExpr creates a new ReadTemporaryExpr
func NewReadTemporaryExpr(xref ir_operation.XrefId) *ReadTemporaryExpr {
	return &ReadTemporaryExpr{ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindReadTemporaryExpr}, Xref: xref}
}

func (r *ReadTemporaryExpr) IsEquivalent(other output.OutputExpression) bool {
	if o, ok := other.(*ReadTemporaryExpr); ok {
		return r.Xref == o.Xref
	}
	return false
}

func (r *ReadTemporaryExpr) Clone() output.OutputExpression {
	expr := NewReadTemporaryExpr(r.Xref)
	expr.Name = r.Name
	return expr
}

func (r *ReadTemporaryExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {}

// SlotLiteralExpr emits the literal slot index of the op whose xref is Target
type SlotLiteralExpr struct {
	ExpressionBase
	Slot   *ir_traits.SlotHandle
	Target ir_operation.XrefId
}

// NewSlotLiteralExpr creates a new SlotLiteralExpr
func NewSlotLiteralExpr(slot *ir_traits.SlotHandle, target ir_operation.XrefId) *SlotLiteralExpr {
	return &SlotLiteralExpr{
		ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindSlotLiteralExpr},
		Slot:           slot,
		Target:         target,
	}
}

func (s *SlotLiteralExpr) IsEquivalent(other output.OutputExpression) bool {
	if o, ok := other.(*SlotLiteralExpr); ok {
		return s.Target == o.Target
	}
	return false
}

func (s *SlotLiteralExpr) Clone() output.OutputExpression {
	return NewSlotLiteralExpr(s.Slot, s.Target)
}

func (s *SlotLiteralExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {}

// TwoWayBindingSetExpr sets the value of a two-way binding
type TwoWayBindingSetExpr struct {
	ExpressionBase
	Target output.OutputExpression
	Value  output.OutputExpression
}

// NewTwoWayBindingSetExpr creates a new TwoWayBindingSetExpr
func NewTwoWayBindingSetExpr(target, value output.OutputExpression) *TwoWayBindingSetExpr {
	return &TwoWayBindingSetExpr{
		ExpressionBase: ExpressionBase{Kind: ir.ExpressionKindTwoWayBindingSet},
		Target:         target,
		Value:          value,
	}
}

func (t *TwoWayBindingSetExpr) IsEquivalent(other output.OutputExpression) bool {
	if o, ok := other.(*TwoWayBindingSetExpr); ok {
		return t.Target.IsEquivalent(o.Target) && t.Value.IsEquivalent(o.Value)
	}
	return false
}

func (t *TwoWayBindingSetExpr) Clone() output.OutputExpression {
	return NewTwoWayBindingSetExpr(t.Target.Clone(), t.Value.Clone())
}

func (t *TwoWayBindingSetExpr) TransformInternalExpressions(transform ExpressionTransform, flags VisitorContextFlag) {
	t.Target = TransformExpressionsInExpression(t.Target, transform, flags)
	t.Value = TransformExpressionsInExpression(t.Value, transform, flags)
}
