package ops_create

import (
	"ngc-pipeline/packages/compiler/src/core"
	"ngc-pipeline/packages/compiler/src/i18n"
	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ir_traits "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/traits"
)

// LocalRef represents a local reference on an element
type LocalRef struct {
	// User-defined name of the local ref variable
	Name string
	// Target of the local reference variable (often `''`)
	Target string
}

// ElementOrContainerOpBase is the base of Element, ElementStart, Container and Template operations
type ElementOrContainerOpBase struct {
	ir_operation.OpBase
	ir_traits.ConsumesSlotOpTrait
	Xref ir_operation.XrefId

	// Const index of the static attributes, set once attributes are collected.
	Attributes *ir_operation.ConstIndex

	// Local references, lifted into the consts array as LocalRefsIndex.
	LocalRefs      []LocalRef
	LocalRefsIndex *ir_operation.ConstIndex

	// Whether the element is marked ngNonBindable.
	NonBindable bool
}

func newElementOrContainerOpBase(xref ir_operation.XrefId) ElementOrContainerOpBase {
	return ElementOrContainerOpBase{
		OpBase:              ir_operation.NewOpBase(),
		ConsumesSlotOpTrait: ir_traits.NewConsumesSlot(),
		Xref:                xref,
	}
}

// GetXref returns the xref ID
func (e *ElementOrContainerOpBase) GetXref() ir_operation.XrefId {
	return e.Xref
}

// GetElementOrContainerBase returns the shared fields
func (e *ElementOrContainerOpBase) GetElementOrContainerBase() *ElementOrContainerOpBase {
	return e
}

// ElementOrContainerOp is implemented by every op that declares an element-like slot
type ElementOrContainerOp interface {
	ir_traits.ConsumesSlotOp
	GetElementOrContainerBase() *ElementOrContainerOpBase
}

// ElementStartOp begins rendering of an element
type ElementStartOp struct {
	ElementOrContainerOpBase
	Tag             string
	I18nPlaceholder *i18n.TagPlaceholder
}

// NewElementStartOp creates a new ElementStartOp
func NewElementStartOp(tag string, xref ir_operation.XrefId, i18nPlaceholder *i18n.TagPlaceholder) *ElementStartOp {
	return &ElementStartOp{
		ElementOrContainerOpBase: newElementOrContainerOpBase(xref),
		Tag:                      tag,
		I18nPlaceholder:          i18nPlaceholder,
	}
}

// GetKind returns the operation kind
func (e *ElementStartOp) GetKind() ir.OpKind {
	return ir.OpKindElementStart
}

// ElementOp renders an element with no children. It is produced by collapsing an
// ElementStart immediately followed by its ElementEnd.
type ElementOp struct {
	ElementOrContainerOpBase
	Tag             string
	I18nPlaceholder *i18n.TagPlaceholder
}

// GetKind returns the operation kind
func (e *ElementOp) GetKind() ir.OpKind {
	return ir.OpKindElement
}

// NewElementOpFromStart builds the collapsed form of start, sharing its slot handle
func NewElementOpFromStart(start *ElementStartOp) *ElementOp {
	base := start.ElementOrContainerOpBase
	base.OpBase = ir_operation.NewOpBase()
	return &ElementOp{
		ElementOrContainerOpBase: base,
		Tag:                      start.Tag,
		I18nPlaceholder:          start.I18nPlaceholder,
	}
}

// ElementEndOp ends an element started with `ElementStart`
type ElementEndOp struct {
	ir_operation.OpBase
	Xref ir_operation.XrefId
}

// NewElementEndOp creates a new ElementEndOp
func NewElementEndOp(xref ir_operation.XrefId) *ElementEndOp {
	return &ElementEndOp{OpBase: ir_operation.NewOpBase(), Xref: xref}
}

// GetKind returns the operation kind
func (e *ElementEndOp) GetKind() ir.OpKind {
	return ir.OpKindElementEnd
}

// GetXref returns the xref ID
func (e *ElementEndOp) GetXref() ir_operation.XrefId {
	return e.Xref
}

// ContainerStartOp begins an `ng-container`
type ContainerStartOp struct {
	ElementOrContainerOpBase
}

// NewContainerStartOp creates a new ContainerStartOp
func NewContainerStartOp(xref ir_operation.XrefId) *ContainerStartOp {
	return &ContainerStartOp{ElementOrContainerOpBase: newElementOrContainerOpBase(xref)}
}

// GetKind returns the operation kind
func (c *ContainerStartOp) GetKind() ir.OpKind {
	return ir.OpKindContainerStart
}

// ContainerOp is an `ng-container` with no children
type ContainerOp struct {
	ElementOrContainerOpBase
}

// NewContainerOpFromStart builds the collapsed form of start, sharing its slot handle
func NewContainerOpFromStart(start *ContainerStartOp) *ContainerOp {
	base := start.ElementOrContainerOpBase
	base.OpBase = ir_operation.NewOpBase()
	return &ContainerOp{ElementOrContainerOpBase: base}
}

// GetKind returns the operation kind
func (c *ContainerOp) GetKind() ir.OpKind {
	return ir.OpKindContainer
}

// ContainerEndOp ends an `ng-container`
type ContainerEndOp struct {
	ir_operation.OpBase
	Xref ir_operation.XrefId
}

// NewContainerEndOp creates a new ContainerEndOp
func NewContainerEndOp(xref ir_operation.XrefId) *ContainerEndOp {
	return &ContainerEndOp{OpBase: ir_operation.NewOpBase(), Xref: xref}
}

// GetKind returns the operation kind
func (c *ContainerEndOp) GetKind() ir.OpKind {
	return ir.OpKindContainerEnd
}

// GetXref returns the xref ID
func (c *ContainerEndOp) GetXref() ir_operation.XrefId {
	return c.Xref
}

// EmbeddedViewOpBase holds what every op declaring an embedded view shares.
// The xref of the op is the xref of the declared view.
type EmbeddedViewOpBase struct {
	ElementOrContainerOpBase

	// Tag of the host element, nil for views without one (such as control flow blocks).
	Tag *string

	// Suffix appended to the generated view function name.
	FunctionNameSuffix string

	// Slot and variable counts of the declared view, set by slot allocation and var counting.
	Decls *int
	Vars  *int

	I18nPlaceholder i18n.Placeholder
}

func newEmbeddedViewOpBase(xref ir_operation.XrefId, tag *string, suffix string, placeholder i18n.Placeholder) EmbeddedViewOpBase {
	return EmbeddedViewOpBase{
		ElementOrContainerOpBase: newElementOrContainerOpBase(xref),
		Tag:                      tag,
		FunctionNameSuffix:       suffix,
		I18nPlaceholder:          placeholder,
	}
}

// GetEmbeddedViewBase returns the shared fields
func (t *EmbeddedViewOpBase) GetEmbeddedViewBase() *EmbeddedViewOpBase {
	return t
}

// EmbeddedViewOp is implemented by Template, ConditionalCreate and ConditionalBranchCreate
type EmbeddedViewOp interface {
	ElementOrContainerOp
	GetEmbeddedViewBase() *EmbeddedViewOpBase
}

// TemplateOp declares an embedded view
type TemplateOp struct {
	EmbeddedViewOpBase
	TemplateKind ir.TemplateKind
}

// NewTemplateOp creates a new TemplateOp
func NewTemplateOp(
	xref ir_operation.XrefId,
	templateKind ir.TemplateKind,
	tag *string,
	functionNameSuffix string,
	i18nPlaceholder i18n.Placeholder,
) *TemplateOp {
	return &TemplateOp{
		EmbeddedViewOpBase: newEmbeddedViewOpBase(xref, tag, functionNameSuffix, i18nPlaceholder),
		TemplateKind:       templateKind,
	}
}

// GetKind returns the operation kind
func (t *TemplateOp) GetKind() ir.OpKind {
	return ir.OpKindTemplate
}

// ConditionalCreateOp declares the first branch of an `@if`/`@switch`
type ConditionalCreateOp struct {
	EmbeddedViewOpBase
}

// NewConditionalCreateOp creates a new ConditionalCreateOp
func NewConditionalCreateOp(xref ir_operation.XrefId, tag *string, functionNameSuffix string, i18nPlaceholder i18n.Placeholder) *ConditionalCreateOp {
	return &ConditionalCreateOp{
		EmbeddedViewOpBase: newEmbeddedViewOpBase(xref, tag, functionNameSuffix, i18nPlaceholder),
	}
}

// GetKind returns the operation kind
func (c *ConditionalCreateOp) GetKind() ir.OpKind {
	return ir.OpKindConditionalCreate
}

// ConditionalBranchCreateOp declares a further branch of an `@if`/`@switch`
type ConditionalBranchCreateOp struct {
	EmbeddedViewOpBase
}

// NewConditionalBranchCreateOp creates a new ConditionalBranchCreateOp
func NewConditionalBranchCreateOp(xref ir_operation.XrefId, tag *string, functionNameSuffix string, i18nPlaceholder i18n.Placeholder) *ConditionalBranchCreateOp {
	return &ConditionalBranchCreateOp{
		EmbeddedViewOpBase: newEmbeddedViewOpBase(xref, tag, functionNameSuffix, i18nPlaceholder),
	}
}

// GetKind returns the operation kind
func (c *ConditionalBranchCreateOp) GetKind() ir.OpKind {
	return ir.OpKindConditionalBranchCreate
}

// RepeaterVarNames are the names the loop variables go by inside the body
type RepeaterVarNames struct {
	DollarIndex    []string
	DollarImplicit string
}

// RepeaterCreateOp declares the views of a `@for` block. Its xref is the body view.
type RepeaterCreateOp struct {
	ElementOrContainerOpBase

	// The view rendered when the collection is empty, if any.
	EmptyView *ir_operation.XrefId

	// The track expression. After track fn optimization it may be a runtime builtin reference.
	Track output.OutputExpression

	// A method reference that replaces the track expression, if one could be found.
	TrackByFn output.OutputExpression

	// The body of the extracted track function, when one is needed.
	TrackByOps *ir_operation.OpList

	UsesComponentInstance bool
	VarNames              RepeaterVarNames

	Decls      *int
	Vars       *int
	EmptyDecls *int
	EmptyVars  *int

	Tag             *string
	EmptyTag        *string
	EmptyAttributes *ir_operation.ConstIndex

	FunctionNameSuffix   string
	I18nPlaceholder      i18n.Placeholder
	EmptyI18nPlaceholder i18n.Placeholder
}

// NewRepeaterCreateOp creates a new RepeaterCreateOp
func NewRepeaterCreateOp(
	primaryView ir_operation.XrefId,
	emptyView *ir_operation.XrefId,
	tag *string,
	track output.OutputExpression,
	varNames RepeaterVarNames,
	emptyTag *string,
	i18nPlaceholder, emptyI18nPlaceholder i18n.Placeholder,
) *RepeaterCreateOp {
	op := &RepeaterCreateOp{
		ElementOrContainerOpBase: newElementOrContainerOpBase(primaryView),
		EmptyView:                emptyView,
		Track:                    track,
		VarNames:                 varNames,
		Tag:                      tag,
		EmptyTag:                 emptyTag,
		FunctionNameSuffix:       "For",
		I18nPlaceholder:          i18nPlaceholder,
		EmptyI18nPlaceholder:     emptyI18nPlaceholder,
	}
	// The anchor and the body, plus the empty view when there is one.
	op.NumSlotsUsed = 2
	if emptyView != nil {
		op.NumSlotsUsed = 3
	}
	return op
}

// GetKind returns the operation kind
func (r *RepeaterCreateOp) GetKind() ir.OpKind {
	return ir.OpKindRepeaterCreate
}

// TextOp renders a text node
type TextOp struct {
	ir_operation.OpBase
	ir_traits.ConsumesSlotOpTrait
	Xref            ir_operation.XrefId
	InitialValue    string
	I18nPlaceholder *string
}

// NewTextOp creates a new TextOp
func NewTextOp(xref ir_operation.XrefId, initialValue string) *TextOp {
	return &TextOp{
		OpBase:              ir_operation.NewOpBase(),
		ConsumesSlotOpTrait: ir_traits.NewConsumesSlot(),
		Xref:                xref,
		InitialValue:        initialValue,
	}
}

// GetKind returns the operation kind
func (t *TextOp) GetKind() ir.OpKind {
	return ir.OpKindText
}

// GetXref returns the xref ID
func (t *TextOp) GetXref() ir_operation.XrefId {
	return t.Xref
}

// HandlerOp is implemented by ops that carry a handler body
type HandlerOp interface {
	ir_operation.Op
	GetHandlerOps() *ir_operation.OpList
	GetTarget() ir_operation.XrefId
	SetHandlerFnName(name string)
	GetHandlerFnName() *string
}

// handlerBase is shared by the listener family
type handlerBase struct {
	Target     ir_operation.XrefId
	TargetSlot *ir_traits.SlotHandle

	// Tag of the target element, nil on host listeners.
	Tag *string

	Name          string
	HandlerOps    *ir_operation.OpList
	HandlerFnName *string
}

// GetHandlerOps returns the handler body
func (h *handlerBase) GetHandlerOps() *ir_operation.OpList {
	return h.HandlerOps
}

// GetTarget returns the xref of the element the handler is attached to
func (h *handlerBase) GetTarget() ir_operation.XrefId {
	return h.Target
}

// SetHandlerFnName sets the generated handler function name
func (h *handlerBase) SetHandlerFnName(name string) {
	h.HandlerFnName = &name
}

// GetHandlerFnName returns the generated handler function name
func (h *handlerBase) GetHandlerFnName() *string {
	return h.HandlerFnName
}

// ListenerOp declares an event listener on an element
type ListenerOp struct {
	ir_operation.OpBase
	handlerBase

	HostListener        bool
	ConsumesDollarEvent bool

	IsLegacyAnimationListener bool
	LegacyAnimationPhase      *string

	// Global target such as `window` or `document`.
	EventTarget *string
}

// NewListenerOp creates a new ListenerOp
func NewListenerOp(
	target ir_operation.XrefId,
	targetSlot *ir_traits.SlotHandle,
	name string,
	tag *string,
	handlerOps *ir_operation.OpList,
	legacyAnimationPhase *string,
	eventTarget *string,
	hostListener bool,
) *ListenerOp {
	return &ListenerOp{
		OpBase: ir_operation.NewOpBase(),
		handlerBase: handlerBase{
			Target:     target,
			TargetSlot: targetSlot,
			Tag:        tag,
			Name:       name,
			HandlerOps: handlerOps,
		},
		HostListener:              hostListener,
		IsLegacyAnimationListener: legacyAnimationPhase != nil,
		LegacyAnimationPhase:      legacyAnimationPhase,
		EventTarget:               eventTarget,
	}
}

// GetKind returns the operation kind
func (l *ListenerOp) GetKind() ir.OpKind {
	return ir.OpKindListener
}

// TwoWayListenerOp is the event side of a two-way binding
type TwoWayListenerOp struct {
	ir_operation.OpBase
	handlerBase
}

// NewTwoWayListenerOp creates a new TwoWayListenerOp
func NewTwoWayListenerOp(
	target ir_operation.XrefId,
	targetSlot *ir_traits.SlotHandle,
	name string,
	tag *string,
	handlerOps *ir_operation.OpList,
) *TwoWayListenerOp {
	return &TwoWayListenerOp{
		OpBase: ir_operation.NewOpBase(),
		handlerBase: handlerBase{
			Target:     target,
			TargetSlot: targetSlot,
			Tag:        tag,
			Name:       name,
			HandlerOps: handlerOps,
		},
	}
}

// GetKind returns the operation kind
func (t *TwoWayListenerOp) GetKind() ir.OpKind {
	return ir.OpKindTwoWayListener
}

// AnimationOp binds enter/leave animation classes to an element. A string
// binding passes Expression directly; a value binding returns it from the handler.
type AnimationOp struct {
	ir_operation.OpBase
	handlerBase
	AnimationKind ir.AnimationKind
	BindingKind   ir.AnimationBindingKind
	Expression    output.OutputExpression
}

// NewAnimationOp creates a new AnimationOp
func NewAnimationOp(
	target ir_operation.XrefId,
	targetSlot *ir_traits.SlotHandle,
	name string,
	animationKind ir.AnimationKind,
	bindingKind ir.AnimationBindingKind,
	expression output.OutputExpression,
	handlerOps *ir_operation.OpList,
) *AnimationOp {
	return &AnimationOp{
		OpBase: ir_operation.NewOpBase(),
		handlerBase: handlerBase{
			Target:     target,
			TargetSlot: targetSlot,
			Name:       name,
			HandlerOps: handlerOps,
		},
		AnimationKind: animationKind,
		BindingKind:   bindingKind,
		Expression:    expression,
	}
}

// GetKind returns the operation kind
func (a *AnimationOp) GetKind() ir.OpKind {
	return ir.OpKindAnimation
}

// AnimationListenerOp listens to the `animate.enter`/`animate.leave` events of an element
type AnimationListenerOp struct {
	ir_operation.OpBase
	handlerBase
	AnimationKind       ir.AnimationKind
	HostListener        bool
	ConsumesDollarEvent bool
}

// NewAnimationListenerOp creates a new AnimationListenerOp
func NewAnimationListenerOp(
	target ir_operation.XrefId,
	targetSlot *ir_traits.SlotHandle,
	name string,
	tag *string,
	animationKind ir.AnimationKind,
	handlerOps *ir_operation.OpList,
	hostListener bool,
) *AnimationListenerOp {
	return &AnimationListenerOp{
		OpBase: ir_operation.NewOpBase(),
		handlerBase: handlerBase{
			Target:     target,
			TargetSlot: targetSlot,
			Tag:        tag,
			Name:       name,
			HandlerOps: handlerOps,
		},
		AnimationKind: animationKind,
		HostListener:  hostListener,
	}
}

// GetKind returns the operation kind
func (a *AnimationListenerOp) GetKind() ir.OpKind {
	return ir.OpKindAnimationListener
}

// PipeOp instantiates a pipe
type PipeOp struct {
	ir_operation.OpBase
	ir_traits.ConsumesSlotOpTrait
	Xref ir_operation.XrefId
	Name string
}

// NewPipeOp creates a new PipeOp that fills the given slot
func NewPipeOp(xref ir_operation.XrefId, slot *ir_traits.SlotHandle, name string) *PipeOp {
	return &PipeOp{
		OpBase:              ir_operation.NewOpBase(),
		ConsumesSlotOpTrait: ir_traits.ConsumesSlotOpTrait{Handle: slot, NumSlotsUsed: 1},
		Xref:                xref,
		Name:                name,
	}
}

// GetKind returns the operation kind
func (p *PipeOp) GetKind() ir.OpKind {
	return ir.OpKindPipe
}

// GetXref returns the xref ID
func (p *PipeOp) GetXref() ir_operation.XrefId {
	return p.Xref
}

// ProjectionDefOp configures content projection for the view
type ProjectionDefOp struct {
	ir_operation.OpBase
	// The parsed selector information for the projection slots, nil for a single default slot.
	Def output.OutputExpression
}

// NewProjectionDefOp creates a new ProjectionDefOp
func NewProjectionDefOp(def output.OutputExpression) *ProjectionDefOp {
	return &ProjectionDefOp{OpBase: ir_operation.NewOpBase(), Def: def}
}

// GetKind returns the operation kind
func (p *ProjectionDefOp) GetKind() ir.OpKind {
	return ir.OpKindProjectionDef
}

// ProjectionOp creates a content projection slot (`<ng-content>`)
type ProjectionOp struct {
	ir_operation.OpBase
	ir_traits.ConsumesSlotOpTrait
	Xref                ir_operation.XrefId
	ProjectionSlotIndex int
	Attributes          *output.LiteralArrayExpr
	LocalRefs           []string
	Selector            string

	// The view rendered when nothing is projected, if any.
	FallbackView *ir_operation.XrefId

	I18nPlaceholder             *i18n.TagPlaceholder
	FallbackViewI18nPlaceholder i18n.Placeholder
}

// NewProjectionOp creates a new ProjectionOp
func NewProjectionOp(
	xref ir_operation.XrefId,
	selector string,
	i18nPlaceholder *i18n.TagPlaceholder,
	fallbackView *ir_operation.XrefId,
) *ProjectionOp {
	op := &ProjectionOp{
		OpBase:              ir_operation.NewOpBase(),
		ConsumesSlotOpTrait: ir_traits.NewConsumesSlot(),
		Xref:                xref,
		Selector:            selector,
		FallbackView:        fallbackView,
		I18nPlaceholder:     i18nPlaceholder,
	}
	if fallbackView != nil {
		op.NumSlotsUsed = 2
	}
	return op
}

// GetKind returns the operation kind
func (p *ProjectionOp) GetKind() ir.OpKind {
	return ir.OpKindProjection
}

// GetXref returns the xref ID
func (p *ProjectionOp) GetXref() ir_operation.XrefId {
	return p.Xref
}

// ExtractedAttributeOp represents an attribute that has been extracted for inclusion in the consts array
type ExtractedAttributeOp struct {
	ir_operation.OpBase

	// The xref of the element the attribute belongs to.
	Target ir_operation.XrefId

	// Kind of binding the attribute was extracted from, which decides its marker in the consts array.
	BindingKind ir.BindingKind

	Namespace *string
	Name      string

	// The value of the attribute, nil for binding names recorded for directive matching.
	Expression output.OutputExpression

	SecurityContext []core.SecurityContext

	// Runtime function that marks a constant value as trusted, set by sanitizer resolution.
	TrustedValueFn output.OutputExpression

	I18nMessage *i18n.Message
}

// NewExtractedAttributeOp creates a new ExtractedAttributeOp
func NewExtractedAttributeOp(
	target ir_operation.XrefId,
	bindingKind ir.BindingKind,
	namespace *string,
	name string,
	expression output.OutputExpression,
	securityContext []core.SecurityContext,
) *ExtractedAttributeOp {
	return &ExtractedAttributeOp{
		OpBase:          ir_operation.NewOpBase(),
		Target:          target,
		BindingKind:     bindingKind,
		Namespace:       namespace,
		Name:            name,
		Expression:      expression,
		SecurityContext: securityContext,
	}
}

// GetKind returns the operation kind
func (e *ExtractedAttributeOp) GetKind() ir.OpKind {
	return ir.OpKindExtractedAttribute
}

// I18nStartOp is the start of an i18n block
type I18nStartOp struct {
	ir_operation.OpBase
	ir_traits.ConsumesSlotOpTrait
	Xref ir_operation.XrefId

	// The xref of the root i18n block. Blocks wrapping child views share the root of their parent.
	Root    ir_operation.XrefId
	Message *i18n.Message

	// Const index of the message, set once i18n consts are collected.
	MessageIndex *ir_operation.ConstIndex

	// Index of the sub-template this block is part of, nil for the root template.
	SubTemplateIndex *int
}

// NewI18nStartOp creates a new I18nStartOp
func NewI18nStartOp(xref ir_operation.XrefId, message *i18n.Message, root *ir_operation.XrefId) *I18nStartOp {
	rootXref := xref
	if root != nil {
		rootXref = *root
	}
	return &I18nStartOp{
		OpBase:              ir_operation.NewOpBase(),
		ConsumesSlotOpTrait: ir_traits.NewConsumesSlot(),
		Xref:                xref,
		Root:                rootXref,
		Message:             message,
	}
}

// GetKind returns the operation kind
func (i *I18nStartOp) GetKind() ir.OpKind {
	return ir.OpKindI18nStart
}

// GetXref returns the xref ID
func (i *I18nStartOp) GetXref() ir_operation.XrefId {
	return i.Xref
}

// I18nEndOp is the end of an i18n block
type I18nEndOp struct {
	ir_operation.OpBase
	Xref ir_operation.XrefId
}

// NewI18nEndOp creates a new I18nEndOp
func NewI18nEndOp(xref ir_operation.XrefId) *I18nEndOp {
	return &I18nEndOp{OpBase: ir_operation.NewOpBase(), Xref: xref}
}

// GetKind returns the operation kind
func (i *I18nEndOp) GetKind() ir.OpKind {
	return ir.OpKindI18nEnd
}

// GetXref returns the xref ID
func (i *I18nEndOp) GetXref() ir_operation.XrefId {
	return i.Xref
}

// DisableBindingsOp disables binding for the elements that follow, until EnableBindings
type DisableBindingsOp struct {
	ir_operation.OpBase
	Xref ir_operation.XrefId
}

// NewDisableBindingsOp creates a new DisableBindingsOp
func NewDisableBindingsOp(xref ir_operation.XrefId) *DisableBindingsOp {
	return &DisableBindingsOp{OpBase: ir_operation.NewOpBase(), Xref: xref}
}

// GetKind returns the operation kind
func (d *DisableBindingsOp) GetKind() ir.OpKind {
	return ir.OpKindDisableBindings
}

// GetXref returns the xref ID
func (d *DisableBindingsOp) GetXref() ir_operation.XrefId {
	return d.Xref
}

// EnableBindingsOp re-enables binding after DisableBindings
type EnableBindingsOp struct {
	ir_operation.OpBase
	Xref ir_operation.XrefId
}

// NewEnableBindingsOp creates a new EnableBindingsOp
func NewEnableBindingsOp(xref ir_operation.XrefId) *EnableBindingsOp {
	return &EnableBindingsOp{OpBase: ir_operation.NewOpBase(), Xref: xref}
}

// GetKind returns the operation kind
func (e *EnableBindingsOp) GetKind() ir.OpKind {
	return ir.OpKindEnableBindings
}

// GetXref returns the xref ID
func (e *EnableBindingsOp) GetXref() ir_operation.XrefId {
	return e.Xref
}

// IsElementOrContainerOp reports whether op declares an element or container
func IsElementOrContainerOp(op ir_operation.Op) bool {
	switch op.(type) {
	case *ElementStartOp, *ElementOp, *ContainerStartOp, *ContainerOp, *TemplateOp,
		*ConditionalCreateOp, *ConditionalBranchCreateOp, *RepeaterCreateOp:
		return true
	}
	return false
}
