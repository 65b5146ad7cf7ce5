package render3

import (
	"ngc-pipeline/packages/compiler/src/core"
	"ngc-pipeline/packages/compiler/src/expression_parser"
	"ngc-pipeline/packages/compiler/src/i18n"
)

// I18nMeta is the i18n metadata of a node: a *i18n.Message on the root of an
// i18n block, an i18n.Placeholder on nodes nested in one, or nil
type I18nMeta interface{}

// Node is a node of the template tree. The set of nodes is closed.
type Node interface {
	isNode()
}

// BindingType is the kind of a bound attribute
type BindingType int

const (
	// BindingTypeProperty is `[prop]="expr"`
	BindingTypeProperty BindingType = iota
	// BindingTypeAttribute is `[attr.name]="expr"`
	BindingTypeAttribute
	// BindingTypeClass is `[class.name]="expr"`
	BindingTypeClass
	// BindingTypeStyle is `[style.name]="expr"`
	BindingTypeStyle
	// BindingTypeLegacyAnimation is `[@trigger]="expr"`
	BindingTypeLegacyAnimation
	// BindingTypeTwoWay is `[(prop)]="expr"`
	BindingTypeTwoWay
	// BindingTypeAnimation is `[animate.enter]="expr"`
	BindingTypeAnimation
)

// ParsedEventType is the kind of a bound event
type ParsedEventType int

const (
	// ParsedEventTypeRegular is a DOM or output event
	ParsedEventTypeRegular ParsedEventType = iota
	// ParsedEventTypeLegacyAnimation is `(@trigger.done)`
	ParsedEventTypeLegacyAnimation
	// ParsedEventTypeTwoWay is the event side of `[(prop)]`
	ParsedEventTypeTwoWay
	// ParsedEventTypeAnimation is `(animate.enter)`
	ParsedEventTypeAnimation
)

// Text is a static text node
type Text struct {
	Value string
}

// NewText creates a new Text node
func NewText(value string) *Text {
	return &Text{Value: value}
}

func (*Text) isNode() {}

// BoundText is a text node with interpolations
type BoundText struct {
	Value *expression_parser.Interpolation
	I18n  I18nMeta
}

// NewBoundText creates a new BoundText node
func NewBoundText(value *expression_parser.Interpolation, i18nMeta I18nMeta) *BoundText {
	return &BoundText{Value: value, I18n: i18nMeta}
}

func (*BoundText) isNode() {}

// TextAttribute is a static attribute
type TextAttribute struct {
	Name  string
	Value string
	I18n  I18nMeta
}

// NewTextAttribute creates a new TextAttribute
func NewTextAttribute(name, value string, i18nMeta I18nMeta) *TextAttribute {
	return &TextAttribute{Name: name, Value: value, I18n: i18nMeta}
}

// BoundAttribute is an input binding
type BoundAttribute struct {
	Name            string
	Type            BindingType
	SecurityContext core.SecurityContext
	Value           expression_parser.AST
	Unit            *string
	I18n            I18nMeta
}

// NewBoundAttribute creates a new BoundAttribute
func NewBoundAttribute(
	name string,
	bindingType BindingType,
	securityContext core.SecurityContext,
	value expression_parser.AST,
	unit *string,
	i18nMeta I18nMeta,
) *BoundAttribute {
	return &BoundAttribute{
		Name:            name,
		Type:            bindingType,
		SecurityContext: securityContext,
		Value:           value,
		Unit:            unit,
		I18n:            i18nMeta,
	}
}

// BoundEvent is an output binding
type BoundEvent struct {
	Name    string
	Type    ParsedEventType
	Handler expression_parser.AST

	// Global event target such as `window`, regular events only.
	Target *string

	// Animation phase, legacy animation events only.
	Phase *string
}

// NewBoundEvent creates a new BoundEvent
func NewBoundEvent(name string, eventType ParsedEventType, handler expression_parser.AST, target, phase *string) *BoundEvent {
	return &BoundEvent{
		Name:    name,
		Type:    eventType,
		Handler: handler,
		Target:  target,
		Phase:   phase,
	}
}

// Variable is a template variable, such as `let-item` or `let i = $index`
type Variable struct {
	Name  string
	Value string
}

// NewVariable creates a new Variable
func NewVariable(name, value string) *Variable {
	return &Variable{Name: name, Value: value}
}

// Reference is a local reference `#name` or `#name="exportAs"`
type Reference struct {
	Name  string
	Value string
}

// NewReference creates a new Reference
func NewReference(name, value string) *Reference {
	return &Reference{Name: name, Value: value}
}

// Element represents an element node
type Element struct {
	Name       string
	Attributes []*TextAttribute
	Inputs     []*BoundAttribute
	Outputs    []*BoundEvent
	Children   []Node
	References []*Reference
	I18n       I18nMeta
}

// NewElement creates a new Element node
func NewElement(
	name string,
	attributes []*TextAttribute,
	inputs []*BoundAttribute,
	outputs []*BoundEvent,
	children []Node,
	references []*Reference,
	i18nMeta I18nMeta,
) *Element {
	return &Element{
		Name:       name,
		Attributes: attributes,
		Inputs:     inputs,
		Outputs:    outputs,
		Children:   children,
		References: references,
		I18n:       i18nMeta,
	}
}

func (*Element) isNode() {}

// Template is an `<ng-template>` or an element carrying a structural directive.
// TagName is nil for `<ng-template>` itself.
type Template struct {
	TagName    *string
	Attributes []*TextAttribute
	Inputs     []*BoundAttribute
	Outputs    []*BoundEvent

	// Attributes of the structural directive (`*ngIf="cond"`).
	TemplateAttrs     []*BoundAttribute
	TemplateTextAttrs []*TextAttribute

	Children   []Node
	References []*Reference
	Variables  []*Variable
	I18n       I18nMeta
}

// NewTemplate creates a new Template node
func NewTemplate(
	tagName *string,
	attributes []*TextAttribute,
	inputs []*BoundAttribute,
	outputs []*BoundEvent,
	children []Node,
	references []*Reference,
	variables []*Variable,
	i18nMeta I18nMeta,
) *Template {
	return &Template{
		TagName:    tagName,
		Attributes: attributes,
		Inputs:     inputs,
		Outputs:    outputs,
		Children:   children,
		References: references,
		Variables:  variables,
		I18n:       i18nMeta,
	}
}

func (*Template) isNode() {}

// IsStructural reports whether the template was created by a structural directive
func (t *Template) IsStructural() bool {
	return len(t.TemplateAttrs) > 0 || len(t.TemplateTextAttrs) > 0
}

// Content is an `<ng-content>` projection slot
type Content struct {
	Selector   string
	Attributes []*TextAttribute
	Children   []Node
	I18n       I18nMeta
}

// NewContent creates a new Content node
func NewContent(selector string, attributes []*TextAttribute, children []Node, i18nMeta I18nMeta) *Content {
	return &Content{Selector: selector, Attributes: attributes, Children: children, I18n: i18nMeta}
}

func (*Content) isNode() {}

// IfBlock is an `@if` block with its `@else if`/`@else` branches
type IfBlock struct {
	Branches []*IfBlockBranch
}

// NewIfBlock creates a new IfBlock
func NewIfBlock(branches []*IfBlockBranch) *IfBlock {
	return &IfBlock{Branches: branches}
}

func (*IfBlock) isNode() {}

// IfBlockBranch is one branch of an if block. Expression is nil for `@else`.
type IfBlockBranch struct {
	Expression      expression_parser.AST
	Children        []Node
	ExpressionAlias *Variable
	I18n            I18nMeta
}

// NewIfBlockBranch creates a new IfBlockBranch
func NewIfBlockBranch(expression expression_parser.AST, children []Node, expressionAlias *Variable, i18nMeta I18nMeta) *IfBlockBranch {
	return &IfBlockBranch{
		Expression:      expression,
		Children:        children,
		ExpressionAlias: expressionAlias,
		I18n:            i18nMeta,
	}
}

// SwitchBlock is a `@switch` block
type SwitchBlock struct {
	Expression expression_parser.AST
	Cases      []*SwitchBlockCase
}

// NewSwitchBlock creates a new SwitchBlock
func NewSwitchBlock(expression expression_parser.AST, cases []*SwitchBlockCase) *SwitchBlock {
	return &SwitchBlock{Expression: expression, Cases: cases}
}

func (*SwitchBlock) isNode() {}

// SwitchBlockCase is a `@case`, or `@default` when Expression is nil
type SwitchBlockCase struct {
	Expression expression_parser.AST
	Children   []Node
	I18n       I18nMeta
}

// NewSwitchBlockCase creates a new SwitchBlockCase
func NewSwitchBlockCase(expression expression_parser.AST, children []Node, i18nMeta I18nMeta) *SwitchBlockCase {
	return &SwitchBlockCase{Expression: expression, Children: children, I18n: i18nMeta}
}

// ForLoopBlock is a `@for` block
type ForLoopBlock struct {
	Item       *Variable
	Expression expression_parser.AST
	TrackBy    expression_parser.AST

	// Aliases of the implicit loop variables (`let i = $index`). Every
	// implicit variable is present, aliased or not.
	ContextVariables []*Variable
	Children         []Node
	Empty            *ForLoopBlockEmpty
	I18n             I18nMeta
}

// NewForLoopBlock creates a new ForLoopBlock
func NewForLoopBlock(
	item *Variable,
	expression expression_parser.AST,
	trackBy expression_parser.AST,
	contextVariables []*Variable,
	children []Node,
	empty *ForLoopBlockEmpty,
	i18nMeta I18nMeta,
) *ForLoopBlock {
	return &ForLoopBlock{
		Item:             item,
		Expression:       expression,
		TrackBy:          trackBy,
		ContextVariables: contextVariables,
		Children:         children,
		Empty:            empty,
		I18n:             i18nMeta,
	}
}

func (*ForLoopBlock) isNode() {}

// ForLoopBlockEmpty is the `@empty` block of a for loop
type ForLoopBlockEmpty struct {
	Children []Node
	I18n     I18nMeta
}

// NewForLoopBlockEmpty creates a new ForLoopBlockEmpty
func NewForLoopBlockEmpty(children []Node, i18nMeta I18nMeta) *ForLoopBlockEmpty {
	return &ForLoopBlockEmpty{Children: children, I18n: i18nMeta}
}

// ForLoopContextVariables are the implicit variables of a for loop, in declaration order
var ForLoopContextVariables = []string{"$index", "$first", "$last", "$even", "$odd", "$count"}

// I18nMessage returns meta as a message when it is the root of an i18n block
func I18nMessage(meta I18nMeta) *i18n.Message {
	msg, _ := meta.(*i18n.Message)
	return msg
}

// I18nPlaceholder returns meta as a placeholder when the node is nested in an i18n block
func I18nPlaceholder(meta I18nMeta) i18n.Placeholder {
	ph, _ := meta.(i18n.Placeholder)
	return ph
}
