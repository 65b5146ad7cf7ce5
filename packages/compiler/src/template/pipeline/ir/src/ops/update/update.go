package ops_update

import (
	"fmt"

	"ngc-pipeline/packages/compiler/src/core"
	"ngc-pipeline/packages/compiler/src/i18n"
	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ir_traits "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/traits"
	ir_variable "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/variable"
)

// Interpolation holds the static and dynamic parts of a string interpolation, in separate
// arrays. Thus, the interpolation `A{{b}}C{{d}}E` is stored as 3 static strings `['A', 'C', 'E']`
// and 2 dynamic expressions `[b, d]`.
type Interpolation struct {
	Strings          []string
	Expressions      []output.OutputExpression
	I18nPlaceholders []string
}

// NewInterpolation creates a new Interpolation
func NewInterpolation(strings []string, expressions []output.OutputExpression, i18nPlaceholders []string) *Interpolation {
	if len(i18nPlaceholders) != 0 && len(i18nPlaceholders) != len(expressions) {
		panic(fmt.Sprintf(
			"AssertionError: expected %d placeholders to match interpolation expression count, but got %d",
			len(expressions),
			len(i18nPlaceholders),
		))
	}
	return &Interpolation{
		Strings:          strings,
		Expressions:      expressions,
		I18nPlaceholders: i18nPlaceholders,
	}
}

// IsSingleton reports whether the interpolation is a single expression with empty surroundings
func (i *Interpolation) IsSingleton() bool {
	if len(i.Expressions) != 1 || len(i.Strings) != 2 {
		return false
	}
	return i.Strings[0] == "" && i.Strings[1] == ""
}

// updateBase is shared by every update op that targets an element
type updateBase struct {
	ir_operation.OpBase
	Target ir_operation.XrefId
}

// GetXref returns the xref of the target
func (u *updateBase) GetXref() ir_operation.XrefId {
	return u.Target
}

// GetDependsOnSlotContextTrait returns the DependsOnSlotContextOpTrait
func (u *updateBase) GetDependsOnSlotContextTrait() *ir_traits.DependsOnSlotContextOpTrait {
	return &ir_traits.DependsOnSlotContextOpTrait{Target: u.Target}
}

// HasConsumesVarsTrait implements ConsumesVarsTrait
func (u *updateBase) HasConsumesVarsTrait() bool {
	return true
}

func newUpdateBase(target ir_operation.XrefId) updateBase {
	return updateBase{OpBase: ir_operation.NewOpBase(), Target: target}
}

// BindingOp is an intermediate binding op, that has not yet been processed into an individual
// property, attribute, style, etc. Exactly one of Expression and Interpolation is set.
type BindingOp struct {
	updateBase
	BindingKind                   ir.BindingKind
	Name                          string
	Expression                    output.OutputExpression
	Interpolation                 *Interpolation
	Unit                          *string
	SecurityContext               []core.SecurityContext
	IsTextAttribute               bool
	IsStructuralTemplateAttribute bool
	TemplateKind                  *ir.TemplateKind
	I18nMessage                   *i18n.Message
}

// NewBindingOp creates a new BindingOp
func NewBindingOp(
	target ir_operation.XrefId,
	bindingKind ir.BindingKind,
	name string,
	expression output.OutputExpression,
	interpolation *Interpolation,
	unit *string,
	securityContext []core.SecurityContext,
	isTextAttribute bool,
	isStructuralTemplateAttribute bool,
	templateKind *ir.TemplateKind,
	i18nMessage *i18n.Message,
) *BindingOp {
	return &BindingOp{
		updateBase:                    newUpdateBase(target),
		BindingKind:                   bindingKind,
		Name:                          name,
		Expression:                    expression,
		Interpolation:                 interpolation,
		Unit:                          unit,
		SecurityContext:               securityContext,
		IsTextAttribute:               isTextAttribute,
		IsStructuralTemplateAttribute: isStructuralTemplateAttribute,
		TemplateKind:                  templateKind,
		I18nMessage:                   i18nMessage,
	}
}

// GetKind returns the operation kind
func (b *BindingOp) GetKind() ir.OpKind {
	return ir.OpKindBinding
}

// HasConsumesVarsTrait is false until the binding is specialized
func (b *BindingOp) HasConsumesVarsTrait() bool {
	return false
}

// PropertyOp binds an expression to a property of an element
type PropertyOp struct {
	updateBase
	Name                     string
	Expression               output.OutputExpression
	Interpolation            *Interpolation
	IsLegacyAnimationTrigger bool
	SecurityContext          []core.SecurityContext
	Sanitizer                output.OutputExpression
	IsStructuralTemplate     bool
	TemplateKind             *ir.TemplateKind
	I18nMessage              *i18n.Message
}

// NewPropertyOp creates a new PropertyOp
func NewPropertyOp(
	target ir_operation.XrefId,
	name string,
	expression output.OutputExpression,
	interpolation *Interpolation,
	isLegacyAnimationTrigger bool,
	securityContext []core.SecurityContext,
	isStructuralTemplate bool,
	templateKind *ir.TemplateKind,
	i18nMessage *i18n.Message,
) *PropertyOp {
	return &PropertyOp{
		updateBase:               newUpdateBase(target),
		Name:                     name,
		Expression:               expression,
		Interpolation:            interpolation,
		IsLegacyAnimationTrigger: isLegacyAnimationTrigger,
		SecurityContext:          securityContext,
		IsStructuralTemplate:     isStructuralTemplate,
		TemplateKind:             templateKind,
		I18nMessage:              i18nMessage,
	}
}

// GetKind returns the operation kind
func (p *PropertyOp) GetKind() ir.OpKind {
	return ir.OpKindProperty
}

// TwoWayPropertyOp is the property side of a two-way binding
type TwoWayPropertyOp struct {
	updateBase
	Name            string
	Expression      output.OutputExpression
	SecurityContext []core.SecurityContext
	Sanitizer       output.OutputExpression
	TemplateKind    *ir.TemplateKind
	I18nMessage     *i18n.Message
}

// NewTwoWayPropertyOp creates a new TwoWayPropertyOp
func NewTwoWayPropertyOp(
	target ir_operation.XrefId,
	name string,
	expression output.OutputExpression,
	securityContext []core.SecurityContext,
	templateKind *ir.TemplateKind,
	i18nMessage *i18n.Message,
) *TwoWayPropertyOp {
	return &TwoWayPropertyOp{
		updateBase:      newUpdateBase(target),
		Name:            name,
		Expression:      expression,
		SecurityContext: securityContext,
		TemplateKind:    templateKind,
		I18nMessage:     i18nMessage,
	}
}

// GetKind returns the operation kind
func (t *TwoWayPropertyOp) GetKind() ir.OpKind {
	return ir.OpKindTwoWayProperty
}

// AttributeOp binds an expression to an attribute of an element
type AttributeOp struct {
	updateBase
	Name          string
	Namespace     *string
	Expression    output.OutputExpression
	Interpolation *Interpolation

	SecurityContext []core.SecurityContext
	Sanitizer       output.OutputExpression

	// Whether the binding is a static text attribute, extracted before reification.
	IsTextAttribute bool

	IsStructuralTemplateAttribute bool
	TemplateKind                  *ir.TemplateKind
	I18nMessage                   *i18n.Message
}

// NewAttributeOp creates a new AttributeOp
func NewAttributeOp(
	target ir_operation.XrefId,
	namespace *string,
	name string,
	expression output.OutputExpression,
	interpolation *Interpolation,
	securityContext []core.SecurityContext,
	isTextAttribute bool,
	isStructuralTemplateAttribute bool,
	templateKind *ir.TemplateKind,
	i18nMessage *i18n.Message,
) *AttributeOp {
	return &AttributeOp{
		updateBase:                    newUpdateBase(target),
		Name:                          name,
		Namespace:                     namespace,
		Expression:                    expression,
		Interpolation:                 interpolation,
		SecurityContext:               securityContext,
		IsTextAttribute:               isTextAttribute,
		IsStructuralTemplateAttribute: isStructuralTemplateAttribute,
		TemplateKind:                  templateKind,
		I18nMessage:                   i18nMessage,
	}
}

// GetKind returns the operation kind
func (a *AttributeOp) GetKind() ir.OpKind {
	return ir.OpKindAttribute
}

// StylePropOp binds an expression to a single style property
type StylePropOp struct {
	updateBase
	Name          string
	Expression    output.OutputExpression
	Interpolation *Interpolation
	Unit          *string
}

// NewStylePropOp creates a new StylePropOp
func NewStylePropOp(
	target ir_operation.XrefId,
	name string,
	expression output.OutputExpression,
	interpolation *Interpolation,
	unit *string,
) *StylePropOp {
	return &StylePropOp{
		updateBase:    newUpdateBase(target),
		Name:          name,
		Expression:    expression,
		Interpolation: interpolation,
		Unit:          unit,
	}
}

// GetKind returns the operation kind
func (s *StylePropOp) GetKind() ir.OpKind {
	return ir.OpKindStyleProp
}

// ClassPropOp toggles a single class
type ClassPropOp struct {
	updateBase
	Name       string
	Expression output.OutputExpression
}

// NewClassPropOp creates a new ClassPropOp
func NewClassPropOp(target ir_operation.XrefId, name string, expression output.OutputExpression) *ClassPropOp {
	return &ClassPropOp{
		updateBase: newUpdateBase(target),
		Name:       name,
		Expression: expression,
	}
}

// GetKind returns the operation kind
func (c *ClassPropOp) GetKind() ir.OpKind {
	return ir.OpKindClassProp
}

// StyleMapOp binds an expression to the styles of an element
type StyleMapOp struct {
	updateBase
	Expression    output.OutputExpression
	Interpolation *Interpolation
}

// NewStyleMapOp creates a new StyleMapOp
func NewStyleMapOp(target ir_operation.XrefId, expression output.OutputExpression, interpolation *Interpolation) *StyleMapOp {
	return &StyleMapOp{
		updateBase:    newUpdateBase(target),
		Expression:    expression,
		Interpolation: interpolation,
	}
}

// GetKind returns the operation kind
func (s *StyleMapOp) GetKind() ir.OpKind {
	return ir.OpKindStyleMap
}

// ClassMapOp binds an expression to the classes of an element
type ClassMapOp struct {
	updateBase
	Expression    output.OutputExpression
	Interpolation *Interpolation
}

// NewClassMapOp creates a new ClassMapOp
func NewClassMapOp(target ir_operation.XrefId, expression output.OutputExpression, interpolation *Interpolation) *ClassMapOp {
	return &ClassMapOp{
		updateBase:    newUpdateBase(target),
		Expression:    expression,
		Interpolation: interpolation,
	}
}

// GetKind returns the operation kind
func (c *ClassMapOp) GetKind() ir.OpKind {
	return ir.OpKindClassMap
}

// InterpolateTextOp interpolates into a text node
type InterpolateTextOp struct {
	updateBase
	Interpolation *Interpolation
}

// NewInterpolateTextOp creates a new InterpolateTextOp
func NewInterpolateTextOp(target ir_operation.XrefId, interpolation *Interpolation) *InterpolateTextOp {
	return &InterpolateTextOp{
		updateBase:    newUpdateBase(target),
		Interpolation: interpolation,
	}
}

// GetKind returns the operation kind
func (i *InterpolateTextOp) GetKind() ir.OpKind {
	return ir.OpKindInterpolateText
}

// AdvanceOp advances the runtime's implicit slot context during the update phase
type AdvanceOp struct {
	ir_operation.OpBase
	Delta int
}

// NewAdvanceOp creates a new AdvanceOp
func NewAdvanceOp(delta int) *AdvanceOp {
	return &AdvanceOp{OpBase: ir_operation.NewOpBase(), Delta: delta}
}

// GetKind returns the operation kind
func (a *AdvanceOp) GetKind() ir.OpKind {
	return ir.OpKindAdvance
}

// ConditionalCase is one branch of a conditional. Expr is nil for the `@else`/`@default` branch.
type ConditionalCase struct {
	Expr       output.OutputExpression
	Target     ir_operation.XrefId
	TargetSlot *ir_traits.SlotHandle

	// The `as` alias of an `@if` branch, if any.
	Alias *ir_variable.IdentifierVariable
}

// NewConditionalCase creates a new ConditionalCase
func NewConditionalCase(expr output.OutputExpression, target ir_operation.XrefId, targetSlot *ir_traits.SlotHandle, alias *ir_variable.IdentifierVariable) *ConditionalCase {
	return &ConditionalCase{Expr: expr, Target: target, TargetSlot: targetSlot, Alias: alias}
}

// ConditionalOp selects which branch of a conditional is rendered. Target is the
// first branch, which holds the anchor of the whole conditional.
type ConditionalOp struct {
	updateBase
	TargetSlot *ir_traits.SlotHandle

	// The switch subject, nil for `@if`.
	Test       output.OutputExpression
	Conditions []*ConditionalCase

	// The single expression selecting the branch index, once the conditions are folded.
	Processed output.OutputExpression

	// The value for the branch alias, if any.
	ContextValue output.OutputExpression
}

// NewConditionalOp creates a new ConditionalOp
func NewConditionalOp(target ir_operation.XrefId, targetSlot *ir_traits.SlotHandle, test output.OutputExpression, conditions []*ConditionalCase) *ConditionalOp {
	return &ConditionalOp{
		updateBase: newUpdateBase(target),
		TargetSlot: targetSlot,
		Test:       test,
		Conditions: conditions,
	}
}

// GetKind returns the operation kind
func (c *ConditionalOp) GetKind() ir.OpKind {
	return ir.OpKindConditional
}

// RepeaterOp updates the collection of a repeater
type RepeaterOp struct {
	updateBase
	TargetSlot *ir_traits.SlotHandle
	Collection output.OutputExpression
}

// NewRepeaterOp creates a new RepeaterOp
func NewRepeaterOp(target ir_operation.XrefId, targetSlot *ir_traits.SlotHandle, collection output.OutputExpression) *RepeaterOp {
	return &RepeaterOp{
		updateBase: newUpdateBase(target),
		TargetSlot: targetSlot,
		Collection: collection,
	}
}

// GetKind returns the operation kind
func (r *RepeaterOp) GetKind() ir.OpKind {
	return ir.OpKindRepeater
}

// AnimationBindingOp is an `animate.enter`/`animate.leave` binding that still lives in the update list
type AnimationBindingOp struct {
	updateBase
	Name          string
	AnimationKind ir.AnimationKind
	BindingKind   ir.AnimationBindingKind
	Expression    output.OutputExpression
}

// NewAnimationBindingOp creates a new AnimationBindingOp
func NewAnimationBindingOp(
	target ir_operation.XrefId,
	name string,
	animationKind ir.AnimationKind,
	bindingKind ir.AnimationBindingKind,
	expression output.OutputExpression,
) *AnimationBindingOp {
	return &AnimationBindingOp{
		updateBase:    newUpdateBase(target),
		Name:          name,
		AnimationKind: animationKind,
		BindingKind:   bindingKind,
		Expression:    expression,
	}
}

// GetKind returns the operation kind
func (a *AnimationBindingOp) GetKind() ir.OpKind {
	return ir.OpKindAnimationBinding
}

// HasConsumesVarsTrait is false, the binding moves to the create list
func (a *AnimationBindingOp) HasConsumesVarsTrait() bool {
	return false
}

// ControlOp binds an expression to the `field` property for forms integration
type ControlOp struct {
	updateBase
	Name            string
	Expression      output.OutputExpression
	SecurityContext []core.SecurityContext
	Sanitizer       output.OutputExpression
}

// NewControlOp creates a new ControlOp
func NewControlOp(target ir_operation.XrefId, name string, expression output.OutputExpression, securityContext []core.SecurityContext) *ControlOp {
	return &ControlOp{
		updateBase:      newUpdateBase(target),
		Name:            name,
		Expression:      expression,
		SecurityContext: securityContext,
	}
}

// GetKind returns the operation kind
func (c *ControlOp) GetKind() ir.OpKind {
	return ir.OpKindControl
}

// I18nExpressionOp binds one expression of an interpolated text into the message of its i18n
// block. Target is the block, so the slot context points at it when the expression runs.
type I18nExpressionOp struct {
	updateBase

	// The text node the expression was interpolated into.
	Text ir_operation.XrefId

	// Slot of the i18n block, shared with its I18nStartOp.
	Handle *ir_traits.SlotHandle

	Expression output.OutputExpression
}

// NewI18nExpressionOp creates a new I18nExpressionOp
func NewI18nExpressionOp(owner, text ir_operation.XrefId, handle *ir_traits.SlotHandle, expression output.OutputExpression) *I18nExpressionOp {
	return &I18nExpressionOp{
		updateBase: newUpdateBase(owner),
		Text:       text,
		Handle:     handle,
		Expression: expression,
	}
}

// GetKind returns the operation kind
func (i *I18nExpressionOp) GetKind() ir.OpKind {
	return ir.OpKindI18nExpression
}

// I18nApplyOp applies the preceding i18n expressions of a block. It names its slot explicitly and
// uses no variables.
type I18nApplyOp struct {
	ir_operation.OpBase
	Owner  ir_operation.XrefId
	Handle *ir_traits.SlotHandle
}

// NewI18nApplyOp creates a new I18nApplyOp
func NewI18nApplyOp(owner ir_operation.XrefId, handle *ir_traits.SlotHandle) *I18nApplyOp {
	return &I18nApplyOp{OpBase: ir_operation.NewOpBase(), Owner: owner, Handle: handle}
}

// GetKind returns the operation kind
func (i *I18nApplyOp) GetKind() ir.OpKind {
	return ir.OpKindI18nApply
}
