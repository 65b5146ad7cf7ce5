package ir

// OpKind distinguishes different kinds of IR operations
type OpKind int

const (
	// OpKindListEnd - Sentinel node at either end of an operation list
	OpKindListEnd OpKind = iota
	// OpKindStatement - Wraps an output AST statement
	OpKindStatement
	// OpKindVariable - Declares and initializes a semantic variable
	OpKindVariable
	// OpKindElementStart - Begins rendering of an element
	OpKindElementStart
	// OpKindElement - Renders an element with no children
	OpKindElement
	// OpKindElementEnd - Ends an element started with `ElementStart`
	OpKindElementEnd
	// OpKindContainerStart - Begins an `ng-container`
	OpKindContainerStart
	// OpKindContainer - An `ng-container` with no children
	OpKindContainer
	// OpKindContainerEnd - Ends an `ng-container`
	OpKindContainerEnd
	// OpKindTemplate - Declares an embedded view
	OpKindTemplate
	// OpKindText - Renders a text node
	OpKindText
	// OpKindListener - Declares an event listener on an element
	OpKindListener
	// OpKindTwoWayListener - The event side of a two-way binding
	OpKindTwoWayListener
	// OpKindAnimation - Binds enter/leave animation classes to an element
	OpKindAnimation
	// OpKindAnimationListener - Listens to enter/leave animation events
	OpKindAnimationListener
	// OpKindPipe - Instantiates a pipe
	OpKindPipe
	// OpKindConditionalCreate - Declares the first branch of an `@if`/`@switch`
	OpKindConditionalCreate
	// OpKindConditionalBranchCreate - Declares a further branch of an `@if`/`@switch`
	OpKindConditionalBranchCreate
	// OpKindRepeaterCreate - Declares the views of a `@for` block
	OpKindRepeaterCreate
	// OpKindProjectionDef - Configures content projection for the view
	OpKindProjectionDef
	// OpKindProjection - Creates a content projection slot
	OpKindProjection
	// OpKindExtractedAttribute - An attribute extracted into the consts array
	OpKindExtractedAttribute
	// OpKindI18nStart - The start of an i18n block
	OpKindI18nStart
	// OpKindI18nEnd - The end of an i18n block
	OpKindI18nEnd
	// OpKindDisableBindings - Disables bindings for the following elements
	OpKindDisableBindings
	// OpKindEnableBindings - Re-enables bindings after `DisableBindings`
	OpKindEnableBindings
	// OpKindBinding - A binding that has not yet been specialized
	OpKindBinding
	// OpKindProperty - Binds an expression to an element property
	OpKindProperty
	// OpKindTwoWayProperty - The property side of a two-way binding
	OpKindTwoWayProperty
	// OpKindAttribute - Binds an expression to an element attribute
	OpKindAttribute
	// OpKindStyleProp - Binds an expression to a single style property
	OpKindStyleProp
	// OpKindClassProp - Toggles a single class
	OpKindClassProp
	// OpKindStyleMap - Binds an expression to the styles of an element
	OpKindStyleMap
	// OpKindClassMap - Binds an expression to the classes of an element
	OpKindClassMap
	// OpKindInterpolateText - Interpolates into a text node
	OpKindInterpolateText
	// OpKindAdvance - Advances the runtime's implicit slot context
	OpKindAdvance
	// OpKindConditional - Selects which branch of a conditional is rendered
	OpKindConditional
	// OpKindRepeater - Updates the collection of a repeater
	OpKindRepeater
	// OpKindAnimationBinding - An animation binding not yet moved to the create list
	OpKindAnimationBinding
	// OpKindControl - Binds an expression to a `field` property for forms integration
	OpKindControl
	// OpKindDomProperty - A binding to a native DOM property of a host element
	OpKindDomProperty
	// OpKindI18nExpression - An expression bound into the message of an i18n block
	OpKindI18nExpression
	// OpKindI18nApply - Applies the i18n expressions bound so far to their block
	OpKindI18nApply
)

var opKindNames = [...]string{
	OpKindListEnd:                 "ListEnd",
	OpKindStatement:               "Statement",
	OpKindVariable:                "Variable",
	OpKindElementStart:            "ElementStart",
	OpKindElement:                 "Element",
	OpKindElementEnd:              "ElementEnd",
	OpKindContainerStart:          "ContainerStart",
	OpKindContainer:               "Container",
	OpKindContainerEnd:            "ContainerEnd",
	OpKindTemplate:                "Template",
	OpKindText:                    "Text",
	OpKindListener:                "Listener",
	OpKindTwoWayListener:          "TwoWayListener",
	OpKindAnimation:               "Animation",
	OpKindAnimationListener:       "AnimationListener",
	OpKindPipe:                    "Pipe",
	OpKindConditionalCreate:       "ConditionalCreate",
	OpKindConditionalBranchCreate: "ConditionalBranchCreate",
	OpKindRepeaterCreate:          "RepeaterCreate",
	OpKindProjectionDef:           "ProjectionDef",
	OpKindProjection:              "Projection",
	OpKindExtractedAttribute:      "ExtractedAttribute",
	OpKindI18nStart:               "I18nStart",
	OpKindI18nEnd:                 "I18nEnd",
	OpKindDisableBindings:         "DisableBindings",
	OpKindEnableBindings:          "EnableBindings",
	OpKindBinding:                 "Binding",
	OpKindProperty:                "Property",
	OpKindTwoWayProperty:          "TwoWayProperty",
	OpKindAttribute:               "Attribute",
	OpKindStyleProp:               "StyleProp",
	OpKindClassProp:               "ClassProp",
	OpKindStyleMap:                "StyleMap",
	OpKindClassMap:                "ClassMap",
	OpKindInterpolateText:         "InterpolateText",
	OpKindAdvance:                 "Advance",
	OpKindConditional:             "Conditional",
	OpKindRepeater:                "Repeater",
	OpKindAnimationBinding:        "AnimationBinding",
	OpKindControl:                 "Control",
	OpKindDomProperty:             "DomProperty",
	OpKindI18nExpression:          "I18nExpression",
	OpKindI18nApply:               "I18nApply",
}

func (k OpKind) String() string {
	if int(k) >= 0 && int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return "Unknown"
}

// ExpressionKind distinguishes different kinds of IR expressions
type ExpressionKind int

const (
	// ExpressionKindLexicalRead - Read of a variable in a lexical scope
	ExpressionKindLexicalRead ExpressionKind = iota
	// ExpressionKindContext - A reference to the context of a view
	ExpressionKindContext
	// ExpressionKindTrackContext - A reference to the component context inside a track function
	ExpressionKindTrackContext
	// ExpressionKindReadVariable - Read of a variable declared in a `VariableOp`
	ExpressionKindReadVariable
	// ExpressionKindNextContext - Navigates to a parent view context
	ExpressionKindNextContext
	// ExpressionKindReference - Retrieves the value of a local reference
	ExpressionKindReference
	// ExpressionKindGetCurrentView - Snapshots the current view
	ExpressionKindGetCurrentView
	// ExpressionKindRestoreView - Restores a snapshotted view
	ExpressionKindRestoreView
	// ExpressionKindResetView - Resets the view after `RestoreView`
	ExpressionKindResetView
	// ExpressionKindPureFunctionExpr - Calls a memoized function with change-detected arguments
	ExpressionKindPureFunctionExpr
	// ExpressionKindPureFunctionParameterExpr - A positional parameter of a pure function body
	ExpressionKindPureFunctionParameterExpr
	// ExpressionKindPipeBinding - Binding to a pipe transformation
	ExpressionKindPipeBinding
	// ExpressionKindSafePropertyRead - `a?.b`, still to be expanded into a null check
	ExpressionKindSafePropertyRead
	// ExpressionKindSafeKeyedRead - `a?.[k]`, still to be expanded into a null check
	ExpressionKindSafeKeyedRead
	// ExpressionKindSafeInvokeFunction - `a?.()`, still to be expanded into a null check
	ExpressionKindSafeInvokeFunction
	// ExpressionKindSafeTernaryExpr - Intermediate form of an expanded safe access
	ExpressionKindSafeTernaryExpr
	// ExpressionKindAssignTemporaryExpr - Assignment to a temporary variable
	ExpressionKindAssignTemporaryExpr
	// ExpressionKindReadTemporaryExpr - Read of a temporary variable
	ExpressionKindReadTemporaryExpr
	// ExpressionKindSlotLiteralExpr - Emits the literal slot index of an op
	ExpressionKindSlotLiteralExpr
	// ExpressionKindTwoWayBindingSet - Writes the value of a two-way binding
	ExpressionKindTwoWayBindingSet
)

// VariableFlags describes flags for variables
type VariableFlags int

const (
	// VariableFlagsNone - No flags
	VariableFlagsNone VariableFlags = 0
	// VariableFlagsAlwaysInline - Always inline this variable, regardless of how often it is read
	VariableFlagsAlwaysInline VariableFlags = 0b0001
)

// SemanticVariableKind distinguishes between different kinds of `SemanticVariable`s
type SemanticVariableKind int

const (
	// SemanticVariableKindContext - The context of a particular view
	SemanticVariableKindContext SemanticVariableKind = iota
	// SemanticVariableKindIdentifier - An identifier declared in the lexical scope of a view
	SemanticVariableKindIdentifier
	// SemanticVariableKindSavedView - A saved view that a listener restores
	SemanticVariableKindSavedView
	// SemanticVariableKindAlias - An alias computed from other context values, always inlined
	SemanticVariableKindAlias
)

// BindingKind enumerates the kinds of bindings an element can carry
type BindingKind int

const (
	// BindingKindAttribute - Attribute bindings, static or dynamic
	BindingKindAttribute BindingKind = iota
	// BindingKindClassName - Single class bindings
	BindingKindClassName
	// BindingKindStyleProperty - Single style bindings
	BindingKindStyleProperty
	// BindingKindProperty - Dynamic property bindings
	BindingKindProperty
	// BindingKindTemplate - Property or attribute bindings on a template
	BindingKindTemplate
	// BindingKindI18n - Internationalized attributes
	BindingKindI18n
	// BindingKindLegacyAnimation - Legacy `@trigger` animation bindings
	BindingKindLegacyAnimation
	// BindingKindTwoWayProperty - Property side of a two-way binding
	BindingKindTwoWayProperty
	// BindingKindAnimation - `animate.enter` / `animate.leave` bindings
	BindingKindAnimation
)

// TemplateKind distinguishes the origin of an embedded view
type TemplateKind int

const (
	// TemplateKindNgTemplate - An explicit `<ng-template>`
	TemplateKindNgTemplate TemplateKind = iota
	// TemplateKindStructural - A `*directive` structural template
	TemplateKindStructural
	// TemplateKindBlock - A control-flow block
	TemplateKindBlock
)

// AnimationKind is the phase an animation applies to
type AnimationKind string

const (
	// AnimationKindEnter - Enter animation
	AnimationKindEnter AnimationKind = "enter"
	// AnimationKindLeave - Leave animation
	AnimationKindLeave AnimationKind = "leave"
)

// AnimationBindingKind tells whether an animation binding is a static class list or a computed value
type AnimationBindingKind int

const (
	// AnimationBindingKindString - Static class list
	AnimationBindingKindString AnimationBindingKind = iota
	// AnimationBindingKindValue - Computed value
	AnimationBindingKindValue
)
