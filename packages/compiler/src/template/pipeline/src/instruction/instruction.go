package pipeline_instruction

import (
	"fmt"

	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/render3/r3_identifiers"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"
)

func literal(value interface{}) output.OutputExpression {
	return output.NewLiteralExpr(value)
}

func constOrNull(index *ir_operation.ConstIndex) output.OutputExpression {
	if index == nil {
		return literal(nil)
	}
	return literal(int(*index))
}

// elementOrContainerBase is a helper function for creating element or container operations
func elementOrContainerBase(
	instruction output.ExternalReference,
	slot int,
	tag *string,
	constIndex *ir_operation.ConstIndex,
	localRefIndex *ir_operation.ConstIndex,
) ir_operation.Op {
	args := []output.OutputExpression{literal(slot)}
	if tag != nil {
		args = append(args, literal(*tag))
	}
	if localRefIndex != nil {
		args = append(args, constOrNull(constIndex), literal(int(*localRefIndex)))
	} else if constIndex != nil {
		args = append(args, literal(int(*constIndex)))
	}
	return call(instruction, args)
}

// Element creates an element operation
func Element(slot int, tag string, constIndex, localRefIndex *ir_operation.ConstIndex) ir_operation.Op {
	return elementOrContainerBase(r3_identifiers.Element, slot, &tag, constIndex, localRefIndex)
}

// ElementStart creates an element start operation
func ElementStart(slot int, tag string, constIndex, localRefIndex *ir_operation.ConstIndex) ir_operation.Op {
	return elementOrContainerBase(r3_identifiers.ElementStart, slot, &tag, constIndex, localRefIndex)
}

// ElementEnd creates an element end operation
func ElementEnd() ir_operation.Op {
	return call(r3_identifiers.ElementEnd, nil)
}

// ElementContainerStart creates an element container start operation
func ElementContainerStart(slot int, constIndex, localRefIndex *ir_operation.ConstIndex) ir_operation.Op {
	return elementOrContainerBase(r3_identifiers.ElementContainerStart, slot, nil, constIndex, localRefIndex)
}

// ElementContainer creates an element container operation
func ElementContainer(slot int, constIndex, localRefIndex *ir_operation.ConstIndex) ir_operation.Op {
	return elementOrContainerBase(r3_identifiers.ElementContainer, slot, nil, constIndex, localRefIndex)
}

// ElementContainerEnd creates an element container end operation
func ElementContainerEnd() ir_operation.Op {
	return call(r3_identifiers.ElementContainerEnd, nil)
}

// DomElement creates a DOM-only element operation
func DomElement(slot int, tag string, constIndex, localRefIndex *ir_operation.ConstIndex) ir_operation.Op {
	return elementOrContainerBase(r3_identifiers.DomElement, slot, &tag, constIndex, localRefIndex)
}

// DomElementStart creates a DOM-only element start operation
func DomElementStart(slot int, tag string, constIndex, localRefIndex *ir_operation.ConstIndex) ir_operation.Op {
	return elementOrContainerBase(r3_identifiers.DomElementStart, slot, &tag, constIndex, localRefIndex)
}

// DomElementEnd creates a DOM-only element end operation
func DomElementEnd() ir_operation.Op {
	return call(r3_identifiers.DomElementEnd, nil)
}

// DomElementContainerStart creates a DOM-only element container start operation
func DomElementContainerStart(slot int, constIndex, localRefIndex *ir_operation.ConstIndex) ir_operation.Op {
	return elementOrContainerBase(r3_identifiers.DomElementContainerStart, slot, nil, constIndex, localRefIndex)
}

// DomElementContainer creates a DOM-only element container operation
func DomElementContainer(slot int, constIndex, localRefIndex *ir_operation.ConstIndex) ir_operation.Op {
	return elementOrContainerBase(r3_identifiers.DomElementContainer, slot, nil, constIndex, localRefIndex)
}

// DomElementContainerEnd creates a DOM-only element container end operation
func DomElementContainerEnd() ir_operation.Op {
	return call(r3_identifiers.DomElementContainerEnd, nil)
}

// templateBase is a helper function for creating template operations
func templateBase(
	instruction output.ExternalReference,
	slot int,
	templateFnRef output.OutputExpression,
	decls int,
	vars int,
	tag *string,
	constIndex *ir_operation.ConstIndex,
	localRefs *ir_operation.ConstIndex,
) ir_operation.Op {
	args := []output.OutputExpression{
		literal(slot),
		templateFnRef,
		literal(decls),
		literal(vars),
	}
	if tag != nil {
		args = append(args, literal(*tag))
	} else {
		args = append(args, literal(nil))
	}
	args = append(args, constOrNull(constIndex))
	if localRefs != nil {
		args = append(args, literal(int(*localRefs)), output.NewExternalExpr(r3_identifiers.TemplateRefExtractor))
	}

	// Remove trailing null expressions
	for len(args) > 0 {
		if lit, ok := args[len(args)-1].(*output.LiteralExpr); ok && lit.Value == nil {
			args = args[:len(args)-1]
		} else {
			break
		}
	}
	return call(instruction, args)
}

// Template creates a template operation
func Template(
	slot int,
	templateFnRef output.OutputExpression,
	decls, vars int,
	tag *string,
	constIndex, localRefs *ir_operation.ConstIndex,
) ir_operation.Op {
	return templateBase(r3_identifiers.TemplateCreate, slot, templateFnRef, decls, vars, tag, constIndex, localRefs)
}

// DomTemplate creates a DOM-only template operation
func DomTemplate(
	slot int,
	templateFnRef output.OutputExpression,
	decls, vars int,
	tag *string,
	constIndex, localRefs *ir_operation.ConstIndex,
) ir_operation.Op {
	return templateBase(r3_identifiers.DomTemplate, slot, templateFnRef, decls, vars, tag, constIndex, localRefs)
}

// ConditionalCreate creates the operation declaring the first branch of a conditional
func ConditionalCreate(
	slot int,
	templateFnRef output.OutputExpression,
	decls, vars int,
	tag *string,
	constIndex, localRefs *ir_operation.ConstIndex,
) ir_operation.Op {
	return templateBase(r3_identifiers.ConditionalCreate, slot, templateFnRef, decls, vars, tag, constIndex, localRefs)
}

// ConditionalBranchCreate creates the operation declaring a further branch of a conditional
func ConditionalBranchCreate(
	slot int,
	templateFnRef output.OutputExpression,
	decls, vars int,
	tag *string,
	constIndex, localRefs *ir_operation.ConstIndex,
) ir_operation.Op {
	return templateBase(r3_identifiers.ConditionalBranchCreate, slot, templateFnRef, decls, vars, tag, constIndex, localRefs)
}

// DisableBindings creates a disable bindings operation
func DisableBindings() ir_operation.Op {
	return call(r3_identifiers.DisableBindings, nil)
}

// EnableBindings creates an enable bindings operation
func EnableBindings() ir_operation.Op {
	return call(r3_identifiers.EnableBindings, nil)
}

// bindingValue picks whichever of the expression and the interpolation is set
func bindingValue(expression output.OutputExpression, interpolation *ops_update.Interpolation) output.OutputExpression {
	if interpolation != nil {
		return interpolationToExpression(interpolation)
	}
	if expression == nil {
		panic("AssertionError: binding has neither an expression nor an interpolation")
	}
	return expression
}

// propertyBase is a helper function for creating property operations
func propertyBase(
	instruction output.ExternalReference,
	name string,
	expression output.OutputExpression,
	interpolation *ops_update.Interpolation,
	sanitizer output.OutputExpression,
) ir_operation.Op {
	args := []output.OutputExpression{literal(name), bindingValue(expression, interpolation)}
	if sanitizer != nil {
		args = append(args, sanitizer)
	}
	return call(instruction, args)
}

// Listener creates a listener operation
func Listener(
	name string,
	handlerFn output.OutputExpression,
	eventTargetResolver *output.ExternalReference,
	syntheticHost bool,
) ir_operation.Op {
	args := []output.OutputExpression{literal(name), handlerFn}
	if eventTargetResolver != nil {
		args = append(args, output.NewExternalExpr(*eventTargetResolver))
	}
	identifier := r3_identifiers.Listener
	if syntheticHost {
		identifier = r3_identifiers.SyntheticHostListener
	}
	return call(identifier, args)
}

// DomListener creates a DOM-only listener operation
func DomListener(name string, handlerFn output.OutputExpression, eventTargetResolver *output.ExternalReference) ir_operation.Op {
	args := []output.OutputExpression{literal(name), handlerFn}
	if eventTargetResolver != nil {
		args = append(args, output.NewExternalExpr(*eventTargetResolver))
	}
	return call(r3_identifiers.DomListener, args)
}

// TwoWayListener creates a two-way listener operation
func TwoWayListener(name string, handlerFn output.OutputExpression) ir_operation.Op {
	return call(r3_identifiers.TwoWayListener, []output.OutputExpression{literal(name), handlerFn})
}

// TwoWayBindingSet creates a two-way binding set expression
func TwoWayBindingSet(target, value output.OutputExpression) output.OutputExpression {
	return callExpr(r3_identifiers.TwoWayBindingSet, []output.OutputExpression{target, value})
}

// EventTargetResolver returns the runtime resolver of a global event target
func EventTargetResolver(target string) (output.ExternalReference, bool) {
	switch target {
	case "window":
		return r3_identifiers.ResolveWindow, true
	case "document":
		return r3_identifiers.ResolveDocument, true
	case "body":
		return r3_identifiers.ResolveBody, true
	}
	return output.ExternalReference{}, false
}

// Pipe creates a pipe operation
func Pipe(slot int, name string) ir_operation.Op {
	return call(r3_identifiers.Pipe, []output.OutputExpression{literal(slot), literal(name)})
}

// Advance creates an advance operation
func Advance(delta int) ir_operation.Op {
	var args []output.OutputExpression
	if delta > 1 {
		args = append(args, literal(delta))
	}
	return call(r3_identifiers.Advance, args)
}

// Reference creates a reference expression
func Reference(slot int) output.OutputExpression {
	return callExpr(r3_identifiers.Reference, []output.OutputExpression{literal(slot)})
}

// NextContext creates a next context expression
func NextContext(steps int) output.OutputExpression {
	var args []output.OutputExpression
	if steps != 1 {
		args = append(args, literal(steps))
	}
	return callExpr(r3_identifiers.NextContext, args)
}

// GetCurrentView creates a get current view expression
func GetCurrentView() output.OutputExpression {
	return callExpr(r3_identifiers.GetCurrentView, nil)
}

// RestoreView creates a restore view expression
func RestoreView(savedView output.OutputExpression) output.OutputExpression {
	return callExpr(r3_identifiers.RestoreView, []output.OutputExpression{savedView})
}

// ResetView creates a reset view expression
func ResetView(returnValue output.OutputExpression) output.OutputExpression {
	return callExpr(r3_identifiers.ResetView, []output.OutputExpression{returnValue})
}

// ComponentInstance creates an expression reading the component instance from an embedded view
func ComponentInstance() output.OutputExpression {
	return callExpr(r3_identifiers.ComponentInstance, nil)
}

// Text creates a text operation
func Text(slot int, initialValue string) ir_operation.Op {
	args := []output.OutputExpression{literal(slot)}
	if initialValue != "" {
		args = append(args, literal(initialValue))
	}
	return call(r3_identifiers.Text, args)
}

func callExpr(instruction output.ExternalReference, args []output.OutputExpression) *output.InvokeFunctionExpr {
	if args == nil {
		args = []output.OutputExpression{}
	}
	return output.NewInvokeFunctionExpr(output.NewExternalExpr(instruction), args, false)
}

// call is a helper function to create a statement operation from an instruction call
func call(instruction output.ExternalReference, args []output.OutputExpression) ir_operation.Op {
	return ops.NewStatementOp(output.NewExpressionStatement(callExpr(instruction, args)))
}

// Property creates a property operation
func Property(
	name string,
	expression output.OutputExpression,
	interpolation *ops_update.Interpolation,
	sanitizer output.OutputExpression,
) ir_operation.Op {
	return propertyBase(r3_identifiers.Property, name, expression, interpolation, sanitizer)
}

// DomProperty creates a DOM property operation
func DomProperty(
	name string,
	expression output.OutputExpression,
	interpolation *ops_update.Interpolation,
	sanitizer output.OutputExpression,
) ir_operation.Op {
	return propertyBase(r3_identifiers.DomProperty, name, expression, interpolation, sanitizer)
}

// SyntheticHostProperty creates a legacy animation trigger binding on a host element
func SyntheticHostProperty(name string, expression output.OutputExpression) ir_operation.Op {
	return call(r3_identifiers.SyntheticHostProperty, []output.OutputExpression{literal(name), expression})
}

// Control creates a control operation
func Control(expression output.OutputExpression, sanitizer output.OutputExpression) ir_operation.Op {
	args := []output.OutputExpression{expression}
	if sanitizer != nil {
		args = append(args, sanitizer)
	}
	return call(r3_identifiers.Control, args)
}

// TwoWayProperty creates a two-way property operation
func TwoWayProperty(name string, expression, sanitizer output.OutputExpression) ir_operation.Op {
	args := []output.OutputExpression{literal(name), expression}
	if sanitizer != nil {
		args = append(args, sanitizer)
	}
	return call(r3_identifiers.TwoWayProperty, args)
}

// Attribute creates an attribute operation
func Attribute(
	name string,
	expression output.OutputExpression,
	interpolation *ops_update.Interpolation,
	sanitizer output.OutputExpression,
	namespace *string,
) ir_operation.Op {
	args := []output.OutputExpression{literal(name), bindingValue(expression, interpolation)}
	if sanitizer != nil || namespace != nil {
		if sanitizer != nil {
			args = append(args, sanitizer)
		} else {
			args = append(args, literal(nil))
		}
	}
	if namespace != nil {
		args = append(args, literal(*namespace))
	}
	return call(r3_identifiers.Attribute, args)
}

// StyleProp creates a style property operation
func StyleProp(
	name string,
	expression output.OutputExpression,
	interpolation *ops_update.Interpolation,
	unit *string,
) ir_operation.Op {
	args := []output.OutputExpression{literal(name), bindingValue(expression, interpolation)}
	if unit != nil {
		args = append(args, literal(*unit))
	}
	return call(r3_identifiers.StyleProp, args)
}

// ClassProp creates a class property operation
func ClassProp(name string, expression output.OutputExpression) ir_operation.Op {
	return call(r3_identifiers.ClassProp, []output.OutputExpression{literal(name), expression})
}

// StyleMap creates a style map operation
func StyleMap(expression output.OutputExpression, interpolation *ops_update.Interpolation) ir_operation.Op {
	return call(r3_identifiers.StyleMap, []output.OutputExpression{bindingValue(expression, interpolation)})
}

// ClassMap creates a class map operation
func ClassMap(expression output.OutputExpression, interpolation *ops_update.Interpolation) ir_operation.Op {
	return call(r3_identifiers.ClassMap, []output.OutputExpression{bindingValue(expression, interpolation)})
}

// collateInterpolationArgs collates string and expression arguments for an interpolation instruction
func collateInterpolationArgs(strings []string, expressions []output.OutputExpression) []output.OutputExpression {
	if len(strings) < 1 || len(expressions) != len(strings)-1 {
		panic(fmt.Sprintf(
			"AssertionError: expected specific shape of args for strings/expressions in interpolation: strings=%d, expressions=%d",
			len(strings),
			len(expressions),
		))
	}

	var interpolationArgs []output.OutputExpression
	if len(expressions) == 1 && strings[0] == "" && strings[1] == "" {
		interpolationArgs = append(interpolationArgs, expressions[0])
	} else {
		for idx := 0; idx < len(expressions); idx++ {
			interpolationArgs = append(interpolationArgs, literal(strings[idx]), expressions[idx])
		}
		// idx points at the last string
		interpolationArgs = append(interpolationArgs, literal(strings[len(expressions)]))
	}
	return interpolationArgs
}

// interpolationToExpression converts an interpolation to a call of the value interpolate instruction
func interpolationToExpression(interpolation *ops_update.Interpolation) output.OutputExpression {
	interpolationArgs := collateInterpolationArgs(interpolation.Strings, interpolation.Expressions)
	return callVariadicInstructionExpr(ValueInterpolateConfig, nil, interpolationArgs, nil)
}

// TextInterpolate creates a text interpolate operation
func TextInterpolate(strings []string, expressions []output.OutputExpression) ir_operation.Op {
	interpolationArgs := collateInterpolationArgs(strings, expressions)
	return callVariadicInstruction(TextInterpolateConfig, nil, interpolationArgs, nil)
}

// VariadicInstructionConfig describes a specific flavor of instruction used to represent variadic instructions
type VariadicInstructionConfig struct {
	Constant []output.ExternalReference
	Variable *output.ExternalReference
	Mapping  func(argCount int) int
}

func interpolationArity(n int) int {
	if n%2 == 0 {
		panic("AssertionError: expected odd number of arguments")
	}
	return (n - 1) / 2
}

// TextInterpolateConfig is the config for the textInterpolate instruction
var TextInterpolateConfig = VariadicInstructionConfig{
	Constant: []output.ExternalReference{
		r3_identifiers.TextInterpolate,
		r3_identifiers.TextInterpolate1,
		r3_identifiers.TextInterpolate2,
		r3_identifiers.TextInterpolate3,
		r3_identifiers.TextInterpolate4,
		r3_identifiers.TextInterpolate5,
		r3_identifiers.TextInterpolate6,
		r3_identifiers.TextInterpolate7,
		r3_identifiers.TextInterpolate8,
	},
	Variable: &r3_identifiers.TextInterpolateV,
	Mapping:  interpolationArity,
}

// ValueInterpolateConfig is the config for the value interpolate instruction
var ValueInterpolateConfig = VariadicInstructionConfig{
	Constant: []output.ExternalReference{
		r3_identifiers.Interpolate,
		r3_identifiers.Interpolate1,
		r3_identifiers.Interpolate2,
		r3_identifiers.Interpolate3,
		r3_identifiers.Interpolate4,
		r3_identifiers.Interpolate5,
		r3_identifiers.Interpolate6,
		r3_identifiers.Interpolate7,
		r3_identifiers.Interpolate8,
	},
	Variable: &r3_identifiers.InterpolateV,
	Mapping:  interpolationArity,
}

// PureFunctionConfig is the config for the pure function instruction
var PureFunctionConfig = VariadicInstructionConfig{
	Constant: []output.ExternalReference{
		r3_identifiers.PureFunction0,
		r3_identifiers.PureFunction1,
		r3_identifiers.PureFunction2,
		r3_identifiers.PureFunction3,
		r3_identifiers.PureFunction4,
		r3_identifiers.PureFunction5,
		r3_identifiers.PureFunction6,
		r3_identifiers.PureFunction7,
		r3_identifiers.PureFunction8,
	},
	Variable: &r3_identifiers.PureFunctionV,
	Mapping: func(n int) int {
		return n
	},
}

// callVariadicInstructionExpr calls a variadic instruction and returns an expression
func callVariadicInstructionExpr(
	config VariadicInstructionConfig,
	baseArgs []output.OutputExpression,
	interpolationArgs []output.OutputExpression,
	extraArgs []output.OutputExpression,
) output.OutputExpression {
	// mapping need to be done before potentially dropping the last interpolation argument
	n := config.Mapping(len(interpolationArgs))

	// A trailing empty string is implied by the runtime.
	if len(extraArgs) == 0 && len(interpolationArgs) > 1 {
		if lit, ok := interpolationArgs[len(interpolationArgs)-1].(*output.LiteralExpr); ok {
			if str, ok := lit.Value.(string); ok && str == "" {
				interpolationArgs = interpolationArgs[:len(interpolationArgs)-1]
			}
		}
	}

	allArgs := append([]output.OutputExpression{}, baseArgs...)
	if n < len(config.Constant) {
		allArgs = append(allArgs, interpolationArgs...)
		allArgs = append(allArgs, extraArgs...)
		return callExpr(config.Constant[n], allArgs)
	}
	if config.Variable != nil {
		allArgs = append(allArgs, output.NewLiteralArrayExpr(interpolationArgs))
		allArgs = append(allArgs, extraArgs...)
		return callExpr(*config.Variable, allArgs)
	}
	panic("AssertionError: unable to call variadic function")
}

// callVariadicInstruction calls a variadic instruction and returns a statement operation
func callVariadicInstruction(
	config VariadicInstructionConfig,
	baseArgs []output.OutputExpression,
	interpolationArgs []output.OutputExpression,
	extraArgs []output.OutputExpression,
) ir_operation.Op {
	expr := callVariadicInstructionExpr(config, baseArgs, interpolationArgs, extraArgs)
	return ops.NewStatementOp(output.NewExpressionStatement(expr))
}

// ProjectionDef creates a projection definition operation
func ProjectionDef(def output.OutputExpression) ir_operation.Op {
	var args []output.OutputExpression
	if def != nil {
		args = append(args, def)
	}
	return call(r3_identifiers.ProjectionDef, args)
}

// Projection creates a projection operation
func Projection(
	slot int,
	projectionSlotIndex int,
	attributes *output.LiteralArrayExpr,
	fallbackFnName *string,
	fallbackDecls *int,
	fallbackVars *int,
) ir_operation.Op {
	args := []output.OutputExpression{literal(slot)}
	if projectionSlotIndex != 0 || attributes != nil || fallbackFnName != nil {
		args = append(args, literal(projectionSlotIndex))
		if attributes != nil {
			args = append(args, attributes)
		}
		if fallbackFnName != nil {
			if attributes == nil {
				args = append(args, literal(nil))
			}
			args = append(args,
				output.NewReadVarExpr(*fallbackFnName),
				literal(*fallbackDecls),
				literal(*fallbackVars),
			)
		}
	}
	return call(r3_identifiers.Projection, args)
}

// I18nStart creates an i18n start operation
func I18nStart(slot int, constIndex ir_operation.ConstIndex, subTemplateIndex *int) ir_operation.Op {
	args := []output.OutputExpression{literal(slot), literal(int(constIndex))}
	if subTemplateIndex != nil {
		args = append(args, literal(*subTemplateIndex))
	}
	return call(r3_identifiers.I18nStart, args)
}

// I18nEnd creates an i18n end operation
func I18nEnd() ir_operation.Op {
	return call(r3_identifiers.I18nEnd, nil)
}

// I18nExp creates an i18n expression operation
func I18nExp(expr output.OutputExpression) ir_operation.Op {
	return call(r3_identifiers.I18nExp, []output.OutputExpression{expr})
}

// I18nApply creates an i18n apply operation
func I18nApply(slot int) ir_operation.Op {
	return call(r3_identifiers.I18nApply, []output.OutputExpression{literal(slot)})
}

// RepeaterCreate creates a repeater create operation
func RepeaterCreate(
	slot int,
	viewFnName string,
	decls int,
	vars int,
	tag *string,
	constIndex *ir_operation.ConstIndex,
	trackByFn output.OutputExpression,
	trackByUsesComponentInstance bool,
	emptyViewFnName *string,
	emptyDecls *int,
	emptyVars *int,
	emptyTag *string,
	emptyConstIndex *ir_operation.ConstIndex,
) ir_operation.Op {
	args := []output.OutputExpression{
		literal(slot),
		output.NewReadVarExpr(viewFnName),
		literal(decls),
		literal(vars),
	}
	if tag != nil {
		args = append(args, literal(*tag))
	} else {
		args = append(args, literal(nil))
	}
	args = append(args, constOrNull(constIndex), trackByFn)
	if trackByUsesComponentInstance || emptyViewFnName != nil {
		args = append(args, literal(trackByUsesComponentInstance))
		if emptyViewFnName != nil {
			args = append(args,
				output.NewReadVarExpr(*emptyViewFnName),
				literal(*emptyDecls),
				literal(*emptyVars),
			)
			if emptyTag != nil || emptyConstIndex != nil {
				if emptyTag != nil {
					args = append(args, literal(*emptyTag))
				} else {
					args = append(args, literal(nil))
				}
			}
			if emptyConstIndex != nil {
				args = append(args, literal(int(*emptyConstIndex)))
			}
		}
	}
	return call(r3_identifiers.RepeaterCreate, args)
}

// Repeater creates a repeater operation
func Repeater(collection output.OutputExpression) ir_operation.Op {
	return call(r3_identifiers.Repeater, []output.OutputExpression{collection})
}

// Conditional creates a conditional operation
func Conditional(condition, contextValue output.OutputExpression) ir_operation.Op {
	args := []output.OutputExpression{condition}
	if contextValue != nil {
		args = append(args, contextValue)
	}
	return call(r3_identifiers.Conditional, args)
}

// PureFunction creates a pure function expression
func PureFunction(varOffset int, fn output.OutputExpression, args []output.OutputExpression) output.OutputExpression {
	return callVariadicInstructionExpr(
		PureFunctionConfig,
		[]output.OutputExpression{literal(varOffset), fn},
		args,
		nil,
	)
}

// PipeBindings contains pipe binding identifiers
var PipeBindings = []output.ExternalReference{
	r3_identifiers.PipeBind1,
	r3_identifiers.PipeBind2,
	r3_identifiers.PipeBind3,
	r3_identifiers.PipeBind4,
}

// PipeBind creates a pipe bind expression
func PipeBind(slot int, varOffset int, args []output.OutputExpression) output.OutputExpression {
	if len(args) < 1 || len(args) > len(PipeBindings) {
		panic(fmt.Sprintf("AssertionError: pipeBind() argument count out of bounds: %d", len(args)))
	}
	allArgs := []output.OutputExpression{literal(slot), literal(varOffset)}
	allArgs = append(allArgs, args...)
	return callExpr(PipeBindings[len(args)-1], allArgs)
}

// PipeBindV creates a variadic pipe bind expression
func PipeBindV(slot int, varOffset int, args output.OutputExpression) output.OutputExpression {
	return callExpr(r3_identifiers.PipeBindV, []output.OutputExpression{literal(slot), literal(varOffset), args})
}

func animationInstruction(animationKind ir.AnimationKind) output.ExternalReference {
	if animationKind == ir.AnimationKindEnter {
		return r3_identifiers.AnimationEnter
	}
	return r3_identifiers.AnimationLeave
}

// Animation creates an animation operation whose value is computed by handlerFn
func Animation(animationKind ir.AnimationKind, handlerFn output.OutputExpression) ir_operation.Op {
	return call(animationInstruction(animationKind), []output.OutputExpression{handlerFn})
}

// AnimationString creates an animation operation with a static class list
func AnimationString(animationKind ir.AnimationKind, expression output.OutputExpression) ir_operation.Op {
	return call(animationInstruction(animationKind), []output.OutputExpression{expression})
}

// AnimationListener creates an animation listener operation
func AnimationListener(
	animationKind ir.AnimationKind,
	handlerFn output.OutputExpression,
	eventTargetResolver *output.ExternalReference,
) ir_operation.Op {
	args := []output.OutputExpression{handlerFn}
	if eventTargetResolver != nil {
		args = append(args, output.NewExternalExpr(*eventTargetResolver))
	}
	identifier := r3_identifiers.AnimationLeaveListener
	if animationKind == ir.AnimationKindEnter {
		identifier = r3_identifiers.AnimationEnterListener
	}
	return call(identifier, args)
}
