package phases

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_host "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/host"
	ops_shared "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"
	ir_traits "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/traits"
	ir_variable "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/variable"

	"ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

var invalidIdentifierChars = regexp.MustCompile(`[^a-zA-Z0-9_$]`)

// sanitizeIdentifier sanitizes an identifier to be a valid JavaScript identifier
func sanitizeIdentifier(name string) string {
	sanitized := invalidIdentifierChars.ReplaceAllString(name, "_")
	if len(sanitized) > 0 && sanitized[0] >= '0' && sanitized[0] <= '9' {
		sanitized = "_" + sanitized
	}
	return sanitized
}

// NameFunctionsAndVariables generates names for functions and variables across all views.
// This includes propagating those names into any `ReadVariableExpr`s of those variables, so that
// the reads can be emitted correctly.
func NameFunctionsAndVariables(job compilation.Job) {
	n := &namer{job: job}
	n.addNamesToView(job.Root(), job.Base().ComponentName)
}

type namer struct {
	job   compilation.Job
	index int
}

func (n *namer) addNamesToView(unit compilation.CompilationUnit, baseName string) {
	if unit.GetFnName() == nil {
		// Ensure unique names for view units. This is necessary because there might be multiple
		// components with same names in the context of the same pool. Only add the suffix
		// if really needed.
		name := sanitizeIdentifier(fmt.Sprintf("%s_%s", baseName, n.job.FnSuffix()))
		unit.SetFnName(n.job.Base().Pool.UniqueName(name, false))
	}

	// Keep track of the names we assign to variables in the view. We'll need to propagate these
	// into reads of those variables afterwards.
	varNames := make(map[ir_operation.XrefId]string)

	for op := range compilation.UnitOps(unit) {
		n.nameOp(op, unit, baseName, varNames)
	}

	// Having named all variables declared in the view, now we can push those names into the
	// `ReadVariableExpr` expressions which represent reads of those variables.
	for op := range compilation.UnitOps(unit) {
		expression.VisitExpressionsInOp(op, func(expr output.OutputExpression, flags expression.VisitorContextFlag) {
			readVar, ok := expr.(*expression.ReadVariableExpr)
			if !ok || readVar.Name != nil {
				return
			}
			name, exists := varNames[readVar.Xref]
			if !exists {
				panic(fmt.Sprintf("Variable %d not yet named", readVar.Xref))
			}
			readVar.Name = &name
		})
	}
}

func (n *namer) nameOp(
	op ir_operation.Op,
	unit compilation.CompilationUnit,
	baseName string,
	varNames map[ir_operation.XrefId]string,
) {
	fnName := *unit.GetFnName()

	switch o := op.(type) {
	case *ops_update.PropertyOp:
		if o.IsLegacyAnimationTrigger {
			o.Name = "@" + o.Name
		}
	case *ops_host.DomPropertyOp:
		if o.IsLegacyAnimationTrigger {
			o.Name = "@" + o.Name
		}
	case *ops_create.AnimationOp:
		if o.HandlerFnName == nil {
			animationKind := strings.ReplaceAll(o.Name, ".", "")
			name := sanitizeIdentifier(fmt.Sprintf("%s_%s_cb", fnName, animationKind))
			o.HandlerFnName = &name
		}
	case *ops_create.AnimationListenerOp:
		if o.HandlerFnName != nil {
			return
		}
		animationKind := strings.ReplaceAll(o.Name, ".", "")
		var name string
		if o.HostListener {
			name = fmt.Sprintf("%s_%s_HostBindingHandler", baseName, animationKind)
		} else {
			name = fmt.Sprintf("%s_%s_%s_%d_listener", fnName, tagName(o.Tag), animationKind, mustSlot(o.TargetSlot))
		}
		name = sanitizeIdentifier(name)
		o.HandlerFnName = &name
	case *ops_create.ListenerOp:
		if o.HandlerFnName != nil {
			return
		}
		animation := ""
		if o.IsLegacyAnimationListener {
			phase := ""
			if o.LegacyAnimationPhase != nil {
				phase = *o.LegacyAnimationPhase
			}
			o.Name = fmt.Sprintf("@%s.%s", o.Name, phase)
			animation = "animation"
		}
		var name string
		if o.HostListener {
			name = fmt.Sprintf("%s_%s%s_HostBindingHandler", baseName, animation, o.Name)
		} else {
			name = fmt.Sprintf("%s_%s_%s%s_%d_listener", fnName, tagName(o.Tag), animation, o.Name, mustSlot(o.TargetSlot))
		}
		name = sanitizeIdentifier(name)
		o.HandlerFnName = &name
	case *ops_create.TwoWayListenerOp:
		if o.HandlerFnName != nil {
			return
		}
		name := sanitizeIdentifier(fmt.Sprintf("%s_%s_%s_%d_listener", fnName, tagName(o.Tag), o.Name, mustSlot(o.TargetSlot)))
		o.HandlerFnName = &name
	case *ops_shared.VariableOp:
		varNames[o.Xref] = n.variableName(o.Variable)
	case *ops_create.RepeaterCreateOp:
		job := n.componentJob()
		slot := mustSlot(o.Handle)
		// The repeater metadata occupies the first slot, the primary view the second and the empty
		// view the third.
		if o.EmptyView != nil {
			n.addNamesToView(job.MustView(*o.EmptyView), fmt.Sprintf("%s_%sEmpty_%d", baseName, o.FunctionNameSuffix, slot+2))
		}
		n.addNamesToView(job.MustView(o.Xref), fmt.Sprintf("%s_%s_%d", baseName, o.FunctionNameSuffix, slot+1))
	case *ops_create.ProjectionOp:
		if o.FallbackView != nil {
			job := n.componentJob()
			n.addNamesToView(job.MustView(*o.FallbackView), fmt.Sprintf("%s_ProjectionFallback_%d", baseName, mustSlot(o.Handle)))
		}
	case ops_create.EmbeddedViewOp:
		job := n.componentJob()
		base := o.GetEmbeddedViewBase()
		suffix := ""
		if base.FunctionNameSuffix != "" {
			suffix = "_" + base.FunctionNameSuffix
		}
		n.addNamesToView(job.MustView(o.GetXref()), fmt.Sprintf("%s%s_%d", baseName, suffix, mustSlot(o.GetConsumesSlotTrait().Handle)))
	case *ops_update.StylePropOp:
		o.Name = normalizeStylePropName(o.Name)
	}
}

func (n *namer) componentJob() *compilation.ComponentCompilationJob {
	job, ok := n.job.(*compilation.ComponentCompilationJob)
	if !ok {
		panic("AssertionError: must be compiling a component")
	}
	return job
}

// variableName assigns the generated name of a variable, unless it was named already.
func (n *namer) variableName(variable ir_variable.SemanticVariable) string {
	if name := variable.GetName(); name != nil {
		return *name
	}
	var name string
	switch v := variable.(type) {
	case *ir_variable.ContextVariable:
		name = fmt.Sprintf("ctx_r%d", n.index)
		n.index++
	case *ir_variable.IdentifierVariable:
		// `ctx` needs a distinct prefix so the generated name never collides with the context parameter.
		prefix := ""
		if v.Identifier == "ctx" {
			prefix = "i"
		}
		n.index++
		name = fmt.Sprintf("%s_%sr%d", v.Identifier, prefix, n.index)
	default:
		n.index++
		name = fmt.Sprintf("_r%d", n.index)
	}
	variable.SetName(name)
	return name
}

func tagName(tag *string) string {
	if tag == nil {
		return ""
	}
	return strings.ReplaceAll(*tag, "-", "_")
}

func mustSlot(handle *ir_traits.SlotHandle) int {
	if handle == nil || handle.Slot == nil {
		panic("Expected a slot to be assigned")
	}
	return *handle.Slot
}

// normalizeStylePropName normalizes a style prop name by hyphenating it (unless its a CSS variable).
func normalizeStylePropName(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	return hyphenate(name)
}

// hyphenate converts camelCase to kebab-case
func hyphenate(value string) string {
	var result strings.Builder
	for i, r := range value {
		if i > 0 && unicode.IsLower(rune(value[i-1])) && unicode.IsUpper(r) {
			result.WriteRune('-')
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}
