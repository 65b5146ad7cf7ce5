package phases

import (
	"fmt"

	"ngc-pipeline/packages/compiler/src/core"
	"ngc-pipeline/packages/compiler/src/css"
	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"

	"ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
	pipeline_convension "ngc-pipeline/packages/compiler/src/template/pipeline/src/convension"
)

// CollectElementConsts converts the semantic attributes of element-like operations (elements, templates) into constant
// array expressions, and lifts them into the overall component `consts`.
func CollectElementConsts(job compilation.Job) {
	// Collect all extracted attributes.
	allElementAttributes := make(map[ir_operation.XrefId]*ElementAttributes)
	for _, unit := range job.Units() {
		for op := range unit.GetCreate().All() {
			extractedAttrOp, ok := op.(*ops_create.ExtractedAttributeOp)
			if !ok {
				continue
			}
			attributes, exists := allElementAttributes[extractedAttrOp.Target]
			if !exists {
				attributes = NewElementAttributes()
				allElementAttributes[extractedAttrOp.Target] = attributes
			}
			attributes.Add(
				extractedAttrOp.BindingKind,
				extractedAttrOp.Name,
				extractedAttrOp.Expression,
				extractedAttrOp.Namespace,
				extractedAttrOp.TrustedValueFn,
			)
			unit.GetCreate().Remove(op)
		}
	}

	switch j := job.(type) {
	case *compilation.ComponentCompilationJob:
		for _, unit := range j.Views() {
			for op := range unit.Create.All() {
				switch o := op.(type) {
				case *ops_create.ProjectionOp:
					if attributes, exists := allElementAttributes[o.Xref]; exists {
						if attrArray := serializeAttributes(attributes); len(attrArray.Entries) > 0 {
							o.Attributes = attrArray
						}
					}
				case *ops_create.RepeaterCreateOp:
					o.Attributes = getConstIndex(j, allElementAttributes, o.Xref)
					// The empty view of a `@for` has its own attributes.
					if o.EmptyView != nil {
						o.EmptyAttributes = getConstIndex(j, allElementAttributes, *o.EmptyView)
					}
				case ops_create.ElementOrContainerOp:
					o.GetElementOrContainerBase().Attributes = getConstIndex(j, allElementAttributes, o.GetXref())
				}
			}
		}
	case *compilation.HostBindingCompilationJob:
		hostUnit := j.HostUnit()
		for xref, attributes := range allElementAttributes {
			if xref != hostUnit.Xref {
				panic("An attribute would be const collected into the host binding's template function, but is not associated with the root xref.")
			}
			if attrArray := serializeAttributes(attributes); len(attrArray.Entries) > 0 {
				hostUnit.Attributes = attrArray
			}
		}
	}
}

func getConstIndex(
	job *compilation.ComponentCompilationJob,
	allElementAttributes map[ir_operation.XrefId]*ElementAttributes,
	xref ir_operation.XrefId,
) *ir_operation.ConstIndex {
	attributes, exists := allElementAttributes[xref]
	if !exists {
		return nil
	}
	attrArray := serializeAttributes(attributes)
	if len(attrArray.Entries) == 0 {
		return nil
	}
	index := job.AddConst(attrArray, nil)
	return &index
}

// ElementAttributes is a container for all of the various kinds of attributes which are applied on an element.
type ElementAttributes struct {
	known            map[ir.BindingKind]map[string]bool
	byKind           map[ir.BindingKind][]output.OutputExpression
	propertyBindings []output.OutputExpression
	projectAs        *string
}

// NewElementAttributes creates a new ElementAttributes
func NewElementAttributes() *ElementAttributes {
	return &ElementAttributes{
		known:  make(map[ir.BindingKind]map[string]bool),
		byKind: make(map[ir.BindingKind][]output.OutputExpression),
	}
}

// GetAttributes returns the attributes array
func (e *ElementAttributes) GetAttributes() []output.OutputExpression {
	return e.byKind[ir.BindingKindAttribute]
}

// GetClasses returns the classes array
func (e *ElementAttributes) GetClasses() []output.OutputExpression {
	return e.byKind[ir.BindingKindClassName]
}

// GetStyles returns the styles array
func (e *ElementAttributes) GetStyles() []output.OutputExpression {
	return e.byKind[ir.BindingKindStyleProperty]
}

// GetBindings returns the bindings array
func (e *ElementAttributes) GetBindings() []output.OutputExpression {
	return e.propertyBindings
}

// GetTemplate returns the template array
func (e *ElementAttributes) GetTemplate() []output.OutputExpression {
	return e.byKind[ir.BindingKindTemplate]
}

// GetI18n returns the i18n array
func (e *ElementAttributes) GetI18n() []output.OutputExpression {
	return e.byKind[ir.BindingKindI18n]
}

// isKnown reports whether a binding kind and name combination was already added, and records it
func (e *ElementAttributes) isKnown(kind ir.BindingKind, name string) bool {
	if kind == ir.BindingKindTwoWayProperty {
		kind = ir.BindingKindProperty
	}
	nameToValue, exists := e.known[kind]
	if !exists {
		nameToValue = make(map[string]bool)
		e.known[kind] = nameToValue
	}
	if nameToValue[name] {
		return true
	}
	nameToValue[name] = true
	return false
}

// Add adds an attribute to the ElementAttributes. Only the first value for a given kind and name is kept.
func (e *ElementAttributes) Add(
	kind ir.BindingKind,
	name string,
	value output.OutputExpression,
	namespace *string,
	trustedValueFn output.OutputExpression,
) {
	if e.isKnown(kind, name) {
		return
	}

	if name == "ngProjectAs" {
		literal, ok := value.(*output.LiteralExpr)
		if !ok {
			panic("ngProjectAs must have a string literal value")
		}
		projectAs, ok := literal.Value.(string)
		if !ok {
			panic("ngProjectAs must have a string literal value")
		}
		e.projectAs = &projectAs
	}

	entries := getAttributeNameLiterals(namespace, name)
	if kind == ir.BindingKindAttribute || kind == ir.BindingKindStyleProperty {
		if value == nil {
			panic("Attribute, i18n attribute, & style element attributes must have a value")
		}
		if trustedValueFn != nil {
			if !expression.IsStringLiteral(value) {
				panic("AssertionError: extracted attribute value should be string literal")
			}
			value = output.NewTaggedTemplateExpr(trustedValueFn, value.(*output.LiteralExpr).Value.(string))
		}
		entries = append(entries, value)
	}

	switch kind {
	case ir.BindingKindProperty, ir.BindingKindTwoWayProperty:
		e.propertyBindings = append(e.propertyBindings, entries...)
	default:
		e.byKind[kind] = append(e.byKind[kind], entries...)
	}
}

// getAttributeNameLiterals gets an array of literal expressions representing the attribute's namespaced name.
func getAttributeNameLiterals(namespace *string, name string) []output.OutputExpression {
	nameLiteral := output.NewLiteralExpr(name)
	if namespace != nil && *namespace != "" {
		return []output.OutputExpression{
			output.NewLiteralExpr(int(core.AttributeMarkerNamespaceURI)),
			output.NewLiteralExpr(*namespace),
			nameLiteral,
		}
	}
	return []output.OutputExpression{nameLiteral}
}

// serializeAttributes serializes an ElementAttributes object into an array expression.
func serializeAttributes(attrs *ElementAttributes) *output.LiteralArrayExpr {
	attrArray := append([]output.OutputExpression(nil), attrs.GetAttributes()...)

	if attrs.projectAs != nil {
		// Only the first selector is used, ngProjectAs does not support selector lists.
		parsed, err := css.ParseSelectorToR3Selector(*attrs.projectAs)
		if err != nil {
			panic(fmt.Sprintf("invalid ngProjectAs selector %q: %v", *attrs.projectAs, err))
		}
		if len(parsed) > 0 {
			attrArray = append(attrArray,
				output.NewLiteralExpr(int(core.AttributeMarkerProjectAs)),
				pipeline_convension.LiteralOrArrayLiteral([]interface{}(parsed[0])),
			)
		}
	}

	sections := []struct {
		marker  core.AttributeMarker
		entries []output.OutputExpression
	}{
		{core.AttributeMarkerClasses, attrs.GetClasses()},
		{core.AttributeMarkerStyles, attrs.GetStyles()},
		{core.AttributeMarkerBindings, attrs.GetBindings()},
		{core.AttributeMarkerTemplate, attrs.GetTemplate()},
		{core.AttributeMarkerI18n, attrs.GetI18n()},
	}
	for _, section := range sections {
		if len(section.entries) == 0 {
			continue
		}
		attrArray = append(attrArray, output.NewLiteralExpr(int(section.marker)))
		attrArray = append(attrArray, section.entries...)
	}
	return output.NewLiteralArrayExpr(attrArray)
}
