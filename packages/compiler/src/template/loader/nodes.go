package loader

import (
	"gopkg.in/yaml.v3"

	"ngc-pipeline/packages/compiler/src/core"
	"ngc-pipeline/packages/compiler/src/i18n"
	"ngc-pipeline/packages/compiler/src/render3"
	"ngc-pipeline/packages/compiler/src/schema"
)

var nodeKinds = []string{"element", "template", "content", "text", "if", "switch", "for"}

var inputKinds = map[string]render3.BindingType{
	"property":         render3.BindingTypeProperty,
	"attribute":        render3.BindingTypeAttribute,
	"class":            render3.BindingTypeClass,
	"style":            render3.BindingTypeStyle,
	"legacy-animation": render3.BindingTypeLegacyAnimation,
	"two-way":          render3.BindingTypeTwoWay,
	"animation":        render3.BindingTypeAnimation,
}

var outputKinds = map[string]render3.ParsedEventType{
	"regular":          render3.ParsedEventTypeRegular,
	"legacy-animation": render3.ParsedEventTypeLegacyAnimation,
	"two-way":          render3.ParsedEventTypeTwoWay,
	"animation":        render3.ParsedEventTypeAnimation,
}

// decodeNodes decodes a list of template nodes
func decodeNodes(node *yaml.Node) ([]render3.Node, error) {
	items, err := sequence(node, "children")
	if err != nil {
		return nil, err
	}
	nodes := make([]render3.Node, 0, len(items))
	for _, item := range items {
		n, err := decodeNode(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func decodeNode(node *yaml.Node) (render3.Node, error) {
	// A bare string is static text.
	if node.Kind == yaml.ScalarNode {
		return render3.NewText(node.Value), nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, errorAt(node, "expected a template node")
	}

	var kind string
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		for _, k := range nodeKinds {
			if key != k {
				continue
			}
			if kind != "" {
				return nil, errorAt(node.Content[i], "node is both %s and %s", kind, key)
			}
			kind = key
		}
	}

	switch kind {
	case "element":
		return decodeElement(node)
	case "template":
		return decodeTemplate(node)
	case "content":
		return decodeContent(node)
	case "text":
		return decodeText(node)
	case "if":
		return decodeIf(node)
	case "switch":
		return decodeSwitch(node)
	case "for":
		return decodeFor(node)
	default:
		return nil, errorAt(node, "unknown node kind, expected one of %v", nodeKinds)
	}
}

func decodeElement(node *yaml.Node) (render3.Node, error) {
	fields, err := mappingFields(node, "element", "element", "attrs", "inputs", "outputs", "refs", "children", "i18n")
	if err != nil {
		return nil, err
	}
	tag, err := scalarString(fields["element"])
	if err != nil {
		return nil, err
	}
	element := render3.NewElement(tag, nil, nil, nil, nil, nil, nil)
	if err := decodeElementLike(fields, tag, &element.Attributes, &element.Inputs, &element.Outputs, &element.References); err != nil {
		return nil, err
	}
	if children, ok := fields["children"]; ok {
		if element.Children, err = decodeNodes(children); err != nil {
			return nil, err
		}
	}
	if meta, ok := fields["i18n"]; ok {
		if element.I18n, err = decodeTagI18n(meta, tag); err != nil {
			return nil, err
		}
	}
	return element, nil
}

func decodeTemplate(node *yaml.Node) (render3.Node, error) {
	fields, err := mappingFields(
		node, "template",
		"template", "structural", "attrs", "inputs", "outputs", "refs", "let", "children", "i18n",
	)
	if err != nil {
		return nil, err
	}
	tag, err := scalarString(fields["template"])
	if err != nil {
		return nil, err
	}
	tmpl := render3.NewTemplate(nil, nil, nil, nil, nil, nil, nil, nil)
	securityTag := "ng-template"
	if tag != "" && tag != "ng-template" {
		tmpl.TagName = &tag
		securityTag = tag
	}
	if err := decodeElementLike(fields, securityTag, &tmpl.Attributes, &tmpl.Inputs, &tmpl.Outputs, &tmpl.References); err != nil {
		return nil, err
	}

	if structural, ok := fields["structural"]; ok {
		items, err := sequence(structural, "structural")
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			attrFields, err := mappingFields(item, "structural attribute", "name", "value", "text")
			if err != nil {
				return nil, err
			}
			name, err := requiredString(item, attrFields, "name")
			if err != nil {
				return nil, err
			}
			if text, ok := attrFields["text"]; ok {
				tmpl.TemplateTextAttrs = append(tmpl.TemplateTextAttrs, render3.NewTextAttribute(name, text.Value, nil))
				continue
			}
			value, ok := attrFields["value"]
			if !ok {
				return nil, errorAt(item, "structural attribute %q needs a value or a text", name)
			}
			expr, err := decodeExpression(value)
			if err != nil {
				return nil, err
			}
			tmpl.TemplateAttrs = append(tmpl.TemplateAttrs, render3.NewBoundAttribute(
				name, render3.BindingTypeProperty, schema.SecurityContext(securityTag, name, false), expr, nil, nil,
			))
		}
	}

	if let, ok := fields["let"]; ok {
		pairs, err := mappingPairs(let, "let")
		if err != nil {
			return nil, err
		}
		for _, pair := range pairs {
			tmpl.Variables = append(tmpl.Variables, render3.NewVariable(pair[0].Value, pair[1].Value))
		}
	}
	if children, ok := fields["children"]; ok {
		if tmpl.Children, err = decodeNodes(children); err != nil {
			return nil, err
		}
	}
	if meta, ok := fields["i18n"]; ok {
		if tmpl.I18n, err = decodeTagI18n(meta, securityTag); err != nil {
			return nil, err
		}
	}
	return tmpl, nil
}

func decodeElementLike(
	fields map[string]*yaml.Node,
	tag string,
	attrs *[]*render3.TextAttribute,
	inputs *[]*render3.BoundAttribute,
	outputs *[]*render3.BoundEvent,
	refs *[]*render3.Reference,
) error {
	var err error
	if node, ok := fields["attrs"]; ok {
		if *attrs, err = decodeAttributes(node); err != nil {
			return err
		}
	}
	if node, ok := fields["inputs"]; ok {
		if *inputs, err = decodeInputs(node, tag); err != nil {
			return err
		}
	}
	if node, ok := fields["outputs"]; ok {
		if *outputs, err = decodeOutputs(node); err != nil {
			return err
		}
	}
	if node, ok := fields["refs"]; ok {
		pairs, err := mappingPairs(node, "refs")
		if err != nil {
			return err
		}
		for _, pair := range pairs {
			*refs = append(*refs, render3.NewReference(pair[0].Value, pair[1].Value))
		}
	}
	return nil
}

func decodeAttributes(node *yaml.Node) ([]*render3.TextAttribute, error) {
	pairs, err := mappingPairs(node, "attrs")
	if err != nil {
		return nil, err
	}
	attrs := make([]*render3.TextAttribute, 0, len(pairs))
	for _, pair := range pairs {
		value, err := scalarString(pair[1])
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, render3.NewTextAttribute(pair[0].Value, value, nil))
	}
	return attrs, nil
}

func decodeInputs(node *yaml.Node, tag string) ([]*render3.BoundAttribute, error) {
	items, err := sequence(node, "inputs")
	if err != nil {
		return nil, err
	}
	inputs := make([]*render3.BoundAttribute, 0, len(items))
	for _, item := range items {
		fields, err := mappingFields(item, "input", "name", "kind", "value", "unit")
		if err != nil {
			return nil, err
		}
		name, err := requiredString(item, fields, "name")
		if err != nil {
			return nil, err
		}
		bindingType := render3.BindingTypeProperty
		if kindNode, ok := fields["kind"]; ok {
			if bindingType, ok = inputKinds[kindNode.Value]; !ok {
				return nil, errorAt(kindNode, "unknown input kind %q", kindNode.Value)
			}
		}
		valueNode, ok := fields["value"]
		if !ok {
			return nil, errorAt(item, "input %q has no value", name)
		}
		value, err := decodeExpression(valueNode)
		if err != nil {
			return nil, err
		}
		unit, err := optionalString(fields, "unit")
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, render3.NewBoundAttribute(name, bindingType, inputSecurityContext(tag, name, bindingType), value, unit, nil))
	}
	return inputs, nil
}

func inputSecurityContext(tag, name string, bindingType render3.BindingType) core.SecurityContext {
	if tag == "" {
		return core.SecurityContextNONE
	}
	switch bindingType {
	case render3.BindingTypeProperty, render3.BindingTypeTwoWay:
		return schema.SecurityContext(tag, name, false)
	case render3.BindingTypeAttribute:
		return schema.SecurityContext(tag, name, true)
	case render3.BindingTypeStyle:
		return core.SecurityContextSTYLE
	default:
		return core.SecurityContextNONE
	}
}

func decodeOutputs(node *yaml.Node) ([]*render3.BoundEvent, error) {
	items, err := sequence(node, "outputs")
	if err != nil {
		return nil, err
	}
	outputs := make([]*render3.BoundEvent, 0, len(items))
	for _, item := range items {
		fields, err := mappingFields(item, "output", "name", "kind", "handler", "target", "phase")
		if err != nil {
			return nil, err
		}
		name, err := requiredString(item, fields, "name")
		if err != nil {
			return nil, err
		}
		eventType := render3.ParsedEventTypeRegular
		if kindNode, ok := fields["kind"]; ok {
			if eventType, ok = outputKinds[kindNode.Value]; !ok {
				return nil, errorAt(kindNode, "unknown output kind %q", kindNode.Value)
			}
		}
		handlerNode, ok := fields["handler"]
		if !ok {
			return nil, errorAt(item, "output %q has no handler", name)
		}
		handler, err := decodeExpression(handlerNode)
		if err != nil {
			return nil, err
		}
		target, err := optionalString(fields, "target")
		if err != nil {
			return nil, err
		}
		phase, err := optionalString(fields, "phase")
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, render3.NewBoundEvent(name, eventType, handler, target, phase))
	}
	return outputs, nil
}

func decodeContent(node *yaml.Node) (render3.Node, error) {
	fields, err := mappingFields(node, "content", "content", "attrs", "children", "i18n")
	if err != nil {
		return nil, err
	}
	selector, err := scalarString(fields["content"])
	if err != nil {
		return nil, err
	}
	if selector == "" {
		selector = "*"
	}
	content := render3.NewContent(selector, nil, nil, nil)
	if attrs, ok := fields["attrs"]; ok {
		if content.Attributes, err = decodeAttributes(attrs); err != nil {
			return nil, err
		}
	}
	if children, ok := fields["children"]; ok {
		if content.Children, err = decodeNodes(children); err != nil {
			return nil, err
		}
	}
	if meta, ok := fields["i18n"]; ok {
		placeholder, err := decodeTagI18n(meta, "ng-content")
		if err != nil {
			return nil, err
		}
		if _, isMessage := placeholder.(*i18n.Message); isMessage {
			return nil, errorAt(meta, "ng-content cannot start an i18n block")
		}
		content.I18n = placeholder
	}
	return content, nil
}

func decodeText(node *yaml.Node) (render3.Node, error) {
	fields, err := mappingFields(node, "text", "text", "parts", "exprs")
	if err != nil {
		return nil, err
	}
	value, err := scalarString(fields["text"])
	if err != nil {
		return nil, err
	}
	exprsNode, interpolated := fields["exprs"]
	if !interpolated {
		return render3.NewText(value), nil
	}

	partsNode, ok := fields["parts"]
	if !ok {
		return nil, errorAt(node, "interpolated text needs parts")
	}
	parts, err := stringList(partsNode)
	if err != nil {
		return nil, err
	}
	exprs, err := decodeExpressionList(exprsNode)
	if err != nil {
		return nil, err
	}
	if len(parts) != len(exprs)+1 {
		return nil, errorAt(partsNode, "interpolated text needs %d parts for %d expressions, got %d", len(exprs)+1, len(exprs), len(parts))
	}
	return render3.NewBoundText(newInterpolation(parts, exprs), nil), nil
}

func decodeIf(node *yaml.Node) (render3.Node, error) {
	fields, err := mappingFields(node, "if", "if")
	if err != nil {
		return nil, err
	}
	items, err := sequence(fields["if"], "if branches")
	if err != nil {
		return nil, err
	}
	block := render3.NewIfBlock(nil)
	for i, item := range items {
		branchFields, err := mappingFields(item, "if branch", "cond", "as", "children", "i18n")
		if err != nil {
			return nil, err
		}
		branch := render3.NewIfBlockBranch(nil, nil, nil, nil)
		if cond, ok := branchFields["cond"]; ok {
			if branch.Expression, err = decodeExpression(cond); err != nil {
				return nil, err
			}
		} else if i != len(items)-1 {
			return nil, errorAt(item, "only the last if branch may omit its condition")
		}
		if alias, ok := branchFields["as"]; ok {
			if branch.Expression == nil {
				return nil, errorAt(alias, "an else branch cannot have an alias")
			}
			branch.ExpressionAlias = render3.NewVariable(alias.Value, alias.Value)
		}
		if branch.Children, err = optionalChildren(branchFields); err != nil {
			return nil, err
		}
		if branch.I18n, err = optionalBlockI18n(branchFields, "if"); err != nil {
			return nil, err
		}
		block.Branches = append(block.Branches, branch)
	}
	return block, nil
}

func decodeSwitch(node *yaml.Node) (render3.Node, error) {
	fields, err := mappingFields(node, "switch", "switch", "cases")
	if err != nil {
		return nil, err
	}
	subject, err := decodeExpression(fields["switch"])
	if err != nil {
		return nil, err
	}
	block := render3.NewSwitchBlock(subject, nil)
	casesNode, ok := fields["cases"]
	if !ok {
		return block, nil
	}
	items, err := sequence(casesNode, "cases")
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		caseFields, err := mappingFields(item, "case", "case", "default", "children", "i18n")
		if err != nil {
			return nil, err
		}
		switchCase := render3.NewSwitchBlockCase(nil, nil, nil)
		caseNode, hasCase := caseFields["case"]
		_, isDefault := caseFields["default"]
		switch {
		case hasCase && isDefault:
			return nil, errorAt(item, "a case cannot also be the default")
		case hasCase:
			if switchCase.Expression, err = decodeExpression(caseNode); err != nil {
				return nil, err
			}
		case !isDefault:
			return nil, errorAt(item, "a case needs an expression or default")
		}
		if switchCase.Children, err = optionalChildren(caseFields); err != nil {
			return nil, err
		}
		if switchCase.I18n, err = optionalBlockI18n(caseFields, "case"); err != nil {
			return nil, err
		}
		block.Cases = append(block.Cases, switchCase)
	}
	return block, nil
}

func decodeFor(node *yaml.Node) (render3.Node, error) {
	fields, err := mappingFields(node, "for", "for", "children", "empty", "i18n")
	if err != nil {
		return nil, err
	}
	loop := fields["for"]
	loopFields, err := mappingFields(loop, "for loop", "item", "of", "track", "let")
	if err != nil {
		return nil, err
	}
	item, err := requiredString(loop, loopFields, "item")
	if err != nil {
		return nil, err
	}
	ofNode, ok := loopFields["of"]
	if !ok {
		return nil, errorAt(loop, "for loop has no collection")
	}
	collection, err := decodeExpression(ofNode)
	if err != nil {
		return nil, err
	}
	trackNode, ok := loopFields["track"]
	if !ok {
		return nil, errorAt(loop, "for loop has no track expression")
	}
	track, err := decodeExpression(trackNode)
	if err != nil {
		return nil, err
	}

	// Every implicit variable is available under its own name, plus any aliases.
	var contextVariables []*render3.Variable
	for _, name := range render3.ForLoopContextVariables {
		contextVariables = append(contextVariables, render3.NewVariable(name, name))
	}
	if let, ok := loopFields["let"]; ok {
		pairs, err := mappingPairs(let, "let")
		if err != nil {
			return nil, err
		}
		for _, pair := range pairs {
			if !isForLoopContextVariable(pair[1].Value) {
				return nil, errorAt(pair[1], "unknown loop variable %q", pair[1].Value)
			}
			contextVariables = append(contextVariables, render3.NewVariable(pair[0].Value, pair[1].Value))
		}
	}

	block := render3.NewForLoopBlock(render3.NewVariable(item, "$implicit"), collection, track, contextVariables, nil, nil, nil)
	if block.Children, err = optionalChildren(fields); err != nil {
		return nil, err
	}
	if empty, ok := fields["empty"]; ok {
		children, err := decodeNodes(empty)
		if err != nil {
			return nil, err
		}
		block.Empty = render3.NewForLoopBlockEmpty(children, nil)
	}
	if block.I18n, err = optionalBlockI18n(fields, "for"); err != nil {
		return nil, err
	}
	return block, nil
}

func isForLoopContextVariable(name string) bool {
	for _, v := range render3.ForLoopContextVariables {
		if v == name {
			return true
		}
	}
	return false
}

func optionalChildren(fields map[string]*yaml.Node) ([]render3.Node, error) {
	children, ok := fields["children"]
	if !ok {
		return nil, nil
	}
	return decodeNodes(children)
}

func requiredString(node *yaml.Node, fields map[string]*yaml.Node, key string) (string, error) {
	value, ok := fields[key]
	if !ok {
		return "", errorAt(node, "missing %s", key)
	}
	return scalarString(value)
}

// decodeTagI18n decodes the i18n metadata of an element or template: a message when the node
// starts an i18n block, a tag placeholder when it is nested in one.
func decodeTagI18n(node *yaml.Node, tag string) (render3.I18nMeta, error) {
	fields, err := mappingFields(node, "i18n", "message", "meaning", "description", "id", "placeholders", "start", "close")
	if err != nil {
		return nil, err
	}
	if _, ok := fields["message"]; ok {
		return decodeMessage(node, fields)
	}
	start, closeName, err := placeholderNames(node, fields)
	if err != nil {
		return nil, err
	}
	return i18n.NewTagPlaceholder(tag, start, closeName), nil
}

func optionalBlockI18n(fields map[string]*yaml.Node, name string) (render3.I18nMeta, error) {
	node, ok := fields["i18n"]
	if !ok {
		return nil, nil
	}
	placeholderFields, err := mappingFields(node, "i18n", "start", "close")
	if err != nil {
		return nil, err
	}
	start, closeName, err := placeholderNames(node, placeholderFields)
	if err != nil {
		return nil, err
	}
	return i18n.NewBlockPlaceholder(name, start, closeName), nil
}

func placeholderNames(node *yaml.Node, fields map[string]*yaml.Node) (string, string, error) {
	start, err := requiredString(node, fields, "start")
	if err != nil {
		return "", "", err
	}
	closeName, err := requiredString(node, fields, "close")
	if err != nil {
		return "", "", err
	}
	return start, closeName, nil
}

func decodeMessage(node *yaml.Node, fields map[string]*yaml.Node) (*i18n.Message, error) {
	if _, ok := fields["start"]; ok {
		return nil, errorAt(node, "an i18n message cannot also be a placeholder")
	}
	text, err := requiredString(node, fields, "message")
	if err != nil {
		return nil, err
	}
	var meaning, description, id string
	for key, target := range map[string]*string{"meaning": &meaning, "description": &description, "id": &id} {
		value, err := optionalString(fields, key)
		if err != nil {
			return nil, err
		}
		if value != nil {
			*target = *value
		}
	}
	var placeholders []string
	if node, ok := fields["placeholders"]; ok {
		if placeholders, err = stringList(node); err != nil {
			return nil, err
		}
	}
	return i18n.NewMessage(text, meaning, description, id, placeholders), nil
}
