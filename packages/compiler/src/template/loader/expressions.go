package loader

import (
	"gopkg.in/yaml.v3"

	"ngc-pipeline/packages/compiler/src/expression_parser"
)

var unaryOperators = map[string]string{"neg": "-", "plus": "+"}

// decodeExpression decodes an expression node. Nodes are one-key mappings, or scalars: a bare
// identifier reads from the implicit receiver and other scalars are literals.
func decodeExpression(node *yaml.Node) (expression_parser.AST, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return decodeScalarExpression(node)
	case yaml.MappingNode:
	default:
		return nil, errorAt(node, "expected an expression")
	}
	if len(node.Content) == 0 {
		return nil, errorAt(node, "empty expression")
	}

	kind, value := expressionKind(node)
	switch kind {
	case "prop":
		name, err := scalarString(value)
		if err != nil {
			return nil, err
		}
		if err := singleKey(node); err != nil {
			return nil, err
		}
		return expression_parser.NewPropertyRead(expression_parser.NewImplicitReceiver(), name), nil

	case "read", "safe-read":
		fields, err := mappingFields(node, kind, kind, "of")
		if err != nil {
			return nil, err
		}
		name, err := scalarString(value)
		if err != nil {
			return nil, err
		}
		receiver, err := receiverOf(fields)
		if err != nil {
			return nil, err
		}
		if kind == "safe-read" {
			return expression_parser.NewSafePropertyRead(receiver, name), nil
		}
		return expression_parser.NewPropertyRead(receiver, name), nil

	case "key", "safe-key":
		fields, err := mappingFields(node, kind, kind, "of")
		if err != nil {
			return nil, err
		}
		key, err := decodeExpression(value)
		if err != nil {
			return nil, err
		}
		ofNode, ok := fields["of"]
		if !ok {
			return nil, errorAt(node, "%s needs a receiver", kind)
		}
		receiver, err := decodeExpression(ofNode)
		if err != nil {
			return nil, err
		}
		if kind == "safe-key" {
			return expression_parser.NewSafeKeyedRead(receiver, key), nil
		}
		return expression_parser.NewKeyedRead(receiver, key), nil

	case "call", "safe-call":
		fields, err := mappingFields(node, kind, kind, "args", "of")
		if err != nil {
			return nil, err
		}
		name, err := scalarString(value)
		if err != nil {
			return nil, err
		}
		receiver, err := receiverOf(fields)
		if err != nil {
			return nil, err
		}
		var args []expression_parser.AST
		if argsNode, ok := fields["args"]; ok {
			if args, err = decodeExpressionList(argsNode); err != nil {
				return nil, err
			}
		}
		callee := expression_parser.NewPropertyRead(receiver, name)
		if kind == "safe-call" {
			return expression_parser.NewSafeCall(callee, args), nil
		}
		return expression_parser.NewCall(callee, args), nil

	case "lit":
		if err := singleKey(node); err != nil {
			return nil, err
		}
		return decodeLiteral(value)

	case "array":
		if err := singleKey(node); err != nil {
			return nil, err
		}
		entries, err := decodeExpressionList(value)
		if err != nil {
			return nil, err
		}
		return expression_parser.NewLiteralArray(entries), nil

	case "map":
		if err := singleKey(node); err != nil {
			return nil, err
		}
		pairs, err := mappingPairs(value, "map")
		if err != nil {
			return nil, err
		}
		keys := make([]expression_parser.LiteralMapKey, 0, len(pairs))
		values := make([]expression_parser.AST, 0, len(pairs))
		for _, pair := range pairs {
			v, err := decodeExpression(pair[1])
			if err != nil {
				return nil, err
			}
			keys = append(keys, expression_parser.LiteralMapKey{Key: pair[0].Value, Quoted: !isIdentifier(pair[0].Value)})
			values = append(values, v)
		}
		return expression_parser.NewLiteralMap(keys, values), nil

	case "binary":
		if err := singleKey(node); err != nil {
			return nil, err
		}
		fields, err := mappingFields(value, "binary", "op", "left", "right")
		if err != nil {
			return nil, err
		}
		op, err := requiredString(value, fields, "op")
		if err != nil {
			return nil, err
		}
		left, right, err := operands(value, fields, "left", "right")
		if err != nil {
			return nil, err
		}
		return expression_parser.NewBinary(op, left, right), nil

	case "assign":
		if err := singleKey(node); err != nil {
			return nil, err
		}
		fields, err := mappingFields(value, "assign", "target", "value")
		if err != nil {
			return nil, err
		}
		target, assigned, err := operands(value, fields, "target", "value")
		if err != nil {
			return nil, err
		}
		return expression_parser.NewBinary("=", target, assigned), nil

	case "not", "neg", "plus", "typeof":
		if err := singleKey(node); err != nil {
			return nil, err
		}
		operand, err := decodeExpression(value)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "not":
			return expression_parser.NewPrefixNot(operand), nil
		case "typeof":
			return expression_parser.NewTypeofExpression(operand), nil
		default:
			return expression_parser.NewUnary(unaryOperators[kind], operand), nil
		}

	case "cond":
		if err := singleKey(node); err != nil {
			return nil, err
		}
		fields, err := mappingFields(value, "cond", "if", "then", "else")
		if err != nil {
			return nil, err
		}
		condition, err := requiredExpression(value, fields, "if")
		if err != nil {
			return nil, err
		}
		trueExp, falseExp, err := operands(value, fields, "then", "else")
		if err != nil {
			return nil, err
		}
		return expression_parser.NewConditional(condition, trueExp, falseExp), nil

	case "pipe":
		if err := singleKey(node); err != nil {
			return nil, err
		}
		fields, err := mappingFields(value, "pipe", "name", "input", "args")
		if err != nil {
			return nil, err
		}
		name, err := requiredString(value, fields, "name")
		if err != nil {
			return nil, err
		}
		input, err := requiredExpression(value, fields, "input")
		if err != nil {
			return nil, err
		}
		var args []expression_parser.AST
		if argsNode, ok := fields["args"]; ok {
			if args, err = decodeExpressionList(argsNode); err != nil {
				return nil, err
			}
		}
		return expression_parser.NewBindingPipe(input, name, args), nil

	case "interpolate":
		if err := singleKey(node); err != nil {
			return nil, err
		}
		fields, err := mappingFields(value, "interpolate", "parts", "exprs")
		if err != nil {
			return nil, err
		}
		partsNode, ok := fields["parts"]
		if !ok {
			return nil, errorAt(value, "interpolation needs parts")
		}
		parts, err := stringList(partsNode)
		if err != nil {
			return nil, err
		}
		var exprs []expression_parser.AST
		if exprsNode, ok := fields["exprs"]; ok {
			if exprs, err = decodeExpressionList(exprsNode); err != nil {
				return nil, err
			}
		}
		if len(parts) != len(exprs)+1 {
			return nil, errorAt(partsNode, "interpolation needs %d parts for %d expressions, got %d", len(exprs)+1, len(exprs), len(parts))
		}
		return newInterpolation(parts, exprs), nil

	case "this":
		if err := singleKey(node); err != nil {
			return nil, err
		}
		return expression_parser.NewThisReceiver(), nil

	default:
		return nil, errorAt(node, "unknown expression kind %q", kind)
	}
}

func decodeScalarExpression(node *yaml.Node) (expression_parser.AST, error) {
	if node.Tag == "!!str" && node.Style == 0 {
		if !isIdentifier(node.Value) {
			return nil, errorAt(node, "%q is not an identifier, use lit for string literals", node.Value)
		}
		return expression_parser.NewPropertyRead(expression_parser.NewImplicitReceiver(), node.Value), nil
	}
	return decodeLiteral(node)
}

func decodeLiteral(node *yaml.Node) (expression_parser.AST, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, errorAt(node, "expected a literal")
	}
	switch node.Tag {
	case "!!null":
		return expression_parser.NewLiteralPrimitive(nil), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, errorAt(node, "bad boolean: %v", err)
		}
		return expression_parser.NewLiteralPrimitive(b), nil
	case "!!int":
		var i int
		if err := node.Decode(&i); err != nil {
			return nil, errorAt(node, "bad integer: %v", err)
		}
		return expression_parser.NewLiteralPrimitive(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, errorAt(node, "bad number: %v", err)
		}
		return expression_parser.NewLiteralPrimitive(f), nil
	default:
		return expression_parser.NewLiteralPrimitive(node.Value), nil
	}
}

func decodeExpressionList(node *yaml.Node) ([]expression_parser.AST, error) {
	items, err := sequence(node, "expressions")
	if err != nil {
		return nil, err
	}
	exprs := make([]expression_parser.AST, len(items))
	for i, item := range items {
		if exprs[i], err = decodeExpression(item); err != nil {
			return nil, err
		}
	}
	return exprs, nil
}

func newInterpolation(parts []string, exprs []expression_parser.AST) *expression_parser.Interpolation {
	return expression_parser.NewInterpolation(parts, exprs)
}

// receiverOf returns the `of` receiver of a read or call, the implicit receiver by default
func receiverOf(fields map[string]*yaml.Node) (expression_parser.AST, error) {
	ofNode, ok := fields["of"]
	if !ok {
		return expression_parser.NewImplicitReceiver(), nil
	}
	return decodeExpression(ofNode)
}

func requiredExpression(node *yaml.Node, fields map[string]*yaml.Node, key string) (expression_parser.AST, error) {
	value, ok := fields[key]
	if !ok {
		return nil, errorAt(node, "missing %s", key)
	}
	return decodeExpression(value)
}

func operands(node *yaml.Node, fields map[string]*yaml.Node, first, second string) (expression_parser.AST, expression_parser.AST, error) {
	a, err := requiredExpression(node, fields, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := requiredExpression(node, fields, second)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// expressionKind returns the key naming the kind of an expression mapping, and its value.
// The `of` and `args` keys only qualify the kind.
func expressionKind(node *yaml.Node) (string, *yaml.Node) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if key := node.Content[i].Value; key != "of" && key != "args" {
			return key, node.Content[i+1]
		}
	}
	return node.Content[0].Value, node.Content[1]
}

func singleKey(node *yaml.Node) error {
	if len(node.Content) != 2 {
		kind, _ := expressionKind(node)
		return errorAt(node, "unexpected keys in %s expression", kind)
	}
	return nil
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		isLetter := c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !isLetter && (i == 0 || c < '0' || c > '9') {
			return false
		}
	}
	return true
}
