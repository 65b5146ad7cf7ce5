package css

import (
	"fmt"
	"regexp"
	"strings"
)

// selectorGroup is the index of a capture group of selectorRegexp
type selectorGroup int

const (
	groupAll            selectorGroup = iota
	groupNot                          // ":not("
	groupTag                          // tag with its prefix
	groupPrefix                       // "." or "#"
	groupAttribute                    // attribute name
	groupValueDouble                  // double quoted attribute value
	groupValueSingle                  // single quoted attribute value
	groupValueUnquoted                // unquoted attribute value
	groupNotEnd                       // ")"
	groupSeparator                    // ","
)

// Go regexps have no backreferences, so each quote style gets its own group.
var selectorRegexp = regexp.MustCompile(
	`(\:not\()|` +
		`(([\.\#]?)[-\w]+)|` +
		`(?:\[([-.\w*\\$]+)(?:=(?:"([^"]*)"|'([^']*)'|([^\]\s]+)))?\])|` +
		`(\))|` +
		`(\s*,\s*)`,
)

// SelectorFlags mark the parts of a selector in its runtime array form
type SelectorFlags int

const (
	SelectorFlagsNot       SelectorFlags = 0b0001
	SelectorFlagsAttribute SelectorFlags = 0b0010
	SelectorFlagsElement   SelectorFlags = 0b0100
	SelectorFlagsClass     SelectorFlags = 0b1000
)

// CssSelector is one simple selector of a selector list, such as `div.a[b]:not(.c)`
type CssSelector struct {
	Element      *string
	ClassNames   []string
	Attrs        []string // Pairs: [name, value, name, value, ...]
	NotSelectors []*CssSelector
}

// NewCssSelector creates a new CssSelector
func NewCssSelector() *CssSelector {
	return &CssSelector{}
}

// ParseCssSelector parses a comma separated selector list
func ParseCssSelector(selector string) ([]*CssSelector, error) {
	var results []*CssSelector

	addResult := func(cssSel *CssSelector) {
		if len(cssSel.NotSelectors) > 0 && cssSel.Element == nil &&
			len(cssSel.ClassNames) == 0 && len(cssSel.Attrs) == 0 {
			cssSel.SetElement("*")
		}
		results = append(results, cssSel)
	}

	cssSelector := NewCssSelector()
	current := cssSelector
	inNot := false

	for _, match := range selectorRegexp.FindAllStringSubmatch(selector, -1) {
		if match[groupNot] != "" {
			if inNot {
				return nil, fmt.Errorf("nesting :not in a selector is not allowed")
			}
			inNot = true
			current = NewCssSelector()
			cssSelector.NotSelectors = append(cssSelector.NotSelectors, current)
		}

		if tag := match[groupTag]; tag != "" {
			switch match[groupPrefix] {
			case "#":
				current.AddAttribute("id", tag[1:])
			case ".":
				current.AddClassName(tag[1:])
			default:
				current.SetElement(tag)
			}
		}

		if attribute := match[groupAttribute]; attribute != "" {
			value := match[groupValueDouble]
			if value == "" {
				value = match[groupValueSingle]
			}
			if value == "" {
				value = match[groupValueUnquoted]
			}
			unescaped, err := unescapeAttribute(attribute)
			if err != nil {
				return nil, err
			}
			current.AddAttribute(unescaped, value)
		}

		if match[groupNotEnd] != "" {
			inNot = false
			current = cssSelector
		}

		if match[groupSeparator] != "" {
			if inNot {
				return nil, fmt.Errorf("multiple selectors in :not are not supported")
			}
			addResult(cssSelector)
			cssSelector = NewCssSelector()
			current = cssSelector
		}
	}

	addResult(cssSelector)
	return results, nil
}

// unescapeAttribute unescapes `\$` sequences of an attribute selector
func unescapeAttribute(attr string) (string, error) {
	var sb strings.Builder
	escaping := false
	for i := 0; i < len(attr); i++ {
		char := attr[i]
		if char == '\\' {
			escaping = true
			continue
		}
		if char == '$' && !escaping {
			return "", fmt.Errorf(`error in attribute selector "%s". unescaped "$" is not supported. please escape with "\$"`, attr)
		}
		escaping = false
		sb.WriteByte(char)
	}
	return sb.String(), nil
}

// SetElement sets the element name
func (cs *CssSelector) SetElement(element string) {
	cs.Element = &element
}

// AddAttribute adds an attribute, values are matched case-insensitively
func (cs *CssSelector) AddAttribute(name string, value string) {
	cs.Attrs = append(cs.Attrs, name, strings.ToLower(value))
}

// AddClassName adds a class name
func (cs *CssSelector) AddClassName(name string) {
	cs.ClassNames = append(cs.ClassNames, strings.ToLower(name))
}

// String returns the selector in CSS syntax
func (cs *CssSelector) String() string {
	var sb strings.Builder
	if cs.Element != nil {
		sb.WriteString(*cs.Element)
	}
	for _, klass := range cs.ClassNames {
		sb.WriteString("." + klass)
	}
	for i := 0; i+1 < len(cs.Attrs); i += 2 {
		name := strings.ReplaceAll(strings.ReplaceAll(cs.Attrs[i], `\`, `\\`), "$", `\$`)
		if value := cs.Attrs[i+1]; value != "" {
			fmt.Fprintf(&sb, "[%s=%s]", name, value)
		} else {
			fmt.Fprintf(&sb, "[%s]", name)
		}
	}
	for _, notSelector := range cs.NotSelectors {
		fmt.Fprintf(&sb, ":not(%s)", notSelector)
	}
	return sb.String()
}

// R3Selector is the runtime array form of a selector: strings interleaved with SelectorFlags
type R3Selector []interface{}

// ToR3Selector converts the selector to its runtime array form
func (cs *CssSelector) ToR3Selector() R3Selector {
	elementName := ""
	if cs.Element != nil && *cs.Element != "*" {
		elementName = *cs.Element
	}
	result := R3Selector{elementName}
	result = appendStrings(result, cs.Attrs)
	if len(cs.ClassNames) > 0 {
		result = append(result, int(SelectorFlagsClass))
		result = appendStrings(result, cs.ClassNames)
	}
	for _, notSelector := range cs.NotSelectors {
		result = append(result, notSelector.toNegativeR3Selector()...)
	}
	return result
}

func (cs *CssSelector) toNegativeR3Selector() R3Selector {
	var classes R3Selector
	if len(cs.ClassNames) > 0 {
		classes = append(R3Selector{int(SelectorFlagsClass)}, toInterfaces(cs.ClassNames)...)
	}
	switch {
	case cs.Element != nil:
		result := R3Selector{int(SelectorFlagsNot | SelectorFlagsElement), *cs.Element}
		return append(appendStrings(result, cs.Attrs), classes...)
	case len(cs.Attrs) > 0:
		result := R3Selector{int(SelectorFlagsNot | SelectorFlagsAttribute)}
		return append(appendStrings(result, cs.Attrs), classes...)
	case len(cs.ClassNames) > 0:
		return append(R3Selector{int(SelectorFlagsNot | SelectorFlagsClass)}, toInterfaces(cs.ClassNames)...)
	}
	return nil
}

// ParseSelectorToR3Selector parses a selector list into its runtime array form
func ParseSelectorToR3Selector(selector string) ([]R3Selector, error) {
	if selector == "" {
		return nil, nil
	}
	selectors, err := ParseCssSelector(selector)
	if err != nil {
		return nil, err
	}
	result := make([]R3Selector, len(selectors))
	for i, s := range selectors {
		result[i] = s.ToR3Selector()
	}
	return result, nil
}

func appendStrings(dst R3Selector, values []string) R3Selector {
	return append(dst, toInterfaces(values)...)
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
