package schema

import (
	"strings"

	"ngc-pipeline/packages/compiler/src/core"
)

// Case is insignificant below, all element and attribute names are lower-cased for lookup.
var securitySchema = buildSecuritySchema()

func buildSecuritySchema() map[string]core.SecurityContext {
	schema := make(map[string]core.SecurityContext)
	register := func(ctx core.SecurityContext, specs []string) {
		for _, spec := range specs {
			schema[strings.ToLower(spec)] = ctx
		}
	}

	register(core.SecurityContextHTML, []string{
		"iframe|srcdoc",
		"*|innerHTML",
		"*|outerHTML",
	})
	register(core.SecurityContextSTYLE, []string{"*|style"})
	// NB: no SCRIPT contexts here, they are never allowed due to the parser stripping them.
	register(core.SecurityContextURL, []string{
		"*|formAction",
		"area|href",
		"area|ping",
		"audio|src",
		"a|href",
		"a|ping",
		"blockquote|cite",
		"body|background",
		"del|cite",
		"form|action",
		"img|src",
		"input|src",
		"ins|cite",
		"q|cite",
		"source|src",
		"track|src",
		"video|poster",
		"video|src",
	})
	register(core.SecurityContextRESOURCE_URL, []string{
		"applet|code",
		"applet|codebase",
		"base|href",
		"embed|src",
		"frame|src",
		"head|profile",
		"html|manifest",
		"iframe|src",
		"link|href",
		"media|src",
		"object|codebase",
		"object|data",
		"script|src",
	})
	return schema
}

// SecurityContext returns the security context of a property (or attribute)
// on the given tag. The wildcard tag `*` matches any element.
func SecurityContext(tagName, propName string, isAttribute bool) core.SecurityContext {
	if isAttribute {
		// NB: for security purposes, use the mapped property name, not the attribute name.
		propName = attrToPropName(propName)
	}
	tagName = strings.ToLower(tagName)
	propName = strings.ToLower(propName)
	if ctx, ok := securitySchema[tagName+"|"+propName]; ok {
		return ctx
	}
	if ctx, ok := securitySchema["*|"+propName]; ok {
		return ctx
	}
	return core.SecurityContextNONE
}

// HostSecurityContexts returns every context a host property could need.
// A host element is not known statically, so all tags are considered.
func HostSecurityContexts(propName string) []core.SecurityContext {
	propName = strings.ToLower(propName)
	seen := make(map[core.SecurityContext]bool)
	var contexts []core.SecurityContext
	for _, ctx := range []core.SecurityContext{
		core.SecurityContextHTML,
		core.SecurityContextSTYLE,
		core.SecurityContextURL,
		core.SecurityContextRESOURCE_URL,
	} {
		for key, registered := range securitySchema {
			if registered != ctx || seen[ctx] {
				continue
			}
			if strings.HasSuffix(key, "|"+propName) {
				seen[ctx] = true
				contexts = append(contexts, ctx)
			}
		}
	}
	if len(contexts) == 0 {
		return []core.SecurityContext{core.SecurityContextNONE}
	}
	return contexts
}

var attrToProp = map[string]string{
	"class":      "className",
	"for":        "htmlFor",
	"formaction": "formAction",
	"innerhtml":  "innerHTML",
	"readonly":   "readOnly",
	"tabindex":   "tabIndex",
}

func attrToPropName(name string) string {
	if prop, ok := attrToProp[strings.ToLower(name)]; ok {
		return prop
	}
	return name
}

// IframeSecuritySensitiveAttrs is the set of security-sensitive attributes of an `<iframe>` that *must* be
// applied as a static attribute only. This ensures that all security-sensitive
// attributes are taken into account while creating an instance of an `<iframe>`
// at runtime.
//
// Note: avoid using this set directly, use the `IsIframeSecuritySensitiveAttr` function
// in the code instead.
var IframeSecuritySensitiveAttrs = map[string]bool{
	"sandbox":         true,
	"allow":           true,
	"allowfullscreen": true,
	"referrerpolicy":  true,
	"csp":             true,
	"fetchpriority":   true,
}

// IsIframeSecuritySensitiveAttr checks whether a given attribute name might represent a security-sensitive
// attribute of an <iframe>.
func IsIframeSecuritySensitiveAttr(attrName string) bool {
	// The `setAttribute` DOM API is case-insensitive, so we lowercase the value
	// before checking it against a known security-sensitive attributes.
	return IframeSecuritySensitiveAttrs[strings.ToLower(attrName)]
}
