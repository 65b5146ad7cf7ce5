package schema

import "strings"

const ariaPrefix = "aria-"

// IsAriaAttribute reports whether name is an ARIA attribute such as `aria-label`
func IsAriaAttribute(name string) bool {
	return strings.HasPrefix(name, ariaPrefix) && len(name) > len(ariaPrefix)
}
