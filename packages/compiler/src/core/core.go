package core

// SecurityContext represents the security context for sanitization
type SecurityContext int

const (
	SecurityContextNONE SecurityContext = iota
	SecurityContextHTML
	SecurityContextSTYLE
	SecurityContextSCRIPT
	SecurityContextURL
	SecurityContextRESOURCE_URL
)

var securityContextNames = map[SecurityContext]string{
	SecurityContextNONE:         "NONE",
	SecurityContextHTML:         "HTML",
	SecurityContextSTYLE:        "STYLE",
	SecurityContextSCRIPT:       "SCRIPT",
	SecurityContextURL:          "URL",
	SecurityContextRESOURCE_URL: "RESOURCE_URL",
}

func (s SecurityContext) String() string {
	if name, ok := securityContextNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// AttributeMarker is a marker value in an element's attribute array that
// changes how the entries after it are interpreted
type AttributeMarker int

const (
	AttributeMarkerNamespaceURI AttributeMarker = iota
	AttributeMarkerClasses
	AttributeMarkerStyles
	AttributeMarkerBindings
	AttributeMarkerTemplate
	AttributeMarkerProjectAs
	AttributeMarkerI18n
)

// RenderFlags are the flags a template function is called with
type RenderFlags int

const (
	RenderFlagsCreate RenderFlags = 1
	RenderFlagsUpdate RenderFlags = 2
)
