package r3_identifiers

import (
	"ngc-pipeline/packages/compiler/src/output"
)

// CORE is the module every runtime instruction is imported from
var CORE = "@angular/core"

func core(name string) output.ExternalReference {
	return output.ExternalReference{ModuleName: CORE, Name: name}
}

// Creation instructions
var (
	Element               = core("ɵɵelement")
	ElementStart          = core("ɵɵelementStart")
	ElementEnd            = core("ɵɵelementEnd")
	ElementContainer      = core("ɵɵelementContainer")
	ElementContainerStart = core("ɵɵelementContainerStart")
	ElementContainerEnd   = core("ɵɵelementContainerEnd")
	TemplateCreate        = core("ɵɵtemplate")
	Text                  = core("ɵɵtext")
	Listener              = core("ɵɵlistener")
	TwoWayListener        = core("ɵɵtwoWayListener")
	Pipe                  = core("ɵɵpipe")
	Projection            = core("ɵɵprojection")
	ProjectionDef         = core("ɵɵprojectionDef")
	I18nStart             = core("ɵɵi18nStart")
	I18nEnd               = core("ɵɵi18nEnd")
	I18nExp               = core("ɵɵi18nExp")
	I18nApply             = core("ɵɵi18nApply")
	DisableBindings       = core("ɵɵdisableBindings")
	EnableBindings        = core("ɵɵenableBindings")

	ConditionalCreate       = core("ɵɵconditionalCreate")
	ConditionalBranchCreate = core("ɵɵconditionalBranchCreate")
	RepeaterCreate          = core("ɵɵrepeaterCreate")
	RepeaterTrackByIndex    = core("ɵɵrepeaterTrackByIndex")
	RepeaterTrackByIdentity = core("ɵɵrepeaterTrackByIdentity")
	ComponentInstance       = core("ɵɵcomponentInstance")

	SyntheticHostListener = core("ɵɵsyntheticHostListener")
	TemplateRefExtractor  = core("ɵɵtemplateRefExtractor")

	AnimationEnter         = core("ɵɵanimateEnter")
	AnimationLeave         = core("ɵɵanimateLeave")
	AnimationEnterListener = core("ɵɵanimateEnterListener")
	AnimationLeaveListener = core("ɵɵanimateLeaveListener")
)

// DOM-only creation instructions, used when no directives can match
var (
	DomElement               = core("ɵɵdomElement")
	DomElementStart          = core("ɵɵdomElementStart")
	DomElementEnd            = core("ɵɵdomElementEnd")
	DomElementContainer      = core("ɵɵdomElementContainer")
	DomElementContainerStart = core("ɵɵdomElementContainerStart")
	DomElementContainerEnd   = core("ɵɵdomElementContainerEnd")
	DomTemplate              = core("ɵɵdomTemplate")
	DomListener              = core("ɵɵdomListener")
)

// Update instructions
var (
	Advance        = core("ɵɵadvance")
	Property       = core("ɵɵproperty")
	TwoWayProperty = core("ɵɵtwoWayProperty")
	Attribute      = core("ɵɵattribute")
	StyleProp      = core("ɵɵstyleProp")
	ClassProp      = core("ɵɵclassProp")
	StyleMap       = core("ɵɵstyleMap")
	ClassMap       = core("ɵɵclassMap")
	DomProperty    = core("ɵɵdomProperty")
	Control        = core("ɵɵcontrol")
	Conditional    = core("ɵɵconditional")
	Repeater       = core("ɵɵrepeater")

	SyntheticHostProperty = core("ɵɵsyntheticHostProperty")

	TextInterpolate  = core("ɵɵtextInterpolate")
	TextInterpolate1 = core("ɵɵtextInterpolate1")
	TextInterpolate2 = core("ɵɵtextInterpolate2")
	TextInterpolate3 = core("ɵɵtextInterpolate3")
	TextInterpolate4 = core("ɵɵtextInterpolate4")
	TextInterpolate5 = core("ɵɵtextInterpolate5")
	TextInterpolate6 = core("ɵɵtextInterpolate6")
	TextInterpolate7 = core("ɵɵtextInterpolate7")
	TextInterpolate8 = core("ɵɵtextInterpolate8")
	TextInterpolateV = core("ɵɵtextInterpolateV")

	Interpolate  = core("ɵɵinterpolate")
	Interpolate1 = core("ɵɵinterpolate1")
	Interpolate2 = core("ɵɵinterpolate2")
	Interpolate3 = core("ɵɵinterpolate3")
	Interpolate4 = core("ɵɵinterpolate4")
	Interpolate5 = core("ɵɵinterpolate5")
	Interpolate6 = core("ɵɵinterpolate6")
	Interpolate7 = core("ɵɵinterpolate7")
	Interpolate8 = core("ɵɵinterpolate8")
	InterpolateV = core("ɵɵinterpolateV")
)

// Expression-level instructions
var (
	NextContext      = core("ɵɵnextContext")
	Reference        = core("ɵɵreference")
	GetCurrentView   = core("ɵɵgetCurrentView")
	RestoreView      = core("ɵɵrestoreView")
	ResetView        = core("ɵɵresetView")
	TwoWayBindingSet = core("ɵɵtwoWayBindingSet")

	PureFunction0 = core("ɵɵpureFunction0")
	PureFunction1 = core("ɵɵpureFunction1")
	PureFunction2 = core("ɵɵpureFunction2")
	PureFunction3 = core("ɵɵpureFunction3")
	PureFunction4 = core("ɵɵpureFunction4")
	PureFunction5 = core("ɵɵpureFunction5")
	PureFunction6 = core("ɵɵpureFunction6")
	PureFunction7 = core("ɵɵpureFunction7")
	PureFunction8 = core("ɵɵpureFunction8")
	PureFunctionV = core("ɵɵpureFunctionV")

	PipeBind1 = core("ɵɵpipeBind1")
	PipeBind2 = core("ɵɵpipeBind2")
	PipeBind3 = core("ɵɵpipeBind3")
	PipeBind4 = core("ɵɵpipeBind4")
	PipeBindV = core("ɵɵpipeBindV")
)

// Sanitization
var (
	SanitizeHtml             = core("ɵɵsanitizeHtml")
	SanitizeStyle            = core("ɵɵsanitizeStyle")
	SanitizeResourceUrl      = core("ɵɵsanitizeResourceUrl")
	SanitizeScript           = core("ɵɵsanitizeScript")
	SanitizeUrl              = core("ɵɵsanitizeUrl")
	SanitizeUrlOrResourceUrl = core("ɵɵsanitizeUrlOrResourceUrl")
	TrustConstantHtml        = core("ɵɵtrustConstantHtml")
	TrustConstantResourceUrl = core("ɵɵtrustConstantResourceUrl")
	ValidateIframeAttribute  = core("ɵɵvalidateIframeAttribute")
)

// Global event targets of listeners such as `(window:resize)`
var (
	ResolveWindow   = core("ɵɵresolveWindow")
	ResolveDocument = core("ɵɵresolveDocument")
	ResolveBody     = core("ɵɵresolveBody")
)
