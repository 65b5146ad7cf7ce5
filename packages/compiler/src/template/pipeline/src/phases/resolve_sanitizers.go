package phases

import (
	"slices"
	"strings"

	"ngc-pipeline/packages/compiler/src/core"
	"ngc-pipeline/packages/compiler/src/output"
	r3_identifiers "ngc-pipeline/packages/compiler/src/render3/r3_identifiers"
	"ngc-pipeline/packages/compiler/src/schema"
	ir_operations "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_host "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/host"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"

	compilation "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// sanitizerFns maps security contexts to their sanitizer function
var sanitizerFns = map[core.SecurityContext]output.ExternalReference{
	core.SecurityContextHTML:         r3_identifiers.SanitizeHtml,
	core.SecurityContextRESOURCE_URL: r3_identifiers.SanitizeResourceUrl,
	core.SecurityContextSCRIPT:       r3_identifiers.SanitizeScript,
	core.SecurityContextSTYLE:        r3_identifiers.SanitizeStyle,
	core.SecurityContextURL:          r3_identifiers.SanitizeUrl,
}

// trustedValueFns maps security contexts to their trusted value function
var trustedValueFns = map[core.SecurityContext]output.ExternalReference{
	core.SecurityContextHTML:         r3_identifiers.TrustConstantHtml,
	core.SecurityContextRESOURCE_URL: r3_identifiers.TrustConstantResourceUrl,
}

// ResolveSanitizers resolves sanitization functions for ops that need them.
func ResolveSanitizers(job compilation.Job) {
	isHost := job.Base().Kind == compilation.CompilationJobKindHost

	iframes := make(map[ir_operations.XrefId]bool)
	for _, unit := range job.Units() {
		for op := range unit.GetCreate().All() {
			switch o := op.(type) {
			case *ops_create.ElementStartOp:
				iframes[o.Xref] = strings.EqualFold(o.Tag, "iframe")
			case *ops_create.ElementOp:
				iframes[o.Xref] = strings.EqualFold(o.Tag, "iframe")
			}
		}
	}

	for _, unit := range job.Units() {
		// For normal element bindings we create trusted values for security sensitive constant
		// attributes. Host bindings skip this step.
		if !isHost {
			for op := range unit.GetCreate().All() {
				extractedAttr, ok := op.(*ops_create.ExtractedAttributeOp)
				if !ok {
					continue
				}
				extractedAttr.TrustedValueFn = nil
				if fn, ok := trustedValueFns[getOnlySecurityContext(extractedAttr.SecurityContext)]; ok {
					extractedAttr.TrustedValueFn = output.NewExternalExpr(fn)
				}
			}
		}

		for op := range unit.GetUpdate().All() {
			var (
				name            string
				securityContext []core.SecurityContext
				sanitizer       *output.OutputExpression
				isIframe        bool
			)
			switch o := op.(type) {
			case *ops_update.PropertyOp:
				name, securityContext, sanitizer, isIframe = o.Name, o.SecurityContext, &o.Sanitizer, iframes[o.Target]
			case *ops_update.TwoWayPropertyOp:
				name, securityContext, sanitizer, isIframe = o.Name, o.SecurityContext, &o.Sanitizer, iframes[o.Target]
			case *ops_update.AttributeOp:
				name, securityContext, sanitizer, isIframe = o.Name, o.SecurityContext, &o.Sanitizer, iframes[o.Target]
			case *ops_host.DomPropertyOp:
				// The element a host binding lands on is unknown, so it is assumed to be an
				// <iframe> and validated at runtime.
				name, securityContext, sanitizer, isIframe = o.Name, o.SecurityContext, &o.Sanitizer, true
			default:
				continue
			}
			if isHost {
				isIframe = true
			}

			*sanitizer = nil
			if fn, ok := sanitizerFor(securityContext); ok {
				*sanitizer = output.NewExternalExpr(fn)
			} else if isIframe && schema.IsIframeSecuritySensitiveAttr(name) {
				*sanitizer = output.NewExternalExpr(r3_identifiers.ValidateIframeAttribute)
			}
		}
	}
}

// sanitizerFor picks the sanitizer for a set of security contexts. When the host element isn't
// known, URL attributes such as "src" and "href" may be in both the URL and resource URL contexts,
// and the actual sanitizer is selected at runtime.
func sanitizerFor(securityContext []core.SecurityContext) (output.ExternalReference, bool) {
	if len(securityContext) == 2 &&
		slices.Contains(securityContext, core.SecurityContextURL) &&
		slices.Contains(securityContext, core.SecurityContextRESOURCE_URL) {
		return r3_identifiers.SanitizeUrlOrResourceUrl, true
	}
	fn, ok := sanitizerFns[getOnlySecurityContext(securityContext)]
	return fn, ok
}

// getOnlySecurityContext asserts that there is only a single security context and returns it.
func getOnlySecurityContext(securityContext []core.SecurityContext) core.SecurityContext {
	if len(securityContext) > 1 {
		panic("AssertionError: Ambiguous security context")
	}
	if len(securityContext) == 0 {
		return core.SecurityContextNONE
	}
	return securityContext[0]
}
