package ops_host

import (
	"ngc-pipeline/packages/compiler/src/core"
	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"
)

// DomPropertyOp is a binding to a native DOM property of the host element.
// Host bindings have no element slot, so the op carries no target.
type DomPropertyOp struct {
	ir_operation.OpBase
	Name                     string
	Expression               output.OutputExpression
	Interpolation            *ops_update.Interpolation
	BindingKind              ir.BindingKind
	IsLegacyAnimationTrigger bool
	SecurityContext          []core.SecurityContext
	Sanitizer                output.OutputExpression
}

// NewDomPropertyOp creates a new DomPropertyOp
func NewDomPropertyOp(
	name string,
	expression output.OutputExpression,
	interpolation *ops_update.Interpolation,
	bindingKind ir.BindingKind,
	securityContext []core.SecurityContext,
) *DomPropertyOp {
	return &DomPropertyOp{
		OpBase:                   ir_operation.NewOpBase(),
		Name:                     name,
		Expression:               expression,
		Interpolation:            interpolation,
		BindingKind:              bindingKind,
		IsLegacyAnimationTrigger: bindingKind == ir.BindingKindLegacyAnimation,
		SecurityContext:          securityContext,
	}
}

// GetKind returns the operation kind
func (d *DomPropertyOp) GetKind() ir.OpKind {
	return ir.OpKindDomProperty
}

// HasConsumesVarsTrait implements ConsumesVarsTrait
func (d *DomPropertyOp) HasConsumesVarsTrait() bool {
	return true
}
