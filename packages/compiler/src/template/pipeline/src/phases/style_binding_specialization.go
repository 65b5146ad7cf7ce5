package phases

import (
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// SpecializeStyleBindings turns `[style]` and `[class]` property bindings into style and class map
// operations. Must run before the main binding specialization pass.
func SpecializeStyleBindings(job pipeline.Job) {
	for _, unit := range job.Units() {
		update := unit.GetUpdate()
		for op := range update.All() {
			bindingOp, ok := op.(*ops_update.BindingOp)
			if !ok {
				continue
			}
			if bindingOp.BindingKind != ir.BindingKindProperty && bindingOp.BindingKind != ir.BindingKindTemplate {
				continue
			}
			switch bindingOp.Name {
			case "style":
				update.Replace(op, ops_update.NewStyleMapOp(bindingOp.Target, bindingOp.Expression, bindingOp.Interpolation))
			case "class":
				update.Replace(op, ops_update.NewClassMapOp(bindingOp.Target, bindingOp.Expression, bindingOp.Interpolation))
			}
		}
	}
}
