package phases

import (
	"ngc-pipeline/packages/compiler/src/output"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// LiftLocalRefs lifts local reference declarations on element-like structures within each view
// into an entry in the `consts` array for the whole component.
func LiftLocalRefs(job *pipeline.ComponentCompilationJob) {
	for _, unit := range job.Views() {
		for op := range unit.Create.All() {
			element, ok := op.(ops_create.ElementOrContainerOp)
			if !ok {
				continue
			}
			base := element.GetElementOrContainerBase()
			if len(base.LocalRefs) == 0 {
				base.LocalRefsIndex = nil
				continue
			}

			// Each reference reads its own slot after the element's.
			base.NumSlotsUsed += len(base.LocalRefs)
			index := job.AddConst(serializeLocalRefs(base.LocalRefs), nil)
			base.LocalRefsIndex = &index
		}
	}
}

func serializeLocalRefs(refs []ops_create.LocalRef) output.OutputExpression {
	constRefs := make([]output.OutputExpression, 0, len(refs)*2)
	for _, ref := range refs {
		constRefs = append(constRefs, output.NewLiteralExpr(ref.Name), output.NewLiteralExpr(ref.Target))
	}
	return output.NewLiteralArrayExpr(constRefs)
}
