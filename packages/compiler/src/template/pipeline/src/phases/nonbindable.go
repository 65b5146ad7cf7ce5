package phases

import (
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
	pipeline_util "ngc-pipeline/packages/compiler/src/template/pipeline/src/util"
)

// DisableBindings looks up elements and emits `disableBindings` and `enableBindings`
// instructions for containers marked with `ngNonBindable`.
// When a container is marked with `ngNonBindable`, the non-bindable characteristic also applies to
// all descendants of that container. Therefore, we must emit `disableBindings` and `enableBindings`
// instructions for every such container.
func DisableBindings(job *pipeline.ComponentCompilationJob) {
	elements := pipeline_util.ElementOrContainerMap(job)

	for _, unit := range job.Views() {
		for op := range unit.Create.All() {
			switch o := op.(type) {
			case *ops_create.ElementStartOp, *ops_create.ContainerStartOp:
				start := o.(ops_create.ElementOrContainerOp)
				if start.GetElementOrContainerBase().NonBindable {
					unit.Create.InsertAfter(ops_create.NewDisableBindingsOp(start.GetXref()), op)
				}
			case *ops_create.ElementEndOp:
				if lookupNonBindable(elements, o.Xref) {
					unit.Create.InsertBefore(ops_create.NewEnableBindingsOp(o.Xref), op)
				}
			case *ops_create.ContainerEndOp:
				if lookupNonBindable(elements, o.Xref) {
					unit.Create.InsertBefore(ops_create.NewEnableBindingsOp(o.Xref), op)
				}
			}
		}
	}
}

func lookupNonBindable(elements map[ir_operation.XrefId]ops_create.ElementOrContainerOp, xref ir_operation.XrefId) bool {
	el, ok := elements[xref]
	if !ok {
		panic("All attributes should have an element-like target.")
	}
	return el.GetElementOrContainerBase().NonBindable
}
