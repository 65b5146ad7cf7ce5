package pipeline_util

import (
	ir_operations "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ir_traits "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/traits"
	pipeline_compilation "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// CreateOpXrefMap gets a map of all slot-consuming ops in the given unit by their xref id
func CreateOpXrefMap(unit pipeline_compilation.CompilationUnit) map[ir_operations.XrefId]ir_traits.ConsumesSlotOp {
	result := make(map[ir_operations.XrefId]ir_traits.ConsumesSlotOp)
	for op := range unit.GetCreate().All() {
		entry, ok := op.(ir_traits.ConsumesSlotOp)
		if !ok {
			continue
		}
		result[entry.GetXref()] = entry

		// A repeater also owns the slot of its empty view.
		if repeaterOp, ok := op.(*ops_create.RepeaterCreateOp); ok && repeaterOp.EmptyView != nil {
			result[*repeaterOp.EmptyView] = entry
		}
	}
	return result
}

// ElementOrContainerMap gets a map of the element-like ops of every unit of the job by xref
func ElementOrContainerMap(job pipeline_compilation.Job) map[ir_operations.XrefId]ops_create.ElementOrContainerOp {
	result := make(map[ir_operations.XrefId]ops_create.ElementOrContainerOp)
	for _, unit := range job.Units() {
		for op := range unit.GetCreate().All() {
			if el, ok := op.(ops_create.ElementOrContainerOp); ok && ops_create.IsElementOrContainerOp(op) {
				result[el.GetXref()] = el
			}
		}
	}
	return result
}
