package phases

import (
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// CollapseEmptyInstructions replaces sequences of mergable instructions (e.g. `ElementStart` and `ElementEnd`)
// with a consolidated instruction (e.g. `Element`).
func CollapseEmptyInstructions(job *pipeline.ComponentCompilationJob) {
	for _, unit := range job.Views() {
		for op := range unit.Create.All() {
			// Find end ops that may be able to be merged, then locate the previous (non-ignored) op.
			switch end := op.(type) {
			case *ops_create.ElementEndOp:
				start, ok := previousNonIgnored(op).(*ops_create.ElementStartOp)
				if !ok || start.Xref != end.Xref {
					continue
				}
				unit.Create.Replace(start, ops_create.NewElementOpFromStart(start))
				unit.Create.Remove(op)
			case *ops_create.ContainerEndOp:
				start, ok := previousNonIgnored(op).(*ops_create.ContainerStartOp)
				if !ok || start.Xref != end.Xref {
					continue
				}
				unit.Create.Replace(start, ops_create.NewContainerOpFromStart(start))
				unit.Create.Remove(op)
			}
		}
	}
}

// previousNonIgnored returns the op before op, skipping pipes, which do not prevent merging.
func previousNonIgnored(op ir_operation.Op) ir_operation.Op {
	prev := op.GetPrev()
	for {
		if _, ok := prev.(*ops_create.PipeOp); !ok {
			return prev
		}
		prev = prev.GetPrev()
	}
}
