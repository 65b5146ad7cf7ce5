package phases

import (
	"fmt"

	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"
	ir_traits "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/traits"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// GenerateAdvance inserts `advance()` operations so that update ops which depend on the runtime's slot
// context always run with the context pointing at their target.
func GenerateAdvance(job *pipeline.ComponentCompilationJob) {
	for _, unit := range job.Views() {
		// First build a map of all of the declarations in the view that have assigned slots.
		slotMap := make(map[ir_operation.XrefId]int)
		for op := range unit.Create.All() {
			consumer, ok := op.(ir_traits.ConsumesSlotOp)
			if !ok {
				continue
			}
			slot := consumer.GetConsumesSlotTrait().Handle.Slot
			if slot == nil {
				panic("AssertionError: expected slots to have been allocated before generating advance() calls")
			}
			slotMap[consumer.GetXref()] = *slot
		}

		// Next, step through the update operations and generate `advance` instructions as needed to
		// ensure the runtime's implicit slot context will be pointed to the right slot.
		slotContext := 0
		for op := range unit.Update.All() {
			consumer, ok := op.(ir_traits.DependsOnSlotContextOp)
			if !ok {
				continue
			}
			target := consumer.GetDependsOnSlotContextTrait().Target
			slot, ok := slotMap[target]
			if !ok {
				// We expect ops that _do_ depend on the slot counter to point at declarations that exist in
				// the `slotMap`.
				panic(fmt.Sprintf("AssertionError: reference to unknown slot for target %d", target))
			}

			// Does the slot counter need to be adjusted?
			if slotContext == slot {
				continue
			}
			delta := slot - slotContext
			if delta < 0 {
				panic("AssertionError: slot counter should never need to move backwards")
			}
			unit.Update.InsertBefore(ops_update.NewAdvanceOp(delta), op)
			slotContext = slot
		}
	}
}
