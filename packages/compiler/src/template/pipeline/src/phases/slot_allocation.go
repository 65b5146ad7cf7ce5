package phases

import (
	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"
	ir_traits "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/traits"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// AllocateSlots assigns data slots for all operations which implement `ConsumesSlotOpTrait`, and propagate the
// assigned data slots of those operations to any expressions which reference them.
//
// This phase is also responsible for counting the number of slots used for each view (its `decls`)
// and propagating that number into the `Template` operations which declare embedded views.
func AllocateSlots(job *pipeline.ComponentCompilationJob) {
	// Map of all declarations in all views within the component which require an assigned slot index.
	// This map needs to be global (across all views within the component) since it's possible to
	// reference a slot from one view from an expression within another (e.g. local references work
	// this way).
	slotMap := make(map[ir_operation.XrefId]int)

	for _, unit := range job.Views() {
		// Slot indices start at 0 for each view (and are not unique between views).
		slotCount := 0

		for op := range unit.Create.All() {
			slotOp, ok := op.(ir_traits.ConsumesSlotOp)
			if !ok {
				continue
			}
			trait := slotOp.GetConsumesSlotTrait()
			if trait.Handle == nil {
				trait.Handle = ir_traits.NewSlotHandle()
			}
			slot := slotCount
			trait.Handle.Slot = &slot
			slotMap[slotOp.GetXref()] = slot

			// Each declaration may use more than 1 slot.
			slotCount += trait.NumSlotsUsed
		}

		decls := slotCount
		unit.Decls = &decls
	}

	// Every declaration now has a slot. Propagate the slots to consumers whose handle was not
	// shared with the declaring op, and the slot counts of views into the ops declaring them.
	fill := func(handle *ir_traits.SlotHandle, target ir_operation.XrefId) {
		if handle == nil || handle.Slot != nil {
			return
		}
		if slot, ok := slotMap[target]; ok {
			handle.Slot = &slot
		}
	}
	for _, unit := range job.Views() {
		for _, list := range []*ir_operation.OpList{unit.Create, unit.Update} {
			for op := range list.All() {
				switch o := op.(type) {
				case ops_create.EmbeddedViewOp:
					o.GetEmbeddedViewBase().Decls = job.MustView(o.GetXref()).Decls
				case *ops_create.RepeaterCreateOp:
					o.Decls = job.MustView(o.Xref).Decls
					if o.EmptyView != nil {
						o.EmptyDecls = job.MustView(*o.EmptyView).Decls
					}
				case *ops_update.ConditionalOp:
					fill(o.TargetSlot, o.Target)
				case *ops_update.RepeaterOp:
					fill(o.TargetSlot, o.Target)
				}

				expression.VisitExpressionsInOp(op, func(expr output.OutputExpression, flags expression.VisitorContextFlag) {
					switch e := expr.(type) {
					case *expression.SlotLiteralExpr:
						fill(e.Slot, e.Target)
					case *expression.ReferenceExpr:
						fill(e.TargetSlot, e.Target)
					case *expression.PipeBindingExpr:
						fill(e.TargetSlot, e.Target)
					}
				})
			}
		}
	}
}
