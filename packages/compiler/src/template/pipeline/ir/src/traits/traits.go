package ir_traits

import (
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
)

// SlotHandle is a mutable reference to a data slot. Ops and expressions that
// refer to the same slot share one handle, so the slot allocated for the
// owner becomes visible to every consumer.
type SlotHandle struct {
	Slot *int
}

// NewSlotHandle creates an unassigned handle
func NewSlotHandle() *SlotHandle {
	return &SlotHandle{}
}

// Value returns the assigned slot; reading an unassigned slot is a bug
func (h *SlotHandle) Value() int {
	if h == nil || h.Slot == nil {
		panic("AssertionError: slot has not been assigned")
	}
	return *h.Slot
}

// ConsumesSlotOpTrait marks an op as requiring one or more data slots
type ConsumesSlotOpTrait struct {
	// Assigned data slot (the first one when more than one is used).
	Handle *SlotHandle

	// The number of slots used by the op. Defaults to 1.
	NumSlotsUsed int
}

// NewConsumesSlot creates the trait with a fresh handle and one slot
func NewConsumesSlot() ConsumesSlotOpTrait {
	return ConsumesSlotOpTrait{Handle: NewSlotHandle(), NumSlotsUsed: 1}
}

// GetConsumesSlotTrait returns the trait itself, so that embedding ops implement ConsumesSlotOp
func (c *ConsumesSlotOpTrait) GetConsumesSlotTrait() *ConsumesSlotOpTrait {
	return c
}

// ConsumesSlotOp is an op that occupies data slots. The xref names the
// entity stored in the slot, which links the op to its consumers.
type ConsumesSlotOp interface {
	ir_operation.Op
	GetXref() ir_operation.XrefId
	GetConsumesSlotTrait() *ConsumesSlotOpTrait
}

// DependsOnSlotContextOpTrait marks an op as requiring the runtime's implicit
// slot context to point at Target before it runs
type DependsOnSlotContextOpTrait struct {
	Target ir_operation.XrefId
}

// DependsOnSlotContextOp is implemented by ops carrying the trait
type DependsOnSlotContextOp interface {
	GetDependsOnSlotContextTrait() *DependsOnSlotContextOpTrait
}

// ConsumesVarsTrait marks an op or expression as using variable slots
type ConsumesVarsTrait interface {
	HasConsumesVarsTrait() bool
}

// UsesVarOffsetTrait marks an expression as needing the count of variable
// slots used before it
type UsesVarOffsetTrait interface {
	GetVarOffset() *int
	SetVarOffset(offset int)
}

// HasConsumesSlotTrait tests whether an op implements `ConsumesSlotOpTrait`
func HasConsumesSlotTrait(op ir_operation.Op) bool {
	_, ok := op.(ConsumesSlotOp)
	return ok
}

// HasDependsOnSlotContextTrait tests whether an op implements `DependsOnSlotContextOpTrait`
func HasDependsOnSlotContextTrait(value interface{}) bool {
	_, ok := value.(DependsOnSlotContextOp)
	return ok
}

// HasConsumesVarsTrait tests whether an op or expression implements `ConsumesVarsTrait`
func HasConsumesVarsTrait(value interface{}) bool {
	if trait, ok := value.(ConsumesVarsTrait); ok {
		return trait.HasConsumesVarsTrait()
	}
	return false
}

// HasUsesVarOffsetTrait tests whether an expression implements `UsesVarOffsetTrait`
func HasUsesVarOffsetTrait(value interface{}) bool {
	_, ok := value.(UsesVarOffsetTrait)
	return ok
}
