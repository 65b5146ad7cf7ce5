package phases

import (
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_host "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/host"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"
	ir_traits "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/traits"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

type opRule struct {
	test     func(op ir_operation.Op) bool
	keepLast bool
}

func kindTest(kind ir.OpKind) func(op ir_operation.Op) bool {
	return func(op ir_operation.Op) bool { return op.GetKind() == kind }
}

func kindWithInterpolationTest(kind ir.OpKind, interpolation bool) func(op ir_operation.Op) bool {
	return func(op ir_operation.Op) bool {
		if op.GetKind() != kind {
			return false
		}
		return hasInterpolation(op) == interpolation
	}
}

func hasInterpolation(op ir_operation.Op) bool {
	switch o := op.(type) {
	case *ops_update.PropertyOp:
		return o.Interpolation != nil
	case *ops_update.AttributeOp:
		return o.Interpolation != nil
	case *ops_host.DomPropertyOp:
		return o.Interpolation != nil
	}
	return false
}

func basicListenerKindTest(op ir_operation.Op) bool {
	switch op.GetKind() {
	case ir.OpKindListener, ir.OpKindTwoWayListener, ir.OpKindAnimation, ir.OpKindAnimationListener:
		return op.GetKind() != ir.OpKindListener || !isLegacyAnimationHostListener(op)
	}
	return false
}

func isLegacyAnimationHostListener(op ir_operation.Op) bool {
	listener, ok := op.(*ops_create.ListenerOp)
	return ok && listener.HostListener && listener.IsLegacyAnimationListener
}

func nonInterpolationPropertyKindTest(op ir_operation.Op) bool {
	return (op.GetKind() == ir.OpKindProperty || op.GetKind() == ir.OpKindTwoWayProperty) && !hasInterpolation(op)
}

// createOrdering is the order listeners are emitted in; legacy animation host listeners go first.
var createOrdering = []opRule{
	{test: isLegacyAnimationHostListener},
	{test: basicListenerKindTest},
}

// updateOrdering is the order in which update bindings are applied. Style and class maps keep only
// their last occurrence since later maps overwrite earlier ones.
var updateOrdering = []opRule{
	{test: kindTest(ir.OpKindStyleMap), keepLast: true},
	{test: kindTest(ir.OpKindClassMap), keepLast: true},
	{test: kindTest(ir.OpKindStyleProp)},
	{test: kindTest(ir.OpKindClassProp)},
	{test: kindWithInterpolationTest(ir.OpKindAttribute, true)},
	{test: kindWithInterpolationTest(ir.OpKindProperty, true)},
	{test: nonInterpolationPropertyKindTest},
	{test: kindWithInterpolationTest(ir.OpKindAttribute, false)},
}

// updateHostOrdering is the update ordering of host bindings.
var updateHostOrdering = []opRule{
	{test: kindWithInterpolationTest(ir.OpKindDomProperty, true)},
	{test: kindWithInterpolationTest(ir.OpKindDomProperty, false)},
	{test: kindTest(ir.OpKindAttribute)},
	{test: kindTest(ir.OpKindStyleMap), keepLast: true},
	{test: kindTest(ir.OpKindClassMap), keepLast: true},
	{test: kindTest(ir.OpKindStyleProp)},
	{test: kindTest(ir.OpKindClassProp)},
}

var handledOpKinds = map[ir.OpKind]bool{
	ir.OpKindListener:          true,
	ir.OpKindTwoWayListener:    true,
	ir.OpKindAnimation:         true,
	ir.OpKindAnimationListener: true,
	ir.OpKindStyleMap:          true,
	ir.OpKindClassMap:          true,
	ir.OpKindStyleProp:         true,
	ir.OpKindClassProp:         true,
	ir.OpKindProperty:          true,
	ir.OpKindTwoWayProperty:    true,
	ir.OpKindDomProperty:       true,
	ir.OpKindAttribute:         true,
}

// OrderOps reorders ops that have no observable ordering constraints between them so that the
// runtime applies them in a deterministic order, e.g. maps before single style and class bindings.
func OrderOps(job pipeline.Job) {
	isHost := job.Base().Kind == pipeline.CompilationJobKindHost
	for _, unit := range job.Units() {
		orderWithin(unit.GetCreate(), createOrdering)

		ordering := updateOrdering
		if isHost {
			ordering = updateHostOrdering
		}
		orderWithin(unit.GetUpdate(), ordering)
	}
}

// orderWithin reorders the runs of handled ops of the list. A run ends at an unhandled op or when
// the slot context the ops depend on changes.
func orderWithin(opList *ir_operation.OpList, ordering []opRule) {
	var opsToOrder []ir_operation.Op
	var firstTargetInGroup *ir_operation.XrefId

	for op := range opList.All() {
		var currentTarget *ir_operation.XrefId
		if dep, ok := op.(ir_traits.DependsOnSlotContextOp); ok {
			target := dep.GetDependsOnSlotContextTrait().Target
			currentTarget = &target
		}

		targetChanged := firstTargetInGroup != nil && currentTarget != nil && *currentTarget != *firstTargetInGroup
		if !handledOpKinds[op.GetKind()] || targetChanged {
			for _, ordered := range reorder(opsToOrder, ordering) {
				opList.InsertBefore(ordered, op)
			}
			opsToOrder = nil
			firstTargetInGroup = nil
		}

		if handledOpKinds[op.GetKind()] {
			opList.Remove(op)
			opsToOrder = append(opsToOrder, op)
			if currentTarget != nil {
				firstTargetInGroup = currentTarget
			}
		}
	}

	for _, ordered := range reorder(opsToOrder, ordering) {
		opList.Push(ordered)
	}
}

// reorder sorts ops into the buckets of the ordering, keeping source order within a bucket.
// Ops matching no rule keep their relative order after the buckets.
func reorder(ops []ir_operation.Op, ordering []opRule) []ir_operation.Op {
	if len(ops) == 0 {
		return nil
	}
	groups := make([][]ir_operation.Op, len(ordering))
	var rest []ir_operation.Op
	for _, op := range ops {
		matched := false
		for i, rule := range ordering {
			if rule.test(op) {
				groups[i] = append(groups[i], op)
				matched = true
				break
			}
		}
		if !matched {
			rest = append(rest, op)
		}
	}

	result := make([]ir_operation.Op, 0, len(ops))
	for i, group := range groups {
		if ordering[i].keepLast && len(group) > 1 {
			group = group[len(group)-1:]
		}
		result = append(result, group...)
	}
	return append(result, rest...)
}
