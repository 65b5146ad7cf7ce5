package phases

import (
	"ngc-pipeline/packages/compiler/src/output"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// CollapseSingletonInterpolations collapses attribute or style interpolations of the form
// `[attr.foo]="{{foo}}"` into a plain instruction, instead of an interpolated one.
//
// Singleton property interpolations are left alone, because they need to stringify their expressions.
func CollapseSingletonInterpolations(job pipeline.Job) {
	for _, unit := range job.Units() {
		for op := range unit.GetUpdate().All() {
			switch o := op.(type) {
			case *ops_update.AttributeOp:
				o.Expression, o.Interpolation = collapseSingleton(o.Expression, o.Interpolation)
			case *ops_update.StylePropOp:
				o.Expression, o.Interpolation = collapseSingleton(o.Expression, o.Interpolation)
			case *ops_update.StyleMapOp:
				o.Expression, o.Interpolation = collapseSingleton(o.Expression, o.Interpolation)
			case *ops_update.ClassMapOp:
				o.Expression, o.Interpolation = collapseSingleton(o.Expression, o.Interpolation)
			}
		}
	}
}

func collapseSingleton(
	expr output.OutputExpression,
	interpolation *ops_update.Interpolation,
) (output.OutputExpression, *ops_update.Interpolation) {
	if interpolation == nil || !interpolation.IsSingleton() {
		return expr, interpolation
	}
	return interpolation.Expressions[0], nil
}
