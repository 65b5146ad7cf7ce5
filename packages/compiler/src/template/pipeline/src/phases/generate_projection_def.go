package phases

import (
	"fmt"

	"ngc-pipeline/packages/compiler/src/css"
	"ngc-pipeline/packages/compiler/src/output"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
	pipeline_convension "ngc-pipeline/packages/compiler/src/template/pipeline/src/convension"
)

// GenerateProjectionDefs locates projection slots, populates the each component's `ngContentSelectors`
// literal field, populates `project` arguments, and generates the required `projectionDef` instruction
// for the job's root view.
func GenerateProjectionDefs(job *pipeline.ComponentCompilationJob) {
	// Collect all selectors from this component, and its nested views. Also, assign each projection a
	// unique ascending projection slot index.
	var selectors []string
	projectionSlotIndex := 0
	for _, unit := range job.Views() {
		for op := range unit.Create.All() {
			if projectionOp, ok := op.(*ops_create.ProjectionOp); ok {
				selectors = append(selectors, projectionOp.Selector)
				projectionOp.ProjectionSlotIndex = projectionSlotIndex
				projectionSlotIndex++
			}
		}
	}
	if len(selectors) == 0 {
		return
	}

	// Create the projectionDef array. If we only found a single wildcard selector, then we use the
	// default behavior with no arguments instead.
	var defExpr output.OutputExpression
	if len(selectors) > 1 || selectors[0] != "*" {
		def := make([]interface{}, len(selectors))
		for i, s := range selectors {
			if s == "*" {
				def[i] = s
				continue
			}
			parsed, err := css.ParseSelectorToR3Selector(s)
			if err != nil {
				panic(fmt.Sprintf("invalid ng-content selector %q: %v", s, err))
			}
			list := make([]interface{}, len(parsed))
			for j, selector := range parsed {
				list[j] = []interface{}(selector)
			}
			def[i] = list
		}
		defExpr = job.Pool.GetConstLiteral(pipeline_convension.LiteralOrArrayLiteral(def), false)
	}

	// Create the ngContentSelectors constant.
	job.ContentSelectors = job.Pool.GetConstLiteral(pipeline_convension.LiteralOrArrayLiteral(selectors), false)

	// The projection def instruction goes at the beginning of the root view, before any
	// `projection` instructions.
	job.RootView().Create.Prepend([]ir_operation.Op{ops_create.NewProjectionDefOp(defExpr)})
}
