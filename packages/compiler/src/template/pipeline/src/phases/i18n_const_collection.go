package phases

import (
	"strings"

	"ngc-pipeline/packages/compiler/src/i18n"
	"ngc-pipeline/packages/compiler/src/output"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"

	"ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// Name of the global tag used to mark translatable messages.
const localizeTag = "$localize"

// CollectI18nConsts lifts the message of each root i18n block into the consts array. The const is
// a reference to a variable initialized with a `$localize` tagged template; blocks wrapping child
// views share the index of their root.
func CollectI18nConsts(job *compilation.ComponentCompilationJob) {
	messageIndices := make(map[ir_operation.XrefId]ir_operation.ConstIndex)

	var i18nStarts []*ops_create.I18nStartOp
	for _, unit := range job.Views() {
		for op := range unit.Create.All() {
			if start, ok := op.(*ops_create.I18nStartOp); ok {
				i18nStarts = append(i18nStarts, start)
			}
		}
	}

	for _, start := range i18nStarts {
		if start.Xref != start.Root || start.Message == nil {
			continue
		}
		name := job.Pool.UniqueName("i18n_", true)
		initializer := output.NewDeclareVarStmt(
			name,
			output.NewTaggedTemplateExpr(output.NewReadVarExpr(localizeTag), localizeText(start.Message)),
			output.StmtModifierFinal,
		)
		messageIndices[start.Xref] = job.AddConst(output.NewReadVarExpr(name), []output.OutputStatement{initializer})
	}

	for _, start := range i18nStarts {
		if index, ok := messageIndices[start.Root]; ok {
			start.MessageIndex = &index
		}
	}
}

// localizeText renders a message as the body of a `$localize` template, prefixed with its
// `:meaning|description@@id:` metadata block when any metadata is present.
func localizeText(message *i18n.Message) string {
	var meta strings.Builder
	if message.Meaning != "" {
		meta.WriteString(message.Meaning)
		meta.WriteString("|")
	}
	meta.WriteString(message.Description)
	if message.CustomID != "" {
		meta.WriteString("@@")
		meta.WriteString(message.CustomID)
	}
	if meta.Len() == 0 {
		return message.MessageString
	}
	return ":" + meta.String() + ":" + message.MessageString
}
