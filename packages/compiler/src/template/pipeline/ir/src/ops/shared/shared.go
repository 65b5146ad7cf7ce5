package ops

import (
	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ir_variable "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/variable"
)

// StatementOp is an `Op` which directly wraps an output `Statement`.
// Statement ops are valid in either list and are what reification produces.
type StatementOp struct {
	ir_operation.OpBase
	Statement output.OutputStatement
}

// NewStatementOp creates a new StatementOp
func NewStatementOp(statement output.OutputStatement) *StatementOp {
	return &StatementOp{
		OpBase:    ir_operation.NewOpBase(),
		Statement: statement,
	}
}

// GetKind returns the operation kind
func (s *StatementOp) GetKind() ir.OpKind {
	return ir.OpKindStatement
}

// VariableOp declares and initializes a `SemanticVariable`, valid either in create or update IR
type VariableOp struct {
	ir_operation.OpBase
	Xref        ir_operation.XrefId
	Variable    ir_variable.SemanticVariable
	Initializer output.OutputExpression
	Flags       ir.VariableFlags
}

// NewVariableOp creates a new VariableOp
func NewVariableOp(
	xref ir_operation.XrefId,
	variable ir_variable.SemanticVariable,
	initializer output.OutputExpression,
	flags ir.VariableFlags,
) *VariableOp {
	return &VariableOp{
		OpBase:      ir_operation.NewOpBase(),
		Xref:        xref,
		Variable:    variable,
		Initializer: initializer,
		Flags:       flags,
	}
}

// GetKind returns the operation kind
func (v *VariableOp) GetKind() ir.OpKind {
	return ir.OpKindVariable
}

// GetXref returns the xref ID
func (v *VariableOp) GetXref() ir_operation.XrefId {
	return v.Xref
}
