package ir_variable

import (
	"ngc-pipeline/packages/compiler/src/output"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
)

// SemanticVariable is a union type for the different kinds of variables
type SemanticVariable interface {
	GetKind() ir.SemanticVariableKind
	GetName() *string
	SetName(name string)
}

// SemanticVariableBase is the base struct for semantic variables
type SemanticVariableBase struct {
	Kind ir.SemanticVariableKind
	Name *string
}

// GetKind returns the variable kind
func (s *SemanticVariableBase) GetKind() ir.SemanticVariableKind {
	return s.Kind
}

// GetName returns the generated name, or nil before naming
func (s *SemanticVariableBase) GetName() *string {
	return s.Name
}

// SetName sets the generated name
func (s *SemanticVariableBase) SetName(name string) {
	s.Name = &name
}

// ContextVariable holds the context of a particular view
type ContextVariable struct {
	SemanticVariableBase
	View ir_operation.XrefId
}

// NewContextVariable creates a new ContextVariable
func NewContextVariable(view ir_operation.XrefId) *ContextVariable {
	return &ContextVariable{
		SemanticVariableBase: SemanticVariableBase{Kind: ir.SemanticVariableKindContext},
		View:                 view,
	}
}

// IdentifierVariable is an identifier visible in the lexical scope of a view.
// Local is set for variables that live in handler bodies only.
type IdentifierVariable struct {
	SemanticVariableBase
	Identifier string
	Local      bool
}

// NewIdentifierVariable creates a new IdentifierVariable
func NewIdentifierVariable(identifier string, local bool) *IdentifierVariable {
	return &IdentifierVariable{
		SemanticVariableBase: SemanticVariableBase{Kind: ir.SemanticVariableKindIdentifier},
		Identifier:           identifier,
		Local:                local,
	}
}

// SavedViewVariable holds a snapshot of a view for its listeners to restore
type SavedViewVariable struct {
	SemanticVariableBase
	View ir_operation.XrefId
}

// NewSavedViewVariable creates a new SavedViewVariable
func NewSavedViewVariable(view ir_operation.XrefId) *SavedViewVariable {
	return &SavedViewVariable{
		SemanticVariableBase: SemanticVariableBase{Kind: ir.SemanticVariableKindSavedView},
		View:                 view,
	}
}

// AliasVariable is inlined at every location it is read
type AliasVariable struct {
	SemanticVariableBase
	Identifier string
	Expression output.OutputExpression
}

// NewAliasVariable creates a new AliasVariable
func NewAliasVariable(identifier string, expression output.OutputExpression) *AliasVariable {
	return &AliasVariable{
		SemanticVariableBase: SemanticVariableBase{Kind: ir.SemanticVariableKindAlias},
		Identifier:           identifier,
		Expression:           expression,
	}
}

// CTX_REF is the value of a context variable that refers to the whole view context rather than
// one of its properties
const CTX_REF = "CTX_REF_MARKER"
