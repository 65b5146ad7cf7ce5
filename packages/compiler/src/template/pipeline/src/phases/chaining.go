package phases

import (
	"ngc-pipeline/packages/compiler/src/output"
	r3 "ngc-pipeline/packages/compiler/src/render3/r3_identifiers"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_shared "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"

	pipeline "ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// chainCompatibility maps an instruction to the instruction a following call must use to
// extend the same chain.
var chainCompatibility = map[output.ExternalReference]output.ExternalReference{
	r3.Attribute:               r3.Attribute,
	r3.ClassProp:               r3.ClassProp,
	r3.Element:                 r3.Element,
	r3.ElementContainer:        r3.ElementContainer,
	r3.ElementContainerEnd:     r3.ElementContainerEnd,
	r3.ElementContainerStart:   r3.ElementContainerStart,
	r3.ElementEnd:              r3.ElementEnd,
	r3.ElementStart:            r3.ElementStart,
	r3.I18nExp:                 r3.I18nExp,
	r3.DomProperty:             r3.DomProperty,
	r3.Listener:                r3.Listener,
	r3.Property:                r3.Property,
	r3.StyleProp:               r3.StyleProp,
	r3.TemplateCreate:          r3.TemplateCreate,
	r3.TwoWayProperty:          r3.TwoWayProperty,
	r3.TwoWayListener:          r3.TwoWayListener,
	r3.ConditionalCreate:       r3.ConditionalBranchCreate,
	r3.ConditionalBranchCreate: r3.ConditionalBranchCreate,
	r3.DomElement:              r3.DomElement,
	r3.DomElementStart:         r3.DomElementStart,
	r3.DomElementEnd:           r3.DomElementEnd,
	r3.DomListener:             r3.DomListener,
	r3.DomTemplate:             r3.DomTemplate,
	r3.AnimationEnter:          r3.AnimationEnter,
	r3.AnimationLeave:          r3.AnimationLeave,
	r3.AnimationEnterListener:  r3.AnimationEnterListener,
	r3.AnimationLeaveListener:  r3.AnimationLeaveListener,
}

// MaxChainLength limits the number of chained instructions to keep the runtime call depth bounded
const MaxChainLength = 256

// Chain post-processes a reified view compilation and converts sequential calls to chainable instructions
// into chain calls.
//
// For example, two `elementStart` operations in sequence:
//
//	elementStart(0, 'div');
//	elementStart(1, 'span');
//
// Can be called as a chain instead:
//
//	elementStart(0, 'div')(1, 'span');
func Chain(job pipeline.Job) {
	for _, unit := range job.Units() {
		chainOperationsInList(unit.GetCreate())
		chainOperationsInList(unit.GetUpdate())
	}
}

type chain struct {
	op          *ops_shared.StatementOp
	instruction output.ExternalReference
	expression  output.OutputExpression
	length      int
}

func chainOperationsInList(opList *ir_operation.OpList) {
	var currentChain *chain

	for op := range opList.All() {
		instruction, call, ok := chainableCall(op)
		if !ok {
			currentChain = nil
			continue
		}

		if currentChain != nil &&
			chainCompatibility[currentChain.instruction] == instruction &&
			currentChain.length < MaxChainLength {
			// This instruction can be added onto the previous chain.
			chained := output.NewInvokeFunctionExpr(currentChain.expression, call.Args, call.Pure)
			currentChain.expression = chained
			currentChain.op.Statement = output.NewExpressionStatement(chained)
			currentChain.length++
			opList.Remove(op)
			continue
		}

		// Leave this instruction alone for now, but consider it the start of a new chain.
		currentChain = &chain{
			op:          op.(*ops_shared.StatementOp),
			instruction: instruction,
			expression:  call,
			length:      1,
		}
	}
}

// chainableCall matches `instr(args);` statements whose instruction takes part in chaining
func chainableCall(op ir_operation.Op) (output.ExternalReference, *output.InvokeFunctionExpr, bool) {
	stmtOp, ok := op.(*ops_shared.StatementOp)
	if !ok {
		return output.ExternalReference{}, nil, false
	}
	exprStmt, ok := stmtOp.Statement.(*output.ExpressionStatement)
	if !ok {
		return output.ExternalReference{}, nil, false
	}
	call, ok := exprStmt.Expr.(*output.InvokeFunctionExpr)
	if !ok {
		return output.ExternalReference{}, nil, false
	}
	external, ok := call.Fn.(*output.ExternalExpr)
	if !ok {
		return output.ExternalReference{}, nil, false
	}
	if _, ok := chainCompatibility[external.Value]; !ok {
		return output.ExternalReference{}, nil, false
	}
	return external.Value, call, true
}
