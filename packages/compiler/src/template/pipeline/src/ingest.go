package pipeline

import (
	"fmt"
	"strings"

	"ngc-pipeline/packages/compiler/src/core"
	"ngc-pipeline/packages/compiler/src/expression_parser"
	"ngc-pipeline/packages/compiler/src/i18n"
	"ngc-pipeline/packages/compiler/src/output"
	constant_pool "ngc-pipeline/packages/compiler/src/pool"
	"ngc-pipeline/packages/compiler/src/render3"
	"ngc-pipeline/packages/compiler/src/schema"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir"
	"ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/expression"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ops_shared "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/shared"
	ops_update "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/update"
	ir_traits "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/traits"
	ir_variable "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/variable"

	"ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
	pipeline_convension "ngc-pipeline/packages/compiler/src/template/pipeline/src/convension"
)

const (
	ngTemplateTagName  = "ng-template"
	ngContainerTagName = "ng-container"
	animatePrefix      = "animate."
	nonBindableAttr    = "ngNonBindable"
)

// bindingKinds maps the binding type of a bound attribute to the kind of its IR binding
var bindingKinds = map[render3.BindingType]ir.BindingKind{
	render3.BindingTypeProperty:        ir.BindingKindProperty,
	render3.BindingTypeTwoWay:          ir.BindingKindTwoWayProperty,
	render3.BindingTypeAttribute:       ir.BindingKindAttribute,
	render3.BindingTypeClass:           ir.BindingKindClassName,
	render3.BindingTypeStyle:           ir.BindingKindStyleProperty,
	render3.BindingTypeLegacyAnimation: ir.BindingKindLegacyAnimation,
	render3.BindingTypeAnimation:       ir.BindingKindAnimation,
}

// IngestComponent processes a template AST and converts it into a `ComponentCompilationJob` in the intermediate
// representation.
func IngestComponent(
	componentName string,
	template []render3.Node,
	pool *constant_pool.ConstantPool,
	mode compilation.TemplateCompilationMode,
) *compilation.ComponentCompilationJob {
	job := compilation.NewComponentCompilationJob(componentName, pool, mode)
	in := &ingester{job: job}
	in.ingestNodes(job.RootView(), template)
	return job
}

// HostBindings is the host metadata of a component
type HostBindings struct {
	Properties []*render3.BoundAttribute
	Attributes []*render3.TextAttribute
	Listeners  []*render3.BoundEvent
}

// IsEmpty reports whether the component declares no host bindings at all
func (h *HostBindings) IsEmpty() bool {
	return h == nil || len(h.Properties) == 0 && len(h.Attributes) == 0 && len(h.Listeners) == 0
}

// IngestHostBinding processes the host bindings of a component into a `HostBindingCompilationJob`.
// Host jobs always compile in DOM-only mode.
func IngestHostBinding(
	componentName string,
	host *HostBindings,
	pool *constant_pool.ConstantPool,
) *compilation.HostBindingCompilationJob {
	job := compilation.NewHostBindingCompilationJob(componentName, pool, compilation.TemplateCompilationModeDomOnly)
	for _, property := range host.Properties {
		ingestHostProperty(job, property)
	}
	for _, attr := range host.Attributes {
		ingestHostAttribute(job, attr)
	}
	for _, event := range host.Listeners {
		ingestHostEvent(job, event)
	}
	return job
}

func ingestHostProperty(job *compilation.HostBindingCompilationJob, property *render3.BoundAttribute) {
	bindingKind, ok := bindingKinds[property.Type]
	if !ok {
		panic(fmt.Sprintf("AssertionError: unknown host binding type %d", property.Type))
	}
	securityContexts := schema.HostSecurityContexts(property.Name)
	if property.Type != render3.BindingTypeProperty {
		securityContexts = []core.SecurityContext{property.SecurityContext}
	}
	expr, interpolation := convertAstWithInterpolation(job.CompilationJob, job.HostUnit().Xref, property.Value)
	job.HostUnit().Update.Push(ops_update.NewBindingOp(
		job.HostUnit().Xref,
		bindingKind,
		property.Name,
		expr,
		interpolation,
		property.Unit,
		securityContexts,
		false,
		false,
		nil,
		nil,
	))
}

func ingestHostAttribute(job *compilation.HostBindingCompilationJob, attr *render3.TextAttribute) {
	// Host attributes have no element to look a security context up against.
	job.HostUnit().Update.Push(ops_update.NewBindingOp(
		job.HostUnit().Xref,
		ir.BindingKindAttribute,
		attr.Name,
		output.NewLiteralExpr(attr.Value),
		nil,
		nil,
		[]core.SecurityContext{core.SecurityContextNONE},
		true,
		false,
		nil,
		nil,
	))
}

func ingestHostEvent(job *compilation.HostBindingCompilationJob, event *render3.BoundEvent) {
	unit := job.HostUnit()
	handlerOps := makeListenerHandlerOps(job.CompilationJob, unit.Xref, event.Handler)
	switch event.Type {
	case render3.ParsedEventTypeAnimation:
		unit.Create.Push(ops_create.NewAnimationListenerOp(
			unit.Xref,
			ir_traits.NewSlotHandle(),
			event.Name,
			nil,
			animationKindOf(event.Name),
			handlerOps,
			true,
		))
	case render3.ParsedEventTypeTwoWay:
		panic(fmt.Sprintf("AssertionError: two-way host event %q", event.Name))
	default:
		if event.Type == render3.ParsedEventTypeLegacyAnimation && event.Phase == nil {
			panic("Animation listener should have a phase")
		}
		unit.Create.Push(ops_create.NewListenerOp(
			unit.Xref,
			ir_traits.NewSlotHandle(),
			event.Name,
			nil,
			handlerOps,
			event.Phase,
			event.Target,
			true,
		))
	}
}

// ingester walks a template tree into the views of a component job
type ingester struct {
	job *compilation.ComponentCompilationJob

	// Depth of enclosing i18n blocks. Static text inside a block is carried by its message and is
	// never ingested.
	i18nDepth int
}

// ingestNodes ingests the nodes of a template AST into the given `ViewCompilationUnit`.
func (in *ingester) ingestNodes(unit *compilation.ViewCompilationUnit, template []render3.Node) {
	for _, node := range template {
		switch n := node.(type) {
		case *render3.Element:
			in.ingestElement(unit, n)
		case *render3.Template:
			in.ingestTemplate(unit, n)
		case *render3.Content:
			in.ingestContent(unit, n)
		case *render3.Text:
			in.ingestText(unit, n)
		case *render3.BoundText:
			in.ingestBoundText(unit, n)
		case *render3.IfBlock:
			in.ingestIfBlock(unit, n)
		case *render3.SwitchBlock:
			in.ingestSwitchBlock(unit, n)
		case *render3.ForLoopBlock:
			in.ingestForBlock(unit, n)
		default:
			panic(fmt.Sprintf("Unsupported template node: %T", node))
		}
	}
}

// ingestElement ingests an element AST from the template into the given `ViewCompilationUnit`.
func (in *ingester) ingestElement(unit *compilation.ViewCompilationUnit, element *render3.Element) {
	message := render3.I18nMessage(element.I18n)
	placeholder, isTagPlaceholder := element.I18n.(*i18n.TagPlaceholder)
	if element.I18n != nil && message == nil && !isTagPlaceholder {
		panic(fmt.Sprintf("Unhandled i18n metadata type for element: %T", element.I18n))
	}

	id := in.job.AllocateXrefId()

	var startOp ops_create.ElementOrContainerOp
	var tag *string
	var handle *ir_traits.SlotHandle
	if element.Name == ngContainerTagName {
		op := ops_create.NewContainerStartOp(id)
		startOp, handle = op, op.Handle
	} else {
		op := ops_create.NewElementStartOp(element.Name, id, placeholder)
		startOp, tag, handle = op, &op.Tag, op.Handle
	}
	for _, attr := range element.Attributes {
		if attr.Name == nonBindableAttr {
			startOp.GetElementOrContainerBase().NonBindable = true
		}
	}
	unit.Create.Push(startOp)

	in.ingestElementBindings(unit, id, element)
	in.ingestElementEvents(unit, id, handle, tag, element.Outputs)
	ingestReferences(startOp, element.References)

	// Start i18n, if needed, goes after the element create and bindings, but before the nodes.
	var i18nBlockId *ir_operation.XrefId
	if message != nil {
		blockId := in.job.AllocateXrefId()
		i18nBlockId = &blockId
		unit.Create.Push(ops_create.NewI18nStartOp(blockId, message, nil))
		in.i18nDepth++
	}

	in.ingestNodes(unit, element.Children)

	var endOp ir_operation.Op = ops_create.NewElementEndOp(id)
	if element.Name == ngContainerTagName {
		endOp = ops_create.NewContainerEndOp(id)
	}
	unit.Create.Push(endOp)

	// If there is an i18n message associated with this element, insert i18n end op before the element end.
	if i18nBlockId != nil {
		unit.Create.InsertBefore(ops_create.NewI18nEndOp(*i18nBlockId), endOp)
		in.i18nDepth--
	}
}

// ingestTemplate ingests an `ng-template` node, or an element carrying a structural directive, from the AST into
// the given `ViewCompilationUnit`.
func (in *ingester) ingestTemplate(unit *compilation.ViewCompilationUnit, tmpl *render3.Template) {
	message := render3.I18nMessage(tmpl.I18n)
	placeholder, isTagPlaceholder := tmpl.I18n.(*i18n.TagPlaceholder)
	if tmpl.I18n != nil && message == nil && !isTagPlaceholder {
		panic(fmt.Sprintf("Unhandled i18n metadata type for template: %T", tmpl.I18n))
	}

	childView := in.job.AllocateView(unit.Xref)

	templateKind := ir.TemplateKindStructural
	tagName := ngTemplateTagName
	if tmpl.TagName == nil {
		templateKind = ir.TemplateKindNgTemplate
	} else {
		tagName = *tmpl.TagName
	}

	var i18nPlaceholder i18n.Placeholder
	if isTagPlaceholder {
		i18nPlaceholder = placeholder
	}
	templateOp := ops_create.NewTemplateOp(childView.Xref, templateKind, &tagName, tagName, i18nPlaceholder)
	unit.Create.Push(templateOp)

	in.ingestTemplateBindings(unit, templateOp, tmpl, templateKind)
	ingestReferences(templateOp, tmpl.References)

	// Structural templates get their i18n block from the element the directive is placed on.
	opensBlock := templateKind == ir.TemplateKindNgTemplate && message != nil
	if opensBlock {
		in.i18nDepth++
	}
	in.ingestNodes(childView, tmpl.Children)
	if opensBlock {
		in.i18nDepth--
	}

	for _, variable := range tmpl.Variables {
		value := variable.Value
		if value == "" {
			value = "$implicit"
		}
		childView.AddContextVariable(variable.Name, value)
	}

	// If this is a plain template and there is an i18n message associated with it, insert i18n start
	// and end ops.
	if opensBlock {
		id := in.job.AllocateXrefId()
		childView.Create.InsertAfter(ops_create.NewI18nStartOp(id, message, nil), childView.Create.Head())
		childView.Create.InsertBefore(ops_create.NewI18nEndOp(id), childView.Create.Tail())
	}
}

// ingestContent ingests a content node from the AST into the given `ViewCompilationUnit`.
func (in *ingester) ingestContent(unit *compilation.ViewCompilationUnit, content *render3.Content) {
	placeholder, isTagPlaceholder := content.I18n.(*i18n.TagPlaceholder)
	if content.I18n != nil && !isTagPlaceholder {
		panic(fmt.Sprintf("Unhandled i18n metadata type for element: %T", content.I18n))
	}

	// Don't capture default content that's only made up of empty text nodes. Note that we process the
	// default content before the projection in order to match the insertion order at runtime.
	var fallbackXref *ir_operation.XrefId
	if hasNonEmptyContent(content.Children) {
		fallbackView := in.job.AllocateView(unit.Xref)
		in.ingestNodes(fallbackView, content.Children)
		fallbackXref = &fallbackView.Xref
	}

	id := in.job.AllocateXrefId()
	op := ops_create.NewProjectionOp(id, content.Selector, placeholder, fallbackXref)
	for _, attr := range content.Attributes {
		unit.Update.Push(ops_update.NewBindingOp(
			op.Xref,
			ir.BindingKindAttribute,
			attr.Name,
			output.NewLiteralExpr(attr.Value),
			nil,
			nil,
			[]core.SecurityContext{schema.SecurityContext("ng-content", attr.Name, true)},
			true,
			false,
			nil,
			render3.I18nMessage(attr.I18n),
		))
	}
	unit.Create.Push(op)
}

func hasNonEmptyContent(children []render3.Node) bool {
	for _, child := range children {
		text, isText := child.(*render3.Text)
		if !isText || strings.TrimSpace(text.Value) != "" {
			return true
		}
	}
	return false
}

// ingestText ingests a literal text node from the AST into the given `ViewCompilationUnit`.
func (in *ingester) ingestText(unit *compilation.ViewCompilationUnit, text *render3.Text) {
	if in.i18nDepth > 0 {
		return
	}
	unit.Create.Push(ops_create.NewTextOp(in.job.AllocateXrefId(), text.Value))
}

// ingestBoundText ingests an interpolated text node from the AST into the given `ViewCompilationUnit`.
func (in *ingester) ingestBoundText(unit *compilation.ViewCompilationUnit, text *render3.BoundText) {
	if text.Value == nil {
		panic("AssertionError: expected Interpolation for BoundText node")
	}
	// Inside an i18n block the text op is dropped later and its expressions bound into the message.
	textXref := in.job.AllocateXrefId()
	unit.Create.Push(ops_create.NewTextOp(textXref, ""))
	unit.Update.Push(ops_update.NewInterpolateTextOp(
		textXref,
		ops_update.NewInterpolation(
			text.Value.Strings,
			convertExpressions(in.job.CompilationJob, in.job.RootView().Xref, text.Value.Expressions),
			nil,
		),
	))
}

// ingestIfBlock ingests an `@if` block into the given `ViewCompilationUnit`.
func (in *ingester) ingestIfBlock(unit *compilation.ViewCompilationUnit, ifBlock *render3.IfBlock) {
	var first ops_create.EmbeddedViewOp
	conditions := make([]*ops_update.ConditionalCase, 0, len(ifBlock.Branches))

	for i, ifCase := range ifBlock.Branches {
		cView := in.job.AllocateView(unit.Xref)
		tagName := in.ingestControlFlowInsertionPoint(unit, cView.Xref, ifCase.Children)

		var alias *ir_variable.IdentifierVariable
		if ifCase.ExpressionAlias != nil {
			cView.AddContextVariable(ifCase.ExpressionAlias.Name, ir_variable.CTX_REF)
			alias = ir_variable.NewIdentifierVariable(ifCase.ExpressionAlias.Name, false)
		}

		op := newConditionalCreateOp(i == 0, cView.Xref, tagName, "Conditional", blockPlaceholder(ifCase.I18n, "if block"))
		unit.Create.Push(op)
		if first == nil {
			first = op
		}

		var caseExpr output.OutputExpression
		if ifCase.Expression != nil {
			caseExpr = convertAst(in.job.CompilationJob, in.job.RootView().Xref, ifCase.Expression)
		}
		conditions = append(conditions, ops_update.NewConditionalCase(caseExpr, op.GetXref(), op.GetConsumesSlotTrait().Handle, alias))
		in.ingestNodes(cView, ifCase.Children)
	}

	if first == nil {
		return
	}
	unit.Update.Push(ops_update.NewConditionalOp(first.GetXref(), first.GetConsumesSlotTrait().Handle, nil, conditions))
}

// ingestSwitchBlock ingests an `@switch` block into the given `ViewCompilationUnit`.
func (in *ingester) ingestSwitchBlock(unit *compilation.ViewCompilationUnit, switchBlock *render3.SwitchBlock) {
	// Don't ingest empty switches since they won't render anything.
	if len(switchBlock.Cases) == 0 {
		return
	}

	var first ops_create.EmbeddedViewOp
	conditions := make([]*ops_update.ConditionalCase, 0, len(switchBlock.Cases))

	for i, switchCase := range switchBlock.Cases {
		cView := in.job.AllocateView(unit.Xref)
		tagName := in.ingestControlFlowInsertionPoint(unit, cView.Xref, switchCase.Children)

		op := newConditionalCreateOp(i == 0, cView.Xref, tagName, "Case", blockPlaceholder(switchCase.I18n, "switch block"))
		unit.Create.Push(op)
		if first == nil {
			first = op
		}

		var caseExpr output.OutputExpression
		if switchCase.Expression != nil {
			caseExpr = convertAst(in.job.CompilationJob, in.job.RootView().Xref, switchCase.Expression)
		}
		conditions = append(conditions, ops_update.NewConditionalCase(caseExpr, op.GetXref(), op.GetConsumesSlotTrait().Handle, nil))
		in.ingestNodes(cView, switchCase.Children)
	}

	test := convertAst(in.job.CompilationJob, in.job.RootView().Xref, switchBlock.Expression)
	unit.Update.Push(ops_update.NewConditionalOp(first.GetXref(), first.GetConsumesSlotTrait().Handle, test, conditions))
}

func newConditionalCreateOp(
	isFirst bool,
	xref ir_operation.XrefId,
	tagName *string,
	suffix string,
	placeholder i18n.Placeholder,
) ops_create.EmbeddedViewOp {
	if isFirst {
		return ops_create.NewConditionalCreateOp(xref, tagName, suffix, placeholder)
	}
	return ops_create.NewConditionalBranchCreateOp(xref, tagName, suffix, placeholder)
}

// blockPlaceholder returns the block placeholder of a control flow branch, keeping a nil
// interface when there is none.
func blockPlaceholder(meta render3.I18nMeta, what string) i18n.Placeholder {
	if meta == nil {
		return nil
	}
	placeholder, ok := meta.(*i18n.BlockPlaceholder)
	if !ok {
		panic(fmt.Sprintf("Unhandled i18n metadata type for %s: %T", what, meta))
	}
	return placeholder
}

// ingestControlFlowInsertionPoint infers the tag name of a control flow block from its only root
// element, if there is exactly one, and copies that element's static attributes and inputs onto the
// block for content projection purposes.
func (in *ingester) ingestControlFlowInsertionPoint(
	unit *compilation.ViewCompilationUnit,
	xref ir_operation.XrefId,
	children []render3.Node,
) *string {
	var root render3.Node
	for _, child := range children {
		// We can only infer the tag name/attributes if there's a single root node.
		if root != nil {
			return nil
		}
		switch c := child.(type) {
		case *render3.Element:
			root = c
		case *render3.Template:
			// Root nodes can only be elements or templates with a tag name (e.g. `<div *foo></div>`).
			if c.TagName == nil {
				return nil
			}
			root = c
		default:
			return nil
		}
	}

	var tagName string
	var inputs []*render3.BoundAttribute
	switch r := root.(type) {
	case *render3.Element:
		tagName = r.Name
		inputs = r.Inputs
		// Collect the static attributes for content projection purposes.
		for _, attr := range r.Attributes {
			if strings.HasPrefix(attr.Name, animatePrefix) {
				continue
			}
			unit.Update.Push(ops_update.NewBindingOp(
				xref,
				ir.BindingKindAttribute,
				attr.Name,
				output.NewLiteralExpr(attr.Value),
				nil,
				nil,
				[]core.SecurityContext{schema.SecurityContext(ngTemplateTagName, attr.Name, true)},
				true,
				false,
				nil,
				render3.I18nMessage(attr.I18n),
			))
		}
	case *render3.Template:
		tagName = *r.TagName
		inputs = r.Inputs
	default:
		return nil
	}

	// Also collect the inputs since they participate in content projection as well.
	for _, input := range inputs {
		if input.Type == render3.BindingTypeLegacyAnimation ||
			input.Type == render3.BindingTypeAnimation ||
			input.Type == render3.BindingTypeAttribute {
			continue
		}
		unit.Create.Push(ops_create.NewExtractedAttributeOp(
			xref,
			ir.BindingKindProperty,
			nil,
			input.Name,
			nil,
			[]core.SecurityContext{schema.SecurityContext(ngTemplateTagName, input.Name, false)},
		))
	}

	// Don't pass along `ng-template` tag name since it enables directive matching.
	if tagName == ngTemplateTagName {
		return nil
	}
	return &tagName
}

// getComputedForLoopVariableExpression builds the expression computing a derived loop variable
// from the loop index and count.
func getComputedForLoopVariableExpression(variable *render3.Variable, indexName, countName string) output.OutputExpression {
	index := func() output.OutputExpression { return expression.NewLexicalReadExpr(indexName) }
	switch variable.Value {
	case "$index":
		return index()
	case "$count":
		return expression.NewLexicalReadExpr(countName)
	case "$first":
		return output.NewBinaryOperatorExpr(output.BinaryOperatorIdentical, index(), output.NewLiteralExpr(0))
	case "$last":
		return output.NewBinaryOperatorExpr(
			output.BinaryOperatorIdentical,
			index(),
			output.NewBinaryOperatorExpr(output.BinaryOperatorMinus, expression.NewLexicalReadExpr(countName), output.NewLiteralExpr(1)),
		)
	case "$even":
		return output.NewBinaryOperatorExpr(
			output.BinaryOperatorIdentical,
			output.NewBinaryOperatorExpr(output.BinaryOperatorModulo, index(), output.NewLiteralExpr(2)),
			output.NewLiteralExpr(0),
		)
	case "$odd":
		return output.NewBinaryOperatorExpr(
			output.BinaryOperatorNotIdentical,
			output.NewBinaryOperatorExpr(output.BinaryOperatorModulo, index(), output.NewLiteralExpr(2)),
			output.NewLiteralExpr(0),
		)
	default:
		panic(fmt.Sprintf("AssertionError: unknown @for loop variable %s", variable.Value))
	}
}

// ingestForBlock ingests a `@for` block into the given `ViewCompilationUnit`.
func (in *ingester) ingestForBlock(unit *compilation.ViewCompilationUnit, forBlock *render3.ForLoopBlock) {
	repeaterView := in.job.AllocateView(unit.Xref)

	// Names for `$count` and `$index` are suffixed with the view xref, to disambiguate which level
	// of nested loop the aliases below refer to.
	indexName := fmt.Sprintf("ɵ$index_%d", repeaterView.Xref)
	countName := fmt.Sprintf("ɵ$count_%d", repeaterView.Xref)
	var indexVarNames []string

	// Set all the context variables and aliases available in the repeater.
	repeaterView.AddContextVariable(forBlock.Item.Name, forBlock.Item.Value)
	for _, variable := range forBlock.ContextVariables {
		if variable.Value == "$index" {
			indexVarNames = append(indexVarNames, variable.Name)
		}
		switch variable.Name {
		case "$index":
			repeaterView.AddContextVariable("$index", variable.Value)
			repeaterView.AddContextVariable(indexName, variable.Value)
		case "$count":
			repeaterView.AddContextVariable("$count", variable.Value)
			repeaterView.AddContextVariable(countName, variable.Value)
		default:
			repeaterView.Aliases = append(repeaterView.Aliases, ir_variable.NewAliasVariable(
				variable.Name,
				getComputedForLoopVariableExpression(variable, indexName, countName),
			))
		}
	}

	track := convertAst(in.job.CompilationJob, in.job.RootView().Xref, forBlock.TrackBy)

	in.ingestNodes(repeaterView, forBlock.Children)

	var emptyXref *ir_operation.XrefId
	var emptyTagName *string
	var emptyPlaceholder i18n.Placeholder
	if forBlock.Empty != nil {
		emptyView := in.job.AllocateView(unit.Xref)
		in.ingestNodes(emptyView, forBlock.Empty.Children)
		emptyTagName = in.ingestControlFlowInsertionPoint(unit, emptyView.Xref, forBlock.Empty.Children)
		emptyXref = &emptyView.Xref
		emptyPlaceholder = blockPlaceholder(forBlock.Empty.I18n, "@empty")
	}

	varNames := ops_create.RepeaterVarNames{
		DollarIndex:    indexVarNames,
		DollarImplicit: forBlock.Item.Name,
	}

	tagName := in.ingestControlFlowInsertionPoint(unit, repeaterView.Xref, forBlock.Children)
	repeaterCreate := ops_create.NewRepeaterCreateOp(
		repeaterView.Xref,
		emptyXref,
		tagName,
		track,
		varNames,
		emptyTagName,
		blockPlaceholder(forBlock.I18n, "@for"),
		emptyPlaceholder,
	)
	unit.Create.Push(repeaterCreate)

	collection := convertAst(in.job.CompilationJob, in.job.RootView().Xref, forBlock.Expression)
	unit.Update.Push(ops_update.NewRepeaterOp(repeaterCreate.Xref, repeaterCreate.Handle, collection))
}

// makeListenerHandlerOps creates the body of a listener, which returns the value of the handler expression.
func makeListenerHandlerOps(job *compilation.CompilationJob, root ir_operation.XrefId, handler expression_parser.AST) *ir_operation.OpList {
	if handler == nil {
		panic("Expected listener to have non-empty expression list")
	}
	handlerOps := ir_operation.NewOpList()
	handlerOps.Push(ops_shared.NewStatementOp(output.NewReturnStatement(convertAst(job, root, handler))))
	return handlerOps
}

// makeTwoWayListenerHandlerOps creates the body of a two-way listener, which writes `$event` back to the bound target.
func makeTwoWayListenerHandlerOps(job *compilation.CompilationJob, root ir_operation.XrefId, handler expression_parser.AST) *ir_operation.OpList {
	handlerExpr := convertAst(job, root, handler)
	eventReference := expression.NewLexicalReadExpr("$event")
	handlerOps := ir_operation.NewOpList()
	handlerOps.Push(ops_shared.NewStatementOp(output.NewExpressionStatement(
		expression.NewTwoWayBindingSetExpr(handlerExpr, eventReference),
	)))
	handlerOps.Push(ops_shared.NewStatementOp(output.NewReturnStatement(eventReference)))
	return handlerOps
}

// templateBinding is either a binding that produces an update op, or one that only ends up in the consts
type templateBinding struct {
	binding   *ops_update.BindingOp
	extracted *ops_create.ExtractedAttributeOp
}

// createTemplateBinding creates the binding of an attribute, input or structural directive attribute of a template.
// A binding that does not really target the template yields an extracted attribute, or nothing at all.
func (in *ingester) createTemplateBinding(
	xref ir_operation.XrefId,
	bindingType render3.BindingType,
	name string,
	value expression_parser.AST,
	textValue *string,
	unit *string,
	securityContext core.SecurityContext,
	isStructuralTemplateAttribute bool,
	templateKind ir.TemplateKind,
	i18nMessage *i18n.Message,
) *templateBinding {
	isTextBinding := textValue != nil
	securityContexts := []core.SecurityContext{securityContext}

	// If this is a structural template, then several kinds of bindings should not result in an
	// update instruction.
	if templateKind == ir.TemplateKindStructural {
		if !isStructuralTemplateAttribute {
			switch bindingType {
			case render3.BindingTypeProperty, render3.BindingTypeClass, render3.BindingTypeStyle:
				// This binding is on an inner node of the structural template. It is still needed on the
				// ng-template's consts for directive matching, but gets no update instruction.
				return &templateBinding{extracted: ops_create.NewExtractedAttributeOp(
					xref, ir.BindingKindProperty, nil, name, nil, securityContexts,
				)}
			case render3.BindingTypeTwoWay:
				return &templateBinding{extracted: ops_create.NewExtractedAttributeOp(
					xref, ir.BindingKindTwoWayProperty, nil, name, nil, securityContexts,
				)}
			}
		}

		if !isTextBinding && (bindingType == render3.BindingTypeAttribute ||
			bindingType == render3.BindingTypeLegacyAnimation ||
			bindingType == render3.BindingTypeAnimation) {
			// Non-text attribute and animation bindings of the inner element don't show up on the
			// ng-template const array, so they are skipped entirely.
			return nil
		}
	}

	bindingKind := bindingKinds[bindingType]
	if templateKind == ir.TemplateKindNgTemplate {
		// Dynamic attribute, style and class bindings directly on an explicit ng-template become
		// `property` instructions.
		if bindingType == render3.BindingTypeClass ||
			bindingType == render3.BindingTypeStyle ||
			(bindingType == render3.BindingTypeAttribute && !isTextBinding) {
			bindingKind = ir.BindingKindProperty
		}
	}

	var expr output.OutputExpression
	var interpolation *ops_update.Interpolation
	if isTextBinding {
		expr = output.NewLiteralExpr(*textValue)
	} else {
		expr, interpolation = convertAstWithInterpolation(in.job.CompilationJob, in.job.RootView().Xref, value)
	}

	kind := templateKind
	return &templateBinding{binding: ops_update.NewBindingOp(
		xref,
		bindingKind,
		name,
		expr,
		interpolation,
		unit,
		securityContexts,
		isTextBinding,
		isStructuralTemplateAttribute,
		&kind,
		i18nMessage,
	)}
}

// ingestElementBindings converts the static attributes and inputs of an element to their IR representation.
func (in *ingester) ingestElementBindings(unit *compilation.ViewCompilationUnit, xref ir_operation.XrefId, element *render3.Element) {
	i18nAttributeBindingNames := make(map[string]bool)

	for _, attr := range element.Attributes {
		// Attribute literal bindings, such as `attr.foo="bar"`.
		unit.Update.Push(ops_update.NewBindingOp(
			xref,
			ir.BindingKindAttribute,
			attr.Name,
			output.NewLiteralExpr(attr.Value),
			nil,
			nil,
			[]core.SecurityContext{schema.SecurityContext(element.Name, attr.Name, true)},
			true,
			false,
			nil,
			render3.I18nMessage(attr.I18n),
		))
		if attr.I18n != nil {
			i18nAttributeBindingNames[attr.Name] = true
		}
	}

	for _, input := range element.Inputs {
		if i18nAttributeBindingNames[input.Name] {
			panic(fmt.Sprintf(
				"On component %s, the binding %s is both an i18n attribute and a property.",
				in.job.ComponentName,
				input.Name,
			))
		}
		// All dynamic bindings (both attribute and property bindings).
		expr, interpolation := convertAstWithInterpolation(in.job.CompilationJob, in.job.RootView().Xref, input.Value)
		unit.Update.Push(ops_update.NewBindingOp(
			xref,
			bindingKinds[input.Type],
			input.Name,
			expr,
			interpolation,
			input.Unit,
			[]core.SecurityContext{input.SecurityContext},
			false,
			false,
			nil,
			render3.I18nMessage(input.I18n),
		))
	}
}

// ingestElementEvents converts the outputs of an element, or of an explicit ng-template, to listeners.
func (in *ingester) ingestElementEvents(
	unit *compilation.ViewCompilationUnit,
	xref ir_operation.XrefId,
	handle *ir_traits.SlotHandle,
	tag *string,
	outputs []*render3.BoundEvent,
) {
	root := in.job.RootView().Xref
	for _, event := range outputs {
		switch event.Type {
		case render3.ParsedEventTypeTwoWay:
			unit.Create.Push(ops_create.NewTwoWayListenerOp(
				xref,
				handle,
				event.Name,
				tag,
				makeTwoWayListenerHandlerOps(in.job.CompilationJob, root, event.Handler),
			))
		case render3.ParsedEventTypeAnimation:
			unit.Create.Push(ops_create.NewAnimationListenerOp(
				xref,
				handle,
				event.Name,
				tag,
				animationKindOf(event.Name),
				makeListenerHandlerOps(in.job.CompilationJob, root, event.Handler),
				false,
			))
		default:
			if event.Type == render3.ParsedEventTypeLegacyAnimation && event.Phase == nil {
				panic("Animation listener should have a phase")
			}
			unit.Create.Push(ops_create.NewListenerOp(
				xref,
				handle,
				event.Name,
				tag,
				makeListenerHandlerOps(in.job.CompilationJob, root, event.Handler),
				event.Phase,
				event.Target,
				false,
			))
		}
	}
}

// ingestTemplateBindings converts all of the bindings on a template to their IR representation.
func (in *ingester) ingestTemplateBindings(
	unit *compilation.ViewCompilationUnit,
	op *ops_create.TemplateOp,
	tmpl *render3.Template,
	templateKind ir.TemplateKind,
) {
	var bindings []*templateBinding

	for _, attr := range tmpl.TemplateTextAttrs {
		value := attr.Value
		bindings = append(bindings, in.createTemplateBinding(
			op.Xref,
			render3.BindingTypeAttribute,
			attr.Name,
			nil,
			&value,
			nil,
			schema.SecurityContext(ngTemplateTagName, attr.Name, true),
			true,
			templateKind,
			render3.I18nMessage(attr.I18n),
		))
	}
	for _, attr := range tmpl.TemplateAttrs {
		bindings = append(bindings, in.createTemplateBinding(
			op.Xref,
			attr.Type,
			attr.Name,
			attr.Value,
			nil,
			attr.Unit,
			attr.SecurityContext,
			true,
			templateKind,
			render3.I18nMessage(attr.I18n),
		))
	}
	for _, attr := range tmpl.Attributes {
		// Attribute literal bindings, such as `attr.foo="bar"`.
		value := attr.Value
		bindings = append(bindings, in.createTemplateBinding(
			op.Xref,
			render3.BindingTypeAttribute,
			attr.Name,
			nil,
			&value,
			nil,
			schema.SecurityContext(ngTemplateTagName, attr.Name, true),
			false,
			templateKind,
			render3.I18nMessage(attr.I18n),
		))
	}
	for _, input := range tmpl.Inputs {
		// Dynamic bindings (both attribute and property bindings).
		bindings = append(bindings, in.createTemplateBinding(
			op.Xref,
			input.Type,
			input.Name,
			input.Value,
			nil,
			input.Unit,
			input.SecurityContext,
			false,
			templateKind,
			render3.I18nMessage(input.I18n),
		))
	}

	for _, b := range bindings {
		switch {
		case b == nil:
		case b.extracted != nil:
			unit.Create.Push(b.extracted)
		default:
			unit.Update.Push(b.binding)
		}
	}

	// Outputs of a structural template belong to the element inside it.
	if templateKind == ir.TemplateKindNgTemplate {
		in.ingestElementEvents(unit, op.Xref, op.Handle, op.Tag, tmpl.Outputs)
	}
}

// ingestReferences records the local references of an element or template on its op.
func ingestReferences(op ops_create.ElementOrContainerOp, references []*render3.Reference) {
	base := op.GetElementOrContainerBase()
	for _, ref := range references {
		base.LocalRefs = append(base.LocalRefs, ops_create.LocalRef{Name: ref.Name, Target: ref.Value})
	}
}

func animationKindOf(name string) ir.AnimationKind {
	if strings.HasSuffix(name, "enter") {
		return ir.AnimationKindEnter
	}
	return ir.AnimationKindLeave
}

func convertExpressions(job *compilation.CompilationJob, root ir_operation.XrefId, asts []expression_parser.AST) []output.OutputExpression {
	result := make([]output.OutputExpression, len(asts))
	for i, ast := range asts {
		result[i] = convertAst(job, root, ast)
	}
	return result
}

// convertAstWithInterpolation converts a bound value, which is either a single expression or an interpolation.
func convertAstWithInterpolation(
	job *compilation.CompilationJob,
	root ir_operation.XrefId,
	value expression_parser.AST,
) (output.OutputExpression, *ops_update.Interpolation) {
	if interpolation, ok := value.(*expression_parser.Interpolation); ok {
		return nil, ops_update.NewInterpolation(
			interpolation.Strings,
			convertExpressions(job, root, interpolation.Expressions),
			nil,
		)
	}
	return convertAst(job, root, value), nil
}

// convertAst converts a template AST expression into an output AST expression. Reads from the implicit
// receiver stay lexical until names are resolved; `this` is the context of the root view.
func convertAst(job *compilation.CompilationJob, root ir_operation.XrefId, ast expression_parser.AST) output.OutputExpression {
	switch a := ast.(type) {
	case *expression_parser.PropertyRead:
		if _, isImplicit := a.Receiver.(*expression_parser.ImplicitReceiver); isImplicit {
			return expression.NewLexicalReadExpr(a.Name)
		}
		return output.NewReadPropExpr(convertAst(job, root, a.Receiver), a.Name)
	case *expression_parser.Call:
		if _, isImplicit := a.Receiver.(*expression_parser.ImplicitReceiver); isImplicit {
			panic("Unexpected ImplicitReceiver")
		}
		return output.NewInvokeFunctionExpr(convertAst(job, root, a.Receiver), convertExpressions(job, root, a.Args), false)
	case *expression_parser.LiteralPrimitive:
		return output.NewLiteralExpr(a.Value)
	case *expression_parser.Unary:
		switch a.Operator {
		case "+":
			return output.NewUnaryOperatorExpr(output.UnaryOperatorPlus, convertAst(job, root, a.Expr))
		case "-":
			return output.NewUnaryOperatorExpr(output.UnaryOperatorMinus, convertAst(job, root, a.Expr))
		default:
			panic(fmt.Sprintf("AssertionError: unknown unary operator %s", a.Operator))
		}
	case *expression_parser.Binary:
		operator, ok := pipeline_convension.BinaryOperators[a.Operation]
		if !ok {
			panic(fmt.Sprintf("AssertionError: unknown binary operator %s", a.Operation))
		}
		return output.NewBinaryOperatorExpr(operator, convertAst(job, root, a.Left), convertAst(job, root, a.Right))
	case *expression_parser.ThisReceiver:
		return expression.NewContextExpr(root)
	case *expression_parser.KeyedRead:
		return output.NewReadKeyExpr(convertAst(job, root, a.Receiver), convertAst(job, root, a.Key))
	case *expression_parser.LiteralMap:
		entries := make([]*output.LiteralMapEntry, len(a.Keys))
		for i, key := range a.Keys {
			entries[i] = output.NewLiteralMapEntry(key.Key, convertAst(job, root, a.Values[i]), key.Quoted)
		}
		return output.NewLiteralMapExpr(entries)
	case *expression_parser.LiteralArray:
		return output.NewLiteralArrayExpr(convertExpressions(job, root, a.Expressions))
	case *expression_parser.Conditional:
		return output.NewConditionalExpr(
			convertAst(job, root, a.Condition),
			convertAst(job, root, a.TrueExp),
			convertAst(job, root, a.FalseExp),
		)
	case *expression_parser.BindingPipe:
		args := make([]output.OutputExpression, 0, 1+len(a.Args))
		args = append(args, convertAst(job, root, a.Exp))
		args = append(args, convertExpressions(job, root, a.Args)...)
		return expression.NewPipeBindingExpr(job.AllocateXrefId(), ir_traits.NewSlotHandle(), a.Name, args)
	case *expression_parser.SafeKeyedRead:
		return expression.NewSafeKeyedReadExpr(convertAst(job, root, a.Receiver), convertAst(job, root, a.Key))
	case *expression_parser.SafePropertyRead:
		return expression.NewSafePropertyReadExpr(convertAst(job, root, a.Receiver), a.Name)
	case *expression_parser.SafeCall:
		return expression.NewSafeInvokeFunctionExpr(convertAst(job, root, a.Receiver), convertExpressions(job, root, a.Args))
	case *expression_parser.PrefixNot:
		return output.NewNotExpr(convertAst(job, root, a.Expression))
	case *expression_parser.TypeofExpression:
		return output.NewTypeofExpr(convertAst(job, root, a.Expression))
	case *expression_parser.Interpolation:
		panic("AssertionError: Interpolation in unknown context")
	default:
		panic(fmt.Sprintf("Unhandled expression type \"%T\"", ast))
	}
}
