package compilation

import (
	"fmt"
	"iter"

	"ngc-pipeline/packages/compiler/src/output"
	constant "ngc-pipeline/packages/compiler/src/pool"
	ir_operation "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/operations"
	ops_create "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/ops/create"
	ir_variable "ngc-pipeline/packages/compiler/src/template/pipeline/ir/src/variable"
)

// CompilationJobKind represents the kind of compilation job
type CompilationJobKind int

const (
	// CompilationJobKindTmpl - Template compilation
	CompilationJobKindTmpl CompilationJobKind = iota
	// CompilationJobKindHost - Host binding compilation
	CompilationJobKindHost
	// CompilationJobKindBoth - A special value used to indicate that some logic applies to both compilation types
	CompilationJobKindBoth
)

// TemplateCompilationMode represents possible modes in which a component's template can be compiled
type TemplateCompilationMode int

const (
	// TemplateCompilationModeFull - Supports the full instruction set, including directives
	TemplateCompilationModeFull TemplateCompilationMode = iota
	// TemplateCompilationModeDomOnly - Uses a narrower instruction set that doesn't support directives and allows optimizations
	TemplateCompilationModeDomOnly
)

// CompilationJob is an entire ongoing compilation, which will result in one or more template functions when complete.
// Contains one or more corresponding compilation units.
type CompilationJob struct {
	ComponentName string
	Pool          *constant.ConstantPool
	Mode          TemplateCompilationMode
	Kind          CompilationJobKind
	nextXrefId    ir_operation.XrefId
}

// NewCompilationJob creates a new CompilationJob
func NewCompilationJob(componentName string, pool *constant.ConstantPool, mode TemplateCompilationMode, kind CompilationJobKind) *CompilationJob {
	return &CompilationJob{
		ComponentName: componentName,
		Pool:          pool,
		Mode:          mode,
		Kind:          kind,
	}
}

// AllocateXrefId generates a new unique `XrefId` in this job
func (j *CompilationJob) AllocateXrefId() ir_operation.XrefId {
	id := j.nextXrefId
	j.nextXrefId++
	return id
}

// Job is implemented by ComponentCompilationJob and HostBindingCompilationJob
type Job interface {
	Base() *CompilationJob
	Units() []CompilationUnit
	Root() CompilationUnit
	// FnSuffix identifies the kind of job in generated function names.
	FnSuffix() string
}

// CompilationUnit is compiled into a template function. Some example units are views and host bindings.
// Units hold no reference to their job.
type CompilationUnit interface {
	GetXref() ir_operation.XrefId
	GetCreate() *ir_operation.OpList
	GetUpdate() *ir_operation.OpList
	GetFnName() *string
	SetFnName(name string)
	GetVars() *int
	SetVars(vars int)
}

// AllOps iterates every op of every unit of the job: the create list, then the update list,
// of each unit in turn. Handler bodies and track function bodies follow their owning op.
func AllOps(job Job) iter.Seq[ir_operation.Op] {
	return func(yield func(ir_operation.Op) bool) {
		for _, unit := range job.Units() {
			for op := range UnitOps(unit) {
				if !yield(op) {
					return
				}
			}
		}
	}
}

// UnitOps iterates the ops of one unit like AllOps
func UnitOps(unit CompilationUnit) iter.Seq[ir_operation.Op] {
	return func(yield func(ir_operation.Op) bool) {
		for op := range unit.GetCreate().All() {
			if !yield(op) {
				return
			}
			var nested *ir_operation.OpList
			switch o := op.(type) {
			case ops_create.HandlerOp:
				nested = o.GetHandlerOps()
			case *ops_create.RepeaterCreateOp:
				nested = o.TrackByOps
			}
			if nested == nil {
				continue
			}
			for inner := range nested.All() {
				if !yield(inner) {
					return
				}
			}
		}
		for op := range unit.GetUpdate().All() {
			if !yield(op) {
				return
			}
		}
	}
}

// ComponentCompilationJob is compilation-in-progress of a whole component's template,
// including the main template and any embedded views.
//
// Views live in an arena in allocation order; xrefs index into it.
type ComponentCompilationJob struct {
	*CompilationJob
	views     []*ViewCompilationUnit
	viewIndex map[ir_operation.XrefId]int

	// The `ngContentSelectors` of the component, nil when nothing is projected.
	ContentSelectors   output.OutputExpression
	Consts             []output.OutputExpression
	ConstsInitializers []output.OutputStatement
}

// NewComponentCompilationJob creates a new ComponentCompilationJob with its root view
func NewComponentCompilationJob(componentName string, pool *constant.ConstantPool, mode TemplateCompilationMode) *ComponentCompilationJob {
	job := &ComponentCompilationJob{
		CompilationJob: NewCompilationJob(componentName, pool, mode, CompilationJobKindTmpl),
		viewIndex:      make(map[ir_operation.XrefId]int),
	}
	job.addView(NewViewCompilationUnit(job.AllocateXrefId(), nil))
	return job
}

func (j *ComponentCompilationJob) addView(view *ViewCompilationUnit) {
	j.viewIndex[view.Xref] = len(j.views)
	j.views = append(j.views, view)
}

// AllocateView adds a `ViewCompilationUnit` for a new embedded view to this compilation
func (j *ComponentCompilationJob) AllocateView(parent ir_operation.XrefId) *ViewCompilationUnit {
	view := NewViewCompilationUnit(j.AllocateXrefId(), &parent)
	j.addView(view)
	return view
}

// View looks a view up by xref
func (j *ComponentCompilationJob) View(xref ir_operation.XrefId) (*ViewCompilationUnit, bool) {
	idx, ok := j.viewIndex[xref]
	if !ok {
		return nil, false
	}
	return j.views[idx], true
}

// MustView looks a view up by xref and fails when there is none
func (j *ComponentCompilationJob) MustView(xref ir_operation.XrefId) *ViewCompilationUnit {
	view, ok := j.View(xref)
	if !ok {
		panic(fmt.Sprintf("AssertionError: no view for xref %d", xref))
	}
	return view
}

// Views returns the views in allocation order
func (j *ComponentCompilationJob) Views() []*ViewCompilationUnit {
	return j.views
}

// RootView returns the root view
func (j *ComponentCompilationJob) RootView() *ViewCompilationUnit {
	return j.views[0]
}

// Base returns the shared job state
func (j *ComponentCompilationJob) Base() *CompilationJob {
	return j.CompilationJob
}

// Units returns all view compilation units in allocation order
func (j *ComponentCompilationJob) Units() []CompilationUnit {
	units := make([]CompilationUnit, len(j.views))
	for i, view := range j.views {
		units[i] = view
	}
	return units
}

// Root returns the root view compilation unit
func (j *ComponentCompilationJob) Root() CompilationUnit {
	return j.RootView()
}

// FnSuffix returns the function suffix for template compilation
func (j *ComponentCompilationJob) FnSuffix() string {
	return "Template"
}

// AddConst adds a constant expression to the compilation and returns its index in the `consts` array.
// Structurally equivalent constants share an index.
func (j *ComponentCompilationJob) AddConst(newConst output.OutputExpression, initializers []output.OutputStatement) ir_operation.ConstIndex {
	for idx, existing := range j.Consts {
		if existing.IsEquivalent(newConst) {
			return ir_operation.ConstIndex(idx)
		}
	}
	idx := len(j.Consts)
	j.Consts = append(j.Consts, newConst)
	j.ConstsInitializers = append(j.ConstsInitializers, initializers...)
	return ir_operation.ConstIndex(idx)
}

// ContextVariable maps an identifier in a view to a property of the view's context
type ContextVariable struct {
	Identifier string
	Value      string
}

// ViewCompilationUnit is compilation-in-progress of an individual view within a template.
type ViewCompilationUnit struct {
	Xref   ir_operation.XrefId
	Parent *ir_operation.XrefId
	Create *ir_operation.OpList
	Update *ir_operation.OpList
	FnName *string
	Vars   *int
	Decls  *int

	// Identifiers declared by the view, in declaration order. The value is the
	// name of the context property holding them (`$implicit` for `let-item`).
	ContextVariables []ContextVariable

	// Computed loop variables such as `$first`, always inlined.
	Aliases []*ir_variable.AliasVariable
}

// NewViewCompilationUnit creates a new ViewCompilationUnit
func NewViewCompilationUnit(xref ir_operation.XrefId, parent *ir_operation.XrefId) *ViewCompilationUnit {
	return &ViewCompilationUnit{
		Xref:   xref,
		Parent: parent,
		Create: ir_operation.NewOpList(),
		Update: ir_operation.NewOpList(),
	}
}

// AddContextVariable declares identifier as reading value from the view context
func (v *ViewCompilationUnit) AddContextVariable(identifier, value string) {
	v.ContextVariables = append(v.ContextVariables, ContextVariable{Identifier: identifier, Value: value})
}

func (v *ViewCompilationUnit) GetXref() ir_operation.XrefId     { return v.Xref }
func (v *ViewCompilationUnit) GetCreate() *ir_operation.OpList { return v.Create }
func (v *ViewCompilationUnit) GetUpdate() *ir_operation.OpList { return v.Update }
func (v *ViewCompilationUnit) GetFnName() *string              { return v.FnName }
func (v *ViewCompilationUnit) SetFnName(name string)           { v.FnName = &name }
func (v *ViewCompilationUnit) GetVars() *int                   { return v.Vars }
func (v *ViewCompilationUnit) SetVars(vars int)                { v.Vars = &vars }

// HostBindingCompilationJob is the compilation of a component's host bindings. It has exactly one unit.
type HostBindingCompilationJob struct {
	*CompilationJob
	unit *HostBindingCompilationUnit
}

// NewHostBindingCompilationJob creates a new HostBindingCompilationJob
func NewHostBindingCompilationJob(componentName string, pool *constant.ConstantPool, mode TemplateCompilationMode) *HostBindingCompilationJob {
	job := &HostBindingCompilationJob{
		CompilationJob: NewCompilationJob(componentName, pool, mode, CompilationJobKindHost),
	}
	job.unit = NewHostBindingCompilationUnit(job.AllocateXrefId())
	return job
}

// Base returns the shared job state
func (j *HostBindingCompilationJob) Base() *CompilationJob {
	return j.CompilationJob
}

// Units returns the single host unit
func (j *HostBindingCompilationJob) Units() []CompilationUnit {
	return []CompilationUnit{j.unit}
}

// Root returns the host unit
func (j *HostBindingCompilationJob) Root() CompilationUnit {
	return j.unit
}

// HostUnit returns the host unit with its concrete type
func (j *HostBindingCompilationJob) HostUnit() *HostBindingCompilationUnit {
	return j.unit
}

// FnSuffix returns the function suffix for host binding compilation
func (j *HostBindingCompilationJob) FnSuffix() string {
	return "HostBindings"
}

// HostBindingCompilationUnit holds the ops of the host bindings
type HostBindingCompilationUnit struct {
	Xref   ir_operation.XrefId
	Create *ir_operation.OpList
	Update *ir_operation.OpList
	FnName *string
	Vars   *int

	// Static host attributes, collected from extracted attributes.
	Attributes *output.LiteralArrayExpr
}

// NewHostBindingCompilationUnit creates a new HostBindingCompilationUnit
func NewHostBindingCompilationUnit(xref ir_operation.XrefId) *HostBindingCompilationUnit {
	return &HostBindingCompilationUnit{
		Xref:   xref,
		Create: ir_operation.NewOpList(),
		Update: ir_operation.NewOpList(),
	}
}

func (h *HostBindingCompilationUnit) GetXref() ir_operation.XrefId     { return h.Xref }
func (h *HostBindingCompilationUnit) GetCreate() *ir_operation.OpList { return h.Create }
func (h *HostBindingCompilationUnit) GetUpdate() *ir_operation.OpList { return h.Update }
func (h *HostBindingCompilationUnit) GetFnName() *string              { return h.FnName }
func (h *HostBindingCompilationUnit) SetFnName(name string)           { h.FnName = &name }
func (h *HostBindingCompilationUnit) GetVars() *int                   { return h.Vars }
func (h *HostBindingCompilationUnit) SetVars(vars int)                { h.Vars = &vars }
