package pipeline

import (
	"fmt"
	"log"
	"time"

	"ngc-pipeline/packages/compiler/src/output"
	constant_pool "ngc-pipeline/packages/compiler/src/pool"
	"ngc-pipeline/packages/compiler/src/render3"

	"ngc-pipeline/packages/compiler/src/template/pipeline/src/compilation"
)

// ComponentMetadata is everything the pipeline needs to know about a component
type ComponentMetadata struct {
	Name     string
	Template []render3.Node
	Mode     compilation.TemplateCompilationMode
	Host     *HostBindings
}

// Options tunes a single compilation
type Options struct {
	// Logger receives phase timings and the job summary. Nil keeps the pipeline silent.
	Logger *log.Logger
}

// CompiledComponent is the output of compiling one component
type CompiledComponent struct {
	TemplateFn     *output.FunctionExpr
	HostBindingsFn *output.FunctionExpr

	Decls    int
	Vars     int
	HostVars int

	// Consts is the `consts` array, or a function returning it when i18n messages need initializers.
	// Nil when the template has no consts.
	Consts             output.OutputExpression
	HostAttrs          *output.LiteralArrayExpr
	NgContentSelectors output.OutputExpression

	// Statements declared into the constant pool: child view functions, shared constants and
	// track functions.
	Statements []output.OutputStatement
}

// InternalError is an invariant violation inside the pipeline. It aborts the whole component.
type InternalError struct {
	Component string
	Message   string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error compiling %s: %s", e.Component, e.Message)
}

// CompileComponent ingests, transforms and emits the template and host bindings of a component.
// Each call uses its own constant pool.
func CompileComponent(meta *ComponentMetadata, opts Options) (compiled *CompiledComponent, err error) {
	defer func() {
		if r := recover(); r != nil {
			compiled = nil
			err = &InternalError{Component: meta.Name, Message: fmt.Sprint(r)}
		}
	}()

	start := time.Now()
	pool := constant_pool.NewConstantPool()

	job := IngestComponent(meta.Name, meta.Template, pool, meta.Mode)
	transform(job, opts.Logger)
	compiled = &CompiledComponent{
		TemplateFn:         EmitTemplateFn(job, pool),
		Consts:             constsOf(job),
		NgContentSelectors: job.ContentSelectors,
	}
	if decls := job.RootView().Decls; decls != nil {
		compiled.Decls = *decls
	}
	if vars := job.RootView().Vars; vars != nil {
		compiled.Vars = *vars
	}

	if !meta.Host.IsEmpty() {
		hostJob := IngestHostBinding(meta.Name, meta.Host, pool)
		transform(hostJob, opts.Logger)
		compiled.HostBindingsFn = EmitHostBindingFunction(hostJob)
		compiled.HostAttrs = hostJob.HostUnit().Attributes
		if vars := hostJob.HostUnit().Vars; vars != nil {
			compiled.HostVars = *vars
		}
	}

	compiled.Statements = pool.Statements()

	if opts.Logger != nil {
		opts.Logger.Printf(
			"%s: %d views, decls=%d vars=%d hostVars=%d, %d pool statements in %s",
			meta.Name,
			len(job.Views()),
			compiled.Decls,
			compiled.Vars,
			compiled.HostVars,
			len(compiled.Statements),
			time.Since(start),
		)
	}
	return compiled, nil
}

func constsOf(job *compilation.ComponentCompilationJob) output.OutputExpression {
	if len(job.Consts) == 0 {
		return nil
	}
	consts := output.NewLiteralArrayExpr(job.Consts)
	if len(job.ConstsInitializers) == 0 {
		return consts
	}
	// Messages are declared in a factory that returns the consts array.
	statements := make([]output.OutputStatement, 0, len(job.ConstsInitializers)+1)
	statements = append(statements, job.ConstsInitializers...)
	statements = append(statements, output.NewReturnStatement(consts))
	return output.NewFunctionExpr(nil, statements, nil)
}

// Print renders the compiled component as a JS module body: pool statements first, then the
// component definition fields.
func (c *CompiledComponent) Print() string {
	statements := make([]output.OutputStatement, 0, len(c.Statements)+6)
	statements = append(statements, c.Statements...)
	declare := func(name string, value output.OutputExpression) {
		statements = append(statements, output.NewDeclareVarStmt(name, value, output.StmtModifierFinal))
	}
	declare("decls", output.NewLiteralExpr(c.Decls))
	declare("vars", output.NewLiteralExpr(c.Vars))
	if c.Consts != nil {
		declare("consts", c.Consts)
	}
	if c.NgContentSelectors != nil {
		declare("ngContentSelectors", c.NgContentSelectors)
	}
	declare("template", c.TemplateFn)
	if c.HostBindingsFn != nil {
		declare("hostVars", output.NewLiteralExpr(c.HostVars))
		declare("hostBindings", c.HostBindingsFn)
	}
	if c.HostAttrs != nil {
		declare("hostAttrs", c.HostAttrs)
	}
	return output.EmitStatements(statements)
}
