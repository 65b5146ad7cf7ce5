package constant

import (
	"fmt"
	"strconv"
	"strings"

	"ngc-pipeline/packages/compiler/src/output"
)

const (
	constantPrefix = "_c"
	// PoolInclusionLengthThresholdForStrings is the length from which a string literal is pooled.
	// Every other primitive value stays inline.
	PoolInclusionLengthThresholdForStrings = 50
)

// UnknownValueKey stands in for dynamic expressions that can't be turned into a key.
// Given `{foo: bar()}` the key becomes `{foo:read(<unknown>)}`.
var UnknownValueKey = output.NewReadVarExpr("<unknown>")

// FixupExpression is a placeholder for a pooled literal. The pool hands it out
// on first use and later points it at the shared declaration, which rewrites
// every use that was handed out before.
type FixupExpression struct {
	original output.OutputExpression
	resolved output.OutputExpression
	shared   bool
}

// NewFixupExpression creates a new FixupExpression that initially resolves to the literal itself
func NewFixupExpression(resolved output.OutputExpression) *FixupExpression {
	return &FixupExpression{
		original: resolved,
		resolved: resolved,
	}
}

func (f *FixupExpression) VisitExpression(visitor output.ExpressionVisitor, context interface{}) interface{} {
	return f.resolved.VisitExpression(visitor, context)
}

func (f *FixupExpression) IsEquivalent(e output.OutputExpression) bool {
	if other, ok := e.(*FixupExpression); ok {
		return f.resolved.IsEquivalent(other.resolved)
	}
	return false
}

func (f *FixupExpression) IsConstant() bool {
	return true
}

func (f *FixupExpression) Clone() output.OutputExpression {
	panic("AssertionError: FixupExpression cannot be cloned")
}

// Resolved returns the expression this fixup currently prints as
func (f *FixupExpression) Resolved() output.OutputExpression {
	return f.resolved
}

// Shared reports whether the literal has been promoted to a declaration
func (f *FixupExpression) Shared() bool {
	return f.shared
}

// Fixup points the placeholder at its shared declaration
func (f *FixupExpression) Fixup(expression output.OutputExpression) {
	f.resolved = expression
	f.shared = true
}

// ConstantPool collects the top-level declarations of one compilation job.
// A pool is owned by exactly one job and is not safe for concurrent use.
type ConstantPool struct {
	statements       []output.OutputStatement
	literals         map[string]*FixupExpression
	literalFactories map[string]output.OutputExpression
	sharedConstants  map[string]output.OutputExpression
	claimedNames     map[string]int
}

// NewConstantPool creates a new ConstantPool
func NewConstantPool() *ConstantPool {
	return &ConstantPool{
		literals:         make(map[string]*FixupExpression),
		literalFactories: make(map[string]output.OutputExpression),
		sharedConstants:  make(map[string]output.OutputExpression),
		claimedNames:     make(map[string]int),
	}
}

// GetConstLiteral returns a reference to a constant literal. Simple literals
// are returned as is. Anything else is remembered on the first request and
// promoted to `const _cN = literal` on the second request, or immediately when
// forceShared is set.
func (cp *ConstantPool) GetConstLiteral(literal output.OutputExpression, forceShared bool) output.OutputExpression {
	if (isLiteralExpr(literal) && !isLongStringLiteral(literal)) || isFixupExpression(literal) {
		// Do not pool simple literals or references to a pooled constant.
		return literal
	}
	key := GenericKeyFnInstance.KeyOf(literal)
	fixup, exists := cp.literals[key]
	if !exists {
		fixup = NewFixupExpression(literal)
		cp.literals[key] = fixup
	}

	if (exists && !fixup.shared) || (!exists && forceShared) {
		name := cp.freshName()
		cp.statements = append(cp.statements, output.NewDeclareVarStmt(name, literal, output.StmtModifierFinal))
		fixup.Fixup(output.NewReadVarExpr(name))
	}
	return fixup
}

// GetSharedConstant declares `def`'s rendition of expr once per distinct key
// and returns a reference to that declaration
func (cp *ConstantPool) GetSharedConstant(def SharedConstantDefinition, expr output.OutputExpression) output.OutputExpression {
	key := def.KeyOf(expr)
	if _, exists := cp.sharedConstants[key]; !exists {
		id := cp.freshName()
		cp.sharedConstants[key] = output.NewReadVarExpr(id)
		cp.statements = append(cp.statements, def.ToSharedConstantDeclaration(id, expr))
	}
	return cp.sharedConstants[key]
}

// GetLiteralFactory returns a pure factory for an array or map literal mixing
// constant and dynamic entries, plus the dynamic entries to call it with
func (cp *ConstantPool) GetLiteralFactory(literal output.OutputExpression) (output.OutputExpression, []output.OutputExpression) {
	switch lit := literal.(type) {
	case *output.LiteralArrayExpr:
		argumentsForKey := make([]output.OutputExpression, len(lit.Entries))
		for i, e := range lit.Entries {
			if e.IsConstant() {
				argumentsForKey[i] = e
			} else {
				argumentsForKey[i] = UnknownValueKey
			}
		}
		key := GenericKeyFnInstance.KeyOf(output.NewLiteralArrayExpr(argumentsForKey))
		return cp.getLiteralFactory(key, lit.Entries, func(entries []output.OutputExpression) output.OutputExpression {
			return output.NewLiteralArrayExpr(entries)
		})
	case *output.LiteralMapExpr:
		keyEntries := make([]*output.LiteralMapEntry, len(lit.Entries))
		values := make([]output.OutputExpression, len(lit.Entries))
		for i, e := range lit.Entries {
			value := e.Value
			if !value.IsConstant() {
				value = UnknownValueKey
			}
			keyEntries[i] = output.NewLiteralMapEntry(e.Key, value, e.Quoted)
			values[i] = e.Value
		}
		key := GenericKeyFnInstance.KeyOf(output.NewLiteralMapExpr(keyEntries))
		return cp.getLiteralFactory(key, values, func(entries []output.OutputExpression) output.OutputExpression {
			mapEntries := make([]*output.LiteralMapEntry, len(entries))
			for i, value := range entries {
				mapEntries[i] = output.NewLiteralMapEntry(lit.Entries[i].Key, value, lit.Entries[i].Quoted)
			}
			return output.NewLiteralMapExpr(mapEntries)
		})
	}
	panic(fmt.Sprintf("AssertionError: GetLiteralFactory only supports array and map literals, got %T", literal))
}

func (cp *ConstantPool) getLiteralFactory(
	key string,
	values []output.OutputExpression,
	resultMap func([]output.OutputExpression) output.OutputExpression,
) (output.OutputExpression, []output.OutputExpression) {
	var args []output.OutputExpression
	for _, e := range values {
		if !e.IsConstant() {
			args = append(args, e)
		}
	}
	if factory, exists := cp.literalFactories[key]; exists {
		return factory, args
	}

	result := make([]output.OutputExpression, len(values))
	var params []*output.FnParam
	for i, e := range values {
		if e.IsConstant() {
			result[i] = cp.GetConstLiteral(e, true)
			continue
		}
		name := fmt.Sprintf("a%d", i)
		result[i] = output.NewReadVarExpr(name)
		params = append(params, output.NewFnParam(name))
	}
	name := cp.freshName()
	cp.statements = append(cp.statements, output.NewDeclareVarStmt(
		name,
		output.NewArrowFunctionExpr(params, resultMap(result)),
		output.StmtModifierFinal,
	))
	factory := output.NewReadVarExpr(name)
	cp.literalFactories[key] = factory
	return factory, args
}

// GetSharedFunctionReference returns a reference to a declared function that
// is structurally equivalent to fn, declaring fn first if there is none
func (cp *ConstantPool) GetSharedFunctionReference(fn output.OutputExpression, prefix string, useUniqueName bool) output.OutputExpression {
	_, isArrow := fn.(*output.ArrowFunctionExpr)

	for _, current := range cp.statements {
		switch stmt := current.(type) {
		case *output.DeclareVarStmt:
			// Arrow functions are declared as variables.
			if isArrow && stmt.Value != nil && stmt.Value.IsEquivalent(fn) {
				return output.NewReadVarExpr(stmt.Name)
			}
		case *output.DeclareFunctionStmt:
			if fnExpr, ok := fn.(*output.FunctionExpr); ok && fnExpr.IsEquivalentToStmt(stmt) {
				return output.NewReadVarExpr(stmt.Name)
			}
		}
	}

	name := cp.UniqueName(prefix, useUniqueName)
	if fnExpr, ok := fn.(*output.FunctionExpr); ok {
		cp.statements = append(cp.statements, fnExpr.ToDeclStmt(name, output.StmtModifierFinal))
	} else {
		cp.statements = append(cp.statements, output.NewDeclareVarStmt(name, fn, output.StmtModifierFinal))
	}
	return output.NewReadVarExpr(name)
}

// UniqueName produces a unique name in the context of this pool.
// The prefix should be a constant string that does not end in a digit, since
// `a1` + `1` and `a` + `11` would otherwise collide.
func (cp *ConstantPool) UniqueName(name string, alwaysIncludeSuffix bool) string {
	count := cp.claimedNames[name]
	cp.claimedNames[name] = count + 1
	if count == 0 && !alwaysIncludeSuffix {
		return name
	}
	return fmt.Sprintf("%s%d", name, count)
}

func (cp *ConstantPool) freshName() string {
	return cp.UniqueName(constantPrefix, true)
}

// Statements returns all declarations of the pool in declaration order
func (cp *ConstantPool) Statements() []output.OutputStatement {
	return cp.statements
}

// AddStatement appends a declaration to the pool
func (cp *ConstantPool) AddStatement(stmt output.OutputStatement) {
	cp.statements = append(cp.statements, stmt)
}

// ExpressionKeyFn produces the dedup key of an expression
type ExpressionKeyFn interface {
	KeyOf(expr output.OutputExpression) string
}

// SharedConstantDefinition describes how a family of shared constants is declared
type SharedConstantDefinition interface {
	ExpressionKeyFn
	ToSharedConstantDeclaration(declName string, keyExpr output.OutputExpression) output.OutputStatement
}

// GenericKeyFn generates structural keys for literal expressions
type GenericKeyFn struct{}

var GenericKeyFnInstance = &GenericKeyFn{}

func (g *GenericKeyFn) KeyOf(expr output.OutputExpression) string {
	switch e := expr.(type) {
	case *output.LiteralExpr:
		if str, ok := e.Value.(string); ok {
			return strconv.Quote(str)
		}
		return fmt.Sprintf("%v", e.Value)
	case *output.LiteralArrayExpr:
		entries := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			entries[i] = g.KeyOf(entry)
		}
		return "[" + strings.Join(entries, ",") + "]"
	case *output.LiteralMapExpr:
		entries := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			key := entry.Key
			if entry.Quoted {
				key = strconv.Quote(key)
			}
			entries[i] = key + ":" + g.KeyOf(entry.Value)
		}
		return "{" + strings.Join(entries, ",") + "}"
	case *output.ExternalExpr:
		return fmt.Sprintf("import(%q, %q)", e.Value.ModuleName, e.Value.Name)
	case *output.ReadVarExpr:
		return fmt.Sprintf("read(%s)", e.Name)
	case *output.TypeofExpr:
		return fmt.Sprintf("typeof(%s)", g.KeyOf(e.Expr))
	case *FixupExpression:
		// Key the constant, not the variable referring to it.
		return g.KeyOf(e.original)
	default:
		panic(fmt.Sprintf("AssertionError: GenericKeyFn does not handle expressions of type %T", expr))
	}
}

func isLongStringLiteral(expr output.OutputExpression) bool {
	if lit, ok := expr.(*output.LiteralExpr); ok {
		if str, ok := lit.Value.(string); ok {
			return len(str) >= PoolInclusionLengthThresholdForStrings
		}
	}
	return false
}

func isLiteralExpr(expr output.OutputExpression) bool {
	_, ok := expr.(*output.LiteralExpr)
	return ok
}

func isFixupExpression(expr output.OutputExpression) bool {
	_, ok := expr.(*FixupExpression)
	return ok
}
