// Package sema performs semantic analysis: name resolution, type
// checking, and constant folding. It consumes the parser's AST and
// produces an Info side table that the IR generator reads; the AST
// itself is never mutated.
package sema

import (
	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/source"
	"minicc/internal/symbols"
	"minicc/internal/types"
)

// Info is everything later stages need to know about the checked unit.
type Info struct {
	Table *symbols.Table
	Types *types.Interner

	// ExprTypes records the checked type of every expression, set
	// exactly once per expression during the walk. Expressions that
	// failed to check carry types.NoTypeID.
	ExprTypes map[ast.ExprID]types.TypeID

	// ExprSyms maps identifier expressions to the symbol they resolve to.
	ExprSyms map[ast.ExprID]symbols.SymbolID

	// DeclSyms maps declarations to their symbol.
	DeclSyms map[ast.DeclID]symbols.SymbolID

	// ParamSyms maps a function definition to its parameter symbols in
	// declaration order. Unnamed parameters hold NoSymbolID.
	ParamSyms map[ast.DeclID][]symbols.SymbolID

	// Folded holds folded integer constant values: every integer and
	// character literal, plus expressions that were required to be
	// constant (array sizes, enumerators, case labels, global
	// initializers) and folded successfully.
	Folded map[ast.ExprID]int64

	// FoldedFloats holds folded floating constants.
	FoldedFloats map[ast.ExprID]float64

	// Strings holds the decoded bytes of string literals, without the
	// terminating NUL.
	Strings map[ast.ExprID]string
}

// TypeOf returns the checked type of an expression.
func (i *Info) TypeOf(id ast.ExprID) types.TypeID {
	return i.ExprTypes[id]
}

type Options struct {
	Reporter diag.Reporter
}

// Checker walks one unit. It is per-call state; nothing is shared
// between compilations.
type Checker struct {
	b     *ast.Builder
	names *source.Interner
	info  *Info
	opts  Options

	scope symbols.ScopeID

	// resolved memoizes type syntax lowering; declaration lists share
	// specifier nodes across declarators.
	resolved map[ast.TypeID]types.TypeID

	fnRet       types.TypeID
	fnName      source.StringID
	loopDepth   int
	switchDepth int
	errored     bool
}

// Check analyzes the unit in the builder and returns the collected Info.
func Check(b *ast.Builder, names *source.Interner, opts Options) *Info {
	info := &Info{
		Table:        symbols.NewTable(),
		Types:        types.NewInterner(),
		ExprTypes:    make(map[ast.ExprID]types.TypeID, b.Exprs.Arena.Len()),
		ExprSyms:     make(map[ast.ExprID]symbols.SymbolID),
		DeclSyms:     make(map[ast.DeclID]symbols.SymbolID),
		ParamSyms:    make(map[ast.DeclID][]symbols.SymbolID),
		Folded:       make(map[ast.ExprID]int64),
		FoldedFloats: make(map[ast.ExprID]float64),
		Strings:      make(map[ast.ExprID]string),
	}
	c := &Checker{
		b:        b,
		names:    names,
		info:     info,
		opts:     opts,
		scope:    info.Table.Global(),
		resolved: make(map[ast.TypeID]types.TypeID),
	}
	for _, decl := range b.Unit.Decls {
		c.checkTopDecl(decl)
	}
	return info
}

func (c *Checker) report(kind diag.Kind, sp source.Span, msg string, notes ...diag.Note) {
	c.errored = true
	if c.opts.Reporter != nil {
		c.opts.Reporter.Report(kind, diag.SevError, sp, msg, notes)
	}
}

func (c *Checker) warn(kind diag.Kind, sp source.Span, msg string) {
	if c.opts.Reporter != nil {
		c.opts.Reporter.Report(kind, diag.SevWarning, sp, msg, nil)
	}
}

func (c *Checker) lookupName(id source.StringID) string {
	s, ok := c.names.Lookup(id)
	if !ok {
		return "<unknown>"
	}
	return s
}

func (c *Checker) typeString(id types.TypeID) string {
	return c.info.Types.String(id, c.names)
}

// setExprType records the checked type of an expression. Each
// expression is visited once; a second write is a checker defect.
func (c *Checker) setExprType(id ast.ExprID, t types.TypeID) types.TypeID {
	if _, dup := c.info.ExprTypes[id]; dup {
		panic("sema: expression type set twice")
	}
	c.info.ExprTypes[id] = t
	return t
}

func (c *Checker) pushScope() symbols.ScopeID {
	prev := c.scope
	c.scope = c.info.Table.NewScope(prev)
	return prev
}

func (c *Checker) popScope(prev symbols.ScopeID) {
	c.scope = prev
}
