package ast

import (
	"minicc/internal/source"
)

// Unit is one parsed translation unit: the ordered top-level
// declarations of a single file.
type Unit struct {
	Span  source.Span
	Decls []DeclID
}

type Hints struct{ Decls, Stmts, Exprs, Types uint }

// Builder owns all node arenas for one parse. It is not safe for
// concurrent use; each compilation builds its own.
type Builder struct {
	Decls *Decls
	Stmts *Stmts
	Exprs *Exprs
	Types *Types
	Unit  Unit
}

func NewBuilder(hints Hints) *Builder {
	if hints.Decls == 0 {
		hints.Decls = 1 << 7
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Types == 0 {
		hints.Types = 1 << 6
	}
	return &Builder{
		Decls: NewDecls(hints.Decls),
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
		Types: NewTypes(hints.Types),
	}
}

// PushDecl appends a top-level declaration to the unit.
func (b *Builder) PushDecl(decl DeclID) {
	b.Unit.Decls = append(b.Unit.Decls, decl)
}
