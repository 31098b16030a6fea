package ast

import (
	"minicc/internal/source"
)

type DeclKind uint8

const (
	DeclVar DeclKind = iota
	DeclFunc
	DeclTypedef
	DeclTag // struct/union/enum declared for its tag only: "struct point { ... };"
)

// Decl is a declaration node header. Payload indexes the arena that
// matches Kind.
type Decl struct {
	Kind    DeclKind
	Span    source.Span
	Payload uint32
}

// DeclVarData: Init is NoExprID when the declarator has no initializer.
type DeclVarData struct {
	Name     source.StringID
	Type     TypeID
	Init     ExprID
	NameSpan source.Span
}

// DeclFuncData: Type is the full function type; Body is NoStmtID for a
// prototype.
type DeclFuncData struct {
	Name     source.StringID
	Type     TypeID
	Body     StmtID
	NameSpan source.Span
}

type DeclTypedefData struct {
	Name     source.StringID
	Type     TypeID
	NameSpan source.Span
}

// DeclTagData wraps the record or enum type node that introduced the tag.
type DeclTagData struct {
	Type TypeID
}

// Param is a function parameter. Name may be NoStringID in prototypes.
type Param struct {
	Name     source.StringID
	Type     TypeID
	Span     source.Span
	NameSpan source.Span
}

// Decls manages allocation of declarations.
type Decls struct {
	Arena    *Arena[Decl]
	Vars     *Arena[DeclVarData]
	Funcs    *Arena[DeclFuncData]
	Typedefs *Arena[DeclTypedefData]
	Tags     *Arena[DeclTagData]
	Params   *Arena[Param]
}

func NewDecls(capHint uint) *Decls {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Decls{
		Arena:    NewArena[Decl](capHint),
		Vars:     NewArena[DeclVarData](capHint),
		Funcs:    NewArena[DeclFuncData](capHint),
		Typedefs: NewArena[DeclTypedefData](capHint),
		Tags:     NewArena[DeclTagData](capHint),
		Params:   NewArena[Param](capHint),
	}
}

func (d *Decls) new(kind DeclKind, span source.Span, payload uint32) DeclID {
	return DeclID(d.Arena.Allocate(Decl{Kind: kind, Span: span, Payload: payload}))
}

// Get returns the declaration header for the given ID.
func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}

func (d *Decls) NewVar(span source.Span, name source.StringID, typ TypeID, init ExprID, nameSpan source.Span) DeclID {
	payload := d.Vars.Allocate(DeclVarData{Name: name, Type: typ, Init: init, NameSpan: nameSpan})
	return d.new(DeclVar, span, payload)
}

func (d *Decls) Var(id DeclID) (*DeclVarData, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclVar {
		return nil, false
	}
	return d.Vars.Get(decl.Payload), true
}

func (d *Decls) NewFunc(span source.Span, name source.StringID, typ TypeID, body StmtID, nameSpan source.Span) DeclID {
	payload := d.Funcs.Allocate(DeclFuncData{Name: name, Type: typ, Body: body, NameSpan: nameSpan})
	return d.new(DeclFunc, span, payload)
}

func (d *Decls) Func(id DeclID) (*DeclFuncData, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclFunc {
		return nil, false
	}
	return d.Funcs.Get(decl.Payload), true
}

func (d *Decls) NewTypedef(span source.Span, name source.StringID, typ TypeID, nameSpan source.Span) DeclID {
	payload := d.Typedefs.Allocate(DeclTypedefData{Name: name, Type: typ, NameSpan: nameSpan})
	return d.new(DeclTypedef, span, payload)
}

func (d *Decls) Typedef(id DeclID) (*DeclTypedefData, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclTypedef {
		return nil, false
	}
	return d.Typedefs.Get(decl.Payload), true
}

func (d *Decls) NewTag(span source.Span, typ TypeID) DeclID {
	payload := d.Tags.Allocate(DeclTagData{Type: typ})
	return d.new(DeclTag, span, payload)
}

func (d *Decls) Tag(id DeclID) (*DeclTagData, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclTag {
		return nil, false
	}
	return d.Tags.Get(decl.Payload), true
}

func (d *Decls) NewParam(span source.Span, name source.StringID, typ TypeID, nameSpan source.Span) ParamID {
	return ParamID(d.Params.Allocate(Param{Name: name, Type: typ, Span: span, NameSpan: nameSpan}))
}

func (d *Decls) Param(id ParamID) *Param {
	return d.Params.Get(uint32(id))
}
