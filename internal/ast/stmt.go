package ast

import (
	"minicc/internal/source"
)

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtDecl
	StmtCompound
	StmtIf
	StmtWhile
	StmtDoWhile
	StmtFor
	StmtSwitch
	StmtReturn
	StmtBreak
	StmtContinue
	StmtEmpty
)

// Stmt is a statement node header. Payload indexes the arena that
// matches Kind; StmtBreak, StmtContinue, and StmtEmpty carry none.
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload uint32
}

type StmtExprData struct {
	Expr ExprID
}

// StmtDeclData holds the declarations of one local declaration
// statement; "int a, b;" produces two.
type StmtDeclData struct {
	Decls []DeclID
}

type StmtCompoundData struct {
	Stmts []StmtID
}

// StmtIfData: Else is NoStmtID when absent.
type StmtIfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

// StmtForData: Init is a declaration or expression statement, or
// NoStmtID; Cond and Post are NoExprID when their clause is empty.
type StmtForData struct {
	Init StmtID
	Cond ExprID
	Post ExprID
	Body StmtID
}

// SwitchCase is one case (or default, when Value is NoExprID) arm with
// the statements under its label.
type SwitchCase struct {
	Value ExprID
	Body  []StmtID
	Span  source.Span
}

type StmtSwitchData struct {
	Cond  ExprID
	Cases []SwitchCase
}

// StmtReturnData: Value is NoExprID for a bare "return;".
type StmtReturnData struct {
	Value ExprID
}

// Stmts manages allocation of statements.
type Stmts struct {
	Arena     *Arena[Stmt]
	ExprData  *Arena[StmtExprData]
	DeclData  *Arena[StmtDeclData]
	Compounds *Arena[StmtCompoundData]
	Ifs       *Arena[StmtIfData]
	Whiles    *Arena[StmtWhileData]
	Fors      *Arena[StmtForData]
	Switches  *Arena[StmtSwitchData]
	Returns   *Arena[StmtReturnData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:     NewArena[Stmt](capHint),
		ExprData:  NewArena[StmtExprData](capHint),
		DeclData:  NewArena[StmtDeclData](capHint),
		Compounds: NewArena[StmtCompoundData](capHint),
		Ifs:       NewArena[StmtIfData](capHint),
		Whiles:    NewArena[StmtWhileData](capHint),
		Fors:      NewArena[StmtForData](capHint),
		Switches:  NewArena[StmtSwitchData](capHint),
		Returns:   NewArena[StmtReturnData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: payload}))
}

// Get returns the statement header for the given ID.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	payload := s.ExprData.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, payload)
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr {
		return nil, false
	}
	return s.ExprData.Get(st.Payload), true
}

func (s *Stmts) NewDecl(span source.Span, decls []DeclID) StmtID {
	payload := s.DeclData.Allocate(StmtDeclData{Decls: append([]DeclID(nil), decls...)})
	return s.new(StmtDecl, span, payload)
}

func (s *Stmts) Decl(id StmtID) (*StmtDeclData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtDecl {
		return nil, false
	}
	return s.DeclData.Get(st.Payload), true
}

func (s *Stmts) NewCompound(span source.Span, stmts []StmtID) StmtID {
	payload := s.Compounds.Allocate(StmtCompoundData{Stmts: append([]StmtID(nil), stmts...)})
	return s.new(StmtCompound, span, payload)
}

func (s *Stmts) Compound(id StmtID) (*StmtCompoundData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtCompound {
		return nil, false
	}
	return s.Compounds.Get(st.Payload), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	payload := s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, span, payload)
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(st.Payload), true
}

// NewWhile creates a while or do-while loop depending on kind.
func (s *Stmts) NewWhile(span source.Span, kind StmtKind, cond ExprID, body StmtID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(kind, span, payload)
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	st := s.Get(id)
	if st == nil || (st.Kind != StmtWhile && st.Kind != StmtDoWhile) {
		return nil, false
	}
	return s.Whiles.Get(st.Payload), true
}

func (s *Stmts) NewFor(span source.Span, init StmtID, cond, post ExprID, body StmtID) StmtID {
	payload := s.Fors.Allocate(StmtForData{Init: init, Cond: cond, Post: post, Body: body})
	return s.new(StmtFor, span, payload)
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtFor {
		return nil, false
	}
	return s.Fors.Get(st.Payload), true
}

func (s *Stmts) NewSwitch(span source.Span, cond ExprID, cases []SwitchCase) StmtID {
	payload := s.Switches.Allocate(StmtSwitchData{Cond: cond, Cases: append([]SwitchCase(nil), cases...)})
	return s.new(StmtSwitch, span, payload)
}

func (s *Stmts) Switch(id StmtID) (*StmtSwitchData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtSwitch {
		return nil, false
	}
	return s.Switches.Get(st.Payload), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	payload := s.Returns.Allocate(StmtReturnData{Value: value})
	return s.new(StmtReturn, span, payload)
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(st.Payload), true
}

func (s *Stmts) NewBreak(span source.Span) StmtID    { return s.new(StmtBreak, span, 0) }
func (s *Stmts) NewContinue(span source.Span) StmtID { return s.new(StmtContinue, span, 0) }
func (s *Stmts) NewEmpty(span source.Span) StmtID    { return s.new(StmtEmpty, span, 0) }
