package ast

import (
	"minicc/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[ExprIdentData]
	Literals *Arena[ExprLitData]
	Unaries  *Arena[ExprUnaryData]
	Binaries *Arena[ExprBinaryData]
	Assigns  *Arena[ExprAssignData]
	Conds    *Arena[ExprCondData]
	Calls    *Arena[ExprCallData]
	Indices  *Arena[ExprIndexData]
	Members  *Arena[ExprMemberData]
	Casts    *Arena[ExprCastData]
	Sizeofs  *Arena[ExprSizeofData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Literals: NewArena[ExprLitData](capHint),
		Unaries:  NewArena[ExprUnaryData](capHint),
		Binaries: NewArena[ExprBinaryData](capHint),
		Assigns:  NewArena[ExprAssignData](capHint),
		Conds:    NewArena[ExprCondData](capHint),
		Calls:    NewArena[ExprCallData](capHint),
		Indices:  NewArena[ExprIndexData](capHint),
		Members:  NewArena[ExprMemberData](capHint),
		Casts:    NewArena[ExprCastData](capHint),
		Sizeofs:  NewArena[ExprSizeofData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

// Get returns the expression header for the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, payload)
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(expr.Payload), true
}

func (e *Exprs) NewLiteral(span source.Span, kind LitKind, text source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLitData{Kind: kind, Text: text})
	return e.new(ExprLit, span, payload)
}

func (e *Exprs) Literal(id ExprID) (*ExprLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(expr.Payload), true
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, payload)
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(expr.Payload), true
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, payload)
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(expr.Payload), true
}

func (e *Exprs) NewAssign(span source.Span, op AssignOp, target, value ExprID) ExprID {
	payload := e.Assigns.Allocate(ExprAssignData{Op: op, Target: target, Value: value})
	return e.new(ExprAssign, span, payload)
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAssign {
		return nil, false
	}
	return e.Assigns.Get(expr.Payload), true
}

func (e *Exprs) NewCond(span source.Span, cond, then, els ExprID) ExprID {
	payload := e.Conds.Allocate(ExprCondData{Cond: cond, Then: then, Else: els})
	return e.new(ExprCond, span, payload)
}

func (e *Exprs) Cond(id ExprID) (*ExprCondData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCond {
		return nil, false
	}
	return e.Conds.Get(expr.Payload), true
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Callee: callee,
		Args:   append([]ExprID(nil), args...),
	})
	return e.new(ExprCall, span, payload)
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(expr.Payload), true
}

func (e *Exprs) NewIndex(span source.Span, base, index ExprID) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{Base: base, Index: index})
	return e.new(ExprIndex, span, payload)
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(expr.Payload), true
}

func (e *Exprs) NewMember(span source.Span, base ExprID, name source.StringID, arrow bool, nameSpan source.Span) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Base: base, Name: name, Arrow: arrow, NameSpan: nameSpan})
	return e.new(ExprMember, span, payload)
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMember {
		return nil, false
	}
	return e.Members.Get(expr.Payload), true
}

func (e *Exprs) NewCast(span source.Span, typ TypeID, value ExprID) ExprID {
	payload := e.Casts.Allocate(ExprCastData{Type: typ, Value: value})
	return e.new(ExprCast, span, payload)
}

func (e *Exprs) Cast(id ExprID) (*ExprCastData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCast {
		return nil, false
	}
	return e.Casts.Get(expr.Payload), true
}

func (e *Exprs) NewSizeof(span source.Span, typ TypeID, value ExprID) ExprID {
	payload := e.Sizeofs.Allocate(ExprSizeofData{Type: typ, Value: value})
	return e.new(ExprSizeof, span, payload)
}

func (e *Exprs) Sizeof(id ExprID) (*ExprSizeofData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSizeof {
		return nil, false
	}
	return e.Sizeofs.Get(expr.Payload), true
}
