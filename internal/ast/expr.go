package ast

import (
	"minicc/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprUnary
	ExprBinary
	ExprAssign
	ExprCond
	ExprCall
	ExprIndex
	ExprMember
	ExprCast
	ExprSizeof
)

// Expr is an expression node header. Payload indexes the arena that
// matches Kind.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload uint32
}

// LitKind distinguishes literal spellings; the raw text is kept and
// decoded during semantic analysis.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitChar
	LitString
)

// UnaryOp covers prefix and postfix unary operators.
type UnaryOp uint8

const (
	UnaryPlus UnaryOp = iota
	UnaryNeg
	UnaryNot    // !
	UnaryBitNot // ~
	UnaryDeref  // *
	UnaryAddrOf // &
	UnaryPreInc
	UnaryPreDec
	UnaryPostInc
	UnaryPostDec
)

var unaryNames = [...]string{
	UnaryPlus:   "+",
	UnaryNeg:    "-",
	UnaryNot:    "!",
	UnaryBitNot: "~",
	UnaryDeref:  "*",
	UnaryAddrOf: "&",
	UnaryPreInc: "++",
	UnaryPreDec: "--",
	UnaryPostInc: "++",
	UnaryPostDec: "--",
}

func (op UnaryOp) String() string {
	if int(op) < len(unaryNames) {
		return unaryNames[op]
	}
	return "?"
}

// IsPostfix reports whether the operator follows its operand.
func (op UnaryOp) IsPostfix() bool {
	return op == UnaryPostInc || op == UnaryPostDec
}

type BinaryOp uint8

const (
	BinMul BinaryOp = iota
	BinDiv
	BinRem
	BinAdd
	BinSub
	BinShl
	BinShr
	BinLt
	BinGt
	BinLe
	BinGe
	BinEq
	BinNe
	BinBitAnd
	BinBitXor
	BinBitOr
	BinLogAnd
	BinLogOr
	BinComma
)

var binaryNames = [...]string{
	BinMul:    "*",
	BinDiv:    "/",
	BinRem:    "%",
	BinAdd:    "+",
	BinSub:    "-",
	BinShl:    "<<",
	BinShr:    ">>",
	BinLt:     "<",
	BinGt:     ">",
	BinLe:     "<=",
	BinGe:     ">=",
	BinEq:     "==",
	BinNe:     "!=",
	BinBitAnd: "&",
	BinBitXor: "^",
	BinBitOr:  "|",
	BinLogAnd: "&&",
	BinLogOr:  "||",
	BinComma:  ",",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryNames) {
		return binaryNames[op]
	}
	return "?"
}

// AssignOp: AssignPlain is "=", the rest are the compound forms.
type AssignOp uint8

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignRem
	AssignShl
	AssignShr
	AssignAnd
	AssignOr
	AssignXor
)

var assignNames = [...]string{
	AssignPlain: "=",
	AssignAdd:   "+=",
	AssignSub:   "-=",
	AssignMul:   "*=",
	AssignDiv:   "/=",
	AssignRem:   "%=",
	AssignShl:   "<<=",
	AssignShr:   ">>=",
	AssignAnd:   "&=",
	AssignOr:    "|=",
	AssignXor:   "^=",
}

func (op AssignOp) String() string {
	if int(op) < len(assignNames) {
		return assignNames[op]
	}
	return "?"
}

// BinaryOp returns the arithmetic operation a compound assignment
// performs; ok is false for plain "=".
func (op AssignOp) BinaryOp() (BinaryOp, bool) {
	switch op {
	case AssignAdd:
		return BinAdd, true
	case AssignSub:
		return BinSub, true
	case AssignMul:
		return BinMul, true
	case AssignDiv:
		return BinDiv, true
	case AssignRem:
		return BinRem, true
	case AssignShl:
		return BinShl, true
	case AssignShr:
		return BinShr, true
	case AssignAnd:
		return BinBitAnd, true
	case AssignOr:
		return BinBitOr, true
	case AssignXor:
		return BinBitXor, true
	default:
		return 0, false
	}
}

type ExprIdentData struct {
	Name source.StringID
}

type ExprLitData struct {
	Kind LitKind
	Text source.StringID // raw source spelling, including quotes and suffixes
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprAssignData struct {
	Op     AssignOp
	Target ExprID
	Value  ExprID
}

type ExprCondData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprIndexData struct {
	Base  ExprID
	Index ExprID
}

type ExprMemberData struct {
	Base     ExprID
	Name     source.StringID
	Arrow    bool // p->f rather than s.f
	NameSpan source.Span
}

type ExprCastData struct {
	Type  TypeID
	Value ExprID
}

// ExprSizeofData: exactly one of Type and Value is set.
type ExprSizeofData struct {
	Type  TypeID
	Value ExprID
}
