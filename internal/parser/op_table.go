package parser

import (
	"minicc/internal/ast"
	"minicc/internal/token"
)

// Binary operator precedence, higher binds tighter. Comma, assignment,
// and the conditional operator are handled structurally and do not
// appear here.
const (
	precLogicalOr      = 1 // ||
	precLogicalAnd     = 2 // &&
	precBitwiseOr      = 3 // |
	precBitwiseXor     = 4 // ^
	precBitwiseAnd     = 5 // &
	precEquality       = 6 // == !=
	precRelational     = 7 // < <= > >=
	precShift          = 8 // << >>
	precAdditive       = 9 // + -
	precMultiplicative = 10 // * / %
)

// binaryPrec returns the precedence for a binary operator token, or -1
// when the token is not a binary operator.
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.OrOr:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd
	case token.Pipe:
		return precBitwiseOr
	case token.Caret:
		return precBitwiseXor
	case token.Amp:
		return precBitwiseAnd
	case token.EqEq, token.BangEq:
		return precEquality
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precRelational
	case token.Shl, token.Shr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	default:
		return -1
	}
}

func binaryOpFor(kind token.Kind) ast.BinaryOp {
	switch kind {
	case token.Plus:
		return ast.BinAdd
	case token.Minus:
		return ast.BinSub
	case token.Star:
		return ast.BinMul
	case token.Slash:
		return ast.BinDiv
	case token.Percent:
		return ast.BinRem
	case token.Shl:
		return ast.BinShl
	case token.Shr:
		return ast.BinShr
	case token.Lt:
		return ast.BinLt
	case token.Gt:
		return ast.BinGt
	case token.LtEq:
		return ast.BinLe
	case token.GtEq:
		return ast.BinGe
	case token.EqEq:
		return ast.BinEq
	case token.BangEq:
		return ast.BinNe
	case token.Amp:
		return ast.BinBitAnd
	case token.Caret:
		return ast.BinBitXor
	case token.Pipe:
		return ast.BinBitOr
	case token.AndAnd:
		return ast.BinLogAnd
	case token.OrOr:
		return ast.BinLogOr
	default:
		return ast.BinAdd // unreachable when binaryPrec filtered the token
	}
}

func assignOpFor(kind token.Kind) (ast.AssignOp, bool) {
	switch kind {
	case token.Assign:
		return ast.AssignPlain, true
	case token.PlusAssign:
		return ast.AssignAdd, true
	case token.MinusAssign:
		return ast.AssignSub, true
	case token.StarAssign:
		return ast.AssignMul, true
	case token.SlashAssign:
		return ast.AssignDiv, true
	case token.PercentAssign:
		return ast.AssignRem, true
	case token.ShlAssign:
		return ast.AssignShl, true
	case token.ShrAssign:
		return ast.AssignShr, true
	case token.AmpAssign:
		return ast.AssignAnd, true
	case token.PipeAssign:
		return ast.AssignOr, true
	case token.CaretAssign:
		return ast.AssignXor, true
	default:
		return 0, false
	}
}

// prefixOpFor maps a token to a prefix unary operator.
func prefixOpFor(kind token.Kind) (ast.UnaryOp, bool) {
	switch kind {
	case token.Plus:
		return ast.UnaryPlus, true
	case token.Minus:
		return ast.UnaryNeg, true
	case token.Bang:
		return ast.UnaryNot, true
	case token.Tilde:
		return ast.UnaryBitNot, true
	case token.Star:
		return ast.UnaryDeref, true
	case token.Amp:
		return ast.UnaryAddrOf, true
	case token.PlusPlus:
		return ast.UnaryPreInc, true
	case token.MinusMinus:
		return ast.UnaryPreDec, true
	default:
		return 0, false
	}
}
