package sema

import (
	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/types"
)

// foldInt evaluates an integer constant expression. The result is the
// two's-complement bit pattern; unsigned values read back via uint64
// conversion. Non-constant expressions and division by zero are
// reported here, once, at the offending node.
func (c *Checker) foldInt(id ast.ExprID) (int64, bool) {
	if v, ok := c.info.Folded[id]; ok {
		return v, true
	}
	expr := c.b.Exprs.Get(id)
	if expr == nil {
		return 0, false
	}
	if !c.info.TypeOf(id).IsValid() {
		// Already failed to check; stay quiet.
		return 0, false
	}

	switch expr.Kind {
	case ast.ExprUnary:
		return c.foldUnary(id)
	case ast.ExprBinary:
		return c.foldBinary(id)
	case ast.ExprCond:
		data, _ := c.b.Exprs.Cond(id)
		cond, ok := c.foldInt(data.Cond)
		if !ok {
			return 0, false
		}
		if cond != 0 {
			return c.foldInt(data.Then)
		}
		return c.foldInt(data.Else)
	case ast.ExprCast:
		data, _ := c.b.Exprs.Cast(id)
		target := c.info.TypeOf(id)
		if !c.info.Types.IsInteger(target) {
			break
		}
		if c.info.Types.IsFloating(c.info.TypeOf(data.Value)) {
			f, ok := c.foldFloat(data.Value)
			if !ok {
				return 0, false
			}
			return c.memoInt(id, c.truncInt(int64(f), target)), true
		}
		v, ok := c.foldInt(data.Value)
		if !ok {
			return 0, false
		}
		return c.memoInt(id, c.truncInt(v, target)), true
	}
	c.report(diag.KindConstantEvaluationError, expr.Span,
		"expression is not an integer constant expression")
	return 0, false
}

func (c *Checker) memoInt(id ast.ExprID, v int64) int64 {
	c.info.Folded[id] = v
	return v
}

func (c *Checker) foldUnary(id ast.ExprID) (int64, bool) {
	data, _ := c.b.Exprs.Unary(id)
	switch data.Op {
	case ast.UnaryPlus, ast.UnaryNeg, ast.UnaryBitNot, ast.UnaryNot:
	default:
		c.report(diag.KindConstantEvaluationError, c.b.Exprs.Get(id).Span,
			"expression is not an integer constant expression")
		return 0, false
	}
	v, ok := c.foldInt(data.Operand)
	if !ok {
		return 0, false
	}
	switch data.Op {
	case ast.UnaryNeg:
		v = -v
	case ast.UnaryBitNot:
		v = ^v
	case ast.UnaryNot:
		if v == 0 {
			v = 1
		} else {
			v = 0
		}
	}
	return c.memoInt(id, c.truncInt(v, c.info.TypeOf(id))), true
}

func (c *Checker) foldBinary(id ast.ExprID) (int64, bool) {
	data, _ := c.b.Exprs.Binary(id)
	if data.Op == ast.BinComma {
		c.report(diag.KindConstantEvaluationError, c.b.Exprs.Get(id).Span,
			"comma expression is not an integer constant expression")
		return 0, false
	}

	l, ok := c.foldInt(data.Left)
	if !ok {
		return 0, false
	}

	// && and || short-circuit: the unevaluated side need not be constant.
	switch data.Op {
	case ast.BinLogAnd:
		if l == 0 {
			return c.memoInt(id, 0), true
		}
		r, ok := c.foldInt(data.Right)
		if !ok {
			return 0, false
		}
		return c.memoInt(id, boolVal(r != 0)), true
	case ast.BinLogOr:
		if l != 0 {
			return c.memoInt(id, 1), true
		}
		r, ok := c.foldInt(data.Right)
		if !ok {
			return 0, false
		}
		return c.memoInt(id, boolVal(r != 0)), true
	}

	r, ok := c.foldInt(data.Right)
	if !ok {
		return 0, false
	}

	resT := c.info.TypeOf(id)
	unsigned := c.isUnsignedInt(resT)
	var v int64
	switch data.Op {
	case ast.BinAdd:
		v = l + r
	case ast.BinSub:
		v = l - r
	case ast.BinMul:
		v = l * r
	case ast.BinDiv, ast.BinRem:
		if r == 0 {
			c.report(diag.KindConstantEvaluationError, c.b.Exprs.Get(id).Span,
				"division by zero in constant expression")
			return 0, false
		}
		if unsigned {
			if data.Op == ast.BinDiv {
				v = int64(uint64(l) / uint64(r))
			} else {
				v = int64(uint64(l) % uint64(r))
			}
		} else {
			if data.Op == ast.BinDiv {
				v = l / r
			} else {
				v = l % r
			}
		}
	case ast.BinShl:
		v = l << (uint64(r) & 63)
	case ast.BinShr:
		if unsigned {
			v = int64(uint64(l) >> (uint64(r) & 63))
		} else {
			v = l >> (uint64(r) & 63)
		}
	case ast.BinBitAnd:
		v = l & r
	case ast.BinBitOr:
		v = l | r
	case ast.BinBitXor:
		v = l ^ r
	case ast.BinLt, ast.BinGt, ast.BinLe, ast.BinGe, ast.BinEq, ast.BinNe:
		return c.memoInt(id, c.foldCompare(data.Op, l, r, data.Left, data.Right)), true
	default:
		return 0, false
	}
	return c.memoInt(id, c.truncInt(v, resT)), true
}

func (c *Checker) foldCompare(op ast.BinaryOp, l, r int64, le, re ast.ExprID) int64 {
	// Compare in the common type of the operands so -1 > 0u holds.
	common, _ := c.info.Types.UsualArithmetic(
		c.info.Types.Decay(c.info.TypeOf(le)),
		c.info.Types.Decay(c.info.TypeOf(re)),
	)
	if c.isUnsignedInt(common) {
		ul, ur := uint64(l), uint64(r)
		switch op {
		case ast.BinLt:
			return boolVal(ul < ur)
		case ast.BinGt:
			return boolVal(ul > ur)
		case ast.BinLe:
			return boolVal(ul <= ur)
		case ast.BinGe:
			return boolVal(ul >= ur)
		case ast.BinEq:
			return boolVal(ul == ur)
		default:
			return boolVal(ul != ur)
		}
	}
	switch op {
	case ast.BinLt:
		return boolVal(l < r)
	case ast.BinGt:
		return boolVal(l > r)
	case ast.BinLe:
		return boolVal(l <= r)
	case ast.BinGe:
		return boolVal(l >= r)
	case ast.BinEq:
		return boolVal(l == r)
	default:
		return boolVal(l != r)
	}
}

func boolVal(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func (c *Checker) isUnsignedInt(t types.TypeID) bool {
	tt, ok := c.info.Types.Lookup(c.info.Types.Unqualified(t))
	return ok && tt.Kind == types.KindInt && !tt.Int.Signed()
}

// truncInt reduces a value to the width and signedness of its type.
func (c *Checker) truncInt(v int64, t types.TypeID) int64 {
	tt, ok := c.info.Types.Lookup(c.info.Types.Unqualified(t))
	if !ok {
		return v
	}
	switch tt.Kind {
	case types.KindBool:
		return boolVal(v != 0)
	case types.KindEnum:
		return int64(int32(v))
	case types.KindInt:
		w := tt.Int.BitWidth()
		if w >= 64 {
			return v
		}
		masked := uint64(v) & (1<<w - 1)
		if tt.Int.Signed() && masked&(1<<(w-1)) != 0 {
			masked |= ^uint64(0) << w
		}
		return int64(masked)
	default:
		return v
	}
}

// foldFloat evaluates a floating constant expression, accepting
// integer constant subexpressions.
func (c *Checker) foldFloat(id ast.ExprID) (float64, bool) {
	if v, ok := c.info.FoldedFloats[id]; ok {
		return v, true
	}
	t := c.info.TypeOf(id)
	if !t.IsValid() {
		return 0, false
	}
	if c.info.Types.IsInteger(t) {
		v, ok := c.foldInt(id)
		if !ok {
			return 0, false
		}
		if c.isUnsignedInt(t) {
			return float64(uint64(v)), true
		}
		return float64(v), true
	}

	expr := c.b.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprUnary:
		data, _ := c.b.Exprs.Unary(id)
		if data.Op == ast.UnaryPlus || data.Op == ast.UnaryNeg {
			v, ok := c.foldFloat(data.Operand)
			if !ok {
				return 0, false
			}
			if data.Op == ast.UnaryNeg {
				v = -v
			}
			c.info.FoldedFloats[id] = v
			return v, true
		}
	case ast.ExprBinary:
		data, _ := c.b.Exprs.Binary(id)
		l, ok := c.foldFloat(data.Left)
		if !ok {
			return 0, false
		}
		r, ok := c.foldFloat(data.Right)
		if !ok {
			return 0, false
		}
		var v float64
		switch data.Op {
		case ast.BinAdd:
			v = l + r
		case ast.BinSub:
			v = l - r
		case ast.BinMul:
			v = l * r
		case ast.BinDiv:
			if r == 0 {
				c.report(diag.KindConstantEvaluationError, expr.Span,
					"division by zero in constant expression")
				return 0, false
			}
			v = l / r
		default:
			c.report(diag.KindConstantEvaluationError, expr.Span,
				"expression is not a constant expression")
			return 0, false
		}
		c.info.FoldedFloats[id] = v
		return v, true
	case ast.ExprCast:
		data, _ := c.b.Exprs.Cast(id)
		v, ok := c.foldFloat(data.Value)
		if !ok {
			return 0, false
		}
		if tt, found := c.info.Types.Lookup(t); found && tt.Kind == types.KindFloat && tt.Width == types.Width32 {
			v = float64(float32(v))
		}
		c.info.FoldedFloats[id] = v
		return v, true
	}
	c.report(diag.KindConstantEvaluationError, expr.Span,
		"expression is not a constant expression")
	return 0, false
}
