package sema

import (
	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/source"
	"minicc/internal/symbols"
	"minicc/internal/types"
)

// checkExpr types one expression and everything under it, recording
// the result in Info.ExprTypes. Failed subexpressions yield NoTypeID;
// the caller reports nothing further so one defect produces one
// diagnostic.
func (c *Checker) checkExpr(id ast.ExprID) types.TypeID {
	expr := c.b.Exprs.Get(id)
	if expr == nil {
		return types.NoTypeID
	}
	switch expr.Kind {
	case ast.ExprIdent:
		return c.checkIdent(id, expr.Span)
	case ast.ExprLit:
		return c.checkLiteral(id, expr.Span)
	case ast.ExprUnary:
		return c.checkUnary(id, expr.Span)
	case ast.ExprBinary:
		return c.checkBinary(id, expr.Span)
	case ast.ExprAssign:
		return c.checkAssign(id, expr.Span)
	case ast.ExprCond:
		return c.checkCondExpr(id, expr.Span)
	case ast.ExprCall:
		return c.checkCall(id, expr.Span)
	case ast.ExprIndex:
		return c.checkIndex(id, expr.Span)
	case ast.ExprMember:
		return c.checkMember(id)
	case ast.ExprCast:
		return c.checkCast(id, expr.Span)
	case ast.ExprSizeof:
		return c.checkSizeof(id, expr.Span)
	default:
		return c.setExprType(id, types.NoTypeID)
	}
}

func (c *Checker) checkIdent(id ast.ExprID, sp source.Span) types.TypeID {
	data, _ := c.b.Exprs.Ident(id)
	symID, found := c.info.Table.Lookup(c.scope, data.Name)
	if !found {
		c.report(diag.KindUndeclaredIdentifierError, sp,
			"use of undeclared identifier '"+c.lookupName(data.Name)+"'")
		return c.setExprType(id, types.NoTypeID)
	}
	sym := c.info.Table.Symbol(symID)
	c.info.ExprSyms[id] = symID
	switch sym.Kind {
	case symbols.SymTypedef:
		c.report(diag.KindTypeMismatchError, sp,
			"unexpected type name '"+c.lookupName(data.Name)+"' in expression")
		return c.setExprType(id, types.NoTypeID)
	case symbols.SymEnumConst:
		c.info.Folded[id] = sym.Value
		return c.setExprType(id, c.info.Types.Builtins().Int)
	default:
		return c.setExprType(id, sym.Type)
	}
}

func (c *Checker) checkUnary(id ast.ExprID, sp source.Span) types.TypeID {
	data, _ := c.b.Exprs.Unary(id)
	ot := c.checkExpr(data.Operand)
	if !ot.IsValid() {
		return c.setExprType(id, types.NoTypeID)
	}
	ti := c.info.Types
	val := ti.Decay(ot)

	switch data.Op {
	case ast.UnaryPlus, ast.UnaryNeg:
		if !ti.IsArithmetic(val) {
			return c.operandErr(id, sp, data.Op.String(), ot)
		}
		return c.setExprType(id, ti.Promote(val))
	case ast.UnaryBitNot:
		if !ti.IsInteger(val) {
			return c.operandErr(id, sp, data.Op.String(), ot)
		}
		return c.setExprType(id, ti.Promote(val))
	case ast.UnaryNot:
		if !ti.IsScalar(val) {
			return c.operandErr(id, sp, data.Op.String(), ot)
		}
		return c.setExprType(id, ti.Builtins().Int)
	case ast.UnaryDeref:
		if !ti.IsPointer(val) {
			c.report(diag.KindTypeMismatchError, sp,
				"cannot dereference "+c.typeString(ot))
			return c.setExprType(id, types.NoTypeID)
		}
		elem, _ := ti.Elem(val)
		if ti.IsVoid(ti.Unqualified(elem)) {
			c.report(diag.KindTypeMismatchError, sp, "cannot dereference 'void *'")
			return c.setExprType(id, types.NoTypeID)
		}
		return c.setExprType(id, elem)
	case ast.UnaryAddrOf:
		if !c.isLvalue(data.Operand) && !ti.IsFunc(ot) {
			c.report(diag.KindTypeMismatchError, sp,
				"cannot take the address of an rvalue")
			return c.setExprType(id, types.NoTypeID)
		}
		return c.setExprType(id, ti.Pointer(ot))
	case ast.UnaryPreInc, ast.UnaryPreDec, ast.UnaryPostInc, ast.UnaryPostDec:
		if !c.requireModifiable(data.Operand, sp, "'"+data.Op.String()+"' operand") {
			return c.setExprType(id, types.NoTypeID)
		}
		if !ti.IsScalar(val) {
			return c.operandErr(id, sp, data.Op.String(), ot)
		}
		return c.setExprType(id, ti.Unqualified(ot))
	default:
		return c.setExprType(id, types.NoTypeID)
	}
}

func (c *Checker) operandErr(id ast.ExprID, sp source.Span, op string, got types.TypeID) types.TypeID {
	c.report(diag.KindTypeMismatchError, sp,
		"invalid operand to unary '"+op+"': "+c.typeString(got))
	return c.setExprType(id, types.NoTypeID)
}

func (c *Checker) checkBinary(id ast.ExprID, sp source.Span) types.TypeID {
	data, _ := c.b.Exprs.Binary(id)
	lt := c.checkExpr(data.Left)
	rt := c.checkExpr(data.Right)
	if !lt.IsValid() || !rt.IsValid() {
		return c.setExprType(id, types.NoTypeID)
	}
	ti := c.info.Types
	l, r := ti.Decay(lt), ti.Decay(rt)

	badOperands := func() types.TypeID {
		c.report(diag.KindTypeMismatchError, sp,
			"invalid operands to binary '"+data.Op.String()+"': "+
				c.typeString(lt)+" and "+c.typeString(rt))
		return c.setExprType(id, types.NoTypeID)
	}

	switch data.Op {
	case ast.BinMul, ast.BinDiv:
		if t, ok := ti.UsualArithmetic(l, r); ok {
			return c.setExprType(id, t)
		}
		return badOperands()
	case ast.BinRem, ast.BinBitAnd, ast.BinBitXor, ast.BinBitOr:
		if ti.IsInteger(l) && ti.IsInteger(r) {
			t, _ := ti.UsualArithmetic(l, r)
			return c.setExprType(id, t)
		}
		return badOperands()
	case ast.BinAdd:
		switch {
		case ti.IsPointer(l) && ti.IsInteger(r):
			return c.setExprType(id, c.pointerArith(l, sp))
		case ti.IsInteger(l) && ti.IsPointer(r):
			return c.setExprType(id, c.pointerArith(r, sp))
		}
		if t, ok := ti.UsualArithmetic(l, r); ok {
			return c.setExprType(id, t)
		}
		return badOperands()
	case ast.BinSub:
		switch {
		case ti.IsPointer(l) && ti.IsInteger(r):
			return c.setExprType(id, c.pointerArith(l, sp))
		case ti.IsPointer(l) && ti.IsPointer(r):
			if !c.pointeesCompatible(l, r) {
				return badOperands()
			}
			c.pointerArith(l, sp)
			return c.setExprType(id, ti.Builtins().Long)
		}
		if t, ok := ti.UsualArithmetic(l, r); ok {
			return c.setExprType(id, t)
		}
		return badOperands()
	case ast.BinShl, ast.BinShr:
		if !ti.IsInteger(l) || !ti.IsInteger(r) {
			return badOperands()
		}
		return c.setExprType(id, ti.Promote(l))
	case ast.BinLt, ast.BinGt, ast.BinLe, ast.BinGe:
		if _, ok := ti.UsualArithmetic(l, r); ok {
			return c.setExprType(id, ti.Builtins().Int)
		}
		if ti.IsPointer(l) && ti.IsPointer(r) && c.pointeesCompatible(l, r) {
			return c.setExprType(id, ti.Builtins().Int)
		}
		return badOperands()
	case ast.BinEq, ast.BinNe:
		if c.equalityComparable(l, r, data.Left, data.Right) {
			return c.setExprType(id, ti.Builtins().Int)
		}
		return badOperands()
	case ast.BinLogAnd, ast.BinLogOr:
		if !ti.IsScalar(l) || !ti.IsScalar(r) {
			return badOperands()
		}
		return c.setExprType(id, ti.Builtins().Int)
	case ast.BinComma:
		return c.setExprType(id, r)
	default:
		return c.setExprType(id, types.NoTypeID)
	}
}

// pointerArith verifies the pointee is complete so element strides are
// known; it returns the pointer type unchanged.
func (c *Checker) pointerArith(ptr types.TypeID, sp source.Span) types.TypeID {
	elem, _ := c.info.Types.Elem(ptr)
	if _, _, sized := c.info.Types.SizeAlign(c.info.Types.Unqualified(elem)); !sized {
		c.report(diag.KindTypeMismatchError, sp,
			"arithmetic on a pointer to incomplete type "+c.typeString(elem))
		return types.NoTypeID
	}
	return ptr
}

func (c *Checker) pointeesCompatible(a, b types.TypeID) bool {
	ea, _ := c.info.Types.Elem(a)
	eb, _ := c.info.Types.Elem(b)
	return c.info.Types.Compatible(ea, eb)
}

func (c *Checker) equalityComparable(l, r types.TypeID, le, re ast.ExprID) bool {
	ti := c.info.Types
	if _, ok := ti.UsualArithmetic(l, r); ok {
		return true
	}
	if ti.IsPointer(l) && ti.IsPointer(r) {
		if c.pointeesCompatible(l, r) {
			return true
		}
		// void* compares with any object pointer.
		ea, _ := ti.Elem(l)
		eb, _ := ti.Elem(r)
		return ti.IsVoid(ti.Unqualified(ea)) || ti.IsVoid(ti.Unqualified(eb))
	}
	if ti.IsPointer(l) && c.isNullConstant(re) {
		return true
	}
	if ti.IsPointer(r) && c.isNullConstant(le) {
		return true
	}
	return false
}

// isNullConstant reports whether the expression is an integer constant
// zero, the only integer that silently converts to pointers.
func (c *Checker) isNullConstant(id ast.ExprID) bool {
	v, ok := c.info.Folded[id]
	return ok && v == 0
}

func (c *Checker) checkAssign(id ast.ExprID, sp source.Span) types.TypeID {
	data, _ := c.b.Exprs.Assign(id)
	lt := c.checkExpr(data.Target)
	rt := c.checkExpr(data.Value)
	if !lt.IsValid() || !rt.IsValid() {
		return c.setExprType(id, types.NoTypeID)
	}
	if !c.requireModifiable(data.Target, sp, "assignment target") {
		return c.setExprType(id, types.NoTypeID)
	}
	ti := c.info.Types
	r := ti.Decay(rt)

	if op, compound := data.Op.BinaryOp(); compound {
		l := ti.Decay(lt)
		ok := false
		switch op {
		case ast.BinAdd, ast.BinSub:
			if ti.IsPointer(l) && ti.IsInteger(r) {
				ok = c.pointerArith(l, sp).IsValid()
			} else {
				_, ok = ti.UsualArithmetic(l, r)
			}
		case ast.BinMul, ast.BinDiv:
			_, ok = ti.UsualArithmetic(l, r)
			ok = ok && ti.IsArithmetic(l) && ti.IsArithmetic(r)
		default: // %=, <<=, >>=, &=, |=, ^=
			ok = ti.IsInteger(l) && ti.IsInteger(r)
		}
		if !ok {
			c.report(diag.KindTypeMismatchError, sp,
				"invalid operands to '"+data.Op.String()+"': "+
					c.typeString(lt)+" and "+c.typeString(rt))
			return c.setExprType(id, types.NoTypeID)
		}
		return c.setExprType(id, ti.Unqualified(lt))
	}

	if !c.assignable(r, lt, data.Value) {
		c.report(diag.KindTypeMismatchError, sp,
			"cannot assign "+c.typeString(rt)+" to "+c.typeString(lt))
		return c.setExprType(id, types.NoTypeID)
	}
	c.warnNarrowing(data.Value, r, lt)
	return c.setExprType(id, ti.Unqualified(lt))
}

func (c *Checker) checkCondExpr(id ast.ExprID, sp source.Span) types.TypeID {
	data, _ := c.b.Exprs.Cond(id)
	ct := c.checkExpr(data.Cond)
	tt := c.checkExpr(data.Then)
	et := c.checkExpr(data.Else)
	if !ct.IsValid() || !tt.IsValid() || !et.IsValid() {
		return c.setExprType(id, types.NoTypeID)
	}
	ti := c.info.Types
	if !ti.IsScalar(ti.Decay(ct)) {
		c.report(diag.KindTypeMismatchError, c.b.Exprs.Get(data.Cond).Span,
			"conditional expression condition must have scalar type, not "+c.typeString(ct))
		return c.setExprType(id, types.NoTypeID)
	}
	t, e := ti.Decay(tt), ti.Decay(et)
	switch {
	case t == e:
		return c.setExprType(id, t)
	case ti.IsVoid(t) && ti.IsVoid(e):
		return c.setExprType(id, t)
	case ti.IsPointer(t) && c.isNullConstant(data.Else):
		return c.setExprType(id, t)
	case ti.IsPointer(e) && c.isNullConstant(data.Then):
		return c.setExprType(id, e)
	case ti.IsPointer(t) && ti.IsPointer(e) && c.pointeesCompatible(t, e):
		return c.setExprType(id, t)
	}
	if common, ok := ti.UsualArithmetic(t, e); ok {
		return c.setExprType(id, common)
	}
	c.report(diag.KindTypeMismatchError, sp,
		"incompatible branch types in conditional expression: "+
			c.typeString(tt)+" and "+c.typeString(et))
	return c.setExprType(id, types.NoTypeID)
}

func (c *Checker) checkCall(id ast.ExprID, sp source.Span) types.TypeID {
	data, _ := c.b.Exprs.Call(id)
	calleeT := c.checkExpr(data.Callee)

	// Argument expressions are always checked, even when the callee is
	// broken, so their own defects still surface.
	argTypes := make([]types.TypeID, len(data.Args))
	for i, arg := range data.Args {
		argTypes[i] = c.checkExpr(arg)
	}
	if !calleeT.IsValid() {
		return c.setExprType(id, types.NoTypeID)
	}

	ti := c.info.Types
	fnType := ti.Decay(calleeT)
	if ti.IsPointer(fnType) {
		if elem, ok := ti.Elem(fnType); ok {
			fnType = elem
		}
	}
	fn, ok := ti.FnInfo(fnType)
	if !ok {
		c.report(diag.KindTypeMismatchError, sp,
			"called object has type "+c.typeString(calleeT)+", not a function")
		return c.setExprType(id, types.NoTypeID)
	}

	switch {
	case fn.Variadic && len(data.Args) < len(fn.Params):
		c.report(diag.KindTypeMismatchError, sp,
			"too few arguments to "+c.calleeName(data.Callee))
		return c.setExprType(id, fn.Ret)
	case !fn.Variadic && len(data.Args) != len(fn.Params):
		what := "too few arguments to "
		if len(data.Args) > len(fn.Params) {
			what = "too many arguments to "
		}
		c.report(diag.KindTypeMismatchError, sp, what+c.calleeName(data.Callee))
		return c.setExprType(id, fn.Ret)
	}

	for i, arg := range data.Args {
		at := argTypes[i]
		if !at.IsValid() {
			continue
		}
		a := ti.Decay(at)
		if i < len(fn.Params) {
			if !c.assignable(a, fn.Params[i], arg) {
				c.report(diag.KindTypeMismatchError, c.b.Exprs.Get(arg).Span,
					"cannot pass "+c.typeString(at)+" as "+c.typeString(fn.Params[i]))
				continue
			}
			c.warnNarrowing(arg, a, fn.Params[i])
		} else if !ti.IsScalar(a) {
			// Variadic tail: only scalars survive the default promotions
			// here.
			c.report(diag.KindTypeMismatchError, c.b.Exprs.Get(arg).Span,
				"cannot pass "+c.typeString(at)+" as a variadic argument")
		}
	}
	return c.setExprType(id, fn.Ret)
}

func (c *Checker) calleeName(callee ast.ExprID) string {
	if data, ok := c.b.Exprs.Ident(callee); ok {
		return "function '" + c.lookupName(data.Name) + "'"
	}
	return "function"
}

func (c *Checker) checkIndex(id ast.ExprID, sp source.Span) types.TypeID {
	data, _ := c.b.Exprs.Index(id)
	bt := c.checkExpr(data.Base)
	it := c.checkExpr(data.Index)
	if !bt.IsValid() || !it.IsValid() {
		return c.setExprType(id, types.NoTypeID)
	}
	ti := c.info.Types
	base, idx := ti.Decay(bt), ti.Decay(it)
	// C permits the commuted spelling 2[a].
	if ti.IsInteger(base) && ti.IsPointer(idx) {
		base, idx = idx, base
	}
	if !ti.IsPointer(base) {
		c.report(diag.KindTypeMismatchError, sp,
			"cannot index "+c.typeString(bt))
		return c.setExprType(id, types.NoTypeID)
	}
	if !ti.IsInteger(idx) {
		c.report(diag.KindTypeMismatchError, c.b.Exprs.Get(data.Index).Span,
			"array index must have integer type, not "+c.typeString(it))
		return c.setExprType(id, types.NoTypeID)
	}
	if !c.pointerArith(base, sp).IsValid() {
		return c.setExprType(id, types.NoTypeID)
	}
	elem, _ := ti.Elem(base)
	return c.setExprType(id, elem)
}

func (c *Checker) checkMember(id ast.ExprID) types.TypeID {
	data, _ := c.b.Exprs.Member(id)
	bt := c.checkExpr(data.Base)
	if !bt.IsValid() {
		return c.setExprType(id, types.NoTypeID)
	}
	ti := c.info.Types

	recT := ti.Unqualified(bt)
	wasConst := c.isConstQualified(bt)
	if data.Arrow {
		p := ti.Decay(bt)
		if !ti.IsPointer(p) {
			c.report(diag.KindTypeMismatchError, data.NameSpan,
				"'->' base must be a pointer, not "+c.typeString(bt))
			return c.setExprType(id, types.NoTypeID)
		}
		elem, _ := ti.Elem(p)
		wasConst = c.isConstQualified(elem)
		recT = ti.Unqualified(elem)
	}

	info, ok := ti.RecordInfo(recT)
	if !ok {
		c.report(diag.KindTypeMismatchError, data.NameSpan,
			"member access on non-record type "+c.typeString(bt))
		return c.setExprType(id, types.NoTypeID)
	}
	if !info.Complete {
		c.report(diag.KindTypeMismatchError, data.NameSpan,
			"member access on incomplete type "+c.typeString(recT))
		return c.setExprType(id, types.NoTypeID)
	}
	for _, f := range info.Fields {
		if f.Name == data.Name {
			ft := f.Type
			if wasConst {
				ft = ti.Qualify(ft)
			}
			return c.setExprType(id, ft)
		}
	}
	c.report(diag.KindUndeclaredIdentifierError, data.NameSpan,
		"no member named '"+c.lookupName(data.Name)+"' in "+c.typeString(recT))
	return c.setExprType(id, types.NoTypeID)
}

func (c *Checker) checkCast(id ast.ExprID, sp source.Span) types.TypeID {
	data, _ := c.b.Exprs.Cast(id)
	target := c.resolveType(data.Type)
	vt := c.checkExpr(data.Value)
	if !target.IsValid() || !vt.IsValid() {
		return c.setExprType(id, types.NoTypeID)
	}
	ti := c.info.Types
	bare := ti.Unqualified(target)
	if ti.IsVoid(bare) {
		return c.setExprType(id, bare)
	}
	v := ti.Decay(vt)
	if !ti.IsScalar(bare) || !ti.IsScalar(v) {
		c.report(diag.KindTypeMismatchError, sp,
			"cannot cast "+c.typeString(vt)+" to "+c.typeString(target))
		return c.setExprType(id, types.NoTypeID)
	}
	if ti.IsPointer(bare) && ti.IsFloating(v) || ti.IsFloating(bare) && ti.IsPointer(v) {
		c.report(diag.KindTypeMismatchError, sp,
			"cannot cast between pointer and floating type")
		return c.setExprType(id, types.NoTypeID)
	}
	return c.setExprType(id, bare)
}

func (c *Checker) checkSizeof(id ast.ExprID, sp source.Span) types.TypeID {
	data, _ := c.b.Exprs.Sizeof(id)
	ti := c.info.Types

	var t types.TypeID
	if data.Type.IsValid() {
		t = c.resolveType(data.Type)
	} else {
		// sizeof does not decay its operand; sizeof(array) is the
		// whole array.
		t = c.checkExpr(data.Value)
	}
	if !t.IsValid() {
		return c.setExprType(id, types.NoTypeID)
	}
	if ti.IsFunc(ti.Unqualified(t)) {
		c.report(diag.KindTypeMismatchError, sp,
			"invalid application of 'sizeof' to a function type")
		return c.setExprType(id, types.NoTypeID)
	}
	size, _, sized := ti.SizeAlign(ti.Unqualified(t))
	if !sized {
		c.report(diag.KindTypeMismatchError, sp,
			"invalid application of 'sizeof' to incomplete type "+c.typeString(t))
		return c.setExprType(id, types.NoTypeID)
	}
	c.info.Folded[id] = int64(size)
	return c.setExprType(id, ti.Builtins().ULong)
}

// isLvalue reports whether the expression designates an object.
func (c *Checker) isLvalue(id ast.ExprID) bool {
	expr := c.b.Exprs.Get(id)
	if expr == nil {
		return false
	}
	switch expr.Kind {
	case ast.ExprIdent:
		symID, ok := c.info.ExprSyms[id]
		if !ok {
			return false
		}
		sym := c.info.Table.Symbol(symID)
		return sym.Kind == symbols.SymVar || sym.Kind == symbols.SymParam
	case ast.ExprIndex, ast.ExprMember:
		return true
	case ast.ExprUnary:
		data, _ := c.b.Exprs.Unary(id)
		return data.Op == ast.UnaryDeref
	default:
		return false
	}
}

// requireModifiable checks that an expression is a modifiable lvalue:
// an lvalue whose type is not const, array, or function.
func (c *Checker) requireModifiable(id ast.ExprID, sp source.Span, what string) bool {
	if !c.isLvalue(id) {
		c.report(diag.KindTypeMismatchError, sp, what+" is not an lvalue")
		return false
	}
	t := c.info.TypeOf(id)
	ti := c.info.Types
	if c.isConstQualified(t) {
		c.report(diag.KindTypeMismatchError, sp,
			what+" has const-qualified type "+c.typeString(t))
		return false
	}
	if ti.IsArray(t) || ti.IsFunc(t) {
		c.report(diag.KindTypeMismatchError, sp,
			what+" has unassignable type "+c.typeString(t))
		return false
	}
	return true
}

func (c *Checker) isConstQualified(t types.TypeID) bool {
	tt, ok := c.info.Types.Lookup(t)
	return ok && tt.Const
}

// assignable implements the constraints of simple assignment: from is
// already decayed, to is the declared target type.
func (c *Checker) assignable(from, to types.TypeID, fromExpr ast.ExprID) bool {
	ti := c.info.Types
	target := ti.Unqualified(to)
	switch {
	case ti.IsArithmetic(target) && ti.IsArithmetic(from):
		return true
	case ti.IsPointer(target) && ti.IsPointer(from):
		et, _ := ti.Elem(target)
		ef, _ := ti.Elem(from)
		if ti.Compatible(et, ef) {
			return true
		}
		// Either side being void* converts implicitly.
		return ti.IsVoid(ti.Unqualified(et)) || ti.IsVoid(ti.Unqualified(ef))
	case ti.IsPointer(target) && c.isNullConstant(fromExpr):
		return true
	case ti.IsRecord(target):
		return ti.Compatible(target, from)
	default:
		return false
	}
}

// convertible is assignable with decay applied first, used for
// initializers and returns. fromExpr keeps the null pointer constant
// case working there: `int *p = 0;` and `return 0;` from a
// pointer-returning function are as legal as `p = 0;`.
func (c *Checker) convertible(from, to types.TypeID, fromExpr ast.ExprID) bool {
	return c.assignable(c.info.Types.Decay(from), to, fromExpr)
}

// warnNarrowing flags implicit arithmetic conversions that can lose
// information.
func (c *Checker) warnNarrowing(at ast.ExprID, from, to types.TypeID) {
	ti := c.info.Types
	target := ti.Unqualified(to)
	if !ti.IsArithmetic(from) || !ti.IsArithmetic(target) {
		return
	}
	sp := c.b.Exprs.Get(at).Span
	switch {
	case ti.IsFloating(from) && ti.IsInteger(target):
		c.warn(diag.KindImplicitConversion, sp,
			"implicit conversion from "+c.typeString(from)+" to "+c.typeString(target)+
				" discards the fractional part")
	case ti.IsFloating(from) && ti.IsFloating(target) && c.widthOf(from) > c.widthOf(target):
		c.warn(diag.KindImplicitConversion, sp,
			"implicit conversion from "+c.typeString(from)+" to "+c.typeString(target)+
				" loses precision")
	case ti.IsInteger(from) && ti.IsInteger(target) && c.widthOf(from) > c.widthOf(target):
		c.warn(diag.KindImplicitConversion, sp,
			"implicit conversion from "+c.typeString(from)+" to "+c.typeString(target)+
				" may change the value")
	}
}

func (c *Checker) widthOf(t types.TypeID) uint32 {
	size, _, ok := c.info.Types.SizeAlign(c.info.Types.Unqualified(t))
	if !ok {
		return 0
	}
	return uint32(size * 8)
}
