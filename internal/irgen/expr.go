package irgen

import (
	"math"

	"minicc/internal/ast"
	"minicc/internal/ir"
	"minicc/internal/symbols"
	"minicc/internal/types"
)

// genExpr lowers an expression to its rvalue. By convention a
// record-typed or array-typed expression evaluates to its address; only
// scalars ever load.
func (g *Generator) genExpr(id ast.ExprID) ir.Value {
	t := g.info.TypeOf(id)
	ti := g.info.Types
	if v, ok := g.info.Folded[id]; ok && ti.IsInteger(ti.Unqualified(t)) {
		return ir.ConstInt(g.lowerType(t), g.truncConst(v, t))
	}
	if f, ok := g.info.FoldedFloats[id]; ok && ti.IsFloating(ti.Unqualified(t)) {
		return ir.ConstFloat(g.lowerType(t), f)
	}

	expr := g.b.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprIdent:
		return g.genIdent(id)
	case ast.ExprLit:
		return g.genLit(id)
	case ast.ExprUnary:
		return g.genUnary(id)
	case ast.ExprBinary:
		return g.genBinary(id)
	case ast.ExprAssign:
		return g.genAssign(id)
	case ast.ExprCond:
		return g.genCond(id)
	case ast.ExprCall:
		return g.genCall(id)
	case ast.ExprIndex, ast.ExprMember:
		return g.loadOrAddr(g.genAddr(id), t)
	case ast.ExprCast:
		data, _ := g.b.Exprs.Cast(id)
		if ti.IsVoid(ti.Unqualified(t)) {
			g.genExpr(data.Value)
			return ir.Value{}
		}
		return g.convert(g.genExpr(data.Value), g.info.TypeOf(data.Value), t)
	case ast.ExprSizeof:
		// Folded above; reaching here means the fold failed after an
		// error, which never survives to IR generation.
		return ir.ConstInt(ir.I64, 0)
	default:
		return ir.Value{}
	}
}

// genAddr lowers an lvalue to its address.
func (g *Generator) genAddr(id ast.ExprID) ir.Value {
	expr := g.b.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprIdent:
		symID := g.info.ExprSyms[id]
		sym := g.info.Table.Symbol(symID)
		if sym == nil {
			return ir.NullPtr()
		}
		if sym.Kind == symbols.SymFunc {
			name := g.name(sym.Name)
			if fn, ok := g.info.Types.FnInfo(sym.Type); ok {
				g.declareExtern(name, fn)
			}
			return ir.GlobalRef(name)
		}
		return g.symAddr(symID, sym)
	case ast.ExprUnary:
		if data, _ := g.b.Exprs.Unary(id); data.Op == ast.UnaryDeref {
			return g.genExpr(data.Operand)
		}
	case ast.ExprIndex:
		return g.genIndexAddr(id)
	case ast.ExprMember:
		return g.genMemberAddr(id)
	case ast.ExprAssign:
		// A record assignment evaluates to the destination address.
		return g.genExpr(id)
	}
	g.unsupported(expr.Span, "expression is not addressable")
	return ir.NullPtr()
}

func (g *Generator) symAddr(symID symbols.SymbolID, sym *symbols.Symbol) ir.Value {
	if slot, ok := g.locals[symID]; ok {
		return slot
	}
	return ir.GlobalRef(g.name(sym.Name))
}

func (g *Generator) genIdent(id ast.ExprID) ir.Value {
	symID := g.info.ExprSyms[id]
	sym := g.info.Table.Symbol(symID)
	if sym == nil {
		return ir.Value{}
	}
	switch sym.Kind {
	case symbols.SymEnumConst:
		return ir.ConstInt(ir.I32, sym.Value)
	case symbols.SymFunc:
		name := g.name(sym.Name)
		if fn, ok := g.info.Types.FnInfo(sym.Type); ok {
			g.declareExtern(name, fn)
		}
		return ir.GlobalRef(name)
	default:
		return g.loadOrAddr(g.symAddr(symID, sym), g.info.TypeOf(id))
	}
}

func (g *Generator) genLit(id ast.ExprID) ir.Value {
	// Integer, character, and float literals were folded and handled by
	// genExpr already; only string literals remain.
	if s, ok := g.info.Strings[id]; ok {
		return g.internString(s)
	}
	return ir.Value{}
}

func (g *Generator) genUnary(id ast.ExprID) ir.Value {
	data, _ := g.b.Exprs.Unary(id)
	ti := g.info.Types
	t := g.info.TypeOf(id)
	ot := g.info.TypeOf(data.Operand)

	switch data.Op {
	case ast.UnaryPlus:
		return g.convert(g.genExpr(data.Operand), ot, t)
	case ast.UnaryNeg:
		v := g.convert(g.genExpr(data.Operand), ot, t)
		if ti.IsFloating(t) {
			return g.build.EmitBin(ir.OpFSub, ir.ConstFloat(v.Type, math.Copysign(0, -1)), v)
		}
		return g.build.EmitBin(ir.OpSub, ir.ConstInt(v.Type, 0), v)
	case ast.UnaryBitNot:
		v := g.convert(g.genExpr(data.Operand), ot, t)
		return g.build.EmitBin(ir.OpXor, v, ir.ConstInt(v.Type, -1))
	case ast.UnaryNot:
		v := g.genExpr(data.Operand)
		dt := ti.Decay(ot)
		var b ir.Value
		switch {
		case ti.IsFloating(dt):
			b = g.build.EmitCmp(ir.PredEQ, true, v, ir.ConstFloat(v.Type, 0))
		case ti.IsPointer(dt):
			b = g.build.EmitCmp(ir.PredEQ, false, v, ir.NullPtr())
		default:
			b = g.build.EmitCmp(ir.PredEQ, false, v, ir.ConstInt(v.Type, 0))
		}
		return g.build.EmitCast(ir.CastZExt, b, ir.I32)
	case ast.UnaryDeref:
		p := g.genExpr(data.Operand)
		return g.loadOrAddr(p, t)
	case ast.UnaryAddrOf:
		return g.genAddr(data.Operand)
	default:
		return g.genIncDec(data)
	}
}

func (g *Generator) genIncDec(data *ast.ExprUnaryData) ir.Value {
	ti := g.info.Types
	t := ti.Unqualified(g.info.TypeOf(data.Operand))
	addr := g.genAddr(data.Operand)
	old := g.build.EmitLoad(g.lowerType(t), addr)

	inc := data.Op == ast.UnaryPreInc || data.Op == ast.UnaryPostInc
	var next ir.Value
	switch {
	case ti.IsPointer(t):
		elem, _ := ti.Elem(t)
		stride, _ := g.sizeAlignOf(elem)
		delta := int64(1)
		if !inc {
			delta = -1
		}
		next = g.build.EmitGEP(old, ir.ConstInt(ir.I64, delta), stride)
	case ti.IsFloating(t):
		op := ir.OpFAdd
		if !inc {
			op = ir.OpFSub
		}
		next = g.build.EmitBin(op, old, ir.ConstFloat(old.Type, 1))
	default:
		op := ir.OpAdd
		if !inc {
			op = ir.OpSub
		}
		next = g.build.EmitBin(op, old, ir.ConstInt(old.Type, 1))
	}
	g.build.EmitStore(next, addr)
	if data.Op.IsPostfix() {
		return old
	}
	return next
}

func (g *Generator) genBinary(id ast.ExprID) ir.Value {
	data, _ := g.b.Exprs.Binary(id)
	ti := g.info.Types
	t := g.info.TypeOf(id)

	switch data.Op {
	case ast.BinLogAnd, ast.BinLogOr:
		return g.genShortCircuit(data)
	case ast.BinComma:
		g.genExpr(data.Left)
		return g.genExpr(data.Right)
	case ast.BinLt, ast.BinGt, ast.BinLe, ast.BinGe, ast.BinEq, ast.BinNe:
		return g.genCompare(data)
	case ast.BinAdd, ast.BinSub:
		if ti.IsPointer(ti.Unqualified(t)) {
			return g.genPointerArith(data, t)
		}
		ld := ti.Decay(g.info.TypeOf(data.Left))
		rd := ti.Decay(g.info.TypeOf(data.Right))
		if data.Op == ast.BinSub && ti.IsPointer(ld) && ti.IsPointer(rd) {
			return g.genPointerDiff(data, ld)
		}
	}

	l := g.convert(g.genExpr(data.Left), g.info.TypeOf(data.Left), t)
	r := g.convert(g.genExpr(data.Right), g.info.TypeOf(data.Right), t)
	return g.build.EmitBin(g.arithOp(data.Op, t), l, r)
}

// arithOp picks the IR operation; signedness and floatness come from
// the type the operation is performed in.
func (g *Generator) arithOp(op ast.BinaryOp, t types.TypeID) ir.BinOp {
	ti := g.info.Types
	flt := ti.IsFloating(t)
	signed := ti.IsSigned(t)
	switch op {
	case ast.BinAdd:
		if flt {
			return ir.OpFAdd
		}
		return ir.OpAdd
	case ast.BinSub:
		if flt {
			return ir.OpFSub
		}
		return ir.OpSub
	case ast.BinMul:
		if flt {
			return ir.OpFMul
		}
		return ir.OpMul
	case ast.BinDiv:
		switch {
		case flt:
			return ir.OpFDiv
		case signed:
			return ir.OpSDiv
		default:
			return ir.OpUDiv
		}
	case ast.BinRem:
		if signed {
			return ir.OpSRem
		}
		return ir.OpURem
	case ast.BinBitAnd:
		return ir.OpAnd
	case ast.BinBitOr:
		return ir.OpOr
	case ast.BinBitXor:
		return ir.OpXor
	case ast.BinShl:
		return ir.OpShl
	case ast.BinShr:
		if signed {
			return ir.OpAShr
		}
		return ir.OpLShr
	default:
		return ir.OpAdd
	}
}

func (g *Generator) genPointerArith(data *ast.ExprBinaryData, t types.TypeID) ir.Value {
	ti := g.info.Types
	ptrE, intE := data.Left, data.Right
	if !ti.IsPointer(ti.Decay(g.info.TypeOf(ptrE))) {
		ptrE, intE = intE, ptrE
	}
	p := g.genExpr(ptrE)
	idx := g.convert(g.genExpr(intE), g.info.TypeOf(intE), ti.Builtins().Long)
	if data.Op == ast.BinSub {
		idx = g.build.EmitBin(ir.OpSub, ir.ConstInt(ir.I64, 0), idx)
	}
	elem, _ := ti.Elem(ti.Unqualified(t))
	stride, _ := g.sizeAlignOf(elem)
	return g.build.EmitGEP(p, idx, stride)
}

func (g *Generator) genPointerDiff(data *ast.ExprBinaryData, ptrT types.TypeID) ir.Value {
	ti := g.info.Types
	l := g.build.EmitCast(ir.CastPtrToInt, g.genExpr(data.Left), ir.I64)
	r := g.build.EmitCast(ir.CastPtrToInt, g.genExpr(data.Right), ir.I64)
	diff := g.build.EmitBin(ir.OpSub, l, r)
	elem, _ := ti.Elem(ptrT)
	stride, _ := g.sizeAlignOf(elem)
	if stride > 1 {
		diff = g.build.EmitBin(ir.OpSDiv, diff, ir.ConstInt(ir.I64, int64(stride)))
	}
	return diff
}

func (g *Generator) genCompare(data *ast.ExprBinaryData) ir.Value {
	ti := g.info.Types
	lt := g.info.TypeOf(data.Left)
	rt := g.info.TypeOf(data.Right)
	ld := ti.Decay(lt)
	rd := ti.Decay(rt)

	var l, r ir.Value
	var flt, signed bool
	if ti.IsPointer(ld) || ti.IsPointer(rd) {
		pt := ld
		if !ti.IsPointer(pt) {
			pt = rd
		}
		// A null pointer constant on either side converts to the
		// pointer type here.
		l = g.convert(g.genExpr(data.Left), lt, pt)
		r = g.convert(g.genExpr(data.Right), rt, pt)
	} else {
		common, _ := ti.UsualArithmetic(ld, rd)
		l = g.convert(g.genExpr(data.Left), lt, common)
		r = g.convert(g.genExpr(data.Right), rt, common)
		flt = ti.IsFloating(common)
		signed = ti.IsSigned(common)
	}
	b := g.build.EmitCmp(cmpPred(data.Op, signed), flt, l, r)
	return g.build.EmitCast(ir.CastZExt, b, ir.I32)
}

func cmpPred(op ast.BinaryOp, signed bool) ir.CmpPred {
	switch op {
	case ast.BinEq:
		return ir.PredEQ
	case ast.BinNe:
		return ir.PredNE
	case ast.BinLt:
		if signed {
			return ir.PredSLT
		}
		return ir.PredULT
	case ast.BinLe:
		if signed {
			return ir.PredSLE
		}
		return ir.PredULE
	case ast.BinGt:
		if signed {
			return ir.PredSGT
		}
		return ir.PredUGT
	default:
		if signed {
			return ir.PredSGE
		}
		return ir.PredUGE
	}
}

// genShortCircuit lowers && and || with a spill slot instead of a phi:
// both paths store their truth value, the join loads it back.
func (g *Generator) genShortCircuit(data *ast.ExprBinaryData) ir.Value {
	and := data.Op == ast.BinLogAnd
	slot := g.scratch()

	l := g.toBool(g.genExpr(data.Left), g.info.TypeOf(data.Left))
	g.build.EmitStore(l, slot)
	label := "lor"
	if and {
		label = "land"
	}
	rhsB := g.build.NewBlock(label + ".rhs")
	joinB := g.build.NewBlock(label + ".end")
	if and {
		g.build.CondBr(l, rhsB, joinB)
	} else {
		g.build.CondBr(l, joinB, rhsB)
	}

	g.build.SetBlock(rhsB)
	r := g.toBool(g.genExpr(data.Right), g.info.TypeOf(data.Right))
	g.build.EmitStore(r, slot)
	g.build.Br(joinB)

	g.build.SetBlock(joinB)
	b := g.build.EmitLoad(ir.I1, slot)
	return g.build.EmitCast(ir.CastZExt, b, ir.I32)
}

func (g *Generator) genAssign(id ast.ExprID) ir.Value {
	data, _ := g.b.Exprs.Assign(id)
	ti := g.info.Types
	lt := g.info.TypeOf(data.Target)
	bare := ti.Unqualified(lt)
	addr := g.genAddr(data.Target)

	if data.Op == ast.AssignPlain {
		if ti.IsRecord(bare) {
			src := g.genExpr(data.Value)
			size, align := g.sizeAlignOf(bare)
			g.build.EmitMemCpy(addr, src, size, align)
			return addr
		}
		v := g.convert(g.genExpr(data.Value), g.info.TypeOf(data.Value), bare)
		g.build.EmitStore(v, addr)
		return v
	}

	binOp, _ := data.Op.BinaryOp()
	old := g.build.EmitLoad(g.lowerType(bare), addr)
	var next ir.Value
	if ti.IsPointer(bare) {
		idx := g.convert(g.genExpr(data.Value), g.info.TypeOf(data.Value), ti.Builtins().Long)
		if binOp == ast.BinSub {
			idx = g.build.EmitBin(ir.OpSub, ir.ConstInt(ir.I64, 0), idx)
		}
		elem, _ := ti.Elem(bare)
		stride, _ := g.sizeAlignOf(elem)
		next = g.build.EmitGEP(old, idx, stride)
	} else {
		// Compute in the common type, convert the result back.
		rt := ti.Decay(g.info.TypeOf(data.Value))
		var common types.TypeID
		if binOp == ast.BinShl || binOp == ast.BinShr {
			common = ti.Promote(bare)
		} else {
			common, _ = ti.UsualArithmetic(bare, rt)
		}
		l := g.convert(old, bare, common)
		r := g.convert(g.genExpr(data.Value), g.info.TypeOf(data.Value), common)
		next = g.convert(g.build.EmitBin(g.arithOp(binOp, common), l, r), common, bare)
	}
	g.build.EmitStore(next, addr)
	return next
}

func (g *Generator) genCond(id ast.ExprID) ir.Value {
	data, _ := g.b.Exprs.Cond(id)
	ti := g.info.Types
	t := g.info.TypeOf(id)
	if ti.IsRecord(ti.Unqualified(t)) {
		g.unsupported(g.b.Exprs.Get(id).Span,
			"conditional expression with struct or union operands is not supported")
		return ir.Value{}
	}

	c := g.toBool(g.genExpr(data.Cond), g.info.TypeOf(data.Cond))
	thenB := g.build.NewBlock("cond.then")
	elseB := g.build.NewBlock("cond.else")
	joinB := g.build.NewBlock("cond.end")
	g.build.CondBr(c, thenB, elseB)

	if ti.IsVoid(t) {
		g.build.SetBlock(thenB)
		g.genExpr(data.Then)
		g.build.Br(joinB)
		g.build.SetBlock(elseB)
		g.genExpr(data.Else)
		g.build.Br(joinB)
		g.build.SetBlock(joinB)
		return ir.Value{}
	}

	slot := g.scratch()
	g.build.SetBlock(thenB)
	tv := g.convert(g.genExpr(data.Then), g.info.TypeOf(data.Then), t)
	g.build.EmitStore(tv, slot)
	g.build.Br(joinB)

	g.build.SetBlock(elseB)
	ev := g.convert(g.genExpr(data.Else), g.info.TypeOf(data.Else), t)
	g.build.EmitStore(ev, slot)
	g.build.Br(joinB)

	g.build.SetBlock(joinB)
	return g.build.EmitLoad(g.lowerType(t), slot)
}

func (g *Generator) genCall(id ast.ExprID) ir.Value {
	data, _ := g.b.Exprs.Call(id)
	ti := g.info.Types
	fnT := ti.Decay(g.info.TypeOf(data.Callee))
	if ti.IsPointer(fnT) {
		fnT, _ = ti.Elem(fnT)
	}
	fn, ok := ti.FnInfo(fnT)
	if !ok {
		return ir.Value{}
	}
	if g.isRecord(fn.Ret) {
		g.unsupported(g.b.Exprs.Get(id).Span,
			"calling a function that returns a struct or union by value is not supported")
		return ir.Value{}
	}

	callee := g.genExpr(data.Callee)
	args := make([]ir.Value, 0, len(data.Args))
	for i, a := range data.Args {
		at := g.info.TypeOf(a)
		if i < len(fn.Params) {
			pt := fn.Params[i]
			if g.isRecord(pt) {
				g.unsupported(g.b.Exprs.Get(a).Span,
					"passing a struct or union by value is not supported")
				return ir.Value{}
			}
			args = append(args, g.convert(g.genExpr(a), at, pt))
			continue
		}
		// Default argument promotions for the variadic tail.
		dt := ti.Decay(at)
		switch {
		case ti.IsFloating(dt):
			args = append(args, g.convert(g.genExpr(a), at, ti.Builtins().Double))
		case ti.IsInteger(dt):
			args = append(args, g.convert(g.genExpr(a), at, ti.Promote(dt)))
		default:
			args = append(args, g.genExpr(a))
		}
	}
	return g.build.EmitCall(callee, g.lowerType(fn.Ret), args, fn.Variadic, len(fn.Params))
}

func (g *Generator) genIndexAddr(id ast.ExprID) ir.Value {
	data, _ := g.b.Exprs.Index(id)
	ti := g.info.Types
	ptrE, idxE := data.Base, data.Index
	if !ti.IsPointer(ti.Decay(g.info.TypeOf(ptrE))) {
		ptrE, idxE = idxE, ptrE
	}
	base := g.genExpr(ptrE)
	idx := g.convert(g.genExpr(idxE), g.info.TypeOf(idxE), ti.Builtins().Long)
	stride, _ := g.sizeAlignOf(g.info.TypeOf(id))
	return g.build.EmitGEP(base, idx, stride)
}

func (g *Generator) genMemberAddr(id ast.ExprID) ir.Value {
	data, _ := g.b.Exprs.Member(id)
	ti := g.info.Types

	var base ir.Value
	recT := ti.Unqualified(g.info.TypeOf(data.Base))
	if data.Arrow {
		base = g.genExpr(data.Base)
		recT, _ = ti.Elem(ti.Decay(recT))
		recT = ti.Unqualified(recT)
	} else {
		// Record-typed expressions evaluate to their address.
		base = g.genExpr(data.Base)
	}

	info, ok := ti.RecordInfo(recT)
	if !ok {
		return base
	}
	for i := range info.Fields {
		if info.Fields[i].Name == data.Name {
			off := info.Fields[i].Offset
			if off == 0 {
				return base
			}
			return g.build.EmitGEP(base, ir.ConstInt(ir.I64, int64(off)), 1)
		}
	}
	return base
}
