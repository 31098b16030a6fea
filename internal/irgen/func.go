package irgen

import (
	"minicc/internal/ast"
	"minicc/internal/ir"
	"minicc/internal/symbols"
	"minicc/internal/types"
)

func (g *Generator) genFuncDecl(declID ast.DeclID) {
	data, ok := g.b.Decls.Func(declID)
	if !ok {
		return
	}
	sym := g.info.Table.Symbol(g.info.DeclSyms[declID])
	if sym == nil {
		return
	}
	fn, ok := g.info.Types.FnInfo(sym.Type)
	if !ok {
		return
	}
	if g.isRecord(fn.Ret) {
		g.unsupported(data.NameSpan, "returning a struct or union by value is not supported")
		return
	}
	for _, p := range fn.Params {
		if g.isRecord(p) {
			g.unsupported(data.NameSpan, "passing a struct or union by value is not supported")
			return
		}
	}
	name := g.name(data.Name)
	if !data.Body.IsValid() {
		g.declareExtern(name, fn)
		return
	}
	g.genFuncBody(declID, data, fn)
}

func (g *Generator) genFuncBody(declID ast.DeclID, data *ast.DeclFuncData, fn *types.FnInfo) {
	params := make([]ir.Param, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = ir.Param{Type: g.lowerType(p)}
	}
	name := g.name(data.Name)
	g.build.NewFunction(name, g.lowerType(fn.Ret), params, fn.Variadic)

	g.locals = make(map[symbols.SymbolID]ir.Value)
	g.scratchSlot = ir.Value{}
	g.retType = fn.Ret
	g.breaks = g.breaks[:0]
	g.continues = g.continues[:0]

	// Parameters spill to stack slots in the entry block so that taking
	// their address and assigning to them need no special cases.
	for i, symID := range g.info.ParamSyms[declID] {
		if symID == symbols.NoSymbolID {
			continue
		}
		size, align := g.sizeAlignOf(fn.Params[i])
		slot := g.build.EmitAlloca(size, align)
		g.build.EmitStore(g.build.ParamValue(i), slot)
		g.locals[symID] = slot
	}

	// All locals get their slot up front. A declaration inside a loop
	// body must not allocate on every pass.
	var decls []ast.DeclID
	g.collectLocals(data.Body, &decls)
	for _, d := range decls {
		symID, ok := g.info.DeclSyms[d]
		if !ok {
			continue
		}
		sym := g.info.Table.Symbol(symID)
		if sym == nil {
			continue
		}
		size, align := g.sizeAlignOf(sym.Type)
		g.locals[symID] = g.build.EmitAlloca(size, align)
	}

	g.genStmt(data.Body)

	if !g.build.Terminated() {
		switch {
		case g.info.Types.IsVoid(fn.Ret):
			g.build.RetVoid()
		case name == "main":
			g.build.Ret(ir.ConstInt(g.lowerType(fn.Ret), 0))
		default:
			// The checker proved this path unreachable.
			g.build.Unreachable()
		}
	}
}

// collectLocals gathers every variable declared anywhere in the body.
func (g *Generator) collectLocals(id ast.StmtID, out *[]ast.DeclID) {
	st := g.b.Stmts.Get(id)
	if st == nil {
		return
	}
	switch st.Kind {
	case ast.StmtDecl:
		data, _ := g.b.Stmts.Decl(id)
		for _, d := range data.Decls {
			if g.b.Decls.Get(d).Kind == ast.DeclVar {
				*out = append(*out, d)
			}
		}
	case ast.StmtCompound:
		data, _ := g.b.Stmts.Compound(id)
		for _, s := range data.Stmts {
			g.collectLocals(s, out)
		}
	case ast.StmtIf:
		data, _ := g.b.Stmts.If(id)
		g.collectLocals(data.Then, out)
		if data.Else.IsValid() {
			g.collectLocals(data.Else, out)
		}
	case ast.StmtWhile, ast.StmtDoWhile:
		data, _ := g.b.Stmts.While(id)
		g.collectLocals(data.Body, out)
	case ast.StmtFor:
		data, _ := g.b.Stmts.For(id)
		if data.Init.IsValid() {
			g.collectLocals(data.Init, out)
		}
		g.collectLocals(data.Body, out)
	case ast.StmtSwitch:
		data, _ := g.b.Stmts.Switch(id)
		for _, arm := range data.Cases {
			for _, s := range arm.Body {
				g.collectLocals(s, out)
			}
		}
	}
}

// scratch returns the per-function spill slot used to join values
// across short-circuit and conditional branches without phi nodes.
func (g *Generator) scratch() ir.Value {
	if g.scratchSlot.Kind == ir.ValNone {
		g.scratchSlot = g.build.EmitAllocaEntry(8, 8)
	}
	return g.scratchSlot
}
