package irgen

import (
	"minicc/internal/ast"
	"minicc/internal/ir"
)

// genStmt lowers one statement. Statements after a terminator are
// unreachable and skipped; the subset has no labels to jump back in.
func (g *Generator) genStmt(id ast.StmtID) {
	if g.build.Terminated() {
		return
	}
	st := g.b.Stmts.Get(id)
	if st == nil {
		return
	}
	switch st.Kind {
	case ast.StmtExpr:
		data, _ := g.b.Stmts.Expr(id)
		g.genExpr(data.Expr)
	case ast.StmtDecl:
		data, _ := g.b.Stmts.Decl(id)
		for _, d := range data.Decls {
			g.genLocalDecl(d)
		}
	case ast.StmtCompound:
		data, _ := g.b.Stmts.Compound(id)
		for _, s := range data.Stmts {
			g.genStmt(s)
		}
	case ast.StmtIf:
		g.genIf(id)
	case ast.StmtWhile:
		g.genWhile(id)
	case ast.StmtDoWhile:
		g.genDoWhile(id)
	case ast.StmtFor:
		g.genFor(id)
	case ast.StmtSwitch:
		g.genSwitch(id)
	case ast.StmtReturn:
		g.genReturn(id)
	case ast.StmtBreak:
		g.build.Br(g.breaks[len(g.breaks)-1])
	case ast.StmtContinue:
		g.build.Br(g.continues[len(g.continues)-1])
	case ast.StmtEmpty:
	}
}

func (g *Generator) genLocalDecl(id ast.DeclID) {
	decl := g.b.Decls.Get(id)
	switch decl.Kind {
	case ast.DeclVar:
		data, _ := g.b.Decls.Var(id)
		if !data.Init.IsValid() {
			return
		}
		symID := g.info.DeclSyms[id]
		slot, ok := g.locals[symID]
		if !ok {
			return
		}
		sym := g.info.Table.Symbol(symID)
		if g.isRecord(sym.Type) {
			src := g.genExpr(data.Init)
			size, align := g.sizeAlignOf(sym.Type)
			g.build.EmitMemCpy(slot, src, size, align)
			return
		}
		v := g.genExpr(data.Init)
		v = g.convert(v, g.info.TypeOf(data.Init), sym.Type)
		g.build.EmitStore(v, slot)
	case ast.DeclFunc:
		// Block-scope prototype: only the declare matters here.
		sym := g.info.Table.Symbol(g.info.DeclSyms[id])
		if sym == nil {
			return
		}
		if fn, ok := g.info.Types.FnInfo(sym.Type); ok {
			g.declareExtern(g.name(sym.Name), fn)
		}
	}
}

func (g *Generator) genIf(id ast.StmtID) {
	data, _ := g.b.Stmts.If(id)
	cond := g.toBool(g.genExpr(data.Cond), g.info.TypeOf(data.Cond))

	thenB := g.build.NewBlock("then")
	if !data.Else.IsValid() {
		endB := g.build.NewBlock("endif")
		g.build.CondBr(cond, thenB, endB)
		g.build.SetBlock(thenB)
		g.genStmt(data.Then)
		if !g.build.Terminated() {
			g.build.Br(endB)
		}
		g.build.SetBlock(endB)
		return
	}

	elseB := g.build.NewBlock("else")
	g.build.CondBr(cond, thenB, elseB)

	g.build.SetBlock(thenB)
	g.genStmt(data.Then)
	thenEnd := g.build.CurrentBlock()
	thenFalls := !g.build.Terminated()

	g.build.SetBlock(elseB)
	g.genStmt(data.Else)
	elseEnd := g.build.CurrentBlock()
	elseFalls := !g.build.Terminated()

	// Both arms leave the function: no join block, and genStmt skips
	// whatever unreachable statements follow.
	if !thenFalls && !elseFalls {
		return
	}

	endB := g.build.NewBlock("endif")
	if thenFalls {
		g.build.SetBlock(thenEnd)
		g.build.Br(endB)
	}
	if elseFalls {
		g.build.SetBlock(elseEnd)
		g.build.Br(endB)
	}
	g.build.SetBlock(endB)
}

func (g *Generator) genWhile(id ast.StmtID) {
	data, _ := g.b.Stmts.While(id)
	condB := g.build.NewBlock("while.cond")
	bodyB := g.build.NewBlock("while.body")
	endB := g.build.NewBlock("while.end")

	g.build.Br(condB)
	g.build.SetBlock(condB)
	c := g.toBool(g.genExpr(data.Cond), g.info.TypeOf(data.Cond))
	g.build.CondBr(c, bodyB, endB)

	g.build.SetBlock(bodyB)
	g.pushLoop(endB, condB)
	g.genStmt(data.Body)
	g.popLoop()
	if !g.build.Terminated() {
		g.build.Br(condB)
	}
	g.build.SetBlock(endB)
}

func (g *Generator) genDoWhile(id ast.StmtID) {
	data, _ := g.b.Stmts.While(id)
	bodyB := g.build.NewBlock("do.body")
	condB := g.build.NewBlock("do.cond")
	endB := g.build.NewBlock("do.end")

	g.build.Br(bodyB)
	g.build.SetBlock(bodyB)
	g.pushLoop(endB, condB)
	g.genStmt(data.Body)
	g.popLoop()
	if !g.build.Terminated() {
		g.build.Br(condB)
	}
	g.build.SetBlock(condB)
	c := g.toBool(g.genExpr(data.Cond), g.info.TypeOf(data.Cond))
	g.build.CondBr(c, bodyB, endB)
	g.build.SetBlock(endB)
}

func (g *Generator) genFor(id ast.StmtID) {
	data, _ := g.b.Stmts.For(id)
	if data.Init.IsValid() {
		g.genStmt(data.Init)
	}
	condB := g.build.NewBlock("for.cond")
	bodyB := g.build.NewBlock("for.body")
	postB := g.build.NewBlock("for.post")
	endB := g.build.NewBlock("for.end")

	g.build.Br(condB)
	g.build.SetBlock(condB)
	if data.Cond.IsValid() {
		c := g.toBool(g.genExpr(data.Cond), g.info.TypeOf(data.Cond))
		g.build.CondBr(c, bodyB, endB)
	} else {
		g.build.Br(bodyB)
	}

	g.build.SetBlock(bodyB)
	g.pushLoop(endB, postB)
	g.genStmt(data.Body)
	g.popLoop()
	if !g.build.Terminated() {
		g.build.Br(postB)
	}

	g.build.SetBlock(postB)
	if data.Post.IsValid() {
		g.genExpr(data.Post)
	}
	g.build.Br(condB)
	g.build.SetBlock(endB)
}

func (g *Generator) genSwitch(id ast.StmtID) {
	data, _ := g.b.Stmts.Switch(id)
	condT := g.info.Types.Decay(g.info.TypeOf(data.Cond))
	promoted := g.info.Types.Promote(condT)
	cv := g.convert(g.genExpr(data.Cond), condT, promoted)

	endB := g.build.NewBlock("sw.end")
	defB := endB
	arms := make([]ir.BlockID, len(data.Cases))
	var cases []ir.SwitchCase
	for i, arm := range data.Cases {
		if arm.Value.IsValid() {
			arms[i] = g.build.NewBlock("sw.case")
			cases = append(cases, ir.SwitchCase{
				Value:  g.truncConst(g.info.Folded[arm.Value], promoted),
				Target: arms[i],
			})
		} else {
			arms[i] = g.build.NewBlock("sw.default")
			defB = arms[i]
		}
	}
	g.build.Switch(cv, defB, cases)

	g.breaks = append(g.breaks, endB)
	for i, arm := range data.Cases {
		g.build.SetBlock(arms[i])
		for _, s := range arm.Body {
			g.genStmt(s)
		}
		if !g.build.Terminated() {
			// Fall through to the next arm, like the source does.
			if i+1 < len(arms) {
				g.build.Br(arms[i+1])
			} else {
				g.build.Br(endB)
			}
		}
	}
	g.breaks = g.breaks[:len(g.breaks)-1]
	g.build.SetBlock(endB)
}

func (g *Generator) genReturn(id ast.StmtID) {
	data, _ := g.b.Stmts.Return(id)
	if !data.Value.IsValid() {
		g.build.RetVoid()
		return
	}
	v := g.genExpr(data.Value)
	v = g.convert(v, g.info.TypeOf(data.Value), g.retType)
	g.build.Ret(v)
}

func (g *Generator) pushLoop(brk, cont ir.BlockID) {
	g.breaks = append(g.breaks, brk)
	g.continues = append(g.continues, cont)
}

func (g *Generator) popLoop() {
	g.breaks = g.breaks[:len(g.breaks)-1]
	g.continues = g.continues[:len(g.continues)-1]
}
