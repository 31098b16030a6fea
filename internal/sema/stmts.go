package sema

import (
	"fmt"

	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/types"
)

func (c *Checker) checkStmt(id ast.StmtID) {
	st := c.b.Stmts.Get(id)
	if st == nil {
		return
	}
	switch st.Kind {
	case ast.StmtExpr:
		data, _ := c.b.Stmts.Expr(id)
		c.checkExpr(data.Expr)
	case ast.StmtDecl:
		data, _ := c.b.Stmts.Decl(id)
		for _, d := range data.Decls {
			c.checkLocalDecl(d)
		}
	case ast.StmtCompound:
		data, _ := c.b.Stmts.Compound(id)
		prev := c.pushScope()
		for _, s := range data.Stmts {
			c.checkStmt(s)
		}
		c.popScope(prev)
	case ast.StmtIf:
		data, _ := c.b.Stmts.If(id)
		c.checkCond(data.Cond)
		c.checkStmt(data.Then)
		if data.Else.IsValid() {
			c.checkStmt(data.Else)
		}
	case ast.StmtWhile, ast.StmtDoWhile:
		data, _ := c.b.Stmts.While(id)
		c.checkCond(data.Cond)
		c.loopDepth++
		c.checkStmt(data.Body)
		c.loopDepth--
	case ast.StmtFor:
		c.checkFor(id)
	case ast.StmtSwitch:
		c.checkSwitch(id)
	case ast.StmtReturn:
		c.checkReturn(id)
	case ast.StmtBreak:
		if c.loopDepth == 0 && c.switchDepth == 0 {
			c.report(diag.KindControlFlowError, st.Span,
				"'break' statement not in a loop or switch statement")
		}
	case ast.StmtContinue:
		if c.loopDepth == 0 {
			c.report(diag.KindControlFlowError, st.Span,
				"'continue' statement not in a loop statement")
		}
	case ast.StmtEmpty:
	}
}

// checkCond requires a scalar controlling expression.
func (c *Checker) checkCond(cond ast.ExprID) types.TypeID {
	t := c.checkExpr(cond)
	if !t.IsValid() {
		return types.NoTypeID
	}
	dt := c.info.Types.Decay(t)
	if !c.info.Types.IsScalar(dt) {
		c.report(diag.KindTypeMismatchError, c.b.Exprs.Get(cond).Span,
			"controlling expression must have scalar type, not "+c.typeString(t))
		return types.NoTypeID
	}
	return dt
}

// checkFor gives the init clause its own scope, shared with the body.
func (c *Checker) checkFor(id ast.StmtID) {
	data, _ := c.b.Stmts.For(id)
	prev := c.pushScope()
	if data.Init.IsValid() {
		c.checkStmt(data.Init)
	}
	if data.Cond.IsValid() {
		c.checkCond(data.Cond)
	}
	if data.Post.IsValid() {
		c.checkExpr(data.Post)
	}
	c.loopDepth++
	c.checkStmt(data.Body)
	c.loopDepth--
	c.popScope(prev)
}

func (c *Checker) checkSwitch(id ast.StmtID) {
	data, _ := c.b.Stmts.Switch(id)
	condT := c.checkExpr(data.Cond)
	if condT.IsValid() && !c.info.Types.IsInteger(c.info.Types.Unqualified(condT)) {
		c.report(diag.KindTypeMismatchError, c.b.Exprs.Get(data.Cond).Span,
			"switch condition must have integer type, not "+c.typeString(condT))
	}

	seen := make(map[int64]ast.ExprID, len(data.Cases))
	defaultSeen := false

	c.switchDepth++
	prev := c.pushScope()
	for _, arm := range data.Cases {
		if arm.Value.IsValid() {
			vt := c.checkExpr(arm.Value)
			if vt.IsValid() && !c.info.Types.IsInteger(c.info.Types.Unqualified(vt)) {
				c.report(diag.KindTypeMismatchError, c.b.Exprs.Get(arm.Value).Span,
					"case label must have integer type, not "+c.typeString(vt))
			} else if v, ok := c.foldInt(arm.Value); ok {
				if dup, clash := seen[v]; clash {
					c.report(diag.KindConstantEvaluationError, c.b.Exprs.Get(arm.Value).Span,
						fmt.Sprintf("duplicate case value %d", v),
						diag.Note{Span: c.b.Exprs.Get(dup).Span, Msg: "previous case is here"})
				} else {
					seen[v] = arm.Value
				}
			}
		} else {
			if defaultSeen {
				c.report(diag.KindControlFlowError, arm.Span,
					"multiple default labels in one switch")
			}
			defaultSeen = true
		}
		for _, s := range arm.Body {
			c.checkStmt(s)
		}
	}
	c.popScope(prev)
	c.switchDepth--
}

func (c *Checker) checkReturn(id ast.StmtID) {
	st := c.b.Stmts.Get(id)
	data, _ := c.b.Stmts.Return(id)
	retVoid := c.info.Types.IsVoid(c.fnRet)

	if !data.Value.IsValid() {
		if !retVoid {
			c.report(diag.KindReturnTypeError, st.Span,
				"non-void function '"+c.lookupName(c.fnName)+"' should return a value")
		}
		return
	}

	vt := c.checkExpr(data.Value)
	if retVoid {
		c.report(diag.KindReturnTypeError, st.Span,
			"void function '"+c.lookupName(c.fnName)+"' should not return a value")
		return
	}
	if !vt.IsValid() {
		return
	}
	if !c.convertible(vt, c.fnRet, data.Value) {
		c.report(diag.KindReturnTypeError, c.b.Exprs.Get(data.Value).Span,
			"cannot return "+c.typeString(vt)+" from a function returning "+c.typeString(c.fnRet))
		return
	}
	c.warnNarrowing(data.Value, c.info.Types.Decay(vt), c.fnRet)
}
