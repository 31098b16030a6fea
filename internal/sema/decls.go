package sema

import (
	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/source"
	"minicc/internal/symbols"
	"minicc/internal/types"
)

func (c *Checker) checkTopDecl(id ast.DeclID) {
	decl := c.b.Decls.Get(id)
	if decl == nil {
		return
	}
	switch decl.Kind {
	case ast.DeclFunc:
		c.checkFuncDecl(id)
	case ast.DeclVar:
		c.checkGlobalVar(id)
	case ast.DeclTypedef:
		c.checkTypedef(id)
	case ast.DeclTag:
		if data, ok := c.b.Decls.Tag(id); ok {
			c.resolveType(data.Type)
		}
	}
}

func (c *Checker) checkFuncDecl(id ast.DeclID) {
	data, ok := c.b.Decls.Func(id)
	if !ok {
		return
	}
	ft := c.resolveType(data.Type)
	if !ft.IsValid() {
		return
	}
	hasBody := data.Body.IsValid()

	var symID symbols.SymbolID
	if prevID, found := c.info.Table.LookupLocal(c.info.Table.Global(), data.Name); found {
		prev := c.info.Table.Symbol(prevID)
		switch {
		case prev.Kind != symbols.SymFunc:
			c.report(diag.KindRedefinitionError, data.NameSpan,
				"redefinition of '"+c.lookupName(data.Name)+"' as a different kind of symbol",
				diag.Note{Span: prev.Span, Msg: "previous declaration is here"})
			return
		case !c.info.Types.Compatible(prev.Type, ft):
			c.report(diag.KindConflictingTypesError, data.NameSpan,
				"conflicting types for '"+c.lookupName(data.Name)+"'",
				diag.Note{Span: prev.Span, Msg: "previous declaration is here"})
			return
		case hasBody && prev.Defined:
			c.report(diag.KindRedefinitionError, data.NameSpan,
				"redefinition of '"+c.lookupName(data.Name)+"'",
				diag.Note{Span: prev.Span, Msg: "previous definition is here"})
			return
		case hasBody:
			symID = c.info.Table.Replace(c.info.Table.Global(), symbols.Symbol{
				Kind: symbols.SymFunc, Name: data.Name, Type: ft,
				Span: data.NameSpan, Decl: id, Defined: true,
			})
		default:
			symID = prevID
		}
	} else {
		symID, _ = c.info.Table.Declare(c.info.Table.Global(), symbols.Symbol{
			Kind: symbols.SymFunc, Name: data.Name, Type: ft,
			Span: data.NameSpan, Decl: id, Defined: hasBody,
		})
	}
	c.info.DeclSyms[id] = symID

	if hasBody {
		c.checkFuncBody(id, data, ft)
	}
}

// checkFuncBody checks a function definition. Parameters live in the
// same scope as the body's outermost block, so a local redeclaring a
// parameter is rejected.
func (c *Checker) checkFuncBody(id ast.DeclID, data *ast.DeclFuncData, ft types.TypeID) {
	fn, ok := c.info.Types.FnInfo(ft)
	if !ok {
		return
	}
	syn, _ := c.b.Types.Func(data.Type)

	prev := c.pushScope()
	prevRet, prevName := c.fnRet, c.fnName
	c.fnRet, c.fnName = fn.Ret, data.Name

	paramSyms := make([]symbols.SymbolID, len(syn.Params))
	for i, pid := range syn.Params {
		p := c.b.Decls.Param(pid)
		if p.Name == source.NoStringID {
			continue
		}
		existing, declared := c.info.Table.Declare(c.scope, symbols.Symbol{
			Kind: symbols.SymParam, Name: p.Name, Type: fn.Params[i],
			Span: p.NameSpan,
		})
		if !declared {
			dup := c.info.Table.Symbol(existing)
			c.report(diag.KindRedefinitionError, p.NameSpan,
				"redefinition of parameter '"+c.lookupName(p.Name)+"'",
				diag.Note{Span: dup.Span, Msg: "previous declaration is here"})
			continue
		}
		paramSyms[i] = existing
	}
	c.info.ParamSyms[id] = paramSyms

	body, _ := c.b.Stmts.Compound(data.Body)
	for _, st := range body.Stmts {
		c.checkStmt(st)
	}

	// A non-void function must return a value on every path. main is
	// exempt: it gets an implicit return 0.
	if !c.info.Types.IsVoid(fn.Ret) && !c.errored && !c.isMain(data.Name) {
		if !c.stmtReturns(data.Body) {
			c.report(diag.KindReturnTypeError, data.NameSpan,
				"control reaches end of non-void function '"+c.lookupName(data.Name)+"'")
		}
	}

	c.fnRet, c.fnName = prevRet, prevName
	c.popScope(prev)
}

func (c *Checker) isMain(name source.StringID) bool {
	s, ok := c.names.Lookup(name)
	return ok && s == "main"
}

// stmtReturns reports whether the statement returns on every path.
// The analysis is structural: loops and switches never count, matching
// the usual conservative treatment.
func (c *Checker) stmtReturns(id ast.StmtID) bool {
	st := c.b.Stmts.Get(id)
	if st == nil {
		return false
	}
	switch st.Kind {
	case ast.StmtReturn:
		return true
	case ast.StmtCompound:
		data, _ := c.b.Stmts.Compound(id)
		for _, s := range data.Stmts {
			if c.stmtReturns(s) {
				return true
			}
		}
		return false
	case ast.StmtIf:
		data, _ := c.b.Stmts.If(id)
		return data.Else.IsValid() && c.stmtReturns(data.Then) && c.stmtReturns(data.Else)
	default:
		return false
	}
}

func (c *Checker) checkGlobalVar(id ast.DeclID) {
	data, ok := c.b.Decls.Var(id)
	if !ok {
		return
	}
	t := c.resolveType(data.Type)
	if !t.IsValid() {
		return
	}
	if !c.checkObjectType(t, data.NameSpan, data.Name) {
		return
	}

	if prevID, found := c.info.Table.LookupLocal(c.info.Table.Global(), data.Name); found {
		prev := c.info.Table.Symbol(prevID)
		kind := diag.KindRedefinitionError
		msg := "redefinition of '" + c.lookupName(data.Name) + "'"
		if prev.Kind == symbols.SymVar && !c.info.Types.Compatible(prev.Type, t) {
			kind = diag.KindConflictingTypesError
			msg = "conflicting types for '" + c.lookupName(data.Name) + "'"
		}
		c.report(kind, data.NameSpan, msg,
			diag.Note{Span: prev.Span, Msg: "previous definition is here"})
		return
	}

	symID, _ := c.info.Table.Declare(c.info.Table.Global(), symbols.Symbol{
		Kind: symbols.SymVar, Name: data.Name, Type: t,
		Span: data.NameSpan, Decl: id,
	})
	c.info.DeclSyms[id] = symID

	if data.Init.IsValid() {
		c.checkGlobalInit(data.Init, t)
	}
}

// checkGlobalInit requires a constant initializer and records its
// folded value for the IR generator.
func (c *Checker) checkGlobalInit(init ast.ExprID, target types.TypeID) {
	vt := c.checkExpr(init)
	if !vt.IsValid() {
		return
	}
	sp := c.b.Exprs.Get(init).Span
	if !c.convertible(vt, target, init) {
		c.report(diag.KindTypeMismatchError, sp,
			"cannot initialize "+c.typeString(target)+" with "+c.typeString(vt))
		return
	}
	c.warnNarrowing(init, c.info.Types.Decay(vt), target)
	bare := c.info.Types.Unqualified(target)
	switch {
	case c.info.Types.IsFloating(bare):
		c.foldFloat(init)
	case c.info.Types.IsFloating(c.info.Types.Unqualified(vt)):
		// Integer target, floating initializer: fold and truncate.
		if f, ok := c.foldFloat(init); ok {
			c.info.Folded[init] = c.truncInt(int64(f), bare)
		}
	case c.info.Types.IsPointer(bare):
		// Null pointer constants fold to zero; string literal
		// initializers carry their bytes in Info.Strings.
		if _, isStr := c.info.Strings[init]; !isStr {
			c.foldInt(init)
		}
	default:
		c.foldInt(init)
	}
}

func (c *Checker) checkTypedef(id ast.DeclID) {
	data, ok := c.b.Decls.Typedef(id)
	if !ok {
		return
	}
	t := c.resolveType(data.Type)
	if !t.IsValid() {
		return
	}
	existing, declared := c.info.Table.Declare(c.scope, symbols.Symbol{
		Kind: symbols.SymTypedef, Name: data.Name, Type: t,
		Span: data.NameSpan, Decl: id,
	})
	if !declared {
		prev := c.info.Table.Symbol(existing)
		// Redeclaring a typedef to the identical type is legal.
		if prev.Kind == symbols.SymTypedef && c.info.Types.Compatible(prev.Type, t) {
			return
		}
		c.report(diag.KindRedefinitionError, data.NameSpan,
			"redefinition of '"+c.lookupName(data.Name)+"'",
			diag.Note{Span: prev.Span, Msg: "previous definition is here"})
		return
	}
	c.info.DeclSyms[id] = existing
}

// checkObjectType rejects types a variable cannot have.
func (c *Checker) checkObjectType(t types.TypeID, sp source.Span, name source.StringID) bool {
	bare := c.info.Types.Unqualified(t)
	if c.info.Types.IsVoid(bare) {
		c.report(diag.KindTypeMismatchError, sp,
			"variable '"+c.lookupName(name)+"' has incomplete type 'void'")
		return false
	}
	if _, _, sized := c.info.Types.SizeAlign(bare); !sized {
		c.report(diag.KindTypeMismatchError, sp,
			"variable '"+c.lookupName(name)+"' has incomplete type "+c.typeString(t))
		return false
	}
	return true
}

// checkLocalDecl handles one declaration inside a block.
func (c *Checker) checkLocalDecl(id ast.DeclID) {
	decl := c.b.Decls.Get(id)
	if decl == nil {
		return
	}
	switch decl.Kind {
	case ast.DeclVar:
		c.checkLocalVar(id)
	case ast.DeclFunc:
		// A block-scope prototype. Declared at file scope like C does
		// with external linkage.
		c.checkFuncDecl(id)
	case ast.DeclTypedef:
		c.checkTypedef(id)
	case ast.DeclTag:
		if data, ok := c.b.Decls.Tag(id); ok {
			c.resolveType(data.Type)
		}
	}
}

func (c *Checker) checkLocalVar(id ast.DeclID) {
	data, ok := c.b.Decls.Var(id)
	if !ok {
		return
	}
	t := c.resolveType(data.Type)
	if !t.IsValid() {
		return
	}
	if !c.checkObjectType(t, data.NameSpan, data.Name) {
		return
	}

	existing, declared := c.info.Table.Declare(c.scope, symbols.Symbol{
		Kind: symbols.SymVar, Name: data.Name, Type: t,
		Span: data.NameSpan, Decl: id,
	})
	if !declared {
		prev := c.info.Table.Symbol(existing)
		c.report(diag.KindRedefinitionError, data.NameSpan,
			"redefinition of '"+c.lookupName(data.Name)+"'",
			diag.Note{Span: prev.Span, Msg: "previous definition is here"})
		return
	}
	c.info.DeclSyms[id] = existing

	if data.Init.IsValid() {
		vt := c.checkExpr(data.Init)
		if !vt.IsValid() {
			return
		}
		if !c.convertible(vt, t, data.Init) {
			c.report(diag.KindTypeMismatchError, c.b.Exprs.Get(data.Init).Span,
				"cannot initialize "+c.typeString(t)+" with "+c.typeString(vt))
			return
		}
		c.warnNarrowing(data.Init, c.info.Types.Decay(vt), t)
	}
}
