package parser

import (
	"minicc/internal/ast"
	"minicc/internal/source"
	"minicc/internal/token"
)

// parseExternalDecl parses one top-level construct: a function
// definition, a prototype, variable declarations, a typedef, or a
// struct/union/enum tag declaration.
func (p *Parser) parseExternalDecl() ([]ast.DeclID, bool) {
	if !p.atDeclStart() {
		p.err("expected declaration at top level, got \"" + p.peek().Text + "\"")
		return nil, false
	}

	specs, ok := p.parseDeclSpecs()
	if !ok {
		p.err("expected declaration specifiers")
		return nil, false
	}

	// "struct point { ... };" or "enum color { ... };"
	if p.at(token.Semicolon) {
		semi := p.advance()
		sp := specs.span.Cover(semi.Span)
		if p.isTagType(specs.typ) {
			return []ast.DeclID{p.arenas.Decls.NewTag(sp, specs.typ)}, true
		}
		p.errAt(sp, "declaration does not declare anything")
		return nil, true
	}

	if specs.isTypedef {
		return p.parseTypedefTail(specs)
	}

	name, nameSpan, typ, ok := p.parseDeclarator(specs.typ, false)
	if !ok {
		return nil, false
	}
	if name == source.NoStringID {
		p.errAt(nameSpan, "expected declared name")
		return nil, false
	}

	// Function definition: a function declarator followed by "{".
	if _, isFn := p.arenas.Types.Func(typ); isFn && p.at(token.LBrace) {
		return p.parseFunctionBody(specs, name, nameSpan, typ)
	}

	return p.parseInitDeclTail(specs, name, nameSpan, typ)
}

func (p *Parser) isTagType(id ast.TypeID) bool {
	n := p.arenas.Types.Get(id)
	return n != nil && (n.Kind == ast.TypeRecord || n.Kind == ast.TypeEnum)
}

// parseTypedefTail finishes "typedef <specs> declarator (, declarator)* ;"
// and registers the new names so later parses see them as types.
func (p *Parser) parseTypedefTail(specs declSpecs) ([]ast.DeclID, bool) {
	var decls []ast.DeclID
	for {
		name, nameSpan, typ, ok := p.parseDeclarator(specs.typ, false)
		if !ok {
			return decls, false
		}
		if name == source.NoStringID {
			p.errAt(nameSpan, "expected typedef name")
			return decls, false
		}
		sp := specs.span.Cover(p.prevSpan())
		decls = append(decls, p.arenas.Decls.NewTypedef(sp, name, typ, nameSpan))
		p.declareTypedef(name)
		if !p.eat(token.Comma) {
			break
		}
	}
	_, ok := p.expect(token.Semicolon, "expected ';' after typedef")
	return decls, ok
}

// parseInitDeclTail finishes a variable declaration list after its
// first declarator: "= init (, declarator (= init)?)* ;". Function
// declarators in the list become prototypes.
func (p *Parser) parseInitDeclTail(specs declSpecs, name source.StringID, nameSpan source.Span, typ ast.TypeID) ([]ast.DeclID, bool) {
	var decls []ast.DeclID
	for {
		init := ast.NoExprID
		_, isFn := p.arenas.Types.Func(typ)
		if p.at(token.Assign) {
			if isFn {
				p.errAt(p.peek().Span, "a function cannot be initialized")
			}
			p.advance()
			var ok bool
			init, ok = p.parseAssignExpr()
			if !ok {
				return decls, false
			}
		}
		sp := specs.span.Cover(p.prevSpan())
		if isFn {
			decls = append(decls, p.arenas.Decls.NewFunc(sp, name, typ, ast.NoStmtID, nameSpan))
		} else {
			decls = append(decls, p.arenas.Decls.NewVar(sp, name, typ, init, nameSpan))
		}
		p.shadowTypedef(name)

		if !p.eat(token.Comma) {
			break
		}
		var ok bool
		name, nameSpan, typ, ok = p.parseDeclarator(specs.typ, false)
		if !ok {
			return decls, false
		}
		if name == source.NoStringID {
			p.errAt(nameSpan, "expected declared name")
			return decls, false
		}
	}
	_, ok := p.expect(token.Semicolon, "expected ';' after declaration")
	return decls, ok
}

// parseFunctionBody parses the compound statement of a function
// definition. Parameter names become visible inside the body's
// typedef scope so they shadow same-named typedefs.
func (p *Parser) parseFunctionBody(specs declSpecs, name source.StringID, nameSpan source.Span, typ ast.TypeID) ([]ast.DeclID, bool) {
	p.shadowTypedef(name)
	p.pushTypedefScope()
	if fn, ok := p.arenas.Types.Func(typ); ok {
		for _, param := range fn.Params {
			if pr := p.arenas.Decls.Param(param); pr.Name != source.NoStringID {
				p.shadowTypedef(pr.Name)
			}
		}
	}
	body, ok := p.parseCompound()
	p.popTypedefScope()

	sp := specs.span.Cover(p.prevSpan())
	decl := p.arenas.Decls.NewFunc(sp, name, typ, body, nameSpan)
	return []ast.DeclID{decl}, ok
}

// parseLocalDecls parses one block-scope declaration statement and
// returns the declarations it introduces.
func (p *Parser) parseLocalDecls() ([]ast.DeclID, bool) {
	specs, ok := p.parseDeclSpecs()
	if !ok {
		p.err("expected declaration")
		return nil, false
	}

	if p.at(token.Semicolon) {
		semi := p.advance()
		sp := specs.span.Cover(semi.Span)
		if p.isTagType(specs.typ) {
			return []ast.DeclID{p.arenas.Decls.NewTag(sp, specs.typ)}, true
		}
		p.errAt(sp, "declaration does not declare anything")
		return nil, true
	}

	if specs.isTypedef {
		return p.parseTypedefTail(specs)
	}

	name, nameSpan, typ, ok := p.parseDeclarator(specs.typ, false)
	if !ok {
		return nil, false
	}
	if name == source.NoStringID {
		p.errAt(nameSpan, "expected declared name")
		return nil, false
	}
	if p.at(token.LBrace) {
		p.errAt(p.peek().Span, "nested function definitions are not allowed")
		return nil, false
	}
	return p.parseInitDeclTail(specs, name, nameSpan, typ)
}
