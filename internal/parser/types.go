package parser

import (
	"minicc/internal/ast"
	"minicc/internal/source"
	"minicc/internal/token"
)

// declSpecs is the outcome of parsing a declaration-specifier sequence.
type declSpecs struct {
	typ       ast.TypeID
	isTypedef bool // the "typedef" storage class was present
	span      source.Span
}

// parseDeclSpecs parses type specifiers and qualifiers in any order:
// "unsigned long const int" and "const int unsigned long" mean the
// same thing. Struct/union/enum and typedef names are single
// specifiers and cannot combine with arithmetic ones.
func (p *Parser) parseDeclSpecs() (declSpecs, bool) {
	var (
		specs      declSpecs
		isConst    bool
		sawVoid    bool
		sawBool    bool
		sawChar    bool
		sawInt     bool
		sawFloat   bool
		sawDouble  bool
		shortCount int
		longCount  int
		signedness int8 // +1 signed, -1 unsigned
		tagType    ast.TypeID
		namedType  source.StringID
		any        bool
	)

	start := p.peek().Span
	specs.span = start

loop:
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.KwTypedef:
			if specs.isTypedef {
				p.errAt(tok.Span, "duplicate 'typedef'")
			}
			specs.isTypedef = true
		case token.KwConst:
			isConst = true
		case token.KwVoid:
			sawVoid = true
		case token.KwBool:
			sawBool = true
		case token.KwChar:
			sawChar = true
		case token.KwInt:
			if sawInt {
				p.errAt(tok.Span, "duplicate 'int' specifier")
			}
			sawInt = true
		case token.KwFloat:
			sawFloat = true
		case token.KwDouble:
			sawDouble = true
		case token.KwShort:
			shortCount++
		case token.KwLong:
			longCount++
		case token.KwSigned:
			if signedness == -1 {
				p.errAt(tok.Span, "'signed' conflicts with 'unsigned'")
			}
			signedness = 1
		case token.KwUnsigned:
			if signedness == 1 {
				p.errAt(tok.Span, "'unsigned' conflicts with 'signed'")
			}
			signedness = -1
		case token.KwStruct, token.KwUnion:
			if any || tagType.IsValid() {
				p.errAt(tok.Span, "struct/union cannot combine with other type specifiers")
			}
			t, ok := p.parseRecordSpecifier(tok.Kind == token.KwUnion)
			if !ok {
				return specs, false
			}
			tagType = t
			specs.span = start.Cover(p.prevSpan())
			continue loop
		case token.KwEnum:
			if any || tagType.IsValid() {
				p.errAt(tok.Span, "enum cannot combine with other type specifiers")
			}
			t, ok := p.parseEnumSpecifier()
			if !ok {
				return specs, false
			}
			tagType = t
			specs.span = start.Cover(p.prevSpan())
			continue loop
		case token.Ident:
			// A typedef name acts as a specifier only when no other
			// type specifier has been seen yet.
			if !any && !tagType.IsValid() && namedType == source.NoStringID && p.atTypedefName() {
				namedType = p.interner.Intern(tok.Text)
				p.advance()
				specs.span = start.Cover(tok.Span)
				continue loop
			}
			break loop
		default:
			break loop
		}
		if tok.Kind != token.KwConst && tok.Kind != token.KwTypedef {
			any = true
		}
		p.advance()
		specs.span = start.Cover(tok.Span)
	}

	switch {
	case tagType.IsValid():
		p.setTagConst(tagType, isConst)
		specs.typ = tagType
		return specs, true
	case namedType != source.NoStringID:
		specs.typ = p.arenas.Types.NewNamed(specs.span, namedType, isConst)
		return specs, true
	case !any && !isConst && !specs.isTypedef:
		return specs, false // not a declaration at all
	}

	prim, ok := resolvePrim(sawVoid, sawBool, sawChar, sawInt, sawFloat, sawDouble, shortCount, longCount, signedness)
	if !ok {
		p.errAt(specs.span, "invalid combination of type specifiers")
		prim = ast.PrimInt
	}
	specs.typ = p.arenas.Types.NewPrim(specs.span, prim, isConst)
	return specs, true
}

// resolvePrim folds a specifier multiset into one primitive kind,
// following the C89/C99 combination rules for the supported subset.
func resolvePrim(void, boolean, char, intKw, float, double bool, shorts, longs int, signedness int8) (ast.PrimKind, bool) {
	switch {
	case void:
		if boolean || char || intKw || float || double || shorts > 0 || longs > 0 || signedness != 0 {
			return ast.PrimVoid, false
		}
		return ast.PrimVoid, true
	case boolean:
		if char || intKw || float || double || shorts > 0 || longs > 0 || signedness != 0 {
			return ast.PrimBool, false
		}
		return ast.PrimBool, true
	case float:
		if char || intKw || double || shorts > 0 || longs > 0 || signedness != 0 {
			return ast.PrimFloat, false
		}
		return ast.PrimFloat, true
	case double:
		if char || intKw || shorts > 0 || longs > 1 || signedness != 0 {
			return ast.PrimDouble, false
		}
		if longs == 1 {
			return ast.PrimLongDouble, true
		}
		return ast.PrimDouble, true
	case char:
		if intKw || shorts > 0 || longs > 0 {
			return ast.PrimChar, false
		}
		switch signedness {
		case 1:
			return ast.PrimSChar, true
		case -1:
			return ast.PrimUChar, true
		default:
			return ast.PrimChar, true
		}
	case shorts > 0:
		if shorts > 1 || longs > 0 {
			return ast.PrimShort, false
		}
		if signedness == -1 {
			return ast.PrimUShort, true
		}
		return ast.PrimShort, true
	case longs > 0:
		if longs > 2 {
			return ast.PrimLong, false
		}
		if longs == 2 {
			if signedness == -1 {
				return ast.PrimULongLong, true
			}
			return ast.PrimLongLong, true
		}
		if signedness == -1 {
			return ast.PrimULong, true
		}
		return ast.PrimLong, true
	default:
		// Bare int, or bare signed/unsigned.
		if signedness == -1 {
			return ast.PrimUInt, true
		}
		return ast.PrimInt, true
	}
}

func (p *Parser) prevSpan() source.Span { return p.lastSpan }

// setTagConst propagates a const qualifier onto a record or enum
// specifier node.
func (p *Parser) setTagConst(id ast.TypeID, isConst bool) {
	if !isConst {
		return
	}
	if data, ok := p.arenas.Types.Record(id); ok {
		data.Const = true
	} else if data, ok := p.arenas.Types.Enum(id); ok {
		data.Const = true
	}
}

// parseRecordSpecifier parses struct/union specifiers:
//
//	struct name
//	struct name { fields }
//	struct { fields }
func (p *Parser) parseRecordSpecifier(isUnion bool) (ast.TypeID, bool) {
	kw := p.advance() // struct / union

	var name source.StringID
	if p.at(token.Ident) {
		tok := p.advance()
		name = p.interner.Intern(tok.Text)
	}

	if !p.at(token.LBrace) {
		if name == source.NoStringID {
			p.err("expected tag name or '{' after 'struct'/'union'")
			return ast.NoTypeID, false
		}
		sp := kw.Span.Cover(p.prevSpan())
		return p.arenas.Types.NewRecord(sp, isUnion, name, nil, false, false), true
	}

	p.advance() // '{'
	var fields []ast.FieldID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		ok := p.parseFieldDecl(&fields)
		if !ok {
			p.resyncStmt()
		}
	}
	p.expect(token.RBrace, "expected '}' to close member list")
	sp := kw.Span.Cover(p.prevSpan())
	return p.arenas.Types.NewRecord(sp, isUnion, name, fields, true, false), true
}

// parseFieldDecl parses one member declaration, possibly declaring
// several members: "int x, *y;".
func (p *Parser) parseFieldDecl(fields *[]ast.FieldID) bool {
	specs, ok := p.parseDeclSpecs()
	if !ok {
		p.err("expected member declaration")
		return false
	}
	if specs.isTypedef {
		p.errAt(specs.span, "'typedef' is not allowed in a member declaration")
	}
	for {
		name, nameSpan, typ, ok := p.parseDeclarator(specs.typ, false)
		if !ok {
			return false
		}
		if name == source.NoStringID {
			p.errAt(nameSpan, "expected member name")
			return false
		}
		*fields = append(*fields, p.arenas.Types.NewField(nameSpan, name, typ))
		if !p.eat(token.Comma) {
			break
		}
	}
	_, ok = p.expect(token.Semicolon, "expected ';' after member declaration")
	return ok
}

// parseEnumSpecifier parses enum specifiers:
//
//	enum name
//	enum name { list }
//	enum { list }
func (p *Parser) parseEnumSpecifier() (ast.TypeID, bool) {
	kw := p.advance() // enum

	var name source.StringID
	if p.at(token.Ident) {
		tok := p.advance()
		name = p.interner.Intern(tok.Text)
	}

	if !p.at(token.LBrace) {
		if name == source.NoStringID {
			p.err("expected tag name or '{' after 'enum'")
			return ast.NoTypeID, false
		}
		sp := kw.Span.Cover(p.prevSpan())
		return p.arenas.Types.NewEnum(sp, name, nil, false, false), true
	}

	p.advance() // '{'
	var enumerators []ast.EnumeratorID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		eName, eSpan, ok := p.parseIdent()
		if !ok {
			p.resyncUntil(token.Comma, token.RBrace)
		} else {
			value := ast.NoExprID
			if p.eat(token.Assign) {
				value, ok = p.parseAssignExpr()
				if !ok {
					p.resyncUntil(token.Comma, token.RBrace)
				}
			}
			enumerators = append(enumerators, p.arenas.Types.NewEnumerator(eSpan, eName, value))
			p.shadowTypedef(eName)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, "expected '}' to close enumerator list")
	sp := kw.Span.Cover(p.prevSpan())
	return p.arenas.Types.NewEnum(sp, name, enumerators, true, false), true
}

// ===== declarators =====

// typeWrap transforms a base type into the declarator's derived type.
type typeWrap func(ast.TypeID) ast.TypeID

func identityWrap(t ast.TypeID) ast.TypeID { return t }

// parseDeclarator parses a (possibly abstract) declarator against the
// given base type and returns the declared name and the full type.
func (p *Parser) parseDeclarator(base ast.TypeID, allowAbstract bool) (source.StringID, source.Span, ast.TypeID, bool) {
	name, nameSpan, wrap, ok := p.parseDeclaratorShape(allowAbstract)
	if !ok {
		return source.NoStringID, p.diagSpan(), ast.NoTypeID, false
	}
	return name, nameSpan, wrap(base), true
}

// parseDeclaratorShape parses the declarator structure without a base
// type. The returned wrap applies pointer, array, and function
// derivations in C's inside-out order, so "int (*f)(void)" comes out
// as pointer-to-function-returning-int.
func (p *Parser) parseDeclaratorShape(allowAbstract bool) (source.StringID, source.Span, typeWrap, bool) {
	// Pointer prefix binds loosest: parse it first, apply it last.
	if p.at(token.Star) {
		star := p.advance()
		isConst := false
		for p.eat(token.KwConst) {
			isConst = true
		}
		name, nameSpan, rest, ok := p.parseDeclaratorShape(allowAbstract)
		if !ok {
			return source.NoStringID, star.Span, nil, false
		}
		wrap := func(t ast.TypeID) ast.TypeID {
			return rest(p.arenas.Types.NewPointer(star.Span, t, isConst))
		}
		return name, nameSpan, wrap, true
	}

	var (
		name     source.StringID
		nameSpan = p.peek().Span
		inner    typeWrap = identityWrap
	)

	switch {
	case p.at(token.Ident) && !p.atTypedefName():
		tok := p.advance()
		name = p.interner.Intern(tok.Text)
		nameSpan = tok.Span
	case p.at(token.LParen) && p.atParenDeclarator():
		p.advance() // '('
		var ok bool
		name, nameSpan, inner, ok = p.parseDeclaratorShape(allowAbstract)
		if !ok {
			return source.NoStringID, nameSpan, nil, false
		}
		if _, ok := p.expect(token.RParen, "expected ')' in declarator"); !ok {
			return source.NoStringID, nameSpan, nil, false
		}
	default:
		if !allowAbstract {
			p.err("expected declarator")
			return source.NoStringID, nameSpan, nil, false
		}
	}

	// Suffixes bind tighter than the pointer prefix; the first suffix
	// is the outermost derivation.
	var suffixes []typeWrap
	for {
		switch {
		case p.at(token.LBracket):
			open := p.advance()
			size := ast.NoExprID
			if !p.at(token.RBracket) {
				var ok bool
				size, ok = p.parseAssignExpr()
				if !ok {
					return source.NoStringID, nameSpan, nil, false
				}
			}
			if _, ok := p.expect(token.RBracket, "expected ']' after array size"); !ok {
				return source.NoStringID, nameSpan, nil, false
			}
			sp := open.Span.Cover(p.prevSpan())
			suffixes = append(suffixes, func(t ast.TypeID) ast.TypeID {
				return p.arenas.Types.NewArray(sp, t, size)
			})
		case p.at(token.LParen):
			open := p.advance()
			params, variadic, ok := p.parseParamList()
			if !ok {
				return source.NoStringID, nameSpan, nil, false
			}
			sp := open.Span.Cover(p.prevSpan())
			suffixes = append(suffixes, func(t ast.TypeID) ast.TypeID {
				return p.arenas.Types.NewFunc(sp, t, params, variadic)
			})
		default:
			wrap := func(t ast.TypeID) ast.TypeID {
				for i := len(suffixes) - 1; i >= 0; i-- {
					t = suffixes[i](t)
				}
				return inner(t)
			}
			return name, nameSpan, wrap, true
		}
	}
}

// atParenDeclarator disambiguates "(" in a declarator: it opens a
// nested declarator rather than a parameter list when the content
// starts another declarator shape.
func (p *Parser) atParenDeclarator() bool {
	next := p.peekN(1)
	switch next.Kind {
	case token.Star, token.LParen, token.LBracket:
		return true
	case token.Ident:
		// A typedef name after "(" means a parameter list.
		id, ok := p.interner.Find(next.Text)
		return !(ok && p.isTypedefName(id))
	default:
		return false
	}
}

// parseParamList parses "(...)" after the opening paren was consumed.
// "(void)" means zero parameters.
func (p *Parser) parseParamList() (params []ast.ParamID, variadic, ok bool) {
	// "()" means unspecified parameters; treated as zero for this subset.
	if p.eat(token.RParen) {
		return nil, false, true
	}
	// "(void)"
	if p.at(token.KwVoid) && p.peekN(1).Kind == token.RParen {
		p.advance()
		p.advance()
		return nil, false, true
	}

	for {
		if p.at(token.Ellipsis) {
			tok := p.advance()
			if len(params) == 0 {
				p.errAt(tok.Span, "'...' requires at least one named parameter")
			}
			variadic = true
			break
		}
		specs, ok := p.parseDeclSpecs()
		if !ok {
			p.err("expected parameter type")
			return nil, false, false
		}
		if specs.isTypedef {
			p.errAt(specs.span, "'typedef' is not allowed in a parameter")
		}
		name, nameSpan, typ, ok := p.parseDeclarator(specs.typ, true)
		if !ok {
			return nil, false, false
		}
		sp := specs.span.Cover(p.prevSpan())
		params = append(params, p.arenas.Decls.NewParam(sp, name, typ, nameSpan))
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, "expected ')' after parameter list"); !ok {
		return nil, false, false
	}
	return params, variadic, true
}

// parseTypeName parses a type-name (specifiers plus an abstract
// declarator), as used in casts and sizeof.
func (p *Parser) parseTypeName() (ast.TypeID, bool) {
	specs, ok := p.parseDeclSpecs()
	if !ok {
		p.err("expected type name")
		return ast.NoTypeID, false
	}
	if specs.isTypedef {
		p.errAt(specs.span, "'typedef' is not allowed in a type name")
	}
	name, nameSpan, typ, ok := p.parseDeclarator(specs.typ, true)
	if !ok {
		return ast.NoTypeID, false
	}
	if name != source.NoStringID {
		p.errAt(nameSpan, "type name cannot declare an identifier")
	}
	return typ, true
}
