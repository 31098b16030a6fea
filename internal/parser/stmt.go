package parser

import (
	"minicc/internal/ast"
	"minicc/internal/token"
)

// parseStmt parses one statement. On failure it reports, resyncs to a
// statement boundary, and returns an empty statement so the enclosing
// block can continue.
func (p *Parser) parseStmt() ast.StmtID {
	switch p.peek().Kind {
	case token.LBrace:
		id, _ := p.parseCompound()
		return id
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak:
		tok := p.advance()
		p.expect(token.Semicolon, "expected ';' after 'break'")
		return p.arenas.Stmts.NewBreak(tok.Span)
	case token.KwContinue:
		tok := p.advance()
		p.expect(token.Semicolon, "expected ';' after 'continue'")
		return p.arenas.Stmts.NewContinue(tok.Span)
	case token.Semicolon:
		tok := p.advance()
		return p.arenas.Stmts.NewEmpty(tok.Span)
	case token.KwCase, token.KwDefault:
		tok := p.advance()
		p.errAt(tok.Span, "'"+tok.Text+"' label outside of switch")
		p.resyncStmt()
		return p.arenas.Stmts.NewEmpty(tok.Span)
	case token.KwElse:
		tok := p.advance()
		p.errAt(tok.Span, "'else' without a preceding 'if'")
		p.resyncStmt()
		return p.arenas.Stmts.NewEmpty(tok.Span)
	default:
		if p.atDeclStart() {
			return p.parseDeclStmt()
		}
		return p.parseExprStmt()
	}
}

func (p *Parser) parseCompound() (ast.StmtID, bool) {
	open, ok := p.expect(token.LBrace, "expected '{'")
	if !ok {
		return p.arenas.Stmts.NewEmpty(open.Span), false
	}
	p.pushTypedefScope()
	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmts = append(stmts, p.parseStmt())
	}
	p.popTypedefScope()
	closeTok, closed := p.expect(token.RBrace, "expected '}' to close block")
	sp := open.Span.Cover(closeTok.Span)
	return p.arenas.Stmts.NewCompound(sp, stmts), closed
}

func (p *Parser) parseDeclStmt() ast.StmtID {
	start := p.peek().Span
	decls, ok := p.parseLocalDecls()
	if !ok {
		p.resyncStmt()
	}
	sp := start.Cover(p.prevSpan())
	if len(decls) == 0 {
		return p.arenas.Stmts.NewEmpty(sp)
	}
	return p.arenas.Stmts.NewDecl(sp, decls)
}

func (p *Parser) parseExprStmt() ast.StmtID {
	start := p.peek().Span
	expr, ok := p.parseExpr()
	if !ok {
		p.resyncStmt()
		return p.arenas.Stmts.NewEmpty(start)
	}
	p.expect(token.Semicolon, "expected ';' after expression")
	sp := start.Cover(p.prevSpan())
	return p.arenas.Stmts.NewExpr(sp, expr)
}

func (p *Parser) parseIf() ast.StmtID {
	kw := p.advance() // if
	cond, ok := p.parseParenExpr()
	if !ok {
		p.resyncStmt()
		return p.arenas.Stmts.NewEmpty(kw.Span)
	}
	then := p.parseStmt()
	els := ast.NoStmtID
	if p.eat(token.KwElse) {
		els = p.parseStmt()
	}
	sp := kw.Span.Cover(p.prevSpan())
	return p.arenas.Stmts.NewIf(sp, cond, then, els)
}

func (p *Parser) parseWhile() ast.StmtID {
	kw := p.advance() // while
	cond, ok := p.parseParenExpr()
	if !ok {
		p.resyncStmt()
		return p.arenas.Stmts.NewEmpty(kw.Span)
	}
	body := p.parseStmt()
	sp := kw.Span.Cover(p.prevSpan())
	return p.arenas.Stmts.NewWhile(sp, ast.StmtWhile, cond, body)
}

func (p *Parser) parseDoWhile() ast.StmtID {
	kw := p.advance() // do
	body := p.parseStmt()
	if _, ok := p.expect(token.KwWhile, "expected 'while' after do-statement body"); !ok {
		p.resyncStmt()
		return p.arenas.Stmts.NewEmpty(kw.Span)
	}
	cond, ok := p.parseParenExpr()
	if !ok {
		p.resyncStmt()
		return p.arenas.Stmts.NewEmpty(kw.Span)
	}
	p.expect(token.Semicolon, "expected ';' after do-while")
	sp := kw.Span.Cover(p.prevSpan())
	return p.arenas.Stmts.NewWhile(sp, ast.StmtDoWhile, cond, body)
}

func (p *Parser) parseFor() ast.StmtID {
	kw := p.advance() // for
	if _, ok := p.expect(token.LParen, "expected '(' after 'for'"); !ok {
		p.resyncStmt()
		return p.arenas.Stmts.NewEmpty(kw.Span)
	}
	p.pushTypedefScope()
	defer p.popTypedefScope()

	// Init clause: declaration, expression, or empty.
	init := ast.NoStmtID
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.atDeclStart():
		init = p.parseDeclStmt()
	default:
		start := p.peek().Span
		expr, ok := p.parseExpr()
		if !ok {
			p.resyncStmt()
			return p.arenas.Stmts.NewEmpty(kw.Span)
		}
		p.expect(token.Semicolon, "expected ';' after for-init")
		init = p.arenas.Stmts.NewExpr(start.Cover(p.prevSpan()), expr)
	}

	cond := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		cond, ok = p.parseExpr()
		if !ok {
			p.resyncStmt()
			return p.arenas.Stmts.NewEmpty(kw.Span)
		}
	}
	p.expect(token.Semicolon, "expected ';' after for-condition")

	post := ast.NoExprID
	if !p.at(token.RParen) {
		var ok bool
		post, ok = p.parseExpr()
		if !ok {
			p.resyncStmt()
			return p.arenas.Stmts.NewEmpty(kw.Span)
		}
	}
	p.expect(token.RParen, "expected ')' after for-clauses")

	body := p.parseStmt()
	sp := kw.Span.Cover(p.prevSpan())
	return p.arenas.Stmts.NewFor(sp, init, cond, post, body)
}

// parseSwitch parses a switch whose body is a braced list of case and
// default arms. Statements before the first label are rejected.
func (p *Parser) parseSwitch() ast.StmtID {
	kw := p.advance() // switch
	cond, ok := p.parseParenExpr()
	if !ok {
		p.resyncStmt()
		return p.arenas.Stmts.NewEmpty(kw.Span)
	}
	if _, ok := p.expect(token.LBrace, "expected '{' after switch condition"); !ok {
		p.resyncStmt()
		return p.arenas.Stmts.NewEmpty(kw.Span)
	}

	p.pushTypedefScope()
	var cases []ast.SwitchCase
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.KwCase:
			caseKw := p.advance()
			value, ok := p.parseCondExpr()
			if !ok {
				p.resyncUntil(token.KwCase, token.KwDefault, token.RBrace)
				continue
			}
			p.expect(token.Colon, "expected ':' after case value")
			body := p.parseCaseBody()
			cases = append(cases, ast.SwitchCase{
				Value: value,
				Body:  body,
				Span:  caseKw.Span.Cover(p.prevSpan()),
			})
		case token.KwDefault:
			defKw := p.advance()
			p.expect(token.Colon, "expected ':' after 'default'")
			body := p.parseCaseBody()
			cases = append(cases, ast.SwitchCase{
				Value: ast.NoExprID,
				Body:  body,
				Span:  defKw.Span.Cover(p.prevSpan()),
			})
		default:
			p.err("expected 'case' or 'default' inside switch")
			p.resyncUntil(token.KwCase, token.KwDefault, token.RBrace)
		}
	}
	p.popTypedefScope()
	p.expect(token.RBrace, "expected '}' to close switch")
	sp := kw.Span.Cover(p.prevSpan())
	return p.arenas.Stmts.NewSwitch(sp, cond, cases)
}

// parseCaseBody collects the statements under one label, up to the
// next label or the closing brace.
func (p *Parser) parseCaseBody() []ast.StmtID {
	var stmts []ast.StmtID
	for !p.atOr(token.KwCase, token.KwDefault, token.RBrace, token.EOF) {
		stmts = append(stmts, p.parseStmt())
	}
	return stmts
}

func (p *Parser) parseReturn() ast.StmtID {
	kw := p.advance() // return
	value := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		value, ok = p.parseExpr()
		if !ok {
			p.resyncStmt()
			return p.arenas.Stmts.NewReturn(kw.Span, ast.NoExprID)
		}
	}
	p.expect(token.Semicolon, "expected ';' after return statement")
	sp := kw.Span.Cover(p.prevSpan())
	return p.arenas.Stmts.NewReturn(sp, value)
}

// parseParenExpr parses "( expr )" as used by if/while/switch heads.
func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, "expected '('"); !ok {
		return ast.NoExprID, false
	}
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, "expected ')'"); !ok {
		return ast.NoExprID, false
	}
	return expr, true
}
