package parser

import (
	"minicc/internal/diag"
	"minicc/internal/source"
	"minicc/internal/token"
)

// advance consumes the current token and remembers its span for
// better end-of-input diagnostics.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks) && tok.Kind != token.EOF {
		p.pos++
	}
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// eat consumes the current token when it matches k.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// diagSpan picks the span to attach a diagnostic to. At EOF the caret
// points just past the last consumed token instead of offset zero.
func (p *Parser) diagSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect consumes a token of kind k or reports a syntax error.
func (p *Parser) expect(k token.Kind, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagSpan()
	p.report(diag.KindSyntaxError, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: p.peek().Text}, false
}

func (p *Parser) err(msg string) {
	p.report(diag.KindSyntaxError, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) errAt(sp source.Span, msg string) {
	p.report(diag.KindSyntaxError, diag.SevError, sp, msg)
}

func (p *Parser) report(kind diag.Kind, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if !p.opts.Enough() {
		p.opts.Reporter.Report(kind, sev, sp, msg, nil)
	}
}

// parseIdent expects an identifier and interns it.
func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.interner.Intern(tok.Text), tok.Span, true
	}
	p.err("expected identifier, got \"" + p.peek().Text + "\"")
	return source.NoStringID, p.diagSpan(), false
}

// resyncUntil skips tokens until one of the stop kinds or EOF.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) {
		k := p.peek().Kind
		for _, s := range stop {
			if k == s {
				return
			}
		}
		p.advance()
	}
}

// resyncTop recovers at the top level: skip to a ';' or the start of
// the next external declaration.
func (p *Parser) resyncTop() {
	p.resyncUntil(token.Semicolon, token.KwVoid, token.KwBool, token.KwChar,
		token.KwShort, token.KwInt, token.KwLong, token.KwSigned, token.KwUnsigned,
		token.KwFloat, token.KwDouble, token.KwConst, token.KwStruct, token.KwUnion,
		token.KwEnum, token.KwTypedef)
	p.eat(token.Semicolon)
	p.eat(token.RBrace)
}

// resyncStmt recovers inside a function body: skip to a ';' (consumed)
// or a '}' (left for the block parser).
func (p *Parser) resyncStmt() {
	p.resyncUntil(token.Semicolon, token.RBrace)
	p.eat(token.Semicolon)
}
