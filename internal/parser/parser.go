// Package parser builds the AST from a token stream. It recovers from
// errors by resynchronizing on statement and declaration boundaries, so
// one malformed construct yields one diagnostic rather than a cascade.
package parser

import (
	"slices"

	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/source"
	"minicc/internal/token"
)

type Options struct {
	// MaxErrors stops reporting after the given number of parse errors;
	// zero means unlimited. Parsing itself always runs to EOF.
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is exhausted.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Unit *ast.Unit
}

// Parser holds the state for parsing one translation unit.
type Parser struct {
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	interner *source.Interner
	opts     Options
	lastSpan source.Span

	// typedefScopes tracks which identifiers are typedef names in each
	// lexical scope, outermost first. The parser needs this to tell a
	// declaration from an expression statement.
	typedefScopes []map[source.StringID]bool

	// exprDepth counts live recursive expression frames; see maxExprDepth.
	exprDepth int
}

// ParseUnit parses the whole token stream into the builder's unit.
// The stream must end with an EOF token (lexer.Tokenize guarantees it).
func ParseUnit(toks []token.Token, arenas *ast.Builder, interner *source.Interner, opts Options) Result {
	p := Parser{
		toks:          toks,
		arenas:        arenas,
		interner:      interner,
		opts:          opts,
		typedefScopes: []map[source.StringID]bool{{}},
	}
	p.parseUnit()
	return Result{Unit: &arenas.Unit}
}

func (p *Parser) parseUnit() {
	startSpan := p.peek().Span
	for !p.at(token.EOF) {
		before := p.pos
		decls, ok := p.parseExternalDecl()
		if !ok {
			p.resyncTop()
		}
		for _, d := range decls {
			p.arenas.PushDecl(d)
		}
		// Guarantee progress even when a recognizer consumed nothing.
		if p.pos == before && !p.at(token.EOF) {
			p.advance()
		}
	}
	p.arenas.Unit.Span = startSpan.Cover(p.peek().Span)
}

// ===== token access =====

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		if len(p.toks) == 0 {
			return token.Token{Kind: token.EOF}
		}
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) peekN(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		if len(p.toks) == 0 {
			return token.Token{Kind: token.EOF}
		}
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// ===== typedef name tracking =====

func (p *Parser) pushTypedefScope() {
	p.typedefScopes = append(p.typedefScopes, map[source.StringID]bool{})
}

func (p *Parser) popTypedefScope() {
	if len(p.typedefScopes) > 1 {
		p.typedefScopes = p.typedefScopes[:len(p.typedefScopes)-1]
	}
}

func (p *Parser) declareTypedef(name source.StringID) {
	p.typedefScopes[len(p.typedefScopes)-1][name] = true
}

// shadowTypedef records that name is an ordinary identifier in the
// current scope, hiding any outer typedef with the same spelling.
func (p *Parser) shadowTypedef(name source.StringID) {
	scope := p.typedefScopes[len(p.typedefScopes)-1]
	if _, known := scope[name]; !known {
		scope[name] = false
	}
}

func (p *Parser) isTypedefName(name source.StringID) bool {
	for i := len(p.typedefScopes) - 1; i >= 0; i-- {
		if isTD, ok := p.typedefScopes[i][name]; ok {
			return isTD
		}
	}
	return false
}

// atTypedefName reports whether the current token is an identifier
// bound to a typedef in scope.
func (p *Parser) atTypedefName() bool {
	tok := p.peek()
	if tok.Kind != token.Ident {
		return false
	}
	id, ok := p.interner.Find(tok.Text)
	return ok && p.isTypedefName(id)
}

// atDeclStart reports whether the current token begins a declaration.
func (p *Parser) atDeclStart() bool {
	return p.peek().Kind.IsTypeStarter() || p.atTypedefName()
}
