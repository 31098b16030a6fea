package parser

import (
	"minicc/internal/ast"
	"minicc/internal/token"
)

// maxExprDepth bounds expression recursion so pathological nesting
// ("((((..." or "!!!!...") ends in a SyntaxError instead of a stack
// overflow. Real programs stay far below it.
const maxExprDepth = 256

func (p *Parser) enterExpr() bool {
	if p.exprDepth >= maxExprDepth {
		p.err("expression nesting is too deep")
		return false
	}
	p.exprDepth++
	return true
}

func (p *Parser) leaveExpr() { p.exprDepth-- }

// parseExpr parses a full expression including the comma operator.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	lhs, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.Comma) {
		p.advance()
		rhs, ok := p.parseAssignExpr()
		if !ok {
			return ast.NoExprID, false
		}
		sp := p.arenas.Exprs.Get(lhs).Span.Cover(p.arenas.Exprs.Get(rhs).Span)
		lhs = p.arenas.Exprs.NewBinary(sp, ast.BinComma, lhs, rhs)
	}
	return lhs, true
}

// parseAssignExpr parses an assignment expression. Assignment is
// right-associative; whether the left side is assignable is checked
// during semantic analysis.
func (p *Parser) parseAssignExpr() (ast.ExprID, bool) {
	lhs, ok := p.parseCondExpr()
	if !ok {
		return ast.NoExprID, false
	}
	op, isAssign := assignOpFor(p.peek().Kind)
	if !isAssign {
		return lhs, true
	}
	p.advance()
	rhs, ok := p.parseAssignExpr()
	if !ok {
		return ast.NoExprID, false
	}
	sp := p.arenas.Exprs.Get(lhs).Span.Cover(p.arenas.Exprs.Get(rhs).Span)
	return p.arenas.Exprs.NewAssign(sp, op, lhs, rhs), true
}

// parseCondExpr parses the ternary conditional, which nests to the
// right: "a ? b : c ? d : e" is "a ? b : (c ? d : e)".
func (p *Parser) parseCondExpr() (ast.ExprID, bool) {
	cond, ok := p.parseBinaryExpr(precLogicalOr)
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Question) {
		return cond, true
	}
	p.advance()
	then, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Colon, "expected ':' in conditional expression"); !ok {
		return ast.NoExprID, false
	}
	els, ok := p.parseCondExpr()
	if !ok {
		return ast.NoExprID, false
	}
	sp := p.arenas.Exprs.Get(cond).Span.Cover(p.arenas.Exprs.Get(els).Span)
	return p.arenas.Exprs.NewCond(sp, cond, then, els), true
}

// parseBinaryExpr is precedence climbing over the table in op_table.go.
// All the operators it handles are left-associative.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	lhs, ok := p.parseCastExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		prec := binaryPrec(p.peek().Kind)
		if prec < minPrec {
			return lhs, true
		}
		opTok := p.advance()
		rhs, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		sp := p.arenas.Exprs.Get(lhs).Span.Cover(p.arenas.Exprs.Get(rhs).Span)
		lhs = p.arenas.Exprs.NewBinary(sp, binaryOpFor(opTok.Kind), lhs, rhs)
	}
}

// parseCastExpr handles "(type-name) cast-expr"; everything else falls
// through to unary expressions.
func (p *Parser) parseCastExpr() (ast.ExprID, bool) {
	if !p.enterExpr() {
		return ast.NoExprID, false
	}
	defer p.leaveExpr()
	if p.at(token.LParen) && p.typeAfterParen() {
		open := p.advance()
		typ, ok := p.parseTypeName()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, "expected ')' after cast type"); !ok {
			return ast.NoExprID, false
		}
		value, ok := p.parseCastExpr()
		if !ok {
			return ast.NoExprID, false
		}
		sp := open.Span.Cover(p.arenas.Exprs.Get(value).Span)
		return p.arenas.Exprs.NewCast(sp, typ, value), true
	}
	return p.parseUnaryExpr()
}

// typeAfterParen reports whether the token after "(" begins a type
// name, which distinguishes a cast from a parenthesized expression.
func (p *Parser) typeAfterParen() bool {
	next := p.peekN(1)
	if next.Kind.IsTypeStarter() {
		return true
	}
	if next.Kind != token.Ident {
		return false
	}
	id, ok := p.interner.Find(next.Text)
	return ok && p.isTypedefName(id)
}

func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	if !p.enterExpr() {
		return ast.NoExprID, false
	}
	defer p.leaveExpr()
	if p.at(token.KwSizeof) {
		return p.parseSizeof()
	}
	op, isPrefix := prefixOpFor(p.peek().Kind)
	if !isPrefix {
		return p.parsePostfixExpr()
	}
	opTok := p.advance()

	var (
		operand ast.ExprID
		ok      bool
	)
	// ++ and -- take a unary expression; the value-building operators
	// take a cast expression, so "(int)-x" and "-(int)x" both parse.
	if op == ast.UnaryPreInc || op == ast.UnaryPreDec {
		operand, ok = p.parseUnaryExpr()
	} else {
		operand, ok = p.parseCastExpr()
	}
	if !ok {
		return ast.NoExprID, false
	}
	sp := opTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
	return p.arenas.Exprs.NewUnary(sp, op, operand), true
}

// parseSizeof parses "sizeof unary-expr" and "sizeof (type-name)".
func (p *Parser) parseSizeof() (ast.ExprID, bool) {
	kw := p.advance() // sizeof
	if p.at(token.LParen) && p.typeAfterParen() {
		p.advance()
		typ, ok := p.parseTypeName()
		if !ok {
			return ast.NoExprID, false
		}
		closeTok, ok := p.expect(token.RParen, "expected ')' after sizeof type")
		if !ok {
			return ast.NoExprID, false
		}
		sp := kw.Span.Cover(closeTok.Span)
		return p.arenas.Exprs.NewSizeof(sp, typ, ast.NoExprID), true
	}
	operand, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	sp := kw.Span.Cover(p.arenas.Exprs.Get(operand).Span)
	return p.arenas.Exprs.NewSizeof(sp, ast.NoTypeID, operand), true
}

func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		switch p.peek().Kind {
		case token.LParen:
			p.advance()
			var args []ast.ExprID
			if !p.at(token.RParen) {
				for {
					arg, ok := p.parseAssignExpr()
					if !ok {
						return ast.NoExprID, false
					}
					args = append(args, arg)
					if !p.eat(token.Comma) {
						break
					}
				}
			}
			closeTok, ok := p.expect(token.RParen, "expected ')' after call arguments")
			if !ok {
				return ast.NoExprID, false
			}
			sp := p.arenas.Exprs.Get(expr).Span.Cover(closeTok.Span)
			expr = p.arenas.Exprs.NewCall(sp, expr, args)

		case token.LBracket:
			p.advance()
			index, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			closeTok, ok := p.expect(token.RBracket, "expected ']' after index")
			if !ok {
				return ast.NoExprID, false
			}
			sp := p.arenas.Exprs.Get(expr).Span.Cover(closeTok.Span)
			expr = p.arenas.Exprs.NewIndex(sp, expr, index)

		case token.Dot, token.Arrow:
			opTok := p.advance()
			name, nameSpan, ok := p.parseIdent()
			if !ok {
				return ast.NoExprID, false
			}
			sp := p.arenas.Exprs.Get(expr).Span.Cover(nameSpan)
			expr = p.arenas.Exprs.NewMember(sp, expr, name, opTok.Kind == token.Arrow, nameSpan)

		case token.PlusPlus:
			tok := p.advance()
			sp := p.arenas.Exprs.Get(expr).Span.Cover(tok.Span)
			expr = p.arenas.Exprs.NewUnary(sp, ast.UnaryPostInc, expr)

		case token.MinusMinus:
			tok := p.advance()
			sp := p.arenas.Exprs.Get(expr).Span.Cover(tok.Span)
			expr = p.arenas.Exprs.NewUnary(sp, ast.UnaryPostDec, expr)

		default:
			return expr, true
		}
	}
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.interner.Intern(tok.Text)), true
	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitInt, p.interner.Intern(tok.Text)), true
	case token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitFloat, p.interner.Intern(tok.Text)), true
	case token.CharLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitChar, p.interner.Intern(tok.Text)), true
	case token.StringLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitString, p.interner.Intern(tok.Text)), true
	case token.LParen:
		p.advance()
		expr, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, "expected ')'"); !ok {
			return ast.NoExprID, false
		}
		return expr, true
	case token.Invalid:
		p.advance()
		p.errAt(tok.Span, "invalid token in expression")
		return ast.NoExprID, false
	default:
		p.err("expected expression, got \"" + tok.Text + "\"")
		return ast.NoExprID, false
	}
}
