package lexer

import (
	"minicc/internal/diag"
	"minicc/internal/token"
)

// scanString scans a string literal "...". Escapes are consumed as
// two-byte pairs; their validation happens when the constant is
// evaluated. A newline or EOF inside the literal is an error.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				return lx.unterminated(start, "unterminated string literal")
			}
			lx.cursor.Bump()
		case '\n':
			return lx.unterminated(start, "newline in string literal")
		default:
			lx.cursor.Bump()
		}
	}
	return lx.unterminated(start, "unterminated string literal")
}

// scanChar scans a character literal 'x' or '\n'. An empty literal or
// a missing closing quote is an error.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''

	if lx.cursor.Peek() == '\'' {
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.KindSyntaxError, sp, "empty character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '\'':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.CharLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				return lx.unterminated(start, "unterminated character literal")
			}
			lx.cursor.Bump()
		case '\n':
			return lx.unterminated(start, "newline in character literal")
		default:
			lx.cursor.Bump()
		}
	}
	return lx.unterminated(start, "unterminated character literal")
}

func (lx *Lexer) unterminated(start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.KindSyntaxError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
