package lexer

import (
	"minicc/internal/diag"
)

// skipTrivia consumes whitespace, comments, line continuations, and NUL
// bytes until the next significant byte. C block comments do not nest;
// an unterminated one is reported and consumed to EOF.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f':
			lx.cursor.Bump()

		case b == 0:
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.warnLex(diag.KindNullCharacter, lx.cursor.SpanFrom(start), "null character in source; ignored")

		case b == '\\':
			// Backslash-newline splices lines; anything else after a
			// backslash is left for the operator scanner to reject.
			b0, b1, ok := lx.cursor.Peek2()
			if ok && b0 == '\\' && b1 == '\n' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				continue
			}
			return

		case b == '/':
			if !lx.skipComment() {
				return
			}

		default:
			return
		}
	}
}

func (lx *Lexer) skipComment() bool {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	switch lx.cursor.Peek() {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return true
	case '*':
		lx.cursor.Bump()
		for {
			if lx.cursor.EOF() {
				lx.errLex(diag.KindUnterminatedComment, lx.cursor.SpanFrom(start), "unterminated block comment")
				return true
			}
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				return true
			}
			lx.cursor.Bump()
		}
	default:
		// Plain '/': hand it back to the operator scanner.
		lx.cursor.Reset(start)
		return false
	}
}
