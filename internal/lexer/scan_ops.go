package lexer

import (
	"minicc/internal/diag"
	"minicc/internal/token"
)

// scanOperatorOrPunct scans operators and punctuation with maximal
// munch: longer spellings win ("<<=" before "<<" before "<").
// Unknown bytes become a single Invalid token.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	kind := token.Invalid
	switch {
	// Three-byte operators.
	case lx.try3('<', '<', '='):
		kind = token.ShlAssign
	case lx.try3('>', '>', '='):
		kind = token.ShrAssign
	case lx.try3('.', '.', '.'):
		kind = token.Ellipsis

	// Two-byte operators.
	case lx.try2('-', '>'):
		kind = token.Arrow
	case lx.try2('+', '+'):
		kind = token.PlusPlus
	case lx.try2('-', '-'):
		kind = token.MinusMinus
	case lx.try2('<', '<'):
		kind = token.Shl
	case lx.try2('>', '>'):
		kind = token.Shr
	case lx.try2('<', '='):
		kind = token.LtEq
	case lx.try2('>', '='):
		kind = token.GtEq
	case lx.try2('=', '='):
		kind = token.EqEq
	case lx.try2('!', '='):
		kind = token.BangEq
	case lx.try2('&', '&'):
		kind = token.AndAnd
	case lx.try2('|', '|'):
		kind = token.OrOr
	case lx.try2('+', '='):
		kind = token.PlusAssign
	case lx.try2('-', '='):
		kind = token.MinusAssign
	case lx.try2('*', '='):
		kind = token.StarAssign
	case lx.try2('/', '='):
		kind = token.SlashAssign
	case lx.try2('%', '='):
		kind = token.PercentAssign
	case lx.try2('&', '='):
		kind = token.AmpAssign
	case lx.try2('|', '='):
		kind = token.PipeAssign
	case lx.try2('^', '='):
		kind = token.CaretAssign

	default:
		switch lx.cursor.Bump() {
		case '(':
			kind = token.LParen
		case ')':
			kind = token.RParen
		case '{':
			kind = token.LBrace
		case '}':
			kind = token.RBrace
		case '[':
			kind = token.LBracket
		case ']':
			kind = token.RBracket
		case ';':
			kind = token.Semicolon
		case ',':
			kind = token.Comma
		case '.':
			kind = token.Dot
		case '+':
			kind = token.Plus
		case '-':
			kind = token.Minus
		case '*':
			kind = token.Star
		case '/':
			kind = token.Slash
		case '%':
			kind = token.Percent
		case '&':
			kind = token.Amp
		case '|':
			kind = token.Pipe
		case '^':
			kind = token.Caret
		case '~':
			kind = token.Tilde
		case '!':
			kind = token.Bang
		case '<':
			kind = token.Lt
		case '>':
			kind = token.Gt
		case '?':
			kind = token.Question
		case ':':
			kind = token.Colon
		case '=':
			kind = token.Assign
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if kind == token.Invalid {
		lx.errLex(diag.KindSyntaxError, sp, "unexpected character "+quoteByte(text))
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

func quoteByte(s string) string {
	if s == "" {
		return "<eof>"
	}
	b := s[0]
	if b >= 0x20 && b < 0x7f {
		return "'" + string(b) + "'"
	}
	const hex = "0123456789abcdef"
	return "0x" + string([]byte{hex[b>>4], hex[b&0xf]})
}
