package lexer

import (
	"minicc/internal/diag"
	"minicc/internal/token"
)

// scanNumber scans an integer or floating constant. Grammar covered:
//
//	integer:  0x<hex>+ | 0<oct>* | <dec>+         with suffix [uU]?([lL]|ll|LL)? in any order
//	floating: <dec>* '.' <dec>* | <dec>+ exponent  with suffix [fFlL]?
//	exponent: [eE] [+-]? <dec>+
//
// Malformed constants (empty hex digits, bad suffix, trailing digits in
// an octal constant) produce an Invalid token and a diagnostic; the
// scan still consumes the full maximal-munch spelling.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	// Hex constants: 0x / 0X.
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		digits := 0
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			digits++
		}
		if digits == 0 {
			return lx.badNumber(start, "hexadecimal constant has no digits")
		}
		if !lx.scanIntSuffix() {
			return lx.badNumber(start, "invalid suffix on integer constant")
		}
		return lx.numberToken(start, token.IntLit)
	}

	isFloat := false
	leadingZero := lx.cursor.Peek() == '0'

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' {
		isFloat = true
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		if ok := lx.scanExponent(); !ok {
			return lx.badNumber(start, "exponent has no digits")
		}
		isFloat = true
	}

	if isFloat {
		if b := lx.cursor.Peek(); b == 'f' || b == 'F' || b == 'l' || b == 'L' {
			lx.cursor.Bump()
		}
		if isIdentContinue(lx.cursor.Peek()) {
			return lx.badNumber(start, "invalid suffix on floating constant")
		}
		return lx.numberToken(start, token.FloatLit)
	}

	// Octal constants must contain only octal digits after the leading 0.
	if leadingZero {
		sp := lx.cursor.SpanFrom(start)
		for _, d := range lx.file.Content[sp.Start:sp.End] {
			if !isOct(d) {
				return lx.badNumber(start, "invalid digit in octal constant")
			}
		}
	}

	if !lx.scanIntSuffix() {
		return lx.badNumber(start, "invalid suffix on integer constant")
	}
	return lx.numberToken(start, token.IntLit)
}

// scanIntSuffix consumes an optional integer suffix: u/U and l/L/ll/LL
// in either order, at most one of each. It reports false when identifier
// characters follow the constant that do not form a valid suffix.
func (lx *Lexer) scanIntSuffix() bool {
	sawU, sawL := false, false
	for {
		switch b := lx.cursor.Peek(); {
		case (b == 'u' || b == 'U') && !sawU:
			sawU = true
			lx.cursor.Bump()
		case (b == 'l' || b == 'L') && !sawL:
			sawL = true
			lx.cursor.Bump()
			// ll / LL must repeat the same case.
			if lx.cursor.Peek() == b {
				lx.cursor.Bump()
			}
		default:
			return !isIdentContinue(b)
		}
	}
}

func (lx *Lexer) scanExponent() bool {
	lx.cursor.Bump() // 'e' or 'E'
	if b := lx.cursor.Peek(); b == '+' || b == '-' {
		lx.cursor.Bump()
	}
	digits := 0
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
		digits++
	}
	return digits > 0
}

func (lx *Lexer) numberToken(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// badNumber consumes the rest of the maximal-munch spelling so the
// parser does not see the garbage tail as separate tokens.
func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	for isIdentContinue(lx.cursor.Peek()) || lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.KindSyntaxError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
