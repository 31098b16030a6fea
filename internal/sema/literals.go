package sema

import (
	"math"
	"strconv"
	"strings"

	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/source"
	"minicc/internal/types"
)

func (c *Checker) checkLiteral(id ast.ExprID, sp source.Span) types.TypeID {
	data, _ := c.b.Exprs.Literal(id)
	text, ok := c.names.Lookup(data.Text)
	if !ok {
		return c.setExprType(id, types.NoTypeID)
	}
	switch data.Kind {
	case ast.LitInt:
		return c.checkIntLit(id, sp, text)
	case ast.LitFloat:
		return c.checkFloatLit(id, sp, text)
	case ast.LitChar:
		return c.checkCharLit(id, sp, text)
	case ast.LitString:
		return c.checkStringLit(id, sp, text)
	default:
		return c.setExprType(id, types.NoTypeID)
	}
}

// checkIntLit decodes an integer literal and picks its type from the
// standard ladder: the first type in the list that can hold the value,
// where decimal literals without a 'u' never become unsigned.
func (c *Checker) checkIntLit(id ast.ExprID, sp source.Span, text string) types.TypeID {
	body, unsigned, longs := splitIntSuffix(text)

	base := 10
	digits := body
	switch {
	case strings.HasPrefix(body, "0x"), strings.HasPrefix(body, "0X"):
		base = 16
		digits = body[2:]
	case len(body) > 1 && body[0] == '0':
		base = 8
		digits = body[1:]
	}

	value, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		c.report(diag.KindConstantEvaluationError, sp,
			"integer literal '"+text+"' is too large for any integer type")
		return c.setExprType(id, types.NoTypeID)
	}

	t, fits := c.intLitType(value, unsigned, longs, base != 10)
	if !fits {
		c.report(diag.KindConstantEvaluationError, sp,
			"integer literal '"+text+"' is too large for any integer type")
		return c.setExprType(id, types.NoTypeID)
	}
	c.info.Folded[id] = int64(value)
	return c.setExprType(id, t)
}

func splitIntSuffix(text string) (body string, unsigned bool, longs int) {
	body = text
	for {
		switch {
		case strings.HasSuffix(body, "u"), strings.HasSuffix(body, "U"):
			unsigned = true
			body = body[:len(body)-1]
		case strings.HasSuffix(body, "ll"), strings.HasSuffix(body, "LL"):
			longs = 2
			body = body[:len(body)-2]
		case strings.HasSuffix(body, "l"), strings.HasSuffix(body, "L"):
			if longs == 0 {
				longs = 1
			}
			body = body[:len(body)-1]
		default:
			return body, unsigned, longs
		}
	}
}

func (c *Checker) intLitType(value uint64, unsigned bool, longs int, allowUnsigned bool) (types.TypeID, bool) {
	bt := c.info.Types.Builtins()
	type rung struct {
		t        types.TypeID
		max      uint64
		unsigned bool
	}
	ladder := []rung{
		{bt.Int, math.MaxInt32, false},
		{bt.UInt, math.MaxUint32, true},
		{bt.Long, math.MaxInt64, false},
		{bt.ULong, math.MaxUint64, true},
		{bt.LongLong, math.MaxInt64, false},
		{bt.ULongLong, math.MaxUint64, true},
	}
	start := longs * 2 // 0 -> int, 1 -> long, 2 -> long long
	for _, r := range ladder[start:] {
		if unsigned && !r.unsigned {
			continue
		}
		// Decimal literals without a 'u' suffix never become unsigned.
		if !unsigned && !allowUnsigned && r.unsigned {
			continue
		}
		if value <= r.max {
			return r.t, true
		}
	}
	return types.NoTypeID, false
}

func (c *Checker) checkFloatLit(id ast.ExprID, sp source.Span, text string) types.TypeID {
	bt := c.info.Types.Builtins()
	t := bt.Double
	body := text
	switch {
	case strings.HasSuffix(body, "f"), strings.HasSuffix(body, "F"):
		t = bt.Float
		body = body[:len(body)-1]
	case strings.HasSuffix(body, "l"), strings.HasSuffix(body, "L"):
		c.report(diag.KindUnsupportedConstructError, sp,
			"'long double' literals are not supported")
		return c.setExprType(id, types.NoTypeID)
	}
	value, err := strconv.ParseFloat(body, 64)
	if err != nil {
		c.report(diag.KindConstantEvaluationError, sp,
			"invalid floating literal '"+text+"'")
		return c.setExprType(id, types.NoTypeID)
	}
	c.info.FoldedFloats[id] = value
	return c.setExprType(id, t)
}

// checkCharLit decodes a character constant; its type is int, like C
// says and unlike what most people expect.
func (c *Checker) checkCharLit(id ast.ExprID, sp source.Span, text string) types.TypeID {
	if len(text) < 3 || text[0] != '\'' || text[len(text)-1] != '\'' {
		c.report(diag.KindSyntaxError, sp, "malformed character constant")
		return c.setExprType(id, types.NoTypeID)
	}
	body := text[1 : len(text)-1]
	value, rest, ok := decodeEscape(body)
	if !ok {
		c.report(diag.KindSyntaxError, sp,
			"unknown escape sequence in character constant")
		return c.setExprType(id, types.NoTypeID)
	}
	if rest != "" {
		c.report(diag.KindUnsupportedConstructError, sp,
			"multi-character character constants are not supported")
		return c.setExprType(id, types.NoTypeID)
	}
	c.info.Folded[id] = int64(value)
	return c.setExprType(id, c.info.Types.Builtins().Int)
}

func (c *Checker) checkStringLit(id ast.ExprID, sp source.Span, text string) types.TypeID {
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		c.report(diag.KindSyntaxError, sp, "malformed string literal")
		return c.setExprType(id, types.NoTypeID)
	}
	body := text[1 : len(text)-1]
	var sb strings.Builder
	for body != "" {
		b, rest, ok := decodeEscape(body)
		if !ok {
			c.report(diag.KindSyntaxError, sp,
				"unknown escape sequence in string literal")
			return c.setExprType(id, types.NoTypeID)
		}
		sb.WriteByte(b)
		body = rest
	}
	c.info.Strings[id] = sb.String()
	return c.setExprType(id, c.info.Types.Pointer(c.info.Types.Builtins().Char))
}

// decodeEscape consumes one (possibly escaped) character from s and
// returns its byte value and the remainder.
func decodeEscape(s string) (value byte, rest string, ok bool) {
	if s == "" {
		return 0, "", false
	}
	if s[0] != '\\' {
		return s[0], s[1:], true
	}
	if len(s) < 2 {
		return 0, "", false
	}
	switch s[1] {
	case 'n':
		return '\n', s[2:], true
	case 't':
		return '\t', s[2:], true
	case 'r':
		return '\r', s[2:], true
	case 'a':
		return 7, s[2:], true
	case 'b':
		return '\b', s[2:], true
	case 'f':
		return '\f', s[2:], true
	case 'v':
		return '\v', s[2:], true
	case '\\', '\'', '"', '?':
		return s[1], s[2:], true
	case 'x':
		i := 2
		var v uint32
		for i < len(s) && isHexDigit(s[i]) {
			v = v<<4 | uint32(hexVal(s[i]))
			i++
		}
		if i == 2 || v > 0xFF {
			return 0, "", false
		}
		return byte(v), s[i:], true
	case '0', '1', '2', '3', '4', '5', '6', '7':
		i := 1
		var v uint32
		for i < len(s) && i < 4 && s[i] >= '0' && s[i] <= '7' {
			v = v<<3 | uint32(s[i]-'0')
			i++
		}
		if v > 0xFF {
			return 0, "", false
		}
		return byte(v), s[i:], true
	default:
		return 0, "", false
	}
}

func isHexDigit(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}

func hexVal(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}
