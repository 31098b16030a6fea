package lexer_test

import (
	"strings"
	"testing"

	"minicc/internal/diag"
	"minicc/internal/lexer"
	"minicc/internal/source"
	"minicc/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(0)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	return lx, bag
}

func collectAll(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func expectKinds(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, bag := makeTestLexer(input)
	tokens := collectAll(lx)

	if len(tokens) > 0 && tokens[len(tokens)-1].Kind == token.EOF {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %v\nerrors: %d",
			len(expected), len(tokens), input, tokens, bag.ErrorCount())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
}

func expectSingle(t *testing.T, input string, kind token.Kind, text string) {
	t.Helper()
	lx, _ := makeTestLexer(input)
	tok := lx.Next()
	if tok.Kind != kind {
		t.Errorf("input %q: expected kind %v, got %v", input, kind, tok.Kind)
	}
	if tok.Text != text {
		t.Errorf("input %q: expected text %q, got %q", input, text, tok.Text)
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	expectKinds(t, "int main void return",
		[]token.Kind{token.KwInt, token.Ident, token.KwVoid, token.KwReturn})
	expectSingle(t, "Int", token.Ident, "Int") // keywords are case-sensitive
	expectSingle(t, "_Bool", token.KwBool, "_Bool")
	expectSingle(t, "_bool", token.Ident, "_bool")
	expectSingle(t, "returned", token.Ident, "returned")
}

func TestIntegerLiterals(t *testing.T) {
	expectSingle(t, "0", token.IntLit, "0")
	expectSingle(t, "42", token.IntLit, "42")
	expectSingle(t, "0x1F", token.IntLit, "0x1F")
	expectSingle(t, "0777", token.IntLit, "0777")
	expectSingle(t, "42u", token.IntLit, "42u")
	expectSingle(t, "42UL", token.IntLit, "42UL")
	expectSingle(t, "42ll", token.IntLit, "42ll")
	expectSingle(t, "42ull", token.IntLit, "42ull")
}

func TestFloatLiterals(t *testing.T) {
	expectSingle(t, "1.5", token.FloatLit, "1.5")
	expectSingle(t, ".5", token.FloatLit, ".5")
	expectSingle(t, "1.", token.FloatLit, "1.")
	expectSingle(t, "1e10", token.FloatLit, "1e10")
	expectSingle(t, "1.5e-3", token.FloatLit, "1.5e-3")
	expectSingle(t, "2.0f", token.FloatLit, "2.0f")
}

func TestBadNumbers(t *testing.T) {
	cases := []string{"0x", "1e", "089", "42xyz", "1.5q"}
	for _, input := range cases {
		lx, bag := makeTestLexer(input)
		tok := lx.Next()
		if tok.Kind != token.Invalid {
			t.Errorf("input %q: expected Invalid, got %v", input, tok.Kind)
		}
		if !bag.HasErrors() {
			t.Errorf("input %q: expected a diagnostic", input)
		}
	}
}

func TestCharAndStringLiterals(t *testing.T) {
	expectSingle(t, "'a'", token.CharLit, "'a'")
	expectSingle(t, `'\n'`, token.CharLit, `'\n'`)
	expectSingle(t, `'\''`, token.CharLit, `'\''`)
	expectSingle(t, `"hello"`, token.StringLit, `"hello"`)
	expectSingle(t, `"a\"b"`, token.StringLit, `"a\"b"`)

	lx, bag := makeTestLexer(`"never closed`)
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Errorf("expected Invalid for unterminated string, got %v", tok.Kind)
	}
	if !bag.HasErrors() {
		t.Error("expected a diagnostic for unterminated string")
	}

	lx, bag = makeTestLexer("''")
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Errorf("expected Invalid for empty char literal, got %v", tok.Kind)
	}
	if !bag.HasErrors() {
		t.Error("expected a diagnostic for empty char literal")
	}
}

func TestOperatorsMaximalMunch(t *testing.T) {
	expectKinds(t, "a <<= b", []token.Kind{token.Ident, token.ShlAssign, token.Ident})
	expectKinds(t, "a << b", []token.Kind{token.Ident, token.Shl, token.Ident})
	expectKinds(t, "a < b", []token.Kind{token.Ident, token.Lt, token.Ident})
	expectKinds(t, "p->x", []token.Kind{token.Ident, token.Arrow, token.Ident})
	expectKinds(t, "i++ + ++j",
		[]token.Kind{token.Ident, token.PlusPlus, token.Plus, token.PlusPlus, token.Ident})
	expectKinds(t, "a&&b||c", []token.Kind{token.Ident, token.AndAnd, token.Ident, token.OrOr, token.Ident})
	expectKinds(t, "x ? y : z",
		[]token.Kind{token.Ident, token.Question, token.Ident, token.Colon, token.Ident})
	expectKinds(t, "f(a, ...)",
		[]token.Kind{token.Ident, token.LParen, token.Ident, token.Comma, token.Ellipsis, token.RParen})
}

func TestComments(t *testing.T) {
	expectKinds(t, "a // comment\nb", []token.Kind{token.Ident, token.Ident})
	expectKinds(t, "a /* multi\nline */ b", []token.Kind{token.Ident, token.Ident})
	expectKinds(t, "a/*x*/b", []token.Kind{token.Ident, token.Ident})

	lx, bag := makeTestLexer("a /* never closed")
	collectAll(lx)
	if !bag.HasErrors() {
		t.Error("expected a diagnostic for unterminated block comment")
	}
}

func TestLineContinuation(t *testing.T) {
	expectKinds(t, "in\\\nt", []token.Kind{token.Ident, token.Ident})
	expectKinds(t, "a \\\n b", []token.Kind{token.Ident, token.Ident})
}

func TestNullCharacterWarning(t *testing.T) {
	lx, bag := makeTestLexer("a\x00b")
	tokens := collectAll(lx)
	if len(tokens) != 3 { // a, b, EOF
		t.Fatalf("expected 3 tokens, got %d: %v", len(tokens), tokens)
	}
	if bag.HasErrors() {
		t.Error("null character must not be an error")
	}
	if !bag.HasWarnings() {
		t.Error("expected a warning for null character")
	}
}

func TestInvalidByte(t *testing.T) {
	lx, bag := makeTestLexer("a $ b")
	tokens := collectAll(lx)
	if tokens[1].Kind != token.Invalid {
		t.Errorf("expected Invalid for '$', got %v", tokens[1].Kind)
	}
	if !bag.HasErrors() {
		t.Error("expected a diagnostic for '$'")
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("x")
	lx.Next() // x
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("call %d after end: expected EOF, got %v", i, tok.Kind)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("int x")
	p := lx.Peek()
	n := lx.Next()
	if p != n {
		t.Errorf("Peek %v != Next %v", p, n)
	}
	if tok := lx.Next(); tok.Kind != token.Ident {
		t.Errorf("expected Ident after peeked token, got %v", tok.Kind)
	}
}

func TestSpansCoverSource(t *testing.T) {
	input := "int main"
	lx, _ := makeTestLexer(input)
	first := lx.Next()
	second := lx.Next()
	if got := input[first.Span.Start:first.Span.End]; got != "int" {
		t.Errorf("first span text = %q", got)
	}
	if got := input[second.Span.Start:second.Span.End]; got != "main" {
		t.Errorf("second span text = %q", got)
	}
	if first.Span.End > second.Span.Start {
		t.Error("token spans overlap")
	}
}

func TestSpanRoundTrip(t *testing.T) {
	// Concatenating the span text of every token must reconstruct the
	// input minus whitespace and comments.
	input := "int main ( void ) {\n\t// forty two\n\treturn 40 + 2; /* done */\n}\n"
	lx, bag := makeTestLexer(input)

	var rebuilt strings.Builder
	for _, tok := range collectAll(lx) {
		if tok.Kind == token.EOF {
			break
		}
		rebuilt.WriteString(input[tok.Span.Start:tok.Span.End])
	}

	want := "intmain(void){return40+2;}"
	if rebuilt.String() != want {
		t.Errorf("span round-trip = %q, want %q", rebuilt.String(), want)
	}
	if bag.Len() > 0 {
		t.Errorf("clean input produced %d diagnostics", bag.Len())
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	input := "int main(void) { return 1 + 2 * x; } /* tail */"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("det.c", []byte(input)))

	a := lexer.Tokenize(file, lexer.Options{})
	b := lexer.Tokenize(file, lexer.Options{})
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("token %d differs: %v vs %v", i, a[i], b[i])
		}
	}
	if a[len(a)-1].Kind != token.EOF {
		t.Error("stream must end with EOF")
	}
}
