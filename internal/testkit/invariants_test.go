package testkit

import (
	"testing"

	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/lexer"
	"minicc/internal/parser"
	"minicc/internal/sema"
	"minicc/internal/source"
)

func parseAndCheck(t *testing.T, src string) (*ast.Builder, *sema.Info, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte(src)))
	bag := diag.NewBag(0)
	reporter := &diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
	interner := source.NewInterner()
	builder := ast.NewBuilder(ast.Hints{})
	parser.ParseUnit(toks, builder, interner, parser.Options{Reporter: reporter})
	info := sema.Check(builder, interner, sema.Options{Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("front end rejected %q: %v", src, bag.Items())
	}
	return builder, info, file
}

func TestSpanInvariantsHold(t *testing.T) {
	srcs := []string{
		"int main(void) { return 0; }",
		"int g = 1;\nint f(int x) { return g + x; }\nint main(void) { return f(2); }\n",
		"struct p { int x; int y; };\nint main(void) { struct p q; q.x = 1; return q.x; }\n",
	}
	for _, src := range srcs {
		b, _, file := parseAndCheck(t, src)
		if err := CheckSpanInvariants(b, file); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestSpanInvariantsEmptyUnit(t *testing.T) {
	b, _, file := parseAndCheck(t, "")
	if err := CheckSpanInvariants(b, file); err != nil {
		t.Errorf("empty unit: %v", err)
	}
}

func TestExprTypesCoverage(t *testing.T) {
	b, info, _ := parseAndCheck(t, `
int add(int a, int b) { return a + b; }
int main(void) {
    int x = add(1, 2) * 3;
    return x > 0 ? x : -x;
}
`)
	if err := CheckExprTypesCoverage(b, info); err != nil {
		t.Error(err)
	}
}

func TestCheckersRejectNilInputs(t *testing.T) {
	if err := CheckSpanInvariants(nil, nil); err == nil {
		t.Error("expected an error for nil inputs")
	}
	if err := CheckExprTypesCoverage(nil, nil); err == nil {
		t.Error("expected an error for nil inputs")
	}
}
