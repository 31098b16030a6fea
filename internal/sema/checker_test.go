package sema_test

import (
	"testing"

	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/lexer"
	"minicc/internal/parser"
	"minicc/internal/sema"
	"minicc/internal/source"
)

type checkOutcome struct {
	builder  *ast.Builder
	interner *source.Interner
	info     *sema.Info
	bag      *diag.Bag
}

func checkSource(t *testing.T, src string) checkOutcome {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte(src)))

	bag := diag.NewBag(0)
	reporter := &diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: reporter})

	interner := source.NewInterner()
	builder := ast.NewBuilder(ast.Hints{})
	parser.ParseUnit(toks, builder, interner, parser.Options{Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors for %q", src)
	}

	info := sema.Check(builder, interner, sema.Options{Reporter: reporter})
	return checkOutcome{builder: builder, interner: interner, info: info, bag: bag}
}

func mustCheckClean(t *testing.T, src string) checkOutcome {
	t.Helper()
	out := checkSource(t, src)
	if out.bag.HasErrors() {
		t.Fatalf("unexpected errors for %q:\n%s", src, dumpBag(out.bag))
	}
	return out
}

func dumpBag(bag *diag.Bag) string {
	s := ""
	for _, d := range bag.Items() {
		s += d.Severity.String() + " " + d.Kind.String() + " " + d.Message + "\n"
	}
	return s
}

func countKind(bag *diag.Bag, kind diag.Kind) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

func expectOneError(t *testing.T, src string, kind diag.Kind) checkOutcome {
	t.Helper()
	out := checkSource(t, src)
	if out.bag.ErrorCount() != 1 {
		t.Fatalf("expected exactly 1 error for %q, got %d:\n%s",
			src, out.bag.ErrorCount(), dumpBag(out.bag))
	}
	if countKind(out.bag, kind) != 1 {
		t.Fatalf("expected a %s for %q, got:\n%s", kind.String(), src, dumpBag(out.bag))
	}
	return out
}

func TestCheckMinimalMain(t *testing.T) {
	out := mustCheckClean(t, "int main(void) { return 0; }")
	sym, found := out.info.Table.Lookup(out.info.Table.Global(), mustFind(t, out, "main"))
	if !found {
		t.Fatal("main must be declared at file scope")
	}
	if !out.info.Table.Symbol(sym).Defined {
		t.Error("main must be marked defined")
	}
}

func mustFind(t *testing.T, out checkOutcome, name string) source.StringID {
	t.Helper()
	id, ok := out.interner.Find(name)
	if !ok {
		t.Fatalf("name %q was never interned", name)
	}
	return id
}

func TestGlobalRedefinition(t *testing.T) {
	out := expectOneError(t, "int x; int x;", diag.KindRedefinitionError)
	d := out.bag.Items()[0]
	if len(d.Notes) != 1 {
		t.Fatal("redefinition must point at the previous definition")
	}
	if d.Primary.Start == d.Notes[0].Span.Start {
		t.Error("primary and note spans must differ")
	}
}

func TestGlobalConflictingTypes(t *testing.T) {
	expectOneError(t, "int x; long x;", diag.KindConflictingTypesError)
}

func TestUndeclaredIdentifier(t *testing.T) {
	expectOneError(t, "int main(void) { return y; }", diag.KindUndeclaredIdentifierError)
}

func TestFunctionRedefinition(t *testing.T) {
	expectOneError(t,
		"int f(void) { return 1; } int f(void) { return 2; }",
		diag.KindRedefinitionError)
}

func TestPrototypeThenDefinition(t *testing.T) {
	out := mustCheckClean(t, "int f(int x); int f(int x) { return x; }")
	sym, _ := out.info.Table.Lookup(out.info.Table.Global(), mustFind(t, out, "f"))
	if !out.info.Table.Symbol(sym).Defined {
		t.Error("the definition must refine the prototype")
	}
}

func TestConflictingPrototype(t *testing.T) {
	expectOneError(t, "int f(int); long f(int);", diag.KindConflictingTypesError)
}

func TestRepeatedPrototypeIsLegal(t *testing.T) {
	mustCheckClean(t, "int f(int); int f(int);")
}

func TestIfElseBothReturn(t *testing.T) {
	mustCheckClean(t, `
int sign(int x) {
    if (x < 0) {
        return -1;
    } else {
        return 1;
    }
}`)
}

func TestMissingReturn(t *testing.T) {
	expectOneError(t, "int f(void) { ; }", diag.KindReturnTypeError)
}

func TestMainGetsImplicitReturn(t *testing.T) {
	mustCheckClean(t, "int main(void) { ; }")
}

func TestVoidReturningValue(t *testing.T) {
	expectOneError(t, "void f(void) { return 1; }", diag.KindReturnTypeError)
}

func TestNonVoidBareReturn(t *testing.T) {
	expectOneError(t, "int f(void) { return; }", diag.KindReturnTypeError)
}

func TestBreakOutsideLoop(t *testing.T) {
	expectOneError(t, "int main(void) { break; return 0; }", diag.KindControlFlowError)
}

func TestContinueOutsideLoop(t *testing.T) {
	expectOneError(t, "int main(void) { continue; return 0; }", diag.KindControlFlowError)
}

func TestContinueInsideSwitchIsStillBad(t *testing.T) {
	expectOneError(t, `
int main(void) {
    switch (1) {
    case 1: continue;
    }
    return 0;
}`, diag.KindControlFlowError)
}

func TestBreakInsideSwitch(t *testing.T) {
	mustCheckClean(t, `
int main(void) {
    switch (1) {
    case 1: break;
    default: break;
    }
    return 0;
}`)
}

func TestLocalRedefinition(t *testing.T) {
	expectOneError(t, "int main(void) { int x; int x; return 0; }",
		diag.KindRedefinitionError)
}

func TestShadowingIsLegal(t *testing.T) {
	mustCheckClean(t, "int main(void) { int x; { int x; x = 1; } return x; }")
}

func TestParameterRedefinedByLocal(t *testing.T) {
	expectOneError(t, "int f(int x) { int x; return x; }",
		diag.KindRedefinitionError)
}

func TestTypedefResolution(t *testing.T) {
	mustCheckClean(t, "typedef int myint; myint g; int main(void) { myint x = g; return x; }")
}

func TestTypedefRedefinitionSameTypeIsLegal(t *testing.T) {
	mustCheckClean(t, "typedef int myint; typedef int myint;")
}

func TestTypedefRedefinitionDifferentType(t *testing.T) {
	expectOneError(t, "typedef int myint; typedef long myint;",
		diag.KindRedefinitionError)
}

func TestLongDoubleIsRejected(t *testing.T) {
	expectOneError(t, "long double x;", diag.KindUnsupportedConstructError)
}

func TestVoidVariable(t *testing.T) {
	expectOneError(t, "void x;", diag.KindTypeMismatchError)
}

func TestStructDefinitionWithTwoDeclarators(t *testing.T) {
	// The specifier node is shared; the tag must be defined once.
	mustCheckClean(t, "struct s { int x; } a, b;")
}

func TestStructRedefinition(t *testing.T) {
	expectOneError(t, "struct s { int x; }; struct s { int x; };",
		diag.KindRedefinitionError)
}

func TestDuplicateMember(t *testing.T) {
	expectOneError(t, "struct s { int x; int x; };", diag.KindRedefinitionError)
}

func TestEnumConstantsFold(t *testing.T) {
	out := mustCheckClean(t, "enum color { RED, GREEN = 5, BLUE }; int g = BLUE;")
	sym, found := out.info.Table.Lookup(out.info.Table.Global(), mustFind(t, out, "BLUE"))
	if !found {
		t.Fatal("BLUE must be declared")
	}
	if got := out.info.Table.Symbol(sym).Value; got != 6 {
		t.Errorf("BLUE = %d, want 6", got)
	}
}

func TestDuplicateEnumerator(t *testing.T) {
	expectOneError(t, "enum e { A, A };", diag.KindRedefinitionError)
}

func TestArraySizeMustBePositive(t *testing.T) {
	expectOneError(t, "int a[0];", diag.KindConstantEvaluationError)
	expectOneError(t, "int b[-2];", diag.KindConstantEvaluationError)
}

func TestArraySizeMustBeConstant(t *testing.T) {
	expectOneError(t, "int main(void) { int n = 3; int a[n]; return 0; }",
		diag.KindConstantEvaluationError)
}

func TestDivisionByZeroInConstant(t *testing.T) {
	expectOneError(t, "int a[4 / 0];", diag.KindConstantEvaluationError)
}

func TestDuplicateCaseValue(t *testing.T) {
	expectOneError(t, `
int main(void) {
    switch (1) {
    case 2: break;
    case 1 + 1: break;
    }
    return 0;
}`, diag.KindConstantEvaluationError)
}

func TestImplicitConversionWarning(t *testing.T) {
	out := mustCheckClean(t, "int main(void) { long y = 7; int x = 0; x = y; return x; }")
	if countKind(out.bag, diag.KindImplicitConversion) != 1 {
		t.Errorf("expected one narrowing warning, got:\n%s", dumpBag(out.bag))
	}
}

func TestReanalysisIsIdempotent(t *testing.T) {
	src := "int main(void) { long y = 7; int x = 0; x = y; return x; }"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte(src)))

	parseBag := diag.NewBag(0)
	reporter := &diag.BagReporter{Bag: parseBag}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
	interner := source.NewInterner()
	builder := ast.NewBuilder(ast.Hints{})
	parser.ParseUnit(toks, builder, interner, parser.Options{Reporter: reporter})
	if parseBag.HasErrors() {
		t.Fatalf("unexpected parse errors:\n%s", dumpBag(parseBag))
	}

	bag1 := diag.NewBag(0)
	info1 := sema.Check(builder, interner, sema.Options{Reporter: &diag.BagReporter{Bag: bag1}})
	bag2 := diag.NewBag(0)
	info2 := sema.Check(builder, interner, sema.Options{Reporter: &diag.BagReporter{Bag: bag2}})

	if dumpBag(bag1) != dumpBag(bag2) {
		t.Errorf("diagnostics differ across runs:\n%svs:\n%s", dumpBag(bag1), dumpBag(bag2))
	}
	if len(info1.ExprTypes) != len(info2.ExprTypes) {
		t.Fatalf("ExprTypes sizes differ: %d vs %d", len(info1.ExprTypes), len(info2.ExprTypes))
	}
	for id, ty := range info1.ExprTypes {
		if got := info2.ExprTypes[id]; got != ty {
			t.Errorf("expr %d resolved to %v, then %v", id, ty, got)
		}
	}
}

func TestAssignToConst(t *testing.T) {
	expectOneError(t, "int main(void) { const int x = 1; x = 2; return x; }",
		diag.KindTypeMismatchError)
}

func TestNullPointerConstantLocalInit(t *testing.T) {
	mustCheckClean(t, "int main(void) { int *p = 0; p = 0; return 0; }")
}

func TestNullPointerConstantGlobalInit(t *testing.T) {
	mustCheckClean(t, "char *s = 0;")
}

func TestNullPointerConstantReturn(t *testing.T) {
	mustCheckClean(t, "int *g(void) { return 0; }")
}

func TestNonzeroIntToPointerStillRejected(t *testing.T) {
	expectOneError(t, "int main(void) { int *p = 1; return 0; }",
		diag.KindTypeMismatchError)
}

func TestGlobalInitMustBeConstant(t *testing.T) {
	expectOneError(t, "int f(void); int g = f();", diag.KindConstantEvaluationError)
}

func TestGlobalInitFolds(t *testing.T) {
	out := mustCheckClean(t, "int g = 2 * 3 + 1;")
	data, _ := out.builder.Decls.Var(out.builder.Unit.Decls[0])
	if v, ok := out.info.Folded[data.Init]; !ok || v != 7 {
		t.Errorf("folded init = %d (ok=%v), want 7", v, ok)
	}
}
