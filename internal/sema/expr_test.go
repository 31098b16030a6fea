package sema_test

import (
	"testing"

	"minicc/internal/ast"
	"minicc/internal/diag"
)

// returnedExpr digs out the expression of the first return statement
// in the last top-level function.
func returnedExpr(t *testing.T, out checkOutcome) ast.ExprID {
	t.Helper()
	decls := out.builder.Unit.Decls
	for i := len(decls) - 1; i >= 0; i-- {
		fn, ok := out.builder.Decls.Func(decls[i])
		if !ok || !fn.Body.IsValid() {
			continue
		}
		body, _ := out.builder.Stmts.Compound(fn.Body)
		for _, st := range body.Stmts {
			if ret, ok := out.builder.Stmts.Return(st); ok {
				return ret.Value
			}
		}
	}
	t.Fatal("no return statement found")
	return ast.NoExprID
}

func typeOfReturn(t *testing.T, src string) (checkOutcome, string) {
	t.Helper()
	out := mustCheckClean(t, src)
	id := returnedExpr(t, out)
	return out, out.info.Types.String(out.info.TypeOf(id), out.interner)
}

func TestUsualArithmeticInExpressions(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"int main(void) { return 1 + 2; }", "int"},
		{"long f(void) { return 1 + 2L; }", "long"},
		{"double f(void) { return 1 + 2.0; }", "double"},
		{"unsigned int f(void) { return 1u + 2; }", "unsigned int"},
		{"int f(void) { char c = 7; return c + c; }", "int"},
		{"int f(void) { return 1 < 2; }", "int"},
		{"int f(void) { return 1 && 0; }", "int"},
	}
	for _, tc := range cases {
		_, got := typeOfReturn(t, tc.src)
		if got != tc.want {
			t.Errorf("%q: result type = %s, want %s", tc.src, got, tc.want)
		}
	}
}

func TestPointerArithmetic(t *testing.T) {
	_, got := typeOfReturn(t, `
int *f(int *p) { return p + 1; }`)
	if got != "int *" {
		t.Errorf("p + 1 has type %s, want int *", got)
	}

	_, got = typeOfReturn(t, `
long f(int *p, int *q) { return p - q; }`)
	if got != "long" {
		t.Errorf("p - q has type %s, want long", got)
	}
}

func TestPointerPlusPointerIsRejected(t *testing.T) {
	expectOneError(t, "int f(int *p, int *q) { return *(p + q); }",
		diag.KindTypeMismatchError)
}

func TestArrayDecaysOnIndex(t *testing.T) {
	_, got := typeOfReturn(t, "int f(void) { int a[4]; a[0] = 1; return a[0]; }")
	if got != "int" {
		t.Errorf("a[0] has type %s, want int", got)
	}
}

func TestIndexOnNonPointer(t *testing.T) {
	expectOneError(t, "int f(void) { int x; return x[0]; }", diag.KindTypeMismatchError)
}

func TestDereferenceNonPointer(t *testing.T) {
	expectOneError(t, "int f(int x) { return *x; }", diag.KindTypeMismatchError)
}

func TestAddressOfRvalue(t *testing.T) {
	expectOneError(t, "int f(void) { return *&(1 + 2); }", diag.KindTypeMismatchError)
}

func TestMemberAccess(t *testing.T) {
	_, got := typeOfReturn(t, `
struct point { int x; int y; };
int f(void) { struct point p; p.x = 3; return p.x; }`)
	if got != "int" {
		t.Errorf("p.x has type %s, want int", got)
	}
}

func TestArrowAccess(t *testing.T) {
	_, got := typeOfReturn(t, `
struct point { int x; long y; };
long f(struct point *p) { return p->y; }`)
	if got != "long" {
		t.Errorf("p->y has type %s, want long", got)
	}
}

func TestUnknownMember(t *testing.T) {
	expectOneError(t, `
struct point { int x; };
int f(void) { struct point p; return p.z; }`, diag.KindUndeclaredIdentifierError)
}

func TestMemberOnNonRecord(t *testing.T) {
	expectOneError(t, "int f(int x) { return x.y; }", diag.KindTypeMismatchError)
}

func TestSizeofFolds(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{"unsigned long f(void) { return sizeof(int); }", 4},
		{"unsigned long f(void) { return sizeof(long); }", 8},
		{"unsigned long f(void) { return sizeof(char); }", 1},
		{"unsigned long f(void) { return sizeof(int *); }", 8},
		{"unsigned long f(void) { int a[6]; return sizeof a; }", 24},
		{"struct p { char c; int n; }; unsigned long f(void) { return sizeof(struct p); }", 8},
	}
	for _, tc := range cases {
		out := mustCheckClean(t, tc.src)
		id := returnedExpr(t, out)
		if v, ok := out.info.Folded[id]; !ok || v != tc.want {
			t.Errorf("%q: sizeof = %d (ok=%v), want %d", tc.src, v, ok, tc.want)
		}
		if got := out.info.Types.String(out.info.TypeOf(id), out.interner); got != "unsigned long" {
			t.Errorf("%q: sizeof has type %s, want unsigned long", tc.src, got)
		}
	}
}

func TestSizeofIncompleteType(t *testing.T) {
	expectOneError(t, "struct s; unsigned long f(void) { return sizeof(struct s); }",
		diag.KindTypeMismatchError)
}

func TestCallChecksArity(t *testing.T) {
	expectOneError(t, "int f(int a, int b); int main(void) { return f(1); }",
		diag.KindTypeMismatchError)
	expectOneError(t, "int f(int a); int main(void) { return f(1, 2); }",
		diag.KindTypeMismatchError)
}

func TestCallChecksArgumentTypes(t *testing.T) {
	expectOneError(t, "int f(int *p); int main(void) { return f(1); }",
		diag.KindTypeMismatchError)
}

func TestNullConstantConvertsToPointer(t *testing.T) {
	mustCheckClean(t, "int f(int *p); int main(void) { return f(0); }")
}

func TestCallingNonFunction(t *testing.T) {
	expectOneError(t, "int main(void) { int x; return x(); }", diag.KindTypeMismatchError)
}

func TestCastBetweenScalars(t *testing.T) {
	_, got := typeOfReturn(t, "int f(double d) { return (int)d; }")
	if got != "int" {
		t.Errorf("(int)d has type %s, want int", got)
	}
	_, got = typeOfReturn(t, "long f(int *p) { return (long)p; }")
	if got != "long" {
		t.Errorf("(long)p has type %s, want long", got)
	}
}

func TestCastPointerToFloatIsRejected(t *testing.T) {
	expectOneError(t, "double f(int *p) { return (double)p; }", diag.KindTypeMismatchError)
}

func TestStringLiteralDecodes(t *testing.T) {
	out := mustCheckClean(t, `char *f(void) { return "hi\n"; }`)
	id := returnedExpr(t, out)
	if got := out.info.Types.String(out.info.TypeOf(id), out.interner); got != "char *" {
		t.Errorf("string literal has type %s, want char *", got)
	}
	if got := out.info.Strings[id]; got != "hi\n" {
		t.Errorf("decoded string = %q, want %q", got, "hi\n")
	}
}

func TestCharLiteralIsInt(t *testing.T) {
	out := mustCheckClean(t, "int f(void) { return 'A'; }")
	id := returnedExpr(t, out)
	if got := out.info.Types.String(out.info.TypeOf(id), out.interner); got != "int" {
		t.Errorf("char literal has type %s, want int", got)
	}
	if v := out.info.Folded[id]; v != 65 {
		t.Errorf("'A' folds to %d, want 65", v)
	}
}

func TestCharEscapes(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{`int f(void) { return '\n'; }`, 10},
		{`int f(void) { return '\0'; }`, 0},
		{`int f(void) { return '\x41'; }`, 65},
		{`int f(void) { return '\101'; }`, 65},
	}
	for _, tc := range cases {
		out := mustCheckClean(t, tc.src)
		if v := out.info.Folded[returnedExpr(t, out)]; v != tc.want {
			t.Errorf("%q folds to %d, want %d", tc.src, v, tc.want)
		}
	}
}

func TestIntLiteralTypes(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"int f(void) { return 2147483647; }", "int"},
		{"long f(void) { return 2147483648; }", "long"},
		{"unsigned int f(void) { return 7u; }", "unsigned int"},
		{"long f(void) { return 7l; }", "long"},
		{"unsigned long f(void) { return 7ul; }", "unsigned long"},
		{"unsigned int f(void) { return 0xFFFFFFFF; }", "unsigned int"},
	}
	for _, tc := range cases {
		_, got := typeOfReturn(t, tc.src)
		if got != tc.want {
			t.Errorf("%q: literal type = %s, want %s", tc.src, got, tc.want)
		}
	}
}

func TestTernaryCommonType(t *testing.T) {
	_, got := typeOfReturn(t, "double f(int c) { return c ? 1 : 2.5; }")
	if got != "double" {
		t.Errorf("ternary type = %s, want double", got)
	}
}

func TestTernaryIncompatibleBranches(t *testing.T) {
	expectOneError(t, "int f(int c, int *p) { return c ? p : 2.5; }",
		diag.KindTypeMismatchError)
}

func TestConstantFoldingWraps(t *testing.T) {
	out := mustCheckClean(t, "int g = (char)300;")
	data, _ := out.builder.Decls.Var(out.builder.Unit.Decls[0])
	if v := out.info.Folded[data.Init]; v != 44 {
		t.Errorf("(char)300 folds to %d, want 44", v)
	}
}

func TestUnsignedComparisonFolds(t *testing.T) {
	// -1 converts to the unsigned common type, so it compares greater.
	out := mustCheckClean(t, "int g = -1 > 0u;")
	data, _ := out.builder.Decls.Var(out.builder.Unit.Decls[0])
	if v := out.info.Folded[data.Init]; v != 1 {
		t.Errorf("-1 > 0u folds to %d, want 1", v)
	}
}

func TestCommaYieldsRightType(t *testing.T) {
	_, got := typeOfReturn(t, "double f(int x) { return (x = 1, 2.0); }")
	if got != "double" {
		t.Errorf("comma type = %s, want double", got)
	}
}

func TestIncrementRequiresLvalue(t *testing.T) {
	expectOneError(t, "int f(void) { return ++3; }", diag.KindTypeMismatchError)
}
