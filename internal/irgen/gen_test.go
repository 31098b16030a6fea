package irgen_test

import (
	"strings"
	"testing"

	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/irgen"
	"minicc/internal/ir/llvm"
	"minicc/internal/lexer"
	"minicc/internal/parser"
	"minicc/internal/sema"
	"minicc/internal/source"
)

// lower runs the full front end and the generator, returning the
// emitted LLVM IR text.
func lower(t *testing.T, src string) string {
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
		t.Fatalf("front end rejected %q:\n%s", src, dumpBag(bag))
	}

	mod, ok := irgen.Generate(builder, interner, info, irgen.Options{
		Reporter:   reporter,
		ModuleName: "test.c",
	})
	if !ok {
		t.Fatalf("generate failed for %q:\n%s", src, dumpBag(bag))
	}
	out, err := llvm.EmitModule(mod)
	if err != nil {
		t.Fatalf("emit failed for %q: %v", src, err)
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

func wantAll(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestLowerMinimalMain(t *testing.T) {
	out := lower(t, "int main(void) { return 0; }")
	wantAll(t, out,
		`target triple = "x86_64-linux-gnu"`,
		"define i32 @main() {",
		"ret i32 0",
	)
}

func TestLowerImplicitReturnZero(t *testing.T) {
	out := lower(t, "int main(void) { }")
	wantAll(t, out, "ret i32 0")
}

func TestLowerParamsSpillToSlots(t *testing.T) {
	out := lower(t, "int add(int a, int b) { return a + b; }")
	wantAll(t, out,
		"define i32 @add(i32 %arg0, i32 %arg1) {",
		"alloca [4 x i8], align 4",
		"store i32 %arg0",
		"store i32 %arg1",
		"add i32",
	)
}

func TestLowerLocalInitializer(t *testing.T) {
	out := lower(t, "int main(void) { int x = 7; return x; }")
	wantAll(t, out, "store i32 7", "load i32")
}

func TestLowerGlobals(t *testing.T) {
	out := lower(t, `
int counter = 42;
double rate = 2.5;
long big;
char *greeting = "hi";
int main(void) { return counter; }
`)
	wantAll(t, out,
		"@counter = global i32 42, align 4",
		"@rate = global double 0x4004000000000000, align 8",
		"@big = global i64 0, align 8",
		"@greeting = global ptr @.str.0, align 8",
		`c"hi\00"`,
	)
}

func TestLowerIfElse(t *testing.T) {
	out := lower(t, "int f(int x) { if (x) return 1; else return 2; }")
	wantAll(t, out,
		"icmp ne i32",
		"br i1",
		"ret i32 1",
		"ret i32 2",
	)
	// Both arms return, so no join block is created at all.
	if strings.Contains(out, "endif") {
		t.Errorf("no join block should exist when both arms return:\n%s", out)
	}
}

func TestLowerIfElseFallThroughJoins(t *testing.T) {
	out := lower(t, "int f(int x) { int r = 0; if (x) r = 1; else r = 2; return r; }")
	wantAll(t, out, "br label %endif")
}

func TestLowerBothArmsReturnLeavesNoDeadBlock(t *testing.T) {
	out := lower(t, "int main(void) { if (1) return 1; else return 2; }")
	if strings.Contains(out, "endif") {
		t.Errorf("dead join block emitted:\n%s", out)
	}
	if n := strings.Count(out, "  ret "); n != 2 {
		t.Errorf("expected exactly 2 returns, got %d:\n%s", n, out)
	}
}

func TestLowerWhileLoop(t *testing.T) {
	out := lower(t, `
int sum(int n) {
    int total = 0;
    while (n > 0) {
        total = total + n;
        n = n - 1;
    }
    return total;
}
`)
	wantAll(t, out,
		"icmp sgt i32",
		"label %while.body",
		"label %while.end",
	)
}

func TestLowerForLoopWithBreakContinue(t *testing.T) {
	out := lower(t, `
int f(void) {
    int s = 0;
    for (int i = 0; i < 10; i = i + 1) {
        if (i == 3) continue;
        if (i == 7) break;
        s = s + i;
    }
    return s;
}
`)
	wantAll(t, out,
		"label %for.cond",
		"label %for.post",
		"label %for.end",
	)
}

func TestLowerDoWhile(t *testing.T) {
	out := lower(t, `
int f(int n) {
    int i = 0;
    do { i = i + 1; } while (i < n);
    return i;
}
`)
	wantAll(t, out, "label %do.body", "icmp slt i32")
}

func TestLowerSwitch(t *testing.T) {
	out := lower(t, `
int f(int x) {
    switch (x) {
    case 1: return 10;
    case 2: return 20;
    default: return 0;
    }
}
`)
	wantAll(t, out,
		"switch i32",
		"i32 1, label %sw.case",
		"i32 2, label %sw.case",
		"label %sw.default",
	)
}

func TestLowerSwitchFallThrough(t *testing.T) {
	out := lower(t, `
int f(int x) {
    int r = 0;
    switch (x) {
    case 1: r = r + 1;
    case 2: r = r + 2; break;
    }
    return r;
}
`)
	// The first arm must branch into the second, not past it.
	if !strings.Contains(out, "br label %sw.case") {
		t.Errorf("case 1 does not fall through:\n%s", out)
	}
}

func TestLowerShortCircuit(t *testing.T) {
	out := lower(t, "int f(int a, int b) { return a && b; }")
	wantAll(t, out,
		"label %land.rhs",
		"label %land.end",
		"load i1",
		"zext i1",
	)
}

func TestLowerTernary(t *testing.T) {
	out := lower(t, "int f(int c) { return c ? 1 : 2; }")
	wantAll(t, out,
		"label %cond.then",
		"label %cond.else",
		"store i32 1",
		"store i32 2",
	)
}

func TestLowerCalls(t *testing.T) {
	out := lower(t, `
int twice(int x) { return x + x; }
int main(void) { return twice(21); }
`)
	wantAll(t, out, "call i32 @twice(i32 21)")
}

func TestLowerExternPrototype(t *testing.T) {
	out := lower(t, `
int putchar(int c);
int main(void) { putchar(65); return 0; }
`)
	wantAll(t, out,
		"declare i32 @putchar(i32)",
		"call i32 @putchar(i32 65)",
	)
}

func TestLowerVariadicPrintf(t *testing.T) {
	out := lower(t, `
int printf(const char *fmt, ...);
int main(void) { printf("%d\n", 42); return 0; }
`)
	wantAll(t, out,
		"declare i32 @printf(ptr, ...)",
		"call i32 (ptr, ...) @printf(ptr @.str.0, i32 42)",
	)
}

func TestLowerVariadicPromotions(t *testing.T) {
	out := lower(t, `
int printf(const char *fmt, ...);
int main(void) {
    char c = 7;
    float f = 1.5f;
    printf("%d %f", c, f);
    return 0;
}
`)
	// char widens to int, float widens to double in the variadic tail.
	wantAll(t, out, "sext i8", "fpext float")
}

func TestLowerPointerArithmetic(t *testing.T) {
	out := lower(t, `
int f(int *p) { return *(p + 2); }
`)
	wantAll(t, out,
		"getelementptr inbounds [4 x i8], ptr",
		"i64 2",
	)
}

func TestLowerArrayIndexing(t *testing.T) {
	out := lower(t, `
int f(void) {
    int a[4];
    a[2] = 9;
    return a[2];
}
`)
	wantAll(t, out,
		"alloca [16 x i8], align 4",
		"getelementptr inbounds [4 x i8]",
	)
}

func TestLowerStructMemberAccess(t *testing.T) {
	out := lower(t, `
struct point { int x; int y; };
int f(void) {
    struct point p;
    p.y = 5;
    return p.y;
}
`)
	// y sits at offset 4, addressed bytewise.
	wantAll(t, out,
		"alloca [8 x i8], align 4",
		"getelementptr inbounds i8, ptr",
		"i64 4",
	)
}

func TestLowerStructAssignmentUsesMemCpy(t *testing.T) {
	out := lower(t, `
struct pair { long a; long b; };
void f(struct pair *d, struct pair *s) { *d = *s; }
`)
	wantAll(t, out,
		"call void @llvm.memcpy.p0.p0.i64(ptr",
		"i64 16",
	)
}

func TestLowerConversions(t *testing.T) {
	out := lower(t, `
double f(int i, unsigned int u, double d) {
    long l = i;
    unsigned long ul = u;
    int t = (int)d;
    return i + d + t + (double)(l + (long)ul);
}
`)
	wantAll(t, out,
		"sext i32",
		"zext i32",
		"fptosi double",
		"sitofp",
	)
}

func TestLowerUnsignedDivision(t *testing.T) {
	out := lower(t, `
unsigned int f(unsigned int a, unsigned int b) { return a / b % 3u; }
`)
	wantAll(t, out, "udiv i32", "urem i32")
}

func TestLowerAddressOfAndDeref(t *testing.T) {
	out := lower(t, `
int f(void) {
    int x = 3;
    int *p = &x;
    *p = 4;
    return x;
}
`)
	wantAll(t, out, "store ptr", "load ptr")
}

func TestLowerIncDec(t *testing.T) {
	out := lower(t, `
int f(int x) {
    int a = x++;
    int b = --x;
    return a + b;
}
`)
	wantAll(t, out, "add i32", "sub i32")
}

func TestLowerCompoundAssign(t *testing.T) {
	out := lower(t, `
int f(int x) {
    x += 3;
    x <<= 1;
    return x;
}
`)
	wantAll(t, out, "add i32", "shl i32")
}

func TestLowerEnumConstants(t *testing.T) {
	out := lower(t, `
enum color { RED, GREEN = 5, BLUE };
int f(void) { return BLUE; }
`)
	wantAll(t, out, "ret i32 6")
}

func TestLowerSizeofFoldsToConstant(t *testing.T) {
	out := lower(t, `
unsigned long f(void) { return sizeof(long) + sizeof(char); }
`)
	wantAll(t, out, "add i64 8, 1")
}

func TestLowerStringInterning(t *testing.T) {
	out := lower(t, `
int puts(const char *s);
int main(void) {
    puts("same");
    puts("same");
    return 0;
}
`)
	if strings.Count(out, `c"same\00"`) != 1 {
		t.Errorf("identical string literals must share one constant:\n%s", out)
	}
}

func TestLowerVoidFunction(t *testing.T) {
	out := lower(t, `
void nothing(void) { return; }
int main(void) { nothing(); return 0; }
`)
	wantAll(t, out,
		"define void @nothing() {",
		"ret void",
		"call void @nothing()",
	)
}

func TestLowerNullPointerConstant(t *testing.T) {
	out := lower(t, `
int f(int *p) { return p == 0; }
`)
	wantAll(t, out, "icmp eq ptr", "null")
}

func TestRejectStructByValueParam(t *testing.T) {
	fs := source.NewFileSet()
	src := "struct s { int x; };\nint f(struct s v) { return v.x; }\n"
	file := fs.Get(fs.AddVirtual("test.c", []byte(src)))

	bag := diag.NewBag(0)
	reporter := &diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
	interner := source.NewInterner()
	builder := ast.NewBuilder(ast.Hints{})
	parser.ParseUnit(toks, builder, interner, parser.Options{Reporter: reporter})
	info := sema.Check(builder, interner, sema.Options{Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("front end rejected input:\n%s", dumpBag(bag))
	}

	_, ok := irgen.Generate(builder, interner, info, irgen.Options{Reporter: reporter})
	if ok {
		t.Fatal("struct-by-value parameter must be rejected")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Kind == diag.KindUnsupportedConstructError {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an unsupported-construct diagnostic:\n%s", dumpBag(bag))
	}
}
