package llvm_test

import (
	"strings"
	"testing"

	"minicc/internal/ir"
	"minicc/internal/ir/llvm"
)

func TestEmitMinimalMain(t *testing.T) {
	mod := &ir.Module{Name: "test.c"}
	b := ir.NewBuilder(mod)
	b.NewFunction("main", ir.I32, nil, false)
	b.Ret(ir.ConstInt(ir.I32, 0))

	out, err := llvm.EmitModule(mod)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	for _, want := range []string{
		`target triple = "x86_64-linux-gnu"`,
		"define i32 @main() {",
		"entry:",
		"  ret i32 0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEmitBranches(t *testing.T) {
	mod := &ir.Module{}
	b := ir.NewBuilder(mod)
	b.NewFunction("pick", ir.I32, []ir.Param{{Type: ir.I32}}, false)
	then := b.NewBlock("then")
	els := b.NewBlock("else")
	cond := b.EmitCmp(ir.PredNE, false, b.ParamValue(0), ir.ConstInt(ir.I32, 0))
	b.CondBr(cond, then, els)
	b.SetBlock(then)
	b.Ret(ir.ConstInt(ir.I32, 1))
	b.SetBlock(els)
	b.Ret(ir.ConstInt(ir.I32, 2))

	out, err := llvm.EmitModule(mod)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	for _, want := range []string{
		"define i32 @pick(i32 %arg0) {",
		"icmp ne i32 %arg0, 0",
		"br i1 %t1, label %then1, label %else2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEmitGlobalsAndStrings(t *testing.T) {
	mod := &ir.Module{
		Globals: []ir.Global{
			{Name: "counter", Type: ir.I64, Init: ir.InitInt, Int: 9},
			{Name: ".str.0", Type: ir.PtrType, Init: ir.InitBytes, Bytes: []byte("hi\n"), Constant: true},
			{Name: "zeroed", Type: ir.I32},
		},
	}
	out, err := llvm.EmitModule(mod)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	for _, want := range []string{
		"@counter = global i64 9, align 8",
		`@.str.0 = private unnamed_addr constant [4 x i8] c"hi\0A\00", align 1`,
		"@zeroed = global i32 0, align 4",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEmitExternDeclare(t *testing.T) {
	mod := &ir.Module{
		Externs: []ir.ExternFunc{
			{Name: "putchar", Ret: ir.I32, Params: []ir.Param{{Type: ir.I32}}},
			{Name: "printf", Ret: ir.I32, Params: []ir.Param{{Type: ir.PtrType}}, Variadic: true},
		},
	}
	out, err := llvm.EmitModule(mod)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.Contains(out, "declare i32 @putchar(i32)") {
		t.Errorf("missing putchar declare:\n%s", out)
	}
	if !strings.Contains(out, "declare i32 @printf(ptr, ...)") {
		t.Errorf("missing printf declare:\n%s", out)
	}
}

func TestEmitVariadicCallSite(t *testing.T) {
	mod := &ir.Module{
		Externs: []ir.ExternFunc{
			{Name: "printf", Ret: ir.I32, Params: []ir.Param{{Type: ir.PtrType}}, Variadic: true},
		},
	}
	b := ir.NewBuilder(mod)
	b.NewFunction("main", ir.I32, nil, false)
	b.EmitCall(ir.GlobalRef("printf"), ir.I32,
		[]ir.Value{ir.GlobalRef(".str.0"), ir.ConstInt(ir.I32, 7)}, true, 1)
	b.Ret(ir.ConstInt(ir.I32, 0))

	out, err := llvm.EmitModule(mod)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.Contains(out, "call i32 (ptr, ...) @printf(ptr @.str.0, i32 7)") {
		t.Errorf("variadic call site malformed:\n%s", out)
	}
}

func TestEmitRejectsBrokenModule(t *testing.T) {
	mod := &ir.Module{}
	b := ir.NewBuilder(mod)
	b.NewFunction("broken", ir.VoidType, nil, false)
	// entry left open on purpose
	if _, err := llvm.EmitModule(mod); err == nil {
		t.Error("an unterminated function must not emit")
	}
}

func TestEmitMemCpyDeclaresIntrinsic(t *testing.T) {
	mod := &ir.Module{}
	b := ir.NewBuilder(mod)
	b.NewFunction("copy", ir.VoidType, []ir.Param{{Type: ir.PtrType}, {Type: ir.PtrType}}, false)
	b.EmitMemCpy(b.ParamValue(0), b.ParamValue(1), 16, 8)
	b.RetVoid()

	out, err := llvm.EmitModule(mod)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.Contains(out, "declare void @llvm.memcpy.p0.p0.i64(ptr, ptr, i64, i1)") {
		t.Errorf("memcpy intrinsic not declared:\n%s", out)
	}
	if !strings.Contains(out, "call void @llvm.memcpy.p0.p0.i64(ptr %arg0, ptr %arg1, i64 16, i1 false)") {
		t.Errorf("memcpy call malformed:\n%s", out)
	}
}
