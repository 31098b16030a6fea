package ir_test

import (
	"testing"

	"minicc/internal/ir"
)

func TestBuilderBuildsTerminatedFunction(t *testing.T) {
	mod := &ir.Module{Name: "test"}
	b := ir.NewBuilder(mod)

	f := b.NewFunction("answer", ir.I32, nil, false)
	b.Ret(ir.ConstInt(ir.I32, 42))

	if err := ir.Validate(f); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(f.Blocks) != 1 || f.Blocks[0].Label != "entry" {
		t.Errorf("expected a single entry block, got %d blocks", len(f.Blocks))
	}
}

func TestTempsAreUniquePerFunction(t *testing.T) {
	mod := &ir.Module{}
	b := ir.NewBuilder(mod)
	b.NewFunction("f", ir.I32, nil, false)

	a := b.EmitAlloca(4, 4)
	v := b.EmitLoad(ir.I32, a)
	w := b.EmitBin(ir.OpAdd, v, ir.ConstInt(ir.I32, 1))
	if a.ID == v.ID || v.ID == w.ID || a.ID == w.ID {
		t.Errorf("temp IDs must be distinct: %d %d %d", a.ID, v.ID, w.ID)
	}
	b.Ret(w)
}

func TestValidateRejectsOpenBlock(t *testing.T) {
	mod := &ir.Module{}
	b := ir.NewBuilder(mod)
	f := b.NewFunction("f", ir.VoidType, nil, false)
	// entry never terminated
	if err := ir.Validate(f); err == nil {
		t.Error("an unterminated block must fail validation")
	}
}

func TestBranchTargetsChecked(t *testing.T) {
	mod := &ir.Module{}
	b := ir.NewBuilder(mod)
	f := b.NewFunction("f", ir.VoidType, nil, false)
	b.Br(ir.BlockID(7))
	if err := ir.Validate(f); err == nil {
		t.Error("a branch to a missing block must fail validation")
	}
}

func TestInstrAfterTerminatorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("emitting into a closed block must panic")
		}
	}()
	mod := &ir.Module{}
	b := ir.NewBuilder(mod)
	b.NewFunction("f", ir.VoidType, nil, false)
	b.RetVoid()
	b.EmitAlloca(4, 4)
}

func TestTypeSizes(t *testing.T) {
	cases := []struct {
		t    ir.Type
		size uint64
	}{
		{ir.I1, 1}, {ir.I8, 1}, {ir.I16, 2}, {ir.I32, 4}, {ir.I64, 8},
		{ir.F32, 4}, {ir.F64, 8}, {ir.PtrType, 8},
		{ir.BlobType(24, 8), 24},
	}
	for _, tc := range cases {
		if got := tc.t.ByteSize(); got != tc.size {
			t.Errorf("%s: size = %d, want %d", tc.t.String(), got, tc.size)
		}
	}
}

func TestBoolConstRendering(t *testing.T) {
	if got := ir.ConstInt(ir.I1, 1).Ref(); got != "true" {
		t.Errorf("i1 1 renders as %q", got)
	}
	if got := ir.ConstInt(ir.I32, -5).Ref(); got != "-5" {
		t.Errorf("i32 -5 renders as %q", got)
	}
	if got := ir.NullPtr().Ref(); got != "null" {
		t.Errorf("null renders as %q", got)
	}
}
