package types_test

import (
	"testing"

	"minicc/internal/source"
	"minicc/internal/types"
)

func TestInterningIsStructural(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()

	p1 := in.Pointer(b.Int)
	p2 := in.Pointer(b.Int)
	if p1 != p2 {
		t.Error("identical pointer types must share a TypeID")
	}
	if p1 == in.Pointer(b.Char) {
		t.Error("different pointee types must not collide")
	}

	a1 := in.Intern(types.MakeArray(b.Int, 4))
	a2 := in.Intern(types.MakeArray(b.Int, 4))
	if a1 != a2 {
		t.Error("identical array types must share a TypeID")
	}
	if a1 == in.Intern(types.MakeArray(b.Int, 5)) {
		t.Error("arrays of different length must not collide")
	}

	f1 := in.Func(b.Int, []types.TypeID{b.Int, b.Char}, false)
	f2 := in.Func(b.Int, []types.TypeID{b.Int, b.Char}, false)
	if f1 != f2 {
		t.Error("identical signatures must share a TypeID")
	}
	if f1 == in.Func(b.Int, []types.TypeID{b.Int, b.Char}, true) {
		t.Error("variadic and non-variadic signatures must differ")
	}
}

func TestLongAndLongLongAreDistinct(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	if b.Long == b.LongLong {
		t.Error("long and long long are distinct types even at the same width")
	}
	sizeL, _, _ := in.SizeAlign(b.Long)
	sizeLL, _, _ := in.SizeAlign(b.LongLong)
	if sizeL != 8 || sizeLL != 8 {
		t.Errorf("long/long long must be 8 bytes, got %d/%d", sizeL, sizeLL)
	}
}

func TestRecordsAreNominal(t *testing.T) {
	in := types.NewInterner()
	names := source.NewInterner()
	b := in.Builtins()

	r1 := in.NewRecord(names.Intern("point"), false)
	r2 := in.NewRecord(names.Intern("point"), false)
	if r1 == r2 {
		t.Error("each record definition must get its own TypeID")
	}

	fields := []types.FieldInfo{
		{Name: names.Intern("c"), Type: b.Char},
		{Name: names.Intern("x"), Type: b.Int},
		{Name: names.Intern("y"), Type: b.Long},
	}
	if !in.CompleteRecord(r1, fields) {
		t.Fatal("CompleteRecord failed")
	}
	info, _ := in.RecordInfo(r1)
	if !info.Complete {
		t.Fatal("record must be complete")
	}
	// char at 0, int padded to 4, long padded to 8; total rounds to 16.
	if info.Fields[1].Offset != 4 || info.Fields[2].Offset != 8 {
		t.Errorf("offsets = %d,%d, want 4,8", info.Fields[1].Offset, info.Fields[2].Offset)
	}
	if info.Size != 16 || info.Align != 8 {
		t.Errorf("size/align = %d/%d, want 16/8", info.Size, info.Align)
	}
}

func TestUnionLayout(t *testing.T) {
	in := types.NewInterner()
	names := source.NewInterner()
	b := in.Builtins()

	u := in.NewRecord(names.Intern("u"), true)
	in.CompleteRecord(u, []types.FieldInfo{
		{Name: names.Intern("i"), Type: b.Int},
		{Name: names.Intern("d"), Type: b.Double},
	})
	info, _ := in.RecordInfo(u)
	if info.Size != 8 || info.Align != 8 {
		t.Errorf("union size/align = %d/%d, want 8/8", info.Size, info.Align)
	}
	for _, f := range info.Fields {
		if f.Offset != 0 {
			t.Error("union members must all sit at offset 0")
		}
	}
}

func TestPromotions(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()

	for _, id := range []types.TypeID{b.Bool, b.Char, b.SChar, b.UChar, b.Short, b.UShort} {
		if got := in.Promote(id); got != b.Int {
			t.Errorf("Promote(%s) = %s, want int",
				in.String(id, nil), in.String(got, nil))
		}
	}
	if in.Promote(b.UInt) != b.UInt {
		t.Error("unsigned int must not promote")
	}
	if in.Promote(b.Double) != b.Double {
		t.Error("double must not promote")
	}
}

func TestUsualArithmetic(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()

	cases := []struct {
		a, b, want types.TypeID
	}{
		{b.Char, b.Char, b.Int},
		{b.Int, b.Long, b.Long},
		{b.Int, b.UInt, b.UInt},
		{b.UInt, b.Long, b.Long},       // long (64) represents all of unsigned int (32)
		{b.ULong, b.LongLong, b.ULongLong}, // same width: go unsigned
		{b.Int, b.Float, b.Float},
		{b.Float, b.Double, b.Double},
		{b.Long, b.Double, b.Double},
	}
	for _, c := range cases {
		got, ok := in.UsualArithmetic(c.a, c.b)
		if !ok || got != c.want {
			t.Errorf("UsualArithmetic(%s, %s) = %s, want %s",
				in.String(c.a, nil), in.String(c.b, nil), in.String(got, nil), in.String(c.want, nil))
		}
	}

	ptr := in.Pointer(b.Int)
	if _, ok := in.UsualArithmetic(ptr, b.Int); ok {
		t.Error("pointers do not participate in arithmetic conversions")
	}
}

func TestDecay(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()

	arr := in.Intern(types.MakeArray(b.Int, 3))
	if got := in.Decay(arr); got != in.Pointer(b.Int) {
		t.Errorf("array must decay to int*, got %s", in.String(got, nil))
	}
	fn := in.Func(b.Void, nil, false)
	if got := in.Decay(fn); got != in.Pointer(fn) {
		t.Error("function must decay to pointer-to-function")
	}
	cq := in.Qualify(b.Int)
	if got := in.Decay(cq); got != b.Int {
		t.Error("decay must drop top-level const")
	}
}

func TestSizeAlign(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()

	check := func(id types.TypeID, wantSize, wantAlign uint64) {
		t.Helper()
		size, align, ok := in.SizeAlign(id)
		if !ok || size != wantSize || align != wantAlign {
			t.Errorf("SizeAlign(%s) = %d/%d/%v, want %d/%d",
				in.String(id, nil), size, align, ok, wantSize, wantAlign)
		}
	}
	check(b.Bool, 1, 1)
	check(b.Char, 1, 1)
	check(b.Short, 2, 2)
	check(b.Int, 4, 4)
	check(b.Long, 8, 8)
	check(b.Float, 4, 4)
	check(b.Double, 8, 8)
	check(in.Pointer(b.Char), 8, 8)
	check(in.Intern(types.MakeArray(b.Int, 10)), 40, 4)

	if _, _, ok := in.SizeAlign(b.Void); ok {
		t.Error("void has no size")
	}
	if _, _, ok := in.SizeAlign(in.Intern(types.MakeIncompleteArray(b.Int))); ok {
		t.Error("incomplete arrays have no size")
	}
}

func TestStringRendering(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()

	if got := in.String(in.Pointer(b.Int), nil); got != "int *" {
		t.Errorf("pointer rendering = %q", got)
	}
	fn := in.Func(b.Int, []types.TypeID{b.Char}, false)
	if got := in.String(fn, nil); got != "int(char)" {
		t.Errorf("function rendering = %q", got)
	}
	void := in.Func(b.Void, nil, false)
	if got := in.String(void, nil); got != "void(void)" {
		t.Errorf("niladic rendering = %q", got)
	}
}
