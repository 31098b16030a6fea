package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"minicc/internal/source"
)

// Builtins stores TypeIDs for the builtin types, interned once per
// compile so comparisons are cheap.
type Builtins struct {
	Invalid   TypeID
	Void      TypeID
	Bool      TypeID
	Char      TypeID
	SChar     TypeID
	UChar     TypeID
	Short     TypeID
	UShort    TypeID
	Int       TypeID
	UInt      TypeID
	Long      TypeID
	ULong     TypeID
	LongLong  TypeID
	ULongLong TypeID
	Float     TypeID
	Double    TypeID
}

// FnInfo is the signature side data of a function type.
type FnInfo struct {
	Ret      TypeID
	Params   []TypeID
	Variadic bool
}

// FieldInfo is one laid-out member of a record.
type FieldInfo struct {
	Name   source.StringID
	Type   TypeID
	Offset uint64
}

// RecordInfo is the side data of a struct or union type. Records are
// nominal: every definition gets its own info entry and so its own
// TypeID.
type RecordInfo struct {
	Name     source.StringID // NoStringID for anonymous records
	IsUnion  bool
	Fields   []FieldInfo
	Size     uint64
	Align    uint64
	Complete bool
}

// EnumInfo is the side data of an enum type. Enumerator constants
// live in the symbol table; the type itself behaves as int.
type EnumInfo struct {
	Name     source.StringID
	Complete bool
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Index 0 is the invalid type.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
	fns      []FnInfo
	fnIndex  map[string]uint32
	records  []RecordInfo
	enums    []EnumInfo
}

// NewInterner constructs an interner seeded with the builtin types.
func NewInterner() *Interner {
	in := &Interner{
		index:   make(map[Type]TypeID, 64),
		fnIndex: make(map[string]uint32, 16),
	}
	in.fns = append(in.fns, FnInfo{}) // reserve 0 as invalid sentinel
	in.records = append(in.records, RecordInfo{})
	in.enums = append(in.enums, EnumInfo{})

	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Char = in.Intern(MakeInt(IntChar))
	in.builtins.SChar = in.Intern(MakeInt(IntSChar))
	in.builtins.UChar = in.Intern(MakeInt(IntUChar))
	in.builtins.Short = in.Intern(MakeInt(IntShort))
	in.builtins.UShort = in.Intern(MakeInt(IntUShort))
	in.builtins.Int = in.Intern(MakeInt(IntInt))
	in.builtins.UInt = in.Intern(MakeInt(IntUInt))
	in.builtins.Long = in.Intern(MakeInt(IntLong))
	in.builtins.ULong = in.Intern(MakeInt(IntULong))
	in.builtins.LongLong = in.Intern(MakeInt(IntLongLong))
	in.builtins.ULongLong = in.Intern(MakeInt(IntULongLong))
	in.builtins.Float = in.Intern(MakeFloat(Width32))
	in.builtins.Double = in.Intern(MakeFloat(Width64))
	return in
}

// Builtins returns TypeIDs for the builtin types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid. Invalid IDs are compiler defects.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

// Pointer interns a pointer to elem.
func (in *Interner) Pointer(elem TypeID) TypeID {
	return in.Intern(MakePointer(elem))
}

// Qualify interns the const-qualified variant of id.
func (in *Interner) Qualify(id TypeID) TypeID {
	t, ok := in.Lookup(id)
	if !ok || t.Const {
		return id
	}
	t.Const = true
	return in.Intern(t)
}

// Unqualified strips a const qualifier, interning the bare type.
func (in *Interner) Unqualified(id TypeID) TypeID {
	t, ok := in.Lookup(id)
	if !ok || !t.Const {
		return id
	}
	t.Const = false
	return in.Intern(t)
}

// Func interns a function type. Identical signatures share one TypeID.
func (in *Interner) Func(ret TypeID, params []TypeID, variadic bool) TypeID {
	key := fnKey(ret, params, variadic)
	payload, ok := in.fnIndex[key]
	if !ok {
		p, err := safecast.Conv[uint32](len(in.fns))
		if err != nil {
			panic(fmt.Errorf("len(fns) overflow: %w", err))
		}
		payload = p
		in.fns = append(in.fns, FnInfo{
			Ret:      ret,
			Params:   append([]TypeID(nil), params...),
			Variadic: variadic,
		})
		in.fnIndex[key] = payload
	}
	return in.Intern(Type{Kind: KindFunc, Payload: payload})
}

func fnKey(ret TypeID, params []TypeID, variadic bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d(", ret)
	for i, p := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", p)
	}
	if variadic {
		b.WriteString(",...")
	}
	b.WriteByte(')')
	return b.String()
}

// FnInfo returns the signature of a function type.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindFunc || t.Payload == 0 || int(t.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[t.Payload], true
}

// NewRecord allocates a fresh, initially incomplete record type.
func (in *Interner) NewRecord(name source.StringID, isUnion bool) TypeID {
	payload, err := safecast.Conv[uint32](len(in.records))
	if err != nil {
		panic(fmt.Errorf("len(records) overflow: %w", err))
	}
	in.records = append(in.records, RecordInfo{Name: name, IsUnion: isUnion})
	kind := KindStruct
	if isUnion {
		kind = KindUnion
	}
	return in.internRaw(Type{Kind: kind, Payload: payload})
}

// RecordInfo returns the side data of a struct or union type.
func (in *Interner) RecordInfo(id TypeID) (*RecordInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || (t.Kind != KindStruct && t.Kind != KindUnion) {
		return nil, false
	}
	if t.Payload == 0 || int(t.Payload) >= len(in.records) {
		return nil, false
	}
	return &in.records[t.Payload], true
}

// CompleteRecord lays out the members and marks the record complete.
// It reports false when a member has no known size.
func (in *Interner) CompleteRecord(id TypeID, fields []FieldInfo) bool {
	info, ok := in.RecordInfo(id)
	if !ok {
		return false
	}
	var size, align uint64
	align = 1
	for i := range fields {
		fSize, fAlign, ok := in.SizeAlign(fields[i].Type)
		if !ok {
			return false
		}
		if fAlign > align {
			align = fAlign
		}
		if info.IsUnion {
			fields[i].Offset = 0
			if fSize > size {
				size = fSize
			}
		} else {
			size = roundUp(size, fAlign)
			fields[i].Offset = size
			size += fSize
		}
	}
	size = roundUp(size, align)
	if size == 0 {
		size = 1 // empty records still occupy storage
	}
	info.Fields = append([]FieldInfo(nil), fields...)
	info.Size = size
	info.Align = align
	info.Complete = true
	return true
}

// NewEnum allocates a fresh enum type.
func (in *Interner) NewEnum(name source.StringID) TypeID {
	payload, err := safecast.Conv[uint32](len(in.enums))
	if err != nil {
		panic(fmt.Errorf("len(enums) overflow: %w", err))
	}
	in.enums = append(in.enums, EnumInfo{Name: name})
	return in.internRaw(Type{Kind: KindEnum, Payload: payload})
}

// EnumInfo returns the side data of an enum type.
func (in *Interner) EnumInfo(id TypeID) (*EnumInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindEnum {
		return nil, false
	}
	if t.Payload == 0 || int(t.Payload) >= len(in.enums) {
		return nil, false
	}
	return &in.enums[t.Payload], true
}

// CompleteEnum marks an enum type as defined.
func (in *Interner) CompleteEnum(id TypeID) {
	if info, ok := in.EnumInfo(id); ok {
		info.Complete = true
	}
}

func roundUp(n, align uint64) uint64 {
	if align == 0 {
		return n
	}
	return (n + align - 1) / align * align
}

// SizeAlign returns the size and alignment of a type in bytes; ok is
// false for incomplete or sizeless types (void, functions, incomplete
// arrays and records).
func (in *Interner) SizeAlign(id TypeID) (size, align uint64, ok bool) {
	t, found := in.Lookup(id)
	if !found {
		return 0, 0, false
	}
	switch t.Kind {
	case KindBool:
		return 1, 1, true
	case KindInt:
		n := uint64(t.Int.BitWidth()) / 8
		return n, n, true
	case KindFloat:
		n := uint64(t.Width) / 8
		return n, n, true
	case KindPointer:
		n := uint64(PointerWidth) / 8
		return n, n, true
	case KindEnum:
		return 4, 4, true
	case KindArray:
		if t.Incomplete {
			return 0, 0, false
		}
		elemSize, elemAlign, ok := in.SizeAlign(t.Elem)
		if !ok {
			return 0, 0, false
		}
		return elemSize * uint64(t.Count), elemAlign, true
	case KindStruct, KindUnion:
		info, ok := in.RecordInfo(id)
		if !ok || !info.Complete {
			return 0, 0, false
		}
		return info.Size, info.Align, true
	default:
		return 0, 0, false
	}
}
