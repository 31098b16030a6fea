// Package types models the semantic type system: the checked meaning
// of type syntax after typedef resolution. Types are interned so equal
// types share one TypeID and comparison is integer equality. Struct,
// union, enum, and function types carry their details in side tables
// referenced through Payload.
package types

// TypeID identifies an interned type. NoTypeID doubles as the invalid
// type, which expressions take after an error so checking can continue
// without cascading.
type TypeID uint32

const NoTypeID TypeID = 0

func (id TypeID) IsValid() bool { return id != NoTypeID }

type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBool
	KindInt
	KindFloat
	KindPointer
	KindArray
	KindFunc
	KindStruct
	KindUnion
	KindEnum
)

// IntFlavor distinguishes the C integer types. Plain char is its own
// type even though it is signed on this target.
type IntFlavor uint8

const (
	IntNone IntFlavor = iota
	IntChar
	IntSChar
	IntUChar
	IntShort
	IntUShort
	IntInt
	IntUInt
	IntLong
	IntULong
	IntLongLong
	IntULongLong
)

// Width is a size in bits.
type Width uint8

const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

// PointerWidth is the pointer size of the x86_64 target.
const PointerWidth Width = Width64

// Type is the structural descriptor handed to Intern. All fields are
// comparable, so the descriptor itself is the interning key.
type Type struct {
	Kind  Kind
	Int   IntFlavor // KindInt only
	Width Width     // KindFloat only: 32 or 64
	Elem  TypeID    // pointer target / array element
	Count uint32    // array length
	// Incomplete marks arrays declared without a size.
	Incomplete bool
	Const      bool
	// Payload indexes the interner's side table for func, struct,
	// union, and enum types.
	Payload uint32
}

// flavorWidths maps integer flavors to bit widths on the LP64 target:
// char 8, short 16, int 32, long and long long 64.
var flavorWidths = [...]Width{
	IntChar:      Width8,
	IntSChar:     Width8,
	IntUChar:     Width8,
	IntShort:     Width16,
	IntUShort:    Width16,
	IntInt:       Width32,
	IntUInt:      Width32,
	IntLong:      Width64,
	IntULong:     Width64,
	IntLongLong:  Width64,
	IntULongLong: Width64,
}

func (f IntFlavor) BitWidth() Width {
	if f == IntNone || int(f) >= len(flavorWidths) {
		return 0
	}
	return flavorWidths[f]
}

func (f IntFlavor) Signed() bool {
	switch f {
	case IntChar, IntSChar, IntShort, IntInt, IntLong, IntLongLong:
		return true
	default:
		return false
	}
}

// Rank orders integer flavors for the usual arithmetic conversions.
func (f IntFlavor) Rank() int {
	switch f {
	case IntChar, IntSChar, IntUChar:
		return 1
	case IntShort, IntUShort:
		return 2
	case IntInt, IntUInt:
		return 3
	case IntLong, IntULong:
		return 4
	case IntLongLong, IntULongLong:
		return 5
	default:
		return 0
	}
}

// Unsigned returns the unsigned flavor of the same rank.
func (f IntFlavor) Unsigned() IntFlavor {
	switch f {
	case IntChar, IntSChar:
		return IntUChar
	case IntShort:
		return IntUShort
	case IntInt:
		return IntUInt
	case IntLong:
		return IntULong
	case IntLongLong:
		return IntULongLong
	default:
		return f
	}
}

// MakeInt builds an integer type descriptor.
func MakeInt(f IntFlavor) Type {
	return Type{Kind: KindInt, Int: f}
}

// MakeFloat builds a floating type descriptor; w is 32 or 64.
func MakeFloat(w Width) Type {
	return Type{Kind: KindFloat, Width: w}
}

// MakePointer builds a pointer type descriptor.
func MakePointer(elem TypeID) Type {
	return Type{Kind: KindPointer, Elem: elem}
}

// MakeArray builds an array type descriptor with a known length.
func MakeArray(elem TypeID, count uint32) Type {
	return Type{Kind: KindArray, Elem: elem, Count: count}
}

// MakeIncompleteArray builds an array type of unknown length.
func MakeIncompleteArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem, Incomplete: true}
}
