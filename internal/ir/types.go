package ir

import "fmt"

// TypeKind classifies IR value types. Aggregates are opaque byte blobs
// addressed through pointers; the IR never loads a whole record into a
// register.
type TypeKind uint8

const (
	Void TypeKind = iota
	Int           // Bits is 1, 8, 16, 32, or 64
	Float         // Bits is 32 or 64
	Ptr
	Blob // in-memory aggregate: Size and Align are set, Bits is 0
)

// Type is a value type. It is a small comparable struct, passed by
// value everywhere.
type Type struct {
	Kind  TypeKind
	Bits  uint32
	Size  uint64 // Blob only
	Align uint64 // Blob only
}

var (
	VoidType = Type{Kind: Void}
	I1       = Type{Kind: Int, Bits: 1}
	I8       = Type{Kind: Int, Bits: 8}
	I16      = Type{Kind: Int, Bits: 16}
	I32      = Type{Kind: Int, Bits: 32}
	I64      = Type{Kind: Int, Bits: 64}
	F32      = Type{Kind: Float, Bits: 32}
	F64      = Type{Kind: Float, Bits: 64}
	PtrType  = Type{Kind: Ptr}
)

// BlobType describes an aggregate of the given layout.
func BlobType(size, align uint64) Type {
	return Type{Kind: Blob, Size: size, Align: align}
}

// ByteSize returns the in-memory size of a type.
func (t Type) ByteSize() uint64 {
	switch t.Kind {
	case Int:
		if t.Bits == 1 {
			return 1
		}
		return uint64(t.Bits) / 8
	case Float:
		return uint64(t.Bits) / 8
	case Ptr:
		return 8
	case Blob:
		return t.Size
	default:
		return 0
	}
}

// ByteAlign returns the alignment of a type.
func (t Type) ByteAlign() uint64 {
	if t.Kind == Blob {
		return t.Align
	}
	return t.ByteSize()
}

func (t Type) IsVoid() bool  { return t.Kind == Void }
func (t Type) IsInt() bool   { return t.Kind == Int }
func (t Type) IsFloat() bool { return t.Kind == Float }
func (t Type) IsPtr() bool   { return t.Kind == Ptr }

func (t Type) String() string {
	switch t.Kind {
	case Void:
		return "void"
	case Int:
		return fmt.Sprintf("i%d", t.Bits)
	case Float:
		if t.Bits == 64 {
			return "double"
		}
		return "float"
	case Ptr:
		return "ptr"
	case Blob:
		return fmt.Sprintf("[%d x i8]", t.Size)
	default:
		return "<invalid>"
	}
}
