package ast

import (
	"minicc/internal/source"
)

// TypeKind classifies type syntax nodes. These are the spellings the
// parser saw; resolution to semantic types happens later.
type TypeKind uint8

const (
	TypePrim TypeKind = iota
	TypeNamed
	TypePointer
	TypeArray
	TypeFunc
	TypeRecord
	TypeEnum
)

// PrimKind enumerates the builtin arithmetic types plus void, after
// the specifier combination ("unsigned long long int") is resolved.
type PrimKind uint8

const (
	PrimVoid PrimKind = iota
	PrimBool
	PrimChar
	PrimSChar
	PrimUChar
	PrimShort
	PrimUShort
	PrimInt
	PrimUInt
	PrimLong
	PrimULong
	PrimLongLong
	PrimULongLong
	PrimFloat
	PrimDouble
	PrimLongDouble
)

var primNames = [...]string{
	PrimVoid:       "void",
	PrimBool:       "_Bool",
	PrimChar:       "char",
	PrimSChar:      "signed char",
	PrimUChar:      "unsigned char",
	PrimShort:      "short",
	PrimUShort:     "unsigned short",
	PrimInt:        "int",
	PrimUInt:       "unsigned int",
	PrimLong:       "long",
	PrimULong:      "unsigned long",
	PrimLongLong:   "long long",
	PrimULongLong:  "unsigned long long",
	PrimFloat:      "float",
	PrimDouble:     "double",
	PrimLongDouble: "long double",
}

func (p PrimKind) String() string {
	if int(p) < len(primNames) {
		return primNames[p]
	}
	return "?"
}

// TypeSyn is a type syntax node header. Payload indexes the arena that
// matches Kind.
type TypeSyn struct {
	Kind    TypeKind
	Span    source.Span
	Payload uint32
}

type TypePrimData struct {
	Prim  PrimKind
	Const bool
}

// TypeNamedData references a typedef name.
type TypeNamedData struct {
	Name  source.StringID
	Const bool
}

type TypePointerData struct {
	Elem  TypeID
	Const bool
}

// TypeArrayData: Size is NoExprID for an incomplete array "[]".
type TypeArrayData struct {
	Elem TypeID
	Size ExprID
}

type TypeFuncData struct {
	Ret      TypeID
	Params   []ParamID
	Variadic bool
}

// TypeRecordData covers struct and union spellings. HasBody is false
// for a bare tag reference such as "struct point".
type TypeRecordData struct {
	IsUnion bool
	Name    source.StringID // NoStringID for anonymous records
	Fields  []FieldID
	HasBody bool
	Const   bool
}

type TypeEnumData struct {
	Name        source.StringID
	Enumerators []EnumeratorID
	HasBody     bool
	Const       bool
}

// Field is a struct or union member.
type Field struct {
	Name source.StringID
	Type TypeID
	Span source.Span
}

// Enumerator: Value is NoExprID when no "= expr" was written.
type Enumerator struct {
	Name  source.StringID
	Value ExprID
	Span  source.Span
}

// Types manages allocation of type syntax nodes.
type Types struct {
	Arena       *Arena[TypeSyn]
	Prims       *Arena[TypePrimData]
	Named       *Arena[TypeNamedData]
	Pointers    *Arena[TypePointerData]
	Arrays      *Arena[TypeArrayData]
	Funcs       *Arena[TypeFuncData]
	Records     *Arena[TypeRecordData]
	Enums       *Arena[TypeEnumData]
	Fields      *Arena[Field]
	Enumerators *Arena[Enumerator]
}

func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Types{
		Arena:       NewArena[TypeSyn](capHint),
		Prims:       NewArena[TypePrimData](capHint),
		Named:       NewArena[TypeNamedData](capHint),
		Pointers:    NewArena[TypePointerData](capHint),
		Arrays:      NewArena[TypeArrayData](capHint),
		Funcs:       NewArena[TypeFuncData](capHint),
		Records:     NewArena[TypeRecordData](capHint),
		Enums:       NewArena[TypeEnumData](capHint),
		Fields:      NewArena[Field](capHint),
		Enumerators: NewArena[Enumerator](capHint),
	}
}

func (t *Types) new(kind TypeKind, span source.Span, payload uint32) TypeID {
	return TypeID(t.Arena.Allocate(TypeSyn{Kind: kind, Span: span, Payload: payload}))
}

func (t *Types) Get(id TypeID) *TypeSyn {
	return t.Arena.Get(uint32(id))
}

func (t *Types) NewPrim(span source.Span, prim PrimKind, isConst bool) TypeID {
	payload := t.Prims.Allocate(TypePrimData{Prim: prim, Const: isConst})
	return t.new(TypePrim, span, payload)
}

func (t *Types) Prim(id TypeID) (*TypePrimData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypePrim {
		return nil, false
	}
	return t.Prims.Get(n.Payload), true
}

func (t *Types) NewNamed(span source.Span, name source.StringID, isConst bool) TypeID {
	payload := t.Named.Allocate(TypeNamedData{Name: name, Const: isConst})
	return t.new(TypeNamed, span, payload)
}

func (t *Types) NamedType(id TypeID) (*TypeNamedData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeNamed {
		return nil, false
	}
	return t.Named.Get(n.Payload), true
}

func (t *Types) NewPointer(span source.Span, elem TypeID, isConst bool) TypeID {
	payload := t.Pointers.Allocate(TypePointerData{Elem: elem, Const: isConst})
	return t.new(TypePointer, span, payload)
}

func (t *Types) Pointer(id TypeID) (*TypePointerData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypePointer {
		return nil, false
	}
	return t.Pointers.Get(n.Payload), true
}

func (t *Types) NewArray(span source.Span, elem TypeID, size ExprID) TypeID {
	payload := t.Arrays.Allocate(TypeArrayData{Elem: elem, Size: size})
	return t.new(TypeArray, span, payload)
}

func (t *Types) Array(id TypeID) (*TypeArrayData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeArray {
		return nil, false
	}
	return t.Arrays.Get(n.Payload), true
}

func (t *Types) NewFunc(span source.Span, ret TypeID, params []ParamID, variadic bool) TypeID {
	payload := t.Funcs.Allocate(TypeFuncData{
		Ret:      ret,
		Params:   append([]ParamID(nil), params...),
		Variadic: variadic,
	})
	return t.new(TypeFunc, span, payload)
}

func (t *Types) Func(id TypeID) (*TypeFuncData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeFunc {
		return nil, false
	}
	return t.Funcs.Get(n.Payload), true
}

func (t *Types) NewRecord(span source.Span, isUnion bool, name source.StringID, fields []FieldID, hasBody, isConst bool) TypeID {
	payload := t.Records.Allocate(TypeRecordData{
		IsUnion: isUnion,
		Name:    name,
		Fields:  append([]FieldID(nil), fields...),
		HasBody: hasBody,
		Const:   isConst,
	})
	return t.new(TypeRecord, span, payload)
}

func (t *Types) Record(id TypeID) (*TypeRecordData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeRecord {
		return nil, false
	}
	return t.Records.Get(n.Payload), true
}

func (t *Types) NewEnum(span source.Span, name source.StringID, enumerators []EnumeratorID, hasBody, isConst bool) TypeID {
	payload := t.Enums.Allocate(TypeEnumData{
		Name:        name,
		Enumerators: append([]EnumeratorID(nil), enumerators...),
		HasBody:     hasBody,
		Const:       isConst,
	})
	return t.new(TypeEnum, span, payload)
}

func (t *Types) Enum(id TypeID) (*TypeEnumData, bool) {
	n := t.Get(id)
	if n == nil || n.Kind != TypeEnum {
		return nil, false
	}
	return t.Enums.Get(n.Payload), true
}

func (t *Types) NewField(span source.Span, name source.StringID, typ TypeID) FieldID {
	return FieldID(t.Fields.Allocate(Field{Name: name, Type: typ, Span: span}))
}

func (t *Types) Field(id FieldID) *Field {
	return t.Fields.Get(uint32(id))
}

func (t *Types) NewEnumerator(span source.Span, name source.StringID, value ExprID) EnumeratorID {
	return EnumeratorID(t.Enumerators.Allocate(Enumerator{Name: name, Value: value, Span: span}))
}

func (t *Types) Enumerator(id EnumeratorID) *Enumerator {
	return t.Enumerators.Get(uint32(id))
}
