package types

// Predicates and the standard conversions. These operate on the
// unqualified type; qualifiers never change how a value converts.

func (in *Interner) kindOf(id TypeID) Kind {
	t, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return t.Kind
}

func (in *Interner) IsVoid(id TypeID) bool    { return in.kindOf(id) == KindVoid }
func (in *Interner) IsBool(id TypeID) bool    { return in.kindOf(id) == KindBool }
func (in *Interner) IsPointer(id TypeID) bool { return in.kindOf(id) == KindPointer }
func (in *Interner) IsArray(id TypeID) bool   { return in.kindOf(id) == KindArray }
func (in *Interner) IsFunc(id TypeID) bool    { return in.kindOf(id) == KindFunc }
func (in *Interner) IsRecord(id TypeID) bool {
	k := in.kindOf(id)
	return k == KindStruct || k == KindUnion
}

// IsInteger includes _Bool and enums, which behave as integers in
// arithmetic and conversions.
func (in *Interner) IsInteger(id TypeID) bool {
	switch in.kindOf(id) {
	case KindInt, KindBool, KindEnum:
		return true
	default:
		return false
	}
}

func (in *Interner) IsFloating(id TypeID) bool { return in.kindOf(id) == KindFloat }

func (in *Interner) IsArithmetic(id TypeID) bool {
	return in.IsInteger(id) || in.IsFloating(id)
}

// IsScalar reports whether a value can be tested for truth.
func (in *Interner) IsScalar(id TypeID) bool {
	return in.IsArithmetic(id) || in.IsPointer(id)
}

// IsSigned reports whether an integer type is signed; enums and _Bool
// count as int-like.
func (in *Interner) IsSigned(id TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch t.Kind {
	case KindInt:
		return t.Int.Signed()
	case KindEnum:
		return true
	default:
		return false
	}
}

// Elem returns the pointee or element type.
func (in *Interner) Elem(id TypeID) (TypeID, bool) {
	t, ok := in.Lookup(id)
	if !ok || (t.Kind != KindPointer && t.Kind != KindArray) {
		return NoTypeID, false
	}
	return t.Elem, true
}

// Decay applies the lvalue conversions used everywhere except sizeof
// and &: arrays become pointers to their element, functions become
// pointers to themselves, and qualifiers drop off the value.
func (in *Interner) Decay(id TypeID) TypeID {
	t, ok := in.Lookup(id)
	if !ok {
		return id
	}
	switch t.Kind {
	case KindArray:
		return in.Pointer(t.Elem)
	case KindFunc:
		return in.Pointer(id)
	default:
		return in.Unqualified(id)
	}
}

// Promote applies the integer promotions: _Bool, char, short, and
// enums become int. Other types are unchanged.
func (in *Interner) Promote(id TypeID) TypeID {
	t, ok := in.Lookup(id)
	if !ok {
		return id
	}
	switch t.Kind {
	case KindBool, KindEnum:
		return in.builtins.Int
	case KindInt:
		// Every sub-int flavor fits in int on this target, so the
		// promoted type is always signed int.
		if t.Int.Rank() < IntInt.Rank() {
			return in.builtins.Int
		}
		return in.Unqualified(id)
	default:
		return id
	}
}

// UsualArithmetic computes the common type of a binary arithmetic
// expression per the usual arithmetic conversions; ok is false when
// either side is not arithmetic.
func (in *Interner) UsualArithmetic(a, b TypeID) (TypeID, bool) {
	if !in.IsArithmetic(a) || !in.IsArithmetic(b) {
		return NoTypeID, false
	}
	// Floating beats integer; wider floating beats narrower.
	if in.IsFloating(a) || in.IsFloating(b) {
		ta, _ := in.Lookup(a)
		tb, _ := in.Lookup(b)
		w := Width32
		if (ta.Kind == KindFloat && ta.Width == Width64) || (tb.Kind == KindFloat && tb.Width == Width64) {
			w = Width64
		}
		return in.Intern(MakeFloat(w)), true
	}

	a = in.Promote(a)
	b = in.Promote(b)
	if a == b {
		return a, true
	}
	ta := in.MustLookup(a)
	tb := in.MustLookup(b)

	fa, fb := ta.Int, tb.Int
	switch {
	case fa.Signed() == fb.Signed():
		if fa.Rank() >= fb.Rank() {
			return a, true
		}
		return b, true
	case !fa.Signed() && fa.Rank() >= fb.Rank():
		return a, true
	case !fb.Signed() && fb.Rank() >= fa.Rank():
		return b, true
	case fa.Signed() && fa.BitWidth() > fb.BitWidth():
		// The signed type can represent every value of the narrower
		// unsigned one.
		return a, true
	case fb.Signed() && fb.BitWidth() > fa.BitWidth():
		return b, true
	case fa.Signed():
		return in.Intern(MakeInt(fa.Unsigned())), true
	default:
		return in.Intern(MakeInt(fb.Unsigned())), true
	}
}

// Compatible reports whether two types are the same type for
// redeclaration purposes, ignoring top-level qualifiers.
func (in *Interner) Compatible(a, b TypeID) bool {
	return in.Unqualified(a) == in.Unqualified(b)
}
