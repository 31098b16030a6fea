package irgen

import (
	"minicc/internal/ir"
	"minicc/internal/types"
)

// lowerType maps a semantic type to its IR value type. Arrays and
// records lower to blobs sized by the layout engine; they are only ever
// addressed, never loaded whole.
func (g *Generator) lowerType(id types.TypeID) ir.Type {
	ti := g.info.Types
	bare := ti.Unqualified(id)
	t, ok := ti.Lookup(bare)
	if !ok {
		return ir.VoidType
	}
	switch t.Kind {
	case types.KindVoid:
		return ir.VoidType
	case types.KindBool:
		return ir.I8
	case types.KindInt:
		switch t.Int.BitWidth() {
		case types.Width8:
			return ir.I8
		case types.Width16:
			return ir.I16
		case types.Width32:
			return ir.I32
		default:
			return ir.I64
		}
	case types.KindEnum:
		return ir.I32
	case types.KindFloat:
		if t.Width == types.Width32 {
			return ir.F32
		}
		return ir.F64
	case types.KindPointer, types.KindFunc:
		return ir.PtrType
	case types.KindArray, types.KindStruct, types.KindUnion:
		size, align, sized := ti.SizeAlign(bare)
		if !sized {
			return ir.PtrType
		}
		return ir.BlobType(size, align)
	default:
		return ir.VoidType
	}
}

// sizeAlignOf returns a type's storage size and alignment. The checker
// already rejected incomplete object types; the fallback only guards
// against defects.
func (g *Generator) sizeAlignOf(id types.TypeID) (uint64, uint64) {
	size, align, ok := g.info.Types.SizeAlign(g.info.Types.Unqualified(id))
	if !ok {
		return 1, 1
	}
	return size, align
}

func (g *Generator) isRecord(id types.TypeID) bool {
	return g.info.Types.IsRecord(g.info.Types.Unqualified(id))
}

// loadOrAddr turns an address into the expression's value. Arrays and
// records evaluate to their address; everything else loads.
func (g *Generator) loadOrAddr(addr ir.Value, t types.TypeID) ir.Value {
	ti := g.info.Types
	bare := ti.Unqualified(t)
	if ti.IsArray(bare) || ti.IsRecord(bare) {
		return addr
	}
	return g.build.EmitLoad(g.lowerType(bare), addr)
}

// truncConst wraps a folded constant to the width and signedness of its
// storage type, so emitted integer literals always fit their IR type.
func (g *Generator) truncConst(v int64, t types.TypeID) int64 {
	ti := g.info.Types
	desc, ok := ti.Lookup(ti.Unqualified(t))
	if !ok {
		return v
	}
	var w uint
	var signed bool
	switch desc.Kind {
	case types.KindBool:
		if v != 0 {
			return 1
		}
		return 0
	case types.KindEnum:
		w, signed = 32, true
	case types.KindInt:
		w, signed = uint(desc.Int.BitWidth()), desc.Int.Signed()
	default:
		return v
	}
	if w >= 64 {
		return v
	}
	masked := uint64(v) & (1<<w - 1)
	if signed && masked&(1<<(w-1)) != 0 {
		masked |= ^uint64(0) << w
	}
	return int64(masked)
}
