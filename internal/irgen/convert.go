package irgen

import (
	"minicc/internal/ir"
	"minicc/internal/types"
)

// convert adapts a value from one semantic type to another, emitting
// whatever cast instruction the pair requires. from is decayed first,
// so callers can pass undecayed expression types.
func (g *Generator) convert(v ir.Value, from, to types.TypeID) ir.Value {
	ti := g.info.Types
	from = ti.Decay(from)
	to = ti.Unqualified(to)
	if from == to {
		return v
	}
	tt := g.lowerType(to)
	switch {
	case ti.IsBool(to):
		// Conversion to _Bool is a truth test, not a truncation:
		// (_Bool)256 is 1.
		b := g.toBool(v, from)
		return g.build.EmitCast(ir.CastZExt, b, ir.I8)
	case ti.IsInteger(from) && ti.IsInteger(to):
		// Constants re-type without an instruction.
		if v.Kind == ir.ValConstI {
			return ir.ConstInt(tt, g.truncConst(v.Int, to))
		}
		if v.Type.Bits == tt.Bits {
			return v
		}
		if tt.Bits < v.Type.Bits {
			return g.build.EmitCast(ir.CastTrunc, v, tt)
		}
		if ti.IsSigned(from) {
			return g.build.EmitCast(ir.CastSExt, v, tt)
		}
		return g.build.EmitCast(ir.CastZExt, v, tt)
	case ti.IsInteger(from) && ti.IsFloating(to):
		if ti.IsSigned(from) {
			return g.build.EmitCast(ir.CastSIToFP, v, tt)
		}
		return g.build.EmitCast(ir.CastUIToFP, v, tt)
	case ti.IsFloating(from) && ti.IsInteger(to):
		if ti.IsSigned(to) {
			return g.build.EmitCast(ir.CastFPToSI, v, tt)
		}
		return g.build.EmitCast(ir.CastFPToUI, v, tt)
	case ti.IsFloating(from) && ti.IsFloating(to):
		if v.Type.Bits == tt.Bits {
			return v
		}
		if tt.Bits < v.Type.Bits {
			return g.build.EmitCast(ir.CastFPTrunc, v, tt)
		}
		return g.build.EmitCast(ir.CastFPExt, v, tt)
	case ti.IsPointer(from) && ti.IsPointer(to):
		return v
	case ti.IsInteger(from) && ti.IsPointer(to):
		// Almost always a null pointer constant; anything else came
		// through an explicit cast.
		if v.Kind == ir.ValConstI && v.Int == 0 {
			return ir.NullPtr()
		}
		return g.build.EmitCast(ir.CastIntToPtr, v, ir.PtrType)
	case ti.IsPointer(from) && ti.IsInteger(to):
		return g.build.EmitCast(ir.CastPtrToInt, v, tt)
	default:
		return v
	}
}

// toBool tests a scalar for truth, yielding an i1. NaN compares unequal
// to zero, so floating truth uses the unordered predicate.
func (g *Generator) toBool(v ir.Value, t types.TypeID) ir.Value {
	ti := g.info.Types
	t = ti.Decay(t)
	switch {
	case ti.IsFloating(t):
		return g.build.EmitCmp(ir.PredNE, true, v, ir.ConstFloat(v.Type, 0))
	case ti.IsPointer(t):
		return g.build.EmitCmp(ir.PredNE, false, v, ir.NullPtr())
	default:
		return g.build.EmitCmp(ir.PredNE, false, v, ir.ConstInt(v.Type, 0))
	}
}
