package ir

import (
	"fmt"
	"math"
	"strconv"
)

// ValueKind distinguishes how a value is referenced in the output.
type ValueKind uint8

const (
	ValNone   ValueKind = iota
	ValTemp             // %tN, produced by an instruction
	ValParam            // %argN, a function parameter
	ValConstI           // integer constant
	ValConstF           // floating constant
	ValGlobal           // @name, a global or function address
	ValNullPtr
)

// Value is an operand: a temp, a parameter, a constant, or a symbol
// address. Values are small and copied freely.
type Value struct {
	Kind  ValueKind
	Type  Type
	ID    uint32 // ValTemp, ValParam
	Int   int64  // ValConstI
	Float float64
	Sym   string // ValGlobal
}

func (v Value) IsValid() bool { return v.Kind != ValNone }

// ConstInt builds an integer constant of the given type.
func ConstInt(t Type, v int64) Value {
	return Value{Kind: ValConstI, Type: t, Int: v}
}

// ConstFloat builds a floating constant of the given type.
func ConstFloat(t Type, v float64) Value {
	return Value{Kind: ValConstF, Type: t, Float: v}
}

// NullPtr is the null pointer constant.
func NullPtr() Value {
	return Value{Kind: ValNullPtr, Type: PtrType}
}

// GlobalRef is the address of a named global or function.
func GlobalRef(name string) Value {
	return Value{Kind: ValGlobal, Type: PtrType, Sym: name}
}

// Ref renders the operand the way LLVM spells it.
func (v Value) Ref() string {
	switch v.Kind {
	case ValTemp:
		return fmt.Sprintf("%%t%d", v.ID)
	case ValParam:
		return fmt.Sprintf("%%arg%d", v.ID)
	case ValConstI:
		if v.Type.Kind == Int && v.Type.Bits == 1 {
			if v.Int != 0 {
				return "true"
			}
			return "false"
		}
		return strconv.FormatInt(v.Int, 10)
	case ValConstF:
		return formatFloat(v.Float, v.Type)
	case ValGlobal:
		return "@" + v.Sym
	case ValNullPtr:
		return "null"
	default:
		return "<none>"
	}
}

// formatFloat renders floating constants in the hexadecimal form LLVM
// accepts unambiguously. Floats are printed as the double whose
// truncation they are, which is what the textual format requires.
func formatFloat(f float64, t Type) string {
	if t.Bits == 32 {
		f = float64(float32(f))
	}
	return fmt.Sprintf("0x%016X", math.Float64bits(f))
}
