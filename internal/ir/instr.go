package ir

// InstrKind enumerates instruction kinds.
type InstrKind uint8

const (
	InstrAlloca InstrKind = iota
	InstrLoad
	InstrStore
	InstrBin
	InstrCmp
	InstrCast
	InstrCall
	InstrGEP
	InstrMemCpy
)

// Instr is one non-terminator instruction. Kind selects which variant
// field is meaningful.
type Instr struct {
	Kind InstrKind

	Alloca AllocaInstr
	Load   LoadInstr
	Store  StoreInstr
	Bin    BinInstr
	Cmp    CmpInstr
	Cast   CastInstr
	Call   CallInstr
	GEP    GEPInstr
	MemCpy MemCpyInstr
}

// AllocaInstr reserves a stack slot.
type AllocaInstr struct {
	Dst   Value
	Size  uint64
	Align uint64
}

type LoadInstr struct {
	Dst   Value
	Ptr   Value
	Align uint64
}

type StoreInstr struct {
	Val   Value
	Ptr   Value
	Align uint64
}

// BinOp enumerates two-operand arithmetic. Signedness is baked into
// the op, matching LLVM's spelling.
type BinOp uint8

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpSDiv
	OpUDiv
	OpSRem
	OpURem
	OpAnd
	OpOr
	OpXor
	OpShl
	OpLShr
	OpAShr
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
)

var binOpNames = [...]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul",
	OpSDiv: "sdiv", OpUDiv: "udiv", OpSRem: "srem", OpURem: "urem",
	OpAnd: "and", OpOr: "or", OpXor: "xor",
	OpShl: "shl", OpLShr: "lshr", OpAShr: "ashr",
	OpFAdd: "fadd", OpFSub: "fsub", OpFMul: "fmul", OpFDiv: "fdiv",
}

func (op BinOp) String() string {
	if int(op) < len(binOpNames) {
		return binOpNames[op]
	}
	return "?"
}

type BinInstr struct {
	Dst  Value
	Op   BinOp
	L, R Value
}

// CmpPred enumerates comparison predicates; Float selects fcmp.
type CmpPred uint8

const (
	PredEQ CmpPred = iota
	PredNE
	PredSLT
	PredSLE
	PredSGT
	PredSGE
	PredULT
	PredULE
	PredUGT
	PredUGE
)

var intPredNames = [...]string{
	PredEQ: "eq", PredNE: "ne",
	PredSLT: "slt", PredSLE: "sle", PredSGT: "sgt", PredSGE: "sge",
	PredULT: "ult", PredULE: "ule", PredUGT: "ugt", PredUGE: "uge",
}

// fcmp predicates are ordered: a NaN operand makes the comparison
// false, matching C's semantics for everything except !=.
var floatPredNames = [...]string{
	PredEQ: "oeq", PredNE: "une",
	PredSLT: "olt", PredSLE: "ole", PredSGT: "ogt", PredSGE: "oge",
	PredULT: "olt", PredULE: "ole", PredUGT: "ogt", PredUGE: "oge",
}

func (p CmpPred) IntName() string {
	if int(p) < len(intPredNames) {
		return intPredNames[p]
	}
	return "?"
}

func (p CmpPred) FloatName() string {
	if int(p) < len(floatPredNames) {
		return floatPredNames[p]
	}
	return "?"
}

type CmpInstr struct {
	Dst   Value // always i1
	Pred  CmpPred
	Float bool
	L, R  Value
}

// CastOp enumerates value conversions, named after LLVM.
type CastOp uint8

const (
	CastTrunc CastOp = iota
	CastZExt
	CastSExt
	CastFPTrunc
	CastFPExt
	CastFPToSI
	CastFPToUI
	CastSIToFP
	CastUIToFP
	CastPtrToInt
	CastIntToPtr
)

var castOpNames = [...]string{
	CastTrunc: "trunc", CastZExt: "zext", CastSExt: "sext",
	CastFPTrunc: "fptrunc", CastFPExt: "fpext",
	CastFPToSI: "fptosi", CastFPToUI: "fptoui",
	CastSIToFP: "sitofp", CastUIToFP: "uitofp",
	CastPtrToInt: "ptrtoint", CastIntToPtr: "inttoptr",
}

func (op CastOp) String() string {
	if int(op) < len(castOpNames) {
		return castOpNames[op]
	}
	return "?"
}

type CastInstr struct {
	Dst Value
	Op  CastOp
	Val Value
}

// CallInstr: Dst is unset for void calls. Callee is a symbol name or a
// function pointer value. VarArgs carries the fixed signature needed
// to spell a variadic call site.
type CallInstr struct {
	Dst      Value
	Ret      Type
	Callee   Value
	Args     []Value
	Variadic bool
	FixedArg int // number of fixed parameters when Variadic
}

// GEPInstr computes Base + Index*Stride (Stride in bytes) as a
// pointer. Element strides come from the layout engine; the emitter
// spells it as a byte-wise getelementptr.
type GEPInstr struct {
	Dst    Value
	Base   Value
	Index  Value // integer element index; may be a constant
	Stride uint64
}

type MemCpyInstr struct {
	Dst   Value
	Src   Value
	Len   uint64
	Align uint64
}
