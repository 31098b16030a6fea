package ir

import "fmt"

// Builder appends instructions to a current block of a current
// function. It is per-compilation state, created fresh each time.
type Builder struct {
	Mod *Module

	fn  *Func
	cur *Block
}

func NewBuilder(mod *Module) *Builder {
	return &Builder{Mod: mod}
}

// NewFunction starts a function definition and positions the builder
// at its fresh entry block.
func (b *Builder) NewFunction(name string, ret Type, params []Param, variadic bool) *Func {
	f := &Func{Name: name, Ret: ret, Params: params, Variadic: variadic}
	b.Mod.Funcs = append(b.Mod.Funcs, f)
	b.fn = f
	entry := b.NewBlock("entry")
	b.SetBlock(entry)
	return f
}

// Func returns the function under construction.
func (b *Builder) Func() *Func { return b.fn }

// NewBlock appends a block to the current function without moving the
// insertion point.
func (b *Builder) NewBlock(label string) BlockID {
	id := BlockID(len(b.fn.Blocks))
	if id > 0 {
		label = fmt.Sprintf("%s%d", label, id)
	}
	b.fn.Blocks = append(b.fn.Blocks, &Block{ID: id, Label: label})
	return id
}

// SetBlock moves the insertion point.
func (b *Builder) SetBlock(id BlockID) {
	b.cur = b.fn.Block(id)
}

// CurrentBlock returns the insertion point.
func (b *Builder) CurrentBlock() BlockID { return b.cur.ID }

// Terminated reports whether the insertion block is already closed;
// emitting into a closed block is a generator defect, so callers
// branch around it instead.
func (b *Builder) Terminated() bool { return b.cur.Terminated() }

func (b *Builder) temp(t Type) Value {
	b.fn.nextTemp++
	return Value{Kind: ValTemp, Type: t, ID: b.fn.nextTemp}
}

// ParamValue references the i-th parameter of the current function.
func (b *Builder) ParamValue(i int) Value {
	return Value{Kind: ValParam, Type: b.fn.Params[i].Type, ID: uint32(i)}
}

func (b *Builder) push(in Instr) {
	if b.cur.Terminated() {
		panic("ir: instruction after terminator")
	}
	b.cur.Instrs = append(b.cur.Instrs, in)
}

// EmitAlloca reserves size bytes of stack and yields the slot address.
func (b *Builder) EmitAlloca(size, align uint64) Value {
	dst := b.temp(PtrType)
	b.push(Instr{Kind: InstrAlloca, Alloca: AllocaInstr{Dst: dst, Size: size, Align: align}})
	return dst
}

// EmitAllocaEntry places a slot in the entry block regardless of the
// insertion point. Slots reused across expressions must not sit inside
// loop bodies, where every pass would grow the stack.
func (b *Builder) EmitAllocaEntry(size, align uint64) Value {
	dst := b.temp(PtrType)
	in := Instr{Kind: InstrAlloca, Alloca: AllocaInstr{Dst: dst, Size: size, Align: align}}
	entry := b.fn.Blocks[0]
	entry.Instrs = append(entry.Instrs, in)
	return dst
}

func (b *Builder) EmitLoad(t Type, ptr Value) Value {
	dst := b.temp(t)
	b.push(Instr{Kind: InstrLoad, Load: LoadInstr{Dst: dst, Ptr: ptr, Align: t.ByteAlign()}})
	return dst
}

func (b *Builder) EmitStore(val, ptr Value) {
	b.push(Instr{Kind: InstrStore, Store: StoreInstr{Val: val, Ptr: ptr, Align: val.Type.ByteAlign()}})
}

func (b *Builder) EmitBin(op BinOp, l, r Value) Value {
	dst := b.temp(l.Type)
	b.push(Instr{Kind: InstrBin, Bin: BinInstr{Dst: dst, Op: op, L: l, R: r}})
	return dst
}

func (b *Builder) EmitCmp(pred CmpPred, isFloat bool, l, r Value) Value {
	dst := b.temp(I1)
	b.push(Instr{Kind: InstrCmp, Cmp: CmpInstr{Dst: dst, Pred: pred, Float: isFloat, L: l, R: r}})
	return dst
}

func (b *Builder) EmitCast(op CastOp, val Value, to Type) Value {
	dst := b.temp(to)
	b.push(Instr{Kind: InstrCast, Cast: CastInstr{Dst: dst, Op: op, Val: val}})
	return dst
}

// EmitCall produces a call; the result value is invalid when ret is void.
func (b *Builder) EmitCall(callee Value, ret Type, args []Value, variadic bool, fixedArgs int) Value {
	in := Instr{Kind: InstrCall, Call: CallInstr{
		Ret: ret, Callee: callee, Args: args,
		Variadic: variadic, FixedArg: fixedArgs,
	}}
	var dst Value
	if !ret.IsVoid() {
		dst = b.temp(ret)
		in.Call.Dst = dst
	}
	b.push(in)
	return dst
}

// EmitGEP yields base advanced by index elements of stride bytes.
func (b *Builder) EmitGEP(base, index Value, stride uint64) Value {
	dst := b.temp(PtrType)
	b.push(Instr{Kind: InstrGEP, GEP: GEPInstr{Dst: dst, Base: base, Index: index, Stride: stride}})
	return dst
}

func (b *Builder) EmitMemCpy(dst, src Value, length, align uint64) {
	b.push(Instr{Kind: InstrMemCpy, MemCpy: MemCpyInstr{Dst: dst, Src: src, Len: length, Align: align}})
}

func (b *Builder) terminate(t Terminator) {
	if b.cur.Terminated() {
		panic("ir: block terminated twice")
	}
	b.cur.Term = t
}

func (b *Builder) Ret(v Value) {
	b.terminate(Terminator{Kind: TermRet, Ret: RetTerm{HasValue: true, Value: v}})
}

func (b *Builder) RetVoid() {
	b.terminate(Terminator{Kind: TermRet})
}

func (b *Builder) Br(target BlockID) {
	b.terminate(Terminator{Kind: TermBr, Br: BrTerm{Target: target}})
}

func (b *Builder) CondBr(cond Value, then, els BlockID) {
	b.terminate(Terminator{Kind: TermCondBr, CondBr: CondBrTerm{Cond: cond, Then: then, Else: els}})
}

func (b *Builder) Switch(v Value, def BlockID, cases []SwitchCase) {
	b.terminate(Terminator{Kind: TermSwitch, Switch: SwitchTerm{Value: v, Default: def, Cases: cases}})
}

func (b *Builder) Unreachable() {
	b.terminate(Terminator{Kind: TermUnreachable})
}
