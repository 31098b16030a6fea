package ir

// BlockID indexes a function's Blocks slice. Block 0 is the entry.
type BlockID uint32

type Block struct {
	ID     BlockID
	Label  string
	Instrs []Instr
	Term   Terminator
}

// Terminated reports whether the block is closed.
func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}

// Param is a function parameter's type; values are referenced as %argN.
type Param struct {
	Type Type
}

// Func is one defined function.
type Func struct {
	Name     string
	Ret      Type
	Params   []Param
	Variadic bool
	Blocks   []*Block

	nextTemp uint32
}

// Block returns a block by ID, or nil.
func (f *Func) Block(id BlockID) *Block {
	if int(id) >= len(f.Blocks) {
		return nil
	}
	return f.Blocks[id]
}

// ExternFunc is a function referenced but not defined here; the
// emitter produces a declare for it.
type ExternFunc struct {
	Name     string
	Ret      Type
	Params   []Param
	Variadic bool
}

// GlobalInit distinguishes how a global's initializer is spelled.
type GlobalInit uint8

const (
	InitZero GlobalInit = iota
	InitInt
	InitFloat
	InitBytes // string data; NUL-terminated by the emitter
	InitGlobalRef
)

type Global struct {
	Name     string
	Type     Type
	Init     GlobalInit
	Int      int64
	Float    float64
	Bytes    []byte
	RefName  string
	Constant bool
}

// Module is one compiled translation unit.
type Module struct {
	Name    string
	Triple  string
	Globals []Global
	Externs []ExternFunc
	Funcs   []*Func
}
