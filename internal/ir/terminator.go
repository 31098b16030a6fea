package ir

// TermKind enumerates block terminators.
type TermKind uint8

const (
	TermNone TermKind = iota
	TermRet
	TermBr
	TermCondBr
	TermSwitch
	TermUnreachable
)

type Terminator struct {
	Kind TermKind

	Ret    RetTerm
	Br     BrTerm
	CondBr CondBrTerm
	Switch SwitchTerm
}

type RetTerm struct {
	HasValue bool
	Value    Value
}

type BrTerm struct {
	Target BlockID
}

type CondBrTerm struct {
	Cond Value // i1
	Then BlockID
	Else BlockID
}

type SwitchCase struct {
	Value  int64
	Target BlockID
}

type SwitchTerm struct {
	Value   Value
	Default BlockID
	Cases   []SwitchCase
}
