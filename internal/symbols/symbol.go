package symbols

import (
	"minicc/internal/ast"
	"minicc/internal/source"
	"minicc/internal/types"
)

type SymbolKind uint8

const (
	SymVar SymbolKind = iota
	SymParam
	SymFunc
	SymTypedef
	SymEnumConst
	SymTag
)

var kindNames = [...]string{
	SymVar:       "variable",
	SymParam:     "parameter",
	SymFunc:      "function",
	SymTypedef:   "typedef",
	SymEnumConst: "enumerator",
	SymTag:       "tag",
}

func (k SymbolKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "symbol"
}

// Symbol is one declared name. Span is the name's declaration site,
// used by redefinition diagnostics to point at the previous one.
type Symbol struct {
	Kind SymbolKind
	Name source.StringID
	Type types.TypeID
	Span source.Span
	Decl ast.DeclID // originating declaration; NoDeclID for params and enumerators

	// Value is the constant value of an enumerator.
	Value int64
	// Defined marks functions with a body and complete tags.
	Defined bool
}
