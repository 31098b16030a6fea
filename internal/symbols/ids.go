// Package symbols implements the symbol table: lexical scopes with C's
// two block-scope namespaces (ordinary identifiers and struct/union/
// enum tags). Lookup walks from the innermost scope outward.
package symbols

type (
	SymbolID uint32
	ScopeID  uint32
)

const (
	NoSymbolID SymbolID = 0
	NoScopeID  ScopeID  = 0
)

func (id SymbolID) IsValid() bool { return id != NoSymbolID }
func (id ScopeID) IsValid() bool  { return id != NoScopeID }
