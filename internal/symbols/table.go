package symbols

import (
	"minicc/internal/source"
)

// Table owns all scopes and symbols of one compilation. IDs are
// 1-based; index 0 is the "absent" sentinel.
type Table struct {
	scopes  []Scope
	symbols []Symbol
	global  ScopeID
}

func NewTable() *Table {
	t := &Table{
		scopes:  make([]Scope, 1, 16), // slot 0 is the sentinel
		symbols: make([]Symbol, 1, 64),
	}
	t.global = t.NewScope(NoScopeID)
	return t
}

// Global returns the file-scope ID.
func (t *Table) Global() ScopeID { return t.global }

// NewScope creates a child scope of parent.
func (t *Table) NewScope(parent ScopeID) ScopeID {
	t.scopes = append(t.scopes, newScope(parent))
	return ScopeID(len(t.scopes) - 1)
}

func (t *Table) scope(id ScopeID) *Scope {
	if id == NoScopeID || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

// Symbol returns the symbol for id, or nil.
func (t *Table) Symbol(id SymbolID) *Symbol {
	if id == NoSymbolID || int(id) >= len(t.symbols) {
		return nil
	}
	return &t.symbols[id]
}

// Declare binds a symbol in the ordinary namespace of the scope. When
// the name is already bound in that same scope, the existing symbol is
// returned with ok=false and nothing is inserted; the caller decides
// whether the redeclaration is legal.
func (t *Table) Declare(scopeID ScopeID, sym Symbol) (SymbolID, bool) {
	sc := t.scope(scopeID)
	if sc == nil {
		return NoSymbolID, false
	}
	if existing, dup := sc.names[sym.Name]; dup {
		return existing, false
	}
	id := t.alloc(sym)
	sc.names[sym.Name] = id
	return id, true
}

// Replace rebinds a name to a new symbol in the same scope, used when
// a legal redeclaration refines an earlier one (a definition after a
// prototype).
func (t *Table) Replace(scopeID ScopeID, sym Symbol) SymbolID {
	sc := t.scope(scopeID)
	if sc == nil {
		return NoSymbolID
	}
	id := t.alloc(sym)
	sc.names[sym.Name] = id
	return id
}

// DeclareTag binds a symbol in the tag namespace of the scope.
func (t *Table) DeclareTag(scopeID ScopeID, sym Symbol) (SymbolID, bool) {
	sc := t.scope(scopeID)
	if sc == nil {
		return NoSymbolID, false
	}
	if existing, dup := sc.tags[sym.Name]; dup {
		return existing, false
	}
	id := t.alloc(sym)
	sc.tags[sym.Name] = id
	return id, true
}

func (t *Table) alloc(sym Symbol) SymbolID {
	t.symbols = append(t.symbols, sym)
	return SymbolID(len(t.symbols) - 1)
}

// LookupLocal finds a name in the ordinary namespace of one scope only.
func (t *Table) LookupLocal(scopeID ScopeID, name source.StringID) (SymbolID, bool) {
	sc := t.scope(scopeID)
	if sc == nil {
		return NoSymbolID, false
	}
	id, ok := sc.names[name]
	return id, ok
}

// Lookup resolves a name in the ordinary namespace, walking from the
// scope outward to file scope.
func (t *Table) Lookup(scopeID ScopeID, name source.StringID) (SymbolID, bool) {
	for sc := t.scope(scopeID); sc != nil; sc = t.scope(sc.Parent) {
		if id, ok := sc.names[name]; ok {
			return id, true
		}
	}
	return NoSymbolID, false
}

// LookupTagLocal finds a tag in one scope only.
func (t *Table) LookupTagLocal(scopeID ScopeID, name source.StringID) (SymbolID, bool) {
	sc := t.scope(scopeID)
	if sc == nil {
		return NoSymbolID, false
	}
	id, ok := sc.tags[name]
	return id, ok
}

// LookupTag resolves a tag, walking from the scope outward.
func (t *Table) LookupTag(scopeID ScopeID, name source.StringID) (SymbolID, bool) {
	for sc := t.scope(scopeID); sc != nil; sc = t.scope(sc.Parent) {
		if id, ok := sc.tags[name]; ok {
			return id, true
		}
	}
	return NoSymbolID, false
}
