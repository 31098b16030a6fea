package symbols

import (
	"minicc/internal/source"
)

// Scope is one lexical scope with its two namespaces.
type Scope struct {
	Parent ScopeID
	names  map[source.StringID]SymbolID
	tags   map[source.StringID]SymbolID
}

func newScope(parent ScopeID) Scope {
	return Scope{
		Parent: parent,
		names:  make(map[source.StringID]SymbolID, 8),
		tags:   make(map[source.StringID]SymbolID, 2),
	}
}
