package symbols_test

import (
	"testing"

	"minicc/internal/source"
	"minicc/internal/symbols"
	"minicc/internal/types"
)

func TestDeclareAndLookup(t *testing.T) {
	tbl := symbols.NewTable()
	names := source.NewInterner()
	ti := types.NewInterner()

	x := names.Intern("x")
	id, ok := tbl.Declare(tbl.Global(), symbols.Symbol{
		Kind: symbols.SymVar, Name: x, Type: ti.Builtins().Int,
	})
	if !ok || !id.IsValid() {
		t.Fatal("first declaration must succeed")
	}
	got, found := tbl.Lookup(tbl.Global(), x)
	if !found || got != id {
		t.Error("lookup must find the declared symbol")
	}
}

func TestRedeclarationInSameScope(t *testing.T) {
	tbl := symbols.NewTable()
	names := source.NewInterner()

	x := names.Intern("x")
	first, _ := tbl.Declare(tbl.Global(), symbols.Symbol{Kind: symbols.SymVar, Name: x})
	dup, ok := tbl.Declare(tbl.Global(), symbols.Symbol{Kind: symbols.SymVar, Name: x})
	if ok {
		t.Fatal("duplicate declaration must be rejected")
	}
	if dup != first {
		t.Error("the existing symbol must be returned for the caller's diagnostic")
	}
}

func TestShadowingInInnerScope(t *testing.T) {
	tbl := symbols.NewTable()
	names := source.NewInterner()
	ti := types.NewInterner()

	x := names.Intern("x")
	outer, _ := tbl.Declare(tbl.Global(), symbols.Symbol{
		Kind: symbols.SymVar, Name: x, Type: ti.Builtins().Int,
	})

	inner := tbl.NewScope(tbl.Global())
	shadow, ok := tbl.Declare(inner, symbols.Symbol{
		Kind: symbols.SymVar, Name: x, Type: ti.Builtins().Double,
	})
	if !ok {
		t.Fatal("shadowing in an inner scope is legal")
	}

	if got, _ := tbl.Lookup(inner, x); got != shadow {
		t.Error("inner scope must see the shadowing symbol")
	}
	if got, _ := tbl.Lookup(tbl.Global(), x); got != outer {
		t.Error("file scope must still see the outer symbol")
	}
}

func TestLookupWalksOutward(t *testing.T) {
	tbl := symbols.NewTable()
	names := source.NewInterner()

	g := names.Intern("g")
	sym, _ := tbl.Declare(tbl.Global(), symbols.Symbol{Kind: symbols.SymFunc, Name: g})

	inner := tbl.NewScope(tbl.NewScope(tbl.Global()))
	got, found := tbl.Lookup(inner, g)
	if !found || got != sym {
		t.Error("lookup must walk to file scope")
	}
	if _, found := tbl.LookupLocal(inner, g); found {
		t.Error("LookupLocal must not walk outward")
	}
}

func TestTagNamespaceIsSeparate(t *testing.T) {
	tbl := symbols.NewTable()
	names := source.NewInterner()

	point := names.Intern("point")
	tbl.Declare(tbl.Global(), symbols.Symbol{Kind: symbols.SymVar, Name: point})
	_, ok := tbl.DeclareTag(tbl.Global(), symbols.Symbol{Kind: symbols.SymTag, Name: point})
	if !ok {
		t.Error("a tag may share its spelling with a variable")
	}
	if _, found := tbl.LookupTag(tbl.Global(), point); !found {
		t.Error("tag lookup must find the tag")
	}
}

func TestReplaceRefinesBinding(t *testing.T) {
	tbl := symbols.NewTable()
	names := source.NewInterner()

	f := names.Intern("f")
	tbl.Declare(tbl.Global(), symbols.Symbol{Kind: symbols.SymFunc, Name: f})
	def := tbl.Replace(tbl.Global(), symbols.Symbol{Kind: symbols.SymFunc, Name: f, Defined: true})

	got, _ := tbl.Lookup(tbl.Global(), f)
	if got != def {
		t.Error("Replace must rebind the name")
	}
	if !tbl.Symbol(got).Defined {
		t.Error("the refined symbol must be the visible one")
	}
}
