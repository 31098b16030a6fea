// Package irgen lowers a checked translation unit to IR. It consumes
// the AST together with the sema side tables and never re-checks: any
// malformed input reaching this stage is a front-end defect. The only
// diagnostics produced here are UnsupportedConstructError for C that
// type-checks but has no lowering, such as passing records by value.
package irgen

import (
	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/ir"
	"minicc/internal/sema"
	"minicc/internal/source"
	"minicc/internal/symbols"
	"minicc/internal/types"
)

type Options struct {
	Reporter   diag.Reporter
	ModuleName string
	Triple     string
}

// Generator is per-compilation lowering state.
type Generator struct {
	b     *ast.Builder
	names *source.Interner
	info  *sema.Info
	build *ir.Builder
	opts  Options

	// locals maps variable and parameter symbols to their stack slot.
	locals  map[symbols.SymbolID]ir.Value
	strName map[string]string
	externs map[string]bool
	defined map[string]bool

	breaks      []ir.BlockID
	continues   []ir.BlockID
	retType     types.TypeID
	scratchSlot ir.Value

	errored bool
}

// Generate lowers the unit. ok is false when an unsupported construct
// was reported; the partial module is not usable then.
func Generate(b *ast.Builder, names *source.Interner, info *sema.Info, opts Options) (*ir.Module, bool) {
	triple := opts.Triple
	if triple == "" {
		triple = "x86_64-linux-gnu"
	}
	mod := &ir.Module{Name: opts.ModuleName, Triple: triple}
	g := &Generator{
		b:       b,
		names:   names,
		info:    info,
		build:   ir.NewBuilder(mod),
		opts:    opts,
		strName: make(map[string]string),
		externs: make(map[string]bool),
		defined: make(map[string]bool),
	}

	// First pass: which functions are defined here. Prototypes of
	// everything else become declares.
	for _, declID := range b.Unit.Decls {
		if fn, ok := b.Decls.Func(declID); ok && fn.Body.IsValid() {
			g.defined[g.name(fn.Name)] = true
		}
	}

	for _, declID := range b.Unit.Decls {
		decl := b.Decls.Get(declID)
		switch decl.Kind {
		case ast.DeclFunc:
			g.genFuncDecl(declID)
		case ast.DeclVar:
			g.genGlobal(declID)
		}
	}
	return mod, !g.errored
}

func (g *Generator) name(id source.StringID) string {
	s, ok := g.names.Lookup(id)
	if !ok {
		return "?"
	}
	return s
}

func (g *Generator) unsupported(sp source.Span, msg string) {
	g.errored = true
	if g.opts.Reporter != nil {
		g.opts.Reporter.Report(diag.KindUnsupportedConstructError, diag.SevError, sp, msg, nil)
	}
}

// internString creates (or reuses) a private constant for a string
// literal and returns its address.
func (g *Generator) internString(data string) ir.Value {
	return ir.GlobalRef(g.internStringName(data))
}

func (g *Generator) internStringName(data string) string {
	if name, ok := g.strName[data]; ok {
		return name
	}
	name := ".str." + itoa(len(g.strName))
	g.strName[data] = name
	g.build.Mod.Globals = append(g.build.Mod.Globals, ir.Global{
		Name:     name,
		Type:     ir.PtrType,
		Init:     ir.InitBytes,
		Bytes:    []byte(data),
		Constant: true,
	})
	return name
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// declareExtern records a declare for a function that is referenced
// but not defined in this unit.
func (g *Generator) declareExtern(name string, fn *types.FnInfo) {
	if g.defined[name] || g.externs[name] {
		return
	}
	g.externs[name] = true
	params := make([]ir.Param, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, ir.Param{Type: g.lowerType(p)})
	}
	g.build.Mod.Externs = append(g.build.Mod.Externs, ir.ExternFunc{
		Name:     name,
		Ret:      g.lowerType(fn.Ret),
		Params:   params,
		Variadic: fn.Variadic,
	})
}
