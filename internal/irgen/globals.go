package irgen

import (
	"minicc/internal/ast"
	"minicc/internal/ir"
)

// genGlobal lowers one file-scope variable. The checker folded the
// initializer, so lowering is a table lookup, never evaluation.
func (g *Generator) genGlobal(declID ast.DeclID) {
	data, ok := g.b.Decls.Var(declID)
	if !ok {
		return
	}
	sym := g.info.Table.Symbol(g.info.DeclSyms[declID])
	if sym == nil {
		return
	}
	ti := g.info.Types
	bare := ti.Unqualified(sym.Type)
	glob := ir.Global{
		Name: g.name(data.Name),
		Type: g.lowerType(bare),
	}

	if data.Init.IsValid() {
		switch {
		case ti.IsFloating(bare):
			if f, ok := g.info.FoldedFloats[data.Init]; ok && f != 0 {
				glob.Init = ir.InitFloat
				glob.Float = f
			}
		case ti.IsPointer(bare):
			if s, isStr := g.info.Strings[data.Init]; isStr {
				glob.Init = ir.InitGlobalRef
				glob.RefName = g.internStringName(s)
			}
			// Null pointer constants keep the zero initializer.
		default:
			if v, ok := g.info.Folded[data.Init]; ok && v != 0 {
				glob.Init = ir.InitInt
				glob.Int = g.truncConst(v, bare)
			}
		}
	}
	g.build.Mod.Globals = append(g.build.Mod.Globals, glob)
}
