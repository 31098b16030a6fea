package ast

import (
	"fmt"
	"strings"

	"minicc/internal/source"
)

// Printer renders a unit as an indented tree for debugging and
// snapshot tests. Output is deterministic.
type Printer struct {
	b        *Builder
	interner *source.Interner
	sb       strings.Builder
	depth    int
}

// Print renders the builder's unit.
func Print(b *Builder, interner *source.Interner) string {
	p := &Printer{b: b, interner: interner}
	p.line("unit")
	p.depth++
	for _, d := range b.Unit.Decls {
		p.printDecl(d)
	}
	return p.sb.String()
}

func (p *Printer) line(format string, args ...any) {
	for i := 0; i < p.depth; i++ {
		p.sb.WriteString("  ")
	}
	fmt.Fprintf(&p.sb, format, args...)
	p.sb.WriteByte('\n')
}

func (p *Printer) name(id source.StringID) string {
	if id == source.NoStringID {
		return "<anon>"
	}
	s, ok := p.interner.Lookup(id)
	if !ok {
		return "<?>"
	}
	return s
}

func (p *Printer) printDecl(id DeclID) {
	decl := p.b.Decls.Get(id)
	if decl == nil {
		p.line("decl <nil>")
		return
	}
	switch decl.Kind {
	case DeclVar:
		v, _ := p.b.Decls.Var(id)
		p.line("var %s : %s", p.name(v.Name), p.typeString(v.Type))
		if v.Init.IsValid() {
			p.depth++
			p.printExpr(v.Init)
			p.depth--
		}
	case DeclFunc:
		f, _ := p.b.Decls.Func(id)
		p.line("func %s : %s", p.name(f.Name), p.typeString(f.Type))
		if f.Body.IsValid() {
			p.depth++
			p.printStmt(f.Body)
			p.depth--
		}
	case DeclTypedef:
		td, _ := p.b.Decls.Typedef(id)
		p.line("typedef %s = %s", p.name(td.Name), p.typeString(td.Type))
	case DeclTag:
		tag, _ := p.b.Decls.Tag(id)
		p.line("tag %s", p.typeString(tag.Type))
	}
}

func (p *Printer) printStmt(id StmtID) {
	st := p.b.Stmts.Get(id)
	if st == nil {
		p.line("stmt <nil>")
		return
	}
	switch st.Kind {
	case StmtExpr:
		data, _ := p.b.Stmts.Expr(id)
		p.line("expr-stmt")
		p.depth++
		p.printExpr(data.Expr)
		p.depth--
	case StmtDecl:
		data, _ := p.b.Stmts.Decl(id)
		p.line("decl-stmt")
		p.depth++
		for _, d := range data.Decls {
			p.printDecl(d)
		}
		p.depth--
	case StmtCompound:
		data, _ := p.b.Stmts.Compound(id)
		p.line("block")
		p.depth++
		for _, s := range data.Stmts {
			p.printStmt(s)
		}
		p.depth--
	case StmtIf:
		data, _ := p.b.Stmts.If(id)
		p.line("if")
		p.depth++
		p.printExpr(data.Cond)
		p.printStmt(data.Then)
		if data.Else.IsValid() {
			p.line("else")
			p.printStmt(data.Else)
		}
		p.depth--
	case StmtWhile, StmtDoWhile:
		data, _ := p.b.Stmts.While(id)
		if st.Kind == StmtWhile {
			p.line("while")
		} else {
			p.line("do-while")
		}
		p.depth++
		p.printExpr(data.Cond)
		p.printStmt(data.Body)
		p.depth--
	case StmtFor:
		data, _ := p.b.Stmts.For(id)
		p.line("for")
		p.depth++
		if data.Init.IsValid() {
			p.printStmt(data.Init)
		}
		if data.Cond.IsValid() {
			p.printExpr(data.Cond)
		}
		if data.Post.IsValid() {
			p.printExpr(data.Post)
		}
		p.printStmt(data.Body)
		p.depth--
	case StmtSwitch:
		data, _ := p.b.Stmts.Switch(id)
		p.line("switch")
		p.depth++
		p.printExpr(data.Cond)
		for _, c := range data.Cases {
			if c.Value.IsValid() {
				p.line("case")
				p.depth++
				p.printExpr(c.Value)
			} else {
				p.line("default")
				p.depth++
			}
			for _, s := range c.Body {
				p.printStmt(s)
			}
			p.depth--
		}
		p.depth--
	case StmtReturn:
		data, _ := p.b.Stmts.Return(id)
		p.line("return")
		if data.Value.IsValid() {
			p.depth++
			p.printExpr(data.Value)
			p.depth--
		}
	case StmtBreak:
		p.line("break")
	case StmtContinue:
		p.line("continue")
	case StmtEmpty:
		p.line("empty")
	}
}

func (p *Printer) printExpr(id ExprID) {
	expr := p.b.Exprs.Get(id)
	if expr == nil {
		p.line("expr <nil>")
		return
	}
	switch expr.Kind {
	case ExprIdent:
		data, _ := p.b.Exprs.Ident(id)
		p.line("ident %s", p.name(data.Name))
	case ExprLit:
		data, _ := p.b.Exprs.Literal(id)
		p.line("lit %s", p.name(data.Text))
	case ExprUnary:
		data, _ := p.b.Exprs.Unary(id)
		if data.Op.IsPostfix() {
			p.line("postfix %s", data.Op)
		} else {
			p.line("unary %s", data.Op)
		}
		p.depth++
		p.printExpr(data.Operand)
		p.depth--
	case ExprBinary:
		data, _ := p.b.Exprs.Binary(id)
		p.line("binary %s", data.Op)
		p.depth++
		p.printExpr(data.Left)
		p.printExpr(data.Right)
		p.depth--
	case ExprAssign:
		data, _ := p.b.Exprs.Assign(id)
		p.line("assign %s", data.Op)
		p.depth++
		p.printExpr(data.Target)
		p.printExpr(data.Value)
		p.depth--
	case ExprCond:
		data, _ := p.b.Exprs.Cond(id)
		p.line("cond")
		p.depth++
		p.printExpr(data.Cond)
		p.printExpr(data.Then)
		p.printExpr(data.Else)
		p.depth--
	case ExprCall:
		data, _ := p.b.Exprs.Call(id)
		p.line("call")
		p.depth++
		p.printExpr(data.Callee)
		for _, a := range data.Args {
			p.printExpr(a)
		}
		p.depth--
	case ExprIndex:
		data, _ := p.b.Exprs.Index(id)
		p.line("index")
		p.depth++
		p.printExpr(data.Base)
		p.printExpr(data.Index)
		p.depth--
	case ExprMember:
		data, _ := p.b.Exprs.Member(id)
		op := "."
		if data.Arrow {
			op = "->"
		}
		p.line("member %s%s", op, p.name(data.Name))
		p.depth++
		p.printExpr(data.Base)
		p.depth--
	case ExprCast:
		data, _ := p.b.Exprs.Cast(id)
		p.line("cast %s", p.typeString(data.Type))
		p.depth++
		p.printExpr(data.Value)
		p.depth--
	case ExprSizeof:
		data, _ := p.b.Exprs.Sizeof(id)
		if data.Type.IsValid() {
			p.line("sizeof %s", p.typeString(data.Type))
		} else {
			p.line("sizeof")
			p.depth++
			p.printExpr(data.Value)
			p.depth--
		}
	}
}

// typeString renders a type syntax node on one line.
func (p *Printer) typeString(id TypeID) string {
	n := p.b.Types.Get(id)
	if n == nil {
		return "<no type>"
	}
	switch n.Kind {
	case TypePrim:
		data, _ := p.b.Types.Prim(id)
		return qualify(data.Prim.String(), data.Const)
	case TypeNamed:
		data, _ := p.b.Types.NamedType(id)
		return qualify(p.name(data.Name), data.Const)
	case TypePointer:
		data, _ := p.b.Types.Pointer(id)
		s := p.typeString(data.Elem) + "*"
		if data.Const {
			s += " const"
		}
		return s
	case TypeArray:
		data, _ := p.b.Types.Array(id)
		if data.Size.IsValid() {
			return p.typeString(data.Elem) + "[n]"
		}
		return p.typeString(data.Elem) + "[]"
	case TypeFunc:
		data, _ := p.b.Types.Func(id)
		var parts []string
		for _, pr := range data.Params {
			parts = append(parts, p.typeString(p.b.Decls.Param(pr).Type))
		}
		if data.Variadic {
			parts = append(parts, "...")
		}
		return p.typeString(data.Ret) + "(" + strings.Join(parts, ", ") + ")"
	case TypeRecord:
		data, _ := p.b.Types.Record(id)
		kw := "struct"
		if data.IsUnion {
			kw = "union"
		}
		return qualify(kw+" "+p.name(data.Name), data.Const)
	case TypeEnum:
		data, _ := p.b.Types.Enum(id)
		return qualify("enum "+p.name(data.Name), data.Const)
	}
	return "<?>"
}

func qualify(s string, isConst bool) string {
	if isConst {
		return "const " + s
	}
	return s
}
