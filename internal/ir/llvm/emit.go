// Package llvm renders an ir.Module as textual LLVM IR. The output
// uses opaque pointers and byte-wise getelementptr, so it carries no
// named struct types; aggregate layout was decided earlier.
package llvm

import (
	"fmt"
	"strings"

	"minicc/internal/ir"
)

// DefaultTriple is the only target the layout engine knows.
const DefaultTriple = "x86_64-linux-gnu"

type Emitter struct {
	mod *ir.Module
	buf strings.Builder

	needsMemCpy bool
}

// EmitModule renders the module. The module must validate; a broken
// module is a generator defect and produces an error, never bad IR.
func EmitModule(mod *ir.Module) (string, error) {
	if err := ir.ValidateModule(mod); err != nil {
		return "", err
	}
	e := &Emitter{mod: mod}
	e.scanIntrinsics()
	e.emitPreamble()
	e.emitGlobals()
	e.emitExterns()
	e.emitIntrinsicDecls()
	for _, f := range mod.Funcs {
		e.emitFunction(f)
	}
	return e.buf.String(), nil
}

func (e *Emitter) scanIntrinsics() {
	for _, f := range e.mod.Funcs {
		for _, blk := range f.Blocks {
			for i := range blk.Instrs {
				if blk.Instrs[i].Kind == ir.InstrMemCpy {
					e.needsMemCpy = true
					return
				}
			}
		}
	}
}

func (e *Emitter) emitPreamble() {
	if e.mod.Name != "" {
		fmt.Fprintf(&e.buf, "; ModuleID = '%s'\n", e.mod.Name)
		fmt.Fprintf(&e.buf, "source_filename = \"%s\"\n", e.mod.Name)
	}
	triple := e.mod.Triple
	if triple == "" {
		triple = DefaultTriple
	}
	fmt.Fprintf(&e.buf, "target triple = %q\n\n", triple)
}

func (e *Emitter) emitGlobals() {
	for _, g := range e.mod.Globals {
		e.emitGlobal(g)
	}
	if len(e.mod.Globals) > 0 {
		e.buf.WriteByte('\n')
	}
}

func (e *Emitter) emitGlobal(g ir.Global) {
	kw := "global"
	if g.Constant {
		kw = "private unnamed_addr constant"
	}
	switch g.Init {
	case ir.InitBytes:
		data := append([]byte(nil), g.Bytes...)
		data = append(data, 0)
		fmt.Fprintf(&e.buf, "@%s = %s [%d x i8] c\"%s\", align 1\n",
			g.Name, kw, len(data), escapeBytes(data))
	case ir.InitInt:
		fmt.Fprintf(&e.buf, "@%s = %s %s %d, align %d\n",
			g.Name, kw, g.Type.String(), g.Int, g.Type.ByteAlign())
	case ir.InitFloat:
		fmt.Fprintf(&e.buf, "@%s = %s %s %s, align %d\n",
			g.Name, kw, g.Type.String(),
			ir.ConstFloat(g.Type, g.Float).Ref(), g.Type.ByteAlign())
	case ir.InitGlobalRef:
		fmt.Fprintf(&e.buf, "@%s = %s ptr @%s, align 8\n", g.Name, kw, g.RefName)
	default:
		fmt.Fprintf(&e.buf, "@%s = %s %s %s, align %d\n",
			g.Name, kw, g.Type.String(), zeroOf(g.Type), g.Type.ByteAlign())
	}
}

func zeroOf(t ir.Type) string {
	switch t.Kind {
	case ir.Int:
		return "0"
	case ir.Float:
		return ir.ConstFloat(t, 0).Ref()
	case ir.Ptr:
		return "null"
	default:
		return "zeroinitializer"
	}
}

func escapeBytes(data []byte) string {
	var sb strings.Builder
	for _, b := range data {
		if b >= 0x20 && b < 0x7F && b != '"' && b != '\\' {
			sb.WriteByte(b)
			continue
		}
		fmt.Fprintf(&sb, "\\%02X", b)
	}
	return sb.String()
}

func (e *Emitter) emitExterns() {
	for _, ext := range e.mod.Externs {
		params := make([]string, 0, len(ext.Params)+1)
		for _, p := range ext.Params {
			params = append(params, p.Type.String())
		}
		if ext.Variadic {
			params = append(params, "...")
		}
		fmt.Fprintf(&e.buf, "declare %s @%s(%s)\n",
			ext.Ret.String(), ext.Name, strings.Join(params, ", "))
	}
	if len(e.mod.Externs) > 0 {
		e.buf.WriteByte('\n')
	}
}

func (e *Emitter) emitIntrinsicDecls() {
	if e.needsMemCpy {
		e.buf.WriteString("declare void @llvm.memcpy.p0.p0.i64(ptr, ptr, i64, i1)\n\n")
	}
}

func (e *Emitter) emitFunction(f *ir.Func) {
	params := make([]string, 0, len(f.Params)+1)
	for i, p := range f.Params {
		params = append(params, fmt.Sprintf("%s %%arg%d", p.Type.String(), i))
	}
	if f.Variadic {
		params = append(params, "...")
	}
	fmt.Fprintf(&e.buf, "define %s @%s(%s) {\n",
		f.Ret.String(), f.Name, strings.Join(params, ", "))
	for _, blk := range f.Blocks {
		fmt.Fprintf(&e.buf, "%s:\n", blk.Label)
		for i := range blk.Instrs {
			e.emitInstr(&blk.Instrs[i])
		}
		e.emitTerminator(f, blk.Term)
	}
	e.buf.WriteString("}\n\n")
}

func (e *Emitter) emitTerminator(f *ir.Func, t ir.Terminator) {
	switch t.Kind {
	case ir.TermRet:
		if t.Ret.HasValue {
			fmt.Fprintf(&e.buf, "  ret %s %s\n", t.Ret.Value.Type.String(), t.Ret.Value.Ref())
		} else {
			e.buf.WriteString("  ret void\n")
		}
	case ir.TermBr:
		fmt.Fprintf(&e.buf, "  br label %%%s\n", f.Block(t.Br.Target).Label)
	case ir.TermCondBr:
		fmt.Fprintf(&e.buf, "  br i1 %s, label %%%s, label %%%s\n",
			t.CondBr.Cond.Ref(),
			f.Block(t.CondBr.Then).Label,
			f.Block(t.CondBr.Else).Label)
	case ir.TermSwitch:
		vt := t.Switch.Value.Type.String()
		fmt.Fprintf(&e.buf, "  switch %s %s, label %%%s [\n",
			vt, t.Switch.Value.Ref(), f.Block(t.Switch.Default).Label)
		for _, c := range t.Switch.Cases {
			fmt.Fprintf(&e.buf, "    %s %d, label %%%s\n",
				vt, c.Value, f.Block(c.Target).Label)
		}
		e.buf.WriteString("  ]\n")
	case ir.TermUnreachable:
		e.buf.WriteString("  unreachable\n")
	}
}
