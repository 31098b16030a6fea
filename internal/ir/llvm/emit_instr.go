package llvm

import (
	"fmt"
	"strings"

	"minicc/internal/ir"
)

func (e *Emitter) emitInstr(in *ir.Instr) {
	switch in.Kind {
	case ir.InstrAlloca:
		a := in.Alloca
		fmt.Fprintf(&e.buf, "  %s = alloca [%d x i8], align %d\n",
			a.Dst.Ref(), a.Size, a.Align)
	case ir.InstrLoad:
		l := in.Load
		fmt.Fprintf(&e.buf, "  %s = load %s, ptr %s, align %d\n",
			l.Dst.Ref(), l.Dst.Type.String(), l.Ptr.Ref(), l.Align)
	case ir.InstrStore:
		s := in.Store
		fmt.Fprintf(&e.buf, "  store %s %s, ptr %s, align %d\n",
			s.Val.Type.String(), s.Val.Ref(), s.Ptr.Ref(), s.Align)
	case ir.InstrBin:
		bi := in.Bin
		fmt.Fprintf(&e.buf, "  %s = %s %s %s, %s\n",
			bi.Dst.Ref(), bi.Op.String(), bi.L.Type.String(), bi.L.Ref(), bi.R.Ref())
	case ir.InstrCmp:
		c := in.Cmp
		if c.Float {
			fmt.Fprintf(&e.buf, "  %s = fcmp %s %s %s, %s\n",
				c.Dst.Ref(), c.Pred.FloatName(), c.L.Type.String(), c.L.Ref(), c.R.Ref())
		} else {
			fmt.Fprintf(&e.buf, "  %s = icmp %s %s %s, %s\n",
				c.Dst.Ref(), c.Pred.IntName(), c.L.Type.String(), c.L.Ref(), c.R.Ref())
		}
	case ir.InstrCast:
		c := in.Cast
		fmt.Fprintf(&e.buf, "  %s = %s %s %s to %s\n",
			c.Dst.Ref(), c.Op.String(), c.Val.Type.String(), c.Val.Ref(), c.Dst.Type.String())
	case ir.InstrCall:
		e.emitCall(in.Call)
	case ir.InstrGEP:
		g := in.GEP
		elem := "i8"
		if g.Stride != 1 {
			elem = fmt.Sprintf("[%d x i8]", g.Stride)
		}
		fmt.Fprintf(&e.buf, "  %s = getelementptr inbounds %s, ptr %s, %s %s\n",
			g.Dst.Ref(), elem, g.Base.Ref(), g.Index.Type.String(), g.Index.Ref())
	case ir.InstrMemCpy:
		m := in.MemCpy
		fmt.Fprintf(&e.buf, "  call void @llvm.memcpy.p0.p0.i64(ptr %s, ptr %s, i64 %d, i1 false)\n",
			m.Dst.Ref(), m.Src.Ref(), m.Len)
	}
}

func (e *Emitter) emitCall(c ir.CallInstr) {
	args := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		args = append(args, a.Type.String()+" "+a.Ref())
	}
	// Variadic call sites repeat the fixed signature.
	callee := c.Callee.Ref()
	sig := c.Ret.String()
	if c.Variadic {
		fixed := make([]string, 0, c.FixedArg+1)
		for i := 0; i < c.FixedArg && i < len(c.Args); i++ {
			fixed = append(fixed, c.Args[i].Type.String())
		}
		fixed = append(fixed, "...")
		sig = fmt.Sprintf("%s (%s)", c.Ret.String(), strings.Join(fixed, ", "))
	}
	if c.Ret.IsVoid() {
		fmt.Fprintf(&e.buf, "  call %s %s(%s)\n", sig, callee, strings.Join(args, ", "))
		return
	}
	fmt.Fprintf(&e.buf, "  %s = call %s %s(%s)\n",
		c.Dst.Ref(), sig, callee, strings.Join(args, ", "))
}
