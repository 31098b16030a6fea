package types

import (
	"fmt"
	"strings"

	"minicc/internal/source"
)

var flavorSpellings = [...]string{
	IntChar:      "char",
	IntSChar:     "signed char",
	IntUChar:     "unsigned char",
	IntShort:     "short",
	IntUShort:    "unsigned short",
	IntInt:       "int",
	IntUInt:      "unsigned int",
	IntLong:      "long",
	IntULong:     "unsigned long",
	IntLongLong:  "long long",
	IntULongLong: "unsigned long long",
}

// String renders a type in C spelling for diagnostics. names resolves
// the tags of records and enums; it may be nil.
func (in *Interner) String(id TypeID, names *source.Interner) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	prefix := ""
	if t.Const {
		prefix = "const "
	}
	switch t.Kind {
	case KindVoid:
		return prefix + "void"
	case KindBool:
		return prefix + "_Bool"
	case KindInt:
		return prefix + flavorSpellings[t.Int]
	case KindFloat:
		if t.Width == Width64 {
			return prefix + "double"
		}
		return prefix + "float"
	case KindPointer:
		return in.String(t.Elem, names) + " *" + strings.TrimSuffix(prefix, " ")
	case KindArray:
		if t.Incomplete {
			return prefix + in.String(t.Elem, names) + "[]"
		}
		return prefix + fmt.Sprintf("%s[%d]", in.String(t.Elem, names), t.Count)
	case KindFunc:
		info, ok := in.FnInfo(id)
		if !ok {
			return "<invalid function>"
		}
		var b strings.Builder
		b.WriteString(in.String(info.Ret, names))
		b.WriteByte('(')
		if len(info.Params) == 0 && !info.Variadic {
			b.WriteString("void")
		}
		for i, p := range info.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(in.String(p, names))
		}
		if info.Variadic {
			b.WriteString(", ...")
		}
		b.WriteByte(')')
		return b.String()
	case KindStruct, KindUnion:
		info, _ := in.RecordInfo(id)
		kw := "struct"
		if t.Kind == KindUnion {
			kw = "union"
		}
		return prefix + kw + " " + tagName(info.Name, names)
	case KindEnum:
		info, _ := in.EnumInfo(id)
		return prefix + "enum " + tagName(info.Name, names)
	default:
		return "<invalid>"
	}
}

func tagName(id source.StringID, names *source.Interner) string {
	if id == source.NoStringID || names == nil {
		return "<anonymous>"
	}
	if s, ok := names.Lookup(id); ok {
		return s
	}
	return "<anonymous>"
}
