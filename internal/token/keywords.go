package token

var keywords = map[string]Kind{
	"void":     KwVoid,
	"_Bool":    KwBool,
	"char":     KwChar,
	"short":    KwShort,
	"int":      KwInt,
	"long":     KwLong,
	"signed":   KwSigned,
	"unsigned": KwUnsigned,
	"float":    KwFloat,
	"double":   KwDouble,
	"const":    KwConst,
	"struct":   KwStruct,
	"union":    KwUnion,
	"enum":     KwEnum,
	"typedef":  KwTypedef,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"do":       KwDo,
	"for":      KwFor,
	"switch":   KwSwitch,
	"case":     KwCase,
	"default":  KwDefault,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"sizeof":   KwSizeof,
}

// LookupKeyword returns the keyword kind for an identifier spelling.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
