package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates a byte sequence the lexer could not recognize.
	// The parser turns it into a syntax error; the lexer itself never fails.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// Keywords of the supported subset.
	KwVoid     // void
	KwBool     // _Bool
	KwChar     // char
	KwShort    // short
	KwInt      // int
	KwLong     // long
	KwSigned   // signed
	KwUnsigned // unsigned
	KwFloat    // float
	KwDouble   // double
	KwConst    // const
	KwStruct   // struct
	KwUnion    // union
	KwEnum     // enum
	KwTypedef  // typedef
	KwIf       // if
	KwElse     // else
	KwWhile    // while
	KwDo       // do
	KwFor      // for
	KwSwitch   // switch
	KwCase     // case
	KwDefault  // default
	KwReturn   // return
	KwBreak    // break
	KwContinue // continue
	KwSizeof   // sizeof

	// Literals.
	IntLit
	FloatLit
	CharLit
	StringLit

	// Punctuators and operators.
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Semicolon // ;
	Comma     // ,
	Dot       // .
	Arrow     // ->
	Ellipsis  // ...

	PlusPlus   // ++
	MinusMinus // --

	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %
	Amp     // &
	Pipe    // |
	Caret   // ^
	Tilde   // ~
	Bang    // !
	Shl     // <<
	Shr     // >>

	Lt     // <
	Gt     // >
	LtEq   // <=
	GtEq   // >=
	EqEq   // ==
	BangEq // !=
	AndAnd // &&
	OrOr   // ||

	Question // ?
	Colon    // :

	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	ShlAssign     // <<=
	ShrAssign     // >>=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
)

var kindNames = [...]string{
	Invalid:   "invalid",
	EOF:       "eof",
	Ident:     "identifier",
	KwVoid:    "void",
	KwBool:    "_Bool",
	KwChar:    "char",
	KwShort:   "short",
	KwInt:     "int",
	KwLong:    "long",
	KwSigned:  "signed",
	KwUnsigned: "unsigned",
	KwFloat:    "float",
	KwDouble:   "double",
	KwConst:    "const",
	KwStruct:   "struct",
	KwUnion:    "union",
	KwEnum:     "enum",
	KwTypedef:  "typedef",
	KwIf:       "if",
	KwElse:     "else",
	KwWhile:    "while",
	KwDo:       "do",
	KwFor:      "for",
	KwSwitch:   "switch",
	KwCase:     "case",
	KwDefault:  "default",
	KwReturn:   "return",
	KwBreak:    "break",
	KwContinue: "continue",
	KwSizeof:   "sizeof",
	IntLit:     "integer literal",
	FloatLit:   "float literal",
	CharLit:    "character literal",
	StringLit:  "string literal",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Semicolon:  ";",
	Comma:      ",",
	Dot:        ".",
	Arrow:      "->",
	Ellipsis:   "...",
	PlusPlus:   "++",
	MinusMinus: "--",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Amp:        "&",
	Pipe:       "|",
	Caret:      "^",
	Tilde:      "~",
	Bang:       "!",
	Shl:        "<<",
	Shr:        ">>",
	Lt:         "<",
	Gt:         ">",
	LtEq:       "<=",
	GtEq:       ">=",
	EqEq:       "==",
	BangEq:     "!=",
	AndAnd:     "&&",
	OrOr:       "||",
	Question:   "?",
	Colon:      ":",
	Assign:     "=",
	PlusAssign: "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	ShlAssign:     "<<=",
	ShrAssign:     ">>=",
	AmpAssign:     "&=",
	PipeAssign:    "|=",
	CaretAssign:   "^=",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// IsEOF reports whether the kind terminates the token stream.
func (k Kind) IsEOF() bool { return k == EOF }

// IsTypeStarter reports whether the kind can begin a declaration specifier.
// Typedef names also start declarations; the parser checks those separately.
func (k Kind) IsTypeStarter() bool {
	switch k {
	case KwVoid, KwBool, KwChar, KwShort, KwInt, KwLong, KwSigned, KwUnsigned,
		KwFloat, KwDouble, KwConst, KwStruct, KwUnion, KwEnum, KwTypedef:
		return true
	default:
		return false
	}
}

// IsAssignOp reports whether the kind is an assignment operator.
func (k Kind) IsAssignOp() bool {
	switch k {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign,
		PercentAssign, ShlAssign, ShrAssign, AmpAssign, PipeAssign, CaretAssign:
		return true
	default:
		return false
	}
}
