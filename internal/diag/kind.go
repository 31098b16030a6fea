package diag

// Kind tags a diagnostic with its place in the error taxonomy. The tag is
// part of the public contract: drivers and tests match on it, messages are
// free-form.
type Kind uint16

const (
	KindUnknown Kind = iota

	// Syntax covers everything the lexer and parser reject, including
	// invalid byte sequences deferred by the lexer.
	KindSyntaxError

	// Semantic analysis.
	KindRedefinitionError
	KindConflictingTypesError
	KindUndeclaredIdentifierError
	KindTypeMismatchError
	KindConstantEvaluationError
	KindReturnTypeError
	KindControlFlowError

	// IR generation.
	KindUnsupportedConstructError

	// Warnings.
	KindNullCharacter
	KindUnterminatedComment
	KindImplicitConversion

	// Driver-level I/O problems (file could not be read).
	KindIOError
)

var kindNames = map[Kind]string{
	KindUnknown:                   "Unknown",
	KindSyntaxError:               "SyntaxError",
	KindRedefinitionError:         "RedefinitionError",
	KindConflictingTypesError:     "ConflictingTypesError",
	KindUndeclaredIdentifierError: "UndeclaredIdentifierError",
	KindTypeMismatchError:         "TypeMismatchError",
	KindConstantEvaluationError:   "ConstantEvaluationError",
	KindReturnTypeError:           "ReturnTypeError",
	KindControlFlowError:          "ControlFlowError",
	KindUnsupportedConstructError: "UnsupportedConstructError",
	KindNullCharacter:             "NullCharacter",
	KindUnterminatedComment:       "UnterminatedComment",
	KindImplicitConversion:        "ImplicitConversion",
	KindIOError:                   "IOError",
}

var kindTitles = map[Kind]string{
	KindUnknown:                   "unknown diagnostic",
	KindSyntaxError:               "syntax error",
	KindRedefinitionError:         "redefinition of a symbol in the same scope",
	KindConflictingTypesError:     "redeclaration with an incompatible type",
	KindUndeclaredIdentifierError: "use of an undeclared identifier",
	KindTypeMismatchError:         "operand types are incompatible",
	KindConstantEvaluationError:   "constant expression cannot be evaluated",
	KindReturnTypeError:           "return statement disagrees with the function type",
	KindControlFlowError:          "control-flow statement used outside its context",
	KindUnsupportedConstructError: "construct is valid but not lowerable yet",
	KindNullCharacter:             "null character in source",
	KindUnterminatedComment:       "unterminated block comment",
	KindImplicitConversion:        "implicit conversion may lose information",
	KindIOError:                   "input file could not be read",
}

// ID returns the stable tag name used in golden output and by harnesses.
func (k Kind) ID() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// Title returns a short human description of the kind.
func (k Kind) Title() string {
	if title, ok := kindTitles[k]; ok {
		return title
	}
	return kindTitles[KindUnknown]
}

func (k Kind) String() string {
	return k.ID()
}
