package driver

import (
	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/lexer"
	"minicc/internal/parser"
	"minicc/internal/source"
	"minicc/internal/token"
)

// TokenizeResult carries the token stream of one file plus everything
// needed to render it.
type TokenizeResult struct {
	Tokens  []token.Token
	Bag     *diag.Bag
	FileSet *source.FileSet
	File    source.FileID
}

// Tokenize loads and tokenizes a single file for inspection commands.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	set := source.NewFileSet()
	id, err := set.Load(path)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	toks := lexer.Tokenize(set.Get(id), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	return &TokenizeResult{Tokens: toks, Bag: bag, FileSet: set, File: id}, nil
}

// ParseResult carries the syntax tree of one file plus everything
// needed to render it.
type ParseResult struct {
	Builder  *ast.Builder
	Interner *source.Interner
	Bag      *diag.Bag
	FileSet  *source.FileSet
	File     source.FileID
}

// Parse loads, tokenizes, and parses a single file for inspection
// commands. The tree is returned even when diagnostics were reported.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	set := source.NewFileSet()
	id, err := set.Load(path)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(set.Get(id), lexer.Options{Reporter: reporter})

	interner := source.NewInterner()
	builder := ast.NewBuilder(ast.Hints{})
	parser.ParseUnit(toks, builder, interner, parser.Options{Reporter: reporter})
	return &ParseResult{Builder: builder, Interner: interner, Bag: bag, FileSet: set, File: id}, nil
}
