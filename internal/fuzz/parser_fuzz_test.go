package fuzztests

import (
	"testing"

	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/lexer"
	"minicc/internal/parser"
	"minicc/internal/source"
)

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.c", input))

		bag := diag.NewBag(128)
		reporter := &diag.BagReporter{Bag: bag}
		toks := lexer.Tokenize(file, lexer.Options{Reporter: reporter})

		builder := ast.NewBuilder(ast.Hints{})
		parser.ParseUnit(toks, builder, source.NewInterner(), parser.Options{Reporter: reporter})

		// Whatever the parser kept must have sane spans.
		for _, id := range builder.Unit.Decls {
			if builder.Decls.Get(id) == nil {
				t.Fatalf("unit references missing declaration %d", id)
			}
		}
	})
}
