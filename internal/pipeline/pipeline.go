// Package pipeline wires the compilation stages into a single entry
// point. Every call builds its own file set, arenas, and diagnostic
// bag, so concurrent calls share nothing.
package pipeline

import (
	"context"

	"minicc/internal/ast"
	"minicc/internal/diag"
	"minicc/internal/ir"
	"minicc/internal/ir/llvm"
	"minicc/internal/irgen"
	"minicc/internal/lexer"
	"minicc/internal/parser"
	"minicc/internal/sema"
	"minicc/internal/source"
)

const (
	DefaultFileName       = "input.c"
	DefaultMaxDiagnostics = 100
)

type Options struct {
	// FileName is the virtual name used in spans.
	FileName string
	// MaxDiagnostics caps the bag; zero means DefaultMaxDiagnostics.
	MaxDiagnostics int
	// TargetTriple overrides the triple in the emitted module.
	TargetTriple string
	// NoWarnings drops warning-severity diagnostics.
	NoWarnings bool
	// WarningsAsErrors upgrades warnings to errors, so a warning stops
	// the pipeline like any other error.
	WarningsAsErrors bool
}

// Result of one compilation. Bag is always non-nil and holds the
// diagnostics in detection order; Module and IR are set only when no
// error-severity diagnostic was recorded.
type Result struct {
	Module *ir.Module
	IR     string
	Bag    *diag.Bag
	File   source.FileID
	Set    *source.FileSet
}

// Compile runs tokenize, parse, analyze, and generate over src. The
// stage order is strict: any error stops the pipeline before the next
// stage. Compile terminates on arbitrary input and never panics on it;
// a panic here is an internal defect.
func Compile(ctx context.Context, src []byte, opts Options) Result {
	if opts.FileName == "" {
		opts.FileName = DefaultFileName
	}
	if opts.MaxDiagnostics == 0 {
		opts.MaxDiagnostics = DefaultMaxDiagnostics
	}
	if opts.TargetTriple == "" {
		opts.TargetTriple = llvm.DefaultTriple
	}

	set := source.NewFileSet()
	fileID := set.AddVirtual(opts.FileName, src)
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := &diag.BagReporter{
		Bag:              bag,
		IgnoreWarnings:   opts.NoWarnings,
		WarningsAsErrors: opts.WarningsAsErrors,
	}
	res := Result{Bag: bag, File: fileID, Set: set}

	toks := lexer.Tokenize(set.Get(fileID), lexer.Options{Reporter: reporter})
	if bag.HasErrors() || ctx.Err() != nil {
		return res
	}

	names := source.NewInterner()
	builder := ast.NewBuilder(ast.Hints{})
	parser.ParseUnit(toks, builder, names, parser.Options{Reporter: reporter})
	if bag.HasErrors() || ctx.Err() != nil {
		return res
	}

	info := sema.Check(builder, names, sema.Options{Reporter: reporter})
	if bag.HasErrors() || ctx.Err() != nil {
		return res
	}

	mod, ok := irgen.Generate(builder, names, info, irgen.Options{
		Reporter:   reporter,
		ModuleName: opts.FileName,
		Triple:     opts.TargetTriple,
	})
	if !ok || bag.HasErrors() {
		return res
	}

	text, err := llvm.EmitModule(mod)
	if err != nil {
		// The generator handed the backend a broken module. That is a
		// compiler defect, not a user error.
		panic("pipeline: invalid module: " + err.Error())
	}
	res.Module = mod
	res.IR = text
	return res
}
