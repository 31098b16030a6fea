package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"minicc/internal/ast"
	"minicc/internal/diagfmt"
	"minicc/internal/driver"
)

var astCmd = &cobra.Command{
	Use:   "ast [flags] file.c",
	Short: "Parse a C source file and print its syntax tree",
	Long:  "Ast parses one file and dumps the recovered tree, even when the source has errors",
	Args:  cobra.ExactArgs(1),
	RunE:  runAst,
}

func runAst(cmd *cobra.Command, args []string) error {
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		colorMode, _ := cmd.Root().PersistentFlags().GetString("color")
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(colorMode, os.Stderr),
			ShowNotes: true,
		})
	}

	fmt.Print(ast.Print(result.Builder, result.Interner))
	if result.Bag.HasErrors() {
		return fmt.Errorf("%d errors", result.Bag.ErrorCount())
	}
	return nil
}
