package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"minicc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "minicc",
	Short:         "A fuzz-hardened compiler for a C subset",
	Long:          "minicc lowers a C subset to LLVM IR and never crashes on bad input",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(astCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|always|never)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to report (0 = default)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves a color mode against the stream it writes to and
// flips the global color switch accordingly.
func useColor(mode string, f *os.File) bool {
	on := mode == "always" || (mode != "never" && isTerminal(f))
	color.NoColor = !on
	return on
}
