package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"minicc/internal/driver"
	"minicc/internal/project"
	"minicc/internal/ui"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] file.c [file.c ...]",
	Short: "Compile C sources to LLVM IR",
	Long:  "Compile lowers each input file to a textual LLVM IR module (.ll)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringP("output", "o", "", "output path (single input only)")
	compileCmd.Flags().String("out-dir", "", "directory for .ll outputs")
	compileCmd.Flags().String("target", "", "target triple for the emitted modules")
	compileCmd.Flags().Int("jobs", 0, "number of files compiled in parallel (0 = one per CPU)")
	compileCmd.Flags().Bool("print-ir", false, "print IR to stdout instead of writing files")
	compileCmd.Flags().Bool("no-warnings", false, "suppress warning diagnostics")
	compileCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	compileCmd.Flags().Bool("cache", false, "reuse results from the on-disk cache")
	compileCmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	printIR, _ := cmd.Flags().GetBool("print-ir")
	output, _ := cmd.Flags().GetString("output")
	outDir, _ := cmd.Flags().GetString("out-dir")
	uiMode, _ := cmd.Flags().GetString("ui")

	if output != "" && len(args) > 1 {
		return fmt.Errorf("-o applies to a single input, got %d", len(args))
	}

	colorMode, _ := cmd.Root().PersistentFlags().GetString("color")
	useColor(colorMode, os.Stderr)

	var results []driver.FileResult
	if wantProgress(uiMode) && len(args) > 1 && !printIR {
		results, err = compileWithProgress(cmd.Context(), args, opts)
	} else {
		results, err = driver.CompileFiles(cmd.Context(), args, opts)
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Diags != "" {
			fmt.Fprintln(os.Stderr, res.Diags)
		}
		if !res.Ok {
			failed++
			continue
		}
		if printIR {
			fmt.Print(res.IR)
			continue
		}
		target := driver.OutputPath(res.Path, outDir)
		if output != "" {
			target = output
		}
		if err := writeOutput(target, res.IR); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// driverOptions merges flags over the nearest minicc.toml, flags
// winning.
func driverOptions(cmd *cobra.Command) (driver.Options, error) {
	var opts driver.Options
	manifest, ok, err := project.LoadNearest(".")
	if err != nil {
		return opts, err
	}
	if ok {
		opts.MaxDiagnostics = manifest.Config.Compiler.MaxDiagnostics
		opts.TargetTriple = manifest.Config.Compiler.TargetTriple
		opts.Jobs = manifest.Config.Compiler.Jobs
	}

	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		opts.MaxDiagnostics, _ = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	}
	if cmd.Flags().Changed("target") {
		opts.TargetTriple, _ = cmd.Flags().GetString("target")
	}
	if cmd.Flags().Changed("jobs") {
		opts.Jobs, _ = cmd.Flags().GetInt("jobs")
	}
	opts.NoWarnings, _ = cmd.Flags().GetBool("no-warnings")
	opts.WarningsAsErrors, _ = cmd.Flags().GetBool("warnings-as-errors")
	if useCache, _ := cmd.Flags().GetBool("cache"); useCache {
		cache, err := driver.OpenDiskCache("minicc")
		if err != nil {
			return opts, fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

func wantProgress(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

// compileWithProgress runs the same parallel compile as the driver but
// feeds per-file events to the terminal UI.
func compileWithProgress(ctx context.Context, paths []string, opts driver.Options) ([]driver.FileResult, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	events := make(chan ui.Event, len(paths)*2)
	results := make([]driver.FileResult, len(paths))

	var runErr error
	go func() {
		defer close(events)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(jobs)
		for i, path := range paths {
			i, path := i, path
			g.Go(func() error {
				events <- ui.Event{File: path, Stage: ui.StageTokenize, Status: ui.StatusWorking}
				res := driver.CompileFile(gctx, path, opts)
				results[i] = res
				status := ui.StatusDone
				if !res.Ok {
					status = ui.StatusError
				}
				events <- ui.Event{File: path, Stage: ui.StageGenerate, Status: status}
				return gctx.Err()
			})
		}
		runErr = g.Wait()
	}()

	prog := tea.NewProgram(ui.NewProgressModel("compiling", paths, events))
	if _, err := prog.Run(); err != nil {
		return nil, err
	}
	if runErr != nil {
		return nil, runErr
	}
	return results, nil
}

func writeOutput(path, ir string) error {
	return os.WriteFile(path, []byte(ir), 0o644)
}
