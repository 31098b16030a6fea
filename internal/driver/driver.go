// Package driver compiles files on disk. It layers file discovery,
// parallel execution, and a content-addressed result cache over the
// single-file pipeline.
package driver

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"minicc/internal/diag"
	"minicc/internal/pipeline"
	"minicc/internal/project"
)

// Options configures a driver run. The zero value compiles with the
// pipeline defaults, no cache, and one worker per CPU.
type Options struct {
	MaxDiagnostics int
	TargetTriple   string
	// NoWarnings and WarningsAsErrors are forwarded to the pipeline's
	// reporter and participate in the cache key.
	NoWarnings       bool
	WarningsAsErrors bool
	// Jobs bounds the number of files compiled concurrently; zero or
	// negative means one per CPU.
	Jobs  int
	Cache *DiskCache
}

// FileResult is the outcome for one input file. Diags holds the golden
// single-line rendering of every diagnostic; IR is empty unless Ok.
type FileResult struct {
	Path      string
	IR        string
	Diags     string
	Ok        bool
	FromCache bool
}

// CompileFile compiles one file. Read failures become an IOError
// diagnostic rather than aborting a batch.
func CompileFile(ctx context.Context, path string, opts Options) FileResult {
	src, err := os.ReadFile(path)
	if err != nil {
		return FileResult{
			Path:  path,
			Diags: fmt.Sprintf("error %s %s:0:0 %v", diag.KindIOError.ID(), path, err),
		}
	}

	key := cacheKey(path, src, opts)
	if opts.Cache != nil {
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			return FileResult{Path: path, IR: payload.IR, Diags: payload.Diags, Ok: payload.Ok, FromCache: true}
		}
	}

	res := pipeline.Compile(ctx, src, pipeline.Options{
		FileName:         path,
		MaxDiagnostics:   opts.MaxDiagnostics,
		TargetTriple:     opts.TargetTriple,
		NoWarnings:       opts.NoWarnings,
		WarningsAsErrors: opts.WarningsAsErrors,
	})
	out := FileResult{
		Path:  path,
		IR:    res.IR,
		Diags: diag.FormatGolden(res.Bag.Items(), res.Set, true),
		Ok:    res.Module != nil,
	}
	if opts.Cache != nil && ctx.Err() == nil {
		// A failed cache write costs a recompile later, nothing else.
		_ = opts.Cache.Put(key, &DiskPayload{
			Schema: diskCacheSchemaVersion,
			Path:   path,
			IR:     out.IR,
			Diags:  out.Diags,
			Ok:     out.Ok,
		})
	}
	return out
}

// CompileFiles compiles every path, at most opts.Jobs at a time.
// Results keep the input order.
func CompileFiles(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	results := make([]FileResult, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = CompileFile(ctx, path, opts)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CompileDir compiles every *.c file under dir, in sorted path order.
func CompileDir(ctx context.Context, dir string, opts Options) ([]FileResult, error) {
	files, err := ListCFiles(dir)
	if err != nil {
		return nil, err
	}
	return CompileFiles(ctx, files, opts)
}

// ListCFiles returns the sorted list of *.c files under dir.
func ListCFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".c") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// OutputPath maps an input file to its .ll output, next to the input
// unless outDir is set.
func OutputPath(cPath, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(cPath), ".c") + ".ll"
	if outDir == "" {
		return filepath.Join(filepath.Dir(cPath), base)
	}
	return filepath.Join(outDir, base)
}

// cacheKey digests everything the emitted artifact depends on. The
// path participates because the module ID embeds it.
func cacheKey(path string, src []byte, opts Options) project.Digest {
	h := sha256.New()
	fmt.Fprintf(h, "v%d|%s|%d|%t|%t|%s|",
		diskCacheSchemaVersion, opts.TargetTriple, opts.MaxDiagnostics,
		opts.NoWarnings, opts.WarningsAsErrors, path)
	h.Write(src)
	var d project.Digest
	copy(d[:], h.Sum(nil))
	return d
}
