package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompileFileProducesIR(t *testing.T) {
	path := writeSource(t, t.TempDir(), "ok.c", "int main(void) { return 0; }\n")
	res := CompileFile(context.Background(), path, Options{})
	if !res.Ok {
		t.Fatalf("compile failed:\n%s", res.Diags)
	}
	if !strings.Contains(res.IR, "define i32 @main() {") {
		t.Errorf("unexpected IR:\n%s", res.IR)
	}
	if res.FromCache {
		t.Error("first compile cannot come from the cache")
	}
}

func TestCompileFileReportsErrorsInGoldenFormat(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.c", "int main(void) { return x; }\n")
	res := CompileFile(context.Background(), path, Options{})
	if res.Ok {
		t.Fatal("expected a failed compile")
	}
	if res.IR != "" {
		t.Error("failed compiles must not produce IR")
	}
	if !strings.Contains(res.Diags, "error UndeclaredIdentifierError "+path+":1:25") {
		t.Errorf("unexpected diagnostics:\n%s", res.Diags)
	}
}

func TestCompileFileMissingInput(t *testing.T) {
	res := CompileFile(context.Background(), filepath.Join(t.TempDir(), "absent.c"), Options{})
	if res.Ok {
		t.Fatal("expected a failure for a missing file")
	}
	if !strings.Contains(res.Diags, "error IOError") {
		t.Errorf("expected an IOError diagnostic, got:\n%s", res.Diags)
	}
}

func TestCompileFileUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "cached.c", "int f(void) { return 3; }\n")
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache}

	first := CompileFile(context.Background(), path, opts)
	if first.FromCache {
		t.Fatal("cold cache reported a hit")
	}
	second := CompileFile(context.Background(), path, opts)
	if !second.FromCache {
		t.Fatal("warm cache reported a miss")
	}
	if second.IR != first.IR || second.Ok != first.Ok {
		t.Error("cached result differs from the fresh one")
	}

	// Changing the source must invalidate the entry.
	writeSource(t, dir, "cached.c", "int f(void) { return 4; }\n")
	third := CompileFile(context.Background(), path, opts)
	if third.FromCache {
		t.Error("stale entry served after the source changed")
	}
}

func TestWarningModesKeyTheCache(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "warn.c", "int main(void) { int x = 3.5; return x; }\n")
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}

	plain := CompileFile(context.Background(), path, Options{Cache: cache})
	if plain.Diags == "" || !plain.Ok {
		t.Fatalf("expected a warning and a module, got ok=%v diags=%q", plain.Ok, plain.Diags)
	}

	// A different warning mode must not be served the plain entry.
	quiet := CompileFile(context.Background(), path, Options{Cache: cache, NoWarnings: true})
	if quiet.FromCache {
		t.Error("no-warnings run served from the plain-mode cache entry")
	}
	if quiet.Diags != "" {
		t.Errorf("suppressed warnings still rendered: %q", quiet.Diags)
	}

	strict := CompileFile(context.Background(), path, Options{Cache: cache, WarningsAsErrors: true})
	if strict.FromCache {
		t.Error("warnings-as-errors run served from the plain-mode cache entry")
	}
	if strict.Ok {
		t.Error("upgraded warning must fail the compile")
	}
}

func TestCompileFilesKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.c", "b.c", "c.c", "d.c"} {
		paths = append(paths, writeSource(t, dir, name, "int main(void) { return 0; }\n"))
	}
	results, err := CompileFiles(context.Background(), paths, Options{Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(paths) {
		t.Fatalf("got %d results for %d inputs", len(results), len(paths))
	}
	for i, res := range results {
		if res.Path != paths[i] {
			t.Errorf("result %d is %q, want %q", i, res.Path, paths[i])
		}
		if !res.Ok {
			t.Errorf("%s failed:\n%s", res.Path, res.Diags)
		}
	}
}

func TestCompileFilesOneBadFileDoesNotAbortTheBatch(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.c", "int main(void) { return 0; }\n")
	bad := writeSource(t, dir, "bad.c", "int main(void) { return ; }\n")
	results, err := CompileFiles(context.Background(), []string{bad, good}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Ok {
		t.Error("bad.c unexpectedly compiled")
	}
	if !results[1].Ok {
		t.Errorf("good.c failed:\n%s", results[1].Diags)
	}
}

func TestCompileDirWalksSorted(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeSource(t, dir, "z.c", "int main(void) { return 0; }\n")
	writeSource(t, sub, "a.c", "int f(void) { return 1; }\n")
	writeSource(t, dir, "notes.txt", "not a source file")

	results, err := CompileDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// Walk order is sorted by full path: sub/a.c before z.c.
	if filepath.Base(results[0].Path) != "a.c" || filepath.Base(results[1].Path) != "z.c" {
		t.Errorf("unexpected order: %s, %s", results[0].Path, results[1].Path)
	}
}

func TestCompileFilesCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := writeSource(t, t.TempDir(), "x.c", "int main(void) { return 0; }\n")
	if _, err := CompileFiles(ctx, []string{path}, Options{}); err == nil {
		t.Error("expected an error from a canceled context")
	}
}

func TestOutputPath(t *testing.T) {
	if got := OutputPath(filepath.Join("src", "main.c"), ""); got != filepath.Join("src", "main.ll") {
		t.Errorf("OutputPath = %q", got)
	}
	if got := OutputPath(filepath.Join("src", "main.c"), "build"); got != filepath.Join("build", "main.ll") {
		t.Errorf("OutputPath with outDir = %q", got)
	}
}
