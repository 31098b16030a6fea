package diagfmt

import (
	"strings"
	"testing"

	"minicc/internal/diag"
	"minicc/internal/source"
)

func oneDiagBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte("int x = y;\n"))
	// The span covers the identifier "y".
	sp := source.Span{File: id, Start: 8, End: 9}
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.KindUndeclaredIdentifierError, sp, "use of undeclared identifier 'y'"))
	return bag, fs
}

func TestPrettyHeadingAndCaret(t *testing.T) {
	bag, fs := oneDiagBag(t)
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	out := sb.String()

	if !strings.Contains(out, "test.c:1:9: error UndeclaredIdentifierError: use of undeclared identifier 'y'") {
		t.Errorf("missing heading:\n%s", out)
	}
	if !strings.Contains(out, "    int x = y;") {
		t.Errorf("missing source excerpt:\n%s", out)
	}
	// Four gutter spaces plus eight columns of padding put the caret
	// under the y.
	if !strings.Contains(out, "\n            ^\n") {
		t.Errorf("caret misplaced:\n%s", out)
	}
}

func TestPrettyUnderlineCoversSpan(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte("return wrong;\n"))
	sp := source.Span{File: id, Start: 7, End: 12}
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.KindSyntaxError, sp, "boom"))

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	if !strings.Contains(sb.String(), "^~~~~") {
		t.Errorf("expected a five-column underline:\n%s", sb.String())
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte("int a;\nint a;\n"))
	prev := source.Span{File: id, Start: 4, End: 5}
	cur := source.Span{File: id, Start: 11, End: 12}
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.KindRedefinitionError, cur, "redefinition of 'a'").
		WithNote(prev, "previous definition is here"))

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{ShowNotes: true})
	out := sb.String()
	if !strings.Contains(out, "test.c:2:5: error RedefinitionError: redefinition of 'a'") {
		t.Errorf("missing heading:\n%s", out)
	}
	if !strings.Contains(out, "test.c:1:5: note: previous definition is here") {
		t.Errorf("missing note:\n%s", out)
	}

	sb.Reset()
	Pretty(&sb, bag, fs, PrettyOpts{ShowNotes: false})
	if strings.Contains(sb.String(), "note:") {
		t.Error("notes rendered despite ShowNotes=false")
	}
}

func TestPrettyTabsDoNotSkewTheCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte("\tbad;\n"))
	sp := source.Span{File: id, Start: 1, End: 4}
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.KindSyntaxError, sp, "boom"))

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	// The tab renders as one space, so the underline starts at the
	// fifth output column.
	if !strings.Contains(sb.String(), "\n     ^~~\n") {
		t.Errorf("caret skewed by tab:\n%s", sb.String())
	}
}

func TestFormatJSON(t *testing.T) {
	bag, fs := oneDiagBag(t)
	var sb strings.Builder
	if err := FormatJSON(&sb, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		`"severity": "ERROR"`,
		`"kind": "UndeclaredIdentifierError"`,
		`"path": "test.c"`,
		`"line": 1`,
		`"col": 9`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON missing %s:\n%s", want, out)
		}
	}
}

func TestFormatJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte("x\n"))
	bag := diag.NewBag(0)
	for i := 0; i < 5; i++ {
		bag.Add(diag.NewError(diag.KindSyntaxError, source.Span{File: id, Start: 0, End: 1}, "boom"))
	}
	var sb strings.Builder
	if err := FormatJSON(&sb, bag, fs, JSONOpts{Max: 2}); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(sb.String(), `"kind"`); got != 2 {
		t.Errorf("expected 2 entries after truncation, got %d", got)
	}
}
