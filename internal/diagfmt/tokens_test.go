package diagfmt

import (
	"strings"
	"testing"

	"minicc/internal/diag"
	"minicc/internal/lexer"
	"minicc/internal/source"
	"minicc/internal/token"
)

func tokenizeSrc(t *testing.T, src string) ([]token.Token, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte(src)))
	toks := lexer.Tokenize(file, lexer.Options{Reporter: diag.NopReporter{}})
	return toks, fs
}

func TestFormatTokensPretty(t *testing.T) {
	toks, fs := tokenizeSrc(t, "int x = 42;")
	var sb strings.Builder
	if err := FormatTokensPretty(&sb, toks, fs); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{"identifier", `"x"`, `"42"`, "eof", "at 1:1-1:4"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %s:\n%s", want, out)
		}
	}
}

func TestFormatTokensJSON(t *testing.T) {
	toks, _ := tokenizeSrc(t, "return 0;")
	var sb strings.Builder
	if err := FormatTokensJSON(&sb, toks); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if !strings.Contains(out, `"kind"`) || !strings.Contains(out, `"span"`) {
		t.Errorf("unexpected JSON shape:\n%s", out)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "[") {
		t.Errorf("expected a JSON array:\n%s", out)
	}
}
