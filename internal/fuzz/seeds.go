package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB cap for the test corpus
)

func addCorpusSeeds(f *testing.F) {
	f.Add([]byte{})
	for _, seed := range languageSeeds {
		f.Add([]byte(seed))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds walks the driver baselines and feeds every checked-in
// C program to the corpus.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "driver", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".c" {
			return nil
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

// languageSeeds covers every statement and expression form once, plus
// the malformed shapes that used to trip error recovery.
var languageSeeds = []string{
	"int main(void) { return 0; }\n",
	"int add(int a, int b) { return a + b; }\n",
	"int g = 42;\ndouble rate = 2.5;\nchar *s = \"hi\";\n",
	"int f(int n) { if (n > 0) return 1; else return -1; }\n",
	"int f(int n) { int s = 0; while (n > 0) { s += n; n--; } return s; }\n",
	"int f(void) { int s = 0; for (int i = 0; i < 10; i++) { if (i == 3) continue; if (i == 7) break; s += i; } return s; }\n",
	"int f(int n) { int i = 0; do { i++; } while (i < n); return i; }\n",
	"int f(int x) { switch (x) { case 1: return 10; case 2: return 20; default: return 0; } }\n",
	"int printf(const char *fmt, ...);\nint main(void) { printf(\"%d\\n\", 42); return 0; }\n",
	"struct point { int x; int y; };\nint f(void) { struct point p; p.x = 1; return p.x; }\n",
	"union u { int i; float f; };\n",
	"enum color { RED, GREEN = 5, BLUE };\nint f(void) { return BLUE; }\n",
	"typedef unsigned long size_t;\nsize_t f(void) { return sizeof(long); }\n",
	"int f(int *p) { return *(p + 2); }\n",
	"int f(void) { int a[4]; a[2] = 9; return a[2]; }\n",
	"int f(int a, int b) { return a && b || !a; }\n",
	"int f(int c) { return c ? 1 : 2; }\n",
	"double f(int i, double d) { return (double)i + d; }\n",
	"unsigned int f(unsigned int a) { return a / 3u % 5u; }\n",
	"char f(void) { return 'x'; }\n",
	// malformed shapes
	"int main(void) { return 1 + ; }",
	"int int int ((((",
	"\"unterminated",
	"/* open comment",
	"int f() { { { { } } }",
	"struct s { int x; int x; };",
	"int f(void) { int x = y; }",
	"0x",
	"1e",
	"'",
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		return append([]byte(nil), src[:maxSeedBytes]...)
	}
	return append([]byte(nil), src...)
}
