package driver

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var updateBaselines = flag.Bool("update-baselines", false, "rewrite the .ll baselines under testdata")

// TestBaselines byte-compares the emitted IR of every testdata/baselines
// program against its checked-in .ll snapshot. Run with
// -update-baselines after an intentional emitter change.
func TestBaselines(t *testing.T) {
	inputs, err := filepath.Glob(filepath.Join("testdata", "baselines", "*.c"))
	if err != nil {
		t.Fatal(err)
	}
	if len(inputs) == 0 {
		t.Fatal("no baseline inputs found")
	}

	for _, input := range inputs {
		name := strings.TrimSuffix(filepath.Base(input), ".c")
		t.Run(name, func(t *testing.T) {
			res := CompileFile(context.Background(), input, Options{})
			if !res.Ok {
				t.Fatalf("compile failed:\n%s", res.Diags)
			}
			golden := strings.TrimSuffix(input, ".c") + ".ll"

			if *updateBaselines {
				if err := os.WriteFile(golden, []byte(res.IR), 0o644); err != nil {
					t.Fatal(err)
				}
				return
			}

			want, err := os.ReadFile(golden)
			if err != nil {
				t.Fatalf("missing baseline, run with -update-baselines: %v", err)
			}
			if res.IR != string(want) {
				t.Errorf("IR drifted from %s:\n--- want\n%s\n--- got\n%s", golden, want, res.IR)
			}
		})
	}
}
