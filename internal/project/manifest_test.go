package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFullManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[package]
name = "demo"

[compiler]
max-diagnostics = 25
target-triple = "aarch64-linux-gnu"
color = "never"
out-dir = "build"
jobs = 2
`)
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Config.Package.Name != "demo" {
		t.Errorf("name = %q", m.Config.Package.Name)
	}
	c := m.Config.Compiler
	if c.MaxDiagnostics != 25 || c.TargetTriple != "aarch64-linux-gnu" || c.Color != "never" || c.OutDir != "build" || c.Jobs != 2 {
		t.Errorf("compiler config = %+v", c)
	}
	if m.Root != filepath.Dir(path) {
		t.Errorf("root = %q", m.Root)
	}
}

func TestLoadMinimalManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[package]\nname = \"tiny\"\n")
	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	// Unset compiler settings stay zero so callers can apply defaults.
	if m.Config.Compiler.MaxDiagnostics != 0 || m.Config.Compiler.TargetTriple != "" {
		t.Errorf("compiler config not zero: %+v", m.Config.Compiler)
	}
}

func TestLoadRejectsMissingPackageName(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[package]\n")
	if _, err := Load(path); err == nil {
		t.Error("expected an error for a nameless package")
	}
}

func TestLoadRejectsBadColorMode(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[package]\nname = \"x\"\n[compiler]\ncolor = \"sometimes\"\n")
	if _, err := Load(path); err == nil {
		t.Error("expected an error for an unknown color mode")
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"up\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %q, want a manifest in %q", path, root)
	}

	m, ok, err := LoadNearest(nested)
	if err != nil || !ok {
		t.Fatalf("LoadNearest: ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "up" {
		t.Errorf("name = %q", m.Config.Package.Name)
	}
}

func TestFindManifestAbsent(t *testing.T) {
	_, ok, err := FindManifest(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("found a manifest in an empty tree")
	}
}
