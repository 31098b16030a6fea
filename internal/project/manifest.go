// Package project locates and parses the minicc.toml project manifest.
// The manifest supplies compile defaults; command-line flags override it.
package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the project root is identified by.
const ManifestName = "minicc.toml"

// Manifest is a parsed minicc.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the TOML document.
type Config struct {
	Package  PackageConfig  `toml:"package"`
	Compiler CompilerConfig `toml:"compiler"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// CompilerConfig holds compile defaults. Zero values mean "unset" and
// fall back to the built-in defaults.
type CompilerConfig struct {
	MaxDiagnostics int    `toml:"max-diagnostics"`
	TargetTriple   string `toml:"target-triple"`
	Color          string `toml:"color"` // auto, always, never
	OutDir         string `toml:"out-dir"`
	Jobs           int    `toml:"jobs"`
}

// Load parses the manifest at path. The [package] table with a name is
// required; everything under [compiler] is optional.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if err := validateColor(cfg.Compiler.Color); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Compiler.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [compiler].max-diagnostics must not be negative", path)
	}
	if cfg.Compiler.Jobs < 0 {
		return nil, fmt.Errorf("%s: [compiler].jobs must not be negative", path)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

func validateColor(mode string) error {
	switch mode {
	case "", "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("[compiler].color must be auto, always, or never, got %q", mode)
	}
}
