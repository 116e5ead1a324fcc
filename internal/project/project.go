// Package project detects and reads the configuration file that marks the
// root of a TypeScript/JavaScript, Go or Python project.
package project

import (
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/rohankatakam/onboardx/internal/errors"
)

// Kind identifies the project ecosystem
type Kind string

const (
	KindTypeScript Kind = "typescript"
	KindGo         Kind = "go"
	KindPython     Kind = "python"
)

// ErrNoProjectConfig is returned when the root holds no recognized
// configuration file
var ErrNoProjectConfig = stderrors.New("no project configuration found")

// Config is the subset of project configuration that affects import
// resolution
type Config struct {
	Kind Kind
	// Root is the absolute project root
	Root string
	// File is the configuration file name, relative to Root
	File string

	// BaseURL is the slash path, relative to Root, that non-relative
	// TypeScript specifiers resolve against. Empty when unset.
	BaseURL string
	// Paths holds TypeScript path aliases, targets relative to BaseURL
	// (or Root when BaseURL is unset)
	Paths map[string][]string

	// ModulePath is the Go module path
	ModulePath string

	// Name is the Python distribution name
	Name string
	// SourceRoots are the slash dirs, relative to Root, that absolute
	// Python module names resolve against
	SourceRoots []string

	// Exclude holds extra directories to skip, relative to Root
	Exclude []string
}

// detectors run in order; the first configuration file present wins
var detectors = []struct {
	file  string
	parse func(root, file string) (*Config, error)
}{
	{"tsconfig.json", loadTSConfig},
	{"jsconfig.json", loadTSConfig},
	{"go.mod", loadGoMod},
	{"pyproject.toml", loadPyProject},
}

// Detect finds and parses the project configuration at root. A missing
// root or configuration file and a malformed configuration are all errors.
func Detect(root string) (*Config, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.FileSystemError(err, "invalid project root").WithContext("root", root)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.FileSystemError(err, "project root not accessible").WithContext("root", abs)
	}
	if !info.IsDir() {
		return nil, errors.FileSystemError(os.ErrInvalid, "project root is not a directory").WithContext("root", abs)
	}

	for _, d := range detectors {
		if _, err := os.Stat(filepath.Join(abs, d.file)); err != nil {
			continue
		}
		cfg, err := d.parse(abs, d.file)
		if err != nil {
			return nil, errors.ParseErrorf(err, "failed to read %s", d.file).WithContext("root", abs)
		}
		return cfg, nil
	}

	return nil, errors.Wrap(ErrNoProjectConfig, errors.ErrorTypeConfig, errors.SeverityLow,
		"import graph needs tsconfig.json, jsconfig.json, go.mod or pyproject.toml").
		WithContext("root", abs)
}

// SourceExtensions returns the file extensions that take part in the import
// graph, in resolution order
func (c *Config) SourceExtensions() []string {
	switch c.Kind {
	case KindGo:
		return []string{".go"}
	case KindPython:
		return []string{".py"}
	default:
		return []string{".ts", ".tsx", ".js", ".jsx", ".mts", ".cts", ".mjs", ".cjs"}
	}
}
