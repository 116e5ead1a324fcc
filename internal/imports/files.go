package imports

import (
	"context"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/rohankatakam/onboardx/internal/pathfilter"
	"github.com/rohankatakam/onboardx/internal/project"
)

// declarationSuffixes mark type-declaration-only files
var declarationSuffixes = []string{".d.ts", ".d.mts", ".d.cts", ".pyi"}

// IsDeclarationFile reports whether a file only declares types
func IsDeclarationFile(rel string) bool {
	base := strings.ToLower(path.Base(filepath.ToSlash(rel)))
	for _, suffix := range declarationSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}

// IsTestFile reports whether a file name follows a test naming convention:
// *.test.*, *.spec.*, *_test.go, test_*.py or *_test.py
func IsTestFile(rel string) bool {
	base := strings.ToLower(path.Base(filepath.ToSlash(rel)))
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	if strings.HasSuffix(stem, ".test") || strings.HasSuffix(stem, ".spec") {
		return true
	}
	switch ext {
	case ".go":
		return strings.HasSuffix(stem, "_test")
	case ".py":
		return strings.HasPrefix(stem, "test_") || strings.HasSuffix(stem, "_test")
	}
	return false
}

// collectFiles walks root and returns the slash paths, relative to root and
// in lexical order, of every file that takes part in the import graph
func collectFiles(ctx context.Context, cfg *project.Config, filter *pathfilter.Filter) ([]string, error) {
	exts := make(map[string]bool)
	for _, ext := range cfg.SourceExtensions() {
		exts[ext] = true
	}

	var files []string
	err := filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(cfg.Root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && filter.IsExcludedDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if !exts[strings.ToLower(path.Ext(rel))] || IsDeclarationFile(rel) || IsTestFile(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
