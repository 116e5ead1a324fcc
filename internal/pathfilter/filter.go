// Package pathfilter decides which repository paths count as human-authored
// source. Churn and import-depth scoring share the same denylist.
package pathfilter

import (
	"path"
	"path/filepath"
	"strings"
)

// DefaultExcludedDirs are build output, dependency and tooling directories
var DefaultExcludedDirs = []string{
	".git",
	".hg",
	".svn",
	"node_modules",
	"bower_components",
	"vendor",
	"dist",
	"build",
	"out",
	"coverage",
	".next",
	".nuxt",
	".turbo",
	".cache",
	"target",
	"__pycache__",
	".venv",
	"venv",
	".tox",
	".idea",
	".vscode",
}

// DefaultExcludedFiles are lockfiles and other machine-maintained manifests
var DefaultExcludedFiles = []string{
	"package-lock.json",
	"npm-shrinkwrap.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"bun.lockb",
	"go.sum",
	"Cargo.lock",
	"poetry.lock",
	"Pipfile.lock",
	"composer.lock",
	"Gemfile.lock",
}

// Filter applies the directory and lockfile denylist plus the extension
// allowlist. The zero value excludes nothing; use New.
type Filter struct {
	dirs  map[string]bool
	files map[string]bool
}

// New builds a filter from the defaults plus extra directory names. Extra
// entries may be bare names ("generated") or slash paths ("src/gen").
func New(extraDirs ...string) *Filter {
	f := &Filter{
		dirs:  make(map[string]bool, len(DefaultExcludedDirs)+len(extraDirs)),
		files: make(map[string]bool, len(DefaultExcludedFiles)),
	}
	for _, d := range DefaultExcludedDirs {
		f.dirs[d] = true
	}
	for _, d := range extraDirs {
		d = strings.Trim(filepath.ToSlash(strings.TrimSpace(d)), "/")
		if d != "" {
			f.dirs[d] = true
		}
	}
	for _, name := range DefaultExcludedFiles {
		f.files[name] = true
	}
	return f
}

// InExcludedDir reports whether any directory component of the slash path
// is excluded
func (f *Filter) InExcludedDir(relPath string) bool {
	relPath = strings.TrimPrefix(filepath.ToSlash(relPath), "./")
	dir := path.Dir(relPath)
	if dir == "." || dir == "/" {
		return false
	}

	parts := strings.Split(dir, "/")
	for i, part := range parts {
		if f.dirs[part] {
			return true
		}
		if f.dirs[strings.Join(parts[:i+1], "/")] {
			return true
		}
	}
	return false
}

// IsExcludedDir reports whether a directory (by slash path) should be
// skipped entirely during a walk
func (f *Filter) IsExcludedDir(relDir string) bool {
	relDir = strings.Trim(filepath.ToSlash(relDir), "/")
	if relDir == "" || relDir == "." {
		return false
	}
	return f.InExcludedDir(relDir + "/x")
}

// IsLockfile reports whether the base name is a known lockfile
func (f *Filter) IsLockfile(relPath string) bool {
	return f.files[path.Base(filepath.ToSlash(relPath))]
}

// Include reports whether a path touched by a commit counts toward churn
func (f *Filter) Include(relPath string) bool {
	if relPath == "" {
		return false
	}
	if f.InExcludedDir(relPath) || f.IsLockfile(relPath) {
		return false
	}
	return IsRecognized(relPath)
}
