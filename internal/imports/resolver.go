package imports

import (
	"path"
	"sort"
	"strings"

	"github.com/rohankatakam/onboardx/internal/project"
)

// jsExtensionAliases lists the TypeScript sources a compiled-extension
// specifier may refer to ("./a.js" is written for "./a.ts" under ESM)
var jsExtensionAliases = map[string][]string{
	".js":  {".ts", ".tsx"},
	".jsx": {".tsx"},
	".mjs": {".mts"},
	".cjs": {".cts"},
}

// Resolver maps import specifiers to files in the graph. Specifiers that
// do not resolve to an included file are external and ignored.
type Resolver struct {
	cfg      *project.Config
	exts     []string
	files    map[string]bool
	packages map[string][]string
}

// NewResolver creates a resolver over the included files (slash paths
// relative to the project root)
func NewResolver(cfg *project.Config, files []string) *Resolver {
	r := &Resolver{
		cfg:      cfg,
		exts:     cfg.SourceExtensions(),
		files:    make(map[string]bool, len(files)),
		packages: make(map[string][]string),
	}
	for _, f := range files {
		r.files[f] = true
		if cfg.Kind == project.KindGo {
			dir := path.Dir(f)
			r.packages[dir] = append(r.packages[dir], f)
		}
	}
	for dir := range r.packages {
		sort.Strings(r.packages[dir])
	}
	return r
}

// Resolve returns the files spec refers to when imported from importer.
// Most specifiers resolve to at most one file; a Go package import
// resolves to every file of the package.
func (r *Resolver) Resolve(importer, spec string) []string {
	if spec == "" {
		return nil
	}

	switch r.cfg.Kind {
	case project.KindGo:
		return r.resolveGo(importer, spec)
	case project.KindPython:
		return r.resolvePython(importer, spec)
	default:
		return r.resolveScript(importer, spec)
	}
}

func isRelative(spec string) bool {
	return spec == "." || spec == ".." || strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../")
}

func (r *Resolver) resolveScript(importer, spec string) []string {
	if isRelative(spec) {
		return r.scriptCandidates(path.Join(path.Dir(importer), spec))
	}
	if strings.HasPrefix(spec, "/") {
		return nil
	}

	base := r.cfg.BaseURL
	if base == "" {
		base = "."
	}

	// longest alias prefix wins, as in the TypeScript compiler
	var best, bestTarget string
	for pattern, targets := range r.cfg.Paths {
		capture, ok := matchAlias(pattern, spec)
		if !ok || len(targets) == 0 {
			continue
		}
		if len(pattern) > len(best) || (len(pattern) == len(best) && pattern < best) {
			best = pattern
			bestTarget = capture
		}
	}
	if best != "" {
		for _, target := range r.cfg.Paths[best] {
			if found := r.scriptCandidates(path.Join(base, strings.Replace(target, "*", bestTarget, 1))); found != nil {
				return found
			}
		}
	}

	if r.cfg.BaseURL != "" {
		return r.scriptCandidates(path.Join(base, spec))
	}
	return nil
}

// matchAlias matches spec against a tsconfig paths pattern with at most
// one "*" and returns the text the star captured
func matchAlias(pattern, spec string) (string, bool) {
	star := strings.Index(pattern, "*")
	if star < 0 {
		return "", pattern == spec
	}
	prefix, suffix := pattern[:star], pattern[star+1:]
	if len(spec) < len(prefix)+len(suffix) || !strings.HasPrefix(spec, prefix) || !strings.HasSuffix(spec, suffix) {
		return "", false
	}
	return spec[len(prefix) : len(spec)-len(suffix)], true
}

// scriptCandidates tries the literal path, the path with each source
// extension, then an index file inside the path
func (r *Resolver) scriptCandidates(base string) []string {
	if strings.HasPrefix(base, "../") || base == ".." {
		return nil
	}
	if r.files[base] {
		return []string{base}
	}
	for _, ext := range r.exts {
		if r.files[base+ext] {
			return []string{base + ext}
		}
	}
	if ext := path.Ext(base); ext != "" {
		stem := strings.TrimSuffix(base, ext)
		for _, alt := range jsExtensionAliases[ext] {
			if r.files[stem+alt] {
				return []string{stem + alt}
			}
		}
	}
	for _, ext := range r.exts {
		index := path.Join(base, "index"+ext)
		if r.files[index] {
			return []string{index}
		}
	}
	return nil
}

func (r *Resolver) resolveGo(importer, spec string) []string {
	mod := r.cfg.ModulePath
	if mod == "" {
		return nil
	}

	var dir string
	switch {
	case spec == mod:
		dir = "."
	case strings.HasPrefix(spec, mod+"/"):
		dir = strings.TrimPrefix(spec, mod+"/")
	default:
		return nil
	}

	var out []string
	for _, f := range r.packages[dir] {
		if f != importer {
			out = append(out, f)
		}
	}
	return out
}

func (r *Resolver) resolvePython(importer, spec string) []string {
	if strings.HasPrefix(spec, ".") {
		dots := len(spec) - len(strings.TrimLeft(spec, "."))
		dir := path.Dir(importer)
		for i := 1; i < dots; i++ {
			if dir == "." {
				return nil
			}
			dir = path.Dir(dir)
		}
		rest := strings.ReplaceAll(spec[dots:], ".", "/")
		if rest == "" {
			return r.pythonCandidates(path.Join(dir, "__init__"))
		}
		return r.pythonCandidates(path.Join(dir, rest))
	}

	modPath := strings.ReplaceAll(spec, ".", "/")
	for _, root := range r.cfg.SourceRoots {
		if found := r.pythonCandidates(path.Join(root, modPath)); found != nil {
			return found
		}
	}
	return nil
}

func (r *Resolver) pythonCandidates(base string) []string {
	if strings.HasSuffix(base, "/__init__") || base == "__init__" {
		if r.files[base+".py"] {
			return []string{base + ".py"}
		}
		return nil
	}
	if r.files[base+".py"] {
		return []string{base + ".py"}
	}
	if init := path.Join(base, "__init__.py"); r.files[init] {
		return []string{init}
	}
	return nil
}
