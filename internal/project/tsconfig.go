package project

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
)

// maxExtendsDepth bounds the "extends" chain of a tsconfig
const maxExtendsDepth = 5

func loadTSConfig(root, file string) (*Config, error) {
	cfg := &Config{
		Kind: KindTypeScript,
		Root: root,
		File: file,
	}

	// compilerOptions from the extended config are inherited unless the
	// extending config overrides them
	current := filepath.Join(root, file)
	for depth := 0; depth < maxExtendsDepth && current != ""; depth++ {
		doc, err := readJSONC(current)
		if err != nil {
			if depth == 0 {
				return nil, err
			}
			break
		}

		dir := filepath.Dir(current)
		if cfg.BaseURL == "" {
			if base := doc.Get("compilerOptions.baseUrl"); base.Exists() {
				cfg.BaseURL = relSlash(root, filepath.Join(dir, base.String()))
			}
		}
		if cfg.Paths == nil {
			if paths := doc.Get("compilerOptions.paths"); paths.IsObject() {
				cfg.Paths = make(map[string][]string)
				paths.ForEach(func(key, value gjson.Result) bool {
					for _, target := range value.Array() {
						cfg.Paths[key.String()] = append(cfg.Paths[key.String()], target.String())
					}
					return true
				})
			}
		}
		if depth == 0 {
			for _, pattern := range doc.Get("exclude").Array() {
				if ex := excludeDir(pattern.String()); ex != "" {
					cfg.Exclude = append(cfg.Exclude, ex)
				}
			}
		}

		current = extendsPath(dir, doc.Get("extends").String())
	}

	return cfg, nil
}

func readJSONC(file string) (gjson.Result, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return gjson.Result{}, err
	}
	// tsconfig allows comments and trailing commas
	clean, err := hujson.Standardize(data)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s is not valid JSON: %w", filepath.Base(file), err)
	}
	return gjson.ParseBytes(clean), nil
}

// extendsPath resolves a relative "extends" target. Package references
// (e.g. "@tsconfig/node18/tsconfig.json") are not followed.
func extendsPath(dir, extends string) string {
	if !strings.HasPrefix(extends, ".") {
		return ""
	}
	p := filepath.Join(dir, filepath.FromSlash(extends))
	if filepath.Ext(p) != ".json" {
		p += ".json"
	}
	return p
}

// excludeDir reduces a tsconfig exclude pattern to a plain directory, or ""
// when the pattern is a file glob
func excludeDir(pattern string) string {
	p := strings.TrimPrefix(filepath.ToSlash(strings.TrimSpace(pattern)), "./")
	p = strings.TrimSuffix(p, "/**/*")
	p = strings.TrimSuffix(p, "/**")
	p = strings.TrimSuffix(p, "/*")
	p = strings.TrimSuffix(p, "/")
	if p == "" || p == "." || strings.ContainsAny(p, "*?{[") {
		return ""
	}
	return path.Clean(p)
}

func relSlash(root, target string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == "." {
		return "."
	}
	return filepath.ToSlash(rel)
}
