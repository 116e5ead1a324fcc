package project

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

func loadGoMod(root, file string) (*Config, error) {
	content, err := os.ReadFile(filepath.Join(root, file))
	if err != nil {
		return nil, err
	}

	f, err := modfile.Parse(file, content, nil)
	if err != nil {
		return nil, fmt.Errorf("parse go.mod: %w", err)
	}
	if f.Module == nil || f.Module.Mod.Path == "" {
		return nil, fmt.Errorf("go.mod has no module directive")
	}

	return &Config{
		Kind:       KindGo,
		Root:       root,
		File:       file,
		ModulePath: f.Module.Mod.Path,
	}, nil
}
