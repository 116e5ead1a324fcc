package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// pyProjectFile is the part of pyproject.toml that names the package and
// says where its sources live
type pyProjectFile struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name     string `toml:"name"`
			Packages []struct {
				Include string `toml:"include"`
				From    string `toml:"from"`
			} `toml:"packages"`
		} `toml:"poetry"`
		Setuptools struct {
			PackageDir map[string]string `toml:"package-dir"`
		} `toml:"setuptools"`
	} `toml:"tool"`
}

func loadPyProject(root, file string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(root, file))
	if err != nil {
		return nil, err
	}

	var doc pyProjectFile
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse pyproject.toml: %w", err)
	}

	name := doc.Project.Name
	if name == "" {
		name = doc.Tool.Poetry.Name
	}

	roots := []string{"."}
	addRoot := func(dir string) {
		dir = strings.Trim(filepath.ToSlash(dir), "/")
		if dir == "" {
			return
		}
		for _, r := range roots {
			if r == dir {
				return
			}
		}
		roots = append(roots, dir)
	}

	for _, pkg := range doc.Tool.Poetry.Packages {
		addRoot(pkg.From)
	}
	if dir, ok := doc.Tool.Setuptools.PackageDir[""]; ok {
		addRoot(dir)
	}
	if info, err := os.Stat(filepath.Join(root, "src")); err == nil && info.IsDir() {
		addRoot("src")
	}

	return &Config{
		Kind:        KindPython,
		Root:        root,
		File:        file,
		Name:        strings.ReplaceAll(name, "-", "_"),
		SourceRoots: roots,
	}, nil
}
