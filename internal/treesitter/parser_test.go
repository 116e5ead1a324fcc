package treesitter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/onboardx/internal/errors"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"src/a.ts", LangTypeScript},
		{"src/App.TSX", LangTSX},
		{"lib/index.mjs", LangJavaScript},
		{"pkg/mod.py", LangPython},
		{"cmd/main.go", LangGo},
		{"README.md", ""},
		{"Makefile", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.path))
		})
	}
}

func TestParseImports_TypeScript(t *testing.T) {
	src := `import { a } from "./a";
import b from '../lib/b';
import "./side-effect";
import type { T } from "./types";
import fs = require("./legacy");
export { c } from "./c";
export * from "./all";
export const x = 1;
const d = require("./d");
async function load() {
  return import("./lazy");
}
// import "./commented";
const s = "import './not-really'";
import a2 from "./a";
`

	p := NewParser(0)
	specs, err := p.ParseImports(context.Background(), LangTypeScript, []byte(src))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"./a", "../lib/b", "./side-effect", "./types", "./legacy",
		"./c", "./all", "./d", "./lazy",
	}, specs)
}

func TestParseImports_TSX(t *testing.T) {
	src := `import React from "react";
import { Button } from "./components/Button";

export function App() {
  return <Button label="hi" />;
}
`
	p := NewParser(0)
	specs, err := p.ParseImports(context.Background(), LangTSX, []byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"react", "./components/Button"}, specs)
}

func TestParseImports_JavaScript(t *testing.T) {
	src := `const path = require("path");
const util = require("./util");
module.exports = function () { return require(dynamicName); };
`
	p := NewParser(0)
	specs, err := p.ParseImports(context.Background(), LangJavaScript, []byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"path", "./util"}, specs)
}

func TestParseImports_Python(t *testing.T) {
	src := `import os
import pkg.core as core, pkg.util
from . import sibling
from ..parent import thing, other as o
from .models import *
from service.api import (handler, router)

def late():
    import lazy.mod
`
	p := NewParser(0)
	specs, err := p.ParseImports(context.Background(), LangPython, []byte(src))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"os",
		"pkg.core", "pkg.util",
		".", ".sibling",
		"..parent", "..parent.thing", "..parent.other",
		".models",
		"service.api", "service.api.handler", "service.api.router",
		"lazy.mod",
	}, specs)
}

func TestParseImports_Go(t *testing.T) {
	src := "package main\n\n" +
		"import \"fmt\"\n\n" +
		"import (\n" +
		"\t\"os\"\n" +
		"\tlog \"github.com/sirupsen/logrus\"\n" +
		"\t_ \"example.com/app/internal/plugins\"\n" +
		")\n\n" +
		"func main() { fmt.Println(os.Args) }\n"

	p := NewParser(0)
	specs, err := p.ParseImports(context.Background(), LangGo, []byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"fmt", "os", "github.com/sirupsen/logrus", "example.com/app/internal/plugins"}, specs)
}

func TestParseImports_SyntaxErrorStillReturnsImports(t *testing.T) {
	src := `import { a } from "./a";
function broken( {
`
	p := NewParser(0)
	specs, err := p.ParseImports(context.Background(), LangTypeScript, []byte(src))
	require.NoError(t, err)
	assert.Contains(t, specs, "./a")
}

func TestParser_Imports(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.ts")
	require.NoError(t, os.WriteFile(file, []byte(`import "./b";`), 0o644))

	p := NewParser(0)
	specs, err := p.Imports(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, []string{"./b"}, specs)
}

func TestParser_ImportsErrors(t *testing.T) {
	dir := t.TempDir()

	p := NewParser(8)

	_, err := p.Imports(context.Background(), filepath.Join(dir, "notes.txt"))
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	assert.Equal(t, errors.ErrorTypeParse, errors.GetType(err))

	_, err = p.Imports(context.Background(), filepath.Join(dir, "missing.ts"))
	assert.Equal(t, errors.ErrorTypeFileSystem, errors.GetType(err))

	big := filepath.Join(dir, "big.ts")
	require.NoError(t, os.WriteFile(big, []byte(`import "./some/long/path";`), 0o644))
	_, err = p.Imports(context.Background(), big)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}
