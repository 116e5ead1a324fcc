// Package treesitter enumerates the import specifiers of source files using
// tree-sitter grammars.
package treesitter

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/rohankatakam/onboardx/internal/errors"
)

// Language identifies a grammar
type Language string

const (
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangJavaScript Language = "javascript"
	LangPython     Language = "python"
	LangGo         Language = "go"
)

// DefaultMaxFileSize bounds the size of a file handed to the parser
const DefaultMaxFileSize = 2 * 1024 * 1024

var (
	// ErrUnsupportedLanguage is returned for files no grammar is registered for
	ErrUnsupportedLanguage = stderrors.New("unsupported language")
	// ErrFileTooLarge is returned for files above the parser's size ceiling
	ErrFileTooLarge = stderrors.New("file too large")

	errNoRoot = stderrors.New("no root node")
)

var extensions = map[string]Language{
	".ts":  LangTypeScript,
	".mts": LangTypeScript,
	".cts": LangTypeScript,
	".tsx": LangTSX,
	".js":  LangJavaScript,
	".jsx": LangJavaScript,
	".mjs": LangJavaScript,
	".cjs": LangJavaScript,
	".py":  LangPython,
	".go":  LangGo,
}

// DetectLanguage returns the grammar for a file extension, or "" when none
// is registered
func DetectLanguage(filePath string) Language {
	return extensions[strings.ToLower(filepath.Ext(filePath))]
}

func grammar(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangPython:
		return python.GetLanguage(), nil
	case LangGo:
		return golang.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
}

// Parser extracts import specifiers. A fresh tree-sitter parser is created
// per call, so a Parser is safe for concurrent use.
type Parser struct {
	maxFileSize int
}

// NewParser creates a parser. maxFileSize <= 0 uses DefaultMaxFileSize.
func NewParser(maxFileSize int) *Parser {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Parser{maxFileSize: maxFileSize}
}

// Imports reads a file and returns its import specifiers in source order.
// The language is picked from the file extension.
func (p *Parser) Imports(ctx context.Context, filePath string) ([]string, error) {
	lang := DetectLanguage(filePath)
	if lang == "" {
		return nil, errors.ParseErrorf(ErrUnsupportedLanguage, "no grammar for %s", filepath.Base(filePath))
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, errors.FileSystemError(err, "failed to stat source file").WithContext("file", filePath)
	}
	if info.Size() > int64(p.maxFileSize) {
		return nil, errors.ParseErrorf(ErrFileTooLarge, "cannot parse %d bytes", info.Size()).
			WithContext("file", filePath).
			WithContext("limit_bytes", p.maxFileSize)
	}

	src, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.FileSystemError(err, "failed to read source file").WithContext("file", filePath)
	}

	specs, err := p.ParseImports(ctx, lang, src)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return nil, e.WithContext("file", filePath)
		}
		return nil, err
	}
	return specs, nil
}

// ParseImports returns the import specifiers found in src. Syntax errors do
// not fail the parse; tree-sitter recovers and the readable imports are
// still returned.
func (p *Parser) ParseImports(ctx context.Context, lang Language, src []byte) ([]string, error) {
	language, err := grammar(lang)
	if err != nil {
		return nil, errors.ParseError(err, "cannot parse imports")
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(language)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.ParseErrorf(err, "tree-sitter parse failed for %s", lang)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, errors.ParseErrorf(errNoRoot, "tree-sitter failed for %s", lang)
	}

	var specs []string
	switch lang {
	case LangTypeScript, LangTSX, LangJavaScript:
		specs = extractECMAScriptImports(root, src)
	case LangPython:
		specs = extractPythonImports(root, src)
	case LangGo:
		specs = extractGoImports(root, src)
	}
	return dedupe(specs), nil
}

func dedupe(specs []string) []string {
	seen := make(map[string]bool, len(specs))
	out := make([]string, 0, len(specs))
	for _, s := range specs {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
