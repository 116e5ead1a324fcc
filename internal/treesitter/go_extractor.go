package treesitter

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// extractGoImports collects import paths from top-level import
// declarations, single or grouped
func extractGoImports(root *sitter.Node, code []byte) []string {
	var specs []string

	for _, decl := range children(root) {
		if decl.Type() != "import_declaration" {
			continue
		}
		for _, child := range children(decl) {
			switch child.Type() {
			case "import_spec":
				specs = append(specs, goImportPath(child, code))
			case "import_spec_list":
				for _, spec := range children(child) {
					if spec.Type() == "import_spec" {
						specs = append(specs, goImportPath(spec, code))
					}
				}
			}
		}
	}

	return specs
}

func goImportPath(spec *sitter.Node, code []byte) string {
	if path := spec.ChildByFieldName("path"); path != nil {
		return stringLiteral(path, code)
	}
	for _, child := range children(spec) {
		if t := child.Type(); t == "interpreted_string_literal" || t == "raw_string_literal" {
			return stringLiteral(child, code)
		}
	}
	return ""
}
