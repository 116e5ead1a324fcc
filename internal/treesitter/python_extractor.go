package treesitter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// extractPythonImports collects dotted module names. Relative imports keep
// their leading dots. For "from m import a, b" the module itself is
// reported followed by m.a and m.b, since a and b may be submodules.
func extractPythonImports(root *sitter.Node, code []byte) []string {
	var specs []string

	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}

		switch node.Type() {
		case "import_statement":
			// import a.b, c as d
			for _, child := range children(node) {
				if name := importedName(child, code); name != "" {
					specs = append(specs, name)
				}
			}
			return

		case "import_from_statement":
			specs = append(specs, fromImport(node, code)...)
			return

		case "string", "comment":
			return
		}

		for _, child := range children(node) {
			walk(child)
		}
	}
	walk(root)

	return specs
}

func fromImport(node *sitter.Node, code []byte) []string {
	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode == nil {
		return nil
	}
	module := strings.Join(strings.Fields(getNodeText(moduleNode, code)), "")
	specs := []string{module}

	// names follow the "import" keyword; anything before it is the module
	afterKeyword := false
	for _, child := range children(node) {
		if child.Type() == "import" {
			afterKeyword = true
			continue
		}
		if !afterKeyword {
			continue
		}
		if name := importedName(child, code); name != "" {
			specs = append(specs, joinModule(module, name))
		}
	}
	return specs
}

// importedName returns the dotted name of a dotted_name or aliased_import
// node, or "" for anything else
func importedName(node *sitter.Node, code []byte) string {
	switch node.Type() {
	case "dotted_name":
		return getNodeText(node, code)
	case "aliased_import":
		return getNodeText(node.ChildByFieldName("name"), code)
	}
	return ""
}

func joinModule(module, name string) string {
	if strings.HasSuffix(module, ".") {
		return module + name
	}
	return module + "." + name
}
