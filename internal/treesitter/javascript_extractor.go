package treesitter

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// extractECMAScriptImports collects module specifiers from JavaScript,
// TypeScript and TSX trees:
//
//	import x from "./a"
//	import "./side-effect"
//	export { y } from "./b"
//	import z = require("./c")
//	const w = require("./d")
//	await import("./e")
func extractECMAScriptImports(root *sitter.Node, code []byte) []string {
	var specs []string

	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}

		switch node.Type() {
		case "import_statement", "export_statement", "import_require_clause":
			if source := node.ChildByFieldName("source"); source != nil {
				specs = append(specs, stringLiteral(source, code))
			}

		case "call_expression":
			if spec, ok := callSpecifier(node, code); ok {
				specs = append(specs, spec)
			}

		case "string", "template_string", "comment":
			return
		}

		for _, child := range children(node) {
			walk(child)
		}
	}
	walk(root)

	return specs
}

// callSpecifier recognizes require("x") and dynamic import("x") with a
// plain string argument
func callSpecifier(node *sitter.Node, code []byte) (string, bool) {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return "", false
	}
	switch {
	case fn.Type() == "import":
	case fn.Type() == "identifier" && getNodeText(fn, code) == "require":
	default:
		return "", false
	}

	args := node.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return "", false
	}
	first := args.NamedChild(0)
	if first == nil || first.Type() != "string" {
		return "", false
	}
	return stringLiteral(first, code), true
}
