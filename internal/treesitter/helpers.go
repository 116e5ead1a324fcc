package treesitter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// getNodeText extracts text from a node using byte offsets
func getNodeText(node *sitter.Node, code []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if int(end) > len(code) {
		end = uint32(len(code))
	}
	if start > end {
		return ""
	}
	return string(code[start:end])
}

// stringLiteral returns the unquoted value of a string node
func stringLiteral(node *sitter.Node, code []byte) string {
	return strings.Trim(getNodeText(node, code), "\"'`")
}

// children returns the direct children of a node
func children(node *sitter.Node) []*sitter.Node {
	n := int(node.ChildCount())
	out := make([]*sitter.Node, 0, n)
	for i := 0; i < n; i++ {
		if child := node.Child(i); child != nil {
			out = append(out, child)
		}
	}
	return out
}
