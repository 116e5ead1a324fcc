package pathfilter

import (
	"path"
	"strings"
)

// languageMap lists the extensions treated as human-authored source or text.
// Anything else (images, archives, generated blobs) is ignored by churn.
var languageMap = map[string]string{
	".go":     "Go",
	".py":     "Python",
	".js":     "JavaScript",
	".jsx":    "JavaScript",
	".mjs":    "JavaScript",
	".cjs":    "JavaScript",
	".ts":     "TypeScript",
	".tsx":    "TypeScript",
	".mts":    "TypeScript",
	".cts":    "TypeScript",
	".java":   "Java",
	".c":      "C",
	".cpp":    "C++",
	".cc":     "C++",
	".cxx":    "C++",
	".h":      "C/C++",
	".hpp":    "C++",
	".cs":     "C#",
	".rb":     "Ruby",
	".php":    "PHP",
	".rs":     "Rust",
	".swift":  "Swift",
	".kt":     "Kotlin",
	".scala":  "Scala",
	".sh":     "Shell",
	".bash":   "Shell",
	".sql":    "SQL",
	".r":      "R",
	".m":      "Objective-C",
	".pl":     "Perl",
	".lua":    "Lua",
	".dart":   "Dart",
	".ex":     "Elixir",
	".exs":    "Elixir",
	".clj":    "Clojure",
	".fs":     "F#",
	".ml":     "OCaml",
	".hs":     "Haskell",
	".vue":    "Vue",
	".svelte": "Svelte",
	".css":    "CSS",
	".scss":   "SCSS",
	".html":   "HTML",
	".md":     "Markdown",
	".mdx":    "Markdown",
	".txt":    "Text",
	".json":   "JSON",
	".yaml":   "YAML",
	".yml":    "YAML",
	".toml":   "TOML",
	".proto":  "Protobuf",
}

// DetectLanguage returns the language name for a path, or "" when the
// extension is not recognized
func DetectLanguage(filePath string) string {
	return languageMap[strings.ToLower(path.Ext(filePath))]
}

// IsRecognized reports whether the path has an allowlisted extension
func IsRecognized(filePath string) bool {
	return DetectLanguage(filePath) != ""
}
