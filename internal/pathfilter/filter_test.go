package pathfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Include(t *testing.T) {
	f := New("generated", "src/legacy")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"typescript source", "src/app.ts", true},
		{"root markdown", "README.md", true},
		{"go source", "internal/churn/scorer.go", true},
		{"node_modules", "node_modules/lodash/index.js", false},
		{"nested dist", "packages/web/dist/bundle.js", false},
		{"git internals", ".git/config", false},
		{"npm lockfile", "package-lock.json", false},
		{"nested lockfile", "web/yarn.lock", false},
		{"go.sum", "go.sum", false},
		{"image", "assets/logo.png", false},
		{"no extension", "Makefile", false},
		{"extra bare dir", "pkg/generated/types.ts", false},
		{"extra slash dir", "src/legacy/old.ts", false},
		{"sibling of extra slash dir", "lib/legacy/old.ts", true},
		{"empty", "", false},
		{"upper-case extension", "src/Main.JAVA", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Include(tt.path), tt.path)
		})
	}
}

func TestFilter_IsExcludedDir(t *testing.T) {
	f := New()

	assert.True(t, f.IsExcludedDir("node_modules"))
	assert.True(t, f.IsExcludedDir("web/node_modules"))
	assert.True(t, f.IsExcludedDir("build"))
	assert.False(t, f.IsExcludedDir("src"))
	assert.False(t, f.IsExcludedDir("."))
	assert.False(t, f.IsExcludedDir(""))
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "TypeScript", DetectLanguage("a/b.tsx"))
	assert.Equal(t, "Go", DetectLanguage("main.go"))
	assert.Equal(t, "", DetectLanguage("photo.jpeg"))
}
