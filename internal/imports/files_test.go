package imports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTestFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"src/app.test.ts", true},
		{"src/app.spec.tsx", true},
		{"src/App.Test.js", true},
		{"pkg/store_test.go", true},
		{"tests/test_api.py", true},
		{"svc/api_test.py", true},
		{"src/app.ts", false},
		{"src/testing.ts", false},
		{"pkg/store.go", false},
		{"svc/contest.py", false},
		{"svc/latest_api.py", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTestFile(tt.path))
		})
	}
}

func TestIsDeclarationFile(t *testing.T) {
	assert.True(t, IsDeclarationFile("types/globals.d.ts"))
	assert.True(t, IsDeclarationFile("stubs/mod.pyi"))
	assert.False(t, IsDeclarationFile("src/d.ts"))
	assert.False(t, IsDeclarationFile("src/app.ts"))
}
