package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/onboardx/internal/analysis"
	"github.com/rohankatakam/onboardx/internal/errors"
)

func TestMarkdownReport_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownReport(ReportOptions{}).Format(sampleResult(), &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Onboarding guide: acme/widgets\n"))
	assert.Contains(t, out, "| Commit | `4f2a9c1d8e7b` |\n")
	assert.Contains(t, out, "| Generated | 2026-03-01T12:00:00Z |\n")
	assert.Contains(t, out, "| Churn window | since 2025-03-01 |\n")
	assert.Contains(t, out, "| Run ID | `0b6d8f0e-5c1a-4c55-9d57-3f3c1e0f4a11` |\n")
	assert.Contains(t, out, "| 1 | `src/api.ts` | 140 | Alice | 9 | 3 |\n")
	assert.Contains(t, out, "| 2 | `src/db\\|raw.ts` | 20 | Unknown | 0 | 0 |\n")
	assert.NotContains(t, out, "```mermaid")
}

func TestMarkdownReport_Diagrams(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownReport(ReportOptions{IncludeDiagrams: true}).Format(sampleResult(), &buf))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "```mermaid\n"))

	// Sections follow a fixed order regardless of result order
	graph := strings.Index(out, "## File Dependency Graph")
	owners := strings.Index(out, "## Code Ownership Map")
	require.NotEqual(t, -1, graph)
	require.NotEqual(t, -1, owners)
	assert.Less(t, graph, owners)
	assert.NotContains(t, out, "## Churn vs Import Depth")

	// Sources without a trailing newline still close the fence on its own line
	assert.Contains(t, out, "graph TD\n```\n")
}

func TestMarkdownReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	result := &analysis.Result{Repo: "new-repo", GeneratedAt: time.Now()}
	require.NoError(t, NewMarkdownReport(ReportOptions{IncludeDiagrams: true}).Format(result, &buf))

	out := buf.String()
	assert.Contains(t, out, "_No source files changed in the churn window._")
	assert.NotContains(t, out, "| Commit |")
	assert.NotContains(t, out, "```mermaid")
}

func TestMarkdownReport_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "ONBOARD.md")

	require.NoError(t, NewMarkdownReport(ReportOptions{}).WriteFile(sampleResult(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Onboarding guide: acme/widgets")
}

func TestMarkdownReport_WriteFileFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := NewMarkdownReport(ReportOptions{}).WriteFile(sampleResult(), filepath.Join(blocker, "ONBOARD.md"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeFileSystem, errors.GetType(err))
}
