package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rohankatakam/onboardx/internal/analysis"
	"github.com/rohankatakam/onboardx/internal/errors"
	"github.com/rohankatakam/onboardx/internal/models"
)

// ReportOptions controls the sections of the onboarding report
type ReportOptions struct {
	IncludeDiagrams bool
}

// MarkdownReport renders the onboarding report
type MarkdownReport struct {
	opts ReportOptions
}

// NewMarkdownReport creates a report renderer
func NewMarkdownReport(opts ReportOptions) *MarkdownReport {
	return &MarkdownReport{opts: opts}
}

// Format writes the report to w
func (r *MarkdownReport) Format(result *analysis.Result, w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Onboarding guide: %s\n\n", result.Repo)
	b.WriteString("> Generated by `onboardx`. Re-run it to refresh this file.\n\n")

	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Repository | `%s` |\n", escapeCell(result.Repo))
	if result.Commit != "" {
		fmt.Fprintf(&b, "| Commit | `%s` |\n", shortCommit(result.Commit))
	}
	fmt.Fprintf(&b, "| Generated | %s |\n", result.GeneratedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "| Churn window | since %s |\n", formatDate(result.Since))
	fmt.Fprintf(&b, "| Run ID | `%s` |\n\n", result.RunID)

	b.WriteString("## Where to start\n\n")
	if len(result.Files) == 0 {
		b.WriteString("_No source files changed in the churn window._\n")
	} else {
		b.WriteString("The files that change most often, who knows them best, and how deep they sit in the import graph.\n\n")
		b.WriteString("| Rank | File | Churn | Primary contributor | Commits | Import depth |\n")
		b.WriteString("|---:|---|---:|---|---:|---:|\n")
		for i, f := range result.Files {
			fmt.Fprintf(&b, "| %d | `%s` | %d | %s | %d | %d |\n",
				i+1, escapeCell(f.File), f.Churn, escapeCell(f.PrimaryContributor), f.ContributionCount, f.ImportDepth)
		}
	}

	if r.opts.IncludeDiagrams {
		for _, kind := range []models.DiagramKind{
			models.DiagramDependencyGraph,
			models.DiagramRiskScatter,
			models.DiagramOwnershipMap,
		} {
			d, ok := result.Diagram(kind)
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "\n## %s\n\n", d.Title)
			b.WriteString("```mermaid\n")
			b.WriteString(d.Source)
			if !strings.HasSuffix(d.Source, "\n") {
				b.WriteString("\n")
			}
			b.WriteString("```\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFile renders the report and writes it to path, creating parent
// directories as needed
func (r *MarkdownReport) WriteFile(result *analysis.Result, path string) error {
	var buf bytes.Buffer
	if err := r.Format(result, &buf); err != nil {
		return errors.InternalErrorf("failed to render report: %v", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.FileSystemError(err, "failed to create report directory").WithContext("path", dir)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.FileSystemError(err, "failed to write report").WithContext("path", path)
	}
	return nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func shortCommit(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}
