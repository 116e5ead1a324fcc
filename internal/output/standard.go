package output

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rohankatakam/onboardx/internal/analysis"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorHot    = lipgloss.Color("#E74C3C")
	colorWarm   = lipgloss.Color("#F4D03F")
	colorMuted  = lipgloss.Color("#6C7A89")
)

var styles = struct {
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Hot    lipgloss.Style
	Warm   lipgloss.Style
	Border lipgloss.Style
}{
	Title:  lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Muted:  lipgloss.NewStyle().Foreground(colorMuted),
	Header: lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1),
	Cell:   lipgloss.NewStyle().Padding(0, 1),
	Hot:    lipgloss.NewStyle().Padding(0, 1).Foreground(colorHot).Bold(true),
	Warm:   lipgloss.NewStyle().Padding(0, 1).Foreground(colorWarm),
	Border: lipgloss.NewStyle().Foreground(colorMuted),
}

// StandardFormatter prints the ranked top files. Styled output renders a
// table; unstyled output is a plain numbered list that reads well in logs.
type StandardFormatter struct {
	Styled bool
}

func (f *StandardFormatter) Format(result *analysis.Result, w io.Writer) error {
	if f.Styled {
		return f.formatStyled(result, w)
	}
	return f.formatPlain(result, w)
}

func (f *StandardFormatter) formatPlain(result *analysis.Result, w io.Writer) error {
	fmt.Fprintf(w, "Analyzed %s in %s\n", result.Repo, result.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "\n=== TOP FILES BY CHURN ===\n")

	if len(result.Files) == 0 {
		_, err := fmt.Fprintf(w, "No file changes since %s\n", formatDate(result.Since))
		return err
	}

	for i, file := range result.Files {
		fmt.Fprintf(w, "%d. %s\n", i+1, file.File)
		fmt.Fprintf(w, "   Churn: %d changes\n", file.Churn)
		fmt.Fprintf(w, "   Primary contributor: %s (%d commits)\n", file.PrimaryContributor, file.ContributionCount)
		fmt.Fprintf(w, "   Import depth: %d\n", file.ImportDepth)
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func (f *StandardFormatter) formatStyled(result *analysis.Result, w io.Writer) error {
	fmt.Fprintln(w, styles.Title.Render("Top files by churn")+" "+
		styles.Muted.Render(fmt.Sprintf("%s · since %s · %s",
			result.Repo, formatDate(result.Since), result.Duration.Round(time.Millisecond))))

	if len(result.Files) == 0 {
		_, err := fmt.Fprintln(w, styles.Muted.Render("No file changes in the analysis window"))
		return err
	}

	rows := make([][]string, len(result.Files))
	churn := make([]int, len(result.Files))
	for i, file := range result.Files {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			file.File,
			strconv.Itoa(file.Churn),
			fmt.Sprintf("%s (%d)", file.PrimaryContributor, file.ContributionCount),
			strconv.Itoa(file.ImportDepth),
		}
		churn[i] = file.Churn
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Border).
		Headers("#", "File", "Churn", "Owner (commits)", "Depth").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			if col == 2 && row >= 0 && row < len(churn) {
				switch {
				case churn[row] > 100:
					return styles.Hot
				case churn[row] > 50:
					return styles.Warm
				}
			}
			return styles.Cell
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "the beginning of history"
	}
	return t.Format("2006-01-02")
}
