// Package output writes analysis results: the onboarding report and the
// console summary.
package output

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/rohankatakam/onboardx/internal/analysis"
)

// Formatter defines output formatting interface
type Formatter interface {
	Format(result *analysis.Result, w io.Writer) error
}

// VerbosityLevel determines console output detail
type VerbosityLevel int

const (
	VerbosityQuiet    VerbosityLevel = iota // one-line summary
	VerbosityStandard                       // ranked list of top files
	VerbosityJSON                           // machine-readable result
)

// NewFormatter creates appropriate formatter based on level
func NewFormatter(level VerbosityLevel) Formatter {
	switch level {
	case VerbosityQuiet:
		return &QuietFormatter{}
	case VerbosityJSON:
		return &JSONFormatter{Indent: true}
	default:
		return &StandardFormatter{Styled: IsTerminal(os.Stdout)}
	}
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
