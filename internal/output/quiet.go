package output

import (
	"fmt"
	"io"

	"github.com/rohankatakam/onboardx/internal/analysis"
)

// QuietFormatter outputs one-line summary (for hooks and CI logs)
type QuietFormatter struct{}

func (f *QuietFormatter) Format(result *analysis.Result, w io.Writer) error {
	if len(result.Files) == 0 {
		_, err := fmt.Fprintf(w, "onboardx: no file changes in %s since %s\n", result.Repo, formatDate(result.Since))
		return err
	}

	top := result.Files[0]
	_, err := fmt.Fprintf(w, "onboardx: %d files ranked in %s, hottest %s (%d changes)\n",
		len(result.Files), result.Repo, top.File, top.Churn)
	return err
}
