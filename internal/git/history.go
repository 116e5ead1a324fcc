package git

import (
	"context"
	"strings"
)

// Authors returns the author name of every commit that touched filePath, in
// the order git log reports them (newest first). Renames are followed, so
// history from a file's previous paths is included.
//
// An empty slice with a nil error means git ran but the file has no history.
func (r *Runner) Authors(ctx context.Context, repoRoot, filePath string) ([]string, error) {
	// --follow tracks the file across renames
	// --format=%an prints only the author name, one commit per line
	out, err := r.run(ctx, repoRoot, r.maxAuthorBytes,
		"log", "--follow", "--format=%an", "--", filePath)
	if err != nil {
		return nil, err
	}
	return ParseAuthors(out), nil
}

// ParseAuthors parses newline-separated author identities. Blank lines are
// skipped and identities are trimmed; duplicates are kept because every line
// is one commit.
func ParseAuthors(output string) []string {
	lines := strings.Split(output, "\n")
	authors := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		authors = append(authors, line)
	}

	return authors
}
