package git

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// FileChange is one numstat line: lines added and deleted in one file by one
// commit
type FileChange struct {
	Path      string
	Additions int
	Deletions int
}

// NumStat returns the per-file line statistics of every commit since the
// given time. Binary changes and malformed entries are dropped.
func (r *Runner) NumStat(ctx context.Context, repoRoot string, since time.Time) ([]FileChange, error) {
	// -z keeps paths verbatim: no C-quoting of non-ASCII bytes, and renames
	// arrive as separate old and new path fields
	out, err := r.run(ctx, repoRoot, r.maxOutputBytes,
		"log",
		"--since="+since.Format(time.RFC3339),
		"--numstat",
		"-z",
		"--pretty=format:")
	if err != nil {
		return nil, err
	}
	return ParseNumstat(out), nil
}

// ParseNumstat parses `git log --numstat -z` output. Each entry is
// "additions<TAB>deletions<TAB>path" terminated by NUL; a rename leaves the
// path empty and is followed by the old and new paths as two more
// NUL-terminated fields. Entries with a non-numeric count (git prints "-" for
// binary files) or an empty path are skipped.
func ParseNumstat(output string) []FileChange {
	var changes []FileChange

	fields := strings.Split(output, "\x00")
	for i := 0; i < len(fields); i++ {
		// commit boundaries show up as newlines ahead of the next entry
		entry := strings.TrimLeft(fields[i], "\r\n")
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, "\t", 3)
		if len(parts) != 3 {
			continue
		}

		path := parts[2]
		if path == "" {
			// rename: old path, then new path
			if i+2 >= len(fields) {
				break
			}
			path = fields[i+2]
			i += 2
		}

		additions, err := strconv.Atoi(parts[0])
		if err != nil || additions < 0 {
			continue
		}
		deletions, err := strconv.Atoi(parts[1])
		if err != nil || deletions < 0 {
			continue
		}
		if path == "" {
			continue
		}

		changes = append(changes, FileChange{
			Path:      path,
			Additions: additions,
			Deletions: deletions,
		})
	}

	return changes
}
