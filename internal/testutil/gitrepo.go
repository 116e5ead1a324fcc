// Package testutil provides throwaway git repositories for tests that need
// real commit history.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// Repo is a git repository in a temporary directory
type Repo struct {
	t   testing.TB
	Dir string
}

// NewRepo initializes an empty repository, skipping the test when git is not
// installed
func NewRepo(t testing.TB) *Repo {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	r := &Repo{t: t, Dir: t.TempDir()}
	r.Git("init", "-q")
	r.Git("config", "commit.gpgsign", "false")
	return r
}

// Git runs a git command in the repository and returns its trimmed stdout
func (r *Repo) Git(args ...string) string {
	r.t.Helper()
	return r.gitAs("Test User", args...)
}

func (r *Repo) gitAs(author string, args ...string) string {
	r.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	email := strings.ToLower(strings.ReplaceAll(author, " ", ".")) + "@example.com"
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME="+author,
		"GIT_AUTHOR_EMAIL="+email,
		"GIT_COMMITTER_NAME="+author,
		"GIT_COMMITTER_EMAIL="+email,
		"GIT_CONFIG_NOSYSTEM=1",
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// WriteFile writes a file relative to the repository root without committing
func (r *Repo) WriteFile(rel, content string) {
	r.t.Helper()

	path := filepath.Join(r.Dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("write %s: %v", rel, err)
	}
}

// Commit writes files and commits them as author
func (r *Repo) Commit(author, message string, files map[string]string) {
	r.t.Helper()

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		r.WriteFile(p, files[p])
		r.gitAs(author, "add", "--", p)
	}
	r.gitAs(author, "commit", "-q", "--allow-empty", "-m", message)
}

// Rename moves a tracked file and commits the rename as author
func (r *Repo) Rename(author, from, to string) {
	r.t.Helper()

	if dir := filepath.Dir(filepath.Join(r.Dir, filepath.FromSlash(to))); dir != r.Dir {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			r.t.Fatalf("mkdir for %s: %v", to, err)
		}
	}
	r.gitAs(author, "mv", from, to)
	r.gitAs(author, "commit", "-q", "-m", "rename "+from)
}

// Lines returns n newline-terminated lines, handy for predictable numstat
// counts
func Lines(prefix string, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(prefix)
		b.WriteString("\n")
	}
	return b.String()
}
