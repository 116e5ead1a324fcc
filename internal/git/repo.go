package git

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	httpsRemote = regexp.MustCompile(`https?://[^/]+/([^/]+)/([^/]+)`)
	sshRemote   = regexp.MustCompile(`git@[^:]+:([^/]+)/([^/]+)`)
	gitRemote   = regexp.MustCompile(`git://[^/]+/([^/]+)/([^/]+)`)
)

// ParseRepoURL extracts org and repo name from git remote URL
// Supports multiple URL formats:
//   - HTTPS: https://github.com/owner/repo.git
//   - SSH: git@github.com:owner/repo.git
//   - Git protocol: git://github.com/owner/repo.git
func ParseRepoURL(remoteURL string) (org, repo string, err error) {
	remoteURL = strings.TrimSuffix(strings.TrimSpace(remoteURL), ".git")

	for _, re := range []*regexp.Regexp{httpsRemote, sshRemote, gitRemote} {
		if matches := re.FindStringSubmatch(remoteURL); len(matches) == 3 {
			return matches[1], matches[2], nil
		}
	}

	return "", "", fmt.Errorf("unrecognized git URL format: %s", remoteURL)
}

// RemoteURL returns the URL of the origin remote
func (r *Runner) RemoteURL(ctx context.Context, repoRoot string) (string, error) {
	out, err := r.run(ctx, repoRoot, 64*1024, "config", "--get", "remote.origin.url")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// DisplayName returns "owner/repo" when the origin remote is recognizable,
// otherwise the base name of the repository directory
func (r *Runner) DisplayName(ctx context.Context, repoRoot string) string {
	if remote, err := r.RemoteURL(ctx, repoRoot); err == nil && remote != "" {
		if org, repo, err := ParseRepoURL(remote); err == nil {
			return org + "/" + repo
		}
	}

	abs, err := filepath.Abs(repoRoot)
	if err != nil {
		return repoRoot
	}
	return filepath.Base(abs)
}
