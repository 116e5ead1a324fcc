package git

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rohankatakam/onboardx/internal/errors"
)

const (
	// DefaultTimeout bounds a single git invocation
	DefaultTimeout = 60 * time.Second
	// DefaultMaxOutputBytes bounds the stdout of a single git invocation
	DefaultMaxOutputBytes = 16 * 1024 * 1024
	// DefaultMaxAuthorBytes bounds the per-file authorship query
	DefaultMaxAuthorBytes = 1024 * 1024
)

// ErrOutputTooLarge is returned when a git command writes more than the
// configured ceiling
var ErrOutputTooLarge = stderrors.New("git output exceeds buffer ceiling")

// Config configures the git runner
type Config struct {
	Binary         string
	Timeout        time.Duration
	MaxOutputBytes int
	MaxAuthorBytes int
}

// Runner invokes the git binary. It holds no per-repository state and is
// safe for concurrent use; one Runner is built per run and handed to every
// scorer that needs commit history.
type Runner struct {
	binary         string
	timeout        time.Duration
	maxOutputBytes int
	maxAuthorBytes int
}

// NewRunner creates a runner, filling zero config values with defaults
func NewRunner(cfg Config) *Runner {
	r := &Runner{
		binary:         cfg.Binary,
		timeout:        cfg.Timeout,
		maxOutputBytes: cfg.MaxOutputBytes,
		maxAuthorBytes: cfg.MaxAuthorBytes,
	}
	if r.binary == "" {
		r.binary = "git"
	}
	if r.timeout <= 0 {
		r.timeout = DefaultTimeout
	}
	if r.maxOutputBytes <= 0 {
		r.maxOutputBytes = DefaultMaxOutputBytes
	}
	if r.maxAuthorBytes <= 0 {
		r.maxAuthorBytes = DefaultMaxAuthorBytes
	}
	return r
}

// run executes git in repoRoot and returns stdout. A timeout, an oversized
// payload or a non-zero exit all surface as provider errors.
func (r *Runner) run(ctx context.Context, repoRoot string, limit int, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	stdout := &limitedBuffer{limit: limit, onOverflow: cancel}
	var stderr bytes.Buffer

	// paths in git's output stay byte-for-byte as on disk so they join with
	// the walked source files
	args = append([]string{"-c", "core.quotePath=false"}, args...)
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = repoRoot
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	command := r.binary + " " + strings.Join(args, " ")

	if stdout.Overflowed() {
		return "", errors.ProviderError(ErrOutputTooLarge, "git output too large").
			WithContext("command", command).
			WithContext("limit_bytes", limit)
	}
	if ctx.Err() == context.DeadlineExceeded {
		return "", errors.ProviderErrorf(ctx.Err(), "git timed out after %s", r.timeout).
			WithContext("command", command)
	}
	if err != nil {
		return "", errors.ProviderError(err, "git command failed").
			WithContext("command", command).
			WithContext("repo", repoRoot).
			WithContext("stderr", strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}

// IsRepository reports whether repoRoot is inside a git work tree
func (r *Runner) IsRepository(ctx context.Context, repoRoot string) bool {
	out, err := r.run(ctx, repoRoot, 1024, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// TopLevel returns the root directory of the work tree containing repoRoot
func (r *Runner) TopLevel(ctx context.Context, repoRoot string) (string, error) {
	out, err := r.run(ctx, repoRoot, 64*1024, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// HeadCommit returns the SHA of HEAD, or "" for an empty repository
func (r *Runner) HeadCommit(ctx context.Context, repoRoot string) string {
	out, err := r.run(ctx, repoRoot, 1024, "rev-parse", "HEAD")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// limitedBuffer collects output up to limit bytes and fails the write that
// crosses it, cancelling the command so git does not block on a full pipe
type limitedBuffer struct {
	mu         sync.Mutex
	buf        bytes.Buffer
	limit      int
	overflowed bool
	onOverflow func()
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.overflowed {
		return 0, ErrOutputTooLarge
	}
	if b.buf.Len()+len(p) > b.limit {
		b.overflowed = true
		if b.onOverflow != nil {
			b.onOverflow()
		}
		return 0, ErrOutputTooLarge
	}
	return b.buf.Write(p)
}

func (b *limitedBuffer) Overflowed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.overflowed
}

func (b *limitedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
