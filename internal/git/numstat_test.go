package git

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/onboardx/internal/testutil"
)

func TestParseNumstat(t *testing.T) {
	output := "10\t2\tsrc/app.ts\x00" +
		"-\t-\tassets/logo.png\x00" +
		"\n3\t0\t\x00src/old/util.ts\x00src/new/util.ts\x00" +
		"garbage entry\x00" +
		"4\t4\tsrc/caf\u00e9 notes.md\x00" +
		// rename cut off before its paths
		"1\t1\t\x00"

	got := ParseNumstat(output)

	assert.Equal(t, []FileChange{
		{Path: "src/app.ts", Additions: 10, Deletions: 2},
		{Path: "src/new/util.ts", Additions: 3, Deletions: 0},
		{Path: "src/caf\u00e9 notes.md", Additions: 4, Deletions: 4},
	}, got)
}

func TestParseNumstat_Empty(t *testing.T) {
	assert.Empty(t, ParseNumstat(""))
	assert.Empty(t, ParseNumstat("\x00\n\x00"))
}

func TestRunner_NumStat(t *testing.T) {
	repo := testutil.NewRepo(t)
	repo.Commit("Alice", "init", map[string]string{
		"src/a.ts": testutil.Lines("a", 5),
		"src/b.ts": testutil.Lines("b", 2),
	})
	repo.Commit("Bob", "grow a", map[string]string{
		"src/a.ts": testutil.Lines("a", 8),
	})

	r := NewRunner(Config{})
	changes, err := r.NumStat(context.Background(), repo.Dir, time.Now().AddDate(-1, 0, 0))
	require.NoError(t, err)

	totals := map[string]int{}
	for _, c := range changes {
		totals[c.Path] += c.Additions + c.Deletions
	}
	assert.Equal(t, 8, totals["src/a.ts"])
	assert.Equal(t, 2, totals["src/b.ts"])
}

func TestRunner_NumStat_FutureWindow(t *testing.T) {
	repo := testutil.NewRepo(t)
	repo.Commit("Alice", "init", map[string]string{"a.go": "package a\n"})

	r := NewRunner(Config{})
	changes, err := r.NumStat(context.Background(), repo.Dir, time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestRunner_NumStat_NonASCIIPaths(t *testing.T) {
	repo := testutil.NewRepo(t)
	repo.Commit("Alice", "init", map[string]string{
		"src/café.ts":     testutil.Lines("c", 3),
		"docs/naïve í.md": testutil.Lines("d", 2),
	})
	repo.Rename("Bob", "src/café.ts", "src/crème.ts")

	r := NewRunner(Config{})
	changes, err := r.NumStat(context.Background(), repo.Dir, time.Now().AddDate(-1, 0, 0))
	require.NoError(t, err)

	paths := map[string]bool{}
	for _, c := range changes {
		paths[c.Path] = true
	}
	assert.True(t, paths["src/café.ts"])
	assert.True(t, paths["docs/naïve í.md"])
	assert.True(t, paths["src/crème.ts"])
	for p := range paths {
		assert.NotContains(t, p, `"`)
		assert.NotContains(t, p, "=>")
	}
}
