package churn

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/onboardx/internal/git"
	"github.com/rohankatakam/onboardx/internal/models"
	"github.com/rohankatakam/onboardx/internal/pathfilter"
	"github.com/rohankatakam/onboardx/internal/testutil"
)

type fakeSource struct {
	changes []git.FileChange
	err     error
}

func (f fakeSource) NumStat(context.Context, string, time.Time) ([]git.FileChange, error) {
	return f.changes, f.err
}

func TestAccumulate(t *testing.T) {
	changes := []git.FileChange{
		{Path: "src/b.ts", Additions: 10, Deletions: 0},
		{Path: "src/a.ts", Additions: 5, Deletions: 5},
		{Path: "node_modules/x/index.js", Additions: 500, Deletions: 0},
		{Path: "package-lock.json", Additions: 900, Deletions: 100},
		{Path: "src/c.ts", Additions: 30, Deletions: 2},
		{Path: "assets/logo.png", Additions: 1, Deletions: 1},
		{Path: "src/empty.ts", Additions: 0, Deletions: 0},
		{Path: "src/b.ts", Additions: 1, Deletions: 1},
	}

	got := Accumulate(changes, pathfilter.New())

	assert.Equal(t, []models.ChurnRecord{
		{File: "src/c.ts", Churn: 32},
		{File: "src/b.ts", Churn: 12},
		{File: "src/a.ts", Churn: 10},
	}, got)
}

func TestAccumulate_TiesKeepEncounterOrder(t *testing.T) {
	changes := []git.FileChange{
		{Path: "z.go", Additions: 3},
		{Path: "a.go", Additions: 3},
		{Path: "m.go", Additions: 7},
		{Path: "b.go", Additions: 3},
	}

	got := Accumulate(changes, pathfilter.New())

	files := make([]string, len(got))
	for i, r := range got {
		files[i] = r.File
	}
	assert.Equal(t, []string{"m.go", "z.go", "a.go", "b.go"}, files)
}

func TestAccumulate_Ordering(t *testing.T) {
	var changes []git.FileChange
	for i := 0; i < 50; i++ {
		changes = append(changes, git.FileChange{
			Path:      filepath.ToSlash(filepath.Join("pkg", string(rune('a'+i%26))+".go")),
			Additions: (i * 7) % 13,
			Deletions: i % 3,
		})
	}

	got := Accumulate(changes, pathfilter.New())
	require.NotEmpty(t, got)
	for i := range got {
		assert.Greater(t, got[i].Churn, 0)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Churn, got[i].Churn)
		}
	}
}

func TestScorer_ProviderFailure(t *testing.T) {
	log, hook := test.NewNullLogger()
	s := NewScorer(fakeSource{err: errors.New("boom")}, nil, log)

	got := s.Score(context.Background(), "/nowhere", time.Now())

	assert.NotNil(t, got)
	assert.Empty(t, got)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "churn", hook.LastEntry().Data["component"])
}

func TestScorer_NonExistentRoot(t *testing.T) {
	log, _ := test.NewNullLogger()
	s := NewScorer(git.NewRunner(git.Config{}), nil, log)

	got := s.Score(context.Background(), filepath.Join(t.TempDir(), "missing"), time.Now().AddDate(-1, 0, 0))
	assert.Empty(t, got)
}

func TestScorer_Repository(t *testing.T) {
	repo := testutil.NewRepo(t)
	repo.Commit("Alice", "init", map[string]string{
		"src/hot.ts":        testutil.Lines("h", 40),
		"src/cold.ts":       testutil.Lines("c", 3),
		"dist/bundle.js":    testutil.Lines("b", 400),
		"package-lock.json": "{}\n",
	})
	repo.Commit("Bob", "edit", map[string]string{
		"src/hot.ts": testutil.Lines("H", 40),
	})

	log, _ := test.NewNullLogger()
	s := NewScorer(git.NewRunner(git.Config{}), pathfilter.New(), log)

	got := s.Score(context.Background(), repo.Dir, time.Now().AddDate(-1, 0, 0))

	// 40 added, then 40 deleted and 40 added
	assert.Equal(t, []models.ChurnRecord{
		{File: "src/hot.ts", Churn: 120},
		{File: "src/cold.ts", Churn: 3},
	}, got)
}

func TestTop(t *testing.T) {
	records := []models.ChurnRecord{{File: "a", Churn: 3}, {File: "b", Churn: 2}, {File: "c", Churn: 1}}

	assert.Len(t, Top(records, 2), 2)
	assert.Len(t, Top(records, 5), 3)
	assert.Len(t, Top(records, 0), 0)
	assert.Len(t, Top(nil, 5), 0)
}

func TestScorer_NonASCIIFileNames(t *testing.T) {
	repo := testutil.NewRepo(t)
	repo.Commit("Alice", "init", map[string]string{
		"src/café.ts":  testutil.Lines("c", 4),
		"src/plain.ts": testutil.Lines("p", 2),
	})

	log, _ := test.NewNullLogger()
	s := NewScorer(git.NewRunner(git.Config{}), pathfilter.New(), log)

	got := s.Score(context.Background(), repo.Dir, time.Now().AddDate(-1, 0, 0))

	assert.Equal(t, []models.ChurnRecord{
		{File: "src/café.ts", Churn: 4},
		{File: "src/plain.ts", Churn: 2},
	}, got)
}
