// Package churn computes per-file change frequency from commit history.
package churn

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/onboardx/internal/git"
	"github.com/rohankatakam/onboardx/internal/logging"
	"github.com/rohankatakam/onboardx/internal/models"
	"github.com/rohankatakam/onboardx/internal/pathfilter"
)

// ChangeSource returns per-file line statistics for every commit since a
// point in time. *git.Runner satisfies it.
type ChangeSource interface {
	NumStat(ctx context.Context, repoRoot string, since time.Time) ([]git.FileChange, error)
}

// Scorer turns commit line statistics into churn records
type Scorer struct {
	source ChangeSource
	filter *pathfilter.Filter
	log    logrus.FieldLogger
}

// NewScorer creates a churn scorer. A nil filter uses the default policy.
func NewScorer(source ChangeSource, filter *pathfilter.Filter, log logrus.FieldLogger) *Scorer {
	if filter == nil {
		filter = pathfilter.New()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scorer{
		source: source,
		filter: filter,
		log:    log.WithField("component", "churn"),
	}
}

// Score returns one record per included file touched since the given time,
// sorted by churn descending. Files with equal churn keep the order in which
// the log first mentioned them.
//
// Churn is a best-effort signal: if history cannot be read the failure is
// logged and an empty slice is returned.
func (s *Scorer) Score(ctx context.Context, repoRoot string, since time.Time) []models.ChurnRecord {
	log := s.log.WithField("repo", repoRoot)

	changes, err := s.source.NumStat(ctx, repoRoot, since)
	if err != nil {
		logging.Failure(log, err, "churn unavailable, commit history could not be read")
		return []models.ChurnRecord{}
	}

	records := Accumulate(changes, s.filter)
	log.WithFields(logrus.Fields{
		"changes": len(changes),
		"files":   len(records),
	}).Debug("churn scored")
	return records
}

// Accumulate sums additions and deletions per included path and returns the
// positive totals sorted by churn descending, stable on first encounter
func Accumulate(changes []git.FileChange, filter *pathfilter.Filter) []models.ChurnRecord {
	totals := make(map[string]int)
	var order []string

	for _, c := range changes {
		if !filter.Include(c.Path) {
			continue
		}
		if _, seen := totals[c.Path]; !seen {
			order = append(order, c.Path)
		}
		totals[c.Path] += c.Additions + c.Deletions
	}

	records := make([]models.ChurnRecord, 0, len(order))
	for _, path := range order {
		if totals[path] > 0 {
			records = append(records, models.ChurnRecord{File: path, Churn: totals[path]})
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Churn > records[j].Churn
	})
	return records
}

// Top returns at most n leading records
func Top(records []models.ChurnRecord, n int) []models.ChurnRecord {
	if n < 0 || n >= len(records) {
		return records
	}
	return records[:n]
}
