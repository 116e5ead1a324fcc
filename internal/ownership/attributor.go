// Package ownership attributes files to their primary contributor.
package ownership

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/onboardx/internal/logging"
	"github.com/rohankatakam/onboardx/internal/models"
)

// AuthorSource returns the author of every commit that touched a file,
// following renames. *git.Runner satisfies it.
type AuthorSource interface {
	Authors(ctx context.Context, repoRoot, filePath string) ([]string, error)
}

// Attributor determines primary contributors from full file history
type Attributor struct {
	source AuthorSource
	log    logrus.FieldLogger
}

// NewAttributor creates an attributor
func NewAttributor(source AuthorSource, log logrus.FieldLogger) *Attributor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Attributor{
		source: source,
		log:    log.WithField("component", "ownership"),
	}
}

// Attribute returns one record per file with retrievable history, in input
// order. Files are queried one at a time; a failed lookup is logged and the
// file is left out without affecting the others.
func (a *Attributor) Attribute(ctx context.Context, repoRoot string, files []string) []models.OwnershipRecord {
	records := make([]models.OwnershipRecord, 0, len(files))

	for i, file := range files {
		if ctx.Err() != nil {
			a.log.WithField("remaining", len(files)-i).Warn("ownership attribution cancelled")
			break
		}

		log := a.log.WithFields(logrus.Fields{"repo": repoRoot, "file": file})

		authors, err := a.source.Authors(ctx, repoRoot, file)
		if err != nil {
			logging.Failure(log, err, "ownership lookup failed, skipping file")
			continue
		}

		record, ok := FromAuthors(file, authors)
		if !ok {
			log.Debug("no history for file")
			continue
		}
		records = append(records, record)
	}

	return records
}

// FromAuthors tallies commits per identity. Contributors are sorted by
// commit count descending; equal counts keep first-seen order in authors.
// ok is false when authors is empty.
func FromAuthors(file string, authors []string) (record models.OwnershipRecord, ok bool) {
	if len(authors) == 0 {
		return models.OwnershipRecord{}, false
	}

	index := make(map[string]int)
	var contributors []models.Contributor
	for _, id := range authors {
		if i, seen := index[id]; seen {
			contributors[i].Commits++
			continue
		}
		index[id] = len(contributors)
		contributors = append(contributors, models.Contributor{Identity: id, Commits: 1})
	}

	sort.SliceStable(contributors, func(i, j int) bool {
		return contributors[i].Commits > contributors[j].Commits
	})

	return models.OwnershipRecord{
		File:               file,
		PrimaryContributor: contributors[0].Identity,
		ContributionCount:  contributors[0].Commits,
		AllContributors:    contributors,
	}, true
}
