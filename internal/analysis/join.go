// Package analysis joins the churn, ownership and import-depth signals into
// one ranked view and runs the pipeline that produces them.
package analysis

import (
	"github.com/rohankatakam/onboardx/internal/models"
)

// DefaultTopN is how many of the highest-churn files are promoted into the
// ranked report
const DefaultTopN = 5

// Join left-joins ownership and depth onto the top churn records, keeping
// their order. A file with no ownership record gets "Unknown" and 0
// commits; a file with no depth record gets depth 0.
func Join(topChurn []models.ChurnRecord, ownership []models.OwnershipRecord, depth []models.ImportDepthRecord) []models.RankedFile {
	owners := make(map[string]models.OwnershipRecord, len(ownership))
	for _, o := range ownership {
		if _, dup := owners[o.File]; !dup {
			owners[o.File] = o
		}
	}
	depths := make(map[string]int, len(depth))
	for _, d := range depth {
		if _, dup := depths[d.File]; !dup {
			depths[d.File] = d.Depth
		}
	}

	ranked := make([]models.RankedFile, 0, len(topChurn))
	for _, c := range topChurn {
		file := models.RankedFile{
			File:               c.File,
			Churn:              c.Churn,
			PrimaryContributor: models.UnknownContributor,
		}
		if o, ok := owners[c.File]; ok {
			file.PrimaryContributor = o.PrimaryContributor
			file.ContributionCount = o.ContributionCount
		}
		file.ImportDepth = depths[c.File]
		ranked = append(ranked, file)
	}
	return ranked
}
