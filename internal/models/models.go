package models

// UnknownContributor is the owner reported for a ranked file whose
// authorship could not be retrieved.
const UnknownContributor = "Unknown"

// DefaultReportFile is the onboarding report written at the repository root
const DefaultReportFile = "ONBOARD.md"

// ChurnRecord is the change frequency of one file in the observation window
type ChurnRecord struct {
	File  string `json:"file" yaml:"file"`
	Churn int    `json:"churn" yaml:"churn"` // added + deleted lines, always > 0
}

// Contributor is one identity's commit tally for a file
type Contributor struct {
	Identity string `json:"identity" yaml:"identity"`
	Commits  int    `json:"commits" yaml:"commits"`
}

// OwnershipRecord describes who owns a file.
//
// PrimaryContributor and ContributionCount always mirror AllContributors[0];
// AllContributors is sorted by commit count descending, ties kept in the
// order the identities first appeared in the history.
type OwnershipRecord struct {
	File               string        `json:"file" yaml:"file"`
	PrimaryContributor string        `json:"primary_contributor" yaml:"primary_contributor"`
	ContributionCount  int           `json:"contribution_count" yaml:"contribution_count"`
	AllContributors    []Contributor `json:"all_contributors" yaml:"all_contributors"`
}

// ImportDepthRecord is the length of the longest local import chain ending at
// a file. Files imported by nothing have depth 1.
type ImportDepthRecord struct {
	File  string `json:"file" yaml:"file"` // slash-separated, relative to the repository root
	Depth int    `json:"depth" yaml:"depth"`
}

// RankedFile is the joined view of the three signals for one top-churn file
type RankedFile struct {
	File               string `json:"file" yaml:"file"`
	Churn              int    `json:"churn" yaml:"churn"`
	PrimaryContributor string `json:"primary_contributor" yaml:"primary_contributor"`
	ContributionCount  int    `json:"contribution_count" yaml:"contribution_count"`
	ImportDepth        int    `json:"import_depth" yaml:"import_depth"` // 0 when the file is not in the import graph
}

// DiagramKind identifies one of the rendered diagrams
type DiagramKind string

const (
	DiagramDependencyGraph DiagramKind = "dependency-graph"
	DiagramRiskScatter     DiagramKind = "risk-scatter"
	DiagramOwnershipMap    DiagramKind = "ownership-map"
)

// Diagram is a rendered Mermaid document
type Diagram struct {
	Kind   DiagramKind `json:"kind" yaml:"kind"`
	Title  string      `json:"title" yaml:"title"`
	Source string      `json:"source" yaml:"source"`
}
