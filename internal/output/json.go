package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/rohankatakam/onboardx/internal/analysis"
	"github.com/rohankatakam/onboardx/internal/models"
)

// JSONFormatter emits the result for scripts and CI steps
type JSONFormatter struct {
	Indent bool
}

type jsonFile struct {
	Rank               int    `json:"rank"`
	File               string `json:"file"`
	Churn              int    `json:"churn"`
	PrimaryContributor string `json:"primary_contributor"`
	ContributionCount  int    `json:"contribution_count"`
	ImportDepth        int    `json:"import_depth"`
}

type jsonDiagram struct {
	Kind   string `json:"kind"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

type jsonResult struct {
	RunID       string        `json:"run_id"`
	Repo        string        `json:"repo"`
	Commit      string        `json:"commit,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
	Since       time.Time     `json:"since"`
	DurationMS  int64         `json:"duration_ms"`
	ChurnFiles  int           `json:"churn_files"`
	DepthFiles  int           `json:"depth_files"`
	TopFiles    []jsonFile    `json:"top_files"`
	Diagrams    []jsonDiagram `json:"diagrams,omitempty"`
}

func (f *JSONFormatter) Format(result *analysis.Result, w io.Writer) error {
	out := jsonResult{
		RunID:       result.RunID,
		Repo:        result.Repo,
		Commit:      result.Commit,
		GeneratedAt: result.GeneratedAt,
		Since:       result.Since,
		DurationMS:  result.Duration.Milliseconds(),
		ChurnFiles:  len(result.Churn),
		DepthFiles:  len(result.Depth),
		TopFiles:    make([]jsonFile, len(result.Files)),
	}
	for i, file := range result.Files {
		out.TopFiles[i] = toJSONFile(i+1, file)
	}
	for _, d := range result.Diagrams {
		out.Diagrams = append(out.Diagrams, jsonDiagram{Kind: string(d.Kind), Title: d.Title, Source: d.Source})
	}

	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func toJSONFile(rank int, f models.RankedFile) jsonFile {
	return jsonFile{
		Rank:               rank,
		File:               f.File,
		Churn:              f.Churn,
		PrimaryContributor: f.PrimaryContributor,
		ContributionCount:  f.ContributionCount,
		ImportDepth:        f.ImportDepth,
	}
}
