package analysis

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rohankatakam/onboardx/internal/churn"
	"github.com/rohankatakam/onboardx/internal/models"
	"github.com/rohankatakam/onboardx/internal/render"
)

// ChurnScorer scores files by change frequency
type ChurnScorer interface {
	Score(ctx context.Context, repoRoot string, since time.Time) []models.ChurnRecord
}

// DepthScorer scores files by import depth
type DepthScorer interface {
	Score(ctx context.Context, repoRoot string) []models.ImportDepthRecord
}

// OwnershipAttributor finds the primary contributor of each file
type OwnershipAttributor interface {
	Attribute(ctx context.Context, repoRoot string, files []string) []models.OwnershipRecord
}

// RepoInfo describes the repository being analyzed
type RepoInfo interface {
	DisplayName(ctx context.Context, repoRoot string) string
	HeadCommit(ctx context.Context, repoRoot string) string
}

// Options configures one analysis run
type Options struct {
	RepoRoot        string
	Since           time.Time
	TopN            int
	Graph           render.GraphOptions
	ScatterMaxNodes int
}

// Result is everything a run produced. Signals that could not be computed
// are empty, never nil.
type Result struct {
	RunID       string
	Repo        string
	RepoRoot    string
	Commit      string
	GeneratedAt time.Time
	Since       time.Time
	Duration    time.Duration

	Churn     []models.ChurnRecord
	Ownership []models.OwnershipRecord
	Depth     []models.ImportDepthRecord
	Files     []models.RankedFile
	Diagrams  []models.Diagram
}

// Diagram returns the diagram of the given kind, if it was rendered
func (r *Result) Diagram(kind models.DiagramKind) (models.Diagram, bool) {
	for _, d := range r.Diagrams {
		if d.Kind == kind {
			return d, true
		}
	}
	return models.Diagram{}, false
}

// Analyzer runs the scoring passes, joins them and renders the diagrams
type Analyzer struct {
	churn  ChurnScorer
	depth  DepthScorer
	owners OwnershipAttributor
	repo   RepoInfo
	logger *logrus.Logger
}

// NewAnalyzer creates an analyzer
func NewAnalyzer(
	churn ChurnScorer,
	depth DepthScorer,
	owners OwnershipAttributor,
	repo RepoInfo,
	logger *logrus.Logger,
) *Analyzer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Analyzer{
		churn:  churn,
		depth:  depth,
		owners: owners,
		repo:   repo,
		logger: logger,
	}
}

// Run analyzes one repository. Churn and import depth are computed
// concurrently; ownership is then attributed for the top churn files only.
// A missing signal degrades the result instead of failing it; the only
// error is cancellation of ctx.
func (a *Analyzer) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	root := opts.RepoRoot
	if root == "" {
		root = "."
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	scatterMax := opts.ScatterMaxNodes
	if scatterMax <= 0 {
		scatterMax = render.DefaultScatterMaxNodes
	}

	result := &Result{
		RunID:       uuid.New().String(),
		RepoRoot:    root,
		GeneratedAt: start.UTC(),
		Since:       opts.Since,
	}
	log := a.logger.WithFields(logrus.Fields{
		"run_id": result.RunID,
		"repo":   root,
	})
	log.Info("Starting analysis")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.Churn = a.churn.Score(gctx, root, opts.Since)
		return nil
	})
	g.Go(func() error {
		result.Depth = a.depth.Score(gctx, root)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	top := churn.Top(result.Churn, topN)
	files := make([]string, len(top))
	for i, c := range top {
		files[i] = c.File
	}
	result.Ownership = a.owners.Attribute(ctx, root, files)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	result.Files = Join(top, result.Ownership, result.Depth)
	result.Diagrams = Diagrams(result, opts.Graph, scatterMax)

	if a.repo != nil {
		result.Repo = a.repo.DisplayName(ctx, root)
		result.Commit = a.repo.HeadCommit(ctx, root)
	}
	if result.Repo == "" {
		result.Repo = filepath.Base(root)
	}
	result.Duration = time.Since(start)

	log.WithFields(logrus.Fields{
		"churn_files": len(result.Churn),
		"depth_files": len(result.Depth),
		"owned_files": len(result.Ownership),
		"ranked":      len(result.Files),
		"duration":    result.Duration.Round(time.Millisecond).String(),
	}).Info("Analysis completed")

	return result, nil
}

// Diagrams renders the dependency graph, the churn-vs-depth scatter and
// the ownership map of a result
func Diagrams(result *Result, graph render.GraphOptions, scatterMax int) []models.Diagram {
	points := render.ScatterPoints(result.Files)
	if scatterMax > 0 && len(points) > scatterMax {
		points = points[:scatterMax]
	}

	title := graph.Title
	if title == "" {
		title = render.DefaultTitle
	}

	return []models.Diagram{
		{
			Kind:   models.DiagramDependencyGraph,
			Title:  title,
			Source: render.DependencyGraph(result.Depth, result.Churn, result.Ownership, graph),
		},
		{
			Kind:   models.DiagramRiskScatter,
			Title:  "Churn vs Import Depth",
			Source: render.RiskScatter(points),
		},
		{
			Kind:   models.DiagramOwnershipMap,
			Title:  "Code Ownership Map",
			Source: render.OwnershipMap(result.Ownership),
		},
	}
}
