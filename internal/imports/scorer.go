package imports

import (
	"context"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/onboardx/internal/errors"
	"github.com/rohankatakam/onboardx/internal/logging"
	"github.com/rohankatakam/onboardx/internal/models"
	"github.com/rohankatakam/onboardx/internal/pathfilter"
	"github.com/rohankatakam/onboardx/internal/project"
)

// ImportSource enumerates the import specifiers of one source file.
// *treesitter.Parser satisfies it.
type ImportSource interface {
	Imports(ctx context.Context, filePath string) ([]string, error)
}

// Scorer computes import depth for every file of a project
type Scorer struct {
	source       ImportSource
	excludedDirs []string
	log          logrus.FieldLogger
}

// NewScorer creates an import-depth scorer. excludedDirs are skipped in
// addition to the default denylist and the project's own excludes.
func NewScorer(source ImportSource, excludedDirs []string, log logrus.FieldLogger) *Scorer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scorer{
		source:       source,
		excludedDirs: excludedDirs,
		log:          log.WithField("component", "imports"),
	}
}

// Score returns one record per included file sorted by depth descending.
// Import depth is a best-effort signal: a missing or malformed project
// configuration, or any walk failure, is logged and yields an empty slice.
func (s *Scorer) Score(ctx context.Context, repoRoot string) []models.ImportDepthRecord {
	log := s.log.WithField("repo", repoRoot)

	g, err := s.Build(ctx, repoRoot)
	if err != nil {
		logging.Failure(log, err, "import depth unavailable")
		return []models.ImportDepthRecord{}
	}

	records := g.Records()
	log.WithFields(logrus.Fields{
		"files": g.Len(),
		"edges": g.EdgeCount(),
	}).Debug("import depth scored")
	return records
}

// Build detects the project configuration, collects the included files and
// links every local import. A file that fails to parse is kept as a node
// without outgoing imports.
func (s *Scorer) Build(ctx context.Context, repoRoot string) (*Graph, error) {
	cfg, err := project.Detect(repoRoot)
	if err != nil {
		return nil, err
	}

	filter := pathfilter.New(append(append([]string{}, s.excludedDirs...), cfg.Exclude...)...)
	files, err := collectFiles(ctx, cfg, filter)
	if err != nil {
		return nil, errors.FileSystemError(err, "failed to walk project").WithContext("root", cfg.Root)
	}

	log := s.log.WithFields(logrus.Fields{"repo": repoRoot, "project": string(cfg.Kind)})
	log.WithField("files", len(files)).Debug("collected source files")

	g := NewGraph()
	for _, f := range files {
		g.AddFile(f)
	}

	resolver := NewResolver(cfg, files)
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, errors.ProviderError(err, "import scan cancelled")
		}

		specs, err := s.source.Imports(ctx, filepath.Join(cfg.Root, filepath.FromSlash(f)))
		if err != nil {
			log.WithField("file", f).WithFields(errors.LogFields(err)).Debug("skipping imports of unparsable file")
			continue
		}

		for _, spec := range specs {
			for _, target := range resolver.Resolve(f, spec) {
				g.AddImport(f, target)
			}
		}
	}

	return g, nil
}
