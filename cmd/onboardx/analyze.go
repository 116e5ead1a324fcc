package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rohankatakam/onboardx/internal/analysis"
	"github.com/rohankatakam/onboardx/internal/churn"
	"github.com/rohankatakam/onboardx/internal/config"
	"github.com/rohankatakam/onboardx/internal/git"
	"github.com/rohankatakam/onboardx/internal/imports"
	"github.com/rohankatakam/onboardx/internal/output"
	"github.com/rohankatakam/onboardx/internal/ownership"
	"github.com/rohankatakam/onboardx/internal/pathfilter"
	"github.com/rohankatakam/onboardx/internal/treesitter"
)

type analyzeFlags struct {
	out      string
	diagrams bool
	since    string
	top      int
	maxNodes int
	open     bool
	json     bool
}

func newAnalyzeCmd(g *globalFlags) *cobra.Command {
	f := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "onboardx [path]",
		Short: "Generate ONBOARD.md for any Git repo",
		Long: `onboardx ranks the files of a repository by how often they change,
names the contributor who knows each one best, measures how deep it sits in
the import graph, and writes the result to ONBOARD.md with Mermaid diagrams.

Examples:
  onboardx                         # analyze the current repository
  onboardx ../service -o GUIDE.md  # analyze another checkout
  onboardx --since 6m --top 10     # last six months, ten files
  onboardx --diagrams              # also print the diagrams to stdout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, g, f)
		},
	}

	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output file (default: ONBOARD.md in the repository)")
	cmd.Flags().BoolVar(&f.diagrams, "diagrams", false, "print the Mermaid diagrams to stdout")
	cmd.Flags().StringVar(&f.since, "since", "", "churn window: 1y, 6m, 2w, 90d, a duration, or a date")
	cmd.Flags().IntVar(&f.top, "top", 0, "number of files to rank")
	cmd.Flags().IntVar(&f.maxNodes, "max-nodes", 0, "maximum nodes in the dependency graph")
	cmd.Flags().BoolVar(&f.open, "open", false, "open the report when done")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the result as JSON")

	return cmd
}

// apply copies explicitly set flags over the loaded configuration
func (f *analyzeFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("since") {
		cfg.Analysis.Since = f.since
	}
	if cmd.Flags().Changed("top") {
		cfg.Analysis.TopN = f.top
	}
	if cmd.Flags().Changed("max-nodes") {
		cfg.Render.MaxNodes = f.maxNodes
	}
}

// reportPath resolves where the report goes. An explicit -o is relative to
// the working directory; the configured default lives in the repository.
func (f *analyzeFlags) reportPath(cmd *cobra.Command, cfg *config.Config, root string) string {
	if cmd.Flags().Changed("out") {
		if abs, err := filepath.Abs(f.out); err == nil {
			return abs
		}
		return f.out
	}
	if filepath.IsAbs(cfg.Output.File) {
		return cfg.Output.File
	}
	return filepath.Join(root, cfg.Output.File)
}

func runAnalyze(cmd *cobra.Command, args []string, g *globalFlags, f *analyzeFlags) error {
	ctx := cmd.Context()

	root, exists, err := analysisRoot(args)
	if err != nil {
		return err
	}
	cfg, err := g.loadConfig(root)
	if err != nil {
		return err
	}
	f.apply(cmd, cfg)
	if err := cfg.ValidateOrError(); err != nil {
		return err
	}

	mode := config.DetectMode()
	logger, err := newLogger(cfg, mode, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Close()

	since, err := config.ParseSince(cfg.Analysis.Since, time.Now())
	if err != nil {
		return err
	}

	runner := git.NewRunner(cfg.GitRunnerConfig())
	if !exists {
		logger.WithField("repo", root).Warn("Repository path does not exist; the report will be empty")
	} else if !runner.IsRepository(ctx, root) {
		logger.WithField("repo", root).Warn("Not a git repository; churn and ownership will be empty")
	} else if top, err := runner.TopLevel(ctx, root); err == nil && top != root {
		// git reports paths relative to the work tree root
		logger.WithFields(logrus.Fields{"path": root, "repo": top}).Debug("Analyzing enclosing work tree")
		root = top
	}

	analyzer := analysis.NewAnalyzer(
		churn.NewScorer(runner, pathfilter.New(cfg.Analysis.ExcludeDirs...), logger),
		imports.NewScorer(treesitter.NewParser(0), cfg.Analysis.ExcludeDirs, logger),
		ownership.NewAttributor(runner, logger),
		runner,
		logger.Logger,
	)

	result, err := analyzer.Run(ctx, analysis.Options{
		RepoRoot:        root,
		Since:           since,
		TopN:            cfg.Analysis.TopN,
		Graph:           cfg.GraphOptions(),
		ScatterMaxNodes: cfg.Render.ScatterMaxNodes,
	})
	if err != nil {
		return err
	}

	// the default report lives inside the repository, which must not be
	// conjured up just to hold an empty report
	outPath := ""
	if exists || cmd.Flags().Changed("out") {
		outPath = f.reportPath(cmd, cfg, root)
		report := output.NewMarkdownReport(output.ReportOptions{IncludeDiagrams: cfg.Output.Diagrams})
		if err := report.WriteFile(result, outPath); err != nil {
			return err
		}
		logger.WithField("path", outPath).Info("Report written")
	} else {
		logger.Warn("Report not written; pass -o to save the empty report")
	}

	stdout := cmd.OutOrStdout()
	if err := consoleFormatter(mode, f.json, stdout).Format(result, stdout); err != nil {
		return err
	}
	if f.diagrams && !f.json {
		if err := printDiagrams(result, stdout); err != nil {
			return err
		}
	}

	if f.open && outPath != "" {
		if err := browser.OpenFile(outPath); err != nil {
			logger.WithError(err).Warn("Failed to open report")
		}
	}
	return nil
}

func consoleFormatter(mode config.RunMode, asJSON bool, stdout io.Writer) output.Formatter {
	switch {
	case asJSON:
		return output.NewFormatter(output.VerbosityJSON)
	case mode == config.ModeHook:
		return output.NewFormatter(output.VerbosityQuiet)
	default:
		return &output.StandardFormatter{Styled: mode.AllowsStyledOutput() && output.IsTerminal(stdout)}
	}
}

func printDiagrams(result *analysis.Result, w io.Writer) error {
	for _, d := range result.Diagrams {
		if _, err := fmt.Fprintf(w, "%%%% %s\n%s\n", d.Title, d.Source); err != nil {
			return err
		}
	}
	return nil
}
