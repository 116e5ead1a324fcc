package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rohankatakam/onboardx/internal/workflow"
)

type initCIFlags struct {
	branch string
	force  bool
}

func newInitCICmd(g *globalFlags) *cobra.Command {
	f := &initCIFlags{}

	cmd := &cobra.Command{
		Use:   "init-ci [path]",
		Short: "Add a GitHub Actions workflow that keeps ONBOARD.md fresh",
		Long: `Writes ` + workflow.Path + ` into the repository. The workflow runs
onboardx on every push to the branch and commits the refreshed report.

Examples:
  onboardx init-ci                  # workflow for the main branch
  onboardx init-ci --branch develop
  onboardx init-ci --force          # overwrite an existing workflow`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := repoRoot(args)
			if err != nil {
				return err
			}
			cfg, err := g.loadConfig(root)
			if err != nil {
				return err
			}
			if err := cfg.ValidateOrError(); err != nil {
				return err
			}

			path, err := workflow.Write(root, workflow.Options{
				Branch:   f.branch,
				Output:   cfg.Output.File,
				Since:    cfg.Analysis.Since,
				Diagrams: cfg.Output.Diagrams,
				Force:    f.force,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Wrote %s\n", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Commit it and push to %s to generate %s on every push.\n", f.branch, cfg.Output.File)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.branch, "branch", "main", "branch that triggers the workflow")
	cmd.Flags().BoolVar(&f.force, "force", false, "overwrite an existing workflow")

	return cmd
}
