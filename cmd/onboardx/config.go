package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rohankatakam/onboardx/internal/config"
)

type configFlags struct {
	validate bool
	write    bool
}

func newConfigCmd(g *globalFlags) *cobra.Command {
	f := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config [path]",
		Short: "Show the effective configuration",
		Long: `Prints the configuration onboardx would use for the repository, after
defaults, config file, .env files and ONBOARDX_* environment variables.

Examples:
  onboardx config              # print as YAML
  onboardx config --validate   # also report problems
  onboardx config --write      # save to .onboardx.yaml`,
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

			out := cmd.OutOrStdout()
			if source := config.UsedFile(g.cfgFile, root); source != "" {
				fmt.Fprintf(out, "# source: %s\n", source)
			} else {
				fmt.Fprintln(out, "# source: defaults")
			}
			fmt.Fprintf(out, "# mode: %s\n", config.DetectMode())

			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			fmt.Fprint(out, string(data))

			if f.validate {
				result := cfg.Validate()
				for _, warn := range result.Warnings {
					fmt.Fprintf(out, "⚠️  %s\n", warn)
				}
				if result.HasErrors() {
					return cfg.ValidateOrError()
				}
				fmt.Fprintln(out, "✅ Configuration is valid")
			}

			if f.write {
				path := filepath.Join(root, config.FileName)
				if err := cfg.Save(path); err != nil {
					return err
				}
				fmt.Fprintf(out, "✅ Saved %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&f.validate, "validate", false, "validate the configuration")
	cmd.Flags().BoolVar(&f.write, "write", false, "save the effective configuration to "+config.FileName)

	return cmd
}
