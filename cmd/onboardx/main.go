package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rohankatakam/onboardx/internal/config"
	onboarderrors "github.com/rohankatakam/onboardx/internal/errors"
	"github.com/rohankatakam/onboardx/internal/logging"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 when the invocation itself was wrong (bad flags, config or
// arguments) and 1 when the run failed
func exitCode(err error) int {
	switch onboarderrors.GetType(err) {
	case onboarderrors.ErrorTypeConfig, onboarderrors.ErrorTypeValidation:
		return 2
	default:
		return 1
	}
}

// globalFlags are shared by every subcommand
type globalFlags struct {
	cfgFile string
	verbose bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := newAnalyzeCmd(g)
	rootCmd.Version = Version
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVar(&g.cfgFile, "config", "", "config file (default: .onboardx.yaml in the repository)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")

	rootCmd.SetVersionTemplate(`onboardx {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	rootCmd.AddCommand(newInitCICmd(g))
	rootCmd.AddCommand(newConfigCmd(g))

	return rootCmd
}

// repoRoot resolves the optional [path] argument
func repoRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("invalid repository path %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("repository path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("repository path %q is not a directory", root)
	}
	return abs, nil
}

// analysisRoot resolves [path] for the analyze command. A path that does not
// exist is not an error there: every signal degrades to empty, so exists is
// false and the caller still produces an (empty) report.
func analysisRoot(args []string) (root string, exists bool, err error) {
	root, err = repoRoot(args)
	if err == nil {
		return root, true, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", false, err
	}

	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	root, err = filepath.Abs(path)
	if err != nil {
		return "", false, err
	}
	return root, false, nil
}

// loadConfig reads configuration for root. A broken config file is a usage
// error, not something to silently replace with defaults.
func (g *globalFlags) loadConfig(root string) (*config.Config, error) {
	cfg, err := config.Load(g.cfgFile, root)
	if err != nil {
		return nil, err
	}
	if g.verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// newLogger builds the run logger on stderr; stdout carries reports and
// diagrams
func newLogger(cfg *config.Config, mode config.RunMode, stderr io.Writer) (*logging.Logger, error) {
	format := cfg.Log.Format
	if format == "" || format == string(logging.FormatAuto) {
		format = mode.LogFormat()
	}
	return logging.New(logging.Config{
		Level:      cfg.Log.Level,
		Format:     logging.Format(format),
		OutputFile: cfg.Log.File,
	}, stderr)
}
