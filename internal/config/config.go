// Package config loads onboardx settings from flags, environment, config
// files and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rohankatakam/onboardx/internal/git"
	"github.com/rohankatakam/onboardx/internal/models"
	"github.com/rohankatakam/onboardx/internal/render"
)

// EnvPrefix prefixes every environment override, e.g. ONBOARDX_ANALYSIS_TOP_N
const EnvPrefix = "ONBOARDX"

// FileName is the per-repository config file
const FileName = ".onboardx.yaml"

// Config holds all configuration settings
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Render   RenderConfig   `yaml:"render" mapstructure:"render"`
	Git      GitConfig      `yaml:"git" mapstructure:"git"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

type AnalysisConfig struct {
	Since       string   `yaml:"since" mapstructure:"since" validate:"required,since"`
	TopN        int      `yaml:"top_n" mapstructure:"top_n" validate:"min=1,max=100"`
	ExcludeDirs []string `yaml:"exclude_dirs" mapstructure:"exclude_dirs" validate:"dive,required"`
}

type RenderConfig struct {
	MaxNodes         int    `yaml:"max_nodes" mapstructure:"max_nodes" validate:"min=1,max=500"`
	ScatterMaxNodes  int    `yaml:"scatter_max_nodes" mapstructure:"scatter_max_nodes" validate:"min=1,max=100"`
	Direction        string `yaml:"direction" mapstructure:"direction" validate:"direction"`
	IncludeChurn     bool   `yaml:"include_churn" mapstructure:"include_churn"`
	IncludeOwnership bool   `yaml:"include_ownership" mapstructure:"include_ownership"`
}

type GitConfig struct {
	Binary         string        `yaml:"binary" mapstructure:"binary" validate:"required"`
	Timeout        time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"min=1s"`
	MaxOutputBytes int           `yaml:"max_output_bytes" mapstructure:"max_output_bytes" validate:"min=1024"`
	MaxAuthorBytes int           `yaml:"max_author_bytes" mapstructure:"max_author_bytes" validate:"min=1024"`
}

type OutputConfig struct {
	File     string `yaml:"file" mapstructure:"file" validate:"required"`
	Diagrams bool   `yaml:"diagrams" mapstructure:"diagrams"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" mapstructure:"format" validate:"omitempty,oneof=auto text json"`
	File   string `yaml:"file" mapstructure:"file"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Since:       "1y",
			TopN:        5,
			ExcludeDirs: []string{},
		},
		Render: RenderConfig{
			MaxNodes:         render.DefaultMaxNodes,
			ScatterMaxNodes:  render.DefaultScatterMaxNodes,
			Direction:        "TD",
			IncludeChurn:     true,
			IncludeOwnership: true,
		},
		Git: GitConfig{
			Binary:         "git",
			Timeout:        git.DefaultTimeout,
			MaxOutputBytes: git.DefaultMaxOutputBytes,
			MaxAuthorBytes: git.DefaultMaxAuthorBytes,
		},
		Output: OutputConfig{
			File:     models.DefaultReportFile,
			Diagrams: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load builds the configuration for a repository. path is an explicit
// config file; when empty, .onboardx.yaml in repoRoot and then
// ~/.onboardx/config.yaml are tried. Environment variables override the
// file, and .env/.env.local in repoRoot are loaded first.
func Load(path, repoRoot string) (*Config, error) {
	loadEnvFiles(repoRoot)

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = findConfigFile(repoRoot)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Render.Direction = strings.ToUpper(strings.TrimSpace(cfg.Render.Direction))

	return cfg, nil
}

// UsedFile reports which config file Load would read for repoRoot
func UsedFile(path, repoRoot string) string {
	if path != "" {
		return path
	}
	return findConfigFile(repoRoot)
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("analysis.since", cfg.Analysis.Since)
	v.SetDefault("analysis.top_n", cfg.Analysis.TopN)
	v.SetDefault("analysis.exclude_dirs", cfg.Analysis.ExcludeDirs)

	v.SetDefault("render.max_nodes", cfg.Render.MaxNodes)
	v.SetDefault("render.scatter_max_nodes", cfg.Render.ScatterMaxNodes)
	v.SetDefault("render.direction", cfg.Render.Direction)
	v.SetDefault("render.include_churn", cfg.Render.IncludeChurn)
	v.SetDefault("render.include_ownership", cfg.Render.IncludeOwnership)

	v.SetDefault("git.binary", cfg.Git.Binary)
	v.SetDefault("git.timeout", cfg.Git.Timeout)
	v.SetDefault("git.max_output_bytes", cfg.Git.MaxOutputBytes)
	v.SetDefault("git.max_author_bytes", cfg.Git.MaxAuthorBytes)

	v.SetDefault("output.file", cfg.Output.File)
	v.SetDefault("output.diagrams", cfg.Output.Diagrams)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
}

func findConfigFile(repoRoot string) string {
	candidates := []string{filepath.Join(repoRoot, FileName)}
	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(homeDir, ".onboardx", "config.yaml"))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// loadEnvFiles loads .env files in order of precedence. godotenv never
// overrides a variable that is already set, so the first file wins.
func loadEnvFiles(repoRoot string) {
	envFiles := []string{
		filepath.Join(repoRoot, ".env.local"),
		filepath.Join(repoRoot, ".env"),
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}
}

// GitRunnerConfig converts the git section for the git runner
func (c *Config) GitRunnerConfig() git.Config {
	return git.Config{
		Binary:         c.Git.Binary,
		Timeout:        c.Git.Timeout,
		MaxOutputBytes: c.Git.MaxOutputBytes,
		MaxAuthorBytes: c.Git.MaxAuthorBytes,
	}
}

// GraphOptions converts the render section for the dependency graph
func (c *Config) GraphOptions() render.GraphOptions {
	opts := render.DefaultGraphOptions()
	opts.Direction = c.Render.Direction
	opts.MaxNodes = c.Render.MaxNodes
	opts.IncludeChurn = c.Render.IncludeChurn
	opts.IncludeOwnership = c.Render.IncludeOwnership
	return opts
}

// YAML renders the effective configuration
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
