package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/onboardx/internal/errors"
)

func TestValidate_Defaults(t *testing.T) {
	result := Default().Validate()
	assert.True(t, result.Valid)
	assert.False(t, result.HasErrors())
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Error())
	assert.NoError(t, Default().ValidateOrError())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad since", func(c *Config) { c.Analysis.Since = "forever" }, `analysis.since "forever" is not a valid churn window`},
		{"empty since", func(c *Config) { c.Analysis.Since = "" }, "analysis.since is required"},
		{"top n", func(c *Config) { c.Analysis.TopN = 0 }, "analysis.top_n must be at least 1 (got 0)"},
		{"top n max", func(c *Config) { c.Analysis.TopN = 1000 }, "analysis.top_n must be at most 100 (got 1000)"},
		{"direction", func(c *Config) { c.Render.Direction = "UP" }, `render.direction must be one of TD, TB, BT, RL, LR (got "UP")`},
		{"binary", func(c *Config) { c.Git.Binary = "" }, "git.binary is required"},
		{"timeout", func(c *Config) { c.Git.Timeout = 0 }, "git.timeout must be at least 1s"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, `log.format must be one of [auto text json] (got "xml")`},
		{"output", func(c *Config) { c.Output.File = "" }, "output.file is required"},
		{"exclude", func(c *Config) { c.Analysis.ExcludeDirs = []string{"ok", ""} }, "analysis.exclude_dirs[1] is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			result := cfg.Validate()
			require.True(t, result.HasErrors())
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], tt.want)

			err := cfg.ValidateOrError()
			require.Error(t, err)
			assert.Equal(t, errors.ErrorTypeConfig, errors.GetType(err))
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	cfg := Default()
	cfg.Git.Timeout = 2 * time.Second
	cfg.Git.MaxAuthorBytes = cfg.Git.MaxOutputBytes * 2
	cfg.Render.MaxNodes = 3

	result := cfg.Validate()
	assert.False(t, result.HasErrors())
	assert.Len(t, result.Warnings, 3)
}

func TestValidationResult_Error(t *testing.T) {
	result := &ValidationResult{Valid: true}
	result.AddWarning("careful")
	assert.Empty(t, result.Error())

	result.AddError("broken %d", 1)
	out := result.Error()
	assert.Contains(t, out, "Configuration validation failed:\n  ❌ broken 1\n")
	assert.Contains(t, out, "Warnings:\n  ⚠️  careful\n")
}
