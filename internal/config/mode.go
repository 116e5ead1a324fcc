package config

import (
	"os"
	"strings"
)

// RunMode describes how onboardx was invoked
type RunMode string

const (
	// ModeInteractive is a developer at a terminal
	ModeInteractive RunMode = "interactive"
	// ModeCI is a CI/CD pipeline; no styling, JSON logs
	ModeCI RunMode = "ci"
	// ModeHook is a git hook; one-line output
	ModeHook RunMode = "hook"
)

// DetectMode determines the run context based on environment
func DetectMode() RunMode {
	// Explicit mode override (highest priority)
	if mode := os.Getenv(EnvPrefix + "_MODE"); mode != "" {
		switch strings.ToLower(mode) {
		case "interactive", "dev":
			return ModeInteractive
		case "ci", "cicd":
			return ModeCI
		case "hook":
			return ModeHook
		}
	}

	// git exports GIT_AUTHOR_DATE to hooks
	if os.Getenv("GIT_AUTHOR_DATE") != "" {
		return ModeHook
	}

	if isCI() {
		return ModeCI
	}

	return ModeInteractive
}

// isCI detects if running in a CI/CD environment
func isCI() bool {
	ciEnvVars := []string{
		"CI",                     // Generic CI indicator
		"CONTINUOUS_INTEGRATION", // Generic CI indicator
		"GITHUB_ACTIONS",         // GitHub Actions
		"GITLAB_CI",              // GitLab CI
		"CIRCLECI",               // CircleCI
		"TRAVIS",                 // Travis CI
		"JENKINS_URL",            // Jenkins
		"BUILDKITE",              // Buildkite
		"DRONE",                  // Drone CI
		"TF_BUILD",               // Azure Pipelines
	}

	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return true
		}
	}

	return false
}

// String returns the string representation of the mode
func (m RunMode) String() string {
	return string(m)
}

// AllowsStyledOutput returns true if console output may use colors and tables
func (m RunMode) AllowsStyledOutput() bool {
	return m == ModeInteractive
}

// LogFormat returns the log format used when log.format is auto
func (m RunMode) LogFormat() string {
	if m == ModeCI {
		return "json"
	}
	return "auto"
}
