// Package workflow scaffolds a GitHub Actions workflow that regenerates the
// onboarding report on every push.
package workflow

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rohankatakam/onboardx/internal/errors"
	"github.com/rohankatakam/onboardx/internal/models"
)

// Path is where the workflow is written, relative to the repository root
const Path = ".github/workflows/onboardx.yml"

// InstallPackage is the go run target used by the workflow
const InstallPackage = "github.com/rohankatakam/onboardx/cmd/onboardx@latest"

// ErrWorkflowExists is returned when the workflow file exists and Force is off
var ErrWorkflowExists = stderrors.New("workflow already exists")

// Options configures the generated workflow
type Options struct {
	Branch   string
	Output   string
	Since    string
	Diagrams bool
	Force    bool
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.Branch) == "" {
		o.Branch = "main"
	}
	if strings.TrimSpace(o.Output) == "" {
		o.Output = models.DefaultReportFile
	}
	return o
}

type document struct {
	Name        string            `yaml:"name"`
	On          triggers          `yaml:"on"`
	Permissions map[string]string `yaml:"permissions"`
	Jobs        map[string]job    `yaml:"jobs"`
}

type triggers struct {
	Push             push     `yaml:"push"`
	WorkflowDispatch struct{} `yaml:"workflow_dispatch"`
}

type push struct {
	Branches    []string `yaml:"branches"`
	PathsIgnore []string `yaml:"paths-ignore"`
}

type job struct {
	RunsOn string `yaml:"runs-on"`
	Steps  []step `yaml:"steps"`
}

type step struct {
	Name string            `yaml:"name,omitempty"`
	Uses string            `yaml:"uses,omitempty"`
	With map[string]string `yaml:"with,omitempty"`
	Run  string            `yaml:"run,omitempty"`
}

// Generate renders the workflow YAML
func Generate(opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	if !shellWord(opts.Output) {
		return nil, errors.ValidationErrorf("invalid output file name %q", opts.Output)
	}
	if opts.Since != "" && !shellWord(opts.Since) {
		return nil, errors.ValidationErrorf("invalid --since value %q", opts.Since)
	}

	args := []string{".", "-o", opts.Output}
	if opts.Diagrams {
		args = append(args, "--diagrams")
	}
	if opts.Since != "" {
		args = append(args, "--since", opts.Since)
	}

	commit := strings.Join([]string{
		`git config user.name "github-actions[bot]"`,
		`git config user.email "41898282+github-actions[bot]@users.noreply.github.com"`,
		"git add " + opts.Output,
		fmt.Sprintf(`git diff --cached --quiet || git commit -m "docs: refresh %s [skip ci]"`, opts.Output),
		"git push",
	}, "\n") + "\n"

	doc := document{
		Name: "onboardx",
		On: triggers{
			Push: push{
				Branches:    []string{opts.Branch},
				PathsIgnore: []string{opts.Output},
			},
		},
		Permissions: map[string]string{"contents": "write"},
		Jobs: map[string]job{
			"onboard": {
				RunsOn: "ubuntu-latest",
				Steps: []step{
					{
						Uses: "actions/checkout@v4",
						// Full history for churn and authorship
						With: map[string]string{"fetch-depth": "0"},
					},
					{
						Uses: "actions/setup-go@v5",
						With: map[string]string{"go-version": "stable"},
					},
					{
						Name: "Generate " + opts.Output,
						Run:  fmt.Sprintf("go run %s %s", InstallPackage, strings.Join(args, " ")),
					},
					{
						Name: "Commit report",
						Run:  commit,
					},
				},
			},
		},
	}

	var buf bytes.Buffer
	buf.WriteString("# Generated by onboardx init-ci\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, errors.InternalErrorf("failed to encode workflow: %v", err)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.InternalErrorf("failed to encode workflow: %v", err)
	}
	return buf.Bytes(), nil
}

// shellWord reports whether s can be spliced into the workflow's run lines
// unquoted
func shellWord(s string) bool {
	return !strings.ContainsAny(s, " \t\r\n\"'`$\\;&|<>()*?!#{}[]~")
}

// Write generates the workflow and writes it under repoRoot. It returns the
// path written.
func Write(repoRoot string, opts Options) (string, error) {
	path := filepath.Join(repoRoot, filepath.FromSlash(Path))

	if _, err := os.Stat(path); err == nil && !opts.Force {
		return "", errors.Wrap(ErrWorkflowExists, errors.ErrorTypeValidation, errors.SeverityLow,
			"workflow already exists, use --force to overwrite").WithContext("path", path)
	}

	data, err := Generate(opts)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.FileSystemError(err, "failed to create workflow directory")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.FileSystemError(err, "failed to write workflow").WithContext("path", path)
	}
	return path, nil
}
