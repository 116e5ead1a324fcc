package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rohankatakam/onboardx/internal/errors"
)

// configValidate checks struct tags on Config. Field names in messages
// use the YAML keys users write.
var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	configValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = configValidate.RegisterValidation("since", validateSince)
	_ = configValidate.RegisterValidation("direction", validateDirection)
}

func validateSince(fl validator.FieldLevel) bool {
	_, err := ParseSince(fl.Field().String(), time.Now())
	return err == nil
}

func validateDirection(fl validator.FieldLevel) bool {
	switch strings.ToUpper(fl.Field().String()) {
	case "TD", "TB", "BT", "RL", "LR":
		return true
	}
	return false
}

// ValidationResult holds validation results
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// AddError adds an error to the validation result
func (vr *ValidationResult) AddError(format string, args ...interface{}) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, fmt.Sprintf(format, args...))
}

// AddWarning adds a warning to the validation result
func (vr *ValidationResult) AddWarning(format string, args ...interface{}) {
	vr.Warnings = append(vr.Warnings, fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are any errors
func (vr *ValidationResult) HasErrors() bool {
	return !vr.Valid || len(vr.Errors) > 0
}

// Error returns a formatted error message
func (vr *ValidationResult) Error() string {
	if !vr.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Configuration validation failed:\n")
	for _, err := range vr.Errors {
		sb.WriteString(fmt.Sprintf("  ❌ %s\n", err))
	}

	if len(vr.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, warn := range vr.Warnings {
			sb.WriteString(fmt.Sprintf("  ⚠️  %s\n", warn))
		}
	}

	return sb.String()
}

// Validate checks field constraints and flags settings that are legal but
// likely mistakes
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := configValidate.Struct(c); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			result.AddError("%v", err)
			return result
		}
		for _, fe := range verrs {
			result.AddError("%s", describe(fe))
		}
	}

	if c.Git.Timeout > 0 && c.Git.Timeout < 5*time.Second {
		result.AddWarning("git.timeout %s may be too short for large repositories", c.Git.Timeout)
	}
	if c.Git.MaxAuthorBytes > c.Git.MaxOutputBytes {
		result.AddWarning("git.max_author_bytes (%d) exceeds git.max_output_bytes (%d)", c.Git.MaxAuthorBytes, c.Git.MaxOutputBytes)
	}
	if c.Render.MaxNodes < c.Analysis.TopN {
		result.AddWarning("render.max_nodes (%d) is smaller than analysis.top_n (%d); some ranked files will not appear in the dependency graph",
			c.Render.MaxNodes, c.Analysis.TopN)
	}

	return result
}

// ValidateOrError returns a config error describing every failed check
func (c *Config) ValidateOrError() error {
	result := c.Validate()
	if result.HasErrors() {
		return errors.ConfigError(result.Error())
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s (got %v)", field, fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s (got %v)", field, fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got %q)", field, fe.Param(), fe.Value())
	case "since":
		return fmt.Sprintf("%s %q is not a valid churn window (examples: 1y, 6m, 90d, 720h, 2024-01-31)", field, fe.Value())
	case "direction":
		return fmt.Sprintf("%s must be one of TD, TB, BT, RL, LR (got %q)", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
