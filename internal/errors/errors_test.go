package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeProvider, SeverityLow, "ignored"))
}

func TestProviderError_Unwraps(t *testing.T) {
	cause := fmt.Errorf("exit status 128")
	err := ProviderError(cause, "git log failed").WithContext("command", "git log")

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, "git log failed: exit status 128", err.Error())
	assert.Equal(t, ErrorTypeProvider, GetType(err))
	assert.Equal(t, SeverityLow, GetSeverity(err))
}

func TestIs_MatchesByType(t *testing.T) {
	a := ParseErrorf(fmt.Errorf("bad"), "line %d", 3)
	b := ParseError(fmt.Errorf("other"), "other")
	c := ConfigError("missing")

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
	assert.True(t, stderrors.Is(c, &Error{Type: ErrorTypeConfig}))
}

func TestGetSeverity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Severity
	}{
		{"nil", nil, SeverityLow},
		{"plain", fmt.Errorf("plain"), SeverityMedium},
		{"provider", ProviderError(fmt.Errorf("x"), "git"), SeverityLow},
		{"filesystem", FileSystemError(fmt.Errorf("x"), "read"), SeverityHigh},
		{"config", ConfigError("bad"), SeverityCritical},
		{"wrapped by fmt", fmt.Errorf("outer: %w", FileSystemError(fmt.Errorf("x"), "read")), SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSeverity(tt.err))
		})
	}
}

func TestGetType_Chain(t *testing.T) {
	inner := ValidationErrorf("bad output %q", "x")
	assert.Equal(t, ErrorTypeValidation, GetType(fmt.Errorf("init-ci: %w", inner)))
	assert.Equal(t, ErrorTypeInternal, GetType(fmt.Errorf("plain")))
	assert.Equal(t, ErrorTypeInternal, GetType(nil))
}

func TestDetailedString_SortsContext(t *testing.T) {
	err := ProviderError(fmt.Errorf("boom"), "git failed").
		WithContext("zeta", 1).
		WithContext("alpha", 2)

	detail := err.DetailedString()
	assert.Contains(t, detail, "[LOW] [PROVIDER] git failed")
	assert.Contains(t, detail, "Caused by: boom")
	assert.Less(t, strings.Index(detail, "alpha"), strings.Index(detail, "zeta"))

	assert.Equal(t, detail, Detail(err))
	assert.Empty(t, Detail(fmt.Errorf("plain")))
}

func TestLogFields(t *testing.T) {
	fields := LogFields(ProviderError(fmt.Errorf("x"), "y").WithContext("file", "a.ts"))
	assert.Equal(t, "a.ts", fields["file"])
	assert.Equal(t, "PROVIDER", fields["error_type"])
	assert.Equal(t, "LOW", fields["severity"])
	assert.Equal(t, "y: x", fields["error"])

	assert.Equal(t, map[string]interface{}{"error": "plain"}, LogFields(fmt.Errorf("plain")))
	assert.Empty(t, LogFields(nil))
}
