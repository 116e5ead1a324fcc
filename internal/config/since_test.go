package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSince(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		value string
		want  time.Time
	}{
		{"1y", time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)},
		{"6m", time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)}, // Sep 31 normalizes
		{"2w", time.Date(2026, 3, 17, 12, 0, 0, 0, time.UTC)},
		{"90d", time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC)},
		{"36h", time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)},
		{" 1y ", time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)},
		{"2024-02-29", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseSince(tt.value, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSince_Invalid(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

	for _, value := range []string{"", "soon", "0d", "-3m", "1x", "-5h", "2027-01-01"} {
		t.Run(value, func(t *testing.T) {
			_, err := ParseSince(value, now)
			assert.Error(t, err)
		})
	}
}
