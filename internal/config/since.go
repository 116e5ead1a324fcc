package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseSince resolves a churn window to its start time. Accepted forms are
// "<n>y", "<n>m" (months), "<n>w", "<n>d", a Go duration such as "720h",
// or an absolute date "2006-01-02". Calendar units are applied to now with
// AddDate, so "1y" means the same day one year earlier.
func ParseSince(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty churn window")
	}

	if t, err := time.ParseInLocation("2006-01-02", value, now.Location()); err == nil {
		if t.After(now) {
			return time.Time{}, fmt.Errorf("churn window %q starts in the future", value)
		}
		return t, nil
	}

	unit := value[len(value)-1]
	if n, err := strconv.Atoi(value[:len(value)-1]); err == nil {
		if n <= 0 {
			return time.Time{}, fmt.Errorf("churn window %q must be positive", value)
		}
		switch unit {
		case 'y':
			return now.AddDate(-n, 0, 0), nil
		case 'm':
			return now.AddDate(0, -n, 0), nil
		case 'w':
			return now.AddDate(0, 0, -7*n), nil
		case 'd':
			return now.AddDate(0, 0, -n), nil
		}
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid churn window %q: use 1y, 6m, 2w, 90d, a duration like 720h, or a date", value)
	}
	if d <= 0 {
		return time.Time{}, fmt.Errorf("churn window %q must be positive", value)
	}
	return now.Add(-d), nil
}
