package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSinceFlag(t *testing.T) {
	tests := []struct {
		name      string
		since     string
		wantError bool
		checkFunc func(time.Time) bool
	}{
		{
			name:  "7 days",
			since: "7d",
			checkFunc: func(result time.Time) bool {
				expected := time.Now().AddDate(0, 0, -7)
				return result.Before(time.Now()) && result.After(expected.Add(-1*time.Minute))
			},
		},
		{
			name:  "24 hours",
			since: "24h",
			checkFunc: func(result time.Time) bool {
				expected := time.Now().Add(-24 * time.Hour)
				return result.Before(time.Now()) && result.After(expected.Add(-1*time.Minute))
			},
		},
		{
			name:  "date format",
			since: "2026-01-05",
			checkFunc: func(result time.Time) bool {
				return result.Year() == 2026 && result.Month() == 1 && result.Day() == 5
			},
		},
		{
			name:      "invalid format",
			since:     "invalid",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseSinceFlag(tt.since)

			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.checkFunc(result), "Time check failed for %s", tt.since)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "a-very-l..", truncateString("a-very-long-name", 10))
}
