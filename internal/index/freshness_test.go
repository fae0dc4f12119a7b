package index

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debamax/apt-webindex/internal/models"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func TestClassifyTiers(t *testing.T) {
	now := mustTime(t, "2026-08-29T12:00:00Z")
	c := &Classifier{Now: now, FastArch: "amd64"}

	tests := []struct {
		name string
		diff time.Duration
		tier int
		age  string
	}{
		{"seconds", 45 * time.Second, TierSeconds, "45 seconds ago"},
		{"exactly two minutes is still seconds", 120 * time.Second, TierSeconds, "120 seconds ago"},
		{"minutes", 121 * time.Second, TierMinutes, "2+ minutes ago"},
		{"an hour is still minutes", 90 * time.Minute, TierMinutes, "90+ minutes ago"},
		{"exactly two hours is still minutes", 7200 * time.Second, TierMinutes, "120+ minutes ago"},
		{"just past two hours", 7201 * time.Second, TierHours, "2+ hours ago"},
		{"a day is still hours", 36 * time.Hour, TierHours, "36+ hours ago"},
		{"days", 49 * time.Hour, TierDays, "2+ days ago"},
		{"a month is still days", 45 * 24 * time.Hour, TierDays, "45+ days ago"},
		{"months", 61 * 24 * time.Hour, TierMonths, "2+ months ago"},
		{"a year", 365 * 24 * time.Hour, TierMonths, "12+ months ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fresh := c.Classify(now.Add(-tt.diff))
			assert.Equal(t, tt.tier, fresh.Tier)
			assert.Equal(t, tt.age, fresh.Age)
		})
	}
}

func TestClassifyFutureModTime(t *testing.T) {
	now := mustTime(t, "2026-08-29T12:00:00Z")
	c := &Classifier{Now: now, FastArch: "amd64"}

	// Unspecified edge case: a future mtime keeps its raw negative
	// age and lands in the hottest tier, no clamping.
	fresh := c.Classify(now.Add(10 * time.Second))
	assert.Equal(t, TierSeconds, fresh.Tier)
	assert.Equal(t, "-10 seconds ago", fresh.Age)
}

func TestDelayedHeuristic(t *testing.T) {
	c := &Classifier{FastArch: "amd64"}

	fast := models.Artifact{Architecture: "amd64", Filename: "pool/f/foo/foo_1.0_amd64.deb"}
	other := models.Artifact{Architecture: "arm64", Filename: "pool/f/foo/foo_1.0_arm64.deb"}

	assert.True(t, c.Delayed([]models.Artifact{fast}))
	assert.False(t, c.Delayed([]models.Artifact{fast, other}))
	assert.False(t, c.Delayed([]models.Artifact{other}))
	assert.False(t, c.Delayed(nil))
}
