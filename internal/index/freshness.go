package index

import (
	"fmt"
	"time"

	"github.com/debamax/apt-webindex/internal/models"
)

// Freshness tiers, hot1 the coldest to hot5 the hottest. The CSS
// classes in the renderer are named after these ordinals.
const (
	TierMonths  = 1
	TierDays    = 2
	TierHours   = 3
	TierMinutes = 4
	TierSeconds = 5
)

// Freshness describes how recently an artifact was built.
type Freshness struct {
	// Age is the human description, e.g. "3+ hours ago".
	Age string
	// Tier is 1 (oldest) through 5 (most recent).
	Tier int
	// ModTime is the artifact's mtime, kept for the tooltip.
	ModTime time.Time
}

// Classifier buckets artifact ages. Now is captured once per run so
// that every package in the run is measured against the same instant.
type Classifier struct {
	Now time.Time
	// FastArch is the architecture whose builds land first, typically
	// the primary CI architecture.
	FastArch string
}

// Classify maps an artifact modification time to a freshness bucket.
// A modification time in the future yields a negative age that falls
// through to the seconds tier unclamped.
func (c *Classifier) Classify(modTime time.Time) Freshness {
	diff := int64(c.Now.Sub(modTime) / time.Second)

	f := Freshness{ModTime: modTime}
	switch {
	case diff > 60*24*3600:
		f.Age = fmt.Sprintf("%d+ months ago", diff/(30*24*3600))
		f.Tier = TierMonths
	case diff > 2*24*3600:
		f.Age = fmt.Sprintf("%d+ days ago", diff/(24*3600))
		f.Tier = TierDays
	case diff > 2*3600:
		f.Age = fmt.Sprintf("%d+ hours ago", diff/3600)
		f.Tier = TierHours
	case diff > 2*60:
		f.Age = fmt.Sprintf("%d+ minutes ago", diff/60)
		f.Tier = TierMinutes
	default:
		f.Age = fmt.Sprintf("%d seconds ago", diff)
		f.Tier = TierSeconds
	}
	return f
}

// Delayed reports whether the newest version looks like it is still
// waiting for a secondary architecture build: exactly one artifact,
// and it targets the fast architecture. Packages that intentionally
// ship only the fast architecture trip this too; it is a heuristic,
// not a guarantee.
func (c *Classifier) Delayed(artifacts []models.Artifact) bool {
	return len(artifacts) == 1 && artifacts[0].Architecture == c.FastArch
}
