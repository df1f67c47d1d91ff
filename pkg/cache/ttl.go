package cache

import "time"

// Cache TTLs per pipeline layer. Pattern sets are cheap to recompute,
// artifacts less so; all keys are content-addressed, so the TTLs only
// bound storage growth, never staleness.
const (
	// TTLPattern is the lifetime of cached resolved pattern sets.
	TTLPattern = 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)
