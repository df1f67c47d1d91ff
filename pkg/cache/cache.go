// Package cache provides caching for parsed pattern sets and rendered
// chart artifacts.
//
// Three backends are available: a file cache for CLI usage, a Redis
// cache for shared deployments, and a null cache that disables caching.
// All backends store opaque byte payloads under string keys with an
// optional TTL.
//
// Keys are produced by a [Keyer] so that each layer of the pipeline
// derives its key from the content hash of the layer below: the pattern
// key from the source document, the artifact key from the computed
// layout plus render options. A changed input therefore never serves a
// stale artifact.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque payloads under string keys.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl stores it without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render options that change the final artifact
// for the same layout.
type ArtifactKeyOpts struct {
	Format      string
	CellSize    float64
	Labels      bool
	Connections bool
}

// Keyer derives cache keys for the pipeline's layers.
type Keyer interface {
	// PatternKey generates a key for a resolved pattern set, derived
	// from the hash of the source document.
	PatternKey(sourceHash string) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PatternKey generates a key for a resolved pattern set.
func (k *DefaultKeyer) PatternKey(sourceHash string) string {
	return "pattern:" + sourceHash
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
