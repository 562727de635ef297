// Package cache provides pluggable caching for pipeline stages.
//
// Every pipeline stage (count, layout, render) is cached independently so
// that, for example, re-rendering a cloud with a different palette reuses
// the cached layout. Backends:
//   - file: directory-backed cache for CLI usage
//   - redis: shared cache for multi-instance server deployments
//   - mongo: document-store cache with server-side TTL expiry
//   - null: disables caching
//
// Keys are derived from content hashes plus the options that influence the
// stage's output, so a changed option never serves a stale result.
package cache

import (
	"context"
	"time"
)

// Cache TTLs per pipeline stage.
const (
	// TTLCounts is how long weight tables are cached. Corpora change rarely.
	TTLCounts = 7 * 24 * time.Hour

	// TTLLayout is how long computed layouts are cached.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is how long rendered artifacts are cached.
	TTLArtifact = 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A TTL of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// CountsKeyOpts are the options that influence weight-table computation.
type CountsKeyOpts struct {
	MaxWords  int
	MinWeight float64
	TFIDF     bool
	NGram     int
	Lemmatize bool
	FoldMarks bool
	Stopwords bool
}

// LayoutKeyOpts are the options that influence layout computation.
type LayoutKeyOpts struct {
	VizType          string
	Width            float64
	Height           float64
	MinSize          float64
	MaxSize          float64
	LogScale         bool
	RotationFraction float64
	RandomPlacement  bool
	Seed             uint64
}

// ArtifactKeyOpts are the options that influence rendered output.
type ArtifactKeyOpts struct {
	Format  string
	Style   string
	Palette string
	Legend  bool
}

// Keyer generates cache keys for each pipeline stage.
type Keyer interface {
	// CountsKey generates a key for weight-table caching.
	CountsKey(corpusHash string, opts CountsKeyOpts) string

	// LayoutKey generates a key for layout caching.
	LayoutKey(countsHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for artifact caching.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates versioned, hash-based cache keys.
// Bump a prefix version when the corresponding stage's output format changes
// incompatibly; old entries then simply miss.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// CountsKey generates a key for weight-table caching.
func (k *DefaultKeyer) CountsKey(corpusHash string, opts CountsKeyOpts) string {
	return hashKey("counts:v1", corpusHash, opts)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(countsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout:v1", countsHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:v1", layoutHash, opts)
}
