package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when one cache backend is shared by several deployments
// or users and their entries must not collide.
//
// Example usage:
//
//	// Keys scoped to one served corpus collection
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "corpus:loeb:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// CountsKey generates a prefixed key for weight-table caching.
func (k *ScopedKeyer) CountsKey(corpusHash string, opts CountsKeyOpts) string {
	return k.prefix + k.inner.CountsKey(corpusHash, opts)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(countsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(countsHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
