package cache

// ScopedKeyer wraps a Keyer with a prefix so that separate namespaces can
// share one store. The CLI scopes keys by program version, so artifacts
// drawn by an older build are never served by a newer one.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(entriesHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(entriesHash, opts)
}
