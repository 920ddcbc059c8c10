package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful in server deployments where different users or projects
// need separate cache namespaces.
//
// Example usage:
//
//	// Project-specific keys
//	projectKeyer := NewScopedKeyer(NewDefaultKeyer(), "project:abc123:")
//
//	// Shared keys for public charts
//	globalKeyer := NewDefaultKeyer()
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

// GraphKey generates a prefixed key for transformed graph caching.
func (k *ScopedKeyer) GraphKey(inputHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(inputHash, opts)
}

// LayoutKey generates a prefixed key for positioned chart caching.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
