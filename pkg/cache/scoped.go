package cache

// ScopedKeyer wraps a Keyer with a prefix so independent workspaces can
// share a cache directory without colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:board-a:")
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

// ChipKey generates a prefixed key for a parsed chip.
func (k *ScopedKeyer) ChipKey(manifestHash string) string {
	return k.prefix + k.inner.ChipKey(manifestHash)
}

// LayoutKey generates a prefixed key for a computed geometry tree.
func (k *ScopedKeyer) LayoutKey(chipHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(chipHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
