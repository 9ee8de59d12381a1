// Package cache provides pluggable byte caches used to memoize expensive
// pipeline stages: computed geometry trees and rendered artifacts.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Default TTLs per pipeline stage. Chips and layouts are cheap to rebuild
// but hashing keeps them valid forever, so the TTLs mostly bound disk use.
const (
	TTLChip     = 30 * 24 * time.Hour
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte payloads under string keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKeyOpts captures the geometry options that affect a computed
// layout. Two runs with the same chip hash and the same opts may share a
// cached tree.
type LayoutKeyOpts struct {
	Mode            string
	AxisExtent      float64
	MinRegionExtent float64
}

// ArtifactKeyOpts captures the rendering options that affect an artifact.
type ArtifactKeyOpts struct {
	Format     string
	StripWidth float64
	TextWidth  int
	TextANSI   bool
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// ChipKey generates a key identifying a parsed chip by the hash of
	// its manifest bytes.
	ChipKey(manifestHash string) string

	// LayoutKey generates a key for a computed geometry tree.
	LayoutKey(chipHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ChipKey generates a key for a parsed chip.
func (k *DefaultKeyer) ChipKey(manifestHash string) string {
	return stageKey("chip", manifestHash)
}

// LayoutKey generates a key for a computed geometry tree.
func (k *DefaultKeyer) LayoutKey(chipHash string, opts LayoutKeyOpts) string {
	return stageKey("layout", chipHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return stageKey("artifact", layoutHash, opts)
}

// stageKey builds "<stage>:<sha256 of the parts>". Parts are written
// through fmt with a separator so adjacent fields cannot run together.
func stageKey(stage string, parts ...any) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%v|", p)
	}
	return stage + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NullCache is a cache that never stores anything, used when caching is
// disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

// Get always reports a miss.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards the value.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (NullCache) Close() error { return nil }
