// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
// Every backend implements [Cache]:
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [MemoryCache]: process-local map, for a server without a disk
//   - [FileCache]: one file per entry, for the CLI
//   - [RedisCache]: shared cache for several server instances
//   - [MongoCache]: TTL-indexed documents, for deployments that already run MongoDB
//
// [Open] picks a backend from a [Config].
//
// # Keys
//
// A [Keyer] derives keys from the SHA-256 of the input tree plus the options
// that affect the output, so two requests share an entry exactly when they
// would produce the same bytes. [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLFrames   = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey is the key of a partition layout document.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string
	// ArtifactKey is the key of one rendered output format.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
	// FramesKey is the key of a rendered transition sequence.
	FramesKey(treeHash string, opts FramesKeyOpts) string
}

// LayoutKeyOpts holds the options that change a layout document.
type LayoutKeyOpts struct {
	Focus string `json:"focus,omitempty"`
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	VizType        string   `json:"viz_type"`
	Format         string   `json:"format"`
	Size           float64  `json:"size"`
	Focus          string   `json:"focus,omitempty"`
	MaxLabelLength int      `json:"max_label_length,omitempty"`
	Tooltips       bool     `json:"tooltips,omitempty"`
	Fields         []string `json:"fields,omitempty"`
	Detailed       bool     `json:"detailed,omitempty"`
}

// FramesKeyOpts holds the options that change a frame sequence.
type FramesKeyOpts struct {
	Clicks   []string      `json:"clicks"`
	FPS      int           `json:"fps"`
	Duration time.Duration `json:"duration"`
	Easing   string        `json:"easing"`
	Size     float64       `json:"size"`
}

// DefaultKeyer hashes options into keys with a fixed prefix per kind.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", treeHash, opts)
}

// FramesKey implements Keyer.
func (DefaultKeyer) FramesKey(treeHash string, opts FramesKeyOpts) string {
	return hashKey("frames", treeHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer, so the CLI and a server
// can share one backend without reading each other's entries.
type ScopedKeyer struct {
	Keyer
	Prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{Keyer: inner, Prefix: prefix}
}

func (k ScopedKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return k.Prefix + k.Keyer.LayoutKey(treeHash, opts)
}

func (k ScopedKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return k.Prefix + k.Keyer.ArtifactKey(treeHash, opts)
}

func (k ScopedKeyer) FramesKey(treeHash string, opts FramesKeyOpts) string {
	return k.Prefix + k.Keyer.FramesKey(treeHash, opts)
}
