// Package cache stores rendered artifacts between CLI runs.
//
// Rendering PDF and PNG output shells out to rsvg-convert and constraint
// graphs run Graphviz, both of which dominate the cost of a solve. The CLI
// keys each artifact by a hash of the scenario source and the render
// options, so an unchanged scenario is served from disk.
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.ArtifactKey(src, cache.ArtifactOpts{Format: "png", Width: 390})
//	if data, ok, _ := c.Get(ctx, key); ok {
//		return data
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// ArtifactOpts are the render settings that change an artifact's bytes.
type ArtifactOpts struct {
	Kind     string  `json:"kind"` // "layout" or "graph"
	Format   string  `json:"format"`
	Style    string  `json:"style,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Keyboard float64 `json:"keyboard,omitempty"`
	Rotated  bool    `json:"rotated,omitempty"`
	Guides   bool    `json:"guides,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// ArtifactKey derives the cache key for rendering src with opts.
func ArtifactKey(src []byte, opts ArtifactOpts) string {
	return hashKey("artifact", Hash(src), opts)
}
