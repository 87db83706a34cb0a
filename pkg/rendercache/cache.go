// Package rendercache provides a content-addressed cache for rendered
// diagrams, keyed by a hash of the source text and the resolved render
// options. Repeated renders of the same source with the same options skip
// the pipeline entirely.
package rendercache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache stores rendered output (SVG bytes or marshaled geometry) keyed by
// content hash.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// KeyOpts is the subset of render options that affects output and must
// therefore be part of the cache key.
type KeyOpts struct {
	Emit      string
	FontSize  float64
	RowHeight float64
	ClassMap  map[string]string
}

// Key computes a content-addressed cache key for source rendered with opts.
// Two calls with the same source and the same options produce the same key
// regardless of map iteration order, since opts is JSON-marshaled before
// hashing and Go's encoding/json sorts map keys.
func Key(source string, opts KeyOpts) string {
	return hashKey("render:", source, opts)
}

func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return prefix + hex.EncodeToString(hash[:])
}

// Hash computes a SHA-256 hash of data, returned as a 64-character hex
// string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
