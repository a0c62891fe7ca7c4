package robinhoodcache

import "time"

/*
Option defines a functional configuration modifier for Cache.

DESIGN PATTERN

This file implements the Functional Options Pattern, a common
idiomatic Go design used for flexible and extensible configuration.

maxItems is a required positional argument to New (the one knob the
external create() operation names directly); everything else is an
Option:

    cache := New(1000,
        WithCleanupInterval(10 * time.Second),
        WithLoadFactor(0.6),
    )

Each Option modifies the Cache's transient construction config before
New builds the index and recency list from it.

BENEFITS

1. API Stability:
   Adding new configuration options does not change New's signature.

2. Readability:
   Configuration is self-documenting and explicit.

3. Extensibility:
   The hash function, load factor, and initial capacity can all be
   swapped without touching callers that don't care.
*/

// HashFunc computes a 32-bit hash of a key. It mirrors
// internal/index.HashFunc so callers of this package never need to
// import the internal package directly.
type HashFunc func(key []byte) uint32

type Option func(*Cache)

// WithCleanupInterval sets the background sweeper's tick cadence. A
// value <= 0 disables the sweeper entirely; entries then only leave
// the cache through eviction or explicit Delete.
func WithCleanupInterval(d time.Duration) Option {
	return func(c *Cache) {
		c.interval = d
	}
}

// WithLoadFactor overrides the index's growth threshold. Values
// outside (0, 1) are ignored by the index, which falls back to its
// own default.
func WithLoadFactor(lf float64) Option {
	return func(c *Cache) {
		c.loadFactor = lf
	}
}

// WithInitialCapacity overrides the index's starting slot count. It
// is rounded up to the next power of two.
func WithInitialCapacity(n int) Option {
	return func(c *Cache) {
		c.initialCapacity = n
	}
}

// WithHasher overrides the index's hash function. The default is
// DJB2; robinhoodcache.XXHash is provided as a drop-in alternative for
// callers who favor xxhash's distribution and throughput over DJB2's
// simplicity.
func WithHasher(h HashFunc) Option {
	return func(c *Cache) {
		c.hasher = h
	}
}
