/*
Package robinhoodcache implements a thread-safe, in-memory key-value
store with:

- Per-key TTL (Time-To-Live)
- LRU (Least Recently Used) eviction
- Robin Hood open addressing for the key index
- A background sweeper for active expiration
- Configurable capacity and growth behavior
- Runtime statistics tracking

================================================================================
ARCHITECTURAL OVERVIEW
================================================================================

Cache combines three data structures:

1. Robin Hood hash index (internal/index)
   - Open-addressed, linearly-probed table with probe-distance
     tracking, giving near-O(1) lookup even under high load.

2. Recency list (internal/recency)
   - Doubly linked list maintaining LRU ordering.
   - Most recently used entries sit at the head.
   - The tail is the next eviction candidate.

3. Background sweeper (janitor.go)
   - Periodically removes entries whose TTL has elapsed, independent
     of LRU order.

Index slots and list nodes never copy an entry's fields: both
structures hold a reference to the same *entry.Entry, so there is
exactly one owner of each binding (the Cache itself). This replaces
the double bookkeeping this design's C original had, where the hash
table and the linked list each kept their own copy of a key's expiry.

================================================================================
CONCURRENCY MODEL
================================================================================

- A single sync.Mutex protects the index, the list, the counters, and
  the running flag together.
- Every public operation, including Get, takes the exclusive lock:
  Get mutates recency order, so a shared read lock would not be
  sufficient.
- The sweeper is the cache's own background goroutine; it takes the
  same lock once per tick.

================================================================================
EXPIRATION STRATEGY
================================================================================

Cache deliberately does NOT check expiry on Get. An entry past its TTL
remains visible until the sweeper's next tick prunes it; this trades a
small, bounded staleness window for never paying an expiry check on
the hot read path. See janitor.go for active expiration.

================================================================================
STRUCTURE FIELDS
================================================================================

idx             -> Robin Hood index mapping key -> *entry.Entry
list            -> Recency list maintaining LRU ordering
mu              -> Mutex for concurrency control
maxItems        -> Maximum allowed entries before LRU eviction
currentItems    -> Live entry count, kept equal to idx.Size() and list.Len()
interval        -> Background sweeper cadence
stopChan        -> Graceful shutdown signal for the sweeper goroutine
stopped         -> Set once Close has run, guards against a double close
stats           -> Cache performance metrics (hits/misses/evictions/expirations)
*/
package robinhoodcache

import (
	"sync"
	"time"

	"robinhoodcache/internal/entry"
	"robinhoodcache/internal/index"
	"robinhoodcache/internal/recency"
)

// Cache is a thread-safe, TTL-and-LRU bounded key-value store keyed
// by arbitrary byte strings.
type Cache struct {
	idx  *index.Index
	list *recency.List
	mu   sync.Mutex

	maxItems     int
	currentItems int

	interval time.Duration
	stopChan chan struct{}
	stopped  bool

	stats Stats

	// transient construction config, consumed by New before idx is built.
	loadFactor      float64
	initialCapacity int
	hasher          HashFunc
}

/*
New initializes and returns a ready-to-use Cache bounded to maxItems
live entries.

CONFIGURATION MODEL:
maxItems is a required positional argument, the one input the
external create() operation names directly; everything else uses the
functional options pattern so new knobs never change New's signature.

INITIALIZATION STEPS:
1. Apply caller options to a transient config holder.
2. Build the Robin Hood index and the recency list from that config.
3. Create the shutdown channel.
4. Start the background sweeper (unless the cleanup interval is <= 0).
*/
func New(maxItems int, opts ...Option) *Cache {
	c := &Cache{
		maxItems:        maxItems,
		stopChan:        make(chan struct{}),
		interval:        time.Second,
		loadFactor:      index.DefaultLoadFactor,
		initialCapacity: index.DefaultInitialCapacity,
		hasher:          HashFunc(index.DJB2),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.idx = index.New(c.initialCapacity, c.loadFactor, index.HashFunc(c.hasher))
	c.list = recency.New()

	c.startJanitor()

	return c
}

/*
Put inserts or updates a key in the cache.

PARAMETERS:
- key         : arbitrary byte string, copied by the cache
- value       : opaque handle, ownership stays with the caller
- ttlSeconds  : time-to-live in seconds; 0 means "never expires", a
  negative value produces an entry that is already expired and will
  be pruned on the sweeper's next tick (see expiresAt below)

BEHAVIOR:

1. If key already exists:
   - Update its value in place.
   - Recompute expiresAt.
   - Move it to the head of the recency list.

2. If key does not exist:
   - Copy the key, allocate a new entry, insert it into the index.
   - Push it to the head of the recency list.
   - If the cache now exceeds maxItems, evict the tail.

Put returns an error only in the practically unreachable case where
the index could not place the entry even after repeated growth (see
internal/index.ErrIndexFull); the index, list, and counters are left
in their prior consistent state on that path.

This operation is fully protected by exclusive locking.
*/
func (c *Cache) Put(key []byte, value interface{}, ttlSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, found := c.idx.Lookup(key); found {
		e.Value = value
		e.ExpiresAt = expiresAt(ttlSeconds)
		c.list.MoveToFront(e)
		return nil
	}

	keyCopy := append([]byte(nil), key...)
	e := &entry.Entry{
		Key:       keyCopy,
		Value:     value,
		ExpiresAt: expiresAt(ttlSeconds),
	}

	if err := c.idx.Insert(e); err != nil {
		return err
	}
	c.list.PushFront(e)
	c.currentItems++

	c.evictIfOverCapacity()

	return nil
}

/*
Get retrieves a value from the cache.

RETURNS:
- (value, true)  -> key exists (expiry is not checked, see package doc)
- (nil, false)   -> key does not exist (or was already swept)

EXECUTION FLOW:

1. Lookup key in the index.
2. If not found, count a miss and return.
3. If found, move it to the head of the recency list, count a hit,
   and return its value.

This method takes the exclusive lock because it mutates recency
order and statistics.
*/
func (c *Cache) Get(key []byte) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, found := c.idx.Lookup(key)
	if !found {
		c.stats.Misses++
		return nil, false
	}

	c.list.MoveToFront(e)
	c.stats.Hits++
	return e.Value, true
}

/*
Delete removes a key from the cache.

BEHAVIOR:
- If key exists -> remove it from both the index and the recency list.
- If key does not exist -> operation is safely ignored, returns false.
*/
func (c *Cache) Delete(key []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, found := c.idx.Delete(key)
	if !found {
		return false
	}
	c.list.Unlink(e)
	c.currentItems--
	return true
}

// Len reports the current number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentItems
}

// Stats returns a snapshot of the cache's runtime counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

/*
Close stops the background sweeper and releases every entry, mirroring
destroy_LRUCache in the design this cache generalizes: the recency
list is drained tail-to-head and the index is dropped so nothing
cached survives shutdown. Close is idempotent; calling it more than
once is a no-op after the first call.
*/
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return nil
	}
	c.stopped = true
	close(c.stopChan)

	for e := c.list.PopBack(); e != nil; e = c.list.PopBack() {
		c.idx.Delete(e.Key)
	}
	c.currentItems = 0

	return nil
}

// expiresAt computes the absolute expiry instant for a ttlSeconds
// value supplied to Put.
//
// ttlSeconds == 0 is treated as the "never expires" sentinel (an
// explicitly permitted addition, consistent with how a zero-valued
// expiry is described at the data-model level). A strictly negative
// ttlSeconds instead yields an instant one nanosecond in the past, so
// the entry is already expired and is pruned on the sweeper's very
// next tick.
func expiresAt(ttlSeconds int) int64 {
	if ttlSeconds == 0 {
		return 0
	}
	now := time.Now().UnixNano()
	if ttlSeconds < 0 {
		return now - 1
	}
	return now + int64(ttlSeconds)*int64(time.Second)
}
