package robinhoodcache

/*
evictIfOverCapacity removes the least recently used entry from the
cache when currentItems exceeds maxItems.

================================================================================
EVICTION POLICY
================================================================================

The cache uses a strict LRU policy:

- Most recently accessed entries sit at the head of the recency list.
- Least recently used entries sit at the tail.
- When currentItems exceeds maxItems, the tail entry is evicted.

maxItems == 0 is a valid, if degenerate, configuration: the entry Put
just inserted is immediately evicted again, so the cache holds
nothing. This is not special-cased; the same loop below handles it.

================================================================================
ALGORITHM
================================================================================

1. While currentItems > maxItems:
   - Pop the tail of the recency list.
   - Remove its key from the index.
   - Increment the eviction counter.

The loop form (rather than a single if) keeps the invariant
currentItems <= maxItems true even if maxItems is lowered through
reconfiguration in a future version, without requiring a separate
code path.

NOTE: this is an internal helper; callers must already hold the
Cache's mutex.
*/
func (c *Cache) evictIfOverCapacity() {
	for c.currentItems > c.maxItems {
		victim := c.list.PopBack()
		if victim == nil {
			return
		}
		c.idx.Delete(victim.Key)
		c.currentItems--
		c.stats.Evictions++
	}
}
