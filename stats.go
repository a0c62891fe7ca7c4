package robinhoodcache

/*
Stats represents runtime performance metrics of the cache.

================================================================================
PURPOSE
================================================================================

This structure tracks key operational indicators:

- Hits        -> Successful Get lookups
- Misses      -> Failed Get lookups
- Evictions   -> Entries removed by LRU capacity pressure
- Expirations -> Entries removed by the background sweeper

These metrics provide visibility into cache effectiveness and
operational behavior, and separate two causes of key loss that are
easy to conflate: a key can disappear because it aged out by TTL or
because it was pushed out by capacity, and the two call for different
tuning responses (interval vs maxItems).

================================================================================
CONCURRENCY MODEL
================================================================================

Stats fields are modified under the Cache's own mutex. Stats() returns
a value-copy snapshot under that same lock, so no caller ever observes
a torn read across fields.
*/
type Stats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	Expirations uint64
}
