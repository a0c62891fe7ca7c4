package robinhoodcache

import "time"

/*
startJanitor initializes and launches the background sweeper
goroutine.

================================================================================
ROLE IN CACHE LIFECYCLE
================================================================================

Get does not check expiry (see the package doc): a key past its TTL
stays visible until the sweeper removes it. The sweeper is therefore
the cache's only expiration mechanism, not a backstop for a lazy path.

================================================================================
EXECUTION MODEL
================================================================================

- If interval <= 0:
    -> The sweeper never starts; entries only leave via eviction or
       explicit Delete.

- If interval > 0:
    -> A time.Ticker fires every interval.
    -> On each tick, sweep() runs under the cache's exclusive lock.

================================================================================
PERFORMANCE CHARACTERISTICS
================================================================================

TTL and recency order are independent, so an expired entry can sit
anywhere in the list, not just near the tail. sweep therefore walks
the whole list every tick rather than stopping at the first unexpired
entry it meets; this is an O(n) scan, same as the janitor it is
modeled on.
*/
func (c *Cache) startJanitor() {
	if c.interval <= 0 {
		return
	}

	ticker := time.NewTicker(c.interval)

	go func() {
		for {
			select {
			case <-ticker.C:
				c.sweep()
			case <-c.stopChan:
				ticker.Stop()
				return
			}
		}
	}()
}

/*
sweep performs active expiration by scanning the recency list from
its tail (the LRU end) and removing every entry whose TTL has elapsed.
*/
func (c *Cache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixNano()

	for e := c.list.Tail(); e != nil; {
		prev := e.Prev
		if e.Expired(now) {
			c.idx.Delete(e.Key)
			c.list.Unlink(e)
			c.currentItems--
			c.stats.Expirations++
		}
		e = prev
	}
}
