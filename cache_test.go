package robinhoodcache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

/*
cache_test.go provides comprehensive validation of Cache.

================================================================================
TESTING OBJECTIVES
================================================================================

This suite verifies:

1. Functional Correctness
   - Put/Get/Delete behave deterministically.
   - LRU ordering updates do not break key retrieval.

2. TTL Semantics
   - ttlSeconds == 0 yields a non-expiring entry.
   - A negative ttlSeconds yields an entry the sweeper clears almost
     immediately.
   - Get does not itself check expiry; only the sweeper does.

3. Eviction
   - maxItems is enforced by evicting the least recently used entry.
   - maxItems == 0 is a valid (degenerate) configuration.

4. Concurrency Safety
   - Stress-tests concurrent Put/Get access.

5. Metrics Accuracy
   - Hit/miss/expiration counters track real behavior.

Run with `go test -race` for full concurrency validation.
*/

func TestPutAndGet(t *testing.T) {
	cache := New(10)
	defer cache.Close()

	cache.Put([]byte("a"), "b", 5)

	val, found := cache.Get([]byte("a"))
	if !found {
		t.Fatal("expected key to be found")
	}
	if val != "b" {
		t.Fatalf("expected 'b', got %v", val)
	}
}

func TestPutOverwritesExistingKey(t *testing.T) {
	cache := New(10)
	defer cache.Close()

	cache.Put([]byte("a"), "first", 5)
	cache.Put([]byte("a"), "second", 5)

	val, found := cache.Get([]byte("a"))
	if !found || val != "second" {
		t.Fatalf("expected 'second', got %v (found=%v)", val, found)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected 1 entry after overwrite, got %d", cache.Len())
	}
}

func TestNoExpiration(t *testing.T) {
	cache := New(10, WithCleanupInterval(0))
	defer cache.Close()

	cache.Put([]byte("a"), "b", 0)
	time.Sleep(2 * time.Millisecond)

	val, found := cache.Get([]byte("a"))
	if !found || val != "b" {
		t.Fatal("expected key to persist without TTL")
	}
}

func TestExpirationSwept(t *testing.T) {
	cache := New(10, WithCleanupInterval(5*time.Millisecond))
	defer cache.Close()

	cache.Put([]byte("a"), "b", -1)
	time.Sleep(20 * time.Millisecond)

	_, found := cache.Get([]byte("a"))
	if found {
		t.Fatal("expected key to have been swept")
	}
	if cache.Stats().Expirations == 0 {
		t.Fatal("expected at least one recorded expiration")
	}
}

// TestGetDoesNotCheckExpiry confirms an expired-but-not-yet-swept
// entry is still visible to Get, per this cache's deliberate
// lazy-visibility policy.
func TestGetDoesNotCheckExpiry(t *testing.T) {
	cache := New(10, WithCleanupInterval(0))
	defer cache.Close()

	cache.Put([]byte("a"), "b", -1)

	val, found := cache.Get([]byte("a"))
	if !found || val != "b" {
		t.Fatal("expected an already-expired, unswept entry to still be visible")
	}
}

func TestDelete(t *testing.T) {
	cache := New(10)
	defer cache.Close()

	cache.Put([]byte("a"), "b", 5)
	if !cache.Delete([]byte("a")) {
		t.Fatal("expected Delete to report the key was present")
	}

	_, found := cache.Get([]byte("a"))
	if found {
		t.Fatal("expected key to be deleted")
	}
}

func TestDeleteMissingKeyIsSafe(t *testing.T) {
	cache := New(10)
	defer cache.Close()

	if cache.Delete([]byte("ghost")) {
		t.Fatal("expected Delete on a missing key to return false")
	}
}

// TestLRUOrder fills a 3-item cache with a, b, c, touches a, then
// inserts d, and expects b (the actual least-recently-used entry) to
// have been evicted rather than a.
func TestLRUOrder(t *testing.T) {
	cache := New(3, WithCleanupInterval(0))
	defer cache.Close()

	cache.Put([]byte("a"), 1, 0)
	cache.Put([]byte("b"), 2, 0)
	cache.Put([]byte("c"), 3, 0)

	cache.Get([]byte("a"))

	cache.Put([]byte("d"), 4, 0)

	if _, found := cache.Get([]byte("b")); found {
		t.Fatal("expected b to have been evicted as least recently used")
	}
	if _, found := cache.Get([]byte("a")); !found {
		t.Fatal("expected a to survive eviction, it was touched most recently")
	}
	if _, found := cache.Get([]byte("c")); !found {
		t.Fatal("expected c to survive eviction")
	}
	if _, found := cache.Get([]byte("d")); !found {
		t.Fatal("expected d to have been inserted")
	}
}

func TestZeroMaxItemsEvictsImmediately(t *testing.T) {
	cache := New(0, WithCleanupInterval(0))
	defer cache.Close()

	cache.Put([]byte("a"), 1, 0)

	if _, found := cache.Get([]byte("a")); found {
		t.Fatal("expected maxItems == 0 to evict every insert immediately")
	}
	if cache.Len() != 0 {
		t.Fatalf("expected Len() == 0, got %d", cache.Len())
	}
}

func TestResizeGrowsCapacity(t *testing.T) {
	cache := New(1000, WithInitialCapacity(16), WithCleanupInterval(0))
	defer cache.Close()

	for i := 0; i < 32; i++ {
		cache.Put([]byte(fmt.Sprintf("key-%d", i)), i, 0)
	}

	if cache.idx.Capacity() <= 16 {
		t.Fatalf("expected capacity to have grown beyond 16, got %d", cache.idx.Capacity())
	}

	for i := 0; i < 32; i++ {
		if _, found := cache.Get([]byte(fmt.Sprintf("key-%d", i))); !found {
			t.Fatalf("expected key-%d to survive growth, got a miss", i)
		}
	}
}

func TestConcurrentAccess(t *testing.T) {
	cache := New(1000)
	defer cache.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10000; j++ {
				key := []byte(fmt.Sprintf("key-%d-%d", i, j%50))
				cache.Put(key, j, 5)
				cache.Get(key)
			}
		}(i)
	}
	wg.Wait()
}

func TestStatsTracking(t *testing.T) {
	cache := New(10, WithCleanupInterval(0))
	defer cache.Close()

	cache.Put([]byte("a"), 1, 0)

	cache.Get([]byte("a")) // hit
	cache.Get([]byte("b")) // miss

	stats := cache.Stats()
	if stats.Hits != 1 {
		t.Fatalf("expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Fatalf("expected 1 miss, got %d", stats.Misses)
	}
}

// TestTTLReadAtThreeAndEightSeconds preserves the original C
// benchmark's TTL demo (insert with ttl=5, read back successfully at
// t=3s, observe a miss at t=8s) as an illustrative test rather than a
// normative one; it is skipped in short mode since it sleeps.
func TestTTLReadAtThreeAndEightSeconds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping multi-second TTL demo in short mode")
	}

	cache := New(10, WithCleanupInterval(100*time.Millisecond))
	defer cache.Close()

	cache.Put([]byte("name"), "value", 5)

	time.Sleep(3 * time.Second)
	if _, found := cache.Get([]byte("name")); !found {
		t.Fatal("expected key to still be present at t=3s")
	}

	time.Sleep(5 * time.Second)
	if _, found := cache.Get([]byte("name")); found {
		t.Fatal("expected key to be expired and swept by t=8s")
	}
}

func TestCloseIsIdempotentAndDrains(t *testing.T) {
	cache := New(10)
	cache.Put([]byte("a"), 1, 0)

	if err := cache.Close(); err != nil {
		t.Fatalf("unexpected error from Close: %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("unexpected error from second Close: %v", err)
	}
	if cache.Len() != 0 {
		t.Fatalf("expected Close to drain the cache, got Len() == %d", cache.Len())
	}
}
