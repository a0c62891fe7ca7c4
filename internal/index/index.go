// Package index implements the open-addressed Robin Hood hash index
// that gives the cache its O(1) average lookup.
//
// The algorithm follows the Robin Hood "steal from the rich" creed
// described in the pack's own reference hash maps
// (zyedidia/generic's hashmap/robin.go and the EinfachAndy/hashmaps
// RobinHood type both linearly probe and swap in an incoming entry
// whenever it has traveled farther from its ideal slot than the
// resident it meets) and is grounded, for the probe-bound and
// resize-trigger numbers, on the original C hash.c this design
// replaces (MAX_PROBE_DEPTH 15, load factor 0.7, doubling from an
// initial capacity of 16).
//
// Unlike the C original, a probe-depth overflow during insertion
// triggers a resize-and-retry instead of silently dropping the key
// (see the design note on probe-overflow handling). Like the original
// and like every reference hash map above, the index itself takes no
// lock: the Cache coordinator holds the single cache-wide mutex for
// the duration of any call here.
package index

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/zyedidia/generic"

	"robinhoodcache/internal/entry"
)

// MaxProbeDepth bounds how many slots Lookup and Insert will probe
// before giving up (and, for Insert, forcing a resize).
const MaxProbeDepth = 15

// DefaultLoadFactor is the load factor beyond which Insert grows the
// table before probing.
const DefaultLoadFactor = 0.7

// DefaultInitialCapacity is the slot count a fresh Index starts with.
const DefaultInitialCapacity = 16

// maxGrowAttempts bounds how many times Insert will double the table
// to escape a probe-depth overflow. It is a last-resort safety valve,
// not an expected code path: one resize always halves the load
// factor, which clears a 15-slot overflow for any realistic key
// distribution.
const maxGrowAttempts = 32

// ErrIndexFull is returned in the (practically unreachable) case
// where repeated resizing still cannot place an entry within
// MaxProbeDepth slots of its ideal index.
var ErrIndexFull = errors.New("index: could not place entry after repeated resize")

// Index is an open-addressed hash table of *entry.Entry slots using
// Robin Hood probing.
type Index struct {
	slots      []*entry.Entry
	size       int
	capacity   int
	loadFactor float64
	hasher     HashFunc
}

// New creates an Index with the given initial capacity, load-factor
// growth threshold, and hash function. initialCapacity is rounded up
// to the next power of two (matching the pack's own convention for
// open-addressed tables, e.g. zyedidia/generic's NextPowerOf2-sized
// RobinMap) so a custom WithInitialCapacity option still yields clean
// doubling.
func New(initialCapacity int, loadFactor float64, hasher HashFunc) *Index {
	if initialCapacity < 1 {
		initialCapacity = DefaultInitialCapacity
	}
	capacity := int(generic.NextPowerOf2(uint64(initialCapacity)))
	if loadFactor <= 0 || loadFactor >= 1 {
		loadFactor = DefaultLoadFactor
	}
	if hasher == nil {
		hasher = DJB2
	}
	return &Index{
		slots:      make([]*entry.Entry, capacity),
		capacity:   capacity,
		loadFactor: loadFactor,
		hasher:     hasher,
	}
}

// Size returns the number of live entries.
func (ix *Index) Size() int { return ix.size }

// Capacity returns the current number of slots.
func (ix *Index) Capacity() int { return ix.capacity }

// Lookup returns the entry stored for key, if any, probing at most
// MaxProbeDepth slots from key's ideal index.
func (ix *Index) Lookup(key []byte) (*entry.Entry, bool) {
	idx := int(ix.hasher(key)) % ix.capacity
	for probe := 0; probe < MaxProbeDepth; probe++ {
		slot := ix.slots[idx]
		if slot == nil {
			return nil, false
		}
		if bytes.Equal(slot.Key, key) {
			return slot, true
		}
		idx = (idx + 1) % ix.capacity
	}
	return nil, false
}

// Insert places e, whose Key must not already be present (the Cache
// coordinator checks via Lookup and mutates existing entries in
// place rather than reinserting them). It grows the table first
// whenever the load factor would otherwise be exceeded, and again,
// as many times as maxGrowAttempts allows, if probing still overflows
// MaxProbeDepth slots.
func (ix *Index) Insert(e *entry.Entry) error {
	for attempt := 0; attempt < maxGrowAttempts; attempt++ {
		if float64(ix.size+1)/float64(ix.capacity) > ix.loadFactor {
			if err := ix.grow(); err != nil {
				return err
			}
		}
		if ix.insertOnce(e) {
			return nil
		}
		if err := ix.grow(); err != nil {
			return err
		}
	}
	return fmt.Errorf("insert %q: %w", e.Key, ErrIndexFull)
}

// insertOnce performs a single Robin Hood probing pass for e,
// swapping it with any resident entry whose probe distance is
// smaller (the "steal from the rich" creed). It returns false if the
// pass exhausts MaxProbeDepth slots without finding a home.
//
// Every slot write and every probe-distance bump applied to a
// displaced resident is recorded in history first. If the pass
// overflows MaxProbeDepth without placing e, history is unwound in
// reverse so the table (and every entry's ProbeDistance) is left
// exactly as insertOnce found it - a failed pass must never strand a
// resident outside the table it was displaced from.
func (ix *Index) insertOnce(e *entry.Entry) bool {
	type displacement struct {
		idx      int
		resident *entry.Entry
		probeAt  int
	}
	// A single pass can swap more than MaxProbeDepth times (a swap does
	// not advance the carried entry's probe distance), so history grows.
	var history []displacement

	idx := int(ix.hasher(e.Key)) % ix.capacity
	current := e
	current.ProbeDistance = 0
	for current.ProbeDistance < MaxProbeDepth {
		slot := ix.slots[idx]
		if slot == nil {
			ix.slots[idx] = current
			ix.size++
			return true
		}
		if current.ProbeDistance > slot.ProbeDistance {
			history = append(history, displacement{idx: idx, resident: slot, probeAt: slot.ProbeDistance})
			generic.Swap(&current, &ix.slots[idx])
		}
		idx = (idx + 1) % ix.capacity
		current.ProbeDistance++
	}

	for i := len(history) - 1; i >= 0; i-- {
		d := history[i]
		ix.slots[d.idx] = d.resident
		d.resident.ProbeDistance = d.probeAt
	}
	return false
}

// grow doubles the table and reinserts every live entry, recomputing
// probe distances from scratch. If even a doubled table cannot fit
// every entry within MaxProbeDepth (only possible under pathological
// hash collisions), it keeps doubling up to maxGrowAttempts times.
func (ix *Index) grow() error {
	cap := ix.capacity
	for attempt := 0; attempt < maxGrowAttempts; attempt++ {
		cap *= 2
		tmp := &Index{
			slots:      make([]*entry.Entry, cap),
			capacity:   cap,
			loadFactor: ix.loadFactor,
			hasher:     ix.hasher,
		}
		ok := true
		for _, e := range ix.slots {
			if e == nil {
				continue
			}
			if !tmp.insertOnce(e) {
				ok = false
				break
			}
		}
		if ok {
			ix.slots, ix.capacity, ix.size = tmp.slots, tmp.capacity, tmp.size
			return nil
		}
	}
	return fmt.Errorf("grow from capacity %d: %w", ix.capacity, ErrIndexFull)
}

// Delete removes the entry for key, if present, and backward-shifts
// its successors so no entry's probe distance is left stranded: the
// slot after the removed one is pulled back if it is non-empty and
// has a nonzero probe distance, and so on, until an empty slot or a
// zero-distance (already-ideal) entry is reached.
func (ix *Index) Delete(key []byte) (*entry.Entry, bool) {
	idx := int(ix.hasher(key)) % ix.capacity
	found := -1
	for probe := 0; probe < MaxProbeDepth; probe++ {
		slot := ix.slots[idx]
		if slot == nil {
			return nil, false
		}
		if bytes.Equal(slot.Key, key) {
			found = idx
			break
		}
		idx = (idx + 1) % ix.capacity
	}
	if found == -1 {
		return nil, false
	}

	removed := ix.slots[found]
	ix.slots[found] = nil
	ix.size--

	empty := found
	next := (found + 1) % ix.capacity
	for ix.slots[next] != nil && ix.slots[next].ProbeDistance > 0 {
		ix.slots[next].ProbeDistance--
		ix.slots[empty] = ix.slots[next]
		ix.slots[next] = nil
		empty = next
		next = (next + 1) % ix.capacity
	}
	return removed, true
}

// Each calls fn for every live entry, in slot order (no particular
// logical order).
func (ix *Index) Each(fn func(e *entry.Entry)) {
	for _, e := range ix.slots {
		if e != nil {
			fn(e)
		}
	}
}
