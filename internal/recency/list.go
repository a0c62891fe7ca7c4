// Package recency implements the most-recently-used-first doubly
// linked list that backs LRU eviction.
//
// The teacher (tempuscache) gets this behavior for free from
// container/list, wrapping every Item in a *list.Element. Because
// this design requires the index and the recency list to share one
// owned *entry.Entry (see internal/entry), the list is hand-rolled
// directly over Entry's own Prev/Next fields instead of boxing
// entries in a second node type the way container/list would.
//
// None of these operations take a lock. Per the design's coarse
// locking discipline, the caller (the Cache coordinator) holds the
// single cache-wide mutex for the duration of any call here.
package recency

import "robinhoodcache/internal/entry"

// List is a doubly linked list of *entry.Entry in MRU-first order.
type List struct {
	head, tail *entry.Entry
	length     int
}

// New returns an empty recency list.
func New() *List {
	return &List{}
}

// Len reports the number of entries currently linked.
func (l *List) Len() int {
	return l.length
}

// Head returns the most-recently-used entry, or nil if the list is
// empty.
func (l *List) Head() *entry.Entry {
	return l.head
}

// Tail returns the least-recently-used entry, or nil if the list is
// empty.
func (l *List) Tail() *entry.Entry {
	return l.tail
}

// PushFront links e at the head of the list. e must not already be
// linked.
func (l *List) PushFront(e *entry.Entry) {
	e.Prev = nil
	e.Next = l.head
	if l.head != nil {
		l.head.Prev = e
	}
	l.head = e
	if l.tail == nil {
		l.tail = e
	}
	l.length++
}

// MoveToFront relinks e at the head of the list. It is a no-op if e
// is already the head (including the single-entry cache case, where
// head and tail are the same node).
func (l *List) MoveToFront(e *entry.Entry) {
	if e == l.head {
		return
	}
	l.detach(e)
	e.Prev = nil
	e.Next = l.head
	if l.head != nil {
		l.head.Prev = e
	}
	l.head = e
	if l.tail == nil {
		l.tail = e
	}
}

// Unlink removes e from the list. e must currently be linked.
func (l *List) Unlink(e *entry.Entry) {
	l.detach(e)
	e.Prev, e.Next = nil, nil
	l.length--
}

// detach splices e out of its current position without touching
// length or e's own pointers; callers finish the job.
func (l *List) detach(e *entry.Entry) {
	if e.Prev != nil {
		e.Prev.Next = e.Next
	} else {
		l.head = e.Next
	}
	if e.Next != nil {
		e.Next.Prev = e.Prev
	} else {
		l.tail = e.Prev
	}
}

// PopBack unlinks and returns the least-recently-used entry, or nil
// if the list is empty.
func (l *List) PopBack() *entry.Entry {
	if l.tail == nil {
		return nil
	}
	e := l.tail
	l.Unlink(e)
	return e
}
