// Package tlist implements a transactional list: an array-backed sequence
// with value semantics at the API boundary but amortized O(1) mutation for
// single-writer sequential use.
//
// Every operation returns a handle that supersedes the one passed in. The
// newest handle of a lineage mutates a shared backing slice in place and
// records each edit in an operation log; an older (stale) handle rebuilds
// its own snapshot from its frozen baseline plus its frozen log prefix the
// next time it is used. When the log outgrows the live element count by the
// configured bloat factor, the backing slice is re-baselined and the log
// cleared, bounding replay cost.
//
// Not goroutine-safe. One live writer per lineage.
package tlist

import (
	"iter"
	"slices"
)

// DefaultBloatFactor is the log-to-length ratio used when a constructor is
// given a factor below 1.
const DefaultBloatFactor = 1

type opKind uint8

const (
	opAdd opKind = iota
	opRemove
	opSet
)

// logOp is one recorded edit. Replay order is append order (oldest first);
// replaying newest-first would corrupt set/remove targets.
type logOp[T comparable] struct {
	kind  opKind
	index int
	value T
}

// List is a handle into a lineage. The zero value is not usable; construct
// with New, FromSlice, FromSeq or Singleton.
//
// A handle is live while current points at itself. A mutation through the
// live handle edits backing in place, appends to log, and forwards current
// to a freshly allocated handle sharing the same arrays. The superseded
// handle keeps its shorter slice headers, so its view of log and backing
// length is frozen at the moment it was superseded.
type List[T comparable] struct {
	current  *List[T]
	backing  []T
	baseline []T
	log      []logOp[T]
	bloat    int
}

// New returns an empty lineage. Factors below 1 clamp to DefaultBloatFactor.
func New[T comparable](bloat int) *List[T] {
	return fromOwned[T](bloat, nil)
}

// FromSlice returns a lineage seeded with a copy of items.
func FromSlice[T comparable](bloat int, items []T) *List[T] {
	return fromOwned(bloat, slices.Clone(items))
}

// FromSeq returns a lineage seeded with items in iteration order.
func FromSeq[T comparable](bloat int, items iter.Seq[T]) *List[T] {
	var buf []T
	for v := range items {
		buf = append(buf, v)
	}
	return fromOwned(bloat, buf)
}

// Singleton returns a lineage of length 1 with the default bloat factor.
func Singleton[T comparable](item T) *List[T] {
	return fromOwned(DefaultBloatFactor, []T{item})
}

// fromOwned builds a fresh live lineage around a slice the caller hands
// over. baseline must be a separate array from backing since backing is
// later mutated in place.
func fromOwned[T comparable](bloat int, items []T) *List[T] {
	if bloat < 1 {
		bloat = DefaultBloatFactor
	}
	l := &List[T]{
		backing:  items,
		baseline: slices.Clone(items),
		bloat:    bloat,
	}
	l.current = l
	return l
}

// validate is the entry gate for every operation. A live handle is
// compressed if its log is bloated; a stale handle commits to a fresh
// lineage built from its own frozen snapshot.
func (l *List[T]) validate() *List[T] {
	if l.current == l {
		if len(l.log) > len(l.backing)*l.bloat {
			l.compress()
		}
		return l
	}
	return l.commit()
}

// compress collapses backing into a new baseline and drops the log. Only
// ever called on the live handle. The old baseline and log arrays are left
// intact for stale handles that still reference them.
func (l *List[T]) compress() {
	l.baseline = slices.Clone(l.backing)
	l.log = nil
}

// commit replays this handle's log onto its baseline, oldest entry first,
// and returns the result as a fresh independent lineage. The receiver is
// never written: a stale handle stays pure history and commits again on
// every use.
func (l *List[T]) commit() *List[T] {
	backing := slices.Clone(l.baseline)
	for _, op := range l.log {
		switch op.kind {
		case opAdd:
			backing = append(backing, op.value)
		case opRemove:
			if i := slices.Index(backing, op.value); i >= 0 {
				backing = slices.Delete(backing, i, i+1)
			}
		case opSet:
			backing[op.index] = op.value
		}
	}
	return fromOwned(l.bloat, backing)
}

// supersede installs a new live handle over the given slice headers and
// redirects the old live handle's forwarding pointer at it. The old handle
// keeps its own (shorter) headers untouched.
func (l *List[T]) supersede(backing []T, log []logOp[T]) *List[T] {
	n := &List[T]{
		current:  nil,
		backing:  backing,
		baseline: l.baseline,
		log:      log,
		bloat:    l.bloat,
	}
	n.current = n
	l.current = n
	return n
}

// Get returns the element at index. Panics if index is out of range.
// Validation may commit or compress even though this is a read, so the
// returned handle must replace the one passed in.
func (l *List[T]) Get(index int) (T, *List[T]) {
	c := l.validate()
	return c.backing[index], c
}

// Set overwrites the element at index. Panics if index is out of range.
func (l *List[T]) Set(index int, value T) *List[T] {
	c := l.validate()
	c.backing[index] = value
	return c.supersede(c.backing, append(c.log, logOp[T]{kind: opSet, index: index, value: value}))
}

// Add appends value to the end.
func (l *List[T]) Add(value T) *List[T] {
	c := l.validate()
	return c.supersede(append(c.backing, value), append(c.log, logOp[T]{kind: opAdd, value: value}))
}

// Remove deletes the first element equal to value, or does nothing if no
// element matches.
func (l *List[T]) Remove(value T) *List[T] {
	c := l.validate()
	i := slices.Index(c.backing, value)
	if i < 0 {
		return c
	}
	backing := slices.Delete(c.backing, i, i+1)
	return c.supersede(backing, append(c.log, logOp[T]{kind: opRemove, value: value}))
}

// AddAll appends each value in order.
func (l *List[T]) AddAll(values ...T) *List[T] {
	c := l
	for _, v := range values {
		c = c.Add(v)
	}
	return c
}

// RemoveAll removes the first occurrence of each value in order.
func (l *List[T]) RemoveAll(values ...T) *List[T] {
	c := l
	for _, v := range values {
		c = c.Remove(v)
	}
	return c
}

// Len returns the element count.
func (l *List[T]) Len() (int, *List[T]) {
	c := l.validate()
	return len(c.backing), c
}

// Contains reports whether any element equals value.
func (l *List[T]) Contains(value T) (bool, *List[T]) {
	c := l.validate()
	return slices.Contains(c.backing, value), c
}

// IsEmpty reports whether the list has no elements.
func (l *List[T]) IsEmpty() (bool, *List[T]) {
	c := l.validate()
	return len(c.backing) == 0, c
}

// NotEmpty reports whether the list has at least one element.
func (l *List[T]) NotEmpty() (bool, *List[T]) {
	c := l.validate()
	return len(c.backing) > 0, c
}

// Slice returns an eager copy of the current contents. The copy stays
// stable under further use of the lineage, which keeps mutating the shared
// backing array.
func (l *List[T]) Slice() ([]T, *List[T]) {
	c := l.validate()
	return slices.Clone(c.backing), c
}

// Seq returns an iterator over a snapshot of the current contents. The
// snapshot is taken eagerly; the lineage may be mutated while iterating.
func (l *List[T]) Seq() (iter.Seq[T], *List[T]) {
	snap, c := l.Slice()
	return slices.Values(snap), c
}
