// Package menu models the battle input surfaces: the ring menu a player
// rotates through, the target reticle, and the selection flow that turns
// confirmations into action commands. Pure state; event wiring and
// rendering belong to the host.
package menu

import (
	"github.com/thornfell/battle/internal/core/tlist"
)

// Entry is one verb slot on a ring.
type Entry struct {
	Verb    string
	DataID  string // technique or consumable id for sub-ring entries
	Enabled bool
}

// Ring is a circular menu. Rotation wraps and skips disabled entries; the
// entry list is versioned so hosts can snapshot it for rendering while the
// flow keeps toggling availability.
type Ring struct {
	entries *tlist.List[Entry]
	index   int
	parent  *Ring
}

// NewRing builds a ring over the given entries, selecting the first
// enabled one.
func NewRing(entries []Entry) *Ring {
	r := &Ring{entries: tlist.FromSlice(tlist.DefaultBloatFactor, entries)}
	if _, ok := r.Selected(); !ok {
		r.rotate(1)
	}
	return r
}

// Selected returns the entry under the cursor, false when it is disabled
// or the ring is empty.
func (r *Ring) Selected() (Entry, bool) {
	n, entries := r.entries.Len()
	r.entries = entries
	if n == 0 || r.index >= n {
		return Entry{}, false
	}
	e, entries := r.entries.Get(r.index)
	r.entries = entries
	return e, e.Enabled
}

// RotateRight moves the cursor clockwise to the next enabled entry.
func (r *Ring) RotateRight() { r.rotate(1) }

// RotateLeft moves the cursor counter-clockwise to the next enabled entry.
func (r *Ring) RotateLeft() { r.rotate(-1) }

func (r *Ring) rotate(dir int) {
	n, entries := r.entries.Len()
	r.entries = entries
	if n == 0 {
		return
	}
	idx := r.index
	for step := 0; step < n; step++ {
		idx = (idx + dir + n) % n
		e, entries := r.entries.Get(idx)
		r.entries = entries
		if e.Enabled {
			r.index = idx
			return
		}
	}
	// nothing enabled; cursor stays put
}

// Confirm returns the selected entry if it is enabled.
func (r *Ring) Confirm() (Entry, bool) {
	return r.Selected()
}

// Push opens a sub-ring that remembers this ring as its parent.
func (r *Ring) Push(entries []Entry) *Ring {
	sub := NewRing(entries)
	sub.parent = r
	return sub
}

// Cancel returns the parent ring, or the ring itself at the root.
func (r *Ring) Cancel() *Ring {
	if r.parent != nil {
		return r.parent
	}
	return r
}

// Entries returns a stable snapshot for rendering.
func (r *Ring) Entries() []Entry {
	snap, entries := r.entries.Slice()
	r.entries = entries
	return snap
}

// SetEnabled toggles every entry with the given verb.
func (r *Ring) SetEnabled(verb string, enabled bool) {
	snap := r.Entries()
	for i, e := range snap {
		if e.Verb == verb && e.Enabled != enabled {
			e.Enabled = enabled
			r.entries = r.entries.Set(i, e)
		}
	}
}
