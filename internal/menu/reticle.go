package menu

import (
	"github.com/thornfell/battle/internal/core/ecs"
	"github.com/thornfell/battle/internal/core/tlist"
)

// Reticle cycles a cursor over the legal targets for a pending action.
type Reticle struct {
	targets *tlist.List[ecs.CombatantID]
	index   int
}

// NewReticle builds a reticle over ids, cursor on the first.
func NewReticle(ids []ecs.CombatantID) *Reticle {
	return &Reticle{targets: tlist.FromSlice(tlist.DefaultBloatFactor, ids)}
}

// Current returns the target under the cursor, false when no targets
// remain.
func (r *Reticle) Current() (ecs.CombatantID, bool) {
	n, targets := r.targets.Len()
	r.targets = targets
	if n == 0 {
		return 0, false
	}
	if r.index >= n {
		r.index = 0
	}
	id, targets := r.targets.Get(r.index)
	r.targets = targets
	return id, true
}

// Next moves the cursor forward, wrapping.
func (r *Reticle) Next() { r.step(1) }

// Prev moves the cursor backward, wrapping.
func (r *Reticle) Prev() { r.step(-1) }

func (r *Reticle) step(dir int) {
	n, targets := r.targets.Len()
	r.targets = targets
	if n == 0 {
		return
	}
	r.index = (r.index + dir + n) % n
}

// Drop removes a target that stopped being legal (downed mid-selection),
// keeping the cursor on a valid entry.
func (r *Reticle) Drop(id ecs.CombatantID) {
	r.targets = r.targets.Remove(id)
	n, targets := r.targets.Len()
	r.targets = targets
	if n > 0 && r.index >= n {
		r.index = n - 1
	}
}

// Targets returns a stable snapshot for rendering.
func (r *Reticle) Targets() []ecs.CombatantID {
	snap, targets := r.targets.Slice()
	r.targets = targets
	return snap
}
