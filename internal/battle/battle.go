// Package battle holds the battle state machine: the combatant roster,
// the ready/running/cease phase progression, and the pending action queue.
// The queue and every other versioned sequence here is a transactional
// list; consumers must always keep the handle returned by the last
// operation.
package battle

import (
	"fmt"

	"github.com/thornfell/battle/internal/character"
	"github.com/thornfell/battle/internal/core/ecs"
	"github.com/thornfell/battle/internal/core/tlist"
	"github.com/thornfell/battle/internal/data"
)

// PhaseKind is the coarse battle state.
type PhaseKind uint8

const (
	PhaseReady   PhaseKind = iota // countdown before input opens
	PhaseRunning                  // commands accepted and resolved
	PhaseCease                    // one side defeated, outcome settling
)

func (k PhaseKind) String() string {
	switch k {
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhaseCease:
		return "cease"
	}
	return "unknown"
}

// Phase carries the current kind plus when it began and, for cease, who won.
type Phase struct {
	Kind    PhaseKind
	Since   int64
	Victory bool
}

// Battle is the authoritative state for one encounter.
type Battle struct {
	world *ecs.World
	chars *ecs.Store[character.Character]
	anims *ecs.Store[character.AnimationState]

	// order is the deterministic roster: spawn order, allies first.
	order []ecs.CombatantID

	phase Phase
	queue *tlist.List[ActionCommand]
	tick  int64
	bloat int

	// readyUntil is the tick the ready countdown elapses; kept outside
	// Phase so Since always means "tick the phase began".
	readyUntil int64
}

// New builds a battle seeded from an encounter. countdown is the ready
// phase length in ticks; bloat is the transactional-list bloat factor.
func New(enc *data.Encounter, tables *data.Tables, countdown int, bloat int) (*Battle, error) {
	b := &Battle{
		world: ecs.NewWorld(),
		chars: ecs.NewStore[character.Character](),
		anims: ecs.NewStore[character.AnimationState](),
		phase: Phase{Kind: PhaseReady},
		queue: tlist.New[ActionCommand](bloat),
		bloat: bloat,
	}
	b.world.Registry().Register(b.chars)
	b.world.Registry().Register(b.anims)

	spawn := func(m data.Member, enemy bool) error {
		a := tables.Archetypes.Get(m.Archetype)
		if a == nil {
			return fmt.Errorf("encounter %s: unknown archetype %q", enc.ID, m.Archetype)
		}
		c := character.New(a, m.Name, m.Level, m.Items, bloat)
		c.Enemy = enemy
		id := b.world.Spawn()
		b.chars.Set(id, c)
		anim := &character.AnimationState{SheetID: a.Sheet, Cycle: character.CyclePoise}
		if enemy {
			anim.Direction = character.DirLeft
		} else {
			anim.Direction = character.DirRight
		}
		b.anims.Set(id, anim)
		b.order = append(b.order, id)
		return nil
	}

	for _, m := range enc.Allies {
		if err := spawn(m, false); err != nil {
			return nil, err
		}
	}
	for _, m := range enc.Enemies {
		if err := spawn(m, true); err != nil {
			return nil, err
		}
	}
	if countdown <= 0 {
		b.phase = Phase{Kind: PhaseRunning}
	}
	b.readyUntil = int64(countdown)
	return b, nil
}

func (b *Battle) World() *ecs.World                           { return b.world }
func (b *Battle) Characters() *ecs.Store[character.Character] { return b.chars }
func (b *Battle) Animations() *ecs.Store[character.AnimationState] {
	return b.anims
}

// Roster returns the combatant ids in deterministic order, allies first.
func (b *Battle) Roster() []ecs.CombatantID {
	out := make([]ecs.CombatantID, 0, len(b.order))
	for _, id := range b.order {
		if b.world.Alive(id) {
			out = append(out, id)
		}
	}
	return out
}

func (b *Battle) Phase() Phase { return b.phase }
func (b *Battle) Tick() int64  { return b.tick }

// Character resolves a roster id, nil when released or stale.
func (b *Battle) Character(id ecs.CombatantID) *character.Character {
	if !b.world.Alive(id) {
		return nil
	}
	c, _ := b.chars.Get(id)
	return c
}

// Animation resolves a roster id's animation state, nil when released.
func (b *Battle) Animation(id ecs.CombatantID) *character.AnimationState {
	if !b.world.Alive(id) {
		return nil
	}
	a, _ := b.anims.Get(id)
	return a
}

// Allies returns standing ally ids in roster order.
func (b *Battle) Allies() []ecs.CombatantID {
	return b.side(false)
}

// Enemies returns standing enemy ids in roster order.
func (b *Battle) Enemies() []ecs.CombatantID {
	return b.side(true)
}

func (b *Battle) side(enemy bool) []ecs.CombatantID {
	var out []ecs.CombatantID
	for _, id := range b.Roster() {
		c, _ := b.chars.Get(id)
		if c != nil && c.Enemy == enemy && c.Healthy() {
			out = append(out, id)
		}
	}
	return out
}

// Enqueue appends a command to the pending action queue.
func (b *Battle) Enqueue(cmd ActionCommand) {
	b.queue = b.queue.Add(cmd)
}

// QueueLen reports the number of pending commands.
func (b *Battle) QueueLen() int {
	n, q := b.queue.Len()
	b.queue = q
	return n
}

// PopCommand removes and returns the oldest pending command.
func (b *Battle) PopCommand() (ActionCommand, bool) {
	n, q := b.queue.Len()
	b.queue = q
	if n == 0 {
		return ActionCommand{}, false
	}
	cmd, q := b.queue.Get(0)
	b.queue = q.Remove(cmd)
	return cmd, true
}

// PeekQueue returns a snapshot of the pending commands, oldest first.
func (b *Battle) PeekQueue() []ActionCommand {
	snap, q := b.queue.Slice()
	b.queue = q
	return snap
}

// TakeCommand removes and returns the oldest pending command satisfying
// pred.
func (b *Battle) TakeCommand(pred func(ActionCommand) bool) (ActionCommand, bool) {
	snap, q := b.queue.Slice()
	b.queue = q
	for _, cmd := range snap {
		if pred(cmd) {
			b.queue = b.queue.Remove(cmd)
			return cmd, true
		}
	}
	return ActionCommand{}, false
}

// HasCommandFrom reports whether any pending command is sourced by id.
func (b *Battle) HasCommandFrom(id ecs.CombatantID) bool {
	for _, cmd := range b.PeekQueue() {
		if cmd.Source == id {
			return true
		}
	}
	return false
}

// DropCommandsFrom discards every pending command sourced by id. Used when
// a combatant goes down with actions still queued.
func (b *Battle) DropCommandsFrom(id ecs.CombatantID) {
	b.queue = b.queue.Filter(func(cmd ActionCommand) bool {
		return cmd.Source != id
	})
}

// Advance moves the clock one tick and drives the phase machine: the ready
// countdown opens into running, and running collapses into cease once a
// side is wiped. Command resolution itself belongs to the action system.
func (b *Battle) Advance() {
	b.tick++
	switch b.phase.Kind {
	case PhaseReady:
		if b.tick >= b.readyUntil {
			b.phase = Phase{Kind: PhaseRunning, Since: b.tick}
		}
	case PhaseRunning:
		if wiped := len(b.Enemies()) == 0; wiped || len(b.Allies()) == 0 {
			b.phase = Phase{Kind: PhaseCease, Since: b.tick, Victory: wiped}
			// Nothing resolves after cease; pending commands are dead.
			b.queue = tlist.New[ActionCommand](b.bloat)
		}
	}
}

// Running reports whether input and action resolution are open.
func (b *Battle) Running() bool {
	return b.phase.Kind == PhaseRunning
}

// Ceased reports whether the battle has an outcome.
func (b *Battle) Ceased() (victory bool, ceased bool) {
	return b.phase.Victory, b.phase.Kind == PhaseCease
}

// Bloat returns the configured transactional-list bloat factor, used by
// systems that build further lists for this battle.
func (b *Battle) Bloat() int { return b.bloat }
