package menu

import (
	"github.com/thornfell/battle/internal/battle"
	"github.com/thornfell/battle/internal/core/ecs"
	"github.com/thornfell/battle/internal/data"
)

// Root ring verbs.
const (
	VerbAttack  = "attack"
	VerbDefend  = "defend"
	VerbTech    = "tech"
	VerbConsume = "item"
)

// Stage tracks where in the selection flow one ally is.
type Stage uint8

const (
	StageRoot Stage = iota
	StageSub
	StageTarget
	StageDone
)

// Flow drives one ally's selection: root ring, optional sub-ring
// (techniques or items), optional target reticle, finished command. The
// host rotates and confirms; Command reports the result once StageDone is
// reached.
type Flow struct {
	b      *battle.Battle
	tables *data.Tables
	source ecs.CombatantID

	ring    *Ring
	reticle *Reticle
	stage   Stage
	pending battle.ActionCommand
}

// NewFlow opens the root ring for an ally. Tech and item verbs are
// disabled when the combatant has nothing usable behind them.
func NewFlow(b *battle.Battle, tables *data.Tables, source ecs.CombatantID) *Flow {
	f := &Flow{b: b, tables: tables, source: source, stage: StageRoot}
	src := b.Character(source)

	hasTech, hasItem := false, false
	if src != nil {
		for _, tid := range src.Techs {
			if t := tables.Techniques.Get(tid); t != nil && src.CanUseTech(t) {
				hasTech = true
				break
			}
		}
		var empty bool
		empty, src.Items = src.Items.IsEmpty()
		hasItem = !empty
	}

	f.ring = NewRing([]Entry{
		{Verb: VerbAttack, Enabled: true},
		{Verb: VerbTech, Enabled: hasTech},
		{Verb: VerbConsume, Enabled: hasItem},
		{Verb: VerbDefend, Enabled: true},
	})
	return f
}

func (f *Flow) Stage() Stage      { return f.stage }
func (f *Flow) Ring() *Ring       { return f.ring }
func (f *Flow) Reticle() *Reticle { return f.reticle }

// Rotate moves the active surface: the reticle when targeting, the ring
// otherwise. dir > 0 is clockwise.
func (f *Flow) Rotate(dir int) {
	if f.stage == StageTarget {
		if dir > 0 {
			f.reticle.Next()
		} else {
			f.reticle.Prev()
		}
		return
	}
	if dir > 0 {
		f.ring.RotateRight()
	} else {
		f.ring.RotateLeft()
	}
}

// Confirm advances the flow. It returns the finished command with true
// exactly once, when the final confirmation lands.
func (f *Flow) Confirm() (battle.ActionCommand, bool) {
	switch f.stage {
	case StageRoot:
		f.confirmRoot()
	case StageSub:
		f.confirmSub()
	case StageTarget:
		if id, ok := f.reticle.Current(); ok {
			f.pending.Target = id
			f.stage = StageDone
		}
	default:
		return battle.ActionCommand{}, false
	}
	if f.stage == StageDone {
		return f.pending, true
	}
	return battle.ActionCommand{}, false
}

// Cancel steps back one stage: reticle to sub-ring (or root), sub-ring to
// root. At the root it is a no-op.
func (f *Flow) Cancel() {
	switch f.stage {
	case StageTarget:
		f.reticle = nil
		if f.ring.parent != nil {
			f.stage = StageSub
		} else {
			f.stage = StageRoot
		}
	case StageSub:
		f.ring = f.ring.Cancel()
		f.stage = StageRoot
	}
}

func (f *Flow) confirmRoot() {
	e, ok := f.ring.Confirm()
	if !ok {
		return
	}
	src := f.b.Character(f.source)
	if src == nil {
		return
	}

	switch e.Verb {
	case VerbAttack:
		f.pending = battle.ActionCommand{Type: battle.ActionAttack, Source: f.source}
		f.target(f.foes())

	case VerbDefend:
		f.pending = battle.ActionCommand{Type: battle.ActionDefend, Source: f.source}
		f.stage = StageDone

	case VerbTech:
		var entries []Entry
		for _, tid := range src.Techs {
			t := f.tables.Techniques.Get(tid)
			if t == nil {
				continue
			}
			entries = append(entries, Entry{Verb: t.Name, DataID: t.ID, Enabled: src.CanUseTech(t)})
		}
		f.ring = f.ring.Push(entries)
		f.stage = StageSub

	case VerbConsume:
		items, list := src.Items.Slice()
		src.Items = list
		seen := map[string]bool{}
		var entries []Entry
		for _, id := range items {
			if seen[id] {
				continue
			}
			seen[id] = true
			if c := f.tables.Consumables.Get(id); c != nil {
				entries = append(entries, Entry{Verb: c.Name, DataID: c.ID, Enabled: true})
			}
		}
		f.ring = f.ring.Push(entries)
		f.stage = StageSub
	}
}

func (f *Flow) confirmSub() {
	e, ok := f.ring.Confirm()
	if !ok {
		return
	}

	if t := f.tables.Techniques.Get(e.DataID); t != nil {
		f.pending = battle.ActionCommand{Type: battle.ActionTech, Source: f.source, DataID: t.ID}
		switch t.Aim {
		case data.AimEnemy:
			f.target(f.foes())
		case data.AimAlly:
			f.target(f.own(false))
		default: // self and whole-side aims need no reticle
			f.stage = StageDone
		}
		return
	}

	if c := f.tables.Consumables.Get(e.DataID); c != nil {
		f.pending = battle.ActionCommand{Type: battle.ActionConsume, Source: f.source, DataID: c.ID}
		if c.Aim == data.AimSelf {
			f.stage = StageDone
			return
		}
		f.target(f.own(c.Revive))
	}
}

// target opens the reticle, or finishes targetless when nothing is legal.
func (f *Flow) target(ids []ecs.CombatantID) {
	if len(ids) == 0 {
		f.stage = StageDone
		return
	}
	f.reticle = NewReticle(ids)
	f.stage = StageTarget
}

func (f *Flow) foes() []ecs.CombatantID {
	src := f.b.Character(f.source)
	if src == nil {
		return nil
	}
	if src.Enemy {
		return f.b.Allies()
	}
	return f.b.Enemies()
}

// own lists the acting side, optionally including wounded members (for
// revival items).
func (f *Flow) own(includeWounded bool) []ecs.CombatantID {
	src := f.b.Character(f.source)
	if src == nil {
		return nil
	}
	var out []ecs.CombatantID
	for _, id := range f.b.Roster() {
		c := f.b.Character(id)
		if c == nil || c.Enemy != src.Enemy {
			continue
		}
		if c.Healthy() || (includeWounded && c.Wounded) {
			out = append(out, id)
		}
	}
	return out
}
