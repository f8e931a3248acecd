// Package character holds battle-time combatant state: the stat block
// built from an archetype, and the animation-cycle state machine. Pure
// data and pure functions; mutations happen in battle systems.
package character

import (
	"github.com/thornfell/battle/internal/core/tlist"
	"github.com/thornfell/battle/internal/data"
)

// Character is the battle-time state of one combatant.
type Character struct {
	Name      string
	Archetype string
	Level     int

	HP    int
	MaxHP int
	TP    int
	MaxTP int

	Power   int
	Magic   int
	Defense int
	Absorb  int
	Speed   int // readiness gain per tick

	Enemy     bool
	Defending bool
	Wounded   bool
	Poisoned  bool
	Silenced  bool
	Asleep    bool

	// Readiness accumulates Speed each running tick; the combatant may act
	// when it crosses the configured action window.
	Readiness int

	Exp       int
	ExpReward int

	// Techs are the technique ids known at the current level, in unlock
	// order. Items is the carried consumable stock; it shrinks as items
	// are used, so it lives in a transactional list like every other
	// versioned sequence in the engine.
	Techs []string
	Items *tlist.List[string]
}

// New builds a combatant from an archetype at the given level.
func New(a *data.Archetype, name string, level int, items []string, bloat int) *Character {
	if level < 1 {
		level = 1
	}
	scale := func(base int) int {
		v := float64(base) * (1 + a.StatGrow*float64(level-1))
		return int(v)
	}
	maxHP := int(float64(a.BaseHP) * (1 + a.HPGrowth*float64(level-1)))
	if maxHP < 1 {
		maxHP = 1
	}

	var techs []string
	for _, g := range a.Techs {
		if g.Level <= level {
			techs = append(techs, g.Tech)
		}
	}

	return &Character{
		Name:      name,
		Archetype: a.ID,
		Level:     level,
		HP:        maxHP,
		MaxHP:     maxHP,
		TP:        a.BaseTP,
		MaxTP:     a.BaseTP,
		Power:     scale(a.Power),
		Magic:     scale(a.Magic),
		Defense:   scale(a.Defense),
		Absorb:    scale(a.Absorb),
		Speed:     max(1, a.Speed),
		Enemy:     a.Enemy,
		ExpReward: a.ExpReward,
		Techs:     techs,
		Items:     tlist.FromSlice(bloat, items),
	}
}

// Healthy reports whether the combatant can still act.
func (c *Character) Healthy() bool {
	return !c.Wounded && c.HP > 0
}

// CanUseTech reports whether the combatant knows the technique and can pay
// for it right now.
func (c *Character) CanUseTech(t *data.Technique) bool {
	if c.Silenced && t.Magical {
		return false
	}
	if c.TP < t.TPCost {
		return false
	}
	for _, id := range c.Techs {
		if id == t.ID {
			return true
		}
	}
	return false
}

// ApplyDamage clamps HP into [0, MaxHP] and reports whether the combatant
// went down. Negative amounts heal. Waking on damage is handled here since
// it is a property of the sheet, not of any one attack.
func (c *Character) ApplyDamage(amount int) (downed bool) {
	if amount > 0 && c.Asleep {
		c.Asleep = false
	}
	c.HP -= amount
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
	if c.HP <= 0 {
		c.HP = 0
		return !c.Wounded
	}
	return false
}

// SpendTP deducts cost, clamping at zero.
func (c *Character) SpendTP(cost int) {
	c.TP -= cost
	if c.TP < 0 {
		c.TP = 0
	}
}

// RestoreTP adds amount, clamping at MaxTP.
func (c *Character) RestoreTP(amount int) {
	c.TP += amount
	if c.TP > c.MaxTP {
		c.TP = c.MaxTP
	}
}
