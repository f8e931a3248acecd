package battle

import (
	"github.com/thornfell/battle/internal/character"
	"github.com/thornfell/battle/internal/data"
)

// Built-in damage formulas. The scripting engine can replace these per
// technique; these are also the fallback when a script is missing or
// errors, so a battle never stalls on script trouble.

// Tuning carries the config knobs combat math needs, plus an injected
// roll(n) returning a uniform value in [0, n). Determinism comes from the
// caller seeding the roll source.
type Tuning struct {
	VariancePct    int
	DefendModifier float64
	Roll           func(n int) int
}

// vary spreads amount by +/- VariancePct percent.
func (t Tuning) vary(amount int) int {
	if t.VariancePct <= 0 || amount <= 0 {
		return amount
	}
	spread := amount * t.VariancePct / 100
	if spread == 0 {
		return amount
	}
	return amount - spread + t.Roll(2*spread+1)
}

// guard applies the defend modifier to incoming damage.
func (t Tuning) guard(target *character.Character, amount int) int {
	if target.Defending && amount > 0 {
		amount = int(float64(amount) * t.DefendModifier)
	}
	if amount < 1 {
		amount = 1
	}
	return amount
}

// AttackDamage computes a plain physical strike.
func AttackDamage(src, tgt *character.Character, tn Tuning) int {
	base := 2*src.Power - tgt.Defense
	if base < 1 {
		base = 1
	}
	return tn.guard(tgt, tn.vary(base))
}

// TechAmount computes a technique's point swing: positive damage, or
// negative for healing techniques.
func TechAmount(src, tgt *character.Character, tech *data.Technique, tn Tuning) int {
	var base int
	if tech.Magical {
		base = src.Magic + tech.Power - tgt.Absorb
	} else {
		base = 2*src.Power + tech.Power - tgt.Defense
	}
	if base < 1 {
		base = 1
	}
	if tech.Healing {
		// Healing scales off the caster only and ignores guard.
		return -tn.vary(src.Magic + tech.Power)
	}
	return tn.guard(tgt, tn.vary(base))
}

// ConsumableSwing returns the HP swing of an item (negative = restore).
func ConsumableSwing(item *data.Consumable) int {
	return -item.HP
}
