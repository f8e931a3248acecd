package battle

import (
	"testing"

	"github.com/thornfell/battle/internal/character"
	"github.com/thornfell/battle/internal/data"
)

// midRoll pins vary() to its midpoint so formulas are exact.
func midRoll(n int) int { return n / 2 }

func flatTuning() Tuning {
	return Tuning{VariancePct: 0, DefendModifier: 0.5, Roll: midRoll}
}

func fighter(power, magic, defense, absorb int) *character.Character {
	return &character.Character{
		Name: "fighter", HP: 100, MaxHP: 100, TP: 20, MaxTP: 20,
		Power: power, Magic: magic, Defense: defense, Absorb: absorb,
	}
}

func TestAttackDamage(t *testing.T) {
	src := fighter(6, 0, 0, 0)
	tgt := fighter(0, 0, 4, 0)

	if got := AttackDamage(src, tgt, flatTuning()); got != 8 {
		t.Errorf("damage = %d, want 2*6-4 = 8", got)
	}
}

func TestAttackDamageFloorsAtOne(t *testing.T) {
	src := fighter(1, 0, 0, 0)
	tgt := fighter(0, 0, 50, 0)

	if got := AttackDamage(src, tgt, flatTuning()); got != 1 {
		t.Errorf("damage = %d, want floor of 1", got)
	}
}

func TestDefendHalvesDamage(t *testing.T) {
	src := fighter(6, 0, 0, 0)
	tgt := fighter(0, 0, 4, 0)
	tgt.Defending = true

	if got := AttackDamage(src, tgt, flatTuning()); got != 4 {
		t.Errorf("guarded damage = %d, want 4", got)
	}
}

func TestVarianceSpread(t *testing.T) {
	src := fighter(10, 0, 0, 0)
	tgt := fighter(0, 0, 0, 0)
	// base 20, 15% spread = 3, so the swing lands in [17, 23].
	tn := Tuning{VariancePct: 15, DefendModifier: 0.5}

	tn.Roll = func(n int) int { return 0 }
	if got := AttackDamage(src, tgt, tn); got != 17 {
		t.Errorf("low roll damage = %d, want 17", got)
	}
	tn.Roll = func(n int) int { return n - 1 }
	if got := AttackDamage(src, tgt, tn); got != 23 {
		t.Errorf("high roll damage = %d, want 23", got)
	}
}

func TestTechAmountPhysical(t *testing.T) {
	src := fighter(6, 0, 0, 0)
	tgt := fighter(0, 0, 4, 0)
	tech := &data.Technique{ID: "cleave", Power: 4}

	if got := TechAmount(src, tgt, tech, flatTuning()); got != 12 {
		t.Errorf("amount = %d, want 2*6+4-4 = 12", got)
	}
}

func TestTechAmountMagical(t *testing.T) {
	src := fighter(0, 8, 0, 0)
	tgt := fighter(0, 0, 0, 3)
	tech := &data.Technique{ID: "ember", Power: 5, Magical: true}

	if got := TechAmount(src, tgt, tech, flatTuning()); got != 10 {
		t.Errorf("amount = %d, want 8+5-3 = 10", got)
	}
}

func TestTechAmountHealingIgnoresGuard(t *testing.T) {
	src := fighter(0, 8, 0, 0)
	tgt := fighter(0, 0, 0, 0)
	tgt.Defending = true
	tech := &data.Technique{ID: "mend", Power: 6, Magical: true, Healing: true}

	if got := TechAmount(src, tgt, tech, flatTuning()); got != -14 {
		t.Errorf("amount = %d, want -(8+6) = -14", got)
	}
}

func TestConsumableSwing(t *testing.T) {
	if got := ConsumableSwing(&data.Consumable{HP: 25}); got != -25 {
		t.Errorf("swing = %d, want -25", got)
	}
}
