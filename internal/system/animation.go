package system

import (
	"time"

	coresys "github.com/thornfell/battle/internal/core/system"

	"github.com/thornfell/battle/internal/character"
	"github.com/thornfell/battle/internal/core/ecs"
)

// AnimationSystem recovers finished one-shot cycles back to the poise
// stance, holds wound cycles on their final cel, and switches allies to
// celebrate once victory is settled.
type AnimationSystem struct {
	deps *Deps
}

func NewAnimationSystem(deps *Deps) *AnimationSystem {
	return &AnimationSystem{deps: deps}
}

func (s *AnimationSystem) Phase() coresys.Phase { return coresys.PhaseAnimation }

func (s *AnimationSystem) Update(_ time.Duration) {
	b := s.deps.Battle
	tick := b.Tick()
	victory, ceased := b.Ceased()

	// Per-combatant recovery is independent, so store iteration order is
	// irrelevant here.
	ecs.Each2(b.Characters(), b.Animations(), func(_ ecs.CombatantID, c *character.Character, anim *character.AnimationState) {
		if c.Wounded {
			// Wound plays once and holds; cleanup decides what vanishes.
			anim.SetIfChanged(character.CycleWound, tick)
			return
		}

		if ceased && victory && !c.Enemy {
			anim.SetIfChanged(character.CycleCelebrate, tick)
			return
		}

		sheet := s.deps.Tables.Sheets.Get(anim.SheetID)
		if anim.FinishedAt(sheet, tick) {
			anim.SetIfChanged(character.CyclePoise, tick)
		}
	})
}
