package system

import (
	"time"

	coresys "github.com/thornfell/battle/internal/core/system"

	"github.com/thornfell/battle/internal/core/event"
)

// CleanupSystem releases wounded enemies once their wound cycle has played
// out, flushes the release queue, and advances the battle clock and phase
// machine at the end of each tick.
type CleanupSystem struct {
	deps           *Deps
	ceaseAnnounced bool
}

func NewCleanupSystem(deps *Deps) *CleanupSystem {
	return &CleanupSystem{deps: deps}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	b := s.deps.Battle
	tick := b.Tick()

	for _, id := range b.Roster() {
		c := b.Character(id)
		anim := b.Animation(id)
		if c == nil || anim == nil || !c.Wounded || !c.Enemy {
			continue
		}
		sheet := s.deps.Tables.Sheets.Get(anim.SheetID)
		if anim.FinishedAt(sheet, tick) {
			b.World().MarkForRelease(id)
		}
	}
	b.World().FlushReleaseQueue()

	b.Advance()

	if victory, ceased := b.Ceased(); ceased && !s.ceaseAnnounced {
		s.ceaseAnnounced = true
		event.Emit(s.deps.Bus, event.BattleCeased{Victory: victory, Tick: b.Tick()})
	}
}
