package system

import (
	"time"

	coresys "github.com/thornfell/battle/internal/core/system"

	"github.com/thornfell/battle/internal/battle"
	"github.com/thornfell/battle/internal/core/event"
)

// InputSystem drains submitted commands into the battle queue. The host
// (a UI driving ring menus, or the simulator's autoplayer) calls Submit;
// this system moves the requests into the battle on the input phase, so
// command admission happens at one point in the tick.
type InputSystem struct {
	deps     *Deps
	requests []battle.ActionCommand
}

func NewInputSystem(deps *Deps) *InputSystem {
	return &InputSystem{deps: deps}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

// Submit queues a command for admission on the next input phase.
func (s *InputSystem) Submit(cmd battle.ActionCommand) {
	s.requests = append(s.requests, cmd)
}

func (s *InputSystem) Update(_ time.Duration) {
	b := s.deps.Battle
	if !b.Running() {
		// Commands submitted during ready or cease are discarded; the
		// menus should not have been open.
		s.requests = s.requests[:0]
		return
	}
	for _, cmd := range s.requests {
		src := b.Character(cmd.Source)
		if src == nil || !src.Healthy() {
			continue
		}
		b.Enqueue(cmd)
		event.Emit(s.deps.Bus, event.CommandEnqueued{Source: cmd.Source})
	}
	s.requests = s.requests[:0]
}
