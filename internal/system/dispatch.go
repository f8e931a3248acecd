package system

import (
	"time"

	coresys "github.com/thornfell/battle/internal/core/system"
)

// DispatchSystem rotates the event bus on the output phase and delivers
// everything emitted since the previous rotation: this tick's input,
// action, and animation events plus last tick's cleanup events.
type DispatchSystem struct {
	deps *Deps
}

func NewDispatchSystem(deps *Deps) *DispatchSystem {
	return &DispatchSystem{deps: deps}
}

func (s *DispatchSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *DispatchSystem) Update(_ time.Duration) {
	s.deps.Bus.SwapBuffers()
	s.deps.Bus.DispatchAll()
}
