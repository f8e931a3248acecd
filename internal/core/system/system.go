package system

import "time"

// Phase defines execution ordering within a single battle tick.
type Phase int

const (
	PhaseInput     Phase = iota // 0: drain menu confirmations into commands
	PhaseAction                 // 1: pop and resolve action commands
	PhaseAnimation              // 2: advance animation cycles
	PhaseOutput                 // 3: dispatch buffered events
	PhaseCleanup                // 4: release downed combatants
)

// System is the interface every battle system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
