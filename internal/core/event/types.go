package event

import "github.com/thornfell/battle/internal/core/ecs"

// Battle event types.

// CommandEnqueued fires when an action command enters the battle queue.
type CommandEnqueued struct {
	Source ecs.CombatantID
}

// ActionExecuted fires after a command resolves, whatever the outcome.
type ActionExecuted struct {
	Source ecs.CombatantID
	Target ecs.CombatantID
	Verb   string
	DataID string
}

// CharacterDamaged fires for every point swing applied to a combatant.
// Amount is negative for healing.
type CharacterDamaged struct {
	Target ecs.CombatantID
	Amount int
	Tech   string // empty for plain attacks and consumables
}

// CharacterDowned fires once when a combatant's HP reaches zero.
type CharacterDowned struct {
	Target ecs.CombatantID
}

// BattleCeased fires when one side has no standing combatants left.
type BattleCeased struct {
	Victory bool // true when the ally side stands
	Tick    int64
}
