package battle

import "github.com/thornfell/battle/internal/core/ecs"

// ActionType enumerates the verbs a combatant can take.
type ActionType uint8

const (
	ActionAttack ActionType = iota
	ActionDefend
	ActionTech
	ActionConsume
	ActionWound // system-issued when a combatant goes down
)

func (t ActionType) String() string {
	switch t {
	case ActionAttack:
		return "attack"
	case ActionDefend:
		return "defend"
	case ActionTech:
		return "tech"
	case ActionConsume:
		return "consume"
	case ActionWound:
		return "wound"
	}
	return "unknown"
}

// ActionCommand is one queued battle action. All fields are comparable so
// commands can live in a transactional list.
type ActionCommand struct {
	Type   ActionType
	Source ecs.CombatantID
	Target ecs.CombatantID // zero for defend and self-aimed actions
	DataID string          // technique or consumable id, empty otherwise
}
