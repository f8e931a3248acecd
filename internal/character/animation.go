package character

import "github.com/thornfell/battle/internal/data"

// Standard cycle names. Sheets may define more; these are the ones battle
// systems select.
const (
	CycleIdle      = "idle"
	CycleWalk      = "walk"
	CyclePoise     = "poise"
	CycleCharge    = "charge"
	CycleAttack    = "attack"
	CycleCast      = "cast"
	CycleDamage    = "damage"
	CycleWound     = "wound"
	CycleCelebrate = "celebrate"
)

// Direction is the facing of a combatant sprite.
type Direction uint8

const (
	DirDown Direction = iota
	DirLeft
	DirUp
	DirRight
)

// AnimationState tracks which cycle a combatant is playing and since when.
// Cel lookup is a pure function of state, cycle definition, and tick, so
// a renderer can evaluate it at any rate without mutating battle state.
type AnimationState struct {
	SheetID   string
	Cycle     string
	StartTick int64
	Direction Direction
}

// Set switches to the named cycle, restarting it at tick.
func (s *AnimationState) Set(cycle string, tick int64) {
	s.Cycle = cycle
	s.StartTick = tick
}

// SetIfChanged switches to the named cycle unless it is already playing.
// Keeps looping cycles (idle, walk) from resetting every selection pass.
func (s *AnimationState) SetIfChanged(cycle string, tick int64) {
	if s.Cycle != cycle {
		s.Set(cycle, tick)
	}
}

// Frame returns the 0-based frame count of a cycle at tick.
func frame(c *data.Cycle, start, tick int64) int64 {
	elapsed := tick - start
	if elapsed < 0 {
		elapsed = 0
	}
	stutter := int64(c.Stutter)
	if stutter < 1 {
		stutter = 1
	}
	return elapsed / stutter
}

// Cel returns the sheet cel index a cycle shows at tick. Looping cycles
// wrap; run-once cycles hold their final cel.
func Cel(c *data.Cycle, start, tick int64) int {
	f := frame(c, start, tick)
	if c.Length < 1 {
		return c.StartCel
	}
	if c.Loop {
		return c.StartCel + int(f%int64(c.Length))
	}
	if f >= int64(c.Length) {
		f = int64(c.Length) - 1
	}
	return c.StartCel + int(f)
}

// Finished reports whether a run-once cycle has shown all its cels by
// tick. Looping cycles never finish.
func Finished(c *data.Cycle, start, tick int64) bool {
	if c.Loop {
		return false
	}
	return frame(c, start, tick) >= int64(c.Length)
}

// CelAt resolves the combatant's current cel against its sheet, falling
// back to the idle cycle's first cel for unknown cycle names.
func (s *AnimationState) CelAt(sheet *data.Sheet, tick int64) int {
	if sheet == nil {
		return 0
	}
	c := sheet.Cycle(s.Cycle)
	if c == nil {
		if idle := sheet.Cycle(CycleIdle); idle != nil {
			return idle.StartCel
		}
		return 0
	}
	return Cel(c, s.StartTick, tick)
}

// FinishedAt reports cycle completion against the combatant's sheet.
// Unknown cycles count as finished so systems can recover to idle.
func (s *AnimationState) FinishedAt(sheet *data.Sheet, tick int64) bool {
	if sheet == nil {
		return true
	}
	c := sheet.Cycle(s.Cycle)
	if c == nil {
		return true
	}
	return Finished(c, s.StartTick, tick)
}
