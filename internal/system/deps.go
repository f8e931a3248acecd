// Package system implements the battle tick systems: input draining,
// action resolution, animation advancement, event dispatch, and cleanup.
package system

import (
	"go.uber.org/zap"

	"github.com/thornfell/battle/internal/battle"
	"github.com/thornfell/battle/internal/config"
	"github.com/thornfell/battle/internal/core/event"
	"github.com/thornfell/battle/internal/data"
	"github.com/thornfell/battle/internal/scripting"
)

// Deps holds shared dependencies injected into all battle systems.
// Scripts may be nil; systems then use the built-in formulas.
type Deps struct {
	Battle  *battle.Battle
	Tables  *data.Tables
	Bus     *event.Bus
	Log     *zap.Logger
	Scripts *scripting.Engine
	Config  *config.Config

	// Roll returns a uniform value in [0, n). Injected so simulations are
	// reproducible from a seed.
	Roll func(n int) int
}

// Tuning assembles the combat math knobs from config.
func (d *Deps) Tuning() battle.Tuning {
	return battle.Tuning{
		VariancePct:    d.Config.Battle.VariancePct,
		DefendModifier: d.Config.Battle.DefendModifier,
		Roll:           d.Roll,
	}
}
