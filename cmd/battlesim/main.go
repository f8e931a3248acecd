// battlesim runs an encounter headless: it loads the data tables, seeds a
// battle, drives the ally side through the menu flow with a simple policy,
// and logs events until one side falls.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/thornfell/battle/internal/battle"
	"github.com/thornfell/battle/internal/config"
	"github.com/thornfell/battle/internal/core/ecs"
	"github.com/thornfell/battle/internal/core/event"
	coresys "github.com/thornfell/battle/internal/core/system"
	"github.com/thornfell/battle/internal/data"
	"github.com/thornfell/battle/internal/menu"
	"github.com/thornfell/battle/internal/scripting"
	"github.com/thornfell/battle/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  = flag.String("config", "config/battle.toml", "config file path")
		dataDir     = flag.String("data", "data", "data table directory")
		encounterID = flag.String("encounter", "slimes-at-dusk", "encounter id to run")
		maxTicks    = flag.Int("ticks", 20_000, "tick budget before giving up")
		seed        = flag.Uint64("seed", 0, "rng seed (0 = from config or clock)")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	tables, err := data.LoadAll(*dataDir)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	if problems := tables.Verify(); len(problems) > 0 {
		for _, p := range problems {
			log.Warn("data problem", zap.String("problem", p))
		}
	}
	log.Info("tables loaded",
		zap.Int("archetypes", tables.Archetypes.Count()),
		zap.Int("techniques", tables.Techniques.Count()),
		zap.Int("consumables", tables.Consumables.Count()),
		zap.Int("sheets", tables.Sheets.Count()),
		zap.Int("encounters", tables.Encounters.Count()))

	var scripts *scripting.Engine
	if cfg.Scripts.Enabled {
		scripts, err = scripting.NewEngine(cfg.Scripts.Dir, log)
		if err != nil {
			return fmt.Errorf("init scripting: %w", err)
		}
		defer scripts.Close()
	}

	enc := tables.Encounters.Get(*encounterID)
	if enc == nil {
		return fmt.Errorf("unknown encounter %q", *encounterID)
	}

	b, err := battle.New(enc, tables, cfg.Battle.CountdownTicks, cfg.Engine.BloatFactor)
	if err != nil {
		return fmt.Errorf("build battle: %w", err)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Engine.Seed
	}
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(rngSeed, 0xba771e^rngSeed))

	bus := event.NewBus()
	deps := &system.Deps{
		Battle:  b,
		Tables:  tables,
		Bus:     bus,
		Log:     log,
		Scripts: scripts,
		Config:  cfg,
		Roll:    rng.IntN,
	}

	input := system.NewInputSystem(deps)
	runner := coresys.NewRunner()
	runner.Register(input)
	runner.Register(system.NewActionSystem(deps))
	runner.Register(system.NewAnimationSystem(deps))
	runner.Register(system.NewDispatchSystem(deps))
	runner.Register(system.NewCleanupSystem(deps))

	subscribeLogging(bus, b, log)

	log.Info("battle start",
		zap.String("encounter", enc.ID),
		zap.Uint64("seed", rngSeed),
		zap.Int("allies", len(b.Allies())),
		zap.Int("enemies", len(b.Enemies())))

	player := autoplayer{b: b, tables: tables, input: input, roll: rng.IntN}
	dt := cfg.Engine.TickRate

	for i := 0; i < *maxTicks; i++ {
		player.act()
		runner.Tick(dt)
		if _, ceased := b.Ceased(); ceased && b.Tick()-b.Phase().Since >= int64(cfg.Battle.CeaseHoldTicks) {
			break
		}
	}

	// Deliver whatever the final ticks emitted before summarizing.
	for bus.Pending() > 0 {
		bus.SwapBuffers()
		bus.DispatchAll()
	}

	victory, ceased := b.Ceased()
	switch {
	case !ceased:
		log.Warn("battle undecided", zap.Int64("tick", b.Tick()))
	case victory:
		log.Info("victory", zap.Int64("tick", b.Tick()))
	default:
		log.Info("defeat", zap.Int64("tick", b.Tick()))
	}
	for _, id := range b.Roster() {
		c := b.Character(id)
		if c == nil {
			continue
		}
		log.Info("combatant",
			zap.String("name", c.Name),
			zap.Bool("enemy", c.Enemy),
			zap.Int("hp", c.HP),
			zap.Int("max_hp", c.MaxHP),
			zap.Bool("wounded", c.Wounded),
			zap.Int("exp", c.Exp))
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// autoplayer drives allies through the menu flow the way a player would:
// rotate to a verb, confirm, pick a target. Heals when hurt, otherwise
// attacks whatever the reticle lands on.
type autoplayer struct {
	b      *battle.Battle
	tables *data.Tables
	input  *system.InputSystem
	roll   func(n int) int
}

func (p *autoplayer) act() {
	if !p.b.Running() {
		return
	}
	for _, id := range p.b.Allies() {
		if p.b.HasCommandFrom(id) {
			continue
		}
		if cmd, ok := p.choose(id); ok {
			p.input.Submit(cmd)
		}
	}
}

func (p *autoplayer) choose(id ecs.CombatantID) (battle.ActionCommand, bool) {
	c := p.b.Character(id)
	if c == nil {
		return battle.ActionCommand{}, false
	}

	flow := menu.NewFlow(p.b, p.tables, id)

	if c.HP*3 < c.MaxHP {
		// Hurt: try to rotate to the item verb and use whatever is there.
		for range flow.Ring().Entries() {
			if e, ok := flow.Ring().Selected(); ok && e.Verb == menu.VerbConsume {
				if cmd, done := p.drive(flow); done {
					return cmd, true
				}
				break
			}
			flow.Rotate(1)
		}
		flow = menu.NewFlow(p.b, p.tables, id) // fall back to attacking
	}

	return p.drive(flow)
}

// drive confirms through the flow's remaining stages, rotating the
// reticle a random number of steps before the final confirm.
func (p *autoplayer) drive(flow *menu.Flow) (battle.ActionCommand, bool) {
	for i := 0; i < 4; i++ { // root, sub, target, done
		if flow.Stage() == menu.StageTarget {
			for n := p.roll(3); n > 0; n-- {
				flow.Rotate(1)
			}
		}
		if cmd, ok := flow.Confirm(); ok {
			return cmd, true
		}
	}
	return battle.ActionCommand{}, false
}

func subscribeLogging(bus *event.Bus, b *battle.Battle, log *zap.Logger) {
	name := func(id ecs.CombatantID) string {
		if c := b.Character(id); c != nil {
			return c.Name
		}
		return fmt.Sprintf("combatant-%d", id)
	}

	event.Subscribe(bus, func(ev event.ActionExecuted) {
		log.Info("action",
			zap.String("source", name(ev.Source)),
			zap.String("verb", ev.Verb),
			zap.String("data", ev.DataID),
			zap.String("target", name(ev.Target)))
	})
	event.Subscribe(bus, func(ev event.CharacterDamaged) {
		log.Info("swing",
			zap.String("target", name(ev.Target)),
			zap.Int("amount", ev.Amount),
			zap.String("tech", ev.Tech))
	})
	event.Subscribe(bus, func(ev event.CharacterDowned) {
		log.Info("downed", zap.String("target", name(ev.Target)))
	})
	event.Subscribe(bus, func(ev event.BattleCeased) {
		log.Info("cease", zap.Bool("victory", ev.Victory), zap.Int64("tick", ev.Tick))
	})
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.Set(cfg.Level); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
