package system

import (
	"testing"

	"go.uber.org/zap"

	"github.com/thornfell/battle/internal/battle"
	"github.com/thornfell/battle/internal/config"
	"github.com/thornfell/battle/internal/core/event"
	coresys "github.com/thornfell/battle/internal/core/system"
	"github.com/thornfell/battle/internal/data"
)

// sim wires a battle with the full system stack, a nop logger, and a
// zero roll source so every formula lands on its low end.
type sim struct {
	b      *battle.Battle
	bus    *event.Bus
	input  *InputSystem
	runner *coresys.Runner
	cfg    *config.Config
}

func newSim(t *testing.T, encounterID string, countdown int) *sim {
	t.Helper()
	tables, err := data.LoadAll("testdata")
	if err != nil {
		t.Fatalf("load tables: %v", err)
	}
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	cfg.Battle.ActionTicks = 30
	cfg.Battle.VariancePct = 0
	cfg.Battle.CountdownTicks = countdown

	b, err := battle.New(tables.Encounters.Get(encounterID), tables, countdown, 1)
	if err != nil {
		t.Fatalf("new battle: %v", err)
	}

	bus := event.NewBus()
	deps := &Deps{
		Battle: b,
		Tables: tables,
		Bus:    bus,
		Log:    zap.NewNop(),
		Config: cfg,
		Roll:   func(n int) int { return 0 },
	}

	s := &sim{b: b, bus: bus, cfg: cfg, input: NewInputSystem(deps)}
	s.runner = coresys.NewRunner()
	s.runner.Register(s.input)
	s.runner.Register(NewActionSystem(deps))
	s.runner.Register(NewAnimationSystem(deps))
	s.runner.Register(NewDispatchSystem(deps))
	s.runner.Register(NewCleanupSystem(deps))
	return s
}

func (s *sim) tick(n int) {
	for i := 0; i < n; i++ {
		s.runner.Tick(s.cfg.Engine.TickRate)
	}
}

func TestCommandsDiscardedBeforeRunning(t *testing.T) {
	s := newSim(t, "solo", 100)
	src := s.b.Allies()[0]

	s.input.Submit(battle.ActionCommand{Type: battle.ActionAttack, Source: src})
	s.tick(1)

	if got := s.b.QueueLen(); got != 0 {
		t.Errorf("queue len = %d during countdown, want 0", got)
	}
}

func TestAttackResolvesWhenReady(t *testing.T) {
	s := newSim(t, "solo", 0)
	src := s.b.Allies()[0]
	tgt := s.b.Enemies()[0]
	startHP := s.b.Character(tgt).HP

	s.input.Submit(battle.ActionCommand{Type: battle.ActionAttack, Source: src, Target: tgt})

	// Speed 10 against a 30-tick window: the swing lands on the third tick.
	s.tick(2)
	if got := s.b.Character(tgt).HP; got != startHP {
		t.Fatalf("attack resolved before the source was ready (HP %d)", got)
	}
	s.tick(1)
	want := startHP - 10 // 2*6 power - 2 defense
	if got := s.b.Character(tgt).HP; got != want {
		t.Fatalf("target HP = %d, want %d", got, want)
	}
	if got := s.b.Character(src).Readiness; got != 0 {
		t.Errorf("readiness = %d after acting, want 0", got)
	}
}

func TestEnemyAIAttacks(t *testing.T) {
	s := newSim(t, "solo", 0)
	ally := s.b.Allies()[0]
	startHP := s.b.Character(ally).HP

	// Slime speed 8 crosses the 30-tick window on tick 4; 2*4-4 = 4 damage.
	// Stop before tick 8 so only one swing lands.
	s.tick(5)
	if got := s.b.Character(ally).HP; got != startHP-4 {
		t.Errorf("ally HP = %d, want %d", got, startHP-4)
	}
}

func TestVictoryRun(t *testing.T) {
	s := newSim(t, "solo", 0)
	src := s.b.Allies()[0]

	var ceaseEvents []event.BattleCeased
	event.Subscribe(s.bus, func(ev event.BattleCeased) {
		ceaseEvents = append(ceaseEvents, ev)
	})

	for i := 0; i < 300; i++ {
		if _, ceased := s.b.Ceased(); ceased {
			break
		}
		if s.b.Running() && !s.b.HasCommandFrom(src) {
			s.input.Submit(battle.ActionCommand{Type: battle.ActionAttack, Source: src})
		}
		s.tick(1)
	}

	victory, ceased := s.b.Ceased()
	if !ceased || !victory {
		t.Fatalf("Ceased() = (%v, %v), want victory", victory, ceased)
	}
	if got := s.b.Character(src).Exp; got != 7 {
		t.Errorf("exp = %d, want the slime's 7", got)
	}

	s.tick(2) // cease event is delivered on the following output phase
	if len(ceaseEvents) != 1 {
		t.Fatalf("cease events = %d, want exactly 1", len(ceaseEvents))
	}
	if !ceaseEvents[0].Victory {
		t.Error("cease event reports defeat")
	}
}

func TestDownedEnemyIsReleased(t *testing.T) {
	s := newSim(t, "pair", 0)
	src := s.b.Allies()[0]
	tgt := s.b.Enemies()[0]
	s.b.Character(tgt).HP = 1

	s.input.Submit(battle.ActionCommand{Type: battle.ActionAttack, Source: src, Target: tgt})
	s.tick(3) // readiness window

	c := s.b.Character(tgt)
	if c == nil || !c.Wounded {
		t.Fatal("target not wounded after lethal hit")
	}
	if len(s.b.Enemies()) != 1 {
		t.Fatal("wounded enemy still counted as standing")
	}

	// Wound cycle: 2 cels at 2 ticks each, then cleanup releases the slot.
	s.tick(6)
	if s.b.Character(tgt) != nil {
		t.Error("wounded enemy never released")
	}
	if _, ceased := s.b.Ceased(); ceased {
		t.Error("battle ceased with an enemy still standing")
	}
}

func TestDownedSourceLosesQueuedCommands(t *testing.T) {
	s := newSim(t, "pair", 0)
	src := s.b.Allies()[0]
	tgt := s.b.Enemies()[0]
	s.b.Character(tgt).HP = 1

	// Queue something from the soon-to-be-downed slime.
	s.b.Enqueue(battle.ActionCommand{Type: battle.ActionAttack, Source: tgt, Target: src})
	s.input.Submit(battle.ActionCommand{Type: battle.ActionAttack, Source: src, Target: tgt})
	// Three ticks for the lethal hit, one more for the system-issued wound
	// command to resolve.
	s.tick(4)

	if s.b.HasCommandFrom(tgt) {
		t.Error("downed source still has commands queued")
	}
}

func TestDamageEventsDeliverSameTick(t *testing.T) {
	s := newSim(t, "solo", 0)
	src := s.b.Allies()[0]

	var swings []event.CharacterDamaged
	event.Subscribe(s.bus, func(ev event.CharacterDamaged) {
		swings = append(swings, ev)
	})

	s.input.Submit(battle.ActionCommand{Type: battle.ActionAttack, Source: src})
	// The swing resolves in tick 3's action phase and must reach handlers
	// on that same tick's output phase.
	s.tick(3)

	if len(swings) != 1 {
		t.Fatalf("damage events = %d after the resolving tick, want 1", len(swings))
	}
	if swings[0].Amount != 10 {
		t.Errorf("damage event amount = %d, want 10", swings[0].Amount)
	}
}

func TestTechInflictsPoison(t *testing.T) {
	s := newSim(t, "solo", 0)
	src := s.b.Allies()[0]
	tgt := s.b.Enemies()[0]

	s.input.Submit(battle.ActionCommand{Type: battle.ActionTech, Source: src, Target: tgt, DataID: "venom-spit"})
	s.tick(3)

	c := s.b.Character(tgt)
	if !c.Poisoned {
		t.Fatal("target not poisoned after venom-spit")
	}
	// Physical tech: 2*6 power + 2 tech power - 2 defense.
	if got := c.HP; got != 8 {
		t.Errorf("target HP = %d, want 8", got)
	}
}

func TestPoisonDrainsOnActionCadence(t *testing.T) {
	s := newSim(t, "solo", 0)
	tgt := s.b.Enemies()[0]
	c := s.b.Character(tgt)
	c.Poisoned = true
	startHP := c.HP

	// Pad the ally so the slime's swings can't end the battle before the
	// second window closes.
	ally := s.b.Character(s.b.Allies()[0])
	ally.MaxHP, ally.HP = 500, 500

	// The drain lands when the battle clock crosses each 30-tick window.
	s.tick(30)
	if got := c.HP; got != startHP {
		t.Fatalf("HP = %d before the first window closed, want %d", got, startHP)
	}
	s.tick(1)
	if got := startHP - c.HP; got != 1 {
		t.Fatalf("first drain = %d, want 1 (a sixteenth of 20 max HP, floored at 1)", got)
	}
	s.tick(30)
	if got := startHP - c.HP; got != 2 {
		t.Errorf("total drain = %d after two windows, want 2", got)
	}
}

func TestAntidoteCuresPoison(t *testing.T) {
	s := newSim(t, "solo", 0)
	src := s.b.Allies()[0]
	c := s.b.Character(src)
	c.Poisoned = true

	s.input.Submit(battle.ActionCommand{Type: battle.ActionConsume, Source: src, Target: src, DataID: "antidote"})
	s.tick(3)

	if c.Poisoned {
		t.Fatal("still poisoned after the antidote")
	}
	// Ride past the first drain window: the only HP loss left is the
	// slime's 4-point swings on ticks 4 through 28.
	s.tick(28)
	if got := c.HP; got != 22 {
		t.Errorf("HP = %d after the drain window, want 22", got)
	}
}

func TestConsumeRestoresAndSpendsItem(t *testing.T) {
	s := newSim(t, "solo", 0)
	src := s.b.Allies()[0]
	c := s.b.Character(src)
	c.HP = 10

	s.input.Submit(battle.ActionCommand{Type: battle.ActionConsume, Source: src, Target: src, DataID: "tonic"})
	s.tick(3)

	if got := c.HP; got != 35 {
		t.Errorf("HP = %d after tonic, want 35", got)
	}
	held, items := c.Items.Contains("tonic")
	c.Items = items
	if held {
		t.Error("tonic still carried after use")
	}
}

func TestDefendHalvesNextHit(t *testing.T) {
	s := newSim(t, "solo", 0)
	src := s.b.Allies()[0]
	ally := s.b.Character(src)
	startHP := ally.HP

	s.input.Submit(battle.ActionCommand{Type: battle.ActionDefend, Source: src})
	// Defend resolves on tick 3, the slime swings on tick 4.
	s.tick(5)

	if !ally.Defending {
		t.Fatal("ally not defending after the command resolved")
	}
	// Slime hit is 4 raw, guarded to 2.
	if got := startHP - ally.HP; got != 2 {
		t.Errorf("guarded damage = %d, want 2", got)
	}
}
