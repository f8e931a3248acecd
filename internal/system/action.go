package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/thornfell/battle/internal/battle"
	"github.com/thornfell/battle/internal/character"
	"github.com/thornfell/battle/internal/core/ecs"
	"github.com/thornfell/battle/internal/core/event"
	coresys "github.com/thornfell/battle/internal/core/system"
	"github.com/thornfell/battle/internal/data"
	"github.com/thornfell/battle/internal/scripting"
)

// ActionSystem accumulates combatant readiness, runs the enemy
// autobattler, and resolves at most one queued command per tick.
// Wound commands resolve immediately; everything else waits for its
// source's readiness window.
type ActionSystem struct {
	deps *Deps
}

func NewActionSystem(deps *Deps) *ActionSystem {
	return &ActionSystem{deps: deps}
}

func (s *ActionSystem) Phase() coresys.Phase { return coresys.PhaseAction }

func (s *ActionSystem) Update(_ time.Duration) {
	b := s.deps.Battle
	if !b.Running() {
		return
	}

	for _, id := range b.Roster() {
		c := b.Character(id)
		if c != nil && c.Healthy() && !c.Asleep {
			c.Readiness += c.Speed
		}
	}

	s.tickPoison()
	s.runEnemyAI()

	cmd, ok := b.TakeCommand(func(cmd battle.ActionCommand) bool {
		if cmd.Type == battle.ActionWound {
			return true
		}
		src := b.Character(cmd.Source)
		return src != nil && s.ready(src)
	})
	if ok {
		s.execute(cmd)
	}
}

func (s *ActionSystem) ready(c *character.Character) bool {
	return c.Readiness >= s.deps.Config.Battle.ActionTicks
}

// tickPoison drains every poisoned combatant once per readiness window,
// a sliver of max HP each time.
func (s *ActionSystem) tickPoison() {
	b := s.deps.Battle
	window := int64(s.deps.Config.Battle.ActionTicks)
	if tick := b.Tick(); tick == 0 || window <= 0 || tick%window != 0 {
		return
	}
	for _, id := range b.Roster() {
		c := b.Character(id)
		if c != nil && c.Healthy() && c.Poisoned {
			s.applySwing(0, id, max(1, c.MaxHP/16), "")
		}
	}
}

// runEnemyAI enqueues a command for every ready enemy with nothing
// pending: a known affordable technique sometimes, a plain attack
// otherwise.
func (s *ActionSystem) runEnemyAI() {
	b := s.deps.Battle
	for _, id := range b.Enemies() {
		c := b.Character(id)
		if c == nil || !s.ready(c) || b.HasCommandFrom(id) {
			continue
		}

		if tech := s.pickTech(c); tech != nil && s.deps.Roll(100) < 40 {
			b.Enqueue(battle.ActionCommand{
				Type:   battle.ActionTech,
				Source: id,
				DataID: tech.ID,
			})
			continue
		}

		allies := b.Allies()
		if len(allies) == 0 {
			return
		}
		b.Enqueue(battle.ActionCommand{
			Type:   battle.ActionAttack,
			Source: id,
			Target: allies[s.deps.Roll(len(allies))],
		})
	}
}

func (s *ActionSystem) pickTech(c *character.Character) *data.Technique {
	for _, tid := range c.Techs {
		t := s.deps.Tables.Techniques.Get(tid)
		if t != nil && c.CanUseTech(t) {
			return t
		}
	}
	return nil
}

func (s *ActionSystem) execute(cmd battle.ActionCommand) {
	b := s.deps.Battle
	src := b.Character(cmd.Source)
	if src == nil {
		return
	}
	if cmd.Type != battle.ActionWound {
		if !src.Healthy() {
			return
		}
		src.Defending = false
		src.Readiness = 0
	}

	switch cmd.Type {
	case battle.ActionDefend:
		src.Defending = true
		s.setCycle(cmd.Source, character.CyclePoise)
		s.emitExecuted(cmd, "defend")

	case battle.ActionAttack:
		tgtID, tgt := s.resolveFoe(cmd.Source, cmd.Target)
		if tgt == nil {
			return
		}
		dmg := battle.AttackDamage(src, tgt, s.deps.Tuning())
		s.setCycle(cmd.Source, character.CycleAttack)
		s.applySwing(cmd.Source, tgtID, dmg, "")
		s.emitExecuted(cmd, "attack")

	case battle.ActionTech:
		s.executeTech(cmd, src)

	case battle.ActionConsume:
		s.executeConsume(cmd, src)

	case battle.ActionWound:
		s.setCycle(cmd.Source, character.CycleWound)
	}
}

func (s *ActionSystem) executeTech(cmd battle.ActionCommand, src *character.Character) {
	b := s.deps.Battle
	tech := s.deps.Tables.Techniques.Get(cmd.DataID)
	if tech == nil {
		s.deps.Log.Warn("unknown technique", zap.String("id", cmd.DataID))
		return
	}
	if !src.CanUseTech(tech) {
		s.deps.Log.Debug("technique unusable",
			zap.String("id", tech.ID),
			zap.String("source", src.Name))
		return
	}
	src.SpendTP(tech.TPCost)

	cycle := tech.Cycle
	if cycle == "" {
		cycle = character.CycleCast
	}
	s.setCycle(cmd.Source, cycle)

	for _, tgtID := range s.resolveAim(tech.Aim, cmd) {
		tgt := b.Character(tgtID)
		if tgt == nil {
			continue
		}
		amount, scripted := 0, false
		if s.deps.Scripts != nil && tech.Script != "" {
			amount, scripted = s.deps.Scripts.CalcTechnique(tech.Script, scripting.TechContext{
				SourceLevel:   src.Level,
				SourcePower:   src.Power,
				SourceMagic:   src.Magic,
				TargetLevel:   tgt.Level,
				TargetDefense: tgt.Defense,
				TargetAbsorb:  tgt.Absorb,
				TechPower:     tech.Power,
				Magical:       tech.Magical,
				Healing:       tech.Healing,
			})
		}
		if !scripted {
			amount = battle.TechAmount(src, tgt, tech, s.deps.Tuning())
		}
		s.applySwing(cmd.Source, tgtID, amount, tech.ID)

		if tech.Inflicts != "" && tgt.Healthy() {
			s.inflict(tgt, tech.Inflicts)
		}
	}
	s.emitExecuted(cmd, "tech")
}

func (s *ActionSystem) executeConsume(cmd battle.ActionCommand, src *character.Character) {
	b := s.deps.Battle
	item := s.deps.Tables.Consumables.Get(cmd.DataID)
	if item == nil {
		s.deps.Log.Warn("unknown consumable", zap.String("id", cmd.DataID))
		return
	}
	held, items := src.Items.Contains(item.ID)
	src.Items = items
	if !held {
		s.deps.Log.Debug("consumable not carried",
			zap.String("id", item.ID),
			zap.String("source", src.Name))
		return
	}
	src.Items = src.Items.Remove(item.ID)

	tgtID := cmd.Target
	if tgtID.IsZero() || item.Aim == data.AimSelf {
		tgtID = cmd.Source
	}
	tgt := b.Character(tgtID)
	if tgt == nil {
		return
	}

	hp, tp, scripted := 0, 0, false
	if s.deps.Scripts != nil && item.Script != "" {
		hp, tp, scripted = s.deps.Scripts.CalcConsumable(item.Script, scripting.ConsumeContext{
			ItemHP:      item.HP,
			ItemTP:      item.TP,
			TargetHP:    tgt.HP,
			TargetMaxHP: tgt.MaxHP,
		})
	}
	if !scripted {
		hp, tp = item.HP, item.TP
	}

	if tgt.Wounded {
		if !item.Revive {
			return // item wasted on a wounded target that can't take it
		}
		tgt.Wounded = false
		s.setCycle(tgtID, character.CyclePoise)
	}
	if hp != 0 {
		s.applySwing(cmd.Source, tgtID, -hp, "")
	}
	tgt.RestoreTP(tp)
	if item.Cures != "" {
		s.cure(tgt, item.Cures)
	}
	s.setCycle(cmd.Source, character.CycleCast)
	s.emitExecuted(cmd, "consume")
}

// applySwing applies a point swing to a target, emits the damage event,
// and handles down transitions.
func (s *ActionSystem) applySwing(srcID, tgtID ecs.CombatantID, amount int, techID string) {
	b := s.deps.Battle
	tgt := b.Character(tgtID)
	if tgt == nil {
		return
	}
	downed := tgt.ApplyDamage(amount)
	event.Emit(s.deps.Bus, event.CharacterDamaged{
		Target: tgtID,
		Amount: amount,
		Tech:   techID,
	})
	if downed {
		s.handleDown(srcID, tgtID)
	} else if amount > 0 {
		s.setCycle(tgtID, character.CycleDamage)
	}
}

func (s *ActionSystem) handleDown(srcID, tgtID ecs.CombatantID) {
	b := s.deps.Battle
	tgt := b.Character(tgtID)
	tgt.Wounded = true
	b.DropCommandsFrom(tgtID)
	b.Enqueue(battle.ActionCommand{Type: battle.ActionWound, Source: tgtID})
	event.Emit(s.deps.Bus, event.CharacterDowned{Target: tgtID})

	if src := b.Character(srcID); src != nil && !src.Enemy && tgt.Enemy {
		src.Exp += tgt.ExpReward
	}
}

// resolveFoe returns the intended foe, or the first standing one when the
// intent is stale (target already down or released).
func (s *ActionSystem) resolveFoe(srcID, tgtID ecs.CombatantID) (ecs.CombatantID, *character.Character) {
	b := s.deps.Battle
	if tgt := b.Character(tgtID); tgt != nil && tgt.Healthy() {
		return tgtID, tgt
	}
	src := b.Character(srcID)
	if src == nil {
		return 0, nil
	}
	var foes []ecs.CombatantID
	if src.Enemy {
		foes = b.Allies()
	} else {
		foes = b.Enemies()
	}
	if len(foes) == 0 {
		return 0, nil
	}
	return foes[0], b.Character(foes[0])
}

func (s *ActionSystem) resolveAim(aim data.Aim, cmd battle.ActionCommand) []ecs.CombatantID {
	b := s.deps.Battle
	src := b.Character(cmd.Source)
	if src == nil {
		return nil
	}
	own, foes := b.Allies(), b.Enemies()
	if src.Enemy {
		own, foes = foes, own
	}

	switch aim {
	case data.AimSelf:
		return []ecs.CombatantID{cmd.Source}
	case data.AimAlly:
		if tgt := b.Character(cmd.Target); tgt != nil && tgt.Enemy == src.Enemy {
			return []ecs.CombatantID{cmd.Target}
		}
		return lowestHP(b, own)
	case data.AimAllFoes:
		return foes
	case data.AimAllAllies:
		return own
	default: // AimEnemy
		if id, tgt := s.resolveFoe(cmd.Source, cmd.Target); tgt != nil {
			return []ecs.CombatantID{id}
		}
		return nil
	}
}

// lowestHP picks the side member most in need, as a retarget default for
// ally-aimed actions with a stale target.
func lowestHP(b *battle.Battle, side []ecs.CombatantID) []ecs.CombatantID {
	var best ecs.CombatantID
	bestHP := -1
	for _, id := range side {
		c := b.Character(id)
		if c == nil {
			continue
		}
		if bestHP < 0 || c.HP < bestHP {
			best, bestHP = id, c.HP
		}
	}
	if bestHP < 0 {
		return nil
	}
	return []ecs.CombatantID{best}
}

func (s *ActionSystem) inflict(c *character.Character, status string) {
	switch status {
	case "poison":
		c.Poisoned = true
	case "silence":
		c.Silenced = true
	case "sleep":
		c.Asleep = true
	default:
		s.deps.Log.Warn("unknown status", zap.String("status", status))
	}
}

func (s *ActionSystem) cure(c *character.Character, status string) {
	switch status {
	case "poison":
		c.Poisoned = false
	case "silence":
		c.Silenced = false
	case "sleep":
		c.Asleep = false
	}
}

func (s *ActionSystem) setCycle(id ecs.CombatantID, cycle string) {
	if anim := s.deps.Battle.Animation(id); anim != nil {
		anim.Set(cycle, s.deps.Battle.Tick())
	}
}

func (s *ActionSystem) emitExecuted(cmd battle.ActionCommand, verb string) {
	event.Emit(s.deps.Bus, event.ActionExecuted{
		Source: cmd.Source,
		Target: cmd.Target,
		Verb:   verb,
		DataID: cmd.DataID,
	})
}
