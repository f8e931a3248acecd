// Package scripting evaluates technique and consumable formulas in Lua so
// content authors can tune combat without rebuilding the engine. Missing
// functions and script errors fall back to the built-in Go formulas.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM. Single-goroutine access only; the
// battle loop is sequential.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory: core helpers first, then combat formulas.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"core", "combat"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// Close shuts the VM down.
func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir loads all .lua files in a directory, skipping missing dirs.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// TechContext holds pre-packed data for a technique calculation.
type TechContext struct {
	SourceLevel   int
	SourcePower   int
	SourceMagic   int
	TargetLevel   int
	TargetDefense int
	TargetAbsorb  int
	TechPower     int
	Magical       bool
	Healing       bool
}

// CalcTechnique calls the named Lua function with the context and returns
// the point swing (positive damage, negative healing). ok is false when
// the function is missing or misbehaves; callers then use the built-in
// formula.
func (e *Engine) CalcTechnique(fn string, ctx TechContext) (amount int, ok bool) {
	f := e.vm.GetGlobal(fn)
	if f == lua.LNil {
		return 0, false
	}

	t := e.vm.NewTable()

	src := e.vm.NewTable()
	src.RawSetString("level", lua.LNumber(ctx.SourceLevel))
	src.RawSetString("power", lua.LNumber(ctx.SourcePower))
	src.RawSetString("magic", lua.LNumber(ctx.SourceMagic))
	t.RawSetString("source", src)

	tgt := e.vm.NewTable()
	tgt.RawSetString("level", lua.LNumber(ctx.TargetLevel))
	tgt.RawSetString("defense", lua.LNumber(ctx.TargetDefense))
	tgt.RawSetString("absorb", lua.LNumber(ctx.TargetAbsorb))
	t.RawSetString("target", tgt)

	tech := e.vm.NewTable()
	tech.RawSetString("power", lua.LNumber(ctx.TechPower))
	tech.RawSetString("magical", lua.LBool(ctx.Magical))
	tech.RawSetString("healing", lua.LBool(ctx.Healing))
	t.RawSetString("tech", tech)

	if err := e.vm.CallByParam(lua.P{
		Fn:      f,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua technique error", zap.String("fn", fn), zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, isTable := result.(*lua.LTable)
	if !isTable {
		e.log.Error("lua technique returned non-table", zap.String("fn", fn))
		return 0, false
	}
	return int(lua.LVAsNumber(rt.RawGetString("amount"))), true
}

// ConsumeContext holds pre-packed data for a consumable calculation.
type ConsumeContext struct {
	ItemHP      int
	ItemTP      int
	TargetHP    int
	TargetMaxHP int
}

// CalcConsumable calls the named Lua function and returns the HP and TP
// restored. ok is false when the script cannot serve the call.
func (e *Engine) CalcConsumable(fn string, ctx ConsumeContext) (hp, tp int, ok bool) {
	f := e.vm.GetGlobal(fn)
	if f == lua.LNil {
		return 0, 0, false
	}

	t := e.vm.NewTable()
	t.RawSetString("item_hp", lua.LNumber(ctx.ItemHP))
	t.RawSetString("item_tp", lua.LNumber(ctx.ItemTP))
	t.RawSetString("target_hp", lua.LNumber(ctx.TargetHP))
	t.RawSetString("target_max_hp", lua.LNumber(ctx.TargetMaxHP))

	if err := e.vm.CallByParam(lua.P{
		Fn:      f,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua consumable error", zap.String("fn", fn), zap.Error(err))
		return 0, 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, isTable := result.(*lua.LTable)
	if !isTable {
		e.log.Error("lua consumable returned non-table", zap.String("fn", fn))
		return 0, 0, false
	}
	return int(lua.LVAsNumber(rt.RawGetString("hp"))),
		int(lua.LVAsNumber(rt.RawGetString("tp"))), true
}
