package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Battle  BattleConfig  `toml:"battle"`
	Scripts ScriptsConfig `toml:"scripts"`
	Logging LoggingConfig `toml:"logging"`
}

type EngineConfig struct {
	TickRate    time.Duration `toml:"tick_rate" env:"THORNFELL_TICK_RATE"`
	BloatFactor int           `toml:"bloat_factor" env:"THORNFELL_BLOAT_FACTOR"` // tlist log-to-length ratio
	Seed        uint64        `toml:"seed" env:"THORNFELL_SEED"`                 // 0 = derive from clock
}

type BattleConfig struct {
	CountdownTicks int     `toml:"countdown_ticks"` // ready phase length
	ActionTicks    int     `toml:"action_ticks"`    // readiness window between an actor's commands
	DefendModifier float64 `toml:"defend_modifier"` // incoming damage multiplier while defending
	VariancePct    int     `toml:"variance_pct"`    // +/- damage spread, percent
	CeaseHoldTicks int     `toml:"cease_hold_ticks"`
}

type ScriptsConfig struct {
	Dir     string `toml:"dir" env:"THORNFELL_SCRIPTS_DIR"`
	Enabled bool   `toml:"enabled" env:"THORNFELL_SCRIPTS_ENABLED"`
}

type LoggingConfig struct {
	Level  string `toml:"level" env:"THORNFELL_LOG_LEVEL"`
	Format string `toml:"format" env:"THORNFELL_LOG_FORMAT"` // "json" or "console"
}

// Load reads the TOML file at path, overlays it on defaults, then applies
// THORNFELL_* environment overrides on top.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	return cfg.normalize(), nil
}

// Default returns the built-in configuration with env overrides applied,
// for hosts that run without a config file.
func Default() (*Config, error) {
	cfg := defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	return cfg.normalize(), nil
}

func defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			TickRate:    16 * time.Millisecond,
			BloatFactor: 1,
		},
		Battle: BattleConfig{
			CountdownTicks: 180,
			ActionTicks:    60,
			DefendModifier: 0.5,
			VariancePct:    15,
			CeaseHoldTicks: 120,
		},
		Scripts: ScriptsConfig{
			Dir:     "scripts",
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) normalize() *Config {
	if c.Engine.BloatFactor < 1 {
		c.Engine.BloatFactor = 1
	}
	if c.Battle.ActionTicks < 1 {
		c.Battle.ActionTicks = 1
	}
	if c.Battle.DefendModifier <= 0 || c.Battle.DefendModifier > 1 {
		c.Battle.DefendModifier = 0.5
	}
	return c
}
