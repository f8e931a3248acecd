package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Archetype holds the static build for a combatant kind loaded from YAML.
// Per-level scaling is applied by internal/character, not here.
type Archetype struct {
	ID        string      `yaml:"id"`
	Name      string      `yaml:"name"`
	Sheet     string      `yaml:"sheet"` // animation sheet id
	BaseHP    int         `yaml:"base_hp"`
	BaseTP    int         `yaml:"base_tp"`
	Power     int         `yaml:"power"`
	Magic     int         `yaml:"magic"`
	Defense   int         `yaml:"defense"`
	Absorb    int         `yaml:"absorb"`
	Speed     int         `yaml:"speed"`     // readiness gain per tick
	HPGrowth  float64     `yaml:"hp_growth"` // per level multiplier
	StatGrow  float64     `yaml:"stat_growth"`
	Techs     []TechGrant `yaml:"techs"`
	Enemy     bool        `yaml:"enemy"` // default side when an encounter omits one
	ExpReward int         `yaml:"exp_reward"`
}

// TechGrant unlocks a technique at a level.
type TechGrant struct {
	Tech  string `yaml:"tech"`
	Level int    `yaml:"level"`
}

type archetypeFile struct {
	Archetypes []Archetype `yaml:"archetypes"`
}

// ArchetypeTable holds all archetypes indexed by ID.
type ArchetypeTable struct {
	byID map[string]*Archetype
}

// LoadArchetypeTable loads archetypes from a YAML file.
func LoadArchetypeTable(path string) (*ArchetypeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archetypes: %w", err)
	}
	var f archetypeFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse archetypes: %w", err)
	}
	t := &ArchetypeTable{byID: make(map[string]*Archetype, len(f.Archetypes))}
	for i := range f.Archetypes {
		a := &f.Archetypes[i]
		t.byID[a.ID] = a
	}
	return t, nil
}

// Get returns an archetype by ID, or nil if not found.
func (t *ArchetypeTable) Get(id string) *Archetype {
	return t.byID[id]
}

// Count returns the number of loaded archetypes.
func (t *ArchetypeTable) Count() int {
	return len(t.byID)
}

// Each visits every archetype. Order is unspecified.
func (t *ArchetypeTable) Each(fn func(*Archetype)) {
	for _, a := range t.byID {
		fn(a)
	}
}
