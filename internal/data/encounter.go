package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Member seeds one combatant in an encounter.
type Member struct {
	Name      string   `yaml:"name"`
	Archetype string   `yaml:"archetype"`
	Level     int      `yaml:"level"`
	Items     []string `yaml:"items"` // consumable ids carried into battle
}

// Encounter seeds a battle: the ally party and the enemy group.
type Encounter struct {
	ID      string   `yaml:"id"`
	Allies  []Member `yaml:"allies"`
	Enemies []Member `yaml:"enemies"`
}

type encounterFile struct {
	Encounters []Encounter `yaml:"encounters"`
}

// EncounterTable holds encounters indexed by ID.
type EncounterTable struct {
	byID map[string]*Encounter
}

// LoadEncounterTable loads encounters from a YAML file.
func LoadEncounterTable(path string) (*EncounterTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read encounters: %w", err)
	}
	var f encounterFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse encounters: %w", err)
	}
	t := &EncounterTable{byID: make(map[string]*Encounter, len(f.Encounters))}
	for i := range f.Encounters {
		e := &f.Encounters[i]
		t.byID[e.ID] = e
	}
	return t, nil
}

func (t *EncounterTable) Get(id string) *Encounter {
	return t.byID[id]
}

func (t *EncounterTable) Count() int {
	return len(t.byID)
}

func (t *EncounterTable) Each(fn func(*Encounter)) {
	for _, e := range t.byID {
		fn(e)
	}
}
