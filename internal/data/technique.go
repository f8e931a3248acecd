package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Aim says which combatants a technique or consumable may target.
type Aim string

const (
	AimEnemy     Aim = "enemy"
	AimAlly      Aim = "ally"
	AimSelf      Aim = "self"
	AimAllFoes   Aim = "all_enemies"
	AimAllAllies Aim = "all_allies"
)

// Valid reports whether a is one of the known aim kinds.
func (a Aim) Valid() bool {
	switch a {
	case AimEnemy, AimAlly, AimSelf, AimAllFoes, AimAllAllies:
		return true
	}
	return false
}

// Technique holds static data for one battle technique.
type Technique struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	TPCost   int    `yaml:"tp_cost"`
	Power    int    `yaml:"power"`    // added to the source's power or magic
	Magical  bool   `yaml:"magical"`  // magic vs absorb instead of power vs defense
	Healing  bool   `yaml:"healing"`  // restores instead of damages
	Aim      Aim    `yaml:"aim"`
	Cycle    string `yaml:"cycle"`    // animation cycle the source plays
	Inflicts string `yaml:"inflicts"` // status id, empty for none
	Script   string `yaml:"script"`   // lua function, empty = built-in formula
}

type techniqueFile struct {
	Techniques []Technique `yaml:"techniques"`
}

// TechniqueTable holds all techniques indexed by ID.
type TechniqueTable struct {
	byID map[string]*Technique
}

// LoadTechniqueTable loads techniques from a YAML file.
func LoadTechniqueTable(path string) (*TechniqueTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read techniques: %w", err)
	}
	var f techniqueFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse techniques: %w", err)
	}
	t := &TechniqueTable{byID: make(map[string]*Technique, len(f.Techniques))}
	for i := range f.Techniques {
		tech := &f.Techniques[i]
		t.byID[tech.ID] = tech
	}
	return t, nil
}

func (t *TechniqueTable) Get(id string) *Technique {
	return t.byID[id]
}

func (t *TechniqueTable) Count() int {
	return len(t.byID)
}

func (t *TechniqueTable) Each(fn func(*Technique)) {
	for _, tech := range t.byID {
		fn(tech)
	}
}
