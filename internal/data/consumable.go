package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Consumable holds static data for a usable battle item.
type Consumable struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	HP      int    `yaml:"hp"`      // restored hit points
	TP      int    `yaml:"tp"`      // restored technique points
	Revive  bool   `yaml:"revive"`  // usable on wounded allies
	Cures   string `yaml:"cures"`   // status id cleared, empty for none
	Aim     Aim    `yaml:"aim"`     // ally or self
	Script  string `yaml:"script"`  // lua function, empty = built-in effect
}

type consumableFile struct {
	Consumables []Consumable `yaml:"consumables"`
}

// ConsumableTable holds all consumables indexed by ID.
type ConsumableTable struct {
	byID map[string]*Consumable
}

// LoadConsumableTable loads consumables from a YAML file.
func LoadConsumableTable(path string) (*ConsumableTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read consumables: %w", err)
	}
	var f consumableFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse consumables: %w", err)
	}
	t := &ConsumableTable{byID: make(map[string]*Consumable, len(f.Consumables))}
	for i := range f.Consumables {
		c := &f.Consumables[i]
		t.byID[c.ID] = c
	}
	return t, nil
}

func (t *ConsumableTable) Get(id string) *Consumable {
	return t.byID[id]
}

func (t *ConsumableTable) Count() int {
	return len(t.byID)
}

func (t *ConsumableTable) Each(fn func(*Consumable)) {
	for _, c := range t.byID {
		fn(c)
	}
}
