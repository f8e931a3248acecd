package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Cycle defines one animation cycle on a sprite sheet: a run of cels
// starting at StartCel, each held for Stutter ticks. Looping cycles wrap;
// run-once cycles hold their last cel when finished.
type Cycle struct {
	Name     string `yaml:"name"`
	StartCel int    `yaml:"start_cel"`
	Length   int    `yaml:"length"`
	Stutter  int    `yaml:"stutter"` // ticks per cel, min 1
	Loop     bool   `yaml:"loop"`
}

// Sheet groups the cycles of one sprite sheet.
type Sheet struct {
	ID     string  `yaml:"id"`
	Image  string  `yaml:"image"` // asset path, opaque to the engine
	Cycles []Cycle `yaml:"cycles"`
}

type sheetFile struct {
	Sheets []Sheet `yaml:"sheets"`
}

// SheetTable holds animation sheets indexed by sheet ID.
type SheetTable struct {
	byID map[string]*Sheet
}

// LoadSheetTable loads animation sheets from a YAML file.
func LoadSheetTable(path string) (*SheetTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sheets: %w", err)
	}
	var f sheetFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse sheets: %w", err)
	}
	t := &SheetTable{byID: make(map[string]*Sheet, len(f.Sheets))}
	for i := range f.Sheets {
		s := &f.Sheets[i]
		t.byID[s.ID] = s
	}
	return t, nil
}

func (t *SheetTable) Get(id string) *Sheet {
	return t.byID[id]
}

func (t *SheetTable) Count() int {
	return len(t.byID)
}

func (t *SheetTable) Each(fn func(*Sheet)) {
	for _, s := range t.byID {
		fn(s)
	}
}

// Cycle returns the named cycle of a sheet, or nil.
func (s *Sheet) Cycle(name string) *Cycle {
	for i := range s.Cycles {
		if s.Cycles[i].Name == name {
			return &s.Cycles[i]
		}
	}
	return nil
}
