package data

import (
	"fmt"
	"path/filepath"
)

// Tables bundles every static table a battle needs.
type Tables struct {
	Archetypes  *ArchetypeTable
	Techniques  *TechniqueTable
	Consumables *ConsumableTable
	Sheets      *SheetTable
	Encounters  *EncounterTable
}

// LoadAll loads the standard table files from a data directory.
func LoadAll(dir string) (*Tables, error) {
	archetypes, err := LoadArchetypeTable(filepath.Join(dir, "archetypes.yaml"))
	if err != nil {
		return nil, err
	}
	techniques, err := LoadTechniqueTable(filepath.Join(dir, "techniques.yaml"))
	if err != nil {
		return nil, err
	}
	consumables, err := LoadConsumableTable(filepath.Join(dir, "consumables.yaml"))
	if err != nil {
		return nil, err
	}
	sheets, err := LoadSheetTable(filepath.Join(dir, "sheets.yaml"))
	if err != nil {
		return nil, err
	}
	encounters, err := LoadEncounterTable(filepath.Join(dir, "encounters.yaml"))
	if err != nil {
		return nil, err
	}
	return &Tables{
		Archetypes:  archetypes,
		Techniques:  techniques,
		Consumables: consumables,
		Sheets:      sheets,
		Encounters:  encounters,
	}, nil
}

// Verify cross-checks references between tables and returns every problem
// found, one message per dangling reference.
func (t *Tables) Verify() []string {
	var problems []string

	t.Archetypes.Each(func(a *Archetype) {
		if t.Sheets.Get(a.Sheet) == nil {
			problems = append(problems, fmt.Sprintf("archetype %s: unknown sheet %q", a.ID, a.Sheet))
		}
		for _, g := range a.Techs {
			if t.Techniques.Get(g.Tech) == nil {
				problems = append(problems, fmt.Sprintf("archetype %s: unknown tech %q", a.ID, g.Tech))
			}
		}
	})

	t.Techniques.Each(func(tech *Technique) {
		if !tech.Aim.Valid() {
			problems = append(problems, fmt.Sprintf("technique %s: invalid aim %q", tech.ID, tech.Aim))
		}
	})

	t.Consumables.Each(func(c *Consumable) {
		if c.Aim != AimAlly && c.Aim != AimSelf {
			problems = append(problems, fmt.Sprintf("consumable %s: aim must be ally or self, got %q", c.ID, c.Aim))
		}
	})

	t.Sheets.Each(func(s *Sheet) {
		for i := range s.Cycles {
			c := &s.Cycles[i]
			if c.Length < 1 || c.Stutter < 1 {
				problems = append(problems, fmt.Sprintf("sheet %s: cycle %s needs length and stutter >= 1", s.ID, c.Name))
			}
		}
	})

	t.Encounters.Each(func(e *Encounter) {
		for _, m := range append(append([]Member{}, e.Allies...), e.Enemies...) {
			if t.Archetypes.Get(m.Archetype) == nil {
				problems = append(problems, fmt.Sprintf("encounter %s: unknown archetype %q for %s", e.ID, m.Archetype, m.Name))
			}
			for _, item := range m.Items {
				if t.Consumables.Get(item) == nil {
					problems = append(problems, fmt.Sprintf("encounter %s: unknown consumable %q for %s", e.ID, item, m.Name))
				}
			}
		}
	})

	return problems
}
