package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTables(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func validTables() map[string]string {
	return map[string]string{
		"archetypes.yaml": `
archetypes:
  - id: hero
    name: Hero
    sheet: hero
    base_hp: 50
    base_tp: 10
    power: 6
    speed: 10
    techs:
      - tech: ember
        level: 1
`,
		"techniques.yaml": `
techniques:
  - id: ember
    name: Ember
    tp_cost: 2
    power: 5
    magical: true
    aim: enemy
    cycle: cast
`,
		"consumables.yaml": `
consumables:
  - id: tonic
    name: Tonic
    hp: 25
    aim: ally
`,
		"sheets.yaml": `
sheets:
  - id: hero
    image: hero.png
    cycles:
      - { name: poise, start_cel: 0, length: 2, stutter: 8, loop: true }
`,
		"encounters.yaml": `
encounters:
  - id: duel
    allies:
      - name: Aster
        archetype: hero
        level: 1
        items: [tonic]
    enemies: []
`,
	}
}

func TestLoadAll(t *testing.T) {
	dir := writeTables(t, validTables())

	tables, err := LoadAll(dir)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	hero := tables.Archetypes.Get("hero")
	if hero == nil {
		t.Fatal("hero archetype missing")
	}
	if hero.BaseHP != 50 || hero.Speed != 10 {
		t.Errorf("hero stats = hp %d speed %d, want 50/10", hero.BaseHP, hero.Speed)
	}
	if len(hero.Techs) != 1 || hero.Techs[0].Tech != "ember" {
		t.Errorf("hero techs = %+v, want ember at level 1", hero.Techs)
	}

	ember := tables.Techniques.Get("ember")
	if ember == nil || !ember.Magical || ember.Aim != AimEnemy {
		t.Errorf("ember = %+v, want a magical enemy-aimed tech", ember)
	}

	sheet := tables.Sheets.Get("hero")
	if sheet == nil {
		t.Fatal("hero sheet missing")
	}
	if c := sheet.Cycle("poise"); c == nil || !c.Loop || c.Stutter != 8 {
		t.Errorf("poise cycle = %+v, want looping with stutter 8", c)
	}
	if sheet.Cycle("no-such") != nil {
		t.Error("unknown cycle resolved")
	}

	duel := tables.Encounters.Get("duel")
	if duel == nil || len(duel.Allies) != 1 {
		t.Fatalf("duel encounter = %+v", duel)
	}
	if duel.Allies[0].Items[0] != "tonic" {
		t.Errorf("ally items = %v, want [tonic]", duel.Allies[0].Items)
	}

	if problems := tables.Verify(); len(problems) != 0 {
		t.Errorf("valid tables reported problems: %v", problems)
	}
}

func TestLoadAllMissingFile(t *testing.T) {
	files := validTables()
	delete(files, "sheets.yaml")
	dir := writeTables(t, files)

	if _, err := LoadAll(dir); err == nil {
		t.Fatal("expected error for missing table file")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	files := validTables()
	files["techniques.yaml"] = "techniques: [not: {valid"
	dir := writeTables(t, files)

	if _, err := LoadAll(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestVerifyReportsDanglingReferences(t *testing.T) {
	files := validTables()
	files["archetypes.yaml"] = `
archetypes:
  - id: hero
    name: Hero
    sheet: no-such-sheet
    techs:
      - tech: no-such-tech
        level: 1
`
	files["encounters.yaml"] = `
encounters:
  - id: duel
    allies:
      - name: Aster
        archetype: no-such-kind
        items: [no-such-item]
    enemies: []
`
	dir := writeTables(t, files)

	tables, err := LoadAll(dir)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	problems := tables.Verify()
	wantSubstrings := []string{
		`unknown sheet "no-such-sheet"`,
		`unknown tech "no-such-tech"`,
		`unknown archetype "no-such-kind"`,
		`unknown consumable "no-such-item"`,
	}
	for _, want := range wantSubstrings {
		found := false
		for _, p := range problems {
			if strings.Contains(p, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("problems %v missing %q", problems, want)
		}
	}
}

func TestVerifyRejectsBadAimsAndCycles(t *testing.T) {
	files := validTables()
	files["techniques.yaml"] = `
techniques:
  - id: ember
    name: Ember
    aim: everyone
`
	files["consumables.yaml"] = `
consumables:
  - id: tonic
    name: Tonic
    aim: enemy
`
	files["sheets.yaml"] = `
sheets:
  - id: hero
    cycles:
      - { name: poise, start_cel: 0, length: 0, stutter: 0 }
`
	files["archetypes.yaml"] = `
archetypes:
  - id: hero
    sheet: hero
`
	files["encounters.yaml"] = "encounters: []\n"
	dir := writeTables(t, files)

	tables, err := LoadAll(dir)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	problems := tables.Verify()
	if len(problems) != 3 {
		t.Errorf("problems = %v, want invalid aim, item aim, and cycle bounds", problems)
	}
}
