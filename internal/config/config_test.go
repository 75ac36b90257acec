package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/island"
)

func TestDefaultScenario(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 123456 || cfg.Years != 100 {
		t.Errorf("seed = %d, years = %d, want 123456 and 100", cfg.Seed, cfg.Years)
	}

	m, err := island.FromString(cfg.Map)
	if err != nil {
		t.Fatalf("default map must parse: %v", err)
	}
	if m.Rows != 13 || m.Cols != 21 {
		t.Errorf("default map = %dx%d, want 13x21", m.Rows, m.Cols)
	}

	groups := cfg.EnginePopulation()
	if len(groups) != 1 {
		t.Fatalf("population groups = %d, want 1", len(groups))
	}
	if len(groups[0].Animals) != 150 {
		t.Errorf("seed herd = %d animals, want 150", len(groups[0].Animals))
	}
	if got := m.At(groups[0].Row, groups[0].Col); got == nil || !got.Biome.Passable() {
		t.Error("the seed herd must stand on a passable cell")
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	scenario := `
years: 5
species:
  Herbivore:
    omega: 0.2
population:
  - row: 1
    col: 1
    animals:
      - species: Carnivore
        age: 3
        weight: 14
`
	if err := os.WriteFile(path, []byte(scenario), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Years != 5 {
		t.Errorf("years = %d, want the override 5", cfg.Years)
	}
	if cfg.Seed != 123456 {
		t.Errorf("seed = %d, want the default kept", cfg.Seed)
	}
	if cfg.Map == "" {
		t.Error("map must keep its default")
	}
	if cfg.Species["Herbivore"]["omega"] != 0.2 {
		t.Errorf("species overrides = %v", cfg.Species)
	}

	groups := cfg.EnginePopulation()
	if len(groups) != 1 || len(groups[0].Animals) != 1 {
		t.Fatalf("population must be replaced, not merged: %+v", groups)
	}
	if groups[0].Animals[0].Species != "Carnivore" {
		t.Errorf("species = %q, want Carnivore", groups[0].Animals[0].Species)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Years != 100 {
		t.Errorf("years = %d, want the default 100", cfg.Years)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file must fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("years: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("malformed yaml must fail")
	}
}

func TestEnginePopulationCountDefaultsToOne(t *testing.T) {
	cfg := Config{Population: []PopulationGroup{
		{Row: 2, Col: 3, Animals: []AnimalGroup{
			{Species: "Herbivore", Age: 5, Weight: 20},
			{Species: "Herbivore", Age: 5, Weight: 20, Count: 3},
		}},
	}}
	groups := cfg.EnginePopulation()
	if len(groups[0].Animals) != 4 {
		t.Errorf("expanded animals = %d, want 4", len(groups[0].Animals))
	}
}
