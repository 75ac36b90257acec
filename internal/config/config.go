// Package config loads simulation scenarios from YAML, layering a user
// file over the embedded defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/engine"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is one simulation scenario.
type Config struct {
	Seed  int64  `yaml:"seed"`
	Years int    `yaml:"years"`
	Map   string `yaml:"map"`

	Generate GenerateConfig `yaml:"generate"`

	// Overrides keyed by species or biome name, then parameter key.
	Species map[string]map[string]float64 `yaml:"species"`
	Biomes  map[string]map[string]float64 `yaml:"biomes"`

	Population []PopulationGroup `yaml:"population"`

	Output OutputConfig `yaml:"output"`
	API    APIConfig    `yaml:"api"`
}

// GenerateConfig switches the scenario to a procedurally synthesized
// island instead of the map string.
type GenerateConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	SeaLevel    float64 `yaml:"sea_level"`
	MountainLvl float64 `yaml:"mountain_level"`
}

// PopulationGroup seeds animals on one cell.
type PopulationGroup struct {
	Row     int           `yaml:"row"`
	Col     int           `yaml:"col"`
	Animals []AnimalGroup `yaml:"animals"`
}

// AnimalGroup describes one kind of animal to seed. Count expands to
// that many identical animals; zero means one.
type AnimalGroup struct {
	Species string  `yaml:"species"`
	Age     int     `yaml:"age"`
	Weight  float64 `yaml:"weight"`
	Count   int     `yaml:"count"`
}

type OutputConfig struct {
	Dir      string `yaml:"dir"`
	Database string `yaml:"database"`
}

type APIConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Default returns the embedded default scenario.
func Default() (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse defaults: %w", err)
	}
	return cfg, nil
}

// Load reads a scenario file and layers it over the defaults: fields
// the file leaves out keep their default values. An empty path returns
// the defaults as they are.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// EnginePopulation expands the grouped population into engine
// placements.
func (c Config) EnginePopulation() []engine.PopulationGroup {
	groups := make([]engine.PopulationGroup, 0, len(c.Population))
	for _, g := range c.Population {
		var animals []engine.AnimalDescriptor
		for _, a := range g.Animals {
			count := a.Count
			if count <= 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				animals = append(animals, engine.AnimalDescriptor{
					Species: a.Species,
					Age:     a.Age,
					Weight:  a.Weight,
				})
			}
		}
		groups = append(groups, engine.PopulationGroup{Row: g.Row, Col: g.Col, Animals: animals})
	}
	return groups
}
