// Simulation owns the island, the parameter sets, and the annual cycle.
package engine

import (
	"log/slog"
	"math/rand"

	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/animal"
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/island"
)

// Simulation advances an island population one year at a time. All
// randomness flows through the single seeded rng, so equal seeds
// replay equal histories.
type Simulation struct {
	Island *island.Map

	params animal.ParamSet
	biomes island.BiomeParamSet
	rng    *rand.Rand
	year   int

	// OnYearEnd, when set, runs after every completed year.
	OnYearEnd func(year int)
}

// New wraps a map in a simulation with default parameters. Fodder
// starts at capacity everywhere.
func New(m *island.Map, seed int64) *Simulation {
	s := &Simulation{
		Island: m,
		params: animal.DefaultParams(),
		biomes: island.DefaultBiomeParams(),
		rng:    rand.New(rand.NewSource(seed)),
	}
	s.primeFodder()
	return s
}

func (s *Simulation) primeFodder() {
	s.forEachCell(func(cell *island.Cell) {
		cell.Food = s.biomes[cell.Biome].FMax
	})
}

// Year returns the number of completed years.
func (s *Simulation) Year() int { return s.year }

// Params returns the current species parameter sets.
func (s *Simulation) Params() animal.ParamSet { return s.params }

// BiomeParams returns the current fodder parameter sets.
func (s *Simulation) BiomeParams() island.BiomeParamSet { return s.biomes }

// SetSpeciesParams overrides life-history parameters for one species.
// The simulation is untouched if any key or value is rejected.
func (s *Simulation) SetSpeciesParams(sp animal.Species, overrides map[string]float64) error {
	next, err := s.params.Apply(sp, overrides)
	if err != nil {
		return err
	}
	s.params = next
	return nil
}

// SetBiomeParams overrides fodder parameters for one biome. Standing
// fodder is left alone; a new f_max takes effect at the next regrowth.
func (s *Simulation) SetBiomeParams(b island.Biome, overrides map[string]float64) error {
	next, err := s.biomes.Apply(b, overrides)
	if err != nil {
		return err
	}
	s.biomes = next
	return nil
}

// Simulate advances the island the given number of years. It can be
// called repeatedly, with populations added in between.
func (s *Simulation) Simulate(years int) {
	for i := 0; i < years; i++ {
		s.StepYear()
	}
	h, c := s.SpeciesCounts()
	slog.Info("simulation complete",
		"year", s.year,
		"herbivores", h,
		"carnivores", c,
	)
}

// forEachCell visits every cell in row-major order.
func (s *Simulation) forEachCell(fn func(cell *island.Cell)) {
	for r := 0; r < s.Island.Rows; r++ {
		for c := 0; c < s.Island.Cols; c++ {
			fn(s.Island.At(r, c))
		}
	}
}

// forEachAnimal visits every animal in canonical order: cells
// row-major, herbivores before carnivores, each list front to back.
func (s *Simulation) forEachAnimal(fn func(a *animal.Animal)) {
	s.forEachCell(func(cell *island.Cell) {
		for _, a := range cell.Herbivores {
			fn(a)
		}
		for _, a := range cell.Carnivores {
			fn(a)
		}
	})
}
