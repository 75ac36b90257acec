// Package telemetry collects per-year population statistics from a
// running simulation and writes them out as CSV.
package telemetry

import (
	"gonum.org/v1/gonum/stat"

	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/animal"
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/engine"
)

// YearStats is one year's aggregate census.
type YearStats struct {
	Year            int     `json:"year" csv:"year" db:"year"`
	Herbivores      int     `json:"herbivores" csv:"herbivores" db:"herbivores"`
	Carnivores      int     `json:"carnivores" csv:"carnivores" db:"carnivores"`
	MeanHerbWeight  float64 `json:"mean_herb_weight" csv:"mean_herb_weight" db:"mean_herb_weight"`
	StdHerbWeight   float64 `json:"std_herb_weight" csv:"std_herb_weight" db:"std_herb_weight"`
	MeanHerbFitness float64 `json:"mean_herb_fitness" csv:"mean_herb_fitness" db:"mean_herb_fitness"`
	MeanCarnWeight  float64 `json:"mean_carn_weight" csv:"mean_carn_weight" db:"mean_carn_weight"`
	StdCarnWeight   float64 `json:"std_carn_weight" csv:"std_carn_weight" db:"std_carn_weight"`
	MeanCarnFitness float64 `json:"mean_carn_fitness" csv:"mean_carn_fitness" db:"mean_carn_fitness"`
}

// Collector observes a simulation and accumulates one YearStats row
// per completed year.
type Collector struct {
	sim     *engine.Simulation
	history []YearStats
}

func NewCollector(sim *engine.Simulation) *Collector {
	return &Collector{sim: sim}
}

// Observe records the census for one completed year. Wire it to the
// simulation's OnYearEnd hook.
func (c *Collector) Observe(year int) {
	c.history = append(c.history, c.Snapshot(year))
}

// Snapshot computes the census without recording it.
func (c *Collector) Snapshot(year int) YearStats {
	ps := c.sim.Params()
	var herbWeights, carnWeights, herbFitness, carnFitness []float64
	for _, a := range c.sim.Animals() {
		if a.Species == animal.Carnivore {
			carnWeights = append(carnWeights, a.Weight)
			carnFitness = append(carnFitness, a.Fitness(ps))
		} else {
			herbWeights = append(herbWeights, a.Weight)
			herbFitness = append(herbFitness, a.Fitness(ps))
		}
	}
	return YearStats{
		Year:            year,
		Herbivores:      len(herbWeights),
		Carnivores:      len(carnWeights),
		MeanHerbWeight:  mean(herbWeights),
		StdHerbWeight:   stddev(herbWeights),
		MeanHerbFitness: mean(herbFitness),
		MeanCarnWeight:  mean(carnWeights),
		StdCarnWeight:   stddev(carnWeights),
		MeanCarnFitness: mean(carnFitness),
	}
}

// History returns the recorded rows, oldest first.
func (c *Collector) History() []YearStats {
	return c.history
}

// mean and stddev guard small samples so JSON output never sees NaN.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}
