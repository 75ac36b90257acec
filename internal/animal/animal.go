// Package animal holds the island's two species and their life-history
// rules: fitness, grazing, hunting, birth, migration, aging, weight loss,
// and death. Every operation takes the current parameter snapshot and,
// where chance is involved, the caller's RNG stream.
package animal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/suggest"
)

// ErrInvalidAnimal flags a descriptor that cannot become an animal.
var ErrInvalidAnimal = errors.New("animal: invalid animal")

// Species identifies one of the two animal kinds on the island.
type Species uint8

const (
	Herbivore Species = iota
	Carnivore
)

func (s Species) String() string {
	if s == Carnivore {
		return "Carnivore"
	}
	return "Herbivore"
}

// ParseSpecies resolves a species name as used in population descriptors.
func ParseSpecies(name string) (Species, error) {
	switch name {
	case "Herbivore":
		return Herbivore, nil
	case "Carnivore":
		return Carnivore, nil
	}
	if hint := suggest.Nearest(name, []string{"Herbivore", "Carnivore"}); hint != "" {
		return 0, fmt.Errorf("%w: unknown species %q (did you mean %q?)", ErrInvalidAnimal, name, hint)
	}
	return 0, fmt.Errorf("%w: unknown species %q", ErrInvalidAnimal, name)
}

// Animal is a single individual. Age and weight drive everything else.
type Animal struct {
	Species Species
	Age     int
	Weight  float64
	Alive   bool

	// Moved is set once the animal has migrated (or been born) this year
	// and is cleared in the end-of-year sweep.
	Moved bool
}

// New validates a descriptor and creates a live animal.
func New(sp Species, age int, weight float64) (*Animal, error) {
	if age < 0 {
		return nil, fmt.Errorf("%w: age %d is negative", ErrInvalidAnimal, age)
	}
	if weight < 0 || math.IsNaN(weight) {
		return nil, fmt.Errorf("%w: weight %v is negative", ErrInvalidAnimal, weight)
	}
	return &Animal{Species: sp, Age: age, Weight: weight, Alive: true}, nil
}

// Fitness returns the animal's condition in [0,1]: the product of a falling
// age logistic and a rising weight logistic. Zero whenever weight is not
// positive, regardless of age.
func (a *Animal) Fitness(ps ParamSet) float64 {
	if a.Weight <= 0 {
		return 0
	}
	p := ps.For(a.Species)
	return logistic(+1, float64(a.Age), p.AHalf, p.PhiAge) *
		logistic(-1, a.Weight, p.WHalf, p.PhiWeight)
}

// logistic is q(sign, x, xHalf, rate) = 1 / (1 + e^(sign*rate*(x-xHalf))).
// math.Exp saturates to +Inf or 0 for extreme arguments, so the result
// stays in [0,1] without clamping.
func logistic(sign, x, xHalf, rate float64) float64 {
	return 1.0 / (1.0 + math.Exp(sign*rate*(x-xHalf)))
}

// Eat grazes up to the species appetite F from the available fodder, gaining
// beta per unit eaten. Returns the fodder left in the cell. No effect when
// nothing is available.
func (a *Animal) Eat(available float64, ps ParamSet) float64 {
	if available <= 0 {
		return available
	}
	p := ps.For(a.Species)
	amount := math.Min(p.F, available)
	a.Weight += p.Beta * amount
	return available - amount
}

// Hunt works through prey sorted weakest first, one uniform draw per live
// prey. The kill chance scales with the fitness gap up to DeltaPhiMax. The
// yearly appetite F caps total intake; a kill heavier than the remaining
// appetite is only partially eaten. Killed prey are marked dead in place,
// already-dead prey are skipped without a draw.
func (a *Animal) Hunt(prey []*Animal, ps ParamSet, rng *rand.Rand) {
	p := ps.For(a.Species)
	appetite := p.F
	for _, h := range prey {
		if appetite <= 0 {
			return
		}
		if !h.Alive {
			continue
		}
		diff := a.Fitness(ps) - h.Fitness(ps)
		var chance float64
		switch {
		case diff <= 0:
			chance = 0
		case diff >= p.DeltaPhiMax:
			chance = 1
		default:
			chance = diff / p.DeltaPhiMax
		}
		if rng.Float64() >= chance {
			continue
		}
		h.Alive = false
		portion := math.Min(appetite, h.Weight)
		a.Weight += p.Beta * portion
		appetite -= portion
	}
}

// Breed decides whether the animal gives birth this year, given n animals of
// its species sharing the cell. Returns the newborn or nil. The parent pays
// xi times the newborn's weight; a birth that would overdraw the parent is
// cancelled and costs nothing.
func (a *Animal) Breed(n int, ps ParamSet, rng *rand.Rand) *Animal {
	p := ps.For(a.Species)
	if a.Weight < p.Zeta*(p.WBirth+p.SigmaBirth) {
		return nil
	}
	if n < 2 {
		return nil
	}
	chance := p.Gamma * a.Fitness(ps) * float64(n-1)
	if chance > 1 {
		chance = 1
	}
	if rng.Float64() > chance {
		return nil
	}
	w := p.WBirth + p.SigmaBirth*rng.NormFloat64()
	if w < 0 {
		w = 0
	}
	if p.Xi*w > a.Weight {
		return nil
	}
	a.Weight -= p.Xi * w
	return &Animal{Species: a.Species, Weight: w, Alive: true}
}

// Habitat is the view of a map cell that migration decisions need.
type Habitat interface {
	Passable(sp Species) bool
	AvailableFood() float64
	Population(sp Species) int
	HerbivoreBiomass() float64
}

// Direction indexes the four migration targets in evaluation order.
type Direction uint8

const (
	North Direction = iota
	South
	West
	East
)

// maxPropensityExp caps the exponent fed to math.Exp so a near-zero
// appetite parameter cannot push a propensity to +Inf.
const maxPropensityExp = 700

// Migrate decides whether the animal leaves its cell this year and where to.
// The move is gated by a uniform draw against mu; among passable neighbors
// the choice is weighted by e^(lambda * relative food abundance). Reports
// false when the animal stays, including when no neighbor is passable.
func (a *Animal) Migrate(north, south, west, east Habitat, ps ParamSet, rng *rand.Rand) (Direction, bool) {
	p := ps.For(a.Species)
	if rng.Float64() >= p.Mu {
		return 0, false
	}
	neighbors := [4]Habitat{north, south, west, east}
	var weights [4]float64
	total := 0.0
	for i, h := range neighbors {
		if h == nil || !h.Passable(a.Species) {
			continue
		}
		x := p.Lambda * a.relativeAbundance(h, p)
		if x > maxPropensityExp {
			x = maxPropensityExp
		}
		weights[i] = math.Exp(x)
		total += weights[i]
	}
	if total == 0 {
		return 0, false
	}
	pick := rng.Float64() * total
	choice := -1
	for i, w := range weights {
		if w == 0 {
			continue
		}
		choice = i
		if pick < w {
			break
		}
		pick -= w
	}
	return Direction(choice), true
}

// relativeAbundance is the food available to the species per would-be
// occupant: fodder for herbivores, herbivore biomass for carnivores.
func (a *Animal) relativeAbundance(h Habitat, p Params) float64 {
	if p.F <= 0 {
		return 0
	}
	if a.Species == Carnivore {
		return h.HerbivoreBiomass() / ((float64(h.Population(Carnivore)) + 1) * p.F)
	}
	return h.AvailableFood() / ((float64(h.Population(Herbivore)) + 1) * p.F)
}

// AgeOneYear adds a year to the animal's age.
func (a *Animal) AgeOneYear() { a.Age++ }

// LoseWeight applies the annual metabolic loss of eta times body weight.
func (a *Animal) LoseWeight(ps ParamSet) {
	p := ps.For(a.Species)
	a.Weight -= p.Eta * a.Weight
}

// MaybeDie marks the animal dead with certainty at non-positive weight,
// otherwise with probability omega*(1-fitness). The certain branch spends
// no random draw.
func (a *Animal) MaybeDie(ps ParamSet, rng *rand.Rand) {
	if a.Weight <= 0 {
		a.Alive = false
		return
	}
	p := ps.For(a.Species)
	if rng.Float64() < p.Omega*(1-a.Fitness(ps)) {
		a.Alive = false
	}
}
