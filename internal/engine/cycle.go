// The annual cycle. Six phases run in fixed order, and each sweeps the
// whole grid before the next begins, so every animal sees the same
// phase of the year.
package engine

import (
	"log/slog"
	"sort"

	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/animal"
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/island"
)

// StepYear advances the island one full annual cycle: feeding,
// breeding, migration, aging, weight loss, death.
func (s *Simulation) StepYear() {
	s.feeding()
	s.breeding()
	s.migration()
	s.aging()
	s.weightLoss()
	s.death()
	s.resetMoved()
	s.year++

	if s.OnYearEnd != nil {
		s.OnYearEnd(s.year)
	}
	h, c := s.SpeciesCounts()
	slog.Debug("year complete",
		"year", s.year,
		"herbivores", h,
		"carnivores", c,
	)
}

// feeding regrows fodder and feeds every cell. Herbivores graze in
// descending fitness order; then carnivores hunt in descending fitness
// order with the prey lined up weakest first. Kills are compacted away
// after each hunter so the next one sees only live prey.
func (s *Simulation) feeding() {
	s.forEachCell(func(cell *island.Cell) {
		cell.Regrow(s.biomes)

		if len(cell.Herbivores) > 0 {
			sortByFitness(cell.Herbivores, s.params, descending)
			for _, h := range cell.Herbivores {
				cell.Food = h.Eat(cell.Food, s.params)
			}
		}

		if len(cell.Carnivores) > 0 && len(cell.Herbivores) > 0 {
			sortByFitness(cell.Herbivores, s.params, ascending)
			sortByFitness(cell.Carnivores, s.params, descending)
			for _, c := range cell.Carnivores {
				c.Hunt(cell.Herbivores, s.params, s.rng)
				cell.RemoveDeadHerbivores()
			}
		}
	})
}

// breeding gives every animal alive at the start of the phase one
// chance at a single offspring. Newborns join their parent's cell and
// sit out this year's migration.
func (s *Simulation) breeding() {
	s.forEachCell(func(cell *island.Cell) {
		s.breedList(cell, cell.Herbivores)
		s.breedList(cell, cell.Carnivores)
	})
}

func (s *Simulation) breedList(cell *island.Cell, list []*animal.Animal) {
	n := len(list)
	if n < 2 {
		return
	}
	var newborns []*animal.Animal
	for _, a := range list {
		if child := a.Breed(n, s.params, s.rng); child != nil {
			child.Moved = true
			newborns = append(newborns, child)
		}
	}
	for _, child := range newborns {
		cell.Insert(child)
	}
}

// pendingMove is a migration decided in the first pass and applied in
// the second.
type pendingMove struct {
	a    *animal.Animal
	dest *island.Cell
}

// migration runs in two passes so every decision sees the island as it
// stood when the phase began. Pass one collects the moves, pass two
// clears the leavers out of their source cells and inserts them at
// their destinations.
func (s *Simulation) migration() {
	var moves []pendingMove

	s.forEachCell(func(cell *island.Cell) {
		north, south, west, east := s.Island.Neighbors(cell.Row, cell.Col)
		for _, a := range cell.Herbivores {
			s.tryMove(a, north, south, west, east, &moves)
		}
		for _, a := range cell.Carnivores {
			s.tryMove(a, north, south, west, east, &moves)
		}
	})

	if len(moves) == 0 {
		return
	}

	departed := make(map[*animal.Animal]struct{}, len(moves))
	for _, mv := range moves {
		departed[mv.a] = struct{}{}
	}
	s.forEachCell(func(cell *island.Cell) {
		cell.Herbivores = withoutDeparted(cell.Herbivores, departed)
		cell.Carnivores = withoutDeparted(cell.Carnivores, departed)
	})
	for _, mv := range moves {
		mv.dest.Insert(mv.a)
	}
}

func (s *Simulation) tryMove(a *animal.Animal, north, south, west, east *island.Cell, moves *[]pendingMove) {
	if a.Moved {
		return
	}
	a.Moved = true

	dir, ok := a.Migrate(north, south, west, east, s.params, s.rng)
	if !ok {
		return
	}
	var dest *island.Cell
	switch dir {
	case animal.North:
		dest = north
	case animal.South:
		dest = south
	case animal.West:
		dest = west
	case animal.East:
		dest = east
	}
	*moves = append(*moves, pendingMove{a: a, dest: dest})
}

func withoutDeparted(list []*animal.Animal, departed map[*animal.Animal]struct{}) []*animal.Animal {
	out := list[:0]
	for _, a := range list {
		if _, gone := departed[a]; !gone {
			out = append(out, a)
		}
	}
	return out
}

// aging adds a year to every animal.
func (s *Simulation) aging() {
	s.forEachAnimal(func(a *animal.Animal) { a.AgeOneYear() })
}

// weightLoss applies the annual metabolic cost.
func (s *Simulation) weightLoss() {
	s.forEachAnimal(func(a *animal.Animal) { a.LoseWeight(s.params) })
}

// death rolls survival for every animal and drops the dead.
func (s *Simulation) death() {
	s.forEachCell(func(cell *island.Cell) {
		for _, a := range cell.Herbivores {
			a.MaybeDie(s.params, s.rng)
		}
		for _, a := range cell.Carnivores {
			a.MaybeDie(s.params, s.rng)
		}
		cell.RemoveDead()
	})
}

// resetMoved clears the migration flags for the next year.
func (s *Simulation) resetMoved() {
	s.forEachAnimal(func(a *animal.Animal) { a.Moved = false })
}

const (
	ascending  = true
	descending = false
)

// sortByFitness orders a list by current fitness. The sort is stable,
// so animals of equal fitness keep their relative order.
func sortByFitness(list []*animal.Animal, ps animal.ParamSet, asc bool) {
	sort.SliceStable(list, func(i, j int) bool {
		if asc {
			return list[i].Fitness(ps) < list[j].Fitness(ps)
		}
		return list[i].Fitness(ps) > list[j].Fitness(ps)
	})
}
