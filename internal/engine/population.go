package engine

import (
	"errors"
	"fmt"

	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/animal"
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/island"
)

var ErrIllegalPlacement = errors.New("engine: illegal placement")

// AnimalDescriptor specifies one animal to introduce.
type AnimalDescriptor struct {
	Species string  `json:"species" yaml:"species"`
	Age     int     `json:"age" yaml:"age"`
	Weight  float64 `json:"weight" yaml:"weight"`
}

// PopulationGroup drops a batch of animals onto one cell.
type PopulationGroup struct {
	Row     int                `json:"row" yaml:"row"`
	Col     int                `json:"col" yaml:"col"`
	Animals []AnimalDescriptor `json:"animals" yaml:"animals"`
}

// AddPopulation introduces animals onto the island, before the first
// year or between years. The call is atomic: every placement is
// validated and constructed before any cell is touched, so a bad entry
// leaves the island exactly as it was.
func (s *Simulation) AddPopulation(groups []PopulationGroup) error {
	type placement struct {
		cell *island.Cell
		a    *animal.Animal
	}
	var placements []placement

	for _, g := range groups {
		cell := s.Island.At(g.Row, g.Col)
		if cell == nil {
			return fmt.Errorf("%w: (%d, %d) is outside the %dx%d grid",
				ErrIllegalPlacement, g.Row, g.Col, s.Island.Rows, s.Island.Cols)
		}
		if !cell.Biome.Passable() {
			return fmt.Errorf("%w: (%d, %d) is %s", ErrIllegalPlacement, g.Row, g.Col, cell.Biome)
		}
		for _, d := range g.Animals {
			sp, err := animal.ParseSpecies(d.Species)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrIllegalPlacement, err)
			}
			a, err := animal.New(sp, d.Age, d.Weight)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrIllegalPlacement, err)
			}
			placements = append(placements, placement{cell: cell, a: a})
		}
	}

	for _, p := range placements {
		p.cell.Insert(p.a)
	}
	return nil
}
