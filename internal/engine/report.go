package engine

import (
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/animal"
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/island"
)

// CellCount is one grid cell's census row.
type CellCount struct {
	Row        int `json:"row" csv:"row" db:"cell_row"`
	Col        int `json:"col" csv:"col" db:"cell_col"`
	Herbivores int `json:"herbivores" csv:"herbivores" db:"herbivores"`
	Carnivores int `json:"carnivores" csv:"carnivores" db:"carnivores"`
}

// NumAnimals returns the island-wide head count.
func (s *Simulation) NumAnimals() int {
	h, c := s.SpeciesCounts()
	return h + c
}

// SpeciesCounts returns the island-wide per-species head counts.
func (s *Simulation) SpeciesCounts() (herbivores, carnivores int) {
	s.forEachCell(func(cell *island.Cell) {
		herbivores += len(cell.Herbivores)
		carnivores += len(cell.Carnivores)
	})
	return herbivores, carnivores
}

// NumAnimalsPerSpecies returns the census keyed by species name.
func (s *Simulation) NumAnimalsPerSpecies() map[string]int {
	h, c := s.SpeciesCounts()
	return map[string]int{
		animal.Herbivore.String(): h,
		animal.Carnivore.String(): c,
	}
}

// Distribution returns a per-cell census in row-major order. Reading
// it never disturbs the simulation.
func (s *Simulation) Distribution() []CellCount {
	counts := make([]CellCount, 0, s.Island.NumCells())
	s.forEachCell(func(cell *island.Cell) {
		counts = append(counts, CellCount{
			Row:        cell.Row,
			Col:        cell.Col,
			Herbivores: len(cell.Herbivores),
			Carnivores: len(cell.Carnivores),
		})
	})
	return counts
}

// Animals returns every animal in canonical order. The slice is a
// fresh copy; the pointers are live.
func (s *Simulation) Animals() []*animal.Animal {
	all := make([]*animal.Animal, 0, s.NumAnimals())
	s.forEachAnimal(func(a *animal.Animal) { all = append(all, a) })
	return all
}
