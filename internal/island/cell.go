package island

import (
	"github.com/Sebbek8/biosim-G07-sebastian-andreas/internal/animal"
)

// Cell is one grid square: its standing fodder and the animals on it,
// herbivores and carnivores in separate lists.
type Cell struct {
	Row, Col int
	Biome    Biome
	Food     float64

	Herbivores []*animal.Animal
	Carnivores []*animal.Animal
}

// Passable reports whether sp can enter the cell. A nil cell, off the
// edge of the map, is never passable.
func (c *Cell) Passable(sp animal.Species) bool {
	if c == nil {
		return false
	}
	return c.Biome.Passable()
}

// AvailableFood returns the fodder currently standing in the cell.
func (c *Cell) AvailableFood() float64 {
	if c == nil {
		return 0
	}
	return c.Food
}

// Population returns the head count of one species in the cell.
func (c *Cell) Population(sp animal.Species) int {
	if c == nil {
		return 0
	}
	if sp == animal.Carnivore {
		return len(c.Carnivores)
	}
	return len(c.Herbivores)
}

// HerbivoreBiomass sums live herbivore weight, the prey supply a
// migrating carnivore weighs a cell by.
func (c *Cell) HerbivoreBiomass() float64 {
	if c == nil {
		return 0
	}
	var total float64
	for _, h := range c.Herbivores {
		if h.Alive {
			total += h.Weight
		}
	}
	return total
}

// Insert adds a to the list of its species.
func (c *Cell) Insert(a *animal.Animal) {
	if a.Species == animal.Carnivore {
		c.Carnivores = append(c.Carnivores, a)
		return
	}
	c.Herbivores = append(c.Herbivores, a)
}

// Regrow replenishes fodder at the turn of the year. Jungle resets to
// capacity, savannah recovers a fraction of its deficit, everything
// else stays barren.
func (c *Cell) Regrow(bp BiomeParamSet) {
	p := bp[c.Biome]
	switch c.Biome {
	case Jungle:
		c.Food = p.FMax
	case Savannah:
		c.Food += p.Alpha * (p.FMax - c.Food)
	}
}

// RemoveDeadHerbivores compacts the herbivore list after a hunt so the
// next carnivore sees only live prey.
func (c *Cell) RemoveDeadHerbivores() {
	c.Herbivores = compactAlive(c.Herbivores)
}

// RemoveDead compacts both species lists.
func (c *Cell) RemoveDead() {
	c.Herbivores = compactAlive(c.Herbivores)
	c.Carnivores = compactAlive(c.Carnivores)
}

func compactAlive(list []*animal.Animal) []*animal.Animal {
	out := list[:0]
	for _, a := range list {
		if a.Alive {
			out = append(out, a)
		}
	}
	return out
}
