package island

import (
	"fmt"
	"strings"
)

// ParseTerrain turns a multiline terrain sketch into a biome grid.
// Lines are trimmed of surrounding whitespace and blank lines are
// skipped, so indented raw-string literals parse cleanly.
func ParseTerrain(terrain string) ([][]Biome, error) {
	var grid [][]Biome
	for _, line := range strings.Split(terrain, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]Biome, len(line))
		for i := 0; i < len(line); i++ {
			b, err := BiomeFromCode(line[i])
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", len(grid), err)
			}
			row[i] = b
		}
		grid = append(grid, row)
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: empty terrain", ErrInvalidMap)
	}
	return grid, nil
}

// FromString parses a terrain sketch and builds the map in one step.
func FromString(terrain string) (*Map, error) {
	grid, err := ParseTerrain(terrain)
	if err != nil {
		return nil, err
	}
	return New(grid)
}
