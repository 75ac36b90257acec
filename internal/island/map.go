package island

import "fmt"

// Map is the island grid. Coordinates are 0-based (row, col) with row
// 0 at the top of the terrain sketch.
type Map struct {
	Rows, Cols int

	cells [][]Cell
}

// New builds a map from a biome grid. The grid must be non-empty,
// rectangular, and ringed by impassable cells so nothing walks off the
// edge of the world.
func New(biomes [][]Biome) (*Map, error) {
	rows := len(biomes)
	if rows == 0 || len(biomes[0]) == 0 {
		return nil, fmt.Errorf("%w: empty terrain", ErrInvalidMap)
	}
	cols := len(biomes[0])
	for r, line := range biomes {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidMap, r, len(line), cols)
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			onBorder := r == 0 || r == rows-1 || c == 0 || c == cols-1
			if onBorder && biomes[r][c].Passable() {
				return nil, fmt.Errorf("%w: border cell (%d, %d) is %s, want an impassable edge", ErrInvalidMap, r, c, biomes[r][c])
			}
		}
	}

	m := &Map{Rows: rows, Cols: cols, cells: make([][]Cell, rows)}
	for r := range m.cells {
		m.cells[r] = make([]Cell, cols)
		for c := range m.cells[r] {
			m.cells[r][c] = Cell{Row: r, Col: c, Biome: biomes[r][c]}
		}
	}
	return m, nil
}

// At returns the cell at (row, col), or nil outside the grid.
func (m *Map) At(row, col int) *Cell {
	if row < 0 || row >= m.Rows || col < 0 || col >= m.Cols {
		return nil
	}
	return &m.cells[row][col]
}

// Neighbors returns the four adjacent cells in north, south, west,
// east order. Off-grid neighbors come back nil.
func (m *Map) Neighbors(row, col int) (north, south, west, east *Cell) {
	return m.At(row-1, col), m.At(row+1, col), m.At(row, col-1), m.At(row, col+1)
}

// TerrainRows renders the biome grid back to one code string per row.
func (m *Map) TerrainRows() []string {
	rows := make([]string, m.Rows)
	for r := 0; r < m.Rows; r++ {
		line := make([]byte, m.Cols)
		for c := 0; c < m.Cols; c++ {
			line[c] = m.cells[r][c].Biome.Code()
		}
		rows[r] = string(line)
	}
	return rows
}

// NumCells returns the grid size.
func (m *Map) NumCells() int {
	return m.Rows * m.Cols
}

func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d)", m.Rows, m.Cols)
}
