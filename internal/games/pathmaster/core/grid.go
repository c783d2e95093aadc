package core

import "fmt"

// Grid represents the game board as a square grid of cells.
// Cells are stored in row-major order: index = row*Size + col.
// A grid is never mutated once generated.
type Grid struct {
	Size  int
	Cells []Cell
	Start Coord
	End   Coord
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Row*g.Size + c.Col
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.Size && c.Col >= 0 && c.Col < g.Size
}

// Get returns the cell at the given coordinate.
// Returns a zero-valued numbered cell if out of bounds.
func (g *Grid) Get(c Coord) Cell {
	if !g.InBounds(c) {
		return Cell{}
	}
	return g.Cells[g.index(c)]
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		Size:  g.Size,
		Cells: cells,
		Start: g.Start,
		End:   g.End,
	}
}

// Equal returns true if two grids have the same layout.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.Size != other.Size || g.Start != other.Start || g.End != other.End {
		return false
	}
	if len(g.Cells) != len(other.Cells) {
		return false
	}
	for i, cell := range g.Cells {
		if cell != other.Cells[i] {
			return false
		}
	}
	return true
}

// AllCoords returns all coordinates in the grid, row by row.
func (g *Grid) AllCoords() []Coord {
	coords := make([]Coord, 0, g.Size*g.Size)
	for r := 0; r < g.Size; r++ {
		for c := 0; c < g.Size; c++ {
			coords = append(coords, C(r, c))
		}
	}
	return coords
}

// Validate checks the placement invariants: square dimensions, exactly one
// Start and one End at the recorded coordinates, and digits everywhere else.
func (g *Grid) Validate() error {
	if g.Size < MinGridSize {
		return fmt.Errorf("grid size %d below minimum %d", g.Size, MinGridSize)
	}
	if len(g.Cells) != g.Size*g.Size {
		return fmt.Errorf("grid has %d cells, want %d", len(g.Cells), g.Size*g.Size)
	}
	if !g.InBounds(g.Start) || !g.InBounds(g.End) {
		return fmt.Errorf("start %s or end %s out of bounds", g.Start, g.End)
	}
	if g.Start == g.End {
		return fmt.Errorf("start and end coincide at %s", g.Start)
	}

	for _, c := range g.AllCoords() {
		cell := g.Get(c)
		if !cell.Valid() {
			return fmt.Errorf("cell %s holds invalid value %d", c, cell.Value)
		}
		if cell.Kind == CellStart && c != g.Start {
			return fmt.Errorf("stray start marker at %s", c)
		}
		if cell.Kind == CellEnd && c != g.End {
			return fmt.Errorf("stray end marker at %s", c)
		}
	}
	counts := g.CountByKind()
	if counts[CellStart] != 1 || counts[CellEnd] != 1 {
		return fmt.Errorf("grid has %d start and %d end markers", counts[CellStart], counts[CellEnd])
	}
	return nil
}

// CountByKind returns the number of cells of each kind.
func (g *Grid) CountByKind() map[CellKind]int {
	counts := make(map[CellKind]int)
	for _, cell := range g.Cells {
		counts[cell.Kind]++
	}
	return counts
}
