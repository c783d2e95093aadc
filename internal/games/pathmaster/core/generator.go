package core

import "fmt"

// MinGridSize is the smallest board that can hold distinct Start and End cells.
const MinGridSize = 2

// RNG is the entropy source used by the generator.
// *math/rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
}

// Generate builds a new size×size grid.
//
// Start is drawn uniformly from all cells. End is drawn the same way and
// resampled until it differs from Start. Every other cell receives a value
// drawn uniformly from 0..MaxCellValue.
func Generate(size int, rng RNG) (*Grid, error) {
	if size < MinGridSize {
		return nil, ConfigError{
			Reason: ErrInvalidGridSize,
			Detail: fmt.Sprintf("size %d, need at least %d", size, MinGridSize),
		}
	}

	g := &Grid{
		Size:  size,
		Cells: make([]Cell, size*size),
	}

	g.Start = C(rng.Intn(size), rng.Intn(size))
	for {
		g.End = C(rng.Intn(size), rng.Intn(size))
		if g.End != g.Start {
			break
		}
	}

	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			coord := C(r, c)
			switch coord {
			case g.Start:
				g.Cells[g.index(coord)] = StartCell()
			case g.End:
				g.Cells[g.index(coord)] = EndCell()
			default:
				g.Cells[g.index(coord)] = NumberCell(rng.Intn(MaxCellValue + 1))
			}
		}
	}

	return g, nil
}

// MustGenerate is like Generate but panics on an invalid size.
// Intended for tests and fixed, known-good sizes.
func MustGenerate(size int, rng RNG) *Grid {
	g, err := Generate(size, rng)
	if err != nil {
		panic(err)
	}
	return g
}

// NewGridFromRows builds a grid from row label strings, one rune per cell:
// 'S' for Start, 'E' for End, '0'..'9' for numbered cells.
// Used by tests and by the save-file decoder.
func NewGridFromRows(rows []string) (*Grid, error) {
	size := len(rows)
	g := &Grid{
		Size:  size,
		Cells: make([]Cell, size*size),
	}
	for r, row := range rows {
		runes := []rune(row)
		if len(runes) != size {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(runes), size)
		}
		for c, ch := range runes {
			coord := C(r, c)
			switch {
			case ch == 'S':
				g.Cells[g.index(coord)] = StartCell()
				g.Start = coord
			case ch == 'E':
				g.Cells[g.index(coord)] = EndCell()
				g.End = coord
			case ch >= '0' && ch <= '9':
				g.Cells[g.index(coord)] = NumberCell(int(ch - '0'))
			default:
				return nil, fmt.Errorf("row %d col %d: unexpected %q", r, c, ch)
			}
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Rows renders the grid in the format accepted by NewGridFromRows.
func (g *Grid) Rows() []string {
	rows := make([]string, g.Size)
	for r := 0; r < g.Size; r++ {
		buf := make([]byte, g.Size)
		for c := 0; c < g.Size; c++ {
			cell := g.Get(C(r, c))
			switch cell.Kind {
			case CellStart:
				buf[c] = 'S'
			case CellEnd:
				buf[c] = 'E'
			default:
				buf[c] = byte('0' + cell.Value)
			}
		}
		rows[r] = string(buf)
	}
	return rows
}
