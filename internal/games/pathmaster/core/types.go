// Package core provides the core game logic for the PathMaster grid game.
// This package is UI-agnostic: it knows nothing about terminals, colors on
// screen or input devices. The platform feeds it coordinates and ticks.
package core

import "strconv"

// CellKind distinguishes the terminal markers from ordinary numbered cells.
type CellKind uint8

const (
	CellNumber CellKind = iota
	CellStart
	CellEnd
)

// String returns the string representation of a cell kind.
func (k CellKind) String() string {
	switch k {
	case CellNumber:
		return "Number"
	case CellStart:
		return "Start"
	case CellEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// MaxCellValue is the largest value a numbered cell can hold.
const MaxCellValue = 9

// Cell represents a single cell in the grid.
type Cell struct {
	Kind  CellKind
	Value int // Valid only when Kind is CellNumber
}

// StartCell returns the Start marker cell.
func StartCell() Cell {
	return Cell{Kind: CellStart}
}

// EndCell returns the End marker cell.
func EndCell() Cell {
	return Cell{Kind: CellEnd}
}

// NumberCell returns a numbered cell with the given value.
func NumberCell(v int) Cell {
	return Cell{Kind: CellNumber, Value: v}
}

// Score returns how much entering this cell adds to the running score.
// Start and End are markers and contribute nothing.
func (c Cell) Score() int {
	if c.Kind != CellNumber {
		return 0
	}
	return c.Value
}

// Label returns the text shown for the cell on the board.
func (c Cell) Label() string {
	switch c.Kind {
	case CellStart:
		return "Start"
	case CellEnd:
		return "End"
	default:
		return strconv.Itoa(c.Value)
	}
}

// Valid reports whether the cell holds a legal value for its kind.
func (c Cell) Valid() bool {
	switch c.Kind {
	case CellStart, CellEnd:
		return c.Value == 0
	case CellNumber:
		return c.Value >= 0 && c.Value <= MaxCellValue
	default:
		return false
	}
}

// Status is the state machine's position: Active until End is reached.
type Status uint8

const (
	StatusActive Status = iota
	StatusFinished
)

// String returns the string representation of a status.
func (s Status) String() string {
	if s == StatusFinished {
		return "Finished"
	}
	return "Active"
}

// Outcome describes what an accepted move did.
type Outcome uint8

const (
	OutcomeAccepted Outcome = iota // Moved onto a numbered cell
	OutcomeWon                     // Moved onto End
)

// MoveResult is returned by State.AttemptMove for accepted moves.
type MoveResult struct {
	Outcome      Outcome
	RunningScore int // Accumulated cell sum after the move
	FinalScore   int // Display score at the moment End was entered (OutcomeWon only)
}
