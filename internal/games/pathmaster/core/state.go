package core

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// State tracks one play-through of a grid: the player position, the set of
// visited cells, and the score/step/time counters.
//
// State is not synchronized. Callers serialize AttemptMove and Tick onto a
// single execution context.
type State struct {
	grid *Grid

	position Coord
	visited  mapset.Set[Coord]
	score    int // Sum of entered cell values
	steps    int // Accepted moves onto numbered cells
	elapsed  int // Whole seconds while active
	finished bool

	pathColor string
}

// NewState creates an active state bound to the given grid.
func NewState(g *Grid) *State {
	s := &State{grid: g}
	s.Reset()
	return s
}

// Reset returns the state to the beginning of the same grid.
// The path color is a display preference and survives a reset.
func (s *State) Reset() {
	s.position = s.grid.Start
	s.visited = mapset.New[Coord]()
	s.visited.Put(s.grid.Start)
	s.score = 0
	s.steps = 0
	s.elapsed = 0
	s.finished = false
}

// AttemptMove tries to move the player onto target.
//
// Rejections are checked in order: finished game, out of bounds, not adjacent,
// already visited. A rejected move leaves the state untouched.
// Entering End finishes the game without adding score or a step.
func (s *State) AttemptMove(target Coord) (MoveResult, error) {
	if s.finished {
		return MoveResult{}, ErrGameOver
	}
	if !s.grid.InBounds(target) {
		return MoveResult{}, MoveError{Reason: ErrOutOfBounds, From: s.position, To: target}
	}
	if !s.position.Adjacent(target) {
		return MoveResult{}, MoveError{Reason: ErrNotAdjacent, From: s.position, To: target}
	}
	if s.visited.Has(target) {
		return MoveResult{}, MoveError{Reason: ErrAlreadyVisited, From: s.position, To: target}
	}

	s.position = target
	s.visited.Put(target)

	if target == s.grid.End {
		s.finished = true
		return MoveResult{
			Outcome:      OutcomeWon,
			RunningScore: s.score,
			FinalScore:   s.CalculateScore(),
		}, nil
	}

	s.score += s.grid.Get(target).Score()
	s.steps++

	return MoveResult{
		Outcome:      OutcomeAccepted,
		RunningScore: s.score,
	}, nil
}

// MoveDir attempts a move one step from the current position.
func (s *State) MoveDir(d Dir) (MoveResult, error) {
	return s.AttemptMove(s.position.Step(d))
}

// CalculateScore returns the display score: the cell sum divided by the step
// count, truncated. Zero before the first step.
func (s *State) CalculateScore() int {
	if s.steps <= 0 {
		return 0
	}
	return s.score / s.steps
}

// Tick advances the elapsed-time counter by one second while active.
func (s *State) Tick() {
	if s.finished {
		return
	}
	s.elapsed++
}

// Grid returns the grid this state plays on.
func (s *State) Grid() *Grid {
	return s.grid
}

// Position returns the player's current cell.
func (s *State) Position() Coord {
	return s.position
}

// Score returns the running cell sum.
func (s *State) Score() int {
	return s.score
}

// CurrentScore returns the display score (see CalculateScore).
func (s *State) CurrentScore() int {
	return s.CalculateScore()
}

// Steps returns the number of scored moves.
func (s *State) Steps() int {
	return s.steps
}

// Elapsed returns the active play time in seconds.
func (s *State) Elapsed() int {
	return s.elapsed
}

// IsFinished reports whether End has been reached.
func (s *State) IsFinished() bool {
	return s.finished
}

// Status returns the state machine position.
func (s *State) Status() Status {
	if s.finished {
		return StatusFinished
	}
	return StatusActive
}

// IsVisited reports whether the cell has been entered.
func (s *State) IsVisited(c Coord) bool {
	return s.visited.Has(c)
}

// VisitedCount returns the size of the visited set.
func (s *State) VisitedCount() int {
	return s.visited.Size()
}

// VisitedCells returns the visited cells in row-major order.
func (s *State) VisitedCells() []Coord {
	cells := make([]Coord, 0, s.visited.Size())
	s.visited.Each(func(c Coord) {
		cells = append(cells, c)
	})
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Less(cells[j])
	})
	return cells
}

// PathColor returns the name of the color used to highlight the path.
func (s *State) PathColor() string {
	return s.pathColor
}

// SetPathColor changes the path highlight color.
func (s *State) SetPathColor(name string) {
	s.pathColor = name
}

// ScoreLabel returns the running score label.
func (s *State) ScoreLabel() string {
	return fmt.Sprintf("Score: %d", s.CalculateScore())
}

// StatusLine returns the statistics line shown under the board.
func (s *State) StatusLine() string {
	return fmt.Sprintf("Statistics: Path Length: %d, Sum: %d, Score: %d, Time: %ds",
		s.steps, s.score, s.CalculateScore(), s.elapsed)
}

// WinMessage returns the message shown when End is reached.
func WinMessage(finalScore int) string {
	return fmt.Sprintf("Congratulations! Final score: %d", finalScore)
}
