package core_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/pathmaster/internal/games/pathmaster/core"
)

func mustGrid(t *testing.T, rows ...string) *core.Grid {
	t.Helper()
	g, err := core.NewGridFromRows(rows)
	if err != nil {
		t.Fatalf("NewGridFromRows(%v) failed: %v", rows, err)
	}
	return g
}

func mustMove(t *testing.T, s *core.State, row, col int) core.MoveResult {
	t.Helper()
	res, err := s.AttemptMove(core.C(row, col))
	if err != nil {
		t.Fatalf("move to (%d,%d) rejected: %v", row, col, err)
	}
	return res
}

func fiveByFive(t *testing.T) *core.Grid {
	return mustGrid(t,
		"S3400",
		"00000",
		"00000",
		"00000",
		"0000E",
	)
}

func TestNewStateStartsAtStart(t *testing.T) {
	g := fiveByFive(t)
	s := core.NewState(g)

	if s.Position() != g.Start {
		t.Errorf("Position = %v, want %v", s.Position(), g.Start)
	}
	if !s.IsVisited(g.Start) || s.VisitedCount() != 1 {
		t.Errorf("visited should contain exactly Start, got %v", s.VisitedCells())
	}
	if s.Score() != 0 || s.Steps() != 0 || s.Elapsed() != 0 {
		t.Errorf("counters = %d/%d/%d, want zeros", s.Score(), s.Steps(), s.Elapsed())
	}
	if s.Status() != core.StatusActive {
		t.Errorf("Status = %v, want Active", s.Status())
	}
	if s.CalculateScore() != 0 {
		t.Errorf("CalculateScore with no steps = %d, want 0", s.CalculateScore())
	}
}

func TestAttemptMoveAccumulates(t *testing.T) {
	s := core.NewState(fiveByFive(t))

	res := mustMove(t, s, 0, 1)
	if res.Outcome != core.OutcomeAccepted || res.RunningScore != 3 {
		t.Errorf("first move result = %+v", res)
	}
	mustMove(t, s, 0, 2)

	if s.Score() != 7 || s.Steps() != 2 {
		t.Errorf("score/steps = %d/%d, want 7/2", s.Score(), s.Steps())
	}
	if s.CalculateScore() != 3 {
		t.Errorf("CalculateScore = %d, want 3 (7/2 truncated)", s.CalculateScore())
	}
	if s.Position() != core.C(0, 2) {
		t.Errorf("Position = %v, want (0,2)", s.Position())
	}
}

func TestDiagonalMoveRejected(t *testing.T) {
	s := core.NewState(fiveByFive(t))
	mustMove(t, s, 0, 1)
	mustMove(t, s, 0, 2)

	_, err := s.AttemptMove(core.C(1, 3))
	if !errors.Is(err, core.ErrNotAdjacent) {
		t.Fatalf("diagonal move error = %v, want ErrNotAdjacent", err)
	}
	if !core.IsInvalidMove(err) {
		t.Error("diagonal move should be an invalid move")
	}

	if s.Steps() != 2 || s.Score() != 7 || s.Position() != core.C(0, 2) {
		t.Errorf("state changed after rejection: steps=%d score=%d pos=%v", s.Steps(), s.Score(), s.Position())
	}
	if s.IsVisited(core.C(1, 3)) {
		t.Error("rejected target should not be visited")
	}
}

func TestMoveRejectionOrder(t *testing.T) {
	tests := []struct {
		name   string
		setup  [][2]int
		target core.Coord
		want   error
	}{
		{"back onto start", [][2]int{{0, 1}}, core.C(0, 0), core.ErrAlreadyVisited},
		{"jump two cells", nil, core.C(0, 2), core.ErrNotAdjacent},
		{"stay in place", nil, core.C(0, 0), core.ErrNotAdjacent},
		{"off the top edge", nil, core.C(-1, 0), core.ErrOutOfBounds},
		{"far outside", nil, core.C(10, 10), core.ErrOutOfBounds},
		// Visited and far away: adjacency wins.
		{"visited but distant", [][2]int{{0, 1}, {0, 2}, {0, 3}}, core.C(0, 0), core.ErrNotAdjacent},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := core.NewState(fiveByFive(t))
			for _, m := range tc.setup {
				mustMove(t, s, m[0], m[1])
			}
			before := s.Snapshot()

			_, err := s.AttemptMove(tc.target)
			if !errors.Is(err, tc.want) {
				t.Fatalf("AttemptMove(%v) error = %v, want %v", tc.target, err, tc.want)
			}

			after := s.Snapshot()
			if after.Score != before.Score || after.Steps != before.Steps || after.Position != before.Position ||
				len(after.Visited) != len(before.Visited) {
				t.Errorf("rejected move mutated state: before %+v after %+v", before, after)
			}
		})
	}
}

func TestRejectionIsRepeatable(t *testing.T) {
	s := core.NewState(fiveByFive(t))
	mustMove(t, s, 0, 1)

	for i := 0; i < 5; i++ {
		if _, err := s.AttemptMove(core.C(0, 0)); !errors.Is(err, core.ErrAlreadyVisited) {
			t.Fatalf("attempt %d error = %v", i, err)
		}
	}
	if s.Steps() != 1 || s.Score() != 3 {
		t.Errorf("steps/score = %d/%d after repeated rejections", s.Steps(), s.Score())
	}
}

func TestReachingEndFinishesWithoutScoring(t *testing.T) {
	s := core.NewState(mustGrid(t,
		"S52",
		"001",
		"00E",
	))

	mustMove(t, s, 0, 1)
	mustMove(t, s, 0, 2)
	mustMove(t, s, 1, 2)
	res := mustMove(t, s, 2, 2)

	if res.Outcome != core.OutcomeWon {
		t.Fatalf("Outcome = %v, want OutcomeWon", res.Outcome)
	}
	if s.Score() != 8 || s.Steps() != 3 {
		t.Errorf("score/steps = %d/%d, want 8/3", s.Score(), s.Steps())
	}
	if res.FinalScore != 2 {
		t.Errorf("FinalScore = %d, want 2", res.FinalScore)
	}
	if !s.IsFinished() || s.Status() != core.StatusFinished {
		t.Error("state should be finished")
	}
	if s.Position() != core.C(2, 2) || !s.IsVisited(core.C(2, 2)) {
		t.Error("player should stand on End")
	}
	if got := core.WinMessage(res.FinalScore); got != "Congratulations! Final score: 2" {
		t.Errorf("WinMessage = %q", got)
	}
}

func TestEndRightAfterStart(t *testing.T) {
	s := core.NewState(mustGrid(t,
		"SE",
		"12",
	))
	res := mustMove(t, s, 0, 1)
	if res.Outcome != core.OutcomeWon || res.FinalScore != 0 {
		t.Errorf("result = %+v, want win with final score 0", res)
	}
	if s.Steps() != 0 {
		t.Errorf("Steps = %d, want 0", s.Steps())
	}
}

func TestMovesAfterWinAreRejected(t *testing.T) {
	s := core.NewState(mustGrid(t,
		"S4",
		"9E",
	))
	mustMove(t, s, 0, 1)
	mustMove(t, s, 1, 1)

	before := s.Snapshot()
	for _, target := range []core.Coord{core.C(1, 0), core.C(0, 0), core.C(5, 5)} {
		_, err := s.AttemptMove(target)
		if !errors.Is(err, core.ErrGameOver) {
			t.Errorf("move to %v after win: error = %v, want ErrGameOver", target, err)
		}
		if core.IsInvalidMove(err) {
			t.Errorf("game over should not count as an invalid move")
		}
	}
	if s.Score() != before.Score || s.Steps() != before.Steps {
		t.Error("moves after win changed counters")
	}
}

func TestMoveDir(t *testing.T) {
	s := core.NewState(fiveByFive(t))

	if _, err := s.MoveDir(core.DirRight); err != nil {
		t.Fatalf("MoveDir(Right) failed: %v", err)
	}
	if s.Position() != core.C(0, 1) {
		t.Errorf("Position = %v, want (0,1)", s.Position())
	}
	if _, err := s.MoveDir(core.DirUp); !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("MoveDir(Up) at top row error = %v, want ErrOutOfBounds", err)
	}
	if _, err := s.MoveDir(core.DirLeft); !errors.Is(err, core.ErrAlreadyVisited) {
		t.Errorf("MoveDir(Left) back to start error = %v, want ErrAlreadyVisited", err)
	}
	if _, err := s.MoveDir(core.DirDown); err != nil {
		t.Errorf("MoveDir(Down) failed: %v", err)
	}
}

func TestTick(t *testing.T) {
	s := core.NewState(mustGrid(t,
		"S4",
		"9E",
	))

	for i := 0; i < 3; i++ {
		s.Tick()
	}
	if s.Elapsed() != 3 {
		t.Errorf("Elapsed = %d, want 3", s.Elapsed())
	}

	mustMove(t, s, 0, 1)
	mustMove(t, s, 1, 1)
	s.Tick()
	s.Tick()
	if s.Elapsed() != 3 {
		t.Errorf("Elapsed after win = %d, want 3", s.Elapsed())
	}
}

func TestReset(t *testing.T) {
	g := fiveByFive(t)
	s := core.NewState(g)
	s.SetPathColor("pink")
	mustMove(t, s, 0, 1)
	s.Tick()

	s.Reset()

	if s.Grid() != g {
		t.Error("Reset should keep the same grid")
	}
	if s.Position() != g.Start || s.VisitedCount() != 1 {
		t.Errorf("Reset position/visited = %v/%d", s.Position(), s.VisitedCount())
	}
	if s.Score() != 0 || s.Steps() != 0 || s.Elapsed() != 0 || s.IsFinished() {
		t.Error("Reset should clear counters and finished flag")
	}
	if s.PathColor() != "pink" {
		t.Errorf("PathColor = %q, want pink", s.PathColor())
	}
}

func TestStatusLine(t *testing.T) {
	s := core.NewState(fiveByFive(t))
	mustMove(t, s, 0, 1)
	mustMove(t, s, 0, 2)
	s.Tick()
	s.Tick()

	want := "Statistics: Path Length: 2, Sum: 7, Score: 3, Time: 2s"
	if got := s.StatusLine(); got != want {
		t.Errorf("StatusLine = %q, want %q", got, want)
	}
	if got := s.ScoreLabel(); got != "Score: 3" {
		t.Errorf("ScoreLabel = %q", got)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{core.MoveError{Reason: core.ErrNotAdjacent}, "You can only move to adjacent fields!"},
		{core.MoveError{Reason: core.ErrAlreadyVisited}, "You have already visited that field!"},
		{core.MoveError{Reason: core.ErrOutOfBounds}, "That field is outside the board!"},
		{core.ErrGameOver, "The game is over. Press R to restart."},
	}

	for _, tc := range tests {
		if got := core.ErrorMessage(tc.err); got != tc.want {
			t.Errorf("ErrorMessage(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

// Random walks must keep the counters consistent with the visited set.
func TestRandomWalkInvariants(t *testing.T) {
	dirs := []core.Dir{core.DirUp, core.DirRight, core.DirDown, core.DirLeft}

	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := core.MustGenerate(5, rng)
		s := core.NewState(g)

		for i := 0; i < 200; i++ {
			_, _ = s.MoveDir(dirs[rng.Intn(len(dirs))])

			sum := 0
			for _, c := range s.VisitedCells() {
				sum += g.Get(c).Score()
			}
			if sum != s.Score() {
				t.Fatalf("seed %d: score %d != visited sum %d", seed, s.Score(), sum)
			}

			wantVisited := s.Steps() + 1
			if s.IsFinished() {
				wantVisited++
			}
			if s.VisitedCount() != wantVisited {
				t.Fatalf("seed %d: visited %d, steps %d, finished %v", seed, s.VisitedCount(), s.Steps(), s.IsFinished())
			}
			if !s.IsVisited(s.Position()) || !s.IsVisited(g.Start) {
				t.Fatalf("seed %d: position or start missing from visited", seed)
			}
			if s.IsFinished() != s.IsVisited(g.End) {
				t.Fatalf("seed %d: finished=%v but end visited=%v", seed, s.IsFinished(), s.IsVisited(g.End))
			}
		}
	}
}
