package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/pathmaster/internal/games/pathmaster/core"
)

func playedState(t *testing.T) *core.State {
	t.Helper()
	s := core.NewState(fiveByFive(t))
	s.SetPathColor("aqua")
	mustMove(t, s, 0, 1)
	mustMove(t, s, 0, 2)
	mustMove(t, s, 1, 2)
	s.Tick()
	s.Tick()
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := playedState(t)
	snap := s.Snapshot()

	restored, err := core.FromSnapshot(snap)
	if err != nil {
		t.Fatalf("FromSnapshot failed: %v", err)
	}

	if !restored.Grid().Equal(s.Grid()) {
		t.Error("grid differs after restore")
	}
	if restored.Position() != s.Position() || restored.Score() != s.Score() ||
		restored.Steps() != s.Steps() || restored.Elapsed() != s.Elapsed() {
		t.Errorf("counters differ: got %s, want %s", restored.StatusLine(), s.StatusLine())
	}
	if restored.PathColor() != "aqua" {
		t.Errorf("PathColor = %q, want aqua", restored.PathColor())
	}
	if restored.VisitedCount() != s.VisitedCount() {
		t.Errorf("VisitedCount = %d, want %d", restored.VisitedCount(), s.VisitedCount())
	}
	for _, c := range s.VisitedCells() {
		if !restored.IsVisited(c) {
			t.Errorf("cell %v lost from visited set", c)
		}
	}
	if restored.CalculateScore() != s.CalculateScore() {
		t.Errorf("CalculateScore = %d, want %d", restored.CalculateScore(), s.CalculateScore())
	}
	if restored.IsFinished() != s.IsFinished() {
		t.Errorf("IsFinished = %v, want %v", restored.IsFinished(), s.IsFinished())
	}

	// Restored state keeps playing the same way.
	_, err = restored.AttemptMove(core.C(0, 2))
	if !errors.Is(err, core.ErrAlreadyVisited) {
		t.Errorf("move onto restored visited cell: error = %v", err)
	}
	if _, err := restored.AttemptMove(core.C(2, 2)); err != nil {
		t.Errorf("move after restore failed: %v", err)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := playedState(t)
	snap := s.Snapshot()

	mustMove(t, s, 2, 2)
	snap.Grid.Cells[0] = core.NumberCell(9)

	if len(snap.Visited) != 4 {
		t.Errorf("snapshot visited changed to %d cells", len(snap.Visited))
	}
	if s.Grid().Get(core.C(0, 0)).Kind != core.CellStart {
		t.Error("mutating the snapshot grid leaked into the state")
	}
}

func TestSnapshotOfFinishedGame(t *testing.T) {
	s := core.NewState(mustGrid(t,
		"S4",
		"9E",
	))
	mustMove(t, s, 0, 1)
	mustMove(t, s, 1, 1)

	restored, err := core.FromSnapshot(s.Snapshot())
	if err != nil {
		t.Fatalf("FromSnapshot of finished game failed: %v", err)
	}
	if !restored.IsFinished() {
		t.Error("restored state should be finished")
	}
	if restored.VisitedCount() != s.VisitedCount() || restored.CalculateScore() != s.CalculateScore() {
		t.Errorf("restored finished run: visited=%d score=%d, want %d and %d",
			restored.VisitedCount(), restored.CalculateScore(), s.VisitedCount(), s.CalculateScore())
	}
	if _, err := restored.AttemptMove(core.C(1, 0)); !errors.Is(err, core.ErrGameOver) {
		t.Errorf("move on restored finished game: error = %v", err)
	}
}

func TestRestoreAcceptsWindingPath(t *testing.T) {
	s := core.NewState(fiveByFive(t))
	for _, c := range []core.Coord{core.C(1, 0), core.C(1, 1), core.C(0, 1), core.C(0, 2), core.C(1, 2), core.C(2, 2)} {
		mustMove(t, s, c.Row, c.Col)
	}

	restored, err := core.FromSnapshot(s.Snapshot())
	if err != nil {
		t.Fatalf("FromSnapshot rejected a played path: %v", err)
	}
	if restored.Position() != core.C(2, 2) || restored.VisitedCount() != 7 {
		t.Errorf("restored position=%v visited=%d", restored.Position(), restored.VisitedCount())
	}
}

func TestRestoreRejectsCorruptSnapshots(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*core.Snapshot)
	}{
		{"missing grid", func(s *core.Snapshot) { s.Grid = nil }},
		{"grid without end", func(s *core.Snapshot) { s.Grid.Cells[24] = core.NumberCell(1) }},
		{"cell value too large", func(s *core.Snapshot) { s.Grid.Cells[3] = core.NumberCell(12) }},
		{"negative elapsed", func(s *core.Snapshot) { s.Elapsed = -1 }},
		{"score mismatch", func(s *core.Snapshot) { s.Score++ }},
		{"steps mismatch", func(s *core.Snapshot) { s.Steps = 7 }},
		{"visited out of bounds", func(s *core.Snapshot) { s.Visited = append(s.Visited, core.C(9, 9)) }},
		{"visited twice", func(s *core.Snapshot) { s.Visited = append(s.Visited, core.C(0, 1)) }},
		{"start not visited", func(s *core.Snapshot) { s.Visited = s.Visited[1:] }},
		{"position off path", func(s *core.Snapshot) { s.Position = core.C(3, 3) }},
		{"finished away from end", func(s *core.Snapshot) { s.Finished = true }},
		{"end visited while active", func(s *core.Snapshot) { s.Visited = append(s.Visited, core.C(4, 4)) }},
		{"teleported position", func(s *core.Snapshot) {
			s.Grid.Cells[18] = core.NumberCell(9)
			s.Visited = []core.Coord{core.C(0, 0), core.C(3, 3)}
			s.Position = core.C(3, 3)
			s.Score = 9
			s.Steps = 1
		}},
		{"detached visited cell", func(s *core.Snapshot) {
			s.Visited = append(s.Visited, core.C(3, 0))
			s.Steps++
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			target := core.NewState(mustGrid(t,
				"S9",
				"1E",
			))
			mustMove(t, target, 1, 0)
			before := target.Snapshot()

			snap := playedState(t).Snapshot()
			tc.mutate(&snap)

			err := target.Restore(snap)
			if err == nil {
				t.Fatal("Restore should reject the snapshot")
			}
			if !errors.Is(err, core.ErrCorrupt) {
				t.Errorf("error = %v, want ErrCorrupt", err)
			}
			var perr core.PersistenceError
			if !errors.As(err, &perr) {
				t.Errorf("error should be a PersistenceError")
			}

			after := target.Snapshot()
			if !after.Grid.Equal(before.Grid) || after.Position != before.Position ||
				after.Score != before.Score || after.Steps != before.Steps {
				t.Errorf("failed restore mutated the state")
			}
		})
	}
}
