package core

import (
	"github.com/zyedidia/generic/mapset"
)

// Snapshot captures the complete game state for save/load.
// It holds only semantic data: the grid layout and the counters.
type Snapshot struct {
	Grid      *Grid
	Position  Coord
	Visited   []Coord // Row-major order
	Score     int
	Steps     int
	Elapsed   int
	Finished  bool
	PathColor string
}

// Snapshot returns a copy of the current state that shares nothing with it.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Grid:      s.grid.Clone(),
		Position:  s.position,
		Visited:   s.VisitedCells(),
		Score:     s.score,
		Steps:     s.steps,
		Elapsed:   s.elapsed,
		Finished:  s.finished,
		PathColor: s.pathColor,
	}
}

// Restore replaces the state with the snapshot's contents.
// The snapshot is validated first; on error the receiver is left untouched
// and the error is a PersistenceError of kind ErrCorrupt.
func (s *State) Restore(snap Snapshot) error {
	visited, err := validateSnapshot(snap)
	if err != nil {
		return err
	}

	s.grid = snap.Grid.Clone()
	s.position = snap.Position
	s.visited = visited
	s.score = snap.Score
	s.steps = snap.Steps
	s.elapsed = snap.Elapsed
	s.finished = snap.Finished
	s.pathColor = snap.PathColor
	return nil
}

// FromSnapshot builds a new state from a snapshot.
func FromSnapshot(snap Snapshot) (*State, error) {
	s := &State{}
	if err := s.Restore(snap); err != nil {
		return nil, err
	}
	return s, nil
}

// validateSnapshot checks the snapshot against its grid: counters match the
// visited cells, and every visited cell connects back to Start. It returns the
// visited set the snapshot describes.
func validateSnapshot(snap Snapshot) (mapset.Set[Coord], error) {
	g := snap.Grid
	if g == nil {
		return mapset.Set[Coord]{}, Corrupt("missing grid")
	}
	if err := g.Validate(); err != nil {
		return mapset.Set[Coord]{}, Corrupt("grid: %w", err)
	}
	if snap.Score < 0 || snap.Steps < 0 || snap.Elapsed < 0 {
		return mapset.Set[Coord]{}, Corrupt("negative counter")
	}

	visited := mapset.New[Coord]()
	sum := 0
	for _, c := range snap.Visited {
		if !g.InBounds(c) {
			return mapset.Set[Coord]{}, Corrupt("visited cell %s out of bounds", c)
		}
		if visited.Has(c) {
			return mapset.Set[Coord]{}, Corrupt("visited cell %s listed twice", c)
		}
		visited.Put(c)
		sum += g.Get(c).Score()
	}

	if !visited.Has(g.Start) {
		return mapset.Set[Coord]{}, Corrupt("start %s not visited", g.Start)
	}
	if !visited.Has(snap.Position) {
		return mapset.Set[Coord]{}, Corrupt("position %s not visited", snap.Position)
	}
	if n := reachable(g.Start, visited); n != visited.Size() {
		return mapset.Set[Coord]{}, Corrupt("%d of %d visited cells not connected to start", visited.Size()-n, visited.Size())
	}
	if sum != snap.Score {
		return mapset.Set[Coord]{}, Corrupt("score %d does not match visited sum %d", snap.Score, sum)
	}

	if snap.Finished {
		if snap.Position != g.End {
			return mapset.Set[Coord]{}, Corrupt("finished away from end")
		}
		if snap.Steps != visited.Size()-2 {
			return mapset.Set[Coord]{}, Corrupt("steps %d inconsistent with %d visited cells", snap.Steps, visited.Size())
		}
	} else {
		if visited.Has(g.End) {
			return mapset.Set[Coord]{}, Corrupt("end visited but game not finished")
		}
		if snap.Steps != visited.Size()-1 {
			return mapset.Set[Coord]{}, Corrupt("steps %d inconsistent with %d visited cells", snap.Steps, visited.Size())
		}
	}

	return visited, nil
}

// reachable counts the visited cells that can be walked to from start using
// orthogonal steps over visited cells only.
func reachable(start Coord, visited mapset.Set[Coord]) int {
	seen := mapset.New[Coord]()
	seen.Put(start)
	queue := []Coord{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range []Dir{DirUp, DirRight, DirDown, DirLeft} {
			next := c.Step(d)
			if visited.Has(next) && !seen.Has(next) {
				seen.Put(next)
				queue = append(queue, next)
			}
		}
	}
	return seen.Size()
}
