// Package savefile reads and writes PathMaster save files.
// This package depends on core but core does not depend on savefile.
package savefile

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vovakirdan/pathmaster/internal/games/pathmaster/core"
	"gopkg.in/yaml.v3"
)

// FormatVersion is written into every save and checked on decode.
const FormatVersion = 1

// yamlSave is the on-disk layout of a save file.
type yamlSave struct {
	Version int       `yaml:"version"`
	ID      string    `yaml:"id"`
	SavedAt time.Time `yaml:"saved_at"`
	Grid    yamlGrid  `yaml:"grid"`
	State   yamlState `yaml:"state"`
}

type yamlGrid struct {
	Size  int       `yaml:"size"`
	Rows  []string  `yaml:"rows"` // 'S', 'E' or a digit per cell
	Start yamlCoord `yaml:"start"`
	End   yamlCoord `yaml:"end"`
}

type yamlCoord struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

type yamlState struct {
	Position  yamlCoord   `yaml:"position"`
	Visited   []yamlCoord `yaml:"visited,flow"`
	Score     int         `yaml:"score"`
	Steps     int         `yaml:"steps"`
	Elapsed   int         `yaml:"elapsed_seconds"`
	Finished  bool        `yaml:"finished"`
	PathColor string      `yaml:"path_color,omitempty"`
}

// Save is a decoded save file.
type Save struct {
	ID       string
	SavedAt  time.Time
	Snapshot core.Snapshot
	Path     string // Set when read from disk
}

// New wraps a snapshot in a fresh save with a new ID.
func New(snap core.Snapshot) Save {
	return Save{
		ID:       uuid.NewString(),
		SavedAt:  time.Now().UTC().Truncate(time.Second),
		Snapshot: snap,
	}
}

// Encode serializes a save to YAML.
func Encode(s Save) ([]byte, error) {
	snap := s.Snapshot
	if snap.Grid == nil {
		return nil, fmt.Errorf("savefile: encode: snapshot has no grid")
	}

	visited := make([]yamlCoord, len(snap.Visited))
	for i, c := range snap.Visited {
		visited[i] = toYAML(c)
	}

	ys := yamlSave{
		Version: FormatVersion,
		ID:      s.ID,
		SavedAt: s.SavedAt,
		Grid: yamlGrid{
			Size:  snap.Grid.Size,
			Rows:  snap.Grid.Rows(),
			Start: toYAML(snap.Grid.Start),
			End:   toYAML(snap.Grid.End),
		},
		State: yamlState{
			Position:  toYAML(snap.Position),
			Visited:   visited,
			Score:     snap.Score,
			Steps:     snap.Steps,
			Elapsed:   snap.Elapsed,
			Finished:  snap.Finished,
			PathColor: snap.PathColor,
		},
	}

	data, err := yaml.Marshal(&ys)
	if err != nil {
		return nil, fmt.Errorf("savefile: encode: %w", err)
	}
	return data, nil
}

// Decode parses and validates a save. Every failure is a
// core.PersistenceError of kind core.ErrCorrupt.
func Decode(data []byte) (Save, error) {
	var ys yamlSave
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Save{}, core.Corrupt("yaml unmarshal: %w", err)
	}

	if ys.Version != FormatVersion {
		return Save{}, core.Corrupt("unsupported version %d", ys.Version)
	}
	if _, err := uuid.Parse(ys.ID); err != nil {
		return Save{}, core.Corrupt("bad id %q: %w", ys.ID, err)
	}

	grid, err := core.NewGridFromRows(ys.Grid.Rows)
	if err != nil {
		return Save{}, core.Corrupt("grid: %w", err)
	}
	if grid.Size != ys.Grid.Size {
		return Save{}, core.Corrupt("grid size %d does not match %d rows", ys.Grid.Size, grid.Size)
	}
	if grid.Start != fromYAML(ys.Grid.Start) || grid.End != fromYAML(ys.Grid.End) {
		return Save{}, core.Corrupt("start/end do not match grid rows")
	}

	visited := make([]core.Coord, len(ys.State.Visited))
	for i, c := range ys.State.Visited {
		visited[i] = fromYAML(c)
	}

	snap := core.Snapshot{
		Grid:      grid,
		Position:  fromYAML(ys.State.Position),
		Visited:   visited,
		Score:     ys.State.Score,
		Steps:     ys.State.Steps,
		Elapsed:   ys.State.Elapsed,
		Finished:  ys.State.Finished,
		PathColor: ys.State.PathColor,
	}

	// Reject counters and paths that do not fit the grid.
	if _, err := core.FromSnapshot(snap); err != nil {
		return Save{}, err
	}

	return Save{
		ID:       ys.ID,
		SavedAt:  ys.SavedAt,
		Snapshot: snap,
	}, nil
}

func toYAML(c core.Coord) yamlCoord {
	return yamlCoord{Row: c.Row, Col: c.Col}
}

func fromYAML(c yamlCoord) core.Coord {
	return core.C(c.Row, c.Col)
}
