package core_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/pathmaster/internal/games/pathmaster/core"
)

// scriptedRNG replays a fixed sequence, then returns zeros.
type scriptedRNG struct {
	values []int
	calls  int
}

func (r *scriptedRNG) Intn(n int) int {
	r.calls++
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

func TestGeneratePlacementInvariants(t *testing.T) {
	for _, size := range []int{2, 3, 5, 7, 10} {
		for seed := int64(1); seed <= 200; seed++ {
			rng := rand.New(rand.NewSource(seed))
			g, err := core.Generate(size, rng)
			if err != nil {
				t.Fatalf("Generate(%d) seed %d failed: %v", size, seed, err)
			}

			if g.Size != size || len(g.Cells) != size*size {
				t.Fatalf("size %d: got %dx%d with %d cells", size, g.Size, g.Size, len(g.Cells))
			}
			if g.Start == g.End {
				t.Errorf("size %d seed %d: start == end at %v", size, seed, g.Start)
			}

			counts := g.CountByKind()
			if counts[core.CellStart] != 1 || counts[core.CellEnd] != 1 {
				t.Errorf("size %d seed %d: %d starts, %d ends", size, seed, counts[core.CellStart], counts[core.CellEnd])
			}
			if counts[core.CellNumber] != size*size-2 {
				t.Errorf("size %d seed %d: %d numbered cells", size, seed, counts[core.CellNumber])
			}

			for _, c := range g.AllCoords() {
				cell := g.Get(c)
				if cell.Kind == core.CellNumber && (cell.Value < 0 || cell.Value > 9) {
					t.Errorf("cell %v value %d out of range", c, cell.Value)
				}
			}

			if err := g.Validate(); err != nil {
				t.Errorf("generated grid failed validation: %v", err)
			}
		}
	}
}

func TestGenerateRejectsSmallSizes(t *testing.T) {
	for _, size := range []int{-3, 0, 1} {
		g, err := core.Generate(size, rand.New(rand.NewSource(1)))
		if err == nil {
			t.Fatalf("Generate(%d) should fail", size)
		}
		if g != nil {
			t.Errorf("Generate(%d) returned a grid alongside an error", size)
		}
		if !errors.Is(err, core.ErrInvalidGridSize) {
			t.Errorf("Generate(%d) error = %v, want ErrInvalidGridSize", size, err)
		}
		var cfgErr core.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("Generate(%d) error should be a ConfigError", size)
		}
	}
}

func TestGenerateResamplesEndOnCollision(t *testing.T) {
	// Start (1,1); End draws (1,1) twice before landing on (0,2).
	rng := &scriptedRNG{values: []int{1, 1, 1, 1, 1, 1, 0, 2}}
	g, err := core.Generate(3, rng)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if g.Start != core.C(1, 1) {
		t.Errorf("Start = %v, want (1,1)", g.Start)
	}
	if g.End != core.C(0, 2) {
		t.Errorf("End = %v, want (0,2)", g.End)
	}
	// 2 for start, 6 for end (3 attempts), 7 for the numbered cells
	if rng.calls != 15 {
		t.Errorf("rng calls = %d, want 15", rng.calls)
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	a := core.MustGenerate(7, rand.New(rand.NewSource(99)))
	b := core.MustGenerate(7, rand.New(rand.NewSource(99)))
	if !a.Equal(b) {
		t.Error("same seed should produce the same grid")
	}
}

func TestGridRowsRoundTrip(t *testing.T) {
	rows := []string{
		"S34",
		"012",
		"98E",
	}
	g, err := core.NewGridFromRows(rows)
	if err != nil {
		t.Fatalf("NewGridFromRows failed: %v", err)
	}
	if g.Start != core.C(0, 0) || g.End != core.C(2, 2) {
		t.Errorf("start/end = %v/%v", g.Start, g.End)
	}
	if got := g.Get(core.C(2, 0)); got != core.NumberCell(9) {
		t.Errorf("cell (2,0) = %+v, want 9", got)
	}

	back := g.Rows()
	for i := range rows {
		if back[i] != rows[i] {
			t.Errorf("row %d = %q, want %q", i, back[i], rows[i])
		}
	}
}

func TestNewGridFromRowsRejectsBadLayouts(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"no end", []string{"S1", "23"}},
		{"two starts", []string{"SS", "1E"}},
		{"ragged", []string{"S12", "3E", "456"}},
		{"bad rune", []string{"Sx", "1E"}},
		{"too small", []string{"S"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := core.NewGridFromRows(tc.rows); err == nil {
				t.Errorf("NewGridFromRows(%v) should fail", tc.rows)
			}
		})
	}
}
