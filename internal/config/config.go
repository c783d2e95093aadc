// Package config provides YAML-based configuration loading for PathMaster:
// board sizes, color palettes and the save directory.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/pathmaster/internal/core"
	pmcore "github.com/vovakirdan/pathmaster/internal/games/pathmaster/core"
)

// ErrInvalidConfig is wrapped by every validation failure other than a bad
// grid size, which is reported as a pmcore.ConfigError.
var ErrInvalidConfig = errors.New("invalid config")

// PathMasterConfig contains all configuration for PathMaster.
type PathMasterConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Palette PaletteConfig `yaml:"palette"`
	Saves   SavesConfig   `yaml:"saves"`
}

// GridConfig defines the selectable board sizes.
type GridConfig struct {
	Sizes       []int `yaml:"sizes"`        // Cycled by the resize action
	DefaultSize int   `yaml:"default_size"` // Must be one of Sizes
}

// PaletteConfig names the colors used for highlighting.
type PaletteConfig struct {
	Path  []string `yaml:"path"`  // Visited-path colors, first is the default
	Board []string `yaml:"board"` // Unvisited cell backgrounds
}

// SavesConfig defines where save files live.
type SavesConfig struct {
	Dir       string `yaml:"dir"`
	Extension string `yaml:"extension"`
}

// Validate checks the config for values the game cannot run with.
func (c PathMasterConfig) Validate() error {
	if len(c.Grid.Sizes) == 0 {
		return fmt.Errorf("config: grid.sizes is empty: %w", ErrInvalidConfig)
	}
	for _, n := range c.Grid.Sizes {
		if n < pmcore.MinGridSize {
			return pmcore.ConfigError{
				Reason: pmcore.ErrInvalidGridSize,
				Detail: fmt.Sprintf("grid.sizes contains %d, need at least %d", n, pmcore.MinGridSize),
			}
		}
	}
	if !slices.Contains(c.Grid.Sizes, c.Grid.DefaultSize) {
		return fmt.Errorf("config: grid.default_size %d not in grid.sizes %v: %w",
			c.Grid.DefaultSize, c.Grid.Sizes, ErrInvalidConfig)
	}

	if err := validatePalette("palette.path", c.Palette.Path); err != nil {
		return err
	}
	if err := validatePalette("palette.board", c.Palette.Board); err != nil {
		return err
	}

	if c.Saves.Dir == "" {
		return fmt.Errorf("config: saves.dir is empty: %w", ErrInvalidConfig)
	}
	return nil
}

func validatePalette(field string, names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("config: %s is empty: %w", field, ErrInvalidConfig)
	}
	for _, name := range names {
		if _, ok := core.ParseColor(name); !ok {
			return fmt.Errorf("config: %s: unknown color %q: %w", field, name, ErrInvalidConfig)
		}
	}
	return nil
}

// PathColors returns the path palette as colors. Unknown names are skipped.
func (c PathMasterConfig) PathColors() []core.Color {
	return parseColors(c.Palette.Path)
}

// BoardColors returns the board palette as colors. Unknown names are skipped.
func (c PathMasterConfig) BoardColors() []core.Color {
	return parseColors(c.Palette.Board)
}

func parseColors(names []string) []core.Color {
	colors := make([]core.Color, 0, len(names))
	for _, name := range names {
		if color, ok := core.ParseColor(name); ok {
			colors = append(colors, color)
		}
	}
	return colors
}

// NextSize returns the size following current in Grid.Sizes, wrapping around.
// An unknown current size yields the first entry.
func (c PathMasterConfig) NextSize(current int) int {
	if len(c.Grid.Sizes) == 0 {
		return current
	}
	i := slices.Index(c.Grid.Sizes, current)
	return c.Grid.Sizes[(i+1)%len(c.Grid.Sizes)]
}
