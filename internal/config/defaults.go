package config

import (
	_ "embed"
)

//go:embed defaults/pathmaster.yaml
var defaultPathMasterYAML []byte

// DefaultPathMasterConfig returns the default PathMaster configuration.
func DefaultPathMasterConfig() PathMasterConfig {
	return PathMasterConfig{
		Grid: GridConfig{
			Sizes:       []int{5, 7},
			DefaultSize: 5,
		},
		Palette: PaletteConfig{
			Path:  []string{"lemon", "pink", "aqua"},
			Board: []string{"default", "lavender", "peach", "sage"},
		},
		Saves: SavesConfig{
			Dir:       "~/.pathmaster/saves",
			Extension: ".game",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultPathMasterYAML
}
