package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the config file name looked up in the config directories.
const ConfigFile = "pathmaster.yaml"

// LoadPathMaster loads PathMaster configuration.
// Search order: customPath -> ~/.pathmaster/configs/pathmaster.yaml ->
// ./configs/pathmaster.yaml -> embedded default -> hard-coded default.
//
// Only a custom path reports read and parse errors; the other locations are
// skipped when missing or unparsable. The result is always validated.
func LoadPathMaster(customPath string) (PathMasterConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PathMasterConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return PathMasterConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return finish(cfg)
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return finish(cfg)
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return finish(cfg)
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultPathMasterYAML)
	if err != nil {
		return DefaultPathMasterConfig(), nil // Fallback to hardcoded if embed fails
	}
	return finish(cfg)
}

// parse decodes YAML over the hard-coded defaults, so omitted sections keep
// their default values.
func parse(data []byte) (PathMasterConfig, error) {
	cfg := DefaultPathMasterConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PathMasterConfig{}, err
	}
	return cfg, nil
}

func finish(cfg PathMasterConfig) (PathMasterConfig, error) {
	cfg.Saves.Dir = ExpandPath(cfg.Saves.Dir)
	if err := cfg.Validate(); err != nil {
		return PathMasterConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pathmaster", "configs", filename)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
