package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configFile = "loop.yaml"

// LoadLoop loads the loop game configuration.
// Search order: customPath -> ~/.loopdice/configs/loop.yaml -> ./configs/loop.yaml -> embedded default
func LoadLoop(customPath string) (LoopConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return LoopConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decodeLoop(data)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", configFile)); ok {
		return c, nil
	}

	// Use embedded default YAML
	cfg, err := decodeLoop(defaultLoopYAML)
	if err != nil {
		return DefaultLoopConfig(), nil
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are
// skipped so a broken user file never blocks the embedded default.
func tryLoad(path string) (LoopConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LoopConfig{}, false
	}
	cfg, err := decodeLoop(data)
	if err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".loopdice", "configs", filename)
}
