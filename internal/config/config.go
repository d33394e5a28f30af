// Package config handles fvr's persistent files: preferences, session
// state, and credentials. Everything lives under the user config dir
// (~/.config/fvr on Linux) as small TOML files written atomically.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const appDirName = "fvr"

// Config holds optional user preferences from config.toml.
type Config struct {
	// Output is the default output format: "text" (default) or "json".
	Output string `toml:"output,omitempty"`

	// UI holds CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig holds CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output. Supported values
	// are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent,omitempty"`
}

// Dir returns the fvr config directory, creating nothing.
func Dir() (string, error) {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, appDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(home, ".config", appDirName), nil
}

// DefaultPath returns the default config.toml path.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads config.toml from path. A missing file yields a zero Config.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}
