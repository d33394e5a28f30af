package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/fvr-cli/fvr/internal/atomicfile"
)

// State is the mutable session state: which organization and board commands
// operate on by default. Commands read it once at startup and thread the
// values explicitly into resolver calls.
type State struct {
	OrganizationID string `toml:"organization_id,omitempty"`
	BoardID        string `toml:"board_id,omitempty"`
}

// DefaultStatePath returns the default state.toml path.
func DefaultStatePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.toml"), nil
}

// LoadState loads state.toml from path. A missing file yields a zero State.
func LoadState(path string) (*State, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &State{}, nil
	}

	var state State
	if _, err := toml.DecodeFile(path, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state %s: %w", path, err)
	}
	state.OrganizationID = strings.TrimSpace(state.OrganizationID)
	state.BoardID = strings.TrimSpace(state.BoardID)
	return &state, nil
}

// SaveState writes state.toml atomically, creating the directory if needed.
func SaveState(path string, state *State) error {
	if state == nil {
		state = &State{}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(state); err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write state %s: %w", path, err)
	}
	return nil
}
