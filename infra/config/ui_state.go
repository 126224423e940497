package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// UIState is what the search form remembers between sessions.
// The credential is never stored.
type UIState struct {
	Term  string `json:"term,omitempty"`
	Count int    `json:"count,omitempty"`
}

// LoadUIState reads the state file. A missing file yields an empty state.
func LoadUIState(path string) (UIState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return UIState{}, nil
	}
	if err != nil {
		return UIState{}, fmt.Errorf("reading ui state: %w", err)
	}
	var st UIState
	if err := json.Unmarshal(data, &st); err != nil {
		return UIState{}, fmt.Errorf("parsing ui state %s: %w", path, err)
	}
	return st, nil
}

// SaveUIState writes the state file, creating its directory.
func SaveUIState(path string, st UIState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating ui state dir: %w", err)
	}
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing ui state: %w", err)
	}
	return nil
}
