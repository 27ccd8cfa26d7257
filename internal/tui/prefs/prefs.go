// Package prefs persists the filter state to a JSON file so it
// survives across sessions. Single file, human-readable, portable.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adanyl0v/todoboard/internal/filter"
)

const fileName = "filters.json"

// DefaultPath resolves to a fixed file under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "todoboard", fileName), nil
}

// LoadFilters reads the persisted filter state. A missing file or an
// unusable value falls back to the default state.
func LoadFilters(path string) (filter.State, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return filter.DefaultState(), nil
		}
		return filter.DefaultState(), fmt.Errorf("read file: %w", err)
	}

	var state filter.State
	if err := json.Unmarshal(b, &state); err != nil {
		return filter.DefaultState(), fmt.Errorf("json unmarshal: %w", err)
	}
	return sanitize(state), nil
}

func SaveFilters(path string, state filter.State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	b, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func sanitize(state filter.State) filter.State {
	switch state.Status {
	case filter.StatusAll, filter.StatusActive, filter.StatusCompleted:
	default:
		state.Status = filter.StatusAll
	}

	switch state.SortOrder {
	case filter.SortNewest, filter.SortOldest:
	default:
		state.SortOrder = filter.SortNewest
	}
	return state
}
