// Package session persists the two UI settings that survive restarts:
// the sort key and hidden-file visibility. The engine never touches this
// store; it receives the values as plain inputs.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Session holds the persisted UI state.
type Session struct {
	SortBy     string `yaml:"sort_by"`
	ShowHidden bool   `yaml:"show_hidden"`
}

// Load reads the session file at path. A missing file yields the given
// defaults rather than an error; a corrupt file is an error.
func Load(path string, defaults Session) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return defaults, fmt.Errorf("reading session file: %w", err)
	}

	s := defaults
	if err := yaml.Unmarshal(data, &s); err != nil {
		return defaults, fmt.Errorf("parsing session file: %w", err)
	}
	return s, nil
}

// Save writes the session to path, creating parent directories as needed.
func (s Session) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}
