package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileAdapter persists preferences as a JSON file under the user's home
// directory, the terminal analog of browser local storage.
type FileAdapter struct {
	path string
}

// NewFileAdapter creates a file-backed persistence adapter
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

// Load reads the preference file. A missing file is not an error.
func (a *FileAdapter) Load() (*Data, error) {
	raw, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}
	return &data, nil
}

// Save writes the preference file, creating parent directories as needed.
func (a *FileAdapter) Save(data *Data) error {
	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	if err := os.WriteFile(a.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}
