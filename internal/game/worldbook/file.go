package worldbook

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wastelandrpg/wasteland/internal/storage/fsatomic"
)

// SaveToFile writes the worldbook to path as pretty-printed JSON via an
// atomic temp-and-rename so a crash never leaves a torn file.
func (w *Worldbook) SaveToFile(path string) error {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return fmt.Errorf("worldbook: encode: %w", err)
	}
	if err := fsatomic.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("worldbook: write %s: %w", path, err)
	}
	return nil
}

// LoadFromFile reads a worldbook from path. A missing file yields an empty
// worldbook; malformed JSON is an error.
func LoadFromFile(path string) (*Worldbook, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("worldbook: read %s: %w", path, err)
	}
	w := New()
	if err := json.Unmarshal(data, w); err != nil {
		return nil, fmt.Errorf("worldbook: decode %s: %w", path, err)
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("worldbook: decode %s: %w", path, err)
	}
	w.EnsureMaps()
	return w, nil
}
