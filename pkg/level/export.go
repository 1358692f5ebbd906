package level

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// FormatTag identifies the interchange file format. It is frozen: external
// tools key on this value.
const FormatTag = "tpt_level_v1"

// Document is the on-disk interchange envelope. Field names are part of the
// format contract and must not change.
type Document struct {
	Level      *Level `json:"level"`
	Config     Config `json:"config"`
	ExportDate string `json:"exportDate"`
	Format     string `json:"format"`
}

// Export serializes a level and its originating config into the tpt_level_v1
// JSON document.
func Export(lvl *Level, cfg Config) ([]byte, error) {
	doc := Document{
		Level:      lvl,
		Config:     cfg,
		ExportDate: time.Now().UTC().Format(time.RFC3339),
		Format:     FormatTag,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("level: marshal export: %w", err)
	}
	return data, nil
}

// ExportToFile writes the interchange document to path.
func ExportToFile(lvl *Level, cfg Config, path string) error {
	data, err := Export(lvl, cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("level: write %s: %w", path, err)
	}
	return nil
}
