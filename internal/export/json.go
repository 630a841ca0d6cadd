package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spass-tools/unseal/internal/models"
)

// JSONExporter writes records as an indented JSON array.
type JSONExporter struct{}

func (e *JSONExporter) Extension() string { return "json" }

func (e *JSONExporter) Export(records []models.Record, path string) error {
	if len(records) == 0 {
		return nil
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
