package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spass-tools/unseal/internal/models"
)

// CSVExporter writes records as comma-separated values with a header
// row. Quoting is handled by encoding/csv.
type CSVExporter struct{}

func (e *CSVExporter) Extension() string { return "csv" }

func (e *CSVExporter) Export(records []models.Record, path string) error {
	if len(records) == 0 {
		return nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(models.FieldNames); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range records {
		if err := writer.Write(records[i].Values()); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return file.Close()
}
