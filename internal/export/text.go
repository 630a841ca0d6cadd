package export

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spass-tools/unseal/internal/models"
)

// TextExporter writes records as a human-readable plain-text listing.
type TextExporter struct{}

func (e *TextExporter) Extension() string { return "txt" }

func (e *TextExporter) Export(records []models.Record, path string) error {
	if len(records) == 0 {
		return nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for i := range records {
		r := &records[i]
		fmt.Fprintf(w, "--- Entry %d ---\n", i+1)
		fmt.Fprintf(w, "Title:    %s\n", r.Title)
		fmt.Fprintf(w, "URL:      %s\n", r.URL)
		fmt.Fprintf(w, "Username: %s\n", r.Username)
		fmt.Fprintf(w, "Password: %s\n", r.Password)
		fmt.Fprintf(w, "Notes:    %s\n\n", r.Notes)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush text: %w", err)
	}

	return file.Close()
}
