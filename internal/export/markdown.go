package export

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spass-tools/unseal/internal/models"
)

// MarkdownExporter writes records as a Markdown table. Pipe characters
// and newlines inside field values are escaped so they cannot break
// the table structure.
type MarkdownExporter struct{}

func (e *MarkdownExporter) Extension() string { return "md" }

func (e *MarkdownExporter) Export(records []models.Record, path string) error {
	if len(records) == 0 {
		return nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "| %s |\n", strings.Join(models.FieldNames, " | "))
	fmt.Fprintf(w, "|%s\n", strings.Repeat("------|", len(models.FieldNames)))

	for i := range records {
		values := records[i].Values()
		for j, v := range values {
			values[j] = escapeCell(v)
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush markdown: %w", err)
	}

	return file.Close()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
