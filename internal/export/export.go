// Package export writes decoded credential records to the supported
// output formats. Exporters preserve record order and render every
// field; format-specific escaping lives here, never in the parser.
package export

import (
	"fmt"

	"github.com/spass-tools/unseal/internal/models"
)

// Exporter writes records to a destination path.
type Exporter interface {
	// Export writes the records. An empty record slice writes nothing
	// and creates no file.
	Export(records []models.Record, path string) error

	// Extension returns the file extension for the format, without dot.
	Extension() string
}

// For returns the exporter for a format name.
func For(format string) (Exporter, error) {
	switch format {
	case "csv":
		return &CSVExporter{}, nil
	case "txt":
		return &TextExporter{}, nil
	case "md":
		return &MarkdownExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "sqlite":
		return &SQLiteExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}
