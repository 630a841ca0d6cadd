package export_test

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spass-tools/unseal/internal/export"
	"github.com/spass-tools/unseal/internal/models"
)

var sampleRecords = []models.Record{
	{
		Title:    "Example",
		URL:      "https://example.com",
		Username: "alice",
		Password: "hunter2",
		Notes:    "first note",
	},
	{
		Title:    "Tricky | Pipes",
		URL:      "https://other.org",
		Username: "bob",
		Password: `s3cret,"quoted"`,
		Notes:    "line one\nline two",
	},
}

func TestFor(t *testing.T) {
	for _, format := range []string{"csv", "txt", "md", "json", "sqlite"} {
		t.Run(format, func(t *testing.T) {
			exporter, err := export.For(format)
			require.NoError(t, err)
			assert.NotEmpty(t, exporter.Extension())
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		_, err := export.For("xml")
		assert.Error(t, err)
	})
}

func TestEmptyRecordsWriteNothing(t *testing.T) {
	for _, format := range []string{"csv", "txt", "md", "json", "sqlite"} {
		t.Run(format, func(t *testing.T) {
			exporter, err := export.For(format)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "out."+exporter.Extension())
			require.NoError(t, exporter.Export(nil, path))

			_, err = os.Stat(path)
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestCSVExporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, (&export.CSVExporter{}).Export(sampleRecords, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, models.FieldNames, rows[0])
	assert.Equal(t, "Example", rows[1][0])
	// encoding/csv quoting must survive a round-trip of commas, quotes,
	// and newlines.
	assert.Equal(t, `s3cret,"quoted"`, rows[2][3])
	assert.Equal(t, "line one\nline two", rows[2][4])
}

func TestTextExporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, (&export.TextExporter{}).Export(sampleRecords, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "--- Entry 1 ---")
	assert.Contains(t, text, "--- Entry 2 ---")
	assert.Contains(t, text, "Username: alice")
	assert.Contains(t, text, "Password: hunter2")
}

func TestMarkdownExporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, (&export.MarkdownExporter{}).Export(sampleRecords, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "| title | url | username | password | notes |", lines[0])
	// Pipes escaped, newlines flattened.
	assert.Contains(t, lines[3], `Tricky \| Pipes`)
	assert.Contains(t, lines[3], "line one line two")
}

func TestJSONExporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, (&export.JSONExporter{}).Export(sampleRecords, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []models.Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, sampleRecords, decoded)
}

func TestSQLiteExporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	require.NoError(t, (&export.SQLiteExporter{}).Export(sampleRecords, path))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query("SELECT title, url, username, password, notes FROM credentials ORDER BY id")
	require.NoError(t, err)
	defer rows.Close()

	var got []models.Record
	for rows.Next() {
		var r models.Record
		require.NoError(t, rows.Scan(&r.Title, &r.URL, &r.Username, &r.Password, &r.Notes))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, sampleRecords, got)

	// Re-export replaces the previous contents instead of appending.
	require.NoError(t, (&export.SQLiteExporter{}).Export(sampleRecords[:1], path))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM credentials").Scan(&count))
	assert.Equal(t, 1, count)
}
