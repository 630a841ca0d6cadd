package export

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/spass-tools/unseal/internal/models"
)

// SQLiteExporter writes records into a credentials table in a SQLite
// database file, replacing any previous export in the same file.
type SQLiteExporter struct{}

func (e *SQLiteExporter) Extension() string { return "db" }

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS credentials (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    url TEXT,
    username TEXT,
    password TEXT,
    notes TEXT
);
DELETE FROM credentials;
`

func (e *SQLiteExporter) Export(records []models.Record, path string) error {
	if len(records) == 0 {
		return nil
	}

	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO credentials (title, url, username, password, notes) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		r := &records[i]
		if _, err := stmt.Exec(r.Title, r.URL, r.Username, r.Password, r.Notes); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return db.Close()
}
