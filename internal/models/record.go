package models

import (
	"fmt"
	"strings"
)

// Record is one decoded credential entry from a sealed archive.
//
// Field order is fixed by the archive format and preserved by every
// exporter: title, url, username, password, notes.
type Record struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Username string `json:"username"`
	Password string `json:"password"`
	Notes    string `json:"notes"`
}

// FieldNames lists record fields in export order.
var FieldNames = []string{"title", "url", "username", "password", "notes"}

// Values returns the field values in the same order as FieldNames.
func (r *Record) Values() []string {
	return []string{r.Title, r.URL, r.Username, r.Password, r.Notes}
}

// Validate checks that mandatory fields are present.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("record title is required")
	}
	return nil
}
