// Package parser turns decrypted archive plaintext into credential
// records.
//
// The plaintext holds several tables separated by the literal marker
// "next_table". Each table is semicolon-delimited CSV with a header
// row; the login table is recognized by its header prefix. Every field
// value is itself base64-encoded, with a fixed sentinel standing in
// for NULL.
package parser

import (
	"encoding/base64"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/spass-tools/unseal/internal/events"
	"github.com/spass-tools/unseal/internal/models"
)

const (
	// tableMarker separates tables in the plaintext.
	tableMarker = "next_table"

	// loginHeaderPrefix identifies the login-credential table among the
	// plaintext tables.
	loginHeaderPrefix = "_id;origin_url;action_url;"

	// nullSentinel is base64 for "&&&NULL&&&", the format's encoding of
	// an absent value.
	nullSentinel = "JiYmTlVMTCYmJg=="
)

// Column names of the login table that map into a Record.
const (
	colTitle    = "title"
	colURL      = "origin_url"
	colUsername = "username_value"
	colPassword = "password_value"
	colNotes    = "credential_memo"
)

// Policy decides what happens when a single row fails to decode.
type Policy int

const (
	// SkipInvalid collects the failure as a warning and keeps parsing.
	SkipInvalid Policy = iota

	// AbortOnInvalid fails the whole parse on the first bad row.
	AbortOnInvalid
)

// ParsePolicy converts a config string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "skip":
		return SkipInvalid, nil
	case "abort":
		return AbortOnInvalid, nil
	default:
		return 0, fmt.Errorf("unknown bad-record policy %q", s)
	}
}

var errMissingTitle = errors.New("missing mandatory title")

// Parser scans decrypted plaintext for the login table.
type Parser struct {
	policy Policy
	logger *events.Logger
}

// New creates a parser with the given bad-record policy.
func New(policy Policy, logger *events.Logger) *Parser {
	return &Parser{policy: policy, logger: logger}
}

// Parse materializes the login table into records, in row order.
//
// An archive with no login table parses to zero records; that is a
// valid result, not an error. Under SkipInvalid the returned warnings
// carry one RecordError per undecodable row; under AbortOnInvalid the
// first such row fails the parse.
func (p *Parser) Parse(plaintext []byte) ([]models.Record, []*models.RecordError, error) {
	text, err := decodeText(plaintext)
	if err != nil {
		return nil, nil, fmt.Errorf("decode plaintext: %w", err)
	}

	table, err := findLoginTable(text)
	if err != nil {
		if errors.Is(err, models.ErrNoLoginTable) {
			p.logger.Debug("no login table in plaintext, empty archive")
			return []models.Record{}, nil, nil
		}
		return nil, nil, err
	}

	return p.parseTable(table)
}

// decodeText converts plaintext bytes to a string, dropping a UTF-8
// BOM if the producing application left one behind.
func decodeText(plaintext []byte) (string, error) {
	decoded, err := unicode.UTF8BOM.NewDecoder().Bytes(plaintext)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// findLoginTable locates the login-credential table by content.
func findLoginTable(text string) (string, error) {
	for _, block := range strings.Split(text, tableMarker) {
		block = strings.TrimSpace(block)
		if strings.HasPrefix(block, loginHeaderPrefix) {
			return block, nil
		}
	}
	return "", models.ErrNoLoginTable
}

// parseTable reads the semicolon CSV rows of the login table.
func (p *Parser) parseTable(table string) ([]models.Record, []*models.RecordError, error) {
	reader := csv.NewReader(strings.NewReader(table))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read table header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	records := []models.Record{}
	var warnings []*models.RecordError
	row := 0

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			if recErr := p.reportRow(&warnings, row, "", err); recErr != nil {
				return nil, nil, recErr
			}
			continue
		}
		if blankRow(fields) {
			continue
		}

		record, recErr := p.decodeRow(columns, fields, row)
		if recErr != nil {
			if abortErr := p.report(&warnings, recErr); abortErr != nil {
				return nil, nil, abortErr
			}
			continue
		}
		records = append(records, *record)
	}

	return records, warnings, nil
}

// decodeRow decodes each mapped column of one table row.
func (p *Parser) decodeRow(columns map[string]int, fields []string, row int) (*models.Record, *models.RecordError) {
	get := func(col string) (string, error) {
		idx, ok := columns[col]
		if !ok || idx >= len(fields) {
			return "", nil
		}
		return decodeField(fields[idx])
	}

	record := &models.Record{}
	for _, bind := range []struct {
		col  string
		dest *string
	}{
		{colTitle, &record.Title},
		{colURL, &record.URL},
		{colUsername, &record.Username},
		{colPassword, &record.Password},
		{colNotes, &record.Notes},
	} {
		value, err := get(bind.col)
		if err != nil {
			return nil, &models.RecordError{Row: row, Field: bind.col, Err: err}
		}
		*bind.dest = value
	}

	if record.Title == "" {
		return nil, &models.RecordError{Row: row, Field: colTitle, Err: errMissingTitle}
	}

	record.URL = CleanURL(record.URL)
	return record, nil
}

// decodeField base64-decodes one field value. The null sentinel and
// empty values decode to the empty string.
func decodeField(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == nullSentinel {
		return "", nil
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}
	return string(decoded), nil
}

// reportRow wraps a raw row error into a RecordError and applies policy.
func (p *Parser) reportRow(warnings *[]*models.RecordError, row int, field string, err error) error {
	return p.report(warnings, &models.RecordError{Row: row, Field: field, Err: err})
}

// report applies the bad-record policy to one failure. It returns a
// non-nil error only under AbortOnInvalid.
func (p *Parser) report(warnings *[]*models.RecordError, recErr *models.RecordError) error {
	if p.policy == AbortOnInvalid {
		return fmt.Errorf("abort on invalid record: %w", recErr)
	}
	p.logger.WithField("row", recErr.Row).WithError(recErr.Err).Warn("Skipping undecodable record")
	*warnings = append(*warnings, recErr)
	return nil
}

func blankRow(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
