package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the decode pipeline. Each one marks a boundary
// condition in the archive contract; none is retryable without new
// input from the caller.
var (
	// ErrMalformedEncoding means the outer base64 layer of the archive
	// could not be decoded.
	ErrMalformedEncoding = errors.New("malformed archive encoding")

	// ErrTooShort means the decoded buffer is smaller than
	// salt + IV + one cipher block.
	ErrTooShort = errors.New("archive too short")

	// ErrInvalidCiphertextLength means the ciphertext is not a whole
	// number of cipher blocks.
	ErrInvalidCiphertextLength = errors.New("ciphertext length is not a multiple of the block size")

	// ErrBadPadding means block decryption finished but the plaintext
	// padding failed validation. In practice this almost always means a
	// wrong passphrase or a corrupted archive. The check is heuristic:
	// the format carries no authentication tag, so a wrong key slips
	// past it with roughly 1/256 probability.
	ErrBadPadding = errors.New("invalid plaintext padding")

	// ErrNoLoginTable means the plaintext contains no recognizable
	// credential table. Exposed for callers that want to distinguish an
	// empty archive from a populated one; the parser treats it as zero
	// records, not a failure.
	ErrNoLoginTable = errors.New("no login table in plaintext")
)

// DecodeError wraps a pipeline failure with the stage it occurred in.
type DecodeError struct {
	Stage string // "split", "derive", "decrypt", "parse"
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RecordError reports a failure scoped to a single table row. The
// archive as a whole may still decode; policy decides whether these
// abort the parse or are collected as warnings.
type RecordError struct {
	Row   int    // 1-based data row within the login table
	Field string // field name, empty when the whole row is bad
	Err   error
}

func (e *RecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("record %d: field %q: %v", e.Row, e.Field, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Row, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
