// Package unseal composes the archive decode pipeline: split the
// container, derive the key, decrypt the ciphertext, parse the records.
package unseal

import (
	"fmt"

	"github.com/spass-tools/unseal/internal/archive"
	"github.com/spass-tools/unseal/internal/crypto"
	"github.com/spass-tools/unseal/internal/events"
	"github.com/spass-tools/unseal/internal/models"
	"github.com/spass-tools/unseal/internal/parser"
)

// Result is the outcome of one successful pipeline run. Warnings carry
// rows that failed to decode when the parser runs under SkipInvalid.
type Result struct {
	Records  []models.Record
	Warnings []*models.RecordError
}

// Service runs the decode pipeline. It holds no per-call state;
// concurrent Unseal calls are independent.
type Service struct {
	provider crypto.Provider
	parser   *parser.Parser
	logger   *events.Logger
}

// NewService creates the pipeline service.
func NewService(provider crypto.Provider, p *parser.Parser, logger *events.Logger) *Service {
	return &Service{
		provider: provider,
		parser:   p,
		logger:   logger,
	}
}

// Unseal decodes a sealed archive with the given passphrase.
//
// Stages run strictly in order and the first failure in the split,
// derive, or decrypt stage short-circuits with no partial result. Only
// the parse stage can return partial records, as warnings in the
// Result. The passphrase is used once for key derivation and the
// derived key is wiped before return.
func (s *Service) Unseal(raw []byte, passphrase string) (*Result, error) {
	sealed, err := archive.Split(raw)
	if err != nil {
		return nil, &models.DecodeError{Stage: "split", Err: err}
	}

	s.logger.WithFields(map[string]interface{}{
		"ciphertext_bytes": len(sealed.Ciphertext),
		"blocks":           sealed.Blocks(),
	}).Debug("Container split")

	key := s.provider.DeriveKey(passphrase, sealed.Salt)
	defer crypto.Zero(key)

	plaintext, err := s.provider.DecryptCBC(sealed.Ciphertext, key, sealed.IV)
	if err != nil {
		return nil, &models.DecodeError{Stage: "decrypt", Err: err}
	}

	records, warnings, err := s.parser.Parse(plaintext)
	if err != nil {
		return nil, &models.DecodeError{Stage: "parse", Err: err}
	}

	s.logger.WithFields(map[string]interface{}{
		"records":  len(records),
		"warnings": len(warnings),
	}).Info("Archive decoded")

	return &Result{Records: records, Warnings: warnings}, nil
}

// Describe reports archive geometry without decrypting. It needs no
// passphrase and never touches key material.
func (s *Service) Describe(raw []byte) (*archive.SealedArchive, error) {
	sealed, err := archive.Split(raw)
	if err != nil {
		return nil, &models.DecodeError{Stage: "split", Err: err}
	}
	if len(sealed.Ciphertext)%archive.BlockSize != 0 {
		return nil, fmt.Errorf("ciphertext is %d bytes: %w",
			len(sealed.Ciphertext), models.ErrInvalidCiphertextLength)
	}
	return sealed, nil
}
