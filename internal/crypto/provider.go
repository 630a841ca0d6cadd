// Package crypto implements the key derivation and block decryption
// used by Samsung Pass sealed archives: PBKDF2-HMAC-SHA256 into
// AES-256-CBC with PKCS#7 padding.
//
// The format carries no authentication tag. A padding failure is the
// only detectable symptom of a wrong passphrase, and it is a heuristic
// signal: random final-block bytes pass the check with roughly 1/256
// probability.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/spass-tools/unseal/internal/models"
)

const (
	// KeySize is the AES-256 key length.
	KeySize = 32

	// IVSize is the CBC initialization vector length.
	IVSize = aes.BlockSize

	// KDFIterations is the PBKDF2 iteration count. Fixed format
	// constant; changing it silently derives a wrong key with no
	// distinguishing error.
	KDFIterations = 70000
)

// Errors for caller-supplied parameters that violate the format
// contract before any cipher work happens.
var (
	ErrInvalidKey = errors.New("invalid key size")
	ErrInvalidIV  = errors.New("invalid IV size")
)

// CBCProvider implements Provider for the sealed-archive format.
type CBCProvider struct {
	iterations int
}

// NewProvider creates a provider with the format's fixed parameters.
func NewProvider() Provider {
	return &CBCProvider{iterations: KDFIterations}
}

// DeriveKey derives the AES-256 key from the passphrase and salt using
// PBKDF2-HMAC-SHA256. The passphrase is taken as opaque UTF-8 bytes;
// deterministic, no I/O.
func (p *CBCProvider) DeriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, p.iterations, KeySize, sha256.New)
}

// DecryptCBC decrypts the ciphertext with AES-256-CBC and removes the
// PKCS#7 padding. The ciphertext must be a non-zero whole number of
// blocks.
func (p *CBCProvider) DecryptCBC(ciphertext, key, iv []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	if len(iv) != IVSize {
		return nil, ErrInvalidIV
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("ciphertext is %d bytes: %w",
			len(ciphertext), models.ErrInvalidCiphertextLength)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := Unpad(padded, aes.BlockSize)
	if err != nil {
		return nil, err
	}

	return plaintext, nil
}

// EncryptCBC pads the plaintext to the block size and encrypts it with
// AES-256-CBC. Used by round-trip tests and fixtures.
func (p *CBCProvider) EncryptCBC(plaintext, key, iv []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	if len(iv) != IVSize {
		return nil, ErrInvalidIV
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	padded := Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return ciphertext, nil
}

// Zero overwrites b. Derived keys are wiped with this as soon as
// decryption finishes.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
