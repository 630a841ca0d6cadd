// Package archive decodes the outer container of a sealed .spass
// export and slices it into its cryptographic components.
//
// The container is a single base64 text blob. The decoded buffer is
// laid out at fixed offsets:
//
//	salt[20] || iv[16] || ciphertext[k*16]
//
// The offsets are part of the format contract and are never inferred
// from content.
package archive

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/spass-tools/unseal/internal/models"
)

const (
	// SaltSize is the PBKDF2 salt length stored at the front of the
	// decoded container.
	SaltSize = 20

	// IVSize is the AES-CBC initialization vector length.
	IVSize = 16

	// BlockSize is the cipher block size; the ciphertext segment must
	// hold at least one block.
	BlockSize = 16

	// MinSize is the smallest decodable container: salt, IV, and a
	// single ciphertext block.
	MinSize = SaltSize + IVSize + BlockSize
)

// SealedArchive holds the split components of one container. It is
// created once by Split and never mutated.
type SealedArchive struct {
	Salt       []byte
	IV         []byte
	Ciphertext []byte
}

// Blocks returns the number of cipher blocks in the ciphertext.
func (a *SealedArchive) Blocks() int {
	return len(a.Ciphertext) / BlockSize
}

// Split decodes the outer base64 layer and slices the binary buffer
// into salt, IV, and ciphertext. It is a pure function.
func Split(raw []byte) (*SealedArchive, error) {
	text := string(bytes.TrimSpace(raw))
	if text == "" {
		return nil, fmt.Errorf("empty container: %w", models.ErrMalformedEncoding)
	}

	decoded, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("decode container: %w", models.ErrMalformedEncoding)
	}

	if len(decoded) < MinSize {
		return nil, fmt.Errorf("container is %d bytes, need at least %d: %w",
			len(decoded), MinSize, models.ErrTooShort)
	}

	return &SealedArchive{
		Salt:       decoded[:SaltSize],
		IV:         decoded[SaltSize : SaltSize+IVSize],
		Ciphertext: decoded[SaltSize+IVSize:],
	}, nil
}
