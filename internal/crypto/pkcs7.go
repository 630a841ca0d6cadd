package crypto

import (
	"crypto/subtle"
	"fmt"

	"github.com/spass-tools/unseal/internal/models"
)

// Pad appends PKCS#7 padding so len(result) is a multiple of blockSize.
// A full block of padding is added when the input is already aligned.
func Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// Unpad validates and strips PKCS#7 padding. The last byte p must be in
// 1..blockSize and the final p bytes must all equal p; anything else is
// models.ErrBadPadding.
func Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("padded data is %d bytes: %w", len(data), models.ErrBadPadding)
	}

	p := int(data[len(data)-1])
	if p == 0 || p > blockSize {
		return nil, fmt.Errorf("padding byte %d out of range: %w", p, models.ErrBadPadding)
	}

	// Check every padding byte; subtle.ConstantTimeByteEq keeps the
	// comparison data-independent even though CBC without a MAC offers
	// no real oracle protection.
	ok := 1
	for _, b := range data[len(data)-p:] {
		ok &= subtle.ConstantTimeByteEq(b, byte(p))
	}
	if ok != 1 {
		return nil, fmt.Errorf("inconsistent padding: %w", models.ErrBadPadding)
	}

	return data[:len(data)-p], nil
}
