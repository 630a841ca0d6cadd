package archive_test

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spass-tools/unseal/internal/archive"
	"github.com/spass-tools/unseal/internal/models"
)

// buildContainer base64-encodes a raw buffer of the given size with a
// recognizable byte pattern.
func buildContainer(t *testing.T, size int) ([]byte, []byte) {
	t.Helper()

	raw := make([]byte, size)
	for i := range raw {
		raw[i] = byte(i)
	}
	return []byte(base64.StdEncoding.EncodeToString(raw)), raw
}

func TestSplit(t *testing.T) {
	t.Run("slices components at fixed offsets", func(t *testing.T) {
		encoded, raw := buildContainer(t, archive.MinSize+32)

		sealed, err := archive.Split(encoded)
		require.NoError(t, err)

		assert.Equal(t, raw[:20], sealed.Salt)
		assert.Equal(t, raw[20:36], sealed.IV)
		assert.Equal(t, raw[36:], sealed.Ciphertext)
		assert.Equal(t, 3, sealed.Blocks())
	})

	t.Run("minimum viable size is exactly one block", func(t *testing.T) {
		encoded, _ := buildContainer(t, archive.MinSize)

		sealed, err := archive.Split(encoded)
		require.NoError(t, err)
		assert.Len(t, sealed.Ciphertext, archive.BlockSize)
	})

	t.Run("one byte below minimum is too short", func(t *testing.T) {
		encoded, _ := buildContainer(t, archive.MinSize-1)

		_, err := archive.Split(encoded)
		assert.ErrorIs(t, err, models.ErrTooShort)
	})

	t.Run("valid base64 below minimum never reaches decryption", func(t *testing.T) {
		encoded := []byte(base64.StdEncoding.EncodeToString([]byte("tiny")))

		_, err := archive.Split(encoded)
		assert.ErrorIs(t, err, models.ErrTooShort)
	})

	t.Run("invalid base64 is malformed encoding", func(t *testing.T) {
		_, err := archive.Split([]byte("not-valid-base64!!!"))
		assert.ErrorIs(t, err, models.ErrMalformedEncoding)
	})

	t.Run("empty input is malformed encoding", func(t *testing.T) {
		_, err := archive.Split([]byte("  \n\t "))
		assert.ErrorIs(t, err, models.ErrMalformedEncoding)
	})

	t.Run("tolerates surrounding whitespace", func(t *testing.T) {
		encoded, raw := buildContainer(t, archive.MinSize)
		padded := append([]byte("\n  "), encoded...)
		padded = append(padded, []byte(" \r\n")...)

		sealed, err := archive.Split(padded)
		require.NoError(t, err)
		assert.Equal(t, raw[:20], sealed.Salt)
	})

	t.Run("does not mutate its input", func(t *testing.T) {
		encoded, _ := buildContainer(t, archive.MinSize)
		original := bytes.Clone(encoded)

		_, err := archive.Split(encoded)
		require.NoError(t, err)
		assert.Equal(t, original, encoded)
	})
}
