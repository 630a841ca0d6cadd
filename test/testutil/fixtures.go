// Package testutil provides fixtures for building sealed archives in
// tests: the same container layout and cryptography the mobile
// application uses, driven from known plaintext.
package testutil

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spass-tools/unseal/internal/crypto"
)

// LoginHeader is the header row that identifies the credential table.
const LoginHeader = "_id;origin_url;action_url;username_value;password_value;title;credential_memo"

// Entry is one plaintext credential used to build fixture archives.
type Entry struct {
	ID       string
	URL      string
	Username string
	Password string
	Title    string
	Notes    string
}

// B64 encodes a string the way table fields are stored.
func B64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// LoginTable renders entries as the plaintext credential table,
// bracketed by table markers the way real archives are.
func LoginTable(entries ...Entry) string {
	lines := []string{"preamble_table", "next_table", LoginHeader}
	for _, e := range entries {
		lines = append(lines, strings.Join([]string{
			e.ID, B64(e.URL), B64(""), B64(e.Username), B64(e.Password), B64(e.Title), B64(e.Notes),
		}, ";"))
	}
	lines = append(lines, "next_table", "trailing_table")
	return strings.Join(lines, "\n")
}

// SealArchive encrypts plaintext under the key derived from passphrase
// and salt, and wraps it in the base64 container.
func SealArchive(t *testing.T, passphrase string, salt, iv []byte, plaintext string) []byte {
	t.Helper()

	require.Len(t, salt, 20)
	require.Len(t, iv, 16)

	provider := crypto.NewProvider()
	key := provider.DeriveKey(passphrase, salt)
	defer crypto.Zero(key)

	ciphertext, err := provider.EncryptCBC([]byte(plaintext), key, iv)
	require.NoError(t, err)

	container := make([]byte, 0, len(salt)+len(iv)+len(ciphertext))
	container = append(container, salt...)
	container = append(container, iv...)
	container = append(container, ciphertext...)

	return []byte(base64.StdEncoding.EncodeToString(container))
}

// DefaultSalt returns a fixed non-zero salt for fixtures.
func DefaultSalt() []byte {
	salt := make([]byte, 20)
	for i := range salt {
		salt[i] = byte(0xA0 + i)
	}
	return salt
}

// DefaultIV returns a fixed non-zero IV for fixtures.
func DefaultIV() []byte {
	iv := make([]byte, 16)
	for i := range iv {
		iv[i] = byte(0x10 + i)
	}
	return iv
}
