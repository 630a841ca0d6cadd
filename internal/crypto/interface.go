package crypto

// Provider defines the cryptographic operations of the decode pipeline.
type Provider interface {
	// DeriveKey stretches a passphrase and salt into an AES-256 key.
	DeriveKey(passphrase string, salt []byte) []byte

	// DecryptCBC decrypts AES-256-CBC ciphertext and strips PKCS#7
	// padding.
	DecryptCBC(ciphertext, key, iv []byte) ([]byte, error)

	// EncryptCBC is the inverse of DecryptCBC: it pads the plaintext
	// and encrypts it. The archive format is decrypt-only in normal
	// use; this exists for round-trip verification.
	EncryptCBC(plaintext, key, iv []byte) ([]byte, error)
}
