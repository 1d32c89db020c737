// Package crypto encrypts contact data before it is written to the database.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// PhoneCipher encrypts and decrypts phone numbers with AES-256-GCM. The
// ciphertext is base64 encoded with the nonce prepended, so a single column
// stores everything needed for decryption.
type PhoneCipher struct {
	aead cipher.AEAD
}

// ErrInvalidCiphertext is returned when the stored value cannot be decrypted.
var ErrInvalidCiphertext = errors.New("invalid ciphertext")

// NewPhoneCipher creates a cipher from a hex-encoded 32-byte key.
func NewPhoneCipher(hexKey string) (*PhoneCipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("phone key must be hex encoded: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("phone key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &PhoneCipher{aead: aead}, nil
}

// Encrypt encrypts a plaintext phone number. Empty input yields empty output.
func (c *PhoneCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func (c *PhoneCipher) Decrypt(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}

	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	if len(sealed) < c.aead.NonceSize() {
		return "", ErrInvalidCiphertext
	}

	nonce, ciphertext := sealed[:c.aead.NonceSize()], sealed[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	return string(plaintext), nil
}
