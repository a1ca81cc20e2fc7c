package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// EncryptionKeySize is the AES-256 key length in bytes.
const EncryptionKeySize = 32

// ErrDecryption is returned for any envelope that cannot be opened.
var ErrDecryption = errors.New("decryption failed")

// SecretCipher encrypts single sensitive string fields with AES-256-GCM.
// Envelopes are base64(nonce || ciphertext) with a fresh nonce per call.
type SecretCipher struct {
	aead cipher.AEAD
}

// DecodeEncryptionKey decodes a base64-encoded 32-byte key, as produced by
// `openssl rand -base64 32`.
func DecodeEncryptionKey(keyBase64 string) ([]byte, error) {
	if keyBase64 == "" {
		return nil, errors.New("ENCRYPTION_KEY is not set")
	}

	keyBytes, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil {
		return nil, errors.New("ENCRYPTION_KEY must be base64-encoded")
	}

	if len(keyBytes) != EncryptionKeySize {
		return nil, fmt.Errorf("ENCRYPTION_KEY must decode to exactly %d bytes (256 bits)", EncryptionKeySize)
	}

	return keyBytes, nil
}

// NewSecretCipher builds a cipher bound to key.
func NewSecretCipher(key []byte) (*SecretCipher, error) {
	if len(key) != EncryptionKeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", EncryptionKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &SecretCipher{aead: gcm}, nil
}

// Encrypt seals plaintext and returns the encoded envelope.
func (c *SecretCipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens an envelope produced by Encrypt.
func (c *SecretCipher) Decrypt(envelope string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return "", ErrDecryption
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize+c.aead.Overhead() {
		return "", ErrDecryption
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryption
	}

	return string(plaintext), nil
}
