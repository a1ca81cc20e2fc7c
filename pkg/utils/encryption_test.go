package utils

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCipher(t *testing.T, fill byte) *SecretCipher {
	t.Helper()
	c, err := NewSecretCipher(bytes.Repeat([]byte{fill}, EncryptionKeySize))
	require.NoError(t, err)
	return c
}

func TestSecretCipher_RoundTrip(t *testing.T) {
	c := newTestCipher(t, 0x42)

	for _, s := range []string{"", "123456789012", "ünïcødé ✓", string(bytes.Repeat([]byte("x"), 4096))} {
		envelope, err := c.Encrypt(s)
		require.NoError(t, err)
		assert.NotContains(t, envelope, "123456789012")

		plain, err := c.Decrypt(envelope)
		require.NoError(t, err)
		assert.Equal(t, s, plain)
	}
}

func TestSecretCipher_FreshNoncePerCall(t *testing.T) {
	c := newTestCipher(t, 0x42)

	first, err := c.Encrypt("123456789012")
	require.NoError(t, err)
	second, err := c.Encrypt("123456789012")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSecretCipher_WrongKey(t *testing.T) {
	envelope, err := newTestCipher(t, 0x01).Encrypt("123456789012")
	require.NoError(t, err)

	_, err = newTestCipher(t, 0x02).Decrypt(envelope)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestSecretCipher_MalformedEnvelope(t *testing.T) {
	c := newTestCipher(t, 0x42)

	envelope, err := c.Encrypt("123456789012")
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(envelope)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0x01

	cases := map[string]string{
		"not base64": "%%%not-base64%%%",
		"too short":  base64.StdEncoding.EncodeToString([]byte("short")),
		"tampered":   base64.StdEncoding.EncodeToString(raw),
		"empty":      "",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.Decrypt(in)
			assert.ErrorIs(t, err, ErrDecryption)
		})
	}
}

func TestNewSecretCipher_RejectsBadKeyLength(t *testing.T) {
	_, err := NewSecretCipher([]byte("too-short"))
	assert.Error(t, err)
}

func TestDecodeEncryptionKey(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, EncryptionKeySize))

	key, err := DecodeEncryptionKey(valid)
	require.NoError(t, err)
	assert.Len(t, key, EncryptionKeySize)

	_, err = DecodeEncryptionKey("")
	assert.Error(t, err)

	_, err = DecodeEncryptionKey("not base64!")
	assert.Error(t, err)

	_, err = DecodeEncryptionKey(base64.StdEncoding.EncodeToString([]byte("sixteen-byte-key")))
	assert.Error(t, err)
}
