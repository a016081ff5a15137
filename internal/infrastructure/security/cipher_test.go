package security

import (
	"testing"

	apperrors "github.com/greenplate/greenplate/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCipherKey = "0123456789abcdef"

func TestNewNameCipherKeyLength(t *testing.T) {
	_, err := NewNameCipher("short")
	assert.Error(t, err)

	_, err = NewNameCipher("this key is far too long for aes-128")
	assert.Error(t, err)

	c, err := NewNameCipher(testCipherKey)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestNameCipherRoundTrip(t *testing.T) {
	c, err := NewNameCipher(testCipherKey)
	require.NoError(t, err)

	names := []string{
		"Alice",
		"김철수",
		"테스트유저",
		"a",
		"exactly 16 bytes",
		"a much longer display name than a single cipher block",
	}

	for _, name := range names {
		encrypted := c.Encrypt(name)
		assert.NotEqual(t, name, encrypted)

		decrypted, err := c.Decrypt(encrypted)
		require.NoError(t, err, "round trip failed for %q", name)
		assert.Equal(t, name, decrypted)
	}
}

func TestNameCipherDeterministic(t *testing.T) {
	// No IV: identical plaintext must produce identical ciphertext so the
	// stored values stay stable across writes.
	c, err := NewNameCipher(testCipherKey)
	require.NoError(t, err)

	first := c.Encrypt("김철수")
	second := c.Encrypt("김철수")
	assert.Equal(t, first, second)
}

func TestNameCipherKeySensitivity(t *testing.T) {
	c1, err := NewNameCipher(testCipherKey)
	require.NoError(t, err)
	c2, err := NewNameCipher("fedcba9876543210")
	require.NoError(t, err)

	encrypted := c1.Encrypt("Alice")

	decrypted, err := c2.Decrypt(encrypted)
	if err == nil {
		// Wrong-key decryption may survive the padding check by chance,
		// but it must never reproduce the plaintext.
		assert.NotEqual(t, "Alice", decrypted)
	}
}

func TestNameCipherDecryptFailures(t *testing.T) {
	c, err := NewNameCipher(testCipherKey)
	require.NoError(t, err)

	cases := map[string]string{
		"not base64":           "!!!not-base64!!!",
		"empty":                "",
		"not a block multiple": "YWJj", // "abc"
	}

	for label, input := range cases {
		_, err := c.Decrypt(input)
		require.Error(t, err, label)
		assert.True(t, apperrors.Is(err, apperrors.CodeDecode), label)
	}
}
