// Package security provides the session token service and the reversible
// display-name cipher.
package security

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	"github.com/greenplate/greenplate/pkg/errors"
)

// NameCipher encrypts display names for at-rest storage and decrypts them
// at login. AES-128 in ECB mode with PKCS#7 padding: no IV, so the same
// plaintext always produces the same ciphertext under the same key. The
// legacy data was written this way and round-trip compatibility matters
// more than semantic security for this field.
type NameCipher struct {
	block cipher.Block
}

// NewNameCipher creates a cipher from a 16-byte key. The key comes from
// configuration; production startup refuses to run without one.
func NewNameCipher(key string) (*NameCipher, error) {
	if len(key) != aes.BlockSize {
		return nil, fmt.Errorf("name cipher key must be %d bytes, got %d", aes.BlockSize, len(key))
	}
	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return &NameCipher{block: block}, nil
}

// Encrypt returns the base64 text of the padded, block-encrypted plaintext.
func (c *NameCipher) Encrypt(plaintext string) string {
	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += aes.BlockSize {
		c.block.Encrypt(out[i:i+aes.BlockSize], padded[i:i+aes.BlockSize])
	}
	return base64.StdEncoding.EncodeToString(out)
}

// Decrypt reverses Encrypt. Any malformed input — bad base64, a length that
// is not a block multiple, invalid padding — yields a decode error; callers
// treat that as non-fatal and fall back to the raw stored value.
func (c *NameCipher) Decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errors.NewDecode("ciphertext is not valid base64", err)
	}
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return "", errors.NewDecode("ciphertext length is not a block multiple", nil)
	}

	out := make([]byte, len(data))
	for i := 0; i < len(data); i += aes.BlockSize {
		c.block.Decrypt(out[i:i+aes.BlockSize], data[i:i+aes.BlockSize])
	}

	unpadded, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", errors.NewDecode("invalid padding", err)
	}
	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padding)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padding)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, fmt.Errorf("invalid padding byte %d", padding)
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}
	return data[:len(data)-padding], nil
}
