package member

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func digestHex(password string) string {
	sum := sha512.Sum512([]byte(password))
	return hex.EncodeToString(sum[:])
}

func TestVerifyCredentialHexTextEncoding(t *testing.T) {
	submitted := digestHex("secret")
	m := Reconstruct("alice", []byte(submitted), "", "", false, false, time.Now())

	assert.True(t, m.VerifyCredential(submitted))
	assert.True(t, m.VerifyCredential(strings.ToUpper(submitted)), "hex comparison is case-insensitive")
	assert.False(t, m.VerifyCredential(digestHex("wrong")))
}

func TestVerifyCredentialRawBinaryEncoding(t *testing.T) {
	sum := sha512.Sum512([]byte("secret"))
	m := Reconstruct("alice", sum[:], "", "", false, false, time.Now())

	assert.True(t, m.VerifyCredential(hex.EncodeToString(sum[:])))
	assert.False(t, m.VerifyCredential(digestHex("wrong")))
}

func TestVerifyCredentialRejectsNonHexSubmission(t *testing.T) {
	m := Reconstruct("alice", []byte(digestHex("secret")), "", "", false, false, time.Now())

	assert.False(t, m.VerifyCredential("not-a-digest"))
	assert.False(t, m.VerifyCredential(""))
}

func TestNewStoresCredentialAsText(t *testing.T) {
	submitted := digestHex("secret")
	m := New("alice", submitted, "encrypted-name", "010-1234-5678")

	assert.Equal(t, "alice", m.ID())
	assert.Equal(t, []byte(submitted), m.Credential())
	assert.Equal(t, "encrypted-name", m.EncryptedName())
	assert.Equal(t, "010-1234-5678", m.Tel())
	assert.False(t, m.IsAdmin())
	assert.False(t, m.IsDeleted())
	assert.True(t, m.VerifyCredential(submitted))
}
