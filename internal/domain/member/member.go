// Package member contains the core domain logic for member accounts.
package member

import (
	"bytes"
	"encoding/hex"
	"strings"
	"time"
)

// Member represents a registered account. The display name is held in its
// encrypted at-rest form; decryption happens at the application layer where
// the cipher lives. The password credential is the client-computed SHA-512
// digest, stored in one of two legacy encodings (raw digest bytes or the
// hex text of the digest).
type Member struct {
	id            string
	credential    []byte
	encryptedName string
	tel           string
	isAdmin       bool
	deleted       bool
	createdAt     time.Time
}

// New creates a member at signup. The credential arrives as the client's
// hex digest and is stored as-is in text encoding.
func New(id string, credentialHex, encryptedName, tel string) *Member {
	return &Member{
		id:            id,
		credential:    []byte(credentialHex),
		encryptedName: encryptedName,
		tel:           tel,
		createdAt:     time.Now(),
	}
}

// Reconstruct rebuilds a member from its persisted representation.
func Reconstruct(id string, credential []byte, encryptedName, tel string, isAdmin, deleted bool, createdAt time.Time) *Member {
	return &Member{
		id:            id,
		credential:    credential,
		encryptedName: encryptedName,
		tel:           tel,
		isAdmin:       isAdmin,
		deleted:       deleted,
		createdAt:     createdAt,
	}
}

// ID returns the member's unique handle
func (m *Member) ID() string { return m.id }

// Credential returns the stored password credential bytes
func (m *Member) Credential() []byte { return m.credential }

// EncryptedName returns the display name in its at-rest encrypted form
func (m *Member) EncryptedName() string { return m.encryptedName }

// Tel returns the member's phone contact
func (m *Member) Tel() string { return m.tel }

// IsAdmin reports whether the member may mutate recipes and ingredients
func (m *Member) IsAdmin() bool { return m.isAdmin }

// IsDeleted reports the soft-delete flag
func (m *Member) IsDeleted() bool { return m.deleted }

// CreatedAt returns the signup time
func (m *Member) CreatedAt() time.Time { return m.createdAt }

// VerifyCredential compares a client-submitted hex digest against the
// stored credential. Two storage encodings are tolerated: the stored value
// as the raw digest bytes, or as hex text compared case-insensitively.
func (m *Member) VerifyCredential(submittedHex string) bool {
	if raw, err := hex.DecodeString(submittedHex); err == nil && bytes.Equal(m.credential, raw) {
		return true
	}
	return strings.EqualFold(string(m.credential), submittedHex)
}
