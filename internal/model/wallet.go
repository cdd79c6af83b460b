package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Wallet is a platform-controlled Starknet account. The private key is
// stored only as ciphertext encrypted under the user's PIN.
type Wallet struct {
	UserID              uuid.UUID `json:"-"`
	PublicKey           string    `json:"publicKey"`
	EncryptedPrivateKey string    `json:"-"`
	CreatedAt           time.Time `json:"createdAt"`
}

// SessionKey is a short-lived delegated keypair registered against the
// wallet contract. Expiry is absolute: the key is usable strictly before
// ValidUntil, never renewed in place.
type SessionKey struct {
	UserID              uuid.UUID `json:"-"`
	PublicKey           string    `json:"publicKey"`
	EncryptedPrivateKey string    `json:"-"`
	ValidUntil          int64     `json:"validUntil"` // epoch seconds
	MaxCalls            int       `json:"maxCalls"`
	AllowedEntrypoints  []string  `json:"allowedEntrypoints"` // empty = unrestricted
	CreatedAt           time.Time `json:"createdAt"`
}

// Active reports whether the session key is usable for signing at the given instant.
func (s *SessionKey) Active(now time.Time) bool {
	if s == nil {
		return false
	}
	return now.Unix() < s.ValidUntil
}
