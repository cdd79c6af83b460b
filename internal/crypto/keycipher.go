// Package crypto encrypts private-key material under the user's PIN.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"

	"medialane/internal/errs"
)

const (
	// scrypt parameters: interactive cost, the key is re-derived on every
	// signing request so derivation has to stay well under a second.
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 16
	nonceLen     = 12
)

// EncryptKey seals key material under the PIN. The result is an opaque
// base64 string: salt || nonce || ciphertext.
func EncryptKey(plaintext []byte, pin string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM([]byte(pin), salt)
	if err != nil {
		return "", err
	}

	sealed := aesGCM.Seal(nil, nonce, plaintext, nil)

	out := make([]byte, 0, saltLen+nonceLen+len(sealed))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, sealed...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// DecryptKey opens an EncryptKey ciphertext. An authentication failure is
// reported as errs.ErrWrongPin rather than a corrupt-ciphertext crash.
// Caller should zero the returned slice after use.
func DecryptKey(ciphertext, pin string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}
	if len(raw) < saltLen+nonceLen+1 {
		return nil, fmt.Errorf("ciphertext too short")
	}

	salt := raw[:saltLen]
	nonce := raw[saltLen : saltLen+nonceLen]
	sealed := raw[saltLen+nonceLen:]

	aesGCM, err := newGCM([]byte(pin), salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, errs.ErrWrongPin
	}
	return plaintext, nil
}

func newGCM(pin, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(pin, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
