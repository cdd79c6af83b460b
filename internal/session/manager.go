// Package session manages the delegated signing key lifecycle: create and
// register a session key once, sign with it until it expires, fall back to
// the owner key otherwise.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"medialane/internal/crypto"
	"medialane/internal/errs"
	"medialane/internal/model"
	"medialane/internal/relay"
	"medialane/internal/repository"
	"medialane/internal/starknet"
)

// RelayClient is the slice of the relay used for session registration.
type RelayClient interface {
	AddSessionKey(ctx context.Context, bearer, encryptKey string, wallet relay.Wallet, cfg relay.SessionConfig) (string, error)
}

// TokenSource mints bearer tokens for relay calls.
type TokenSource interface {
	Token(ctx context.Context, userID uuid.UUID) (string, error)
}

// Manager owns session key lifecycle and signer resolution.
type Manager struct {
	wallets  repository.WalletRepository
	sessions repository.SessionRepository
	relay    RelayClient
	tokens   TokenSource
	duration time.Duration
	maxCalls int
	now      func() time.Time
	logger   *zap.Logger
}

// NewManager constructs a session manager.
func NewManager(
	wallets repository.WalletRepository,
	sessions repository.SessionRepository,
	relayClient RelayClient,
	tokens TokenSource,
	duration time.Duration,
	maxCalls int,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		wallets:  wallets,
		sessions: sessions,
		relay:    relayClient,
		tokens:   tokens,
		duration: duration,
		maxCalls: maxCalls,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock overrides the manager's clock (tests only).
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// HasActiveSession reports whether a persisted session key exists whose
// expiry is strictly in the future.
func (m *Manager) HasActiveSession(ctx context.Context, userID uuid.UUID) bool {
	s, err := m.sessions.Get(ctx, userID)
	if err != nil {
		return false
	}
	return s.Active(m.now())
}

// SetupSession generates a fresh session keypair, registers its public key
// against the wallet contract on-chain, and persists the record. This is
// the one operation that is always authorized by the owner key: it
// establishes trust rather than spending it.
func (m *Manager) SetupSession(ctx context.Context, userID uuid.UUID, pin string) (*model.SessionKey, error) {
	wallet, err := m.wallets.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	bearer, err := m.tokens.Token(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrNotAuthenticated, err)
	}

	pair, err := starknet.GenerateKeypair()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session keypair: %w", err)
	}
	encrypted, err := crypto.EncryptKey([]byte(pair.PrivateKey), pin)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt session key: %w", err)
	}

	sk := &model.SessionKey{
		UserID:              userID,
		PublicKey:           pair.PublicKey,
		EncryptedPrivateKey: encrypted,
		ValidUntil:          m.now().Add(m.duration).Unix(),
		MaxCalls:            m.maxCalls,
		AllowedEntrypoints:  []string{}, // all entrypoints allowed
	}

	txHash, err := m.relay.AddSessionKey(ctx, bearer, pin,
		relay.Wallet{PublicKey: wallet.PublicKey, EncryptedPrivateKey: wallet.EncryptedPrivateKey},
		relay.SessionConfig{
			SessionPublicKey:   sk.PublicKey,
			ValidUntil:         sk.ValidUntil,
			MaxCalls:           sk.MaxCalls,
			AllowedEntrypoints: sk.AllowedEntrypoints,
		})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrRegistration, err)
	}
	m.logger.Info("session key registered",
		zap.String("userID", userID.String()),
		zap.String("txHash", txHash),
		zap.Int64("validUntil", sk.ValidUntil),
	)

	if err := m.sessions.Save(ctx, sk); err != nil {
		return nil, fmt.Errorf("failed to persist session key: %w", err)
	}
	return sk, nil
}

// ClearSession deletes the persisted session record; idempotent.
func (m *Manager) ClearSession(ctx context.Context, userID uuid.UUID) error {
	return m.sessions.Delete(ctx, userID)
}

// Session returns the persisted session record, if any.
func (m *Manager) Session(ctx context.Context, userID uuid.UUID) (*model.SessionKey, error) {
	return m.sessions.Get(ctx, userID)
}

// Signer is a resolved signing identity: the wallet's account address and
// a decrypted private key.
type Signer struct {
	AccountAddress string
	privateKey     string
}

// NewSigner builds a signer from already decrypted key material.
func NewSigner(accountAddress, privateKey string) *Signer {
	return &Signer{AccountAddress: accountAddress, privateKey: privateKey}
}

// SignDigest signs a message digest, returning a calldata-ready signature.
func (s *Signer) SignDigest(digest *big.Int) ([]string, error) {
	return starknet.Sign(s.privateKey, digest)
}

// credentialSource is one ranked place a signing key may come from.
type credentialSource func(ctx context.Context, userID uuid.UUID) (ciphertext string, found bool, err error)

// Signer resolves the signing key for a user: the active session key if one
// exists, else the owner key. Sources are evaluated in rank order; the
// first hit is decrypted with the PIN.
func (m *Manager) Signer(ctx context.Context, userID uuid.UUID, pin string) (*Signer, error) {
	wallet, err := m.wallets.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	sources := []credentialSource{m.sessionKeySource, m.ownerKeySource}

	for _, source := range sources {
		ciphertext, found, err := source(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		key, err := crypto.DecryptKey(ciphertext, pin)
		if err != nil {
			return nil, err
		}
		return &Signer{AccountAddress: wallet.PublicKey, privateKey: string(key)}, nil
	}
	return nil, errs.ErrNoSigningKey
}

func (m *Manager) sessionKeySource(ctx context.Context, userID uuid.UUID) (string, bool, error) {
	s, err := m.sessions.Get(ctx, userID)
	if errors.Is(err, errs.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if !s.Active(m.now()) || s.EncryptedPrivateKey == "" {
		return "", false, nil
	}
	return s.EncryptedPrivateKey, true, nil
}

func (m *Manager) ownerKeySource(ctx context.Context, userID uuid.UUID) (string, bool, error) {
	w, err := m.wallets.Get(ctx, userID)
	if errors.Is(err, errs.ErrWalletNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if w.EncryptedPrivateKey == "" {
		return "", false, nil
	}
	return w.EncryptedPrivateKey, true, nil
}
