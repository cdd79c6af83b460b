// Package repository defines persistence interfaces for wallet and session
// records.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"medialane/internal/model"
)

// WalletRepository stores each user's wallet. Wallets are created once and
// never deleted, only superseded.
type WalletRepository interface {
	// Save inserts or replaces the user's wallet record.
	Save(ctx context.Context, w *model.Wallet) error
	// Get returns the user's wallet or errs.ErrWalletNotFound.
	Get(ctx context.Context, userID uuid.UUID) (*model.Wallet, error)
}

// SessionRepository stores at most one session key per user.
type SessionRepository interface {
	// Save inserts or replaces the user's session record (a new session
	// supersedes the old one; sessions are never renewed in place).
	Save(ctx context.Context, s *model.SessionKey) error
	// Get returns the persisted session record or errs.ErrNotFound.
	Get(ctx context.Context, userID uuid.UUID) (*model.SessionKey, error)
	// Delete removes the session record; deleting a missing record is a no-op.
	Delete(ctx context.Context, userID uuid.UUID) error
}
