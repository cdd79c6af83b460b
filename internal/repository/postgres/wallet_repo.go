package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"medialane/internal/errs"
	"medialane/internal/model"
)

// WalletRepo implements repository.WalletRepository using PostgreSQL.
type WalletRepo struct{ db *DB }

// NewWalletRepo constructs a wallet repository.
func NewWalletRepo(db *DB) *WalletRepo { return &WalletRepo{db: db} }

// Save upserts the user's wallet row.
func (r *WalletRepo) Save(ctx context.Context, w *model.Wallet) error {
	const q = `
INSERT INTO wallets (user_id, public_key, encrypted_private_key)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE
SET public_key = EXCLUDED.public_key,
    encrypted_private_key = EXCLUDED.encrypted_private_key`
	_, err := r.db.Pool.Exec(ctx, q, w.UserID, w.PublicKey, w.EncryptedPrivateKey)
	return err
}

// Get selects the user's wallet.
func (r *WalletRepo) Get(ctx context.Context, userID uuid.UUID) (*model.Wallet, error) {
	const q = `
SELECT user_id, public_key, encrypted_private_key, created_at
FROM wallets WHERE user_id = $1`
	row := r.db.Pool.QueryRow(ctx, q, userID)
	var w model.Wallet
	if err := row.Scan(&w.UserID, &w.PublicKey, &w.EncryptedPrivateKey, &w.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrWalletNotFound
		}
		return nil, err
	}
	return &w, nil
}
