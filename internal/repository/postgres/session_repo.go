package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"medialane/internal/errs"
	"medialane/internal/model"
)

// SessionRepo implements repository.SessionRepository using PostgreSQL.
type SessionRepo struct{ db *DB }

// NewSessionRepo constructs a session repository.
func NewSessionRepo(db *DB) *SessionRepo { return &SessionRepo{db: db} }

// Save upserts the user's session row: a fresh session key supersedes the
// previous one.
func (r *SessionRepo) Save(ctx context.Context, s *model.SessionKey) error {
	const q = `
INSERT INTO session_keys (user_id, public_key, encrypted_private_key, valid_until, max_calls, allowed_entrypoints)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE
SET public_key = EXCLUDED.public_key,
    encrypted_private_key = EXCLUDED.encrypted_private_key,
    valid_until = EXCLUDED.valid_until,
    max_calls = EXCLUDED.max_calls,
    allowed_entrypoints = EXCLUDED.allowed_entrypoints,
    created_at = now()`
	_, err := r.db.Pool.Exec(ctx, q,
		s.UserID, s.PublicKey, s.EncryptedPrivateKey, s.ValidUntil, s.MaxCalls, s.AllowedEntrypoints)
	return err
}

// Get selects the user's session record.
func (r *SessionRepo) Get(ctx context.Context, userID uuid.UUID) (*model.SessionKey, error) {
	const q = `
SELECT user_id, public_key, encrypted_private_key, valid_until, max_calls, allowed_entrypoints, created_at
FROM session_keys WHERE user_id = $1`
	row := r.db.Pool.QueryRow(ctx, q, userID)
	var s model.SessionKey
	if err := row.Scan(&s.UserID, &s.PublicKey, &s.EncryptedPrivateKey, &s.ValidUntil, &s.MaxCalls, &s.AllowedEntrypoints, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Delete removes the session record; idempotent.
func (r *SessionRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	const q = `DELETE FROM session_keys WHERE user_id = $1`
	_, err := r.db.Pool.Exec(ctx, q, userID)
	return err
}
