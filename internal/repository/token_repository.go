package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrRefreshInvalid covers unknown, revoked and expired refresh tokens.
var ErrRefreshInvalid = errors.New("invalid refresh token")

// TokenRepo stores staff sessions as SHA-256 hashes of refresh tokens.
// A session is live while revoked_at is NULL and expires_at is ahead.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

const insertSession = "INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)"

// StoreRefresh opens a new session.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx, insertSession, userID, tokenHash, timeArg(exp))
	return err
}

// ValidateRefresh returns the owner of a live session.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	var userID uint64
	err := r.DB.QueryRowContext(ctx,
		`SELECT user_id FROM refresh_tokens
		  WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > ?
		  LIMIT 1`,
		tokenHash, timeArg(time.Now())).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrRefreshInvalid
	}
	return userID, err
}

// Rotate ends the session behind oldHash and opens newHash in one
// transaction.  The revoke is conditional, so of two concurrent refreshes
// with the same token only one wins; the other gets ErrRefreshInvalid.
func (r *TokenRepo) Rotate(ctx context.Context, oldHash string, userID uint64, newHash string, exp time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at = UTC_TIMESTAMP() WHERE token_hash = ? AND user_id = ? AND revoked_at IS NULL",
		oldHash, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRefreshInvalid
	}
	if _, err := tx.ExecContext(ctx, insertSession, userID, newHash, timeArg(exp)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// RevokeByHash ends one session.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at = UTC_TIMESTAMP() WHERE token_hash = ? AND revoked_at IS NULL",
		tokenHash)
	return err
}

// RevokeAllForUser ends every session of a user.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at = UTC_TIMESTAMP() WHERE user_id = ? AND revoked_at IS NULL",
		userID)
	return err
}
