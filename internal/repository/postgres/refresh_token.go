package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

const refreshTokenColumns = `token_hash, user_id, created_at, expires_at, revoked_at, revoked_reason,
	replaced_by_hash, ip_address, device_info`

type RefreshTokenRepository struct {
	db *sql.DB
}

func NewRefreshTokenRepository(db *sql.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	if err := insertRefreshToken(ctx, r.db, token); err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, tokenHash string) (model.RefreshToken, error) {
	query := `SELECT ` + refreshTokenColumns + ` FROM refresh_tokens WHERE token_hash = $1`

	rt, err := scanRefreshToken(r.db.QueryRowContext(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.RefreshToken{}, model.ErrNotFound
		}
		return model.RefreshToken{}, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return rt, nil
}

// Rotate locks the old row, revokes it and inserts next in one transaction.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldHash string, next model.RefreshToken, now time.Time) error {
	const lock = `SELECT revoked_at IS NOT NULL FROM refresh_tokens WHERE token_hash = $1 FOR UPDATE`
	const revoke = `
		UPDATE refresh_tokens SET revoked_at = $2, revoked_reason = $3, replaced_by_hash = $4
		WHERE token_hash = $1 AND revoked_at IS NULL`

	err := WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		var revoked bool
		if err := tx.QueryRowContext(ctx, lock, oldHash).Scan(&revoked); err != nil {
			return mapError(err)
		}
		if revoked {
			return model.ErrTokenRevoked
		}

		res, err := tx.ExecContext(ctx, revoke, oldHash, now, string(model.RevocationRotated), next.TokenHash)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return model.ErrTokenRevoked
		}

		return insertRefreshToken(ctx, tx, next)
	})
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) Revoke(ctx context.Context, tokenHash string, reason model.RevocationReason, now time.Time) error {
	const revoke = `
		UPDATE refresh_tokens SET revoked_at = $2, revoked_reason = $3
		WHERE token_hash = $1 AND revoked_at IS NULL`
	const exists = `SELECT EXISTS (SELECT 1 FROM refresh_tokens WHERE token_hash = $1)`

	res, err := r.db.ExecContext(ctx, revoke, tokenHash, now, string(reason))
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if n > 0 {
		return nil
	}

	var found bool
	if err := r.db.QueryRowContext(ctx, exists, tokenHash).Scan(&found); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if !found {
		return model.ErrNotFound
	}
	return model.ErrTokenRevoked
}

func (r *RefreshTokenRepository) RevokeAllByUser(ctx context.Context, userID uuid.UUID, reason model.RevocationReason, now time.Time) (int64, error) {
	const query = `
		UPDATE refresh_tokens SET revoked_at = $2, revoked_reason = $3
		WHERE user_id = $1 AND revoked_at IS NULL AND expires_at > $2`

	res, err := r.db.ExecContext(ctx, query, userID, now, string(reason))
	if err != nil {
		return 0, fmt.Errorf("failed to revoke refresh tokens by user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to revoke refresh tokens by user: %w", err)
	}
	return n, nil
}

func (r *RefreshTokenRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.RefreshToken, error) {
	query := `SELECT ` + refreshTokenColumns + ` FROM refresh_tokens WHERE user_id = $1 ORDER BY created_at, token_hash`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list refresh tokens: %w", err)
	}
	defer rows.Close()

	tokens := make([]model.RefreshToken, 0)
	for rows.Next() {
		rt, err := scanRefreshToken(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan refresh token: %w", err)
		}
		tokens = append(tokens, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list refresh tokens: %w", err)
	}
	return tokens, nil
}

func insertRefreshToken(ctx context.Context, db DBTX, t model.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (` + refreshTokenColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	var reason *string
	if t.RevokedReason != nil {
		s := string(*t.RevokedReason)
		reason = &s
	}

	_, err := db.ExecContext(ctx, query,
		t.TokenHash, t.UserID, t.CreatedAt, t.ExpiresAt, t.RevokedAt, reason,
		t.ReplacedByHash, t.IPAddress, t.DeviceInfo,
	)
	return mapError(err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRefreshToken(row rowScanner) (model.RefreshToken, error) {
	var (
		rt         model.RefreshToken
		revokedAt  sql.NullTime
		reason     sql.NullString
		replacedBy sql.NullString
	)

	err := row.Scan(
		&rt.TokenHash, &rt.UserID, &rt.CreatedAt, &rt.ExpiresAt, &revokedAt, &reason,
		&replacedBy, &rt.IPAddress, &rt.DeviceInfo,
	)
	if err != nil {
		return model.RefreshToken{}, err
	}

	if revokedAt.Valid {
		t := revokedAt.Time
		rt.RevokedAt = &t
	}
	if reason.Valid {
		rr := model.RevocationReason(reason.String)
		rt.RevokedReason = &rr
	}
	if replacedBy.Valid {
		s := replacedBy.String
		rt.ReplacedByHash = &s
	}
	return rt, nil
}
