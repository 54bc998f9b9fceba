package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenStore persists refresh token records.
//
// Implementations must reject duplicate token hashes with ErrDuplicate and
// must make Rotate atomic: the old record is revoked and the new one inserted
// in a single step, and only if the old record was still unrevoked.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByHash(ctx context.Context, tokenHash string) (RefreshToken, error)
	// Rotate revokes oldHash with RevocationRotated, points it at next and
	// inserts next. Returns ErrTokenRevoked if oldHash was already revoked.
	Rotate(ctx context.Context, oldHash string, next RefreshToken, now time.Time) error
	// Revoke revokes a single unrevoked record. Returns ErrTokenRevoked if it
	// was already revoked and ErrNotFound if it does not exist.
	Revoke(ctx context.Context, tokenHash string, reason RevocationReason, now time.Time) error
	// RevokeAllByUser revokes every active record of the user and reports how
	// many were revoked.
	RevokeAllByUser(ctx context.Context, userID uuid.UUID, reason RevocationReason, now time.Time) (int64, error)
	// ListByUser returns every record of the user, oldest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]RefreshToken, error)
}

// RevocationReason enumerates why a refresh token stopped being usable.
type RevocationReason string

const (
	RevocationRotated            RevocationReason = "rotated"
	RevocationReuseDetected      RevocationReason = "reuse_detected"
	RevocationUserRequested      RevocationReason = "user_requested"
	RevocationLogout             RevocationReason = "logout"
	RevocationPasswordChanged    RevocationReason = "password_changed"
	RevocationAccountDeactivated RevocationReason = "account_deactivated"
)

// RefreshToken is a persisted refresh token record. The plaintext token is
// never stored; TokenHash is its hex encoded SHA-256.
type RefreshToken struct {
	TokenHash      string
	UserID         uuid.UUID
	CreatedAt      time.Time
	ExpiresAt      time.Time
	RevokedAt      *time.Time
	RevokedReason  *RevocationReason
	ReplacedByHash *string
	IPAddress      string
	DeviceInfo     string
}

// Revoked reports whether the record has been revoked.
func (t RefreshToken) Revoked() bool {
	return t.RevokedAt != nil
}

// Expired reports whether the record is past its expiry at now.
func (t RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Active reports whether the record can still be exchanged at now.
func (t RefreshToken) Active(now time.Time) bool {
	return !t.Revoked() && !t.Expired(now)
}

// Session is a refresh token record as listed to its owner.
type Session struct {
	RefreshToken
	Active bool
}
