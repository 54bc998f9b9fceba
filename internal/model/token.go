package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager signs and verifies access tokens.
type TokenManager interface {
	IssueAccessToken(account Account, roles []string, now time.Time) (token string, expiresAt time.Time, err error)
	VerifyAccessToken(token string, now time.Time) bool
	ParseAccessToken(token string, now time.Time) (AccessClaims, error)
}

// AccessClaims is the verified content of an access token.
type AccessClaims struct {
	UserID    uuid.UUID
	Email     string
	Roles     []string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
