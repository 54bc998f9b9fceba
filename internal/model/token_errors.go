package model

import "errors"

var (
	// ErrInvalidToken covers unknown, malformed and badly signed tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned for an expired refresh token that was never revoked.
	ErrTokenExpired = errors.New("refresh token expired")
	// ErrTokenReuseDetected is returned when a revoked refresh token is presented again.
	ErrTokenReuseDetected = errors.New("refresh token reuse detected")
	// ErrTokenRevoked is returned by stores when a conditional revocation finds
	// the row already revoked.
	ErrTokenRevoked = errors.New("refresh token revoked")
)
