package token

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
)

// MinRefreshTokenBytes is the minimum entropy of a refresh token (256 bits).
const MinRefreshTokenBytes = 32

// MaxRefreshTokenLength bounds presented refresh tokens before hashing.
const MaxRefreshTokenLength = 4096

// NewRefreshToken reads n random bytes from r and returns them URL-safe
// base64 encoded without padding.
func NewRefreshToken(r io.Reader, n int) (string, error) {
	if n < MinRefreshTokenBytes {
		return "", fmt.Errorf("refresh token must have at least %d bytes, got %d", MinRefreshTokenBytes, n)
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashRefreshToken returns the hex encoded SHA-256 of a refresh token.
func HashRefreshToken(plain string) string {
	h := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(h[:])
}
