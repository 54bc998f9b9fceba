package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/dtroode/identity-server/internal/model"
)

// MinSecretLength is the shortest HMAC secret accepted by NewJWT.
const MinSecretLength = 32

// Config contains access token signing parameters.
type Config struct {
	Secret    string
	Issuer    string
	Audience  string
	AccessTTL time.Duration
	ClockSkew time.Duration
}

// Claims represents access token claims.
type Claims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles"`
}

var _ model.TokenManager = (*JWT)(nil)

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	cfg Config
}

// NewJWT creates a new JWT token manager.
func NewJWT(cfg Config) (*JWT, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLength)
	}
	if cfg.AccessTTL <= 0 {
		return nil, errors.New("access token ttl must be positive")
	}
	if cfg.ClockSkew < 0 {
		return nil, errors.New("clock skew must not be negative")
	}

	return &JWT{cfg: cfg}, nil
}

// IssueAccessToken creates a short-lived access token for account.
func (j *JWT) IssueAccessToken(account model.Account, roles []string, now time.Time) (string, time.Time, error) {
	jti, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token id: %w", err)
	}

	if roles == nil {
		roles = []string{}
	}

	expiresAt := now.Add(j.cfg.AccessTTL).Truncate(jwt.TimePrecision)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			Subject:   account.ID.String(),
			Issuer:    j.cfg.Issuer,
			Audience:  jwt.ClaimStrings{j.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: account.Email,
		Name:  account.FullName(),
		Roles: roles,
	})

	tokenString, err := token.SignedString([]byte(j.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// VerifyAccessToken reports whether token is a valid access token at now.
func (j *JWT) VerifyAccessToken(tokenString string, now time.Time) bool {
	_, err := j.ParseAccessToken(tokenString, now)
	return err == nil
}

// ParseAccessToken validates the token and returns its claims. Every failure
// is reported as model.ErrInvalidToken.
func (j *JWT) ParseAccessToken(tokenString string, now time.Time) (model.AccessClaims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.cfg.Issuer),
		jwt.WithAudience(j.cfg.Audience),
		jwt.WithLeeway(j.cfg.ClockSkew),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(j.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return model.AccessClaims{}, model.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return model.AccessClaims{}, model.ErrInvalidToken
	}

	out := model.AccessClaims{
		UserID:  userID,
		Email:   claims.Email,
		Roles:   claims.Roles,
		TokenID: claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}

	return out, nil
}
