package token

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/identity-server/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testConfig() Config {
	return Config{
		Secret:    testSecret,
		Issuer:    "identity",
		Audience:  "api",
		AccessTTL: 15 * time.Minute,
		ClockSkew: 5 * time.Second,
	}
}

func testAccount() model.Account {
	return model.Account{
		ID:        uuid.New(),
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Liddell",
		Active:    true,
	}
}

func newTestJWT(t *testing.T) *JWT {
	t.Helper()
	j, err := NewJWT(testConfig())
	require.NoError(t, err)
	return j
}

func TestNewJWT_RejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "short secret", mutate: func(c *Config) { c.Secret = "short" }},
		{name: "zero ttl", mutate: func(c *Config) { c.AccessTTL = 0 }},
		{name: "negative skew", mutate: func(c *Config) { c.ClockSkew = -time.Second }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig()
			tt.mutate(&cfg)
			_, err := NewJWT(cfg)
			assert.Error(t, err)
		})
	}
}

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	t.Parallel()

	j := newTestJWT(t)
	acc := testAccount()
	now := time.Now().Truncate(time.Second)

	access, exp, err := j.IssueAccessToken(acc, []string{model.RoleCustomer}, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(15*time.Minute), exp)

	claims, err := j.ParseAccessToken(access, now)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, claims.UserID)
	assert.Equal(t, acc.Email, claims.Email)
	assert.Equal(t, []string{model.RoleCustomer}, claims.Roles)
	assert.NotEmpty(t, claims.TokenID)
	assert.True(t, claims.ExpiresAt.Equal(exp))
}

func TestJWT_AccessToken_UniqueForSameInputs(t *testing.T) {
	t.Parallel()

	j := newTestJWT(t)
	acc := testAccount()
	now := time.Now()

	a, _, err := j.IssueAccessToken(acc, nil, now)
	require.NoError(t, err)
	b, _, err := j.IssueAccessToken(acc, nil, now)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestJWT_VerifyAccessToken_ExpiryWithinSkew(t *testing.T) {
	t.Parallel()

	j := newTestJWT(t)
	now := time.Now().Truncate(time.Second)

	access, exp, err := j.IssueAccessToken(testAccount(), nil, now)
	require.NoError(t, err)

	assert.True(t, j.VerifyAccessToken(access, exp.Add(-time.Second)))
	assert.True(t, j.VerifyAccessToken(access, exp.Add(4*time.Second)))
	assert.False(t, j.VerifyAccessToken(access, exp.Add(5*time.Second+time.Second)))
}

func TestJWT_VerifyAccessToken_NotBefore(t *testing.T) {
	t.Parallel()

	j := newTestJWT(t)
	now := time.Now().Truncate(time.Second)

	access, _, err := j.IssueAccessToken(testAccount(), nil, now)
	require.NoError(t, err)

	assert.True(t, j.VerifyAccessToken(access, now.Add(-3*time.Second)))
	assert.False(t, j.VerifyAccessToken(access, now.Add(-time.Minute)))
}

func TestJWT_VerifyAccessToken_Rejects(t *testing.T) {
	t.Parallel()

	j := newTestJWT(t)
	now := time.Now()
	access, _, err := j.IssueAccessToken(testAccount(), nil, now)
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.Secret = strings.Repeat("x", 32)
	other, err := NewJWT(otherCfg)
	require.NoError(t, err)

	wrongIssuerCfg := testConfig()
	wrongIssuerCfg.Issuer = "someone-else"
	wrongIssuer, err := NewJWT(wrongIssuerCfg)
	require.NoError(t, err)

	wrongAudienceCfg := testConfig()
	wrongAudienceCfg.Audience = "other-api"
	wrongAudience, err := NewJWT(wrongAudienceCfg)
	require.NoError(t, err)

	parts := strings.Split(access, ".")
	require.Len(t, parts, 3)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"` + uuid.NewString() + `","iss":"identity","aud":["api"],"exp":9999999999}`))
	tampered := strings.Join(parts, ".")

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": uuid.NewString()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		j     *JWT
		token string
	}{
		{name: "empty", j: j, token: ""},
		{name: "garbage", j: j, token: "not.a.jwt"},
		{name: "wrong secret", j: other, token: access},
		{name: "wrong issuer", j: wrongIssuer, token: access},
		{name: "wrong audience", j: wrongAudience, token: access},
		{name: "alg none", j: j, token: noneToken},
		{name: "tampered payload", j: j, token: tampered},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.False(t, tt.j.VerifyAccessToken(tt.token, now))
			_, err := tt.j.ParseAccessToken(tt.token, now)
			assert.ErrorIs(t, err, model.ErrInvalidToken)
		})
	}
}
