package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dtroode/identity-server/internal/credential"
	"github.com/dtroode/identity-server/internal/metrics"
	"github.com/dtroode/identity-server/internal/model"
	"github.com/dtroode/identity-server/internal/repository/memory"
	"github.com/dtroode/identity-server/internal/testutil"
	"github.com/dtroode/identity-server/internal/token"
)

const (
	testPassword    = "Sup3r$ecret"
	testNewPassword = "N3w&Improved"
)

var testStart = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	clock    *testutil.Clock
	accounts *memory.AccountRepository
	store    *memory.RefreshTokenRepository
	jwt      *token.JWT
	metrics  *metrics.Metrics
	tokens   *TokenService
	auth     *Auth
	account  *Account
}

func testCredentialConfig() credential.Config {
	cfg := credential.DefaultConfig()
	cfg.Params = credential.Params{MemoryKiB: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	return cfg
}

func testTokenConfig() token.Config {
	return token.Config{
		Secret:    "0123456789abcdef0123456789abcdef",
		Issuer:    "identity-test",
		Audience:  "identity-test-clients",
		AccessTTL: 15 * time.Minute,
		ClockSkew: 5 * time.Second,
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clock := testutil.NewClock(testStart)
	credCfg := testCredentialConfig()
	return newHarnessWithLockout(t, clock, credential.NewMemoryLockout(credCfg.Lockout, clock.Now))
}

func newHarnessWithLockout(t *testing.T, clock *testutil.Clock, lockout credential.Lockout) *harness {
	t.Helper()
	return newHarnessWithConfig(t, clock, lockout, DefaultConfig())
}

func newHarnessWithConfig(t *testing.T, clock *testutil.Clock, lockout credential.Lockout, cfg Config) *harness {
	t.Helper()

	lg := testutil.MakeNoopLogger()
	accounts := memory.NewAccountRepository()
	store := memory.NewRefreshTokenRepository()
	m := metrics.New()

	jwtManager, err := token.NewJWT(testTokenConfig())
	require.NoError(t, err)

	creds := credential.NewStore(testCredentialConfig(), accounts, lockout, lg)
	opts := []Option{WithClock(clock.Now), WithMetrics(m)}

	tokens := NewTokenService(cfg, jwtManager, store, accounts, lg, opts...)

	return &harness{
		clock:    clock,
		accounts: accounts,
		store:    store,
		jwt:      jwtManager,
		metrics:  m,
		tokens:   tokens,
		auth:     NewAuth(cfg, accounts, creds, tokens, lg, opts...),
		account:  NewAccount(accounts, creds, tokens, lg, opts...),
	}
}

func registerParams(email string) model.RegisterParams {
	return model.RegisterParams{
		Email:           email,
		Password:        testPassword,
		ConfirmPassword: testPassword,
		FirstName:       "Alice",
		LastName:        "Liddell",
		Device:          model.DeviceContext{IPAddress: "203.0.113.7", DeviceInfo: "test-agent"},
	}
}

func (h *harness) register(t *testing.T, email string) model.AuthResult {
	t.Helper()
	res, err := h.auth.Register(context.Background(), registerParams(email))
	require.NoError(t, err)
	return res
}

func (h *harness) activeCount(t *testing.T, res model.AuthResult) int {
	t.Helper()
	records, err := h.store.ListByUser(context.Background(), res.User.ID)
	require.NoError(t, err)

	n := 0
	for _, r := range records {
		if r.Active(h.clock.Now()) {
			n++
		}
	}
	return n
}

func (h *harness) record(t *testing.T, plain string) model.RefreshToken {
	t.Helper()
	rec, err := h.store.GetByHash(context.Background(), token.HashRefreshToken(plain))
	require.NoError(t, err)
	return rec
}

func counterValue(t *testing.T, h *harness, name, label, value string) float64 {
	t.Helper()
	families, err := h.metrics.Registry().Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
