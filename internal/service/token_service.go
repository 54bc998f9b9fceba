package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/metrics"
	"github.com/dtroode/identity-server/internal/model"
	"github.com/dtroode/identity-server/internal/token"
)

// insertAttempts bounds retries when a freshly generated refresh token
// collides with a stored one.
const insertAttempts = 3

// TokenService issues, rotates and revokes session credentials. It composes
// the TokenManager with the RefreshTokenStore and owns the rotation and
// reuse-detection protocol.
type TokenService struct {
	cfg      Config
	manager  model.TokenManager
	store    model.RefreshTokenStore
	accounts model.AccountStore
	logger   *logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
	random   io.Reader
}

func NewTokenService(
	cfg Config,
	manager model.TokenManager,
	store model.RefreshTokenStore,
	accounts model.AccountStore,
	logger *logger.Logger,
	opts ...Option,
) *TokenService {
	o := newOptions(opts)
	return &TokenService{
		cfg:      cfg,
		manager:  manager,
		store:    store,
		accounts: accounts,
		logger:   logger,
		metrics:  o.metrics,
		now:      o.now,
		random:   o.random,
	}
}

// Issue mints a new session pair for account.
func (s *TokenService) Issue(ctx context.Context, account model.Account, device model.DeviceContext) (model.AuthResult, error) {
	now := s.now()

	access, expiresAt, err := s.manager.IssueAccessToken(account, account.Roles, now)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	var refresh string
	for attempt := 1; ; attempt++ {
		var record model.RefreshToken
		refresh, record, err = s.newRefreshRecord(account.ID, device, now)
		if err != nil {
			return model.AuthResult{}, err
		}

		err = s.store.Create(ctx, record)
		if err == nil {
			break
		}
		if !errors.Is(err, model.ErrDuplicate) || attempt == insertAttempts {
			return model.AuthResult{}, fmt.Errorf("failed to persist refresh token: %w", err)
		}
	}

	return model.AuthResult{
		AccessToken:          access,
		RefreshToken:         refresh,
		AccessTokenExpiresAt: expiresAt,
		User:                 account.Summary(),
	}, nil
}

// Refresh exchanges a refresh token for a new session pair. The presented
// token is revoked and chained to its replacement in one atomic step.
//
// A revoked token being presented again is treated as theft: every active
// token of the owner is revoked and ErrTokenReuseDetected is returned.
func (s *TokenService) Refresh(ctx context.Context, presented string, device model.DeviceContext) (model.AuthResult, error) {
	if presented == "" || len(presented) > token.MaxRefreshTokenLength {
		s.metrics.Refresh(metrics.ResultInvalidToken)
		return model.AuthResult{}, model.ErrInvalidToken
	}

	oldHash := token.HashRefreshToken(presented)
	now := s.now()

	current, err := s.store.GetByHash(ctx, oldHash)
	if errors.Is(err, model.ErrNotFound) {
		s.metrics.Refresh(metrics.ResultInvalidToken)
		return model.AuthResult{}, model.ErrInvalidToken
	}
	if err != nil {
		s.metrics.Refresh(metrics.ResultError)
		return model.AuthResult{}, fmt.Errorf("failed to get refresh token: %w", err)
	}

	if current.Revoked() {
		return model.AuthResult{}, s.reuseDetected(ctx, current, now)
	}

	if current.Expired(now) {
		s.metrics.Refresh(metrics.ResultExpired)
		return model.AuthResult{}, model.ErrTokenExpired
	}

	account, err := s.accounts.GetByID(ctx, current.UserID)
	if errors.Is(err, model.ErrNotFound) {
		s.metrics.Refresh(metrics.ResultInvalidToken)
		return model.AuthResult{}, model.ErrInvalidToken
	}
	if err != nil {
		s.metrics.Refresh(metrics.ResultError)
		return model.AuthResult{}, fmt.Errorf("failed to get account: %w", err)
	}
	if !account.Active {
		s.metrics.Refresh(metrics.ResultInvalidToken)
		return model.AuthResult{}, model.ErrInvalidToken
	}

	// Roles are read again so privilege changes apply from the next refresh.
	access, expiresAt, err := s.manager.IssueAccessToken(account, account.Roles, now)
	if err != nil {
		s.metrics.Refresh(metrics.ResultError)
		return model.AuthResult{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	if device.DeviceInfo == "" {
		device.DeviceInfo = current.DeviceInfo
	}

	var refresh string
	for attempt := 1; ; attempt++ {
		var next model.RefreshToken
		refresh, next, err = s.newRefreshRecord(account.ID, device, now)
		if err != nil {
			s.metrics.Refresh(metrics.ResultError)
			return model.AuthResult{}, err
		}

		err = s.store.Rotate(ctx, oldHash, next, now)
		if err == nil {
			break
		}
		if errors.Is(err, model.ErrTokenRevoked) {
			// Another request rotated this token first.
			return model.AuthResult{}, s.reuseDetected(ctx, current, now)
		}
		if errors.Is(err, model.ErrNotFound) {
			s.metrics.Refresh(metrics.ResultInvalidToken)
			return model.AuthResult{}, model.ErrInvalidToken
		}
		if !errors.Is(err, model.ErrDuplicate) || attempt == insertAttempts {
			s.metrics.Refresh(metrics.ResultError)
			return model.AuthResult{}, fmt.Errorf("failed to rotate refresh token: %w", err)
		}
	}

	s.metrics.Refresh(metrics.ResultSuccess)
	s.metrics.Revoked(string(model.RevocationRotated), 1)

	return model.AuthResult{
		AccessToken:          access,
		RefreshToken:         refresh,
		AccessTokenExpiresAt: expiresAt,
		User:                 account.Summary(),
	}, nil
}

// Revoke revokes the caller's token, or all of the caller's active tokens
// when all is set.
func (s *TokenService) Revoke(ctx context.Context, userID uuid.UUID, presented string, all bool) error {
	if all {
		_, err := s.RevokeAllForUser(ctx, userID, model.RevocationUserRequested)
		return err
	}

	if presented == "" {
		return model.NewValidationError("refresh token is required")
	}

	record, err := s.ownedRecord(ctx, userID, presented)
	if err != nil {
		return err
	}
	if record.Revoked() {
		return nil
	}

	return s.revokeOne(ctx, record, model.RevocationUserRequested)
}

// Logout ends the session of presented, or every session of the caller when
// presented is empty. Missing, foreign and already revoked tokens are ignored.
func (s *TokenService) Logout(ctx context.Context, userID uuid.UUID, presented string) error {
	if presented == "" {
		_, err := s.RevokeAllForUser(ctx, userID, model.RevocationLogout)
		return err
	}

	record, err := s.ownedRecord(ctx, userID, presented)
	if errors.Is(err, model.ErrInvalidToken) {
		return nil
	}
	if err != nil {
		return err
	}
	if record.Revoked() {
		return nil
	}

	return s.revokeOne(ctx, record, model.RevocationLogout)
}

// RevokeAllForUser revokes every active token of userID and returns how many
// were revoked.
func (s *TokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID, reason model.RevocationReason) (int64, error) {
	n, err := s.store.RevokeAllByUser(ctx, userID, reason, s.now())
	if err != nil {
		s.logger.Error("Token service: failed to revoke user tokens",
			"user_id", userID.String(),
			"reason", string(reason),
			"error", err.Error())
		return 0, fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	s.metrics.Revoked(string(reason), n)
	s.logger.Info("Token service: revoked user tokens",
		"user_id", userID.String(),
		"reason", string(reason),
		"count", n)

	return n, nil
}

// ListSessions returns every refresh token record of the user, oldest first,
// including revoked and expired ones.
func (s *TokenService) ListSessions(ctx context.Context, userID uuid.UUID) ([]model.Session, error) {
	records, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list refresh tokens: %w", err)
	}

	now := s.now()
	sessions := make([]model.Session, 0, len(records))
	for _, r := range records {
		sessions = append(sessions, model.Session{RefreshToken: r, Active: r.Active(now)})
	}
	return sessions, nil
}

// GetClaims verifies an access token and returns its claims.
func (s *TokenService) GetClaims(_ context.Context, accessToken string) (model.AccessClaims, error) {
	return s.manager.ParseAccessToken(accessToken, s.now())
}

func (s *TokenService) reuseDetected(ctx context.Context, record model.RefreshToken, now time.Time) error {
	s.metrics.Refresh(metrics.ResultReuseDetected)
	s.logger.Warn("Token service: refresh token reuse detected",
		"user_id", record.UserID.String(),
		"ip_address", record.IPAddress)

	n, err := s.store.RevokeAllByUser(ctx, record.UserID, model.RevocationReuseDetected, now)
	if err != nil {
		s.logger.Error("Token service: failed to revoke token family",
			"user_id", record.UserID.String(),
			"error", err.Error())
		return fmt.Errorf("failed to revoke refresh tokens after reuse: %w", err)
	}
	s.metrics.Revoked(string(model.RevocationReuseDetected), n)

	return model.ErrTokenReuseDetected
}

func (s *TokenService) ownedRecord(ctx context.Context, userID uuid.UUID, presented string) (model.RefreshToken, error) {
	if len(presented) > token.MaxRefreshTokenLength {
		return model.RefreshToken{}, model.ErrInvalidToken
	}

	record, err := s.store.GetByHash(ctx, token.HashRefreshToken(presented))
	if errors.Is(err, model.ErrNotFound) {
		return model.RefreshToken{}, model.ErrInvalidToken
	}
	if err != nil {
		return model.RefreshToken{}, fmt.Errorf("failed to get refresh token: %w", err)
	}
	if record.UserID != userID {
		return model.RefreshToken{}, model.ErrInvalidToken
	}
	return record, nil
}

func (s *TokenService) revokeOne(ctx context.Context, record model.RefreshToken, reason model.RevocationReason) error {
	err := s.store.Revoke(ctx, record.TokenHash, reason, s.now())
	if errors.Is(err, model.ErrTokenRevoked) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	s.metrics.Revoked(string(reason), 1)
	return nil
}

func (s *TokenService) newRefreshRecord(userID uuid.UUID, device model.DeviceContext, now time.Time) (string, model.RefreshToken, error) {
	plain, err := token.NewRefreshToken(s.random, s.cfg.RefreshTokenBytes)
	if err != nil {
		return "", model.RefreshToken{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return plain, model.RefreshToken{
		TokenHash:  token.HashRefreshToken(plain),
		UserID:     userID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.cfg.RefreshTTL),
		IPAddress:  device.IPAddress,
		DeviceInfo: device.DeviceInfo,
	}, nil
}
