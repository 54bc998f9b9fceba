package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

const maxPhoneLength = 32

// Account serves the authenticated owner's operations on their account and
// the administrator operations on other accounts.
type Account struct {
	accounts    model.AccountStore
	credentials model.CredentialStore
	tokens      *TokenService
	logger      *logger.Logger
	now         func() time.Time
}

func NewAccount(
	accounts model.AccountStore,
	credentials model.CredentialStore,
	tokens *TokenService,
	logger *logger.Logger,
	opts ...Option,
) *Account {
	o := newOptions(opts)
	return &Account{
		accounts:    accounts,
		credentials: credentials,
		tokens:      tokens,
		logger:      logger,
		now:         o.now,
	}
}

func (s *Account) GetMe(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	account, err := s.activeAccount(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}
	return account.Profile(), nil
}

// UpdateProfile changes the non-empty fields of update.
func (s *Account) UpdateProfile(ctx context.Context, userID uuid.UUID, update model.ProfileUpdate) (model.Profile, error) {
	update.FirstName = strings.TrimSpace(update.FirstName)
	update.LastName = strings.TrimSpace(update.LastName)
	update.Phone = strings.TrimSpace(update.Phone)

	var reasons []string
	if len(update.FirstName) > maxNameLength || len(update.LastName) > maxNameLength {
		reasons = append(reasons, fmt.Sprintf("names must be at most %d characters", maxNameLength))
	}
	if len(update.Phone) > maxPhoneLength {
		reasons = append(reasons, fmt.Sprintf("phone must be at most %d characters", maxPhoneLength))
	}
	if len(reasons) > 0 {
		return model.Profile{}, model.NewValidationError(reasons...)
	}

	if _, err := s.activeAccount(ctx, userID); err != nil {
		return model.Profile{}, err
	}

	account, err := s.accounts.UpdateProfile(ctx, userID, update, s.now())
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("Account service: profile updated",
		"user_id", userID.String())

	return account.Profile(), nil
}

// ChangePassword replaces the password and ends every session of the account.
func (s *Account) ChangePassword(ctx context.Context, userID uuid.UUID, params model.ChangePasswordParams) error {
	if params.NewPassword != params.ConfirmNewPassword {
		return model.NewValidationError("new passwords do not match")
	}

	account, err := s.activeAccount(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.credentials.ChangePassword(ctx, account, params.CurrentPassword, params.NewPassword); err != nil {
		return err
	}

	if _, err := s.tokens.RevokeAllForUser(ctx, userID, model.RevocationPasswordChanged); err != nil {
		return err
	}

	s.logger.Info("Account service: password changed",
		"user_id", userID.String())

	return nil
}

// Deactivate disables the account and ends every session. Deactivating an
// already inactive account only repeats the revocation.
func (s *Account) Deactivate(ctx context.Context, userID uuid.UUID) error {
	if err := s.deactivate(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("Account service: account deactivated",
		"user_id", userID.String())

	return nil
}

// ListSessions returns every session of the account, oldest first. Revoked
// and expired sessions are included and flagged inactive.
func (s *Account) ListSessions(ctx context.Context, userID uuid.UUID) ([]model.Session, error) {
	if _, err := s.activeAccount(ctx, userID); err != nil {
		return nil, err
	}
	return s.tokens.ListSessions(ctx, userID)
}

// GetUser returns any account's profile, active or not. Callers must hold
// the Admin role.
func (s *Account) GetUser(ctx context.Context, targetID uuid.UUID) (model.Profile, error) {
	account, err := s.accounts.GetByID(ctx, targetID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get account: %w", err)
	}
	return account.Profile(), nil
}

// DeactivateUser deactivates targetID on behalf of actorID. Callers must
// hold the Admin role.
func (s *Account) DeactivateUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	if err := s.deactivate(ctx, targetID); err != nil {
		return err
	}

	s.logger.Info("Account service: account deactivated by administrator",
		"user_id", targetID.String(),
		"actor_id", actorID.String())

	return nil
}

// GrantAdmin gives the Admin role to the existing accounts among emails.
// Unknown emails are skipped; they receive the role when they register.
func (s *Account) GrantAdmin(ctx context.Context, emails []string) error {
	for _, email := range emails {
		account, err := s.accounts.GetByEmail(ctx, model.NormalizeEmail(email))
		if errors.Is(err, model.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to get account: %w", err)
		}
		if err := s.accounts.AddRole(ctx, account.ID, model.RoleAdmin); err != nil {
			return fmt.Errorf("failed to grant admin role: %w", err)
		}
		s.logger.Info("Account service: admin role granted",
			"user_id", account.ID.String())
	}
	return nil
}

func (s *Account) deactivate(ctx context.Context, userID uuid.UUID) error {
	if err := s.accounts.Deactivate(ctx, userID, s.now()); err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	if _, err := s.tokens.RevokeAllForUser(ctx, userID, model.RevocationAccountDeactivated); err != nil {
		return err
	}
	return nil
}

func (s *Account) activeAccount(ctx context.Context, userID uuid.UUID) (model.Account, error) {
	account, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to get account: %w", err)
	}
	if !account.Active {
		return model.Account{}, model.ErrAccountDeactivated
	}
	return account, nil
}
