package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

var _ model.CredentialStore = (*Store)(nil)

// Store implements model.CredentialStore on top of an AccountStore.
type Store struct {
	accounts model.AccountStore
	policy   Policy
	hasher   *Hasher
	lockout  Lockout
	logger   *logger.Logger
	now      func() time.Time
}

// NewStore creates a credential Store.
func NewStore(cfg Config, accounts model.AccountStore, lockout Lockout, logger *logger.Logger) *Store {
	return &Store{
		accounts: accounts,
		policy:   cfg.Policy,
		hasher:   NewHasher(cfg.Params),
		lockout:  lockout,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateAccount validates password against the policy, hashes it and
// persists the account. The account is returned as stored.
func (s *Store) CreateAccount(ctx context.Context, account model.Account, password string) (model.Account, error) {
	if reasons := s.policy.Check(password); len(reasons) > 0 {
		return model.Account{}, model.NewValidationError(reasons...)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}
	account.PasswordHash = hash

	saved, err := s.accounts.Create(ctx, account)
	if err != nil {
		return model.Account{}, err
	}

	return saved, nil
}

// VerifyPassword checks password for account. A locked account is reported
// as locked regardless of the password. Failed attempts are counted and lock
// the account once the configured limit is reached.
func (s *Store) VerifyPassword(ctx context.Context, account model.Account, password string) (model.PasswordCheck, error) {
	locked, err := s.lockout.IsLocked(ctx, account.ID)
	if err != nil {
		return model.PasswordMismatch, err
	}
	if locked {
		return model.PasswordLockedOut, nil
	}

	ok, err := s.hasher.Verify(account.PasswordHash, password)
	if err != nil {
		return model.PasswordMismatch, fmt.Errorf("failed to verify password: %w", err)
	}

	if !ok {
		nowLocked, err := s.lockout.RecordFailure(ctx, account.ID)
		if err != nil {
			return model.PasswordMismatch, err
		}
		if nowLocked {
			s.logger.Warn("Credential store: account locked after failed attempts",
				"account_id", account.ID.String())
		}
		return model.PasswordMismatch, nil
	}

	if err := s.lockout.Reset(ctx, account.ID); err != nil {
		return model.PasswordMismatch, err
	}

	return model.PasswordOK, nil
}

// IsLockedOut reports whether the account is currently locked.
func (s *Store) IsLockedOut(ctx context.Context, accountID uuid.UUID) (bool, error) {
	return s.lockout.IsLocked(ctx, accountID)
}

// ChangePassword replaces the password of account after checking current.
// Wrong current passwords count towards the same lockout as failed logins.
func (s *Store) ChangePassword(ctx context.Context, account model.Account, current, next string) error {
	locked, err := s.lockout.IsLocked(ctx, account.ID)
	if err != nil {
		return err
	}
	if locked {
		return model.ErrAccountLocked
	}

	ok, err := s.hasher.Verify(account.PasswordHash, current)
	if err != nil && !errors.Is(err, ErrInvalidHash) {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		nowLocked, err := s.lockout.RecordFailure(ctx, account.ID)
		if err != nil {
			return err
		}
		if nowLocked {
			s.logger.Warn("Credential store: account locked after failed password change attempts",
				"account_id", account.ID.String())
		}
		return model.NewValidationError("current password is incorrect")
	}

	if err := s.lockout.Reset(ctx, account.ID); err != nil {
		return err
	}

	if reasons := s.policy.Check(next); len(reasons) > 0 {
		return model.NewValidationError(reasons...)
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.accounts.SetPasswordHash(ctx, account.ID, hash, s.now()); err != nil {
		return fmt.Errorf("failed to store password hash: %w", err)
	}

	return nil
}
