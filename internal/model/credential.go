package model

import (
	"context"

	"github.com/google/uuid"
)

// PasswordCheck is the outcome of a password verification.
type PasswordCheck int

const (
	PasswordOK PasswordCheck = iota
	PasswordMismatch
	PasswordLockedOut
)

// CredentialStore owns password hashing, password policy and lockout.
type CredentialStore interface {
	// CreateAccount validates and hashes password and persists the account.
	// Policy failures are reported as *ValidationError.
	CreateAccount(ctx context.Context, account Account, password string) (Account, error)
	// VerifyPassword applies the lockout policy and checks password.
	VerifyPassword(ctx context.Context, account Account, password string) (PasswordCheck, error)
	IsLockedOut(ctx context.Context, accountID uuid.UUID) (bool, error)
	// ChangePassword verifies current, validates next and stores its hash.
	ChangePassword(ctx context.Context, account Account, current, next string) error
}
