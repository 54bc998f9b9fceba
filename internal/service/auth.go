package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/metrics"
	"github.com/dtroode/identity-server/internal/model"
)

const maxNameLength = 100

// Auth registers accounts and opens sessions.
type Auth struct {
	cfg         Config
	accounts    model.AccountStore
	credentials model.CredentialStore
	tokens      *TokenService
	logger      *logger.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewAuth(
	cfg Config,
	accounts model.AccountStore,
	credentials model.CredentialStore,
	tokens *TokenService,
	logger *logger.Logger,
	opts ...Option,
) *Auth {
	o := newOptions(opts)
	return &Auth{
		cfg:         cfg,
		accounts:    accounts,
		credentials: credentials,
		tokens:      tokens,
		logger:      logger,
		metrics:     o.metrics,
		now:         o.now,
	}
}

// Register creates an account with the default role and opens its first
// session. The roles are stored together with the account.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.AuthResult, error) {
	email := strings.TrimSpace(params.Email)

	a.logger.Debug("Auth service: starting user registration",
		"email", email)

	if !validEmail(email) {
		a.metrics.Registration(metrics.ResultError)
		return model.AuthResult{}, model.NewValidationError("email is invalid")
	}

	_, err := a.accounts.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"email", email)
		a.metrics.Registration(metrics.ResultError)
		return model.AuthResult{}, model.ErrDuplicateAccount
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if reasons := validateRegistration(params); len(reasons) > 0 {
		a.metrics.Registration(metrics.ResultError)
		return model.AuthResult{}, model.NewValidationError(reasons...)
	}

	now := a.now()
	account, err := a.credentials.CreateAccount(ctx, model.Account{
		ID:        uuid.New(),
		Email:     email,
		FirstName: strings.TrimSpace(params.FirstName),
		LastName:  strings.TrimSpace(params.LastName),
		Phone:     strings.TrimSpace(params.Phone),
		Active:    true,
		Roles:     a.rolesFor(email),
		CreatedAt: now,
		UpdatedAt: now,
	}, params.Password)
	if err != nil {
		a.metrics.Registration(metrics.ResultError)
		switch {
		case errors.Is(err, model.ErrValidationFailed):
			return model.AuthResult{}, err
		case errors.Is(err, model.ErrDuplicate):
			return model.AuthResult{}, model.ErrDuplicateAccount
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to create user: %w", err)
	}

	result, err := a.tokens.Issue(ctx, account, params.Device)
	if err != nil {
		a.logger.Error("Auth service: failed to issue tokens",
			"user_id", account.ID.String(),
			"error", err.Error())
		return model.AuthResult{}, err
	}

	a.metrics.Registration(metrics.ResultSuccess)
	a.logger.Info("Auth service: user registration completed successfully",
		"user_id", account.ID.String())

	return result, nil
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password are reported identically.
func (a *Auth) Login(ctx context.Context, params model.LoginParams) (model.AuthResult, error) {
	email := strings.TrimSpace(params.Email)

	a.logger.Debug("Auth service: starting user login",
		"email", email)

	account, err := a.accounts.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login for unknown email")
		a.metrics.Login(metrics.ResultInvalidCredentials)
		return model.AuthResult{}, model.ErrInvalidCredentials
	}
	if err != nil {
		a.metrics.Login(metrics.ResultError)
		return model.AuthResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !account.Active {
		a.logger.Info("Auth service: login for deactivated user",
			"user_id", account.ID.String())
		a.metrics.Login(metrics.ResultDeactivated)
		return model.AuthResult{}, model.ErrAccountDeactivated
	}

	check, err := a.credentials.VerifyPassword(ctx, account, params.Password)
	if err != nil {
		a.metrics.Login(metrics.ResultError)
		a.logger.Error("Auth service: failed to verify password",
			"user_id", account.ID.String(),
			"error", err.Error())
		return model.AuthResult{}, fmt.Errorf("failed to verify password: %w", err)
	}

	switch check {
	case model.PasswordLockedOut:
		a.logger.Warn("Auth service: login for locked user",
			"user_id", account.ID.String())
		a.metrics.Login(metrics.ResultLocked)
		return model.AuthResult{}, model.ErrAccountLocked
	case model.PasswordMismatch:
		a.logger.Info("Auth service: invalid password",
			"user_id", account.ID.String())
		a.metrics.Login(metrics.ResultInvalidCredentials)
		return model.AuthResult{}, model.ErrInvalidCredentials
	}

	result, err := a.tokens.Issue(ctx, account, params.Device)
	if err != nil {
		a.metrics.Login(metrics.ResultError)
		return model.AuthResult{}, err
	}

	a.metrics.Login(metrics.ResultSuccess)
	a.logger.Info("Auth service: login completed successfully",
		"user_id", account.ID.String())

	return result, nil
}

func validEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func validateRegistration(params model.RegisterParams) []string {
	var reasons []string

	first := strings.TrimSpace(params.FirstName)
	last := strings.TrimSpace(params.LastName)
	if first == "" {
		reasons = append(reasons, "first name is required")
	}
	if last == "" {
		reasons = append(reasons, "last name is required")
	}
	if len(first) > maxNameLength || len(last) > maxNameLength {
		reasons = append(reasons, fmt.Sprintf("names must be at most %d characters", maxNameLength))
	}
	if params.Password != params.ConfirmPassword {
		reasons = append(reasons, "passwords do not match")
	}

	return reasons
}

func (a *Auth) rolesFor(email string) []string {
	roles := []string{a.cfg.DefaultRole}
	if a.cfg.DefaultRole == model.RoleAdmin {
		return roles
	}
	for _, admin := range a.cfg.AdminEmails {
		if model.NormalizeEmail(admin) == model.NormalizeEmail(email) {
			return append(roles, model.RoleAdmin)
		}
	}
	return roles
}
