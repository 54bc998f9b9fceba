package model

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Predefined roles.
const (
	RoleAdmin    = "Admin"
	RoleCustomer = "Customer"
	RoleSeller   = "Seller"
	RoleSupport  = "Support"
)

// Roles lists every role known to the service.
var Roles = []string{RoleAdmin, RoleCustomer, RoleSeller, RoleSupport}

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, profile ProfileUpdate, now time.Time) (Account, error)
	SetPasswordHash(ctx context.Context, id uuid.UUID, hash string, now time.Time) error
	Deactivate(ctx context.Context, id uuid.UUID, now time.Time) error
	AddRole(ctx context.Context, id uuid.UUID, role string) error
}

// Account represents a stored account with its authentication material.
type Account struct {
	ID           uuid.UUID
	Email        string
	FirstName    string
	LastName     string
	Phone        string
	PasswordHash string
	Active       bool
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name.
func (a Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Summary returns the public view of the account.
func (a Account) Summary() UserSummary {
	roles := make([]string, len(a.Roles))
	copy(roles, a.Roles)

	return UserSummary{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		FullName:  a.FullName(),
		Roles:     roles,
	}
}

// ProfileUpdate holds optional profile changes. Empty fields are left untouched.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Phone     string
}

// NormalizeEmail returns the lookup form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Profile is the account as shown to its owner.
type Profile struct {
	UserSummary
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile returns the owner's view of the account.
func (a Account) Profile() Profile {
	return Profile{
		UserSummary: a.Summary(),
		Phone:       a.Phone,
		Active:      a.Active,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
