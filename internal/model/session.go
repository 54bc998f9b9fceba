package model

import (
	"time"

	"github.com/google/uuid"
)

// DeviceContext is request provenance recorded on refresh tokens for audit.
type DeviceContext struct {
	IPAddress  string
	DeviceInfo string
}

// RegisterParams contains the registration request.
type RegisterParams struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Phone           string
	Device          DeviceContext
}

// LoginParams contains the login request.
type LoginParams struct {
	Email    string
	Password string
	Device   DeviceContext
}

// ChangePasswordParams contains the password change request.
type ChangePasswordParams struct {
	CurrentPassword    string
	NewPassword        string
	ConfirmNewPassword string
}

// AuthResult is returned by every operation that issues a session.
type AuthResult struct {
	AccessToken          string
	RefreshToken         string
	AccessTokenExpiresAt time.Time
	User                 UserSummary
}

// UserSummary is the public view of an account.
type UserSummary struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	FullName  string
	Roles     []string
}
