package credential

import "errors"

var (
	// ErrInvalidHash is returned for malformed or unsupported password hashes.
	ErrInvalidHash = errors.New("invalid password hash")
	// ErrLockoutUnavailable indicates the lockout backend is unreachable.
	ErrLockoutUnavailable = errors.New("lockout backend unavailable")
)
