package credential

import (
	"errors"
	"time"
)

// Config contains credential store parameters.
type Config struct {
	Policy  Policy
	Params  Params
	Lockout LockoutConfig
}

// Policy describes password requirements.
type Policy struct {
	MinLength       int
	MaxLength       int
	RequireDigit    bool
	RequireLower    bool
	RequireUpper    bool
	RequireNonAlnum bool
	MinUniqueChars  int
}

// Params are Argon2id cost parameters.
type Params struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// LockoutConfig bounds failed password attempts.
type LockoutConfig struct {
	MaxAttempts int
	// Window is how long failed attempts are counted for.
	Window time.Duration
	// Duration is how long an account stays locked.
	Duration time.Duration
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Policy: Policy{
			MinLength:       8,
			MaxLength:       128,
			RequireDigit:    true,
			RequireLower:    true,
			RequireUpper:    true,
			RequireNonAlnum: true,
			MinUniqueChars:  4,
		},
		Params: Params{
			MemoryKiB:   64 * 1024,
			Iterations:  3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Lockout: LockoutConfig{
			MaxAttempts: 5,
			Window:      15 * time.Minute,
			Duration:    15 * time.Minute,
		},
	}
}

// Validate checks the configuration for unusable values.
func (c Config) Validate() error {
	if c.Policy.MinLength < 1 || c.Policy.MaxLength < c.Policy.MinLength {
		return errors.New("invalid password length bounds")
	}
	if c.Params.MemoryKiB < 8*uint32(c.Params.Parallelism) || c.Params.Iterations < 1 || c.Params.Parallelism < 1 {
		return errors.New("invalid argon2 parameters")
	}
	if c.Params.SaltLength < 16 || c.Params.KeyLength < 16 {
		return errors.New("argon2 salt and key must be at least 16 bytes")
	}
	if c.Lockout.MaxAttempts < 1 || c.Lockout.Window <= 0 || c.Lockout.Duration <= 0 {
		return errors.New("invalid lockout settings")
	}
	return nil
}
