package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dtroode/identity-server/internal/metrics"
	"github.com/dtroode/identity-server/internal/model"
	"github.com/dtroode/identity-server/internal/token"
)

// Config holds session settings. It is passed by value and never mutated
// after construction.
type Config struct {
	RefreshTTL        time.Duration
	RefreshTokenBytes int
	DefaultRole       string
	// AdminEmails are granted the Admin role on registration.
	AdminEmails []string
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		RefreshTTL:        7 * 24 * time.Hour,
		RefreshTokenBytes: 64,
		DefaultRole:       model.RoleCustomer,
	}
}

// Validate checks the configuration for unusable values.
func (c Config) Validate() error {
	if c.RefreshTTL <= 0 {
		return errors.New("refresh token ttl must be positive")
	}
	if c.RefreshTokenBytes < token.MinRefreshTokenBytes {
		return fmt.Errorf("refresh token must be at least %d bytes", token.MinRefreshTokenBytes)
	}
	for _, r := range model.Roles {
		if r == c.DefaultRole {
			return nil
		}
	}
	return fmt.Errorf("unknown default role %q", c.DefaultRole)
}

type options struct {
	now     func() time.Time
	random  io.Reader
	metrics *metrics.Metrics
}

// Option customizes a service.
type Option func(*options)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithRandom replaces the source of refresh token bytes. It must be
// cryptographically secure outside tests.
func WithRandom(r io.Reader) Option {
	return func(o *options) { o.random = r }
}

// WithMetrics records outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func newOptions(opts []Option) options {
	o := options{now: time.Now, random: rand.Reader}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
