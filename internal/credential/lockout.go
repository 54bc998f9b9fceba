package credential

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Lockout counts failed password attempts per account.
type Lockout interface {
	IsLocked(ctx context.Context, accountID uuid.UUID) (bool, error)
	// RecordFailure counts a failed attempt and reports whether the account
	// is locked as a result.
	RecordFailure(ctx context.Context, accountID uuid.UUID) (bool, error)
	Reset(ctx context.Context, accountID uuid.UUID) error
}

type lockoutEntry struct {
	failures    int
	windowEnds  time.Time
	lockedUntil time.Time
}

// MemoryLockout is a process-local Lockout for single instance deployments
// and tests.
type MemoryLockout struct {
	cfg     LockoutConfig
	now     func() time.Time
	mu      sync.Mutex
	entries map[uuid.UUID]*lockoutEntry
}

var _ Lockout = (*MemoryLockout)(nil)

// NewMemoryLockout creates a MemoryLockout. now may be nil.
func NewMemoryLockout(cfg LockoutConfig, now func() time.Time) *MemoryLockout {
	if now == nil {
		now = time.Now
	}
	return &MemoryLockout{cfg: cfg, now: now, entries: make(map[uuid.UUID]*lockoutEntry)}
}

func (l *MemoryLockout) IsLocked(_ context.Context, accountID uuid.UUID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[accountID]
	if !ok {
		return false, nil
	}
	return l.now().Before(e.lockedUntil), nil
}

func (l *MemoryLockout) RecordFailure(_ context.Context, accountID uuid.UUID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[accountID]
	if !ok {
		e = &lockoutEntry{}
		l.entries[accountID] = e
	}
	if !now.Before(e.windowEnds) {
		e.failures = 0
		e.windowEnds = now.Add(l.cfg.Window)
	}

	e.failures++
	if e.failures >= l.cfg.MaxAttempts {
		e.failures = 0
		e.windowEnds = time.Time{}
		e.lockedUntil = now.Add(l.cfg.Duration)
		return true, nil
	}
	return false, nil
}

func (l *MemoryLockout) Reset(_ context.Context, accountID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[accountID]; ok {
		e.failures = 0
		e.windowEnds = time.Time{}
	}
	return nil
}
