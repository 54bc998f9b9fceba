package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

// RefreshTokenRepository is an in-memory model.RefreshTokenStore.
type RefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]model.RefreshToken
	byUser map[uuid.UUID][]string
}

// NewRefreshTokenRepository creates an empty RefreshTokenRepository.
func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{
		tokens: make(map[string]model.RefreshToken),
		byUser: make(map[uuid.UUID][]string),
	}
}

func (r *RefreshTokenRepository) Create(_ context.Context, token model.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insertLocked(token)
}

func (r *RefreshTokenRepository) GetByHash(_ context.Context, tokenHash string) (model.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[tokenHash]
	if !ok {
		return model.RefreshToken{}, model.ErrNotFound
	}
	return cloneToken(t), nil
}

func (r *RefreshTokenRepository) Rotate(_ context.Context, oldHash string, next model.RefreshToken, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.tokens[oldHash]
	if !ok {
		return model.ErrNotFound
	}
	if old.Revoked() {
		return model.ErrTokenRevoked
	}
	if _, exists := r.tokens[next.TokenHash]; exists {
		return model.ErrDuplicate
	}

	reason := model.RevocationRotated
	replacedBy := next.TokenHash
	revokedAt := now
	old.RevokedAt = &revokedAt
	old.RevokedReason = &reason
	old.ReplacedByHash = &replacedBy
	r.tokens[oldHash] = old

	return r.insertLocked(next)
}

func (r *RefreshTokenRepository) Revoke(_ context.Context, tokenHash string, reason model.RevocationReason, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[tokenHash]
	if !ok {
		return model.ErrNotFound
	}
	if t.Revoked() {
		return model.ErrTokenRevoked
	}

	r.revokeLocked(&t, reason, now)
	r.tokens[tokenHash] = t
	return nil
}

func (r *RefreshTokenRepository) RevokeAllByUser(_ context.Context, userID uuid.UUID, reason model.RevocationReason, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, h := range r.byUser[userID] {
		t := r.tokens[h]
		if !t.Active(now) {
			continue
		}
		r.revokeLocked(&t, reason, now)
		r.tokens[h] = t
		n++
	}
	return n, nil
}

func (r *RefreshTokenRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]model.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hashes := r.byUser[userID]
	out := make([]model.RefreshToken, 0, len(hashes))
	for _, h := range hashes {
		out = append(out, cloneToken(r.tokens[h]))
	}
	return out, nil
}

func (r *RefreshTokenRepository) insertLocked(token model.RefreshToken) error {
	if _, exists := r.tokens[token.TokenHash]; exists {
		return model.ErrDuplicate
	}
	r.tokens[token.TokenHash] = cloneToken(token)
	r.byUser[token.UserID] = append(r.byUser[token.UserID], token.TokenHash)
	return nil
}

func (r *RefreshTokenRepository) revokeLocked(t *model.RefreshToken, reason model.RevocationReason, now time.Time) {
	revokedAt := now
	t.RevokedAt = &revokedAt
	t.RevokedReason = &reason
}

func cloneToken(t model.RefreshToken) model.RefreshToken {
	if t.RevokedAt != nil {
		v := *t.RevokedAt
		t.RevokedAt = &v
	}
	if t.RevokedReason != nil {
		v := *t.RevokedReason
		t.RevokedReason = &v
	}
	if t.ReplacedByHash != nil {
		v := *t.ReplacedByHash
		t.ReplacedByHash = &v
	}
	return t
}
