package context

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/model"
)

type claimsKey struct{}

// Manager stores the verified access token claims of the caller on the
// request context.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetClaimsToContext returns a copy of ctx carrying claims.
func (m *Manager) SetClaimsToContext(ctx context.Context, claims model.AccessClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaimsFromContext returns the claims set by SetClaimsToContext.
func (m *Manager) GetClaimsFromContext(ctx context.Context) (model.AccessClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(model.AccessClaims)
	return claims, ok
}

// GetUserIDFromContext returns the caller's user ID. A nil ID is reported as
// missing.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	claims, ok := m.GetClaimsFromContext(ctx)
	if !ok || claims.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return claims.UserID, true
}
