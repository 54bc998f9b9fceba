package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager stores the authenticated caller on the request context.
type ContextManager interface {
	SetClaimsToContext(ctx context.Context, claims AccessClaims) context.Context
	GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool)
	GetClaimsFromContext(ctx context.Context) (AccessClaims, bool)
}
