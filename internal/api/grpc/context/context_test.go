package context

import (
	stdctx "context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"

	"github.com/dtroode/identity-server/internal/model"
)

func TestManager_SetAndGetClaims(t *testing.T) {
	m := NewManager()
	claims := model.AccessClaims{UserID: uuid.New(), Email: "alice@example.com", Roles: []string{model.RoleCustomer}}
	ctx := m.SetClaimsToContext(stdctx.Background(), claims)

	got, ok := m.GetClaimsFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, claims, got)

	uid, ok := m.GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, claims.UserID, uid)
}

func TestManager_GetUserID_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetUserIDFromContext(stdctx.Background())
	assert.False(t, ok)
}

func TestManager_GetUserID_IgnoresMetadata(t *testing.T) {
	m := NewManager()
	md := metadata.New(map[string]string{"user_id": uuid.New().String()})
	ctx := metadata.NewIncomingContext(stdctx.Background(), md)

	_, ok := m.GetUserIDFromContext(ctx)
	assert.False(t, ok, "client supplied metadata must not authenticate")
}

func TestManager_GetUserID_NilID(t *testing.T) {
	m := NewManager()
	ctx := m.SetClaimsToContext(stdctx.Background(), model.AccessClaims{})

	_, ok := m.GetUserIDFromContext(ctx)
	assert.False(t, ok)
}
