package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/identity-server/internal/model"
)

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	r := NewAccountRepository()
	now := time.Now()

	a := model.Account{
		ID:        uuid.New(),
		Email:     "Ada@Example.com",
		FirstName: "Ada",
		Active:    true,
		Roles:     []string{model.RoleCustomer},
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := r.Create(ctx, a)
	require.NoError(t, err)

	_, err = r.Create(ctx, model.Account{ID: uuid.New(), Email: " ada@example.COM"})
	assert.ErrorIs(t, err, model.ErrDuplicate)

	got, err := r.GetByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	got.Roles[0] = "mutated"
	again, err := r.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{model.RoleCustomer}, again.Roles)

	later := now.Add(time.Minute)
	updated, err := r.UpdateProfile(ctx, a.ID, model.ProfileUpdate{LastName: "Lovelace"}, later)
	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "Lovelace", updated.LastName)
	assert.Equal(t, later, updated.UpdatedAt)

	require.NoError(t, r.SetPasswordHash(ctx, a.ID, "h", later))
	require.NoError(t, r.AddRole(ctx, a.ID, model.RoleSeller))
	require.NoError(t, r.AddRole(ctx, a.ID, model.RoleSeller))
	require.NoError(t, r.Deactivate(ctx, a.ID, later))

	final, err := r.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "h", final.PasswordHash)
	assert.Equal(t, []string{model.RoleCustomer, model.RoleSeller}, final.Roles)
	assert.False(t, final.Active)
}

func TestAccountRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	r := NewAccountRepository()
	id := uuid.New()

	_, err := r.GetByID(ctx, id)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = r.GetByEmail(ctx, "x@example.com")
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = r.UpdateProfile(ctx, id, model.ProfileUpdate{}, time.Now())
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, r.SetPasswordHash(ctx, id, "h", time.Now()), model.ErrNotFound)
	assert.ErrorIs(t, r.Deactivate(ctx, id, time.Now()), model.ErrNotFound)
	assert.ErrorIs(t, r.AddRole(ctx, id, model.RoleAdmin), model.ErrNotFound)
}
