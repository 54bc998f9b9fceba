package handler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	apiProto "github.com/dtroode/identity-server/api/identity/v1"
	grpcctx "github.com/dtroode/identity-server/internal/api/grpc/context"
	"github.com/dtroode/identity-server/internal/mocks"
	"github.com/dtroode/identity-server/internal/model"
	"github.com/dtroode/identity-server/internal/testutil"
)

func testProfile(id uuid.UUID) model.Profile {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return model.Profile{
		UserSummary: model.UserSummary{ID: id, Email: "alice@example.com", FirstName: "Alice", LastName: "Liddell", FullName: "Alice Liddell"},
		Phone:       "+44 20 7946 0000",
		Active:      true,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestAccount_GetMe(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := mocks.NewAccountService(t)
	svc.On("GetMe", mock.Anything, userID).Return(testProfile(userID), nil).Once()

	h := NewAccount(svc, grpcctx.NewManager(), testutil.MakeNoopLogger())
	out, err := h.GetMe(authedContext(userID), &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, userID.String(), out.GetUser().GetId())
	assert.Equal(t, "+44 20 7946 0000", out.GetPhone())
	assert.Empty(t, out.GetUser().GetRoles())
	assert.True(t, out.GetActive())
	assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), out.GetCreatedAt().AsTime())
}

func TestAccount_Unauthenticated(t *testing.T) {
	t.Parallel()

	h := NewAccount(mocks.NewAccountService(t), grpcctx.NewManager(), testutil.MakeNoopLogger())
	ctx := context.Background()

	_, err := h.GetMe(ctx, &emptypb.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	_, err = h.UpdateProfile(ctx, &apiProto.UpdateProfileRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	_, err = h.ChangePassword(ctx, &apiProto.ChangePasswordRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	_, err = h.Deactivate(ctx, &emptypb.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	_, err = h.ListSessions(ctx, &emptypb.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestAccount_UpdateProfile(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := mocks.NewAccountService(t)
	svc.On("UpdateProfile", mock.Anything, userID, model.ProfileUpdate{Phone: "+44 20 7946 0000"}).
		Return(testProfile(userID), nil).Once()

	h := NewAccount(svc, grpcctx.NewManager(), testutil.MakeNoopLogger())
	out, err := h.UpdateProfile(authedContext(userID), &apiProto.UpdateProfileRequest{Phone: "+44 20 7946 0000"})
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", out.GetUser().GetFullName())
}

func TestAccount_ChangePassword(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	params := model.ChangePasswordParams{CurrentPassword: "old", NewPassword: "new", ConfirmNewPassword: "other"}
	svc := mocks.NewAccountService(t)
	svc.On("ChangePassword", mock.Anything, userID, params).
		Return(model.NewValidationError("new passwords do not match")).Once()

	h := NewAccount(svc, grpcctx.NewManager(), testutil.MakeNoopLogger())
	_, err := h.ChangePassword(authedContext(userID), &apiProto.ChangePasswordRequest{
		CurrentPassword:    "old",
		NewPassword:        "new",
		ConfirmNewPassword: "other",
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestAccount_Deactivate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := mocks.NewAccountService(t)
	svc.On("Deactivate", mock.Anything, userID).Return(nil).Once()

	h := NewAccount(svc, grpcctx.NewManager(), testutil.MakeNoopLogger())
	_, err := h.Deactivate(authedContext(userID), &emptypb.Empty{})
	assert.NoError(t, err)
}

func TestAccount_ListSessions(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	revokedAt := created.Add(time.Minute)
	rotated := model.RevocationRotated
	svc := mocks.NewAccountService(t)
	svc.On("ListSessions", mock.Anything, userID).Return([]model.Session{
		{RefreshToken: model.RefreshToken{
			TokenHash: "h1", UserID: userID, CreatedAt: created, ExpiresAt: created.Add(time.Hour),
			IPAddress: "192.0.2.1", DeviceInfo: "cli", RevokedAt: &revokedAt, RevokedReason: &rotated,
		}},
		{RefreshToken: model.RefreshToken{
			TokenHash: "h2", UserID: userID, CreatedAt: revokedAt, ExpiresAt: revokedAt.Add(time.Hour),
			IPAddress: "192.0.2.1", DeviceInfo: "cli",
		}, Active: true},
	}, nil).Once()

	h := NewAccount(svc, grpcctx.NewManager(), testutil.MakeNoopLogger())
	out, err := h.ListSessions(authedContext(userID), &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, out.GetSessions(), 2)

	first := out.GetSessions()[0]
	assert.Equal(t, "192.0.2.1", first.GetIpAddress())
	assert.Equal(t, created.Add(time.Hour), first.GetExpiresAt().AsTime())
	assert.False(t, first.GetActive())
	assert.Equal(t, "rotated", first.GetRevokedReason())
	assert.Equal(t, revokedAt, first.GetRevokedAt().AsTime())

	second := out.GetSessions()[1]
	assert.True(t, second.GetActive())
	assert.Empty(t, second.GetRevokedReason())
	assert.Nil(t, second.GetRevokedAt())
}

func TestAccount_GetUser(t *testing.T) {
	t.Parallel()

	adminID, targetID := uuid.New(), uuid.New()
	inactive := testProfile(targetID)
	inactive.Active = false

	svc := mocks.NewAccountService(t)
	svc.On("GetUser", mock.Anything, targetID).Return(inactive, nil).Once()
	svc.On("GetUser", mock.Anything, mock.Anything).Return(model.Profile{}, model.ErrNotFound).Once()

	h := NewAccount(svc, grpcctx.NewManager(), testutil.MakeNoopLogger())
	ctx := authedContext(adminID)

	out, err := h.GetUser(ctx, &apiProto.GetUserRequest{UserId: targetID.String()})
	require.NoError(t, err)
	assert.Equal(t, targetID.String(), out.GetUser().GetId())
	assert.False(t, out.GetActive())

	_, err = h.GetUser(ctx, &apiProto.GetUserRequest{UserId: uuid.NewString()})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestAccount_InvalidUserID(t *testing.T) {
	t.Parallel()

	h := NewAccount(mocks.NewAccountService(t), grpcctx.NewManager(), testutil.MakeNoopLogger())
	ctx := authedContext(uuid.New())

	for _, raw := range []string{"", "not-a-uuid", uuid.Nil.String()} {
		_, err := h.GetUser(ctx, &apiProto.GetUserRequest{UserId: raw})
		assert.Equal(t, codes.InvalidArgument, status.Code(err), raw)

		_, err = h.DeactivateUser(ctx, &apiProto.DeactivateUserRequest{UserId: raw})
		assert.Equal(t, codes.InvalidArgument, status.Code(err), raw)
	}
}

func TestAccount_DeactivateUser(t *testing.T) {
	t.Parallel()

	adminID, targetID := uuid.New(), uuid.New()
	svc := mocks.NewAccountService(t)
	svc.On("DeactivateUser", mock.Anything, adminID, targetID).Return(nil).Once()
	svc.On("DeactivateUser", mock.Anything, adminID, mock.Anything).Return(model.ErrNotFound).Once()

	h := NewAccount(svc, grpcctx.NewManager(), testutil.MakeNoopLogger())
	ctx := authedContext(adminID)

	out, err := h.DeactivateUser(ctx, &apiProto.DeactivateUserRequest{UserId: targetID.String()})
	require.NoError(t, err)
	assert.NotNil(t, out)

	_, err = h.DeactivateUser(ctx, &apiProto.DeactivateUserRequest{UserId: uuid.NewString()})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = h.DeactivateUser(context.Background(), &apiProto.DeactivateUserRequest{UserId: targetID.String()})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
