package handler

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"

	apiProto "github.com/dtroode/identity-server/api/identity/v1"
	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

// AccountService defines the owner's and the administrator's account operations.
type AccountService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (model.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update model.ProfileUpdate) (model.Profile, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, params model.ChangePasswordParams) error
	Deactivate(ctx context.Context, userID uuid.UUID) error
	ListSessions(ctx context.Context, userID uuid.UUID) ([]model.Session, error)
	GetUser(ctx context.Context, targetID uuid.UUID) (model.Profile, error)
	DeactivateUser(ctx context.Context, actorID, targetID uuid.UUID) error
}

// Account handles gRPC endpoints of the identity.v1.Account service.
type Account struct {
	apiProto.UnimplementedAccountServer
	accountService AccountService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAccount creates a new Account handler.
func NewAccount(accountService AccountService, contextManager model.ContextManager, logger *logger.Logger) *Account {
	return &Account{
		accountService: accountService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Account) GetMe(ctx context.Context, _ *emptypb.Empty) (*apiProto.Profile, error) {
	userID, err := callerID(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	profile, err := h.accountService.GetMe(ctx, userID)
	if err != nil {
		logFailure(h.logger, "Account handler: get profile failed", err,
			"user_id", userID.String())
		return nil, handleError(err)
	}

	return toProfile(profile), nil
}

func (h *Account) UpdateProfile(ctx context.Context, req *apiProto.UpdateProfileRequest) (*apiProto.Profile, error) {
	userID, err := callerID(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	profile, err := h.accountService.UpdateProfile(ctx, userID, model.ProfileUpdate{
		FirstName: req.GetFirstName(),
		LastName:  req.GetLastName(),
		Phone:     req.GetPhone(),
	})
	if err != nil {
		logFailure(h.logger, "Account handler: profile update failed", err,
			"user_id", userID.String())
		return nil, handleError(err)
	}

	return toProfile(profile), nil
}

// ChangePassword replaces the password; every existing session ends.
func (h *Account) ChangePassword(ctx context.Context, req *apiProto.ChangePasswordRequest) (*emptypb.Empty, error) {
	userID, err := callerID(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	err = h.accountService.ChangePassword(ctx, userID, model.ChangePasswordParams{
		CurrentPassword:    req.GetCurrentPassword(),
		NewPassword:        req.GetNewPassword(),
		ConfirmNewPassword: req.GetConfirmNewPassword(),
	})
	if err != nil {
		logFailure(h.logger, "Account handler: password change failed", err,
			"user_id", userID.String())
		return nil, handleError(err)
	}

	h.logger.Info("Account handler: password changed",
		"user_id", userID.String())

	return &emptypb.Empty{}, nil
}

func (h *Account) Deactivate(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	userID, err := callerID(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	if err := h.accountService.Deactivate(ctx, userID); err != nil {
		logFailure(h.logger, "Account handler: deactivation failed", err,
			"user_id", userID.String())
		return nil, handleError(err)
	}

	h.logger.Info("Account handler: account deactivated",
		"user_id", userID.String())

	return &emptypb.Empty{}, nil
}

// ListSessions lists every session of the caller, revoked ones included.
func (h *Account) ListSessions(ctx context.Context, _ *emptypb.Empty) (*apiProto.ListSessionsResponse, error) {
	userID, err := callerID(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	sessions, err := h.accountService.ListSessions(ctx, userID)
	if err != nil {
		logFailure(h.logger, "Account handler: list sessions failed", err,
			"user_id", userID.String())
		return nil, handleError(err)
	}

	resp := &apiProto.ListSessionsResponse{Sessions: make([]*apiProto.Session, 0, len(sessions))}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, toSession(s))
	}
	return resp, nil
}

// GetUser returns any account's profile. The router only lets administrators through.
func (h *Account) GetUser(ctx context.Context, req *apiProto.GetUserRequest) (*apiProto.Profile, error) {
	targetID, err := parseUserID(req.GetUserId())
	if err != nil {
		return nil, err
	}

	profile, err := h.accountService.GetUser(ctx, targetID)
	if err != nil {
		logFailure(h.logger, "Account handler: get user failed", err,
			"user_id", targetID.String())
		return nil, handleError(err)
	}

	return toProfile(profile), nil
}

// DeactivateUser deactivates another account. The router only lets
// administrators through.
func (h *Account) DeactivateUser(ctx context.Context, req *apiProto.DeactivateUserRequest) (*emptypb.Empty, error) {
	actorID, err := callerID(ctx, h.contextManager)
	if err != nil {
		return nil, err
	}

	targetID, err := parseUserID(req.GetUserId())
	if err != nil {
		return nil, err
	}

	if err := h.accountService.DeactivateUser(ctx, actorID, targetID); err != nil {
		logFailure(h.logger, "Account handler: user deactivation failed", err,
			"user_id", targetID.String(),
			"actor_id", actorID.String())
		return nil, handleError(err)
	}

	h.logger.Info("Account handler: user deactivated",
		"user_id", targetID.String(),
		"actor_id", actorID.String())

	return &emptypb.Empty{}, nil
}

func parseUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, handleError(model.NewValidationError("user_id must be a valid UUID"))
	}
	return id, nil
}

func toProfile(p model.Profile) *apiProto.Profile {
	return &apiProto.Profile{
		User:      toUser(p.UserSummary),
		Phone:     p.Phone,
		Active:    p.Active,
		CreatedAt: timestamppb.New(p.CreatedAt),
		UpdatedAt: timestamppb.New(p.UpdatedAt),
	}
}

func toSession(s model.Session) *apiProto.Session {
	out := &apiProto.Session{
		CreatedAt:  timestamppb.New(s.CreatedAt),
		ExpiresAt:  timestamppb.New(s.ExpiresAt),
		IpAddress:  s.IPAddress,
		DeviceInfo: s.DeviceInfo,
		Active:     s.Active,
	}
	if s.RevokedAt != nil {
		out.RevokedAt = timestamppb.New(*s.RevokedAt)
	}
	if s.RevokedReason != nil {
		out.RevokedReason = string(*s.RevokedReason)
	}
	return out
}
