package handler

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"

	apiProto "github.com/dtroode/identity-server/api/identity/v1"
	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

// AuthService defines user registration and login operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.AuthResult, error)
	Login(ctx context.Context, params model.LoginParams) (model.AuthResult, error)
}

// TokenService defines refresh token exchange and revocation.
type TokenService interface {
	Refresh(ctx context.Context, refreshToken string, device model.DeviceContext) (model.AuthResult, error)
	Revoke(ctx context.Context, userID uuid.UUID, refreshToken string, all bool) error
	Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error
}

// Auth handles gRPC endpoints for authentication.
type Auth struct {
	apiProto.UnimplementedAuthServer
	authService    AuthService
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		tokenService:   tokenService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register creates an account and returns its first session.
func (h *Auth) Register(ctx context.Context, req *apiProto.RegisterRequest) (*apiProto.AuthResponse, error) {
	h.logger.Debug("Auth handler: processing registration request")

	result, err := h.authService.Register(ctx, model.RegisterParams{
		Email:           req.GetEmail(),
		Password:        req.GetPassword(),
		ConfirmPassword: req.GetConfirmPassword(),
		FirstName:       req.GetFirstName(),
		LastName:        req.GetLastName(),
		Phone:           req.GetPhone(),
		Device:          newSessionDevice(ctx, req.GetDeviceInfo()),
	})
	if err != nil {
		logFailure(h.logger, "Auth handler: registration failed", err)
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: registration completed",
		"user_id", result.User.ID.String())

	return toAuthResponse(result), nil
}

// Login verifies credentials and returns a new session.
func (h *Auth) Login(ctx context.Context, req *apiProto.LoginRequest) (*apiProto.AuthResponse, error) {
	h.logger.Debug("Auth handler: processing login request")

	result, err := h.authService.Login(ctx, model.LoginParams{
		Email:    req.GetEmail(),
		Password: req.GetPassword(),
		Device:   newSessionDevice(ctx, req.GetDeviceInfo()),
	})
	if err != nil {
		logFailure(h.logger, "Auth handler: login failed", err)
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: login completed",
		"user_id", result.User.ID.String())

	return toAuthResponse(result), nil
}

// Refresh exchanges a refresh token for a new session pair.
func (h *Auth) Refresh(ctx context.Context, req *apiProto.RefreshRequest) (*apiProto.AuthResponse, error) {
	h.logger.Debug("Auth handler: processing token refresh request")

	result, err := h.tokenService.Refresh(ctx, req.GetRefreshToken(), deviceFromContext(ctx, req.GetDeviceInfo()))
	if err != nil {
		logFailure(h.logger, "Auth handler: token refresh failed", err)
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: token refresh successful",
		"user_id", result.User.ID.String())

	return toAuthResponse(result), nil
}

// Revoke revokes one of the caller's refresh tokens or all of them.
func (h *Auth) Revoke(ctx context.Context, req *apiProto.RevokeRequest) (*emptypb.Empty, error) {
	userID, err := h.callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.tokenService.Revoke(ctx, userID, req.GetRefreshToken(), req.GetAll()); err != nil {
		logFailure(h.logger, "Auth handler: token revoke failed", err,
			"user_id", userID.String())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: token revoke successful",
		"user_id", userID.String(),
		"all", req.GetAll())

	return &emptypb.Empty{}, nil
}

// Logout ends the caller's session. It succeeds for unknown or already
// revoked tokens.
func (h *Auth) Logout(ctx context.Context, req *apiProto.LogoutRequest) (*emptypb.Empty, error) {
	userID, err := h.callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.tokenService.Logout(ctx, userID, req.GetRefreshToken()); err != nil {
		logFailure(h.logger, "Auth handler: logout failed", err,
			"user_id", userID.String())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: logout successful",
		"user_id", userID.String())

	return &emptypb.Empty{}, nil
}

func (h *Auth) callerID(ctx context.Context) (uuid.UUID, error) {
	return callerID(ctx, h.contextManager)
}

func callerID(ctx context.Context, cm model.ContextManager) (uuid.UUID, error) {
	userID, ok := cm.GetUserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, status.Error(codes.Unauthenticated, "missing authorization token")
	}
	return userID, nil
}

func toUser(u model.UserSummary) *apiProto.User {
	return &apiProto.User{
		Id:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName,
		Roles:     u.Roles,
	}
}

func toAuthResponse(r model.AuthResult) *apiProto.AuthResponse {
	return &apiProto.AuthResponse{
		AccessToken:          r.AccessToken,
		RefreshToken:         r.RefreshToken,
		AccessTokenExpiresAt: timestamppb.New(r.AccessTokenExpiresAt),
		User:                 toUser(r.User),
	}
}
