package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	apiProto "github.com/dtroode/identity-server/api/identity/v1"
	"github.com/dtroode/identity-server/internal/api/grpc/handler"
	"github.com/dtroode/identity-server/internal/api/grpc/middleware"
	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

// TokenService is the session engine as seen by the transport: refresh token
// operations plus access token verification for the auth interceptor.
type TokenService interface {
	handler.TokenService
	middleware.ClaimsParser
}

// publicMethods are served without a bearer token.
var publicMethods = map[string]struct{}{
	apiProto.Auth_Register_FullMethodName: {},
	apiProto.Auth_Login_FullMethodName:    {},
	apiProto.Auth_Refresh_FullMethodName:  {},
}

// adminMethods act on other accounts and need the Admin role.
var adminMethods = map[string][]string{
	apiProto.Account_GetUser_FullMethodName:        {model.RoleAdmin},
	apiProto.Account_DeactivateUser_FullMethodName: {model.RoleAdmin},
}

const healthServicePrefix = "/grpc.health.v1.Health/"

// Router wires handlers and interceptors into a gRPC server.
type Router struct {
	authService    handler.AuthService
	tokenService   TokenService
	accountService handler.AccountService
	contextManager model.ContextManager
	logger         *logger.Logger
	health         *health.Server
}

// New creates a new gRPC Router instance.
func New(
	authService handler.AuthService,
	tokenService TokenService,
	accountService handler.AccountService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		tokenService:   tokenService,
		accountService: accountService,
		contextManager: contextManager,
		logger:         logger,
		health:         health.NewServer(),
	}
}

func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	if strings.HasPrefix(c.FullMethod(), healthServicePrefix) {
		return false
	}
	_, public := publicMethods[c.FullMethod()]
	return !public
}

// Register builds the gRPC server with recovery, request logging,
// authentication and role interceptors and registers every service.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)
	authorize := middleware.NewAuthorize(adminMethods, r.contextManager, r.logger)
	recoveryOpt := recovery.WithRecoveryHandlerContext(r.recoverPanic)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recoveryOpt),
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
			authorize.HandleGRPC,
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoveryOpt),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
	)

	apiProto.RegisterAuthServer(s, handler.NewAuth(r.authService, r.tokenService, r.contextManager, r.logger))
	apiProto.RegisterAccountServer(s, handler.NewAccount(r.accountService, r.contextManager, r.logger))

	healthpb.RegisterHealthServer(s, r.health)
	r.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	r.health.SetServingStatus(apiProto.Auth_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	r.health.SetServingStatus(apiProto.Account_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return s
}

// Shutdown reports NOT_SERVING to health checks so load balancers drain the
// instance before it stops.
func (r *Router) Shutdown() {
	r.health.Shutdown()
}

func (r *Router) recoverPanic(_ context.Context, p any) error {
	r.logger.Error("gRPC handler panicked",
		"panic", p)
	return status.Error(codes.Internal, "internal server error")
}
