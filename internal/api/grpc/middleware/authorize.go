package middleware

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

// Authorize is a unary interceptor that enforces role requirements. It reads
// the claims Authenticate put on the context, so it must run after it.
type Authorize struct {
	required       map[string][]string
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthorize creates an Authorize middleware. required maps a full method
// name to the roles allowed to call it; any one of them is enough.
func NewAuthorize(required map[string][]string, contextManager model.ContextManager, logger *logger.Logger) *Authorize {
	return &Authorize{required: required, contextManager: contextManager, logger: logger}
}

// HandleGRPC rejects callers missing every role required by the method.
func (m *Authorize) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	roles, ok := m.required[info.FullMethod]
	if !ok {
		return handler(ctx, req)
	}

	claims, ok := m.contextManager.GetClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing authorization token")
	}

	if !hasAnyRole(claims.Roles, roles) {
		m.logger.Info("Authorize middleware: permission denied",
			"method", info.FullMethod,
			"user_id", claims.UserID.String())
		return nil, status.Error(codes.PermissionDenied, "permission denied")
	}

	return handler(ctx, req)
}

func hasAnyRole(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
