package middleware

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

// ClaimsParser verifies an access token and returns its claims.
type ClaimsParser interface {
	GetClaims(ctx context.Context, token string) (model.AccessClaims, error)
}

// Authenticate validates bearer tokens and injects the caller's claims into context.
type Authenticate struct {
	parser         ClaimsParser
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(parser ClaimsParser, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{parser: parser, contextManager: contextManager, logger: logger}
}

// AuthFunc reads the "authorization: Bearer <token>" metadata, verifies the
// token and returns a context carrying its claims.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	tokenString, err := auth.AuthFromMD(ctx, "bearer")
	if err != nil || strings.TrimSpace(tokenString) == "" {
		return nil, status.Error(codes.Unauthenticated, "missing authorization token")
	}

	claims, err := m.parser.GetClaims(ctx, tokenString)
	if err != nil {
		m.logger.Debug("Authenticate middleware: rejected access token",
			"error", err.Error())
		return nil, status.Error(codes.Unauthenticated, "invalid authorization token")
	}

	return m.contextManager.SetClaimsToContext(ctx, claims), nil
}
