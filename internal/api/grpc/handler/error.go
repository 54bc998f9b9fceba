package handler

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

// errorDomain is the ErrorInfo domain of every status this service returns.
const errorDomain = "identity"

// Machine readable ErrorInfo reasons.
const (
	ReasonValidationFailed   = "VALIDATION_FAILED"
	ReasonDuplicateAccount   = "DUPLICATE_ACCOUNT"
	ReasonInvalidCredentials = "INVALID_CREDENTIALS"
	ReasonAccountLocked      = "ACCOUNT_LOCKED"
	ReasonAccountDeactivated = "ACCOUNT_DEACTIVATED"
	ReasonInvalidToken       = "INVALID_TOKEN"
	ReasonTokenExpired       = "TOKEN_EXPIRED"
	ReasonTokenReuseDetected = "TOKEN_REUSE_DETECTED"
	ReasonNotFound           = "NOT_FOUND"
)

var errorMapping = []struct {
	err    error
	code   codes.Code
	reason string
}{
	{model.ErrDuplicateAccount, codes.AlreadyExists, ReasonDuplicateAccount},
	{model.ErrInvalidCredentials, codes.Unauthenticated, ReasonInvalidCredentials},
	{model.ErrAccountLocked, codes.Unauthenticated, ReasonAccountLocked},
	{model.ErrAccountDeactivated, codes.Unauthenticated, ReasonAccountDeactivated},
	{model.ErrInvalidToken, codes.Unauthenticated, ReasonInvalidToken},
	{model.ErrTokenExpired, codes.Unauthenticated, ReasonTokenExpired},
	{model.ErrTokenReuseDetected, codes.Unauthenticated, ReasonTokenReuseDetected},
	{model.ErrNotFound, codes.NotFound, ReasonNotFound},
}

// handleError converts a service error into a gRPC status. Known failures
// keep their message and carry an ErrorInfo; anything else becomes Internal
// without leaking details.
func handleError(err error) error {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		br := &errdetails.BadRequest{}
		for _, reason := range verr.Reasons {
			br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
				Description: reason,
			})
		}
		return statusWithDetails(codes.InvalidArgument, verr.Error(), ReasonValidationFailed, br)
	}
	if errors.Is(err, model.ErrValidationFailed) {
		return statusWithDetails(codes.InvalidArgument, err.Error(), ReasonValidationFailed, nil)
	}

	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return statusWithDetails(m.code, m.err.Error(), m.reason, nil)
		}
	}

	return status.Error(codes.Internal, "internal server error")
}

func statusWithDetails(code codes.Code, msg, reason string, br *errdetails.BadRequest) error {
	st := status.New(code, msg)
	info := &errdetails.ErrorInfo{Reason: reason, Domain: errorDomain}

	var (
		withDetails *status.Status
		err         error
	)
	if br != nil {
		withDetails, err = st.WithDetails(info, br)
	} else {
		withDetails, err = st.WithDetails(info)
	}
	if err != nil {
		return st.Err()
	}
	return withDetails.Err()
}

// logFailure logs expected outcomes at info level and everything else as an error.
func logFailure(lg *logger.Logger, msg string, err error, attrs ...any) {
	attrs = append(attrs, "error", err.Error())
	if code := status.Code(handleError(err)); code == codes.Internal {
		lg.Error(msg, attrs...)
		return
	}
	lg.Info(msg, attrs...)
}
