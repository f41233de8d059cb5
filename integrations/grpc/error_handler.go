package jwtgrpc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jwtbackend/go-jwt-backend/core"
)

// ErrorHandler converts validation errors to gRPC status errors.
type ErrorHandler func(error) error

// DefaultErrorHandler maps JWT validation errors to appropriate gRPC status codes.
// The status message is the ValidationError message; library details stay in
// the logs.
func DefaultErrorHandler(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrMultipleAuthHeaders) {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	var validationErr *core.ValidationError
	if errors.As(err, &validationErr) {
		return mapValidationError(validationErr)
	}

	// Default: treat unknown validation errors as Unauthenticated for security
	return status.Error(codes.Unauthenticated, "invalid or malformed token")
}

func mapValidationError(err *core.ValidationError) error {
	switch err.Code {
	case core.ErrorCodeTokenMissing:
		return status.Error(codes.Unauthenticated, "missing credentials")
	case core.ErrorCodeHeaderMalformed, core.ErrorCodeUnsupportedScheme:
		return status.Error(codes.InvalidArgument, err.Message)
	case core.ErrorCodeInvalidIssuer, core.ErrorCodeInvalidAudience:
		return status.Error(codes.PermissionDenied, err.Message)
	default:
		return status.Error(codes.Unauthenticated, err.Message)
	}
}
