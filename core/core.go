// Package core provides framework-agnostic JWT authentication logic that can be
// used across different transport layers (HTTP, gRPC, etc.).
//
// The Core type encapsulates header parsing and token validation and can be
// wrapped by transport-specific adapters.
package core

import (
	"context"
	"time"
)

// Validator verifies an encoded token and builds the authenticated User.
// Implementations live in the validator packages.
type Validator interface {
	ValidateToken(ctx context.Context, token string) (*User, error)
}

// Logger defines an optional logging interface for the core middleware.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Core is the framework-agnostic authentication engine.
// It is safe for concurrent use; all fields are fixed at construction.
type Core struct {
	validator           Validator
	scheme              string
	credentialsRequired bool
	logger              Logger
}

// Scheme returns the Authorization scheme the core accepts.
func (c *Core) Scheme() string {
	return c.scheme
}

// CredentialsRequired reports whether requests without credentials are rejected.
func (c *Core) CredentialsRequired() bool {
	return c.credentialsRequired
}

// Authenticate reads the Authorization header and validates the token it
// carries:
//   - no header: Unauthenticated, or ErrJWTMissing when credentials are required
//   - header present: the scheme is checked and the token is validated
func (c *Core) Authenticate(ctx context.Context, headers Headers) (Result, error) {
	var authorization string
	if headers != nil {
		authorization = headers.Get("Authorization")
	}
	if authorization == "" {
		return c.CheckToken(ctx, "")
	}

	token, err := ExtractToken(authorization, c.scheme)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("Could not extract token from Authorization header", "error", err)
		}
		return Result{}, err
	}

	return c.validate(ctx, token)
}

// CheckToken validates a token obtained by other means (query parameter,
// cookie). An empty token means no credentials were sent.
func (c *Core) CheckToken(ctx context.Context, token string) (Result, error) {
	if token == "" {
		if !c.credentialsRequired {
			if c.logger != nil {
				c.logger.Debug("No token provided, continuing unauthenticated")
			}
			return Unauthenticated(), nil
		}

		if c.logger != nil {
			c.logger.Warn("No token provided and credentials are required")
		}
		return Result{}, NewValidationError(ErrorCodeTokenMissing, "Forbidden", nil)
	}

	return c.validate(ctx, token)
}

func (c *Core) validate(ctx context.Context, token string) (Result, error) {
	start := time.Now()
	user, err := c.validator.ValidateToken(ctx, token)
	duration := time.Since(start)

	if err != nil {
		if c.logger != nil {
			c.logger.Error("Token validation failed", "error", err, "duration", duration)
		}
		return Result{}, err
	}
	if user == nil {
		return Result{}, NewValidationError(ErrorCodeInvalidClaims, "Token is invalid", nil)
	}

	if c.logger != nil {
		c.logger.Debug("Token validated successfully", "username", user.Username(), "duration", duration)
	}

	return Authenticated(user), nil
}
