package jwtgrpc

import (
	"errors"

	"github.com/jwtbackend/go-jwt-backend/core"
)

// Option configures the JWT interceptor.
type Option func(*JWTInterceptor) error

// Logger defines an optional logging interface compatible with log/slog.
// This is the same interface used by core for consistent logging across the stack.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// WithValidator sets the JWT validator (REQUIRED).
//
// Example:
//
//	interceptor, _ := jwtgrpc.New(
//	    jwtgrpc.WithValidator(v),
//	    jwtgrpc.WithLogger(logger),
//	)
func WithValidator(v core.Validator) Option {
	return func(i *JWTInterceptor) error {
		if v == nil {
			return errors.New("validator cannot be nil")
		}
		i.coreOpts = append(i.coreOpts, core.WithValidator(v))
		i.hasValidator = true
		return nil
	}
}

// WithScheme sets the expected authorization scheme.
//
// Default: "JWT"
func WithScheme(scheme string) Option {
	return func(i *JWTInterceptor) error {
		i.coreOpts = append(i.coreOpts, core.WithScheme(scheme))
		return nil
	}
}

// WithCredentialsRequired rejects calls without a token with Unauthenticated.
//
// Default: false (calls continue with an unauthenticated result)
func WithCredentialsRequired(required bool) Option {
	return func(i *JWTInterceptor) error {
		i.coreOpts = append(i.coreOpts, core.WithCredentialsRequired(required))
		return nil
	}
}

// WithLogger sets an optional logger for the interceptor.
// The logger will be used throughout the validation flow in both interceptor and core.
func WithLogger(logger Logger) Option {
	return func(i *JWTInterceptor) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		i.coreOpts = append(i.coreOpts, core.WithLogger(logger))
		i.logger = logger
		return nil
	}
}

// WithErrorHandler sets a custom error handler function.
// Default is DefaultErrorHandler which maps errors to gRPC status codes.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(i *JWTInterceptor) error {
		if handler == nil {
			return errors.New("error handler cannot be nil")
		}
		i.errorHandler = handler
		return nil
	}
}

// WithExcludedMethods excludes specific gRPC methods from JWT validation.
// Methods should be provided in the format: "/package.Service/Method"
// Example: "/myapp.MyService/PublicMethod", "/grpc.health.v1.Health/Check"
func WithExcludedMethods(methods ...string) Option {
	return func(i *JWTInterceptor) error {
		if i.excludedMethods == nil {
			i.excludedMethods = make(map[string]bool)
		}
		for _, method := range methods {
			i.excludedMethods[method] = true
		}
		return nil
	}
}
