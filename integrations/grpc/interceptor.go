package jwtgrpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jwtbackend/go-jwt-backend/core"
)

// JWTInterceptor provides JWT validation for gRPC servers.
type JWTInterceptor struct {
	core            *core.Core
	errorHandler    ErrorHandler
	excludedMethods map[string]bool
	logger          Logger

	// Accumulated during construction
	coreOpts     []core.Option
	hasValidator bool
}

// New creates a new gRPC JWT interceptor with the provided options.
// WithValidator option is required.
func New(opts ...Option) (*JWTInterceptor, error) {
	interceptor := &JWTInterceptor{
		errorHandler:    DefaultErrorHandler,
		excludedMethods: make(map[string]bool),
	}

	for _, opt := range opts {
		if err := opt(interceptor); err != nil {
			return nil, err
		}
	}

	if !interceptor.hasValidator {
		return nil, errors.New("validator is required, use WithValidator option")
	}

	c, err := core.New(interceptor.coreOpts...)
	if err != nil {
		return nil, err
	}
	interceptor.core = c
	interceptor.coreOpts = nil

	return interceptor, nil
}

// UnaryServerInterceptor returns a grpc.UnaryServerInterceptor that validates JWTs.
// It reads the JWT from gRPC metadata, validates it, and stores the result in
// the request context.
func (i *JWTInterceptor) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if i.excludedMethods[info.FullMethod] {
			if i.logger != nil {
				i.logger.Debug("skipping JWT validation for excluded method",
					"method", info.FullMethod)
			}
			return handler(ctx, req)
		}

		validatedCtx, err := i.validateRequest(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}

		return handler(validatedCtx, req)
	}
}

// StreamServerInterceptor returns a grpc.StreamServerInterceptor that validates JWTs.
func (i *JWTInterceptor) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		if i.excludedMethods[info.FullMethod] {
			if i.logger != nil {
				i.logger.Debug("skipping JWT validation for excluded method",
					"method", info.FullMethod)
			}
			return handler(srv, ss)
		}

		validatedCtx, err := i.validateRequest(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}

		return handler(srv, &wrappedServerStream{
			ServerStream: ss,
			ctx:          validatedCtx,
		})
	}
}

func (i *JWTInterceptor) validateRequest(ctx context.Context, method string) (context.Context, error) {
	headers, err := MetadataHeaders(ctx)
	if err != nil {
		if i.logger != nil {
			i.logger.Error("failed to read authorization metadata",
				"error", err,
				"method", method)
		}
		return ctx, i.errorHandler(err)
	}

	result, err := i.core.Authenticate(ctx, headers)
	if err != nil {
		if i.logger != nil {
			i.logger.Warn("JWT validation failed",
				"error", err,
				"method", method)
		}
		return ctx, i.errorHandler(err)
	}

	return core.SetResult(ctx, result), nil
}

// wrappedServerStream wraps grpc.ServerStream with a custom context.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

// Context returns the wrapped context with the authentication result.
func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}

// GetResult retrieves the authentication result stored by the interceptor.
func GetResult(ctx context.Context) (core.Result, error) {
	return core.GetResult(ctx)
}

// GetUser returns the authenticated user, if any.
func GetUser(ctx context.Context) (*core.User, bool) {
	return core.GetUser(ctx)
}

// RequireUser returns the authenticated user or an Unauthenticated status.
func RequireUser(ctx context.Context) (*core.User, error) {
	user, ok := core.GetUser(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing credentials")
	}
	return user, nil
}
