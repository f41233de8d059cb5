package jwtgrpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/metadata"

	"github.com/jwtbackend/go-jwt-backend/core"
)

// ErrMultipleAuthHeaders indicates multiple authorization metadata entries were provided.
var ErrMultipleAuthHeaders = errors.New("multiple authorization metadata entries are not allowed")

// MetadataHeaders exposes the incoming metadata of ctx as core.Headers.
//
// gRPC normalizes incoming metadata keys to lowercase; core.MapHeaders looks
// keys up case-insensitively so "Authorization" still finds them.
func MetadataHeaders(ctx context.Context) (core.Headers, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return core.MapHeaders{}, nil // No metadata, no token (not an error)
	}

	if len(md.Get("authorization")) > 1 {
		return nil, ErrMultipleAuthHeaders
	}

	return core.MapHeaders(md), nil
}
