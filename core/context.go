package core

import "context"

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	resultKey contextKey = iota
)

// SetResult stores an authentication result in the context.
// This is a helper for adapters after authentication.
func SetResult(ctx context.Context, result Result) context.Context {
	return context.WithValue(ctx, resultKey, result)
}

// GetResult retrieves the authentication result from the context.
// It returns ErrResultNotFound if the request never went through authentication.
func GetResult(ctx context.Context) (Result, error) {
	result, ok := ctx.Value(resultKey).(Result)
	if !ok {
		return Result{}, ErrResultNotFound
	}
	return result, nil
}

// GetUser returns the authenticated user stored in the context, or false when
// the request is unauthenticated or was never authenticated.
func GetUser(ctx context.Context) (*User, bool) {
	result, err := GetResult(ctx)
	if err != nil || result.User == nil {
		return nil, false
	}
	return result.User, true
}

// HasResult checks if an authentication result exists in the context.
func HasResult(ctx context.Context) bool {
	_, ok := ctx.Value(resultKey).(Result)
	return ok
}
