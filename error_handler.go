package jwtbackend

import (
	"errors"
	"net/http"

	"github.com/jwtbackend/go-jwt-backend/core"
)

// ErrInsufficientScope is returned by Requires when the request's result
// lacks one of the required scopes.
var ErrInsufficientScope = errors.New("insufficient scope")

// ErrorHandler is a handler which is called when an error occurs in the
// Middleware. Among some general errors, this handler also determines the
// response when a token is not found or is invalid. Validation failures are
// *core.ValidationError values and can be matched with errors.Is against the
// core sentinels.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler is the default error handler implementation for the
// Middleware. If an error handler is not provided via the WithErrorHandler
// option this will be used.
//
// Responses are plain text:
//   - missing credentials or scopes: 403 "Forbidden"
//   - any other *core.ValidationError: 400 with the error's Message as body
//   - everything else: 500
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	status, body := ErrorResponse(err)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// ErrorResponse returns the status code and body DefaultErrorHandler writes
// for err. Framework adapters use it to answer in their own idiom.
func ErrorResponse(err error) (int, string) {
	var validationErr *core.ValidationError

	switch {
	case errors.Is(err, core.ErrJWTMissing), errors.Is(err, ErrInsufficientScope):
		return http.StatusForbidden, "Forbidden"
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	default:
		return http.StatusInternalServerError, "Something went wrong while checking the JWT."
	}
}
