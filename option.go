package jwtbackend

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jwtbackend/go-jwt-backend/core"
)

// Option configures the Middleware.
// Returns error for validation failures.
type Option func(*Middleware) error

// WithValidator sets the validator used to check tokens (REQUIRED).
// Both *validator.Validator and *jwtgo.Validator satisfy core.Validator.
//
// Example:
//
//	v, err := validator.New(validator.WithSecret([]byte("example")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	middleware, err := jwtbackend.New(
//	    jwtbackend.WithValidator(v),
//	)
func WithValidator(v core.Validator) Option {
	return func(m *Middleware) error {
		if v == nil {
			return ErrValidatorNil
		}
		m.validator = v
		return nil
	}
}

// WithScheme sets the Authorization scheme the default extractor expects.
//
// Default: "JWT"
func WithScheme(scheme string) Option {
	return func(m *Middleware) error {
		if scheme == "" {
			return ErrSchemeEmpty
		}
		if strings.Contains(scheme, " ") {
			return errors.New("scheme cannot contain spaces")
		}
		m.scheme = scheme
		return nil
	}
}

// WithCredentialsRequired sets whether a request without a token is rejected
// with 403 by the middleware itself. When false, such requests continue as
// Unauthenticated and routes opt in with Requires.
//
// Default: false
func WithCredentialsRequired(value bool) Option {
	return func(m *Middleware) error {
		m.credentialsRequired = value
		return nil
	}
}

// WithValidateOnOptions sets whether OPTIONS requests should have their JWT validated.
//
// Default: true (OPTIONS requests are validated)
func WithValidateOnOptions(value bool) Option {
	return func(m *Middleware) error {
		m.validateOnOptions = value
		return nil
	}
}

// WithErrorHandler sets the handler called when errors occur during JWT validation.
// See the ErrorHandler type for more information.
//
// Default: DefaultErrorHandler
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *Middleware) error {
		if h == nil {
			return ErrErrorHandlerNil
		}
		m.errorHandler = h
		return nil
	}
}

// WithTokenExtractor sets the function to extract the JWT from the request.
//
// Default: AuthHeaderTokenExtractor(scheme)
func WithTokenExtractor(e TokenExtractor) Option {
	return func(m *Middleware) error {
		if e == nil {
			return ErrTokenExtractorNil
		}
		m.tokenExtractor = e
		return nil
	}
}

// WithExclusionUrls configures URL patterns to exclude from JWT validation.
// URLs can be full URLs or just paths.
func WithExclusionUrls(exclusions []string) Option {
	return func(m *Middleware) error {
		if len(exclusions) == 0 {
			return ErrExclusionUrlsEmpty
		}
		m.exclusionURLHandler = func(r *http.Request) bool {
			requestFullURL := r.URL.String()
			requestPath := r.URL.Path

			for _, exclusion := range exclusions {
				if requestFullURL == exclusion || requestPath == exclusion {
					return true
				}
			}
			return false
		}
		return nil
	}
}

// WithLogger sets an optional logger for the middleware.
// The logger will be used throughout the validation flow in both middleware and core.
//
// The logger interface is compatible with log/slog.Logger and similar loggers.
//
// Example:
//
//	middleware, err := jwtbackend.New(
//	    jwtbackend.WithValidator(v),
//	    jwtbackend.WithLogger(slog.Default()),
//	)
func WithLogger(logger Logger) Option {
	return func(m *Middleware) error {
		if logger == nil {
			return ErrLoggerNil
		}
		m.logger = logger
		return nil
	}
}

// WithMetrics records authentication counts and latency.
//
// Default: NoopMetrics
func WithMetrics(metrics Metrics) Option {
	return func(m *Middleware) error {
		if metrics == nil {
			return errors.New("metrics cannot be nil")
		}
		m.metrics = metrics
		return nil
	}
}

// WithTracer wraps every authentication in a span.
//
// Default: NoopTracer
func WithTracer(tracer Tracer) Option {
	return func(m *Middleware) error {
		if tracer == nil {
			return errors.New("tracer cannot be nil")
		}
		m.tracer = tracer
		return nil
	}
}

// Sentinel errors for configuration validation
var (
	ErrValidatorNil       = errors.New("validator cannot be nil (use WithValidator)")
	ErrSchemeEmpty        = errors.New("scheme cannot be empty")
	ErrErrorHandlerNil    = errors.New("errorHandler cannot be nil")
	ErrTokenExtractorNil  = errors.New("tokenExtractor cannot be nil")
	ErrExclusionUrlsEmpty = errors.New("exclusion URLs list cannot be empty")
	ErrLoggerNil          = errors.New("logger cannot be nil")
)
