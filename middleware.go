package jwtbackend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jwtbackend/go-jwt-backend/core"
)

// Outcome labels recorded on metrics and spans besides the error codes.
const (
	OutcomeAuthenticated   = "authenticated"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeError           = "error"
)

// Middleware authenticates net/http requests with a JWT and stores the
// core.Result in the request context.
type Middleware struct {
	core                *core.Core
	errorHandler        ErrorHandler
	tokenExtractor      TokenExtractor
	validateOnOptions   bool
	exclusionURLHandler ExclusionURLHandler
	logger              Logger
	metrics             Metrics
	tracer              Tracer

	// Temporary fields used during construction
	validator           core.Validator
	scheme              string
	credentialsRequired bool
}

// ExclusionURLHandler is a function that takes in a http.Request and returns
// true if the request should be excluded from JWT validation.
type ExclusionURLHandler func(r *http.Request) bool

// New constructs a new Middleware instance with the supplied options.
//
// Example:
//
//	middleware, err := jwtbackend.New(
//	    jwtbackend.WithValidator(v),
//	    jwtbackend.WithScheme("JWT"),
//	)
//	if err != nil {
//	    log.Fatalf("failed to create middleware: %v", err)
//	}
func New(opts ...Option) (*Middleware, error) {
	m := &Middleware{
		validateOnOptions: true,
		scheme:            core.DefaultScheme,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if m.validator == nil {
		return nil, fmt.Errorf("invalid middleware configuration: %w", ErrValidatorNil)
	}

	m.applyDefaults()

	if err := m.createCore(); err != nil {
		return nil, fmt.Errorf("failed to create core: %w", err)
	}

	return m, nil
}

func (m *Middleware) createCore() error {
	coreOpts := []core.Option{
		core.WithValidator(m.validator),
		core.WithScheme(m.scheme),
		core.WithCredentialsRequired(m.credentialsRequired),
	}
	if m.logger != nil {
		coreOpts = append(coreOpts, core.WithLogger(m.logger))
	}

	coreInstance, err := core.New(coreOpts...)
	if err != nil {
		return err
	}
	m.core = coreInstance
	return nil
}

func (m *Middleware) applyDefaults() {
	if m.errorHandler == nil {
		m.errorHandler = DefaultErrorHandler
	}
	if m.tokenExtractor == nil {
		m.tokenExtractor = AuthHeaderTokenExtractor(m.scheme)
	}
	if m.metrics == nil {
		m.metrics = &NoopMetrics{}
	}
	if m.tracer == nil {
		m.tracer = &NoopTracer{}
	}
}

// Core returns the framework-agnostic engine the middleware delegates to.
func (m *Middleware) Core() *core.Core {
	return m.core
}

// ErrorHandler returns the configured error handler.
func (m *Middleware) ErrorHandler() ErrorHandler {
	return m.errorHandler
}

// Handler is the main Middleware function. It is passed a http.Handler which
// is called once the request is authenticated or found to carry no token.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return m.Wrap(next, m.errorHandler)
}

// Wrap is Handler with a per-call error handler. Framework adapters use it to
// answer failures through their own context.
func (m *Middleware) Wrap(next http.Handler, errorHandler ErrorHandler) http.Handler {
	if errorHandler == nil {
		errorHandler = m.errorHandler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.exclusionURLHandler != nil && m.exclusionURLHandler(r) {
			if m.logger != nil {
				m.logger.Debug("skipping JWT validation for excluded URL",
					"method", r.Method,
					"path", r.URL.Path)
			}
			next.ServeHTTP(w, r)
			return
		}
		if !m.validateOnOptions && r.Method == http.MethodOptions {
			if m.logger != nil {
				m.logger.Debug("skipping JWT validation for OPTIONS request")
			}
			next.ServeHTTP(w, r)
			return
		}

		result, err := m.Authenticate(r)
		if err != nil {
			if m.logger != nil {
				m.logger.Warn("JWT authentication failed",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path)
			}
			errorHandler(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(core.SetResult(r.Context(), result)))
	})
}

// Authenticate extracts and validates the token of r, recording metrics and a
// span. Framework adapters call it directly.
func (m *Middleware) Authenticate(r *http.Request) (core.Result, error) {
	start := time.Now()
	ctx, span := m.tracer.StartSpan(r.Context(), "jwtbackend.authenticate")
	defer span.Finish()

	result, err := m.authenticate(ctx, r)

	outcome := outcomeOf(result, err)
	span.SetTag("outcome", outcome)
	if err != nil {
		span.RecordError(err)
	}
	tags := map[string]string{"outcome": outcome}
	m.metrics.IncCounter(MetricAuthentications, tags)
	m.metrics.ObserveHistogram(MetricAuthenticationDuration, time.Since(start).Seconds(), tags)

	return result, err
}

func (m *Middleware) authenticate(ctx context.Context, r *http.Request) (core.Result, error) {
	token, err := m.tokenExtractor(r)
	if err != nil {
		var validationErr *core.ValidationError
		if errors.As(err, &validationErr) {
			return core.Result{}, err
		}
		// An error here means that the tokenExtractor failed and _not_ that
		// the token was missing.
		return core.Result{}, fmt.Errorf("error extracting token: %w", err)
	}

	return m.core.CheckToken(ctx, token)
}

func outcomeOf(result core.Result, err error) string {
	var validationErr *core.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Code
	case err != nil:
		return OutcomeError
	case result.IsAuthenticated():
		return OutcomeAuthenticated
	default:
		return OutcomeUnauthenticated
	}
}

// Requires returns a middleware that lets requests through only when the
// result stored by Handler carries every scope. With no scopes it requires
// core.ScopeAuthenticated. Rejections go to the configured ErrorHandler.
func (m *Middleware) Requires(scopes ...string) func(http.Handler) http.Handler {
	if len(scopes) == 0 {
		scopes = []string{core.ScopeAuthenticated}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := CheckScopes(r.Context(), scopes...); err != nil {
				m.errorHandler(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CheckScopes reports whether the result in ctx carries every scope. A
// context without an authenticated result yields core.ErrJWTMissing.
func CheckScopes(ctx context.Context, scopes ...string) error {
	result, err := core.GetResult(ctx)
	if err != nil || !result.IsAuthenticated() {
		return core.NewValidationError(core.ErrorCodeTokenMissing, "Forbidden", err)
	}
	if !result.HasScopes(scopes...) {
		return fmt.Errorf("%w: need %q", ErrInsufficientScope, scopes)
	}
	return nil
}

// GetResult retrieves the authentication result stored by the middleware.
func GetResult(ctx context.Context) (core.Result, error) {
	return core.GetResult(ctx)
}

// GetUser returns the authenticated user, or false when the request is
// unauthenticated or never passed through the middleware.
//
// Example:
//
//	user, ok := jwtbackend.GetUser(r.Context())
//	if ok {
//	    fmt.Println(user.DisplayName())
//	}
func GetUser(ctx context.Context) (*core.User, bool) {
	return core.GetUser(ctx)
}

// MustGetUser retrieves the user from the context or panics.
// Use only behind Requires, where an authenticated user is guaranteed.
func MustGetUser(ctx context.Context) *core.User {
	user, ok := core.GetUser(ctx)
	if !ok {
		panic(core.ErrResultNotFound)
	}
	return user
}

// HasResult checks if an authentication result exists in the context.
func HasResult(ctx context.Context) bool {
	return core.HasResult(ctx)
}
