// Package jwtiris adapts the jwtbackend middleware to Iris.
package jwtiris

import (
	"context"
	"net/http"

	"github.com/kataras/iris/v12"

	jwtbackend "github.com/jwtbackend/go-jwt-backend"
	"github.com/jwtbackend/go-jwt-backend/core"
)

// DefaultResultKey is the iris.Context value key the core.Result is stored
// under.
const DefaultResultKey = "jwt"

type contextKey struct{}

// IrisContextKey stores the Iris context in the request context while the
// middleware runs.
var IrisContextKey = contextKey{}

// IrisMiddlewareConfig holds configuration for the Iris adapter.
type IrisMiddlewareConfig struct {
	errorHandler func(iris.Context, error)
	contextKey   string
}

// New creates an Iris middleware for JWT authentication backed by m.
//
// Example:
//
//	app := iris.New()
//	app.Use(jwtiris.New(middleware))
//	app.Get("/auth", jwtiris.Requires(), handler)
func New(m *jwtbackend.Middleware, opts ...Option) iris.Handler {
	config := &IrisMiddlewareConfig{
		errorHandler: defaultIrisErrorHandler,
		contextKey:   DefaultResultKey,
	}

	for _, opt := range opts {
		opt(config)
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		c, ok := r.Context().Value(IrisContextKey).(iris.Context)
		if !ok || c == nil {
			jwtbackend.DefaultErrorHandler(w, r, err)
			return
		}
		config.errorHandler(c, err)
	}

	return func(c iris.Context) {
		req := c.Request().WithContext(context.WithValue(c.Request().Context(), IrisContextKey, c))
		c.ResetRequest(req)

		encounteredError := true
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			encounteredError = false
			c.ResetRequest(r)

			if result, err := core.GetResult(r.Context()); err == nil {
				c.Values().Set(config.contextKey, result)
			}

			c.Next()
		}

		m.Wrap(handler, errorHandler).ServeHTTP(c.ResponseWriter(), c.Request())

		if encounteredError {
			c.StopExecution()
		}
	}
}

// Requires stops with 403 unless the request was authenticated with every
// scope. With no scopes it requires core.ScopeAuthenticated.
func Requires(scopes ...string) iris.Handler {
	if len(scopes) == 0 {
		scopes = []string{core.ScopeAuthenticated}
	}
	return func(c iris.Context) {
		if err := jwtbackend.CheckScopes(c.Request().Context(), scopes...); err != nil {
			defaultIrisErrorHandler(c, err)
			return
		}
		c.Next()
	}
}

// GetResult returns the authentication result stored by the middleware.
func GetResult(c iris.Context) (core.Result, error) {
	return core.GetResult(c.Request().Context())
}

// GetUser returns the authenticated user, if any.
func GetUser(c iris.Context) (*core.User, bool) {
	return core.GetUser(c.Request().Context())
}

func defaultIrisErrorHandler(c iris.Context, err error) {
	status, body := jwtbackend.ErrorResponse(err)
	c.StopWithText(status, "%s", body)
}
