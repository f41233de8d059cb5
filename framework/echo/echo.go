// Package jwtecho adapts the jwtbackend middleware to Echo.
package jwtecho

import (
	"net/http"

	"github.com/labstack/echo/v4"

	jwtbackend "github.com/jwtbackend/go-jwt-backend"
	"github.com/jwtbackend/go-jwt-backend/core"
)

// DefaultResultKey is the echo.Context key the core.Result is stored under.
var DefaultResultKey = "jwt"

// echoMiddlewareConfig holds all configuration for the middleware
type echoMiddlewareConfig struct {
	errorHandler func(echo.Context, error) error
	contextKey   string
}

// New creates an Echo middleware for JWT authentication backed by m.
//
// Example:
//
//	e := echo.New()
//	e.Use(jwtecho.New(middleware))
//	e.GET("/auth", handler, jwtecho.Requires())
func New(m *jwtbackend.Middleware, opts ...Option) echo.MiddlewareFunc {
	config := &echoMiddlewareConfig{
		errorHandler: defaultEchoErrorHandler,
		contextKey:   DefaultResultKey,
	}

	for _, opt := range opts {
		opt(config)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var handlerErr error
			var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
				c.SetRequest(r)

				if result, err := core.GetResult(r.Context()); err == nil {
					c.Set(config.contextKey, result)
				}

				handlerErr = next(c)
			}

			m.Wrap(handler, func(w http.ResponseWriter, r *http.Request, err error) {
				handlerErr = config.errorHandler(c, err)
			}).ServeHTTP(c.Response(), c.Request())

			return handlerErr
		}
	}
}

// Requires answers 403 unless the request was authenticated with every scope.
// With no scopes it requires core.ScopeAuthenticated.
func Requires(scopes ...string) echo.MiddlewareFunc {
	if len(scopes) == 0 {
		scopes = []string{core.ScopeAuthenticated}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := jwtbackend.CheckScopes(c.Request().Context(), scopes...); err != nil {
				return defaultEchoErrorHandler(c, err)
			}
			return next(c)
		}
	}
}

func defaultEchoErrorHandler(c echo.Context, err error) error {
	status, body := jwtbackend.ErrorResponse(err)
	return c.String(status, body)
}

// GetResult returns the authentication result stored by the middleware.
func GetResult(c echo.Context) (core.Result, error) {
	return core.GetResult(c.Request().Context())
}

// GetUser returns the authenticated user, if any.
func GetUser(c echo.Context) (*core.User, bool) {
	return core.GetUser(c.Request().Context())
}
