// Package jwtgin adapts the jwtbackend middleware to Gin.
package jwtgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	jwtbackend "github.com/jwtbackend/go-jwt-backend"
	"github.com/jwtbackend/go-jwt-backend/core"
)

// DefaultResultKey is the gin.Context key the core.Result is stored under.
const DefaultResultKey = "jwt"

type ginMiddlewareConfig struct {
	errorHandler func(*gin.Context, error)
	contextKey   string
}

// New creates a Gin middleware for JWT authentication backed by m. Exclusions,
// OPTIONS handling, metrics and tracing configured on m all apply.
//
// Example:
//
//	r := gin.New()
//	r.Use(jwtgin.New(middleware))
//	r.GET("/auth", jwtgin.Requires(), handler)
func New(m *jwtbackend.Middleware, opts ...Option) gin.HandlerFunc {
	config := &ginMiddlewareConfig{
		errorHandler: defaultGinErrorHandler,
		contextKey:   DefaultResultKey,
	}

	for _, opt := range opts {
		opt(config)
	}

	return func(c *gin.Context) {
		encounteredError := true
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			encounteredError = false
			c.Request = r

			if result, err := core.GetResult(r.Context()); err == nil {
				c.Set(config.contextKey, result)
			}

			c.Next()
		}

		m.Wrap(handler, func(w http.ResponseWriter, r *http.Request, err error) {
			config.errorHandler(c, err)
		}).ServeHTTP(c.Writer, c.Request)

		if encounteredError {
			c.Abort()
		}
	}
}

// Requires aborts with 403 unless the request was authenticated with every
// scope. With no scopes it requires core.ScopeAuthenticated.
func Requires(scopes ...string) gin.HandlerFunc {
	if len(scopes) == 0 {
		scopes = []string{core.ScopeAuthenticated}
	}
	return func(c *gin.Context) {
		if err := jwtbackend.CheckScopes(c.Request.Context(), scopes...); err != nil {
			defaultGinErrorHandler(c, err)
			return
		}
		c.Next()
	}
}

func defaultGinErrorHandler(c *gin.Context, err error) {
	status, body := jwtbackend.ErrorResponse(err)
	c.String(status, body)
	c.Abort()
}

// GetResult returns the authentication result stored by the middleware.
func GetResult(c *gin.Context) (core.Result, error) {
	return core.GetResult(c.Request.Context())
}

// GetUser returns the authenticated user, if any.
func GetUser(c *gin.Context) (*core.User, bool) {
	return core.GetUser(c.Request.Context())
}
