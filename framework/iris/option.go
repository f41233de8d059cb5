package jwtiris

import (
	"github.com/kataras/iris/v12"
)

// Option is a function that configures the middleware
type Option func(*IrisMiddlewareConfig)

// WithErrorHandler sets a custom error handler
func WithErrorHandler(handler func(iris.Context, error)) Option {
	return func(config *IrisMiddlewareConfig) {
		if handler != nil {
			config.errorHandler = handler
		}
	}
}

// WithContextKey changes the iris.Context value key of the result.
func WithContextKey(key string) Option {
	return func(config *IrisMiddlewareConfig) {
		if key != "" {
			config.contextKey = key
		}
	}
}
