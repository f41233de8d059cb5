package core

import (
	"errors"
)

// Option is a function that configures the Core.
// Options return errors to enable validation during construction.
type Option func(*Core) error

// New creates a new Core instance with the provided options.
//
// The Core must be configured with a Validator using WithValidator.
// All other options are optional and will use sensible defaults if not provided.
//
// Example:
//
//	c, err := core.New(
//	    core.WithValidator(v),
//	    core.WithScheme("Bearer"),
//	    core.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(opts ...Option) (*Core, error) {
	c := &Core{
		scheme: DefaultScheme,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.validateConfig(); err != nil {
		return nil, err
	}

	return c, nil
}

// validateConfig ensures all required fields are set.
func (c *Core) validateConfig() error {
	if c.validator == nil {
		return errors.New("validator is required but not set (use WithValidator option)")
	}
	return nil
}

// WithValidator sets the token validator for the Core.
// This is a required option.
func WithValidator(validator Validator) Option {
	return func(c *Core) error {
		if validator == nil {
			return errors.New("validator cannot be nil")
		}
		c.validator = validator
		return nil
	}
}

// WithScheme sets the Authorization scheme that must prefix the token.
// The match is case-sensitive.
//
// Default: "JWT"
func WithScheme(scheme string) Option {
	return func(c *Core) error {
		if scheme == "" {
			return errors.New("scheme cannot be empty")
		}
		for _, r := range scheme {
			if r == ' ' {
				return errors.New("scheme cannot contain spaces")
			}
		}
		c.scheme = scheme
		return nil
	}
}

// WithCredentialsRequired configures whether requests without credentials
// are rejected with ErrJWTMissing.
//
// When false (default), such requests are Unauthenticated and individual
// routes decide whether to let them through.
func WithCredentialsRequired(required bool) Option {
	return func(c *Core) error {
		c.credentialsRequired = required
		return nil
	}
}

// WithLogger sets an optional logger for the Core.
//
// Example:
//
//	c, _ := core.New(
//	    core.WithValidator(v),
//	    core.WithLogger(slog.Default()),
//	)
func WithLogger(logger Logger) Option {
	return func(c *Core) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}
