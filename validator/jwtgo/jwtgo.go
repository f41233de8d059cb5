// Package jwtgo is a validator backend built on golang-jwt/jwt/v5. It accepts
// the same tokens and reports the same *core.ValidationError codes as the
// default jwx-based validator, so the two can be swapped freely.
package jwtgo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jwtbackend/go-jwt-backend/core"
	"github.com/jwtbackend/go-jwt-backend/validator"
)

var errAlgorithmMismatch = errors.New("signing algorithm mismatch")

// Option is how options for the Validator are set up.
type Option func(*Validator) error

// WithSecret sets the shared secret tokens are signed with. Required.
func WithSecret(secret []byte) Option {
	return func(v *Validator) error {
		if len(secret) == 0 {
			return errors.New("secret cannot be empty")
		}
		v.secret = append([]byte(nil), secret...)
		return nil
	}
}

// WithAlgorithm sets the HMAC algorithm tokens must use. Default: HS256.
func WithAlgorithm(algorithm validator.SignatureAlgorithm) Option {
	return func(v *Validator) error {
		if _, err := validator.ParseAlgorithm(string(algorithm)); err != nil {
			return err
		}
		v.algorithm = algorithm
		return nil
	}
}

// WithClaimsPolicy replaces the claim checks applied after verification.
func WithClaimsPolicy(policy validator.ClaimsPolicy) Option {
	return func(v *Validator) error {
		v.policy = policy
		return nil
	}
}

// WithAllowedClockSkew sets the leeway for exp, nbf and iat.
func WithAllowedClockSkew(skew time.Duration) Option {
	return func(v *Validator) error {
		if skew < 0 {
			return errors.New("clock skew cannot be negative")
		}
		v.leeway = skew
		return nil
	}
}

// Validator validates tokens using the golang-jwt package.
type Validator struct {
	secret    []byte
	algorithm validator.SignatureAlgorithm
	policy    validator.ClaimsPolicy
	leeway    time.Duration
	parser    *jwt.Parser
}

// New sets up a new Validator. WithSecret is required.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		algorithm: validator.HS256,
		policy:    validator.ClaimsPolicy{UsernameClaim: validator.DefaultUsernameClaim},
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if len(v.secret) == 0 {
		return nil, errors.New("secret is required (use WithSecret)")
	}

	v.parser = jwt.NewParser(
		jwt.WithJSONNumber(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(v.leeway),
	)

	return v, nil
}

// ValidateToken verifies tokenString and returns the user it identifies.
func (v *Validator) ValidateToken(_ context.Context, tokenString string) (*core.User, error) {
	token, err := v.parser.Parse(tokenString, v.keyFunc)
	if err != nil {
		return nil, translateError(err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, core.NewValidationError(
			core.ErrorCodeInvalidClaims,
			"Token payload is invalid",
			fmt.Errorf("unexpected claims type %T", token.Claims),
		)
	}

	claims, err := core.ClaimsFromMap(mapClaims)
	if err != nil {
		return nil, core.NewValidationError(core.ErrorCodeInvalidClaims, "Token payload is invalid", err)
	}

	return v.policy.User(claims, tokenString)
}

func (v *Validator) keyFunc(token *jwt.Token) (any, error) {
	if token.Method == nil || token.Method.Alg() != string(v.algorithm) {
		return nil, fmt.Errorf("%w: expected %q but token specified %v", errAlgorithmMismatch, v.algorithm, token.Header["alg"])
	}
	return v.secret, nil
}

func translateError(err error) error {
	switch {
	case errors.Is(err, errAlgorithmMismatch):
		return core.NewValidationError(core.ErrorCodeInvalidAlgorithm, "The specified alg value is not allowed", err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return core.NewValidationError(core.ErrorCodeTokenMalformed, "Token is malformed", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return core.NewValidationError(core.ErrorCodeInvalidSignature, "Signature verification failed", err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return core.NewValidationError(core.ErrorCodeTokenExpired, "Signature has expired", err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return core.NewValidationError(core.ErrorCodeTokenNotYetValid, "The token is not yet valid (nbf)", err)
	case errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return core.NewValidationError(core.ErrorCodeTokenNotYetValid, "The token is not yet valid (iat)", err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		// alg names a method golang-jwt does not know.
		return core.NewValidationError(core.ErrorCodeInvalidAlgorithm, "The specified alg value is not allowed", err)
	default:
		return core.NewValidationError(core.ErrorCodeInvalidClaims, "Token claims are invalid", err)
	}
}
