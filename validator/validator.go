package validator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/jwtbackend/go-jwt-backend/core"
)

// Signature algorithms. Tokens are verified with a shared secret, so only the
// HMAC family is accepted.
const (
	HS256 = SignatureAlgorithm("HS256") // HMAC using SHA-256
	HS384 = SignatureAlgorithm("HS384") // HMAC using SHA-384
	HS512 = SignatureAlgorithm("HS512") // HMAC using SHA-512
)

// SignatureAlgorithm is a signature algorithm.
type SignatureAlgorithm string

var allowedSigningAlgorithms = map[SignatureAlgorithm]jwa.SignatureAlgorithm{
	HS256: jwa.HS256,
	HS384: jwa.HS384,
	HS512: jwa.HS512,
}

// ParseAlgorithm returns the SignatureAlgorithm named by name.
func ParseAlgorithm(name string) (SignatureAlgorithm, error) {
	alg := SignatureAlgorithm(name)
	if _, ok := allowedSigningAlgorithms[alg]; !ok {
		return "", fmt.Errorf("unsupported signature algorithm: %s", name)
	}
	return alg, nil
}

// Validator verifies tokens with the lestrrat-go/jwx package and builds the
// authenticated user from their payload. It is safe for concurrent use.
type Validator struct {
	secret             []byte             // Required.
	signatureAlgorithm SignatureAlgorithm // Defaults to HS256.
	policy             ClaimsPolicy
	allowedClockSkew   time.Duration // Optional.
}

// New sets up a new Validator. WithSecret is required.
//
// Example:
//
//	v, err := validator.New(
//	    validator.WithSecret([]byte("example")),
//	    validator.WithAlgorithm(validator.HS256),
//	)
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		signatureAlgorithm: HS256,
		policy:             ClaimsPolicy{UsernameClaim: DefaultUsernameClaim},
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if len(v.secret) == 0 {
		return nil, errors.New("secret is required (use WithSecret)")
	}

	return v, nil
}

// Algorithm returns the algorithm tokens must be signed with.
func (v *Validator) Algorithm() SignatureAlgorithm {
	return v.signatureAlgorithm
}

// ValidateToken verifies the signature and claims of tokenString and returns
// the user it identifies.
func (v *Validator) ValidateToken(_ context.Context, tokenString string) (*core.User, error) {
	if err := validateTokenFormat(tokenString); err != nil {
		return nil, core.NewValidationError(core.ErrorCodeTokenMalformed, "Token is malformed", err)
	}

	message, err := jws.Parse([]byte(tokenString))
	if err != nil {
		return nil, core.NewValidationError(core.ErrorCodeTokenMalformed, "Token is malformed", err)
	}

	signatures := message.Signatures()
	if len(signatures) != 1 {
		return nil, core.NewValidationError(
			core.ErrorCodeTokenMalformed,
			"Token is malformed",
			fmt.Errorf("expected exactly one signature, got %d", len(signatures)),
		)
	}

	expectedAlg := allowedSigningAlgorithms[v.signatureAlgorithm]
	if err := validateSigningMethod(expectedAlg, signatures[0].ProtectedHeaders().Algorithm()); err != nil {
		return nil, core.NewValidationError(core.ErrorCodeInvalidAlgorithm, "The specified alg value is not allowed", err)
	}

	payload, err := jws.Verify([]byte(tokenString), jws.WithKey(expectedAlg, v.secret))
	if err != nil {
		return nil, core.NewValidationError(core.ErrorCodeInvalidSignature, "Signature verification failed", err)
	}

	if err := v.validateTimeClaims(tokenString); err != nil {
		return nil, err
	}

	claims, err := core.ParseClaims(payload)
	if err != nil {
		return nil, core.NewValidationError(core.ErrorCodeInvalidClaims, "Token payload is invalid", err)
	}

	return v.policy.User(claims, tokenString)
}

// validateTimeClaims checks exp, nbf and iat. The signature has already been
// verified, so the token is parsed without verification here.
func (v *Validator) validateTimeClaims(tokenString string) error {
	_, err := jwt.ParseString(
		tokenString,
		jwt.WithVerify(false),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(v.allowedClockSkew),
	)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, jwt.ErrTokenExpired()):
		return core.NewValidationError(core.ErrorCodeTokenExpired, "Signature has expired", err)
	case errors.Is(err, jwt.ErrTokenNotYetValid()):
		return core.NewValidationError(core.ErrorCodeTokenNotYetValid, "The token is not yet valid (nbf)", err)
	case errors.Is(err, jwt.ErrInvalidIssuedAt()):
		return core.NewValidationError(core.ErrorCodeTokenNotYetValid, "The token is not yet valid (iat)", err)
	default:
		return core.NewValidationError(core.ErrorCodeInvalidClaims, "Token claims are invalid", err)
	}
}

func validateSigningMethod(validAlg, tokenAlg jwa.SignatureAlgorithm) error {
	if validAlg != tokenAlg {
		return fmt.Errorf("expected %q signing algorithm but token specified %q", validAlg, tokenAlg)
	}
	return nil
}
