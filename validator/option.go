package validator

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Option is how options for the Validator are set up.
// Options return errors to enable validation during construction.
type Option func(*Validator) error

// WithSecret sets the shared secret tokens are signed with.
// This is a required option.
func WithSecret(secret []byte) Option {
	return func(v *Validator) error {
		if len(secret) == 0 {
			return errors.New("secret cannot be empty")
		}
		v.secret = append([]byte(nil), secret...)
		return nil
	}
}

// WithAlgorithm sets the signature algorithm that tokens must use.
//
// Supported algorithms: HS256, HS384, HS512.
//
// Default: HS256
func WithAlgorithm(algorithm SignatureAlgorithm) Option {
	return func(v *Validator) error {
		if _, ok := allowedSigningAlgorithms[algorithm]; !ok {
			return fmt.Errorf("unsupported signature algorithm: %s", algorithm)
		}
		v.signatureAlgorithm = algorithm
		return nil
	}
}

// WithUsernameClaim sets the claim the username is read from.
//
// Default: "username"
func WithUsernameClaim(name string) Option {
	return func(v *Validator) error {
		if name == "" {
			return errors.New("username claim cannot be empty")
		}
		v.policy.UsernameClaim = name
		return nil
	}
}

// WithIssuer sets the expected issuer claim (iss). Tokens with a different or
// missing issuer are rejected.
func WithIssuer(issuerURL string) Option {
	return func(v *Validator) error {
		if issuerURL == "" {
			return errors.New("issuer cannot be empty")
		}
		if _, err := url.Parse(issuerURL); err != nil {
			return fmt.Errorf("invalid issuer URL: %w", err)
		}
		v.policy.Issuer = issuerURL
		return nil
	}
}

// WithAudiences sets the accepted audience claims (aud). The token must
// contain at least one of them.
func WithAudiences(audiences ...string) Option {
	return func(v *Validator) error {
		if len(audiences) == 0 {
			return errors.New("audiences cannot be empty")
		}
		for i, aud := range audiences {
			if aud == "" {
				return fmt.Errorf("audience at index %d cannot be empty", i)
			}
		}
		v.policy.Audience = append([]string(nil), audiences...)
		return nil
	}
}

// WithRequiredClaims lists claims that must be present besides the username.
func WithRequiredClaims(names ...string) Option {
	return func(v *Validator) error {
		for i, name := range names {
			if name == "" {
				return fmt.Errorf("required claim at index %d cannot be empty", i)
			}
		}
		v.policy.RequiredClaims = append(v.policy.RequiredClaims, names...)
		return nil
	}
}

// WithAllowedClockSkew sets the allowed clock skew for time-based claims
// (exp, nbf and iat). If not set, no clock skew is allowed.
func WithAllowedClockSkew(skew time.Duration) Option {
	return func(v *Validator) error {
		if skew < 0 {
			return errors.New("clock skew cannot be negative")
		}
		v.allowedClockSkew = skew
		return nil
	}
}
