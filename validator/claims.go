package validator

import (
	"fmt"

	"github.com/jwtbackend/go-jwt-backend/core"
)

// DefaultUsernameClaim is the claim read into User.Username.
const DefaultUsernameClaim = "username"

// ClaimsPolicy checks a verified payload and builds the User from it. It is
// shared by every validator backend so they agree on claim semantics.
type ClaimsPolicy struct {
	// UsernameClaim names the required string claim holding the username.
	UsernameClaim string
	// Issuer, when set, must equal the "iss" claim.
	Issuer string
	// Audience, when set, must intersect the "aud" claim.
	Audience []string
	// RequiredClaims must be present in the payload.
	RequiredClaims []string
}

// User applies the policy to claims and constructs the authenticated user.
func (p ClaimsPolicy) User(claims core.Claims, token string) (*core.User, error) {
	if p.Issuer != "" {
		if iss, _ := claims.GetString("iss"); iss != p.Issuer {
			return nil, core.NewValidationError(
				core.ErrorCodeInvalidIssuer,
				"Invalid issuer",
				fmt.Errorf("expected issuer %q but token specified %q", p.Issuer, iss),
			)
		}
	}

	if len(p.Audience) > 0 && !audienceMatches(claims, p.Audience) {
		return nil, core.NewValidationError(
			core.ErrorCodeInvalidAudience,
			"Invalid audience",
			fmt.Errorf("token audience does not contain any of %q", p.Audience),
		)
	}

	for _, name := range p.RequiredClaims {
		if _, ok := claims.Get(name); !ok {
			return nil, missingClaim(name)
		}
	}

	usernameClaim := p.UsernameClaim
	if usernameClaim == "" {
		usernameClaim = DefaultUsernameClaim
	}

	value, ok := claims.Get(usernameClaim)
	if !ok {
		return nil, missingClaim(usernameClaim)
	}
	username, ok := value.AsString()
	if !ok {
		return nil, core.NewValidationError(
			core.ErrorCodeInvalidClaims,
			fmt.Sprintf("Claim %q must be a string", usernameClaim),
			fmt.Errorf("claim %q is a %s", usernameClaim, value.Kind()),
		)
	}

	return core.NewUser(username, claims, token), nil
}

func missingClaim(name string) error {
	return core.NewValidationError(
		core.ErrorCodeMissingClaim,
		fmt.Sprintf("Token is missing the %q claim", name),
		nil,
	)
}

func audienceMatches(claims core.Claims, expected []string) bool {
	aud, ok := claims.Get("aud")
	if !ok {
		return false
	}

	var actual []string
	if s, ok := aud.AsString(); ok {
		actual = []string{s}
	} else if items, ok := aud.AsArray(); ok {
		for _, item := range items {
			if s, ok := item.AsString(); ok {
				actual = append(actual, s)
			}
		}
	}

	for _, want := range expected {
		for _, have := range actual {
			if want == have {
				return true
			}
		}
	}
	return false
}
