/*
Package validator verifies HMAC-signed JWTs with the lestrrat-go/jwx v2
library and turns their payload into a *core.User.

# Basic Usage

	v, err := validator.New(
	    validator.WithSecret([]byte("example")),
	    validator.WithAlgorithm(validator.HS256),
	)
	if err != nil {
	    log.Fatalf("failed to set up the validator: %v", err)
	}

	user, err := v.ValidateToken(ctx, tokenString)

# Validation Steps

 1. The token is parsed as a compact JWS; structural problems are
    token_malformed.
 2. The alg header must equal the configured algorithm.
 3. The signature is verified with the secret; failure is invalid_signature
    with the message "Signature verification failed".
 4. exp, nbf and iat are checked when present, honoring WithAllowedClockSkew.
 5. The ClaimsPolicy checks issuer, audience and required claims, then reads
    the username claim (default "username"). A missing username is
    missing_claim.

Every failure is a *core.ValidationError, so callers can match it against the
core taxonomy sentinels with errors.Is.

# Options

	validator.WithSecret(secret)            // required
	validator.WithAlgorithm(validator.HS512)
	validator.WithUsernameClaim("sub")
	validator.WithIssuer("https://issuer.example.com/")
	validator.WithAudiences("my-api")
	validator.WithRequiredClaims("email")
	validator.WithAllowedClockSkew(30 * time.Second)

An equivalent validator built on golang-jwt/jwt/v5 lives in the jwtgo
subpackage.
*/
package validator
