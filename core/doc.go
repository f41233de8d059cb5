/*
Package core provides framework-agnostic JWT authentication logic that can be
used across different transport layers (HTTP, gRPC, etc.).

# Architecture

The core package implements the "Core" in the Core-Adapter pattern:

	┌─────────────────────────────────────────────┐
	│         Transport Adapters                  │
	│  (net/http, Gin, Echo, gRPC)                │
	└────────────────┬────────────────────────────┘
	                 │  Authenticate(ctx, headers)
	                 ▼
	┌─────────────────────────────────────────────┐
	│          Core Engine (THIS PACKAGE)         │
	│  • Authorization header parsing             │
	│  • Credentials required/optional logic      │
	│  • Result / User / Claims model             │
	└────────────────┬────────────────────────────┘
	                 │  ValidateToken(ctx, token)
	                 ▼
	┌─────────────────────────────────────────────┐
	│          Validator                          │
	│  (signature + claims, user construction)    │
	└─────────────────────────────────────────────┘

# Basic Usage

	v, err := validator.New(
	    validator.WithSecret([]byte("example")),
	    validator.WithAlgorithm(validator.HS256),
	)
	if err != nil {
	    log.Fatal(err)
	}

	c, err := core.New(core.WithValidator(v))
	if err != nil {
	    log.Fatal(err)
	}

	result, err := c.Authenticate(ctx, r.Header)
	if err != nil {
	    // 400 with the ValidationError message
	}
	if result.IsAuthenticated() {
	    fmt.Println(result.User.DisplayName())
	}

# Header Parsing

ExtractToken is a pure function: the header value must contain exactly one
space, and the scheme on its left must equal the configured scheme
(case-sensitive). The default scheme is "JWT".

	token, err := core.ExtractToken("JWT eyJhbGciOi...", "JWT")

# Error Handling

Failures are *ValidationError values with a Code and a client-safe Message.
Each one matches one taxonomy sentinel:

	switch {
	case errors.Is(err, core.ErrMalformedHeader):
	case errors.Is(err, core.ErrUnsupportedScheme):
	case errors.Is(err, core.ErrInvalidSignature):
	case errors.Is(err, core.ErrInvalidToken):
	case errors.Is(err, core.ErrMissingClaim):
	case errors.Is(err, core.ErrJWTMissing):
	}

# Claims

Claims are a map from claim name to Value, a tagged variant over the JSON data
model. Use the typed accessors instead of type assertions:

	if exp, ok := user.Payload().Get("exp"); ok {
	    secs, _ := exp.AsInt64()
	}
*/
package core
