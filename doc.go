/*
Package jwtbackend provides HTTP middleware for JWT authentication.

The middleware reads a token from the Authorization header ("JWT <token>" by
default), validates it with a shared secret and stores the outcome in the
request context. It follows the Core-Adapter pattern: the core package holds
the framework-agnostic logic and this package is the net/http adapter. Gin,
Echo and gRPC adapters live under framework/ and integrations/.

# Quick Start

	import (
	    "github.com/jwtbackend/go-jwt-backend"
	    "github.com/jwtbackend/go-jwt-backend/validator"
	)

	func main() {
	    v, err := validator.New(
	        validator.WithSecret([]byte("example")),
	        validator.WithAlgorithm(validator.HS256),
	    )
	    if err != nil {
	        log.Fatal(err)
	    }

	    middleware, err := jwtbackend.New(
	        jwtbackend.WithValidator(v),
	    )
	    if err != nil {
	        log.Fatal(err)
	    }

	    mux := http.NewServeMux()
	    mux.Handle("/auth", middleware.Requires()(authHandler))
	    mux.Handle("/no-auth", publicHandler)

	    http.ListenAndServe(":8080", middleware.Handler(mux))
	}

# Authenticated and Unauthenticated Requests

Handler never rejects a request just because it carries no token. It stores
an unauthenticated core.Result and lets the route decide. Routes that need a
user are wrapped with Requires, which answers 403 "Forbidden" otherwise. Use
WithCredentialsRequired(true) to reject anonymous requests for every route.

A header that is present but wrong is always rejected, even on public routes.

# Accessing the User

	func authHandler(w http.ResponseWriter, r *http.Request) {
	    user, ok := jwtbackend.GetUser(r.Context())
	    if !ok {
	        http.Error(w, "Forbidden", http.StatusForbidden)
	        return
	    }
	    fmt.Fprintf(w, "Hello, %s!", user.DisplayName())
	}

MustGetUser panics instead of returning false; use it only behind Requires.

# Error Responses

DefaultErrorHandler writes plain text bodies:

	no credentials on a protected route        403  Forbidden
	header without a single space              400  Could not separate Authorization scheme and token
	scheme other than the configured one       400  Authorization scheme WRONG is not supported
	token signed with another secret           400  Signature verification failed
	any other token or claim failure           400  the ValidationError message
	anything else                              500

Every validation failure is a *core.ValidationError; match it with errors.Is
against core.ErrMalformedHeader, core.ErrUnsupportedScheme,
core.ErrInvalidSignature, core.ErrInvalidToken, core.ErrMissingClaim or
core.ErrJWTMissing when writing a custom ErrorHandler.

# Configuration Options

	jwtbackend.WithValidator(v)                  // required
	jwtbackend.WithScheme("Bearer")              // default "JWT"
	jwtbackend.WithCredentialsRequired(true)     // default false
	jwtbackend.WithTokenExtractor(extractor)     // default AuthHeaderTokenExtractor(scheme)
	jwtbackend.WithErrorHandler(handler)         // default DefaultErrorHandler
	jwtbackend.WithExclusionUrls([]string{"/health"})
	jwtbackend.WithValidateOnOptions(false)      // default true
	jwtbackend.WithLogger(slog.Default())
	jwtbackend.WithMetrics(jwtbackend.NewPrometheusMetrics(nil))
	jwtbackend.WithTracer(jwtbackend.NewOpenTelemetryTracer(otel.Tracer("api")))

Clients that cannot set headers can send the token as a query parameter:

	jwtbackend.WithTokenExtractor(jwtbackend.MultiTokenExtractor(
	    jwtbackend.AuthHeaderTokenExtractor("JWT"),
	    jwtbackend.ParameterTokenExtractor("jwt"),
	))

# Logging

The Logger interface matches log/slog. NewLogrusLogger, NewZapLogger and
NewZerologLogger adapt the other common loggers.

# Metrics and Tracing

Each authentication increments jwtbackend_authentications_total and observes
jwtbackend_authentication_duration_seconds, both labelled with an outcome:
"authenticated", "unauthenticated", or the ValidationError code. With a
tracer configured, each authentication runs in a "jwtbackend.authenticate"
span carrying the same outcome.
*/
package jwtbackend
