package core

import "errors"

// Sentinel errors for request authentication. Every ValidationError matches
// exactly one of the first five via errors.Is.
var (
	// ErrMalformedHeader is returned when the Authorization header cannot be
	// split into a scheme and a token.
	ErrMalformedHeader = errors.New("malformed authorization header")

	// ErrUnsupportedScheme is returned when the Authorization scheme does not
	// match the configured one.
	ErrUnsupportedScheme = errors.New("unsupported authorization scheme")

	// ErrInvalidSignature is returned when the token signature does not verify
	// against the configured secret.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrInvalidToken is returned for any other decode or claim failure.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingClaim is returned when a required claim is absent.
	ErrMissingClaim = errors.New("missing required claim")

	// ErrJWTMissing is returned when no credentials were sent but they are required.
	ErrJWTMissing = errors.New("jwt missing")

	// ErrResultNotFound is returned when no authentication result is stored in a context.
	ErrResultNotFound = errors.New("authentication result not found in context")
)

// Error codes carried by ValidationError.
const (
	ErrorCodeHeaderMalformed   = "header_malformed"
	ErrorCodeUnsupportedScheme = "unsupported_scheme"
	ErrorCodeInvalidSignature  = "invalid_signature"
	ErrorCodeTokenMalformed    = "token_malformed"
	ErrorCodeTokenExpired      = "token_expired"
	ErrorCodeTokenNotYetValid  = "token_not_yet_valid"
	ErrorCodeInvalidIssuer     = "invalid_issuer"
	ErrorCodeInvalidAudience   = "invalid_audience"
	ErrorCodeInvalidAlgorithm  = "invalid_algorithm"
	ErrorCodeInvalidClaims     = "invalid_claims"
	ErrorCodeMissingClaim      = "missing_claim"
	ErrorCodeTokenMissing      = "token_missing"
)

var codeKinds = map[string]error{
	ErrorCodeHeaderMalformed:   ErrMalformedHeader,
	ErrorCodeUnsupportedScheme: ErrUnsupportedScheme,
	ErrorCodeInvalidSignature:  ErrInvalidSignature,
	ErrorCodeTokenMalformed:    ErrInvalidToken,
	ErrorCodeTokenExpired:      ErrInvalidToken,
	ErrorCodeTokenNotYetValid:  ErrInvalidToken,
	ErrorCodeInvalidIssuer:     ErrInvalidToken,
	ErrorCodeInvalidAudience:   ErrInvalidToken,
	ErrorCodeInvalidAlgorithm:  ErrInvalidToken,
	ErrorCodeInvalidClaims:     ErrInvalidToken,
	ErrorCodeMissingClaim:      ErrMissingClaim,
	ErrorCodeTokenMissing:      ErrJWTMissing,
}

// ValidationError wraps authentication failures with additional context.
// Message is safe to show to the client; Details holds the underlying error.
type ValidationError struct {
	// Code is a machine-readable error code (e.g., "unsupported_scheme").
	Code string

	// Message is a human-readable error message.
	Message string

	// Details contains the underlying error.
	Details error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Details != nil {
		return e.Message + ": " + e.Details.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ValidationError) Unwrap() error {
	return e.Details
}

// Is reports whether target is the taxonomy sentinel for e.Code.
func (e *ValidationError) Is(target error) bool {
	kind, ok := codeKinds[e.Code]
	return ok && kind == target
}

// NewValidationError creates a new ValidationError with the given code and message.
func NewValidationError(code, message string, details error) *ValidationError {
	return &ValidationError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
