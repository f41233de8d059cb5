package core

import (
	"fmt"
	"strings"
)

// DefaultScheme is the Authorization scheme expected when none is configured.
const DefaultScheme = "JWT"

// Headers is the read-only view of request headers the core needs.
// http.Header satisfies it.
type Headers interface {
	Get(key string) string
}

// MapHeaders adapts a plain multi-value map (such as gRPC metadata, whose keys
// are lowercase) to Headers. Lookups are case-insensitive.
type MapHeaders map[string][]string

// Get returns the first value stored under key.
func (h MapHeaders) Get(key string) string {
	if v := h[key]; len(v) > 0 {
		return v[0]
	}
	if v := h[strings.ToLower(key)]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// ExtractToken splits an Authorization header value into scheme and token and
// returns the token when the scheme equals the expected one. The header must
// contain exactly one space; the comparison is case-sensitive and the token is
// returned untrimmed.
func ExtractToken(authorization, scheme string) (string, error) {
	parts := strings.Split(authorization, " ")
	if len(parts) != 2 {
		return "", NewValidationError(
			ErrorCodeHeaderMalformed,
			"Could not separate Authorization scheme and token",
			nil,
		)
	}

	if parts[0] != scheme {
		return "", NewValidationError(
			ErrorCodeUnsupportedScheme,
			fmt.Sprintf("Authorization scheme %s is not supported", parts[0]),
			nil,
		)
	}

	return parts[1], nil
}
