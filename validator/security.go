package validator

import (
	"errors"
	"strings"
)

var (
	// ErrExcessiveTokenDots is returned when a token contains more dots than
	// any compact serialization can.
	ErrExcessiveTokenDots = errors.New("token contains excessive dots")
)

const (
	// maxTokenDots is the maximum number of dots allowed in a token.
	// JWS compact is header.payload.signature (2 dots); 5 leaves room for JWE.
	maxTokenDots = 5

	// maxTokenSize is the largest token accepted, in bytes.
	maxTokenSize = 1024 * 1024
)

// validateTokenFormat rejects obviously malformed input before it reaches the
// JWT library.
func validateTokenFormat(tokenString string) error {
	if len(tokenString) == 0 {
		return errors.New("token is empty")
	}

	if strings.Count(tokenString, ".") > maxTokenDots {
		return ErrExcessiveTokenDots
	}

	if len(tokenString) > maxTokenSize {
		return errors.New("token exceeds maximum size (1MB)")
	}

	return nil
}
