// Package jwttest mints signed tokens for tests.
package jwttest

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

// Secret is the secret used by the HTTP scenarios.
const Secret = "example"

// Sign returns claims signed with HS256 and secret.
func Sign(t testing.TB, claims map[string]any, secret string) string {
	t.Helper()
	return SignWith(t, jwt.SigningMethodHS256, claims, secret)
}

// SignWith returns claims signed with method and secret.
func SignWith(t testing.TB, method jwt.SigningMethod, claims map[string]any, secret string) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, jwt.MapClaims(claims)).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

// User returns a token carrying {"username": username} signed with secret.
func User(t testing.TB, username, secret string) string {
	t.Helper()
	return Sign(t, map[string]any{"username": username}, secret)
}
