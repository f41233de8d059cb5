package validator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwtbackend/go-jwt-backend/core"
)

func TestValidateTokenFormat(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		expectErr   error
		errContains string
	}{
		{
			name:  "valid JWS token (2 dots)",
			token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJ1c2VybmFtZSI6InVzZXIifQ.signature",
		},
		{
			name:  "max allowed dots (5)",
			token: "a.b.c.d.e.f",
		},
		{
			name:      "excessive dots (6)",
			token:     "a.b.c.d.e.f.g",
			expectErr: ErrExcessiveTokenDots,
		},
		{
			name:      "malicious token with 10000 dots",
			token:     strings.Repeat(".", 10000),
			expectErr: ErrExcessiveTokenDots,
		},
		{
			name:        "empty token",
			token:       "",
			errContains: "token is empty",
		},
		{
			name:        "token exceeds 1MB",
			token:       strings.Repeat("a", 1024*1024+1),
			errContains: "token exceeds maximum size (1MB)",
		},
		{
			name:  "token exactly 1MB (allowed)",
			token: "header." + strings.Repeat("a", 1024*1024-20) + ".sig",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTokenFormat(tt.token)

			switch {
			case tt.expectErr != nil:
				assert.ErrorIs(t, err, tt.expectErr)
			case tt.errContains != "":
				assert.ErrorContains(t, err, tt.errContains)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateToken_RejectsExcessiveDotsBeforeParsing(t *testing.T) {
	v, err := New(WithSecret([]byte(secret)))
	require.NoError(t, err)

	_, err = v.ValidateToken(context.Background(), strings.Repeat("a.", 1000)+"z")

	assert.ErrorIs(t, err, ErrExcessiveTokenDots)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func BenchmarkValidateTokenFormat(b *testing.B) {
	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "normal token",
			token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJ1c2VybmFtZSI6InVzZXIifQ.signature",
		},
		{
			name:  "malicious 1000 dots",
			token: strings.Repeat("a.", 1000) + "z",
		},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = validateTokenFormat(tt.token)
			}
		})
	}
}
