package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractToken(t *testing.T) {
	testCases := []struct {
		name          string
		authorization string
		scheme        string
		wantToken     string
		wantErr       error
		wantMessage   string
	}{
		{
			name:          "scheme and token",
			authorization: "JWT eyJhbGciOiJIUzI1NiJ9.e30.sig",
			scheme:        "JWT",
			wantToken:     "eyJhbGciOiJIUzI1NiJ9.e30.sig",
		},
		{
			name:          "bearer scheme",
			authorization: "Bearer i-am-token",
			scheme:        "Bearer",
			wantToken:     "i-am-token",
		},
		{
			name:          "no space",
			authorization: "eyJhbGciOiJIUzI1NiJ9.e30.sig",
			scheme:        "JWT",
			wantErr:       ErrMalformedHeader,
			wantMessage:   "Could not separate Authorization scheme and token",
		},
		{
			name:          "too many parts",
			authorization: "JWT token extra",
			scheme:        "JWT",
			wantErr:       ErrMalformedHeader,
			wantMessage:   "Could not separate Authorization scheme and token",
		},
		{
			name:          "double space",
			authorization: "JWT  token",
			scheme:        "JWT",
			wantErr:       ErrMalformedHeader,
			wantMessage:   "Could not separate Authorization scheme and token",
		},
		{
			name:          "wrong scheme",
			authorization: "WRONG token",
			scheme:        "JWT",
			wantErr:       ErrUnsupportedScheme,
			wantMessage:   "Authorization scheme WRONG is not supported",
		},
		{
			name:          "scheme match is case-sensitive",
			authorization: "jwt token",
			scheme:        "JWT",
			wantErr:       ErrUnsupportedScheme,
			wantMessage:   "Authorization scheme jwt is not supported",
		},
		{
			name:          "token is not trimmed",
			authorization: "JWT token\t",
			scheme:        "JWT",
			wantToken:     "token\t",
		},
		{
			name:          "empty token is returned as is",
			authorization: "JWT ",
			scheme:        "JWT",
			wantToken:     "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			token, err := ExtractToken(testCase.authorization, testCase.scheme)
			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)
				assert.Equal(t, testCase.wantMessage, err.Error())
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.wantToken, token)
		})
	}
}

func TestExtractToken_AnyHeaderWithoutSpaceIsMalformed(t *testing.T) {
	for _, header := range []string{"", "x", "JWT", "a.b.c", "JWT\ttoken", "Bearer\ntoken"} {
		_, err := ExtractToken(header, "JWT")
		assert.ErrorIs(t, err, ErrMalformedHeader, "header %q", header)
	}
}

func TestExtractToken_MismatchedSchemeIsNamed(t *testing.T) {
	for _, scheme := range []string{"Bearer", "Basic", "jwt", "JWT2", "Token"} {
		_, err := ExtractToken(scheme+" token", "JWT")
		require.ErrorIs(t, err, ErrUnsupportedScheme)
		assert.Contains(t, err.Error(), "Authorization scheme "+scheme+" is not supported")
	}
}

func TestMapHeaders(t *testing.T) {
	h := MapHeaders{"authorization": []string{"JWT token", "JWT other"}}

	assert.Equal(t, "JWT token", h.Get("authorization"))
	assert.Equal(t, "JWT token", h.Get("Authorization"))
	assert.Empty(t, h.Get("x-missing"))
}
