package jwtbackend

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwtbackend/go-jwt-backend/core"
)

func Test_ParameterTokenExtractor(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://localhost?jwt=i-am-token", nil)

	gotToken, err := ParameterTokenExtractor("jwt")(r)
	require.NoError(t, err)
	assert.Equal(t, "i-am-token", gotToken)
}

func Test_AuthHeaderTokenExtractor(t *testing.T) {
	testCases := []struct {
		name      string
		header    string
		scheme    string
		wantToken string
		wantError error
		wantMsg   string
	}{
		{
			name:   "empty / no header",
			scheme: "JWT",
		},
		{
			name:      "token in header",
			header:    "JWT i-am-token",
			scheme:    "JWT",
			wantToken: "i-am-token",
		},
		{
			name:      "custom scheme",
			header:    "Bearer i-am-token",
			scheme:    "Bearer",
			wantToken: "i-am-token",
		},
		{
			name:      "no separator",
			header:    "i-am-token",
			scheme:    "JWT",
			wantError: core.ErrMalformedHeader,
			wantMsg:   "Could not separate Authorization scheme and token",
		},
		{
			name:      "too many parts",
			header:    "JWT a b",
			scheme:    "JWT",
			wantError: core.ErrMalformedHeader,
			wantMsg:   "Could not separate Authorization scheme and token",
		},
		{
			name:      "scheme without token",
			header:    "JWT ",
			scheme:    "JWT",
			wantError: core.ErrInvalidToken,
			wantMsg:   "Token is malformed",
		},
		{
			name:      "wrong scheme",
			header:    "WRONG i-am-token",
			scheme:    "JWT",
			wantError: core.ErrUnsupportedScheme,
			wantMsg:   "Authorization scheme WRONG is not supported",
		},
		{
			name:      "scheme match is case sensitive",
			header:    "jwt i-am-token",
			scheme:    "JWT",
			wantError: core.ErrUnsupportedScheme,
			wantMsg:   "Authorization scheme jwt is not supported",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if testCase.header != "" {
				r.Header.Set("Authorization", testCase.header)
			}

			gotToken, gotError := AuthHeaderTokenExtractor(testCase.scheme)(r)
			if testCase.wantError != nil {
				assert.ErrorIs(t, gotError, testCase.wantError)
				var validationErr *core.ValidationError
				require.ErrorAs(t, gotError, &validationErr)
				assert.Equal(t, testCase.wantMsg, validationErr.Message)
				return
			}

			require.NoError(t, gotError)
			assert.Equal(t, testCase.wantToken, gotToken)
		})
	}
}

func Test_CookieTokenExtractor(t *testing.T) {
	testCases := []struct {
		name      string
		cookie    *http.Cookie
		wantToken string
	}{
		{
			name:      "no cookie",
			cookie:    nil,
			wantToken: "",
		},
		{
			name:      "token in cookie",
			cookie:    &http.Cookie{Name: "token", Value: "i-am-token"},
			wantToken: "i-am-token",
		},
		{
			name:      "empty cookie",
			cookie:    &http.Cookie{Name: "token"},
			wantToken: "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			if testCase.cookie != nil {
				r.AddCookie(testCase.cookie)
			}

			gotToken, err := CookieTokenExtractor("token")(r)
			require.NoError(t, err)
			assert.Equal(t, testCase.wantToken, gotToken)
		})
	}
}

func Test_MultiTokenExtractor(t *testing.T) {
	noopExtractor := func(r *http.Request) (string, error) {
		return "", nil
	}

	t.Run("uses first extractor that replies", func(t *testing.T) {
		wantToken := "i am token"

		exNothing := func(r *http.Request) (string, error) {
			return "", nil
		}
		exSomething := func(r *http.Request) (string, error) {
			return wantToken, nil
		}
		exFail := func(r *http.Request) (string, error) {
			return "", errors.New("should not have hit me")
		}

		gotToken, err := MultiTokenExtractor(exNothing, exSomething, exFail)(&http.Request{})
		require.NoError(t, err)
		assert.Equal(t, wantToken, gotToken)
	})

	t.Run("stops when an extractor fails", func(t *testing.T) {
		exFail := func(r *http.Request) (string, error) {
			return "", errors.New("extraction fail")
		}

		_, err := MultiTokenExtractor(noopExtractor, exFail)(&http.Request{})
		assert.EqualError(t, err, "extraction fail")
	})

	t.Run("defaults to empty", func(t *testing.T) {
		gotToken, err := MultiTokenExtractor()(&http.Request{})
		require.NoError(t, err)
		assert.Empty(t, gotToken)
	})

	t.Run("header then query parameter", func(t *testing.T) {
		extractor := MultiTokenExtractor(AuthHeaderTokenExtractor("JWT"), ParameterTokenExtractor("jwt"))

		r := httptest.NewRequest(http.MethodGet, "/?jwt=from-query", nil)
		gotToken, err := extractor(r)
		require.NoError(t, err)
		assert.Equal(t, "from-query", gotToken)

		r.Header.Set("Authorization", "JWT from-header")
		gotToken, err = extractor(r)
		require.NoError(t, err)
		assert.Equal(t, "from-header", gotToken)
	})
}
