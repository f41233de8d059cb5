package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	t.Run("WithSecret", func(t *testing.T) {
		t.Run("valid", func(t *testing.T) {
			v := &Validator{}
			err := WithSecret([]byte("example"))(v)
			assert.NoError(t, err)
			assert.Equal(t, []byte("example"), v.secret)
		})

		t.Run("empty", func(t *testing.T) {
			v := &Validator{}
			err := WithSecret(nil)(v)
			assert.EqualError(t, err, "secret cannot be empty")
		})
	})

	t.Run("WithAlgorithm", func(t *testing.T) {
		t.Run("valid", func(t *testing.T) {
			v := &Validator{}
			err := WithAlgorithm(HS384)(v)
			assert.NoError(t, err)
			assert.Equal(t, HS384, v.signatureAlgorithm)
		})

		t.Run("unsupported", func(t *testing.T) {
			v := &Validator{}
			err := WithAlgorithm("RS256")(v)
			assert.EqualError(t, err, "unsupported signature algorithm: RS256")
		})
	})

	t.Run("WithUsernameClaim", func(t *testing.T) {
		v := &Validator{}
		require.NoError(t, WithUsernameClaim("sub")(v))
		assert.Equal(t, "sub", v.policy.UsernameClaim)

		assert.Error(t, WithUsernameClaim("")(v))
	})

	t.Run("WithIssuer", func(t *testing.T) {
		v := &Validator{}
		require.NoError(t, WithIssuer("https://issuer.example.com/")(v))
		assert.Equal(t, "https://issuer.example.com/", v.policy.Issuer)

		assert.EqualError(t, WithIssuer("")(v), "issuer cannot be empty")
		assert.ErrorContains(t, WithIssuer("://missing-scheme")(v), "invalid issuer URL")
	})

	t.Run("WithAudiences", func(t *testing.T) {
		v := &Validator{}
		require.NoError(t, WithAudiences("a", "b")(v))
		assert.Equal(t, []string{"a", "b"}, v.policy.Audience)

		assert.EqualError(t, WithAudiences()(v), "audiences cannot be empty")
		assert.EqualError(t, WithAudiences("a", "")(v), "audience at index 1 cannot be empty")
	})

	t.Run("WithRequiredClaims", func(t *testing.T) {
		v := &Validator{}
		require.NoError(t, WithRequiredClaims("email")(v))
		require.NoError(t, WithRequiredClaims("roles")(v))
		assert.Equal(t, []string{"email", "roles"}, v.policy.RequiredClaims)

		assert.EqualError(t, WithRequiredClaims("")(v), "required claim at index 0 cannot be empty")
	})

	t.Run("WithAllowedClockSkew", func(t *testing.T) {
		v := &Validator{}
		require.NoError(t, WithAllowedClockSkew(30*time.Second)(v))
		assert.Equal(t, 30*time.Second, v.allowedClockSkew)

		assert.EqualError(t, WithAllowedClockSkew(-time.Second)(v), "clock skew cannot be negative")
	})

	t.Run("New wraps option errors", func(t *testing.T) {
		_, err := New(WithSecret([]byte("example")), WithAlgorithm("none"))
		assert.EqualError(t, err, "invalid option: unsupported signature algorithm: none")
	})
}
