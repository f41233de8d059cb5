package jwtiris

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtbackend "github.com/jwtbackend/go-jwt-backend"
	"github.com/jwtbackend/go-jwt-backend/core"
	"github.com/jwtbackend/go-jwt-backend/internal/jwttest"
	"github.com/jwtbackend/go-jwt-backend/validator"
)

func newApp(t *testing.T, opts ...Option) *iris.Application {
	t.Helper()

	v, err := validator.New(validator.WithSecret([]byte(jwttest.Secret)))
	require.NoError(t, err)
	m, err := jwtbackend.New(jwtbackend.WithValidator(v))
	require.NoError(t, err)

	app := iris.New()
	app.Logger().SetLevel("disable")
	app.Use(New(m, opts...))
	app.Get("/auth", Requires(), func(c iris.Context) {
		user, ok := GetUser(c)
		require.True(t, ok)
		_ = c.JSON(iris.Map{"auth": iris.Map{"username": user.DisplayName()}})
	})
	app.Get("/no-auth", func(c iris.Context) {
		result, err := GetResult(c)
		require.NoError(t, err)
		assert.Equal(t, result, c.Values().Get(DefaultResultKey))
		_ = c.JSON(iris.Map{"auth": nil})
	})
	require.NoError(t, app.Build())
	return app
}

func Test_IrisMiddleware(t *testing.T) {
	goodToken := jwttest.User(t, "user", jwttest.Secret)

	testCases := []struct {
		name           string
		path           string
		authorization  string
		wantStatusCode int
		wantBody       string
		wantJSON       string
	}{
		{
			name:           "no token on a protected route",
			path:           "/auth",
			wantStatusCode: http.StatusForbidden,
			wantBody:       "Forbidden",
		},
		{
			name:           "token without a scheme",
			path:           "/auth",
			authorization:  goodToken,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       "Could not separate Authorization scheme and token",
		},
		{
			name:           "wrong scheme",
			path:           "/auth",
			authorization:  "WRONG " + goodToken,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       "Authorization scheme WRONG is not supported",
		},
		{
			name:           "good header",
			path:           "/auth",
			authorization:  "JWT " + goodToken,
			wantStatusCode: http.StatusOK,
			wantJSON:       `{"auth":{"username":"user"}}`,
		},
		{
			name:           "wrong secret",
			path:           "/auth",
			authorization:  "JWT " + jwttest.User(t, "user", "BAD SECRET"),
			wantStatusCode: http.StatusBadRequest,
			wantBody:       "Signature verification failed",
		},
		{
			name:           "public route",
			path:           "/no-auth",
			wantStatusCode: http.StatusOK,
			wantJSON:       `{"auth":null}`,
		},
	}

	app := newApp(t)

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, testCase.path, nil)
			if testCase.authorization != "" {
				req.Header.Set("Authorization", testCase.authorization)
			}
			w := httptest.NewRecorder()

			app.ServeHTTP(w, req)

			assert.Equal(t, testCase.wantStatusCode, w.Code)
			if testCase.wantJSON != "" {
				assert.JSONEq(t, testCase.wantJSON, w.Body.String())
				return
			}
			assert.Equal(t, testCase.wantBody, w.Body.String())
		})
	}
}

func Test_IrisMiddleware_CustomErrorHandler(t *testing.T) {
	var gotErr error
	app := newApp(t, WithErrorHandler(func(c iris.Context, err error) {
		gotErr = err
		c.StopWithJSON(http.StatusUnauthorized, iris.Map{"error": "nope"})
	}))

	req := httptest.NewRequest(http.MethodGet, "/no-auth", nil)
	req.Header.Set("Authorization", "JWT "+jwttest.User(t, "user", "BAD SECRET"))
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"nope"}`, w.Body.String())
	assert.ErrorIs(t, gotErr, core.ErrInvalidSignature)
}

func Test_IrisMiddleware_ContextKey(t *testing.T) {
	v, err := validator.New(validator.WithSecret([]byte(jwttest.Secret)))
	require.NoError(t, err)
	m, err := jwtbackend.New(jwtbackend.WithValidator(v))
	require.NoError(t, err)

	app := iris.New()
	app.Logger().SetLevel("disable")
	app.Use(New(m, WithContextKey("auth")))
	app.Get("/", func(c iris.Context) {
		result, ok := c.Values().Get("auth").(core.Result)
		require.True(t, ok)
		_, _ = c.WriteString(result.User.Username())
	})
	require.NoError(t, app.Build())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "JWT "+jwttest.User(t, "user", jwttest.Secret))
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user", w.Body.String())
}
