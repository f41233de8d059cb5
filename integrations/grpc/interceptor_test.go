package jwtgrpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/jwtbackend/go-jwt-backend/internal/jwttest"
	"github.com/jwtbackend/go-jwt-backend/validator"
)

const testMethod = "/test.Service/Method"

func createTestInterceptor(t *testing.T, opts ...Option) *JWTInterceptor {
	t.Helper()

	v, err := validator.New(validator.WithSecret([]byte(jwttest.Secret)))
	require.NoError(t, err)

	interceptor, err := New(append([]Option{WithValidator(v)}, opts...)...)
	require.NoError(t, err)
	return interceptor
}

func incoming(authorization ...string) context.Context {
	md := metadata.MD{}
	for _, value := range authorization {
		md.Append("authorization", value)
	}
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestUnaryServerInterceptor(t *testing.T) {
	goodToken := jwttest.User(t, "user", jwttest.Secret)

	testCases := []struct {
		name        string
		ctx         context.Context
		opts        []Option
		wantCode    codes.Code
		wantMessage string
		wantUser    string
	}{
		{
			name:     "valid token",
			ctx:      incoming("JWT " + goodToken),
			wantCode: codes.OK,
			wantUser: "user",
		},
		{
			name:     "no metadata continues unauthenticated",
			ctx:      context.Background(),
			wantCode: codes.OK,
		},
		{
			name:        "no token with credentials required",
			ctx:         incoming(),
			opts:        []Option{WithCredentialsRequired(true)},
			wantCode:    codes.Unauthenticated,
			wantMessage: "missing credentials",
		},
		{
			name:        "token without a scheme",
			ctx:         incoming(goodToken),
			wantCode:    codes.InvalidArgument,
			wantMessage: "Could not separate Authorization scheme and token",
		},
		{
			name:        "wrong scheme",
			ctx:         incoming("WRONG " + goodToken),
			wantCode:    codes.InvalidArgument,
			wantMessage: "Authorization scheme WRONG is not supported",
		},
		{
			name:        "wrong secret",
			ctx:         incoming("JWT " + jwttest.User(t, "user", "BAD SECRET")),
			wantCode:    codes.Unauthenticated,
			wantMessage: "Signature verification failed",
		},
		{
			name:        "multiple authorization entries",
			ctx:         incoming("JWT "+goodToken, "JWT "+goodToken),
			wantCode:    codes.InvalidArgument,
			wantMessage: ErrMultipleAuthHeaders.Error(),
		},
		{
			name:     "custom scheme",
			ctx:      incoming("Bearer " + goodToken),
			opts:     []Option{WithScheme("Bearer")},
			wantCode: codes.OK,
			wantUser: "user",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			interceptor := createTestInterceptor(t, testCase.opts...)

			var gotUser string
			handler := func(ctx context.Context, req any) (any, error) {
				result, err := GetResult(ctx)
				require.NoError(t, err)
				if user, ok := GetUser(ctx); ok {
					gotUser = user.DisplayName()
					assert.True(t, result.IsAuthenticated())
				}
				return "success", nil
			}

			resp, err := interceptor.UnaryServerInterceptor()(
				testCase.ctx, "request", &grpc.UnaryServerInfo{FullMethod: testMethod}, handler,
			)

			if testCase.wantCode != codes.OK {
				require.Error(t, err)
				st, ok := status.FromError(err)
				require.True(t, ok)
				assert.Equal(t, testCase.wantCode, st.Code())
				assert.Equal(t, testCase.wantMessage, st.Message())
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "success", resp)
			assert.Equal(t, testCase.wantUser, gotUser)
		})
	}
}

func TestUnaryServerInterceptor_ExcludedMethod(t *testing.T) {
	interceptor := createTestInterceptor(t,
		WithCredentialsRequired(true),
		WithExcludedMethods("/grpc.health.v1.Health/Check"),
	)

	called := false
	handler := func(ctx context.Context, req any) (any, error) {
		called = true
		assert.False(t, hasResult(ctx))
		return "ok", nil
	}

	_, err := interceptor.UnaryServerInterceptor()(
		context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, handler,
	)
	require.NoError(t, err)
	assert.True(t, called)
}

func hasResult(ctx context.Context) bool {
	_, err := GetResult(ctx)
	return err == nil
}

type testServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *testServerStream) Context() context.Context { return s.ctx }

func TestStreamServerInterceptor(t *testing.T) {
	interceptor := createTestInterceptor(t)

	t.Run("valid token", func(t *testing.T) {
		stream := &testServerStream{ctx: incoming("JWT " + jwttest.User(t, "user", jwttest.Secret))}

		var gotUser string
		err := interceptor.StreamServerInterceptor()(nil, stream, &grpc.StreamServerInfo{FullMethod: testMethod},
			func(srv any, ss grpc.ServerStream) error {
				user, err := RequireUser(ss.Context())
				require.NoError(t, err)
				gotUser = user.Username()
				return nil
			})

		require.NoError(t, err)
		assert.Equal(t, "user", gotUser)
	})

	t.Run("invalid token", func(t *testing.T) {
		stream := &testServerStream{ctx: incoming("JWT garbage")}

		err := interceptor.StreamServerInterceptor()(nil, stream, &grpc.StreamServerInfo{FullMethod: testMethod},
			func(srv any, ss grpc.ServerStream) error {
				t.Fatal("handler should not be called")
				return nil
			})

		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("anonymous call and RequireUser", func(t *testing.T) {
		stream := &testServerStream{ctx: context.Background()}

		err := interceptor.StreamServerInterceptor()(nil, stream, &grpc.StreamServerInfo{FullMethod: testMethod},
			func(srv any, ss grpc.ServerStream) error {
				_, err := RequireUser(ss.Context())
				return err
			})

		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})
}

func TestNew(t *testing.T) {
	_, err := New()
	assert.EqualError(t, err, "validator is required, use WithValidator option")

	_, err = New(WithValidator(nil))
	assert.EqualError(t, err, "validator cannot be nil")

	v, err := validator.New(validator.WithSecret([]byte(jwttest.Secret)))
	require.NoError(t, err)

	_, err = New(WithValidator(v), WithScheme(""))
	assert.Error(t, err)

	_, err = New(WithValidator(v), WithLogger(nil))
	assert.EqualError(t, err, "logger cannot be nil")

	_, err = New(WithValidator(v), WithErrorHandler(nil))
	assert.EqualError(t, err, "error handler cannot be nil")

	custom := func(err error) error { return status.Error(codes.Aborted, "custom") }
	interceptor, err := New(WithValidator(v), WithErrorHandler(custom))
	require.NoError(t, err)
	_, err = interceptor.UnaryServerInterceptor()(incoming("JWT x"), nil, &grpc.UnaryServerInfo{FullMethod: testMethod},
		func(ctx context.Context, req any) (any, error) { return nil, nil })
	assert.Equal(t, codes.Aborted, status.Code(err))
}
