/*
Package jwtgrpc provides JWT authentication interceptors for gRPC servers.

The token travels in the "authorization" metadata entry with the same
"<scheme> <token>" format as the HTTP adapter ("JWT" by default). Metadata is
handed to core.Core.Authenticate as core.Headers, so parsing, validation and
the error taxonomy are shared with the HTTP middleware.

# Quick Start

	v, err := validator.New(validator.WithSecret([]byte("example")))
	if err != nil {
	    log.Fatal(err)
	}

	interceptor, err := jwtgrpc.New(
	    jwtgrpc.WithValidator(v),
	    jwtgrpc.WithExcludedMethods("/grpc.health.v1.Health/Check"),
	)
	if err != nil {
	    log.Fatal(err)
	}

	server := grpc.NewServer(
	    grpc.UnaryInterceptor(interceptor.UnaryServerInterceptor()),
	    grpc.StreamInterceptor(interceptor.StreamServerInterceptor()),
	)

# Accessing the User

	func (s *server) Hello(ctx context.Context, req *pb.HelloRequest) (*pb.HelloReply, error) {
	    user, ok := jwtgrpc.GetUser(ctx)
	    if !ok {
	        return nil, status.Error(codes.Unauthenticated, "missing credentials")
	    }
	    return &pb.HelloReply{Message: "Hello " + user.DisplayName()}, nil
	}

Without WithCredentialsRequired(true), calls without a token reach the handler
with an unauthenticated result. Handlers that need a user call RequireUser.

# Error Mapping

DefaultErrorHandler maps failures to status codes:

	missing credentials                    Unauthenticated
	malformed metadata, foreign scheme     InvalidArgument
	bad signature, expired, bad claims     Unauthenticated
	issuer or audience mismatch            PermissionDenied
	anything else                          Unauthenticated
*/
package jwtgrpc
