package interceptors

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// LocaleUnary returns a unary server interceptor that copies the accept-language metadata into context.
func LocaleUnary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if vals := md.Get("accept-language"); len(vals) > 0 {
				ctx = WithLocale(ctx, vals[0])
			}
		}
		return handler(ctx, req)
	}
}
