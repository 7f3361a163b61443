package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	logpkg "github.com/kailas-cloud/memvid-gateway/internal/logger"
	"github.com/kailas-cloud/memvid-gateway/internal/metrics"
)

// RecoveryInterceptor converts handler panics into Internal errors so a
// single bad request cannot take the process down.
func RecoveryInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if rvr := recover(); rvr != nil {
				logger.Error("panic recovered",
					zap.String("method", info.FullMethod),
					zap.Any("panic", rvr),
					zap.Stack("stacktrace"),
				)
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}

// WideEventInterceptor emits a canonical log line per RPC, propagates a
// request-scoped logger through the context, and records RPC metrics.
func WideEventInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		requestID := requestIDFromContext(ctx)
		reqLogger := logger
		if requestID != "" {
			reqLogger = logger.With(zap.String("request_id", requestID))
		}
		ctx = logpkg.ContextWithLogger(ctx, reqLogger)

		resp, err := handler(ctx, req)

		latency := time.Since(start)
		code := errorCode(err)

		metrics.RPCDuration.WithLabelValues(info.FullMethod).Observe(latency.Seconds())
		metrics.RPCTotal.WithLabelValues(info.FullMethod, code.String()).Inc()

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("latency", latency),
		}
		if p, ok := peer.FromContext(ctx); ok {
			fields = append(fields, zap.String("peer", p.Addr.String()))
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		// Canonical log line — one line per RPC
		reqLogger.Info("rpc_request", fields...)

		return resp, err
	}
}

func requestIDFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if vals := md.Get("x-request-id"); len(vals) > 0 {
		return vals[0]
	}
	return ""
}
