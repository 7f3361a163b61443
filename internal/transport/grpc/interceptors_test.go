package grpc

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestRecoveryInterceptorConvertsPanic(t *testing.T) {
	interceptor := RecoveryInterceptor(zap.NewNop())
	info := &grpclib.UnaryServerInfo{FullMethod: methodSearch}

	_, err := interceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		panic("boom")
	})
	if status.Code(err) != codes.Internal {
		t.Errorf("code = %v, want Internal", status.Code(err))
	}
}

func TestRecoveryInterceptorPassesThrough(t *testing.T) {
	interceptor := RecoveryInterceptor(zap.NewNop())
	info := &grpclib.UnaryServerInfo{FullMethod: methodSearch}

	want := errors.New("handler error")
	resp, err := interceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return "ok", want
	})
	if resp != "ok" || !errors.Is(err, want) {
		t.Errorf("got (%v, %v), want (ok, %v)", resp, err, want)
	}
}

func TestWideEventInterceptorReturnsHandlerResult(t *testing.T) {
	interceptor := WideEventInterceptor(zap.NewNop())
	info := &grpclib.UnaryServerInfo{FullMethod: methodAsk}

	resp, err := interceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return &AskResponse{Answer: "hi"}, nil
	})
	if err != nil {
		t.Fatalf("interceptor error = %v", err)
	}
	if resp.(*AskResponse).Answer != "hi" {
		t.Errorf("unexpected response: %+v", resp)
	}
}
