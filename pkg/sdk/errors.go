package memvid

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Sentinel errors mapped from gateway status codes.
// Use errors.Is() to check.
var (
	ErrNotFound       = errors.New("memvid: not found")
	ErrInvalidRequest = errors.New("memvid: invalid request")
	ErrNotReady       = errors.New("memvid: gateway not ready")
)

// wrapStatusError attaches a sentinel matching the status code while keeping
// the transport error in the chain.
func wrapStatusError(err error) error {
	s, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch s.Code() {
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, s.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidRequest, s.Message())
	case codes.Unavailable:
		return fmt.Errorf("%w: %s", ErrNotReady, s.Message())
	default:
		return err
	}
}
