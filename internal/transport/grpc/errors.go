package grpc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kailas-cloud/memvid-gateway/internal/domain"
)

type sentinelMapping struct {
	sentinel error
	code     codes.Code
}

// Order matters: the first matching sentinel wins.
var sentinelMappings = []sentinelMapping{
	{domain.ErrFileNotFound, codes.NotFound},
	{domain.ErrInvalidRequest, codes.InvalidArgument},
	{domain.ErrNotReady, codes.Unavailable},
	{domain.ErrLoadFailed, codes.Internal},
	{domain.ErrSearchFailed, codes.Internal},
}

// toStatusError maps a backend error to a grpc status error. Errors
// that already carry a status pass through unchanged; unrecognized
// errors become Internal.
func toStatusError(err error) error {
	if err == nil {
		return nil
	}
	if s, ok := status.FromError(err); ok && s.Code() != codes.Unknown {
		return err
	}
	for _, m := range sentinelMappings {
		if errors.Is(err, m.sentinel) {
			return status.Error(m.code, err.Error())
		}
	}
	return status.Error(codes.Internal, err.Error())
}

// errorCode reports the grpc code a backend error maps to, for logging
// and metrics labels.
func errorCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if s, ok := status.FromError(err); ok && s.Code() != codes.Unknown {
		return s.Code()
	}
	for _, m := range sentinelMappings {
		if errors.Is(err, m.sentinel) {
			return m.code
		}
	}
	return codes.Internal
}
