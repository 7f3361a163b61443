package grpc

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/memvid-gateway/internal/searcher"
)

// HealthService answers memvid.v1.Health/Check by probing the backend
// without blocking. A backend that cannot be probed instantly reports
// NOT_SERVING rather than stalling the caller.
type HealthService struct {
	backend searcher.Searcher
	logger  *zap.Logger
}

var _ HealthServer = (*HealthService)(nil)

// NewHealthService creates the health-plane RPC server.
func NewHealthService(backend searcher.Searcher, logger *zap.Logger) *HealthService {
	return &HealthService{backend: backend, logger: logger}
}

// Check handles memvid.v1.Health/Check.
func (h *HealthService) Check(_ context.Context, _ *HealthCheckRequest) (*HealthCheckResponse, error) {
	st := HealthStatusNotServing
	if h.backend.IsReady() {
		st = HealthStatusServing
	}

	return &HealthCheckResponse{
		Status:     st,
		FrameCount: h.backend.FrameCount(),
		MemvidFile: h.backend.MemvidFile(),
	}, nil
}
