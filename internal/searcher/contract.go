// Package searcher defines the backend capability for search, ask, and entity
// state lookup, together with its implementations: a deterministic in-memory
// mock, a bleve-backed real backend, and a caching decorator.
package searcher

import (
	"context"

	"github.com/kailas-cloud/memvid-gateway/internal/domain"
)

// Searcher is the seam between the RPC layer and a search backend. Backends
// must be safe for concurrent use; no implementation detail may leak through.
type Searcher interface {
	// Search runs relevance search over the loaded index. Implementations
	// clamp topK and snippetChars before executing and return hits ordered
	// by score descending, ties broken by dataset insertion order.
	Search(ctx context.Context, query string, topK, snippetChars int32) (domain.SearchResponse, error)

	// Ask performs question-answering with retrieval under the requested mode.
	Ask(ctx context.Context, req domain.AskRequest) (domain.AskResponse, error)

	// GetState looks up memory-card slots for an entity without relevance
	// ranking. An empty slot returns all slots; a named slot returns at most
	// that one.
	GetState(ctx context.Context, entity, slot string) (domain.StateResponse, error)

	// FrameCount reports the index size cached at construction time.
	FrameCount() int32

	// MemvidFile identifies the backend data source (path or synthetic id).
	MemvidFile() string

	// IsReady is a best-effort liveness probe. It must never block; if the
	// backend cannot be probed instantly it reports false.
	IsReady() bool
}
