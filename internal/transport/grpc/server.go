package grpc

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kailas-cloud/memvid-gateway/internal/domain"
	"github.com/kailas-cloud/memvid-gateway/internal/metrics"
	"github.com/kailas-cloud/memvid-gateway/internal/searcher"
)

// Wire-level defaults applied before the request reaches a backend.
// Backends additionally clamp to their own bounds.
const (
	defaultTopK         = 5
	defaultSnippetChars = 200
)

// Server adapts a search backend to the memvid.v1.MemvidService contract.
type Server struct {
	backend searcher.Searcher
	logger  *zap.Logger
}

var _ MemvidServiceServer = (*Server)(nil)

// NewServer creates the data-plane RPC server.
func NewServer(backend searcher.Searcher, logger *zap.Logger) *Server {
	return &Server{backend: backend, logger: logger}
}

// Search handles memvid.v1.MemvidService/Search.
func (s *Server) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, status.Error(codes.InvalidArgument, "query must not be empty")
	}

	topK := req.TopK
	if topK == 0 {
		topK = defaultTopK
	}
	snippetChars := req.SnippetChars
	if snippetChars == 0 {
		snippetChars = defaultSnippetChars
	}

	res, err := s.backend.Search(ctx, req.Query, topK, snippetChars)
	if err != nil {
		return nil, toStatusError(err)
	}

	metrics.SearchHitsReturned.Observe(float64(len(res.Hits)))

	return &SearchResponse{
		Hits:      hitsToWire(res.Hits),
		TotalHits: res.TotalHits,
		TookMs:    res.TookMs,
	}, nil
}

// Ask handles memvid.v1.MemvidService/Ask.
func (s *Server) Ask(ctx context.Context, req *AskRequest) (*AskResponse, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, status.Error(codes.InvalidArgument, "question must not be empty")
	}

	res, err := s.backend.Ask(ctx, askToDomain(req))
	if err != nil {
		return nil, toStatusError(err)
	}

	return &AskResponse{
		Answer:   res.Answer,
		Evidence: hitsToWire(res.Evidence),
		Stats: &AskStats{
			CandidatesRetrieved: res.Stats.CandidatesRetrieved,
			ResultsReturned:     res.Stats.ResultsReturned,
			RetrievalMs:         res.Stats.RetrievalMs,
			RerankingMs:         res.Stats.RerankingMs,
			UsedFallback:        res.Stats.UsedFallback,
		},
	}, nil
}

// GetState handles memvid.v1.MemvidService/GetState.
func (s *Server) GetState(ctx context.Context, req *GetStateRequest) (*GetStateResponse, error) {
	if strings.TrimSpace(req.Entity) == "" {
		return nil, status.Error(codes.InvalidArgument, "entity must not be empty")
	}

	res, err := s.backend.GetState(ctx, req.Entity, req.Slot)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &GetStateResponse{
		Found:  res.Found,
		Entity: res.Entity,
		Slots:  res.Slots,
	}, nil
}

func askToDomain(req *AskRequest) domain.AskRequest {
	out := domain.AskRequest{
		Question:     req.Question,
		UseLLM:       req.UseLLM,
		TopK:         req.TopK,
		Filters:      req.Filters,
		Start:        req.Start,
		End:          req.End,
		SnippetChars: req.SnippetChars,
		Mode:         askModeToDomain(req.Mode),
		AsOfFrame:    req.AsOfFrame,
		AsOfTs:       req.AsOfTs,
		Adaptive:     req.Adaptive,
	}
	if out.TopK == 0 {
		out.TopK = defaultTopK
	}
	if out.SnippetChars == 0 {
		out.SnippetChars = defaultSnippetChars
	}
	if req.URI != "" {
		uri := req.URI
		out.URI = &uri
	}
	if req.Cursor != "" {
		cursor := req.Cursor
		out.Cursor = &cursor
	}
	return out
}

// askModeToDomain maps the wire enum onto the retrieval mode. Values from
// newer clients fall back to hybrid rather than failing the request.
func askModeToDomain(m AskMode) domain.AskMode {
	switch m {
	case AskModeSem:
		return domain.ModeSemantic
	case AskModeLex:
		return domain.ModeLexical
	default:
		return domain.ModeHybrid
	}
}

func hitsToWire(hits []domain.SearchResult) []SearchHit {
	out := make([]SearchHit, 0, len(hits))
	for _, h := range hits {
		out = append(out, SearchHit{
			Title:   h.Title,
			Score:   h.Score,
			Snippet: h.Snippet,
			Tags:    h.Tags,
		})
	}
	return out
}
