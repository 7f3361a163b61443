// Package grpc carries the memvid RPC surface: wire message types, service
// descriptors, server adapters, and client stubs.
//
// The message types mirror api/proto/memvid/v1/memvid.proto and are
// hand-written; they travel over the registered JSON codec rather than
// protoc-generated marshalers. Keep them in sync with the .proto contract.
package grpc

// AskMode mirrors memvid.v1.AskMode.
type AskMode int32

const (
	// AskModeHybrid combines lexical and semantic retrieval.
	AskModeHybrid AskMode = 0
	// AskModeSem selects semantic-only retrieval.
	AskModeSem AskMode = 1
	// AskModeLex selects lexical-only retrieval.
	AskModeLex AskMode = 2
)

// SearchRequest mirrors memvid.v1.SearchRequest.
type SearchRequest struct {
	Query        string `json:"query"`
	TopK         int32  `json:"top_k"`
	SnippetChars int32  `json:"snippet_chars"`
}

// SearchHit mirrors memvid.v1.SearchHit.
type SearchHit struct {
	Title   string   `json:"title"`
	Score   float32  `json:"score"`
	Snippet string   `json:"snippet"`
	Tags    []string `json:"tags,omitempty"`
}

// SearchResponse mirrors memvid.v1.SearchResponse.
type SearchResponse struct {
	Hits      []SearchHit `json:"hits"`
	TotalHits int32       `json:"total_hits"`
	TookMs    int32       `json:"took_ms"`
}

// AskRequest mirrors memvid.v1.AskRequest.
type AskRequest struct {
	Question     string            `json:"question"`
	UseLLM       bool              `json:"use_llm"`
	TopK         int32             `json:"top_k"`
	Filters      map[string]string `json:"filters,omitempty"`
	Start        int64             `json:"start"`
	End          int64             `json:"end"`
	SnippetChars int32             `json:"snippet_chars"`
	Mode         AskMode           `json:"mode"`
	URI          string            `json:"uri,omitempty"`
	Cursor       string            `json:"cursor,omitempty"`
	AsOfFrame    *int64            `json:"as_of_frame,omitempty"`
	AsOfTs       *int64            `json:"as_of_ts,omitempty"`
	Adaptive     *bool             `json:"adaptive,omitempty"`
}

// AskStats mirrors memvid.v1.AskStats.
type AskStats struct {
	CandidatesRetrieved int32 `json:"candidates_retrieved"`
	ResultsReturned     int32 `json:"results_returned"`
	RetrievalMs         int32 `json:"retrieval_ms"`
	RerankingMs         int32 `json:"reranking_ms"`
	UsedFallback        bool  `json:"used_fallback"`
}

// AskResponse mirrors memvid.v1.AskResponse.
type AskResponse struct {
	Answer   string      `json:"answer"`
	Evidence []SearchHit `json:"evidence"`
	Stats    *AskStats   `json:"stats,omitempty"`
}

// GetStateRequest mirrors memvid.v1.GetStateRequest.
type GetStateRequest struct {
	Entity string `json:"entity"`
	Slot   string `json:"slot,omitempty"`
}

// GetStateResponse mirrors memvid.v1.GetStateResponse.
type GetStateResponse struct {
	Found  bool              `json:"found"`
	Entity string            `json:"entity"`
	Slots  map[string]string `json:"slots,omitempty"`
}

// HealthStatus mirrors memvid.v1.HealthCheckResponse.Status.
type HealthStatus int32

const (
	// HealthStatusUnknown is the zero value.
	HealthStatusUnknown HealthStatus = 0
	// HealthStatusServing means the backend is ready.
	HealthStatusServing HealthStatus = 1
	// HealthStatusNotServing means the backend cannot serve yet.
	HealthStatusNotServing HealthStatus = 2
)

// HealthCheckRequest mirrors memvid.v1.HealthCheckRequest.
type HealthCheckRequest struct {
	Service string `json:"service,omitempty"`
}

// HealthCheckResponse mirrors memvid.v1.HealthCheckResponse.
type HealthCheckResponse struct {
	Status     HealthStatus `json:"status"`
	FrameCount int32        `json:"frame_count"`
	MemvidFile string       `json:"memvid_file"`
}
