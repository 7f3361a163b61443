package memvid

import (
	rpc "github.com/kailas-cloud/memvid-gateway/internal/transport/grpc"
)

// Hit is one scored search result.
type Hit struct {
	Title   string
	Score   float32
	Snippet string
	Tags    []string
}

// SearchResult holds hits ordered by score descending.
type SearchResult struct {
	Hits      []Hit
	TotalHits int32
	TookMs    int32
}

// AnswerStats describes how an answer was produced.
type AnswerStats struct {
	CandidatesRetrieved int32
	ResultsReturned     int32
	RetrievalMs         int32
	UsedFallback        bool
}

// Answer is a question-answering result with supporting evidence.
type Answer struct {
	Answer   string
	Evidence []Hit
	Stats    AnswerStats
}

// State is the result of an entity slot lookup.
type State struct {
	Found  bool
	Entity string
	Slots  map[string]string
}

// HealthStatus reports gateway readiness and index metadata.
type HealthStatus struct {
	Serving    bool
	FrameCount int32
	MemvidFile string
}

func hitsFromWire(hits []rpc.SearchHit) []Hit {
	out := make([]Hit, 0, len(hits))
	for _, h := range hits {
		out = append(out, Hit{Title: h.Title, Score: h.Score, Snippet: h.Snippet, Tags: h.Tags})
	}
	return out
}

func searchFromWire(res *rpc.SearchResponse) *SearchResult {
	return &SearchResult{
		Hits:      hitsFromWire(res.Hits),
		TotalHits: res.TotalHits,
		TookMs:    res.TookMs,
	}
}

func answerFromWire(res *rpc.AskResponse) *Answer {
	out := &Answer{
		Answer:   res.Answer,
		Evidence: hitsFromWire(res.Evidence),
	}
	if res.Stats != nil {
		out.Stats = AnswerStats{
			CandidatesRetrieved: res.Stats.CandidatesRetrieved,
			ResultsReturned:     res.Stats.ResultsReturned,
			RetrievalMs:         res.Stats.RetrievalMs,
			UsedFallback:        res.Stats.UsedFallback,
		}
	}
	return out
}
