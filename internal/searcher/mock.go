package searcher

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/memvid-gateway/internal/domain"
)

// mockFrameCount is the simulated index size reported by the mock backend.
const mockFrameCount = 42

// mockEntry is one seeded dataset row: title, base score, snippet, tags.
type mockEntry struct {
	title   string
	score   float32
	snippet string
	tags    []string
}

// Seeded resume sections. Insertion order is the tie-break order for equal
// scores, so tests rely on this slice staying stable.
var mockDataset = []mockEntry{
	{
		"Senior Engineering Manager at Siemens",
		0.95,
		"Led a cross-functional team of 12 engineers building an industrial IoT platform. " +
			"Implemented CI/CD pipelines reducing deployment time by 60%. " +
			"Drove adoption of Rust for performance-critical edge services.",
		[]string{"experience", "leadership", "siemens"},
	},
	{
		"Technical Skills - Programming Languages",
		0.88,
		"Proficient in Rust, Python, TypeScript, Go. " +
			"Experience with systems programming, web services, and ML pipelines. " +
			"Strong background in performance optimization and memory-safe code.",
		[]string{"skills", "programming", "languages"},
	},
	{
		"GenAI and Machine Learning Experience",
		0.92,
		"Built RAG systems using vector databases and LLM APIs. " +
			"Implemented semantic search over resume content. " +
			"Experience with OpenAI, Anthropic Claude, and open-source models.",
		[]string{"skills", "ai", "ml", "genai"},
	},
	{
		"Security Engineering Background",
		0.85,
		"Implemented zero-trust architecture for industrial control systems. " +
			"Led security audits and penetration testing initiatives. " +
			"Designed secure communication protocols for edge devices.",
		[]string{"experience", "security", "architecture"},
	},
	{
		"VP Engineering Qualifications",
		0.90,
		"10+ years of engineering leadership experience. " +
			"Built and scaled teams from 5 to 50+ engineers. " +
			"Track record of delivering complex technical projects on time.",
		[]string{"leadership", "management", "executive"},
	},
	{
		"Education - Computer Science",
		0.75,
		"M.S. Computer Science with a focus on distributed systems. " +
			"Research in fault-tolerant computing and consensus algorithms. " +
			"Published papers on edge computing architectures.",
		[]string{"education", "academic"},
	},
}

// profileEntity is the single entity recognized by the mock backend.
const profileEntity = "__profile__"

const profileJSON = `{
  "name": "Frank Schwichtenberg",
  "title": "Senior Engineering Manager",
  "email": "frank@example.com",
  "location": "San Francisco, CA",
  "status": "Open to opportunities",
  "suggested_questions": [
    "Tell me about your engineering leadership experience",
    "What's your approach to building high-performing teams?"
  ],
  "tags": ["engineering", "leadership", "platform"]
}`

// Mock is a deterministic Searcher seeded with sample resume data. It performs
// no I/O and is always ready, which makes it the backend for tests and
// environments without a real index.
type Mock struct {
	logger *zap.Logger
}

var _ Searcher = (*Mock)(nil)

// NewMock creates the deterministic backend.
func NewMock(logger *zap.Logger) *Mock {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mock{logger: logger}
}

// Search scores the seeded dataset with keyword boosts and returns the topK
// highest-scoring entries.
func (m *Mock) Search(ctx context.Context, query string, topK, snippetChars int32) (domain.SearchResponse, error) {
	start := time.Now()

	if strings.TrimSpace(query) == "" {
		return domain.SearchResponse{}, fmt.Errorf("%w: query cannot be empty", domain.ErrInvalidRequest)
	}

	topK = domain.ClampTopK(topK)
	snippetChars = domain.ClampSnippetChars(snippetChars)

	hits := m.generate(query, topK, snippetChars)
	resp := domain.SearchResponse{
		Hits:      hits,
		TotalHits: int32(len(hits)),
		TookMs:    int32(time.Since(start).Milliseconds()),
	}

	m.logger.Info("mock search completed",
		zap.String("query", query),
		zap.Int32("hits", resp.TotalHits),
		zap.Int32("took_ms", resp.TookMs),
	)
	return resp, nil
}

// generate applies the keyword-boost scoring: +0.05 per tag contained in the
// query, +0.03 for a snippet substring match, +0.02 for a title substring
// match, clamped to 1.0.
func (m *Mock) generate(query string, topK, snippetChars int32) []domain.SearchResult {
	queryLower := strings.ToLower(query)

	results := make([]domain.SearchResult, 0, len(mockDataset))
	for _, e := range mockDataset {
		score := e.score
		for _, tag := range e.tags {
			if strings.Contains(queryLower, tag) {
				score += 0.05
			}
		}
		if strings.Contains(strings.ToLower(e.snippet), queryLower) {
			score += 0.03
		}
		if strings.Contains(strings.ToLower(e.title), queryLower) {
			score += 0.02
		}
		if score > 1.0 {
			score = 1.0
		}

		results = append(results, domain.SearchResult{
			Title:   e.title,
			Score:   score,
			Snippet: domain.TruncateSnippet(e.snippet, snippetChars),
			Tags:    append([]string(nil), e.tags...),
		})
	}

	// Stable sort keeps dataset insertion order on score ties.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if int(topK) < len(results) {
		results = results[:topK]
	}
	return results
}

// Ask retrieves evidence via Search and concatenates it into an answer. The
// mock never calls an LLM, so UseLLM only changes the stats it reports.
func (m *Mock) Ask(ctx context.Context, req domain.AskRequest) (domain.AskResponse, error) {
	start := time.Now()

	if strings.TrimSpace(req.Question) == "" {
		return domain.AskResponse{}, fmt.Errorf("%w: question cannot be empty", domain.ErrInvalidRequest)
	}

	search, err := m.Search(ctx, req.Question, req.TopK, req.SnippetChars)
	if err != nil {
		return domain.AskResponse{}, err
	}

	answer := ConcatAnswer(search.Hits)
	took := int32(time.Since(start).Milliseconds())

	m.logger.Info("mock ask completed",
		zap.String("question", req.Question),
		zap.Stringer("mode", req.Mode),
		zap.Int("evidence", len(search.Hits)),
	)

	return domain.AskResponse{
		Answer:   answer,
		Evidence: search.Hits,
		Stats: domain.AskStats{
			CandidatesRetrieved: search.TotalHits,
			ResultsReturned:     int32(len(search.Hits)),
			RetrievalMs:         took,
		},
	}, nil
}

// GetState recognizes only the __profile__ entity and serves its fixed
// payload under the "data" slot.
func (m *Mock) GetState(ctx context.Context, entity, slot string) (domain.StateResponse, error) {
	if entity != profileEntity {
		return domain.StateResponse{
			Found:  false,
			Entity: entity,
			Slots:  map[string]string{},
		}, nil
	}

	slots := map[string]string{}
	if slot == "" || slot == "data" {
		slots["data"] = profileJSON
	}

	return domain.StateResponse{
		Found:  true,
		Entity: entity,
		Slots:  slots,
	}, nil
}

// FrameCount reports the simulated index size.
func (m *Mock) FrameCount() int32 { return mockFrameCount }

// MemvidFile returns the synthetic identifier of the seeded dataset.
func (m *Mock) MemvidFile() string { return "mock://sample-resume.idx" }

// IsReady is always true; the mock holds no contended state.
func (m *Mock) IsReady() bool { return true }
