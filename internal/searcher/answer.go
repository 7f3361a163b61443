package searcher

import (
	"context"
	"strings"

	"github.com/kailas-cloud/memvid-gateway/internal/domain"
)

// Synthesizer produces an answer from a question and retrieved evidence.
// The bleve backend uses it when a request sets use_llm; without one the
// answer is always the concatenated evidence.
type Synthesizer interface {
	Synthesize(ctx context.Context, question string, evidence []domain.SearchResult) (string, error)
}

// ConcatAnswer builds the non-LLM answer: "**title**\nsnippet" blocks joined
// by blank lines, in evidence order.
func ConcatAnswer(evidence []domain.SearchResult) string {
	blocks := make([]string, 0, len(evidence))
	for _, e := range evidence {
		blocks = append(blocks, "**"+e.Title+"**\n"+e.Snippet)
	}
	return strings.Join(blocks, "\n\n")
}
