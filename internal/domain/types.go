// Package domain holds the records exchanged between the RPC layer and the
// search backends. All values are owned by the call stack that produced them;
// backends never retain references into a response after returning it.
package domain

// SearchResult is a single scored hit from a backend.
type SearchResult struct {
	// Title or heading of the matched section.
	Title string
	// Relevance score. Backends aim for [0,1] but callers must not assume <= 1.0.
	Score float32
	// Text snippet, truncated to the caller-requested length.
	Snippet string
	// Tags/metadata labels for the hit.
	Tags []string
}

// SearchResponse holds hits ordered by score descending.
type SearchResponse struct {
	Hits      []SearchResult
	TotalHits int32
	TookMs    int32
}

// AskRequest carries a question-answering request to a backend.
type AskRequest struct {
	Question string
	// UseLLM enables answer synthesis; false means the answer is a
	// concatenation of evidence titles and snippets.
	UseLLM bool
	TopK   int32
	// Filters are translated into a backend scope expression.
	Filters map[string]string
	// Start/End are Unix-second temporal bounds; 0 means unset.
	Start        int64
	End          int64
	SnippetChars int32
	Mode         AskMode
	// URI scopes retrieval to a single document when non-nil.
	URI *string
	// Cursor is an opaque pagination token.
	Cursor *string
	// AsOfFrame/AsOfTs are time-travel selectors.
	AsOfFrame *int64
	AsOfTs    *int64
	Adaptive  *bool
}

// AskStats is observational only and never affects control flow.
type AskStats struct {
	CandidatesRetrieved int32
	ResultsReturned     int32
	RetrievalMs         int32
	RerankingMs         int32
	UsedFallback        bool
}

// AskResponse holds the synthesized answer and its supporting evidence.
type AskResponse struct {
	Answer   string
	Evidence []SearchResult
	Stats    AskStats
}

// StateResponse is the result of a direct entity lookup.
// Invariant: Found == false implies Slots is empty.
type StateResponse struct {
	Found  bool
	Entity string
	Slots  map[string]string
}
