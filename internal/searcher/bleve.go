package searcher

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"go.uber.org/zap"

	"github.com/kailas-cloud/memvid-gateway/internal/domain"
)

// Document field names in the memvid index. The ingest tooling writes chunks
// (kind=chunk) and memory cards (kind=card) with this layout.
const (
	fieldTitle  = "title"
	fieldBody   = "body"
	fieldTags   = "tags"
	fieldLabels = "labels"
	fieldKind   = "kind"
	fieldEntity = "entity"
	fieldSlot   = "slot"
	fieldValue  = "value"
	fieldURI    = "uri"
	fieldTs     = "ts"
	fieldFrame  = "frame"
)

const (
	kindChunk = "chunk"
	kindCard  = "card"
)

// maxCardSlots bounds the number of slots fetched for one entity.
const maxCardSlots = 100

// Bleve wraps one shared bleve index behind a readers-writer lock. The bleve
// query path is safe for concurrent readers, so query-class operations take
// the lock in read mode; write mode is reserved for Close.
type Bleve struct {
	path       string
	mu         sync.RWMutex
	index      bleve.Index
	frameCount int32
	synth      Synthesizer
	logger     *zap.Logger
}

var _ Searcher = (*Bleve)(nil)

// OpenBleve loads the index at path and caches its document count. The open
// call may block on disk; callers run it before serving traffic.
func OpenBleve(path string, logger *zap.Logger) (*Bleve, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if _, err := os.Stat(path); err != nil {
		logger.Error("memvid index not found", zap.String("path", path))
		return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
	}

	idx, err := bleve.Open(path)
	if err != nil {
		logger.Error("failed to open memvid index", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrLoadFailed, err)
	}

	count, err := idx.DocCount()
	if err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("%w: doc count: %v", domain.ErrLoadFailed, err)
	}

	logger.Info("memvid index loaded",
		zap.String("path", path),
		zap.Uint64("frame_count", count),
	)

	return &Bleve{
		path:       path,
		index:      idx,
		frameCount: int32(count),
		logger:     logger,
	}, nil
}

// WithSynthesizer attaches an LLM answer synthesizer used when a request sets
// use_llm. Without one the backend always concatenates evidence.
func (b *Bleve) WithSynthesizer(s Synthesizer) *Bleve {
	b.synth = s
	return b
}

// Close releases the underlying index. In-flight queries finish first.
func (b *Bleve) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.index.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}
	return nil
}

// Search runs a match query over chunk titles and bodies.
func (b *Bleve) Search(ctx context.Context, queryStr string, topK, snippetChars int32) (domain.SearchResponse, error) {
	start := time.Now()

	if isBlank(queryStr) {
		return domain.SearchResponse{}, fmt.Errorf("%w: query cannot be empty", domain.ErrInvalidRequest)
	}

	topK = domain.ClampTopK(topK)
	snippetChars = domain.ClampSnippetChars(snippetChars)

	titleMatch := bleve.NewMatchQuery(queryStr)
	titleMatch.SetField(fieldTitle)
	bodyMatch := bleve.NewMatchQuery(queryStr)
	bodyMatch.SetField(fieldBody)

	q := bleve.NewConjunctionQuery(
		kindQuery(kindChunk),
		bleve.NewDisjunctionQuery(titleMatch, bodyMatch),
	)

	req := bleve.NewSearchRequestOptions(q, int(topK), 0, false)
	req.Fields = []string{fieldTitle, fieldBody, fieldTags, fieldLabels}

	res, err := b.query(ctx, req)
	if err != nil {
		b.logger.Error("memvid search failed", zap.String("query", queryStr), zap.Error(err))
		return domain.SearchResponse{}, fmt.Errorf("%w: %v", domain.ErrSearchFailed, err)
	}

	hits := make([]domain.SearchResult, 0, len(res.Hits))
	for _, hit := range res.Hits {
		hits = append(hits, domain.SearchResult{
			Title:   hitTitle(hit.Fields),
			Score:   float32(hit.Score),
			Snippet: domain.TruncateSnippet(fieldString(hit.Fields, fieldBody), snippetChars),
			Tags:    fieldStrings(hit.Fields, fieldTags),
		})
	}

	resp := domain.SearchResponse{
		Hits:      hits,
		TotalHits: int32(res.Total), //nolint:gosec // index sizes fit in int32
		TookMs:    int32(time.Since(start).Milliseconds()),
	}

	b.logger.Info("memvid search completed",
		zap.String("query", queryStr),
		zap.Int("hits", len(hits)),
		zap.Int32("took_ms", resp.TookMs),
	)
	return resp, nil
}

// Ask retrieves evidence under the requested mode and synthesizes an answer.
func (b *Bleve) Ask(ctx context.Context, req domain.AskRequest) (domain.AskResponse, error) {
	if isBlank(req.Question) {
		return domain.AskResponse{}, fmt.Errorf("%w: question cannot be empty", domain.ErrInvalidRequest)
	}

	topK := domain.ClampTopK(req.TopK)
	snippetChars := domain.ClampSnippetChars(req.SnippetChars)

	q := b.askQuery(req)

	// Pagination cursor is a decimal result offset, opaque to callers.
	from := 0
	if req.Cursor != nil {
		var err error
		from, err = strconv.Atoi(*req.Cursor)
		if err != nil || from < 0 {
			return domain.AskResponse{}, fmt.Errorf("%w: malformed cursor", domain.ErrInvalidRequest)
		}
	}

	// Adaptive retrieval widens the candidate pool before trimming to topK.
	size := int(topK)
	if req.Adaptive != nil && *req.Adaptive {
		size = int(topK) * 3
	}

	sreq := bleve.NewSearchRequestOptions(q, size, from, false)
	sreq.Fields = []string{fieldTitle, fieldBody, fieldTags, fieldLabels}

	retrievalStart := time.Now()
	res, err := b.query(ctx, sreq)
	if err != nil {
		b.logger.Error("memvid ask failed", zap.String("question", req.Question), zap.Error(err))
		return domain.AskResponse{}, fmt.Errorf("%w: %v", domain.ErrSearchFailed, err)
	}
	retrievalMs := int32(time.Since(retrievalStart).Milliseconds())

	candidates := len(res.Hits)
	evidence := make([]domain.SearchResult, 0, candidates)
	for _, hit := range res.Hits {
		evidence = append(evidence, domain.SearchResult{
			Title:   hitTitle(hit.Fields),
			Score:   float32(hit.Score),
			Snippet: domain.TruncateSnippet(fieldString(hit.Fields, fieldBody), snippetChars),
			Tags:    fieldStrings(hit.Fields, fieldTags),
		})
	}
	if len(evidence) > int(topK) {
		evidence = evidence[:topK]
	}

	answer, usedFallback := b.answer(ctx, req, evidence)

	b.logger.Info("memvid ask completed",
		zap.String("question", req.Question),
		zap.Stringer("mode", req.Mode),
		zap.Int("evidence", len(evidence)),
		zap.Int32("retrieval_ms", retrievalMs),
		zap.Bool("used_fallback", usedFallback),
	)

	return domain.AskResponse{
		Answer:   answer,
		Evidence: evidence,
		Stats: domain.AskStats{
			CandidatesRetrieved: int32(candidates),
			ResultsReturned:     int32(len(evidence)),
			RetrievalMs:         retrievalMs,
			UsedFallback:        usedFallback,
		},
	}, nil
}

// askQuery translates an AskRequest into one bleve query: the mode-specific
// relevance clause plus filter, temporal, uri, and time-travel conjuncts.
func (b *Bleve) askQuery(req domain.AskRequest) query.Query {
	var relevance query.Query
	switch req.Mode {
	case domain.ModeLexical:
		m := bleve.NewMatchQuery(req.Question)
		m.SetField(fieldBody)
		relevance = m
	case domain.ModeSemantic:
		// No query embedder in this deployment; fuzzy matching is the
		// engine's closest recall-oriented mode.
		m := bleve.NewMatchQuery(req.Question)
		m.SetField(fieldBody)
		m.SetFuzziness(1)
		relevance = m
	default: // hybrid
		m := bleve.NewMatchQuery(req.Question)
		m.SetField(fieldBody)
		p := bleve.NewMatchPhraseQuery(req.Question)
		p.SetField(fieldBody)
		relevance = bleve.NewDisjunctionQuery(m, p)
	}

	conjuncts := []query.Query{kindQuery(kindChunk), relevance}

	// Filters become the engine scope expression, which is query-string
	// syntax ("key:value" pairs).
	if scope := domain.BuildScope(req.Filters); scope != "" {
		conjuncts = append(conjuncts, bleve.NewQueryStringQuery(scope))
	}

	// Temporal bounds of 0 mean unset.
	if req.Start > 0 || req.End > 0 {
		conjuncts = append(conjuncts, numericRange(fieldTs, req.Start, req.End))
	}

	if req.URI != nil && *req.URI != "" {
		uriQ := bleve.NewTermQuery(*req.URI)
		uriQ.SetField(fieldURI)
		conjuncts = append(conjuncts, uriQ)
	}

	// Time-travel selectors become upper bounds on frame id / timestamp.
	if req.AsOfFrame != nil {
		conjuncts = append(conjuncts, numericRange(fieldFrame, 0, *req.AsOfFrame))
	}
	if req.AsOfTs != nil {
		conjuncts = append(conjuncts, numericRange(fieldTs, 0, *req.AsOfTs))
	}

	return bleve.NewConjunctionQuery(conjuncts...)
}

// answer synthesizes via the LLM when requested and available; any synthesis
// failure falls back to concatenated evidence rather than failing the call.
func (b *Bleve) answer(ctx context.Context, req domain.AskRequest, evidence []domain.SearchResult) (string, bool) {
	if !req.UseLLM || b.synth == nil {
		return ConcatAnswer(evidence), false
	}

	answer, err := b.synth.Synthesize(ctx, req.Question, evidence)
	if err != nil {
		b.logger.Warn("answer synthesis failed, falling back to evidence",
			zap.String("question", req.Question),
			zap.Error(err),
		)
		return ConcatAnswer(evidence), true
	}
	return answer, false
}

// GetState fetches memory-card slots for an entity by direct term lookup.
func (b *Bleve) GetState(ctx context.Context, entity, slot string) (domain.StateResponse, error) {
	entityQ := bleve.NewTermQuery(entity)
	entityQ.SetField(fieldEntity)
	q := bleve.NewConjunctionQuery(kindQuery(kindCard), entityQ)

	req := bleve.NewSearchRequestOptions(q, maxCardSlots, 0, false)
	req.Fields = []string{fieldSlot, fieldValue}

	res, err := b.query(ctx, req)
	if err != nil {
		b.logger.Error("state lookup failed", zap.String("entity", entity), zap.Error(err))
		return domain.StateResponse{}, fmt.Errorf("%w: %v", domain.ErrSearchFailed, err)
	}

	if len(res.Hits) == 0 {
		return domain.StateResponse{
			Found:  false,
			Entity: entity,
			Slots:  map[string]string{},
		}, nil
	}

	slots := make(map[string]string, len(res.Hits))
	for _, hit := range res.Hits {
		name := fieldString(hit.Fields, fieldSlot)
		if slot != "" && name != slot {
			continue
		}
		slots[name] = fieldString(hit.Fields, fieldValue)
	}

	return domain.StateResponse{
		Found:  true,
		Entity: entity,
		Slots:  slots,
	}, nil
}

// FrameCount reports the document count cached at open time.
func (b *Bleve) FrameCount() int32 { return b.frameCount }

// MemvidFile reports the index path.
func (b *Bleve) MemvidFile() string { return b.path }

// IsReady probes the lock without blocking: contended means not ready.
func (b *Bleve) IsReady() bool {
	if !b.mu.TryRLock() {
		return false
	}
	b.mu.RUnlock()
	return true
}

// query executes one engine call under the read lock.
func (b *Bleve) query(ctx context.Context, req *bleve.SearchRequest) (*bleve.SearchResult, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.index.SearchInContext(ctx, req) //nolint:wrapcheck // callers wrap with taxonomy errors
}

func kindQuery(kind string) query.Query {
	q := bleve.NewTermQuery(kind)
	q.SetField(fieldKind)
	return q
}

// numericRange builds an inclusive range query; a bound of 0 is open.
func numericRange(field string, start, end int64) query.Query {
	var minVal, maxVal *float64
	if start > 0 {
		v := float64(start)
		minVal = &v
	}
	if end > 0 {
		v := float64(end)
		maxVal = &v
	}
	inclusive := true
	q := bleve.NewNumericRangeInclusiveQuery(minVal, maxVal, &inclusive, &inclusive)
	q.SetField(field)
	return q
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// hitTitle applies the title fallback chain: explicit title, first label,
// empty string. Internal frame identifiers never leak to callers.
func hitTitle(fields map[string]interface{}) string {
	if t := fieldString(fields, fieldTitle); t != "" {
		return t
	}
	if labels := fieldStrings(fields, fieldLabels); len(labels) > 0 {
		return labels[0]
	}
	return ""
}

func fieldString(fields map[string]interface{}, name string) string {
	switch v := fields[name].(type) {
	case string:
		return v
	case []interface{}:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

func fieldStrings(fields map[string]interface{}, name string) []string {
	switch v := fields[name].(type) {
	case string:
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// indexMapping is the schema used by ingest tooling and tests when creating
// a fresh index: keyword analysis for identity fields, full text for content.
func indexMapping() mapping.IndexMapping {
	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = keyword.Name

	textField := bleve.NewTextFieldMapping()
	numericField := bleve.NewNumericFieldMapping()

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt(fieldTitle, textField)
	doc.AddFieldMappingsAt(fieldBody, textField)
	doc.AddFieldMappingsAt(fieldTags, keywordField)
	doc.AddFieldMappingsAt(fieldLabels, keywordField)
	doc.AddFieldMappingsAt(fieldKind, keywordField)
	doc.AddFieldMappingsAt(fieldEntity, keywordField)
	doc.AddFieldMappingsAt(fieldSlot, keywordField)
	doc.AddFieldMappingsAt(fieldValue, keywordField)
	doc.AddFieldMappingsAt(fieldURI, keywordField)
	doc.AddFieldMappingsAt(fieldTs, numericField)
	doc.AddFieldMappingsAt(fieldFrame, numericField)

	im := bleve.NewIndexMapping()
	im.DefaultMapping = doc
	return im
}
