package searcher

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/blevesearch/bleve/v2"

	"github.com/kailas-cloud/memvid-gateway/internal/domain"
)

// newTestIndex builds a small on-disk index with two chunks and two memory
// cards, then opens it through the backend under test.
func newTestIndex(t *testing.T) *Bleve {
	t.Helper()

	path := filepath.Join(t.TempDir(), "memory.bleve")
	idx, err := bleve.New(path, indexMapping())
	if err != nil {
		t.Fatalf("create index: %v", err)
	}

	docs := map[string]map[string]interface{}{
		"chunk-1": {
			"kind":  "chunk",
			"title": "Go Concurrency Patterns",
			"body":  "Goroutines and channels let services fan out work across workers.",
			"tags":  []string{"go", "concurrency"},
			"uri":   "doc://go-notes",
			"ts":    1000,
			"frame": 1,
		},
		"chunk-2": {
			"kind":   "chunk",
			"body":   "Ownership and borrowing keep memory management explicit.",
			"labels": []string{"Memory Management Notes"},
			"tags":   []string{"rust"},
			"uri":    "doc://rust-notes",
			"ts":     2000,
			"frame":  2,
		},
		"card-1": {
			"kind":   "card",
			"entity": "__profile__",
			"slot":   "data",
			"value":  `{"name":"Frank"}`,
		},
		"card-2": {
			"kind":   "card",
			"entity": "__profile__",
			"slot":   "email",
			"value":  "frank@example.com",
		},
	}
	for id, doc := range docs {
		if err := idx.Index(id, doc); err != nil {
			t.Fatalf("index %s: %v", id, err)
		}
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("close index: %v", err)
	}

	b, err := OpenBleve(path, nil)
	if err != nil {
		t.Fatalf("OpenBleve: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestOpenBleveMissingPath(t *testing.T) {
	_, err := OpenBleve(filepath.Join(t.TempDir(), "absent.bleve"), nil)
	if !errors.Is(err, domain.ErrFileNotFound) {
		t.Errorf("OpenBleve error = %v, want ErrFileNotFound", err)
	}
}

func TestBleveFrameCount(t *testing.T) {
	b := newTestIndex(t)

	if b.FrameCount() != 4 {
		t.Errorf("FrameCount = %d, want 4", b.FrameCount())
	}
	if b.MemvidFile() == "" {
		t.Error("MemvidFile must report the index path")
	}
}

func TestBleveSearch(t *testing.T) {
	b := newTestIndex(t)

	res, err := b.Search(context.Background(), "goroutines channels", 5, 200)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Hits) == 0 {
		t.Fatal("expected at least one hit")
	}
	if res.Hits[0].Title != "Go Concurrency Patterns" {
		t.Errorf("top hit title = %q", res.Hits[0].Title)
	}
	if res.Hits[0].Score <= 0 {
		t.Errorf("score = %f, want > 0", res.Hits[0].Score)
	}
}

func TestBleveSearchOnlyChunks(t *testing.T) {
	b := newTestIndex(t)

	// Card values never surface through relevance search.
	res, err := b.Search(context.Background(), "frank", 10, 200)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Hits) != 0 {
		t.Errorf("hits = %d, want 0 for card-only content", len(res.Hits))
	}
}

func TestBleveSearchEmptyQuery(t *testing.T) {
	b := newTestIndex(t)

	_, err := b.Search(context.Background(), "  ", 5, 200)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("Search() error = %v, want ErrInvalidRequest", err)
	}
}

func TestBleveTitleFallbackToLabel(t *testing.T) {
	b := newTestIndex(t)

	res, err := b.Search(context.Background(), "ownership borrowing", 5, 200)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Hits) == 0 {
		t.Fatal("expected a hit for the untitled chunk")
	}
	if res.Hits[0].Title != "Memory Management Notes" {
		t.Errorf("title = %q, want first label", res.Hits[0].Title)
	}
}

func TestBleveAskModes(t *testing.T) {
	b := newTestIndex(t)

	for _, mode := range []domain.AskMode{domain.ModeHybrid, domain.ModeLexical, domain.ModeSemantic} {
		res, err := b.Ask(context.Background(), domain.AskRequest{
			Question: "goroutines and channels",
			TopK:     5,
			Mode:     mode,
		})
		if err != nil {
			t.Fatalf("Ask(%v) error = %v", mode, err)
		}
		if len(res.Evidence) == 0 {
			t.Errorf("Ask(%v) returned no evidence", mode)
		}
		if res.Answer == "" {
			t.Errorf("Ask(%v) returned empty answer", mode)
		}
		if res.Stats.UsedFallback {
			t.Errorf("Ask(%v) reported fallback without a synthesizer", mode)
		}
	}
}

func TestBleveAskTemporalFilter(t *testing.T) {
	b := newTestIndex(t)

	// Only chunk-1 (ts=1000) falls inside the window.
	res, err := b.Ask(context.Background(), domain.AskRequest{
		Question: "goroutines ownership memory channels",
		TopK:     10,
		Start:    500,
		End:      1500,
	})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	for _, h := range res.Evidence {
		if h.Title != "Go Concurrency Patterns" {
			t.Errorf("unexpected evidence outside window: %q", h.Title)
		}
	}
}

func TestBleveAskURIFilter(t *testing.T) {
	b := newTestIndex(t)

	uri := "doc://rust-notes"
	res, err := b.Ask(context.Background(), domain.AskRequest{
		Question: "memory ownership goroutines",
		TopK:     10,
		URI:      &uri,
	})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	for _, h := range res.Evidence {
		if h.Title != "Memory Management Notes" {
			t.Errorf("uri filter leaked evidence: %q", h.Title)
		}
	}
}

func TestBleveAskMalformedCursor(t *testing.T) {
	b := newTestIndex(t)

	cursor := "not-a-number"
	_, err := b.Ask(context.Background(), domain.AskRequest{
		Question: "goroutines",
		TopK:     5,
		Cursor:   &cursor,
	})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("Ask() error = %v, want ErrInvalidRequest", err)
	}
}

func TestBleveGetState(t *testing.T) {
	b := newTestIndex(t)

	res, err := b.GetState(context.Background(), "__profile__", "")
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if !res.Found {
		t.Fatal("profile entity must be found")
	}
	if len(res.Slots) != 2 {
		t.Errorf("slots = %v, want data and email", res.Slots)
	}
	if res.Slots["email"] != "frank@example.com" {
		t.Errorf("email slot = %q", res.Slots["email"])
	}
}

func TestBleveGetStateSlotFilter(t *testing.T) {
	b := newTestIndex(t)

	res, err := b.GetState(context.Background(), "__profile__", "email")
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if !res.Found {
		t.Fatal("entity must be found")
	}
	if len(res.Slots) != 1 || res.Slots["email"] == "" {
		t.Errorf("slots = %v, want only email", res.Slots)
	}
}

func TestBleveGetStateUnknownEntity(t *testing.T) {
	b := newTestIndex(t)

	res, err := b.GetState(context.Background(), "stranger", "")
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if res.Found || len(res.Slots) != 0 {
		t.Errorf("unexpected response for unknown entity: %+v", res)
	}
}

func TestBleveConcurrentQueries(t *testing.T) {
	b := newTestIndex(t)

	var wg sync.WaitGroup
	errCh := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := b.Search(context.Background(), "goroutines", 5, 200); err != nil {
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Errorf("concurrent search: %v", err)
	}
}

func TestBleveIsReady(t *testing.T) {
	b := newTestIndex(t)

	if !b.IsReady() {
		t.Error("open index must be ready")
	}

	b.mu.Lock()
	if b.IsReady() {
		t.Error("write-locked index must not report ready")
	}
	b.mu.Unlock()
}
