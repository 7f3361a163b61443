package searcher

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/memvid-gateway/internal/domain"
)

func TestMockSearchEmptyQuery(t *testing.T) {
	m := NewMock(nil)

	for _, q := range []string{"", "   ", "\n"} {
		_, err := m.Search(context.Background(), q, 5, 200)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("Search(%q) error = %v, want ErrInvalidRequest", q, err)
		}
	}
}

func TestMockSearchOrderingAndScores(t *testing.T) {
	m := NewMock(nil)

	res, err := m.Search(context.Background(), "experience", 10, 1000)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Hits) != 6 {
		t.Fatalf("hits = %d, want full dataset of 6", len(res.Hits))
	}
	for i := 1; i < len(res.Hits); i++ {
		if res.Hits[i].Score > res.Hits[i-1].Score {
			t.Errorf("hits not sorted: %f before %f", res.Hits[i-1].Score, res.Hits[i].Score)
		}
	}
	for _, h := range res.Hits {
		if h.Score <= 0 || h.Score > 1.0 {
			t.Errorf("score %f for %q outside (0, 1]", h.Score, h.Title)
		}
	}
}

func TestMockSearchTagBoost(t *testing.T) {
	m := NewMock(nil)

	// "leadership" is a tag on the Siemens and VP entries; the boost must
	// not push the base 0.95 entry below others.
	res, err := m.Search(context.Background(), "leadership", 1, 200)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(res.Hits))
	}
	if res.Hits[0].Title != "Senior Engineering Manager at Siemens" {
		t.Errorf("top hit = %q, want the Siemens entry", res.Hits[0].Title)
	}
	if res.Hits[0].Score != 1.0 {
		t.Errorf("boosted score = %f, want capped 1.0", res.Hits[0].Score)
	}
}

func TestMockSearchClampsParams(t *testing.T) {
	m := NewMock(nil)

	// topK above the maximum clamps to 20, which still returns the whole
	// 6-entry dataset; below the minimum clamps to 1.
	res, err := m.Search(context.Background(), "engineering", 500, 200)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Hits) != 6 {
		t.Errorf("hits = %d, want 6", len(res.Hits))
	}

	res, err = m.Search(context.Background(), "engineering", -3, 200)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Hits) != 1 {
		t.Errorf("hits = %d, want 1 after clamping", len(res.Hits))
	}
}

func TestMockSearchTruncatesSnippets(t *testing.T) {
	m := NewMock(nil)

	res, err := m.Search(context.Background(), "engineering", 6, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	for _, h := range res.Hits {
		// snippetChars below the minimum clamps to 50
		if len(h.Snippet) > 50 {
			t.Errorf("snippet for %q is %d bytes, want <= 50", h.Title, len(h.Snippet))
		}
		if !strings.HasSuffix(h.Snippet, "...") {
			t.Errorf("snippet for %q not truncated with ellipsis: %q", h.Title, h.Snippet)
		}
	}
}

func TestMockAskConcatenatesEvidence(t *testing.T) {
	m := NewMock(nil)

	res, err := m.Ask(context.Background(), domain.AskRequest{
		Question: "what is your leadership experience",
		TopK:     2,
	})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if len(res.Evidence) != 2 {
		t.Fatalf("evidence = %d, want 2", len(res.Evidence))
	}
	for _, h := range res.Evidence {
		if !strings.Contains(res.Answer, "**"+h.Title+"**") {
			t.Errorf("answer missing block for %q", h.Title)
		}
	}
	if res.Stats.ResultsReturned != 2 {
		t.Errorf("stats.ResultsReturned = %d, want 2", res.Stats.ResultsReturned)
	}
}

func TestMockAskEmptyQuestion(t *testing.T) {
	m := NewMock(nil)

	_, err := m.Ask(context.Background(), domain.AskRequest{Question: " "})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("Ask() error = %v, want ErrInvalidRequest", err)
	}
}

func TestMockGetStateProfile(t *testing.T) {
	m := NewMock(nil)

	// Repeated lookups return identical payloads.
	for i := 0; i < 2; i++ {
		res, err := m.GetState(context.Background(), "__profile__", "")
		if err != nil {
			t.Fatalf("GetState() error = %v", err)
		}
		if !res.Found {
			t.Fatal("profile entity must be found")
		}
		if !strings.Contains(res.Slots["data"], "Frank Schwichtenberg") {
			t.Errorf("unexpected profile payload: %q", res.Slots["data"])
		}
	}
}

func TestMockGetStateSlotFilter(t *testing.T) {
	m := NewMock(nil)

	res, err := m.GetState(context.Background(), "__profile__", "salary")
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if !res.Found {
		t.Error("known entity with unknown slot must still report found")
	}
	if len(res.Slots) != 0 {
		t.Errorf("slots = %v, want empty for unknown slot", res.Slots)
	}
}

func TestMockGetStateUnknownEntity(t *testing.T) {
	m := NewMock(nil)

	res, err := m.GetState(context.Background(), "nobody", "")
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if res.Found {
		t.Error("unknown entity must not be found")
	}
	if len(res.Slots) != 0 {
		t.Errorf("slots = %v, want empty when not found", res.Slots)
	}
}

func TestMockMetadata(t *testing.T) {
	m := NewMock(nil)

	if m.FrameCount() != 42 {
		t.Errorf("FrameCount = %d, want 42", m.FrameCount())
	}
	if m.MemvidFile() != "mock://sample-resume.idx" {
		t.Errorf("MemvidFile = %q", m.MemvidFile())
	}
	if !m.IsReady() {
		t.Error("mock must always be ready")
	}
}
