package memvid

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"

	"go.uber.org/zap"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/kailas-cloud/memvid-gateway/internal/searcher"
	rpc "github.com/kailas-cloud/memvid-gateway/internal/transport/grpc"
)

// newTestClient runs the full server stack over an in-memory transport and
// dials it through the SDK, so requests exercise the real codec, service
// descriptors, and interceptors.
func newTestClient(t *testing.T) *Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	logger := zap.NewNop()

	server := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			rpc.RecoveryInterceptor(logger),
			rpc.WideEventInterceptor(logger),
		),
	)
	backend := searcher.NewMock(logger)
	rpc.RegisterMemvidServiceServer(server, rpc.NewServer(backend, logger))
	rpc.RegisterHealthServer(server, rpc.NewHealthService(backend, logger))

	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	client, err := New(context.Background(), "passthrough:///bufnet",
		WithDialOptions(grpclib.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.DialContext(context.Background())
		})),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClientSearch(t *testing.T) {
	client := newTestClient(t)

	res, err := client.Search(context.Background(), "leadership", WithTopK(2), WithSnippetChars(100))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(res.Hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(res.Hits))
	}
	if res.Hits[0].Score < res.Hits[1].Score {
		t.Error("hits not ordered by score descending")
	}
	for _, h := range res.Hits {
		if h.Title == "" || h.Snippet == "" {
			t.Errorf("incomplete hit: %+v", h)
		}
	}
}

func TestClientSearchInvalid(t *testing.T) {
	client := newTestClient(t)

	_, err := client.Search(context.Background(), "   ")
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("Search() error = %v, want ErrInvalidRequest", err)
	}
}

func TestClientAsk(t *testing.T) {
	client := newTestClient(t)

	ans, err := client.Ask(context.Background(), "tell me about your leadership experience",
		WithTopK(3), WithMode(ModeLexical),
	)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if ans.Answer == "" {
		t.Error("empty answer")
	}
	if len(ans.Evidence) == 0 {
		t.Error("no evidence returned")
	}
	if ans.Stats.ResultsReturned != int32(len(ans.Evidence)) {
		t.Errorf("stats.ResultsReturned = %d, evidence = %d", ans.Stats.ResultsReturned, len(ans.Evidence))
	}
}

func TestClientGetState(t *testing.T) {
	client := newTestClient(t)

	state, err := client.GetState(context.Background(), "__profile__", "")
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if !state.Found {
		t.Fatal("profile entity must be found")
	}
	if !strings.Contains(state.Slots["data"], "suggested_questions") {
		t.Errorf("unexpected profile payload: %q", state.Slots["data"])
	}
}

func TestClientHealth(t *testing.T) {
	client := newTestClient(t)

	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if !health.Serving {
		t.Error("mock-backed gateway must be serving")
	}
	if health.FrameCount != 42 {
		t.Errorf("frame count = %d, want 42", health.FrameCount)
	}
}
