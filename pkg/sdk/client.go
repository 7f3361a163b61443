package memvid

import (
	"context"
	"fmt"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	rpc "github.com/kailas-cloud/memvid-gateway/internal/transport/grpc"
)

// Client is the memvid gateway SDK entry point. It is safe for concurrent
// use by multiple goroutines.
type Client struct {
	conn   *grpclib.ClientConn
	data   rpc.MemvidServiceClient
	health rpc.HealthClient
}

// New dials the gateway at addr and returns a connected client. Connections
// are plaintext unless WithDialOptions supplies transport credentials.
func New(_ context.Context, addr string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	dialOpts := []grpclib.DialOption{
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
		rpc.ForceCodecOption(),
	}
	dialOpts = append(dialOpts, cfg.dialOptions...)

	conn, err := grpclib.NewClient(addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	return &Client{
		conn:   conn,
		data:   rpc.NewMemvidServiceClient(conn),
		health: rpc.NewHealthClient(conn),
	}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("close connection: %w", err)
	}
	return nil
}

// Search runs relevance search over the loaded memory.
func (c *Client) Search(ctx context.Context, query string, opts ...SearchOption) (*SearchResult, error) {
	req := &rpc.SearchRequest{Query: query}
	for _, o := range opts {
		o.applySearch(req)
	}

	res, err := c.data.Search(ctx, req)
	if err != nil {
		return nil, wrapStatusError(err)
	}
	return searchFromWire(res), nil
}

// Ask performs retrieval-backed question answering.
func (c *Client) Ask(ctx context.Context, question string, opts ...AskOption) (*Answer, error) {
	req := &rpc.AskRequest{Question: question}
	for _, o := range opts {
		o.applyAsk(req)
	}

	res, err := c.data.Ask(ctx, req)
	if err != nil {
		return nil, wrapStatusError(err)
	}
	return answerFromWire(res), nil
}

// GetState looks up memory-card slots for an entity. An empty slot returns
// all slots.
func (c *Client) GetState(ctx context.Context, entity, slot string) (*State, error) {
	res, err := c.data.GetState(ctx, &rpc.GetStateRequest{Entity: entity, Slot: slot})
	if err != nil {
		return nil, wrapStatusError(err)
	}
	return &State{Found: res.Found, Entity: res.Entity, Slots: res.Slots}, nil
}

// Health reports gateway readiness and index metadata.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	res, err := c.health.Check(ctx, &rpc.HealthCheckRequest{})
	if err != nil {
		return nil, wrapStatusError(err)
	}
	return &HealthStatus{
		Serving:    res.Status == rpc.HealthStatusServing,
		FrameCount: res.FrameCount,
		MemvidFile: res.MemvidFile,
	}, nil
}
