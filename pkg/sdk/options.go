package memvid

import (
	grpclib "google.golang.org/grpc"

	rpc "github.com/kailas-cloud/memvid-gateway/internal/transport/grpc"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	dialOptions []grpclib.DialOption
}

// WithDialOptions appends raw gRPC dial options, e.g. transport credentials
// or a custom dialer.
func WithDialOptions(opts ...grpclib.DialOption) Option {
	return optionFunc(func(c *clientConfig) {
		c.dialOptions = append(c.dialOptions, opts...)
	})
}

// SearchOption configures one Search call.
type SearchOption interface {
	applySearch(*rpc.SearchRequest)
}

// AskOption configures one Ask call.
type AskOption interface {
	applyAsk(*rpc.AskRequest)
}

type searchOptionFunc func(*rpc.SearchRequest)

func (f searchOptionFunc) applySearch(r *rpc.SearchRequest) { f(r) }

type askOptionFunc func(*rpc.AskRequest)

func (f askOptionFunc) applyAsk(r *rpc.AskRequest) { f(r) }

// topKOption applies to both Search and Ask.
type topKOption int32

func (o topKOption) applySearch(r *rpc.SearchRequest) { r.TopK = int32(o) }
func (o topKOption) applyAsk(r *rpc.AskRequest)       { r.TopK = int32(o) }

// snippetCharsOption applies to both Search and Ask.
type snippetCharsOption int32

func (o snippetCharsOption) applySearch(r *rpc.SearchRequest) { r.SnippetChars = int32(o) }
func (o snippetCharsOption) applyAsk(r *rpc.AskRequest)       { r.SnippetChars = int32(o) }

// WithTopK bounds the number of results. The gateway clamps values to its
// own limits.
func WithTopK(n int32) interface {
	SearchOption
	AskOption
} {
	return topKOption(n)
}

// WithSnippetChars bounds snippet length in bytes.
func WithSnippetChars(n int32) interface {
	SearchOption
	AskOption
} {
	return snippetCharsOption(n)
}

// Retrieval modes for Ask.
const (
	ModeHybrid   = rpc.AskModeHybrid
	ModeSemantic = rpc.AskModeSem
	ModeLexical  = rpc.AskModeLex
)

// WithMode selects the retrieval mode.
func WithMode(mode rpc.AskMode) AskOption {
	return askOptionFunc(func(r *rpc.AskRequest) { r.Mode = mode })
}

// WithLLM requests LLM answer synthesis when the gateway has it enabled.
func WithLLM() AskOption {
	return askOptionFunc(func(r *rpc.AskRequest) { r.UseLLM = true })
}

// WithFilters scopes retrieval with metadata key/value filters.
func WithFilters(filters map[string]string) AskOption {
	return askOptionFunc(func(r *rpc.AskRequest) { r.Filters = filters })
}

// WithTimeRange bounds retrieval to Unix-second timestamps; 0 means open.
func WithTimeRange(start, end int64) AskOption {
	return askOptionFunc(func(r *rpc.AskRequest) {
		r.Start = start
		r.End = end
	})
}

// WithURI scopes retrieval to a single source document.
func WithURI(uri string) AskOption {
	return askOptionFunc(func(r *rpc.AskRequest) { r.URI = uri })
}

// WithCursor resumes pagination from an opaque cursor.
func WithCursor(cursor string) AskOption {
	return askOptionFunc(func(r *rpc.AskRequest) { r.Cursor = cursor })
}

// WithAdaptive widens the candidate pool before trimming to top-k.
func WithAdaptive() AskOption {
	return askOptionFunc(func(r *rpc.AskRequest) {
		adaptive := true
		r.Adaptive = &adaptive
	})
}
