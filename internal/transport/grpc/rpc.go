package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// Full method names for the memvid.v1 services.
const (
	memvidServiceName = "memvid.v1.MemvidService"
	healthServiceName = "memvid.v1.Health"

	methodSearch      = "/memvid.v1.MemvidService/Search"
	methodAsk         = "/memvid.v1.MemvidService/Ask"
	methodGetState    = "/memvid.v1.MemvidService/GetState"
	methodHealthCheck = "/memvid.v1.Health/Check"
)

// MemvidServiceServer is the server contract for the data operations.
type MemvidServiceServer interface {
	Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error)
	Ask(ctx context.Context, req *AskRequest) (*AskResponse, error)
	GetState(ctx context.Context, req *GetStateRequest) (*GetStateResponse, error)
}

// HealthServer is the server contract for the health operation.
type HealthServer interface {
	Check(ctx context.Context, req *HealthCheckRequest) (*HealthCheckResponse, error)
}

// RegisterMemvidServiceServer registers the data service on a grpc server.
func RegisterMemvidServiceServer(s grpc.ServiceRegistrar, srv MemvidServiceServer) {
	s.RegisterService(&memvidServiceDesc, srv)
}

// RegisterHealthServer registers the health service on a grpc server.
func RegisterHealthServer(s grpc.ServiceRegistrar, srv HealthServer) {
	s.RegisterService(&healthServiceDesc, srv)
}

var memvidServiceDesc = grpc.ServiceDesc{
	ServiceName: memvidServiceName,
	HandlerType: (*MemvidServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Search", Handler: searchHandler},
		{MethodName: "Ask", Handler: askHandler},
		{MethodName: "GetState", Handler: getStateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/proto/memvid/v1/memvid.proto",
}

var healthServiceDesc = grpc.ServiceDesc{
	ServiceName: healthServiceName,
	HandlerType: (*HealthServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Check", Handler: healthCheckHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/proto/memvid/v1/memvid.proto",
}

func searchHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SearchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MemvidServiceServer).Search(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodSearch}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MemvidServiceServer).Search(ctx, req.(*SearchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func askHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AskRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MemvidServiceServer).Ask(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodAsk}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MemvidServiceServer).Ask(ctx, req.(*AskRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getStateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetStateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MemvidServiceServer).GetState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetState}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MemvidServiceServer).GetState(ctx, req.(*GetStateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func healthCheckHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(HealthCheckRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HealthServer).Check(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodHealthCheck}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(HealthServer).Check(ctx, req.(*HealthCheckRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// MemvidServiceClient is the client contract for the data operations.
type MemvidServiceClient interface {
	Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*SearchResponse, error)
	Ask(ctx context.Context, in *AskRequest, opts ...grpc.CallOption) (*AskResponse, error)
	GetState(ctx context.Context, in *GetStateRequest, opts ...grpc.CallOption) (*GetStateResponse, error)
}

type memvidServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewMemvidServiceClient creates a client over an established connection.
// The connection must use the JSON codec (see ForceCodecOption).
func NewMemvidServiceClient(cc grpc.ClientConnInterface) MemvidServiceClient {
	return &memvidServiceClient{cc: cc}
}

func (c *memvidServiceClient) Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*SearchResponse, error) {
	out := new(SearchResponse)
	if err := c.cc.Invoke(ctx, methodSearch, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *memvidServiceClient) Ask(ctx context.Context, in *AskRequest, opts ...grpc.CallOption) (*AskResponse, error) {
	out := new(AskResponse)
	if err := c.cc.Invoke(ctx, methodAsk, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *memvidServiceClient) GetState(ctx context.Context, in *GetStateRequest, opts ...grpc.CallOption) (*GetStateResponse, error) {
	out := new(GetStateResponse)
	if err := c.cc.Invoke(ctx, methodGetState, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// HealthClient is the client contract for the health operation.
type HealthClient interface {
	Check(ctx context.Context, in *HealthCheckRequest, opts ...grpc.CallOption) (*HealthCheckResponse, error)
}

type healthClient struct {
	cc grpc.ClientConnInterface
}

// NewHealthClient creates a health client over an established connection.
func NewHealthClient(cc grpc.ClientConnInterface) HealthClient {
	return &healthClient{cc: cc}
}

func (c *healthClient) Check(ctx context.Context, in *HealthCheckRequest, opts ...grpc.CallOption) (*HealthCheckResponse, error) {
	out := new(HealthCheckResponse)
	if err := c.cc.Invoke(ctx, methodHealthCheck, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
