// Package v1 exposes the page operations as the fallout.ui.v1.UIService gRPC
// service. Messages are google.protobuf.Struct values so the CLI and other
// tools need no generated code.
package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "fallout.ui.v1.UIService"

// Method names of the UI service
const (
	MethodAutocomplete  = "Autocomplete"
	MethodSimulate      = "Simulate"
	MethodRollDice      = "RollDice"
	MethodActivatePanel = "ActivatePanel"
	MethodInitialPanel  = "InitialPanel"
	MethodListBindings  = "ListBindings"
)

// UIServiceServer is the server API for the UI service
type UIServiceServer interface {
	Autocomplete(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Simulate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollDice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ActivatePanel(context.Context, *structpb.Struct) (*structpb.Struct, error)
	InitialPanel(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListBindings(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(UIServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(UIServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(UIServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// UIServiceDesc describes the UI service for grpc.Server registration
var UIServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UIServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler(MethodAutocomplete, UIServiceServer.Autocomplete),
		unaryHandler(MethodSimulate, UIServiceServer.Simulate),
		unaryHandler(MethodRollDice, UIServiceServer.RollDice),
		unaryHandler(MethodActivatePanel, UIServiceServer.ActivatePanel),
		unaryHandler(MethodInitialPanel, UIServiceServer.InitialPanel),
		unaryHandler(MethodListBindings, UIServiceServer.ListBindings),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterUIServiceServer registers srv on s
func RegisterUIServiceServer(s grpc.ServiceRegistrar, srv UIServiceServer) {
	s.RegisterService(&UIServiceDesc, srv)
}

// FullMethod returns the gRPC path of a UI service method
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// UIServiceClient is the client API for the UI service
type UIServiceClient interface {
	Autocomplete(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Simulate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RollDice(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ActivatePanel(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	InitialPanel(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListBindings(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type uiServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewUIServiceClient creates a UI service client on cc
func NewUIServiceClient(cc grpc.ClientConnInterface) UIServiceClient {
	return &uiServiceClient{cc: cc}
}

func (c *uiServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *uiServiceClient) Autocomplete(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodAutocomplete, in, opts)
}

func (c *uiServiceClient) Simulate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodSimulate, in, opts)
}

func (c *uiServiceClient) RollDice(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodRollDice, in, opts)
}

func (c *uiServiceClient) ActivatePanel(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodActivatePanel, in, opts)
}

func (c *uiServiceClient) InitialPanel(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodInitialPanel, in, opts)
}

func (c *uiServiceClient) ListBindings(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodListBindings, in, opts)
}
