package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "sandbox.v1alpha1.SandboxService"

// Full method names
const (
	SandboxServiceAdvanceTurnFullMethodName = "/" + ServiceName + "/AdvanceTurn"
	SandboxServiceWhisperFullMethodName     = "/" + ServiceName + "/Whisper"
	SandboxServiceGetStateFullMethodName    = "/" + ServiceName + "/GetState"
)

// SandboxServiceServer is the server API for the sandbox service.
// Messages are well-known types; structs carry the same JSON documents as
// the HTTP API.
type SandboxServiceServer interface {
	AdvanceTurn(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Whisper(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	GetState(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterSandboxServiceServer registers srv on s
func RegisterSandboxServiceServer(s grpc.ServiceRegistrar, srv SandboxServiceServer) {
	s.RegisterService(&SandboxService_ServiceDesc, srv)
}

func _SandboxService_AdvanceTurn_Handler(
	srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SandboxServiceServer).AdvanceTurn(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SandboxServiceAdvanceTurnFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SandboxServiceServer).AdvanceTurn(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _SandboxService_Whisper_Handler(
	srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SandboxServiceServer).Whisper(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SandboxServiceWhisperFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SandboxServiceServer).Whisper(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _SandboxService_GetState_Handler(
	srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SandboxServiceServer).GetState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SandboxServiceGetStateFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SandboxServiceServer).GetState(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// SandboxService_ServiceDesc is the grpc.ServiceDesc for the sandbox service
var SandboxService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SandboxServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AdvanceTurn", Handler: _SandboxService_AdvanceTurn_Handler},
		{MethodName: "Whisper", Handler: _SandboxService_Whisper_Handler},
		{MethodName: "GetState", Handler: _SandboxService_GetState_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sandbox/v1alpha1/sandbox.proto",
}

// SandboxServiceClient is the client API for the sandbox service
type SandboxServiceClient interface {
	AdvanceTurn(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	Whisper(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetState(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type sandboxServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSandboxServiceClient creates a client over cc
func NewSandboxServiceClient(cc grpc.ClientConnInterface) SandboxServiceClient {
	return &sandboxServiceClient{cc: cc}
}

func (c *sandboxServiceClient) AdvanceTurn(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SandboxServiceAdvanceTurnFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sandboxServiceClient) Whisper(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, SandboxServiceWhisperFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sandboxServiceClient) GetState(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SandboxServiceGetStateFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
