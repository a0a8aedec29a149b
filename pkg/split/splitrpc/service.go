package splitrpc

import (
	"context"

	"google.golang.org/grpc"
)

const peripheralServiceName = "keymapd.split.Peripheral"

// PeripheralServer is implemented by a peripheral half: it receives
// invocation requests routed from the central half and dispatches them
// locally against its own behavior registry.
type PeripheralServer interface {
	Invoke(ctx context.Context, req *InvokeRequest) (*InvokeResponse, error)
}

// PeripheralClient is the central-side stub for calling a peripheral.
type PeripheralClient interface {
	Invoke(ctx context.Context, req *InvokeRequest, opts ...grpc.CallOption) (*InvokeResponse, error)
}

type peripheralClient struct {
	cc grpc.ClientConnInterface
}

// NewPeripheralClient wraps an established gRPC connection to one
// peripheral.
func NewPeripheralClient(cc grpc.ClientConnInterface) PeripheralClient {
	return &peripheralClient{cc: cc}
}

func (c *peripheralClient) Invoke(ctx context.Context, req *InvokeRequest, opts ...grpc.CallOption) (*InvokeResponse, error) {
	out := new(InvokeResponse)
	if err := c.cc.Invoke(ctx, "/"+peripheralServiceName+"/Invoke", req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func invokeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(InvokeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PeripheralServer).Invoke(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + peripheralServiceName + "/Invoke"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PeripheralServer).Invoke(ctx, req.(*InvokeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// peripheralServiceDesc is the hand-authored equivalent of what
// protoc-gen-go-grpc would generate from a split.proto service
// definition.
var peripheralServiceDesc = grpc.ServiceDesc{
	ServiceName: peripheralServiceName,
	HandlerType: (*PeripheralServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Invoke",
			Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
				return invokeHandler(srv, ctx, dec, interceptor)
			},
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "keymapd/split/splitrpc",
}

// RegisterPeripheralServer registers srv with s.
func RegisterPeripheralServer(s grpc.ServiceRegistrar, srv PeripheralServer) {
	s.RegisterService(&peripheralServiceDesc, srv)
}
