package split

import (
	"context"

	"github.com/clavis/keymapd/pkg/behavior"
	"github.com/clavis/keymapd/pkg/split/splitrpc"
)

// RegistryServer implements splitrpc.PeripheralServer by dispatching
// incoming invocations against a local behavior registry. It is the
// peripheral-side counterpart to PeripheralDispatcher.
type RegistryServer struct {
	Registry *behavior.Registry
}

// Invoke implements splitrpc.PeripheralServer.
func (s RegistryServer) Invoke(ctx context.Context, req *splitrpc.InvokeRequest) (*splitrpc.InvokeResponse, error) {
	b, err := s.Registry.ResolveByName(req.BehaviorName)
	if err != nil {
		return &splitrpc.InvokeResponse{Error: err.Error()}, nil
	}

	binding := behavior.Binding{
		BehaviorName:    req.BehaviorName,
		BehaviorLocalID: uint16(req.BehaviorLocalID),
		Param1:          req.Param1,
		Param2:          req.Param2,
	}
	event := behavior.Event{
		Source:    0,
		Position:  int(req.Position),
		Pressed:   req.Pressed,
		Timestamp: req.Timestamp,
	}

	var code int
	if event.Pressed {
		code, err = b.Handle.Pressed(ctx, binding, event)
	} else {
		code, err = b.Handle.Released(ctx, binding, event)
	}
	if err != nil {
		return &splitrpc.InvokeResponse{Error: err.Error()}, nil
	}
	return &splitrpc.InvokeResponse{Code: int32(code)}, nil
}
