package keymap

import (
	"context"

	"google.golang.org/grpc"

	"github.com/clavis/keymapd/pkg/split/splitrpc"
)

// fakeSplitClientForKeymap is a splitrpc.PeripheralClient stub used to
// observe whether the dispatcher routed an invocation over the split
// transport instead of invoking locally.
type fakeSplitClientForKeymap struct {
	calls int
}

func (f *fakeSplitClientForKeymap) Invoke(_ context.Context, _ *splitrpc.InvokeRequest, _ ...grpc.CallOption) (*splitrpc.InvokeResponse, error) {
	f.calls++
	return &splitrpc.InvokeResponse{Code: 0}, nil
}
