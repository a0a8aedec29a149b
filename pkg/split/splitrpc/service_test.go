package splitrpc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

type fakeConn struct {
	method  string
	args    any
	injectErr error
	reply   *InvokeResponse
}

func (f *fakeConn) Invoke(_ context.Context, method string, args any, reply any, _ ...grpc.CallOption) error {
	f.method = method
	f.args = args
	if f.injectErr != nil {
		return f.injectErr
	}
	out := reply.(*InvokeResponse)
	*out = *f.reply
	return nil
}

func (f *fakeConn) NewStream(context.Context, *grpc.StreamDesc, string, ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, errors.New("streams unsupported")
}

func TestPeripheralClientInvokeCallsExpectedMethod(t *testing.T) {
	conn := &fakeConn{reply: &InvokeResponse{Code: 1}}
	client := NewPeripheralClient(conn)

	resp, err := client.Invoke(context.Background(), &InvokeRequest{BehaviorName: "kp"})
	require.NoError(t, err)
	assert.Equal(t, "/keymapd.split.Peripheral/Invoke", conn.method)
	assert.Equal(t, int32(1), resp.Code)
}

func TestPeripheralClientInvokePropagatesTransportError(t *testing.T) {
	conn := &fakeConn{injectErr: errors.New("unavailable")}
	client := NewPeripheralClient(conn)

	_, err := client.Invoke(context.Background(), &InvokeRequest{BehaviorName: "kp"})
	require.Error(t, err)
}

func TestPeripheralServiceDescShape(t *testing.T) {
	assert.Equal(t, peripheralServiceName, peripheralServiceDesc.ServiceName)
	require.Len(t, peripheralServiceDesc.Methods, 1)
	assert.Equal(t, "Invoke", peripheralServiceDesc.Methods[0].MethodName)
	assert.Empty(t, peripheralServiceDesc.Streams)
}

type stubPeripheralServer struct {
	resp *InvokeResponse
	err  error
}

func (s stubPeripheralServer) Invoke(_ context.Context, _ *InvokeRequest) (*InvokeResponse, error) {
	return s.resp, s.err
}

func TestInvokeHandlerDecodesAndDispatches(t *testing.T) {
	srv := stubPeripheralServer{resp: &InvokeResponse{Code: 1}}

	out, err := invokeHandler(srv, context.Background(), func(m any) error {
		req := m.(*InvokeRequest)
		req.BehaviorName = "kp"
		return nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), out.(*InvokeResponse).Code)
}

func TestInvokeHandlerPropagatesDecodeError(t *testing.T) {
	_, err := invokeHandler(stubPeripheralServer{}, context.Background(), func(any) error {
		return errors.New("bad frame")
	}, nil)
	require.Error(t, err)
}
