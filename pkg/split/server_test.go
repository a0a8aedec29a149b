package split

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clavis/keymapd/pkg/behavior"
	"github.com/clavis/keymapd/pkg/split/splitrpc"
)

func TestRegistryServerInvokePressed(t *testing.T) {
	reg := newRegistryWith(t, "kp", &stubHandle{pressResp: 1})
	srv := RegistryServer{Registry: reg}

	resp, err := srv.Invoke(context.Background(), &splitrpc.InvokeRequest{BehaviorName: "kp", Pressed: true})
	require.NoError(t, err)
	assert.Equal(t, int32(1), resp.Code)
	assert.Empty(t, resp.Error)
}

func TestRegistryServerInvokeUnknownBehavior(t *testing.T) {
	srv := RegistryServer{Registry: behavior.NewRegistry()}

	resp, err := srv.Invoke(context.Background(), &splitrpc.InvokeRequest{BehaviorName: "missing", Pressed: true})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Error)
}

func TestRegistryServerInvokeHandleError(t *testing.T) {
	reg := newRegistryWith(t, "kp", &stubHandle{err: assertErr{"boom"}})
	srv := RegistryServer{Registry: reg}

	resp, err := srv.Invoke(context.Background(), &splitrpc.InvokeRequest{BehaviorName: "kp", Pressed: true})
	require.NoError(t, err)
	assert.Equal(t, "boom", resp.Error)
}

type assertErr struct{ msg string }

func (e assertErr) Error() string { return e.msg }
