package behavior

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clavis/keymapd/pkg/persist"
	"github.com/clavis/keymapd/pkg/persist/memstore"
)

func TestCRC16PolicyIsDeterministic(t *testing.T) {
	reg1 := NewRegistry()
	reg2 := NewRegistry()
	for _, reg := range []*Registry{reg1, reg2} {
		require.NoError(t, reg.Register(newTestBehavior("kp")))
		require.NoError(t, reg.Register(newTestBehavior("mo")))
	}

	ctx := context.Background()
	require.NoError(t, CRC16Policy{}.AssignLocalIDs(ctx, reg1))
	require.NoError(t, CRC16Policy{}.AssignLocalIDs(ctx, reg2))

	id1, _ := reg1.LocalIDOf("kp")
	id2, _ := reg2.LocalIDOf("kp")
	assert.Equal(t, id1, id2)
	assert.NotZero(t, id1)
}

func TestMonotonicPolicyAssignsAboveCurrentMax(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Put(ctx, persist.BehaviorLocalIDKey(5), []byte("kp")))

	reg := NewRegistry()
	require.NoError(t, reg.Register(newTestBehavior("kp")))
	require.NoError(t, reg.Register(newTestBehavior("mo")))

	require.NoError(t, MonotonicPolicy{Store: store}.AssignLocalIDs(ctx, reg))

	kpID, err := reg.LocalIDOf("kp")
	require.NoError(t, err)
	assert.EqualValues(t, 5, kpID)

	moID, err := reg.LocalIDOf("mo")
	require.NoError(t, err)
	assert.Greater(t, moID, uint16(5))
}

func TestMonotonicPolicyPersistsFreshAssignments(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	reg := NewRegistry()
	require.NoError(t, reg.Register(newTestBehavior("kp")))
	require.NoError(t, MonotonicPolicy{Store: store}.AssignLocalIDs(ctx, reg))

	id, err := reg.LocalIDOf("kp")
	require.NoError(t, err)

	v, ok, err := store.Get(ctx, persist.BehaviorLocalIDKey(id))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "kp", string(v))
}

func TestMonotonicPolicyLeavesDeadIDsUnmapped(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Put(ctx, persist.BehaviorLocalIDKey(3), []byte("removed-behavior")))

	reg := NewRegistry()
	require.NoError(t, reg.Register(newTestBehavior("kp")))
	require.NoError(t, MonotonicPolicy{Store: store}.AssignLocalIDs(ctx, reg))

	_, err := reg.ResolveByLocalID(3)
	assert.Error(t, err)

	kpID, err := reg.LocalIDOf("kp")
	require.NoError(t, err)
	assert.Greater(t, kpID, uint16(3))
}
