package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayerStateDefaultAlwaysActive(t *testing.T) {
	ls := NewLayerState(0, nil)
	ls.Deactivate(0)
	assert.True(t, ls.IsActive(0))
	assert.Equal(t, uint64(1), ls.Get())
}

func TestLayerStateActivateDeactivateToggle(t *testing.T) {
	var events []struct {
		layer  int
		active bool
	}
	ls := NewLayerState(0, func(layer int, active bool) {
		events = append(events, struct {
			layer  int
			active bool
		}{layer, active})
	})

	ls.Activate(2)
	assert.Equal(t, uint64(0b101), ls.Get())

	ls.Toggle(2)
	assert.Equal(t, uint64(0b001), ls.Get())

	ls.Deactivate(0)
	assert.Equal(t, uint64(0b001), ls.Get())

	require := assert.New(t)
	require.Len(events, 2)
	require.Equal(2, events[0].layer)
	require.True(events[0].active)
	require.Equal(2, events[1].layer)
	require.False(events[1].active)
}

func TestLayerStateHighestActive(t *testing.T) {
	ls := NewLayerState(0, nil)
	assert.Equal(t, 0, ls.HighestActive())

	ls.Activate(3)
	ls.Activate(1)
	assert.Equal(t, 3, ls.HighestActive())
}

func TestLayerStateGoToDeactivatesOthers(t *testing.T) {
	ls := NewLayerState(0, nil)
	ls.Activate(1)
	ls.Activate(2)

	ls.GoTo(4)

	assert.True(t, ls.IsActive(0))
	assert.True(t, ls.IsActive(4))
	assert.False(t, ls.IsActive(1))
	assert.False(t, ls.IsActive(2))
}

func TestLayerStateSetNoopEmitsNoEvent(t *testing.T) {
	calls := 0
	ls := NewLayerState(0, func(int, bool) { calls++ })

	ls.Deactivate(0)
	assert.Equal(t, 0, calls)

	ls.Activate(1)
	ls.Activate(1)
	assert.Equal(t, 1, calls)
}
