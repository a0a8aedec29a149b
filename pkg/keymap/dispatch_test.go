package keymap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clavis/keymapd/pkg/behavior"
	"github.com/clavis/keymapd/pkg/split"
)

func twoLayerKeymap(t *testing.T, reg *behavior.Registry) *Keymap {
	t.Helper()
	layers := []Layer{
		{Name: "default", Bindings: []behavior.Binding{{BehaviorName: "B"}, {}, {}, {}}},
		{Name: "fn", Bindings: []behavior.Binding{{BehaviorName: "A"}, {}, {}, {}}},
	}
	return New(layers, nil)
}

// S2 — press/release across a layer change must stay pinned to the
// layer set active at press time.
func TestDispatchPressReleaseAcrossLayerChange(t *testing.T) {
	reg := behavior.NewRegistry()
	a := &recordingHandle{pressCode: 0, releaseCode: 0}
	b := &recordingHandle{pressCode: 0, releaseCode: 0}
	mustRegister(reg, "A", behavior.LocalityCentral, a)
	mustRegister(reg, "B", behavior.LocalityCentral, b)

	km := twoLayerKeymap(t, reg)
	d := &Dispatcher{Keymap: km, Registry: reg, Split: split.LocalDispatcher{Registry: reg}}

	km.LayerState().Activate(1)
	_, err := d.Dispatch(context.Background(), behavior.Event{Source: -1, Position: 0, Pressed: true})
	require.NoError(t, err)
	require.Len(t, a.pressed, 1)
	require.Empty(t, b.pressed)

	km.LayerState().Deactivate(1)
	_, err = d.Dispatch(context.Background(), behavior.Event{Source: -1, Position: 0, Pressed: false})
	require.NoError(t, err)
	assert.Len(t, a.released, 1)
	assert.Empty(t, b.released)
}

// S3 — a transparent response on a higher layer falls through to the
// lower layer's binding.
func TestDispatchTransparentCascade(t *testing.T) {
	reg := behavior.NewRegistry()
	upper := &recordingHandle{pressCode: 1} // transparent
	lower := &recordingHandle{pressCode: 0} // opaque
	mustRegister(reg, "UPPER", behavior.LocalityCentral, upper)
	mustRegister(reg, "LOWER", behavior.LocalityCentral, lower)

	layers := []Layer{
		{Name: "default", Bindings: []behavior.Binding{{BehaviorName: "LOWER"}}},
		{Name: "fn", Bindings: []behavior.Binding{{BehaviorName: "UPPER"}}},
	}
	km := New(layers, nil)
	km.LayerState().Activate(1)

	d := &Dispatcher{Keymap: km, Registry: reg, Split: split.LocalDispatcher{Registry: reg}}
	result, err := d.Dispatch(context.Background(), behavior.Event{Source: -1, Position: 0, Pressed: true})
	require.NoError(t, err)
	assert.Equal(t, ResultConsumed, result)
	assert.Len(t, upper.pressed, 1)
	assert.Len(t, lower.pressed, 1)
}

func TestDispatchUnresolvedBehaviorSkipsToNextLayer(t *testing.T) {
	reg := behavior.NewRegistry()
	lower := &recordingHandle{pressCode: 0}
	mustRegister(reg, "LOWER", behavior.LocalityCentral, lower)

	layers := []Layer{
		{Name: "default", Bindings: []behavior.Binding{{BehaviorName: "LOWER"}}},
		{Name: "fn", Bindings: []behavior.Binding{{BehaviorName: "MISSING"}}},
	}
	km := New(layers, nil)
	km.LayerState().Activate(1)

	d := &Dispatcher{Keymap: km, Registry: reg, Split: split.LocalDispatcher{Registry: reg}}
	result, err := d.Dispatch(context.Background(), behavior.Event{Position: 0, Pressed: true})
	require.NoError(t, err)
	assert.Equal(t, ResultConsumed, result)
	assert.Len(t, lower.pressed, 1)
}

func TestDispatchUnhandledWhenNoLayerConsumes(t *testing.T) {
	reg := behavior.NewRegistry()
	layers := []Layer{{Name: "default", Bindings: []behavior.Binding{{BehaviorName: "MISSING"}}}}
	km := New(layers, nil)

	d := &Dispatcher{Keymap: km, Registry: reg, Split: split.LocalDispatcher{Registry: reg}}
	result, err := d.Dispatch(context.Background(), behavior.Event{Position: 0, Pressed: true})
	require.NoError(t, err)
	assert.Equal(t, ResultUnhandled, result)
}

func TestDispatchConversionFailureIsFatal(t *testing.T) {
	reg := behavior.NewRegistry()
	h := &recordingHandle{convertErr: assertErrTest{"bad param"}}
	mustRegister(reg, "A", behavior.LocalityCentral, h)

	layers := []Layer{{Name: "default", Bindings: []behavior.Binding{{BehaviorName: "A"}}}}
	km := New(layers, nil)

	d := &Dispatcher{Keymap: km, Registry: reg, Split: split.LocalDispatcher{Registry: reg}}
	_, err := d.Dispatch(context.Background(), behavior.Event{Position: 0, Pressed: true})
	require.Error(t, err)
}

func TestDispatchEventSourceLocalityRoutesToRemotePeripheral(t *testing.T) {
	reg := behavior.NewRegistry()
	h := &recordingHandle{pressCode: 0}
	mustRegister(reg, "A", behavior.LocalityEventSource, h)

	layers := []Layer{{Name: "default", Bindings: []behavior.Binding{{BehaviorName: "A"}}}}
	km := New(layers, nil)

	pd := split.NewPeripheralDispatcher()
	fc := &fakeSplitClientForKeymap{}
	pd.AddPeripheral("0", fc)

	d := &Dispatcher{Keymap: km, Registry: reg, Split: pd}
	_, err := d.Dispatch(context.Background(), behavior.Event{Source: 0, Position: 0, Pressed: true})
	require.NoError(t, err)
	assert.Equal(t, 1, fc.calls)
	assert.Empty(t, h.pressed)
}

func TestDispatchEventSourceLocalityStaysLocalWhenLocal(t *testing.T) {
	reg := behavior.NewRegistry()
	h := &recordingHandle{pressCode: 0}
	mustRegister(reg, "A", behavior.LocalityEventSource, h)

	layers := []Layer{{Name: "default", Bindings: []behavior.Binding{{BehaviorName: "A"}}}}
	km := New(layers, nil)

	d := &Dispatcher{Keymap: km, Registry: reg, Split: split.LocalDispatcher{Registry: reg}}
	_, err := d.Dispatch(context.Background(), behavior.Event{Source: -1, Position: 0, Pressed: true})
	require.NoError(t, err)
	assert.Len(t, h.pressed, 1)
}

func TestDispatchGlobalLocalityInvokesLocalAndBroadcasts(t *testing.T) {
	reg := behavior.NewRegistry()
	h := &recordingHandle{pressCode: 0}
	mustRegister(reg, "BT_SEL", behavior.LocalityGlobal, h)

	layers := []Layer{{Name: "default", Bindings: []behavior.Binding{{BehaviorName: "BT_SEL"}}}}
	km := New(layers, nil)

	pd := split.NewPeripheralDispatcher()
	fc := &fakeSplitClientForKeymap{}
	pd.AddPeripheral("right", fc)

	d := &Dispatcher{Keymap: km, Registry: reg, Split: pd}
	_, err := d.Dispatch(context.Background(), behavior.Event{Source: -1, Position: 0, Pressed: true})
	require.NoError(t, err)
	assert.Len(t, h.pressed, 1)
	assert.Equal(t, 1, fc.calls)
}

// §4.5 — a negative return code with no Go error still stops the cascade
// and surfaces as an error, instead of being treated as transparent.
func TestDispatchNegativeCodeStopsAndSurfacesError(t *testing.T) {
	reg := behavior.NewRegistry()
	upper := &recordingHandle{pressCode: -1} // error
	lower := &recordingHandle{pressCode: 0}  // opaque
	mustRegister(reg, "UPPER", behavior.LocalityCentral, upper)
	mustRegister(reg, "LOWER", behavior.LocalityCentral, lower)

	layers := []Layer{
		{Name: "default", Bindings: []behavior.Binding{{BehaviorName: "LOWER"}}},
		{Name: "fn", Bindings: []behavior.Binding{{BehaviorName: "UPPER"}}},
	}
	km := New(layers, nil)
	km.LayerState().Activate(1)

	d := &Dispatcher{Keymap: km, Registry: reg, Split: split.LocalDispatcher{Registry: reg}}
	result, err := d.Dispatch(context.Background(), behavior.Event{Source: -1, Position: 0, Pressed: true})
	require.Error(t, err)
	assert.Equal(t, ResultUnhandled, result)
	assert.Len(t, upper.pressed, 1)
	assert.Empty(t, lower.pressed, "cascade must stop at the error, never reach the lower layer")
}

func TestDispatchDomainRangeOutOfBoundsIsUnhandled(t *testing.T) {
	reg := behavior.NewRegistry()
	layers := []Layer{{Name: "default", Bindings: []behavior.Binding{{BehaviorName: "A"}}}}
	km := New(layers, nil)

	d := &Dispatcher{Keymap: km, Registry: reg, Split: split.LocalDispatcher{Registry: reg}}
	result, err := d.Dispatch(context.Background(), behavior.Event{Position: 99, Pressed: true})
	require.NoError(t, err)
	assert.Equal(t, ResultUnhandled, result)
}

type assertErrTest struct{ msg string }

func (e assertErrTest) Error() string { return e.msg }
