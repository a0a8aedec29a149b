package keymap

import (
	"context"

	"github.com/clavis/keymapd/pkg/behavior"
)

// recordingHandle is a Handle stub that records every Pressed/Released
// call and returns a fixed classification code.
type recordingHandle struct {
	name        string
	pressCode   int
	releaseCode int
	pressed     []behavior.Event
	released    []behavior.Event
	convertErr  error
}

func (h *recordingHandle) Pressed(_ context.Context, _ behavior.Binding, ev behavior.Event) (int, error) {
	h.pressed = append(h.pressed, ev)
	return h.pressCode, nil
}

func (h *recordingHandle) Released(_ context.Context, _ behavior.Binding, ev behavior.Event) (int, error) {
	h.released = append(h.released, ev)
	return h.releaseCode, nil
}

func (h *recordingHandle) ConvertCentralStateDependentParams(_ context.Context, b behavior.Binding) (behavior.Binding, error) {
	if h.convertErr != nil {
		return behavior.Binding{}, h.convertErr
	}
	return b, nil
}

func mustRegister(reg *behavior.Registry, name string, locality behavior.Locality, h *recordingHandle) {
	_ = reg.Register(&behavior.Behavior{Name: name, LocalID: 0, Locality: locality, Handle: h})
}
