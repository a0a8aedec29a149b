package keymap

import "sync/atomic"

// LayerState is a bitmask of up to 64 active layers, guarded by a single
// atomic word so dispatch can read it without locking mid-cascade.
type LayerState struct {
	bits    atomic.Uint64
	deflt   int
	onEvent func(layer int, active bool)
}

// NewLayerState returns a LayerState with only the default layer active.
// onEvent, if non-nil, is invoked synchronously on every actual bit
// change (never on a no-op).
func NewLayerState(defaultLayer int, onEvent func(layer int, active bool)) *LayerState {
	ls := &LayerState{deflt: defaultLayer, onEvent: onEvent}
	ls.bits.Store(1 << uint(defaultLayer))
	return ls
}

// Get reads the current bitmask.
func (ls *LayerState) Get() uint64 { return ls.bits.Load() }

// IsActive reports whether layer is currently active.
func (ls *LayerState) IsActive(layer int) bool {
	return ls.bits.Load()&(1<<uint(layer)) != 0
}

// HighestActive returns the highest-indexed active layer, or the default
// layer if none above it are set.
func (ls *LayerState) HighestActive() int {
	bits := ls.bits.Load()
	for l := 63; l > ls.deflt; l-- {
		if bits&(1<<uint(l)) != 0 {
			return l
		}
	}
	return ls.deflt
}

// set is the single guarded setter: clearing the default layer is always
// a no-op, and onEvent fires only when the bit actually changed.
func (ls *LayerState) set(layer int, active bool) {
	if layer == ls.deflt && !active {
		return
	}
	mask := uint64(1) << uint(layer)
	for {
		old := ls.bits.Load()
		var next uint64
		if active {
			next = old | mask
		} else {
			next = old &^ mask
		}
		if next == old {
			return
		}
		if ls.bits.CompareAndSwap(old, next) {
			if ls.onEvent != nil {
				ls.onEvent(layer, active)
			}
			return
		}
	}
}

// Activate sets layer active.
func (ls *LayerState) Activate(layer int) { ls.set(layer, true) }

// Deactivate clears layer, refusing to clear the default layer.
func (ls *LayerState) Deactivate(layer int) { ls.set(layer, false) }

// Toggle flips layer's bit.
func (ls *LayerState) Toggle(layer int) { ls.set(layer, !ls.IsActive(layer)) }

// GoTo deactivates every non-default layer and activates exactly layer,
// matching zmk_keymap_layer_to's "goto layer" semantics.
func (ls *LayerState) GoTo(layer int) {
	bits := ls.bits.Load()
	for l := 0; l <= 63; l++ {
		if l == ls.deflt || l == layer {
			continue
		}
		if bits&(1<<uint(l)) != 0 {
			ls.Deactivate(l)
		}
	}
	ls.Activate(layer)
}
