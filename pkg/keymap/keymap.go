// Package keymap implements the layered keymap: per-layer binding
// tables, the live LayerState bitmask, PressMemory, and the key/sensor
// dispatch cascades that resolve a physical key or sensor event to a
// behavior invocation.
package keymap

import (
	"sync"

	"github.com/clavis/keymapd/pkg/behavior"
	"github.com/clavis/keymapd/pkg/keyerr"
)

// Layer is one overlay of K bindings over the physical key positions,
// plus an optional parallel array of sensor bindings.
type Layer struct {
	Name           string
	Bindings       []behavior.Binding
	SensorBindings []behavior.Binding
}

// Keymap owns the full L x K binding table, the live LayerState, and
// PressMemory. The default layer is always index 0.
type Keymap struct {
	mu          sync.RWMutex
	layers      []Layer
	layerState  *LayerState
	pressMemory []uint64
}

// New builds a Keymap from a fixed set of layers. layers must be
// non-empty; layer 0 is the default layer and K is taken from
// layers[0]'s binding count.
func New(layers []Layer, onLayerEvent func(layer int, active bool)) *Keymap {
	k := &Keymap{
		layers:      layers,
		layerState:  NewLayerState(0, onLayerEvent),
		pressMemory: make([]uint64, keyCount(layers)),
	}
	return k
}

func keyCount(layers []Layer) int {
	if len(layers) == 0 {
		return 0
	}
	return len(layers[0].Bindings)
}

// LayerCount returns L.
func (k *Keymap) LayerCount() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.layers)
}

// KeyCount returns K.
func (k *Keymap) KeyCount() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.pressMemory)
}

// LayerState returns the keymap's live layer-activation state.
func (k *Keymap) LayerState() *LayerState { return k.layerState }

// LayerName returns the display name of layer, or an error if out of range.
func (k *Keymap) LayerName(layer int) (string, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if layer < 0 || layer >= len(k.layers) {
		return "", keyerr.New(keyerr.DomainRange, "layer out of range")
	}
	return k.layers[layer].Name, nil
}

// Binding returns the binding at (layer, position).
func (k *Keymap) Binding(layer, position int) (behavior.Binding, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.checkRange(layer, position); err != nil {
		return behavior.Binding{}, err
	}
	return k.layers[layer].Bindings[position], nil
}

// SetBinding overwrites the in-memory cell at (layer, position). Callers
// responsible for persistence (pkg/rpc's edit handlers) mark the dirty
// bitmap separately.
func (k *Keymap) SetBinding(layer, position int, b behavior.Binding) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.checkRange(layer, position); err != nil {
		return err
	}
	k.layers[layer].Bindings[position] = b
	return nil
}

// SensorBinding returns the sensor binding at (layer, sensorIndex).
func (k *Keymap) SensorBinding(layer, sensorIndex int) (behavior.Binding, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if layer < 0 || layer >= len(k.layers) {
		return behavior.Binding{}, keyerr.New(keyerr.DomainRange, "layer out of range")
	}
	sb := k.layers[layer].SensorBindings
	if sensorIndex < 0 || sensorIndex >= len(sb) {
		return behavior.Binding{}, keyerr.New(keyerr.DomainRange, "sensor index out of range")
	}
	return sb[sensorIndex], nil
}

func (k *Keymap) checkRange(layer, position int) error {
	if layer < 0 || layer >= len(k.layers) {
		return keyerr.New(keyerr.DomainRange, "layer out of range")
	}
	if position < 0 || position >= len(k.pressMemory) {
		return keyerr.New(keyerr.DomainRange, "position out of range")
	}
	return nil
}

// pressMemorySnapshot/setPressMemory are internal helpers shared by the
// key-dispatch cascade. An out-of-range position reads as 0 and is not
// recorded.
func (k *Keymap) pressMemorySnapshot(position int) uint64 {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if position < 0 || position >= len(k.pressMemory) {
		return 0
	}
	return k.pressMemory[position]
}

func (k *Keymap) setPressMemory(position int, snapshot uint64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if position < 0 || position >= len(k.pressMemory) {
		return
	}
	k.pressMemory[position] = snapshot
}
