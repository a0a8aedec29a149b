package persist

import "sync"

// DirtyBitmap tracks which (layer, position) keymap cells have been
// edited since the last save, one bit per cell, grouped by layer so a
// whole layer's bits can be cleared in one call.
//
// The original firmware implementation only cleared the first byte of
// each layer's bitmap at the end of save_changes, leaving later
// positions marked dirty forever once K exceeded 8. ClearLayer here
// clears every byte.
type DirtyBitmap struct {
	mu        sync.Mutex
	layers    int
	positions int
	bytesPer  int
	bits      [][]byte
}

// NewDirtyBitmap allocates a bitmap for the given number of layers and
// positions per layer.
func NewDirtyBitmap(layers, positions int) *DirtyBitmap {
	bytesPer := (positions + 7) / 8
	bits := make([][]byte, layers)
	for i := range bits {
		bits[i] = make([]byte, bytesPer)
	}
	return &DirtyBitmap{
		layers:    layers,
		positions: positions,
		bytesPer:  bytesPer,
		bits:      bits,
	}
}

// Set marks (layer, position) dirty. Out-of-range indices are ignored;
// callers are expected to have already range-checked against the keymap.
func (d *DirtyBitmap) Set(layer, position int) {
	if layer < 0 || layer >= d.layers || position < 0 || position >= d.positions {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bits[layer][position/8] |= 1 << uint(position%8)
}

// IsSet reports whether (layer, position) is currently marked dirty.
func (d *DirtyBitmap) IsSet(layer, position int) bool {
	if layer < 0 || layer >= d.layers || position < 0 || position >= d.positions {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bits[layer][position/8]&(1<<uint(position%8)) != 0
}

// DirtyPositions returns the positions currently marked dirty in layer,
// in ascending order.
func (d *DirtyBitmap) DirtyPositions(layer int) []int {
	if layer < 0 || layer >= d.layers {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []int
	for p := 0; p < d.positions; p++ {
		if d.bits[layer][p/8]&(1<<uint(p%8)) != 0 {
			out = append(out, p)
		}
	}
	return out
}

// ClearLayer clears every dirty bit belonging to layer.
func (d *DirtyBitmap) ClearLayer(layer int) {
	if layer < 0 || layer >= d.layers {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.bits[layer] {
		d.bits[layer][i] = 0
	}
}

// AnyDirty reports whether any cell in any layer is currently dirty.
func (d *DirtyBitmap) AnyDirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, layer := range d.bits {
		for _, b := range layer {
			if b != 0 {
				return true
			}
		}
	}
	return false
}
