package persist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirtyBitmapSetAndClear(t *testing.T) {
	d := NewDirtyBitmap(2, 20)

	d.Set(0, 3)
	d.Set(0, 19)
	d.Set(1, 0)

	assert.True(t, d.IsSet(0, 3))
	assert.True(t, d.IsSet(0, 19))
	assert.False(t, d.IsSet(0, 4))
	assert.ElementsMatch(t, []int{3, 19}, d.DirtyPositions(0))
	assert.True(t, d.IsSet(1, 0))
}

// TestDirtyBitmap_ClearLayerClearsAllBytes guards against the original
// firmware bug where only the first byte of a layer's bitmap was cleared,
// leaving positions 8 and above permanently dirty once K > 8.
func TestDirtyBitmap_ClearLayerClearsAllBytes(t *testing.T) {
	d := NewDirtyBitmap(1, 32)

	d.Set(0, 2)
	d.Set(0, 10)
	d.Set(0, 25)

	d.ClearLayer(0)

	assert.Empty(t, d.DirtyPositions(0))
	assert.False(t, d.AnyDirty())
}

func TestDirtyBitmapOutOfRangeIgnored(t *testing.T) {
	d := NewDirtyBitmap(1, 4)
	d.Set(5, 0)
	d.Set(0, 99)
	assert.False(t, d.AnyDirty())
	assert.False(t, d.IsSet(5, 0))
}
