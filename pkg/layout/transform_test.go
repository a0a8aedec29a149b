package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixTransformLookup(t *testing.T) {
	tr := NewMatrixTransform([]TransformEntry{
		{Row: 0, Col: 0, Position: 0},
		{Row: 0, Col: 1, Position: 1},
		{Row: 1, Col: 0, Position: 2},
	})

	assert.Equal(t, 0, tr.Position(0, 0))
	assert.Equal(t, 1, tr.Position(0, 1))
	assert.Equal(t, 2, tr.Position(1, 0))
	assert.Equal(t, NoKey, tr.Position(5, 5))
	assert.Equal(t, 3, tr.KeyCount())
}

func TestNilTransformAlwaysNoKey(t *testing.T) {
	var tr *MatrixTransform
	assert.Equal(t, NoKey, tr.Position(0, 0))
	assert.Equal(t, 0, tr.KeyCount())
}
