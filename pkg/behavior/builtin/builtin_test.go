package builtin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clavis/keymapd/pkg/behavior"
)

func TestBehaviorsNamesAndLocality(t *testing.T) {
	behaviors := Behaviors()
	require.Len(t, behaviors, 2)
	for _, b := range behaviors {
		assert.Equal(t, behavior.LocalityCentral, b.Locality)
	}
	assert.Equal(t, "none", behaviors[0].Name)
	assert.Equal(t, "trans", behaviors[1].Name)
}

func TestNoneConsumesAndTransFallsThrough(t *testing.T) {
	behaviors := Behaviors()
	none, trans := behaviors[0], behaviors[1]

	code, err := none.Handle.Pressed(context.Background(), behavior.Binding{}, behavior.Event{})
	require.NoError(t, err)
	assert.Equal(t, behavior.ResponseOpaque, behavior.Classify(code))

	code, err = trans.Handle.Pressed(context.Background(), behavior.Binding{}, behavior.Event{})
	require.NoError(t, err)
	assert.Equal(t, behavior.ResponseTransparent, behavior.Classify(code))
}
