package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEnabledBeforeInit(t *testing.T) {
	registry.Store(nil)
	enabled.Store(false)

	assert.False(t, IsEnabled())
	assert.Nil(t, GetRegistry())
	assert.Nil(t, Handler())
}

func TestInitRegistryEnables(t *testing.T) {
	defer func() {
		registry.Store(nil)
		enabled.Store(false)
	}()

	reg := InitRegistry()
	require.NotNil(t, reg)
	assert.True(t, IsEnabled())
	assert.Same(t, reg, GetRegistry())
	assert.NotNil(t, Handler())
}
