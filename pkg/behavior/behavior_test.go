package behavior

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, ResponseError, Classify(-1))
	assert.Equal(t, ResponseOpaque, Classify(0))
	assert.Equal(t, ResponseTransparent, Classify(1))
}

func TestLocalityString(t *testing.T) {
	assert.Equal(t, "central", LocalityCentral.String())
	assert.Equal(t, "event-source", LocalityEventSource.String())
	assert.Equal(t, "global", LocalityGlobal.String())
}

func TestEventIsLocal(t *testing.T) {
	assert.True(t, Event{Source: -1}.IsLocal())
	assert.False(t, Event{Source: 0}.IsLocal())
}
