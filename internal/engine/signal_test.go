package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrossedAbove(t *testing.T) {
	assert.True(t, crossedAbove(50.0, 52.0, 51.0))
	assert.True(t, crossedAbove(51.0, 51.01, 51.0), "previous value on the level still crosses")
	assert.False(t, crossedAbove(51.0, 51.0, 51.0), "current value on the level has not crossed")
	assert.False(t, crossedAbove(51.01, 52.0, 51.0), "already above, no crossing")
	assert.False(t, crossedAbove(50.0, 51.0, 51.0))
}

func TestCrossedBelow(t *testing.T) {
	assert.True(t, crossedBelow(50.0, 48.0, 49.0))
	assert.True(t, crossedBelow(49.0, 48.99, 49.0), "previous value on the level still crosses")
	assert.False(t, crossedBelow(49.0, 49.0, 49.0))
	assert.False(t, crossedBelow(48.99, 48.0, 49.0), "already below, no crossing")
	assert.False(t, crossedBelow(50.0, 49.0, 49.0))
}
