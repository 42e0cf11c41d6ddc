package keytracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateEdges(t *testing.T) {
	var k KeyStateTracker
	assert.Equal(t, None, k.Update(false))
	assert.Equal(t, Pressed, k.Update(true))
	assert.Equal(t, None, k.Update(true), "holding is not an edge")
	assert.Equal(t, Released, k.Update(false))
	assert.Equal(t, None, k.Update(false))
}
