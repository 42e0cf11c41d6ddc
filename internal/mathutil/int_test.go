package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntHelperValues(t *testing.T) {
	assert.Equal(t, -1, IntSign(-7))
	assert.Equal(t, 0, IntSign(0))
	assert.Equal(t, 1, IntSign(3))
	assert.Equal(t, 7, IntAbs(-7))
	assert.Equal(t, 2, IntMin(2, 5))
	assert.Equal(t, 5, IntMax(2, 5))
	assert.Equal(t, 0, IntClamp(-3, 0, 9))
	assert.Equal(t, 9, IntClamp(12, 0, 9))
	assert.Equal(t, 4, IntClamp(4, 0, 9))
}
