package graphics

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackUnpack(t *testing.T) {
	c := color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}
	assert.Equal(t, uint32(0xff123456), Pack(c))
	assert.Equal(t, c, Unpack(Pack(c)))
}

func TestDarkenMatchesHalving(t *testing.T) {
	colors := []color.RGBA{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
		{255, 255, 0, 255},
		{201, 77, 3, 255},
		{1, 1, 1, 128},
	}
	for _, c := range colors {
		got := Unpack(Darken(Pack(c)))
		assert.Equal(t, HalveRGBA(c), got, "darken %v", c)
	}
}
