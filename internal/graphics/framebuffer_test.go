package graphics

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameBufferSetIgnoresOutOfRange(t *testing.T) {
	fb := NewFrameBuffer(4, 3)
	fb.Set(-1, 0, 1)
	fb.Set(4, 0, 1)
	fb.Set(0, 3, 1)
	fb.Set(3, 2, 7)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			want := uint32(0)
			if x == 3 && y == 2 {
				want = 7
			}
			assert.Equal(t, want, fb.At(x, y))
		}
	}
	assert.Equal(t, uint32(0), fb.At(10, 10))
}

func TestFrameBufferVLineClamps(t *testing.T) {
	fb := NewFrameBuffer(2, 5)
	fb.VLine(1, 8, -3, 9)
	for y := 0; y < 5; y++ {
		assert.Equal(t, uint32(9), fb.At(1, y))
		assert.Equal(t, uint32(0), fb.At(0, y))
	}
}

func TestFrameBufferFillRectAndClear(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	fb.Clear(1)
	fb.FillRect(image.Rect(2, 2, 10, 10), 5)
	assert.Equal(t, uint32(1), fb.At(1, 1))
	assert.Equal(t, uint32(5), fb.At(2, 2))
	assert.Equal(t, uint32(5), fb.At(3, 3))
}

func TestFrameBufferLine(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	fb.Line(0, 0, 7, 7, 3)
	for i := 0; i < 8; i++ {
		assert.Equal(t, uint32(3), fb.At(i, i))
	}
	// clipped lines must not panic
	fb.Line(-20, 4, 30, 4, 2)
	assert.Equal(t, uint32(2), fb.At(0, 4))
	assert.Equal(t, uint32(2), fb.At(7, 4))
}

func TestFrameBufferBytesLayout(t *testing.T) {
	fb := NewFrameBuffer(1, 1)
	fb.Set(0, 0, 0x80112233)
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x80}, fb.Bytes())

	img := fb.Image()
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x80}, img.Pix)
}
