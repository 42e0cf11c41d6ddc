package graphics

import (
	"image"

	"raycaster/internal/mathutil"
)

// FrameBuffer is an owned ARGB pixel surface. Every write goes through Set,
// which drops pixels outside the surface.
type FrameBuffer struct {
	width  int
	height int
	pix    []uint32
	bytes  []byte
}

// NewFrameBuffer allocates a cleared width x height surface.
func NewFrameBuffer(width, height int) *FrameBuffer {
	width = mathutil.IntMax(width, 1)
	height = mathutil.IntMax(height, 1)
	return &FrameBuffer{
		width:  width,
		height: height,
		pix:    make([]uint32, width*height),
	}
}

func (fb *FrameBuffer) Width() int { return fb.width }
func (fb *FrameBuffer) Height() int { return fb.height }

// Bounds returns the surface rectangle.
func (fb *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// Set writes one pixel. Out-of-range coordinates are ignored.
func (fb *FrameBuffer) Set(x, y int, p uint32) {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return
	}
	fb.pix[y*fb.width+x] = p
}

// At reads one pixel, 0 when out of range.
func (fb *FrameBuffer) At(x, y int) uint32 {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return 0
	}
	return fb.pix[y*fb.width+x]
}

// Clear fills the whole surface.
func (fb *FrameBuffer) Clear(p uint32) {
	for i := range fb.pix {
		fb.pix[i] = p
	}
}

// FillRect fills r clipped to the surface.
func (fb *FrameBuffer) FillRect(r image.Rectangle, p uint32) {
	r = r.Intersect(fb.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			fb.Set(x, y, p)
		}
	}
}

// VLine fills column x from y0 to y1 inclusive.
func (fb *FrameBuffer) VLine(x, y0, y1 int, p uint32) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	y0 = mathutil.IntMax(y0, 0)
	y1 = mathutil.IntMin(y1, fb.height-1)
	for y := y0; y <= y1; y++ {
		fb.Set(x, y, p)
	}
}

// Line draws a Bresenham line between two points inclusive.
func (fb *FrameBuffer) Line(x0, y0, x1, y1 int, p uint32) {
	dx := mathutil.IntAbs(x1 - x0)
	dy := -mathutil.IntAbs(y1 - y0)
	sx := mathutil.IntSign(x1 - x0)
	sy := mathutil.IntSign(y1 - y0)
	err := dx + dy
	for {
		fb.Set(x0, y0, p)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Bytes returns the surface as RGBA bytes, the layout ebiten's WritePixels
// and image.RGBA expect. The slice is reused between calls.
func (fb *FrameBuffer) Bytes() []byte {
	if len(fb.bytes) != 4*len(fb.pix) {
		fb.bytes = make([]byte, 4*len(fb.pix))
	}
	for i, p := range fb.pix {
		o := 4 * i
		fb.bytes[o] = uint8(p >> 16)
		fb.bytes[o+1] = uint8(p >> 8)
		fb.bytes[o+2] = uint8(p)
		fb.bytes[o+3] = uint8(p >> 24)
	}
	return fb.bytes
}

// Image copies the surface into a new RGBA image.
func (fb *FrameBuffer) Image() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	copy(img.Pix, fb.Bytes())
	return img
}
