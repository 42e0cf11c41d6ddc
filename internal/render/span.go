package render

import (
	"raycaster/internal/graphics"
	"raycaster/internal/mathutil"
)

// Span is one projected wall slice.
type Span struct {
	Column int
	Start  int
	End    int
	// Color is used when Texture is nil.
	Color   uint32
	Texture *graphics.Texture
	TexX    int
	TexPos  float64
	TexStep float64
	Darken  bool
}

// Draw writes the span into its column.
func (s Span) Draw(fb *graphics.FrameBuffer) {
	if s.Texture == nil {
		fb.VLine(s.Column, s.Start, s.End, s.Color)
		return
	}
	size := s.Texture.Size()
	pos := s.TexPos
	for y := s.Start; y <= s.End; y++ {
		ty := mathutil.IntClamp(int(pos), 0, size-1)
		pos += s.TexStep
		p := s.Texture.At(s.TexX, ty)
		if s.Darken {
			p = graphics.Darken(p)
		}
		fb.Set(s.Column, y, p)
	}
}

// DrawSpans draws spans in order.
func DrawSpans(fb *graphics.FrameBuffer, spans []Span) {
	for _, s := range spans {
		s.Draw(fb)
	}
}

// DrawBackground fills the area above the horizon with ceiling and the rest
// with floor.
func DrawBackground(fb *graphics.FrameBuffer, ceiling, floor uint32, pitch int) {
	horizon := mathutil.IntClamp(fb.Height()/2+pitch, 0, fb.Height())
	b := fb.Bounds()
	top := b
	top.Max.Y = horizon
	bottom := b
	bottom.Min.Y = horizon
	fb.FillRect(top, ceiling)
	fb.FillRect(bottom, floor)
}
