package render

import (
	"image"
	"image/color"
	"math"

	"raycaster/internal/graphics"
	"raycaster/internal/raycast"
	"raycaster/internal/world"
)

// Minimap draws the grid from above with the camera and the two edge rays
// of the current frame.
type Minimap struct {
	Scale       int
	Offset      image.Point
	EmptyColor  color.RGBA
	PlayerColor color.RGBA
	RayColor    color.RGBA
	// PlayerSize is the edge length of the camera marker in pixels.
	PlayerSize int
}

// Draw renders the overlay. hits are the frame's column hits; the first and
// last valid ones are drawn as the edges of the view cone.
func (m Minimap) Draw(fb *graphics.FrameBuffer, grid *world.Grid, view raycast.View, hits []raycast.Hit) {
	if m.Scale <= 0 || grid == nil {
		return
	}
	empty := graphics.Pack(m.EmptyColor)
	for i := 0; i < grid.Len(); i++ {
		tile, _ := grid.TileByIndex(i)
		p := empty
		if tile.IsWall {
			p = graphics.Pack(tile.Color)
		}
		r := image.Rect(
			tile.Rect.Min.X*m.Scale, tile.Rect.Min.Y*m.Scale,
			tile.Rect.Max.X*m.Scale, tile.Rect.Max.Y*m.Scale,
		).Add(m.Offset)
		fb.FillRect(r, p)
	}

	origin := view.Position.Scale(1 / grid.TileSize())
	px, py := m.toScreen(origin)
	ray := graphics.Pack(m.RayColor)
	if first, ok := firstValid(hits); ok {
		x, y := m.toScreen(hitPoint(first))
		fb.Line(px, py, x, y, ray)
	}
	if last, ok := lastValid(hits); ok {
		x, y := m.toScreen(hitPoint(last))
		fb.Line(px, py, x, y, ray)
	}

	half := m.PlayerSize / 2
	fb.FillRect(image.Rect(px-half, py-half, px-half+m.PlayerSize, py-half+m.PlayerSize), graphics.Pack(m.PlayerColor))
}

func (m Minimap) toScreen(p raycast.Vec) (int, int) {
	return m.Offset.X + int(math.Floor(p.X*float64(m.Scale))), m.Offset.Y + int(math.Floor(p.Y*float64(m.Scale)))
}

// hitPoint is where the ray met the wall, in tile units.
func hitPoint(h raycast.Hit) raycast.Vec {
	return h.Origin.Add(h.RayDir.Scale(h.RayParam))
}

func firstValid(hits []raycast.Hit) (raycast.Hit, bool) {
	for _, h := range hits {
		if h.Valid {
			return h, true
		}
	}
	return raycast.Hit{}, false
}

func lastValid(hits []raycast.Hit) (raycast.Hit, bool) {
	for i := len(hits) - 1; i >= 0; i-- {
		if hits[i].Valid {
			return hits[i], true
		}
	}
	return raycast.Hit{}, false
}
