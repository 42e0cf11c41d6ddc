package world

import (
	"image"
	"image/color"
)

// Tile is one cell of the grid. Its identity is its index in the owning Grid.
type Tile struct {
	IsWall bool
	Color  color.RGBA
	// Rect is the cell footprint in grid units.
	Rect image.Rectangle
}

// Opaque forces full alpha so a decoded pixel can be used as a wall color.
func Opaque(c color.Color) color.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 0xff}
}
