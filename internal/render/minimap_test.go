package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raycaster/internal/graphics"
	"raycaster/internal/mathutil"
	"raycaster/internal/raycast"
	"raycaster/internal/world"
)

func TestMinimapDraw(t *testing.T) {
	m, err := world.GenerateMaze(world.MazeOptions{Columns: 5, Rows: 5, Seed: 3})
	require.NoError(t, err)
	grid := m.Grid

	view := raycast.View{Position: mathutil.V2(1.5, 1.5), Direction: mathutil.V2(1.0, 0), Plane: mathutil.V2(0, 0.66)}
	hits, err := raycast.NewCaster(grid, 0).CastColumns(view, 16, raycast.ModeCorrected, nil)
	require.NoError(t, err)

	mm := Minimap{
		Scale:       4,
		Offset:      image.Pt(2, 2),
		EmptyColor:  color.RGBA{40, 40, 40, 255},
		PlayerColor: color.RGBA{255, 255, 255, 255},
		RayColor:    color.RGBA{0, 255, 255, 255},
		PlayerSize:  2,
	}
	fb := graphics.NewFrameBuffer(40, 40)
	mm.Draw(fb, grid, view, hits)

	border, _ := world.DefaultPalette().MazeColors()
	assert.Equal(t, graphics.Pack(border), fb.At(2, 2), "top-left border cell")
	assert.Equal(t, uint32(0), fb.At(0, 0), "offset leaves the corner untouched")
	assert.Equal(t, graphics.Pack(mm.PlayerColor), fb.At(8, 8), "camera marker at (1.5,1.5) tiles")

	rays := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if fb.At(x, y) == graphics.Pack(mm.RayColor) {
				rays++
			}
		}
	}
	assert.Greater(t, rays, 0, "edge rays drawn")
}

func TestMinimapDisabled(t *testing.T) {
	fb := graphics.NewFrameBuffer(4, 4)
	Minimap{}.Draw(fb, nil, raycast.View{}, nil)
	assert.Equal(t, uint32(0), fb.At(0, 0))
}
