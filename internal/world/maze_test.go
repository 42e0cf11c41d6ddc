package world

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMazeProperties(t *testing.T) {
	sizes := [][2]int{{5, 5}, {7, 5}, {21, 15}, {8, 6}, {31, 31}, {5, 41}}
	seeds := []int64{1, 2, 42, 1337, 987654321}
	border, _ := DefaultPalette().MazeColors()

	for _, size := range sizes {
		for _, seed := range seeds {
			t.Run(fmt.Sprintf("%dx%d/seed=%d", size[0], size[1], seed), func(t *testing.T) {
				m, err := GenerateMaze(MazeOptions{Columns: size[0], Rows: size[1], Seed: seed})
				require.NoError(t, err)
				g := m.Grid

				assert.Equal(t, 1, g.Columns()%2, "columns forced odd")
				assert.Equal(t, 1, g.Rows()%2, "rows forced odd")
				assert.GreaterOrEqual(t, g.Columns(), size[0])
				assert.Equal(t, g.Columns()*g.Rows(), g.Len())

				assert.True(t, g.BoardComplete(), "every odd interior cell is carved")
				assert.True(t, g.Connected(), "all open cells reachable")

				for col := 0; col < g.Columns(); col++ {
					for row := 0; row < g.Rows(); row++ {
						onBorder := col == 0 || row == 0 || col == g.Columns()-1 || row == g.Rows()-1
						tile, _ := g.TileAt(col, row)
						if onBorder {
							require.True(t, tile.IsWall, "border (%d,%d) must be a wall", col, row)
							require.Equal(t, border, tile.Color)
						}
						if col%2 == 0 && row%2 == 0 {
							require.True(t, tile.IsWall, "even/even pillar (%d,%d) must stay a wall", col, row)
						}
					}
				}

				// a perfect maze on r rooms has exactly r-1 connectors
				rooms := ((g.Columns() - 1) / 2) * ((g.Rows() - 1) / 2)
				assert.Equal(t, 2*rooms-1, g.OpenCells())
			})
		}
	}
}

func TestGenerateMazeDeterministicSeed(t *testing.T) {
	a, err := GenerateMaze(MazeOptions{Columns: 15, Rows: 11, Seed: 7})
	require.NoError(t, err)
	b, err := GenerateMaze(MazeOptions{Columns: 15, Rows: 11, Seed: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(7), a.Seed)
	for i := 0; i < a.Grid.Len(); i++ {
		ta, _ := a.Grid.TileByIndex(i)
		tb, _ := b.Grid.TileByIndex(i)
		require.Equal(t, *ta, *tb, "tile %d differs", i)
	}
}

func TestGenerateMazeTimeSeed(t *testing.T) {
	m, err := GenerateMaze(MazeOptions{Columns: 9, Rows: 9})
	require.NoError(t, err)
	assert.NotZero(t, m.Seed)
	x, y := m.StartPosition()
	assert.Equal(t, 1.5, x)
	assert.Equal(t, 1.5, y)
	tile, ok := m.Grid.Tile(x, y)
	require.True(t, ok)
	assert.False(t, tile.IsWall)
}

func TestGenerateMazeTooSmall(t *testing.T) {
	_, err := GenerateMaze(MazeOptions{Columns: 1, Rows: 9, Seed: 1})
	require.ErrorIs(t, err, ErrGridTooSmall)

	// 2 is bumped to 3, which is the smallest legal maze
	m, err := GenerateMaze(MazeOptions{Columns: 2, Rows: 2, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Grid.OpenCells())
}

func TestNeighborIndicesNeverWrap(t *testing.T) {
	for _, cols := range []int{3, 5, 7, 9, 11} {
		g, err := NewGrid(cols, 7, 1)
		require.NoError(t, err)
		for i := 0; i < g.Len(); i++ {
			col, row := g.Coords(i)
			for _, n := range g.NeighborIndices(i) {
				nc, nr := g.Coords(n)
				dc, dr := nc-col, nr-row
				ok := (dc == 0 && (dr == 2 || dr == -2)) || (dr == 0 && (dc == 2 || dc == -2))
				require.True(t, ok, "cols=%d: %d (%d,%d) -> %d (%d,%d)", cols, i, col, row, n, nc, nr)
				require.True(t, nc >= 1 && nc <= cols-2 && nr >= 1 && nr <= 5, "neighbor on border")
			}
		}
	}

	g, err := NewGrid(7, 7, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{g.Index(3, 1), g.Index(1, 3)}, g.NeighborIndices(g.Index(1, 1)))
	assert.ElementsMatch(t, []int{g.Index(3, 1), g.Index(5, 3), g.Index(3, 5), g.Index(1, 3)}, g.NeighborIndices(g.Index(3, 3)))
	assert.Nil(t, g.NeighborIndices(-1))
}
